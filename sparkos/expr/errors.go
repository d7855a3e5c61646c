package expr

import "errors"

var (
	// ErrSyntax is returned for input that does not form a complete expression.
	ErrSyntax = errors.New("syntax error")
	// ErrDivisionByZero is returned by / // % with a zero divisor and by 0**-n.
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("overflow")
	ErrEval           = errors.New("eval error")
)
