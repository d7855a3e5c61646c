// Package calc holds the calculator's expression buffer and the bridge that
// turns a finished expression into display text.
package calc

import (
	"errors"
	"fmt"

	"sparkcalc/sparkos/expr"
)

const (
	MsgDivByZero = "Div by Zero"
	MsgError     = "Error"
)

// ErrDivisionByZero is the failure an Evaluator reports (wrapped or not) for
// a zero divisor. Every other error is a generic evaluation failure.
var ErrDivisionByZero = expr.ErrDivisionByZero

// Evaluator turns an expression into its result text.
type Evaluator interface {
	Evaluate(src string) (string, error)
}

// ExprEvaluator evaluates with package expr.
type ExprEvaluator struct{}

func (ExprEvaluator) Evaluate(src string) (string, error) {
	n, err := expr.Evaluate(src)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

type State uint8

const (
	StateEmpty State = iota
	StateAccumulating
	StateResult
	StateError
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAccumulating:
		return "accumulating"
	case StateResult:
		return "result"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Outcome describes one Solve call.
type Outcome struct {
	Input   string
	Display string
	Err     error
}

func (o Outcome) OK() bool { return o.Err == nil }

func (o Outcome) DivByZero() bool { return errors.Is(o.Err, ErrDivisionByZero) }

// Calculator is the expression buffer plus its display text. It is not safe
// for concurrent use; the calculator task owns it.
type Calculator struct {
	ev      Evaluator
	buf     string
	display string
	state   State
}

// New returns an empty calculator. A nil ev selects ExprEvaluator.
func New(ev Evaluator) *Calculator {
	if ev == nil {
		ev = ExprEvaluator{}
	}
	return &Calculator{ev: ev}
}

func (c *Calculator) Buffer() string  { return c.buf }
func (c *Calculator) Display() string { return c.display }
func (c *Calculator) State() State    { return c.state }

// Append adds token to the buffer without validating it.
func (c *Calculator) Append(token string) {
	if token == "" {
		return
	}
	c.buf += token
	c.display = c.buf
	c.state = StateAccumulating
}

func (c *Calculator) Clear() {
	c.buf = ""
	c.display = ""
	c.state = StateEmpty
}

// Solve evaluates the buffer. A result seeds the buffer for the next
// expression; any failure empties it.
func (c *Calculator) Solve() Outcome {
	in := c.buf
	res, err := c.ev.Evaluate(in)
	if err != nil {
		c.buf = ""
		c.state = StateError
		if errors.Is(err, ErrDivisionByZero) {
			c.display = MsgDivByZero
		} else {
			c.display = MsgError
		}
		return Outcome{Input: in, Display: c.display, Err: err}
	}

	c.buf = res
	c.display = res
	c.state = StateResult
	return Outcome{Input: in, Display: res}
}
