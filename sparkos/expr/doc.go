// Package expr evaluates the arithmetic typed on the calculator keypad.
//
// The grammar covers decimal literals, parentheses, unary signs and the
// binary operators + - * / // % **. Integers are exact; a literal with a
// decimal point or exponent is a float64, and true division always yields a
// float. Results print the way a desktop calculator user expects to see them
// chained back into the next expression ("14", "2.0", "1e-05").
package expr
