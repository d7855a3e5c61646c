package expr

import (
	"fmt"
	"math"
	"math/big"
)

// maxPowBits bounds the estimated size of an integer power before it is
// computed.
const maxPowBits = 1 << 17

// Evaluate parses and evaluates src.
func Evaluate(src string) (Number, error) {
	n, err := Parse(src)
	if err != nil {
		return Number{}, err
	}
	v, err := Eval(n)
	if err != nil {
		return Number{}, err
	}
	if err := checkIntSize(v); err != nil {
		return Number{}, err
	}
	return v, nil
}

// Eval evaluates a parsed tree.
func Eval(n Node) (Number, error) {
	switch nn := n.(type) {
	case nodeNumber:
		return nn.v, nil
	case nodeUnary:
		x, err := Eval(nn.x)
		if err != nil {
			return Number{}, err
		}
		if nn.op == '-' {
			return neg(x), nil
		}
		return x, nil
	case nodeBinary:
		a, err := Eval(nn.left)
		if err != nil {
			return Number{}, err
		}
		b, err := Eval(nn.right)
		if err != nil {
			return Number{}, err
		}
		return binary(nn.op, a, b)
	default:
		return Number{}, fmt.Errorf("%w: unsupported node %T", ErrEval, n)
	}
}

func neg(x Number) Number {
	if x.kind == KindInt {
		return Int(new(big.Int).Neg(x.bigInt()))
	}
	return Float(-x.f)
}

func binary(op binOp, a, b Number) (Number, error) {
	switch op {
	case opDiv, opFloorDiv, opMod:
		if b.isZero() {
			return Number{}, fmt.Errorf("%w: %s %s %s", ErrDivisionByZero, a, op, b)
		}
	}

	if op == opPow {
		return pow(a, b)
	}
	if op == opDiv {
		return trueDiv(a, b)
	}

	if a.kind == KindInt && b.kind == KindInt {
		x, y := a.bigInt(), b.bigInt()
		switch op {
		case opAdd:
			return Int(new(big.Int).Add(x, y)), nil
		case opSub:
			return Int(new(big.Int).Sub(x, y)), nil
		case opMul:
			return Int(new(big.Int).Mul(x, y)), nil
		case opFloorDiv:
			q, _ := floorDivModInt(x, y)
			return Int(q), nil
		case opMod:
			_, m := floorDivModInt(x, y)
			return Int(m), nil
		}
		return Number{}, fmt.Errorf("%w: unknown operator %s", ErrEval, op)
	}

	x, y, err := floats(a, b)
	if err != nil {
		return Number{}, err
	}
	switch op {
	case opAdd:
		return Float(x + y), nil
	case opSub:
		return Float(x - y), nil
	case opMul:
		return Float(x * y), nil
	case opFloorDiv:
		q, _ := floorDivModFloat(x, y)
		return Float(q), nil
	case opMod:
		_, m := floorDivModFloat(x, y)
		return Float(m), nil
	}
	return Number{}, fmt.Errorf("%w: unknown operator %s", ErrEval, op)
}

func floats(a, b Number) (float64, float64, error) {
	x, err := a.Float64()
	if err != nil {
		return 0, 0, err
	}
	y, err := b.Float64()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func trueDiv(a, b Number) (Number, error) {
	if a.kind == KindInt && b.kind == KindInt {
		// Correctly rounded, even when both operands exceed float64.
		f, _ := new(big.Rat).SetFrac(a.bigInt(), b.bigInt()).Float64()
		if math.IsInf(f, 0) {
			return Number{}, fmt.Errorf("%w: integer division result too large for a float", ErrOverflow)
		}
		return Float(f), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Number{}, err
	}
	return Float(x / y), nil
}

// floorDivModInt rounds the quotient toward negative infinity so the
// remainder takes the sign of the divisor.
func floorDivModInt(x, y *big.Int) (*big.Int, *big.Int) {
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (y.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
		r.Add(r, y)
	}
	return q, r
}

func floorDivModFloat(x, y float64) (float64, float64) {
	mod := math.Mod(x, y)
	div := (x - mod) / y
	if mod != 0 {
		if (y < 0) != (mod < 0) {
			mod += y
			div -= 1
		}
	} else {
		mod = math.Copysign(0, y)
	}

	var floordiv float64
	if div != 0 {
		floordiv = math.Floor(div)
		if div-floordiv > 0.5 {
			floordiv += 1
		}
	} else {
		floordiv = math.Copysign(0, x/y)
	}
	return floordiv, mod
}

func pow(a, b Number) (Number, error) {
	if a.kind == KindInt && b.kind == KindInt {
		x, y := a.bigInt(), b.bigInt()
		if y.Sign() >= 0 {
			return powInt(x, y)
		}
		if x.Sign() == 0 {
			return Number{}, fmt.Errorf("%w: 0 cannot be raised to a negative power", ErrDivisionByZero)
		}
	}

	x, y, err := floats(a, b)
	if err != nil {
		return Number{}, err
	}
	if x == 0 && y < 0 {
		return Number{}, fmt.Errorf("%w: 0.0 cannot be raised to a negative power", ErrDivisionByZero)
	}
	if x < 0 && !math.IsInf(x, 0) && y != math.Trunc(y) && !math.IsInf(y, 0) && !math.IsNaN(y) {
		return Number{}, fmt.Errorf("%w: negative number raised to a fractional power", ErrEval)
	}
	r := math.Pow(x, y)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return Number{}, fmt.Errorf("%w: %s ** %s", ErrOverflow, a, b)
	}
	return Float(r), nil
}

func powInt(x, y *big.Int) (Number, error) {
	// 0, 1 and -1 stay small for any exponent.
	if x.CmpAbs(big.NewInt(1)) <= 0 {
		if x.Sign() == 0 {
			if y.Sign() == 0 {
				return IntValue(1), nil
			}
			return IntValue(0), nil
		}
		if x.Sign() < 0 && y.Bit(0) == 1 {
			return IntValue(-1), nil
		}
		return IntValue(1), nil
	}
	if !y.IsInt64() || y.Int64() > maxPowBits || int64(x.BitLen()-1)*y.Int64() > maxPowBits {
		return Number{}, fmt.Errorf("%w: %s ** %s is too large", ErrOverflow, x, y)
	}
	return Int(new(big.Int).Exp(x, y, nil)), nil
}
