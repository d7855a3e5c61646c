package expr

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// MaxIntDigits bounds the decimal length of an integer result.
const MaxIntDigits = 4300

type NumberKind uint8

const (
	KindInt NumberKind = iota
	KindFloat
)

func (k NumberKind) String() string {
	if k == KindFloat {
		return "float"
	}
	return "int"
}

// Number is either an exact integer or a float64. The zero value is the
// integer 0.
type Number struct {
	kind NumberKind
	i    *big.Int
	f    float64
}

// Int wraps v; the caller must not modify v afterwards.
func Int(v *big.Int) Number { return Number{kind: KindInt, i: v} }

func IntValue(v int64) Number { return Int(big.NewInt(v)) }

func Float(f float64) Number { return Number{kind: KindFloat, f: f} }

func (n Number) Kind() NumberKind { return n.kind }

func (n Number) IsInt() bool { return n.kind == KindInt }

func (n Number) bigInt() *big.Int {
	if n.i == nil {
		return new(big.Int)
	}
	return n.i
}

// Float64 converts the number, failing with ErrOverflow for integers beyond
// the float64 range.
func (n Number) Float64() (float64, error) {
	if n.kind == KindFloat {
		return n.f, nil
	}
	f, _ := new(big.Float).SetInt(n.bigInt()).Float64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: integer too large to convert to float", ErrOverflow)
	}
	return f, nil
}

func (n Number) isZero() bool {
	if n.kind == KindFloat {
		return n.f == 0
	}
	return n.bigInt().Sign() == 0
}

func (n Number) String() string {
	if n.kind == KindInt {
		return n.bigInt().String()
	}
	return formatFloat(n.f)
}

// formatFloat renders the shortest round-trip form, keeping a ".0" on
// integral values and switching to exponent form outside 1e-4 <= |f| < 1e16.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sign := ""
	if math.Signbit(f) {
		sign = "-"
		f = -f
	}

	// d.ddde±XX
	e := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(e, "e")
	digits := strings.Replace(mant, ".", "", 1)
	exp, _ := strconv.Atoi(expPart)
	decpt := exp + 1

	if decpt <= -4 || decpt > 16 {
		out := digits[:1]
		if len(digits) > 1 {
			out += "." + digits[1:]
		}
		es := "+"
		if exp < 0 {
			es = "-"
			exp = -exp
		}
		return fmt.Sprintf("%s%se%s%02d", sign, out, es, exp)
	}

	switch {
	case decpt <= 0:
		return sign + "0." + strings.Repeat("0", -decpt) + digits
	case decpt >= len(digits):
		return sign + digits + strings.Repeat("0", decpt-len(digits)) + ".0"
	default:
		return sign + digits[:decpt] + "." + digits[decpt:]
	}
}

func checkIntSize(n Number) error {
	if n.kind != KindInt {
		return nil
	}
	// Cheap bound first: bits * log10(2) underestimates digits by at most one.
	bits := n.bigInt().BitLen()
	if bits < MaxIntDigits*3 {
		return nil
	}
	s := n.bigInt().String()
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if len(s) > MaxIntDigits {
		return fmt.Errorf("%w: integer result exceeds %d digits", ErrOverflow, MaxIntDigits)
	}
	return nil
}
