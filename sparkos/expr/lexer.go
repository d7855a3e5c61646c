package expr

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokStarStar
	tokSlash
	tokSlashSlash
	tokPercent
	tokLParen
	tokRParen
	tokIllegal
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokPlus:
		return "+"
	case tokMinus:
		return "-"
	case tokStar:
		return "*"
	case tokStarStar:
		return "**"
	case tokSlash:
		return "/"
	case tokSlashSlash:
		return "//"
	case tokPercent:
		return "%"
	case tokLParen:
		return "("
	case tokRParen:
		return ")"
	default:
		return "illegal"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
	num  Number
	err  error
}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && unicode.IsSpace(rune(l.s[l.i])) {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	two := func(single, double tokenKind, ch byte) token {
		l.i++
		if l.i < len(l.s) && l.s[l.i] == ch {
			l.i++
			return token{kind: double, text: l.s[start:l.i], pos: start}
		}
		return token{kind: single, text: l.s[start:l.i], pos: start}
	}

	switch l.s[l.i] {
	case '+':
		l.i++
		return token{kind: tokPlus, text: "+", pos: start}
	case '-':
		l.i++
		return token{kind: tokMinus, text: "-", pos: start}
	case '*':
		return two(tokStar, tokStarStar, '*')
	case '/':
		return two(tokSlash, tokSlashSlash, '/')
	case '%':
		l.i++
		return token{kind: tokPercent, text: "%", pos: start}
	case '(':
		l.i++
		return token{kind: tokLParen, text: "(", pos: start}
	case ')':
		l.i++
		return token{kind: tokRParen, text: ")", pos: start}
	}

	ch := l.s[l.i]
	if ch == '.' || isDigit(ch) {
		l.i = scanNumber(l.s, l.i)
		if l.i == start {
			l.i++
			return token{kind: tokIllegal, text: l.s[start:l.i], pos: start}
		}
		txt := l.s[start:l.i]
		n, err := parseNumber(txt)
		if err != nil {
			return token{kind: tokIllegal, text: txt, pos: start, err: err}
		}
		return token{kind: tokNumber, text: txt, pos: start, num: n}
	}

	_, sz := utf8.DecodeRuneInString(l.s[l.i:])
	l.i += sz
	return token{kind: tokIllegal, text: l.s[start:l.i], pos: start}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanNumber returns the end of the numeric literal starting at i, or i when
// there is none (a lone '.').
func scanNumber(s string, i int) int {
	start := i
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return start
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func parseNumber(txt string) (Number, error) {
	isFloat := false
	for i := 0; i < len(txt); i++ {
		switch txt[i] {
		case '.', 'e', 'E':
			isFloat = true
		}
	}

	if !isFloat {
		if len(txt) > 1 && txt[0] == '0' {
			for i := 1; i < len(txt); i++ {
				if txt[i] != '0' {
					return Number{}, fmt.Errorf("%w: leading zeros in integer literal %q", ErrSyntax, txt)
				}
			}
		}
		v, ok := new(big.Int).SetString(txt, 10)
		if !ok {
			return Number{}, fmt.Errorf("%w: invalid integer literal %q", ErrSyntax, txt)
		}
		return Int(v), nil
	}

	f, err := strconv.ParseFloat(txt, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Number{}, fmt.Errorf("%w: invalid decimal literal %q", ErrSyntax, txt)
	}
	return Float(f), nil
}
