package expr

import (
	"fmt"
	"strings"
)

type parser struct {
	l   lexer
	cur token
}

// Parse builds the expression tree for src.
func Parse(src string) (Node, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	p := &parser{l: lexer{s: src}}
	if err := p.next(); err != nil {
		return nil, err
	}
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, p.unexpected()
	}
	return n, nil
}

func (p *parser) next() error {
	p.cur = p.l.next()
	if p.cur.kind == tokIllegal {
		if p.cur.err != nil {
			return p.cur.err
		}
		return fmt.Errorf("%w: invalid character %q at %d", ErrSyntax, p.cur.text, p.cur.pos)
	}
	return nil
}

func (p *parser) unexpected() error {
	if p.cur.kind == tokEOF {
		return fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	return fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, p.cur.text, p.cur.pos)
}

func (p *parser) parseSum() (Node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op, _ := binOpFor(p.cur.kind)
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.kind {
		case tokStar, tokSlash, tokSlashSlash, tokPercent:
		default:
			return left, nil
		}
		op, _ := binOpFor(p.cur.kind)
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
}

// parseUnary sits above ** so that -2**2 is -(2**2).
func (p *parser) parseUnary() (Node, error) {
	if p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		if err := p.next(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return nodeUnary{op: op, x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind == tokStarStar {
		if err := p.next(); err != nil {
			return nil, err
		}
		// Right-associative, and the exponent may carry its own sign.
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return nodeBinary{op: opPow, left: left, right: right}, nil
	}
	return left, nil
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		if err := p.next(); err != nil {
			return nil, err
		}
		return nodeNumber{v: v}, nil
	case tokLParen:
		open := p.cur.pos
		if err := p.next(); err != nil {
			return nil, err
		}
		ex, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			if p.cur.kind == tokEOF {
				return nil, fmt.Errorf("%w: '(' at %d was never closed", ErrSyntax, open)
			}
			return nil, fmt.Errorf("%w: expected ')' at %d", ErrSyntax, p.cur.pos)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		return ex, nil
	default:
		return nil, p.unexpected()
	}
}
