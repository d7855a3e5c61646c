package expr

import "fmt"

// Node is a parsed expression tree.
type Node interface {
	node()
	String() string
}

type binOp uint8

const (
	opAdd binOp = iota + 1
	opSub
	opMul
	opDiv
	opFloorDiv
	opMod
	opPow
)

func (op binOp) String() string {
	switch op {
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	case opDiv:
		return "/"
	case opFloorDiv:
		return "//"
	case opMod:
		return "%"
	case opPow:
		return "**"
	default:
		return "?"
	}
}

func binOpFor(k tokenKind) (binOp, bool) {
	switch k {
	case tokPlus:
		return opAdd, true
	case tokMinus:
		return opSub, true
	case tokStar:
		return opMul, true
	case tokSlash:
		return opDiv, true
	case tokSlashSlash:
		return opFloorDiv, true
	case tokPercent:
		return opMod, true
	case tokStarStar:
		return opPow, true
	default:
		return 0, false
	}
}

type nodeNumber struct {
	v Number
}

type nodeUnary struct {
	op byte
	x  Node
}

type nodeBinary struct {
	op    binOp
	left  Node
	right Node
}

func (nodeNumber) node() {}
func (nodeUnary) node()  {}
func (nodeBinary) node() {}

func (n nodeNumber) String() string { return n.v.String() }

func (n nodeUnary) String() string { return fmt.Sprintf("(%c%s)", n.op, n.x) }

func (n nodeBinary) String() string {
	return fmt.Sprintf("(%s %s %s)", n.left, n.op, n.right)
}
