package ast

import (
	"bytes"

	"github.com/arnavsurve/climb/internal/compiler/token"
)

// --- Interfaces ---

// Node is an expression tree node. The set of node types is closed: only the
// types in this file implement it.
type Node interface {
	// String renders the node fully parenthesized. The result lexes and
	// parses back to a tree that evaluates identically.
	String() string
	expressionNode()
}

// BinOp identifies a binary operator.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
)

func (op BinOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	}
	return "?"
}

// --- Expressions ---

// Constant -> 3.5
type Constant struct {
	Value float64
}

func (c *Constant) expressionNode() {}
func (c *Constant) String() string  { return token.FormatNumber(c.Value) }

// Identifier -> x
type Identifier struct {
	Name string
}

func (i *Identifier) expressionNode() {}
func (i *Identifier) String() string  { return i.Name }

// Negate -> -x
type Negate struct {
	Operand Node
}

func (n *Negate) expressionNode() {}
func (n *Negate) String() string {
	return "-(" + n.Operand.String() + ")"
}

// Binary -> (left op right)
type Binary struct {
	Op    BinOp
	Left  Node
	Right Node
}

func (b *Binary) expressionNode() {}
func (b *Binary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Op.String() + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

// Call -> callee(arg). Calls take exactly one argument; f(x)(y) is a Call
// whose Callee is another Call.
type Call struct {
	Callee Node
	Arg    Node
}

func (c *Call) expressionNode() {}
func (c *Call) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(c.Callee.String())
	out.WriteString("(")
	out.WriteString(c.Arg.String())
	out.WriteString("))")
	return out.String()
}

// --- Constructors ---

func Num(val float64) Node {
	return &Constant{Value: val}
}

func Ident(name string) Node {
	return &Identifier{Name: name}
}

func Neg(operand Node) Node {
	return &Negate{Operand: operand}
}

func Bin(left Node, op BinOp, right Node) Node {
	return &Binary{Op: op, Left: left, Right: right}
}

func CallOf(callee, arg Node) Node {
	return &Call{Callee: callee, Arg: arg}
}

func AddOf(left, right Node) Node { return Bin(left, Add, right) }
func SubOf(left, right Node) Node { return Bin(left, Sub, right) }
func MulOf(left, right Node) Node { return Bin(left, Mul, right) }
func DivOf(left, right Node) Node { return Bin(left, Div, right) }
func ModOf(left, right Node) Node { return Bin(left, Mod, right) }
