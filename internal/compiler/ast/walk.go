package ast

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/climb/internal/compiler/token"
)

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch node := n.(type) {
	case *Negate:
		Walk(node.Operand, fn)
	case *Binary:
		Walk(node.Left, fn)
		Walk(node.Right, fn)
	case *Call:
		Walk(node.Callee, fn)
		Walk(node.Arg, fn)
	}
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch node := n.(type) {
	case nil:
		return nil
	case *Constant:
		return &Constant{Value: node.Value}
	case *Identifier:
		return &Identifier{Name: node.Name}
	case *Negate:
		return &Negate{Operand: Clone(node.Operand)}
	case *Binary:
		return &Binary{Op: node.Op, Left: Clone(node.Left), Right: Clone(node.Right)}
	case *Call:
		return &Call{Callee: Clone(node.Callee), Arg: Clone(node.Arg)}
	default:
		panic(fmt.Sprintf("ast.Clone: unknown node type %T", n))
	}
}

// Equal reports whether a and b are structurally identical.
// Constants compare with ==, so NaN never equals NaN.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case *Constant:
		y, ok := b.(*Constant)
		return ok && x.Value == y.Value
	case *Identifier:
		y, ok := b.(*Identifier)
		return ok && x.Name == y.Name
	case *Negate:
		y, ok := b.(*Negate)
		return ok && Equal(x.Operand, y.Operand)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Call:
		y, ok := b.(*Call)
		return ok && Equal(x.Callee, y.Callee) && Equal(x.Arg, y.Arg)
	}
	return false
}

// Sexpr renders n as an S-expression, e.g. (+ a (* b c)).
func Sexpr(n Node) string {
	var sb strings.Builder
	writeSexpr(&sb, n)
	return sb.String()
}

func writeSexpr(sb *strings.Builder, n Node) {
	switch node := n.(type) {
	case *Constant:
		sb.WriteString(token.FormatNumber(node.Value))
	case *Identifier:
		sb.WriteString(node.Name)
	case *Negate:
		sb.WriteString("(neg ")
		writeSexpr(sb, node.Operand)
		sb.WriteString(")")
	case *Binary:
		sb.WriteString("(" + node.Op.String() + " ")
		writeSexpr(sb, node.Left)
		sb.WriteString(" ")
		writeSexpr(sb, node.Right)
		sb.WriteString(")")
	case *Call:
		sb.WriteString("(call ")
		writeSexpr(sb, node.Callee)
		sb.WriteString(" ")
		writeSexpr(sb, node.Arg)
		sb.WriteString(")")
	default:
		fmt.Fprintf(sb, "<%T>", n)
	}
}

// Depth returns the height of the tree rooted at n; a leaf has depth 1.
func Depth(n Node) int {
	switch node := n.(type) {
	case *Negate:
		return 1 + Depth(node.Operand)
	case *Binary:
		return 1 + max(Depth(node.Left), Depth(node.Right))
	case *Call:
		return 1 + max(Depth(node.Callee), Depth(node.Arg))
	case nil:
		return 0
	}
	return 1
}
