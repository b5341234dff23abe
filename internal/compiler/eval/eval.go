// Package eval computes the value of an expression tree.
package eval

import (
	"errors"
	"fmt"
	"math"

	"github.com/arnavsurve/climb/internal/compiler/ast"
)

var (
	ErrUndefined   = errors.New("undefined identifier")
	ErrNotCallable = errors.New("value is not callable")
	ErrNotNumber   = errors.New("function used as a number")
)

// Eval evaluates n in env. Arithmetic follows IEEE 754: division by zero gives
// ±Inf or NaN rather than an error, and % is math.Mod.
func Eval(n ast.Node, env *Env) (Value, error) {
	switch node := n.(type) {
	case *ast.Constant:
		return Number(node.Value), nil

	case *ast.Identifier:
		return env.lookup(node.Name)

	case *ast.Negate:
		v, err := evalNumber(node.Operand, env)
		if err != nil {
			return nil, err
		}
		return -v, nil

	case *ast.Binary:
		l, err := evalNumber(node.Left, env)
		if err != nil {
			return nil, err
		}
		r, err := evalNumber(node.Right, env)
		if err != nil {
			return nil, err
		}
		return Apply(node.Op, l, r), nil

	case *ast.Call:
		callee, err := Eval(node.Callee, env)
		if err != nil {
			return nil, err
		}
		fn, ok := callee.(Func)
		if !ok {
			return nil, fmt.Errorf("%w: %s evaluates to %s", ErrNotCallable, node.Callee, callee)
		}
		arg, err := evalNumber(node.Arg, env)
		if err != nil {
			return nil, err
		}
		return fn(arg)
	}
	return nil, fmt.Errorf("eval: unknown node type %T", n)
}

// EvalNumber evaluates n and requires the result to be a number.
func EvalNumber(n ast.Node, env *Env) (float64, error) {
	v, err := evalNumber(n, env)
	return float64(v), err
}

func evalNumber(n ast.Node, env *Env) (Number, error) {
	v, err := Eval(n, env)
	if err != nil {
		return 0, err
	}
	num, ok := v.(Number)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotNumber, n)
	}
	return num, nil
}

// Apply computes l op r.
func Apply(op ast.BinOp, l, r Number) Number {
	switch op {
	case ast.Add:
		return l + r
	case ast.Sub:
		return l - r
	case ast.Mul:
		return l * r
	case ast.Div:
		return l / r
	case ast.Mod:
		return Number(math.Mod(float64(l), float64(r)))
	}
	panic(fmt.Sprintf("eval: unknown operator %d", int(op)))
}

// IsConstant reports whether n contains no identifiers or calls, so it can be
// evaluated without an environment.
func IsConstant(n ast.Node) bool {
	constant := true
	ast.Walk(n, func(child ast.Node) bool {
		switch child.(type) {
		case *ast.Identifier, *ast.Call:
			constant = false
		}
		return constant
	})
	return constant
}
