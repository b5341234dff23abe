package eval

import (
	"fmt"
	"math"

	"github.com/arnavsurve/climb/internal/compiler/token"
)

// Value is the result of evaluating an expression: a Number or a Func.
type Value interface {
	String() string
	value()
}

type Number float64

func (n Number) value()         {}
func (n Number) String() string { return token.FormatNumber(float64(n)) }

// Func is a one-argument function. Curried builtins return another Func, which
// is what makes pow(2)(10) evaluate.
type Func func(arg Number) (Value, error)

func (f Func) value()         {}
func (f Func) String() string { return "<func>" }

func unary(fn func(float64) float64) Func {
	return func(arg Number) (Value, error) {
		return Number(fn(float64(arg))), nil
	}
}

func curried(fn func(a, b float64) float64) Func {
	return func(a Number) (Value, error) {
		return Func(func(b Number) (Value, error) {
			return Number(fn(float64(a), float64(b))), nil
		}), nil
	}
}

// Env resolves identifiers. Vars shadow Funcs.
type Env struct {
	Vars  map[string]Number
	Funcs map[string]Func
}

// NewEnv returns an environment holding the builtin functions and the
// constants pi and e.
func NewEnv() *Env {
	return &Env{
		Vars: map[string]Number{
			"pi": Number(math.Pi),
			"e":  Number(math.E),
		},
		Funcs: map[string]Func{
			"sqrt":  unary(math.Sqrt),
			"abs":   unary(math.Abs),
			"sin":   unary(math.Sin),
			"cos":   unary(math.Cos),
			"tan":   unary(math.Tan),
			"ln":    unary(math.Log),
			"log":   unary(math.Log10),
			"exp":   unary(math.Exp),
			"floor": unary(math.Floor),
			"ceil":  unary(math.Ceil),
			"round": unary(math.Round),
			"pow":   curried(math.Pow),
			"min":   curried(math.Min),
			"max":   curried(math.Max),
		},
	}
}

// Set binds a variable, replacing any previous binding.
func (e *Env) Set(name string, val float64) {
	if e.Vars == nil {
		e.Vars = make(map[string]Number)
	}
	e.Vars[name] = Number(val)
}

func (e *Env) lookup(name string) (Value, error) {
	if e != nil {
		if v, ok := e.Vars[name]; ok {
			return v, nil
		}
		if f, ok := e.Funcs[name]; ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: '%s'", ErrUndefined, name)
}
