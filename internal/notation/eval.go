package notation

import (
	"math"
	"math/rand"
)

// Source yields a random float in [0, 1). A source may be stateful; the
// evaluator invokes it exactly once per die node, in tree order.
type Source func() float64

// Eval returns an evaluator bound to the provided random source. Binding
// the source once lets one evaluator resolve many trees, and fixing the
// source to a constant makes evaluation fully deterministic.
//
// Die nodes resolve as eval(L) × max(1, round(r × eval(R))) with a single
// sample r per node; a unary die is a binary die with an amount of 1.
// A die therefore never contributes less than its amount, even when the
// source returns 0.
//
// Evaluation is total over any well-formed tree. Arithmetic wraps on
// overflow, matching native int behavior.
func Eval(source Source) func(Expr) int {
	var eval func(Expr) int
	eval = func(expr Expr) int {
		switch e := expr.(type) {
		case NumericLiteral:
			return int(e.Value)
		case Binary:
			switch e.Op {
			case OperatorDie:
				return roll(source, eval(e.Left), eval(e.Right))
			case OperatorPlus:
				return eval(e.Left) + eval(e.Right)
			default:
				return eval(e.Left) - eval(e.Right)
			}
		case Unary:
			switch e.Op {
			case OperatorDie:
				return roll(source, 1, eval(e.Operand))
			case OperatorPlus:
				return eval(e.Operand)
			default:
				return -eval(e.Operand)
			}
		default:
			return 0
		}
	}
	return eval
}

// roll resolves one die node: a single sample scaled by the dice amount,
// with the per-die result clamped to a minimum of 1.
func roll(source Source, amount, sides int) int {
	return int(float64(amount) * math.Max(math.Round(source()*float64(sides)), 1))
}

// Roll parses the notation and evaluates it with the process-wide default
// random source. It is the single entry point for host embeddings.
func Roll(input string) (int, error) {
	expr, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return Eval(rand.Float64)(expr), nil
}
