package notation

import (
	"fmt"
	"strconv"
)

// Operator enumerates the expression-tree operators.
type Operator uint8

const (
	// OperatorDie represents the die operator.
	OperatorDie Operator = iota
	// OperatorPlus represents the plus operator.
	OperatorPlus
	// OperatorMinus represents the minus operator.
	OperatorMinus
)

// String renders the operator in its dice-notation form.
func (o Operator) String() string {
	switch o {
	case OperatorDie:
		return "d"
	case OperatorPlus:
		return "+"
	case OperatorMinus:
		return "-"
	default:
		return "?"
	}
}

// Expr is a node in the expression tree. The tree is immutable once the
// parser produces it; String renders the fully-parenthesized prefix form
// used for diagnostics, e.g. "3d6+10" renders as "(+ (d 3 6) 10)".
type Expr interface {
	fmt.Stringer
	exprNode()
}

// NumericLiteral is a leaf holding a non-negative integer.
type NumericLiteral struct {
	Value uint
}

func (NumericLiteral) exprNode() {}

func (n NumericLiteral) String() string {
	return strconv.FormatUint(uint64(n.Value), 10)
}

// Unary represents prefix application: "-X", "+X", or "dX" meaning
// "roll 1 die with X sides".
type Unary struct {
	Operand Expr
	Op      Operator
}

func (Unary) exprNode() {}

func (u Unary) String() string {
	return fmt.Sprintf("(%s %s)", u.Op, u.Operand)
}

// Binary represents "L op R"; with the die operator it reads
// "roll L dice with R sides".
type Binary struct {
	Left  Expr
	Right Expr
	Op    Operator
}

func (Binary) exprNode() {}

func (b Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op, b.Left, b.Right)
}
