package notation

import (
	"fmt"

	apperrors "github.com/erikjuhani/droll/internal/errors"
)

// Parser binding powers; a higher value binds tighter. Infix operators
// carry a left/right pair so that equal-precedence chains associate left.
const (
	infixSumLeftBP  uint8 = 1
	infixSumRightBP uint8 = 2
	infixDieLeftBP  uint8 = 3
	infixDieRightBP uint8 = 4
	prefixSignBP    uint8 = 5
	prefixDieBP     uint8 = 7
)

// Parse performs lexical analysis of the input and builds an expression
// tree using operator-precedence (Pratt) parsing.
//
// The grammar (EBNF):
//
//	<expr> ::= <roll-expr>
//	         | <expr> '+' <expr>
//	         | <expr> '-' <expr>
//
//	<roll-expr> ::= <primary>
//	              | <expr> 'd' <expr>
//
//	<primary> ::= <number>
//	            | '+' <primary>
//	            | '-' <primary>
//	            | 'd' <expr>
//
//	<number> ::= <non-zero-digit> { <digit> }
//
// A 'd' token directly followed by another 'd' token is rejected, and a
// trailing operator with no operand is an error. Lexer failures propagate
// unchanged.
func Parse(input string) (Expr, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	return p.parseExpr(0)
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) next() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	token := p.tokens[p.pos]
	p.pos++
	return token, true
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) parseExpr(minBindingPower uint8) (Expr, error) {
	token, ok := p.next()
	if !ok {
		return nil, apperrors.New(apperrors.CodeParseUnexpectedEOF, "unexpected end of input")
	}

	var lhs Expr
	if token.Kind == KindNumber {
		lhs = NumericLiteral{Value: token.Number}
	} else {
		unary, err := p.parseUnaryExpr(token)
		if err != nil {
			return nil, err
		}
		lhs = unary
	}

	for {
		token, ok := p.peek()
		if !ok {
			break
		}

		leftBP, rightBP, err := infixBindingPower(token.Kind)
		if err != nil {
			return nil, err
		}
		if leftBP < minBindingPower {
			break
		}

		p.next()

		op, err := tokenOperator(token.Kind)
		if err != nil {
			return nil, err
		}
		if err := p.expectOperand(op); err != nil {
			return nil, err
		}

		rhs, err := p.parseExpr(rightBP)
		if err != nil {
			return nil, err
		}

		lhs = Binary{Left: lhs, Right: rhs, Op: op}
	}

	return lhs, nil
}

func (p *parser) parseUnaryExpr(opToken Token) (Expr, error) {
	op, err := tokenOperator(opToken.Kind)
	if err != nil {
		return nil, err
	}
	bindingPower, err := prefixBindingPower(opToken.Kind)
	if err != nil {
		return nil, err
	}
	if err := p.expectOperand(op); err != nil {
		return nil, err
	}

	operand, err := p.parseExpr(bindingPower)
	if err != nil {
		return nil, err
	}
	return Unary{Operand: operand, Op: op}, nil
}

// expectOperand checks the token stream right after an operator has been
// consumed: the stream must not be exhausted, and a die operator must not
// be followed by another die token.
func (p *parser) expectOperand(op Operator) error {
	token, ok := p.peek()
	if !ok {
		return apperrors.New(
			apperrors.CodeParseTrailingOperator,
			fmt.Sprintf("unexpected end of input, expecting token after '%s' token", op),
		)
	}
	if op == OperatorDie && token.Kind == KindDie {
		return apperrors.New(
			apperrors.CodeParseDoubleDie,
			"syntax error, found 'd' token directly after 'd' token",
		)
	}
	return nil
}

func tokenOperator(kind Kind) (Operator, error) {
	switch kind {
	case KindPlus:
		return OperatorPlus, nil
	case KindMinus:
		return OperatorMinus, nil
	case KindDie:
		return OperatorDie, nil
	default:
		return 0, apperrors.New(apperrors.CodeParseUnexpectedToken, "syntax error, found unexpected token")
	}
}

func infixBindingPower(kind Kind) (left, right uint8, err error) {
	switch kind {
	case KindPlus, KindMinus:
		return infixSumLeftBP, infixSumRightBP, nil
	case KindDie:
		return infixDieLeftBP, infixDieRightBP, nil
	default:
		return 0, 0, apperrors.New(apperrors.CodeParseUnexpectedToken, "syntax error, found unexpected token")
	}
}

func prefixBindingPower(kind Kind) (uint8, error) {
	switch kind {
	case KindPlus, KindMinus:
		return prefixSignBP, nil
	case KindDie:
		return prefixDieBP, nil
	default:
		return 0, apperrors.New(apperrors.CodeParseUnexpectedToken, "syntax error, found unexpected token")
	}
}
