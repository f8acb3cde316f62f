package notation

import (
	"fmt"
	"strconv"

	apperrors "github.com/erikjuhani/droll/internal/errors"
)

// Kind identifies the type of a lexed token.
type Kind uint8

const (
	// KindNumber represents a numeric value.
	KindNumber Kind = iota
	// KindPlus represents the addition operator.
	KindPlus
	// KindMinus represents the subtraction operator.
	KindMinus
	// KindDie represents a die token in dice notation.
	KindDie
)

// Token is a lexical unit of dice notation. Number is set only for
// KindNumber tokens.
type Token struct {
	Kind   Kind
	Number uint
}

// Lex performs lexical analysis of the input, transforming it into a
// sequence of tokens.
//
// The accepted alphabet is digits, '+', '-', and 'd'. Number tokens start
// with a non-zero digit and greedily consume the following digit run.
// Whitespace is not part of the grammar and fails like any other
// unexpected character. Lex returns the full token sequence only when the
// entire input is consumed without error.
func Lex(input string) ([]Token, error) {
	var tokens []Token

	runes := []rune(input)
	for i := 0; i < len(runes); {
		c := runes[i]
		switch {
		case c >= '1' && c <= '9':
			start := i
			for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
				i++
			}
			token, err := numberToken(string(runes[start:i]))
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
		case c == '+':
			tokens = append(tokens, Token{Kind: KindPlus})
			i++
		case c == '-':
			tokens = append(tokens, Token{Kind: KindMinus})
			i++
		case c == 'd':
			tokens = append(tokens, Token{Kind: KindDie})
			i++
		default:
			return nil, apperrors.WithMetadata(
				apperrors.CodeLexUnexpectedCharacter,
				fmt.Sprintf("unexpected character '%c'", c),
				map[string]string{"character": string(c)},
			)
		}
	}

	return tokens, nil
}

// numberToken converts a digit run into a number token. The run must fit
// the platform's native unsigned-integer width.
func numberToken(digits string) (Token, error) {
	number, err := strconv.ParseUint(digits, 10, strconv.IntSize)
	if err != nil {
		return Token{}, apperrors.Wrap(
			apperrors.CodeLexNumberOverflow,
			fmt.Sprintf("failed to parse number token: %v", err),
			err,
		)
	}
	return Token{Kind: KindNumber, Number: uint(number)}, nil
}
