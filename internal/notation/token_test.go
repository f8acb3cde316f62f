package notation

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/erikjuhani/droll/internal/errors"
)

func TestLex(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{
			input: "+-1234567890d",
			want: []Token{
				{Kind: KindPlus},
				{Kind: KindMinus},
				{Kind: KindNumber, Number: 1234567890},
				{Kind: KindDie},
			},
		},
		{
			input: "d20",
			want:  []Token{{Kind: KindDie}, {Kind: KindNumber, Number: 20}},
		},
		{
			input: "2d20",
			want: []Token{
				{Kind: KindNumber, Number: 2},
				{Kind: KindDie},
				{Kind: KindNumber, Number: 20},
			},
		},
		{
			input: "2d20+1d8",
			want: []Token{
				{Kind: KindNumber, Number: 2},
				{Kind: KindDie},
				{Kind: KindNumber, Number: 20},
				{Kind: KindPlus},
				{Kind: KindNumber, Number: 1},
				{Kind: KindDie},
				{Kind: KindNumber, Number: 8},
			},
		},
		{
			input: "d20-10",
			want: []Token{
				{Kind: KindDie},
				{Kind: KindNumber, Number: 20},
				{Kind: KindMinus},
				{Kind: KindNumber, Number: 10},
			},
		},
		{
			input: "10",
			want:  []Token{{Kind: KindNumber, Number: 10}},
		},
	}

	for _, tt := range tests {
		got, err := Lex(tt.input)
		if err != nil {
			t.Fatalf("Lex(%q): %v", tt.input, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Lex(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLexEmptyInput(t *testing.T) {
	tokens, err := Lex("")
	if err != nil {
		t.Fatalf("Lex(\"\"): %v", err)
	}
	if len(tokens) != 0 {
		t.Fatalf("expected no tokens, got %v", tokens)
	}
}

func TestLexUnexpectedCharacter(t *testing.T) {
	tests := []struct {
		input string
		char  string
	}{
		{input: "x", char: "x"},
		{input: "1d6 + 2", char: " "},
		{input: "3*4", char: "*"},
		{input: "0d6", char: "0"},
		{input: "1d%", char: "%"},
	}

	for _, tt := range tests {
		_, err := Lex(tt.input)
		if err == nil {
			t.Fatalf("Lex(%q): expected error", tt.input)
		}
		if got := apperrors.CodeOf(err); got != apperrors.CodeLexUnexpectedCharacter {
			t.Fatalf("Lex(%q): expected code %s, got %s", tt.input, apperrors.CodeLexUnexpectedCharacter, got)
		}
		want := "unexpected character '" + tt.char + "'"
		if err.Error() != want {
			t.Fatalf("Lex(%q): expected %q, got %q", tt.input, want, err.Error())
		}
	}
}

func TestLexNumberOverflow(t *testing.T) {
	input := strings.Repeat("9", 40)
	_, err := Lex(input)
	if err == nil {
		t.Fatal("expected overflow error")
	}

	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %T", err)
	}
	if domainErr.Code != apperrors.CodeLexNumberOverflow {
		t.Fatalf("expected code %s, got %s", apperrors.CodeLexNumberOverflow, domainErr.Code)
	}
	if !strings.HasPrefix(err.Error(), "failed to parse number token: ") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
