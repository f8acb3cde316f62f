package mcp

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/erikjuhani/droll/internal/errors"
	"github.com/erikjuhani/droll/internal/notation"
	"github.com/erikjuhani/droll/internal/roller"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RollInput represents the MCP tool input for a dice roll.
type RollInput struct {
	Notation string `json:"notation"`
	Seed     *int64 `json:"seed,omitempty"`
}

// RollResult represents the MCP tool output for a dice roll.
type RollResult struct {
	Notation string `json:"notation"`
	Rendered string `json:"rendered"`
	Result   int    `json:"result"`
	Seed     *int64 `json:"seed,omitempty"`
}

// ParseNotationInput represents the MCP tool input for a notation parse.
type ParseNotationInput struct {
	Notation string `json:"notation"`
}

// ParseNotationResult represents the MCP tool output for a notation parse.
type ParseNotationResult struct {
	Notation string `json:"notation"`
	Rendered string `json:"rendered"`
}

// ExplainRollInput represents the MCP tool input for a deterministic
// roll walkthrough.
type ExplainRollInput struct {
	Notation string  `json:"notation"`
	Sample   float64 `json:"sample"`
}

// ExplainRollResult represents the MCP tool output for a deterministic
// roll walkthrough.
type ExplainRollResult struct {
	Notation string  `json:"notation"`
	Rendered string  `json:"rendered"`
	Sample   float64 `json:"sample"`
	Result   int     `json:"result"`
	Formula  string  `json:"formula"`
}

func rollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll",
		Description: "Rolls dice notation such as 3d6+10 and returns the total",
	}
}

func parseNotationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "parse_notation",
		Description: "Parses dice notation and returns its expression tree",
	}
}

func explainRollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "explain_roll",
		Description: "Evaluates dice notation with a fixed random sample for a reproducible walkthrough",
	}
}

func parseInput(input string) (notation.Expr, string, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return nil, "", apperrors.New(apperrors.CodeRollNotationEmpty, "dice notation is required")
	}
	expr, err := notation.Parse(text)
	if err != nil {
		return nil, "", err
	}
	return expr, text, nil
}

// RollHandler executes a dice roll with the server's random source, or a
// seeded source when the input carries a seed.
func RollHandler(source notation.Source) mcp.ToolHandlerFor[RollInput, RollResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RollInput) (*mcp.CallToolResult, RollResult, error) {
		expr, text, err := parseInput(input.Notation)
		if err != nil {
			return nil, RollResult{}, err
		}

		rollSource := source
		if input.Seed != nil {
			rollSource = roller.Seeded(*input.Seed)
		}

		return nil, RollResult{
			Notation: text,
			Rendered: expr.String(),
			Result:   notation.Eval(rollSource)(expr),
			Seed:     input.Seed,
		}, nil
	}
}

// ParseNotationHandler parses dice notation without rolling it.
func ParseNotationHandler() mcp.ToolHandlerFor[ParseNotationInput, ParseNotationResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ParseNotationInput) (*mcp.CallToolResult, ParseNotationResult, error) {
		expr, text, err := parseInput(input.Notation)
		if err != nil {
			return nil, ParseNotationResult{}, err
		}

		return nil, ParseNotationResult{
			Notation: text,
			Rendered: expr.String(),
		}, nil
	}
}

// ExplainRollHandler evaluates dice notation with a caller-provided
// sample so the result is reproducible.
func ExplainRollHandler() mcp.ToolHandlerFor[ExplainRollInput, ExplainRollResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ExplainRollInput) (*mcp.CallToolResult, ExplainRollResult, error) {
		if input.Sample < 0 || input.Sample > 1 {
			return nil, ExplainRollResult{}, apperrors.New(apperrors.CodeRollSampleRange, "sample must be between 0 and 1")
		}

		expr, text, err := parseInput(input.Notation)
		if err != nil {
			return nil, ExplainRollResult{}, err
		}

		return nil, ExplainRollResult{
			Notation: text,
			Rendered: expr.String(),
			Sample:   input.Sample,
			Result:   notation.Eval(roller.Fixed(input.Sample))(expr),
			Formula:  fmt.Sprintf("each die resolves to amount * max(1, round(%g * sides))", input.Sample),
		}, nil
	}
}
