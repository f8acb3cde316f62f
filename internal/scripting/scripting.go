// Package scripting exposes dice rolls to Lua scripts.
package scripting

import (
	"fmt"

	lua "github.com/Shopify/go-lua"
	"github.com/erikjuhani/droll/internal/notation"
)

// Register installs the dice globals into the Lua state:
//
//	roll("3d6+10")   -- rolls notation, returns the total
//	parse("3d6+10")  -- returns the rendered expression tree
//
// Rolls draw from the given random source. Invalid notation raises a
// Lua error carrying the parse failure message.
func Register(state *lua.State, source notation.Source) {
	eval := notation.Eval(source)

	state.Register("roll", func(state *lua.State) int {
		input := lua.CheckString(state, 1)
		expr, err := notation.Parse(input)
		if err != nil {
			lua.Errorf(state, "roll: %s", err.Error())
			return 0
		}
		state.PushInteger(eval(expr))
		return 1
	})

	state.Register("parse", func(state *lua.State) int {
		input := lua.CheckString(state, 1)
		expr, err := notation.Parse(input)
		if err != nil {
			lua.Errorf(state, "parse: %s", err.Error())
			return 0
		}
		state.PushString(expr.String())
		return 1
	})
}

// NewState creates a Lua state with the standard libraries and the dice
// globals loaded.
func NewState(source notation.Source) *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	Register(state, source)
	return state
}

// RunScript executes a Lua script against a fresh state. The script's
// first return value, when present, is returned as a string.
func RunScript(source notation.Source, script string) (string, error) {
	state := NewState(source)

	if err := lua.DoString(state, script); err != nil {
		return "", fmt.Errorf("run script: %w", err)
	}

	if state.Top() == 0 {
		return "", nil
	}
	value, ok := state.ToString(state.Top())
	if !ok {
		return "", fmt.Errorf("script returned a non-string value")
	}
	return value, nil
}
