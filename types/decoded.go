package types

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// DecodedCall is the structured form of a function call: its name and its ordered arguments.
type DecodedCall struct {
	FunctionName string
	Selector     Selector
	Inputs       abi.Arguments
	Args         []any
}

// Arg returns the value of the named argument.
func (c *DecodedCall) Arg(name string) (any, bool) {
	return argByName(c.Inputs, c.Args, name)
}

// String returns a human readable representation of the decoded call.
//
// The first return value is the function name.
// The second return value is a JSON object of the named arguments.
func (c *DecodedCall) String() (string, string, error) {
	s, err := argsJSON(c.Inputs, c.Args)

	return c.FunctionName, s, err
}

// DecodedEvent is the structured form of an event log.
//
// Indexed arguments of dynamic types cannot be recovered from a log and surface as the
// Keccak-256 hash stored in their topic.
type DecodedEvent struct {
	EventName string
	Inputs    abi.Arguments
	Args      []any
}

// Arg returns the value of the named argument.
func (e *DecodedEvent) Arg(name string) (any, bool) {
	return argByName(e.Inputs, e.Args, name)
}

func argByName(inputs abi.Arguments, args []any, name string) (any, bool) {
	for i, input := range inputs {
		if input.Name == name && i < len(args) {
			return args[i], true
		}
	}

	return nil, false
}

func argsJSON(inputs abi.Arguments, args []any) (string, error) {
	inputMap := make(map[string]any, len(inputs))
	for i, input := range inputs {
		if i < len(args) {
			inputMap[input.Name] = args[i]
		}
	}

	byteMap, err := json.MarshalIndent(inputMap, "", "  ")
	if err != nil {
		return "", err
	}

	return string(byteMap), nil
}
