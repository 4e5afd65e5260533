package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvp-joe/graphovl/internal/actor"
	"github.com/mvp-joe/graphovl/internal/config"
	"github.com/mvp-joe/graphovl/internal/render"
)

// userErrors are shown to the client as tool errors instead of failing
// the call.
var userErrors = []error{
	actor.ErrSourceNotFound,
	actor.ErrNoActionStructure,
	actor.ErrMalformedActionArray,
	config.ErrInvalidFormat,
	config.ErrInvalidParser,
	render.ErrRenderFailed,
}

func isUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// marshalToolResponse marshals a response to JSON and returns it as text.
func marshalToolResponse(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
