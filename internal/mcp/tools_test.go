package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/graphovl/internal/actor"
	"github.com/mvp-joe/graphovl/internal/config"
	"github.com/mvp-joe/graphovl/internal/graph"
	"github.com/mvp-joe/graphovl/internal/pipeline"
)

// Test Plan for MCP tools:
// - NewServer wires the runner
// - actor_graph returns pattern, nodes, named edges and summary
// - actor_graph honors string-encoded removal lists and include_dot
// - actor_render writes the description and returns its path
// - Missing actor, bad argument shapes and analysis failures are tool errors
// - Errors that are not user errors fail the call
// - Repeated calls for an unchanged actor reuse the cached analysis

const switchSource = `void EnSw_SetupAction(EnSw* this, EnSwActionFunc actionFunc) {
    this->actionFunc = actionFunc;
}

void EnSw_Init(Actor* thisx, PlayState* play) {
    EnSw_SetupAction(this, EnSw_Off);
}

void EnSw_Off(EnSw* this, PlayState* play) {
    if (EnSw_Pressed(this)) {
        EnSw_SetupAction(this, EnSw_On);
    }
}

void EnSw_On(EnSw* this, PlayState* play) {
    EnSw_SetupAction(this, EnSw_Off);
}

s32 EnSw_Pressed(EnSw* this) {
    return this->timer == 0;
}
`

func newTestRunner(t *testing.T, opts ...pipeline.Option) *pipeline.Runner {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "src", "overlays", "actors", "ovl_En_Sw")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "z_en_sw.c"), []byte(switchSource), 0644))

	cfg := config.Default()
	cfg.Source.Root = root
	cfg.Output.Dir = filepath.Join(root, "graphs")
	cfg.Output.Format = "gv"
	return pipeline.NewRunner(cfg, opts...)
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args interface{}) (*mcp.CallToolResult, string) {
	t.Helper()

	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	})
	require.NoError(t, err, "should not return system error")
	require.NotNil(t, result)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "should be text content")
	return result, textContent.Text
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	runner := newTestRunner(t)
	s := NewServer(runner, "test")
	require.NotNil(t, s.mcp, "server should exist")
	assert.Same(t, runner, s.runner)
}

func TestActorGraphHandler(t *testing.T) {
	t.Parallel()

	handler := createActorGraphHandler(newTestRunner(t))
	result, text := callTool(t, handler, map[string]interface{}{"actor": "En_Sw"})
	require.False(t, result.IsError, text)

	var response ActorGraphResponse
	require.NoError(t, json.Unmarshal([]byte(text), &response))

	assert.Equal(t, "En_Sw", response.Actor)
	assert.Equal(t, "SetupAction", response.Pattern)
	assert.Len(t, response.Nodes, 4)
	assert.Contains(t, response.Edges, EdgeView{From: "EnSw_Init", To: "EnSw_Off", Category: graph.CategoryTransition, FromInit: true})
	assert.Contains(t, response.Edges, EdgeView{From: "EnSw_Off", To: "EnSw_Pressed", Category: graph.CategoryCall})
	assert.Equal(t, []string{"EnSw_SetupAction"}, response.Summary.Loners)
	assert.Empty(t, response.DOT)
}

func TestActorGraphHandler_Options(t *testing.T) {
	t.Parallel()

	handler := createActorGraphHandler(newTestRunner(t))
	result, text := callTool(t, handler, map[string]interface{}{
		"actor":       "En_Sw",
		"remove":      `["EnSw_Pressed"]`,
		"include_dot": "true",
	})
	require.False(t, result.IsError, text)

	var response ActorGraphResponse
	require.NoError(t, json.Unmarshal([]byte(text), &response))

	for _, n := range response.Nodes {
		assert.NotEqual(t, "EnSw_Pressed", n.Label)
	}
	assert.Contains(t, response.DOT, "digraph")
	assert.Contains(t, response.DOT, `label="EnSw_On"`)
}

func TestActorGraphHandler_Errors(t *testing.T) {
	t.Parallel()

	handler := createActorGraphHandler(newTestRunner(t))

	tests := []struct {
		name string
		args interface{}
		want string
	}{
		{"invalid format", "En_Sw", "invalid arguments format"},
		{"missing actor", map[string]interface{}{"loners": true}, "actor parameter is required"},
		{"unknown actor", map[string]interface{}{"actor": "En_Nope"}, "actor source not found"},
		{"bad parser", map[string]interface{}{"actor": "En_Sw", "parser": "clang"}, "invalid parser"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, text := callTool(t, handler, tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestActorRenderHandler(t *testing.T) {
	t.Parallel()

	runner := newTestRunner(t)
	handler := createActorRenderHandler(runner)
	result, text := callTool(t, handler, map[string]interface{}{"actor": "En_Sw"})
	require.False(t, result.IsError, text)

	var response ActorRenderResponse
	require.NoError(t, json.Unmarshal([]byte(text), &response))

	want := filepath.Join(runner.Config().Output.Dir, "En_Sw.gv")
	assert.Equal(t, want, response.DotPath)
	assert.Equal(t, want, response.ImagePath)
	assert.FileExists(t, want)
	assert.Equal(t, 4, response.Summary.Nodes)
}

func TestActorRenderHandler_InvalidFormat(t *testing.T) {
	t.Parallel()

	handler := createActorRenderHandler(newTestRunner(t))
	result, text := callTool(t, handler, map[string]interface{}{"actor": "En_Sw", "format": "docx"})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "invalid output format")
}

func TestIsUserError(t *testing.T) {
	t.Parallel()

	assert.True(t, isUserError(fmt.Errorf("z_en_sw.c: %w", actor.ErrNoActionStructure)))
	assert.True(t, isUserError(config.ErrInvalidFormat))
	assert.False(t, isUserError(errors.New("disk full")))
	assert.False(t, isUserError(nil))
}

func TestActorGraphHandler_ReusesCachedAnalysis(t *testing.T) {
	t.Parallel()

	cache, err := pipeline.NewContextCache(pipeline.DefaultContextCacheSize)
	require.NoError(t, err)
	defer cache.Close()

	handler := createActorGraphHandler(newTestRunner(t, pipeline.WithContextCache(cache)))

	result, text := callTool(t, handler, map[string]interface{}{"actor": "En_Sw"})
	require.False(t, result.IsError, text)
	var full ActorGraphResponse
	require.NoError(t, json.Unmarshal([]byte(text), &full))

	result, text = callTool(t, handler, map[string]interface{}{"actor": "En_Sw", "remove": []interface{}{"EnSw_Pressed"}})
	require.False(t, result.IsError, text)
	var trimmed ActorGraphResponse
	require.NoError(t, json.Unmarshal([]byte(text), &trimmed))

	assert.Equal(t, int64(1), cache.Misses())
	assert.Equal(t, int64(1), cache.Hits())
	assert.Less(t, len(trimmed.Edges), len(full.Edges))
	for _, e := range trimmed.Edges {
		assert.NotEqual(t, "EnSw_Pressed", e.To)
	}
}
