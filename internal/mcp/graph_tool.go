package mcp

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/graphovl/internal/graph"
	mcputils "github.com/mvp-joe/graphovl/internal/mcp-utils"
	"github.com/mvp-joe/graphovl/internal/pipeline"
	"github.com/mvp-joe/graphovl/internal/render"
)

// ActorGraphRequest holds the actor_graph tool arguments.
type ActorGraphRequest struct {
	Actor      string   `json:"actor"`
	Remove     []string `json:"remove,omitempty"`
	Loners     bool     `json:"loners,omitempty"`
	Style      string   `json:"style,omitempty"`
	Parser     string   `json:"parser,omitempty"`
	IncludeDOT bool     `json:"include_dot,omitempty"`
}

// EdgeView is an edge with its endpoints resolved to function names.
type EdgeView struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Category graph.Category `json:"category"`
	FromInit bool           `json:"from_init,omitempty"`
}

// ActorGraphResponse is the actor_graph tool result.
type ActorGraphResponse struct {
	Actor   string         `json:"actor"`
	Source  string         `json:"source"`
	Pattern string         `json:"pattern"`
	Nodes   []graph.Node   `json:"nodes"`
	Edges   []EdgeView     `json:"edges"`
	Summary *graph.Summary `json:"summary"`
	DOT     string         `json:"dot,omitempty"`
}

// AddActorGraphTool registers the actor_graph tool with an MCP server.
func AddActorGraphTool(s *server.MCPServer, runner *pipeline.Runner) {
	tool := mcp.NewTool(
		"actor_graph",
		mcp.WithDescription("Build the action-function graph of a decompiled actor without writing files. Returns the dispatch pattern, nodes, labelled edges (transition, call, callback, indirectMember) and a reachability summary."),
		mcp.WithString("actor",
			mcp.Required(),
			mcp.Description("Actor name such as 'En_Door', or a path to an actor .c file")),
		mcp.WithArray("remove",
			mcp.Description("Function names or glob patterns to exclude (e.g., ['EnDoor_Draw', 'func_80*'])")),
		mcp.WithBoolean("loners",
			mcp.Description("Include functions with no edges (default: false)")),
		mcp.WithString("style",
			mcp.Description("Style profile name used for DOT colors")),
		mcp.WithString("parser",
			mcp.Description("Function discovery parser: regex or treesitter")),
		mcp.WithBoolean("include_dot",
			mcp.Description("Include the Graphviz description in the result (default: false)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createActorGraphHandler(runner))
}

func createActorGraphHandler(runner *pipeline.Runner) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.GetRawArguments().(map[string]interface{}); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req ActorGraphRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if req.Actor == "" {
			return mcp.NewToolResultError("actor parameter is required"), nil
		}

		result, err := runner.Analyze(pipeline.Request{
			Actor:  req.Actor,
			Remove: req.Remove,
			Loners: req.Loners,
			Style:  req.Style,
			Parser: req.Parser,
		})
		if err != nil {
			if isUserError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, err
		}

		response := &ActorGraphResponse{
			Actor:   result.Actor,
			Source:  result.SourcePath,
			Pattern: result.Pattern.Kind.String(),
			Nodes:   result.Model.Nodes(),
			Edges:   edgeViews(result.Model),
			Summary: result.Summary,
		}

		if req.IncludeDOT {
			var buf bytes.Buffer
			if err := render.WriteDOT(&buf, result.Model, result.Colors); err != nil {
				return nil, err
			}
			response.DOT = buf.String()
		}

		return marshalToolResponse(response)
	}
}

func edgeViews(m *graph.Model) []EdgeView {
	edges := m.Edges()
	views := make([]EdgeView, 0, len(edges))
	for _, e := range edges {
		from, _ := m.Node(e.From)
		to, _ := m.Node(e.To)
		views = append(views, EdgeView{
			From:     from.Label,
			To:       to.Label,
			Category: e.Category,
			FromInit: e.FromInit,
		})
	}
	return views
}
