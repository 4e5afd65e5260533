package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/graphovl/internal/graph"
	mcputils "github.com/mvp-joe/graphovl/internal/mcp-utils"
	"github.com/mvp-joe/graphovl/internal/pipeline"
)

// ActorRenderRequest holds the actor_render tool arguments.
type ActorRenderRequest struct {
	Actor  string   `json:"actor"`
	Remove []string `json:"remove,omitempty"`
	Loners bool     `json:"loners,omitempty"`
	Style  string   `json:"style,omitempty"`
	Format string   `json:"format,omitempty"`
	Parser string   `json:"parser,omitempty"`
	JSON   string   `json:"json,omitempty"`
}

// ActorRenderResponse is the actor_render tool result.
type ActorRenderResponse struct {
	Actor     string         `json:"actor"`
	Pattern   string         `json:"pattern"`
	DotPath   string         `json:"dot_path"`
	ImagePath string         `json:"image_path"`
	JSONPath  string         `json:"json_path,omitempty"`
	Summary   *graph.Summary `json:"summary"`
}

// AddActorRenderTool registers the actor_render tool with an MCP server.
func AddActorRenderTool(s *server.MCPServer, runner *pipeline.Runner) {
	tool := mcp.NewTool(
		"actor_render",
		mcp.WithDescription("Write the Graphviz description of an actor graph to the output directory and render it with Graphviz. Returns the written paths and a reachability summary."),
		mcp.WithString("actor",
			mcp.Required(),
			mcp.Description("Actor name such as 'En_Door', or a path to an actor .c file")),
		mcp.WithArray("remove",
			mcp.Description("Function names or glob patterns to exclude")),
		mcp.WithBoolean("loners",
			mcp.Description("Include functions with no edges (default: false)")),
		mcp.WithString("style",
			mcp.Description("Style profile name")),
		mcp.WithString("format",
			mcp.Description("Output format: png, svg, pdf, jpg, gv or dot (default: configured format)")),
		mcp.WithString("parser",
			mcp.Description("Function discovery parser: regex or treesitter")),
		mcp.WithString("json",
			mcp.Description("Optional path for a JSON export of the graph")),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createActorRenderHandler(runner))
}

func createActorRenderHandler(runner *pipeline.Runner) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.GetRawArguments().(map[string]interface{}); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req ActorRenderRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if req.Actor == "" {
			return mcp.NewToolResultError("actor parameter is required"), nil
		}

		result, err := runner.Run(ctx, pipeline.Request{
			Actor:    req.Actor,
			Remove:   req.Remove,
			Loners:   req.Loners,
			Style:    req.Style,
			Format:   req.Format,
			Parser:   req.Parser,
			JSONPath: req.JSON,
		})
		if err != nil {
			if isUserError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, err
		}

		return marshalToolResponse(&ActorRenderResponse{
			Actor:     result.Actor,
			Pattern:   result.Pattern.Kind.String(),
			DotPath:   result.DotPath,
			ImagePath: result.ImagePath,
			JSONPath:  result.JSONPath,
			Summary:   result.Summary,
		})
	}
}
