// Package mcp exposes actor graphs to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/graphovl/internal/pipeline"
)

const serverName = "graphovl-mcp"

// Server manages the MCP server lifecycle.
type Server struct {
	runner *pipeline.Runner
	mcp    *server.MCPServer
}

// NewServer creates an MCP server with the actor_graph and actor_render
// tools registered.
func NewServer(runner *pipeline.Runner, version string) *Server {
	mcpServer := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
	)

	AddActorGraphTool(mcpServer, runner)
	AddActorRenderTool(mcpServer, runner)

	return &Server{
		runner: runner,
		mcp:    mcpServer,
	}
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
