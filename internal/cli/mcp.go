package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/graphovl/internal/mcp"
	"github.com/mvp-joe/graphovl/internal/pipeline"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for actor graphs",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can
ask for actor graphs.

The MCP server:
- Provides the actor_graph tool (analysis only, returns JSON)
- Provides the actor_render tool (writes the .gv file and image)
- Communicates via stdio (standard MCP transport)

Example:
  graphovl mcp`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "graphovl MCP Server %s\n", Version)
	fmt.Fprintf(os.Stderr, "Actors: %s\n\n", cfg.Source.ActorsDir)

	// Clients tend to ask about the same actor repeatedly.
	cache, err := pipeline.NewContextCache(pipeline.DefaultContextCacheSize)
	if err != nil {
		return err
	}
	defer cache.Close()

	server := mcp.NewServer(pipeline.NewRunner(cfg, pipeline.WithContextCache(cache)), Version)
	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
