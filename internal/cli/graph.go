package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/graphovl/internal/config"
	"github.com/mvp-joe/graphovl/internal/graph"
	"github.com/mvp-joe/graphovl/internal/pipeline"
	"github.com/mvp-joe/graphovl/internal/watcher"
)

type graphOptions struct {
	loners   bool
	remove   []string
	format   string
	style    string
	parser   string
	json     string
	watch    bool
	quiet    bool
	progress bool
}

var graphOpts graphOptions

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <actor>",
	Short: "Draw the action graph of an actor",
	Long: `Analyze an actor source file and draw how its action functions lead
into each other.

The actor is given by name (En_Door reads
<source.root>/<source.actors_dir>/ovl_En_Door/z_en_door.c) or as a path to
a .c file. The Graphviz description is written to <output.dir>/<actor>.gv
and rendered to <output.dir>/<actor>.gv.<format>.

Edges:
  transition      action function setup (Init transitions use their own color)
  call            direct call to a known function
  callback        known function passed as an argument
  indirectMember  function stored in a struct member

Examples:
  graphovl graph En_Door
  graphovl graph En_Door --format svg -r EnDoor_Draw -r 'func_80*'
  graphovl graph src/overlays/actors/ovl_En_Door/z_en_door.c --loners --json en_door.json
  graphovl graph En_Door --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)

	flags := graphCmd.Flags()
	flags.BoolVar(&graphOpts.loners, "loners", false, "include functions without edges")
	flags.StringSliceVarP(&graphOpts.remove, "remove", "r", nil, "function names or glob patterns to leave out (repeatable, comma separated)")
	flags.StringVar(&graphOpts.format, "format", "", "output format: png, svg, pdf, jpg, gv, dot (default from config)")
	flags.StringVarP(&graphOpts.style, "style", "s", "", "style profile name (default from config)")
	flags.StringVar(&graphOpts.parser, "parser", "", "function discovery parser: regex or treesitter (default from config)")
	flags.StringVar(&graphOpts.json, "json", "", "also export the graph model as JSON to this path")
	flags.BoolVar(&graphOpts.watch, "watch", false, "rebuild whenever the source or style changes")
	flags.BoolVarP(&graphOpts.quiet, "quiet", "q", false, "only print errors")
	flags.BoolVar(&graphOpts.progress, "progress", false, "show a progress bar while building the graph")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(cfg)
	req := graphOpts.request(args[0], cmd.OutOrStdout())

	if !graphOpts.watch {
		_, err := runOnce(ctx, cmd.OutOrStdout(), runner, req, graphOpts.quiet)
		return err
	}

	return watchGraph(ctx, cmd.OutOrStdout(), runner, req)
}

func (o graphOptions) request(actorArg string, out io.Writer) pipeline.Request {
	req := pipeline.Request{
		Actor:    actorArg,
		Remove:   o.remove,
		Loners:   o.loners,
		Style:    o.style,
		Format:   o.format,
		Parser:   o.parser,
		JSONPath: o.json,
	}
	if o.progress && !o.quiet {
		req.Progress = NewCLIProgressReporter(out, false)
	}
	return req
}

func runOnce(ctx context.Context, out io.Writer, runner *pipeline.Runner, req pipeline.Request, quiet bool) (*pipeline.Result, error) {
	result, err := runner.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	if !quiet {
		printResult(out, result)
	}
	return result, nil
}

func watchGraph(ctx context.Context, out io.Writer, runner *pipeline.Runner, req pipeline.Request) error {
	files := []string{runner.SourcePath(req.Actor)}
	if style := styleFile(runner.Config(), req.Style); style != "" {
		files = append(files, style)
	}

	fw, err := watcher.NewFileWatcher(files)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", files[0], err)
	}

	build := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 && !graphOpts.quiet {
			fmt.Fprintf(out, "\nChanged: %s\n", strings.Join(changed, ", "))
		}
		_, err := runOnce(ctx, out, runner, req, graphOpts.quiet)
		return err
	}

	if !graphOpts.quiet {
		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", strings.Join(files, ", "))
	}
	return watcher.NewCoordinator(fw, build).Run(ctx)
}

// styleFile returns the profile file a run would read, or "" when no
// profile applies or it does not exist.
func styleFile(cfg *config.Config, name string) string {
	if name == "" {
		name = cfg.Style.Default
	}
	if name == "" {
		return ""
	}
	return config.StylePath(cfg.Style.Dir, name)
}

func printResult(out io.Writer, result *pipeline.Result) {
	fmt.Fprintf(out, "Written to %s\n", result.ImagePath)
	if result.ImagePath != result.DotPath {
		fmt.Fprintf(out, "  Graphviz: %s\n", result.DotPath)
	}
	if result.JSONPath != "" {
		fmt.Fprintf(out, "  JSON:     %s\n", result.JSONPath)
	}
	printSummary(out, result.Pattern.Kind.String(), result.Summary)
}

func printSummary(out io.Writer, pattern string, s *graph.Summary) {
	fmt.Fprintf(out, "  Pattern:  %s\n", pattern)
	fmt.Fprintf(out, "  Nodes:    %d\n", s.Nodes)
	fmt.Fprintf(out, "  Edges:    %d", s.Edges)

	categories := make([]string, 0, len(s.EdgesByCategory))
	for _, c := range graph.Categories {
		if n := s.EdgesByCategory[c]; n > 0 {
			categories = append(categories, fmt.Sprintf("%s %d", c, n))
		}
	}
	if len(categories) > 0 {
		fmt.Fprintf(out, " (%s)", strings.Join(categories, ", "))
	}
	fmt.Fprintln(out)

	if len(s.Unreachable) > 0 {
		unreachable := append([]string(nil), s.Unreachable...)
		sort.Strings(unreachable)
		fmt.Fprintf(out, "  Unreachable from lifecycle functions: %s\n", strings.Join(unreachable, ", "))
	}
	if len(s.Loners) > 0 {
		fmt.Fprintf(out, "  Not in graph: %d functions\n", len(s.Loners))
	}
}
