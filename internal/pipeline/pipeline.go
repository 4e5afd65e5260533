// Package pipeline runs one actor through analysis, graph building and
// rendering. The CLI, the watch loop and the MCP tool all go through it.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/graphovl/internal/actor"
	"github.com/mvp-joe/graphovl/internal/analysis"
	"github.com/mvp-joe/graphovl/internal/config"
	"github.com/mvp-joe/graphovl/internal/graph"
	"github.com/mvp-joe/graphovl/internal/render"
	"github.com/mvp-joe/graphovl/internal/scan"
)

// Request describes one run.
type Request struct {
	// Actor is an actor name such as "En_Door", or a path to a .c file.
	Actor  string
	Remove []string
	Loners bool
	// Style, Format and Parser override the configuration when set.
	Style  string
	Format string
	Parser string
	// JSONPath, when set, also exports the model as JSON.
	JSONPath string
	Progress graph.ProgressReporter
}

// Result is the outcome of a run.
type Result struct {
	Actor      string
	SourcePath string
	// DotPath and ImagePath are empty for Analyze.
	DotPath   string
	ImagePath string
	JSONPath  string
	Pattern   actor.Pattern
	Names     []string
	Model     *graph.Model
	Summary   *graph.Summary
	Colors    config.ColorsConfig
	// Context is shared with later runs when a ContextCache is in use and
	// must only be read.
	Context *analysis.Context
}

// Runner executes requests against one configuration.
type Runner struct {
	cfg   *config.Config
	cache *ContextCache
}

// Option configures a Runner.
type Option func(*Runner)

// WithContextCache reuses analysis contexts of unchanged sources.
func WithContextCache(cache *ContextCache) Option {
	return func(r *Runner) {
		r.cache = cache
	}
}

// NewRunner creates a runner.
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Runner{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the runner configuration.
func (r *Runner) Config() *config.Config {
	return r.cfg
}

// NewScanner returns the definition scanner for a parser name.
func NewScanner(parser string) (scan.DefinitionScanner, error) {
	if err := config.ValidateParser(parser); err != nil {
		return nil, err
	}
	if strings.ToLower(parser) == config.ParserTreeSitter {
		return scan.NewTreeSitterScanner(), nil
	}
	return scan.NewRegexScanner(), nil
}

// SourcePath resolves the source file of an actor.
func (r *Runner) SourcePath(name string) string {
	return actor.SourcePath(r.cfg.Source.Root, r.cfg.Source.ActorsDir, name)
}

// DotPath returns the Graphviz description written for an actor.
func (r *Runner) DotPath(name string) string {
	return filepath.Join(r.cfg.Output.Dir, actor.Name(name)+".gv")
}

// Analyze reads and analyzes the actor source and builds its graph
// without writing anything.
func (r *Runner) Analyze(req Request) (*Result, error) {
	parser := r.cfg.Scan.Parser
	if req.Parser != "" {
		parser = req.Parser
	}
	scanner, err := NewScanner(parser)
	if err != nil {
		return nil, err
	}

	path := r.SourcePath(req.Actor)
	source, err := actor.ReadSource(path)
	if err != nil {
		return nil, err
	}

	ctx, err := r.analyze(path, parser, source, scanner)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	model := graph.Build(ctx, graph.Options{
		Remove:   req.Remove,
		Loners:   req.Loners,
		Progress: req.Progress,
	})

	summary, err := graph.Summarize(model, ctx.Names())
	if err != nil {
		return nil, fmt.Errorf("failed to summarize graph: %w", err)
	}

	colors, err := config.LoadStyle(r.cfg, req.Style)
	if err != nil {
		return nil, err
	}

	return &Result{
		Actor:      actor.Name(req.Actor),
		SourcePath: path,
		Pattern:    ctx.Pattern(),
		Names:      ctx.Names(),
		Model:      model,
		Summary:    summary,
		Colors:     colors,
		Context:    ctx,
	}, nil
}

func (r *Runner) analyze(path, parser, source string, scanner scan.DefinitionScanner) (*analysis.Context, error) {
	if r.cache == nil {
		return analysis.New(source, scanner)
	}
	return r.cache.load(path, parser, source, scanner)
}

// Run analyzes the actor, writes <output.dir>/<actor>.gv, renders the
// image and optionally exports JSON.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	format := r.cfg.Output.Format
	if req.Format != "" {
		format = req.Format
	}
	if err := config.ValidateFormat(format); err != nil {
		return nil, err
	}

	result, err := r.Analyze(req)
	if err != nil {
		return nil, err
	}

	result.DotPath = r.DotPath(req.Actor)
	if err := render.WriteDOTFile(result.DotPath, result.Model, result.Colors); err != nil {
		return nil, err
	}

	result.ImagePath, err = render.Render(ctx, result.DotPath, format, r.cfg.Output.DotBinary)
	if err != nil {
		return nil, err
	}

	if req.JSONPath != "" {
		if err := result.Model.Save(req.JSONPath, result.Actor); err != nil {
			return nil, fmt.Errorf("failed to export graph: %w", err)
		}
		result.JSONPath = req.JSONPath
	}

	return result, nil
}
