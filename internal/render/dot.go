// Package render turns a graph model into a Graphviz description and, via
// the dot binary, into an image.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/mvp-joe/graphovl/internal/config"
	ovlgraph "github.com/mvp-joe/graphovl/internal/graph"
)

// EdgeColor returns the color of an edge.
func EdgeColor(e ovlgraph.Edge, colors config.ColorsConfig) string {
	switch e.Category {
	case ovlgraph.CategoryTransition:
		if e.FromInit {
			return colors.ActionFuncInit
		}
		return colors.ActionFunc
	case ovlgraph.CategoryCall:
		return colors.FuncCall
	case ovlgraph.CategoryCallback:
		return colors.Callback
	case ovlgraph.CategoryIndirectMember:
		return colors.IndirectMember
	}
	return colors.FuncCall
}

// Build converts a model into a directed graph keyed by the stringified
// node ID. Edges of several categories between the same pair become one
// edge whose color is a Graphviz color list, drawn as parallel strokes.
func Build(m *ovlgraph.Model, colors config.ColorsConfig) (graph.Graph[string, ovlgraph.Node], error) {
	g := graph.New(func(n ovlgraph.Node) string { return strconv.Itoa(n.ID) }, graph.Directed())

	for _, n := range m.Nodes() {
		err := g.AddVertex(n,
			graph.VertexAttribute("label", n.Label),
			graph.VertexAttribute("fontcolor", colors.FontColor),
			graph.VertexAttribute("color", colors.BubbleColor),
		)
		if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add node %s: %w", n.Label, err)
		}
	}

	type pair struct{ from, to int }
	var order []pair
	strokes := make(map[pair][]string)
	for _, e := range m.Edges() {
		p := pair{e.From, e.To}
		if _, ok := strokes[p]; !ok {
			order = append(order, p)
		}
		strokes[p] = append(strokes[p], EdgeColor(e, colors))
	}

	for _, p := range order {
		err := g.AddEdge(strconv.Itoa(p.from), strconv.Itoa(p.to),
			graph.EdgeAttribute("color", strings.Join(strokes[p], ":")),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to add edge %d -> %d: %w", p.from, p.to, err)
		}
	}

	return g, nil
}

// WriteDOT writes the Graphviz description of a model.
func WriteDOT(w io.Writer, m *ovlgraph.Model, colors config.ColorsConfig) error {
	g, err := Build(m, colors)
	if err != nil {
		return err
	}
	if err := draw.DOT(g, w, draw.GraphAttribute("bgcolor", colors.Background)); err != nil {
		return fmt.Errorf("failed to write DOT: %w", err)
	}
	return nil
}

// WriteDOTFile writes the Graphviz description to path, creating its
// directory if needed.
func WriteDOTFile(path string, m *ovlgraph.Model, colors config.ColorsConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteDOT(f, m, colors); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
