package graph

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"
)

// Summary describes how the functions of an actor relate to its lifecycle
// functions.
type Summary struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
	// EdgesByCategory counts edges per category.
	EdgesByCategory map[Category]int `json:"edges_by_category"`
	// Unreachable lists graph nodes that no lifecycle function reaches.
	Unreachable []string `json:"unreachable,omitempty"`
	// Loners lists known functions that are not part of the graph.
	Loners []string `json:"loners,omitempty"`
}

// Summarize walks the model from its lifecycle nodes. names is the full
// function list of the actor, used to report loners.
func Summarize(m *Model, names []string) (*Summary, error) {
	g := graph.New(func(n Node) int { return n.ID }, graph.Directed())

	for _, n := range m.nodes {
		if err := g.AddVertex(n); err != nil {
			return nil, fmt.Errorf("failed to add node %s: %w", n.Label, err)
		}
	}

	summary := &Summary{
		Nodes:           len(m.nodes),
		Edges:           len(m.edges),
		EdgesByCategory: make(map[Category]int),
	}

	for _, e := range m.edges {
		summary.EdgesByCategory[e.Category]++
		// Edges of different categories between the same pair collapse.
		if err := g.AddEdge(e.From, e.To); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return nil, fmt.Errorf("failed to add edge %d -> %d: %w", e.From, e.To, err)
		}
	}

	reached := make(map[int]bool)
	for _, n := range m.nodes {
		if !IsLifecycle(n.Label) || reached[n.ID] {
			continue
		}
		err := graph.BFS(g, n.ID, func(id int) bool {
			reached[id] = true
			return false
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk graph from %s: %w", n.Label, err)
		}
	}

	for _, n := range m.nodes {
		if !reached[n.ID] {
			summary.Unreachable = append(summary.Unreachable, n.Label)
		}
	}

	for i, name := range names {
		if _, ok := m.nodeIndex[i]; !ok {
			summary.Loners = append(summary.Loners, name)
		}
	}

	return summary, nil
}
