package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Graph Summary:
// - Nodes reachable from any lifecycle function are not reported
// - Nodes only reachable from non-lifecycle nodes are unreachable
// - Parallel edges of different categories are walked once
// - Known functions missing from the model are loners
// - Edge counts are broken down by category

func TestSummarize(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.AddNode(0, "Foo_Init")
	m.AddNode(1, "Foo_Wait")
	m.AddNode(2, "Foo_Orphan")
	m.AddNode(3, "Foo_Helper")
	m.AddNode(5, "Foo_Draw")
	m.AddEdge(Edge{From: 0, To: 1, Category: CategoryTransition, FromInit: true})
	m.AddEdge(Edge{From: 0, To: 1, Category: CategoryCall})
	m.AddEdge(Edge{From: 2, To: 3, Category: CategoryCallback})

	names := []string{"Foo_Init", "Foo_Wait", "Foo_Orphan", "Foo_Helper", "Foo_Unused", "Foo_Draw"}
	summary, err := Summarize(m, names)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Nodes)
	assert.Equal(t, 3, summary.Edges)
	assert.Equal(t, map[Category]int{
		CategoryTransition: 1,
		CategoryCall:       1,
		CategoryCallback:   1,
	}, summary.EdgesByCategory)
	assert.Equal(t, []string{"Foo_Orphan", "Foo_Helper"}, summary.Unreachable)
	assert.Equal(t, []string{"Foo_Unused"}, summary.Loners)
}

func TestSummarize_BuiltModel(t *testing.T) {
	t.Parallel()

	m := buildModel(t, setupActionSource, Options{})
	ctxNames := []string{
		"Foo_SetupAction", "Foo_Init", "Foo_Destroy", "Foo_Wait", "Foo_Attack",
		"Foo_IsNear", "Foo_Helper", "Foo_Talk", "Foo_Update", "Foo_Unused",
	}

	summary, err := Summarize(m, ctxNames)
	require.NoError(t, err)

	assert.Empty(t, summary.Unreachable)
	assert.Equal(t, []string{"Foo_SetupAction", "Foo_Unused"}, summary.Loners)
}

func TestSummarize_EmptyModel(t *testing.T) {
	t.Parallel()

	summary, err := Summarize(NewModel(), nil)
	require.NoError(t, err)
	assert.Zero(t, summary.Nodes)
	assert.Empty(t, summary.Unreachable)
	assert.Empty(t, summary.Loners)
}
