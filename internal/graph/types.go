package graph

import "time"

// Category is the kind of relationship an edge represents.
type Category string

const (
	CategoryTransition     Category = "transition"     // Action change to a handler
	CategoryCall           Category = "call"           // Direct call
	CategoryCallback       Category = "callback"       // Function passed as an argument
	CategoryIndirectMember Category = "indirectMember" // Function stored in a member field
)

// Categories lists every edge category in presentation order.
var Categories = []Category{CategoryTransition, CategoryCall, CategoryCallback, CategoryIndirectMember}

// Node is a function of the actor.
type Node struct {
	ID    int    `json:"id"`    // Function index in discovery order
	Label string `json:"label"` // Function name
}

// Edge is a directed relationship between two functions.
type Edge struct {
	From     int      `json:"from"`
	To       int      `json:"to"`
	Category Category `json:"category"`
	// FromInit marks transitions leaving an _Init function. It only
	// affects presentation.
	FromInit bool `json:"from_init,omitempty"`
}

// GraphData is the JSON export of a model.
type GraphData struct {
	Metadata GraphMetadata `json:"_metadata"`
	Nodes    []Node        `json:"nodes"`
	Edges    []Edge        `json:"edges"`
}

// GraphMetadata describes an exported graph.
type GraphMetadata struct {
	Version     string    `json:"version"`
	Actor       string    `json:"actor"`
	Pattern     string    `json:"pattern"`
	GeneratedAt time.Time `json:"generated_at"`
	NodeCount   int       `json:"node_count"`
	EdgeCount   int       `json:"edge_count"`
}

type edgeKey struct {
	from, to int
	category Category
}

// Model is the call/transition graph of one actor. Nodes and edges keep
// their registration order; an edge is stored at most once per
// (From, To, Category).
type Model struct {
	// Pattern is the name of the dispatch idiom the graph was built with.
	Pattern string

	nodes     []Node
	nodeIndex map[int]int
	edges     []Edge
	edgeIndex map[edgeKey]int
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		nodeIndex: make(map[int]int),
		edgeIndex: make(map[edgeKey]int),
	}
}

// AddNode registers a node. It reports false when the ID already exists.
func (m *Model) AddNode(id int, label string) bool {
	if _, ok := m.nodeIndex[id]; ok {
		return false
	}
	m.nodeIndex[id] = len(m.nodes)
	m.nodes = append(m.nodes, Node{ID: id, Label: label})
	return true
}

// AddEdge registers an edge. It reports false for a duplicate
// (From, To, Category); FromInit of the first edge is kept.
func (m *Model) AddEdge(e Edge) bool {
	key := edgeKey{e.From, e.To, e.Category}
	if _, ok := m.edgeIndex[key]; ok {
		return false
	}
	m.edgeIndex[key] = len(m.edges)
	m.edges = append(m.edges, e)
	return true
}

// Nodes returns the nodes in registration order.
func (m *Model) Nodes() []Node {
	return append([]Node(nil), m.nodes...)
}

// Edges returns the edges in registration order.
func (m *Model) Edges() []Edge {
	return append([]Edge(nil), m.edges...)
}

// Node returns the node with the given ID.
func (m *Model) Node(id int) (Node, bool) {
	i, ok := m.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return m.nodes[i], true
}

// nodeByLabel returns the node with the given function name.
func (m *Model) nodeByLabel(label string) (Node, bool) {
	for _, n := range m.nodes {
		if n.Label == label {
			return n, true
		}
	}
	return Node{}, false
}

// hasEdge reports whether the edge exists.
func (m *Model) hasEdge(from, to int, category Category) bool {
	_, ok := m.edgeIndex[edgeKey{from, to, category}]
	return ok
}

// edgesBetween returns all edges from -> to in registration order.
func (m *Model) edgesBetween(from, to int) []Edge {
	var out []Edge
	for _, e := range m.edges {
		if e.From == from && e.To == to {
			out = append(out, e)
		}
	}
	return out
}

// Data returns the model as exportable graph data.
func (m *Model) Data(actor string) *GraphData {
	nodes := m.Nodes()
	edges := m.Edges()
	if nodes == nil {
		nodes = []Node{}
	}
	if edges == nil {
		edges = []Edge{}
	}
	return &GraphData{
		Metadata: GraphMetadata{
			Actor:   actor,
			Pattern: m.Pattern,
		},
		Nodes: nodes,
		Edges: edges,
	}
}
