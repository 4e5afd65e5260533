package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Graph Storage:
// - Save and load graph data with correct metadata
// - Load non-existent file returns nil without error
// - Atomic write leaves no temp files behind
// - Model.Save exports nodes, edges, actor and pattern
// - An empty model exports empty arrays, not null

func TestStorage_SaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "graphs", "En_Foo.json")

	storage, err := newStorage(path)
	require.NoError(t, err)
	assert.NoFileExists(t, path)

	testData := &GraphData{
		Metadata: GraphMetadata{Actor: "En_Foo", Pattern: "SetupAction"},
		Nodes: []Node{
			{ID: 0, Label: "EnFoo_Init"},
			{ID: 2, Label: "EnFoo_Wait"},
		},
		Edges: []Edge{
			{From: 0, To: 2, Category: CategoryTransition, FromInit: true},
		},
	}

	require.NoError(t, storage.save(testData))
	assert.FileExists(t, path)

	loaded, err := storage.load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, GraphVersion, loaded.Metadata.Version)
	assert.Equal(t, "En_Foo", loaded.Metadata.Actor)
	assert.Equal(t, "SetupAction", loaded.Metadata.Pattern)
	assert.Equal(t, 2, loaded.Metadata.NodeCount)
	assert.Equal(t, 1, loaded.Metadata.EdgeCount)
	assert.False(t, loaded.Metadata.GeneratedAt.IsZero())
	assert.Equal(t, testData.Nodes, loaded.Nodes)
	assert.Equal(t, testData.Edges, loaded.Edges)
}

func TestStorage_LoadMissing(t *testing.T) {
	t.Parallel()

	storage, err := newStorage(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	data, err := storage.load()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStorage_AtomicWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "En_Foo.json")

	storage, err := newStorage(path)
	require.NoError(t, err)
	require.NoError(t, storage.save(&GraphData{Nodes: []Node{}, Edges: []Edge{}}))
	require.NoError(t, storage.save(&GraphData{Nodes: []Node{{ID: 1, Label: "A"}}, Edges: []Edge{}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must be renamed away")
	assert.Equal(t, "En_Foo.json", entries[0].Name())

	loaded, err := storage.load()
	require.NoError(t, err)
	assert.Len(t, loaded.Nodes, 1)
}

func TestStorage_LoadInvalidJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	storage, err := newStorage(path)
	require.NoError(t, err)

	_, err = storage.load()
	assert.Error(t, err)
}

func TestModel_Save(t *testing.T) {
	t.Parallel()

	m := buildModel(t, rawPointerSource, Options{})
	path := filepath.Join(t.TempDir(), "Foo.json")

	require.NoError(t, m.Save(path, "Foo"))

	storage, err := newStorage(path)
	require.NoError(t, err)
	loaded, err := storage.load()
	require.NoError(t, err)

	assert.Equal(t, "Foo", loaded.Metadata.Actor)
	assert.Equal(t, "RawFunctionPointer", loaded.Metadata.Pattern)
	assert.Equal(t, m.Nodes(), loaded.Nodes)
	assert.Equal(t, m.Edges(), loaded.Edges)
}

func TestModel_DataEmpty(t *testing.T) {
	t.Parallel()

	data := NewModel().Data("Foo")
	assert.NotNil(t, data.Nodes)
	assert.NotNil(t, data.Edges)
}
