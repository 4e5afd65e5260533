package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// GraphVersion is the current version of the export format
const GraphVersion = "1.0"

// storage reads and writes an exported graph as a single JSON file.
type storage struct {
	path string
}

// newStorage creates a storage for the JSON file at path, creating its
// directory if needed.
func newStorage(path string) (*storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create graph directory: %w", err)
	}
	return &storage{path: path}, nil
}

// load reads the graph data from disk. It returns nil if the file
// doesn't exist.
func (s *storage) load() (*GraphData, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	var graphData GraphData
	if err := json.Unmarshal(data, &graphData); err != nil {
		return nil, fmt.Errorf("failed to parse graph JSON: %w", err)
	}

	return &graphData, nil
}

// save writes the graph data to disk using atomic write pattern.
func (s *storage) save(data *GraphData) error {
	data.Metadata.Version = GraphVersion
	data.Metadata.GeneratedAt = time.Now()
	data.Metadata.NodeCount = len(data.Nodes)
	data.Metadata.EdgeCount = len(data.Edges)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph data: %w", err)
	}

	// Temp file lives next to the target so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp graph file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(jsonData); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp graph file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp graph file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp graph file: %w", err)
	}

	return nil
}

// Save exports the model for the named actor as JSON to path.
func (m *Model) Save(path, actor string) error {
	s, err := newStorage(path)
	if err != nil {
		return err
	}
	return s.save(m.Data(actor))
}
