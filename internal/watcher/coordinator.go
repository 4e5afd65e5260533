package watcher

import (
	"context"
	"log"
)

// BuildFunc regenerates output. changed is nil for the initial build.
type BuildFunc func(ctx context.Context, changed []string) error

// Coordinator reruns a build whenever the watched files change.
type Coordinator struct {
	files FileWatcher
	build BuildFunc
}

// NewCoordinator creates a coordinator.
func NewCoordinator(files FileWatcher, build BuildFunc) *Coordinator {
	return &Coordinator{
		files: files,
		build: build,
	}
}

// Run builds once, then rebuilds on every debounced change until ctx is
// cancelled. A failing initial build is returned; later failures are
// logged and watching continues.
func (c *Coordinator) Run(ctx context.Context) error {
	defer c.cleanup()

	if err := c.build(ctx, nil); err != nil {
		return err
	}

	if err := c.files.Start(ctx, func(changed []string) {
		c.handleFileChange(ctx, changed)
	}); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

func (c *Coordinator) handleFileChange(ctx context.Context, changed []string) {
	if ctx.Err() != nil {
		return
	}
	if err := c.build(ctx, changed); err != nil {
		log.Printf("Warning: rebuild failed: %v", err)
	}
}

func (c *Coordinator) cleanup() {
	if err := c.files.Stop(); err != nil {
		log.Printf("Warning: file watcher stop failed: %v", err)
	}
}
