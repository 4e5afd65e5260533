package pipeline

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/graphovl/internal/analysis"
	"github.com/mvp-joe/graphovl/internal/scan"
)

// DefaultContextCacheSize is the number of analyzed sources kept by
// long-running servers.
const DefaultContextCacheSize = 64

type contextKey struct {
	path   string
	parser string
	sum    [sha256.Size]byte
}

// ContextCache keeps analysis contexts keyed by source path, parser and
// content hash, so repeated requests for an unchanged actor skip scanning.
// An edited file hashes differently and is analyzed again.
type ContextCache struct {
	cache otter.Cache[contextKey, *analysis.Context]
}

// NewContextCache creates a cache holding up to capacity contexts.
func NewContextCache(capacity int) (*ContextCache, error) {
	cache, err := otter.MustBuilder[contextKey, *analysis.Context](capacity).
		CollectStats().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create context cache: %w", err)
	}
	return &ContextCache{cache: cache}, nil
}

// Hits returns the number of lookups served from the cache.
func (c *ContextCache) Hits() int64 {
	return c.cache.Stats().Hits()
}

// Misses returns the number of lookups that required a fresh analysis.
func (c *ContextCache) Misses() int64 {
	return c.cache.Stats().Misses()
}

// Close releases the cache.
func (c *ContextCache) Close() {
	c.cache.Close()
}

func (c *ContextCache) load(path, parser, source string, scanner scan.DefinitionScanner) (*analysis.Context, error) {
	key := contextKey{
		path:   path,
		parser: strings.ToLower(parser),
		sum:    sha256.Sum256([]byte(source)),
	}
	if ctx, ok := c.cache.Get(key); ok {
		return ctx, nil
	}

	ctx, err := analysis.New(source, scanner)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, ctx)
	return ctx, nil
}
