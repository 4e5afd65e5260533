package graph

import (
	"log"

	"github.com/gobwas/glob"
)

// nullName is removed from every graph; it shows up as an assigned value
// when a function pointer is cleared.
const nullName = "NULL"

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// removalList matches function names excluded from a graph.
type removalList struct {
	exact    map[string]bool
	patterns []compiledPattern
}

// newRemovalList compiles the removal patterns. A pattern that is not a
// valid glob is matched literally.
func newRemovalList(patterns []string) *removalList {
	r := &removalList{exact: map[string]bool{nullName: true}}
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		r.exact[pattern] = true

		g, err := glob.Compile(pattern)
		if err != nil {
			log.Printf("Warning: invalid removal pattern '%s': %v", pattern, err)
			continue
		}
		r.patterns = append(r.patterns, compiledPattern{pattern: pattern, glob: g})
	}
	return r
}

// Match reports whether name must be left out of the graph.
func (r *removalList) Match(name string) bool {
	if r.exact[name] {
		return true
	}
	for _, p := range r.patterns {
		if p.glob.Match(name) {
			return true
		}
	}
	return false
}
