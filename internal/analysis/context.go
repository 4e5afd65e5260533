// Package analysis builds the per-run view of an actor source file that the
// graph builder reads: function names and their indices, definitions,
// bodies, macros, enums and the action dispatch idiom.
package analysis

import (
	"log"

	"github.com/mvp-joe/graphovl/internal/actor"
	"github.com/mvp-joe/graphovl/internal/enums"
	"github.com/mvp-joe/graphovl/internal/macro"
	"github.com/mvp-joe/graphovl/internal/scan"
)

// Context is an immutable analysis of one source file. It is built once by
// New and then only read.
type Context struct {
	source      string
	names       []string
	index       map[string]int
	definitions map[string]scan.Definition
	bodies      map[string]string

	macros  *macro.Table
	enums   enums.Table
	pattern actor.Pattern
	prefix  string
}

// New scans source and builds its analysis context. It fails when the
// actor's dispatch idiom cannot be determined.
func New(source string, scanner scan.DefinitionScanner) (*Context, error) {
	if scanner == nil {
		scanner = scan.NewRegexScanner()
	}

	defs := scanner.Definitions(source)
	names := scan.UniqueNames(defs)

	c := &Context{
		source:      source,
		names:       names,
		index:       make(map[string]int, len(names)),
		definitions: make(map[string]scan.Definition, len(names)),
		bodies:      make(map[string]string, len(names)),
		prefix:      actor.Prefix(names),
	}
	for i, name := range names {
		c.index[name] = i
	}
	for _, def := range defs {
		if _, ok := c.definitions[def.Name]; !ok {
			c.definitions[def.Name] = def
		}
	}

	pattern, err := actor.Detect(source, names)
	if err != nil {
		return nil, err
	}
	c.pattern = pattern

	c.enums = enums.Resolve(source)
	c.macros = macro.NewTable(source, c.enums)

	for _, name := range names {
		body, ok := Locate(source, c.definitions[name])
		if !ok {
			log.Printf("Warning: not able to find the body of '%s'", name)
		}
		c.bodies[name] = body
	}

	return c, nil
}

// Source returns the raw source text.
func (c *Context) Source() string { return c.source }

// Names returns the function names in discovery order. The slice must
// not be modified.
func (c *Context) Names() []string { return c.names }

// IndexOf returns the node index of a function.
func (c *Context) IndexOf(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// Has reports whether name is a known function.
func (c *Context) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Definition returns the definition of a function.
func (c *Context) Definition(name string) (scan.Definition, bool) {
	d, ok := c.definitions[name]
	return d, ok
}

// Body returns the located body of a function, or "".
func (c *Context) Body(name string) string { return c.bodies[name] }

// Macros returns the macro table.
func (c *Context) Macros() *macro.Table { return c.macros }

// Enums returns the enum table.
func (c *Context) Enums() enums.Table { return c.enums }

// Pattern returns the dispatch idiom.
func (c *Context) Pattern() actor.Pattern { return c.pattern }

// Prefix returns the actor prefix.
func (c *Context) Prefix() string { return c.prefix }

// ResolveValue resolves an assigned expression: a macro expansion first,
// then an enum member value, else the expression itself.
func (c *Context) ResolveValue(expr string) string {
	if v, ok := c.macros.Resolve(expr); ok {
		return v
	}
	if v, ok := c.enums.LookupString(expr); ok {
		return v
	}
	return expr
}

// AssignedValues returns the distinct resolved values assigned to lhs in
// body, in order of appearance.
func (c *Context) AssignedValues(body, lhs string) []string {
	var values []string
	seen := make(map[string]bool)
	for _, expr := range scan.Assignments(body, lhs) {
		v := c.ResolveValue(expr)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}
