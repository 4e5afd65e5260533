// Package enums assigns integer values to the members of the enum blocks
// in a source file.
package enums

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/mvp-joe/graphovl/internal/macro"
	"github.com/mvp-joe/graphovl/internal/scan"
)

// Table maps enum member names to values. All blocks of a file share one
// namespace; a later member with the same name replaces an earlier one.
type Table map[string]int64

// Lookup returns the value of the named member.
func (t Table) Lookup(name string) (int64, bool) {
	v, ok := t[name]
	return v, ok
}

// LookupString returns the value of the named member in decimal.
func (t Table) LookupString(name string) (string, bool) {
	v, ok := t[name]
	if !ok {
		return "", false
	}
	return strconv.FormatInt(v, 10), true
}

// Resolve processes every enum block in source. Within a block the first
// member without an explicit value is 0 and each following member is the
// previous value plus one. An explicit value may be a literal or the name
// of an earlier member.
func Resolve(source string) Table {
	table := make(Table)
	for _, block := range scan.EnumBlocks(source) {
		var next int64
		for _, fragment := range strings.Split(block, ",") {
			fragment = strings.TrimSpace(scan.StripComments(fragment))
			if fragment == "" {
				continue
			}

			name, valueExpr, explicit := strings.Cut(fragment, "=")
			name = strings.TrimSpace(name)
			if explicit {
				if v, ok := table.evaluate(strings.TrimSpace(valueExpr)); ok {
					next = v
				} else {
					log.Printf("Warning: not able to evaluate value '%s' of enum member '%s'", strings.TrimSpace(valueExpr), name)
				}
			}

			table[name] = next
			next++
		}
	}
	return table
}

var identRegexp = regexp.MustCompile(`[a-zA-Z_][a-zA-Z_\d]*`)

// evaluate resolves an explicit member value: an alias, a literal, or a
// constant expression over earlier members.
func (t Table) evaluate(expr string) (int64, bool) {
	if v, ok := t[expr]; ok {
		return v, true
	}
	if v, err := macro.ParseInt(expr); err == nil {
		return v, true
	}
	substituted := identRegexp.ReplaceAllStringFunc(expr, func(ident string) string {
		if v, ok := t[ident]; ok {
			return strconv.FormatInt(v, 10)
		}
		return ident
	})
	v, err := macro.EvalInt(substituted)
	if err != nil {
		return 0, false
	}
	return v, true
}
