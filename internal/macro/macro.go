// Package macro is a best-effort symbolic evaluator for the preprocessor
// macros found in an actor source file. It only needs to resolve macros
// used as dispatch-index expressions, so a macro is just a name, its formal
// parameters and a body that must reduce to a constant expression.
package macro

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/mvp-joe/graphovl/internal/scan"
)

// EnumLookup resolves enum member names to values.
type EnumLookup interface {
	Lookup(name string) (int64, bool)
}

// Macro is a single #define.
type Macro struct {
	Name   string
	Params []string
	Body   string
}

// Table holds every macro of a source file.
type Table struct {
	macros map[string]Macro
	enums  EnumLookup
}

// NewTable builds a macro table from source text. Later definitions of the
// same name replace earlier ones. enums may be nil.
func NewTable(source string, enums EnumLookup) *Table {
	t := &Table{
		macros: make(map[string]Macro),
		enums:  enums,
	}
	for _, raw := range scan.Macros(source) {
		t.macros[raw.Name] = Macro{Name: raw.Name, Params: raw.Params, Body: raw.Body}
	}
	return t
}

// Len returns the number of macros.
func (t *Table) Len() int {
	return len(t.macros)
}

// Get returns the macro with the given name.
func (t *Table) Get(name string) (Macro, bool) {
	m, ok := t.macros[name]
	return m, ok
}

// ExpandBare evaluates name if it is an object-like macro. ok is false when
// name is not such a macro or its body does not evaluate.
func (t *Table) ExpandBare(name string) (string, bool) {
	m, ok := t.macros[name]
	if !ok || len(m.Params) != 0 {
		return "", false
	}
	value, err := Eval(m.Body)
	if err != nil {
		log.Printf("Warning: error occurred while expanding macro '%s'", m.Name)
		log.Printf("    Exception info: %v", err)
		return "", false
	}
	return value, true
}

// ExpandCall substitutes args into the body of the named macro and
// evaluates it. Arguments naming an enum member are replaced by the
// member's value first. Unknown macros and evaluation failures are logged
// and reported as ok == false.
func (t *Table) ExpandCall(name string, args []string) (string, bool) {
	m, ok := t.macros[name]
	if !ok {
		log.Printf("Warning: unknown macro: %s", name)
		return "", false
	}
	if len(args) < len(m.Params) {
		log.Printf("Warning: error occurred while calling macro '%s' with arguments %q", m.Name, args)
		log.Printf("    Exception info: expected %d arguments, got %d", len(m.Params), len(args))
		return "", false
	}

	body := m.Body
	for i, param := range m.Params {
		arg := args[i]
		if t.enums != nil {
			if v, ok := t.enums.Lookup(arg); ok {
				arg = strconv.FormatInt(v, 10)
			}
		}
		body = replaceIdent(body, param, arg)
	}

	value, err := Eval(body)
	if err != nil {
		log.Printf("Warning: error occurred while calling macro '%s' with arguments %q", m.Name, args)
		log.Printf("    Exception info: %v", err)
		return "", false
	}
	return value, true
}

// Resolve expands expr when it is a macro invocation `NAME(args...)` or a
// bare object-like macro name.
func (t *Table) Resolve(expr string) (string, bool) {
	expr = strings.TrimSpace(expr)
	if name, args, ok := splitInvocation(expr); ok {
		return t.ExpandCall(name, args)
	}
	if _, ok := t.macros[expr]; ok {
		return t.ExpandBare(expr)
	}
	return "", false
}

var invocationRegexp = regexp.MustCompile(`^([a-zA-Z_\d]+)\(([^\)]*)\)`)

func splitInvocation(expr string) (string, []string, bool) {
	m := invocationRegexp.FindStringSubmatch(expr)
	if m == nil {
		return "", nil, false
	}
	var args []string
	for _, a := range strings.Split(m[2], ",") {
		args = append(args, strings.TrimSpace(a))
	}
	return m[1], args, true
}

// replaceIdent replaces whole-identifier occurrences of param in body.
func replaceIdent(body, param, arg string) string {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(param) + `\b`)
	return re.ReplaceAllLiteralString(body, arg)
}
