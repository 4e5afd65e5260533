// Package scan pulls lexical facts out of raw C source text: function
// definitions, call tokens, preprocessor macros, enum blocks and simple
// assignments. Everything here is a pattern match over text; no nesting is
// tracked beyond the first closing parenthesis.
package scan

import (
	"regexp"
	"strings"
)

var (
	callRegexp       = regexp.MustCompile(`[a-zA-Z_\d]+\([^\)]*\)(\.[^\)]*\))?`)
	definitionRegexp = regexp.MustCompile(`[a-zA-Z_\d]+\([^\)]*\)(\.[^\)]*\))? \{[^}]`)
	macroRegexp      = regexp.MustCompile(`#define[ \t]+([a-zA-Z_\d]+)(\([a-zA-Z_\d\s,]*\))?[ \t]+(.+?)(\n|//|/\*|$)`)
	enumRegexp       = regexp.MustCompile(`enum\s+(?:[a-zA-Z_\d]+\s*)?\{([^\}]+?)\}`)
	memberRegexp     = regexp.MustCompile(`(this->[a-zA-Z_\d]+)\s*=\s*([a-zA-Z_\d]+);`)
	blockComment     = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment      = regexp.MustCompile(`//[^\n]*`)
)

// keywords are never reported as function definitions.
var keywords = map[string]bool{
	"if":     true,
	"for":    true,
	"while":  true,
	"switch": true,
	"return": true,
	"sizeof": true,
}

// Definition is a function definition found in the source.
type Definition struct {
	Name string
	// Signature is the definition text up to and including the opening
	// brace, e.g. "EnFoo_Init(Actor* thisx, PlayState* play) {". It may
	// span several physical lines.
	Signature string
}

// Key returns the last physical line of the signature.
func (d Definition) Key() string {
	lines := strings.Split(d.Signature, "\n")
	return lines[len(lines)-1]
}

// DefinitionScanner extracts function definitions from source text.
type DefinitionScanner interface {
	Definitions(source string) []Definition
}

// RegexScanner is the default DefinitionScanner.
type RegexScanner struct{}

// NewRegexScanner creates a regex-based definition scanner.
func NewRegexScanner() *RegexScanner {
	return &RegexScanner{}
}

// Definitions returns every `name(params) {` match whose body is not
// immediately closed, in source order.
func (s *RegexScanner) Definitions(source string) []Definition {
	var defs []Definition
	for _, match := range definitionRegexp.FindAllString(source, -1) {
		name := strings.SplitN(match, "(", 2)[0]
		if keywords[name] {
			continue
		}
		sig := strings.TrimSpace(strings.SplitN(match, "{", 2)[0])
		defs = append(defs, Definition{
			Name:      name,
			Signature: sig + " {",
		})
	}
	return defs
}

// UniqueNames returns definition names in discovery order, first
// occurrence only.
func UniqueNames(defs []Definition) []string {
	seen := make(map[string]bool, len(defs))
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		if seen[def.Name] {
			continue
		}
		seen[def.Name] = true
		names = append(names, def.Name)
	}
	return names
}

// Calls returns all call-like tokens, including their argument text.
func Calls(content string) []string {
	return callRegexp.FindAllString(content, -1)
}

// CallNames returns the callee name of every call-like token.
func CallNames(content string) []string {
	calls := Calls(content)
	names := make([]string, 0, len(calls))
	for _, call := range calls {
		names = append(names, strings.SplitN(call, "(", 2)[0])
	}
	return names
}

// SplitArgs splits a call token into its callee name and argument list.
// Whitespace and newlines are removed first and the argument text ends at
// the first closing parenthesis, so nested calls are split naively.
func SplitArgs(call string) (string, []string) {
	call = strings.NewReplacer("\n", "", "\r", "", "\t", "", " ", "").Replace(call)
	name, rest, ok := strings.Cut(call, "(")
	if !ok {
		return call, nil
	}
	args, _, _ := strings.Cut(rest, ")")
	if args == "" {
		return name, nil
	}
	return name, strings.Split(args, ",")
}

// RawMacro is a #define as written in the source.
type RawMacro struct {
	Name   string
	Params []string
	Body   string
}

// Macros returns every object-like and function-like #define.
func Macros(content string) []RawMacro {
	var macros []RawMacro
	for _, m := range macroRegexp.FindAllStringSubmatch(content, -1) {
		macro := RawMacro{
			Name: strings.TrimSpace(m[1]),
			Body: strings.TrimSpace(m[3]),
		}
		if m[2] != "" {
			inner := strings.TrimSuffix(strings.TrimPrefix(m[2], "("), ")")
			for _, p := range strings.Split(inner, ",") {
				if p = strings.TrimSpace(p); p != "" {
					macro.Params = append(macro.Params, p)
				}
			}
		}
		macros = append(macros, macro)
	}
	return macros
}

// EnumBlocks returns the text between the braces of every enum block.
func EnumBlocks(content string) []string {
	var blocks []string
	for _, m := range enumRegexp.FindAllStringSubmatch(content, -1) {
		blocks = append(blocks, m[1])
	}
	return blocks
}

// StripComments removes block comments and line comments.
func StripComments(fragment string) string {
	fragment = blockComment.ReplaceAllString(fragment, "")
	return lineComment.ReplaceAllString(fragment, "")
}

// Assignments returns the right-hand side of every `lhs = expr` in content,
// trimmed and cut at the first semicolon. Comparisons (`==`) are skipped.
func Assignments(content, lhs string) []string {
	if lhs == "" || !strings.Contains(content, lhs) {
		return nil
	}
	re := regexp.MustCompile(regexp.QuoteMeta(lhs) + `\s*=\s*([^=;\n][^;\n]*)`)
	var values []string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		values = append(values, strings.TrimSpace(m[1]))
	}
	return values
}

// MemberAssignment is a `this->field = identifier;` statement.
type MemberAssignment struct {
	Member string
	Value  string
}

// MemberAssignments returns every identifier assigned to a `this->` field.
func MemberAssignments(content string) []MemberAssignment {
	var out []MemberAssignment
	for _, m := range memberRegexp.FindAllStringSubmatch(content, -1) {
		out = append(out, MemberAssignment{Member: m[1], Value: m[2]})
	}
	return out
}

// DispatchArgs returns the comma-separated arguments of every statement
// call to a function whose name ends in suffix, e.g. "_SetupAction".
func DispatchArgs(content, suffix string) [][]string {
	re := regexp.MustCompile(`[a-zA-Z_\d]*` + regexp.QuoteMeta(suffix) + `\(([^\)]*)\)(\.[^\)]*\))?;`)
	var calls [][]string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		parts := strings.Split(m[1], ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		calls = append(calls, parts)
	}
	return calls
}
