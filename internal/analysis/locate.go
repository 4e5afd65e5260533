package analysis

import (
	"strings"

	"github.com/mvp-joe/graphovl/internal/scan"
)

// Locate returns the body of the function with the given definition: the
// lines after its signature up to, but excluding, the line holding the
// matching closing brace. Line comments are stripped before braces are
// counted. The boolean is false when the signature is not found; a found
// function may still have an empty body.
func Locate(source string, def scan.Definition) (string, bool) {
	lines := strings.SplitAfter(source, "\n")
	start := signatureLine(source, lines, def)
	if start < 0 {
		return "", false
	}

	var body strings.Builder
	depth := 1
	for _, raw := range lines[start+1:] {
		line := raw
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
			if strings.HasSuffix(raw, "\n") {
				line += "\n"
			}
		}

		depth += strings.Count(line, "{")
		depth -= strings.Count(line, "}")
		if depth == 0 {
			break
		}
		body.WriteString(line)
	}
	return body.String(), true
}

// signatureLine returns the 0-based index of the line on which the
// signature ends, or -1.
func signatureLine(source string, lines []string, def scan.Definition) int {
	if def.Signature == "" {
		return -1
	}

	if offset := indexIdent(source, def.Signature); offset >= 0 {
		end := offset + len(def.Signature)
		return strings.Count(source[:end], "\n")
	}

	key := def.Key()
	for i, line := range lines {
		if indexIdent(line, key) >= 0 {
			return i
		}
	}
	return -1
}

// indexIdent is strings.Index restricted to matches that do not continue
// an identifier to their left, so Foo_Wait never matches inside EnFoo_Wait.
func indexIdent(s, substr string) int {
	if substr == "" || !isIdentByte(substr[0]) {
		return strings.Index(s, substr)
	}
	from := 0
	for from <= len(s) {
		i := strings.Index(s[from:], substr)
		if i < 0 {
			return -1
		}
		i += from
		if i == 0 || !isIdentByte(s[i-1]) {
			return i
		}
		from = i + 1
	}
	return -1
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
