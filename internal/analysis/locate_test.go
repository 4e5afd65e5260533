package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/graphovl/internal/scan"
)

// Test Plan for Function Body Location:
// - The body spans from the line after the signature to the matching close brace
// - Braces inside line comments are not counted
// - Nested blocks are included in the body
// - Multi-line signatures are found through the full signature text
// - The last-line key is used when the full signature is not present verbatim
// - An unknown signature is reported as not found
// - An empty body is found and reported as empty
// - A prototype with the same text does not shadow the definition
// - A name that is a suffix of an earlier function name does not match it

func locate(t *testing.T, src string, def scan.Definition) string {
	t.Helper()
	body, ok := Locate(src, def)
	require.True(t, ok, "signature of %s not found", def.Name)
	return body
}

func TestLocate_SimpleBody(t *testing.T) {
	t.Parallel()

	src := "void Foo_Init(Foo* this) {\n    Foo_Wait(this);\n}\n\nvoid Foo_Wait(Foo* this) {\n    x = 1;\n}\n"
	def := scan.Definition{Name: "Foo_Init", Signature: "Foo_Init(Foo* this) {"}

	assert.Equal(t, "    Foo_Wait(this);\n", locate(t, src, def))
}

func TestLocate_BraceInsideLineComment(t *testing.T) {
	t.Parallel()

	src := `void Foo_Update(Foo* this) {
    if (this->timer == 0) {
        Foo_Wait(this);
    }  // closing if {
    Foo_Attack(this);
}

void Foo_Other(Foo* this) {
    Foo_Other2(this);
}
`
	def := scan.Definition{Name: "Foo_Update", Signature: "Foo_Update(Foo* this) {"}
	body := locate(t, src, def)

	assert.Contains(t, body, "Foo_Attack(this);")
	assert.NotContains(t, body, "Foo_Other2", "must stop at the matching brace")
	assert.NotContains(t, body, "closing if", "comment suffix is stripped")
	assert.Contains(t, body, "    }  \n")
}

func TestLocate_NestedBlocks(t *testing.T) {
	t.Parallel()

	src := "void Foo_Draw(Foo* this) {\n    switch (x) {\n        case 0: {\n            a();\n        }\n    }\n}\n"
	def := scan.Definition{Name: "Foo_Draw", Signature: "Foo_Draw(Foo* this) {"}

	assert.Equal(t,
		"    switch (x) {\n        case 0: {\n            a();\n        }\n    }\n",
		locate(t, src, def))
}

func TestLocate_MultiLineSignature(t *testing.T) {
	t.Parallel()

	src := "void Foo_Wait(Foo* this,\n              PlayState* play) {\n    Foo_Attack(this);\n}\n"
	def := scan.Definition{Name: "Foo_Wait", Signature: "Foo_Wait(Foo* this,\n              PlayState* play) {"}

	assert.Equal(t, "    Foo_Attack(this);\n", locate(t, src, def))
}

func TestLocate_FallsBackToLastLine(t *testing.T) {
	t.Parallel()

	src := "void Foo_Wait(Foo* this,\n\tPlayState* play) {\n    Foo_Attack(this);\n}\n"
	def := scan.Definition{Name: "Foo_Wait", Signature: "Foo_Wait(Foo* this, PlayState* play) {\nPlayState* play) {"}

	assert.Equal(t, "    Foo_Attack(this);\n", locate(t, src, def))
}

func TestLocate_NotFound(t *testing.T) {
	t.Parallel()

	src := "void Foo_Init(Foo* this) {\n    a();\n}\n"

	body, ok := Locate(src, scan.Definition{Name: "Foo_Gone", Signature: "Foo_Gone() {"})
	assert.False(t, ok)
	assert.Empty(t, body)

	_, ok = Locate(src, scan.Definition{})
	assert.False(t, ok)
}

func TestLocate_EmptyBody(t *testing.T) {
	t.Parallel()

	src := "void Foo_Helper(Foo* this) {\n}\n\nvoid Foo_Init(Foo* this) {\n    a();\n}\n"
	def := scan.Definition{Name: "Foo_Helper", Signature: "Foo_Helper(Foo* this) {"}

	body, ok := Locate(src, def)
	assert.True(t, ok)
	assert.Empty(t, body)
}

func TestLocate_PrototypeDoesNotShadow(t *testing.T) {
	t.Parallel()

	src := "void Foo_Init(Foo* this);\n\nvoid Foo_Init(Foo* this) {\n    a();\n}\n"
	def := scan.Definition{Name: "Foo_Init", Signature: "Foo_Init(Foo* this) {"}

	assert.Equal(t, "    a();\n", locate(t, src, def))
}

func TestLocate_SuffixNameDoesNotMatch(t *testing.T) {
	t.Parallel()

	src := `void EnFoo_Wait(Foo* this) {
    Foo_Helper(this);
}

void Foo_Init(Foo* this) {
    Foo_Wait(this);
}

void Foo_Wait(Foo* this) {
    this->actionFunc = Foo_Init;
}
`
	tests := []struct {
		name string
		def  scan.Definition
	}{
		{
			name: "full signature",
			def:  scan.Definition{Name: "Foo_Wait", Signature: "Foo_Wait(Foo* this) {"},
		},
		{
			name: "last-line key",
			def:  scan.Definition{Name: "Foo_Wait", Signature: "Foo_Wait(Foo*  this) {\nFoo_Wait(Foo* this) {"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body := locate(t, src, tt.def)
			assert.Contains(t, body, "this->actionFunc = Foo_Init;")
			assert.NotContains(t, body, "Foo_Helper")
		})
	}
}
