package enums

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Enum Resolution:
// - N members without explicit values map to 0..N-1
// - Alias to an earlier member inherits its value and continues from it
// - Explicit literals in any base reset the running value
// - Comment-only fragments and trailing commas are skipped
// - Constant expressions over earlier members are evaluated
// - Unparsable values keep the running value
// - Blocks share one namespace, last write wins
// - LookupString renders decimal values

func TestResolve_Sequential(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 5, 12} {
		t.Run(fmt.Sprintf("%d members", n), func(t *testing.T) {
			members := make([]string, n)
			want := make(Table, n)
			for i := range members {
				members[i] = fmt.Sprintf("MEMBER_%d", i)
				want[members[i]] = int64(i)
			}

			src := "typedef enum {\n    " + strings.Join(members, ",\n    ") + "\n} Sample;"
			assert.Equal(t, want, Resolve(src))
		})
	}
}

func TestResolve_Alias(t *testing.T) {
	t.Parallel()

	got := Resolve("enum { A, B = A, C };")
	assert.Equal(t, Table{"A": 0, "B": 0, "C": 1}, got)
}

func TestResolve_ExplicitLiterals(t *testing.T) {
	t.Parallel()

	got := Resolve(`enum {
    FIRST = 0x10,
    SECOND,
    THIRD = 010,
    FOURTH = 0b11,
    FIFTH
};`)
	assert.Equal(t, Table{"FIRST": 16, "SECOND": 17, "THIRD": 8, "FOURTH": 3, "FIFTH": 4}, got)
}

func TestResolve_CommentsAndTrailingComma(t *testing.T) {
	t.Parallel()

	got := Resolve(`typedef enum {
    /* 0 */ FOO_WAIT,
    /* 1 */ FOO_ATTACK, // swings
    // padding
    /* 2 */ FOO_DIE,
} EnFooAction;`)
	assert.Equal(t, Table{"FOO_WAIT": 0, "FOO_ATTACK": 1, "FOO_DIE": 2}, got)
}

func TestResolve_Expressions(t *testing.T) {
	t.Parallel()

	got := Resolve("enum { BASE = 4, NEXT = BASE + 2, SHIFTED = 1 << 3, AFTER };")
	assert.Equal(t, Table{"BASE": 4, "NEXT": 6, "SHIFTED": 8, "AFTER": 9}, got)
}

func TestResolve_UnparsableValueKeepsRunningValue(t *testing.T) {
	t.Parallel()

	got := Resolve("enum { A, B = sizeof(int), C };")
	assert.Equal(t, Table{"A": 0, "B": 1, "C": 2}, got)
}

func TestResolve_LastWriteWins(t *testing.T) {
	t.Parallel()

	got := Resolve("enum { X, Y };\nenum Other { Z, X };")
	assert.Equal(t, Table{"X": 1, "Y": 1, "Z": 0}, got)
}

func TestTable_LookupString(t *testing.T) {
	t.Parallel()

	table := Table{"FOO": -3}
	s, ok := table.LookupString("FOO")
	assert.True(t, ok)
	assert.Equal(t, "-3", s)

	_, ok = table.LookupString("BAR")
	assert.False(t, ok)
}
