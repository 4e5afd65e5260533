package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want string
	}{
		{"1+2", "3"},
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"7 / 2", "3"},
		{"-7 / 2", "-3"},
		{"-7 % 3", "-1"},
		{"1 << 4", "16"},
		{"0x100 >> 4", "16"},
		{"0xF0 | 0x0F", "255"},
		{"0xFF & 0x0F", "15"},
		{"6 ^ 3", "5"},
		{"~0", "-1"},
		{"!0", "1"},
		{"!5", "0"},
		{"010", "8"},
		{"0b101", "5"},
		{"10U", "10"},
		{"1 + 2 << 1", "6"},
		{"1 | 2 ^ 3 & 4", "3"},
		{`"text"`, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr    string
		wantErr error
	}{
		{"", ErrSyntax},
		{"1 +", ErrSyntax},
		{"(1 + 2", ErrSyntax},
		{"1 2", ErrSyntax},
		{"foo + 1", ErrSyntax},
		{"Foo(1)", ErrSyntax},
		{"1 / 0", ErrDivideByZero},
		{"1 % 0", ErrDivideByZero},
		{"1 << -1", ErrSyntax},
		{"-8 >> -1", ErrSyntax},
		{"1 << 64", ErrSyntax},
		{"1 >> 64", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Eval(tt.expr)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseInt(t *testing.T) {
	t.Parallel()

	v, err := ParseInt("0x7F")
	require.NoError(t, err)
	assert.Equal(t, int64(127), v)

	v, err = ParseInt(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = ParseInt("FOO")
	assert.ErrorIs(t, err, ErrSyntax)
}
