package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseYAML(t *testing.T) {
	doc := `
- int: 42
- float: 3.5
- float: .inf
- bool: true
- char: x
- char: 65
- unit: null
- function: negate
- tag: 9
`
	values, err := ParseYAML([]byte(doc))
	require.NoError(t, err)
	require.Len(t, values, 9)

	expected := []*Value{
		Int(42), Float(3.5), Float(math.Inf(1)), Bool(true),
		Char('x'), Char('A'), Unit(),
	}
	for i, want := range expected {
		require.True(t, Equal(values[i], want), "values[%d] tag %s, want %s", i, values[i].Tag, want.Tag)
	}

	res, err := values[7].Call(Int(5))
	require.NoError(t, err)
	i, _ := res.AsInt()
	require.Equal(t, int64(-5), i)

	require.Equal(t, Tag(9), values[8].Tag)
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"not a sequence", "int: 1", "YAML parse error"},
		{"two keys", "- {int: 1, bool: true}", "exactly one key"},
		{"bad int", "- int: abc", "int: expected integer"},
		{"bad bool", "- bool: 3", "bool: expected boolean"},
		{"long char", "- char: xy", "single byte"},
		{"char code range", "- char: 300", "out of range"},
		{"unknown builtin", "- function: launch", "unknown builtin"},
		{"unknown kind", "- string: hi", "unknown value kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		name string
		arg  *Value
		want *Value
	}{
		{"identity", Char('q'), Char('q')},
		{"negate", Float(2.5), Float(-2.5)},
		{"not", Bool(true), Bool(false)},
		{"succ", Int(41), Int(42)},
		{"succ", Char('a'), Char('b')},
		{"not", Int(1), Unit()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Builtins[tt.name](tt.arg)
			require.True(t, Equal(got, tt.want), "%s(%s) returned tag %s", tt.name, tt.arg.Tag, got.Tag)
		})
	}
}
