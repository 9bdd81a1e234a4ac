package funcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		args []any
		want string
	}{
		{[]any{"https://sample{}.com", int64(7)}, "https://sample7.com"},
		{[]any{"{} and {}", "a", "b"}, "a and b"},
		{[]any{"no placeholders"}, "no placeholders"},
		{[]any{"{}", []any{int64(1), int64(2)}}, "[1,2]"},
		{[]any{"{}", nil}, "null"},
		{[]any{"{}", 2.5}, "2.5"},
	}
	for _, tc := range tests {
		v, err := r.Call("format", tc.args, testRNG())
		require.NoError(t, err, "%v", tc.args)
		assert.Equal(t, tc.want, v)
	}
}

func TestCast(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		args []any
		want any
	}{
		{[]any{int64(42), "str"}, "42"},
		{[]any{"42", "int"}, int64(42)},
		{[]any{"2.5", "float"}, 2.5},
		{[]any{"true", "bool"}, true},
		{[]any{float64(3), "int"}, int64(3)},
	}
	for _, tc := range tests {
		v, err := r.Call("cast", tc.args, testRNG())
		require.NoError(t, err, "%v", tc.args)
		assert.Equal(t, tc.want, v)
	}
}

func TestCast_Errors(t *testing.T) {
	r := NewRegistry()

	_, err := r.Call("cast", []any{"seven", "int"}, testRNG())
	assert.Error(t, err)

	_, err = r.Call("cast", []any{"x", "tuple"}, testRNG())
	assert.Error(t, err)
}

func TestLen(t *testing.T) {
	r := NewRegistry()

	v, err := r.Call("len", []any{"héllo"}, testRNG())
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	v, err = r.Call("len", []any{[]any{1, 2, 3}}, testRNG())
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = r.Call("len", []any{int64(3)}, testRNG())
	assert.Error(t, err)
}

func TestCopy(t *testing.T) {
	r := NewRegistry()

	v, err := r.Call("copy", []any{"x", int64(3)}, testRNG())
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "x", "x"}, v)

	v, err = r.Call("copy", []any{"x", int64(0)}, testRNG())
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = r.Call("copy", []any{"x", int64(-1)}, testRNG())
	assert.Error(t, err)
}

func TestCount_DeltaAndKeys(t *testing.T) {
	r := NewRegistry()

	v, err := r.Call("count", []any{int64(5)}, testRNG())
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	v, err = r.Call("count", []any{int64(5)}, testRNG())
	require.NoError(t, err)
	assert.Equal(t, int64(10), v)

	// Separate key, separate counter.
	v, err = r.Call("count", []any{int64(1), "other"}, testRNG())
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// Fractional deltas surface as floats.
	v, err = r.Call("count", []any{0.5, "frac"}, testRNG())
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}
