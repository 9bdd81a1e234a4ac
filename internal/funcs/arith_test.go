package funcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		args []any
		want any
	}{
		{[]any{int64(1), int64(2), int64(3)}, int64(6)},
		{[]any{int64(1), float64(0.5)}, float64(1.5)},
		{[]any{"https://sample", "7", ".com"}, "https://sample7.com"},
		{[]any{[]any{int64(1)}, []any{int64(2)}}, []any{int64(1), int64(2)}},
		{[]any{false, false, true}, true},
		{[]any{false, false}, false},
	}
	for _, tc := range tests {
		v, err := r.Call("add", tc.args, testRNG())
		require.NoError(t, err, "%v", tc.args)
		assert.Equal(t, tc.want, v, "%v", tc.args)
	}
}

func TestAdd_MixedTypes(t *testing.T) {
	r := NewRegistry()

	_, err := r.Call("add", []any{"a", int64(1)}, testRNG())
	assert.Error(t, err)
}

func TestSubMulDivModPowNeg(t *testing.T) {
	r := NewRegistry()

	cases := []struct {
		name string
		args []any
		want any
	}{
		{"sub", []any{int64(5), int64(3)}, int64(2)},
		{"sub", []any{float64(5.5), int64(3)}, float64(2.5)},
		{"sub", []any{true, true}, false},
		{"mul", []any{int64(2), int64(3), int64(4)}, int64(24)},
		{"mul", []any{true, true}, true},
		{"mul", []any{true, false}, false},
		{"div", []any{int64(7), int64(2)}, float64(3.5)},
		{"mod", []any{int64(7), int64(3)}, int64(1)},
		{"pow", []any{int64(2), int64(10)}, int64(1024)},
		{"pow", []any{float64(4), float64(0.5)}, float64(2)},
		{"neg", []any{int64(5)}, int64(-5)},
		{"neg", []any{true}, false},
	}
	for _, tc := range cases {
		v, err := r.Call(tc.name, tc.args, testRNG())
		require.NoError(t, err, "%s %v", tc.name, tc.args)
		assert.Equal(t, tc.want, v, "%s %v", tc.name, tc.args)
	}
}

func TestDivisionByZero(t *testing.T) {
	r := NewRegistry()

	_, err := r.Call("div", []any{int64(1), int64(0)}, testRNG())
	assert.Error(t, err)

	_, err = r.Call("mod", []any{int64(1), int64(0)}, testRNG())
	assert.Error(t, err)
}
