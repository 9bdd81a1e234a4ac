package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, int64(7), NormalizeNumber(json.Number("7")))
	assert.Equal(t, int64(-3), NormalizeNumber(json.Number("-3")))
	assert.Equal(t, 2.5, NormalizeNumber(json.Number("2.5")))
	assert.Equal(t, 1e100, NormalizeNumber(json.Number("1e100")))
}

func TestIntValue(t *testing.T) {
	tests := []struct {
		in   any
		want int64
		ok   bool
	}{
		{int64(5), 5, true},
		{int(5), 5, true},
		{float64(5), 5, true},
		{float64(5.5), 0, false},
		{json.Number("5"), 5, true},
		{json.Number("5.5"), 0, false},
		{"5", 0, false},
		{nil, 0, false},
	}
	for _, tc := range tests {
		n, ok := IntValue(tc.in)
		assert.Equal(t, tc.ok, ok, "%v", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, n, "%v", tc.in)
		}
	}
}

func TestTruthy(t *testing.T) {
	falsy := []any{nil, false, "", int64(0), 0.0, []any{}, NewObject(), map[string]any{}}
	for _, v := range falsy {
		assert.False(t, Truthy(v), "%#v should be falsy", v)
	}

	populated := NewObject()
	populated.Set("k", 1)
	truthy := []any{true, "x", int64(-1), 0.5, []any{nil}, populated}
	for _, v := range truthy {
		assert.True(t, Truthy(v), "%#v should be truthy", v)
	}
}

func TestDeepEqual(t *testing.T) {
	ordered := NewObject()
	ordered.Set("a", int64(1))
	ordered.Set("b", "x")

	tests := []struct {
		a, b any
		want bool
	}{
		{int64(1), float64(1), true},
		{int64(1), float64(1.5), false},
		{"a", "a", true},
		{"1", int64(1), false},
		{nil, nil, true},
		{nil, false, false},
		{[]any{int64(1), "x"}, []any{float64(1), "x"}, true},
		{[]any{int64(1)}, []any{int64(1), int64(2)}, false},
		{ordered, map[string]any{"b": "x", "a": 1.0}, true},
		{ordered, map[string]any{"a": 1.0}, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DeepEqual(tc.a, tc.b), "%v vs %v", tc.a, tc.b)
	}
}

func TestPlain(t *testing.T) {
	obj := NewObject()
	obj.Set("n", int64(7))
	obj.Set("nested", []any{int64(1), "x"})

	v := Plain(obj)
	assert.Equal(t, map[string]any{"n": 7.0, "nested": []any{1.0, "x"}}, v)
}

func TestDeepCopy_Isolation(t *testing.T) {
	src := map[string]any{"list": []any{int64(1)}}
	cp := DeepCopy(src).(map[string]any)

	cp["list"].([]any)[0] = int64(99)
	assert.Equal(t, int64(1), src["list"].([]any)[0])
}

func TestObject_MarshalKeepsOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("zeta", 1)
	obj.Set("alpha", 2)

	b, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":2}`, string(b))
}
