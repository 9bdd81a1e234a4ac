package jsonmint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okanra/jsonmint/pkg/schema"
)

func doc(rawSchema string, vars map[string]any) *schema.Document {
	return &schema.Document{
		Schema:    json.RawMessage(rawSchema),
		Variables: vars,
	}
}

func TestGenerate_EndToEnd(t *testing.T) {
	d := doc(`{
		"id": ["{{function|uuid}}"],
		"color": ["{{function|choice}}", "{{variable|colors}}"],
		"version": "{{const|2|int}}",
		"items": ["{{repeat}}", 3, {"n": ["{{function|rand}}", 10]}]
	}`, map[string]any{"colors": []any{"red", "green", "blue"}})

	v, err := Generate(d, WithSeed(42))
	require.NoError(t, err)

	obj, ok := v.(*schema.Object)
	require.True(t, ok)

	color, _ := obj.Get("color")
	assert.Contains(t, []any{"red", "green", "blue"}, color)
	version, _ := obj.Get("version")
	assert.Equal(t, int64(2), version)
	items, _ := obj.Get("items")
	assert.Len(t, items, 3)
}

func TestGenerate_SeedDeterminism(t *testing.T) {
	d := doc(`["{{repeat}}", 5, ["{{function|uuid}}"]]`, nil)

	a, err := Generate(d, WithSeed(7))
	require.NoError(t, err)
	b, err := Generate(d, WithSeed(7))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Generate(d, WithSeed(8))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerate_UnseededRunsDiffer(t *testing.T) {
	d := doc(`["{{function|uuid}}"]`, nil)

	a, err := Generate(d)
	require.NoError(t, err)
	b, err := Generate(d)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerate_ErrorsSurfaceWithPath(t *testing.T) {
	d := doc(`{"outer": {"inner": "{{variable|missing}}"}}`, nil)

	_, err := Generate(d)
	var me *schema.MintError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, schema.ErrCodeUnboundVariable, me.Code)
	assert.Equal(t, "/outer/inner", me.Path)
}

func TestGenerate_MaxRepeatOption(t *testing.T) {
	d := doc(`["{{repeat}}", 100, "x"]`, nil)

	_, err := Generate(d, WithSeed(1), WithMaxRepeat(10))
	var me *schema.MintError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, schema.ErrCodeInvalidRepeatCount, me.Code)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(doc(`{"ok": "{{variable|x}}"}`, nil)))

	err := Check(doc(`{"bad": "{{loop|3}}"}`, nil))
	var me *schema.MintError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, schema.ErrCodeUnknownDirective, me.Code)
	assert.Equal(t, "/bad", me.Path)
}
