package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okanra/jsonmint/pkg/schema"
)

func TestParse_PlainLiteral(t *testing.T) {
	for _, s := range []string{"hello", "", "https://sample.com", "a {{variable|x}} inside"} {
		d, ok, err := Parse(s)
		require.NoError(t, err, s)
		assert.False(t, ok, s)
		assert.Nil(t, d, s)
	}
}

func TestParse_Variable(t *testing.T) {
	d, ok, err := Parse("{{variable|colors}}")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, KindVariable, d.Kind)
	assert.Equal(t, "colors", d.Name)
}

func TestParse_Function(t *testing.T) {
	d, ok, err := Parse("{{function|choice}}")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, KindFunction, d.Kind)
	assert.Equal(t, "choice", d.Name)
}

func TestParse_ConstCoercion(t *testing.T) {
	tests := []struct {
		marker string
		want   any
	}{
		{"{{const|hello}}", "hello"},
		{"{{const|7|int}}", int64(7)},
		{"{{const|2.5|float}}", 2.5},
		{"{{const|true|bool}}", true},
		{"{{const|7|str}}", "7"},
	}
	for _, tc := range tests {
		d, ok, err := Parse(tc.marker)
		require.NoError(t, err, tc.marker)
		require.True(t, ok, tc.marker)
		assert.Equal(t, KindConst, d.Kind, tc.marker)
		assert.Equal(t, tc.want, d.Value, tc.marker)
	}
}

func TestParse_BareMarkers(t *testing.T) {
	for _, tc := range []struct {
		marker string
		kind   Kind
	}{
		{"{{cond}}", KindCond},
		{"{{repeat}}", KindRepeat},
	} {
		d, ok, err := Parse(tc.marker)
		require.NoError(t, err, tc.marker)
		require.True(t, ok, tc.marker)
		assert.Equal(t, tc.kind, d.Kind)
	}
}

// --- error cases ---

func TestParse_UnclosedMarker(t *testing.T) {
	_, _, err := Parse("{{variable|x")
	var me *schema.MintError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, schema.ErrCodeMarkerSyntax, me.Code)
	assert.Contains(t, me.Message, "{{variable|x")
}

func TestParse_EmptyKind(t *testing.T) {
	_, _, err := Parse("{{}}")
	var me *schema.MintError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, schema.ErrCodeMarkerSyntax, me.Code)
}

func TestParse_UnknownKind(t *testing.T) {
	_, _, err := Parse("{{loop|x}}")
	var me *schema.MintError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, schema.ErrCodeUnknownDirective, me.Code)
	assert.Contains(t, me.Message, "loop")
	assert.Contains(t, me.Message, "available")
}

func TestParse_ConstBadCoercion(t *testing.T) {
	_, _, err := Parse("{{const|seven|int}}")
	var me *schema.MintError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, schema.ErrCodeTypeCoercion, me.Code)
}

func TestParse_ConstUnknownType(t *testing.T) {
	_, _, err := Parse("{{const|x|tuple}}")
	var me *schema.MintError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, schema.ErrCodeTypeCoercion, me.Code)
}

func TestParse_ExtraSegments(t *testing.T) {
	for _, s := range []string{"{{repeat|3}}", "{{cond|x}}", "{{variable|a|b}}"} {
		_, _, err := Parse(s)
		var me *schema.MintError
		require.ErrorAs(t, err, &me, s)
		assert.Equal(t, schema.ErrCodeMarkerSyntax, me.Code, s)
	}
}
