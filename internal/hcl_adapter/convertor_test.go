package hcl_adapter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/framegridgo/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestFromCtyValue(t *testing.T) {
	c := NewConverter()
	testCases := []struct {
		name string
		in   cty.Value
		want any
	}{
		{name: "absent", in: cty.NilVal, want: nil},
		{name: "null", in: cty.NullVal(cty.String), want: nil},
		{name: "string", in: cty.StringVal("red"), want: "red"},
		{name: "number", in: cty.NumberFloatVal(0.5), want: 0.5},
		{name: "int", in: cty.NumberIntVal(3), want: 3.0},
		{name: "bool", in: cty.True, want: true},
		{
			name: "tuple",
			in:   cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.StringVal("x")}),
			want: []any{1.0, "x"},
		},
		{
			name: "nested object",
			in: cty.ObjectVal(map[string]cty.Value{
				"color": cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(0)}),
				"lit":   cty.False,
			}),
			want: map[string]any{"color": []any{1.0, 0.0}, "lit": false},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.FromCtyValue(tc.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParameters(t *testing.T) {
	c := NewConverter()

	params, err := c.Parameters(cty.NilVal)
	require.NoError(t, err)
	assert.Equal(t, scene.Parameters{}, params)

	params, err = c.Parameters(cty.ObjectVal(map[string]cty.Value{"ambient": cty.NumberFloatVal(0.25)}))
	require.NoError(t, err)
	assert.Equal(t, scene.Parameters{"ambient": 0.25}, params)

	_, err = c.Parameters(cty.StringVal("nope"))
	assert.ErrorContains(t, err, "parameters must be an object")
}

func TestFilterKeys(t *testing.T) {
	c := NewConverter()

	keys, err := c.FilterKeys(cty.ObjectVal(map[string]cty.Value{
		"style":   cty.StringVal("forward"),
		"level":   cty.NumberIntVal(2),
		"enabled": cty.True,
	}))
	require.NoError(t, err)
	assert.Equal(t, []scene.FilterKey{
		{Name: "enabled", Value: true},
		{Name: "level", Value: 2.0},
		{Name: "style", Value: "forward"},
	}, keys, "sorted by name")

	keys, err = c.FilterKeys(cty.NilVal)
	require.NoError(t, err)
	assert.Nil(t, keys)
}

func TestToCtyValue(t *testing.T) {
	c := NewConverter()

	v, err := c.ToCtyValue(map[string]string{"a": "b"})
	require.NoError(t, err)
	assert.True(t, v.Equals(cty.MapVal(map[string]cty.Value{"a": cty.StringVal("b")})).True())

	v, err = c.ToCtyValue(nil)
	require.NoError(t, err)
	assert.Equal(t, cty.NilVal, v)
}
