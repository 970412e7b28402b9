package hcl_adapter

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/framegridgo/internal/scene"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter turns free-form HCL values, such as material parameters and
// filter keys, into the Go values stored on scene objects.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// ToCtyValue converts a native Go value into its corresponding cty.Value.
func (c *Converter) ToCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NilVal, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

// FromCtyValue converts a cty.Value into plain Go values: strings, float64,
// bool, []any for lists, sets and tuples, and map[string]any for maps and
// objects.
func (c *Converter) FromCtyValue(val cty.Value) (any, error) {
	if isNullOrAbsent(val) {
		return nil, nil
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			v, err := c.FromCtyValue(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any, val.LengthInt())
		for k, ev := range val.AsValueMap() {
			v, err := c.FromCtyValue(ev)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", k, err)
			}
			out[k] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
}

// Parameters converts an object of uniform values. An omitted attribute
// yields an empty set.
func (c *Converter) Parameters(val cty.Value) (scene.Parameters, error) {
	out := scene.Parameters{}
	if isNullOrAbsent(val) {
		return out, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("parameters must be an object, but got %s", val.Type().FriendlyName())
	}
	v, err := c.FromCtyValue(val)
	if err != nil {
		return nil, err
	}
	for k, pv := range v.(map[string]any) {
		out[k] = pv
	}
	return out, nil
}

// FilterKeys converts an object of filter keys, sorted by name. Values must
// be strings, numbers or bools so that keys compare with ==.
func (c *Converter) FilterKeys(val cty.Value) ([]scene.FilterKey, error) {
	if isNullOrAbsent(val) {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("filter keys must be an object, but got %s", val.Type().FriendlyName())
	}
	var keys []scene.FilterKey
	for name, ev := range val.AsValueMap() {
		if !ev.Type().IsPrimitiveType() {
			return nil, fmt.Errorf("filter key '%s' must be a string, number or bool, but got %s", name, ev.Type().FriendlyName())
		}
		v, err := c.FromCtyValue(ev)
		if err != nil {
			return nil, fmt.Errorf("filter key '%s': %w", name, err)
		}
		keys = append(keys, scene.FilterKey{Name: name, Value: v})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	return keys, nil
}
