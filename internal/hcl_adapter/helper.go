package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder often populates optional fields with non-nil, zero-width
// expression objects, so a simple nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}

	// A real attribute occupies bytes in the file, while a placeholder for an
	// omitted optional attribute has a zero-width range.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// boolAttr evaluates an optional boolean attribute, returning def when the
// attribute was omitted.
func boolAttr(ctx context.Context, expr hcl.Expression, attrName string, def bool) (bool, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return def, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return def, fmt.Errorf("invalid value for '%s': %w", attrName, diags)
	}
	if val.IsNull() {
		return def, nil
	}
	var out bool
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return def, fmt.Errorf("'%s' must be a bool, but got %s", attrName, val.Type().FriendlyName())
	}
	return out, nil
}

// vec3 reads an optional three-component vector attribute.
func vec3(values []float64, attrName string, def [3]float32) ([3]float32, error) {
	if len(values) == 0 {
		return def, nil
	}
	if len(values) != 3 {
		return def, fmt.Errorf("'%s' must have 3 components, but got %d", attrName, len(values))
	}
	return [3]float32{float32(values[0]), float32(values[1]), float32(values[2])}, nil
}

// isNullOrAbsent is true for omitted cty.Value attributes as well as for
// explicit nulls.
func isNullOrAbsent(v cty.Value) bool {
	return v.IsNull() || !v.IsKnown()
}
