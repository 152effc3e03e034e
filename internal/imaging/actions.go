package imaging

import (
	"context"
	"fmt"

	"github.com/imgpipe/imgpipe/internal/dataset"
	"github.com/imgpipe/imgpipe/internal/engine"
)

// RegisterActions wires the imaging transforms granted by caps into the
// pipeline registry. Transforms outside the capability set are simply not
// registered, so a driver referencing one fails with an unknown-action
// error before any batch runs.
func RegisterActions(reg *engine.Registry, e *engine.Engine, caps Capabilities) error {
	if caps.Has(TransformResize) {
		if err := reg.Register(TransformResize, resizeAction(e)); err != nil {
			return err
		}
	}
	if caps.Has(TransformConvert) {
		if err := reg.Register(TransformConvert, convertAction(e)); err != nil {
			return err
		}
	}
	return nil
}

// resizeAction scales every item of an attribute. Numeric results are
// stacked back into one composite array when the source column is stacked;
// a rows column is replaced row for row. The strategy follows the source
// column's declared kind, never the shape of individual results, and can
// be forced through the "merge" argument.
func resizeAction(e *engine.Engine) engine.Action {
	return func(ctx context.Context, b *dataset.Batch, args map[string]any) (*dataset.Batch, error) {
		attr, err := attrArg(args, "attr", dataset.AttrImages)
		if err != nil {
			return b, err
		}
		height, err := intArg(args, "height")
		if err != nil {
			return b, err
		}
		width, err := intArg(args, "width")
		if err != nil {
			return b, err
		}
		method, err := ParseMethod(strArg(args, "method", ""))
		if err != nil {
			return b, err
		}

		strategy, err := mergeArg(args, b, attr)
		if err != nil {
			return b, err
		}

		fn, err := Resize(height, width, method)
		if err != nil {
			return b, err
		}
		return e.Run(ctx, b, engine.InitAttr(attr), attr, strategy, fn)
	}
}

// convertAction materializes a rows column of images from a column of
// pixel grids.
func convertAction(e *engine.Engine) engine.Action {
	return func(ctx context.Context, b *dataset.Batch, args map[string]any) (*dataset.Batch, error) {
		attr, err := attrArg(args, "attr", dataset.AttrImages)
		if err != nil {
			return b, err
		}
		dst, err := attrArg(args, "dst", attr)
		if err != nil {
			return b, err
		}
		return e.ApplyTransform(ctx, b, engine.InitAttr(attr), dst, ConvertToImage())
	}
}

// attrArg resolves an attribute-name argument, falling back to def.
func attrArg(args map[string]any, key string, def dataset.Attr) (dataset.Attr, error) {
	name := strArg(args, key, "")
	if name == "" {
		return def, nil
	}
	return dataset.ParseAttr(name)
}

// mergeArg resolves the merge strategy: an explicit "merge" argument wins,
// otherwise the source column's declared kind decides.
func mergeArg(args map[string]any, b *dataset.Batch, attr dataset.Attr) (engine.MergeStrategy, error) {
	if name := strArg(args, "merge", ""); name != "" {
		return engine.ParseMergeStrategy(name)
	}
	if col := b.Column(attr); col != nil && col.Kind() == dataset.KindStacked {
		return engine.MergeStack, nil
	}
	return engine.MergeReplace, nil
}

// strArg reads a string argument, falling back to def.
func strArg(args map[string]any, key, def string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// intArg reads a required integer argument. YAML decoding hands integers
// through as int, but float64 is accepted for drivers that decode numbers
// loosely.
func intArg(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("argument %q must be an integer, got %T", key, v)
	}
}
