package imaging

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/imgpipe/imgpipe/internal/engine"
	"github.com/imgpipe/imgpipe/internal/grid"
)

// Conversion errors.
var (
	ErrUnsupportedValue = errors.New("value type is not supported by this transform")
	ErrNotAPixmap       = errors.New("grid must be a rank-2 pixel array")
)

// ToImage renders a rank-2 grid as an 8-bit grayscale image. Values are
// clamped to [0, 255]; the grid's first axis is the image row.
func ToImage(d *grid.Dense) (*image.Gray, error) {
	if d == nil || d.Rank() != 2 {
		return nil, fmt.Errorf("%w: got %v", ErrNotAPixmap, shapeOf(d))
	}

	shape := d.Shape()
	h, w := shape[0], shape[1]
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: clampByte(d.At(y, x))})
		}
	}
	return img, nil
}

// FromImage converts an image to a rank-2 grid of luminance values with
// shape (height, width).
func FromImage(img image.Image) (*grid.Dense, error) {
	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	d, err := grid.New(h, w)
	if err != nil {
		return nil, err
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			d.Set(float64(g.Y), y, x)
		}
	}
	return d, nil
}

// ConvertToImage is the per-item transform materializing image values from
// pixel grids.
func ConvertToImage() engine.TransformFunc[any, any] {
	return func(_ context.Context, value any) (any, error) {
		d, ok := value.(*grid.Dense)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
		}
		return ToImage(d)
	}
}

// ConvertToGrid is the per-item transform materializing pixel grids from
// image values.
func ConvertToGrid() engine.TransformFunc[any, any] {
	return func(_ context.Context, value any) (any, error) {
		img, ok := value.(image.Image)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
		}
		return FromImage(img)
	}
}

// clampByte clamps v to the 8-bit pixel range.
func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

// shapeOf formats a grid's shape for error messages, tolerating nil.
func shapeOf(d *grid.Dense) []int {
	if d == nil {
		return nil
	}
	return d.Shape()
}
