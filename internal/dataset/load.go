package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/imgpipe/imgpipe/internal/logging"
)

// Load errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported load format")
	ErrNoSource          = errors.New("load requires at least one source column")
)

// Load replaces the batch's attribute slots with the given source columns,
// assigned to slots in declaration order (images, labels, masks). Only the
// default format (an empty format string) is understood at this layer; any
// other format is the concern of an external loader and is refused. Slots
// without a source column are cleared.
func (b *Batch) Load(ctx context.Context, format string, cols ...[]any) error {
	log := logging.FromContext(ctx)

	if format != "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if len(cols) == 0 {
		return ErrNoSource
	}
	if len(cols) > int(numAttrs) {
		return fmt.Errorf("%w: got %d columns for %d attribute slots",
			ErrColumnLength, len(cols), numAttrs)
	}

	// Validate every column before touching the batch so a bad source
	// leaves all slots unchanged.
	for slot, col := range cols {
		if col != nil && len(col) != b.index.Len() {
			return fmt.Errorf("%w: source column %d has %d entries for %d items",
				ErrColumnLength, slot, len(col), b.index.Len())
		}
	}

	for attr := Attr(0); attr < numAttrs; attr++ {
		var col *Column
		if int(attr) < len(cols) && cols[attr] != nil {
			col = NewRows(cols[attr])
		}
		b.cols[attr] = col
	}

	log.Debug().
		Str("component", "dataset").
		Str("batch_id", b.id.String()).
		Int("columns", len(cols)).
		Msg("loaded batch attributes")
	return nil
}

// Dump is the persistence hook for pipeline drivers. The engine defines no
// on-disk format; real writers live with the driver, so this records the
// request and succeeds.
func (b *Batch) Dump(ctx context.Context, dst string, format string) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "dataset").
		Str("batch_id", b.id.String()).
		Str("dst", dst).
		Str("format", format).
		Msg("dump requested; persistence is delegated to the pipeline driver")
	return nil
}
