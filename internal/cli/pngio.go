package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/imgpipe/imgpipe/internal/dataset"
	"github.com/imgpipe/imgpipe/internal/grid"
	"github.com/imgpipe/imgpipe/internal/imaging"
	"github.com/imgpipe/imgpipe/internal/logging"
)

// ErrNoInputs is returned when the input directory holds no PNG files.
var ErrNoInputs = errors.New("no PNG files found in input directory")

// loadBatch reads every PNG in dir (sorted by name for a deterministic
// index) into a batch whose images attribute holds one pixel grid per
// file. File names, without the extension, become the item identifiers.
func loadBatch(ctx context.Context, dir string) (*dataset.Batch, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputs, dir)
	}
	sort.Strings(names)

	ids := make([]string, len(names))
	images := make([]any, len(names))
	for i, name := range names {
		img, err := readPNG(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		d, err := imaging.FromImage(img)
		if err != nil {
			return nil, err
		}
		ids[i] = strings.TrimSuffix(name, filepath.Ext(name))
		images[i] = d
	}

	ix, err := dataset.NewIndex(ids)
	if err != nil {
		return nil, err
	}
	b, err := dataset.New(ix, nil)
	if err != nil {
		return nil, err
	}
	if err := b.Load(ctx, "", images); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "cli").
		Str("dir", dir).
		Int("images", len(images)).
		Msg("decoded input images")
	return b, nil
}

// writeBatch encodes the batch's images attribute as PNGs named after the
// item identifiers.
func writeBatch(ctx context.Context, b *dataset.Batch, dir string) error {
	col := b.Images()
	if col == nil {
		return errors.New("batch has no images attribute to write")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for pos := 0; pos < b.Len(); pos++ {
		id, err := b.Index().At(pos)
		if err != nil {
			return err
		}
		value, err := col.Row(pos)
		if err != nil {
			return err
		}
		img, err := toImage(value)
		if err != nil {
			return fmt.Errorf("item %q: %w", id, err)
		}
		if err := writePNG(filepath.Join(dir, id+".png"), img); err != nil {
			return err
		}
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "cli").
		Str("dir", dir).
		Int("images", b.Len()).
		Msg("wrote output images")
	return nil
}

// toImage renders one images-column value, whichever representation the
// pipeline left it in.
func toImage(value any) (image.Image, error) {
	switch v := value.(type) {
	case image.Image:
		return v, nil
	case *grid.Dense:
		return imaging.ToImage(v)
	default:
		return nil, fmt.Errorf("cannot encode %T as an image", value)
	}
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
