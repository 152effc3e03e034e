package cli

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgpipe/imgpipe/internal/dataset"
	"github.com/imgpipe/imgpipe/internal/engine"
	"github.com/imgpipe/imgpipe/internal/grid"
)

func writeTestPNG(t *testing.T, path string, w, h int, fill uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = fill
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestLoadBatch(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "b.png"), 4, 4, 10)
	writeTestPNG(t, filepath.Join(dir, "a.png"), 4, 4, 20)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o600))

	b, err := loadBatch(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, b.Index().IDs(), "identifiers are sorted file stems")
	require.NotNil(t, b.Images())

	v, err := b.Images().Row(0)
	require.NoError(t, err)
	d, ok := v.(*grid.Dense)
	require.True(t, ok)
	assert.Equal(t, []int{4, 4}, d.Shape())
	assert.Equal(t, 20.0, d.At(0, 0))

	t.Run("EmptyDir", func(t *testing.T) {
		_, err := loadBatch(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, ErrNoInputs)
	})
}

func TestWriteBatch(t *testing.T) {
	ctx := context.Background()
	ix, err := dataset.NewIndex([]string{"one", "two"})
	require.NoError(t, err)
	b, err := dataset.New(ix, nil)
	require.NoError(t, err)

	stacked, err := grid.Stack([]*grid.Dense{grid.MustNew(3, 5), grid.MustNew(3, 5)})
	require.NoError(t, err)
	col, err := dataset.NewStacked(stacked)
	require.NoError(t, err)
	require.NoError(t, b.SetImages(col))

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, writeBatch(ctx, b, dir))

	for _, name := range []string{"one.png", "two.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		img, err := png.Decode(f)
		require.NoError(t, err)
		require.NoError(t, f.Close())
		assert.Equal(t, 5, img.Bounds().Dx())
		assert.Equal(t, 3, img.Bounds().Dy())
	}
}

func TestRunCommand(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeTestPNG(t, filepath.Join(inDir, "x.png"), 8, 8, 100)
	writeTestPNG(t, filepath.Join(inDir, "y.png"), 8, 8, 200)

	cfgPath := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
concurrency: 2
logging:
  level: error
pipeline:
  - action: resize
    args:
      height: 4
      width: 4
      method: nearest
  - action: dump
`), 0o600))

	var out, errOut bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"run", "--config", cfgPath, "--input", inDir, "--output", outDir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "processed 2 images across 2 steps")

	f, err := os.Open(filepath.Join(outDir, "x.png"))
	require.NoError(t, err)
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, 4, img.Bounds().Dx())

	t.Run("UnknownAction", func(t *testing.T) {
		badCfg := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(badCfg, []byte("pipeline:\n  - action: sharpen\n"), 0o600))

		cmd := NewRootCmd("test")
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"run", "--config", badCfg, "--input", inDir})
		assert.Error(t, cmd.Execute())
	})
}

func TestRenderProgress(t *testing.T) {
	p := engine.NewProgress(4)
	p.AddProcessed(2)

	var buf bytes.Buffer
	renderProgress(&buf, 60, p.Snapshot())

	s := buf.String()
	assert.Contains(t, s, "50%")
	assert.Contains(t, s, "(2/4)")
	assert.Contains(t, s, "#")
	assert.Contains(t, s, "-")
}
