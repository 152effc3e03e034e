package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/imgpipe/imgpipe/internal/config"
	"github.com/imgpipe/imgpipe/internal/dataset"
	"github.com/imgpipe/imgpipe/internal/engine"
	"github.com/imgpipe/imgpipe/internal/imaging"
	"github.com/imgpipe/imgpipe/internal/logging"
)

type runOptions struct {
	configPath string
	inputDir   string
	outputDir  string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured pipeline over a directory of PNG images",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "pipeline.yaml", "pipeline configuration file")
	cmd.Flags().StringVarP(&opts.inputDir, "input", "i", "", "directory of input PNG images")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "directory for output images (omit to skip writing)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runPipeline(cmd *cobra.Command, opts *runOptions) error {
	start := time.Now()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	logger := logging.New(level, cmd.ErrOrStderr())
	ctx := logging.WithContext(cmd.Context(), logger)

	eng, err := newEngine(cmd, cfg)
	if err != nil {
		return err
	}
	reg, err := newRegistry(eng, cfg, opts)
	if err != nil {
		return err
	}

	b, err := loadBatch(ctx, opts.inputDir)
	if err != nil {
		return err
	}
	logger.Info().
		Str("component", "cli").
		Str("batch_id", b.ID().String()).
		Int("items", b.Len()).
		Int("steps", len(cfg.Pipeline)).
		Msg("starting pipeline")

	for i, step := range cfg.Pipeline {
		action, err := reg.Lookup(step.Action)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if b, err = action(ctx, b, step.Args); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}
	}
	finishProgress(cmd)

	if opts.outputDir != "" {
		if err := writeBatch(ctx, b, opts.outputDir); err != nil {
			return err
		}
	}

	printer := message.NewPrinter(language.English)
	_, _ = printer.Fprintf(cmd.OutOrStdout(), "processed %d images across %d steps in %v\n",
		b.Len(), len(cfg.Pipeline), time.Since(start).Round(time.Millisecond))
	return nil
}

// newEngine builds the engine from the configuration, attaching a progress
// bar when stderr is an interactive terminal.
func newEngine(cmd *cobra.Command, cfg *config.Config) (*engine.Engine, error) {
	eng, err := engine.New(cfg.Concurrency)
	if err != nil {
		return nil, err
	}

	if isTerminal(os.Stderr) {
		width := progressWidth(os.Stderr)
		var mu sync.Mutex
		eng.WithProgressCallback(func(p *engine.Progress) {
			mu.Lock()
			defer mu.Unlock()
			renderProgress(cmd.ErrOrStderr(), width, p.Snapshot())
		})
	}
	return eng, nil
}

// newRegistry builds the action registry: the imaging transforms granted by
// the configured capabilities plus the driver-level load/dump steps.
func newRegistry(eng *engine.Engine, cfg *config.Config, opts *runOptions) (*engine.Registry, error) {
	caps := imaging.DefaultCapabilities()
	if len(cfg.Capabilities) > 0 {
		var err error
		if caps, err = imaging.NewCapabilities(cfg.Capabilities...); err != nil {
			return nil, err
		}
	}

	reg := engine.NewRegistry()
	if err := imaging.RegisterActions(reg, eng, caps); err != nil {
		return nil, err
	}

	dump := func(ctx context.Context, b *dataset.Batch, args map[string]any) (*dataset.Batch, error) {
		dst := opts.outputDir
		if v, ok := args["dst"].(string); ok {
			dst = v
		}
		return b, b.Dump(ctx, dst, "")
	}
	if err := reg.Register("dump", dump); err != nil {
		return nil, err
	}
	return reg, nil
}

// finishProgress terminates the progress bar line when one was drawn.
func finishProgress(cmd *cobra.Command) {
	if isTerminal(os.Stderr) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
	}
}
