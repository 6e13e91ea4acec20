package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/showcase/pkg/config"
	"github.com/taigrr/showcase/pkg/logger"
	"github.com/taigrr/showcase/pkg/scene"
)

const snapshotStep = time.Second / 60

func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	var (
		model      int
		cols, rows int
		settle     time.Duration
		open       bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot <out.png>",
		Short: "Render one frame to a PNG without a terminal",
		Long:  "Load every asset, show the chosen model, let the animations settle and save the framebuffer as a PNG. Each terminal cell is one pixel wide and two pixels tall.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			cfg.Audio.Enabled = false

			log, closeLog := logger.New(logger.Options{
				Level:   cfg.Logging.Level,
				Console: os.Stderr,
				File:    logger.DefaultFileConfig(cfg.Logging.LogFile),
			})
			defer closeLog()

			sc, err := scene.New(cfg, log, nil)
			if err != nil {
				return fmt.Errorf("build scene: %w", err)
			}
			sc.Resize(cols, rows)

			if err := loadAll(cmd.Context(), sc, cfg, log); err != nil {
				return err
			}

			sc.Select(model)
			if open {
				sc.HandleEvent(scene.Key{Name: "down"})
			}
			for elapsed := time.Duration(0); elapsed < settle; elapsed += snapshotStep {
				sc.Update(snapshotStep)
			}

			sc.Compose()
			if err := sc.Framebuffer().SavePNG(args[0]); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			log.Info("snapshot saved", zap.String("path", args[0]), zap.Int("model", sc.Current()))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&model, "model", "m", 0, "Model index to show")
	f.IntVar(&cols, "cols", 120, "Frame width in cells")
	f.IntVar(&rows, "rows", 40, "Frame height in cells")
	f.DurationVar(&settle, "settle", 3*time.Second, "Animation time before the frame is taken")
	f.BoolVar(&open, "viewer", false, "Open the image viewer")
	return cmd
}

// loadAll loads every asset and attaches it before returning.
func loadAll(ctx context.Context, sc *scene.Scene, cfg *config.Config, log *zap.Logger) error {
	assets := make(chan asset)
	done := make(chan error, 1)
	go func() {
		done <- loadAssets(ctx, cfg, log, assets)
		close(assets)
	}()
	for a := range assets {
		a.apply(sc)
	}
	if err := <-done; err != nil {
		return fmt.Errorf("load assets: %w", err)
	}
	return nil
}
