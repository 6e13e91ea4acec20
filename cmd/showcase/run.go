package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/showcase/pkg/config"
	"github.com/taigrr/showcase/pkg/cue"
	"github.com/taigrr/showcase/pkg/logger"
	"github.com/taigrr/showcase/pkg/scene"
)

// maxFrameStep keeps a stalled frame from skipping whole animations.
const maxFrameStep = 100 * time.Millisecond

func runShowcase(ctx context.Context, opts *rootOptions) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}

	// Console logging would tear the screen: file or nothing
	log, closeLog := logger.New(logger.Options{
		Level: cfg.Logging.Level,
		File:  logger.DefaultFileConfig(cfg.Logging.LogFile),
	})
	defer closeLog()

	cues := newCues(cfg, log)
	defer cues.Close()

	sc, err := scene.New(cfg, log, cues)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	sc.Resize(width, height)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	assets := make(chan asset)
	go func() {
		if err := loadAssets(ctx, cfg, log, assets); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("asset loading stopped", zap.Error(err))
		}
	}()

	log.Info("showcase started",
		zap.Int("models", len(cfg.Models)),
		zap.Int("fps", cfg.Display.FPS),
		zap.Int("cols", width), zap.Int("rows", height))

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Display.FPS))
	defer ticker.Stop()
	events := term.Events()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			sev, ok := translate(ev)
			if !ok {
				continue
			}
			if r, ok := sev.(scene.Resize); ok {
				term.Erase()
				term.Resize(r.Cols, r.Rows)
			}
			sc.HandleEvent(sev)
			if sc.Done() {
				return nil
			}

		case a := <-assets:
			a.apply(sc)

		case now := <-ticker.C:
			dt := min(now.Sub(last), maxFrameStep)
			last = now

			sc.Update(dt)
			sc.Frame(term)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// newCues opens the audio device when enabled. Without one the
// showcase runs silently.
func newCues(cfg *config.Config, log *zap.Logger) *cue.Player {
	if !cfg.Audio.Enabled {
		return nil
	}
	p := cue.NewPlayer(cfg.Audio.Volume, log)
	if err := p.Init(); err != nil {
		log.Warn("audio unavailable", zap.Error(err))
		return nil
	}
	return p
}
