// showcase - terminal particle portfolio
// Presents GLB models as animated particle clouds with an image viewer.
//
// Controls:
//
//	Scroll / swipe  - Next or previous model (images while the viewer is open)
//	Left/Right      - Previous or next model (images while the viewer is open)
//	Down            - Open the viewer, then cycle its images
//	Up              - Previous image, closing the viewer from the first
//	Mouse           - Tilt the scene; drag the progress bar to scrub
//	X               - Toggle wireframe x-ray
//	P               - Press the model
//	R               - Rebuild particle clouds
//	+/-             - Adjust point size
//	?               - Toggle HUD overlay (FPS, model, particle count)
//	Esc             - Close the viewer, or quit
//	Q               - Quit
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/showcase/pkg/config"
)

const controls = `Controls:
  Scroll / swipe  - Next or previous model (images while the viewer is open)
  Left/Right      - Previous or next model (images while the viewer is open)
  Down            - Open the viewer, then cycle its images
  Up              - Previous image, closing the viewer from the first
  Mouse           - Tilt the scene; drag the progress bar to scrub
  X               - Toggle wireframe x-ray
  P               - Press the model
  R               - Rebuild particle clouds
  +/-             - Adjust point size
  ?               - Toggle HUD overlay
  Esc             - Close the viewer, or quit
  Q               - Quit`

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	fps        int
	particles  int
	pointSize  float64
	debug      bool
	logFile    string
	noAudio    bool
}

func (o *rootOptions) overrides() config.Overrides {
	return config.Overrides{
		FPS:       o.fps,
		Particles: o.particles,
		PointSize: o.pointSize,
		Debug:     o.debug,
		LogFile:   o.logFile,
		NoAudio:   o.noAudio,
	}
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.configPath, o.overrides())
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "showcase",
		Short: "Terminal particle portfolio",
		Long: `showcase - Terminal particle portfolio

Presents GLB models as animated particle clouds, with an image viewer
for each model.

` + controls,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShowcase(cmd.Context(), opts)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: ./showcase.yaml or the user config dir)")
	f.IntVar(&opts.fps, "fps", 0, "Target FPS")
	f.IntVar(&opts.particles, "particles", 0, "Particles per model")
	f.Float64Var(&opts.pointSize, "point-size", 0, "Particle point size")
	f.BoolVar(&opts.debug, "debug", false, "Log at debug level")
	f.StringVar(&opts.logFile, "log-file", "", "Write logs to this file (rotated)")
	f.BoolVar(&opts.noAudio, "no-audio", false, "Disable audio cues")

	cmd.AddCommand(
		newInfoCmd(opts),
		newConfigCmd(opts),
		newSnapshotCmd(opts),
	)
	return cmd
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}
