package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/taigrr/showcase/pkg/models"
	"github.com/taigrr/showcase/pkg/particle"
)

var (
	infoTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	infoLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	infoValue = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	infoBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func newInfoCmd(opts *rootOptions) *cobra.Command {
	var samples int

	cmd := &cobra.Command{
		Use:   "info <model.glb>",
		Short: "Display model and sampling information",
		Long:  "Display the vertex and triangle counts, bounds and surface area of a GLB model, and how long sampling it into a particle cloud takes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if samples <= 0 {
				samples = particle.DefaultCount
				if opts.particles > 0 {
					samples = opts.particles
				}
			}
			report, err := infoReport(args[0], samples)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().IntVarP(&samples, "samples", "n", 0, "Particles to sample (default: --particles or 40000)")
	return cmd
}

// infoReport loads path and renders the model report.
func infoReport(path string, samples int) (string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cannot access file: %w", err)
	}

	// The raw extent, before fitting for display
	loader := models.NewGLTFLoader()
	loader.Extent = 0
	mesh, err := loader.Load(path)
	if err != nil {
		return "", fmt.Errorf("load model: %w", err)
	}

	sampler, err := models.NewSurfaceSampler(mesh)
	if err != nil {
		return "", fmt.Errorf("sample model: %w", err)
	}

	start := time.Now()
	cloud, err := particle.SurfaceCloud(mesh, samples, rand.New(rand.NewSource(1)))
	if err != nil {
		return "", fmt.Errorf("sample model: %w", err)
	}
	took := time.Since(start)

	size := mesh.Size()
	center := mesh.Center()
	rows := [][2]string{
		{"File", filepath.Base(path)},
		{"Size", fmt.Sprintf("%.2f KB", float64(stat.Size())/1024)},
		{"Vertices", fmt.Sprint(mesh.VertexCount())},
		{"Triangles", fmt.Sprint(mesh.TriangleCount())},
		{"Edges", fmt.Sprint(len(mesh.Edges()))},
		{"Bounds Min", fmt.Sprintf("(%.3f, %.3f, %.3f)", mesh.BoundsMin.X(), mesh.BoundsMin.Y(), mesh.BoundsMin.Z())},
		{"Bounds Max", fmt.Sprintf("(%.3f, %.3f, %.3f)", mesh.BoundsMax.X(), mesh.BoundsMax.Y(), mesh.BoundsMax.Z())},
		{"Dimensions", fmt.Sprintf("%.3f x %.3f x %.3f", size.X(), size.Y(), size.Z())},
		{"Center", fmt.Sprintf("(%.3f, %.3f, %.3f)", center.X(), center.Y(), center.Z())},
		{"Area", fmt.Sprintf("%.4f", sampler.Area())},
		{"Particles", fmt.Sprintf("%d in %s", cloud.Len(), took.Round(time.Microsecond))},
	}

	var b strings.Builder
	b.WriteString(infoTitle.Render(strings.ToUpper(mesh.Name)))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(infoLabel.Render(r[0]))
		b.WriteString(infoValue.Render(r[1]))
	}
	return infoBox.Render(b.String()), nil
}
