// Package gallery loads the images shown in the viewer overlay.
//
// Each model owns a Group. A group's size is fixed by its configured paths
// so navigation bounds are known before any image has decoded; textures
// arrive later from background loads.
package gallery

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"

	"github.com/anthonynsimon/bild/transform"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // Register WebP decoder
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/showcase/pkg/render"
)

// Group is the ordered image list of one model.
type Group struct {
	Paths  []string
	Images []*render.Texture // nil until loaded
}

// NewGroup creates a group for paths with no images loaded yet.
func NewGroup(paths []string) *Group {
	return &Group{
		Paths:  paths,
		Images: make([]*render.Texture, len(paths)),
	}
}

// Len returns the number of images in the group. A nil group is empty.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Paths)
}

// Image returns image i, or nil if it has not loaded or i is out of range.
func (g *Group) Image(i int) *render.Texture {
	if g == nil || i < 0 || i >= len(g.Images) {
		return nil
	}
	return g.Images[i]
}

// Loader decodes and downsizes gallery images.
type Loader struct {
	MaxWidth  int // Longest allowed edge in pixels after resize
	MaxHeight int
	Limit     int // Concurrent decodes

	log *zap.Logger
}

// NewLoader creates a loader that logs failures to log.
func NewLoader(log *zap.Logger) *Loader {
	return &Loader{
		MaxWidth:  320,
		MaxHeight: 240,
		Limit:     4,
		log:       log,
	}
}

// Load decodes every image in paths concurrently. Images that fail to load
// are replaced by a checker placeholder and logged, so the result always
// has one texture per path. It returns early only if ctx is cancelled.
func (l *Loader) Load(ctx context.Context, paths []string) ([]*render.Texture, error) {
	out := make([]*render.Texture, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(l.Limit, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tex, err := LoadImage(path, l.MaxWidth, l.MaxHeight)
			if err != nil {
				l.log.Warn("gallery image unavailable", zap.String("path", path), zap.Error(err))
				tex = Placeholder(l.MaxWidth/4, l.MaxHeight/4)
			}
			out[i] = tex
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadImage decodes path (PNG, JPEG or WebP) and shrinks it to fit within
// maxW x maxH, keeping the aspect ratio. Smaller images are not enlarged.
func LoadImage(path string, maxW, maxH int) (*render.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	return render.TextureFromImage(Fit(img, maxW, maxH)), nil
}

// Fit resizes img to fit within maxW x maxH keeping its aspect ratio.
func Fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return img
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))
	return transform.Resize(img, nw, nh, transform.Linear)
}

// Placeholder is the texture shown for images that could not be loaded.
func Placeholder(w, h int) *render.Texture {
	return render.NewCheckerTexture(max(w, 2), max(h, 2), 4, render.RGB(40, 40, 48), render.RGB(24, 24, 30))
}
