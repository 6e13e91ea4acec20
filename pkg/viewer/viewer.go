// Package viewer implements the image gallery overlay shown over the scene.
//
// The overlay is an explicit state machine: Closed, Opening and Open.
// Opening lasts for the slide-in; only the state enum decides whether the
// viewer is active, never the rendered opacity.
package viewer

import (
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/showcase/pkg/gallery"
	"github.com/taigrr/showcase/pkg/tween"
)

// State is the overlay state.
type State int

const (
	Closed State = iota
	Opening
	Open
)

func (s State) String() string {
	switch s {
	case Opening:
		return "opening"
	case Open:
		return "open"
	default:
		return "closed"
	}
}

// Disperser scatters and regathers the model behind the overlay.
type Disperser interface {
	Disperse()
	Assemble()
}

const (
	slideDuration = 1500 * time.Millisecond
	fadeDuration  = 500 * time.Millisecond
	trackDuration = time.Second
	lineDuration  = 800 * time.Millisecond

	lineOpacity = 0.8
)

// Box is an animated rectangle.
type Box struct {
	X, Y, W, H float64
}

// Viewer is the overlay state machine and its animated properties.
type Viewer struct {
	engine  *tween.Engine
	log     *zap.Logger
	groups  []*gallery.Group
	targets []Disperser

	state State
	model int
	image int

	layout Layout

	// Animated properties read by Draw
	Slide       float64 // 1 = below the screen, 0 = in place
	Opacity     float64
	Overview    float64 // thumbnail strip opacity
	Track       float64 // scroll track offset in pixels
	Line        Box
	LineOpacity float64
}

// New creates a closed viewer. groups[i] and targets[i] belong to model i;
// missing entries make Open a no-op for that model.
func New(groups []*gallery.Group, targets []Disperser, engine *tween.Engine, log *zap.Logger) *Viewer {
	return &Viewer{
		engine:  engine,
		log:     log,
		groups:  groups,
		targets: targets,
		Slide:   1,
	}
}

// State returns the current state.
func (v *Viewer) State() State { return v.state }

// Active reports whether the viewer is opening or open.
func (v *Viewer) Active() bool { return v.state != Closed }

// Model returns the model whose images are shown.
func (v *Viewer) Model() int { return v.model }

// Image returns the focused image index.
func (v *Viewer) Image() int { return v.image }

// ImageCount returns the number of images of the shown model.
func (v *Viewer) ImageCount() int {
	return v.group().Len()
}

// Layout returns the current layout.
func (v *Viewer) Layout() Layout { return v.layout }

// Resize lays the viewer out for a w x h pixel framebuffer. An active
// viewer snaps its track and line to the new geometry.
func (v *Viewer) Resize(w, h int) {
	v.layout = NewLayout(w, h, v.ImageCount())
	if v.Active() {
		v.engine.Set(&v.Track, v.layout.TrackOffset(v.image))
		v.placeLine(true)
	}
}

// Open shows the images of model index. From Closed it starts the
// slide-in at image 0 and scatters the model. While already active it
// advances to the next image (wrapping) when autoCycle is set, and
// otherwise re-focuses the current image.
func (v *Viewer) Open(index int, autoCycle bool) {
	if index < 0 || index >= len(v.groups) || v.groups[index] == nil {
		return
	}

	wasActive := v.Active()
	if wasActive {
		if autoCycle {
			v.image++
			if v.image >= v.groups[index].Len() {
				v.image = 0
			}
		}
	} else {
		v.state = Opening
		v.image = 0
	}
	if v.model != index {
		v.model = index
		v.layout = NewLayout(v.layout.W, v.layout.H, v.ImageCount())
	}

	if wasActive {
		v.switchImage()
		v.placeLine(false)
		return
	}

	v.log.Debug("viewer opening", zap.Int("model", index))
	v.engine.Set(&v.Track, v.layout.TrackOffset(0))
	v.placeLine(true)
	v.withTarget(Disperser.Disperse)

	v.engine.Set(&v.Slide, 1)
	v.engine.Set(&v.Opacity, 0)
	v.engine.Set(&v.Overview, 0)
	v.engine.Set(&v.LineOpacity, 0)
	v.engine.To(&v.Slide, 0, slideDuration, tween.ExpoOut, tween.OnComplete(func() {
		if v.state == Opening {
			v.state = Open
		}
	}))
	v.engine.To(&v.Opacity, 1, slideDuration, tween.ExpoOut)
	v.engine.To(&v.Overview, 1, slideDuration, tween.ExpoOut)
	v.engine.To(&v.LineOpacity, lineOpacity, slideDuration, tween.ExpoOut)
}

// Next focuses the following image. It does nothing on the last image or
// when the viewer is closed.
func (v *Viewer) Next() {
	if !v.Active() || v.image >= v.ImageCount()-1 {
		return
	}
	v.image++
	v.Open(v.model, false)
}

// Prev focuses the previous image, closing the viewer from the first one.
func (v *Viewer) Prev() {
	if !v.Active() {
		return
	}
	if v.image > 0 {
		v.image--
		v.Open(v.model, false)
		return
	}
	v.Close()
}

// Close fades the viewer out, regathers the model and resets the image
// index. It does nothing when already closed.
func (v *Viewer) Close() {
	if !v.Active() {
		return
	}
	v.log.Debug("viewer closing", zap.Int("model", v.model))

	v.engine.Kill(&v.Slide, &v.Opacity, &v.Overview, &v.LineOpacity, &v.Track,
		&v.Line.X, &v.Line.Y, &v.Line.W, &v.Line.H)
	v.state = Closed

	v.engine.To(&v.LineOpacity, 0, fadeDuration, tween.Linear)
	v.engine.To(&v.Opacity, 0, fadeDuration, tween.Power2Out)
	v.engine.To(&v.Overview, 0, fadeDuration, tween.Power2Out)

	v.withTarget(Disperser.Assemble)
	v.image = 0
}

// switchImage scrolls the track so the focused image is centred.
func (v *Viewer) switchImage() {
	v.engine.To(&v.Track, v.layout.TrackOffset(v.image), trackDuration, tween.Power2Out)
}

// placeLine moves the overview line around the focused thumbnail.
func (v *Viewer) placeLine(immediate bool) {
	n := v.ImageCount()
	if n == 0 {
		return
	}
	r := v.layout.LineRect(min(max(v.image, 0), n-1))
	targets := []struct {
		p  *float64
		to float64
	}{
		{&v.Line.X, float64(r.Min.X)},
		{&v.Line.Y, float64(r.Min.Y)},
		{&v.Line.W, float64(r.Dx())},
		{&v.Line.H, float64(r.Dy())},
	}
	for _, t := range targets {
		if immediate {
			v.engine.Set(t.p, t.to)
		} else {
			v.engine.To(t.p, t.to, lineDuration, tween.Power3Out)
		}
	}
}

// withTarget runs fn on the shown model's disperser. A misbehaving
// disperser must not take the overlay down with it.
func (v *Viewer) withTarget(fn func(Disperser)) {
	if v.model >= len(v.targets) || v.targets[v.model] == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			v.log.Debug("disperser panicked", zap.Any("panic", r))
		}
	}()
	fn(v.targets[v.model])
}

func (v *Viewer) group() *gallery.Group {
	if v.model < 0 || v.model >= len(v.groups) {
		return nil
	}
	return v.groups[v.model]
}

// visible reports whether anything of the overlay is on screen.
func (v *Viewer) visible() bool {
	return v.Active() || v.Opacity > 0 || v.Overview > 0
}

func boxRect(b Box, dy float64) image.Rectangle {
	return image.Rect(int(b.X), int(b.Y+dy), int(b.X+b.W), int(b.Y+b.H+dy))
}
