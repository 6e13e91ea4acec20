package viewer

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/showcase/pkg/gallery"
	"github.com/taigrr/showcase/pkg/render"
	"github.com/taigrr/showcase/pkg/tween"
)

const frame = time.Second / 60

func run(e *tween.Engine, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		e.Update(frame)
	}
}

type fakeModel struct {
	dispersed, assembled int
}

func (f *fakeModel) Disperse() { f.dispersed++ }
func (f *fakeModel) Assemble() { f.assembled++ }

type panicky struct{}

func (panicky) Disperse() { panic("no particles") }
func (panicky) Assemble() { panic("no particles") }

// newViewer builds a viewer over models with 2, 1 and 3 images.
func newViewer(t *testing.T) (*Viewer, *tween.Engine, []*fakeModel) {
	t.Helper()
	e := tween.NewEngine()
	groups := []*gallery.Group{
		gallery.NewGroup([]string{"a.png", "b.png"}),
		gallery.NewGroup([]string{"c.png"}),
		gallery.NewGroup([]string{"d.png", "e.png", "f.png"}),
	}
	fakes := []*fakeModel{{}, {}, {}}
	targets := []Disperser{fakes[0], fakes[1], fakes[2]}

	v := New(groups, targets, e, zap.NewNop())
	v.Resize(120, 80)
	return v, e, fakes
}

func TestOpenLifecycle(t *testing.T) {
	v, e, fakes := newViewer(t)

	if v.State() != Closed || v.Active() {
		t.Fatal("viewer should start closed")
	}

	v.Open(0, true)
	if v.State() != Opening {
		t.Errorf("state = %v, want opening", v.State())
	}
	if v.Image() != 0 {
		t.Errorf("image = %d, want 0", v.Image())
	}
	if fakes[0].dispersed != 1 {
		t.Errorf("model dispersed %d times, want 1", fakes[0].dispersed)
	}
	if v.Track != v.Layout().TrackOffset(0) {
		t.Errorf("track = %v, want immediate %v", v.Track, v.Layout().TrackOffset(0))
	}
	want := v.Layout().LineRect(0)
	if v.Line.Y != float64(want.Min.Y) || v.Line.H != float64(want.Dy()) {
		t.Errorf("line = %+v, want placed at %v immediately", v.Line, want)
	}

	run(e, 1600*time.Millisecond)
	if v.State() != Open {
		t.Errorf("state = %v, want open after the slide-in", v.State())
	}
	if v.Opacity != 1 || v.Slide != 0 {
		t.Errorf("opacity=%v slide=%v after slide-in", v.Opacity, v.Slide)
	}
}

func TestOpenWhileOpeningKeepsSlide(t *testing.T) {
	v, e, fakes := newViewer(t)

	v.Open(0, true)
	run(e, 500*time.Millisecond)
	slide := v.Slide

	v.Open(0, true)
	if v.Image() != 1 {
		t.Errorf("image = %d, want 1 after auto-cycle", v.Image())
	}
	if v.State() != Opening {
		t.Errorf("state = %v, want still opening", v.State())
	}
	if v.Slide != slide {
		t.Errorf("slide restarted: %v -> %v", slide, v.Slide)
	}
	if fakes[0].dispersed != 1 {
		t.Error("second open should not disperse again")
	}

	run(e, time.Second+100*time.Millisecond)
	if v.State() != Open {
		t.Errorf("state = %v, want open on the original schedule", v.State())
	}
}

func TestOpenAutoCycleWraps(t *testing.T) {
	v, e, _ := newViewer(t)

	v.Open(0, true)
	run(e, 2*time.Second)
	v.Open(0, true)
	v.Open(0, true)
	if v.Image() != 0 {
		t.Errorf("image = %d, want wrap to 0", v.Image())
	}

	v.Open(0, false)
	if v.Image() != 0 {
		t.Errorf("open without auto-cycle moved to %d", v.Image())
	}
}

func TestNextPrevBounds(t *testing.T) {
	v, e, fakes := newViewer(t)

	v.Next()
	v.Prev()
	if v.Active() || v.Image() != 0 {
		t.Fatal("navigation while closed should do nothing")
	}

	v.Open(2, true)
	run(e, 2*time.Second)

	v.Next()
	v.Next()
	v.Next() // past the last image
	if v.Image() != 2 {
		t.Errorf("image = %d, want clamped at 2", v.Image())
	}
	run(e, time.Second)
	if v.Track != v.Layout().TrackOffset(2) {
		t.Errorf("track = %v, want %v", v.Track, v.Layout().TrackOffset(2))
	}
	want := v.Layout().LineRect(2)
	if v.Line.Y != float64(want.Min.Y) {
		t.Errorf("line y = %v, want %v", v.Line.Y, want.Min.Y)
	}

	v.Prev()
	v.Prev()
	if v.Image() != 0 || !v.Active() {
		t.Fatalf("image = %d active = %v, want 0 and open", v.Image(), v.Active())
	}

	v.Prev()
	if v.Active() {
		t.Error("prev on the first image should close")
	}
	if fakes[2].assembled != 1 {
		t.Errorf("model assembled %d times, want 1", fakes[2].assembled)
	}
}

func TestCloseResets(t *testing.T) {
	v, e, fakes := newViewer(t)

	v.Open(0, true)
	run(e, 200*time.Millisecond)
	v.Open(0, true) // scrolls the track to image 1
	v.Close()
	track := v.Track
	if e.IsTweening(&v.Track) {
		t.Error("close should stop the track scroll")
	}

	if v.State() != Closed || v.Image() != 0 {
		t.Errorf("state=%v image=%d after close", v.State(), v.Image())
	}
	if fakes[0].assembled != 1 {
		t.Errorf("assembled %d, want 1", fakes[0].assembled)
	}

	// The killed slide-in must not reopen the viewer
	run(e, 2*time.Second)
	if v.State() != Closed {
		t.Errorf("state = %v, want closed", v.State())
	}
	if v.Opacity != 0 || v.Overview != 0 {
		t.Errorf("opacity=%v overview=%v after fade", v.Opacity, v.Overview)
	}
	if v.Track != track {
		t.Errorf("track moved to %v after close, want %v", v.Track, track)
	}

	v.Close()
	if fakes[0].assembled != 1 {
		t.Error("closing a closed viewer should do nothing")
	}
}

func TestOpenInvalidModel(t *testing.T) {
	v, _, _ := newViewer(t)
	v.Open(7, true)
	v.Open(-1, true)
	if v.Active() {
		t.Error("open with an unknown model should be ignored")
	}
}

func TestDisperserPanicRecovered(t *testing.T) {
	e := tween.NewEngine()
	v := New([]*gallery.Group{gallery.NewGroup([]string{"x.png"})}, []Disperser{panicky{}}, e, zap.NewNop())
	v.Resize(80, 40)

	v.Open(0, true)
	if v.State() != Opening {
		t.Errorf("state = %v, want opening despite the panic", v.State())
	}
	v.Close()
	if v.State() != Closed {
		t.Errorf("state = %v, want closed", v.State())
	}
}

func TestSingleImageNextIsNoop(t *testing.T) {
	v, e, _ := newViewer(t)
	v.Open(1, true)
	run(e, 2*time.Second)

	v.Next()
	if v.Image() != 0 {
		t.Errorf("image = %d, want 0", v.Image())
	}
	if v.Caption() != "1 / 1" {
		t.Errorf("caption = %q", v.Caption())
	}
}

func TestLayoutCentresSlides(t *testing.T) {
	l := NewLayout(120, 80, 3)
	for i := range 3 {
		r := l.SlideRect(i, 4.0/3)
		centre := float64(r.Min.Y+r.Max.Y)/2 + l.TrackOffset(i)
		if centre != 40 {
			t.Errorf("slide %d centre = %v, want 40", i, centre)
		}
	}

	line := l.LineRect(1)
	thumb := l.ThumbRect(1)
	if line.Dx() != thumb.Dx()+2*linePad || line.Dy() != thumb.Dy()+2*linePad {
		t.Errorf("line %v does not pad thumb %v", line, thumb)
	}
}

func TestDrawOnlyWhenVisible(t *testing.T) {
	v, e, _ := newViewer(t)
	fb := render.NewFramebuffer(120, 80)
	fb.Clear(render.ColorWhite)

	v.Draw(fb)
	if fb.GetPixel(60, 40) != render.ColorWhite {
		t.Fatal("closed viewer should not draw")
	}

	v.Open(0, true)
	run(e, 2*time.Second)
	v.Draw(fb)
	if fb.GetPixel(0, 0) == render.ColorWhite {
		t.Error("open viewer should dim the scene")
	}
}
