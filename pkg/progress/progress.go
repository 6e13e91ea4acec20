// Package progress draws the model progress indicator: one tick per model,
// the selected tick highlighted and its neighbours scaled by falloff.
// Dragging across the bar scrubs through the models.
package progress

import (
	"image"
	"math"
	"time"

	"github.com/taigrr/showcase/pkg/math3d"
	"github.com/taigrr/showcase/pkg/render"
	"github.com/taigrr/showcase/pkg/tween"
)

// Selector is the navigation the bar drives.
type Selector interface {
	Current() int
	Select(index int)
}

const tickDuration = time.Second

// Tick geometry in framebuffer pixels.
const (
	wideSpacing   = 4  // columns between tick centres
	wideLength    = 6  // full tick height
	wideActive    = 3  // active tick width
	narrowSpacing = 3  // rows between tick centres
	narrowLength  = 10 // full tick width
)

// Tick is the animated state of one tick.
type Tick struct {
	Length  float64 // Fraction of the full length along the tick's axis
	Opacity float64
	Width   float64 // Pixels across; only wide layouts widen the active tick
	Active  bool
}

// Bar is the progress indicator.
type Bar struct {
	ticks    []*Tick
	selector Selector
	engine   *tween.Engine

	narrow   bool
	origin   image.Point // centre of the first tick in pixels
	enabled  bool
	dragging bool
	page     int
}

// New creates a bar with count ticks driving selector.
func New(count int, selector Selector, engine *tween.Engine) *Bar {
	b := &Bar{
		ticks:    make([]*Tick, count),
		selector: selector,
		engine:   engine,
		enabled:  true,
	}
	for i := range b.ticks {
		b.ticks[i] = &Tick{Length: 0.5, Opacity: 0.2, Width: 1}
	}
	return b
}

// Len returns the number of ticks.
func (b *Bar) Len() int { return len(b.ticks) }

// Tick returns tick i.
func (b *Bar) Tick(i int) *Tick { return b.ticks[i] }

// Page returns the 1-based page number shown next to the bar.
func (b *Bar) Page() int { return b.page }

// Dragging reports whether a drag is in progress.
func (b *Bar) Dragging() bool { return b.dragging }

// SetEnabled allows or blocks starting new drags.
func (b *Bar) SetEnabled(v bool) {
	b.enabled = v
	if !v {
		b.dragging = false
	}
}

// Narrow reports whether the bar is laid out vertically.
func (b *Bar) Narrow() bool { return b.narrow }

// Layout places the bar in a fbW x fbH pixel framebuffer. Wide layouts run
// horizontally along the bottom edge; narrow ones vertically down the
// right edge. Changing orientation re-syncs the tick visuals.
func (b *Bar) Layout(fbW, fbH int, narrow bool) {
	n := len(b.ticks)
	if narrow {
		span := (n - 1) * narrowSpacing
		b.origin = image.Pt(fbW-3, fbH/2-span/2)
	} else {
		span := (n - 1) * wideSpacing
		b.origin = image.Pt(fbW/2-span/2, fbH-wideLength/2-4)
	}
	if narrow != b.narrow {
		b.narrow = narrow
		b.Sync(b.selector.Current())
	}
}

// Sync recomputes every tick for the selected index without navigating.
func (b *Bar) Sync(index int) {
	n := len(b.ticks)
	if n == 0 {
		return
	}
	b.update(index)
	b.page = math3d.Wrap(index, n) + 1
}

// Bounds returns the pixel rectangle the bar reacts to.
func (b *Bar) Bounds() image.Rectangle {
	last := b.tickCenter(len(b.ticks) - 1)
	if b.narrow {
		return image.Rect(b.origin.X-narrowLength, b.origin.Y-2, b.origin.X+2, last.Y+3)
	}
	return image.Rect(b.origin.X-2, b.origin.Y-wideLength/2-1, last.X+3, b.origin.Y+wideLength/2+1)
}

// PointerDown starts a drag when (x, y) lies on the bar and interactions
// are enabled. It reports whether the press was consumed.
func (b *Bar) PointerDown(x, y int) bool {
	if !b.enabled || !image.Pt(x, y).In(b.Bounds()) {
		return false
	}
	b.dragging = true
	b.drag(x, y)
	return true
}

// PointerMove scrubs while dragging.
func (b *Bar) PointerMove(x, y int) {
	if !b.dragging {
		return
	}
	b.drag(x, y)
}

// PointerUp ends a drag.
func (b *Bar) PointerUp() {
	b.dragging = false
}

// Ratio converts a pointer position into [0, 1] along the bar.
func (b *Bar) Ratio(x, y int) float64 {
	n := len(b.ticks)
	if n < 2 {
		return 0
	}
	var ratio float64
	if b.narrow {
		ratio = float64(y-b.origin.Y) / float64((n-1)*narrowSpacing)
	} else {
		ratio = float64(x-b.origin.X) / float64((n-1)*wideSpacing)
	}
	return math3d.Clamp(ratio, 0, 1)
}

func (b *Bar) drag(x, y int) {
	n := len(b.ticks)
	target := int(math.Round(b.Ratio(x, y) * float64(n-1)))
	if target != b.selector.Current() {
		b.selector.Select(target)
	}
	// The selector may refuse while a switch is still running.
	b.Sync(b.selector.Current())
}

// update tweens every tick toward its look for the active index.
func (b *Bar) update(active int) {
	n := len(b.ticks)
	for i, t := range b.ticks {
		v := TickVisual(i, active, n)
		t.Active = i == active

		length, opacity, width := v.Scale, v.Opacity, 1.0
		if t.Active {
			opacity = 1
			if !b.narrow {
				length, width = 1, wideActive
			}
		}
		b.engine.To(&t.Length, length, tickDuration, tween.Power2Out)
		b.engine.To(&t.Opacity, opacity, tickDuration, tween.Power2Out)
		b.engine.To(&t.Width, width, tickDuration, tween.Power2Out)
	}
}

func (b *Bar) tickCenter(i int) image.Point {
	if b.narrow {
		return image.Pt(b.origin.X, b.origin.Y+i*narrowSpacing)
	}
	return image.Pt(b.origin.X+i*wideSpacing, b.origin.Y)
}

// Draw renders the ticks into fb.
func (b *Bar) Draw(fb *render.Framebuffer) {
	for i, t := range b.ticks {
		c := b.tickCenter(i)
		if b.narrow {
			// Grows leftwards from the right edge
			l := max(1, int(math.Round(t.Length*narrowLength)))
			fb.FillRect(c.X-l+1, c.Y, l, 1, render.ColorWhite, t.Opacity)
			continue
		}

		l := max(1, int(math.Round(t.Length*wideLength)))
		w := max(1, int(math.Round(t.Width)))
		x, y := c.X-w/2, c.Y-l/2
		if t.Active && w > 1 {
			fb.DrawRectOutline(x, y, w, l, render.Scale(render.ColorWhite, t.Opacity))
			continue
		}
		fb.FillRect(x, y, w, l, render.ColorWhite, t.Opacity)
	}
}
