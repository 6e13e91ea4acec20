package scene

import (
	"github.com/taigrr/showcase/pkg/math3d"
	"github.com/taigrr/showcase/pkg/tween"
)

// Event is an input event in terminal cell coordinates.
type Event interface{ isEvent() }

// Key is a key press named the way ultraviolet matches keys, for example
// "right", "ctrl+c" or "?".
type Key struct{ Name string }

// Wheel is a scroll step. Positive deltas scroll down.
type Wheel struct{ Delta int }

// PointerDown is a mouse button press.
type PointerDown struct{ X, Y int }

// PointerMove is mouse motion with or without a button held.
type PointerMove struct{ X, Y int }

// PointerUp is a mouse button release.
type PointerUp struct{ X, Y int }

// Resize reports a new terminal size.
type Resize struct{ Cols, Rows int }

func (Key) isEvent()         {}
func (Wheel) isEvent()       {}
func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Resize) isEvent()      {}

// Keys lists every key name the scene reacts to.
var Keys = []string{
	"right", "left", "down", "up",
	"x", "?", "+", "=", "-", "_", "r", "p",
	"q", "esc", "ctrl+c",
}

const (
	// touchScale converts dragged rows into scroll units.
	touchScale = 2
	// swipeThreshold is the scroll distance a drag must cover to navigate.
	swipeThreshold = 3
)

// gesture is a drag that started away from the bar and the hint.
type gesture struct {
	active bool
	startY int
	done   bool // one navigation per gesture
}

// HandleEvent applies one input event.
func (s *Scene) HandleEvent(ev Event) {
	switch ev := ev.(type) {
	case Key:
		s.handleKey(ev.Name)
	case Wheel:
		s.scroll(ev.Delta)
	case PointerDown:
		s.pointerDown(ev.X, ev.Y)
	case PointerMove:
		s.pointerMove(ev.X, ev.Y)
	case PointerUp:
		s.bar.PointerUp()
		s.gesture = gesture{}
	case Resize:
		s.Resize(ev.Cols, ev.Rows)
	}
}

func (s *Scene) handleKey(name string) {
	open := s.viewer.Active()
	switch name {
	case "right":
		if open {
			s.nextImage()
		} else {
			s.changeModel(s.current + 1)
		}
	case "left":
		if !open {
			s.changeModel(s.current - 1)
		} else if s.viewer.Image() > 0 {
			s.prevImage()
		}
	case "down":
		s.openViewer(true)
	case "up":
		if open {
			s.prevImage()
		}
	case "x":
		s.xray = !s.xray
	case "?":
		s.hud = !s.hud
	case "+", "=":
		s.setPointSize(s.pointSize + pointSizeStep)
	case "-", "_":
		s.setPointSize(s.pointSize - pointSizeStep)
	case "r":
		s.rebuild()
	case "p":
		s.models[s.current].Press()
	case "esc":
		if open {
			s.closeViewer()
			return
		}
		s.quit = true
	case "q", "ctrl+c":
		s.quit = true
	}
}

// scroll navigates by one step in the direction of delta. Steps are
// dropped while a model switch is running.
func (s *Scene) scroll(delta int) {
	if s.animating || delta == 0 {
		return
	}
	if s.viewer.Active() {
		if delta > 0 {
			s.nextImage()
		} else {
			s.prevImage()
		}
		return
	}
	if delta > 0 {
		s.changeModel(s.current + 1)
	} else {
		s.changeModel(s.current - 1)
	}
}

func (s *Scene) pointerDown(col, row int) {
	if !s.viewer.Active() && s.explore > 0.5 && s.exploreHit.contains(col, row) {
		s.openViewer(false)
		return
	}
	if s.bar.PointerDown(col, row*2) {
		return
	}
	s.gesture = gesture{active: true, startY: row}
}

func (s *Scene) pointerMove(col, row int) {
	if s.bar.Dragging() {
		s.bar.PointerMove(col, row*2)
		return
	}
	if s.gesture.active {
		s.swipe(row)
		return
	}

	s.hover(col, row)
	w, h := float64(s.cols), float64(s.rows)
	s.followY.Target = math3d.MapRange(0, w, -2, 2, float64(col))
	s.followX.Target = math3d.MapRange(0, h, -0.5, 0.5, float64(row))
}

// swipe turns a vertical drag into one scroll step. Dragging up scrolls
// down so the content follows the finger.
func (s *Scene) swipe(row int) {
	if s.gesture.done {
		return
	}
	delta := (s.gesture.startY - row) * touchScale
	if delta > -swipeThreshold && delta < swipeThreshold {
		return
	}
	s.gesture.done = true
	s.scroll(delta)
}

// hover nudges the EXPLORE arrow while the pointer rests on the hint.
func (s *Scene) hover(col, row int) {
	in := s.exploreHit.contains(col, row)
	if in == s.hovering {
		return
	}
	s.hovering = in
	to := 0.0
	if in {
		to = 1
	}
	s.engine.To(&s.exploreHover, to, exploreHover, tween.Power2Out)
}
