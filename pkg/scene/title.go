package scene

import (
	"strings"
	"time"

	"github.com/taigrr/showcase/pkg/tween"
)

const (
	revealDuration   = 800 * time.Millisecond
	revealStagger    = 50 * time.Millisecond
	collapseDuration = 500 * time.Millisecond
	collapseStagger  = 20 * time.Millisecond
)

// Title is a model name revealed one character at a time.
type Title struct {
	Text  []rune
	Shown []float64 // per character, 0 hidden to 1 shown
}

// NewTitle creates a hidden title.
func NewTitle(s string) *Title {
	text := []rune(strings.ToUpper(s))
	return &Title{Text: text, Shown: make([]float64, len(text))}
}

// Reveal slides the characters in from the left, staggered, after delay.
func (t *Title) Reveal(e *tween.Engine, delay time.Duration) {
	for i := range t.Shown {
		e.Set(&t.Shown[i], 0)
		e.To(&t.Shown[i], 1, revealDuration, tween.Power2Out,
			tween.Delay(delay+time.Duration(i)*revealStagger))
	}
}

// Collapse hides the characters, staggered.
func (t *Title) Collapse(e *tween.Engine) {
	for i := range t.Shown {
		e.To(&t.Shown[i], 0, collapseDuration, tween.Power2In,
			tween.Delay(time.Duration(i)*collapseStagger))
	}
}

// Visible returns the characters currently past the halfway point.
// Hidden characters take no width, so the title grows and shrinks the way
// its per-character masks do.
func (t *Title) Visible() string {
	var b strings.Builder
	for i, r := range t.Text {
		if t.Shown[i] < 0.5 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
