// Package tween animates float64 properties over time.
//
// An Engine owns every running tween and timer and is advanced manually once
// per frame. Starting a tween on a property that is already animating kills
// the previous tween first, so the newest tween always owns the property.
package tween

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Ease is an easing curve.
type Ease = ease.TweenFunc

// Easing curves, named after the power/expo families used by the scene.
var (
	Linear    Ease = ease.Linear
	Power1Out Ease = ease.OutQuad
	Power2Out Ease = ease.OutCubic
	Power2In  Ease = ease.InCubic
	Power3Out Ease = ease.OutQuart
	ExpoOut   Ease = ease.OutExpo
)

// Tween is one running animation of a single property.
type Tween struct {
	target   *float64
	to       float64
	duration time.Duration
	easing   Ease

	delay      time.Duration
	onComplete func()

	tw     *gween.Tween // nil until the delay has elapsed
	killed bool
	done   bool
}

// Option configures a tween.
type Option func(*Tween)

// Delay postpones the start of a tween. The start value is read when the
// delay elapses, not when the tween is created.
func Delay(d time.Duration) Option {
	return func(t *Tween) { t.delay = d }
}

// OnComplete registers a callback run once the tween reaches its end value.
// It is not run for killed tweens.
func OnComplete(fn func()) Option {
	return func(t *Tween) { t.onComplete = fn }
}

// Done reports whether the tween finished or was killed.
func (t *Tween) Done() bool {
	return t == nil || t.done || t.killed
}

// Engine runs tweens and timers. It is not safe for concurrent use; the
// frame loop owns it.
type Engine struct {
	owners map[*float64]*Tween
	active []*Tween
	timers []*timer
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{owners: make(map[*float64]*Tween)}
}

// To animates *target to the value to over d using easing fn. Any tween
// already running on target is killed first.
func (e *Engine) To(target *float64, to float64, d time.Duration, fn Ease, opts ...Option) *Tween {
	e.Kill(target)

	t := &Tween{target: target, to: to, duration: d, easing: fn}
	for _, opt := range opts {
		opt(t)
	}
	if t.easing == nil {
		t.easing = Linear
	}

	if t.delay <= 0 && t.duration <= 0 {
		*target = to
		t.done = true
		if t.onComplete != nil {
			t.onComplete()
		}
		return t
	}

	if t.delay <= 0 {
		t.start()
	}
	e.owners[target] = t
	e.active = append(e.active, t)
	return t
}

// Set kills any tween on target and assigns v immediately.
func (e *Engine) Set(target *float64, v float64) {
	e.Kill(target)
	*target = v
}

// Kill stops the tweens running on the given targets, leaving their
// current values in place.
func (e *Engine) Kill(targets ...*float64) {
	for _, target := range targets {
		if t, ok := e.owners[target]; ok {
			t.killed = true
			delete(e.owners, target)
		}
	}
}

// IsTweening reports whether target has a live tween.
func (e *Engine) IsTweening(target *float64) bool {
	_, ok := e.owners[target]
	return ok
}

// Len returns the number of live tweens.
func (e *Engine) Len() int {
	return len(e.owners)
}

// Update advances every tween and timer by dt.
func (e *Engine) Update(dt time.Duration) {
	e.updateTimers(dt)

	// Callbacks may start new tweens; those join the next frame.
	running := e.active
	e.active = nil

	var finished []*Tween
	for _, t := range running {
		if t.killed {
			continue
		}

		step := dt
		if t.tw == nil {
			if step < t.delay {
				t.delay -= step
				e.active = append(e.active, t)
				continue
			}
			step -= t.delay
			t.delay = 0
			t.start()
		}

		v, isFinished := t.tw.Update(float32(step.Seconds()))
		if !isFinished {
			*t.target = float64(v)
			e.active = append(e.active, t)
			continue
		}

		*t.target = t.to
		t.done = true
		if e.owners[t.target] == t {
			delete(e.owners, t.target)
		}
		finished = append(finished, t)
	}

	for _, t := range finished {
		if t.onComplete != nil {
			t.onComplete()
		}
	}
}

func (t *Tween) start() {
	t.tw = gween.New(float32(*t.target), float32(t.to), float32(t.duration.Seconds()), t.easing)
}
