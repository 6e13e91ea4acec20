package tween

import "time"

// timer is a one-shot callback scheduled on the engine clock.
type timer struct {
	remaining time.Duration
	fn        func()
}

// After schedules fn to run once d of engine time has passed.
func (e *Engine) After(d time.Duration, fn func()) {
	e.timers = append(e.timers, &timer{remaining: d, fn: fn})
}

func (e *Engine) updateTimers(dt time.Duration) {
	pending := e.timers
	e.timers = nil

	var due []*timer
	for _, t := range pending {
		t.remaining -= dt
		if t.remaining > 0 {
			e.timers = append(e.timers, t)
			continue
		}
		due = append(due, t)
	}

	for _, t := range due {
		t.fn()
	}
}
