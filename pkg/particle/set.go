package particle

import (
	"errors"
	"fmt"
)

// Set groups models that share global controls such as point size.
type Set []*Model

// SetPointSize applies v to every model.
func (s Set) SetPointSize(v float64) {
	for _, m := range s {
		m.SetPointSize(v)
	}
}

// Rebuild re-samples every loaded model with count points. Hero models
// keep their larger share: they are rebuilt with heroCount.
func (s Set) Rebuild(count, heroCount int) error {
	var errs []error
	for _, m := range s {
		n := count
		if m.IsHero() {
			n = heroCount
		}
		if err := m.Rebuild(n); err != nil {
			errs = append(errs, fmt.Errorf("rebuild %s: %w", m.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Points returns the total number of points across the set.
func (s Set) Points() int {
	n := 0
	for _, m := range s {
		n += m.Len()
	}
	return n
}
