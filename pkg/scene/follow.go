package scene

import "github.com/charmbracelet/harmonica"

// FollowAxis eases one rotation axis toward a target with a spring.
type FollowAxis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

// NewFollowAxis creates an axis stepped fps times per second.
func NewFollowAxis(fps int) FollowAxis {
	return FollowAxis{
		// Critically damped: settles on the target without overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 3.0, 1.0),
	}
}

// Update advances the axis one frame.
func (a *FollowAxis) Update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
}
