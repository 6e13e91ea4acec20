// Package particle renders 3D assets as animated point clouds.
//
// A Model owns a sampled Cloud and a small set of uniforms (scale,
// dispersion, pressed, time, point size) that its lifecycle operations
// tween. The render loop reads the uniforms every frame through the
// render.PointSource interface.
package particle

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/taigrr/showcase/pkg/math3d"
	"github.com/taigrr/showcase/pkg/models"
	"github.com/taigrr/showcase/pkg/render"
	"github.com/taigrr/showcase/pkg/tween"
)

// Particle defaults.
const (
	DefaultCount     = 40000
	DefaultHeroCount = 100000
	DefaultPointSize = 1.3
)

const (
	transitionDuration = time.Second
	scatterDuration    = 1500 * time.Millisecond
	pressedTarget      = 1.2
	disperseTarget     = 3.0
)

// Options configure a Model.
type Options struct {
	Name        string
	Color1      colorful.Color
	Color2      colorful.Color
	Count       int     // Points to sample; 0 picks the default for the kind
	PointSize   float64 // 0 uses DefaultPointSize
	Pressed     float64 // Initial pressed uniform
	PlaceOnLoad bool    // Activate as soon as the cloud is built
	Hero        bool
}

// Uniforms are the per-model values the point shading reads.
type Uniforms struct {
	Time       float64 // Seconds the model has been shown
	Scale      float64
	Dispersion float64
	Pressed    float64
	PointSize  float64
}

// Model is one point-cloud showcase item.
type Model struct {
	opts   Options
	engine *tween.Engine
	rng    *rand.Rand
	log    *zap.Logger

	mesh   *models.Mesh
	edges  [][2]int
	cloud  *Cloud
	colors []render.Color
	bounds [2]float64 // min and max y of the cloud

	loaded  bool
	active  bool
	leaving bool // deactivation in flight; active until it completes

	U    Uniforms
	RotX float64
	RotY float64
}

// New creates an unloaded model. Tweens run on engine.
func New(opts Options, engine *tween.Engine, rng *rand.Rand, log *zap.Logger) *Model {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
		if opts.Hero {
			opts.Count = DefaultHeroCount
		}
	}
	if opts.PointSize <= 0 {
		opts.PointSize = DefaultPointSize
	}
	return &Model{
		opts:   opts,
		engine: engine,
		rng:    rng,
		log:    log.With(zap.String("model", opts.Name)),
		U: Uniforms{
			Pressed:   opts.Pressed,
			PointSize: opts.PointSize,
		},
	}
}

// Name returns the model's name.
func (m *Model) Name() string { return m.opts.Name }

// IsHero reports whether the model belongs on the background layer.
func (m *Model) IsHero() bool { return m.opts.Hero }

// Loaded reports whether the cloud has been built.
func (m *Model) Loaded() bool { return m.loaded }

// IsActive reports whether the model is shown. A model stays active until
// its deactivation finishes.
func (m *Model) IsActive() bool { return m.active }

// Mesh returns the source mesh, nil for procedural clouds.
func (m *Model) Mesh() *models.Mesh { return m.mesh }

// Edges returns the unique mesh edges, computed on first use.
func (m *Model) Edges() [][2]int {
	if m.edges == nil && m.mesh != nil {
		m.edges = m.mesh.Edges()
	}
	return m.edges
}

// Attach samples mesh into the model's cloud. A nil mesh builds the
// procedural cube cloud, which only hero models accept.
func (m *Model) Attach(mesh *models.Mesh) error {
	var (
		cloud *Cloud
		err   error
	)
	if mesh == nil && m.opts.Hero {
		cloud = CubeCloud(m.opts.Count, m.rng)
	} else {
		cloud, err = SurfaceCloud(mesh, m.opts.Count, m.rng)
		if err != nil {
			return err
		}
	}

	m.mesh = mesh
	m.edges = nil
	m.setCloud(cloud)
	m.loaded = true
	m.log.Debug("particles built", zap.Int("count", cloud.Len()))

	if m.opts.PlaceOnLoad {
		m.Activate()
	}
	return nil
}

// Rebuild re-samples the cloud with count points. An active model is
// shown at full scale straight away.
func (m *Model) Rebuild(count int) error {
	if !m.loaded || count <= 0 {
		return nil
	}

	var cloud *Cloud
	if m.mesh == nil {
		cloud = CubeCloud(count, m.rng)
	} else {
		var err error
		cloud, err = SurfaceCloud(m.mesh, count, m.rng)
		if err != nil {
			return err
		}
	}
	m.opts.Count = count
	m.setCloud(cloud)

	if m.active && !m.leaving {
		m.engine.Set(&m.U.Scale, 1)
	}
	return nil
}

// SetPointSize sets the point size uniform.
func (m *Model) SetPointSize(v float64) {
	m.U.PointSize = v
}

// Activate shows the model: it grows to full scale, gathers its particles
// and turns to face forward.
func (m *Model) Activate() {
	if !m.loaded || (m.active && !m.leaving) {
		return
	}
	m.killTransform()

	m.engine.To(&m.U.Scale, 1, transitionDuration, tween.Power2Out)
	m.engine.To(&m.U.Dispersion, 0, transitionDuration, tween.Power2Out)
	m.engine.To(&m.RotY, 0, transitionDuration, tween.Power2Out)
	m.active = true
	m.leaving = false
}

// Deactivate shrinks and scatters the model. It stays active until the
// shrink completes.
func (m *Model) Deactivate() {
	if !m.loaded || !m.active || m.leaving {
		return
	}
	m.killTransform()

	m.leaving = true
	m.engine.To(&m.U.Scale, 0, transitionDuration, tween.Power2Out, tween.OnComplete(func() {
		m.active = false
		m.leaving = false
	}))
	m.engine.To(&m.U.Dispersion, 1, transitionDuration, tween.Power2Out)
	m.engine.To(&m.RotY, math.Pi, transitionDuration, tween.Power2Out)
}

// Press raises the pressed uniform, making the cloud pulse harder.
func (m *Model) Press() {
	if !m.loaded {
		return
	}
	m.engine.To(&m.U.Pressed, pressedTarget, transitionDuration, tween.Power2Out)
}

// Disperse scatters an active model and tumbles it to a random angle.
func (m *Model) Disperse() {
	if !m.loaded || !m.active {
		return
	}
	m.engine.To(&m.U.Dispersion, disperseTarget, scatterDuration, tween.Power2Out)
	m.engine.To(&m.RotX, m.rng.Float64()*math.Pi, scatterDuration, tween.Power2Out)
	m.engine.To(&m.RotY, m.rng.Float64()*math.Pi, scatterDuration, tween.Power2Out)
}

// Assemble gathers an active model back into shape.
func (m *Model) Assemble() {
	if !m.loaded || !m.active {
		return
	}
	m.engine.To(&m.U.Dispersion, 0, scatterDuration, tween.Power2Out)
	m.engine.To(&m.RotX, 0, scatterDuration, tween.Power2Out)
	m.engine.To(&m.RotY, 0, scatterDuration, tween.Power2Out)
}

// Advance moves the time uniform of an active model forward.
func (m *Model) Advance(dt time.Duration) {
	if m.active {
		m.U.Time += dt.Seconds()
	}
}

// Matrix returns the model's rotation. Scale is applied per point.
func (m *Model) Matrix() mgl64.Mat4 {
	return math3d.EulerXY(m.RotX, m.RotY)
}

func (m *Model) killTransform() {
	m.engine.Kill(&m.U.Scale, &m.U.Dispersion, &m.RotX, &m.RotY)
}

func (m *Model) setCloud(c *Cloud) {
	m.cloud = c
	m.bounds = yRange(c.Positions)
	m.colors = shade(c, m.bounds, m.opts.Color1, m.opts.Color2)
}
