// Package scene runs the showcase: it owns the camera, the background and
// foreground layers, the progress bar and the image viewer, and turns
// input into model switches or image navigation.
//
// All state is mutated on the frame loop. Assets loaded elsewhere are
// handed in through AttachMesh and AttachImages.
package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/taigrr/showcase/pkg/config"
	"github.com/taigrr/showcase/pkg/cue"
	"github.com/taigrr/showcase/pkg/gallery"
	"github.com/taigrr/showcase/pkg/math3d"
	"github.com/taigrr/showcase/pkg/models"
	"github.com/taigrr/showcase/pkg/particle"
	"github.com/taigrr/showcase/pkg/progress"
	"github.com/taigrr/showcase/pkg/render"
	"github.com/taigrr/showcase/pkg/tween"
	"github.com/taigrr/showcase/pkg/viewer"
)

// Hero is the model index AttachMesh uses for the background model.
const Hero = -1

const (
	// gateDuration blocks further switches after a model change.
	gateDuration = 1500 * time.Millisecond

	titleDelay = 500 * time.Millisecond

	exploreOut   = 100 * time.Millisecond
	exploreIn    = time.Second
	exploreHover = 300 * time.Millisecond

	pointSizeStep = 0.2
	minPointSize  = 0.1
	maxPointSize  = 10
)

// Scene is the showcase state.
type Scene struct {
	cfg    *config.Config
	log    *zap.Logger
	engine *tween.Engine
	rng    *rand.Rand
	cues   *cue.Player

	camera     *render.Camera
	fb         *render.Framebuffer
	points     *render.PointRenderer
	wire       *render.Wireframe
	background render.Color

	back    *Layer
	front   *Layer
	models  particle.Set // foreground models in navigation order
	hero    *particle.Model
	all     particle.Set // every model, hero included
	accents []render.Color

	groups []*gallery.Group
	titles []*Title
	bar    *progress.Bar
	viewer *viewer.Viewer

	current   int
	animating bool

	followX, followY FollowAxis

	explore      float64 // EXPLORE hint opacity
	exploreHover float64
	exploreHit   bounds
	hovering     bool

	xray      bool
	hud       bool
	pointSize float64
	drawn     int

	cols, rows int
	gesture    gesture

	fps       float64
	fpsFrames int
	fpsTime   time.Duration

	quit bool
}

// bounds is a cell rectangle, max exclusive.
type bounds struct {
	x0, y0, x1, y1 int
}

func (b bounds) contains(x, y int) bool {
	return x >= b.x0 && x < b.x1 && y >= b.y0 && y < b.y1
}

// New builds the scene described by cfg. Models start unloaded; the
// first one is shown as soon as its mesh is attached. cues may be nil.
func New(cfg *config.Config, log *zap.Logger, cues *cue.Player) (*Scene, error) {
	if len(cfg.Models) == 0 {
		return nil, errors.New("create scene: no models")
	}
	bg, err := render.ParseColor(cfg.Display.Background)
	if err != nil {
		return nil, fmt.Errorf("parse background: %w", err)
	}

	seed := cfg.Particles.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fps := max(cfg.Display.FPS, 1)
	s := &Scene{
		cfg:        cfg,
		log:        log,
		engine:     tween.NewEngine(),
		rng:        rand.New(rand.NewSource(seed)),
		cues:       cues,
		background: render.ToRGBA(bg),
		pointSize:  cfg.Particles.PointSize,
		followX:    NewFollowAxis(fps),
		followY:    NewFollowAxis(fps),
	}
	if s.pointSize <= 0 {
		s.pointSize = particle.DefaultPointSize
	}

	pos := cfg.Camera.Position
	s.camera = render.NewCamera(cfg.Camera.FOV, mgl64.Vec3{pos[0], pos[1], pos[2]})
	s.camera.LookAt(mgl64.Vec3{})
	s.camera.SetClipPlanes(0.1, 100)
	s.fb = render.NewFramebuffer(1, 2)
	s.points = render.NewPointRenderer(s.camera, s.fb)
	s.wire = render.NewWireframe(s.camera, s.fb)

	targets := make([]viewer.Disperser, len(cfg.Models))
	for i, mc := range cfg.Models {
		m, accent, err := s.newModel(mc, cfg.Particles.Count)
		if err != nil {
			return nil, err
		}
		s.models = append(s.models, m)
		s.accents = append(s.accents, accent)
		targets[i] = m

		paths := make([]string, len(mc.Images))
		for j, p := range mc.Images {
			paths[j] = cfg.Resolve(p)
		}
		s.groups = append(s.groups, gallery.NewGroup(paths))
		s.titles = append(s.titles, NewTitle(mc.Name))
	}
	s.all = append(s.all, s.models...)
	s.front = &Layer{Models: s.models, Follow: true}

	if cfg.Hero != nil {
		hc := *cfg.Hero
		hc.Hero = true
		s.hero, _, err = s.newModel(hc, cfg.Particles.HeroCount)
		if err != nil {
			return nil, err
		}
		s.all = append(s.all, s.hero)
		s.back = &Layer{Models: particle.Set{s.hero}}
	}

	s.bar = progress.New(len(s.models), s, s.engine)
	s.viewer = viewer.New(s.groups, targets, s.engine, log)

	s.bar.Sync(0)
	s.titles[0].Reveal(s.engine, titleDelay)
	s.engine.To(&s.explore, 1, exploreIn, tween.Power2Out, tween.Delay(titleDelay))
	s.Resize(80, 24)
	return s, nil
}

// newModel creates the model for mc and returns it with its accent
// colour.
func (s *Scene) newModel(mc config.ModelConfig, count int) (*particle.Model, render.Color, error) {
	c1, err := render.ParseColor(mc.Color1)
	if err != nil {
		return nil, render.Color{}, fmt.Errorf("model %s: %w", mc.Name, err)
	}
	c2, err := render.ParseColor(mc.Color2)
	if err != nil {
		return nil, render.Color{}, fmt.Errorf("model %s: %w", mc.Name, err)
	}
	m := particle.New(particle.Options{
		Name:        mc.Name,
		Color1:      c1,
		Color2:      c2,
		Count:       count,
		PointSize:   s.pointSize,
		Pressed:     mc.Pressed,
		PlaceOnLoad: mc.PlaceOnLoad,
		Hero:        mc.Hero,
	}, s.engine, s.rng, s.log)
	return m, render.ToRGBA(c2), nil
}

// Current implements progress.Selector.
func (s *Scene) Current() int { return s.current }

// Select implements progress.Selector.
func (s *Scene) Select(index int) { s.changeModel(index) }

// Models returns the foreground models.
func (s *Scene) Models() particle.Set { return s.models }

// HeroModel returns the background model, nil without one.
func (s *Scene) HeroModel() *particle.Model { return s.hero }

// Viewer returns the image viewer.
func (s *Scene) Viewer() *viewer.Viewer { return s.viewer }

// Bar returns the progress bar.
func (s *Scene) Bar() *progress.Bar { return s.bar }

// Animating reports whether a model switch is still blocking navigation.
func (s *Scene) Animating() bool { return s.animating }

// Done reports whether the user asked to quit.
func (s *Scene) Done() bool { return s.quit }

// Framebuffer returns the framebuffer Compose draws into.
func (s *Scene) Framebuffer() *render.Framebuffer { return s.fb }

// Title returns the title of model i.
func (s *Scene) Title(i int) *Title { return s.titles[i] }

// changeModel shows model index, wrapping out-of-range indices. It does
// nothing while the previous switch is still animating.
func (s *Scene) changeModel(index int) {
	index = math3d.Wrap(index, len(s.models))
	if s.animating || index == s.current {
		return
	}
	prev := s.current
	s.current = index
	s.animating = true

	for i, m := range s.models {
		if i == index {
			m.Activate()
		} else {
			m.Deactivate()
		}
	}
	s.titles[prev].Collapse(s.engine)
	s.titles[index].Reveal(s.engine, 0)
	s.bar.Sync(index)
	s.cues.Play(cue.Switch)

	s.engine.After(gateDuration, func() { s.animating = false })

	s.log.Debug("model changed", zap.Int("from", prev), zap.Int("to", index),
		zap.String("name", s.models[index].Name()))
}

// AttachMesh hands a loaded mesh to model index, or to the hero when
// index is Hero. A failed load leaves a foreground model inert; the hero
// falls back to its procedural cloud.
func (s *Scene) AttachMesh(index int, mesh *models.Mesh, loadErr error) {
	m, name := s.model(index)
	if m == nil {
		return
	}
	if loadErr != nil {
		s.log.Warn("model load failed", zap.String("model", name), zap.Error(loadErr))
		if !m.IsHero() {
			return
		}
		mesh = nil
	}
	if err := m.Attach(mesh); err != nil {
		s.log.Warn("model has no particles", zap.String("model", name), zap.Error(err))
		return
	}
	if m.IsHero() {
		m.Activate()
		return
	}

	// Loads finish out of order: only the current model may be shown
	if index == s.current {
		m.Activate()
	} else {
		m.Deactivate()
	}
}

// AttachImages hands decoded gallery images to model index.
func (s *Scene) AttachImages(index int, images []*render.Texture) {
	if index < 0 || index >= len(s.groups) {
		return
	}
	s.groups[index].Images = images
	s.log.Debug("images attached", zap.Int("model", index), zap.Int("count", len(images)))
}

func (s *Scene) model(index int) (*particle.Model, string) {
	if index == Hero {
		if s.hero == nil {
			return nil, ""
		}
		return s.hero, s.hero.Name()
	}
	if index < 0 || index >= len(s.models) {
		return nil, ""
	}
	return s.models[index], s.models[index].Name()
}

// viewerDo runs fn against the viewer and applies the side effects of
// any open or close it caused.
func (s *Scene) viewerDo(fn func(v *viewer.Viewer)) {
	wasActive := s.viewer.Active()
	image := s.viewer.Image()
	fn(s.viewer)

	switch active := s.viewer.Active(); {
	case active && !wasActive:
		s.engine.To(&s.explore, 0, exploreOut, tween.Power2Out)
		s.bar.SetEnabled(false)
		s.cues.Play(cue.Open)
	case !active && wasActive:
		s.engine.To(&s.explore, 1, exploreIn, tween.Power2Out)
		s.bar.SetEnabled(true)
		s.cues.Play(cue.Close)
	case active && s.viewer.Image() != image:
		s.cues.Play(cue.Step)
	}
}

func (s *Scene) openViewer(autoCycle bool) {
	s.viewerDo(func(v *viewer.Viewer) { v.Open(s.current, autoCycle) })
}

func (s *Scene) nextImage() { s.viewerDo((*viewer.Viewer).Next) }

func (s *Scene) prevImage() { s.viewerDo((*viewer.Viewer).Prev) }

func (s *Scene) closeViewer() { s.viewerDo((*viewer.Viewer).Close) }

// setPointSize changes the point size of every model.
func (s *Scene) setPointSize(v float64) {
	s.pointSize = math3d.Clamp(v, minPointSize, maxPointSize)
	s.all.SetPointSize(s.pointSize)
}

// rebuild re-samples every cloud at the configured counts.
func (s *Scene) rebuild() {
	if err := s.all.Rebuild(s.cfg.Particles.Count, s.cfg.Particles.HeroCount); err != nil {
		s.log.Warn("rebuild failed", zap.Error(err))
	}
}

// Resize lays the scene out for a cols x rows terminal.
func (s *Scene) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	s.cols, s.rows = cols, rows
	s.fb.Resize(cols, rows*2)
	s.camera.SetAspectRatio(float64(s.fb.Width) / float64(s.fb.Height))
	s.bar.Layout(s.fb.Width, s.fb.Height, cols < s.cfg.Display.NarrowWidth)
	s.viewer.Resize(s.fb.Width, s.fb.Height)
}

// Update advances every animation by dt.
func (s *Scene) Update(dt time.Duration) {
	s.engine.Update(dt)
	s.followX.Update()
	s.followY.Update()
	for _, m := range s.all {
		m.Advance(dt)
	}

	s.fpsFrames++
	s.fpsTime += dt
	if s.fpsTime >= time.Second {
		s.fps = float64(s.fpsFrames) / s.fpsTime.Seconds()
		s.fpsFrames = 0
		s.fpsTime = 0
	}
}
