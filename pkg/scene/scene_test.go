package scene

import (
	"errors"
	"strings"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/taigrr/showcase/pkg/config"
	"github.com/taigrr/showcase/pkg/models"
	"github.com/taigrr/showcase/pkg/viewer"
)

const frame = time.Second / 60

func run(s *Scene, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		s.Update(frame)
	}
}

func quad() *models.Mesh {
	m := models.NewMesh("quad")
	m.Positions = []mgl64.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}
	m.Faces = [][3]int{{0, 1, 2}, {0, 2, 3}}
	m.CalculateBounds()
	return m
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Particles.Count = 200
	cfg.Particles.HeroCount = 300
	cfg.Particles.Seed = 1
	cfg.Audio.Enabled = false
	return cfg
}

// newScene builds the stock three-model scene (2, 1 and 1 images) with
// every mesh loaded and the intro finished.
func newScene(t *testing.T) *Scene {
	t.Helper()
	s, err := New(testConfig(), zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.AttachMesh(Hero, quad(), nil)
	for i := range s.Models() {
		s.AttachMesh(i, quad(), nil)
	}
	run(s, 2*time.Second)
	return s
}

func key(s *Scene, names ...string) {
	for _, n := range names {
		s.HandleEvent(Key{Name: n})
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Models = nil
	if _, err := New(cfg, zap.NewNop(), nil); err == nil {
		t.Error("expected an error without models")
	}

	cfg = testConfig()
	cfg.Models[1].Color2 = "not-a-colour"
	_, err := New(cfg, zap.NewNop(), nil)
	if err == nil || !strings.Contains(err.Error(), "dragon") {
		t.Errorf("err = %v, want one naming the model", err)
	}
}

func TestStartsOnFirstModel(t *testing.T) {
	s := newScene(t)
	if s.Current() != 0 {
		t.Errorf("current = %d", s.Current())
	}
	for i, m := range s.Models() {
		if m.IsActive() != (i == 0) {
			t.Errorf("model %d active = %v", i, m.IsActive())
		}
	}
	if !s.HeroModel().IsActive() {
		t.Error("hero should be shown once loaded")
	}
	if s.Bar().Page() != 1 {
		t.Errorf("page = %d, want 1", s.Bar().Page())
	}
}

func TestKeyboardExample(t *testing.T) {
	s := newScene(t)

	key(s, "right")
	if s.Current() != 1 {
		t.Fatalf("current = %d, want 1", s.Current())
	}

	key(s, "down")
	v := s.Viewer()
	if !v.Active() || v.Model() != 1 || v.Image() != 0 {
		t.Fatalf("viewer active=%v model=%d image=%d", v.Active(), v.Model(), v.Image())
	}

	// The dragon has a single image
	key(s, "right")
	if v.Image() != 0 || s.Current() != 1 {
		t.Errorf("image=%d current=%d, want no-op", v.Image(), s.Current())
	}

	key(s, "up")
	if v.Active() {
		t.Error("up on the first image should close the viewer")
	}

	run(s, 2*time.Second)
	key(s, "left", "down")
	if v.Model() != 0 {
		t.Fatalf("viewer model = %d, want 0", v.Model())
	}
	key(s, "right")
	if v.Image() != 1 {
		t.Errorf("image = %d, want 1 on a two-image model", v.Image())
	}
}

func TestModelIndexWraps(t *testing.T) {
	s := newScene(t)

	key(s, "left")
	if s.Current() != 2 {
		t.Errorf("left from 0 = %d, want 2", s.Current())
	}
	run(s, 2*time.Second)
	key(s, "right")
	if s.Current() != 0 {
		t.Errorf("right from 2 = %d, want 0", s.Current())
	}
	if s.Bar().Page() != 1 {
		t.Errorf("page = %d, want 1", s.Bar().Page())
	}
}

func TestWheelGatedWhileAnimating(t *testing.T) {
	s := newScene(t)

	s.HandleEvent(Wheel{Delta: 1})
	if s.Current() != 1 || !s.Animating() {
		t.Fatalf("current=%d animating=%v", s.Current(), s.Animating())
	}
	s.HandleEvent(Wheel{Delta: 1})
	if s.Current() != 1 {
		t.Errorf("wheel during a switch moved to %d", s.Current())
	}

	run(s, 1400*time.Millisecond)
	if !s.Animating() {
		t.Error("gate cleared early")
	}
	run(s, 200*time.Millisecond)
	if s.Animating() {
		t.Error("gate should clear 1.5s after the switch")
	}

	s.HandleEvent(Wheel{Delta: -1})
	if s.Current() != 0 {
		t.Errorf("wheel up = %d, want 0", s.Current())
	}
}

func TestRapidKeysSwitchOnce(t *testing.T) {
	s := newScene(t)
	ms := s.Models()

	key(s, "right")
	run(s, 100*time.Millisecond)
	key(s, "right")
	if s.Current() != 1 {
		t.Fatalf("second press during a switch moved to %d", s.Current())
	}
	if s.Bar().Page() != 2 {
		t.Errorf("page = %d, want 2", s.Bar().Page())
	}

	run(s, 1100*time.Millisecond)
	if ms[0].IsActive() || !ms[1].IsActive() || ms[2].IsActive() {
		t.Errorf("active = %v %v %v, want only model 1",
			ms[0].IsActive(), ms[1].IsActive(), ms[2].IsActive())
	}

	run(s, 500*time.Millisecond)
	key(s, "left")
	if s.Current() != 0 {
		t.Errorf("press after the switch = %d, want 0", s.Current())
	}
}

func TestWheelNavigatesViewer(t *testing.T) {
	s := newScene(t)
	v := s.Viewer()

	key(s, "down")
	s.HandleEvent(Wheel{Delta: 1})
	if v.Image() != 1 {
		t.Fatalf("image = %d, want 1", v.Image())
	}
	s.HandleEvent(Wheel{Delta: 1})
	if v.Image() != 1 {
		t.Errorf("wheel past the last image moved to %d", v.Image())
	}

	s.HandleEvent(Wheel{Delta: -1})
	s.HandleEvent(Wheel{Delta: -1})
	if v.Active() {
		t.Error("wheel up on the first image should close")
	}
	if s.Current() != 0 {
		t.Errorf("viewer navigation changed the model to %d", s.Current())
	}
}

func TestLeftOnFirstImageKeepsViewerOpen(t *testing.T) {
	s := newScene(t)
	key(s, "down", "left")
	if !s.Viewer().Active() {
		t.Error("left on the first image should do nothing")
	}
	key(s, "esc")
	if s.Viewer().Active() || s.Done() {
		t.Error("esc should close the viewer before quitting")
	}
	key(s, "esc")
	if !s.Done() {
		t.Error("esc with the viewer closed should quit")
	}
}

func TestDownAutoCycles(t *testing.T) {
	s := newScene(t)
	key(s, "down")
	run(s, 2*time.Second)
	if s.Viewer().State() != viewer.Open {
		t.Fatalf("state = %v", s.Viewer().State())
	}
	key(s, "down")
	if s.Viewer().Image() != 1 {
		t.Errorf("image = %d, want 1", s.Viewer().Image())
	}
	key(s, "down")
	if s.Viewer().Image() != 0 {
		t.Errorf("image = %d, want wrap to 0", s.Viewer().Image())
	}
}

func TestViewerDispersesModel(t *testing.T) {
	s := newScene(t)
	m := s.Models()[0]

	key(s, "down")
	run(s, 2*time.Second)
	if m.U.Dispersion < 2.9 {
		t.Errorf("dispersion = %v, want scattered", m.U.Dispersion)
	}
	key(s, "up")
	run(s, 2*time.Second)
	if m.U.Dispersion > 0.01 {
		t.Errorf("dispersion = %v, want assembled", m.U.Dispersion)
	}
}

func barCell(s *Scene, index int) (col, row int) {
	b := s.Bar().Bounds()
	last := b.Max.X - 3
	first := b.Min.X + 2
	step := (last - first) / (s.Bar().Len() - 1)
	return first + index*step, (b.Min.Y + b.Max.Y) / 4
}

func TestBarDragSelects(t *testing.T) {
	s := newScene(t)
	s.HandleEvent(Resize{Cols: 120, Rows: 40})
	if s.Bar().Narrow() {
		t.Fatal("120 columns should lay the bar out wide")
	}

	col, row := barCell(s, 2)
	s.HandleEvent(PointerDown{X: col, Y: row})
	if s.Current() != 2 {
		t.Fatalf("current = %d, want 2", s.Current())
	}

	col, row = barCell(s, 1)
	s.HandleEvent(PointerMove{X: col, Y: row})
	if s.Current() != 2 || s.Bar().Page() != 3 {
		t.Errorf("current=%d page=%d, want the drag held during a switch",
			s.Current(), s.Bar().Page())
	}
	run(s, 2*time.Second)
	s.HandleEvent(PointerMove{X: col, Y: row})
	if s.Current() != 1 {
		t.Errorf("current = %d, want 1 while dragging", s.Current())
	}
	s.HandleEvent(PointerUp{X: col, Y: row})

	// The bar is inert while the viewer is open
	key(s, "down")
	col, row = barCell(s, 0)
	s.HandleEvent(PointerDown{X: col, Y: row})
	if s.Current() != 1 {
		t.Errorf("bar switched models under the viewer: %d", s.Current())
	}
}

func TestSwipeNavigatesOncePerGesture(t *testing.T) {
	s := newScene(t)

	s.HandleEvent(PointerDown{X: 5, Y: 15})
	s.HandleEvent(PointerMove{X: 5, Y: 14})
	if s.Current() != 0 {
		t.Fatal("a short drag should not navigate")
	}
	s.HandleEvent(PointerMove{X: 5, Y: 12})
	if s.Current() != 1 {
		t.Fatalf("swipe up: current = %d, want 1", s.Current())
	}
	run(s, 2*time.Second)
	s.HandleEvent(PointerMove{X: 5, Y: 5})
	if s.Current() != 1 {
		t.Errorf("second navigation in one gesture: %d", s.Current())
	}
	s.HandleEvent(PointerUp{X: 5, Y: 5})

	s.HandleEvent(PointerDown{X: 5, Y: 5})
	s.HandleEvent(PointerMove{X: 5, Y: 9})
	if s.Current() != 0 {
		t.Errorf("swipe down: current = %d, want 0", s.Current())
	}
}

func TestPointerSteersForeground(t *testing.T) {
	s := newScene(t)
	s.HandleEvent(PointerMove{X: 80, Y: 24})
	run(s, 3*time.Second)
	if d := s.followY.Position - 2; d > 0.01 || d < -0.01 {
		t.Errorf("yaw = %v, want 2 at the right edge", s.followY.Position)
	}
	if d := s.followX.Position - 0.5; d > 0.01 || d < -0.01 {
		t.Errorf("pitch = %v, want 0.5 at the bottom edge", s.followX.Position)
	}
}

func TestLateLoadShowsOnlyCurrent(t *testing.T) {
	s, err := New(testConfig(), zap.NewNop(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ms := s.Models()

	key(s, "right") // before anything loaded
	s.AttachMesh(0, quad(), nil)
	s.AttachMesh(1, quad(), nil)
	run(s, 1100*time.Millisecond)

	if ms[0].IsActive() {
		t.Error("the first model loaded late should not be shown")
	}
	if !ms[1].IsActive() {
		t.Error("the current model should be shown once loaded")
	}
}

func TestFailedLoads(t *testing.T) {
	s, err := New(testConfig(), zap.NewNop(), nil)
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")

	s.AttachMesh(0, nil, boom)
	if s.Models()[0].Loaded() {
		t.Error("a failed model should stay unloaded")
	}
	key(s, "p", "down", "up")

	s.AttachMesh(Hero, nil, boom)
	hero := s.HeroModel()
	if !hero.Loaded() || !hero.IsActive() || hero.Len() != 300 {
		t.Errorf("hero loaded=%v active=%v len=%d, want the cube fallback",
			hero.Loaded(), hero.IsActive(), hero.Len())
	}

	s.AttachMesh(7, quad(), nil)
	s.AttachImages(7, nil)

	bad := quad()
	bad.Faces = append(bad.Faces, [3]int{0, 2, 9})
	s.AttachMesh(1, bad, nil)
	if s.Models()[1].Loaded() {
		t.Error("a mesh with a dangling face should leave the model inert")
	}
}

func TestTitles(t *testing.T) {
	s := newScene(t)
	if got := s.Title(0).Visible(); got != "WATER" {
		t.Fatalf("title = %q after the intro", got)
	}

	key(s, "right")
	run(s, 2*time.Second)
	if got := s.Title(0).Visible(); got != "" {
		t.Errorf("old title = %q, want collapsed", got)
	}
	if got := s.Title(1).Visible(); got != "DRAGON" {
		t.Errorf("new title = %q", got)
	}
}

func TestControls(t *testing.T) {
	s := newScene(t)

	for range 100 {
		key(s, "+")
	}
	if s.pointSize != maxPointSize || s.Models()[2].U.PointSize != maxPointSize {
		t.Errorf("point size = %v", s.pointSize)
	}
	for range 100 {
		key(s, "-")
	}
	if s.pointSize != minPointSize {
		t.Errorf("point size = %v", s.pointSize)
	}

	s.cfg.Particles.Count = 50
	key(s, "r")
	if n := s.Models()[0].Len(); n != 50 {
		t.Errorf("rebuilt len = %d, want 50", n)
	}

	key(s, "p")
	run(s, 1100*time.Millisecond)
	if s.Models()[0].U.Pressed < 1.19 {
		t.Errorf("pressed = %v", s.Models()[0].U.Pressed)
	}

	key(s, "x", "?")
	if !s.xray || !s.hud {
		t.Error("x and ? should toggle x-ray and the HUD")
	}
	key(s, "q")
	if !s.Done() {
		t.Error("q should quit")
	}
}

func TestFrameDrawsText(t *testing.T) {
	s := newScene(t)
	key(s, "?")
	run(s, 1100*time.Millisecond)

	scr := uv.NewScreenBuffer(80, 24)
	s.Frame(scr)

	var top strings.Builder
	for x := range 80 {
		if c := scr.CellAt(x, 0); c != nil {
			top.WriteString(c.Content)
		}
	}
	if !strings.Contains(top.String(), "FPS") {
		t.Errorf("HUD row = %q, want FPS", top.String())
	}
	if s.drawn == 0 {
		t.Error("no particles drawn")
	}
}

func TestExploreClickOpensViewer(t *testing.T) {
	s := newScene(t)
	s.Frame(uv.NewScreenBuffer(80, 24))

	hit := s.exploreHit
	s.HandleEvent(PointerMove{X: hit.x0 + 1, Y: hit.y0})
	s.HandleEvent(PointerDown{X: hit.x0 + 1, Y: hit.y0})
	if !s.Viewer().Active() {
		t.Fatal("clicking EXPLORE should open the viewer")
	}
	run(s, 200*time.Millisecond)
	if s.explore > 0.01 {
		t.Errorf("explore = %v, want faded out", s.explore)
	}

	key(s, "up")
	run(s, 1100*time.Millisecond)
	if s.explore < 0.99 {
		t.Errorf("explore = %v, want back after close", s.explore)
	}
}
