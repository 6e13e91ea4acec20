package scene

import (
	"fmt"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/taigrr/showcase/pkg/math3d"
	"github.com/taigrr/showcase/pkg/render"
)

const exploreText = "EXPLORE"

var (
	colorXray  = render.RGB(0, 255, 128)
	colorDim   = render.RGB(120, 120, 130)
	colorHUD   = render.RGB(220, 220, 220)
	colorFPS   = render.RGB(80, 220, 120)
	colorCount = render.RGB(80, 200, 230)
)

// Compose draws the frame's pixels: both layers, the x-ray overlay, the
// progress bar and the viewer.
func (s *Scene) Compose() {
	s.fb.Clear(s.background)

	rot := math3d.EulerXY(s.followX.Position, s.followY.Position)
	s.drawn = s.back.Draw(s.points, rot)
	s.drawn += s.front.Draw(s.points, rot)

	if s.xray {
		m := s.models[s.current]
		if mesh := m.Mesh(); mesh != nil && m.IsActive() {
			scale := m.U.Scale
			mat := rot.Mul4(m.Matrix()).Mul4(mgl64.Scale3D(scale, scale, scale))
			s.wire.DrawEdges(mesh.Positions, m.Edges(), mat, colorXray)
		}
	}

	s.bar.Draw(s.fb)
	s.viewer.Draw(s.fb)
}

// Draw puts the composed frame and its text on scr.
func (s *Scene) Draw(scr uv.Screen) {
	s.fb.Draw(scr, scr.Bounds())
	s.drawTitles(scr)
	s.drawExplore(scr)
	s.drawPage(scr)
	s.drawCaption(scr)
	if s.hud {
		s.drawHUD(scr)
	}
}

// Frame composes and draws one frame.
func (s *Scene) Frame(scr uv.Screen) {
	s.Compose()
	s.Draw(scr)
}

// drawTitles writes the current title on the top row and any title still
// collapsing just below it.
func (s *Scene) drawTitles(scr uv.Screen) {
	if s.viewer.Active() {
		return
	}
	row := 2
	for i, t := range s.titles {
		if i == s.current {
			continue
		}
		if text := t.Visible(); text != "" {
			s.fb.DrawText(scr, 2, row, text, colorDim)
			row++
		}
	}
	if text := s.titles[s.current].Visible(); text != "" {
		s.fb.DrawText(scr, 2, 1, text, s.accents[s.current])
	}
}

func (s *Scene) drawExplore(scr uv.Screen) {
	w := render.TextWidth(exploreText)
	col := (s.cols - w) / 2
	row := s.rows - 5
	s.exploreHit = bounds{col - 1, row, col + w + 1, row + 2}
	if s.explore <= 0.01 {
		return
	}

	fg := render.Scale(render.ColorWhite, s.explore)
	s.fb.DrawText(scr, col, row, exploreText, fg)
	arrow := row + 1
	if s.exploreHover > 0.5 {
		arrow++
	}
	s.fb.DrawText(scr, col+w/2, arrow, "↓", fg)
}

// drawPage writes "01 / 03" next to the progress bar.
func (s *Scene) drawPage(scr uv.Screen) {
	text := fmt.Sprintf("%02d / %02d", s.bar.Page(), s.bar.Len())
	b := s.bar.Bounds()
	if s.bar.Narrow() {
		col := s.cols - render.TextWidth(text) - 1
		s.fb.DrawText(scr, col, b.Min.Y/2-2, text, colorDim)
		return
	}
	s.fb.DrawText(scr, b.Max.X+2, b.Min.Y/2+1, text, colorDim)
}

func (s *Scene) drawCaption(scr uv.Screen) {
	text := s.viewer.Caption()
	if text == "" {
		return
	}
	col := (s.cols - render.TextWidth(text)) / 2
	s.fb.DrawText(scr, col, s.rows-2, text, colorHUD)
}

// drawHUD shows the frame rate, the model and the particle count on the
// top row and the toggles on the bottom row.
func (s *Scene) drawHUD(scr uv.Screen) {
	fps := fmt.Sprintf(" %.0f FPS ", s.fps)
	s.fb.DrawText(scr, 0, 0, fps, colorFPS)

	name := fmt.Sprintf(" %s ", s.models[s.current].Name())
	s.fb.DrawText(scr, max((s.cols-render.TextWidth(name))/2, 0), 0, name, colorHUD)

	count := fmt.Sprintf(" %d/%d pts ", s.drawn, s.all.Points())
	s.fb.DrawText(scr, max(s.cols-render.TextWidth(count), 0), 0, count, colorCount)

	check := "[ ]"
	if s.xray {
		check = "[✓]"
	}
	status := fmt.Sprintf(" %s X-Ray  size %.1f  viewer %s ", check, s.pointSize, s.viewer.State())
	s.fb.DrawText(scr, 0, s.rows-1, status, colorHUD)
}
