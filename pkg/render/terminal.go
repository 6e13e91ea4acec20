package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
				},
			})
		}
	}
}

// DrawText writes s starting at cell (col, row) in colour fg. Each cell's
// background is the average of the two framebuffer pixels it covers, so
// text sits on the rendered scene. Text past the framebuffer edge is cut.
func (fb *Framebuffer) DrawText(scr uv.Screen, col, row int, s string, fg Color) int {
	if row < 0 || row*2 >= fb.Height {
		return col
	}
	for _, r := range s {
		ch := string(r)
		w := ansi.StringWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > fb.Width {
			break
		}
		if col >= 0 {
			bg := mix(fb.GetPixel(col, row*2), fb.GetPixel(col, row*2+1))
			scr.SetCell(col, row, &uv.Cell{
				Content: ch,
				Width:   w,
				Style:   uv.Style{Fg: rgbaToColor(fg), Bg: rgbaToColor(bg)},
			})
		}
		col += w
	}
	return col
}

// TextWidth returns the number of cells s occupies.
func TextWidth(s string) int {
	return ansi.StringWidth(s)
}

func mix(a, b Color) Color {
	return Color{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
		A: uint8((int(a.A) + int(b.A)) / 2),
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
