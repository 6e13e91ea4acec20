package viewer

import (
	"fmt"
	"image"

	"github.com/taigrr/showcase/pkg/gallery"
	"github.com/taigrr/showcase/pkg/render"
)

const backdropOpacity = 0.85

// placeholder stands in for slides still loading.
var placeholder = gallery.Placeholder(8, 6)

// Draw renders the overlay into fb. Nothing is drawn once a closed
// viewer has faded out.
func (v *Viewer) Draw(fb *render.Framebuffer) {
	if !v.visible() {
		return
	}
	l := v.layout
	dy := v.Slide * float64(l.H)
	g := v.group()

	fb.FillRect(0, 0, fb.Width, fb.Height, render.ColorBlack, backdropOpacity*v.Opacity)

	for i := range g.Len() {
		tex := g.Image(i)
		if tex == nil {
			tex = placeholder
		}
		r := l.SlideRect(i, tex.AspectRatio())
		y := r.Min.Y + int(v.Track+dy)
		if y >= l.H || y+r.Dy() <= 0 {
			continue
		}
		fb.DrawTexture(tex, r.Min.X, y, r.Dx(), r.Dy(), v.Opacity)
	}

	for i := range g.Len() {
		r := l.ThumbRect(i).Add(image.Pt(0, int(dy)))
		if tex := g.Image(i); tex != nil {
			fb.DrawTexture(tex, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), v.Overview)
		} else {
			fb.FillRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), render.ColorGray, v.Overview)
		}
	}

	if v.LineOpacity > 0 && g.Len() > 0 {
		r := boxRect(v.Line, dy)
		fb.DrawRectOutline(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), render.Scale(render.ColorWhite, v.LineOpacity))
	}
}

// Caption returns the text shown under the overlay, empty when closed.
func (v *Viewer) Caption() string {
	if !v.Active() || v.ImageCount() == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", v.image+1, v.ImageCount())
}
