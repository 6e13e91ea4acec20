package viewer

import "image"

// linePad is the margin, per side, between a thumbnail and the overview
// line drawn around it.
const linePad = 1

// Layout positions the viewer's pieces in framebuffer pixels.
type Layout struct {
	W, H int

	imageH int // slide height in the scroll track
	gap    int // between slides

	thumbX, thumbTop int
	thumbW, thumbH   int
	thumbGap         int
}

// NewLayout sizes the viewer for a w x h pixel framebuffer. Thumbnails for
// count images stack down the left edge, centred vertically.
func NewLayout(w, h, count int) Layout {
	l := Layout{
		W:        w,
		H:        h,
		imageH:   max(h*6/10, 4),
		gap:      max(h/10, 2),
		thumbH:   max(h/12, 3),
		thumbGap: 2,
		thumbX:   3,
	}
	l.thumbW = l.thumbH * 4 / 3
	total := count*l.thumbH + max(count-1, 0)*l.thumbGap
	l.thumbTop = h/2 - total/2
	return l
}

// SlideRect returns slide i in track coordinates, sized for an image of
// the given aspect ratio and centred horizontally.
func (l Layout) SlideRect(i int, aspect float64) image.Rectangle {
	h := l.imageH
	w := int(float64(h) * aspect)
	if maxW := l.W * 7 / 10; w > maxW {
		w = maxW
	}
	x := l.W/2 - w/2
	y := i * (l.imageH + l.gap)
	return image.Rect(x, y, x+w, y+h)
}

// TrackOffset returns the track translation that centres slide i
// vertically.
func (l Layout) TrackOffset(i int) float64 {
	top := i * (l.imageH + l.gap)
	return float64(l.H)/2 - (float64(top) + float64(l.imageH)/2)
}

// ThumbRect returns the overview thumbnail box for image i.
func (l Layout) ThumbRect(i int) image.Rectangle {
	y := l.thumbTop + i*(l.thumbH+l.thumbGap)
	return image.Rect(l.thumbX, y, l.thumbX+l.thumbW, y+l.thumbH)
}

// LineRect returns the overview line box around thumbnail i.
func (l Layout) LineRect(i int) image.Rectangle {
	return l.ThumbRect(i).Inset(-linePad)
}
