package gallery

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 200, 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadImageShrinks(t *testing.T) {
	path := writePNG(t, t.TempDir(), "wide.png", 400, 100)

	tex, err := LoadImage(path, 200, 200)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if tex.Width != 200 || tex.Height != 50 {
		t.Errorf("size = %dx%d, want 200x50", tex.Width, tex.Height)
	}
}

func TestLoadImageKeepsSmall(t *testing.T) {
	path := writePNG(t, t.TempDir(), "small.png", 10, 8)

	tex, err := LoadImage(path, 200, 200)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if tex.Width != 10 || tex.Height != 8 {
		t.Errorf("size = %dx%d, want 10x8", tex.Width, tex.Height)
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadImage(filepath.Join(dir, "missing.png"), 10, 10); err == nil {
		t.Error("expected error for missing file")
	}

	bogus := filepath.Join(dir, "bogus.jpg")
	if err := os.WriteFile(bogus, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(bogus, 10, 10); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoaderFallsBackToPlaceholder(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "good.png", 20, 20)

	l := NewLoader(zap.NewNop())
	out, err := l.Load(context.Background(), []string{good, filepath.Join(dir, "nope.png")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d textures, want 2", len(out))
	}
	for i, tex := range out {
		if tex == nil {
			t.Errorf("texture %d is nil", i)
		}
	}
	if out[0].Width != 20 {
		t.Errorf("good image width = %d, want 20", out[0].Width)
	}
}

func TestLoaderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLoader(zap.NewNop())
	if _, err := l.Load(ctx, []string{"a.png", "b.png"}); err == nil {
		t.Error("expected context error")
	}
}

func TestGroup(t *testing.T) {
	g := NewGroup([]string{"a.png", "b.png"})
	if g.Len() != 2 {
		t.Errorf("Len = %d, want 2", g.Len())
	}
	if g.Image(0) != nil || g.Image(5) != nil {
		t.Error("unloaded or out-of-range images should be nil")
	}

	var empty *Group
	if empty.Len() != 0 || empty.Image(0) != nil {
		t.Error("nil group should be empty")
	}
}
