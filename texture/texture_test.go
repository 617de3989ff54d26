package texture

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/solwheel/astroglobe/vectors"
)

// quadrantImage has a distinct color per hemisphere quadrant so tests can
// verify the equirectangular mapping.
func quadrantImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var c color.NRGBA
			switch {
			case y < h/2 && x < w/2:
				c = color.NRGBA{R: 255, A: 255} // north-west
			case y < h/2:
				c = color.NRGBA{G: 255, A: 255} // north-east
			case x < w/2:
				c = color.NRGBA{B: 255, A: 255} // south-west
			default:
				c = color.NRGBA{R: 255, G: 255, A: 255} // south-east
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSampleQuadrants(t *testing.T) {
	tex := FromImage(quadrantImage(64, 32))

	cases := []struct {
		name     string
		lat, lng float64
		r, g, b  float64
	}{
		{"north-west", 45, -90, 1, 0, 0},
		{"north-east", 45, 90, 0, 1, 0},
		{"south-west", -45, -90, 0, 0, 1},
		{"south-east", -45, 90, 1, 1, 0},
	}
	for _, c := range cases {
		got := tex.Sample(vectors.FromLatLng(c.lat, c.lng))
		if got.R != c.r || got.G != c.g || got.B != c.b {
			t.Errorf("%s: Sample(%f, %f) = %+v", c.name, c.lat, c.lng, got)
		}
	}
}

func TestSamplePoles(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: 255, A: 255})
		img.SetNRGBA(x, 3, color.NRGBA{B: 255, A: 255})
	}
	tex := FromImage(img)

	if got := tex.Sample(vectors.FromLatLng(90, 0)); got.R != 1 {
		t.Errorf("north pole sample = %+v", got)
	}
	if got := tex.Sample(vectors.FromLatLng(-90, 0)); got.B != 1 {
		t.Errorf("south pole sample = %+v", got)
	}
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPNGFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.png")
	writePNG(t, path, quadrantImage(16, 8))

	tex, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tex.Width != 16 || tex.Height != 8 {
		t.Errorf("dimensions = %dx%d", tex.Width, tex.Height)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 3)
	for i := range paths {
		paths[i] = filepath.Join(dir, "tex"+string(rune('a'+i))+".png")
		writePNG(t, paths[i], quadrantImage(8, 4))
	}

	texs, err := LoadAll(context.Background(), paths...)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(texs) != len(paths) {
		t.Fatalf("got %d textures, want %d", len(texs), len(paths))
	}
	for i, tex := range texs {
		if tex.Width != 8 || tex.Height != 4 {
			t.Errorf("texture %d dimensions = %dx%d", i, tex.Width, tex.Height)
		}
	}
}

func TestLoadAllPropagatesError(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writePNG(t, good, quadrantImage(8, 4))

	if _, err := LoadAll(context.Background(), good, filepath.Join(dir, "missing.png")); err == nil {
		t.Fatal("expected error when one path is missing")
	}
}
