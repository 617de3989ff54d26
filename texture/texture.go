// Package texture loads equirectangular map imagery and samples it by
// unit surface normal.
package texture

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"

	_ "image/jpeg" // register JPEG format with image.Decode
	_ "image/png"  // register PNG format with image.Decode

	_ "golang.org/x/image/bmp" // BMP decoder registration

	xtiff "github.com/echoflaresat/tiff"
	"golang.org/x/sync/errgroup"

	"github.com/solwheel/astroglobe/colors"
	"github.com/solwheel/astroglobe/texture/tiff"
	"github.com/solwheel/astroglobe/vectors"
)

// Texture is an equirectangular RGB image sampled by unit position vectors.
type Texture struct {
	Width  int
	Height int
	img    image.Image
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) Texture {
	b := img.Bounds()
	return Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		img:    img,
	}
}

// Load reads the image at path. Uncompressed striped and deflate-compressed
// tiled TIFFs are read lazily through mmap; anything else goes through the
// registered image codecs.
func Load(path string) (Texture, error) {
	img, err := loadImage(path)
	if err != nil {
		return Texture{}, fmt.Errorf("load texture %s: %w", path, err)
	}
	return FromImage(img), nil
}

func loadImage(path string) (image.Image, error) {
	img, err := tiff.LoadStripedTiff(path)
	if err == nil {
		return img, nil
	}

	img, err = tiff.LoadTiledTiff(path)
	if err == nil {
		return img, nil
	}

	// fallback to buffered codecs
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err = xtiff.Decode(f)
	if err == nil {
		return img, nil
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	img, _, err = image.Decode(f)
	return img, err
}

// LoadAll fetches several textures concurrently and joins on completion:
// either every texture decoded, or the first error with no partial result.
func LoadAll(ctx context.Context, paths ...string) ([]Texture, error) {
	out := make([]Texture, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			t, err := Load(path)
			if err != nil {
				return err
			}
			out[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Sample maps the unit vector P (Y-up frame, see vectors.FromLatLng) to
// texture coordinates and returns the nearest texel. No interpolation.
func (t Texture) Sample(p vectors.Vec3) colors.Color4 {
	lat, lng := p.ToLatLng()

	u := (lng/360.0 + 0.5) * float64(t.Width-1)
	v := (0.5 - lat/180.0) * float64(t.Height-1)

	x := int(math.Mod(u, float64(t.Width)))
	if x < 0 {
		x += t.Width
	}
	y := int(v)
	if y < 0 {
		y = 0
	} else if y >= t.Height {
		y = t.Height - 1
	}

	return colors.FromStandardColor(t.img.At(x, y))
}
