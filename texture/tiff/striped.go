package tiff

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/exp/mmap"

	"github.com/solwheel/astroglobe/colors"
)

type stripedTiff struct {
	header Header
	reader io.ReaderAt
}

// LoadStripedTiff opens an uncompressed striped TIFF without decoding it;
// pixels are read on demand through the mmap.
func LoadStripedTiff(path string) (image.Image, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	header, err := ParseHeader(reader)
	if err != nil {
		reader.Close()
		return nil, err
	}

	if header.Compression != CompressionNone {
		reader.Close()
		return nil, fmt.Errorf("unsupported compression: %d", header.Compression)
	}
	if err := validatePixelFormat(header); err != nil {
		reader.Close()
		return nil, err
	}
	if len(header.StripOffsets) == 0 || len(header.StripOffsets) != len(header.StripByteCounts) {
		reader.Close()
		return nil, fmt.Errorf("invalid strip offset/length")
	}
	if header.RowsPerStrip <= 0 {
		reader.Close()
		return nil, fmt.Errorf("invalid rows per strip: %d", header.RowsPerStrip)
	}

	return &stripedTiff{header: header, reader: reader}, nil
}

func (t *stripedTiff) ColorModel() color.Model {
	return color.RGBAModel
}

func (t *stripedTiff) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.header.Width, t.header.Height)
}

func (t *stripedTiff) At(x, y int) color.Color {
	h := t.header

	strip := y / h.RowsPerStrip
	localY := y % h.RowsPerStrip
	bytesPerPixel := h.SamplesPerPixel

	idx := h.StripOffsets[strip] + (localY*h.Width+x)*bytesPerPixel

	switch h.Photometric {
	case PhotometricRGB:
		var buf [3]byte
		if _, err := t.reader.ReadAt(buf[:], int64(idx)); err != nil {
			panic(fmt.Sprintf("could not read RGB pixel at (%d,%d): %v", x, y, err))
		}
		return colors.From8BitRGB(buf[0], buf[1], buf[2], 255)

	case PhotometricBlackIsZero:
		var b [1]byte
		if _, err := t.reader.ReadAt(b[:], int64(idx)); err != nil {
			panic(fmt.Sprintf("could not read grayscale pixel at (%d,%d): %v", x, y, err))
		}
		return colors.From8BitRGB(b[0], b[0], b[0], 255)

	default:
		panic(fmt.Sprintf("unsupported PhotometricInterpretation: %d", h.Photometric))
	}
}
