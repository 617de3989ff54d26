package tiff

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/exp/mmap"

	"github.com/solwheel/astroglobe/colors"
)

type tiledTiff struct {
	header Header
	reader *mmap.ReaderAt
	cache  *lru.Cache // tileIndex -> []byte
}

// LoadTiledTiff opens a tiled TIFF (uncompressed or deflate) without
// decoding it; tiles are decompressed on demand and kept in an LRU cache.
func LoadTiledTiff(path string) (image.Image, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	header, err := ParseHeader(reader)
	if err != nil {
		reader.Close()
		return nil, err
	}

	if header.Compression != CompressionNone && header.Compression != CompressionDeflate {
		reader.Close()
		return nil, fmt.Errorf("unsupported compression: %d", header.Compression)
	}
	if err := validatePixelFormat(header); err != nil {
		reader.Close()
		return nil, err
	}
	if header.TileWidth <= 0 || header.TileHeight <= 0 {
		reader.Close()
		return nil, fmt.Errorf("not a tiled TIFF")
	}
	if len(header.TileOffsets) == 0 || len(header.TileOffsets) != len(header.TileByteCounts) {
		reader.Close()
		return nil, fmt.Errorf("invalid tile offset/length")
	}

	cache, _ := lru.New(200)

	return &tiledTiff{
		header: header,
		reader: reader,
		cache:  cache,
	}, nil
}

func (t *tiledTiff) ColorModel() color.Model {
	return color.RGBAModel
}

func (t *tiledTiff) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.header.Width, t.header.Height)
}

func (t *tiledTiff) At(x, y int) color.Color {
	h := t.header

	tileX := x / h.TileWidth
	tileY := y / h.TileHeight
	tilesAcross := int(math.Ceil(float64(h.Width) / float64(h.TileWidth)))
	tileIndex := tileY*tilesAcross + tileX

	var tile []byte
	if val, ok := t.cache.Get(tileIndex); ok {
		tile = val.([]byte)
	} else {
		tile = t.loadTile(tileIndex)
		t.cache.Add(tileIndex, tile)
	}

	localX := x % h.TileWidth
	localY := y % h.TileHeight
	idx := (localY*h.TileWidth + localX) * h.SamplesPerPixel
	if idx < 0 || idx+h.SamplesPerPixel > len(tile) {
		panic(fmt.Sprintf("pixel (%d,%d) outside decoded tile %d", x, y, tileIndex))
	}

	switch h.Photometric {
	case PhotometricRGB:
		return colors.From8BitRGB(tile[idx], tile[idx+1], tile[idx+2], 255)
	case PhotometricBlackIsZero:
		return colors.From8BitRGB(tile[idx], tile[idx], tile[idx], 255)
	default:
		panic(fmt.Sprintf("unsupported PhotometricInterpretation: %d", h.Photometric))
	}
}

func (t *tiledTiff) loadTile(tileIndex int) []byte {
	h := t.header

	raw := make([]byte, h.TileByteCounts[tileIndex])
	if _, err := t.reader.ReadAt(raw, int64(h.TileOffsets[tileIndex])); err != nil {
		panic(fmt.Sprintf("could not read tile %d: %v", tileIndex, err))
	}

	if h.Compression == CompressionNone {
		return raw
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("could not decompress tile %d: %v", tileIndex, err))
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		panic(fmt.Sprintf("could not decompress tile %d: %v", tileIndex, err))
	}
	return out
}
