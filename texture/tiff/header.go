// Package tiff reads striped and tiled baseline TIFF files lazily through
// memory-mapped I/O, so multi-hundred-megabyte map imagery never has to be
// decoded up front.
package tiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidHeader marks files that are not TIFF at all, as opposed to TIFFs
// with unsupported features.
var ErrInvalidHeader = errors.New("invalid TIFF header")

// Compression schemes (tag 259).
const (
	CompressionNone    = 1
	CompressionDeflate = 8
)

// Photometric interpretations (tag 262).
const (
	PhotometricBlackIsZero = 1
	PhotometricRGB         = 2
)

// Header holds the subset of IFD tags the striped and tiled readers need.
type Header struct {
	ByteOrder       binary.ByteOrder
	Width, Height   int
	RowsPerStrip    int
	StripOffsets    []int
	StripByteCounts []int
	TileWidth       int
	TileHeight      int
	TileOffsets     []int
	TileByteCounts  []int
	BitsPerSample   []int
	SamplesPerPixel int
	Photometric     int
	Compression     int
	PlanarConfig    int
}

// https://www.loc.gov/preservation/digital/formats/content/tiff_tags.shtml
const (
	tagImageWidth                = 256
	tagImageLength               = 257
	tagBitsPerSample             = 258
	tagCompression               = 259
	tagPhotometricInterpretation = 262
	tagStripOffsets              = 273
	tagSamplesPerPixel           = 277
	tagRowsPerStrip              = 278
	tagStripByteCounts           = 279
	tagPlanarConfiguration       = 284
	tagTileWidth                 = 322
	tagTileLength                = 323
	tagTileOffsets               = 324
	tagTileByteCounts            = 325
)

// ParseHeader reads the first IFD of a classic (non-Big) TIFF.
func ParseHeader(reader io.ReaderAt) (Header, error) {
	read := func(offset int64, size int) ([]byte, error) {
		buf := make([]byte, size)
		_, err := reader.ReadAt(buf, offset)
		return buf, err
	}

	// 8-byte file header
	header, err := read(0, 8)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	var bo binary.ByteOrder
	switch string(header[0:2]) {
	case "II":
		bo = binary.LittleEndian
	case "MM":
		bo = binary.BigEndian
	default:
		return Header{}, fmt.Errorf("%w: bad byte order mark", ErrInvalidHeader)
	}
	if bo.Uint16(header[2:4]) != 42 {
		return Header{}, fmt.Errorf("%w: bad magic number", ErrInvalidHeader)
	}
	ifdOffset := int64(bo.Uint32(header[4:8]))

	entryCountRaw, err := read(ifdOffset, 2)
	if err != nil {
		return Header{}, err
	}
	numEntries := int(bo.Uint16(entryCountRaw))
	entriesRaw, err := read(ifdOffset+2, numEntries*12)
	if err != nil {
		return Header{}, err
	}

	hdr := Header{
		ByteOrder:       bo,
		SamplesPerPixel: -1,
		Photometric:     -1,
		Compression:     -1,
		PlanarConfig:    1, // default
	}

	for i := 0; i < numEntries; i++ {
		entry := entriesRaw[i*12 : (i+1)*12]
		tag := bo.Uint16(entry[0:2])
		count := bo.Uint32(entry[4:8])
		valOffset := int64(bo.Uint32(entry[8:12]))

		readShortArray := func() ([]int, error) {
			if count == 1 {
				return []int{int(bo.Uint16(entry[8:10]))}, nil
			}
			buf, err := read(valOffset, int(count*2))
			if err != nil {
				return nil, err
			}
			out := make([]int, count)
			for i := uint32(0); i < count; i++ {
				out[i] = int(bo.Uint16(buf[i*2:]))
			}
			return out, nil
		}
		readLongArray := func() ([]int, error) {
			if count == 1 {
				return []int{int(valOffset)}, nil
			}
			buf, err := read(valOffset, int(count*4))
			if err != nil {
				return nil, err
			}
			out := make([]int, count)
			for i := uint32(0); i < count; i++ {
				out[i] = int(bo.Uint32(buf[i*4:]))
			}
			return out, nil
		}

		switch tag {
		case tagImageWidth:
			hdr.Width = int(valOffset)
		case tagImageLength:
			hdr.Height = int(valOffset)
		case tagBitsPerSample:
			hdr.BitsPerSample, err = readShortArray()
			if err != nil {
				return Header{}, err
			}
		case tagCompression:
			hdr.Compression = int(bo.Uint16(entry[8:10]))
		case tagPhotometricInterpretation:
			hdr.Photometric = int(bo.Uint16(entry[8:10]))
		case tagStripOffsets:
			hdr.StripOffsets, err = readLongArray()
			if err != nil {
				return Header{}, err
			}
		case tagSamplesPerPixel:
			hdr.SamplesPerPixel = int(bo.Uint16(entry[8:10]))
		case tagRowsPerStrip:
			hdr.RowsPerStrip = int(valOffset)
		case tagStripByteCounts:
			hdr.StripByteCounts, err = readLongArray()
			if err != nil {
				return Header{}, err
			}
		case tagPlanarConfiguration:
			hdr.PlanarConfig = int(bo.Uint16(entry[8:10]))
		case tagTileWidth:
			hdr.TileWidth = int(valOffset)
		case tagTileLength:
			hdr.TileHeight = int(valOffset)
		case tagTileOffsets:
			hdr.TileOffsets, err = readLongArray()
			if err != nil {
				return Header{}, err
			}
		case tagTileByteCounts:
			hdr.TileByteCounts, err = readLongArray()
			if err != nil {
				return Header{}, err
			}
		}
	}

	if hdr.Width <= 0 || hdr.Height <= 0 {
		return Header{}, fmt.Errorf("invalid dimensions %dx%d", hdr.Width, hdr.Height)
	}

	return hdr, nil
}

// validatePixelFormat accepts 8-bit grayscale and 8-bit RGB only.
func validatePixelFormat(h Header) error {
	switch h.Photometric {
	case PhotometricBlackIsZero:
		if h.SamplesPerPixel != 1 || len(h.BitsPerSample) == 0 || h.BitsPerSample[0] != 8 {
			return fmt.Errorf("unsupported grayscale format")
		}
	case PhotometricRGB:
		if h.SamplesPerPixel != 3 || len(h.BitsPerSample) == 0 || h.BitsPerSample[0] != 8 {
			return fmt.Errorf("unsupported RGB format")
		}
	default:
		return fmt.Errorf("unsupported photometric: %d", h.Photometric)
	}
	return nil
}
