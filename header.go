package pngcore

// ColourType enumerates the five PNG colour models the decoder understands.
type ColourType uint8

const (
	ColourGreyscale      ColourType = 0
	ColourTruecolour     ColourType = 2
	ColourIndexed        ColourType = 3
	ColourGreyscaleAlpha ColourType = 4
	ColourTruecolourAlpha ColourType = 6
)

// allowedBitDepths mirrors the table in spec.md §3: which bit depths are
// legal for a given colour type. Cross-checked against klausman-pngrep's
// ct2bd map and original_source's ParseIHDR switch.
var allowedBitDepths = map[ColourType][]uint8{
	ColourGreyscale:       {1, 2, 4, 8, 16},
	ColourTruecolour:      {8, 16},
	ColourIndexed:         {1, 2, 4, 8},
	ColourGreyscaleAlpha:  {8, 16},
	ColourTruecolourAlpha: {8, 16},
}

// samplesPerPixel is the per-colour-type sample count of spec.md §4.3.
var samplesPerPixel = map[ColourType]int{
	ColourGreyscale:       1,
	ColourTruecolour:      3,
	ColourIndexed:         1,
	ColourGreyscaleAlpha:  2,
	ColourTruecolourAlpha: 4,
}

// Header is the parsed and validated content of the IHDR chunk, plus the
// per-pixel layout derived from it.
type Header struct {
	Width, Height             uint32
	BitDepth                  uint8
	ColourType                ColourType
	CompressionMethod         uint8
	FilterMethod              uint8
	InterlaceMethod           uint8
	BitsPerPixel              int
	BytesPerPixel             int // filter neighbour stride, >= 1
}

const ihdrPayloadLen = 13

func parseIHDR(payload []byte, maxDimension uint32) (*Header, error) {
	if len(payload) != ihdrPayloadLen {
		return nil, newErrf(CodeBadHeader, "IHDR payload length %d, want %d", len(payload), ihdrPayloadLen)
	}
	c := newCursor(payload)

	width, _ := c.u32be()
	height, _ := c.u32be()
	bitDepth, _ := c.u8()
	colourType, _ := c.u8()
	compressionMethod, _ := c.u8()
	filterMethod, _ := c.u8()
	interlaceMethod, _ := c.u8()

	if width == 0 || width > 1<<31-1 || height == 0 || height > 1<<31-1 {
		return nil, newErrf(CodeBadHeader, "invalid dimensions %dx%d", width, height)
	}
	if width > maxDimension || height > maxDimension {
		return nil, newErrf(CodeImageTooLarge, "%dx%d exceeds max dimension %d", width, height, maxDimension)
	}

	ct := ColourType(colourType)
	depths, ok := allowedBitDepths[ct]
	if !ok {
		return nil, newErrf(CodeBadHeader, "unknown colour type %d", colourType)
	}
	if !containsU8(depths, bitDepth) {
		return nil, newErrf(CodeBadHeader, "bit depth %d not allowed for colour type %d", bitDepth, colourType)
	}
	if compressionMethod != 0 {
		return nil, newErrf(CodeBadHeader, "unsupported compression method %d", compressionMethod)
	}
	if filterMethod != 0 {
		return nil, newErrf(CodeBadHeader, "unsupported filter method %d", filterMethod)
	}
	if interlaceMethod != 0 && interlaceMethod != 1 {
		return nil, newErrf(CodeBadHeader, "unsupported interlace method %d", interlaceMethod)
	}

	samples := samplesPerPixel[ct]
	bitsPerPixel := samples * int(bitDepth)
	bytesPerPixel := (bitsPerPixel + 7) / 8
	if bytesPerPixel < 1 {
		bytesPerPixel = 1
	}

	return &Header{
		Width:             width,
		Height:            height,
		BitDepth:          bitDepth,
		ColourType:        ct,
		CompressionMethod: compressionMethod,
		FilterMethod:      filterMethod,
		InterlaceMethod:   interlaceMethod,
		BitsPerPixel:      bitsPerPixel,
		BytesPerPixel:     bytesPerPixel,
	}, nil
}

// rowByteLength is ceil(width * bitsPerPixel / 8), the byte stride of one
// unfiltered scanline at the given width.
func (h *Header) rowByteLength(width uint32) int {
	bits := int(width) * h.BitsPerPixel
	return (bits + 7) / 8
}

func containsU8(s []uint8, v uint8) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
