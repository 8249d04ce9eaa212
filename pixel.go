package pngcore

// PixelFormat tags how a caller should interpret the channel values stored
// in an Image's sample store.
type PixelFormat int

const (
	RGB8 PixelFormat = iota
	RGB16
	RGBA8
	RGBA16
)

func (f PixelFormat) channels() int {
	if f == RGBA8 || f == RGBA16 {
		return 4
	}
	return 3
}

func (f PixelFormat) channelBytes() int {
	if f == RGB16 || f == RGBA16 {
		return 2
	}
	return 1
}

// Pixel is one decoded sample group: four 16-bit channels regardless of
// source bit depth. 8-bit source samples are left in the low byte; the
// high byte is only meaningful for RGB16/RGBA16-tagged images.
type Pixel struct {
	R, G, B, A uint16
}

// Image is the decoder's sole long-lived output: a dense height x width
// grid of pixels plus the format tag a downstream consumer needs to read
// the per-channel meaningful range.
type Image struct {
	Width, Height int
	Format        PixelFormat
	Pixels        []Pixel // row-major, length Width*Height
}

func (img *Image) at(x, y int) *Pixel {
	return &img.Pixels[y*img.Width+x]
}

// outputFormat implements the table in spec.md §4.8.
func outputFormat(h *Header) PixelFormat {
	switch h.ColourType {
	case ColourGreyscale:
		if h.BitDepth == 16 {
			return RGB16
		}
		return RGB8
	case ColourTruecolour:
		if h.BitDepth == 16 {
			return RGB16
		}
		return RGB8
	case ColourIndexed:
		// Palette alpha (tRNS-for-indexed) is a future extension per
		// spec.md §9; this decoder always emits RGB8 for colour type 3.
		return RGB8
	case ColourGreyscaleAlpha:
		if h.BitDepth == 16 {
			return RGBA16
		}
		return RGBA8
	case ColourTruecolourAlpha:
		if h.BitDepth == 16 {
			return RGBA16
		}
		return RGBA8
	}
	return RGB8
}

// grey8Table maps a bitDepth in {1,2,4,8} to the precomputed
// round(v * 255 / (2^bitDepth - 1)) normalisation table used to promote
// sub-byte greyscale samples into the 8-bit range, per spec.md §4.8/§9.
func grey8Table(bitDepth uint8) []uint8 {
	maxVal := (1 << bitDepth) - 1
	t := make([]uint8, maxVal+1)
	for v := 0; v <= maxVal; v++ {
		t[v] = uint8((v*255 + maxVal/2) / maxVal)
	}
	return t
}

// unpack implements the sample unpacker of spec.md §4.8: it consumes the
// deinterlaced raster bytes (never the interlaced ones, per spec.md §9) and
// produces the pixel grid.
func unpack(raster []byte, h *Header, pal Palette) (*Image, error) {
	width, height := int(h.Width), int(h.Height)
	format := outputFormat(h)
	img := &Image{Width: width, Height: height, Format: format, Pixels: make([]Pixel, width*height)}
	rowBytes := h.rowByteLength(h.Width)

	var greyTable []uint8
	if h.ColourType == ColourGreyscale && h.BitDepth < 8 {
		greyTable = grey8Table(h.BitDepth)
	}

	sampleBytes := int(h.BitDepth) / 8 // 0 for sub-byte depths

	for y := 0; y < height; y++ {
		row := raster[y*rowBytes : (y+1)*rowBytes]
		for x := 0; x < width; x++ {
			px, err := unpackPixel(row, x, h, pal, greyTable, sampleBytes)
			if err != nil {
				return nil, err
			}
			*img.at(x, y) = px
		}
	}
	return img, nil
}

func unpackPixel(row []byte, x int, h *Header, pal Palette, greyTable []uint8, sampleBytes int) (Pixel, error) {
	switch h.ColourType {
	case ColourTruecolour, ColourTruecolourAlpha:
		hasAlpha := h.ColourType == ColourTruecolourAlpha
		r := readSample(row, x, 0, sampleBytes, h)
		g := readSample(row, x, 1, sampleBytes, h)
		b := readSample(row, x, 2, sampleBytes, h)
		var a uint16
		if hasAlpha {
			a = readSample(row, x, 3, sampleBytes, h)
		}
		return Pixel{R: r, G: g, B: b, A: a}, nil

	case ColourGreyscaleAlpha:
		grey := readSample(row, x, 0, sampleBytes, h)
		a := readSample(row, x, 1, sampleBytes, h)
		return Pixel{R: grey, G: grey, B: grey, A: a}, nil

	case ColourGreyscale:
		if h.BitDepth >= 8 {
			grey := readSample(row, x, 0, sampleBytes, h)
			return Pixel{R: grey, G: grey, B: grey}, nil
		}
		idx := readSubByteIndex(row, x, int(h.BitDepth))
		v8 := greyTable[idx]
		v16 := uint16(v8)
		return Pixel{R: v16, G: v16, B: v16}, nil

	case ColourIndexed:
		var idx int
		if h.BitDepth >= 8 {
			idx = int(row[x])
		} else {
			idx = readSubByteIndex(row, x, int(h.BitDepth))
		}
		rgb, err := pal.lookup(idx)
		if err != nil {
			return Pixel{}, err
		}
		return Pixel{R: uint16(rgb.R), G: uint16(rgb.G), B: uint16(rgb.B)}, nil
	}
	return Pixel{}, newErrf(CodeBadHeader, "unhandled colour type %d", h.ColourType)
}

// readSample reads the sampleIdx'th channel of pixel x as a big-endian
// 1- or 2-byte sample and widens it into the 16-bit channel range: 8-bit
// samples are left in the low byte (the format tag tells the caller the
// high byte carries no meaning), 16-bit samples are taken verbatim.
func readSample(row []byte, x, sampleIdx, sampleBytes int, h *Header) uint16 {
	samples := samplesPerPixel[h.ColourType]
	pixelBytes := samples * sampleBytes
	base := x*pixelBytes + sampleIdx*sampleBytes
	if sampleBytes == 2 {
		return uint16(row[base])<<8 | uint16(row[base+1])
	}
	return uint16(row[base])
}

// readSubByteIndex unpacks the bitDepth-wide, MSB-first index for pixel x
// in a sub-byte-depth row (used by greyscale <8bpp and indexed colour).
func readSubByteIndex(row []byte, x, bitDepth int) int {
	bitOffset := x * bitDepth
	byteIdx := bitOffset / 8
	shift := 8 - bitDepth - (bitOffset % 8)
	mask := (1 << bitDepth) - 1
	return int(row[byteIdx]>>uint(shift)) & mask
}
