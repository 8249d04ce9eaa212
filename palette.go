package pngcore

// RGB is one 8-bit palette entry.
type RGB struct {
	R, G, B uint8
}

// Palette is the ordered PLTE lookup table, 1-256 entries.
type Palette []RGB

func parsePLTE(payload []byte, bitDepth uint8, colourType ColourType) (Palette, error) {
	if len(payload) == 0 || len(payload)%3 != 0 {
		return nil, newErrf(CodeBadPalette, "PLTE length %d is not a positive multiple of 3", len(payload))
	}
	n := len(payload) / 3
	if n > 256 {
		return nil, newErrf(CodeBadPalette, "PLTE has %d entries, max 256", n)
	}
	if colourType == ColourIndexed {
		limit := 1 << bitDepth
		if n > limit {
			return nil, newErrf(CodeBadPalette, "PLTE has %d entries, exceeds 2^%d for bit depth %d", n, bitDepth, bitDepth)
		}
	}

	pal := make(Palette, n)
	for i := 0; i < n; i++ {
		pal[i] = RGB{R: payload[i*3], G: payload[i*3+1], B: payload[i*3+2]}
	}
	return pal, nil
}

// lookup returns the palette entry at idx, failing PALETTE_INDEX if idx is
// out of range.
func (p Palette) lookup(idx int) (RGB, error) {
	if idx < 0 || idx >= len(p) {
		return RGB{}, newErrf(CodePaletteIndex, "palette index %d out of range [0,%d)", idx, len(p))
	}
	return p[idx], nil
}
