package pngcore

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

// Invariant 2: CRC round-trip. Recomputing the CRC-32 over (type || payload)
// must reproduce whatever was just stored for it.
func TestPropertyCRCRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		typeCode := [4]byte{}
		for i := range typeCode {
			typeCode[i] = byte(rapid.IntRange('A', 'Z').Draw(rt, "typeByte"))
		}
		payload := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(rt, "payload")

		stored := crcOf(typeCode, payload)
		if err := checkCRC(typeCode, payload, stored); err != nil {
			rt.Fatalf("freshly computed CRC failed its own check: %v", err)
		}
	})
}

// Invariant 3: filter round-trip. Forward-filtering the unfiltered output
// with the same predictor must reproduce the filtered bytes, for every
// filter type.
func TestPropertyFilterRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		bpp := rapid.IntRange(1, 8).Draw(rt, "bpp")
		rowBytes := rapid.IntRange(bpp, bpp*6).Draw(rt, "rowBytes")
		rowCount := rapid.IntRange(1, 5).Draw(rt, "rowCount")
		ft := rapid.IntRange(filterNone, filterPaeth).Draw(rt, "filterType")

		rows := make([][]byte, rowCount)
		for i := range rows {
			rows[i] = rapid.SliceOfN(rapid.Byte(), rowBytes, rowBytes).Draw(rt, "row")
		}
		filterTypes := make([]int, rowCount)
		for i := range filterTypes {
			filterTypes[i] = ft
		}

		filtered := forwardFilterRows(rows, filterTypes, bpp)
		unfiltered, err := reconstructPass(filtered, rowCount, rowBytes, bpp)
		if err != nil {
			rt.Fatalf("reconstructPass: %v", err)
		}
		for i, row := range rows {
			got := unfiltered[i*rowBytes : (i+1)*rowBytes]
			for x := range row {
				if got[x] != row[x] {
					rt.Fatalf("row %d byte %d: got %d want %d (filter %d)", i, x, got[x], row[x], ft)
				}
			}
		}
	})
}

// Invariant 4: Adam7 coverage. The union of the seven passes' target pixels
// equals the full image, and passes are pairwise disjoint.
func TestPropertyAdam7CoverageAndDisjointness(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		width := rapid.IntRange(1, 40).Draw(rt, "width")
		height := rapid.IntRange(1, 40).Draw(rt, "height")

		owner := make([]int, width*height)
		for i := range owner {
			owner[i] = -1
		}

		for passIdx, pass := range adam7Passes {
			pw, ph, ok := pass.dims(width, height)
			if !ok {
				continue
			}
			for j := 0; j < ph; j++ {
				for i := 0; i < pw; i++ {
					x := pass.xStart + i*pass.xStep
					y := pass.yStart + j*pass.yStep
					idx := y*width + x
					if owner[idx] != -1 {
						rt.Fatalf("pixel (%d,%d) claimed by both pass %d and pass %d", x, y, owner[idx], passIdx)
					}
					owner[idx] = passIdx
				}
			}
		}
		for i, o := range owner {
			if o == -1 {
				rt.Fatalf("pixel index %d not covered by any pass", i)
			}
		}
	})
}

// Invariant 5: sub-byte unpacking is monotone — increasing the raw sample
// value never decreases the normalised output.
func TestPropertySubByteUnpackingMonotone(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		bitDepth := uint8(rapid.SampledFrom([]int{1, 2, 4}).Draw(rt, "bitDepth"))
		table := grey8Table(bitDepth)
		for v := 0; v+1 < len(table); v++ {
			if table[v+1] < table[v] {
				rt.Fatalf("bitDepth %d: table[%d]=%d > table[%d]=%d", bitDepth, v, table[v], v+1, table[v+1])
			}
		}
	})
}

// Invariant 6: Paeth predictor tie-break order a, b, c.
func TestPropertyPaethTieBreak(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(0, 255).Draw(rt, "a")
		b := rapid.IntRange(0, 255).Draw(rt, "b")
		c := rapid.IntRange(0, 255).Draw(rt, "c")

		p := a + b - c
		pa, pb, pc := abs(p-a), abs(p-b), abs(p-c)

		got := paeth(a, b, c)
		switch {
		case pa == pb && pa <= pc:
			if got != byte(a) {
				rt.Fatalf("pa==pb<=pc: want a=%d, got %d", a, got)
			}
		case pb == pc && pa > pb:
			if got != byte(b) {
				rt.Fatalf("pb==pc<pa: want b=%d, got %d", b, got)
			}
		}
	})
}

// Invariant 1: for any valid PNG, the decoded grid holds exactly
// width*height pixels.
func TestPropertyPixelGridShape(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		width := rapid.IntRange(1, 16).Draw(rt, "width")
		height := rapid.IntRange(1, 16).Draw(rt, "height")
		rows := make([][]byte, height)
		for i := range rows {
			rows[i] = rapid.SliceOfN(rapid.Byte(), width*3, width*3).Draw(rt, "row")
		}
		raw := buildPNG(uint32(width), uint32(height), 8, uint8(ColourTruecolour), 0, nil, noneFilteredRows(rows))
		img, err := Decode(bytes.NewReader(raw), Config{})
		if err != nil {
			rt.Fatalf("Decode: %v", err)
		}
		if img.Width != width || img.Height != height || width*height != len(img.Pixels) {
			rt.Fatalf("width*height=%d != len(pixels)=%d", width*height, len(img.Pixels))
		}
	})
}
