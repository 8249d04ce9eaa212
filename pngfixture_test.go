package pngcore

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
)

// pngfixture_test.go builds well-formed (or deliberately broken) PNG byte
// streams for the concrete scenarios in spec.md §8. It leans on the
// standard library's own zlib writer purely as test scaffolding — the
// decoder under test never touches compress/zlib itself, see inflate.go.

func chunkBytes(typeCode string, payload []byte) []byte {
	var buf bytes.Buffer
	var lenField [4]byte
	binary.BigEndian.PutUint32(lenField[:], uint32(len(payload)))
	buf.Write(lenField[:])
	buf.WriteString(typeCode)
	buf.Write(payload)

	h := crc32.NewIEEE()
	h.Write([]byte(typeCode))
	h.Write(payload)
	var crcField [4]byte
	binary.BigEndian.PutUint32(crcField[:], h.Sum32())
	buf.Write(crcField[:])
	return buf.Bytes()
}

func ihdrPayload(width, height uint32, bitDepth, colourType, interlace uint8) []byte {
	buf := make([]byte, 13)
	binary.BigEndian.PutUint32(buf[0:4], width)
	binary.BigEndian.PutUint32(buf[4:8], height)
	buf[8] = bitDepth
	buf[9] = colourType
	buf[10] = 0 // compression method
	buf[11] = 0 // filter method
	buf[12] = interlace
	return buf
}

func deflate(b []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(b)
	w.Close()
	return buf.Bytes()
}

// buildPNG assembles signature + IHDR + optional PLTE + IDAT(filtered) +
// IEND into a full byte stream.
func buildPNG(width, height uint32, bitDepth, colourType, interlace uint8, plte []byte, filtered []byte) []byte {
	var buf bytes.Buffer
	buf.Write(pngSignature[:])
	buf.Write(chunkBytes("IHDR", ihdrPayload(width, height, bitDepth, colourType, interlace)))
	if plte != nil {
		buf.Write(chunkBytes("PLTE", plte))
	}
	buf.Write(chunkBytes("IDAT", deflate(filtered)))
	buf.Write(chunkBytes("IEND", nil))
	return buf.Bytes()
}

// noneFilteredRows prepends a filter-type-0 byte to each row in rows and
// concatenates them, the simplest possible filtered stream.
func noneFilteredRows(rows [][]byte) []byte {
	var out []byte
	for _, row := range rows {
		out = append(out, filterNone)
		out = append(out, row...)
	}
	return out
}

// forwardFilterRows applies filterTypes[i] to raw row i (a forward PNG
// filter, the encoder-side inverse of reconstructPass) and concatenates the
// filter-type byte with each filtered row, for building S4-style fixtures
// that exercise every predictor.
func forwardFilterRows(rows [][]byte, filterTypes []int, bpp int) []byte {
	var out []byte
	prev := make([]byte, len(rows[0]))
	for i, row := range rows {
		ft := filterTypes[i]
		filtered := make([]byte, len(row))
		for x := range row {
			var a, b, c int
			if x >= bpp {
				a = int(row[x-bpp])
				c = int(prev[x-bpp])
			}
			b = int(prev[x])
			switch ft {
			case filterNone:
				filtered[x] = row[x]
			case filterSub:
				filtered[x] = row[x] - byte(a)
			case filterUp:
				filtered[x] = row[x] - byte(b)
			case filterAverage:
				filtered[x] = row[x] - byte((a+b)/2)
			case filterPaeth:
				filtered[x] = row[x] - paeth(a, b, c)
			}
		}
		out = append(out, byte(ft))
		out = append(out, filtered...)
		prev = row
	}
	return out
}

// gatherPasses is the test-side inverse of scatterPass: given a full
// raster (height*rowByteLength(width) bytes, filter bytes already
// stripped), it builds the Adam7-interlaced filtered stream (filter type
// None on every row of every pass) a real encoder would produce.
func gatherPasses(raster []byte, h *Header) []byte {
	width, height := int(h.Width), int(h.Height)
	rasterStride := h.rowByteLength(h.Width)

	var out []byte
	for _, pass := range adam7Passes {
		pw, ph, ok := pass.dims(width, height)
		if !ok {
			continue
		}
		passRowBytes := h.rowByteLength(uint32(pw))
		for j := 0; j < ph; j++ {
			srcY := pass.yStart + j*pass.yStep
			srcRow := raster[srcY*rasterStride : (srcY+1)*rasterStride]
			dstRow := make([]byte, passRowBytes)
			for i := 0; i < pw; i++ {
				srcX := pass.xStart + i*pass.xStep
				copyPixelBits(dstRow, i, srcRow, srcX, h.BitsPerPixel)
			}
			out = append(out, filterNone)
			out = append(out, dstRow...)
		}
	}
	return out
}
