package pngcore

import "bytes"

var pngSignature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

const pngSignatureXOR = 0xC7

type chunkKind int

const (
	chunkIHDR chunkKind = iota
	chunkPLTE
	chunkIDAT
	chunkIEND
	chunkAncillary
)

const maxChunkLength = 1<<31 - 2

// parsedStream is what the chunk reader produces: the validated header,
// optional palette, and the concatenated IDAT payload, ready to feed the
// inflater (§4.5).
type parsedStream struct {
	header     *Header
	palette    Palette
	compressed []byte
}

// readChunks consumes the whole PNG byte stream: the 8-byte signature
// followed by a sequence of chunks ending in IEND. It orchestrates the
// header/palette parsers and the IDAT accumulator (components 4.3-4.5),
// enforcing every ordering invariant in spec.md §4.2.
func readChunks(raw []byte, maxDimension uint32) (*parsedStream, error) {
	c := newCursor(raw)

	sig, err := c.consume(8)
	if err != nil {
		return nil, err
	}
	var x byte
	for _, b := range sig {
		x ^= b
	}
	if x != pngSignatureXOR {
		return nil, newErr(CodeBadSignature, "signature XOR check failed")
	}

	var (
		ps            parsedStream
		sawIHDR       bool
		sawPLTE       bool
		sawIEND       bool
		inIDATRun     bool
		idatRunClosed bool
		compressed    bytes.Buffer
	)

	for !sawIEND {
		length, err := c.u32be()
		if err != nil {
			return nil, err
		}
		if length > maxChunkLength {
			return nil, newErrf(CodeBadChunkLength, "chunk length %d exceeds 2^31-2", length)
		}

		typeBytes, err := c.consume(4)
		if err != nil {
			return nil, err
		}
		var typeCode [4]byte
		copy(typeCode[:], typeBytes)

		payload, err := c.consume(int(length))
		if err != nil {
			return nil, err
		}
		crcWant, err := c.u32be()
		if err != nil {
			return nil, err
		}
		if err := checkCRC(typeCode, payload, crcWant); err != nil {
			return nil, err
		}

		kind, err := classifyChunk(typeCode)
		if err != nil {
			return nil, err
		}

		if kind == chunkIDAT {
			if idatRunClosed {
				return nil, newErr(CodeBadChunkOrder, "IDAT chunks are not contiguous")
			}
			inIDATRun = true
		} else if inIDATRun {
			inIDATRun = false
			idatRunClosed = true
		}

		switch kind {
		case chunkIHDR:
			if sawIHDR {
				return nil, newErr(CodeBadChunkOrder, "IHDR must appear exactly once, as the first chunk")
			}
			h, err := parseIHDR(payload, maxDimension)
			if err != nil {
				return nil, err
			}
			ps.header = h
			sawIHDR = true
		case chunkPLTE:
			if !sawIHDR {
				return nil, newErr(CodeBadChunkOrder, "IHDR not first")
			}
			if sawPLTE {
				return nil, newErr(CodeBadChunkOrder, "duplicate PLTE")
			}
			if ps.header.ColourType == ColourGreyscale || ps.header.ColourType == ColourGreyscaleAlpha {
				return nil, newErr(CodeBadChunkOrder, "PLTE forbidden for this colour type")
			}
			if compressed.Len() > 0 {
				return nil, newErr(CodeBadChunkOrder, "PLTE must precede IDAT")
			}
			pal, err := parsePLTE(payload, ps.header.BitDepth, ps.header.ColourType)
			if err != nil {
				return nil, err
			}
			ps.palette = pal
			sawPLTE = true
		case chunkIDAT:
			if !sawIHDR {
				return nil, newErr(CodeBadChunkOrder, "IHDR not first")
			}
			if ps.header.ColourType == ColourIndexed && !sawPLTE {
				return nil, newErr(CodeBadChunkOrder, "PLTE missing before IDAT for indexed colour")
			}
			compressed.Write(payload)
		case chunkIEND:
			if !sawIHDR {
				return nil, newErr(CodeBadChunkOrder, "IHDR not first")
			}
			sawIEND = true
		case chunkAncillary:
			// Recovered case: skipped silently.
		}
	}

	if c.remaining() > 0 {
		return nil, newErr(CodeBadChunkOrder, "trailing data after IEND")
	}

	ps.compressed = compressed.Bytes()
	return &ps, nil
}

var criticalChunks = map[[4]byte]chunkKind{
	{'I', 'H', 'D', 'R'}: chunkIHDR,
	{'P', 'L', 'T', 'E'}: chunkPLTE,
	{'I', 'D', 'A', 'T'}: chunkIDAT,
	{'I', 'E', 'N', 'D'}: chunkIEND,
}

// classifyChunk implements spec.md §4.2's classification rule: recognised
// critical chunks are dispatched by name; ancillary chunks (lower-case
// first letter, upper-case third letter) are skipped silently; anything
// else is INVALID_CHUNK.
func classifyChunk(typeCode [4]byte) (chunkKind, error) {
	if kind, ok := criticalChunks[typeCode]; ok {
		return kind, nil
	}
	for _, b := range typeCode {
		if !isAlpha(b) {
			return 0, newErrf(CodeInvalidChunk, "non-alphabetic chunk type byte in %q", typeCode)
		}
	}
	// The reserved bit lives in byte 2 (bit 5, case of the third letter);
	// ISO 15948 requires it clear (upper-case) for every currently defined
	// chunk type. A lower-case third letter is a reserved-bit violation.
	if isLower(typeCode[2]) {
		return 0, newErrf(CodeInvalidChunk, "reserved bit set in chunk type %q", typeCode)
	}
	// The ancillary bit lives in byte 0: lower-case means "safe to skip if
	// unrecognised". Anything upper-case-first that isn't one of the four
	// known critical chunks is an unrecognised critical chunk, which is
	// fatal rather than skippable.
	if isLower(typeCode[0]) {
		return chunkAncillary, nil
	}
	return 0, newErrf(CodeInvalidChunk, "unrecognised critical chunk %q", typeCode)
}

func isAlpha(b byte) bool { return isUpper(b) || isLower(b) }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
