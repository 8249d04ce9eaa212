package pngcore

import "hash/crc32"

// crcOf computes, over type code then payload, the IEEE (reflected
// 0xEDB88320) CRC-32 variant PNG chunks use.
// crc32.IEEETable is built lazily, once, by the standard library the first
// time it is referenced, and is read-only thereafter — satisfying §5's
// requirement that the CRC table be the one piece of state decode
// instances may share across goroutines.
func crcOf(typeCode [4]byte, payload []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(typeCode[:])
	h.Write(payload)
	return h.Sum32()
}

func checkCRC(typeCode [4]byte, payload []byte, want uint32) error {
	if got := crcOf(typeCode, payload); got != want {
		return newErrf(CodeCRCMismatch, "chunk %q: computed CRC %#08x, stored %#08x", typeCode, got, want)
	}
	return nil
}
