package pngcore

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

const inflateBufSize = 64 * 1024

// inflateIDAT drives klauspost/compress/zlib's streaming Reader over the
// concatenated IDAT payload, pulling decompressed bytes into a sliding
// buffer until the stream signals end-of-data. Any inflater error is fatal
// DECOMPRESS_FAILED; the result is the filtered stream of §4.5/§4.6.
func inflateIDAT(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, wrapErr(CodeDecompressFailed, err)
	}
	defer zr.Close()

	var out bytes.Buffer
	buf := make([]byte, inflateBufSize)
	for {
		n, err := zr.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapErr(CodeDecompressFailed, err)
		}
	}
	return out.Bytes(), nil
}
