package pngcore

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultMaxDimension is the application-imposed width/height cap applied
// when Config.MaxDimension is left at its zero value.
const DefaultMaxDimension = 16384

// Config is the single tunable surface of the decoder (spec.md §6): the
// dimension cap, and an optional logger for per-stage debug messages
// (byte, dimension and pixel counts). Skipped chunks are not logged.
// The core never logs on its own initiative when Logger is the zero value.
type Config struct {
	MaxDimension uint32
	Logger       zerolog.Logger
}

func (c Config) maxDimension() uint32 {
	if c.MaxDimension == 0 {
		return DefaultMaxDimension
	}
	return c.MaxDimension
}

// Decode runs the full pipeline of spec.md §4.9 over r: read raw bytes,
// verify signature, parse chunks (which drives IHDR/PLTE/IDAT
// accumulation), inflate, reconstruct scanline filters, de-interlace, and
// unpack samples. Any failure short-circuits the pipeline; no partial
// pixel grid is ever returned.
func Decode(r io.Reader, cfg Config) (*Image, error) {
	log := cfg.Logger

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapErr(CodeTruncated, err)
	}
	log.Debug().Int("bytes", len(raw)).Msg("read raw png bytes")

	stream, err := readChunks(raw, cfg.maxDimension())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	log.Debug().
		Uint32("width", stream.header.Width).
		Uint32("height", stream.header.Height).
		Uint8("bit_depth", stream.header.BitDepth).
		Int("colour_type", int(stream.header.ColourType)).
		Msg("parsed chunk stream")

	filtered, err := inflateIDAT(stream.compressed)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	log.Debug().Int("bytes", len(filtered)).Msg("inflated filtered stream")

	raster, err := deinterlace(filtered, stream.header)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	img, err := unpack(raster, stream.header, stream.palette)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	log.Debug().Int("pixels", len(img.Pixels)).Msg("unpacked pixel grid")

	return img, nil
}
