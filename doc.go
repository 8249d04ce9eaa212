// Package pngcore decodes a PNG byte stream into a grid of 16-bit-per-channel
// pixel samples.
//
// The decoder is a synchronous, single-pass pipeline: read the raw bytes,
// verify the signature, walk the chunk stream, inflate the IDAT payloads,
// reverse the scanline filters, de-interlace Adam7 passes, and unpack the
// raster bytes into pixels. Every stage fully consumes the previous stage's
// output before the next begins; there is no concurrency and no partial
// result is ever returned to the caller.
//
// Encoding, ancillary transparency (tRNS), colour management and animation
// are out of scope. See DESIGN.md for the rationale behind each component.
package pngcore
