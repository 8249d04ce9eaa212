package pngcore

import "github.com/pkg/errors"

// Code identifies one member of the decoder's closed error taxonomy.
// Every failure the decoder can report carries exactly one Code; there is
// no other exceptional control flow across the package boundary.
type Code string

const (
	CodeTruncated        Code = "TRUNCATED"
	CodeBadSignature     Code = "BAD_SIGNATURE"
	CodeBadChunkLength   Code = "BAD_CHUNK_LENGTH"
	CodeInvalidChunk     Code = "INVALID_CHUNK"
	CodeCRCMismatch      Code = "CRC_MISMATCH"
	CodeBadChunkOrder    Code = "BAD_CHUNK_ORDER"
	CodeBadHeader        Code = "BAD_HEADER"
	CodeImageTooLarge    Code = "IMAGE_TOO_LARGE"
	CodeDecompressFailed Code = "DECOMPRESS_FAILED"
	CodeBadFilter        Code = "BAD_FILTER"
	CodePaletteIndex     Code = "PALETTE_INDEX"
	CodeBadPalette       Code = "BAD_PALETTE"
)

// DecodeError is the value every public decode failure is returned as.
// Callers recover the taxonomy with errors.As and switch on Code; the
// wrapped cause (reachable with errors.Unwrap / %+v) carries the stack
// trace pkg/errors records at the point the error was raised.
type DecodeError struct {
	Code  Code
	cause error
}

func (e *DecodeError) Error() string {
	if e.cause == nil {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.cause.Error()
}

func (e *DecodeError) Unwrap() error { return e.cause }

func newErr(code Code, msg string) error {
	return &DecodeError{Code: code, cause: errors.New(msg)}
}

func newErrf(code Code, format string, args ...interface{}) error {
	return &DecodeError{Code: code, cause: errors.Errorf(format, args...)}
}

func wrapErr(code Code, err error) error {
	if err == nil {
		return nil
	}
	return &DecodeError{Code: code, cause: errors.WithStack(err)}
}

// CodeOf returns the Code carried by err, and ok=false if err (or anything
// it wraps) is not a *DecodeError.
func CodeOf(err error) (Code, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}
