package qoipix

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the error type returned by every operation in this package.
// Errors form a chain, so [errors.Is] can always reach the root kind (e.g.
// [ErrMalformedStream]) no matter how many layers of context were added with
// WithMessage or Wrap.
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError string

const rootError = baseCodecError("")

// ErrInvalidDimensions is returned by the encoder when the width and height
// don't describe the pixel buffer it was given.
var ErrInvalidDimensions = rootError.WithMessage("invalid image dimensions")

// ErrBadMagic is returned by the decoder when the input doesn't start with
// the format's magic tag, i.e. it isn't one of our streams at all.
var ErrBadMagic = rootError.WithMessage("bad magic tag")

// ErrMalformedStream is returned by the decoder when a stream can't be
// decoded: a truncated operation, two consecutive INDEX-0 bytes that don't
// begin the end marker, or input running out before the end marker is found.
var ErrMalformedStream = rootError.WithMessage("malformed stream")

// ErrOutOfRange indicates a computed write position exceeded the allocated
// output capacity. Buffers are pre-sized to the worst case, so hitting this
// means a pre-sizing bug, not bad input.
var ErrOutOfRange = rootError.WithMessage("write index out of allocated range")

func (e baseCodecError) Error() string {
	return string(e)
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a
// string describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
