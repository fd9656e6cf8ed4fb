package qoipix

import (
	"io"

	"github.com/noxer/bytewriter"
)

// Image is the result of decoding a stream. Pixels is a flat top-to-bottom,
// left-to-right RGBA buffer. The header's dimensions are carried through
// without being cross-checked against the body, so Pixels may be shorter
// than Width*Height*4 if the stream promised more pixels than its body
// delivered; validating that is the caller's job.
type Image struct {
	Width      uint32
	Height     uint32
	Colorspace byte
	Pixels     []byte
}

// Encode compresses a flat RGBA pixel buffer into a self-delimited stream:
// a 14-byte header, the operation-coded body, and the 8-byte end marker.
// The colorspace byte is carried opaquely; 0 by convention.
//
// Returns [ErrInvalidDimensions] if width or height is zero or
// width*height*4 doesn't equal len(pixels).
func Encode(pixels []byte, width, height uint32, colorspace byte) ([]byte, error) {
	if err := checkDimensions(pixels, width, height); err != nil {
		return nil, err
	}

	// The output is pre-sized to the worst case and truncated to the bytes
	// actually written. The fixed-size writer can then only fail on a
	// pre-sizing bug.
	buffer := make([]byte, maxEncodedLen(len(pixels)))
	writer := bytewriter.New(buffer)

	n, err := encodeStream(writer, pixels, width, height, colorspace)
	if err != nil {
		return nil, ErrOutOfRange.Wrap(err)
	}
	return buffer[:n], nil
}

// EncodeTo is Encode writing to a stream instead of returning a buffer. It
// returns the number of bytes written, valid even on error.
func EncodeTo(
	w io.Writer, pixels []byte, width, height uint32, colorspace byte,
) (int64, error) {
	if err := checkDimensions(pixels, width, height); err != nil {
		return 0, err
	}
	return encodeStream(w, pixels, width, height, colorspace)
}

// Decode decompresses a stream produced by [Encode] back into the original
// pixel buffer.
//
// Returns [ErrBadMagic] if data doesn't start with the format's magic tag;
// [ErrMalformedStream] if the body is truncated, contains two consecutive
// INDEX-0 operations that don't begin the end marker, or ends without the
// end marker; [ErrOutOfRange] if the body decodes to more pixels than the
// header's dimensions allow.
func Decode(data []byte) (*Image, error) {
	hdr, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	pixels := make([]byte, uint64(hdr.width)*uint64(hdr.height)*4)
	state := newTranscoder()

	writeAt, _, done, err := state.decodeChunk(data, headerSize, len(data), pixels, 0)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, ErrMalformedStream.WithMessage("input exhausted before the end marker")
	}

	return &Image{
		Width:      hdr.width,
		Height:     hdr.height,
		Colorspace: hdr.colorspace,
		Pixels:     pixels[:writeAt],
	}, nil
}

// DecodeFrom reads the rest of r and decodes it. The end-marker check needs
// lookahead over the whole tail, so the input is slurped rather than
// streamed.
func DecodeFrom(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrMalformedStream.Wrap(err)
	}
	return Decode(data)
}

func checkDimensions(pixels []byte, width, height uint32) error {
	if width == 0 || height == 0 {
		return ErrInvalidDimensions.WithMessage("width and height must be nonzero")
	}
	if uint64(width)*uint64(height)*4 != uint64(len(pixels)) {
		return ErrInvalidDimensions.WithMessage(
			"pixel buffer length doesn't match width*height*4")
	}
	return nil
}
