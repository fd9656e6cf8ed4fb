package qoipix

import (
	"encoding/binary"
)

// Magic is the 4-byte tag every stream starts with.
const Magic = "qoif"

// headerSize is the fixed size of the stream header: the magic tag, two
// big-endian uint32 dimensions, a channel count byte and a colorspace byte.
const headerSize = 14

// endMarker terminates the operation-coded body. It is appended
// unconditionally after the last operation.
var endMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// header carries the fixed fields preceding the body. The channel count is
// always written as 4; the colorspace byte is an opaque passthrough value we
// never interpret.
type header struct {
	width      uint32
	height     uint32
	channels   byte
	colorspace byte
}

// appendTo appends the 14-byte wire encoding of the header to dst.
func (h header) appendTo(dst []byte) []byte {
	dst = append(dst, Magic...)
	dst = binary.BigEndian.AppendUint32(dst, h.width)
	dst = binary.BigEndian.AppendUint32(dst, h.height)
	return append(dst, h.channels, h.colorspace)
}

// parseHeader reads the fixed header from the start of data.
func parseHeader(data []byte) (header, error) {
	if len(data) < headerSize {
		return header{}, ErrMalformedStream.WithMessage("stream shorter than the fixed header")
	}
	if string(data[:4]) != Magic {
		return header{}, ErrBadMagic.WithMessage(
			"expected " + Magic + ", got " + string(data[:4]))
	}
	return header{
		width:      binary.BigEndian.Uint32(data[4:8]),
		height:     binary.BigEndian.Uint32(data[8:12]),
		channels:   data[12],
		colorspace: data[13],
	}, nil
}

// isEndMarker reports whether the next 8 bytes of data are exactly the end
// marker. This is the sole termination rule of the format: a 0x00 byte that
// does not begin such a match is an ordinary INDEX operation.
func isEndMarker(data []byte) bool {
	return len(data) >= len(endMarker) && [8]byte(data[:8]) == endMarker
}
