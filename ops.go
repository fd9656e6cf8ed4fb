package qoipix

// Operation tag bytes and bit layout. RUN, INDEX, DIFF and LUMA use the top
// 2 bits as the tag; RGB and RGBA are full-byte tags carved out of RUN's
// space and must be matched exactly before the 2-bit dispatch.
const (
	tagIndex = byte(0b00000000) // 00ssssss  slot
	tagDiff  = byte(0b01000000) // 01rrggbb  per-channel delta + 2
	tagLuma  = byte(0b10000000) // 10gggggg  dG + 32, then (dR-dG+8)<<4 | (dB-dG+8)
	tagRun   = byte(0b11000000) // 11cccccc  count - 1
	tagRgb   = byte(0b11111110) // followed by R, G, B
	tagRgba  = byte(0b11111111) // followed by R, G, B, A

	tagMask2 = byte(0b11000000)
	lowBits6 = byte(0b00111111)
)

// Op is one operation of the compressed body. The set is closed: exactly
// [OpRun], [OpIndex], [OpDiff], [OpLuma], [OpRgb] and [OpRgba] implement it.
// Each variant knows its own wire encoding; decoding is the job of
// [decodeOp].
type Op interface {
	// appendTo appends the operation's wire encoding to dst.
	appendTo(dst []byte) []byte
}

// OpRun repeats the running reference pixel Count times. Count is 1..62.
type OpRun struct {
	Count int
}

// OpIndex replays the pixel in recent-color index slot Slot. Slot is 0..63.
type OpIndex struct {
	Slot byte
}

// OpDiff moves each color channel by a small delta from the reference pixel,
// alpha unchanged. Deltas are -2..1, wrapping mod 256.
type OpDiff struct {
	DR, DG, DB int8
}

// OpLuma moves the green channel by DG (-32..31) and the red/blue channels
// by DG plus a cross-delta (-8..7 each), alpha unchanged, wrapping mod 256.
type OpLuma struct {
	DG, DRG, DBG int8
}

// OpRgb carries the three color channels verbatim; alpha is taken from the
// reference pixel.
type OpRgb struct {
	R, G, B byte
}

// OpRgba carries all four channels verbatim.
type OpRgba struct {
	R, G, B, A byte
}

func (op OpRun) appendTo(dst []byte) []byte {
	return append(dst, tagRun|byte(op.Count-1))
}

func (op OpIndex) appendTo(dst []byte) []byte {
	return append(dst, tagIndex|op.Slot)
}

func (op OpDiff) appendTo(dst []byte) []byte {
	return append(dst, tagDiff|byte(op.DR+2)<<4|byte(op.DG+2)<<2|byte(op.DB+2))
}

func (op OpLuma) appendTo(dst []byte) []byte {
	return append(dst, tagLuma|byte(op.DG+32), byte(op.DRG+8)<<4|byte(op.DBG+8))
}

func (op OpRgb) appendTo(dst []byte) []byte {
	return append(dst, tagRgb, op.R, op.G, op.B)
}

func (op OpRgba) appendTo(dst []byte) []byte {
	return append(dst, tagRgba, op.R, op.G, op.B, op.A)
}

// decodeOp reads one operation from the front of body, returning it and the
// number of bytes it consumed. The full-byte RGB/RGBA tags are checked before
// the 2-bit tags; within RUN's 2-bit space they are otherwise unreachable.
// The caller is responsible for recognizing the end marker first.
func decodeOp(body []byte) (Op, int, error) {
	if len(body) == 0 {
		return nil, 0, ErrMalformedStream.WithMessage("input exhausted before the end marker")
	}

	lead := body[0]
	switch {
	case lead == tagRgba:
		if len(body) < 5 {
			return nil, 0, ErrMalformedStream.WithMessage("truncated RGBA operation")
		}
		return OpRgba{R: body[1], G: body[2], B: body[3], A: body[4]}, 5, nil

	case lead == tagRgb:
		if len(body) < 4 {
			return nil, 0, ErrMalformedStream.WithMessage("truncated RGB operation")
		}
		return OpRgb{R: body[1], G: body[2], B: body[3]}, 4, nil

	case lead&tagMask2 == tagRun:
		return OpRun{Count: int(lead&lowBits6) + 1}, 1, nil

	case lead&tagMask2 == tagLuma:
		if len(body) < 2 {
			return nil, 0, ErrMalformedStream.WithMessage("truncated LUMA operation")
		}
		return OpLuma{
			DG:  int8(lead&lowBits6) - 32,
			DRG: int8(body[1]>>4) - 8,
			DBG: int8(body[1]&0x0F) - 8,
		}, 2, nil

	case lead&tagMask2 == tagDiff:
		return OpDiff{
			DR: int8(lead>>4&0b11) - 2,
			DG: int8(lead>>2&0b11) - 2,
			DB: int8(lead&0b11) - 2,
		}, 1, nil

	default: // tagIndex
		return OpIndex{Slot: lead & lowBits6}, 1, nil
	}
}
