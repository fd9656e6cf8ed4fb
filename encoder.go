package qoipix

import (
	"io"
)

// chooseOp picks the encoding for a pixel that differs from the running
// reference pixel. The priority order is fixed by the format and the decoder
// inverts whichever operation won: INDEX, then DIFF, then LUMA, then RGB,
// with RGBA reserved for alpha changes. First matching rule wins.
func (t *transcoder) chooseOp(p Pixel) Op {
	if slot := p.hash(); t.index[slot] == p {
		return OpIndex{Slot: byte(slot)}
	}

	if p.A != t.prev.A {
		return OpRgba{R: p.R, G: p.G, B: p.B, A: p.A}
	}

	// Channel deltas wrap mod 256 and are read as signed, so a 255->0 step
	// counts as +1, not -255.
	dr := int8(p.R - t.prev.R)
	dg := int8(p.G - t.prev.G)
	db := int8(p.B - t.prev.B)

	if dr >= -2 && dr <= 1 && dg >= -2 && dg <= 1 && db >= -2 && db <= 1 {
		return OpDiff{DR: dr, DG: dg, DB: db}
	}

	// Cross-deltas also wrap; byte subtraction before the signed read keeps
	// them consistent with the decoder's mod-256 reconstruction.
	drg := int8(byte(dr) - byte(dg))
	dbg := int8(byte(db) - byte(dg))

	if dg >= -32 && dg <= 31 && drg >= -8 && drg <= 7 && dbg >= -8 && dbg <= 7 {
		return OpLuma{DG: dg, DRG: drg, DBG: dbg}
	}

	return OpRgb{R: p.R, G: p.G, B: p.B}
}

// encodeChunk encodes the pixel range pixels[start:end] to w, threading the
// lookback state through the call. start and end are byte offsets and must
// fall on whole-pixel (4-byte) boundaries. A run still pending when the range
// ends is flushed only if flushTail is set, so a caller splitting an image
// into chunks can carry the run across the seam; the whole-image drivers in
// this package always pass a single full-range chunk. The return value is
// the number of bytes written, valid even on error.
func (t *transcoder) encodeChunk(
	w io.Writer, pixels []byte, start, end int, flushTail bool,
) (int64, error) {
	var scratch [5]byte
	totalBytesWritten := int64(0)

	emit := func(op Op) error {
		n, err := w.Write(op.appendTo(scratch[:0]))
		totalBytesWritten += int64(n)
		return err
	}

	for i := start; i < end; i += 4 {
		current := Pixel{R: pixels[i], G: pixels[i+1], B: pixels[i+2], A: pixels[i+3]}

		if current == t.prev {
			t.run++
			if t.run == maxRunLength {
				if err := emit(OpRun{Count: t.run}); err != nil {
					return totalBytesWritten, err
				}
				t.run = 0
			}
			continue
		}

		if t.run > 0 {
			if err := emit(OpRun{Count: t.run}); err != nil {
				return totalBytesWritten, err
			}
			t.run = 0
		}

		if err := emit(t.chooseOp(current)); err != nil {
			return totalBytesWritten, err
		}
		t.record(current)
	}

	if flushTail && t.run > 0 {
		if err := emit(OpRun{Count: t.run}); err != nil {
			return totalBytesWritten, err
		}
		t.run = 0
	}

	return totalBytesWritten, nil
}

// encodeStream writes a complete stream (header, body, end marker) to w and
// returns the number of bytes written.
func encodeStream(
	w io.Writer, pixels []byte, width, height uint32, colorspace byte,
) (int64, error) {
	hdr := header{width: width, height: height, channels: 4, colorspace: colorspace}

	n, err := w.Write(hdr.appendTo(make([]byte, 0, headerSize)))
	totalBytesWritten := int64(n)
	if err != nil {
		return totalBytesWritten, err
	}

	state := newTranscoder()
	n64, err := state.encodeChunk(w, pixels, 0, len(pixels), true)
	totalBytesWritten += n64
	if err != nil {
		return totalBytesWritten, err
	}

	n, err = w.Write(endMarker[:])
	totalBytesWritten += int64(n)
	return totalBytesWritten, err
}

// maxEncodedLen returns the worst-case stream size for a pixel buffer of the
// given length: every pixel as a 5-byte RGBA operation, plus framing.
func maxEncodedLen(pixelBytes int) int {
	return headerSize + (pixelBytes/4)*5 + len(endMarker)
}
