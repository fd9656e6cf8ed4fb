package qoipix

// apply reconstructs op's single pixel from the lookback state. RUN is the
// one multi-pixel operation and is expanded by the caller.
func (t *transcoder) apply(op Op) Pixel {
	switch op := op.(type) {
	case OpIndex:
		return t.index[op.Slot]
	case OpDiff:
		return Pixel{
			R: t.prev.R + byte(op.DR),
			G: t.prev.G + byte(op.DG),
			B: t.prev.B + byte(op.DB),
			A: t.prev.A,
		}
	case OpLuma:
		return Pixel{
			R: t.prev.R + byte(op.DG) + byte(op.DRG),
			G: t.prev.G + byte(op.DG),
			B: t.prev.B + byte(op.DG) + byte(op.DBG),
			A: t.prev.A,
		}
	case OpRgb:
		return Pixel{R: op.R, G: op.G, B: op.B, A: t.prev.A}
	case OpRgba:
		return Pixel{R: op.R, G: op.G, B: op.B, A: op.A}
	default:
		// The op set is closed; only OpRun can reach here and the caller
		// handles it before calling apply.
		panic("qoipix: apply called with a RUN operation")
	}
}

// decodeChunk decodes operations from data[start:end] into dst, starting at
// byte offset writeAt, threading the lookback state through the call the
// same way encodeChunk does. It returns the new write offset, the read
// offset it stopped at, and whether it stopped because it recognized the end
// marker. Decoding a range that ends mid-operation is an error; a range that
// ends cleanly between operations without a marker simply returns done=false
// so a chunking caller can continue with the next range.
func (t *transcoder) decodeChunk(
	data []byte, start, end int, dst []byte, writeAt int,
) (int, int, bool, error) {
	read := start
	prevOpWasIndexZero := false

	for read < end {
		// The end marker is recognized only when the next 8 bytes from the
		// current cursor match it exactly. A lone 0x00 that doesn't begin
		// such a match is a valid INDEX operation, even when the marker
		// starts at the very next byte.
		if isEndMarker(data[read:end]) {
			return writeAt, read, true, nil
		}
		if data[read] == 0x00 {
			// Two INDEX-0 operations in a row can't come from a conforming
			// encoder: the second pixel would have extended a run instead.
			if prevOpWasIndexZero {
				return writeAt, read, false, ErrMalformedStream.WithMessage(
					"two consecutive INDEX-0 operations that don't begin the end marker")
			}
			prevOpWasIndexZero = true
		} else {
			prevOpWasIndexZero = false
		}

		op, n, err := decodeOp(data[read:end])
		if err != nil {
			return writeAt, read, false, err
		}
		read += n

		if run, ok := op.(OpRun); ok {
			if writeAt+run.Count*4 > len(dst) {
				return writeAt, read, false, ErrOutOfRange.WithMessage(
					"run overflows the decoded pixel buffer")
			}
			for i := 0; i < run.Count; i++ {
				writeAt = putPixel(dst, writeAt, t.prev)
			}
			// All expanded pixels equal the reference pixel, so one record
			// covers the whole run.
			t.record(t.prev)
			continue
		}

		if writeAt+4 > len(dst) {
			return writeAt, read, false, ErrOutOfRange.WithMessage(
				"operation overflows the decoded pixel buffer")
		}
		px := t.apply(op)
		writeAt = putPixel(dst, writeAt, px)
		t.record(px)
	}

	return writeAt, read, false, nil
}

func putPixel(dst []byte, at int, p Pixel) int {
	dst[at] = p.R
	dst[at+1] = p.G
	dst[at+2] = p.B
	dst[at+3] = p.A
	return at + 4
}
