package qoipix

// indexSize is the number of slots in the recent-color index. Slot numbers
// must fit in the low 6 bits of an INDEX operation.
const indexSize = 64

// maxRunLength is the longest run a single RUN operation can carry. Counts
// are stored with a bias of -1 in 6 bits; 63 and 64 are unreachable because
// their encodings collide with the RGB and RGBA tag bytes.
const maxRunLength = 62

// transcoder is the lookback state shared, by construction, between the
// encoder and the decoder. Both sides must mutate it identically after every
// pixel they process; that identity is the correctness invariant of the
// whole format. Each encode or decode call owns exactly one instance, so
// independent images can be transcoded concurrently with no synchronization.
type transcoder struct {
	// index is a direct-mapped cache of recently seen pixels, keyed by
	// Pixel.hash. A collision silently evicts the previous occupant.
	index [indexSize]Pixel
	// prev is the running reference pixel: the last pixel processed.
	prev Pixel
	// run counts reference-pixel repeats not yet flushed as a RUN operation.
	// Only the encoder uses it; the decoder expands runs immediately.
	run int
}

func newTranscoder() transcoder {
	t := transcoder{prev: opaqueBlack}
	for i := range t.index {
		t.index[i] = opaqueBlack
	}
	return t
}

// record notes that p was just processed: it overwrites p's index slot and
// makes p the new running reference pixel. Every pixel goes through here on
// both sides, including pixels produced by RUN expansion and INDEX copies.
func (t *transcoder) record(p Pixel) {
	t.index[p.hash()] = p
	t.prev = p
}
