package qoipix_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qoipix"
)

type DecodeTestCase struct {
	Stream         []byte
	ExpectedPixels []byte
	Name           string
}

func TestDecode__GoldenStreams(t *testing.T) {
	tests := []DecodeTestCase{
		{
			wholeStream(1, 3, 0xA2, 0x79, 0xC0, 0xA3, 0x88),
			[]byte{1, 2, 3, 255, 1, 2, 3, 255, 4, 5, 6, 255},
			"run then luma",
		},
		{
			wholeStream(1, 2, 0xC0, 0xFF, 0x00, 0x00, 0x00, 0x00),
			[]byte{0, 0, 0, 255, 0, 0, 0, 0},
			"rgba after run",
		},
		{
			// An RGB literal reuses the reference pixel's alpha, which an
			// earlier RGBA op changed to 7.
			wholeStream(1, 2, 0xFF, 1, 2, 3, 7, 0xFE, 9, 9, 9),
			[]byte{1, 2, 3, 7, 9, 9, 9, 7},
			"rgb inherits alpha",
		},
		{
			// Every index slot starts as opaque black, so INDEX ops are
			// valid before anything was recorded.
			wholeStream(1, 1, 0x35),
			[]byte{0, 0, 0, 255},
			"index hit on initial slot",
		},
		{
			// A 0x00 INDEX op followed by a non-zero byte is an ordinary
			// operation, not a false end of stream.
			wholeStream(1, 2, 0x00, 0xFE, 1, 2, 3),
			[]byte{0, 0, 0, 255, 1, 2, 3, 255},
			"index zero then rgb",
		},
		{
			// A 0x00 INDEX op directly before the end marker: the marker's
			// seven zero bytes must not swallow the operation.
			wholeStream(1, 1, 0x00),
			[]byte{0, 0, 0, 255},
			"index zero then end marker",
		},
		{
			wholeStream(1, 62, 0xFD),
			bytes.Repeat([]byte{0, 0, 0, 255}, 62),
			"max length run",
		},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				decoded, err := qoipix.Decode(test.Stream)
				require.NoError(t, err, "unexpected error while decoding")
				assert.Equal(t, test.ExpectedPixels, decoded.Pixels, "decoded pixels are wrong")
			},
		)
	}
}

func TestDecode__HeaderFields(t *testing.T) {
	stream := append(streamHeader(1, 1), 0xC0)
	stream[13] = 77 // colorspace passes through untouched
	stream = append(stream, streamEndMarker...)

	decoded, err := qoipix.Decode(stream)
	require.NoError(t, err)
	assert.EqualValues(t, 1, decoded.Width)
	assert.EqualValues(t, 1, decoded.Height)
	assert.EqualValues(t, 77, decoded.Colorspace)
}

type MalformedTestCase struct {
	Stream      []byte
	ExpectedErr error
	Name        string
}

func TestDecode__Malformed(t *testing.T) {
	tests := []MalformedTestCase{
		{
			[]byte("qoi"),
			qoipix.ErrMalformedStream,
			"shorter than the header",
		},
		{
			wholeStream(1, 1, 0xC0)[:15],
			qoipix.ErrMalformedStream,
			"no end marker",
		},
		{
			append(streamHeader(1, 2), 0xFE, 9, 9), // RGB missing its blue byte
			qoipix.ErrMalformedStream,
			"truncated rgb literal",
		},
		{
			// Two INDEX-0 ops in a row that don't begin the end marker.
			wholeStream(1, 4, 0x00, 0x00, 0xFE, 1, 2, 3),
			qoipix.ErrMalformedStream,
			"double index zero",
		},
		{
			// The marker's last byte is wrong, so its zeros read as a pair
			// of illegal INDEX-0 ops instead of an end of stream.
			append(streamHeader(1, 20), 0xC0, 0, 0, 0, 0, 0, 0, 0, 2),
			qoipix.ErrMalformedStream,
			"damaged end marker",
		},
		{
			// Header promises one pixel; the body delivers two.
			wholeStream(1, 1, 0xFE, 1, 2, 3, 0xFE, 4, 5, 6),
			qoipix.ErrOutOfRange,
			"more pixels than promised",
		},
		{
			// A run alone can overflow the promised pixel count.
			wholeStream(1, 3, 0xFD),
			qoipix.ErrOutOfRange,
			"run overflows promised count",
		},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				decoded, err := qoipix.Decode(test.Stream)
				if err == nil {
					t.Fatal("decoding should've failed but didn't")
				}
				if !errors.Is(err, test.ExpectedErr) {
					t.Errorf("error type is wrong: %s", err.Error())
				}
				assert.Nil(t, decoded, "a failed decode must not return an image")
			},
		)
	}
}

func TestDecode__BadMagic(t *testing.T) {
	stream := wholeStream(1, 1, 0xC0)
	stream[0] = 'Q'

	_, err := qoipix.Decode(stream)
	if !errors.Is(err, qoipix.ErrBadMagic) {
		t.Errorf("error type is wrong, doesn't wrap ErrBadMagic: %v", err)
	}
}

func TestDecodeFrom__Reader(t *testing.T) {
	pixels := []byte{1, 2, 3, 255, 1, 2, 3, 255, 4, 5, 6, 255}
	encoded, err := qoipix.Encode(pixels, 3, 1, 0)
	require.NoError(t, err)

	decoded, err := qoipix.DecodeFrom(bytes.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, pixels, decoded.Pixels)
}
