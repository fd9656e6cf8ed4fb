// Package testing holds helpers for tests that need pixel fixtures. Raw
// RGBA buffers compress extremely well, so fixtures are stored gzipped and
// inflated on demand.
package testing

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// CompressPixelImage gzips a raw RGBA buffer into fixture bytes.
func CompressPixelImage(pixels []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := gzip.NewWriterLevel(&buffer, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := writer.Write(pixels); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// LoadPixelImage inflates a gzipped RGBA fixture and asserts that it has
// exactly width*height pixels.
func LoadPixelImage(t *testing.T, compressed []byte, width, height uint) []byte {
	require.Greater(t, len(compressed), 0, "compressed fixture is empty")

	reader, err := gzip.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	defer reader.Close()

	pixels, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(
		t,
		width*height*4,
		uint(len(pixels)),
		"inflated fixture is the wrong size",
	)
	return pixels
}

// PixelStream wraps an inflated fixture in a fixed-size seekable stream.
// Writes don't affect the compressed fixture; writing past the end of the
// buffer triggers an error.
func PixelStream(t *testing.T, compressed []byte, width, height uint) io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(LoadPixelImage(t, compressed, width, height))
}
