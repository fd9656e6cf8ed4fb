// Package pixelsource decodes ordinary image files into the flat RGBA
// buffers the codec works on. PNG, JPEG and GIF come from the standard
// library; BMP and TIFF are registered from golang.org/x/image.
package pixelsource

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Source is a decoded image as a flat top-to-bottom, left-to-right RGBA
// buffer. Pixels is always Width*Height*4 bytes, non-premultiplied.
type Source struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

// FromReader decodes any registered image format from r.
func FromReader(r io.Reader) (*Source, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("can't decode source image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]byte, width*height*4)

	if nrgba, ok := img.(*image.NRGBA); ok {
		// Fast path: the decoder already produced non-premultiplied RGBA
		// rows, so copy them out row by row.
		for y := 0; y < height; y++ {
			rowStart := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pixels[y*width*4:(y+1)*width*4], nrgba.Pix[rowStart:rowStart+width*4])
		}
		return &Source{Pixels: pixels, Width: uint32(width), Height: uint32(height)}, nil
	}

	at := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pixels[at] = px.R
			pixels[at+1] = px.G
			pixels[at+2] = px.B
			pixels[at+3] = px.A
			at += 4
		}
	}
	return &Source{Pixels: pixels, Width: uint32(width), Height: uint32(height)}, nil
}

// FromFile decodes the image file at path.
func FromFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromReader(f)
}
