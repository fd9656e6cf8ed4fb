package qoipix

// Pixel is a single RGBA pixel. Two pixels are equal iff all four components
// match; the zero alpha matters as much as the color channels.
type Pixel struct {
	R, G, B, A byte
}

// opaqueBlack is the starting value of the running reference pixel and of
// every recent-color index slot.
var opaqueBlack = Pixel{0, 0, 0, 255}

// hash returns the pixel's slot in the recent-color index. The multipliers
// are fixed by the wire format; byte arithmetic wraps mod 256, which is
// harmless because 256 is a multiple of the slot count.
func (p Pixel) hash() int {
	return int(p.R*3+p.G*5+p.B*7+p.A*11) % indexSize
}
