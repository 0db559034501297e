package chip8

// Framebuffer is the 64x32 monochrome display in row-major order,
// a set cell is a lit pixel.
type Framebuffer [DisplayWidth * DisplayHeight]bool

// Pixel returns whether the pixel at the given coordinates is lit.
// Coordinates outside the display return false.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return f[y*DisplayWidth+x]
}

// Row returns the pixels of a display row as a bit mask, the leftmost
// pixel being the most significant bit.
func (f *Framebuffer) Row(y int) uint64 {
	if y < 0 || y >= DisplayHeight {
		return 0
	}
	var row uint64
	for x := range DisplayWidth {
		row <<= 1
		if f[y*DisplayWidth+x] {
			row |= 1
		}
	}
	return row
}

// Lit returns the number of lit pixels.
func (f *Framebuffer) Lit() int {
	count := 0
	for _, pixel := range f {
		if pixel {
			count++
		}
	}
	return count
}
