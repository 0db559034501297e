// Package screenshot renders the display framebuffer as PNG image.
package screenshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"golang.org/x/image/draw"
)

var (
	pixelOn  = color.Gray{Y: 0xFF}
	pixelOff = color.Gray{Y: 0x00}
)

// Image returns the framebuffer as image scaled by the given factor.
func Image(fb chip8.Framebuffer, scale int) (*image.Gray, error) {
	if scale < 1 {
		return nil, fmt.Errorf("invalid scale %d", scale)
	}

	src := image.NewGray(image.Rect(0, 0, chip8.DisplayWidth, chip8.DisplayHeight))
	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			c := pixelOff
			if fb.Pixel(x, y) {
				c = pixelOn
			}
			src.SetGray(x, y, c)
		}
	}
	if scale == 1 {
		return src, nil
	}

	dst := image.NewGray(image.Rect(0, 0, chip8.DisplayWidth*scale, chip8.DisplayHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// Write encodes the scaled framebuffer as PNG to the writer.
func Write(w io.Writer, fb chip8.Framebuffer, scale int) error {
	img, err := Image(fb, scale)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// WriteFile writes the scaled framebuffer as PNG file.
func WriteFile(path string, fb chip8.Framebuffer, scale int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}

	if err := Write(file, fb, scale); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", path, err)
	}
	return nil
}
