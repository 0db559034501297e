// Package terminal prints the display framebuffer as text.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"golang.org/x/term"
)

// Glyphs are the strings used for lit and unlit pixels.
type Glyphs struct {
	On  string
	Off string
}

var (
	// ASCII glyphs are used when the output is redirected.
	ASCII = Glyphs{On: "#", Off: "."}
	// Block glyphs are used for a real terminal.
	Block = Glyphs{On: "█", Off: " "}
)

// GlyphsFor returns the glyphs that fit the output file.
func GlyphsFor(file *os.File) Glyphs {
	if term.IsTerminal(int(file.Fd())) {
		return Block
	}
	return ASCII
}

// Render writes the framebuffer with one line per display row.
func Render(w io.Writer, fb chip8.Framebuffer, glyphs Glyphs) error {
	var sb strings.Builder
	sb.Grow(chip8.DisplayHeight * (chip8.DisplayWidth*len(glyphs.On) + 1))

	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			if fb.Pixel(x, y) {
				sb.WriteString(glyphs.On)
			} else {
				sb.WriteString(glyphs.Off)
			}
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return nil
}
