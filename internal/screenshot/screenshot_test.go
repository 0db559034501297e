package screenshot

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func testFramebuffer() chip8.Framebuffer {
	var fb chip8.Framebuffer
	fb[0] = true
	fb[5*chip8.DisplayWidth+63] = true
	return fb
}

func TestImage(t *testing.T) {
	img, err := Image(testFramebuffer(), 3)
	assert.NoError(t, err)
	assert.Equal(t, 64*3, img.Bounds().Dx())
	assert.Equal(t, 32*3, img.Bounds().Dy())

	assert.Equal(t, uint8(0xFF), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0xFF), img.GrayAt(2, 2).Y)
	assert.Equal(t, uint8(0x00), img.GrayAt(3, 0).Y)
	assert.Equal(t, uint8(0xFF), img.GrayAt(63*3+1, 5*3+2).Y)
	assert.Equal(t, uint8(0x00), img.GrayAt(63*3+1, 6*3).Y)

	_, err = Image(testFramebuffer(), 0)
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, testFramebuffer(), 1))

	img, err := png.Decode(&buf)
	assert.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	r, _, _, _ = img.At(1, 0).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display.png")
	assert.NoError(t, WriteFile(path, testFramebuffer(), 2))

	file, err := os.Open(path)
	assert.NoError(t, err)
	defer func() { _ = file.Close() }()

	cfg, err := png.DecodeConfig(file)
	assert.NoError(t, err)
	assert.Equal(t, 128, cfg.Width)
	assert.Equal(t, 64, cfg.Height)
}
