package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// drawDigit draws the font glyph 5 at x=5 y=0 and loops forever.
var drawDigit = []byte{
	0x60, 0x05, // LD V0, 5
	0xF0, 0x29, // LD F, V0
	0x61, 0x00, // LD V1, 0
	0xD0, 0x15, // DRW V0, V1, 5
	0x12, 0x08, // JP $208
}

// glyph 5 consists of 14 lit pixels
const drawDigitLit = 14

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func testOptions(t *testing.T, image []byte) options.Program {
	t.Helper()
	return options.Program{
		Parameters:  options.Parameters{Input: writeFile(t, "test.ch8", image)},
		Flags:       options.Flags{Rate: 600, Frames: 10, FPS: 60, Keys: "hex"},
		OutputFlags: options.OutputFlags{Scale: 2},
	}
}

func TestRun(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := testOptions(t, drawDigit)

	summary, err := run(context.Background(), logger, opts, os.Stdout)
	assert.NoError(t, err)
	assert.Equal(t, 10, summary.Frames)
	assert.False(t, summary.Breakpoint)
	assert.Equal(t, uint16(0x208), summary.PC)
	assert.Equal(t, drawDigitLit, summary.LitPixels)
}

func TestRunBreakpoint(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := testOptions(t, drawDigit)
	opts.Breakpoints = "0x206"

	summary, err := run(context.Background(), logger, opts, os.Stdout)
	assert.NoError(t, err)
	assert.True(t, summary.Breakpoint)
	assert.Equal(t, 1, summary.Frames)
	assert.Equal(t, uint16(0x206), summary.PC)
	assert.Equal(t, 0, summary.LitPixels)
}

func TestRunScript(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := testOptions(t, drawDigit)
	opts.Script = writeFile(t, "input.lua", []byte(`
function on_frame(n)
  press("A")
  if n == 3 then stop() end
end`))

	summary, err := run(context.Background(), logger, opts, os.Stdout)
	assert.NoError(t, err)
	assert.True(t, summary.Stopped)
	assert.Equal(t, 4, summary.Frames)
}

func TestRunOutputs(t *testing.T) {
	logger := log.NewTestLogger(t)
	image := []byte{
		0x6A, 0x3C, // LD VA, 60
		0xFA, 0x18, // LD ST, VA
	}
	image = append(image, drawDigit...)
	// the loop jumps to its own address after the prefix
	image[len(image)-1] = 0x0C

	opts := testOptions(t, image)
	opts.Frames = 120
	dir := t.TempDir()
	opts.Screenshot = filepath.Join(dir, "display.png")
	opts.Wav = filepath.Join(dir, "sound.wav")
	opts.Dump = true

	output, err := os.Create(filepath.Join(dir, "dump.txt"))
	assert.NoError(t, err)
	defer func() { _ = output.Close() }()

	summary, err := run(context.Background(), logger, opts, output)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x20C), summary.PC)
	assert.True(t, summary.Sound > 0)
	assert.True(t, summary.Sound.Seconds() < 1.1)

	for _, path := range []string{opts.Screenshot, opts.Wav} {
		info, err := os.Stat(path)
		assert.NoError(t, err)
		assert.True(t, info.Size() > 0)
	}

	dump, err := os.ReadFile(output.Name())
	assert.NoError(t, err)
	assert.Equal(t, drawDigitLit, strings.Count(string(dump), "#"))
	assert.Equal(t, chip8.DisplayHeight, strings.Count(string(dump), "\n"))
}

func TestRunErrors(t *testing.T) {
	logger := log.NewTestLogger(t)

	t.Run("unknown opcode", func(t *testing.T) {
		opts := testOptions(t, []byte{0xFF, 0xFF})
		_, err := run(context.Background(), logger, opts, os.Stdout)
		assert.True(t, errors.Is(err, chip8.ErrUnknownOpcode))
	})

	t.Run("missing file", func(t *testing.T) {
		opts := testOptions(t, drawDigit)
		opts.Input = filepath.Join(t.TempDir(), "missing.ch8")
		_, err := run(context.Background(), logger, opts, os.Stdout)
		assert.Error(t, err)
	})

	t.Run("image too large", func(t *testing.T) {
		opts := testOptions(t, make([]byte, chip8.MaxImageSize+1))
		_, err := run(context.Background(), logger, opts, os.Stdout)
		assert.True(t, errors.Is(err, chip8.ErrImageTooLarge))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		opts := testOptions(t, drawDigit)
		opts.Frames = 0
		_, err := run(ctx, logger, opts, os.Stdout)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
