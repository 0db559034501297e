// Package runner handles the emulation session of a ROM file.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/screenshot"
	"github.com/retroenv/retrochip8/internal/script"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Summary describes the state at the end of a session.
type Summary struct {
	Frames     int
	Breakpoint bool
	Stopped    bool // stopped by the input script
	PC         uint16
	LitPixels  int
	Sound      time.Duration
}

// Run loads the ROM file and emulates it until the frame limit is reached,
// the script stops it, a breakpoint is hit or the context is cancelled.
func Run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	_, err := run(ctx, logger, opts, os.Stdout)
	return err
}

func run(ctx context.Context, logger *log.Logger, opts options.Program, output *os.File) (Summary, error) {
	if !detector.New(logger).IsChip8(opts.Input) {
		logger.Warn("Input file does not look like a CHIP-8 program", log.String("file", opts.Input))
	}

	image, err := loader.New().Load(opts.Input)
	if err != nil {
		return Summary{}, fmt.Errorf("loading program: %w", err)
	}

	emu, err := setupEmulator(logger, opts)
	if err != nil {
		return Summary{}, err
	}
	if err := emu.Load(image); err != nil {
		return Summary{}, err
	}

	if !opts.Quiet {
		logger.Info("Running program",
			log.String("file", opts.Input),
			log.Stringer("system", arch.CHIP8System),
			log.Int("size", len(image)),
			log.Int("hz", opts.Rate))
	}

	var inputScript *script.Script
	if opts.Script != "" {
		inputScript, err = script.Load(opts.Script, emu)
		if err != nil {
			return Summary{}, fmt.Errorf("loading script: %w", err)
		}
		defer inputScript.Close()
	}

	var recorder *audio.Recorder
	if opts.Wav != "" {
		recorder = audio.NewRecorder()
	}

	summary, err := runFrames(ctx, emu, opts, inputScript, recorder)
	if err != nil {
		return summary, err
	}
	if summary.Breakpoint {
		logger.Info("Breakpoint reached", log.Hex("pc", summary.PC))
	}

	if err := writeOutputs(logger, opts, emu, recorder, output); err != nil {
		return summary, err
	}

	logger.Info("Emulation finished",
		log.Int("frames", summary.Frames),
		log.Hex("pc", summary.PC),
		log.Int("lit_pixels", summary.LitPixels),
		log.String("sound", summary.Sound.String()))
	return summary, nil
}

func setupEmulator(logger *log.Logger, opts options.Program) (*emulator.Emulator, error) {
	keys, err := keymap.ForLayout(opts.Keys)
	if err != nil {
		return nil, err
	}

	cfg := emulator.Config{
		Rate:           opts.Rate,
		LoadStoreQuirk: opts.LoadStoreQuirk,
		ShiftQuirk:     opts.ShiftQuirk,
		Wrapping:       !opts.NoWrap,
		Seed:           opts.Seed,
		Keys:           keys,
		Trace:          opts.Trace,
	}
	emu, err := emulator.New(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating emulator: %w", err)
	}

	breakpoints, err := options.ParseAddresses(opts.Breakpoints)
	if err != nil {
		return nil, err
	}
	for _, address := range breakpoints {
		emu.AddBreakpoint(address)
	}
	return emu, nil
}

// runFrames emulates the frames. A run without frame limit is paced in real
// time, limited runs are emulated as fast as possible.
func runFrames(ctx context.Context, emu *emulator.Emulator, opts options.Program,
	inputScript *script.Script, recorder *audio.Recorder) (Summary, error) {

	frameDuration := time.Second / time.Duration(opts.FPS)
	var ticker *time.Ticker
	if opts.Frames == 0 {
		ticker = time.NewTicker(frameDuration)
		defer ticker.Stop()
	}

	var summary Summary
	for frame := 0; opts.Frames == 0 || frame < opts.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("emulation interrupted: %w", err)
		}

		if inputScript != nil {
			stop, err := inputScript.Frame(frame)
			if err != nil {
				return summary, fmt.Errorf("running script: %w", err)
			}
			summary.Stopped = stop
		}

		err := emu.Run(frameDuration)
		summary.Frames = frame + 1
		if err != nil {
			if !errors.Is(err, emulator.ErrBreakpoint) {
				return summary, fmt.Errorf("emulating frame %d: %w", frame, err)
			}
			summary.Breakpoint = true
		}

		if recorder != nil {
			recorder.Record(emu.SoundOn(), frameDuration)
		}
		if summary.Breakpoint || summary.Stopped {
			break
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return summary, fmt.Errorf("emulation interrupted: %w", ctx.Err())
			case <-ticker.C:
			}
		}
	}

	display := emu.Display()
	summary.PC = emu.PC()
	summary.LitPixels = display.Lit()
	if recorder != nil {
		summary.Sound = recorder.SoundDuration()
	}
	return summary, nil
}

func writeOutputs(logger *log.Logger, opts options.Program, emu *emulator.Emulator,
	recorder *audio.Recorder, output *os.File) error {

	display := emu.Display()
	if opts.Screenshot != "" {
		if err := screenshot.WriteFile(opts.Screenshot, display, opts.Scale); err != nil {
			return fmt.Errorf("writing screenshot: %w", err)
		}
		logger.Info("Screenshot written", log.String("file", opts.Screenshot))
	}

	if recorder != nil {
		if err := recorder.WriteFile(opts.Wav); err != nil {
			return fmt.Errorf("writing sound: %w", err)
		}
		logger.Info("Sound written",
			log.String("file", opts.Wav),
			log.String("duration", recorder.Duration().String()))
	}

	if opts.Dump {
		if err := terminal.Render(output, display, terminal.GlyphsFor(output)); err != nil {
			return fmt.Errorf("dumping display: %w", err)
		}
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
