// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/options"
)

const (
	defaultFrames = 600
	defaultFPS    = 60
	defaultScale  = 10
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the error message if set and the flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Keys = strings.ToLower(opts.Keys)
	if _, err := keymap.ForLayout(opts.Keys); err != nil {
		return err
	}

	if opts.Rate <= 0 {
		return fmt.Errorf("invalid instruction rate %d, must be positive", opts.Rate)
	}
	if opts.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d, must be positive", opts.FPS)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", opts.Frames)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid screenshot scale %d, must be positive", opts.Scale)
	}

	if _, err := options.ParseAddresses(opts.Breakpoints); err != nil {
		return err
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Script, "script", "", "Lua input script with an on_frame(n) function called before every frame")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "name of the .png file to write the final display to")
	flags.StringVar(&opts.Wav, "wav", "", "name of the .wav file to write the sound output to")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated addresses to stop at, for example 0x2A0,0x300")

	flags.IntVar(&opts.Rate, "hz", clock.DefaultRate, "instructions per second")
	flags.IntVar(&opts.Frames, "frames", defaultFrames, "number of frames to run, 0 runs until interrupted")
	flags.IntVar(&opts.FPS, "fps", defaultFPS, "host frames per second")
	flags.BoolVar(&opts.LoadStoreQuirk, "load-store-quirk", false, "Fx55/Fx65 do not advance the I register")
	flags.BoolVar(&opts.ShiftQuirk, "shift-quirk", false, "8xy6/8xyE shift Vx instead of Vy")
	flags.BoolVar(&opts.NoWrap, "no-wrap", false, "clip sprites at the display edges instead of wrapping them")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random generator seed, 0 picks a random seed")
	flags.StringVar(&opts.Keys, "keys", keymap.HexLayout, "key name layout used by scripts (hex/qwerty)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.IntVar(&opts.Scale, "scale", defaultScale, "pixel scale factor of the screenshot")
	flags.BoolVar(&opts.Dump, "dump", false, "print the final display to the console")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
}
