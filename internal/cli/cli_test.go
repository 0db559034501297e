package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "defaults",
			args: []string{"prog", "pong.ch8"},
			want: options.Program{
				Parameters:  options.Parameters{Input: "pong.ch8"},
				Flags:       options.Flags{Rate: 500, Frames: 600, FPS: 60, Keys: "hex"},
				OutputFlags: options.OutputFlags{Scale: 10},
			},
		},
		{
			name: "quirks",
			args: []string{"prog", "-load-store-quirk", "-shift-quirk", "-no-wrap", "-hz", "700", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags: options.Flags{Rate: 700, Frames: 600, FPS: 60, Keys: "hex",
					LoadStoreQuirk: true, ShiftQuirk: true, NoWrap: true},
				OutputFlags: options.OutputFlags{Scale: 10},
			},
		},
		{
			name: "input flag and outputs",
			args: []string{"prog", "-i", "maze.ch8", "-keys", "QWERTY", "-dump", "-screenshot", "out.png", "-break", "0x200"},
			want: options.Program{
				Parameters:  options.Parameters{Input: "maze.ch8", Screenshot: "out.png", Breakpoints: "0x200"},
				Flags:       options.Flags{Rate: 500, Frames: 600, FPS: 60, Keys: "qwerty"},
				OutputFlags: options.OutputFlags{Scale: 10, Dump: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"missing ROM", []string{"prog"}, true},
		{"argument after ROM", []string{"prog", "pong.ch8", "-q"}, true},
		{"invalid layout", []string{"prog", "-keys", "dvorak", "pong.ch8"}, false},
		{"invalid rate", []string{"prog", "-hz", "0", "pong.ch8"}, false},
		{"invalid fps", []string{"prog", "-fps", "-1", "pong.ch8"}, false},
		{"invalid breakpoint", []string{"prog", "-break", "0xZZ", "pong.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			assert.Error(t, err)
			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}
