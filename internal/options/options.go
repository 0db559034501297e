// Package options contains the program options.
package options

import (
	"fmt"
	"strconv"
	"strings"
)

// Parameters contains file path options.
type Parameters struct {
	Input       string `flag:"i" usage:"input ROM file"`
	Script      string `flag:"script" usage:"Lua input script called for every frame"`
	Screenshot  string `flag:"screenshot" usage:"write the final display as .png file"`
	Wav         string `flag:"wav" usage:"write the sound output as .wav file"`
	Breakpoints string `flag:"break" usage:"comma separated addresses to stop at, e.g. 0x2A0,0x300"`
}

// Flags contains behavior options.
type Flags struct {
	Rate           int    `flag:"hz" usage:"instructions per second" default:"500"`
	Frames         int    `flag:"frames" usage:"number of frames to run, 0 runs until interrupted" default:"600"`
	FPS            int    `flag:"fps" usage:"host frames per second" default:"60"`
	LoadStoreQuirk bool   `flag:"load-store-quirk" usage:"Fx55/Fx65 do not advance I"`
	ShiftQuirk     bool   `flag:"shift-quirk" usage:"8xy6/8xyE shift Vx instead of Vy"`
	NoWrap         bool   `flag:"no-wrap" usage:"clip sprites at the display edges instead of wrapping"`
	Seed           uint64 `flag:"seed" usage:"random generator seed (default: random)"`
	Keys           string `flag:"keys" usage:"key name layout: hex, qwerty" default:"hex"`
	Debug          bool   `flag:"debug" usage:"enable debug logging"`
	Quiet          bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	Scale int  `flag:"scale" usage:"pixel scale factor of the screenshot" default:"10"`
	Dump  bool `flag:"dump" usage:"print the final display to the console"`
	Trace bool `flag:"trace" usage:"log every executed instruction, requires -debug"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// ParseAddresses parses a comma separated list of hexadecimal or decimal
// addresses, hexadecimal values need a 0x or $ prefix.
func ParseAddresses(list string) ([]uint16, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	var addresses []uint16
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if strings.HasPrefix(item, "$") {
			item = "0x" + item[1:]
		}
		value, err := strconv.ParseUint(item, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid address '%s': %w", item, err)
		}
		addresses = append(addresses, uint16(value))
	}
	return addresses, nil
}
