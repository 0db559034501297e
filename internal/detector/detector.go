// Package detector handles the system detection of input files.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector guesses the system of a ROM file from its file extension.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect returns the system that the file extension points to. Files
// without a known extension are assumed to be CHIP-8 programs as these
// images have no header to check.
func (d *Detector) Detect(filename string) arch.System {
	system := detectFromFile(filename)
	d.logger.Debug("Detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

// IsChip8 returns whether the file is a CHIP-8 program image.
func (d *Detector) IsChip8(filename string) bool {
	return d.Detect(filename) == arch.CHIP8System
}

func detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		return arch.CHIP8System
	}
}
