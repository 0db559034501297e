// Package emulator provides the CHIP-8 emulator facade that a host drives
// once per frame.
package emulator

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// ErrBreakpoint is returned by Run when the program counter reached a
// breakpoint address.
var ErrBreakpoint = errors.New("breakpoint reached")

// Config defines the settings of an emulation session.
type Config struct {
	Rate int // instructions per second

	LoadStoreQuirk bool
	ShiftQuirk     bool
	Wrapping       bool

	Seed uint64 // random generator seed, 0 uses a random seed
	Keys keymap.Map

	Trace bool // log every executed instruction at debug level
}

// DefaultConfig returns the default configuration of 500 instructions per
// second, no quirks, sprite wrapping and hexadecimal key names.
func DefaultConfig() Config {
	return Config{
		Rate:     clock.DefaultRate,
		Wrapping: true,
		Keys:     keymap.Hex(),
	}
}

// Emulator owns the state of an emulation session.
type Emulator struct {
	logger *log.Logger
	cfg    Config

	cpu   *chip8.CPU
	clock *clock.Clock
	keys  keymap.Map

	breakpoints set.Set[uint16]
}

// New returns a new emulator for the given configuration.
func New(logger *log.Logger, cfg Config) (*Emulator, error) {
	clk, err := clock.New(cfg.Rate)
	if err != nil {
		return nil, fmt.Errorf("creating clock: %w", err)
	}

	keys := cfg.Keys
	if keys == nil {
		keys = keymap.Hex()
	}

	cpuCfg := chip8.Config{
		LoadStoreQuirk: cfg.LoadStoreQuirk,
		ShiftQuirk:     cfg.ShiftQuirk,
		Wrapping:       cfg.Wrapping,
	}
	if cfg.Seed != 0 {
		cpuCfg.Random = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	return &Emulator{
		logger:      logger,
		cfg:         cfg,
		cpu:         chip8.New(cpuCfg),
		clock:       clk,
		keys:        keys,
		breakpoints: set.New[uint16](),
	}, nil
}

// Load resets the machine and loads the program image at the program start
// address.
func (e *Emulator) Load(image []byte) error {
	e.cpu.Reset()
	e.clock.Reset()
	if err := e.cpu.LoadImage(image); err != nil {
		return fmt.Errorf("loading image: %w", err)
	}

	e.logger.Debug("Program image loaded",
		log.Int("size", len(image)),
		log.Hex("start", uint16(chip8.ProgramStart)),
		log.Int("rate", e.clock.Rate()))
	return nil
}

// SetKey sets the pressed state of the key with the given symbolic name.
func (e *Emulator) SetKey(name string, pressed bool) error {
	index, err := e.keys.Lookup(name)
	if err != nil {
		return err
	}
	return e.cpu.SetKey(index, pressed)
}

// SetKeyIndex sets the pressed state of the key with the given index 0-15.
func (e *Emulator) SetKeyIndex(index int, pressed bool) error {
	return e.cpu.SetKey(index, pressed)
}

// Run advances the emulation by the elapsed wall clock time.
func (e *Emulator) Run(delta time.Duration) error {
	if _, err := e.clock.Advance(delta, machine{e}); err != nil {
		return err
	}
	return nil
}

// SoundOn returns whether the host should play the tone.
func (e *Emulator) SoundOn() bool {
	return e.cpu.SoundOn()
}

// Display returns a copy of the framebuffer.
func (e *Emulator) Display() chip8.Framebuffer {
	return e.cpu.Display()
}

// PC returns the program counter.
func (e *Emulator) PC() uint16 {
	return e.cpu.PC()
}

// Register returns the value of register V0-VF.
func (e *Emulator) Register(index int) (byte, error) {
	return e.cpu.Register(index)
}

// CPU returns the machine state.
func (e *Emulator) CPU() *chip8.CPU {
	return e.cpu
}

// AddBreakpoint makes Run stop before executing the instruction at the
// given address.
func (e *Emulator) AddBreakpoint(address uint16) {
	e.breakpoints.Add(address)
}

// machine adapts the emulator to the clock, it adds breakpoints and the
// instruction trace to the CPU cycle.
type machine struct {
	*Emulator
}

func (m machine) Cycle() error {
	pc := m.cpu.PC()
	if m.breakpoints.Contains(pc) {
		return fmt.Errorf("%w at %04X", ErrBreakpoint, pc)
	}

	if m.cfg.Trace {
		if opcode, err := m.cpu.Fetch(); err == nil {
			m.logger.Debug("Executing",
				log.Hex("pc", pc),
				log.Hex("opcode", opcode),
				log.String("instruction", disasm.Disassemble(opcode)))
		}
	}

	if err := m.cpu.Cycle(); err != nil {
		var execErr *chip8.ExecutionError
		if errors.As(err, &execErr) {
			m.logger.Debug("Instruction failed",
				log.Hex("pc", execErr.PC),
				log.Hex("opcode", execErr.Opcode),
				log.String("instruction", disasm.Disassemble(execErr.Opcode)),
				log.Err(execErr.Err))
		}
		return err
	}
	return nil
}

func (m machine) TickTimers() {
	m.cpu.TickTimers()
}
