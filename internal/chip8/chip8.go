package chip8

import (
	"fmt"
	"math/rand/v2"
)

// CHIP-8 machine dimensions.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address that program images are loaded to and
	// where execution starts.
	ProgramStart = 0x200

	// MaxImageSize is the largest program image that fits into memory.
	MaxImageSize = MemorySize - ProgramStart

	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	DisplayWidth  = 64
	DisplayHeight = 32

	// FontCharacters is the number of glyphs in the built in font.
	FontCharacters = 16
	// FontHeight is the number of bytes of a single font glyph.
	FontHeight = 5

	flagRegister = 0xF
	spriteWidth  = 8
	opcodeSize   = 2
)

// RandomSource provides the random numbers for the Cxkk instruction.
// *rand.Rand of math/rand/v2 satisfies it.
type RandomSource interface {
	Uint32() uint32
}

// Config contains the construction time settings of a CPU.
type Config struct {
	LoadStoreQuirk bool // Fx55/Fx65 do not advance I
	ShiftQuirk     bool // 8xy6/8xyE shift Vx in place
	Wrapping       bool // sprites wrap around the display edges

	// Random is used by Cxkk, a randomly seeded generator is used if nil.
	Random RandomSource
}

// CPU holds the complete state of a CHIP-8 machine.
type CPU struct {
	cfg    Config
	random RandomSource

	memory  [MemorySize]byte
	v       [RegisterCount]byte
	stack   [StackSize]uint16
	keys    [KeyCount]bool
	display Framebuffer

	pc uint16
	i  uint16
	sp uint8
	dt uint8
	st uint8
}

// New returns a CPU in its power on state with the font loaded.
func New(cfg Config) *CPU {
	c := &CPU{
		cfg:    cfg,
		random: cfg.Random,
	}
	if c.random == nil {
		c.random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c.Reset()
	return c
}

// Reset restores the power on state, the font is kept and the
// configuration is unchanged.
func (c *CPU) Reset() {
	c.memory = [MemorySize]byte{}
	copy(c.memory[:], font[:])
	c.v = [RegisterCount]byte{}
	c.stack = [StackSize]uint16{}
	c.keys = [KeyCount]bool{}
	c.display = Framebuffer{}
	c.pc = ProgramStart
	c.i = 0
	c.sp = 0
	c.dt = 0
	c.st = 0
}

// LoadImage copies a program image into memory starting at ProgramStart.
func (c *CPU) LoadImage(image []byte) error {
	if len(image) > MaxImageSize {
		return fmt.Errorf("%w: %d bytes, %d bytes available", ErrImageTooLarge, len(image), MaxImageSize)
	}
	copy(c.memory[ProgramStart:], image)
	return nil
}

// Config returns the configuration of the CPU.
func (c *CPU) Config() Config {
	return c.cfg
}

// TickTimers decrements the delay and the sound timer, both stop at 0.
func (c *CPU) TickTimers() {
	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
	}
}

// Read returns the byte at the given memory address.
func (c *CPU) Read(address int) (byte, error) {
	if address < 0 || address >= MemorySize {
		return 0, outOfMemory(address, 1)
	}
	return c.memory[address], nil
}

// Write sets the byte at the given memory address.
func (c *CPU) Write(address int, value byte) error {
	if address < 0 || address >= MemorySize {
		return outOfMemory(address, 1)
	}
	c.memory[address] = value
	return nil
}

// Key returns whether the key with the given index is pressed.
func (c *CPU) Key(index int) (bool, error) {
	if index < 0 || index >= KeyCount {
		return false, fmt.Errorf("%w: index %d", ErrUnknownKey, index)
	}
	return c.keys[index], nil
}

// SetKey sets the pressed state of the key with the given index.
func (c *CPU) SetKey(index int, pressed bool) error {
	if index < 0 || index >= KeyCount {
		return fmt.Errorf("%w: index %d", ErrUnknownKey, index)
	}
	c.keys[index] = pressed
	return nil
}

// Register returns the value of register V0-VF.
func (c *CPU) Register(index int) (byte, error) {
	if index < 0 || index >= RegisterCount {
		return 0, fmt.Errorf("invalid register index %d", index)
	}
	return c.v[index], nil
}

// Display returns a copy of the framebuffer.
func (c *CPU) Display() Framebuffer {
	return c.display
}

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// I returns the index register.
func (c *CPU) I() uint16 { return c.i }

// SP returns the stack pointer.
func (c *CPU) SP() uint8 { return c.sp }

// DelayTimer returns the delay timer.
func (c *CPU) DelayTimer() uint8 { return c.dt }

// SoundTimer returns the sound timer.
func (c *CPU) SoundTimer() uint8 { return c.st }

// SoundOn returns whether the sound timer is active.
func (c *CPU) SoundOn() bool { return c.st > 0 }
