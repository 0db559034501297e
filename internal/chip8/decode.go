package chip8

import "fmt"

// operands contains the fields of an opcode, not every field is valid
// for every instruction.
type operands struct {
	x   int    // register index in bits 8-11
	y   int    // register index in bits 4-7
	n   int    // nibble in bits 0-3
	kk  byte   // byte in bits 0-7
	nnn uint16 // address in bits 0-11
}

func decode(opcode uint16) operands {
	return operands{
		x:   int(opcode>>8) & 0xF,
		y:   int(opcode>>4) & 0xF,
		n:   int(opcode) & 0xF,
		kk:  byte(opcode),
		nnn: opcode & 0x0FFF,
	}
}

// Fetch reads the big endian opcode at the program counter.
func (c *CPU) Fetch() (uint16, error) {
	address := int(c.pc)
	if address+opcodeSize > MemorySize {
		return 0, outOfMemory(address, opcodeSize)
	}
	return uint16(c.memory[address])<<8 | uint16(c.memory[address+1]), nil
}

// Cycle fetches, decodes and executes a single instruction.
func (c *CPU) Cycle() error {
	pc := c.pc
	opcode, err := c.Fetch()
	if err != nil {
		return fmt.Errorf("fetching opcode at %04X: %w", pc, err)
	}
	if err := c.Execute(opcode); err != nil {
		return &ExecutionError{PC: pc, Opcode: opcode, Err: err}
	}
	return nil
}

// Execute runs the instruction encoded by opcode against the current state.
// The program counter is advanced by the instruction itself.
func (c *CPU) Execute(opcode uint16) error {
	op := decode(opcode)

	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x0000:
			return c.noop()
		case 0x00E0:
			return c.clearScreen()
		case 0x00EE:
			return c.ret()
		}
	case 0x1:
		return c.jump(op)
	case 0x2:
		return c.call(op)
	case 0x3:
		return c.skipIf(c.v[op.x] == op.kk)
	case 0x4:
		return c.skipIf(c.v[op.x] != op.kk)
	case 0x5:
		if op.n == 0x0 {
			return c.skipIf(c.v[op.x] == c.v[op.y])
		}
	case 0x6:
		return c.loadImmediate(op)
	case 0x7:
		return c.addImmediate(op)
	case 0x8:
		return c.executeArithmetic(opcode, op)
	case 0x9:
		if op.n == 0x0 {
			return c.skipIf(c.v[op.x] != c.v[op.y])
		}
	case 0xA:
		return c.loadIndex(op)
	case 0xB:
		return c.jumpOffset(op)
	case 0xC:
		return c.random8(op)
	case 0xD:
		return c.draw(op)
	case 0xE:
		switch op.kk {
		case 0x9E:
			return c.skipIfKey(op, true)
		case 0xA1:
			return c.skipIfKey(op, false)
		}
	case 0xF:
		return c.executeMisc(opcode, op)
	}

	return fmt.Errorf("%w %04X", ErrUnknownOpcode, opcode)
}

func (c *CPU) executeArithmetic(opcode uint16, op operands) error {
	switch op.n {
	case 0x0:
		return c.setRegister(op.x, c.v[op.y])
	case 0x1:
		return c.setRegister(op.x, c.v[op.x]|c.v[op.y])
	case 0x2:
		return c.setRegister(op.x, c.v[op.x]&c.v[op.y])
	case 0x3:
		return c.setRegister(op.x, c.v[op.x]^c.v[op.y])
	case 0x4:
		return c.addRegisters(op)
	case 0x5:
		return c.subtract(op.x, c.v[op.x], c.v[op.y])
	case 0x6:
		return c.shiftRight(op)
	case 0x7:
		return c.subtract(op.x, c.v[op.y], c.v[op.x])
	case 0xE:
		return c.shiftLeft(op)
	}
	return fmt.Errorf("%w %04X", ErrUnknownOpcode, opcode)
}

func (c *CPU) executeMisc(opcode uint16, op operands) error {
	switch op.kk {
	case 0x07:
		return c.setRegister(op.x, c.dt)
	case 0x0A:
		return c.waitKey(op)
	case 0x15:
		return c.setDelayTimer(op)
	case 0x18:
		return c.setSoundTimer(op)
	case 0x1E:
		return c.addIndex(op)
	case 0x29:
		return c.loadDigit(op)
	case 0x33:
		return c.storeBCD(op)
	case 0x55:
		return c.storeRegisters(op)
	case 0x65:
		return c.loadRegisters(op)
	}
	return fmt.Errorf("%w %04X", ErrUnknownOpcode, opcode)
}
