package chip8

import "fmt"

// next advances the program counter to the following instruction.
func (c *CPU) next() {
	c.pc += opcodeSize
}

// 0000 - padding of some programs, does nothing.
func (c *CPU) noop() error {
	c.next()
	return nil
}

// 00E0 - CLS
func (c *CPU) clearScreen() error {
	c.display = Framebuffer{}
	c.next()
	return nil
}

// 00EE - RET
func (c *CPU) ret() error {
	if c.sp == 0 {
		return ErrStackUnderflow
	}
	c.sp--
	c.pc = c.stack[c.sp] + opcodeSize
	return nil
}

// 1nnn - JP addr
func (c *CPU) jump(op operands) error {
	c.pc = op.nnn
	return nil
}

// 2nnn - CALL addr
func (c *CPU) call(op operands) error {
	if int(c.sp) >= StackSize {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, c.sp)
	}
	c.stack[c.sp] = c.pc
	c.sp++
	c.pc = op.nnn
	return nil
}

// skipIf skips the next instruction if the condition holds,
// used by 3xkk, 4xkk, 5xy0 and 9xy0.
func (c *CPU) skipIf(condition bool) error {
	if condition {
		c.pc += 2 * opcodeSize
	} else {
		c.next()
	}
	return nil
}

// 6xkk - LD Vx, byte
func (c *CPU) loadImmediate(op operands) error {
	return c.setRegister(op.x, op.kk)
}

// 7xkk - ADD Vx, byte, VF is not affected.
func (c *CPU) addImmediate(op operands) error {
	return c.setRegister(op.x, c.v[op.x]+op.kk)
}

// setRegister stores a result in Vx, used by all instructions that
// do not touch VF.
func (c *CPU) setRegister(x int, value byte) error {
	c.v[x] = value
	c.next()
	return nil
}

// setWithFlag stores a result in Vx and then the flag in VF, so the flag
// wins if Vx is VF.
func (c *CPU) setWithFlag(x int, value, flag byte) error {
	c.v[x] = value
	c.v[flagRegister] = flag
	c.next()
	return nil
}

// 8xy4 - ADD Vx, Vy, VF is the carry.
func (c *CPU) addRegisters(op operands) error {
	sum := uint16(c.v[op.x]) + uint16(c.v[op.y])
	var carry byte
	if sum > 0xFF {
		carry = 1
	}
	return c.setWithFlag(op.x, byte(sum), carry)
}

// subtract stores minuend-subtrahend in Vx, VF is 1 if there was no borrow.
// Used by 8xy5 SUB and 8xy7 SUBN.
func (c *CPU) subtract(x int, minuend, subtrahend byte) error {
	var noBorrow byte
	if minuend >= subtrahend {
		noBorrow = 1
	}
	return c.setWithFlag(x, minuend-subtrahend, noBorrow)
}

// shiftSource returns the register that 8xy6 and 8xyE shift.
func (c *CPU) shiftSource(op operands) byte {
	if c.cfg.ShiftQuirk {
		return c.v[op.x]
	}
	return c.v[op.y]
}

// 8xy6 - SHR Vx {, Vy}, VF is the shifted out bit.
func (c *CPU) shiftRight(op operands) error {
	value := c.shiftSource(op)
	return c.setWithFlag(op.x, value>>1, value&0x01)
}

// 8xyE - SHL Vx {, Vy}, VF is the shifted out bit.
func (c *CPU) shiftLeft(op operands) error {
	value := c.shiftSource(op)
	return c.setWithFlag(op.x, value<<1, value>>7)
}

// Annn - LD I, addr
func (c *CPU) loadIndex(op operands) error {
	c.i = op.nnn
	c.next()
	return nil
}

// Bnnn - JP V0, addr
func (c *CPU) jumpOffset(op operands) error {
	destination := int(op.nnn) + int(c.v[0])
	if destination >= MemorySize {
		return fmt.Errorf("%w: jump to %04X", ErrOutOfMemory, destination)
	}
	c.pc = uint16(destination)
	return nil
}

// Cxkk - RND Vx, byte
func (c *CPU) random8(op operands) error {
	value := byte(c.random.Uint32())
	return c.setRegister(op.x, value&op.kk)
}

// Dxyn - DRW Vx, Vy, nibble
// The n bytes sprite at I is XORed onto the display at (Vx, Vy). VF is set
// if any lit pixel was turned off by the whole draw.
func (c *CPU) draw(op operands) error {
	start := int(c.i)
	if start+op.n > MemorySize {
		return outOfMemory(start, op.n)
	}

	originX := int(c.v[op.x])
	originY := int(c.v[op.y])
	var collision byte

	for row := range op.n {
		y := originY + row
		if c.cfg.Wrapping {
			y %= DisplayHeight
		} else if y >= DisplayHeight {
			continue
		}

		sprite := c.memory[start+row]
		for col := range spriteWidth {
			x := originX + col
			if c.cfg.Wrapping {
				x %= DisplayWidth
			} else if x >= DisplayWidth {
				continue
			}

			if sprite&(0x80>>col) == 0 {
				continue
			}
			index := y*DisplayWidth + x
			if c.display[index] {
				collision = 1
			}
			c.display[index] = !c.display[index]
		}
	}

	c.v[flagRegister] = collision
	c.next()
	return nil
}

// skipIfKey implements Ex9E SKP Vx and ExA1 SKNP Vx.
func (c *CPU) skipIfKey(op operands, pressed bool) error {
	key := int(c.v[op.x])
	if key >= KeyCount {
		return fmt.Errorf("%w: index %d in V%X", ErrUnknownKey, key, op.x)
	}
	return c.skipIf(c.keys[key] == pressed)
}

// Fx0A - LD Vx, K
// The program counter is not advanced while no key is pressed, which makes
// the next cycle execute the instruction again.
func (c *CPU) waitKey(op operands) error {
	for key, pressed := range c.keys {
		if pressed {
			return c.setRegister(op.x, byte(key))
		}
	}
	return nil
}

// Fx15 - LD DT, Vx
func (c *CPU) setDelayTimer(op operands) error {
	c.dt = c.v[op.x]
	c.next()
	return nil
}

// Fx18 - LD ST, Vx
func (c *CPU) setSoundTimer(op operands) error {
	c.st = c.v[op.x]
	c.next()
	return nil
}

// Fx1E - ADD I, Vx
func (c *CPU) addIndex(op operands) error {
	c.i += uint16(c.v[op.x])
	c.next()
	return nil
}

// Fx29 - LD F, Vx
func (c *CPU) loadDigit(op operands) error {
	digit := c.v[op.x]
	if digit >= FontCharacters {
		return fmt.Errorf("%w: %02X in V%X", ErrInvalidDigit, digit, op.x)
	}
	c.i = uint16(digit) * FontHeight
	c.next()
	return nil
}

// Fx33 - LD B, Vx
func (c *CPU) storeBCD(op operands) error {
	start := int(c.i)
	if start+3 > MemorySize {
		return outOfMemory(start, 3)
	}
	value := c.v[op.x]
	c.memory[start] = value / 100
	c.memory[start+1] = value / 10 % 10
	c.memory[start+2] = value % 10
	c.next()
	return nil
}

// Fx55 - LD [I], Vx
func (c *CPU) storeRegisters(op operands) error {
	start := int(c.i)
	count := op.x + 1
	if start+count > MemorySize {
		return outOfMemory(start, count)
	}
	copy(c.memory[start:start+count], c.v[:count])
	c.advanceIndex(count)
	c.next()
	return nil
}

// Fx65 - LD Vx, [I]
func (c *CPU) loadRegisters(op operands) error {
	start := int(c.i)
	count := op.x + 1
	if start+count > MemorySize {
		return outOfMemory(start, count)
	}
	copy(c.v[:count], c.memory[start:start+count])
	c.advanceIndex(count)
	c.next()
	return nil
}

func (c *CPU) advanceIndex(count int) {
	if !c.cfg.LoadStoreQuirk {
		c.i += uint16(count)
	}
}
