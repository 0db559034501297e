// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Memory Layout
//
// The machine has 4KB of byte addressable memory (0x000-0xFFF):
//   - 0x000-0x04F: built in hexadecimal font, 16 glyphs of 5 bytes each
//   - 0x050-0x1FF: unused interpreter area
//   - ProgramStart-0xFFF: program image and data
//
// # Registers
//
// Sixteen 8-bit registers V0-VF, where VF doubles as the flag output of the
// arithmetic, shift and draw instructions. The index register I and the
// program counter are 16 bit wide, the stack holds 16 return addresses.
// The delay and sound timers are decremented at 60 Hz by the caller, see
// TickTimers.
//
// # Execution
//
// Cycle fetches the big endian opcode at the program counter, decodes it and
// executes it. Every instruction either completes or returns an error before
// any state was modified. The key wait instruction never blocks, it leaves the
// program counter unchanged until a key is pressed so that the next cycle
// executes it again.
//
// # Quirks
//
// Config selects between the historical interpreter variants:
//   - LoadStoreQuirk: Fx55/Fx65 leave I unchanged
//   - ShiftQuirk: 8xy6/8xyE shift Vx instead of Vy
//   - Wrapping: sprites wrap around the display edges instead of being clipped
package chip8
