package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfMemory    = errors.New("out of memory access")
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrInvalidDigit   = errors.New("invalid digit")
	ErrImageTooLarge  = errors.New("image too large")
	ErrUnknownKey     = errors.New("unknown key")
)

// ExecutionError is returned by Cycle when the fetched instruction failed.
// The machine state is unchanged by the failed instruction.
type ExecutionError struct {
	PC     uint16 // address of the failed instruction
	Opcode uint16
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing opcode %04X at %04X: %v", e.Opcode, e.PC, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func outOfMemory(address, length int) error {
	return fmt.Errorf("%w: %d bytes at %04X", ErrOutOfMemory, length, address)
}
