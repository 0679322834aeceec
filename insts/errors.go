package insts

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed decode errors with errors.Is.
var (
	ErrInvalidOpcode       = errors.New("invalid opcode")
	ErrInvalidFunctionCode = errors.New("invalid function code")
	ErrMemoryAccess        = errors.New("memory access error")
)

// InvalidOpcodeError reports a header byte whose high nibble is not a
// defined opcode.
type InvalidOpcodeError struct {
	Opcode uint8
	PC     uint64
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode 0x%X at PC 0x%016X", e.Opcode, e.PC)
}

// Is makes errors.Is(err, ErrInvalidOpcode) succeed.
func (e *InvalidOpcodeError) Is(target error) bool {
	return target == ErrInvalidOpcode
}

// InvalidFunctionCodeError reports a function code that is not legal for the
// opcode it accompanies.
type InvalidFunctionCodeError struct {
	Opcode   Opcode
	Function uint8
	PC       uint64
}

func (e *InvalidFunctionCodeError) Error() string {
	return fmt.Sprintf("invalid function code 0x%X for %s at PC 0x%016X",
		e.Function, e.Opcode, e.PC)
}

// Is makes errors.Is(err, ErrInvalidFunctionCode) succeed.
func (e *InvalidFunctionCodeError) Is(target error) bool {
	return target == ErrInvalidFunctionCode
}

// MemoryAccessError reports an instruction that runs past the end of the
// byte stream. Length is the declared length of the instruction and Read is
// the number of bytes actually obtained, header included.
type MemoryAccessError struct {
	PC     uint64
	Length int
	Read   int
}

func (e *MemoryAccessError) Error() string {
	return fmt.Sprintf("memory access error at PC 0x%016X: required %d bytes, read %d bytes",
		e.PC, e.Length, e.Read)
}

// Is makes errors.Is(err, ErrMemoryAccess) succeed.
func (e *MemoryAccessError) Is(target error) bool {
	return target == ErrMemoryAccess
}
