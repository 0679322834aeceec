package insts

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ImmediateSize is the encoded size in bytes of the valC immediate.
const ImmediateSize = 8

// Instruction represents a decoded Y86-64 instruction.
type Instruction struct {
	PC       uint64 // Address of the header byte
	Opcode   Opcode // icode
	Function uint8  // ifun
	Mnemonic string // Resolved display name
	Length   int    // Declared encoded length

	// Register byte, valid only when RegsValid
	RegsValid bool
	RA        uint8
	RB        uint8

	// Immediate, valid only when ValCValid. ValCBytes holds the raw
	// encoding bytes; missing trailing bytes of a truncated read are zero.
	ValCValid bool
	ValC      uint64
	ValCBytes [ImmediateSize]byte

	// Address of the following instruction
	ValP uint64
}

// Decoder decodes Y86-64 machine code from a byte stream, one instruction
// per call to Next.
//
// The stream must already be positioned at the address given as the
// starting program counter. Once Next returns an error the decoder is
// finished and keeps returning that error.
type Decoder struct {
	r   io.Reader
	pc  uint64
	err error
}

// NewDecoder creates a decoder reading from r, whose first byte lives at
// address pc.
func NewDecoder(r io.Reader, pc uint64) *Decoder {
	return &Decoder{r: r, pc: pc}
}

// PC returns the address of the next instruction to decode.
func (d *Decoder) PC() uint64 {
	return d.pc
}

// Next decodes the instruction at the current program counter.
//
// It returns io.EOF when the stream ends exactly at an instruction boundary.
// A truncated instruction yields the partially decoded record together with
// a *MemoryAccessError so the caller can show what was fetched.
func (d *Decoder) Next() (*Instruction, error) {
	if d.err != nil {
		return nil, d.err
	}

	inst, err := d.decode()
	if err != nil {
		d.err = err
		return inst, err
	}

	d.pc = inst.ValP
	return inst, nil
}

func (d *Decoder) decode() (*Instruction, error) {
	var header [1]byte
	n, err := d.read(header[:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, io.EOF
	}

	op := Opcode(header[0] >> 4)
	fn := header[0] & 0xF

	if !op.Valid() {
		return nil, &InvalidOpcodeError{Opcode: uint8(op), PC: d.pc}
	}
	if !op.ValidFunction(fn) {
		return nil, &InvalidFunctionCodeError{Opcode: op, Function: fn, PC: d.pc}
	}

	inst := &Instruction{
		PC:       d.pc,
		Opcode:   op,
		Function: fn,
		Mnemonic: op.Mnemonic(fn),
		Length:   op.Length(),
		ValP:     d.pc + uint64(op.Length()),
	}

	consumed := 1
	short := false

	if op.HasRegisters() {
		var regs [1]byte
		n, err := d.read(regs[:])
		if err != nil {
			return nil, err
		}
		consumed += n

		if n == 1 {
			inst.RegsValid = true
			inst.RA = regs[0] >> 4
			inst.RB = regs[0] & 0xF
		} else {
			short = true
		}
	}

	if op.HasImmediate() {
		n, err := d.read(inst.ValCBytes[:])
		if err != nil {
			return nil, err
		}
		consumed += n

		inst.ValC = binary.LittleEndian.Uint64(inst.ValCBytes[:])
		inst.ValCValid = n > 0
		if n < ImmediateSize {
			short = true
		}
	}

	if short {
		return inst, &MemoryAccessError{PC: d.pc, Length: inst.Length, Read: consumed}
	}

	return inst, nil
}

// read fills buf from the stream and returns how many bytes were obtained.
// Running out of input is not an error here; callers compare the count.
func (d *Decoder) read(buf []byte) (int, error) {
	n, err := io.ReadFull(d.r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return n, fmt.Errorf("failed to read instruction at 0x%X: %w", d.pc, err)
	}
	return n, nil
}
