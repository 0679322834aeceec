// Package trace drives an instruction decoder over a stream and prints one
// line per fetched instruction, followed by a line describing why decoding
// stopped.
package trace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sarchlab/y86sim/insts"
)

// NormalTermination is printed when the stream ends on an instruction
// boundary.
const NormalTermination = "Normal termination"

// Tracer prints decoded instructions to a writer.
type Tracer struct {
	w     io.Writer
	count int
}

// NewTracer creates a tracer writing to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// Count returns the number of instruction lines printed so far, partial
// instructions included.
func (t *Tracer) Count() int {
	return t.count
}

// Run decodes until the stream ends or the decoder reports an error. A
// truncated instruction is printed before its error line. Run returns nil on
// normal termination and the decoder's error otherwise.
func (t *Tracer) Run(d *insts.Decoder) error {
	for {
		inst, err := d.Next()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.w, NormalTermination)
			return nil
		}

		if inst != nil {
			slog.Debug("fetched instruction",
				"pc", inst.PC, "mnemonic", inst.Mnemonic, "valP", inst.ValP)
			fmt.Fprintln(t.w, FormatInstruction(inst))
			t.count++
		}

		if err != nil {
			fmt.Fprintln(t.w, FormatTermination(err))
			return err
		}
	}
}

// FormatInstruction renders one trace line. Register and immediate fields
// appear only when the instruction carries them.
func FormatInstruction(inst *insts.Instruction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PC: 0x%016X  icode: 0x%X  ifun: 0x%X  %-7s",
		inst.PC, uint8(inst.Opcode), inst.Function, inst.Mnemonic)

	if inst.RegsValid {
		fmt.Fprintf(&b, "  rA: 0x%X (%s)  rB: 0x%X (%s)",
			inst.RA, insts.RegisterName(inst.RA),
			inst.RB, insts.RegisterName(inst.RB))
	}

	if inst.ValCValid {
		fmt.Fprintf(&b, "  valC: 0x%016X [% X]", inst.ValC, inst.ValCBytes[:])
	}

	fmt.Fprintf(&b, "  valP: 0x%016X", inst.ValP)

	return b.String()
}

// FormatTermination renders the line describing a decode error.
func FormatTermination(err error) string {
	var (
		opErr  *insts.InvalidOpcodeError
		fnErr  *insts.InvalidFunctionCodeError
		memErr *insts.MemoryAccessError
	)

	switch {
	case errors.As(err, &opErr):
		return fmt.Sprintf("Invalid opcode 0x%X at PC 0x%016X", opErr.Opcode, opErr.PC)
	case errors.As(err, &fnErr):
		return fmt.Sprintf("Invalid function code 0x%X at PC 0x%016X", fnErr.Function, fnErr.PC)
	case errors.As(err, &memErr):
		return fmt.Sprintf("Memory access error at PC 0x%016X, required %d bytes, read %d bytes.",
			memErr.PC, memErr.Length, memErr.Read)
	default:
		return fmt.Sprintf("Read error: %v", err)
	}
}
