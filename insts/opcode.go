package insts

// Opcode represents a Y86-64 opcode (icode), the high nibble of the header
// byte.
type Opcode uint8

// Y86-64 opcodes.
const (
	OpHalt   Opcode = iota // 0x0
	OpNop                  // 0x1
	OpRrmovq               // 0x2 rrmovq / cmovXX
	OpIrmovq               // 0x3
	OpRmmovq               // 0x4
	OpMrmovq               // 0x5
	OpOPq                  // 0x6 addq, subq, ...
	OpJXX                  // 0x7 jmp / jXX
	OpCall                 // 0x8
	OpRet                  // 0x9
	OpPushq                // 0xA
	OpPopq                 // 0xB

	numOpcodes = 12
)

// Function codes above this value are illegal for OpRrmovq, OpOPq and OpJXX.
const maxVariantFunction = 6

// NoRegister is the register specifier meaning "no register".
const NoRegister uint8 = 0xF

var opcodeLengths = [numOpcodes]int{1, 1, 2, 10, 10, 10, 2, 9, 9, 1, 2, 2}

var opcodeNames = [numOpcodes]string{
	"halt", "nop", "rrmovq", "irmovq", "rmmovq", "mrmovq",
	"OPq", "jmp", "call", "ret", "pushq", "popq",
}

var (
	arithmeticNames = [maxVariantFunction + 1]string{
		"addq", "subq", "andq", "xorq", "mulq", "divq", "modq",
	}
	jumpNames = [maxVariantFunction + 1]string{
		"jmp", "jle", "jl", "je", "jne", "jge", "jg",
	}
	moveNames = [maxVariantFunction + 1]string{
		"rrmovq", "cmovle", "cmovl", "cmove", "cmovne", "cmovge", "cmovg",
	}
)

var registerNames = [15]string{
	"%rax", "%rcx", "%rdx", "%rbx", "%rsp", "%rbp", "%rsi", "%rdi",
	"%r8", "%r9", "%r10", "%r11", "%r12", "%r13", "%r14",
}

// Valid reports whether op is a defined Y86-64 opcode.
func (op Opcode) Valid() bool {
	return op < numOpcodes
}

// Length returns the declared encoded length in bytes of instructions with
// this opcode, or 0 if the opcode is not valid.
func (op Opcode) Length() int {
	if !op.Valid() {
		return 0
	}
	return opcodeLengths[op]
}

// HasRegisters reports whether the encoding carries a register byte.
func (op Opcode) HasRegisters() bool {
	l := op.Length()
	return l == 2 || l == 10
}

// HasImmediate reports whether the encoding carries an 8-byte immediate.
func (op Opcode) HasImmediate() bool {
	l := op.Length()
	return l == 9 || l == 10
}

// String returns the base mnemonic of the opcode.
func (op Opcode) String() string {
	if !op.Valid() {
		return "invalid"
	}
	return opcodeNames[op]
}

// variants returns the function-code mnemonic table of op, or nil if op
// only accepts function code 0.
func (op Opcode) variants() *[maxVariantFunction + 1]string {
	switch op {
	case OpOPq:
		return &arithmeticNames
	case OpJXX:
		return &jumpNames
	case OpRrmovq:
		return &moveNames
	default:
		return nil
	}
}

// ValidFunction reports whether fn is a legal function code for op.
func (op Opcode) ValidFunction(fn uint8) bool {
	if !op.Valid() {
		return false
	}
	if op.variants() == nil {
		return fn == 0
	}
	return fn <= maxVariantFunction
}

// Mnemonic resolves the display name for op with function code fn. The
// function code must be legal for op.
func (op Opcode) Mnemonic(fn uint8) string {
	if table := op.variants(); table != nil && fn <= maxVariantFunction {
		return table[fn]
	}
	return op.String()
}

// RegisterName returns the assembly name of register specifier r.
func RegisterName(r uint8) string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return "none"
}
