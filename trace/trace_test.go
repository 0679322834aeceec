package trace_test

import (
	"bytes"
	"errors"
	"strings"
	"testing/iotest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/y86sim/insts"
	"github.com/sarchlab/y86sim/trace"
)

var _ = Describe("Tracer", func() {
	var (
		out    *bytes.Buffer
		tracer *trace.Tracer
	)

	lines := func() []string {
		return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	}

	run := func(pc uint64, code ...byte) error {
		return tracer.Run(insts.NewDecoder(bytes.NewReader(code), pc))
	}

	BeforeEach(func() {
		out = &bytes.Buffer{}
		tracer = trace.NewTracer(out)
	})

	It("should print only the termination line for an empty stream", func() {
		Expect(run(0)).To(Succeed())
		Expect(lines()).To(Equal([]string{trace.NormalTermination}))
		Expect(tracer.Count()).To(Equal(0))
	})

	It("should print one line per instruction then terminate normally", func() {
		err := run(0x3D, 0x10, 0x60, 0x62, 0x90)

		Expect(err).NotTo(HaveOccurred())
		Expect(lines()).To(HaveLen(4))
		Expect(lines()[0]).To(ContainSubstring("nop"))
		Expect(lines()[1]).To(ContainSubstring("addq"))
		Expect(lines()[2]).To(ContainSubstring("ret"))
		Expect(lines()[3]).To(Equal(trace.NormalTermination))
		Expect(tracer.Count()).To(Equal(3))
	})

	It("should print the partial instruction before the memory access error", func() {
		err := run(0, 0x10, 0x30, 0xF6)

		Expect(err).To(MatchError(insts.ErrMemoryAccess))
		Expect(lines()).To(HaveLen(3))
		Expect(lines()[1]).To(ContainSubstring("irmovq"))
		Expect(lines()[1]).To(ContainSubstring("rA: 0xF (none)  rB: 0x6 (%rsi)"))
		Expect(lines()[1]).NotTo(ContainSubstring("valC"))
		Expect(lines()[2]).To(Equal(
			"Memory access error at PC 0x0000000000000001, required 10 bytes, read 2 bytes."))
		Expect(tracer.Count()).To(Equal(2))
	})

	It("should stop at an invalid opcode without printing it", func() {
		err := run(0x20, 0x10, 0xE0)

		Expect(err).To(MatchError(insts.ErrInvalidOpcode))
		Expect(lines()).To(HaveLen(2))
		Expect(lines()[0]).To(ContainSubstring("nop"))
		Expect(lines()[1]).To(Equal("Invalid opcode 0xE at PC 0x0000000000000021"))
		Expect(tracer.Count()).To(Equal(1))
	})

	It("should stop at an invalid function code", func() {
		err := run(0, 0x05)

		Expect(err).To(MatchError(insts.ErrInvalidFunctionCode))
		Expect(lines()).To(Equal([]string{
			"Invalid function code 0x5 at PC 0x0000000000000000",
		}))
	})

	It("should report read failures", func() {
		failure := errors.New("device gone")

		err := tracer.Run(insts.NewDecoder(iotest.ErrReader(failure), 0))

		Expect(err).To(MatchError(failure))
		Expect(lines()[0]).To(HavePrefix("Read error:"))
	})
})

var _ = Describe("FormatInstruction", func() {
	It("should format irmovq $1, %rsi", func() {
		inst := &insts.Instruction{
			PC: 8, Opcode: insts.OpIrmovq, Mnemonic: "irmovq", Length: 10,
			RegsValid: true, RA: 0xF, RB: 6,
			ValCValid: true, ValC: 1, ValCBytes: [8]byte{1},
			ValP: 18,
		}

		Expect(trace.FormatInstruction(inst)).To(Equal(
			"PC: 0x0000000000000008  icode: 0x3  ifun: 0x0  irmovq " +
				"  rA: 0xF (none)  rB: 0x6 (%rsi)" +
				"  valC: 0x0000000000000001 [01 00 00 00 00 00 00 00]" +
				"  valP: 0x0000000000000012"))
	})

	It("should format je without register fields", func() {
		inst := &insts.Instruction{
			PC: 0x34, Opcode: insts.OpJXX, Function: 3, Mnemonic: "je", Length: 9,
			ValCValid: true, ValC: 0x3F, ValCBytes: [8]byte{0x3F},
			ValP: 0x3D,
		}

		line := trace.FormatInstruction(inst)
		Expect(line).To(HavePrefix("PC: 0x0000000000000034  icode: 0x7  ifun: 0x3  je     "))
		Expect(line).NotTo(ContainSubstring("rA"))
		Expect(line).To(ContainSubstring("valC: 0x000000000000003F [3F 00 00 00 00 00 00 00]"))
		Expect(line).To(HaveSuffix("valP: 0x000000000000003D"))
	})
})
