// Validate decoder allocation behavior - measures decode throughput and
// allocations per decoded instruction.
package main

import (
	"bytes"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/sarchlab/y86sim/insts"
)

func main() {
	// One loop body of a typical Y86-64 program
	body := []byte{
		0x30, 0xF2, 0x0A, 0, 0, 0, 0, 0, 0, 0, // irmovq $10, %rdx
		0x20, 0x21, // rrmovq %rdx, %rcx
		0x61, 0x12, // subq %rcx, %rdx
		0x50, 0x32, 0x08, 0, 0, 0, 0, 0, 0, 0, // mrmovq 8(%rdx), %rbx
		0x74, 0x00, 0x01, 0, 0, 0, 0, 0, 0, // jne 0x100
		0xA0, 0x2F, // pushq %rdx
		0xB0, 0x3F, // popq %rbx
		0x10, // nop
	}
	const instsPerBody = 8

	iterations := 100000
	code := bytes.Repeat(body, iterations)

	// Warm up
	decodeAll(code[:len(body)*100])

	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	decoded := decodeAll(code)
	elapsed := time.Since(start)

	runtime.ReadMemStats(&m2)

	totalDecodes := iterations * instsPerBody
	allocations := m2.Mallocs - m1.Mallocs
	allocatedBytes := m2.TotalAlloc - m1.TotalAlloc

	fmt.Printf("Decoder Validation Results:\n")
	fmt.Printf("===========================\n")
	fmt.Printf("Total decode operations: %d (decoded %d)\n", totalDecodes, decoded)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(decoded)/elapsed.Seconds())
	fmt.Printf("Allocations: %d\n", allocations)
	fmt.Printf("Allocated bytes: %d\n", allocatedBytes)
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(decoded))
	fmt.Printf("Bytes per decode: %.1f\n", float64(allocatedBytes)/float64(decoded))

	if decoded != totalDecodes {
		fmt.Printf("\nFAIL: expected %d instructions, decoded %d\n", totalDecodes, decoded)
	} else if float64(allocations)/float64(decoded) <= 1.0 {
		fmt.Printf("\nOK: at most one allocation (the record) per decode\n")
	} else {
		fmt.Printf("\nWARNING: High allocation rate detected\n")
	}
}

func decodeAll(code []byte) int {
	decoder := insts.NewDecoder(bytes.NewReader(code), 0)

	n := 0
	for {
		_, err := decoder.Next()
		if err == io.EOF {
			return n
		}
		if err != nil {
			fmt.Printf("decode error: %v\n", err)
			return n
		}
		n++
	}
}
