// Package insts provides Y86-64 instruction definitions and decoding.
//
// This package implements the fetch/decode stage for Y86-64 object code:
// it splits the header byte into opcode and function code, reads the
// register byte and the 8-byte little-endian immediate when the opcode
// requires them, and validates the encoding.
//
// Usage:
//
//	decoder := insts.NewDecoder(r, 0)
//	for {
//		inst, err := decoder.Next()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
package insts
