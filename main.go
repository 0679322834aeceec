// Package main provides the entry point for y86sim.
// y86sim implements the fetch/decode stage of a Y86-64 simulator.
//
// For the full CLI, use: go run ./cmd/y86fetch
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("y86sim - Y86-64 fetch stage")
	fmt.Println("")
	fmt.Println("Usage: y86fetch [options] <objectfile> [startingOffset]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -icache    Fetch through the instruction cache model")
	fmt.Println("  -config    Path to instruction cache configuration JSON file")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/y86fetch' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/y86fetch' instead.")
	}
}
