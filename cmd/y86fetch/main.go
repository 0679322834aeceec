// Package main provides the entry point for y86fetch, which runs the Y86-64
// fetch stage over an object file and prints what it decodes.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/y86sim/cache"
	"github.com/sarchlab/y86sim/insts"
	"github.com/sarchlab/y86sim/loader"
	"github.com/sarchlab/y86sim/trace"
)

var (
	icache     = flag.Bool("icache", false, "Fetch through the instruction cache model")
	configPath = flag.String("config", "", "Path to instruction cache configuration JSON file")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if flag.NArg() < 1 || flag.NArg() > 2 {
		fmt.Fprintf(os.Stderr, "Usage: y86fetch [options] <objectfile> [startingOffset]\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		atexit.Exit(1)
	}

	opts := options{
		path:   flag.Arg(0),
		offset: flag.Arg(1),
		icache: *icache,
	}

	if *configPath != "" {
		config, err := cache.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading cache config: %v\n", err)
			atexit.Exit(1)
		}
		opts.cacheConfig = config
	}

	atexit.Exit(run(opts, os.Stdout))
}

type options struct {
	path        string
	offset      string
	icache      bool
	cacheConfig *cache.Config
}

// run fetches every instruction of the object file and returns the process
// exit code.
func run(opts options, out io.Writer) int {
	var pc uint64
	if opts.offset != "" {
		var err error
		pc, err = loader.ParseOffset(opts.offset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid offset on command line: %v\n", err)
			return 1
		}
	}

	var (
		src io.Reader
		ic  *cache.Cache
	)

	if opts.icache {
		prog, err := loader.Load(opts.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open: %s: %v\n", opts.path, err)
			return 1
		}

		config := opts.cacheConfig
		if config == nil {
			config = cache.DefaultConfig()
		}
		if err := config.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid cache config: %v\n", err)
			return 1
		}

		ic = cache.New(*config, prog)
		src = cache.NewReader(ic, pc, prog.Size())
		slog.Debug("loaded object image", "path", prog.Path, "size", prog.Size())
	} else {
		f, err := loader.OpenAt(opts.path, pc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open: %s: %v\n", opts.path, err)
			return 1
		}
		atexit.Register(func() { _ = f.Close() })
		src = f
	}

	fmt.Fprintf(out, "Opened %s, starting offset 0x%016X\n", opts.path, pc)

	tracer := trace.NewTracer(out)
	err := tracer.Run(insts.NewDecoder(src, pc))

	slog.Debug("fetch finished", "instructions", tracer.Count())

	if ic != nil {
		printCacheStats(out, ic.Stats())
	}

	if err != nil {
		return 1
	}
	return 0
}

func printCacheStats(out io.Writer, stats cache.Statistics) {
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Instruction cache:\n")
	fmt.Fprintf(out, "  Reads:    %d\n", stats.Reads)
	fmt.Fprintf(out, "  Hits:     %d\n", stats.Hits)
	fmt.Fprintf(out, "  Misses:   %d\n", stats.Misses)
	fmt.Fprintf(out, "  Hit rate: %5.1f%%\n", 100.0*stats.HitRate())
	fmt.Fprintf(out, "  Cycles:   %d\n", stats.Cycles)
}
