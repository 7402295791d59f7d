package main

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/debugblock"
	"github.com/joshuapare/allockit/internal/logger"
)

var layoutRaw bool

func init() {
	cmd := newLayoutCmd()
	cmd.Flags().BoolVar(&layoutRaw, "raw", false, "Use the alignment and size as given instead of the effective ones")
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <size> [align]",
		Short: "Show the guarded block layout for a request",
		Long: `The layout command prints every region of the block a debug build
allocates for a request: header, padding, sentinels and the user block.

By default the alignment is raised to the platform default and the size is
rounded up to it, exactly as the allocators do. --raw lays out the values as
given. Sizes and alignments accept decimal or 0x-prefixed hex.

Example:
  allocctl layout 100
  allocctl layout 0x1000 64
  allocctl layout 128 2 --raw --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(args)
		},
	}
}

func parseUintptr(what, s string) (uintptr, error) {
	v, err := strconv.ParseUint(s, 0, bits.UintSize)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	return uintptr(v), nil
}

func requestLayout(size, a uintptr, raw bool) (debugblock.Layout, error) {
	if !align.IsZeroOrPow2(a) {
		return debugblock.Layout{}, fmt.Errorf("alignment %d is not a power of two", a)
	}
	planned, err := debugblock.Plan(size, a)
	if err != nil {
		return debugblock.Layout{}, fmt.Errorf("request of %d bytes: %w", size, err)
	}
	if !raw {
		return planned, nil
	}
	if a == 0 {
		return debugblock.Layout{}, fmt.Errorf("--raw requires an explicit alignment")
	}
	// The effective layout bounds the raw one, so it cannot overflow either.
	return debugblock.Describe(size, a), nil
}

func runLayout(args []string) error {
	size, err := parseUintptr("size", args[0])
	if err != nil {
		return err
	}
	var a uintptr
	if len(args) == 2 {
		if a, err = parseUintptr("alignment", args[1]); err != nil {
			return err
		}
	}

	l, err := requestLayout(size, a, layoutRaw)
	if err != nil {
		return err
	}
	printVerbose("Requested %d bytes at alignment %d\n", size, a)
	logger.Debug("layout planned", "size", size, "align", a, "block", l.BlockSize, "raw", layoutRaw)

	if jsonOut {
		return printJSON(l)
	}

	printInfo("Block for %d bytes at alignment %d: %d bytes\n\n", l.Size, l.Align, l.BlockSize)
	printInfo("  %-18s %12s %12s\n", "REGION", "OFFSET", "SIZE")
	for _, r := range l.Regions {
		printInfo("  %-18s %12d %12d\n", r.Name, r.Offset, r.Size)
	}
	printInfo("\n  overhead: %d bytes\n", l.BlockSize-l.Size)
	return nil
}
