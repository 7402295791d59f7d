package main

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/debugblock"
	"github.com/joshuapare/allockit/internal/logger"
	"github.com/joshuapare/allockit/memory"
)

var checkAllocator string

func init() {
	cmd := newCheckCmd()
	cmd.Flags().StringVar(&checkAllocator, "allocator", "native", "Allocator to exercise (native, system)")
	rootCmd.AddCommand(cmd)
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run corruption scenarios against an allocator",
		Long: `The check command corrupts freshly allocated blocks in known ways
(overrun, underrun, double free, releasing through another allocator kind,
releasing with the wrong size) and reports what the detector caught.

Diagnostics are written to standard error as they fire. Detection only exists
in binaries built with -tags debug.

Example:
  go run -tags debug ./cmd/allocctl check
  go run -tags debug ./cmd/allocctl check --allocator system --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}
}

// scenarioSize is the request every scenario starts from.
const scenarioSize = 40

type scenario struct {
	name string
	run  func(a memory.Allocator) error
}

// CheckResult is the outcome of one scenario.
type CheckResult struct {
	Scenario string `json:"scenario"`
	Detected bool   `json:"detected"`
	Kind     string `json:"kind,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// otherKind returns a built-in allocator of a different kind than a.
func otherKind(a memory.Allocator) memory.Allocator {
	if a.Tag() == memory.TagNative {
		return memory.SystemAllocator{}
	}
	return memory.NativeAllocator{}
}

var scenarios = []scenario{
	{
		name: "overrun",
		run: func(a memory.Allocator) error {
			p, err := a.Allocate(scenarioSize, 0)
			if err != nil {
				return err
			}
			*(*byte)(unsafe.Add(p, align.Up(scenarioSize, align.Default))) = 0
			a.Deallocate(p, scenarioSize, 0)
			return nil
		},
	},
	{
		name: "underrun",
		run: func(a memory.Allocator) error {
			p, err := a.Allocate(scenarioSize, 0)
			if err != nil {
				return err
			}
			*(*byte)(unsafe.Add(p, -1)) = 0
			a.Deallocate(p, scenarioSize, 0)
			return nil
		},
	},
	{
		name: "double free",
		run: func(a memory.Allocator) error {
			p, err := a.Allocate(scenarioSize, 0)
			if err != nil {
				return err
			}
			a.Deallocate(p, scenarioSize, 0)
			a.Deallocate(p, scenarioSize, 0)
			return nil
		},
	},
	{
		name: "tag mismatch",
		run: func(a memory.Allocator) error {
			p, err := a.Allocate(scenarioSize, 0)
			if err != nil {
				return err
			}
			otherKind(a).Deallocate(p, scenarioSize, 0)
			return nil
		},
	},
	{
		name: "size mismatch",
		run: func(a memory.Allocator) error {
			p, err := a.Allocate(scenarioSize, 0)
			if err != nil {
				return err
			}
			a.Deallocate(p, 2*scenarioSize, 0)
			return nil
		},
	},
}

func pickAllocator(name string) (memory.Allocator, error) {
	switch name {
	case "native":
		return memory.NativeAllocator{}, nil
	case "system":
		return memory.SystemAllocator{}, nil
	}
	return nil, fmt.Errorf("unknown allocator %q (want native or system)", name)
}

// runScenario executes s and converts a corruption panic into a result.
// Any other panic propagates.
func runScenario(s scenario, a memory.Allocator) (res CheckResult) {
	res.Scenario = s.name
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var cerr *debugblock.CorruptionError
		if err, ok := r.(error); ok && errors.As(err, &cerr) {
			res.Detected = true
			res.Kind = cerr.Kind.String()
			res.Message = cerr.Error()
			logger.Info("scenario detected", "scenario", s.name, "allocator", a.Tag().String(), "kind", res.Kind)
			return
		}
		panic(r)
	}()
	if err := s.run(a); err != nil {
		res.Error = err.Error()
	}
	return res
}

func runChecks(a memory.Allocator) []CheckResult {
	results := make([]CheckResult, 0, len(scenarios))
	for _, s := range scenarios {
		printVerbose("Running %s against the %s allocator\n", s.name, a.Tag())
		logger.Debug("running scenario", "scenario", s.name, "allocator", a.Tag().String())
		results = append(results, runScenario(s, a))
	}
	return results
}

func runCheck() error {
	a, err := pickAllocator(checkAllocator)
	if err != nil {
		return err
	}
	if !memory.DebugBuild {
		logger.Warn("corruption detection compiled out", "allocator", a.Tag().String())
		printInfo("Corruption detection is compiled out of this binary; rebuild with -tags debug.\n")
		return nil
	}

	results := runChecks(a)
	if jsonOut {
		return printJSON(results)
	}

	detected := 0
	for _, r := range results {
		switch {
		case r.Detected:
			detected++
			printInfo("  %-14s %-20s %s\n", r.Scenario, r.Kind, r.Message)
		case r.Error != "":
			printInfo("  %-14s error: %s\n", r.Scenario, r.Error)
		default:
			printInfo("  %-14s not detected\n", r.Scenario)
		}
	}
	printInfo("\n%d of %d scenarios detected on the %s allocator\n", detected, len(results), a.Tag())
	return nil
}
