package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/joshuapare/allockit/internal/logger"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// resetFlags restores every global flag to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose, quiet, jsonOut, logJSON = false, false, false, false
	layoutRaw = false
	checkAllocator = "native"
}

// captureDiagnostics routes logger output into a buffer for the test.
func captureDiagnostics(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	prev := logger.L
	logger.Init(logger.Options{Output: &out})
	t.Cleanup(func() { logger.L = prev })
	return &out
}
