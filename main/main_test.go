/*
File    : yalc/main/main_test.go
Package : main
*/
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yal-lang/yalc/config"
)

// TestRunCompile_WellFormedSource_WritesMixalFile exercises the
// non-exiting success path of runCompile directly, since the function
// itself calls os.Exit(1) on failure and can't be driven through a
// failing case without terminating the test binary.
func TestRunCompile_WellFormedSource_WritesMixalFile(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "prog.yal")
	require.NoError(t, os.WriteFile(srcPath, []byte(`{ var x: int; x = 1; print x; }`), 0o644))

	cfg := config.Default()
	cfg.OutputDir = dir
	runCompile(cfg, []string{srcPath})

	out, err := os.ReadFile(filepath.Join(dir, "prog.mixal"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "ORIG")
	assert.Contains(t, string(out), "END")
}
