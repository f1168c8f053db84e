package repl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yal-lang/yalc/compiler"
	"github.com/yal-lang/yalc/config"
)

func newTestPipeline() *compiler.Pipeline {
	return compiler.New(config.Default())
}

func TestPrintBannerInfo_IncludesPromptlessUsageHints(t *testing.T) {
	r := New("BANNER", "v0.1.0", "----", "yal >>> ", config.Default())
	var buf strings.Builder
	r.PrintBannerInfo(&buf)

	out := buf.String()
	assert.Contains(t, out, "BANNER")
	assert.Contains(t, out, "v0.1.0")
	assert.Contains(t, out, ".exit")
}

func TestCompileAndPrint_WellFormedBlock_EmitsMixal(t *testing.T) {
	r := New("", "", "", "", config.Default())
	pipeline := newTestPipeline()
	var buf strings.Builder

	r.compileAndPrint(&buf, pipeline, `{ var x: int; x = 1; print x; }`)

	assert.Contains(t, buf.String(), "ORIG")
}

func TestCompileAndPrint_SyntaxError_ReportsAndDoesNotPanic(t *testing.T) {
	r := New("", "", "", "", config.Default())
	pipeline := newTestPipeline()
	var buf strings.Builder

	assert.NotPanics(t, func() {
		r.compileAndPrint(&buf, pipeline, `{ var x int; }`)
	})
	assert.Contains(t, buf.String(), "syntactic error")
}
