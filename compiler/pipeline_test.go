package compiler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yal-lang/yalc/config"
	"github.com/yal-lang/yalc/mixal"
)

func TestCompileSource_WellFormedProgram_EmitsMixal(t *testing.T) {
	p := New(config.Default())
	var buf bytes.Buffer
	emitter := mixal.NewWriterEmitter(&buf)

	err := p.CompileSource(`{ var x: int; x = 41; print x + 1; }`, emitter)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, " ORIG 2000\n"))
	assert.Contains(t, out, "END")
}

func TestCompileSource_SyntaxError_ReportsStage(t *testing.T) {
	p := New(config.Default())
	var buf bytes.Buffer
	err := p.CompileSource(`{ var x: int x = 1; }`, mixal.NewWriterEmitter(&buf))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntactic error")
}

func TestCompileSource_SemanticError_ReportsViolations(t *testing.T) {
	p := New(config.Default())
	var buf bytes.Buffer
	err := p.CompileSource(`{ var a: int; var a: int; }`, mixal.NewWriterEmitter(&buf))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "semantic error")
	assert.Contains(t, err.Error(), "re-declaration")
}

func TestSiblingPath_DefaultOutputDir_StaysAlongsideSource(t *testing.T) {
	p := New(config.Default())
	assert.Equal(t, "/tmp/prog.mixal", p.siblingPath("/tmp/prog.yal", ".mixal"))
}

func TestSiblingPath_ConfiguredOutputDir_Relocates(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = "/out"
	p := New(cfg)
	assert.Equal(t, "/out/prog.mixal", p.siblingPath("/tmp/prog.yal", ".mixal"))
}
