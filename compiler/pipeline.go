/*
File    : yalc/compiler/pipeline.go
Package : compiler
*/

// Package compiler wires the lexer, parser, semantic analyzer and code
// generator into a single driver: one source file in, a MIXAL file on
// disk, and an optional run through the external VM.
package compiler

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/yal-lang/yalc/codegen"
	"github.com/yal-lang/yalc/config"
	"github.com/yal-lang/yalc/lexer"
	"github.com/yal-lang/yalc/mixal"
	"github.com/yal-lang/yalc/parser"
	"github.com/yal-lang/yalc/semantics"
)

// Pipeline runs the full YAL-to-MIXAL compile, and optionally the
// assemble-and-run step, for one source at a time. It carries no state
// across calls to CompileSource/CompileFile, so a single Pipeline can
// be shared by a REPL or TCP server across connections provided each
// connection only drives it sequentially; the ambient `repl` server
// instead gives each connection its own Pipeline to avoid any need for
// that restriction.
type Pipeline struct {
	cfg config.Config
}

// New builds a Pipeline from cfg.
func New(cfg config.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// CompileSource runs lexing, parsing, semantic analysis and code
// generation over src, writing the generated MIXAL to w. It returns the
// first error encountered, annotated with which stage produced it.
func (p *Pipeline) CompileSource(src string, w mixal.Emitter) error {
	tokens, err := lexer.NewLexer(src).Tokenize()
	if err != nil {
		return fmt.Errorf("lexical error: %w", err)
	}

	root, ok := parser.New(tokens).Parse()
	if !ok {
		return fmt.Errorf("syntactic error: parsing failed")
	}

	program := root.Children[0]
	violations := semantics.New(program).Run()
	if len(violations) > 0 {
		lines := make([]string, len(violations))
		for i, v := range violations {
			lines[i] = v.Error()
		}
		return fmt.Errorf("semantic error:\n%s", strings.Join(lines, "\n"))
	}

	if err := codegen.New(w).Generate(program); err != nil {
		return fmt.Errorf("codegen error: %w", err)
	}
	return nil
}

// CompileFile compiles the YAL source at path to a sibling .mixal file
// (or a file of the same base name under cfg.OutputDir, if set). When
// run is true, it then assembles and executes the result via the
// configured external mixasm/mixvm binaries, streaming the VM's stdout
// to stdout.
func (p *Pipeline) CompileFile(path string, run bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", path, err)
	}

	mixalPath := p.siblingPath(path, ".mixal")
	emitter, err := mixal.NewFileEmitter(mixalPath)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", mixalPath, err)
	}

	if err := p.CompileSource(string(src), emitter); err != nil {
		return err
	}

	if !run {
		return nil
	}
	return p.assembleAndRun(mixalPath)
}

// siblingPath renames path's extension to ext, relocating it under
// cfg.OutputDir when one is configured.
func (p *Pipeline) siblingPath(path, ext string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ext
	if p.cfg.OutputDir == "" {
		return filepath.Join(filepath.Dir(path), base)
	}
	return filepath.Join(p.cfg.OutputDir, base)
}

// assembleAndRun shells out to the configured assembler to produce a
// binary, then to the configured VM to execute it. Both subprocesses
// run synchronously and inherit this process's environment; their
// stdout/stderr are connected directly to ours.
func (p *Pipeline) assembleAndRun(mixalPath string) error {
	binPath := p.siblingPath(mixalPath, ".bin")

	asm := exec.Command(p.cfg.AssemblerPath, mixalPath, binPath)
	asm.Stdout = os.Stdout
	asm.Stderr = os.Stderr
	if err := asm.Run(); err != nil {
		return fmt.Errorf("external command failure: %s: %w", p.cfg.AssemblerPath, err)
	}

	vm := exec.Command(p.cfg.VMPath, "--run", binPath)
	vm.Stdout = os.Stdout
	vm.Stderr = os.Stderr
	if err := vm.Run(); err != nil {
		return fmt.Errorf("external command failure: %s: %w", p.cfg.VMPath, err)
	}
	return nil
}
