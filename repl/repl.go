/*
File    : yalc/repl/repl.go
Package : repl
*/

// Package repl implements an interactive Read-Compile-Print loop for
// YAL: a block statement on one or more lines, terminated with a blank
// line, compiled to MIXAL and echoed back. There is no evaluator
// in this compiler, so the loop's "result" is the generated assembly
// rather than a computed value.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/yal-lang/yalc/compiler"
	"github.com/yal-lang/yalc/config"
	"github.com/yal-lang/yalc/mixal"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration of an interactive session: the
// banner, prompt and version string printed at startup.
type Repl struct {
	Banner  string
	Version string
	Line    string
	Prompt  string
	Config  config.Config
}

// New builds a Repl.
func New(banner, version, line, prompt string, cfg config.Config) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, Prompt: prompt, Config: cfg}
}

// PrintBannerInfo writes the startup banner and a short usage note.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Enter a YAL block statement, e.g. { var x: int; x = 1; print x; }")
	cyanColor.Fprintf(writer, "%s\n", "A statement may span multiple lines; end it with a blank line")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the loop: read until a blank line, compile the
// accumulated source, print the resulting MIXAL (or the error), repeat.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Prompt,
		Stdin:  io.NopCloser(reader),
		Stdout: writer,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	pipeline := compiler.New(r.Config)

	var pending strings.Builder
	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			return
		}

		trimmed := strings.TrimSpace(line)
		if pending.Len() == 0 && trimmed == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			return
		}

		if trimmed == "" {
			if pending.Len() == 0 {
				continue
			}
			r.compileAndPrint(writer, pipeline, pending.String())
			pending.Reset()
			continue
		}

		pending.WriteString(line)
		pending.WriteByte('\n')
		rl.SaveHistory(line)
	}
}

func (r *Repl) compileAndPrint(writer io.Writer, pipeline *compiler.Pipeline, src string) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", rec)
		}
	}()

	var buf strings.Builder
	emitter := mixal.NewWriterEmitter(&buf)
	// CompileSource's codegen stage closes emitter (flushing buf) on
	// success as part of Generator.Generate; nothing left to flush here.
	if err := pipeline.CompileSource(src, emitter); err != nil {
		redColor.Fprintf(writer, "%v\n", err)
		return
	}
	yellowColor.Fprint(writer, buf.String())
}
