/*
File    : yalc/main/main.go
Package : main
*/

// Package main is the yalc command-line entry point: a whole-program
// YAL-to-MIXAL compiler, plus interactive REPL and TCP server modes.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/yal-lang/yalc/compiler"
	"github.com/yal-lang/yalc/config"
	"github.com/yal-lang/yalc/repl"
)

const (
	version = "v0.1.0"
	prompt  = "yal >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
 __   __ _    _
 \ \ / /(_)  | |
  \ V /  _   | |      YAL -> MIXAL compiler
   \_/  |_|  |_|
`
)

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) < 2 {
		showHelp()
		os.Exit(1)
	}

	cfg := config.Default()
	if path := os.Getenv("YALC_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			redColor.Fprintf(os.Stderr, "could not load config %q: %v\n", path, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	switch os.Args[1] {
	case "--help", "-h":
		showHelp()
	case "--version", "-v":
		cyanColor.Printf("yalc %s\n", version)
	case "compile":
		runCompile(cfg, os.Args[2:])
	case "repl":
		repl.New(banner, version, line, prompt, cfg).Start(os.Stdin, os.Stdout)
	case "server":
		runServer(cfg, os.Args[2:])
	default:
		showHelp()
		os.Exit(1)
	}
}

func runCompile(cfg config.Config, args []string) {
	if len(args) < 1 {
		redColor.Fprintf(os.Stderr, "usage: yalc compile <source-path> [--run]\n")
		os.Exit(1)
	}
	path := args[0]
	run := len(args) > 1 && args[1] == "--run"

	if err := compiler.New(cfg).CompileFile(path, run); err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func runServer(cfg config.Config, args []string) {
	if len(args) < 1 {
		redColor.Fprintf(os.Stderr, "usage: yalc server <port>\n")
		os.Exit(1)
	}
	session := repl.New(banner, version, line, prompt, cfg)
	if err := session.Serve(args[0]); err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	cyanColor.Println("yalc - a YAL to MIXAL whole-program compiler")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	cyanColor.Println("  yalc compile <source-path> [--run]   Compile (and optionally run) a YAL source file")
	cyanColor.Println("  yalc repl                            Start the interactive compiler REPL")
	cyanColor.Println("  yalc server <port>                   Start the REPL over TCP")
	cyanColor.Println("  yalc --help                          Display this help message")
	cyanColor.Println("  yalc --version                       Display version information")
	cyanColor.Println("")
	cyanColor.Println("Set YALC_CONFIG to a YAML config path to override assembler_path/vm_path/output_dir/color.")
}
