/*
File    : yalc/main.go
Package : main
*/

// A minimal demo binary: compiles the sample program from the
// original implementation's own main() and prints the MIXAL it emits.
// The real command-line driver lives under main/.
package main

import (
	"fmt"
	"os"

	"github.com/yal-lang/yalc/codegen"
	"github.com/yal-lang/yalc/lexer"
	"github.com/yal-lang/yalc/mixal"
	"github.com/yal-lang/yalc/parser"
	"github.com/yal-lang/yalc/semantics"
)

const sampleProgram = `{
	var x, y: int;
	x = 5;
	y = 1 + 4 * 3 - 13;
	print x / y;
}`

func main() {
	tokens, err := lexer.NewLexer(sampleProgram).Tokenize()
	if err != nil {
		fmt.Fprintln(os.Stderr, "lexical error:", err)
		os.Exit(1)
	}

	root, ok := parser.New(tokens).Parse()
	if !ok {
		fmt.Println("Parsing failed")
		return
	}
	fmt.Println("Parsing successful")

	program := root.Children[0]
	violations := semantics.New(program).Run()
	if len(violations) > 0 {
		fmt.Println("Some semantic checks failed")
		for _, v := range violations {
			fmt.Println(" -", v.Error())
		}
		return
	}
	fmt.Println("All semantic checks passed")

	emitter := mixal.NewWriterEmitter(os.Stdout)
	if err := codegen.New(emitter).Generate(program); err != nil {
		fmt.Fprintln(os.Stderr, "codegen error:", err)
		os.Exit(1)
	}
}
