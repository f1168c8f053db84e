/*
File    : yalc/codegen/generator.go
Package : codegen
*/

// Package codegen lowers an accepted, semantically-checked YAL AST into
// MIXAL. It owns the output emitter, the vtable, the scratch-cell
// watermark, the loop-label stack, and the label generator: all the
// mutable state scoped to a single compiler instance.
package codegen

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/yal-lang/yalc/ast"
	"github.com/yal-lang/yalc/lexer"
	"github.com/yal-lang/yalc/mixal"
)

// instructionsOrigin is the fixed memory address generated code is
// assembled at (`ORIG 2000` / `END 2000`).
const instructionsOrigin = 2000

// loopLabels is a loop-label-stack entry: where `continue` and `break`
// jump to within the loop currently being lowered.
type loopLabels struct {
	continueLabel string
	breakLabel    string
}

// Generator walks an AST and emits MIXAL through an Emitter. Address 0
// is permanently reserved as a scratch/staging cell; variable and
// general-case scratch addresses are allocated from the same
// sequentially-growing pool starting at 1, since declarations always
// precede statements in YAL's grammar.
type Generator struct {
	emitter mixal.Emitter

	vtable   map[string]int
	nextAddr int

	loopStack *arraystack.Stack

	labelCounter int
}

// New builds a Generator writing to emitter.
func New(emitter mixal.Emitter) *Generator {
	return &Generator{
		emitter:   emitter,
		vtable:    make(map[string]int),
		nextAddr:  1,
		loopStack: arraystack.New(),
	}
}

// Generate lowers the root PROGRAM node (program.Children[0] of a
// Parser.Parse() root, or the PROGRAM node itself) and closes the
// emitter. It returns the first codegen-internal invariant violation, if
// any (a vtable miss, an empty loop stack on break/continue, or
// similar), all of which indicate a program that should have been
// rejected earlier by the parser or semantic analyzer.
func (g *Generator) Generate(program *ast.Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("codegen: %v", r)
		}
	}()

	g.emit(mixal.ORIG, fmt.Sprintf("%d", instructionsOrigin))
	for _, child := range program.Children {
		g.lowerTopLevel(child)
	}
	g.emit(mixal.END, fmt.Sprintf("%d", instructionsOrigin))
	return g.emitter.Close()
}

func (g *Generator) lowerTopLevel(node *ast.Node) {
	if node.Value.Kind == lexer.Int {
		g.lowerDeclaration(node)
		return
	}
	g.lowerStatement(node)
}

// lowerDeclaration zero-initializes and binds every identifier in a
// declaration in source order.
func (g *Generator) lowerDeclaration(node *ast.Node) {
	for _, idNode := range node.Children {
		addr := g.nextAddr
		g.emit(mixal.STZ, operand0to5(addr))
		g.vtable[idNode.Value.Name] = addr
		g.nextAddr++
	}
}

// allocScratch and freeScratch implement a stack-discipline scratch
// pool: addresses grow past the last declared variable and are released
// in strict LIFO order aligned with recursion, so the watermark always
// returns to its entry value once a complete expression has been
// lowered.
func (g *Generator) allocScratch() int {
	addr := g.nextAddr
	g.nextAddr++
	return addr
}

func (g *Generator) freeScratch() {
	g.nextAddr--
}

// nextLabel draws a fresh three-letter label (AAA, AAB, ... ABA, ...).
// Deterministic rather than random, so two compilations of the same
// source produce byte-identical output.
func (g *Generator) nextLabel() string {
	n := g.labelCounter
	g.labelCounter++
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var b [3]byte
	for i := 2; i >= 0; i-- {
		b[i] = letters[n%26]
		n /= 26
	}
	return string(b[:])
}

func (g *Generator) emit(m mixal.Mnemonic, operand string) {
	g.emitter.Emit(mixal.Instruction{Mnemonic: m, Operand: operand})
}

func (g *Generator) emitLabeled(label string, m mixal.Mnemonic, operand string) {
	g.emitter.Emit(mixal.Instruction{Label: label, Mnemonic: m, Operand: operand})
}

func (g *Generator) loadID(name string, register mixal.Register) {
	addr, ok := g.vtable[name]
	if !ok {
		panic(fmt.Sprintf("undeclared identifier %q reached codegen", name))
	}
	g.emit(mixal.LoadMnemonic(register), operand0to5(addr))
}

func (g *Generator) addressOf(name string) int {
	addr, ok := g.vtable[name]
	if !ok {
		panic(fmt.Sprintf("undeclared identifier %q reached codegen", name))
	}
	return addr
}

func operand0to5(addr int) string    { return fmt.Sprintf("%d(0:5)", addr) }
func operand0to0(addr int) string    { return fmt.Sprintf("%d(0:0)", addr) }
func operand1to5(addr int) string    { return fmt.Sprintf("%d(1:5)", addr) }
func operand2to3(addr int) string    { return fmt.Sprintf("%d(2:3)", addr) }
func fieldOperand(addr, l, r int) string { return fmt.Sprintf("%d(%d:%d)", addr, l, r) }
