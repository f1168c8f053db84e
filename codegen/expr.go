/*
File    : yalc/codegen/expr.go
Package : codegen
*/

package codegen

import (
	"fmt"

	"github.com/yal-lang/yalc/ast"
	"github.com/yal-lang/yalc/lexer"
	"github.com/yal-lang/yalc/mixal"
)

// lowerExpr leaves its result in RA. Logical &&/|| and unary ! always
// get their own short-circuit/materializing control flow; every other
// binary operator goes through the leaf/leaf-pair fast path when both
// operands are leaves, or the general recursive case otherwise.
func (g *Generator) lowerExpr(node *ast.Node) {
	switch node.Value.Kind {
	case lexer.Num:
		g.enterImmediate(node.Value.Num, mixal.RA)
		return
	case lexer.Id:
		g.loadID(node.Value.Name, mixal.RA)
		return
	case lexer.And:
		g.lowerAnd(node)
		return
	case lexer.Or:
		g.lowerOr(node)
		return
	case lexer.ExclamationMark:
		g.lowerNot(node)
		return
	}

	left, right := node.Children[0], node.Children[1]
	if left.IsLeaf() && right.IsLeaf() {
		g.lowerLeafPair(node.Value.Kind, left, right)
		return
	}
	g.lowerGeneral(node.Value.Kind, left, right)
}

// lowerLeafPair dispatches on operator class, since division/modulo
// need the dividend staged across RA:RX while every other operator
// just needs the right operand made addressable.
func (g *Generator) lowerLeafPair(kind lexer.Kind, left, right *ast.Node) {
	switch kind {
	case lexer.Slash, lexer.Percent:
		addr := g.stageDivModLeafPair(left, right)
		g.applyDivMod(kind, addr)
	case lexer.Plus, lexer.Minus, lexer.Asterisk:
		addr := g.stageLeafPair(left, right)
		g.applyArithmetic(kind, addr)
	default:
		addr := g.stageLeafPair(left, right)
		g.applyComparison(kind, addr)
	}
}

// stageLeafPair leaves the left operand's value in RA and returns the
// memory address the right operand's value is available at, covering
// the four (Num,Num)/(Id,Id)/(Num,Id)/(Id,Num) combinations.
func (g *Generator) stageLeafPair(left, right *ast.Node) int {
	switch {
	case left.Value.Kind == lexer.Num && right.Value.Kind == lexer.Num:
		g.enterImmediate(right.Value.Num, mixal.RA)
		g.emit(mixal.STA, operand0to5(0))
		g.enterImmediate(left.Value.Num, mixal.RA)
		return 0
	case left.Value.Kind == lexer.Id && right.Value.Kind == lexer.Id:
		g.loadID(left.Value.Name, mixal.RA)
		return g.addressOf(right.Value.Name)
	case left.Value.Kind == lexer.Num && right.Value.Kind == lexer.Id:
		g.enterImmediate(left.Value.Num, mixal.RA)
		return g.addressOf(right.Value.Name)
	default: // Id, Num
		g.enterImmediate(right.Value.Num, mixal.RA)
		g.emit(mixal.STA, operand0to5(0))
		g.loadID(left.Value.Name, mixal.RA)
		return 0
	}
}

// stageDivModLeafPair stages the dividend across RA (sign byte only)
// and RX (full magnitude) and returns the divisor's address, covering
// the four divide/modulo combinations. A literal Num dividend never
// needs a sign load (the lexer only ever produces non-negative Nums),
// so those branches enter 0 into RA directly instead of reading memory.
// The literal dividend is entered first, since a large literal is built
// through RA and scratch cell 0.
func (g *Generator) stageDivModLeafPair(left, right *ast.Node) int {
	switch {
	case left.Value.Kind == lexer.Num && right.Value.Kind == lexer.Num:
		g.enterImmediate(left.Value.Num, mixal.RX)
		g.enterImmediate(right.Value.Num, mixal.RA)
		g.emit(mixal.STA, operand0to5(0))
		g.enterImmediate(0, mixal.RA)
		return 0
	case left.Value.Kind == lexer.Id && right.Value.Kind == lexer.Id:
		leftAddr := g.addressOf(left.Value.Name)
		g.loadID(left.Value.Name, mixal.RX)
		g.enterImmediate(0, mixal.RA)
		g.emit(mixal.LoadMnemonic(mixal.RA), operand0to0(leftAddr))
		return g.addressOf(right.Value.Name)
	case left.Value.Kind == lexer.Num && right.Value.Kind == lexer.Id:
		g.enterImmediate(left.Value.Num, mixal.RX)
		g.enterImmediate(0, mixal.RA)
		return g.addressOf(right.Value.Name)
	default: // Id, Num
		leftAddr := g.addressOf(left.Value.Name)
		g.enterImmediate(right.Value.Num, mixal.RA)
		g.emit(mixal.STA, operand0to5(0))
		g.enterImmediate(0, mixal.RA)
		g.emit(mixal.LoadMnemonic(mixal.RA), operand0to0(leftAddr))
		g.loadID(left.Value.Name, mixal.RX)
		return 0
	}
}

// lowerGeneral evaluates the right subtree first (result in RA),
// stashes it at a freshly allocated scratch cell, evaluates the left
// subtree (result in RA), applies the operator, then releases the
// scratch cell. This is the general case, used whenever either operand
// is not itself a leaf.
func (g *Generator) lowerGeneral(kind lexer.Kind, left, right *ast.Node) {
	g.lowerExpr(right)
	t := g.allocScratch()
	g.emit(mixal.STA, operand0to5(t))
	g.lowerExpr(left)

	switch kind {
	case lexer.Plus, lexer.Minus, lexer.Asterisk:
		g.applyArithmetic(kind, t)
	case lexer.Slash, lexer.Percent:
		g.stageDividendFromRA()
		g.applyDivMod(kind, t)
	default:
		g.applyComparison(kind, t)
	}
	g.freeScratch()
}

// stageDividendFromRA converts a value already sitting in RA into the
// RA(sign):RX(magnitude) dividend form DIV requires, staging through
// scratch cell 0.
func (g *Generator) stageDividendFromRA() {
	g.emit(mixal.STA, operand0to5(0))
	g.enterImmediate(0, mixal.RA)
	g.emit(mixal.LoadMnemonic(mixal.RA), operand0to0(0))
	g.emit(mixal.LoadMnemonic(mixal.RX), operand0to5(0))
}

func (g *Generator) applyArithmetic(kind lexer.Kind, addr int) {
	switch kind {
	case lexer.Plus:
		g.emit(mixal.ADD, operand0to5(addr))
	case lexer.Minus:
		g.emit(mixal.SUB, operand0to5(addr))
	case lexer.Asterisk:
		g.emit(mixal.MUL, operand0to5(addr))
		g.mulFixup()
	}
}

// mulFixup recombines MUL's RA:RX product (high:low) into a single
// word, preserving RA's sign byte. Overflow is left unchecked.
func (g *Generator) mulFixup() {
	g.emit(mixal.StoreMnemonic(mixal.RA), operand0to0(0))
	g.emit(mixal.StoreMnemonic(mixal.RX), operand1to5(0))
	g.emit(mixal.LoadMnemonic(mixal.RA), operand0to5(0))
}

func (g *Generator) applyDivMod(kind lexer.Kind, addr int) {
	g.emit(mixal.DIV, operand0to5(addr))
	if kind == lexer.Percent {
		g.emit(mixal.StoreMnemonic(mixal.RX), operand0to5(0))
		g.emit(mixal.LoadMnemonic(mixal.RA), operand0to5(0))
	}
}

// applyComparison materializes 1 or 0 into RA via CMPA plus the
// appropriate conditional jump.
func (g *Generator) applyComparison(kind lexer.Kind, addr int) {
	g.emit(mixal.CMPA, operand0to5(addr))
	done := g.nextLabel()
	g.emit(mixal.EnterMnemonic(mixal.RA, 1), "1")
	g.emitLabeled("", comparisonJump(kind), done)
	g.emit(mixal.EnterMnemonic(mixal.RA, 0), "0")
	g.emitLabeled(done, mixal.NOP, "")
}

func comparisonJump(kind lexer.Kind) mixal.Mnemonic {
	switch kind {
	case lexer.Equals:
		return mixal.JE
	case lexer.NotEquals:
		return mixal.JNE
	case lexer.LessThan:
		return mixal.JL
	case lexer.LessThanOrEqual:
		return mixal.JLE
	case lexer.GreaterThan:
		return mixal.JG
	case lexer.GreaterThanOrEqual:
		return mixal.JGE
	default:
		panic("codegen: not a comparison operator")
	}
}

// lowerAnd short-circuits: if the left operand is zero, the result is
// zero without evaluating the right operand at all.
func (g *Generator) lowerAnd(node *ast.Node) {
	left, right := node.Children[0], node.Children[1]
	g.lowerExpr(left)
	zero := g.nextLabel()
	done := g.nextLabel()

	g.emit(mixal.STZ, operand0to5(0))
	g.emit(mixal.CMPA, operand0to5(0))
	g.emitLabeled("", mixal.JE, zero)

	g.lowerExpr(right)
	g.emit(mixal.STZ, operand0to5(0))
	g.emit(mixal.CMPA, operand0to5(0))
	g.emitLabeled("", mixal.JE, zero)

	g.emit(mixal.EnterMnemonic(mixal.RA, 1), "1")
	g.emitLabeled("", mixal.JSJ, done)
	g.emitLabeled(zero, mixal.EnterMnemonic(mixal.RA, 0), "0")
	g.emitLabeled(done, mixal.NOP, "")
}

// lowerOr short-circuits: if the left operand is non-zero, the result
// is one without evaluating the right operand.
func (g *Generator) lowerOr(node *ast.Node) {
	left, right := node.Children[0], node.Children[1]
	g.lowerExpr(left)
	truthy := g.nextLabel()
	falsy := g.nextLabel()
	done := g.nextLabel()

	g.emit(mixal.STZ, operand0to5(0))
	g.emit(mixal.CMPA, operand0to5(0))
	g.emitLabeled("", mixal.JNE, truthy)

	g.lowerExpr(right)
	g.emit(mixal.STZ, operand0to5(0))
	g.emit(mixal.CMPA, operand0to5(0))
	g.emitLabeled("", mixal.JE, falsy)

	g.emitLabeled(truthy, mixal.EnterMnemonic(mixal.RA, 1), "1")
	g.emitLabeled("", mixal.JSJ, done)
	g.emitLabeled(falsy, mixal.EnterMnemonic(mixal.RA, 0), "0")
	g.emitLabeled(done, mixal.NOP, "")
}

// lowerNot: `!x` emits STZ/CMPA/ENTA1/JE/ENTA0/NOP, with a generated,
// not literal, END label. Unary `-x` never reaches here; the parser
// already rewrote it to Asterisk(Num(0), x).
func (g *Generator) lowerNot(node *ast.Node) {
	g.lowerExpr(node.Children[0])
	g.emit(mixal.STZ, operand0to5(0))
	g.emit(mixal.CMPA, operand0to5(0))
	g.emit(mixal.EnterMnemonic(mixal.RA, 1), "1")
	done := g.nextLabel()
	g.emitLabeled("", mixal.JE, done)
	g.emit(mixal.EnterMnemonic(mixal.RA, 0), "0")
	g.emitLabeled(done, mixal.NOP, "")
}

// enterImmediate handles both the direct single-instruction case
// (values fitting the 12-bit ENTA/ENTX/ENT1 field) and multi-step
// construction for larger literals. Negative values only ever arise
// from the lexer's non-negative-literal invariant plus the parser's -x
// rewrite, so multi-step construction never needs to special-case a
// sign.
func (g *Generator) enterImmediate(value int64, register mixal.Register) {
	if value > -4096 && value < 4096 {
		abs := value
		if abs < 0 {
			abs = -abs
		}
		g.emit(mixal.EnterMnemonic(register, value), fmt.Sprintf("%d", abs))
		return
	}
	g.emitMultiStepImmediate(0, value)
	g.emit(mixal.LoadMnemonic(register), operand0to5(0))
}

func (g *Generator) emitMultiStepImmediate(cell int, value int64) {
	g.emit(mixal.STZ, operand0to5(cell))
	low := value & 0xFFF
	g.emit(mixal.EnterMnemonic(mixal.RA, low), fmt.Sprintf("%d", low))
	g.emit(mixal.StoreMnemonic(mixal.RA), fieldOperand(cell, 4, 5))

	value >>= 12
	mid := value & 0xFFF
	g.emit(mixal.EnterMnemonic(mixal.RA, mid), fmt.Sprintf("%d", mid))
	g.emit(mixal.StoreMnemonic(mixal.RA), fieldOperand(cell, 2, 3))

	value >>= 12
	if value > 0 {
		high := value & 0x3F
		g.emit(mixal.EnterMnemonic(mixal.RA, high), fmt.Sprintf("%d", high))
		g.emit(mixal.StoreMnemonic(mixal.RA), fieldOperand(cell, 1, 1))
	}
}
