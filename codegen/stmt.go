/*
File    : yalc/codegen/stmt.go
Package : codegen
*/

package codegen

import (
	"github.com/yal-lang/yalc/ast"
	"github.com/yal-lang/yalc/lexer"
	"github.com/yal-lang/yalc/mixal"
)

func (g *Generator) lowerStatement(node *ast.Node) {
	switch node.Value.Kind {
	case lexer.Assign, lexer.PlusAssign, lexer.MinusAssign, lexer.TimesAssign, lexer.DivideAssign, lexer.ModuloAssign:
		g.lowerAssignment(node)
	case lexer.Print:
		g.lowerPrint(node)
	case lexer.If:
		g.lowerIf(node)
	case lexer.While:
		g.lowerWhile(node)
	case lexer.For:
		g.lowerFor(node)
	case lexer.Break:
		g.lowerBreak()
	case lexer.Continue:
		g.lowerContinue()
	case lexer.Ast:
		g.lowerBlockLike(node)
	default:
		panic("codegen: unrecognized statement node " + node.Value.String())
	}
}

// lowerBlockLike handles the synthetic grouping nodes the parser
// introduces: BLOCK and SINGLE_BLOCK hold ordered statement children;
// EMPTY_STMT (a bare `;`) lowers to nothing.
func (g *Generator) lowerBlockLike(node *ast.Node) {
	switch node.Value.Tag {
	case "BLOCK", "SINGLE_BLOCK":
		for _, child := range node.Children {
			g.lowerStatement(child)
		}
	case "EMPTY_STMT":
		// no-op
	default:
		panic("codegen: unrecognized Ast marker " + node.Value.Tag)
	}
}

// lowerAssignment covers both `=` and the compound forms. A compound
// assignment is rewritten to `x = x <op> rhs` and lowered as a plain
// assignment.
func (g *Generator) lowerAssignment(node *ast.Node) {
	idNode := node.Children[0]
	rhs := node.Children[1]
	addr := g.addressOf(idNode.Value.Name)

	if node.Value.Kind == lexer.Assign {
		g.lowerExpr(rhs)
	} else {
		op := compoundToBinaryOp(node.Value.Kind)
		synthetic := ast.New(ast.NextSyntheticID(), lexer.NewToken(op, idNode.Value.Line, idNode.Value.Column))
		synthetic.AddChild(ast.New(ast.NextSyntheticID(), idNode.Value))
		synthetic.AddChild(rhs)
		g.lowerExpr(synthetic)
	}
	g.emit(mixal.StoreMnemonic(mixal.RA), operand0to5(addr))
}

func compoundToBinaryOp(kind lexer.Kind) lexer.Kind {
	switch kind {
	case lexer.PlusAssign:
		return lexer.Plus
	case lexer.MinusAssign:
		return lexer.Minus
	case lexer.TimesAssign:
		return lexer.Asterisk
	case lexer.DivideAssign:
		return lexer.Slash
	case lexer.ModuloAssign:
		return lexer.Percent
	default:
		panic("codegen: not a compound assignment operator")
	}
}

// lowerIf emits the condition test and both branches, using an ELSE/END
// label pair with generated, not literal, label names.
func (g *Generator) lowerIf(node *ast.Node) {
	cond := node.Children[0]
	thenBlock := node.Children[1]

	g.lowerExpr(cond)
	elseLabel := g.nextLabel()
	endLabel := g.nextLabel()
	g.emit(mixal.STZ, operand0to5(0))
	g.emit(mixal.CMPA, operand0to5(0))
	g.emitLabeled("", mixal.JE, elseLabel)
	g.lowerStatement(thenBlock)
	g.emitLabeled("", mixal.JSJ, endLabel)
	g.emitLabeled(elseLabel, mixal.NOP, "")
	if len(node.Children) > 2 {
		elseWrap := node.Children[2]
		if len(elseWrap.Children) > 0 {
			g.lowerStatement(elseWrap.Children[0])
		}
	}
	g.emitLabeled(endLabel, mixal.NOP, "")
}

// lowerWhile pushes (EVAL, EXIT) onto the loop-label stack for the
// duration of the body.
func (g *Generator) lowerWhile(node *ast.Node) {
	cond := node.Children[0]
	body := node.Children[1]

	evalLabel := g.nextLabel()
	exitLabel := g.nextLabel()

	g.emitLabeled(evalLabel, mixal.NOP, "")
	g.lowerExpr(cond)
	g.emit(mixal.STZ, operand0to5(0))
	g.emit(mixal.CMPA, operand0to5(0))
	g.emitLabeled("", mixal.JE, exitLabel)

	g.loopStack.Push(loopLabels{continueLabel: evalLabel, breakLabel: exitLabel})
	g.lowerStatement(body)
	g.loopStack.Pop()

	g.emitLabeled("", mixal.JSJ, evalLabel)
	g.emitLabeled(exitLabel, mixal.NOP, "")
}

// lowerFor pushes (CONT, EXIT), not (EVAL, EXIT), so that `continue`
// still runs the step before re-testing the condition.
func (g *Generator) lowerFor(node *ast.Node) {
	initSimp := node.Children[0]
	cond := node.Children[1]
	stepSimp := node.Children[2]
	body := node.Children[3]

	g.lowerStatement(initSimp)

	evalLabel := g.nextLabel()
	contLabel := g.nextLabel()
	exitLabel := g.nextLabel()

	g.emitLabeled(evalLabel, mixal.NOP, "")
	g.lowerExpr(cond)
	g.emit(mixal.STZ, operand0to5(0))
	g.emit(mixal.CMPA, operand0to5(0))
	g.emitLabeled("", mixal.JE, exitLabel)

	g.loopStack.Push(loopLabels{continueLabel: contLabel, breakLabel: exitLabel})
	g.lowerStatement(body)
	g.loopStack.Pop()

	g.emitLabeled(contLabel, mixal.NOP, "")
	g.lowerStatement(stepSimp)
	g.emitLabeled("", mixal.JSJ, evalLabel)
	g.emitLabeled(exitLabel, mixal.NOP, "")
}

func (g *Generator) lowerBreak() {
	top := g.currentLoop()
	g.emitLabeled("", mixal.JSJ, top.breakLabel)
}

func (g *Generator) lowerContinue() {
	top := g.currentLoop()
	g.emitLabeled("", mixal.JSJ, top.continueLabel)
}

func (g *Generator) currentLoop() loopLabels {
	raw, ok := g.loopStack.Peek()
	if !ok {
		panic("codegen: break/continue with an empty loop-label stack")
	}
	return raw.(loopLabels)
}

// lowerPrint converts the expression's value to decimal character
// codes via CHAR, stages both result words into fresh scratch cells,
// overwrites the first word's sign byte with a literal space/minus
// marker chosen by testing the value's sign with JAN, and emits a
// single OUT.
func (g *Generator) lowerPrint(node *ast.Node) {
	g.lowerExpr(node.Children[0])
	g.emit(mixal.STA, operand0to5(0))
	g.emit(mixal.LoadMnemonic(mixal.RA), operand1to5(0))
	g.emitLabeled("", mixal.CHAR, "")

	cell1 := g.allocScratch()
	cell2 := g.allocScratch()
	g.emit(mixal.StoreMnemonic(mixal.RA), operand0to5(cell1))
	g.emit(mixal.StoreMnemonic(mixal.RX), operand0to5(cell2))

	g.emit(mixal.LoadMnemonic(mixal.RA), operand0to5(0))
	negLabel := g.nextLabel()
	doneLabel := g.nextLabel()
	g.emitLabeled("", mixal.JAN, negLabel)
	g.emit(mixal.EnterMnemonic(mixal.RA, 44), "44")
	g.emitLabeled("", mixal.JSJ, doneLabel)
	g.emitLabeled(negLabel, mixal.EnterMnemonic(mixal.RA, 45), "45")
	g.emitLabeled(doneLabel, mixal.NOP, "")
	g.emit(mixal.StoreMnemonic(mixal.RA), operand0to0(cell1))

	g.emit(mixal.OUT, operand2to3(cell1))

	g.freeScratch()
	g.freeScratch()
}
