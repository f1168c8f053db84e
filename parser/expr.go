/*
File    : yalc/parser/expr.go
Package : parser
*/

package parser

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/yal-lang/yalc/ast"
	"github.com/yal-lang/yalc/lexer"
)

// operand is a leaf-or-already-built subexpression found while scanning
// a matched expression's token range (parens themselves never produce
// an operand).
type operand struct {
	node *ast.Node
}

// operator is a binary operator token found between two operands in a
// matched expression's token range.
type operator struct {
	index int
	token lexer.Token
}

// constructExpression rebuilds the left-associative operator tree for
// the expression spanning tokens [start, end) with a two-stack shunting
// pass: walk the range collecting operands (literals, identifiers, and
// already-indexed subexpressions) and operators (skipping parentheses,
// which carry no node of their own), then fold left-to-right. Every
// precedence level in the grammar funnels through here once it knows its
// own span, so a single fold handles every operator regardless of
// precedence; the grammar already guaranteed only same-or-tighter
// precedence operators appear in one call's range.
func (p *Parser) constructExpression(start, end int) {
	var operands []operand
	var operators []operator

	for idx := start; idx < end; {
		if entry, ok := p.lookup(idx); ok {
			operands = append(operands, operand{node: entry.node})
			idx = entry.end
			continue
		}
		tok := p.tokenAt(idx)
		switch tok.Kind {
		case lexer.LeftParen, lexer.RightParen:
			idx++
		case lexer.Num, lexer.Id:
			operands = append(operands, operand{node: ast.New(idx, tok)})
			idx++
		default:
			operators = append(operators, operator{index: idx, token: tok})
			idx++
		}
	}

	if len(operands) == 0 {
		return
	}

	// Push in reverse so Pop() yields operands/operators in their
	// original left-to-right order.
	operandStack := arraystack.New()
	for i := len(operands) - 1; i >= 0; i-- {
		operandStack.Push(operands[i])
	}
	operatorStack := arraystack.New()
	for i := len(operators) - 1; i >= 0; i-- {
		operatorStack.Push(operators[i])
	}

	leftRaw, _ := operandStack.Pop()
	left := leftRaw.(operand).node

	for !operatorStack.Empty() {
		opRaw, _ := operatorStack.Pop()
		op := opRaw.(operator)
		rightRaw, ok := operandStack.Pop()
		if !ok {
			break
		}
		right := rightRaw.(operand).node

		node := ast.New(op.index, op.token)
		node.AddChild(left)
		node.AddChild(right)
		left = node
	}

	p.store(start, end, left)
}
