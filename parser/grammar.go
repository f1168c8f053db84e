package parser

import (
	"github.com/yal-lang/yalc/ast"
	"github.com/yal-lang/yalc/lexer"
	"github.com/yal-lang/yalc/rule"
)

// program := '{' decls stmts '}'
func (p *Parser) programRule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{
			rule.Term(lexer.LeftBrace),
			rule.NonTerm(p.declsRule),
			rule.NonTerm(p.stmtsRule),
			rule.Term(lexer.RightBrace),
		},
	}, false)

	if result.Matched {
		start := p.pos() - result.TokensConsumed
		end := p.pos()
		node := ast.New(start, lexer.NewAstToken("PROGRAM"))
		p.collectChildren(node, start+1, end-1)
		p.root.AddChild(node)
	}
	return result
}

// collectChildren walks the token-range index starting at from, up to
// (not including) to, following each entry's end to the next child's
// start, and appends the nodes it finds to node in order. Both
// programRule and blockRule's BLOCK case assemble their children this
// way.
func (p *Parser) collectChildren(node *ast.Node, from, to int) {
	idx := from
	for idx < to {
		entry, ok := p.lookup(idx)
		if !ok {
			break
		}
		node.AddChild(entry.node)
		idx = entry.end
	}
}

// decls := ε | decl decls
func (p *Parser) declsRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.declRule), rule.NonTerm(p.declsRule)},
	}, true)
}

// decl := 'var' Id vars ':' 'int' ';'
func (p *Parser) declRule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{
			rule.Term(lexer.Var),
			rule.Term(lexer.Id),
			rule.NonTerm(p.varsRule),
			rule.Term(lexer.Colon),
			rule.Term(lexer.Int),
			rule.Term(lexer.Semicolon),
		},
	}, false)

	if result.Matched {
		start := p.pos() - result.TokensConsumed
		end := p.pos()
		node := ast.New(start, lexer.NewToken(lexer.Int, 0, 0))
		for i := start + 1; i < end; i++ {
			if tok := p.tokenAt(i); tok.Kind == lexer.Id {
				node.AddChild(ast.New(i, tok))
			}
		}
		p.store(start, end, node)
	}
	return result
}

// vars := ε | ',' Id vars
func (p *Parser) varsRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.Term(lexer.Comma), rule.Term(lexer.Id), rule.NonTerm(p.varsRule)},
	}, true)
}

// stmts := ε | stmt stmts
func (p *Parser) stmtsRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.stmtRule), rule.NonTerm(p.stmtsRule)},
	}, true)
}

// stmt := simp ';' | control | ';'
func (p *Parser) stmtRule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.simpRule), rule.Term(lexer.Semicolon)},
		{rule.NonTerm(p.controlRule)},
		{rule.Term(lexer.Semicolon)},
	}, false)

	if result.Matched {
		start := p.pos() - result.TokensConsumed
		if entry, ok := p.lookup(start); ok {
			// simp/control already registered an entry; extend it past
			// the trailing ';' when one was consumed (simp case), or
			// re-anchor it unchanged (control case: a no-op, but keeps
			// post-processing uniform across both cases).
			if result.TokensConsumed > 1 {
				p.store(start, p.pos(), entry.node)
			}
		} else {
			// The bare ';' alternative names no node of its own;
			// register an empty-statement marker so sibling assembly
			// (collectChildren) can still step past it.
			p.store(start, p.pos(), ast.New(start, lexer.NewAstToken("EMPTY_STMT")))
		}
	}
	return result
}

// simp := Id asop exp | 'print' exp
func (p *Parser) simpRule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{rule.Term(lexer.Id), rule.NonTerm(p.asopRule), rule.NonTerm(p.expRule)},
		{rule.Term(lexer.Print), rule.NonTerm(p.expRule)},
	}, false)

	if result.Matched {
		start := p.pos() - result.TokensConsumed
		first := p.tokenAt(start)
		switch first.Kind {
		case lexer.Id:
			opTok := p.tokenAt(start + 1)
			node := ast.New(start+1, opTok)
			node.AddChild(ast.New(start, first))
			if entry, ok := p.lookup(start + 2); ok {
				node.AddChild(entry.node)
			}
			p.store(start, p.pos(), node)
		case lexer.Print:
			node := ast.New(start, first)
			if entry, ok := p.lookup(start + 1); ok {
				node.AddChild(entry.node)
			}
			p.store(start, p.pos(), node)
		}
	}
	return result
}

// control := 'if' '(' exp ')' block else_block
//
//	| 'while' '(' exp ')' block
//	| 'for' '(' simp ';' exp ';' simp ')' block
//	| 'continue' ';' | 'break' ';'
func (p *Parser) controlRule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{
			rule.Term(lexer.If), rule.Term(lexer.LeftParen), rule.NonTerm(p.expRule), rule.Term(lexer.RightParen),
			rule.NonTerm(p.blockRule), rule.NonTerm(p.elseBlockRule),
		},
		{
			rule.Term(lexer.While), rule.Term(lexer.LeftParen), rule.NonTerm(p.expRule), rule.Term(lexer.RightParen),
			rule.NonTerm(p.blockRule),
		},
		{
			rule.Term(lexer.For), rule.Term(lexer.LeftParen), rule.NonTerm(p.simpRule), rule.Term(lexer.Semicolon),
			rule.NonTerm(p.expRule), rule.Term(lexer.Semicolon), rule.NonTerm(p.simpRule), rule.Term(lexer.RightParen),
			rule.NonTerm(p.blockRule),
		},
		{rule.Term(lexer.Continue), rule.Term(lexer.Semicolon)},
		{rule.Term(lexer.Break), rule.Term(lexer.Semicolon)},
	}, false)

	if result.Matched {
		start := p.pos() - result.TokensConsumed
		tok := p.tokenAt(start)
		switch tok.Kind {
		case lexer.If:
			node := ast.New(start, tok)
			cond, _ := p.lookup(start + 2)
			node.AddChild(cond.node)
			thenBlock, _ := p.lookup(cond.end + 1)
			node.AddChild(thenBlock.node)
			if thenBlock.end < p.pos() {
				if elseWrap, ok := p.lookup(thenBlock.end); ok {
					node.AddChild(elseWrap.node)
				}
			}
			p.store(start, p.pos(), node)
		case lexer.While:
			node := ast.New(start, tok)
			cond, _ := p.lookup(start + 2)
			node.AddChild(cond.node)
			body, _ := p.lookup(cond.end + 1)
			node.AddChild(body.node)
			p.store(start, p.pos(), node)
		case lexer.For:
			node := ast.New(start, tok)
			initSimp, _ := p.lookup(start + 2)
			node.AddChild(initSimp.node)
			cond, _ := p.lookup(initSimp.end + 1)
			node.AddChild(cond.node)
			stepSimp, _ := p.lookup(cond.end + 1)
			node.AddChild(stepSimp.node)
			body, _ := p.lookup(stepSimp.end + 1)
			node.AddChild(body.node)
			p.store(start, p.pos(), node)
		case lexer.Continue, lexer.Break:
			p.store(start, p.pos(), ast.New(start, tok))
		}
	}
	return result
}

// block := stmt | '{' stmts '}'
func (p *Parser) blockRule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.stmtRule)},
		{rule.Term(lexer.LeftBrace), rule.NonTerm(p.stmtsRule), rule.Term(lexer.RightBrace)},
	}, false)

	if result.Matched {
		start := p.pos() - result.TokensConsumed
		if p.tokenAt(start).Kind == lexer.LeftBrace {
			end := p.pos()
			node := ast.New(start, lexer.NewAstToken("BLOCK"))
			p.collectChildren(node, start+1, end-1)
			p.store(start, end, node)
		} else {
			node := ast.New(start, lexer.NewAstToken("SINGLE_BLOCK"))
			if stmt, ok := p.lookup(start); ok {
				node.AddChild(stmt.node)
			}
			p.store(start, p.pos(), node)
		}
	}
	return result
}

// else_block := ε | 'else' block
func (p *Parser) elseBlockRule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{rule.Term(lexer.Else), rule.NonTerm(p.blockRule)},
	}, true)

	if result.Matched && result.TokensConsumed > 0 {
		start := p.pos() - result.TokensConsumed
		node := ast.New(start, lexer.NewToken(lexer.Else, 0, 0))
		if block, ok := p.lookup(start + 1); ok {
			node.AddChild(block.node)
		}
		p.store(start, p.pos(), node)
	}
	return result
}

// asop := = | += | -= | *= | /= | %=
func (p *Parser) asopRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.Term(lexer.Assign)},
		{rule.Term(lexer.PlusAssign)},
		{rule.Term(lexer.MinusAssign)},
		{rule.Term(lexer.TimesAssign)},
		{rule.Term(lexer.DivideAssign)},
		{rule.Term(lexer.ModuloAssign)},
	}, false)
}

// exp := p2 p1r ; p1r := ε | '||' p2 p1r
func (p *Parser) expRule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.precedence2Rule), rule.NonTerm(p.precedence1RecursiveRule)},
	}, false)
	if result.Matched && result.TokensConsumed > 0 {
		p.constructExpression(p.pos()-result.TokensConsumed, p.pos())
	}
	return result
}

func (p *Parser) precedence1RecursiveRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.binopPrecedence1Rule), rule.NonTerm(p.precedence2Rule), rule.NonTerm(p.precedence1RecursiveRule)},
	}, true)
}

// p2 := p3 p2r ; p2r := ε | '&&' p3 p2r
func (p *Parser) precedence2Rule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.precedence3Rule), rule.NonTerm(p.precedence2RecursiveRule)},
	}, false)
	if result.Matched && result.TokensConsumed > 1 {
		p.constructExpression(p.pos()-result.TokensConsumed, p.pos())
	}
	return result
}

func (p *Parser) precedence2RecursiveRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.binopPrecedence2Rule), rule.NonTerm(p.precedence3Rule), rule.NonTerm(p.precedence2RecursiveRule)},
	}, true)
}

// p3 := p4 p3r ; p3r := ε | (==|!=) p4 p3r
func (p *Parser) precedence3Rule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.precedence4Rule), rule.NonTerm(p.precedence3RecursiveRule)},
	}, false)
	if result.Matched && result.TokensConsumed > 1 {
		p.constructExpression(p.pos()-result.TokensConsumed, p.pos())
	}
	return result
}

func (p *Parser) precedence3RecursiveRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.binopPrecedence3Rule), rule.NonTerm(p.precedence4Rule), rule.NonTerm(p.precedence3RecursiveRule)},
	}, true)
}

// p4 := p5 p4r ; p4r := ε | (<|<=|>|>=) p5 p4r
func (p *Parser) precedence4Rule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.precedence5Rule), rule.NonTerm(p.precedence4RecursiveRule)},
	}, false)
	if result.Matched && result.TokensConsumed > 1 {
		p.constructExpression(p.pos()-result.TokensConsumed, p.pos())
	}
	return result
}

func (p *Parser) precedence4RecursiveRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.binopPrecedence4Rule), rule.NonTerm(p.precedence5Rule), rule.NonTerm(p.precedence4RecursiveRule)},
	}, true)
}

// p5 := p6 p5r ; p5r := ε | (+|-) p6 p5r
func (p *Parser) precedence5Rule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.precedence6Rule), rule.NonTerm(p.precedence5RecursiveRule)},
	}, false)
	if result.Matched && result.TokensConsumed > 1 {
		p.constructExpression(p.pos()-result.TokensConsumed, p.pos())
	}
	return result
}

func (p *Parser) precedence5RecursiveRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.binopPrecedence5Rule), rule.NonTerm(p.precedence6Rule), rule.NonTerm(p.precedence5RecursiveRule)},
	}, true)
}

// p6 := unary p6r ; p6r := ε | (*|/|%) base p6r
func (p *Parser) precedence6Rule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.unaryRule), rule.NonTerm(p.precedence6RecursiveRule)},
	}, false)
	if result.Matched && result.TokensConsumed > 1 {
		p.constructExpression(p.pos()-result.TokensConsumed, p.pos())
	}
	return result
}

func (p *Parser) precedence6RecursiveRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.binopPrecedence6Rule), rule.NonTerm(p.baseRule), rule.NonTerm(p.precedence6RecursiveRule)},
	}, true)
}

func (p *Parser) binopPrecedence1Rule() rule.Result {
	return p.engine.Match([]rule.Alternative{{rule.Term(lexer.Or)}}, false)
}
func (p *Parser) binopPrecedence2Rule() rule.Result {
	return p.engine.Match([]rule.Alternative{{rule.Term(lexer.And)}}, false)
}
func (p *Parser) binopPrecedence3Rule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.Term(lexer.Equals)},
		{rule.Term(lexer.NotEquals)},
	}, false)
}
func (p *Parser) binopPrecedence4Rule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.Term(lexer.GreaterThan)},
		{rule.Term(lexer.GreaterThanOrEqual)},
		{rule.Term(lexer.LessThan)},
		{rule.Term(lexer.LessThanOrEqual)},
	}, false)
}
func (p *Parser) binopPrecedence5Rule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.Term(lexer.Plus)},
		{rule.Term(lexer.Minus)},
	}, false)
}
func (p *Parser) binopPrecedence6Rule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.Term(lexer.Asterisk)},
		{rule.Term(lexer.Slash)},
		{rule.Term(lexer.Percent)},
	}, false)
}

// unop := '!' | '-'
func (p *Parser) unopRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.Term(lexer.ExclamationMark)},
		{rule.Term(lexer.Minus)},
	}, false)
}

// base := Id | Num | '(' exp ')'
func (p *Parser) baseRule() rule.Result {
	return p.engine.Match([]rule.Alternative{
		{rule.Term(lexer.Id)},
		{rule.Term(lexer.Num)},
		{rule.Term(lexer.LeftParen), rule.NonTerm(p.expRule), rule.Term(lexer.RightParen)},
	}, false)
}

// unary := unop base | base
//
// Unary minus `-x` normalizes to Asterisk(Num(0), x); unary `!x` stays
// ExclamationMark(x). When unop is applied to a parenthesized
// expression (tokens_consumed > 2), the inner expression's already-built
// subtree is located by scanning for the first registered entry in the
// matched range and wrapped directly.
func (p *Parser) unaryRule() rule.Result {
	result := p.engine.Match([]rule.Alternative{
		{rule.NonTerm(p.unopRule), rule.NonTerm(p.baseRule)},
		{rule.NonTerm(p.baseRule)},
	}, false)
	if !result.Matched {
		return result
	}

	switch {
	case result.TokensConsumed == 2:
		start := p.pos() - result.TokensConsumed
		unop := p.tokenAt(start)
		operand := p.tokenAt(start + 1)
		node := p.foldUnary(start, unop, ast.New(ast.NextSyntheticID(), operand))
		if node != nil {
			p.store(start, p.pos(), node)
		}
	case result.TokensConsumed > 2:
		start := p.pos() - result.TokensConsumed
		end := p.pos()
		unop := p.tokenAt(start)
		if unop.Kind != lexer.Minus && unop.Kind != lexer.ExclamationMark {
			return result
		}
		for idx := start; idx < end; idx++ {
			entry, ok := p.lookup(idx)
			if !ok {
				continue
			}
			node := p.foldUnary(start, unop, entry.node)
			if node != nil {
				p.store(start, p.pos(), node)
			}
			break
		}
	}
	return result
}

func (p *Parser) foldUnary(start int, unop lexer.Token, operand *ast.Node) *ast.Node {
	switch unop.Kind {
	case lexer.Minus:
		node := ast.New(start, lexer.NewToken(lexer.Asterisk, unop.Line, unop.Column))
		node.AddChild(ast.New(ast.NextSyntheticID(), lexer.NewNumToken(0, unop.Line, unop.Column)))
		node.AddChild(operand)
		return node
	case lexer.ExclamationMark:
		node := ast.New(start, unop)
		node.AddChild(operand)
		return node
	default:
		return nil
	}
}
