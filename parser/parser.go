/*
File    : yalc/parser/parser.go
Package : parser
*/

// Package parser implements YAL's grammar as a set of production rules
// built on top of the generic rule.Engine. Matching is purely
// structural (match/no-match plus a token count); AST construction
// happens in each rule's epilogue, keyed by the token range the rule
// matched.
package parser

import (
	"github.com/yal-lang/yalc/ast"
	"github.com/yal-lang/yalc/lexer"
	"github.com/yal-lang/yalc/rule"
)

// indexEntry records, for a production that succeeded starting at some
// token index, the token index just past its match and the AST node it
// built. Enclosing productions reassemble their children by following
// these (start -> end, node) links.
type indexEntry struct {
	end  int
	node *ast.Node
}

// Parser holds the rule engine's cursor plus the transient token-range
// index used to reassemble each production's children. Both are
// mutated only by parser methods and are discardable once parsing
// completes; nothing here outlives a single Parse call except the
// resulting AST.
type Parser struct {
	engine *rule.Engine
	index  map[int]indexEntry
	root   *ast.Node
}

// New creates a Parser over tokens. A trailing EOF token, if present, is
// stripped: grammar acceptance counts the program's real tokens only.
func New(tokens []lexer.Token) *Parser {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == lexer.EOF {
		tokens = tokens[:n-1]
	}
	return &Parser{
		engine: rule.NewEngine(tokens),
		index:  make(map[int]indexEntry),
		root:   ast.New(0, lexer.NewAstToken("ROOT_AST_NODE")),
	}
}

// Parse runs the grammar's start rule (program) and reports whether the
// input was accepted: matched, and with every token consumed. On
// success it returns the root node, whose sole child (on success) is
// the PROGRAM node. On failure it returns (nil, false) with no partial
// tree exposed.
func (p *Parser) Parse() (*ast.Node, bool) {
	result := p.programRule()
	if !result.Matched || result.TokensConsumed != len(p.engine.Tokens) {
		return nil, false
	}
	return p.root, true
}

func (p *Parser) pos() int { return p.engine.Pos }

func (p *Parser) tokenAt(i int) lexer.Token { return p.engine.Tokens[i] }

func (p *Parser) store(start, end int, node *ast.Node) {
	p.index[start] = indexEntry{end: end, node: node}
}

func (p *Parser) lookup(start int) (indexEntry, bool) {
	e, ok := p.index[start]
	return e, ok
}
