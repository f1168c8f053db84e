/*
File    : yalc/rule/engine.go
Package : rule
*/

// Package rule implements the generic recursive-descent backtracking
// matcher the parser's grammar is built on. It knows nothing about
// YAL's grammar: it matches ordered alternatives of right-hand-side
// element sequences over a token cursor, with token-count backtracking
// and epsilon handling.
package rule

import "github.com/yal-lang/yalc/lexer"

// Result is the outcome of an attempt to match a rule: whether it
// matched, and how many tokens were consumed getting there. A failed
// Match reports 0 consumed tokens; the engine has already restored the
// cursor, so callers never rewind it themselves.
type Result struct {
	Matched        bool
	TokensConsumed int
}

// Element is one entry in a right-hand-side sequence: either a
// Terminal, matching a single token by Kind only (payload ignored), or
// a Nonterminal, a closure over parser state returning a Result.
//
// A closure capturing the *Parser it operates on stands in for a bound
// function pointer here, with the added benefit of letting a
// non-terminal close over precedence-specific state without an enum
// dispatch.
type Element struct {
	Terminal    lexer.Kind
	Nonterminal func() Result
	isTerminal  bool
}

// Term builds a terminal Element matching the given token Kind.
func Term(kind lexer.Kind) Element {
	return Element{Terminal: kind, isTerminal: true}
}

// NonTerm builds a non-terminal Element from a production function.
func NonTerm(fn func() Result) Element {
	return Element{Nonterminal: fn}
}

// Alternative is one candidate right-hand side: an ordered sequence of
// Elements that must all match, in order, for the alternative itself to
// match.
type Alternative []Element

// Engine matches Alternatives over a shared cursor into a token
// sequence. It owns the token slice and cursor exposed here; the parser
// holds one Engine and reads both through it.
type Engine struct {
	Tokens []lexer.Token
	Pos    int
}

// NewEngine creates an Engine positioned at the start of tokens.
func NewEngine(tokens []lexer.Token) *Engine {
	return &Engine{Tokens: tokens, Pos: 0}
}

// CurrentMatches reports whether the token at the cursor has the given
// Kind. Matching is discriminant-only: payload is never consulted here.
func (e *Engine) CurrentMatches(kind lexer.Kind) bool {
	if e.Pos >= len(e.Tokens) {
		return kind == lexer.EOF
	}
	return e.Tokens[e.Pos].Kind == kind
}

// Advance moves the cursor forward by one token.
func (e *Engine) Advance() {
	e.Pos++
}

// Match tries each Alternative in order and returns the first one that
// matches. If none match, it reports epsilon as specified by the
// caller: Result{Matched: epsilon, TokensConsumed: 0}.
//
// Grammar acceptance (the start rule, outside this engine) additionally
// requires tokens_consumed == len(tokens); trailing tokens imply
// rejection, but that check belongs to the parser's top-level Parse
// call, not to this generic engine.
func (e *Engine) Match(alternatives []Alternative, epsilon bool) Result {
	for _, alt := range alternatives {
		if result := e.matchAlternative(alt); result.Matched {
			return result
		}
	}
	return Result{Matched: epsilon, TokensConsumed: 0}
}

// matchAlternative matches a single right-hand-side sequence. It
// snapshots the cursor on entry and restores it on failure, rather than
// doing ad hoc per-element arithmetic to "refund" consumed tokens; this
// avoids any ambiguity between "alternative failed" and "element failed
// mid-alternative".
func (e *Engine) matchAlternative(alt Alternative) Result {
	start := e.Pos
	consumed := 0
	for _, element := range alt {
		if element.isTerminal {
			if !e.CurrentMatches(element.Terminal) {
				e.Pos = start
				return Result{Matched: false, TokensConsumed: consumed}
			}
			e.Advance()
			consumed++
			continue
		}
		result := element.Nonterminal()
		if !result.Matched {
			e.Pos = start
			return Result{Matched: false, TokensConsumed: consumed}
		}
		consumed += result.TokensConsumed
	}
	return Result{Matched: true, TokensConsumed: consumed}
}
