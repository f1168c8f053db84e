/*
File    : yalc/lexer/token.go
Package : lexer
*/

// Package lexer turns YAL source text into an ordered sequence of
// Tokens. YAL's alphabet is small and fixed: keywords, punctuation,
// operators, and two payload-carrying kinds (identifiers and numeric
// literals).
package lexer

import "fmt"

// Kind identifies a token's variant. Two tokens are considered equal
// for grammar-matching purposes when, and only when, their Kind
// matches; payloads (identifier names, numeric values) are ignored by
// the rule engine, which only ever asks "is this an Id?" or "is this a
// Num?", never "is this Id(foo)?".
type Kind string

const (
	// EOF marks the end of the token stream.
	EOF Kind = "EOF"

	// Keywords
	Print    Kind = "print"
	If       Kind = "if"
	Else     Kind = "else"
	While    Kind = "while"
	For      Kind = "for"
	Continue Kind = "continue"
	Break    Kind = "break"
	Var      Kind = "var"
	Int      Kind = "int"

	// Delimiters
	LeftParen  Kind = "("
	RightParen Kind = ")"
	LeftBrace  Kind = "{"
	RightBrace Kind = "}"
	Comma      Kind = ","
	Colon      Kind = ":"
	Semicolon  Kind = ";"

	// Arithmetic operators
	Plus     Kind = "+"
	Minus    Kind = "-"
	Asterisk Kind = "*"
	Slash    Kind = "/"
	Percent  Kind = "%"

	// Assignment and compound assignment
	Assign       Kind = "="
	PlusAssign   Kind = "+="
	MinusAssign  Kind = "-="
	TimesAssign  Kind = "*="
	DivideAssign Kind = "/="
	ModuloAssign Kind = "%="

	// Comparisons
	Equals             Kind = "=="
	NotEquals          Kind = "!="
	LessThan           Kind = "<"
	LessThanOrEqual    Kind = "<="
	GreaterThan        Kind = ">"
	GreaterThanOrEqual Kind = ">="

	// Logical operators
	And             Kind = "&&"
	Or              Kind = "||"
	ExclamationMark Kind = "!"

	// Payload-carrying kinds
	Id  Kind = "Id"
	Num Kind = "Num"

	// Ast is an internal-only kind: it never comes out of the lexer. It
	// tags synthetic Tokens used as structural AST markers (the tree
	// root, PROGRAM, BLOCK, SINGLE_BLOCK, EMPTY_STMT). Its payload is a discriminating
	// tag string, carried in Token.Tag.
	Ast Kind = "Ast"
)

// Token is a tagged variant over Kind, with payload fields used only by
// the Id, Num, and Ast kinds. Equality for grammar matching is
// discriminant-only: use Token.Kind, never a full Token comparison, when
// deciding whether a terminal matches.
type Token struct {
	Kind Kind
	Name string // set when Kind == Id
	Num  int64  // set when Kind == Num
	Tag  string // set when Kind == Ast

	Line   int
	Column int
}

// NewToken builds a Token with no payload (delimiters, operators,
// keywords).
func NewToken(kind Kind, line, column int) Token {
	return Token{Kind: kind, Line: line, Column: column}
}

// NewIdToken builds an identifier Token.
func NewIdToken(name string, line, column int) Token {
	return Token{Kind: Id, Name: name, Line: line, Column: column}
}

// NewNumToken builds a numeric-literal Token. The lexer never produces
// a negative Num; unary minus is handled structurally by the parser (see
// the parser package), not by the lexer.
func NewNumToken(value int64, line, column int) Token {
	return Token{Kind: Num, Num: value, Line: line, Column: column}
}

// NewAstToken builds a synthetic structural marker, used only inside the
// AST (never produced by the lexer). tag identifies the grouping
// construct, e.g. "ROOT_AST_NODE", "PROGRAM", "BLOCK", "SINGLE_BLOCK".
func NewAstToken(tag string) Token {
	return Token{Kind: Ast, Tag: tag}
}

// IdWildcard and NumWildcard are payload-free Id and Num Tokens. The
// rule engine does not use them: its terminals are Kinds (rule.Term),
// so matching is discriminant-only and never inspects a payload.
var (
	IdWildcard  = Token{Kind: Id}
	NumWildcard = Token{Kind: Num}
)

// String renders a human-readable form, used in diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case Id:
		return fmt.Sprintf("Id(%s)", t.Name)
	case Num:
		return fmt.Sprintf("Num(%d)", t.Num)
	case Ast:
		return fmt.Sprintf("Ast(%s)", t.Tag)
	default:
		return string(t.Kind)
	}
}

// keywords maps identifier-shaped lexemes to their keyword Kind, used by
// the scanner to distinguish reserved words from user identifiers.
var keywords = map[string]Kind{
	"print":    Print,
	"if":       If,
	"else":     Else,
	"while":    While,
	"for":      For,
	"continue": Continue,
	"break":    Break,
	"var":      Var,
	"int":      Int,
}
