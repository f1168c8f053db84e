package lexer

import (
	"fmt"
	"strconv"
)

// Lexer scans YAL source text into a Token slice. It is a simple
// single-pass hand-written scanner: whitespace is skipped, identifiers
// and numeric literals are accumulated greedily, and every other
// recognized lexeme is matched by longest-prefix-first punctuation
// lookup (so "+=" is preferred over "+" followed by "=").
type Lexer struct {
	src    []rune
	pos    int
	line   int
	column int
}

// NewLexer creates a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1, column: 1}
}

// Tokenize scans the entire source and returns its Token sequence,
// terminated by a single EOF Token. It returns an error on the first
// unrecognized character; YAL's lexical grammar has no incremental
// error recovery, so such an error aborts the whole pipeline.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return NewToken(EOF, l.line, l.column), nil
	}

	startLine, startColumn := l.line, l.column
	c := l.src[l.pos]

	switch {
	case isLetter(c):
		return l.scanIdentifier(startLine, startColumn), nil
	case isDigit(c):
		return l.scanNumber(startLine, startColumn)
	default:
		return l.scanPunctuation(startLine, startColumn)
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' {
			l.advance()
			continue
		}
		if c == '\n' {
			l.pos++
			l.line++
			l.column = 1
			continue
		}
		break
	}
}

func (l *Lexer) advance() {
	l.pos++
	l.column++
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentChar(c rune) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func (l *Lexer) scanIdentifier(line, column int) Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.advance()
	}
	name := string(l.src[start:l.pos])
	if kind, ok := keywords[name]; ok {
		return NewToken(kind, line, column)
	}
	return NewIdToken(name, line, column)
}

// scanNumber accepts "0" or "[1-9][0-9]*"; the lexer never emits a
// negative Num, since unary minus is a parser-level rewrite.
func (l *Lexer) scanNumber(line, column int) (Token, error) {
	start := l.pos
	if l.src[l.pos] == '0' {
		l.advance()
	} else {
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.advance()
		}
	}
	text := string(l.src[start:l.pos])
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("lexer: invalid numeric literal %q at %d:%d: %w", text, line, column, err)
	}
	return NewNumToken(value, line, column), nil
}

// punctuation lists multi-character operators before their single-
// character prefixes so the scanner's longest-match-first pass picks
// them up correctly (e.g. "<=" before "<").
var punctuation = []struct {
	text string
	kind Kind
}{
	{"<=", LessThanOrEqual},
	{">=", GreaterThanOrEqual},
	{"==", Equals},
	{"!=", NotEquals},
	{"&&", And},
	{"||", Or},
	{"+=", PlusAssign},
	{"-=", MinusAssign},
	{"*=", TimesAssign},
	{"/=", DivideAssign},
	{"%=", ModuloAssign},
	{"(", LeftParen},
	{")", RightParen},
	{"{", LeftBrace},
	{"}", RightBrace},
	{",", Comma},
	{":", Colon},
	{";", Semicolon},
	{"+", Plus},
	{"-", Minus},
	{"*", Asterisk},
	{"/", Slash},
	{"%", Percent},
	{"=", Assign},
	{"<", LessThan},
	{">", GreaterThan},
	{"!", ExclamationMark},
}

func (l *Lexer) scanPunctuation(line, column int) (Token, error) {
	remaining := l.src[l.pos:]
	for _, p := range punctuation {
		runes := []rune(p.text)
		if len(runes) > len(remaining) {
			continue
		}
		match := true
		for i, r := range runes {
			if remaining[i] != r {
				match = false
				break
			}
		}
		if match {
			for range runes {
				l.advance()
			}
			return NewToken(p.kind, line, column), nil
		}
	}
	return Token{}, fmt.Errorf("lexer: unrecognized character %q at %d:%d", string(l.src[l.pos]), line, column)
}
