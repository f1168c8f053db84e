package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexer_Tokenize_DeclarationAndAssignment(t *testing.T) {
	src := `{ var x, y: int; x = 5; }`
	tokens, err := NewLexer(src).Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, []Kind{
		LeftBrace, Var, Id, Comma, Id, Colon, Int, Semicolon,
		Id, Assign, Num, Semicolon,
		RightBrace, EOF,
	}, kinds(tokens))
}

func TestLexer_Tokenize_CompoundAndComparisonOperators(t *testing.T) {
	src := `a += 1; b -= 2; c == d; e != f; g <= h; i >= j;`
	tokens, err := NewLexer(src).Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, []Kind{
		Id, PlusAssign, Num, Semicolon,
		Id, MinusAssign, Num, Semicolon,
		Id, Equals, Id, Semicolon,
		Id, NotEquals, Id, Semicolon,
		Id, LessThanOrEqual, Id, Semicolon,
		Id, GreaterThanOrEqual, Id, Semicolon,
		EOF,
	}, kinds(tokens))
}

func TestLexer_Tokenize_LongestMatchFirst(t *testing.T) {
	// "<=" must not scan as "<" followed by "=".
	tokens, err := NewLexer(`a<=b`).Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, []Kind{Id, LessThanOrEqual, Id, EOF}, kinds(tokens))
}

func TestLexer_Tokenize_NumericLiteralPayload(t *testing.T) {
	tokens, err := NewLexer(`0 42`).Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), tokens[0].Num)
	assert.Equal(t, int64(42), tokens[1].Num)
}

func TestLexer_Tokenize_IdentifierPayload(t *testing.T) {
	tokens, err := NewLexer(`first_2nd`).Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, "first_2nd", tokens[0].Name)
}

func TestLexer_Tokenize_KeywordsAreNotIdentifiers(t *testing.T) {
	tokens, err := NewLexer(`if else while for continue break var int print`).Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, []Kind{If, Else, While, For, Continue, Break, Var, Int, Print, EOF}, kinds(tokens))
}

func TestLexer_Tokenize_UnrecognizedCharacterIsError(t *testing.T) {
	_, err := NewLexer(`x = 1 @ 2;`).Tokenize()
	assert.Error(t, err)
}

func TestLexer_Tokenize_LogicalOperators(t *testing.T) {
	tokens, err := NewLexer(`a && b || !c`).Tokenize()
	assert.NoError(t, err)
	assert.Equal(t, []Kind{Id, And, Id, Or, ExclamationMark, Id, EOF}, kinds(tokens))
}
