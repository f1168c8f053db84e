package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yal-lang/yalc/ast"
	"github.com/yal-lang/yalc/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Node, bool) {
	t.Helper()
	tokens, err := lexer.NewLexer(src).Tokenize()
	require.NoError(t, err)
	return New(tokens).Parse()
}

func TestParse_WellFormedProgram_Accepts(t *testing.T) {
	root, ok := parseSource(t, `{ var x, y: int; x = 5; y = 1 + 4 * 3 - 13; print x / y; }`)
	require.True(t, ok)
	require.NotNil(t, root)

	assert.Equal(t, "Ast(ROOT_AST_NODE)", root.Value.String())
	require.Len(t, root.Children, 1)
	assert.Equal(t, "Ast(PROGRAM)", root.Children[0].Value.String())
}

func TestParse_MalformedProgram_Rejects(t *testing.T) {
	cases := []string{
		`{ var x int; }`,       // missing colon
		`{ x = 5 }`,            // missing semicolon
		`{ var x: int; x = ; }`, // missing rhs
		`{ var x: int; x = 1;`, // unterminated block
	}
	for _, src := range cases {
		_, ok := parseSource(t, src)
		assert.False(t, ok, "expected rejection for %q", src)
	}
}

func TestParse_IfWithoutElse_SyntaxIsValidEvenForUndeclaredIds(t *testing.T) {
	// Parsing is purely structural; declaration checking is semantics's job.
	_, ok := parseSource(t, `{ if (x) print x; }`)
	assert.True(t, ok)
}

func TestParse_Declaration_ProducesIntNodeWithIdChildrenInOrder(t *testing.T) {
	root, ok := parseSource(t, `{ var a, b, c: int; }`)
	require.True(t, ok)
	program := root.Children[0]
	require.Len(t, program.Children, 1)

	decl := program.Children[0]
	assert.Equal(t, lexer.Int, decl.Value.Kind)
	require.Len(t, decl.Children, 3)
	assert.Equal(t, "a", decl.Children[0].Value.Name)
	assert.Equal(t, "b", decl.Children[1].Value.Name)
	assert.Equal(t, "c", decl.Children[2].Value.Name)
}

func TestParse_Associativity_SamePrecedenceIsLeftLeaning(t *testing.T) {
	root, ok := parseSource(t, `{ var a, b, c: int; print a - b - c; }`)
	require.True(t, ok)
	printNode := root.Children[0].Children[1]
	assert.Equal(t, lexer.Print, printNode.Value.Kind)

	top := printNode.Children[0]
	require.Equal(t, lexer.Minus, top.Value.Kind)
	require.Len(t, top.Children, 2)

	left := top.Children[0]
	assert.Equal(t, lexer.Minus, left.Value.Kind)
	assert.Equal(t, "a", left.Children[0].Value.Name)
	assert.Equal(t, "b", left.Children[1].Value.Name)

	right := top.Children[1]
	assert.Equal(t, "c", right.Value.Name)
}

func TestParse_Precedence_MultiplicationBindsTighterThanAddition(t *testing.T) {
	root, ok := parseSource(t, `{ var a, b, c: int; print a + b * c; }`)
	require.True(t, ok)
	printNode := root.Children[0].Children[1]
	top := printNode.Children[0]

	require.Equal(t, lexer.Plus, top.Value.Kind)
	require.Len(t, top.Children, 2)
	assert.Equal(t, "a", top.Children[0].Value.Name)

	right := top.Children[1]
	assert.Equal(t, lexer.Asterisk, right.Value.Kind)
	assert.Equal(t, "b", right.Children[0].Value.Name)
	assert.Equal(t, "c", right.Children[1].Value.Name)
}

func TestParse_UnaryMinus_NormalizesToAsteriskWithZero(t *testing.T) {
	root, ok := parseSource(t, `{ var x: int; print -x; }`)
	require.True(t, ok)
	printNode := root.Children[0].Children[1]
	top := printNode.Children[0]

	require.Equal(t, lexer.Asterisk, top.Value.Kind)
	require.Len(t, top.Children, 2)
	assert.Equal(t, lexer.Num, top.Children[0].Value.Kind)
	assert.Equal(t, int64(0), top.Children[0].Value.Num)
	assert.Equal(t, "x", top.Children[1].Value.Name)
}

func TestParse_UnaryNot_WrapsParenthesizedExpression(t *testing.T) {
	root, ok := parseSource(t, `{ var a: int; print !(a == 1); }`)
	require.True(t, ok)
	printNode := root.Children[0].Children[1]
	top := printNode.Children[0]

	require.Equal(t, lexer.ExclamationMark, top.Value.Kind)
	require.Len(t, top.Children, 1)
	assert.Equal(t, lexer.Equals, top.Children[0].Value.Kind)
}

func TestParse_IfElse_ChildOrderIsCondThenElse(t *testing.T) {
	root, ok := parseSource(t, `{ var x: int; if (x > 0) print x; else print 0; }`)
	require.True(t, ok)
	ifNode := root.Children[0].Children[1]
	assert.Equal(t, lexer.If, ifNode.Value.Kind)
	require.Len(t, ifNode.Children, 3)
	assert.Equal(t, lexer.GreaterThan, ifNode.Children[0].Value.Kind)
	assert.Equal(t, "Ast(SINGLE_BLOCK)", ifNode.Children[1].Value.String())
	assert.Equal(t, lexer.Else, ifNode.Children[2].Value.Kind)
}

func TestParse_For_ChildOrderIsInitCondStepBody(t *testing.T) {
	root, ok := parseSource(t, `{ var i, s: int; s = 0; for (i = 1; i <= 10; i += 1) s += i; }`)
	require.True(t, ok)
	forNode := root.Children[0].Children[2]
	assert.Equal(t, lexer.For, forNode.Value.Kind)
	require.Len(t, forNode.Children, 4)
	assert.Equal(t, lexer.Assign, forNode.Children[0].Value.Kind)
	assert.Equal(t, lexer.LessThanOrEqual, forNode.Children[1].Value.Kind)
	assert.Equal(t, lexer.PlusAssign, forNode.Children[2].Value.Kind)
	assert.Equal(t, "Ast(SINGLE_BLOCK)", forNode.Children[3].Value.String())
}

func TestParse_BreakContinue_InsideLoop_Accepts(t *testing.T) {
	root, ok := parseSource(t, `{ var i: int; for (i = 0; i < 5; i += 1) { if (i == 3) break; if (i % 2) continue; print i; } }`)
	require.True(t, ok)
	require.NotNil(t, root)
}

func TestParse_EmptyStatement_IsRegisteredAndSkippable(t *testing.T) {
	root, ok := parseSource(t, `{ ;; }`)
	require.True(t, ok)
	program := root.Children[0]
	require.Len(t, program.Children, 2)
	assert.Equal(t, "Ast(EMPTY_STMT)", program.Children[0].Value.String())
	assert.Equal(t, "Ast(EMPTY_STMT)", program.Children[1].Value.String())
}
