package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yal-lang/yalc/lexer"
	"github.com/yal-lang/yalc/mixal"
	"github.com/yal-lang/yalc/parser"
)

func compileToBuffer(t *testing.T, src string) (string, *Generator) {
	t.Helper()
	tokens, err := lexer.NewLexer(src).Tokenize()
	require.NoError(t, err)
	root, ok := parser.New(tokens).Parse()
	require.True(t, ok, "expected %q to parse", src)

	var buf bytes.Buffer
	g := New(mixal.NewWriterEmitter(&buf))
	require.NoError(t, g.Generate(root.Children[0]))
	return buf.String(), g
}

var specRoundTripPrograms = []string{
	`{ var x, y: int; x = 5; y = 1 + 4 * 3 - 13; print x / y; }`,
	`{ var a: int; a = !(5 + 2 > 3 || 5 + 3 * 2 + 1 < 100) && (-(35 - 37) < 0); print a; }`,
	`{ var i, s: int; s = 0; for (i = 1; i <= 10; i += 1) s += i; print s; }`,
	`{ var n, f: int; n = 5; f = 1; while (n > 1) { f *= n; n -= 1; } print f; }`,
	`{ var i: int; for (i = 0; i < 5; i += 1) { if (i == 3) break; if (i % 2) continue; print i; } }`,
	`{ var a: int; a = 1 + 2 * (3 - 4) / 5 % 2; print a; }`,
}

func TestGenerate_SpecExamples_EmitPrologueAndEpilogue(t *testing.T) {
	for _, src := range specRoundTripPrograms {
		out, _ := compileToBuffer(t, src)
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.NotEmpty(t, lines)
		assert.Contains(t, lines[0], "ORIG")
		assert.Contains(t, lines[0], "2000")
		assert.Contains(t, lines[len(lines)-1], "END")
		assert.Contains(t, lines[len(lines)-1], "2000")
	}
}

func TestGenerate_ScratchWatermark_ReturnsToEntryValueAfterEachTopLevelStatement(t *testing.T) {
	tokens, err := lexer.NewLexer(`{ var a, b, c: int; a = 1; b = (a + 2) * (a - 3); c = a + b * (c - 1); }`).Tokenize()
	require.NoError(t, err)
	root, ok := parser.New(tokens).Parse()
	require.True(t, ok)

	var buf bytes.Buffer
	g := New(mixal.NewWriterEmitter(&buf))

	for _, child := range root.Children[0].Children {
		if child.Value.Kind == lexer.Int {
			// Declarations permanently allocate variable addresses; only
			// statements are held to the watermark invariant.
			g.lowerTopLevel(child)
			continue
		}
		before := g.nextAddr
		g.lowerTopLevel(child)
		assert.Equal(t, before, g.nextAddr, "scratch watermark must return to its entry value")
	}
}

func TestGenerate_VariableAddressesAreSequentialStartingAtOne(t *testing.T) {
	tokens, err := lexer.NewLexer(`{ var a, b, c: int; }`).Tokenize()
	require.NoError(t, err)
	root, ok := parser.New(tokens).Parse()
	require.True(t, ok)

	var buf bytes.Buffer
	g := New(mixal.NewWriterEmitter(&buf))
	require.NoError(t, g.Generate(root.Children[0]))

	assert.Equal(t, 1, g.vtable["a"])
	assert.Equal(t, 2, g.vtable["b"])
	assert.Equal(t, 3, g.vtable["c"])
}

func TestGenerate_DeterministicAcrossRuns(t *testing.T) {
	src := specRoundTripPrograms[2]
	out1, _ := compileToBuffer(t, src)
	out2, _ := compileToBuffer(t, src)
	assert.Equal(t, out1, out2)
}

func TestGenerate_BreakOutsideLoop_SurfacesAsError(t *testing.T) {
	// Syntactically valid (parsing doesn't check loop scoping) but
	// semantically invalid; semantics.Analyzer would normally reject
	// this before codegen ever sees it. Generate still must not panic
	// past its own boundary; it recovers into an error.
	tokens, err := lexer.NewLexer(`{ break; }`).Tokenize()
	require.NoError(t, err)
	root, ok := parser.New(tokens).Parse()
	require.True(t, ok)

	var buf bytes.Buffer
	g := New(mixal.NewWriterEmitter(&buf))
	assert.Error(t, g.Generate(root.Children[0]))
}
