/*
File    : yalc/semantics/analyzer.go
Package : semantics
*/

// Package semantics runs the three whole-program checks required before
// code generation: variable redeclaration, undeclared identifiers, and
// break/continue appearing outside a loop body.
package semantics

import (
	"fmt"

	"github.com/yal-lang/yalc/ast"
	"github.com/yal-lang/yalc/lexer"
)

// Violation is one reported semantic error, carrying enough context for
// a caller to render a diagnostic without re-deriving it.
type Violation struct {
	Message string
	Node    *ast.Node
}

func (v Violation) Error() string { return v.Message }

// Analyzer walks an accepted program's AST and accumulates Violations.
// A fresh Analyzer should be built per program; its symbol table is not
// meant to be reused across runs.
type Analyzer struct {
	root    *ast.Node
	symbols map[string]struct{}
}

// New builds an Analyzer over an accepted program's root node (the
// Ast("PROGRAM") node, or anything above it; Find walks the whole
// subtree regardless).
func New(root *ast.Node) *Analyzer {
	return &Analyzer{root: root, symbols: make(map[string]struct{})}
}

// Run executes all three checks in order and returns every Violation
// found. A nil/empty slice means the program is semantically accepted.
func (a *Analyzer) Run() []Violation {
	var violations []Violation
	violations = append(violations, a.checkRedeclarations()...)
	violations = append(violations, a.checkUndeclaredIdentifiers()...)
	violations = append(violations, a.checkLoopScopedControlFlow()...)
	return violations
}

// checkRedeclarations walks every Int (declaration) node and populates
// the symbol table. The second declaration of the same name is a
// violation, and the name stays bound to its first declaration; the
// table is left untouched on a reported redeclaration.
func (a *Analyzer) checkRedeclarations() []Violation {
	var violations []Violation
	decls := a.root.Find(func(n *ast.Node) bool { return n.Value.Kind == lexer.Int })
	for _, decl := range decls {
		for _, idNode := range decl.Children {
			name := idNode.Value.Name
			if _, seen := a.symbols[name]; seen {
				violations = append(violations, Violation{
					Message: fmt.Sprintf("re-declaration of identifier '%s'", name),
					Node:    idNode,
				})
				continue
			}
			a.symbols[name] = struct{}{}
		}
	}
	return violations
}

// checkUndeclaredIdentifiers flags every Id node whose name never
// appeared in a declaration. Run after checkRedeclarations so the
// symbol table is fully populated first.
func (a *Analyzer) checkUndeclaredIdentifiers() []Violation {
	var violations []Violation
	idNodes := a.root.Find(func(n *ast.Node) bool { return n.Value.Kind == lexer.Id })
	for _, idNode := range idNodes {
		if _, ok := a.symbols[idNode.Value.Name]; !ok {
			violations = append(violations, Violation{
				Message: fmt.Sprintf("undeclared identifier '%s'", idNode.Value.Name),
				Node:    idNode,
			})
		}
	}
	return violations
}

// checkLoopScopedControlFlow finds every break/continue node, assumes
// each is a violation, then removes from that set any node reachable
// from a while/for node's own subtree. This assume-then-exonerate pass
// is simpler than tracking loop depth during a single descent, since
// the AST has already been fully built by the time semantics runs.
func (a *Analyzer) checkLoopScopedControlFlow() []Violation {
	isBreakOrContinue := func(n *ast.Node) bool {
		return n.Value.Kind == lexer.Break || n.Value.Kind == lexer.Continue
	}

	violating := make(map[*ast.Node]struct{})
	for _, n := range a.root.Find(isBreakOrContinue) {
		violating[n] = struct{}{}
	}

	loopNodes := a.root.Find(func(n *ast.Node) bool {
		return n.Value.Kind == lexer.While || n.Value.Kind == lexer.For
	})
	for _, loop := range loopNodes {
		for _, inner := range loop.Find(isBreakOrContinue) {
			delete(violating, inner)
		}
	}

	var violations []Violation
	for n := range violating {
		violations = append(violations, Violation{
			Message: "continue/break statement outside of loop",
			Node:    n,
		})
	}
	return violations
}
