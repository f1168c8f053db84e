/*
File    : yalc/ast/node.go
Package : ast
*/

// Package ast defines the uniform tree of token-tagged nodes the parser
// builds and the semantic analyzer and code generator walk.
package ast

import (
	"sync/atomic"

	"github.com/yal-lang/yalc/lexer"
)

// syntheticIDBase separates synthetic node ids (unary-fold operands,
// rewritten compound-assignment subtrees) from real token-stream
// indices, in a namespace no real source file can reach: token indices
// never exceed a few million even for enormous programs, but synthetic
// ids start at 1<<30.
const syntheticIDBase = 1 << 30

var syntheticCounter int64

// NextSyntheticID returns a fresh id guaranteed not to collide with any
// token-stream index, for nodes built outside of a direct token match
// (e.g. the unary-minus-to-multiplication rewrite).
func NextSyntheticID() int {
	return syntheticIDBase + int(atomic.AddInt64(&syntheticCounter, 1))
}

// Node is a tree node carrying the id of its originating token (or a
// synthetic id), the Token value at this position (including the
// synthetic Ast marker used for grouping constructs), and its ordered
// children.
type Node struct {
	ID       int
	Value    lexer.Token
	Children []*Node
}

// New builds a leaf node from an id and token value.
func New(id int, value lexer.Token) *Node {
	return &Node{ID: id, Value: value}
}

// AddChild appends a child node, preserving source order.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Find returns every node in the subtree rooted at n (n included) for
// which pred returns true, in depth-first pre-order. The semantic
// analyzer's three checks are each one Find call over a different
// predicate.
func (n *Node) Find(pred func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(node *Node) {
		if pred(node) {
			out = append(out, node)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(n)
	return out
}

// Clone produces a deep copy of the subtree rooted at n. Parents are
// never reached from children, so a plain recursive copy is sufficient;
// no cycle detection or shared-subtree bookkeeping is needed.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{ID: n.ID, Value: n.Value}
	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}
