// Package syntax parses tinydfa patterns into an abstract syntax tree.
//
// The pattern language is deliberately small: single-byte ASCII alphanumeric
// literals, the wildcard '.', grouping with parentheses, alternation '|' and
// the postfix repetition operators '*', '+' and '?'. There is no escape
// syntax, so metacharacters cannot appear as literals.
//
// Precedence, from lowest to highest:
//
//	alt    := concat ('|' concat)*
//	concat := rep+
//	rep    := atom ('*' | '+' | '?')*
//	atom   := LITERAL | '.' | '(' alt ')'
package syntax

import (
	"fmt"
	"strings"
)

// Op identifies the kind of an AST node.
type Op uint8

const (
	// OpLiteral matches exactly one byte.
	OpLiteral Op = iota

	// OpAnyByte matches any single byte (the '.' wildcard).
	OpAnyByte

	// OpConcat matches Sub[0] followed by Sub[1].
	OpConcat

	// OpAlternate matches Sub[0] or Sub[1].
	OpAlternate

	// OpStar matches zero or more repetitions of Sub[0].
	OpStar

	// OpPlus matches one or more repetitions of Sub[0].
	OpPlus

	// OpQuest matches zero or one occurrence of Sub[0].
	OpQuest
)

// String returns a human-readable name for the operator
func (op Op) String() string {
	switch op {
	case OpLiteral:
		return "Literal"
	case OpAnyByte:
		return "AnyByte"
	case OpConcat:
		return "Concat"
	case OpAlternate:
		return "Alternate"
	case OpStar:
		return "Star"
	case OpPlus:
		return "Plus"
	case OpQuest:
		return "Quest"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Node is a node of the pattern syntax tree.
//
// Binary operators (Concat, Alternate) hold exactly two children in Sub;
// repetition operators hold exactly one. Leaves have no children. A tree is
// never shared or cyclic and is not modified after Parse returns it.
type Node struct {
	Op   Op
	Byte byte // OpLiteral only
	Sub  []*Node
}

// Literal returns a node matching the single byte b.
func Literal(b byte) *Node {
	return &Node{Op: OpLiteral, Byte: b}
}

// AnyByte returns a node matching any single byte.
func AnyByte() *Node {
	return &Node{Op: OpAnyByte}
}

// Concat returns a node matching left followed by right.
func Concat(left, right *Node) *Node {
	return &Node{Op: OpConcat, Sub: []*Node{left, right}}
}

// Alternate returns a node matching either left or right.
func Alternate(left, right *Node) *Node {
	return &Node{Op: OpAlternate, Sub: []*Node{left, right}}
}

// Star returns a node matching zero or more repetitions of inner.
func Star(inner *Node) *Node {
	return &Node{Op: OpStar, Sub: []*Node{inner}}
}

// Plus returns a node matching one or more repetitions of inner.
func Plus(inner *Node) *Node {
	return &Node{Op: OpPlus, Sub: []*Node{inner}}
}

// Quest returns a node matching zero or one occurrence of inner.
func Quest(inner *Node) *Node {
	return &Node{Op: OpQuest, Sub: []*Node{inner}}
}

// Left returns the first child, or nil for leaves.
func (n *Node) Left() *Node {
	if len(n.Sub) == 0 {
		return nil
	}
	return n.Sub[0]
}

// Right returns the second child of a binary node, or nil otherwise.
func (n *Node) Right() *Node {
	if len(n.Sub) < 2 {
		return nil
	}
	return n.Sub[1]
}

// Equal reports whether n and m are structurally identical trees.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.Op != m.Op || len(n.Sub) != len(m.Sub) {
		return false
	}
	if n.Op == OpLiteral && n.Byte != m.Byte {
		return false
	}
	for i := range n.Sub {
		if !n.Sub[i].Equal(m.Sub[i]) {
			return false
		}
	}
	return true
}

// Size returns the number of nodes in the tree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, sub := range n.Sub {
		size += sub.Size()
	}
	return size
}

// String renders the tree back into pattern syntax.
//
// Parentheses are emitted wherever the default precedence or left
// associativity would otherwise change the shape, so Parse(n.String())
// yields a tree equal to n.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Op {
	case OpLiteral:
		b.WriteByte(n.Byte)
	case OpAnyByte:
		b.WriteByte('.')
	case OpConcat:
		writeGrouped(b, n.Sub[0], n.Sub[0].Op == OpAlternate)
		writeGrouped(b, n.Sub[1], n.Sub[1].Op == OpAlternate || n.Sub[1].Op == OpConcat)
	case OpAlternate:
		n.Sub[0].write(b)
		b.WriteByte('|')
		writeGrouped(b, n.Sub[1], n.Sub[1].Op == OpAlternate)
	case OpStar, OpPlus, OpQuest:
		inner := n.Sub[0]
		writeGrouped(b, inner, inner.Op == OpConcat || inner.Op == OpAlternate)
		switch n.Op {
		case OpStar:
			b.WriteByte('*')
		case OpPlus:
			b.WriteByte('+')
		default:
			b.WriteByte('?')
		}
	}
}

func writeGrouped(b *strings.Builder, n *Node, group bool) {
	if group {
		b.WriteByte('(')
	}
	n.write(b)
	if group {
		b.WriteByte(')')
	}
}
