// Package ast defines the ECMAScript AST consumed and produced by the
// lowering passes.
//
// Nodes are immutable values: a transformation builds new nodes and
// may freely share unchanged subtrees. Every node carries a span.Span;
// synthesized nodes carry span.DummySpan, optionally marked with the
// expansion that produced them.
package ast

import "github.com/MadAppGang/eslower/pkg/span"

// Node is implemented by every AST node.
type Node interface {
	// Span returns the source region the node covers.
	Span() span.Span
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes. Declarations and module
// items (export declarations) are statements too, which keeps
// statement lists uniform.
type Stmt interface {
	Node
	stmtNode()
}

// Pat is implemented by pattern nodes, which appear in bindings,
// parameters, and assignment targets.
type Pat interface {
	Node
	patNode()
}

// Decl is implemented by declaration nodes. Every Decl is also a Stmt.
type Decl interface {
	Stmt
	declNode()
}

// PropName is implemented by the property-name forms of object
// literals, object patterns, and class members.
type PropName interface {
	Node
	propNameNode()
}

// ObjectPatProp is implemented by the property forms of object
// patterns.
type ObjectPatProp interface {
	Node
	objectPatPropNode()
}

// ClassMember is implemented by the member forms of a class body.
type ClassMember interface {
	Node
	classMemberNode()
}

// Program is a parsed module or script: a flat statement list.
type Program struct {
	S    span.Span
	Body []Stmt
}

func (p *Program) Span() span.Span { return p.S }
