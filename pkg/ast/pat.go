package ast

import "github.com/MadAppGang/eslower/pkg/span"

// ArrayPat is `[a, b, ...rest]` in binding position. Nil elements are
// holes.
type ArrayPat struct {
	S     span.Span
	Elems []Pat
}

func (n *ArrayPat) Span() span.Span { return n.S }
func (n *ArrayPat) patNode()        {}

// RestPat is `...arg` inside an array pattern or parameter list.
type RestPat struct {
	// Dot3 is the span of the `...` token.
	Dot3 span.Span
	Arg  Pat
}

func (n *RestPat) Span() span.Span { return n.Dot3.To(n.Arg.Span()) }
func (n *RestPat) patNode()        {}

// ObjectPat is `{a, b: c, d = e}` in binding position.
type ObjectPat struct {
	S     span.Span
	Props []ObjectPatProp
}

func (n *ObjectPat) Span() span.Span { return n.S }
func (n *ObjectPat) patNode()        {}

// AssignPat is `left = right`: a pattern with a default value.
type AssignPat struct {
	S     span.Span
	Left  Pat
	Right Expr
}

func (n *AssignPat) Span() span.Span { return n.S }
func (n *AssignPat) patNode()        {}

// ExprPat wraps an expression used as an assignment target, e.g.
// `obj.x` on the left of `=`. Only valid in assignment position.
type ExprPat struct {
	Expr Expr
}

func (n *ExprPat) Span() span.Span { return n.Expr.Span() }
func (n *ExprPat) patNode()        {}

// InvalidPat marks a parse-error placeholder.
type InvalidPat struct {
	S span.Span
}

func (n *InvalidPat) Span() span.Span { return n.S }
func (n *InvalidPat) patNode()        {}

// KeyValuePatProp is `key: pat` in an object pattern.
type KeyValuePatProp struct {
	Key   PropName
	Value Pat
}

func (n *KeyValuePatProp) Span() span.Span    { return n.Key.Span().To(n.Value.Span()) }
func (n *KeyValuePatProp) objectPatPropNode() {}

// AssignPatProp is `key` or `key = default` in an object pattern.
type AssignPatProp struct {
	S     span.Span
	Key   *Ident
	Value Expr
}

func (n *AssignPatProp) Span() span.Span    { return n.S }
func (n *AssignPatProp) objectPatPropNode() {}

// RestPatProp is `...rest` in an object pattern. It must be eliminated
// by the object rest/spread lowering before the destructuring pass
// runs; the destructuring pass treats one as a programming fault.
type RestPatProp struct {
	Dot3 span.Span
	Arg  Pat
}

func (n *RestPatProp) Span() span.Span    { return n.Dot3.To(n.Arg.Span()) }
func (n *RestPatProp) objectPatPropNode() {}
