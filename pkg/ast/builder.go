package ast

import "github.com/MadAppGang/eslower/pkg/span"

// Builder helpers for synthesized nodes. Passes construct rewritten
// subtrees with these instead of spelling every struct literal out.

// NewIdent returns an identifier with the given span.
func NewIdent(name string, s span.Span) *Ident {
	return &Ident{S: s, Name: name}
}

// Num returns a synthesized numeric literal.
func Num(value float64) *NumLit {
	return &NumLit{S: span.DummySpan, Value: value}
}

// Str returns a synthesized string literal.
func Str(value string) *StrLit {
	return &StrLit{S: span.DummySpan, Value: value}
}

// Undefined returns the canonical `void 0` expression.
func Undefined(s span.Span) Expr {
	return &UnaryExpr{S: s, Op: "void", Arg: &NumLit{S: s, Value: 0}}
}

// Member returns `obj.name`.
func Member(obj Expr, name string) *MemberExpr {
	return &MemberExpr{
		S:    span.DummySpan,
		Obj:  obj,
		Prop: NewIdent(name, span.DummySpan),
	}
}

// ComputedMember returns `obj[prop]`.
func ComputedMember(obj Expr, prop Expr) *MemberExpr {
	return &MemberExpr{S: span.DummySpan, Obj: obj, Prop: prop, Computed: true}
}

// IndexMember returns `obj[i]`.
func IndexMember(obj Expr, i int) *MemberExpr {
	return ComputedMember(obj, Num(float64(i)))
}

// AsArg wraps an expression as a plain call argument.
func AsArg(e Expr) *ExprOrSpread {
	return &ExprOrSpread{Expr: e}
}

// Args wraps expressions as plain call arguments.
func Args(exprs ...Expr) []*ExprOrSpread {
	out := make([]*ExprOrSpread, len(exprs))
	for i, e := range exprs {
		out[i] = AsArg(e)
	}
	return out
}

// Call returns `callee(args...)` with a dummy span.
func Call(callee Expr, args ...Expr) *CallExpr {
	return &CallExpr{S: span.DummySpan, Callee: callee, Args: Args(args...)}
}

// Assign returns `left = right` with a dummy span.
func Assign(left Pat, right Expr) *AssignExpr {
	return &AssignExpr{S: span.DummySpan, Op: "=", Left: left, Right: right}
}

// PropNameToExpr converts a property name into the expression used to
// access it: identifiers stay identifiers, literals stay literals, and
// computed names unwrap to their expression.
func PropNameToExpr(key PropName) Expr {
	switch k := key.(type) {
	case *Ident:
		return k
	case *StrLit:
		return k
	case *NumLit:
		return k
	case *ComputedPropName:
		return k.Expr
	default:
		return &InvalidExpr{S: key.Span()}
	}
}
