// Package es2015 holds the ES2015 -> ES5 lowerings.
package es2015

import (
	"strconv"

	"github.com/MadAppGang/eslower/pkg/ast"
	"github.com/MadAppGang/eslower/pkg/span"
)

// freshIdents hands out synthesized identifiers. Names come from a
// per-folder counter and every ident carries the folder's hygiene
// mark, so repeated runs over the same input produce syntactically
// equal output.
type freshIdents struct {
	mark   span.Mark
	counts map[string]int

	// issued counts every identifier handed out, across names.
	issued int
}

func newFreshIdents(mark span.Mark) *freshIdents {
	return &freshIdents{mark: mark, counts: make(map[string]int)}
}

// private returns the next `_name` identifier, numbered from the
// second use on.
func (f *freshIdents) private(name string) *ast.Ident {
	f.issued++
	f.counts[name]++
	n := f.counts[name]
	text := "_" + name
	if n > 1 {
		text += strconv.Itoa(n)
	}
	return ast.NewIdent(text, span.DummySpan.ApplyMark(f.mark))
}

// hasRestPat reports whether any array-pattern element is a rest
// pattern.
func hasRestPat(elems []ast.Pat) bool {
	for _, el := range elems {
		if _, ok := el.(*ast.RestPat); ok {
			return true
		}
	}
	return false
}

// isLiteral reports whether the expression is statically a literal:
// a primitive literal, or an array literal whose elements all are.
func isLiteral(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.StrLit, *ast.NumLit, *ast.BoolLit, *ast.NullLit, *ast.RegexLit:
		return true
	case *ast.ArrayLit:
		for _, el := range n.Elems {
			if el == nil {
				continue
			}
			if el.HasSpread || !isLiteral(el.Expr) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// canBeNull classifies expressions that may evaluate to null or
// undefined. Unary, update, and binary expressions are conservatively
// treated as nullable.
func canBeNull(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.NullLit, *ast.ThisExpr, *ast.Ident, *ast.PrivateName,
		*ast.MemberExpr, *ast.CallExpr, *ast.NewExpr, *ast.YieldExpr,
		*ast.AwaitExpr, *ast.MetaPropExpr, *ast.TaggedTpl:
		return true

	case *ast.StrLit, *ast.NumLit, *ast.BoolLit, *ast.RegexLit:
		return false

	case *ast.ArrayLit, *ast.ArrowExpr, *ast.ObjectLit, *ast.FnExpr,
		*ast.ClassExpr, *ast.TplLit:
		return false

	case *ast.ParenExpr:
		return canBeNull(n.Expr)
	case *ast.SeqExpr:
		if len(n.Exprs) == 0 {
			return true
		}
		return canBeNull(n.Exprs[len(n.Exprs)-1])
	case *ast.AssignExpr:
		return canBeNull(n.Right)
	case *ast.CondExpr:
		return canBeNull(n.Cons) || canBeNull(n.Alt)

	case *ast.UnaryExpr, *ast.UpdateExpr, *ast.BinExpr:
		return true

	case *ast.JSXElement:
		panic("es2015: destructuring jsx")

	// Trust the annotation.
	case *ast.TsNonNullExpr:
		return false
	case *ast.TsAsExpr:
		return canBeNull(n.Expr)

	case *ast.InvalidExpr:
		panic("es2015: invalid expression in destructuring")

	default:
		return true
	}
}

// makeCondExpr creates `tmp === void 0 ? defValue : tmp`.
func makeCondExpr(tmp *ast.Ident, defValue ast.Expr) ast.Expr {
	return &ast.CondExpr{
		S: span.DummySpan,
		Test: &ast.BinExpr{
			S:     span.DummySpan,
			Op:    "===",
			Left:  tmp,
			Right: ast.Undefined(span.DummySpan),
		},
		Cons: defValue,
		Alt:  tmp,
	}
}

// makeRefPropExpr creates `ref.prop` or `ref[prop]`; literal keys
// force the computed form.
func makeRefPropExpr(ref *ast.Ident, prop ast.Expr, computed bool) ast.Expr {
	switch prop.(type) {
	case *ast.NumLit, *ast.StrLit:
		computed = true
	}
	return &ast.MemberExpr{S: span.DummySpan, Obj: ref, Prop: prop, Computed: computed}
}

// makeRefIdxExpr creates `ref[i]`.
func makeRefIdxExpr(ref *ast.Ident, i int) ast.Expr {
	return ast.IndexMember(ref, i)
}
