// Package classes implements the ES2015 class constructor lowering:
// super() calls in a derived-class constructor become prototype calls
// threaded through a synthesized _this binding, and returns become
// possibleConstructorReturn checks.
package classes

import (
	"github.com/MadAppGang/eslower/pkg/ast"
	"github.com/MadAppGang/eslower/pkg/fold"
	"github.com/MadAppGang/eslower/pkg/helpers"
	"github.com/MadAppGang/eslower/pkg/span"
)

// SuperFoldingMode selects how super() results are bound.
type SuperFoldingMode int

const (
	// SuperFoldVar emits `var _this = ...` at the single call site.
	SuperFoldVar SuperFoldingMode = iota

	// SuperFoldAssign emits `var _this;` up front and `_this = ...` at
	// every call site.
	SuperFoldAssign
)

// superCallFinder classifies a constructor body. mode is unset when no
// super() was found; a trailing top-level super() is handled by the
// caller before the finder runs.
type superCallFinder struct {
	fold.BaseVisitor
	mode    SuperFoldingMode
	hasMode bool

	// inComplex is true inside a conditional statement, arrow
	// expression, property key, or the right side of an assignment.
	inComplex bool
}

// FindSuperMode walks a constructor body and decides the folding mode.
// found is false when there is no super() at all, or when the only
// super() is the last top-level statement (compiled as a tail return).
func FindSuperMode(stmts []ast.Stmt) (SuperFoldingMode, bool) {
	v := &superCallFinder{}
	v.Self = v

	if n := len(stmts); n > 0 && isSuperCallStmt(stmts[n-1]) {
		v.VisitStmts(stmts[:n-1])
		if !v.hasMode {
			return 0, false
		}
		v.VisitStmt(stmts[n-1])
		return v.mode, v.hasMode
	}

	v.VisitStmts(stmts)
	return v.mode, v.hasMode
}

func isSuperCallStmt(s ast.Stmt) bool {
	es, ok := s.(*ast.ExprStmt)
	if !ok {
		return false
	}
	call, ok := es.Expr.(*ast.CallExpr)
	if !ok {
		return false
	}
	_, isSuper := call.Callee.(*ast.Super)
	return isSuper
}

func (v *superCallFinder) markComplex(walk func()) {
	old := v.inComplex
	v.inComplex = true
	walk()
	v.inComplex = old
}

func (v *superCallFinder) VisitStmt(s ast.Stmt) {
	if _, ok := s.(*ast.IfStmt); ok {
		v.markComplex(func() { fold.WalkStmtChildren(v.Self, s) })
		return
	}
	fold.WalkStmtChildren(v.Self, s)
}

func (v *superCallFinder) VisitExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.ArrowExpr:
		v.markComplex(func() { fold.WalkExprChildren(v.Self, e) })

	case *ast.AssignExpr:
		v.Self.VisitPat(n.Left)
		v.markComplex(func() { v.Self.VisitExpr(n.Right) })

	case *ast.MemberExpr:
		fold.WalkExprChildren(v.Self, e)
		// super().foo needs the assignment form.
		if call, ok := n.Obj.(*ast.CallExpr); ok {
			if _, isSuper := call.Callee.(*ast.Super); isSuper {
				v.mode, v.hasMode = SuperFoldAssign, true
			}
		}

	case *ast.CallExpr:
		if _, isSuper := n.Callee.(*ast.Super); !isSuper {
			fold.WalkExprChildren(v.Self, e)
			return
		}
		switch {
		case !v.hasMode && !v.inComplex:
			v.mode, v.hasMode = SuperFoldVar, true
		case !v.hasMode && v.inComplex:
			v.mode, v.hasMode = SuperFoldAssign, true
		case v.hasMode && v.mode == SuperFoldVar:
			// Multiple super() calls.
			v.mode = SuperFoldAssign
		}

	default:
		fold.WalkExprChildren(v.Self, e)
	}
}

// A computed property key is a complex context.
func (v *superCallFinder) VisitPropName(p ast.PropName) {
	v.markComplex(func() { fold.WalkPropNameChildren(v.Self, p) })
}

// Don't recurse into class declarations.
func (v *superCallFinder) VisitClass(*ast.Class) {}

// Don't recurse into functions.
func (v *superCallFinder) VisitFunction(*ast.Function) {}

// ConstructorFn converts a lowered constructor into a plain function
// for the class-to-function rewrite.
func ConstructorFn(c *ast.Constructor) *ast.Function {
	params := make([]ast.Pat, len(c.Params))
	for i, p := range c.Params {
		if p.TsProp != nil {
			panic("classes: parameter property survived the TypeScript lowering")
		}
		params[i] = p.Pat
	}
	return &ast.Function{S: span.DummySpan, Params: params, Body: c.Body}
}

// ConstructorFolder rewrites a derived-class constructor body.
//
// In:
//
//	super();
//
// Out:
//
//	_this = possibleConstructorReturn(this, getPrototypeOf(C).call(this));
type ConstructorFolder struct {
	fold.Base

	// ClassName is the identifier of the class being lowered.
	ClassName *ast.Ident

	// Mode and HasMode carry the finder's classification; HasMode is
	// false for the tail-call form, which compiles super() to a
	// return.
	Mode    SuperFoldingMode
	HasMode bool

	// Mark is the hygiene mark of the synthesized _this binding.
	Mark span.Mark

	// IsConstructorDefault marks a synthesized default constructor,
	// which always forwards `arguments`.
	IsConstructorDefault bool

	// Helpers records the runtime helpers the rewrite references.
	Helpers *helpers.Registry

	// ignoreReturn is true while recursing into a nested function or
	// class, whose returns are not the constructor's returns.
	ignoreReturn bool
}

// NewConstructorFolder wires the folder's dispatch.
func NewConstructorFolder(f ConstructorFolder) *ConstructorFolder {
	out := &f
	out.Self = out
	return out
}

func (f *ConstructorFolder) thisIdent() *ast.Ident {
	return ast.NewIdent("_this", span.DummySpan.ApplyMark(f.Mark))
}

func (f *ConstructorFolder) FoldStmt(s ast.Stmt) ast.Stmt {
	if ret, ok := s.(*ast.ReturnStmt); ok {
		if f.ignoreReturn {
			return ret
		}
		var arg ast.Expr
		if ret.Arg != nil {
			arg = f.Self.FoldExpr(ret.Arg)
		}
		return &ast.ReturnStmt{
			S:   ret.S,
			Arg: makePossibleReturnValue(f.Helpers, returningMode{mark: f.Mark, arg: arg, hasThis: true}),
		}
	}

	s = fold.FoldStmtChildren(f.Self, s)

	if !isSuperCallStmt(s) {
		return s
	}
	call := s.(*ast.ExprStmt).Expr.(*ast.CallExpr)
	expr := makePossibleReturnValue(f.Helpers, returningMode{
		prototype:            true,
		isConstructorDefault: f.IsConstructorDefault,
		className:            f.ClassName,
		args:                 call.Args,
		hasArgs:              true,
	})

	switch {
	case f.HasMode && f.Mode == SuperFoldAssign:
		return &ast.ExprStmt{S: span.DummySpan, Expr: &ast.AssignExpr{
			S: span.DummySpan, Op: "=", Left: f.thisIdent(), Right: expr,
		}}
	case f.HasMode && f.Mode == SuperFoldVar:
		return &ast.VarDecl{
			S:    span.DummySpan,
			Kind: ast.VarDeclVar,
			Decls: []*ast.VarDeclarator{
				{S: span.DummySpan, Name: f.thisIdent(), Init: expr},
			},
		}
	default:
		return &ast.ReturnStmt{S: span.DummySpan, Arg: expr}
	}
}

func (f *ConstructorFolder) FoldExpr(e ast.Expr) ast.Expr {
	// Only the assignment form rewrites expressions; the other modes
	// have exactly one straight-line super() handled at the statement
	// level.
	if !f.HasMode || f.Mode != SuperFoldAssign {
		return e
	}

	if _, ok := e.(*ast.ArrowExpr); ok {
		old := f.ignoreReturn
		f.ignoreReturn = true
		e = fold.FoldExprChildren(f.Self, e)
		f.ignoreReturn = old
		return e
	}

	e = fold.FoldExprChildren(f.Self, e)

	switch n := e.(type) {
	case *ast.ThisExpr:
		return ast.NewIdent("_this", n.S.ApplyMark(f.Mark))
	case *ast.CallExpr:
		if _, isSuper := n.Callee.(*ast.Super); !isSuper {
			return e
		}
		right := makePossibleReturnValue(f.Helpers, returningMode{
			prototype:            true,
			isConstructorDefault: f.IsConstructorDefault,
			className:            f.ClassName,
			args:                 n.Args,
			hasArgs:              true,
		})
		return &ast.AssignExpr{S: span.DummySpan, Op: "=", Left: f.thisIdent(), Right: right}
	default:
		return e
	}
}

func (f *ConstructorFolder) foldIgnoringReturns(body func()) {
	old := f.ignoreReturn
	f.ignoreReturn = true
	body()
	f.ignoreReturn = old
}

func (f *ConstructorFolder) FoldFunction(fn *ast.Function) *ast.Function {
	var out *ast.Function
	f.foldIgnoringReturns(func() { out = fold.FoldFunctionChildren(f.Self, fn) })
	return out
}

func (f *ConstructorFolder) FoldClass(c *ast.Class) *ast.Class {
	var out *ast.Class
	f.foldIgnoringReturns(func() { out = fold.FoldClassChildren(f.Self, c) })
	return out
}

func (f *ConstructorFolder) FoldConstructor(c *ast.Constructor) *ast.Constructor {
	var out *ast.Constructor
	f.foldIgnoringReturns(func() { out = fold.FoldConstructorChildren(f.Self, c) })
	return out
}

// returningMode describes what makePossibleReturnValue wraps: either a
// user return (`return arg`) or a super() call compiled to a prototype
// call.
type returningMode struct {
	// Returning form.
	hasThis bool
	mark    span.Mark
	arg     ast.Expr

	// Prototype form.
	prototype            bool
	isConstructorDefault bool
	className            *ast.Ident
	args                 []*ast.ExprOrSpread
	hasArgs              bool
}

func makePossibleReturnValue(h *helpers.Registry, mode returningMode) *ast.CallExpr {
	callee := h.Ident(helpers.PossibleConstructorReturn)

	if !mode.prototype {
		args := []*ast.ExprOrSpread{
			ast.AsArg(ast.NewIdent("_this", span.DummySpan.ApplyMark(mode.mark))),
		}
		if mode.arg != nil {
			args = append(args, ast.AsArg(mode.arg))
		}
		return &ast.CallExpr{S: span.DummySpan, Callee: callee, Args: args}
	}

	var (
		fnName string
		args   []*ast.ExprOrSpread
	)
	switch {
	case mode.isConstructorDefault || !mode.hasArgs:
		// Injected constructors forward the raw arguments object.
		fnName = "apply"
		args = ast.Args(
			&ast.ThisExpr{S: span.DummySpan},
			ast.NewIdent("arguments", span.DummySpan),
		)
	case len(mode.args) == 1 && mode.args[0].HasSpread:
		// super(...spread) unwraps to .apply(this, spread).
		fnName = "apply"
		args = []*ast.ExprOrSpread{
			ast.AsArg(&ast.ThisExpr{S: span.DummySpan}),
			{Expr: mode.args[0].Expr},
		}
	default:
		fnName = "call"
		args = make([]*ast.ExprOrSpread, 0, len(mode.args)+1)
		args = append(args, ast.AsArg(&ast.ThisExpr{S: span.DummySpan}))
		args = append(args, mode.args...)
	}

	protoCall := &ast.CallExpr{
		S:      span.DummySpan,
		Callee: ast.Member(getPrototypeOf(h, mode.className), fnName),
		Args:   args,
	}

	return &ast.CallExpr{
		S:      span.DummySpan,
		Callee: callee,
		Args:   ast.Args(&ast.ThisExpr{S: span.DummySpan}, protoCall),
	}
}

// getPrototypeOf emits `getPrototypeOf(className)`.
func getPrototypeOf(h *helpers.Registry, className *ast.Ident) ast.Expr {
	return h.Call(helpers.GetPrototypeOf, className)
}

// thisReplacer rewrites `this` to the marked `_this`, wrapping each
// occurrence in assertThisInitialized except when `this` is the object
// of a member expression.
type thisReplacer struct {
	fold.Base
	mark     span.Mark
	h        *helpers.Registry
	found    bool
	wrapWith bool
}

func (r *thisReplacer) FoldExpr(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.ThisExpr:
		r.found = true
		this := ast.NewIdent("_this", span.DummySpan.ApplyMark(r.mark))
		if r.wrapWith {
			return r.h.Call(helpers.AssertThisInitialized, this)
		}
		return this
	case *ast.MemberExpr:
		old := r.wrapWith
		r.wrapWith = false
		obj := r.Self.FoldExpr(n.Obj)
		r.wrapWith = old

		prop := n.Prop
		if n.Computed {
			prop = r.Self.FoldExpr(n.Prop)
		}
		return &ast.MemberExpr{S: n.S, Obj: obj, Prop: prop, Computed: n.Computed}
	default:
		return fold.FoldExprChildren(r.Self, e)
	}
}

// A nested class has its own this.
func (r *thisReplacer) FoldClass(c *ast.Class) *ast.Class { return c }

// A nested function has its own this.
func (r *thisReplacer) FoldFunction(fn *ast.Function) *ast.Function { return fn }

// ReplaceThisInConstructor rewrites every `this` in the constructor to
// the marked `_this` and reports whether any occurrence was found.
func ReplaceThisInConstructor(mark span.Mark, c *ast.Constructor, h *helpers.Registry) (*ast.Constructor, bool) {
	r := &thisReplacer{mark: mark, h: h, wrapWith: true}
	r.Self = r
	out := fold.FoldConstructorChildren(r, c)
	return out, r.found
}

// VarRenamer marks nested bindings that shadow the class name, so the
// outer class binding stays resolvable after the class becomes a
// function.
//
// In:
//
//	class Example { constructor() { var Example; } }
//
// Out: the inner Example carries a fresh mark and renames away.
type VarRenamer struct {
	fold.Base
	Mark      span.Mark
	ClassName string
}

// NewVarRenamer wires the renamer's dispatch.
func NewVarRenamer(mark span.Mark, className string) *VarRenamer {
	r := &VarRenamer{Mark: mark, ClassName: className}
	r.Self = r
	return r
}

func (r *VarRenamer) FoldPat(p ast.Pat) ast.Pat {
	if ident, ok := p.(*ast.Ident); ok {
		if ident.Name == r.ClassName {
			return ast.NewIdent(ident.Name, ident.S.ApplyMark(r.Mark))
		}
		return ident
	}
	return fold.FoldPatChildren(r.Self, p)
}
