// Package fold implements the generic traversal protocol over the
// ECMAScript AST: a read-only Visitor and an owning Folder, each with
// per-kind entry points and a default "recurse into children" rule.
//
// Passes embed Base (or BaseVisitor) and override only the entry
// points they care about. Base dispatches every child through the
// Self field, so a pass that overrides only FoldExpr still sees
// expressions embedded inside statements, declarators, and class
// members. Construct with:
//
//	f := &myFolder{}
//	f.Self = f
//
// Folds are identity-preserving: a default fold of an unchanged node
// returns a node sharing all unchanged children, and spans are never
// substituted by the protocol itself.
package fold

import (
	"fmt"

	"github.com/MadAppGang/eslower/pkg/ast"
)

// Folder is an owning AST transformation. Each method consumes a node
// and returns its replacement.
type Folder interface {
	FoldProgram(*ast.Program) *ast.Program
	FoldStmts([]ast.Stmt) []ast.Stmt
	FoldStmt(ast.Stmt) ast.Stmt
	FoldExpr(ast.Expr) ast.Expr
	FoldPat(ast.Pat) ast.Pat
	FoldPropName(ast.PropName) ast.PropName
	FoldObjectPatProp(ast.ObjectPatProp) ast.ObjectPatProp
	FoldVarDeclarator(*ast.VarDeclarator) *ast.VarDeclarator
	FoldVarDeclarators([]*ast.VarDeclarator) []*ast.VarDeclarator
	FoldBlockStmt(*ast.BlockStmt) *ast.BlockStmt
	FoldFunction(*ast.Function) *ast.Function
	FoldClass(*ast.Class) *ast.Class
	FoldClassMember(ast.ClassMember) ast.ClassMember
	FoldConstructor(*ast.Constructor) *ast.Constructor
}

// Base provides the default recursion for every Folder entry point.
// Self must be set to the outermost folder before use.
type Base struct {
	Self Folder
}

func (b *Base) FoldProgram(p *ast.Program) *ast.Program { return FoldProgramChildren(b.Self, p) }
func (b *Base) FoldStmts(s []ast.Stmt) []ast.Stmt       { return FoldStmtsChildren(b.Self, s) }
func (b *Base) FoldStmt(s ast.Stmt) ast.Stmt            { return FoldStmtChildren(b.Self, s) }
func (b *Base) FoldExpr(e ast.Expr) ast.Expr            { return FoldExprChildren(b.Self, e) }
func (b *Base) FoldPat(p ast.Pat) ast.Pat               { return FoldPatChildren(b.Self, p) }
func (b *Base) FoldPropName(p ast.PropName) ast.PropName {
	return FoldPropNameChildren(b.Self, p)
}
func (b *Base) FoldObjectPatProp(p ast.ObjectPatProp) ast.ObjectPatProp {
	return FoldObjectPatPropChildren(b.Self, p)
}
func (b *Base) FoldVarDeclarator(d *ast.VarDeclarator) *ast.VarDeclarator {
	return FoldVarDeclaratorChildren(b.Self, d)
}
func (b *Base) FoldVarDeclarators(ds []*ast.VarDeclarator) []*ast.VarDeclarator {
	return FoldVarDeclaratorsChildren(b.Self, ds)
}
func (b *Base) FoldBlockStmt(s *ast.BlockStmt) *ast.BlockStmt {
	return FoldBlockStmtChildren(b.Self, s)
}
func (b *Base) FoldFunction(f *ast.Function) *ast.Function { return FoldFunctionChildren(b.Self, f) }
func (b *Base) FoldClass(c *ast.Class) *ast.Class          { return FoldClassChildren(b.Self, c) }
func (b *Base) FoldClassMember(m ast.ClassMember) ast.ClassMember {
	return FoldClassMemberChildren(b.Self, m)
}
func (b *Base) FoldConstructor(c *ast.Constructor) *ast.Constructor {
	return FoldConstructorChildren(b.Self, c)
}

// FoldProgramChildren folds the program body.
func FoldProgramChildren(f Folder, p *ast.Program) *ast.Program {
	if p == nil {
		return nil
	}
	return &ast.Program{S: p.S, Body: f.FoldStmts(p.Body)}
}

// FoldStmtsChildren folds each statement in source order.
func FoldStmtsChildren(f Folder, stmts []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = f.FoldStmt(s)
	}
	return out
}

// FoldStmtChildren folds the children of one statement, dispatching
// nested kinds through the folder's entry points.
func FoldStmtChildren(f Folder, s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.BlockStmt:
		return f.FoldBlockStmt(n)
	case *ast.EmptyStmt:
		return n
	case *ast.ExprStmt:
		return &ast.ExprStmt{S: n.S, Expr: f.FoldExpr(n.Expr)}
	case *ast.ReturnStmt:
		out := &ast.ReturnStmt{S: n.S}
		if n.Arg != nil {
			out.Arg = f.FoldExpr(n.Arg)
		}
		return out
	case *ast.ThrowStmt:
		return &ast.ThrowStmt{S: n.S, Arg: f.FoldExpr(n.Arg)}
	case *ast.IfStmt:
		out := &ast.IfStmt{S: n.S, Test: f.FoldExpr(n.Test), Cons: f.FoldStmt(n.Cons)}
		if n.Alt != nil {
			out.Alt = f.FoldStmt(n.Alt)
		}
		return out
	case *ast.WhileStmt:
		return &ast.WhileStmt{S: n.S, Test: f.FoldExpr(n.Test), Body: f.FoldStmt(n.Body)}
	case *ast.ForStmt:
		out := &ast.ForStmt{S: n.S, Body: f.FoldStmt(n.Body)}
		switch init := n.Init.(type) {
		case nil:
		case *ast.VarDecl:
			out.Init = f.FoldStmt(init)
		case ast.Expr:
			out.Init = f.FoldExpr(init)
		default:
			out.Init = n.Init
		}
		if n.Test != nil {
			out.Test = f.FoldExpr(n.Test)
		}
		if n.Update != nil {
			out.Update = f.FoldExpr(n.Update)
		}
		return out
	case *ast.ForInStmt:
		return &ast.ForInStmt{
			S:     n.S,
			Left:  foldForHead(f, n.Left),
			Right: f.FoldExpr(n.Right),
			Body:  f.FoldStmt(n.Body),
		}
	case *ast.ForOfStmt:
		return &ast.ForOfStmt{
			S:     n.S,
			Left:  foldForHead(f, n.Left),
			Right: f.FoldExpr(n.Right),
			Body:  f.FoldStmt(n.Body),
		}
	case *ast.LabeledStmt:
		return &ast.LabeledStmt{S: n.S, Label: n.Label, Body: f.FoldStmt(n.Body)}
	case *ast.VarDecl:
		return &ast.VarDecl{S: n.S, Kind: n.Kind, Decls: f.FoldVarDeclarators(n.Decls)}
	case *ast.FnDecl:
		return &ast.FnDecl{ID: n.ID, Fn: f.FoldFunction(n.Fn)}
	case *ast.ClassDecl:
		return &ast.ClassDecl{ID: n.ID, Class: f.FoldClass(n.Class)}
	case *ast.ExportDecl:
		decl, ok := f.FoldStmt(n.Decl).(ast.Decl)
		if !ok {
			panic(fmt.Sprintf("fold: export declaration folded into a non-declaration %T", n.Decl))
		}
		return &ast.ExportDecl{S: n.S, Decl: decl}
	default:
		panic(fmt.Sprintf("fold: unhandled statement kind %T", s))
	}
}

func foldForHead(f Folder, h *ast.ForHead) *ast.ForHead {
	if h == nil {
		return nil
	}
	if h.VarDecl != nil {
		return &ast.ForHead{VarDecl: &ast.VarDecl{
			S:     h.VarDecl.S,
			Kind:  h.VarDecl.Kind,
			Decls: f.FoldVarDeclarators(h.VarDecl.Decls),
		}}
	}
	return &ast.ForHead{Pat: f.FoldPat(h.Pat)}
}

// FoldExprChildren folds the children of one expression. Non-computed
// member property names are left alone: a pass rewriting expressions
// must not rewrite property name identifiers.
func FoldExprChildren(f Folder, e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.Ident, *ast.PrivateName, *ast.ThisExpr, *ast.Super,
		*ast.StrLit, *ast.NumLit, *ast.BoolLit, *ast.NullLit, *ast.RegexLit,
		*ast.MetaPropExpr, *ast.JSXElement, *ast.InvalidExpr:
		return e
	case *ast.ArrayLit:
		return &ast.ArrayLit{S: n.S, Elems: foldExprOrSpreads(f, n.Elems)}
	case *ast.ObjectLit:
		props := make([]ast.Prop, len(n.Props))
		for i, p := range n.Props {
			props[i] = foldProp(f, p)
		}
		return &ast.ObjectLit{S: n.S, Props: props}
	case *ast.UnaryExpr:
		return &ast.UnaryExpr{S: n.S, Op: n.Op, Arg: f.FoldExpr(n.Arg)}
	case *ast.UpdateExpr:
		return &ast.UpdateExpr{S: n.S, Op: n.Op, Prefix: n.Prefix, Arg: f.FoldExpr(n.Arg)}
	case *ast.BinExpr:
		return &ast.BinExpr{S: n.S, Op: n.Op, Left: f.FoldExpr(n.Left), Right: f.FoldExpr(n.Right)}
	case *ast.AssignExpr:
		return &ast.AssignExpr{S: n.S, Op: n.Op, Left: f.FoldPat(n.Left), Right: f.FoldExpr(n.Right)}
	case *ast.MemberExpr:
		out := &ast.MemberExpr{S: n.S, Obj: f.FoldExpr(n.Obj), Prop: n.Prop, Computed: n.Computed}
		if n.Computed {
			out.Prop = f.FoldExpr(n.Prop)
		}
		return out
	case *ast.CondExpr:
		return &ast.CondExpr{S: n.S, Test: f.FoldExpr(n.Test), Cons: f.FoldExpr(n.Cons), Alt: f.FoldExpr(n.Alt)}
	case *ast.CallExpr:
		return &ast.CallExpr{S: n.S, Callee: f.FoldExpr(n.Callee), Args: foldExprOrSpreads(f, n.Args)}
	case *ast.NewExpr:
		out := &ast.NewExpr{S: n.S, Callee: f.FoldExpr(n.Callee)}
		if n.Args != nil {
			out.Args = foldExprOrSpreads(f, n.Args)
		}
		return out
	case *ast.SeqExpr:
		exprs := make([]ast.Expr, len(n.Exprs))
		for i, x := range n.Exprs {
			exprs[i] = f.FoldExpr(x)
		}
		return &ast.SeqExpr{S: n.S, Exprs: exprs}
	case *ast.TplLit:
		return foldTpl(f, n)
	case *ast.TaggedTpl:
		return &ast.TaggedTpl{S: n.S, Tag: f.FoldExpr(n.Tag), Tpl: foldTpl(f, n.Tpl)}
	case *ast.FnExpr:
		return &ast.FnExpr{ID: n.ID, Fn: f.FoldFunction(n.Fn)}
	case *ast.ArrowExpr:
		out := &ast.ArrowExpr{S: n.S, IsAsync: n.IsAsync, IsGenerator: n.IsGenerator}
		out.Params = foldPats(f, n.Params)
		switch body := n.Body.(type) {
		case *ast.BlockStmt:
			out.Body = f.FoldBlockStmt(body)
		case ast.Expr:
			out.Body = f.FoldExpr(body)
		}
		return out
	case *ast.ClassExpr:
		return &ast.ClassExpr{ID: n.ID, Class: f.FoldClass(n.Class)}
	case *ast.YieldExpr:
		out := &ast.YieldExpr{S: n.S, Delegate: n.Delegate}
		if n.Arg != nil {
			out.Arg = f.FoldExpr(n.Arg)
		}
		return out
	case *ast.AwaitExpr:
		return &ast.AwaitExpr{S: n.S, Arg: f.FoldExpr(n.Arg)}
	case *ast.ParenExpr:
		return &ast.ParenExpr{S: n.S, Expr: f.FoldExpr(n.Expr)}
	case *ast.TsNonNullExpr:
		return &ast.TsNonNullExpr{S: n.S, Expr: f.FoldExpr(n.Expr)}
	case *ast.TsAsExpr:
		return &ast.TsAsExpr{S: n.S, Expr: f.FoldExpr(n.Expr)}
	default:
		panic(fmt.Sprintf("fold: unhandled expression kind %T", e))
	}
}

func foldTpl(f Folder, n *ast.TplLit) *ast.TplLit {
	exprs := make([]ast.Expr, len(n.Exprs))
	for i, x := range n.Exprs {
		exprs[i] = f.FoldExpr(x)
	}
	return &ast.TplLit{S: n.S, Exprs: exprs, Quasis: n.Quasis}
}

func foldProp(f Folder, p ast.Prop) ast.Prop {
	switch n := p.(type) {
	case *ast.KeyValueProp:
		return &ast.KeyValueProp{S: n.S, Key: f.FoldPropName(n.Key), Value: f.FoldExpr(n.Value)}
	case *ast.ShorthandProp:
		return n
	default:
		panic(fmt.Sprintf("fold: unhandled property kind %T", p))
	}
}

func foldExprOrSpreads(f Folder, args []*ast.ExprOrSpread) []*ast.ExprOrSpread {
	out := make([]*ast.ExprOrSpread, len(args))
	for i, a := range args {
		if a == nil {
			continue
		}
		out[i] = &ast.ExprOrSpread{Spread: a.Spread, HasSpread: a.HasSpread, Expr: f.FoldExpr(a.Expr)}
	}
	return out
}

func foldPats(f Folder, pats []ast.Pat) []ast.Pat {
	out := make([]ast.Pat, len(pats))
	for i, p := range pats {
		if p == nil {
			continue
		}
		out[i] = f.FoldPat(p)
	}
	return out
}

// FoldPatChildren folds the children of one pattern.
func FoldPatChildren(f Folder, p ast.Pat) ast.Pat {
	switch n := p.(type) {
	case *ast.Ident, *ast.InvalidPat:
		return p
	case *ast.ArrayPat:
		return &ast.ArrayPat{S: n.S, Elems: foldPats(f, n.Elems)}
	case *ast.RestPat:
		return &ast.RestPat{Dot3: n.Dot3, Arg: f.FoldPat(n.Arg)}
	case *ast.ObjectPat:
		props := make([]ast.ObjectPatProp, len(n.Props))
		for i, pr := range n.Props {
			props[i] = f.FoldObjectPatProp(pr)
		}
		return &ast.ObjectPat{S: n.S, Props: props}
	case *ast.AssignPat:
		return &ast.AssignPat{S: n.S, Left: f.FoldPat(n.Left), Right: f.FoldExpr(n.Right)}
	case *ast.ExprPat:
		return &ast.ExprPat{Expr: f.FoldExpr(n.Expr)}
	default:
		panic(fmt.Sprintf("fold: unhandled pattern kind %T", p))
	}
}

// FoldObjectPatPropChildren folds the children of one object-pattern
// property.
func FoldObjectPatPropChildren(f Folder, p ast.ObjectPatProp) ast.ObjectPatProp {
	switch n := p.(type) {
	case *ast.KeyValuePatProp:
		return &ast.KeyValuePatProp{Key: f.FoldPropName(n.Key), Value: f.FoldPat(n.Value)}
	case *ast.AssignPatProp:
		out := &ast.AssignPatProp{S: n.S, Key: n.Key}
		if n.Value != nil {
			out.Value = f.FoldExpr(n.Value)
		}
		return out
	case *ast.RestPatProp:
		return &ast.RestPatProp{Dot3: n.Dot3, Arg: f.FoldPat(n.Arg)}
	default:
		panic(fmt.Sprintf("fold: unhandled object-pattern property kind %T", p))
	}
}

// FoldPropNameChildren folds a property name: only computed names have
// an expression to recurse into.
func FoldPropNameChildren(f Folder, p ast.PropName) ast.PropName {
	if n, ok := p.(*ast.ComputedPropName); ok {
		return &ast.ComputedPropName{S: n.S, Expr: f.FoldExpr(n.Expr)}
	}
	return p
}

// FoldVarDeclaratorChildren folds one declarator.
func FoldVarDeclaratorChildren(f Folder, d *ast.VarDeclarator) *ast.VarDeclarator {
	out := &ast.VarDeclarator{S: d.S, Name: f.FoldPat(d.Name), Definite: d.Definite}
	if d.Init != nil {
		out.Init = f.FoldExpr(d.Init)
	}
	return out
}

// FoldVarDeclaratorsChildren folds each declarator through the
// folder's per-declarator entry point.
func FoldVarDeclaratorsChildren(f Folder, ds []*ast.VarDeclarator) []*ast.VarDeclarator {
	out := make([]*ast.VarDeclarator, len(ds))
	for i, d := range ds {
		out[i] = f.FoldVarDeclarator(d)
	}
	return out
}

// FoldBlockStmtChildren folds the block's statement list.
func FoldBlockStmtChildren(f Folder, b *ast.BlockStmt) *ast.BlockStmt {
	if b == nil {
		return nil
	}
	return &ast.BlockStmt{S: b.S, Stmts: f.FoldStmts(b.Stmts)}
}

// FoldFunctionChildren folds a function's parameters and body.
func FoldFunctionChildren(f Folder, fn *ast.Function) *ast.Function {
	if fn == nil {
		return nil
	}
	return &ast.Function{
		S:           fn.S,
		Params:      foldPats(f, fn.Params),
		Body:        f.FoldBlockStmt(fn.Body),
		IsAsync:     fn.IsAsync,
		IsGenerator: fn.IsGenerator,
	}
}

// FoldClassChildren folds a class's heritage clause and members.
func FoldClassChildren(f Folder, c *ast.Class) *ast.Class {
	if c == nil {
		return nil
	}
	out := &ast.Class{S: c.S}
	if c.SuperClass != nil {
		out.SuperClass = f.FoldExpr(c.SuperClass)
	}
	out.Body = make([]ast.ClassMember, len(c.Body))
	for i, m := range c.Body {
		out.Body[i] = f.FoldClassMember(m)
	}
	return out
}

// FoldClassMemberChildren folds one class member.
func FoldClassMemberChildren(f Folder, m ast.ClassMember) ast.ClassMember {
	switch n := m.(type) {
	case *ast.Constructor:
		return f.FoldConstructor(n)
	case *ast.ClassMethod:
		return &ast.ClassMethod{
			S: n.S, Key: f.FoldPropName(n.Key), Fn: f.FoldFunction(n.Fn),
			Kind: n.Kind, IsStatic: n.IsStatic,
		}
	case *ast.ClassProp:
		out := &ast.ClassProp{S: n.S, Key: f.FoldPropName(n.Key), IsStatic: n.IsStatic}
		if n.Value != nil {
			out.Value = f.FoldExpr(n.Value)
		}
		return out
	default:
		panic(fmt.Sprintf("fold: unhandled class member kind %T", m))
	}
}

// FoldConstructorChildren folds a constructor's parameters and body.
func FoldConstructorChildren(f Folder, c *ast.Constructor) *ast.Constructor {
	if c == nil {
		return nil
	}
	params := make([]*ast.ConstructorParam, len(c.Params))
	for i, p := range c.Params {
		if p.TsProp != nil {
			params[i] = p
			continue
		}
		params[i] = &ast.ConstructorParam{Pat: f.FoldPat(p.Pat)}
	}
	return &ast.Constructor{
		S: c.S, Key: c.Key, Params: params,
		Body: f.FoldBlockStmt(c.Body), Synthesized: c.Synthesized,
	}
}
