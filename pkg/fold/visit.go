package fold

import (
	"fmt"

	"github.com/MadAppGang/eslower/pkg/ast"
)

// Visitor is a read-only, pre-order traversal over the AST. Children
// are visited in source order. Overriding an entry point with a no-op
// cuts traversal below that kind; the SuperCallFinder uses this to
// avoid descending into nested functions and classes.
type Visitor interface {
	VisitProgram(*ast.Program)
	VisitStmts([]ast.Stmt)
	VisitStmt(ast.Stmt)
	VisitExpr(ast.Expr)
	VisitPat(ast.Pat)
	VisitPropName(ast.PropName)
	VisitObjectPatProp(ast.ObjectPatProp)
	VisitVarDeclarator(*ast.VarDeclarator)
	VisitBlockStmt(*ast.BlockStmt)
	VisitFunction(*ast.Function)
	VisitClass(*ast.Class)
	VisitClassMember(ast.ClassMember)
	VisitConstructor(*ast.Constructor)
}

// BaseVisitor provides the default recursion for every Visitor entry
// point. Self must be set to the outermost visitor before use.
type BaseVisitor struct {
	Self Visitor
}

func (b *BaseVisitor) VisitProgram(p *ast.Program)    { WalkProgramChildren(b.Self, p) }
func (b *BaseVisitor) VisitStmts(s []ast.Stmt)        { WalkStmtsChildren(b.Self, s) }
func (b *BaseVisitor) VisitStmt(s ast.Stmt)           { WalkStmtChildren(b.Self, s) }
func (b *BaseVisitor) VisitExpr(e ast.Expr)           { WalkExprChildren(b.Self, e) }
func (b *BaseVisitor) VisitPat(p ast.Pat)             { WalkPatChildren(b.Self, p) }
func (b *BaseVisitor) VisitPropName(p ast.PropName)   { WalkPropNameChildren(b.Self, p) }
func (b *BaseVisitor) VisitObjectPatProp(p ast.ObjectPatProp) {
	WalkObjectPatPropChildren(b.Self, p)
}
func (b *BaseVisitor) VisitVarDeclarator(d *ast.VarDeclarator) {
	WalkVarDeclaratorChildren(b.Self, d)
}
func (b *BaseVisitor) VisitBlockStmt(s *ast.BlockStmt)   { WalkBlockStmtChildren(b.Self, s) }
func (b *BaseVisitor) VisitFunction(f *ast.Function)     { WalkFunctionChildren(b.Self, f) }
func (b *BaseVisitor) VisitClass(c *ast.Class)           { WalkClassChildren(b.Self, c) }
func (b *BaseVisitor) VisitClassMember(m ast.ClassMember) {
	WalkClassMemberChildren(b.Self, m)
}
func (b *BaseVisitor) VisitConstructor(c *ast.Constructor) {
	WalkConstructorChildren(b.Self, c)
}

// WalkProgramChildren visits the program body.
func WalkProgramChildren(v Visitor, p *ast.Program) {
	if p != nil {
		v.VisitStmts(p.Body)
	}
}

// WalkStmtsChildren visits each statement in source order.
func WalkStmtsChildren(v Visitor, stmts []ast.Stmt) {
	for _, s := range stmts {
		v.VisitStmt(s)
	}
}

// WalkStmtChildren visits the children of one statement.
func WalkStmtChildren(v Visitor, s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		v.VisitBlockStmt(n)
	case *ast.EmptyStmt:
	case *ast.ExprStmt:
		v.VisitExpr(n.Expr)
	case *ast.ReturnStmt:
		if n.Arg != nil {
			v.VisitExpr(n.Arg)
		}
	case *ast.ThrowStmt:
		v.VisitExpr(n.Arg)
	case *ast.IfStmt:
		v.VisitExpr(n.Test)
		v.VisitStmt(n.Cons)
		if n.Alt != nil {
			v.VisitStmt(n.Alt)
		}
	case *ast.WhileStmt:
		v.VisitExpr(n.Test)
		v.VisitStmt(n.Body)
	case *ast.ForStmt:
		switch init := n.Init.(type) {
		case nil:
		case *ast.VarDecl:
			v.VisitStmt(init)
		case ast.Expr:
			v.VisitExpr(init)
		}
		if n.Test != nil {
			v.VisitExpr(n.Test)
		}
		if n.Update != nil {
			v.VisitExpr(n.Update)
		}
		v.VisitStmt(n.Body)
	case *ast.ForInStmt:
		walkForHead(v, n.Left)
		v.VisitExpr(n.Right)
		v.VisitStmt(n.Body)
	case *ast.ForOfStmt:
		walkForHead(v, n.Left)
		v.VisitExpr(n.Right)
		v.VisitStmt(n.Body)
	case *ast.LabeledStmt:
		v.VisitStmt(n.Body)
	case *ast.VarDecl:
		for _, d := range n.Decls {
			v.VisitVarDeclarator(d)
		}
	case *ast.FnDecl:
		v.VisitFunction(n.Fn)
	case *ast.ClassDecl:
		v.VisitClass(n.Class)
	case *ast.ExportDecl:
		v.VisitStmt(n.Decl)
	default:
		panic(fmt.Sprintf("fold: unhandled statement kind %T", s))
	}
}

func walkForHead(v Visitor, h *ast.ForHead) {
	if h == nil {
		return
	}
	if h.VarDecl != nil {
		v.VisitStmt(h.VarDecl)
		return
	}
	v.VisitPat(h.Pat)
}

// WalkExprChildren visits the children of one expression. Non-computed
// member property names are skipped, mirroring the folder.
func WalkExprChildren(v Visitor, e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident, *ast.PrivateName, *ast.ThisExpr, *ast.Super,
		*ast.StrLit, *ast.NumLit, *ast.BoolLit, *ast.NullLit, *ast.RegexLit,
		*ast.MetaPropExpr, *ast.JSXElement, *ast.InvalidExpr:
	case *ast.ArrayLit:
		walkExprOrSpreads(v, n.Elems)
	case *ast.ObjectLit:
		for _, p := range n.Props {
			switch pr := p.(type) {
			case *ast.KeyValueProp:
				v.VisitPropName(pr.Key)
				v.VisitExpr(pr.Value)
			case *ast.ShorthandProp:
			}
		}
	case *ast.UnaryExpr:
		v.VisitExpr(n.Arg)
	case *ast.UpdateExpr:
		v.VisitExpr(n.Arg)
	case *ast.BinExpr:
		v.VisitExpr(n.Left)
		v.VisitExpr(n.Right)
	case *ast.AssignExpr:
		v.VisitPat(n.Left)
		v.VisitExpr(n.Right)
	case *ast.MemberExpr:
		v.VisitExpr(n.Obj)
		if n.Computed {
			v.VisitExpr(n.Prop)
		}
	case *ast.CondExpr:
		v.VisitExpr(n.Test)
		v.VisitExpr(n.Cons)
		v.VisitExpr(n.Alt)
	case *ast.CallExpr:
		v.VisitExpr(n.Callee)
		walkExprOrSpreads(v, n.Args)
	case *ast.NewExpr:
		v.VisitExpr(n.Callee)
		walkExprOrSpreads(v, n.Args)
	case *ast.SeqExpr:
		for _, x := range n.Exprs {
			v.VisitExpr(x)
		}
	case *ast.TplLit:
		for _, x := range n.Exprs {
			v.VisitExpr(x)
		}
	case *ast.TaggedTpl:
		v.VisitExpr(n.Tag)
		for _, x := range n.Tpl.Exprs {
			v.VisitExpr(x)
		}
	case *ast.FnExpr:
		v.VisitFunction(n.Fn)
	case *ast.ArrowExpr:
		for _, p := range n.Params {
			v.VisitPat(p)
		}
		switch body := n.Body.(type) {
		case *ast.BlockStmt:
			v.VisitBlockStmt(body)
		case ast.Expr:
			v.VisitExpr(body)
		}
	case *ast.ClassExpr:
		v.VisitClass(n.Class)
	case *ast.YieldExpr:
		if n.Arg != nil {
			v.VisitExpr(n.Arg)
		}
	case *ast.AwaitExpr:
		v.VisitExpr(n.Arg)
	case *ast.ParenExpr:
		v.VisitExpr(n.Expr)
	case *ast.TsNonNullExpr:
		v.VisitExpr(n.Expr)
	case *ast.TsAsExpr:
		v.VisitExpr(n.Expr)
	default:
		panic(fmt.Sprintf("fold: unhandled expression kind %T", e))
	}
}

func walkExprOrSpreads(v Visitor, args []*ast.ExprOrSpread) {
	for _, a := range args {
		if a != nil {
			v.VisitExpr(a.Expr)
		}
	}
}

// WalkPatChildren visits the children of one pattern.
func WalkPatChildren(v Visitor, p ast.Pat) {
	switch n := p.(type) {
	case *ast.Ident, *ast.InvalidPat:
	case *ast.ArrayPat:
		for _, el := range n.Elems {
			if el != nil {
				v.VisitPat(el)
			}
		}
	case *ast.RestPat:
		v.VisitPat(n.Arg)
	case *ast.ObjectPat:
		for _, pr := range n.Props {
			v.VisitObjectPatProp(pr)
		}
	case *ast.AssignPat:
		v.VisitPat(n.Left)
		v.VisitExpr(n.Right)
	case *ast.ExprPat:
		v.VisitExpr(n.Expr)
	default:
		panic(fmt.Sprintf("fold: unhandled pattern kind %T", p))
	}
}

// WalkObjectPatPropChildren visits one object-pattern property.
func WalkObjectPatPropChildren(v Visitor, p ast.ObjectPatProp) {
	switch n := p.(type) {
	case *ast.KeyValuePatProp:
		v.VisitPropName(n.Key)
		v.VisitPat(n.Value)
	case *ast.AssignPatProp:
		if n.Value != nil {
			v.VisitExpr(n.Value)
		}
	case *ast.RestPatProp:
		v.VisitPat(n.Arg)
	default:
		panic(fmt.Sprintf("fold: unhandled object-pattern property kind %T", p))
	}
}

// WalkPropNameChildren visits a computed property name's expression.
func WalkPropNameChildren(v Visitor, p ast.PropName) {
	if n, ok := p.(*ast.ComputedPropName); ok {
		v.VisitExpr(n.Expr)
	}
}

// WalkVarDeclaratorChildren visits one declarator.
func WalkVarDeclaratorChildren(v Visitor, d *ast.VarDeclarator) {
	v.VisitPat(d.Name)
	if d.Init != nil {
		v.VisitExpr(d.Init)
	}
}

// WalkBlockStmtChildren visits the block's statement list.
func WalkBlockStmtChildren(v Visitor, b *ast.BlockStmt) {
	if b != nil {
		v.VisitStmts(b.Stmts)
	}
}

// WalkFunctionChildren visits a function's parameters and body.
func WalkFunctionChildren(v Visitor, fn *ast.Function) {
	if fn == nil {
		return
	}
	for _, p := range fn.Params {
		v.VisitPat(p)
	}
	v.VisitBlockStmt(fn.Body)
}

// WalkClassChildren visits a class's heritage clause and members.
func WalkClassChildren(v Visitor, c *ast.Class) {
	if c == nil {
		return
	}
	if c.SuperClass != nil {
		v.VisitExpr(c.SuperClass)
	}
	for _, m := range c.Body {
		v.VisitClassMember(m)
	}
}

// WalkClassMemberChildren visits one class member.
func WalkClassMemberChildren(v Visitor, m ast.ClassMember) {
	switch n := m.(type) {
	case *ast.Constructor:
		v.VisitConstructor(n)
	case *ast.ClassMethod:
		v.VisitPropName(n.Key)
		v.VisitFunction(n.Fn)
	case *ast.ClassProp:
		v.VisitPropName(n.Key)
		if n.Value != nil {
			v.VisitExpr(n.Value)
		}
	default:
		panic(fmt.Sprintf("fold: unhandled class member kind %T", m))
	}
}

// WalkConstructorChildren visits a constructor's parameters and body.
func WalkConstructorChildren(v Visitor, c *ast.Constructor) {
	if c == nil {
		return
	}
	for _, p := range c.Params {
		if p.TsProp == nil {
			v.VisitPat(p.Pat)
		}
	}
	v.VisitBlockStmt(c.Body)
}
