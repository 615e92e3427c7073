package classes

import (
	"github.com/MadAppGang/eslower/pkg/ast"
	"github.com/MadAppGang/eslower/pkg/fold"
	"github.com/MadAppGang/eslower/pkg/pass"
	"github.com/MadAppGang/eslower/pkg/span"
)

// ConstructorLowering is the pass that rewrites derived-class
// constructors: super() calls, this references, and returns.
type ConstructorLowering struct {
	enabled bool
}

// NewConstructorLowering returns the pass, enabled.
func NewConstructorLowering() *ConstructorLowering {
	return &ConstructorLowering{enabled: true}
}

func (p *ConstructorLowering) Name() string { return "es2015-classes" }

func (p *ConstructorLowering) Description() string {
	return "lowers derived-class constructors: super() calls, this, and returns"
}

func (p *ConstructorLowering) Dependencies() []string { return nil }
func (p *ConstructorLowering) Enabled() bool          { return p.enabled }
func (p *ConstructorLowering) SetEnabled(v bool)      { p.enabled = v }

// Transform rewrites every derived class in the program.
func (p *ConstructorLowering) Transform(ctx *pass.Context, program *ast.Program) (*ast.Program, error) {
	f := &classFolder{ctx: ctx}
	f.Self = f
	return f.FoldProgram(program), nil
}

type classFolder struct {
	fold.Base
	ctx *pass.Context
}

func (f *classFolder) FoldStmt(s ast.Stmt) ast.Stmt {
	s = fold.FoldStmtChildren(f.Self, s)
	if decl, ok := s.(*ast.ClassDecl); ok && decl.Class.IsDerived() {
		return &ast.ClassDecl{ID: decl.ID, Class: lowerClass(f.ctx, decl.ID, decl.Class)}
	}
	return s
}

func (f *classFolder) FoldExpr(e ast.Expr) ast.Expr {
	e = fold.FoldExprChildren(f.Self, e)
	if expr, ok := e.(*ast.ClassExpr); ok && expr.Class.IsDerived() && expr.ID != nil {
		return &ast.ClassExpr{ID: expr.ID, Class: lowerClass(f.ctx, expr.ID, expr.Class)}
	}
	return e
}

// lowerClass rewrites the constructor of one derived class. A class
// with no user constructor gets a synthesized one that forwards
// `arguments`.
func lowerClass(ctx *pass.Context, className *ast.Ident, class *ast.Class) *ast.Class {
	ctorIdx := -1
	for i, m := range class.Body {
		if _, ok := m.(*ast.Constructor); ok {
			ctorIdx = i
			break
		}
	}

	var ctor *ast.Constructor
	if ctorIdx >= 0 {
		ctor = class.Body[ctorIdx].(*ast.Constructor)
	} else {
		ctor = defaultConstructor(class.S)
	}
	if ctor.Body == nil {
		return class
	}

	lowered := lowerConstructor(ctx, className, ctor)

	body := make([]ast.ClassMember, len(class.Body), len(class.Body)+1)
	copy(body, class.Body)
	if ctorIdx >= 0 {
		body[ctorIdx] = lowered
	} else {
		body = append(body, lowered)
	}
	return &ast.Class{S: class.S, SuperClass: class.SuperClass, Body: body}
}

// defaultConstructor synthesizes `constructor() { super(); }` for a
// derived class without one; the folder compiles it to a prototype
// apply over `arguments`.
func defaultConstructor(s span.Span) *ast.Constructor {
	superCall := &ast.ExprStmt{
		S:    span.DummySpan,
		Expr: &ast.CallExpr{S: span.DummySpan, Callee: &ast.Super{S: span.DummySpan}},
	}
	return &ast.Constructor{
		S:           s,
		Key:         ast.NewIdent("constructor", span.DummySpan),
		Body:        &ast.BlockStmt{S: span.DummySpan, Stmts: []ast.Stmt{superCall}},
		Synthesized: true,
	}
}

func lowerConstructor(ctx *pass.Context, className *ast.Ident, ctor *ast.Constructor) *ast.Constructor {
	mode, hasMode := FindSuperMode(ctor.Body.Stmts)
	mark := span.FreshMark(span.RootMark)

	// The _this binding only exists in the Var/Assign forms; the tail
	// form returns straight through `this`.
	if hasMode {
		ctor, _ = ReplaceThisInConstructor(mark, ctor, ctx.Helpers)
	}

	folder := NewConstructorFolder(ConstructorFolder{
		ClassName:            className,
		Mode:                 mode,
		HasMode:              hasMode,
		Mark:                 mark,
		IsConstructorDefault: ctor.Synthesized,
		Helpers:              ctx.Helpers,
	})
	body := folder.FoldBlockStmt(ctor.Body)

	if hasMode {
		stmts := body.Stmts
		if mode == SuperFoldAssign {
			// var _this;
			decl := &ast.VarDecl{
				S:    span.DummySpan,
				Kind: ast.VarDeclVar,
				Decls: []*ast.VarDeclarator{
					{S: span.DummySpan, Name: ast.NewIdent("_this", span.DummySpan.ApplyMark(mark))},
				},
			}
			stmts = append([]ast.Stmt{decl}, stmts...)
		}
		if !endsWithReturn(stmts) {
			ret := makePossibleReturnValue(ctx.Helpers, returningMode{
				mark:    mark,
				arg:     ast.Undefined(span.DummySpan),
				hasThis: true,
			})
			stmts = append(stmts, &ast.ReturnStmt{S: span.DummySpan, Arg: ret})
		}
		body = &ast.BlockStmt{S: body.S, Stmts: stmts}
	}

	// Inner bindings shadowing the class name rename away.
	renamer := NewVarRenamer(span.FreshMark(span.RootMark), className.Name)
	body = renamer.FoldBlockStmt(body)

	return &ast.Constructor{
		S:           ctor.S,
		Key:         ctor.Key,
		Params:      ctor.Params,
		Body:        body,
		Synthesized: ctor.Synthesized,
	}
}

func endsWithReturn(stmts []ast.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(*ast.ReturnStmt)
	return ok
}
