package es2015

import (
	"fmt"

	"github.com/MadAppGang/eslower/pkg/ast"
	"github.com/MadAppGang/eslower/pkg/fold"
	"github.com/MadAppGang/eslower/pkg/helpers"
	"github.com/MadAppGang/eslower/pkg/pass"
	"github.com/MadAppGang/eslower/pkg/span"
)

// DestructuringConfig configures the destructuring lowering.
type DestructuringConfig struct {
	// Loose elides toArray/slicedToArray when the right-hand side is
	// statically an array, and reuses a plain identifier right-hand
	// side instead of aliasing it.
	Loose bool
}

// Destructuring lowers array and object patterns in bindings,
// assignments, parameters, and for-in/for-of heads into sequences of
// temporary variables.
//
// In:
//
//	let {x, y} = obj;
//	let [a, b, ...rest] = arr;
//
// Out:
//
//	var _ref = obj, x = _ref.x, y = _ref.y;
//	var _ref2 = toArray(arr), a = _ref2[0], b = _ref2[1], rest = _ref2.slice(2);
type Destructuring struct {
	cfg     DestructuringConfig
	enabled bool
}

// NewDestructuring returns the pass, enabled.
func NewDestructuring(cfg DestructuringConfig) *Destructuring {
	return &Destructuring{cfg: cfg, enabled: true}
}

func (d *Destructuring) Name() string { return "es2015-destructuring" }

func (d *Destructuring) Description() string {
	return "lowers array/object destructuring patterns to temporary variables"
}

func (d *Destructuring) Dependencies() []string { return nil }
func (d *Destructuring) Enabled() bool          { return d.enabled }
func (d *Destructuring) SetEnabled(v bool)      { d.enabled = v }

// Transform rewrites every destructuring site in the program.
func (d *Destructuring) Transform(ctx *pass.Context, program *ast.Program) (*ast.Program, error) {
	f := newDestructuringFolder(d.cfg, ctx)
	return f.FoldProgram(program), nil
}

// destructuringFolder is the statement-list folder: it restructures
// for-in/for-of heads and function parameters, and runs an
// assignFolder over each statement, hoisting that folder's temporary
// declarations in front of the statement.
type destructuringFolder struct {
	fold.Base
	cfg    DestructuringConfig
	ctx    *pass.Context
	idents *freshIdents
}

func newDestructuringFolder(cfg DestructuringConfig, ctx *pass.Context) *destructuringFolder {
	f := &destructuringFolder{
		cfg:    cfg,
		ctx:    ctx,
		idents: newFreshIdents(span.FreshMark(span.RootMark)),
	}
	f.Self = f
	return f
}

func (d *destructuringFolder) FoldStmts(stmts []ast.Stmt) []ast.Stmt {
	// fast path
	if !hasDestructuring(stmts) {
		return stmts
	}

	stmts = fold.FoldStmtsChildren(d.Self, stmts)

	buf := make([]ast.Stmt, 0, len(stmts))
	for _, stmt := range stmts {
		af := newAssignFolder(d)
		folded := af.FoldStmt(stmt)

		// Hoist the statement's temporaries, e.g. `var _ref;`.
		if len(af.vars) > 0 {
			buf = append(buf, &ast.VarDecl{
				S:     span.DummySpan,
				Kind:  ast.VarDeclVar,
				Decls: af.vars,
			})
		}
		buf = append(buf, folded)
	}
	return buf
}

func (d *destructuringFolder) FoldStmt(s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.ForInStmt:
		left, prologue := d.foldForHead(n.Left)
		if prologue == nil {
			return fold.FoldStmtChildren(d.Self, n)
		}
		return fold.FoldStmtChildren(d.Self, &ast.ForInStmt{
			S: n.S, Left: left, Right: n.Right, Body: prependStmt(prologue, n.Body),
		})
	case *ast.ForOfStmt:
		left, prologue := d.foldForHead(n.Left)
		if prologue == nil {
			return fold.FoldStmtChildren(d.Self, n)
		}
		return fold.FoldStmtChildren(d.Self, &ast.ForOfStmt{
			S: n.S, Left: left, Right: n.Right, Body: prependStmt(prologue, n.Body),
		})
	default:
		return fold.FoldStmtChildren(d.Self, s)
	}
}

// foldForHead rewrites a pattern-binding loop head to bind a fresh
// reference instead, returning the statement that unpacks it. A nil
// statement means the head needed no rewriting.
func (d *destructuringFolder) foldForHead(h *ast.ForHead) (*ast.ForHead, ast.Stmt) {
	if h == nil {
		return h, nil
	}

	if h.VarDecl != nil {
		complex := false
		for _, decl := range h.VarDecl.Decls {
			if _, ok := decl.Name.(*ast.Ident); !ok {
				complex = true
				break
			}
		}
		if !complex {
			return h, nil
		}

		ref := d.idents.private("ref")
		left := &ast.ForHead{VarDecl: &ast.VarDecl{
			S:    h.VarDecl.S,
			Kind: h.VarDecl.Kind,
			Decls: []*ast.VarDeclarator{
				{S: span.DummySpan, Name: ref},
			},
		}}

		decls := make([]*ast.VarDeclarator, len(h.VarDecl.Decls))
		for i, decl := range h.VarDecl.Decls {
			decls[i] = &ast.VarDeclarator{S: decl.S, Name: decl.Name, Init: ref}
		}
		unpack := &ast.VarDecl{S: h.VarDecl.S, Kind: ast.VarDeclLet, Decls: decls}
		return left, unpack
	}

	if _, ok := h.Pat.(*ast.Ident); ok {
		return h, nil
	}
	ref := d.idents.private("ref")
	left := &ast.ForHead{Pat: ref}
	unpack := &ast.ExprStmt{S: span.DummySpan, Expr: ast.Assign(h.Pat, ref)}
	return left, unpack
}

func prependStmt(first ast.Stmt, body ast.Stmt) ast.Stmt {
	if block, ok := body.(*ast.BlockStmt); ok {
		stmts := make([]ast.Stmt, 0, len(block.Stmts)+1)
		stmts = append(stmts, first)
		stmts = append(stmts, block.Stmts...)
		return &ast.BlockStmt{S: block.S, Stmts: stmts}
	}
	return &ast.BlockStmt{S: span.DummySpan, Stmts: []ast.Stmt{first, body}}
}

func (d *destructuringFolder) FoldFunction(fn *ast.Function) *ast.Function {
	if fn == nil || fn.Body == nil {
		return fold.FoldFunctionChildren(d.Self, fn)
	}
	params, body := d.foldFnLike(fn.Params, fn.Body)
	return fold.FoldFunctionChildren(d.Self, &ast.Function{
		S: fn.S, Params: params, Body: body,
		IsAsync: fn.IsAsync, IsGenerator: fn.IsGenerator,
	})
}

func (d *destructuringFolder) FoldConstructor(c *ast.Constructor) *ast.Constructor {
	if c == nil || c.Body == nil {
		return fold.FoldConstructorChildren(d.Self, c)
	}
	ps := make([]ast.Pat, len(c.Params))
	for i, p := range c.Params {
		if p.TsProp != nil {
			panic("es2015: parameter property survived the TypeScript lowering")
		}
		ps[i] = p.Pat
	}
	params, body := d.foldFnLike(ps, c.Body)
	cps := make([]*ast.ConstructorParam, len(params))
	for i, p := range params {
		cps[i] = &ast.ConstructorParam{Pat: p}
	}
	return fold.FoldConstructorChildren(d.Self, &ast.Constructor{
		S: c.S, Key: c.Key, Params: cps, Body: body, Synthesized: c.Synthesized,
	})
}

func (d *destructuringFolder) FoldExpr(e ast.Expr) ast.Expr {
	if arrow, ok := e.(*ast.ArrowExpr); ok && arrowNeedsParamRewrite(arrow) {
		body, ok := arrow.Body.(*ast.BlockStmt)
		if !ok {
			expr := arrow.Body.(ast.Expr)
			body = &ast.BlockStmt{S: span.DummySpan, Stmts: []ast.Stmt{
				&ast.ReturnStmt{S: span.DummySpan, Arg: expr},
			}}
		}
		params, block := d.foldFnLike(arrow.Params, body)
		return fold.FoldExprChildren(d.Self, &ast.ArrowExpr{
			S: arrow.S, Params: params, Body: block,
			IsAsync: arrow.IsAsync, IsGenerator: arrow.IsGenerator,
		})
	}
	return fold.FoldExprChildren(d.Self, e)
}

func arrowNeedsParamRewrite(arrow *ast.ArrowExpr) bool {
	for _, p := range arrow.Params {
		switch p.(type) {
		case *ast.ArrayPat, *ast.ObjectPat, *ast.AssignPat:
			return true
		}
	}
	return false
}

// foldFnLike replaces destructuring parameters with fresh references
// and prepends a prologue that unpacks them; the statement-list fold
// over the returned body lowers the prologue like any other binding.
func (d *destructuringFolder) foldFnLike(ps []ast.Pat, body *ast.BlockStmt) ([]ast.Pat, *ast.BlockStmt) {
	params := make([]ast.Pat, 0, len(ps))
	var decls []*ast.VarDeclarator

	for _, pat := range ps {
		switch pat.(type) {
		case *ast.ArrayPat, *ast.ObjectPat, *ast.AssignPat:
			ref := d.idents.private("ref")
			params = append(params, ref)
			decls = append(decls, &ast.VarDeclarator{S: pat.Span(), Name: pat, Init: ref})
		default:
			params = append(params, pat)
		}
	}

	if len(decls) == 0 {
		return params, body
	}
	prologue := &ast.VarDecl{S: span.DummySpan, Kind: ast.VarDeclLet, Decls: decls}
	stmts := make([]ast.Stmt, 0, len(body.Stmts)+1)
	stmts = append(stmts, prologue)
	stmts = append(stmts, body.Stmts...)
	return params, &ast.BlockStmt{S: body.S, Stmts: stmts}
}

// hasDestructuring reports whether any pattern in the statements is
// something other than a plain identifier or assignment-target
// expression.
func hasDestructuring(stmts []ast.Stmt) bool {
	v := &destructuringVisitor{}
	v.Self = v
	v.VisitStmts(stmts)
	return v.found
}

type destructuringVisitor struct {
	fold.BaseVisitor
	found bool
}

func (v *destructuringVisitor) VisitPat(p ast.Pat) {
	fold.WalkPatChildren(v.Self, p)
	switch p.(type) {
	case *ast.Ident, *ast.ExprPat:
	default:
		v.found = true
	}
}

// elemCountRest marks an array pattern containing a rest element: the
// reference is built with toArray instead of slicedToArray.
const elemCountRest = -1

// assignFolder lowers the patterns of one statement. It accumulates
// hoisted temporaries in vars; the enclosing statement-list folder
// emits them as a `var` declaration in front of the statement.
type assignFolder struct {
	fold.Base
	d         *destructuringFolder
	exporting bool
	vars      []*ast.VarDeclarator

	// ignoreReturnValue is set for the expression of an expression
	// statement, where the assignment's value is unused and the
	// trailing reference of a sequence expansion can be dropped.
	ignoreReturnValue bool
}

func newAssignFolder(d *destructuringFolder) *assignFolder {
	a := &assignFolder{d: d}
	a.Self = a
	return a
}

func (a *assignFolder) helpers() *helpers.Registry { return a.d.ctx.Helpers }

func (a *assignFolder) FoldStmt(s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.ExprStmt:
		a.ignoreReturnValue = true
		e := a.Self.FoldExpr(n.Expr)
		if a.ignoreReturnValue {
			panic("es2015: ignore-return hint was not consumed")
		}
		return &ast.ExprStmt{S: n.S, Expr: e}
	case *ast.ExportDecl:
		old := a.exporting
		a.exporting = true
		out := fold.FoldStmtChildren(a.Self, n)
		a.exporting = old
		return out
	case *ast.VarDecl:
		issued := a.d.idents.issued
		decls := a.Self.FoldVarDeclarators(n.Decls)
		kind := n.Kind
		if a.d.idents.issued != issued {
			// References force function scoping for the whole group.
			kind = ast.VarDeclVar
		}
		return &ast.VarDecl{S: n.S, Kind: kind, Decls: decls}
	default:
		return fold.FoldStmtChildren(a.Self, s)
	}
}

func (a *assignFolder) FoldVarDeclarators(ds []*ast.VarDeclarator) []*ast.VarDeclarator {
	ds = fold.FoldVarDeclaratorsChildren(a.Self, ds)

	complex := false
	for _, d := range ds {
		if _, ok := d.Name.(*ast.Ident); !ok {
			complex = true
			break
		}
	}
	if !complex {
		return ds
	}

	decls := make([]*ast.VarDeclarator, 0, len(ds))
	for _, d := range ds {
		a.foldVarDecl(&decls, d)
	}
	return decls
}

func (a *assignFolder) foldVarDecl(decls *[]*ast.VarDeclarator, decl *ast.VarDeclarator) {
	switch name := decl.Name.(type) {
	case *ast.Ident:
		*decls = append(*decls, decl)

	case *ast.RestPat:
		panic(fmt.Sprintf("es2015: rest pattern outside an array pattern: %v", decl.Name))

	case *ast.ArrayPat:
		a.foldArrayPatBinding(decls, name, decl)

	case *ast.ObjectPat:
		if len(name.Props) == 0 {
			a.foldEmptyObjectPatBinding(decls, name, decl)
			return
		}
		a.foldObjectPatBinding(decls, name, decl)

	case *ast.AssignPat:
		if decl.Init == nil {
			panic("es2015: destructuring pattern binding requires initializer")
		}

		var tmp *ast.Ident
		if i, ok := decl.Init.(*ast.Ident); ok && i.S.Ctxt() != span.EmptyCtxt {
			// Already one of our own references; reuse it.
			tmp = i
		} else {
			tmp = a.d.idents.private("tmp")
			*decls = append(*decls, &ast.VarDeclarator{S: span.DummySpan, Name: tmp, Init: decl.Init})
		}

		a.appendFolded(decls, &ast.VarDeclarator{
			S:    name.S,
			Name: name.Left,
			Init: makeCondExpr(tmp, name.Right),
		})

	default:
		panic(fmt.Sprintf("es2015: unhandled pattern %T in binding", decl.Name))
	}
}

func (a *assignFolder) foldArrayPatBinding(decls *[]*ast.VarDeclarator, name *ast.ArrayPat, decl *ast.VarDeclarator) {
	if decl.Init == nil {
		panic("es2015: destructuring pattern binding requires initializer")
	}
	init := decl.Init

	// Literal fast path: bind element-wise, no reference needed.
	if isLiteral(init) {
		if arr, ok := init.(*ast.ArrayLit); ok &&
			(len(name.Elems) == len(arr.Elems) || hasRestPat(name.Elems)) {
			idx := 0
			for _, p := range name.Elems {
				switch pp := p.(type) {
				case nil:
					idx++
				case *ast.RestPat:
					rest := &ast.ArrayLit{S: span.DummySpan, Elems: arr.Elems[idx:]}
					idx = len(arr.Elems)
					a.foldVarDecl(decls, &ast.VarDeclarator{S: pp.Dot3, Name: pp.Arg, Init: rest})
				default:
					var elemInit ast.Expr
					if idx < len(arr.Elems) && arr.Elems[idx] != nil {
						elemInit = arr.Elems[idx].Expr
					}
					idx++
					a.foldVarDecl(decls, &ast.VarDeclarator{S: p.Span(), Name: p, Init: elemInit})
				}
			}
			return
		}
	}

	elemCnt := len(name.Elems)
	if hasRestPat(name.Elems) {
		elemCnt = elemCountRest
	}
	target := decls
	if a.exporting {
		target = &a.vars
	}
	ref := a.makeRefIdentForArray(target, init, elemCnt, true)

	for i, elem := range name.Elems {
		if elem == nil {
			continue
		}
		var vd *ast.VarDeclarator
		if rest, ok := elem.(*ast.RestPat); ok {
			vd = &ast.VarDeclarator{
				S:    rest.Dot3,
				Name: rest.Arg,
				Init: ast.Call(ast.Member(ref, "slice"), ast.Num(float64(i))),
			}
		} else {
			// The element might itself be a pattern, so it goes back
			// through the folder.
			vd = &ast.VarDeclarator{S: elem.Span(), Name: elem, Init: makeRefIdxExpr(ref, i)}
		}
		a.appendFolded(decls, vd)
	}
}

// foldEmptyObjectPatBinding converts
//
//	var {} = init;
//
// to
//
//	var _ref = init !== null ? init : throw(new TypeError(...));
//
// so that a null or undefined right-hand side still fails.
func (a *assignFolder) foldEmptyObjectPatBinding(decls *[]*ast.VarDeclarator, name *ast.ObjectPat, decl *ast.VarDeclarator) {
	if decl.Init == nil {
		panic("es2015: destructuring pattern binding requires initializer")
	}

	src := decl.Init
	if _, ok := src.(*ast.Ident); !ok {
		alias := a.d.idents.private("ref")
		*decls = append(*decls, &ast.VarDeclarator{S: span.DummySpan, Name: alias, Init: src})
		src = alias
	}

	ref := a.d.idents.private("ref")
	guard := &ast.CondExpr{
		S: span.DummySpan,
		Test: &ast.BinExpr{
			S:     span.DummySpan,
			Op:    "!==",
			Left:  src,
			Right: &ast.NullLit{S: span.DummySpan},
		},
		Cons: src,
		Alt: a.helpers().Call(helpers.Throw, &ast.NewExpr{
			S:      span.DummySpan,
			Callee: ast.NewIdent("TypeError", span.DummySpan),
			Args:   ast.Args(ast.Str("Cannot destructure undefined")),
		}),
	}
	*decls = append(*decls, &ast.VarDeclarator{S: name.S, Name: ref, Init: guard})
}

func (a *assignFolder) foldObjectPatBinding(decls *[]*ast.VarDeclarator, name *ast.ObjectPat, decl *ast.VarDeclarator) {
	if decl.Init == nil {
		panic("es2015: destructuring pattern binding requires initializer")
	}
	target := decls
	if a.exporting {
		target = &a.vars
	}

	var ref *ast.Ident
	if i, ok := decl.Init.(*ast.Ident); ok {
		ref = i
		// A bare identifier is normally reused as the reference, but a
		// nullable one is aliased so every property access goes
		// through a binding this pass owns.
		if !a.d.cfg.Loose && canBeNull(decl.Init) {
			fresh := a.d.idents.private("ref")
			*target = append(*target, &ast.VarDeclarator{S: span.DummySpan, Name: fresh, Init: ref})
			ref = fresh
		}
	} else {
		ref = a.d.idents.private("ref")
		*target = append(*target, &ast.VarDeclarator{S: span.DummySpan, Name: ref, Init: decl.Init})
	}

	for _, prop := range name.Props {
		switch p := prop.(type) {
		case *ast.KeyValuePatProp:
			_, computed := p.Key.(*ast.ComputedPropName)
			a.appendFolded(decls, &ast.VarDeclarator{
				S:    p.Key.Span(),
				Name: p.Value,
				Init: makeRefPropExpr(ref, ast.PropNameToExpr(p.Key), computed),
			})

		case *ast.AssignPatProp:
			access := makeRefPropExpr(ref, p.Key, false)
			if p.Value == nil {
				a.appendFolded(decls, &ast.VarDeclarator{S: p.S, Name: p.Key, Init: access})
				continue
			}
			tmp := a.d.idents.private(p.Key.Name)
			*decls = append(*decls, &ast.VarDeclarator{S: span.DummySpan, Name: tmp, Init: access})
			a.appendFolded(decls, &ast.VarDeclarator{
				S:    p.S,
				Name: p.Key,
				Init: makeCondExpr(tmp, p.Value),
			})

		case *ast.RestPatProp:
			panic("es2015: object rest pattern survived the es2018 object rest/spread lowering")
		}
	}
}

// appendFolded runs a freshly built declarator back through the folder
// so nested patterns expand too.
func (a *assignFolder) appendFolded(decls *[]*ast.VarDeclarator, vd *ast.VarDeclarator) {
	*decls = append(*decls, a.Self.FoldVarDeclarators([]*ast.VarDeclarator{vd})...)
}

// makeRefIdentForArray allocates (or reuses) the reference a pattern
// destructures from. For array patterns the initializer is wrapped in
// toArray or slicedToArray unless loose mode or a literal array makes
// the conversion unnecessary.
func (a *assignFolder) makeRefIdentForArray(decls *[]*ast.VarDeclarator, init ast.Expr, elemCnt int, hasCnt bool) *ast.Ident {
	if init != nil && !hasCnt {
		if i, ok := init.(*ast.Ident); ok {
			return i
		}
	}

	ref := (*ast.Ident)(nil)
	aliased := true
	if a.d.cfg.Loose && init != nil {
		if i, ok := init.(*ast.Ident); ok {
			ref, aliased = i, false
		}
	}
	if ref == nil {
		ref = a.d.idents.private("ref")
	}

	if aliased {
		var wrapped ast.Expr
		if init != nil {
			_, isArr := init.(*ast.ArrayLit)
			switch {
			case a.d.cfg.Loose || isArr || !hasCnt:
				wrapped = init
			case elemCnt == elemCountRest:
				wrapped = a.helpers().Call(helpers.ToArray, init)
			default:
				wrapped = a.helpers().Call(helpers.SlicedToArray, init, ast.Num(float64(elemCnt)))
			}
		}
		s := span.DummySpan
		if init != nil {
			s = init.Span()
		}
		*decls = append(*decls, &ast.VarDeclarator{S: s, Name: ref, Init: wrapped})
	}
	return ref
}

// makeHoistedRef allocates an uninitialized hoisted reference for
// assignment-position destructuring.
func (a *assignFolder) makeHoistedRef() *ast.Ident {
	ref := a.d.idents.private("ref")
	a.vars = append(a.vars, &ast.VarDeclarator{S: span.DummySpan, Name: ref})
	return ref
}

func (a *assignFolder) FoldExpr(e ast.Expr) ast.Expr {
	ignoreReturnValue := a.ignoreReturnValue
	a.ignoreReturnValue = false

	switch e.(type) {
	case *ast.FnExpr, *ast.ObjectLit:
		// A nested function or object literal is its own statement
		// context; hand it to a fresh statement-list folder.
		e = newDestructuringFolder(a.d.cfg, a.d.ctx).FoldExpr(e)
	default:
		e = fold.FoldExprChildren(a.Self, e)
	}

	assign, ok := e.(*ast.AssignExpr)
	if !ok || assign.Op != "=" {
		return e
	}

	switch left := assign.Left.(type) {
	case *ast.Ident, *ast.ExprPat:
		return e
	case *ast.ArrayPat:
		return a.foldArrayPatAssign(assign, left, ignoreReturnValue)
	case *ast.ObjectPat:
		return a.foldObjectPatAssign(assign, left)
	case *ast.AssignPat:
		panic(fmt.Sprintf("es2015: assignment pattern in assignment position: %v", left))
	case *ast.RestPat:
		panic(fmt.Sprintf("es2015: rest pattern in assignment position: %v", left))
	default:
		return e
	}
}

func (a *assignFolder) foldArrayPatAssign(assign *ast.AssignExpr, left *ast.ArrayPat, ignoreReturnValue bool) ast.Expr {
	right := assign.Right

	// Literal fast path: element-wise assignments, and since the value
	// is unused the trailing reference is dropped.
	if isLiteral(right) && ignoreReturnValue {
		if arr, ok := right.(*ast.ArrayLit); ok &&
			(len(left.Elems) == len(arr.Elems) || hasRestPat(left.Elems)) {
			var exprs []ast.Expr
			idx := 0
			for _, p := range left.Elems {
				switch pp := p.(type) {
				case nil:
					idx++
				case *ast.RestPat:
					rest := &ast.ArrayLit{S: span.DummySpan, Elems: arr.Elems[idx:]}
					idx = len(arr.Elems)
					exprs = append(exprs, a.Self.FoldExpr(&ast.AssignExpr{
						S: pp.Dot3, Op: "=", Left: pp.Arg, Right: rest,
					}))
				default:
					var elemRight ast.Expr
					if idx < len(arr.Elems) && arr.Elems[idx] != nil {
						elemRight = arr.Elems[idx].Expr
					} else {
						elemRight = ast.Undefined(p.Span())
					}
					idx++
					exprs = append(exprs, a.Self.FoldExpr(&ast.AssignExpr{
						S: p.Span(), Op: "=", Left: p, Right: elemRight,
					}))
				}
			}
			return &ast.SeqExpr{S: assign.S, Exprs: exprs}
		}
	}

	ref := a.makeHoistedRef()

	exprs := []ast.Expr{ast.Assign(ref, right)}
	for i, elem := range left.Elems {
		if elem == nil {
			continue
		}
		switch el := elem.(type) {
		case *ast.AssignPat:
			// The default check needs its own hoisted temporary,
			// initialized inside the sequence.
			tmp := a.makeHoistedRef()
			exprs = append(exprs, ast.Assign(tmp, makeRefIdxExpr(ref, i)))
			exprs = append(exprs, a.Self.FoldExpr(&ast.AssignExpr{
				S: el.S, Op: "=", Left: el.Left, Right: makeCondExpr(tmp, el.Right),
			}))
		case *ast.RestPat:
			exprs = append(exprs, a.Self.FoldExpr(&ast.AssignExpr{
				S: el.Dot3, Op: "=", Left: el.Arg,
				Right: ast.Call(ast.Member(ref, "slice"), ast.Num(float64(i))),
			}))
		default:
			exprs = append(exprs, a.Self.FoldExpr(&ast.AssignExpr{
				S: elem.Span(), Op: "=", Left: elem, Right: makeRefIdxExpr(ref, i),
			}))
		}
	}

	// The sequence evaluates to the reference, preserving the value of
	// the original assignment.
	exprs = append(exprs, ref)
	return &ast.SeqExpr{S: span.DummySpan, Exprs: exprs}
}

func (a *assignFolder) foldObjectPatAssign(assign *ast.AssignExpr, left *ast.ObjectPat) ast.Expr {
	ref := a.makeHoistedRef()

	exprs := []ast.Expr{ast.Assign(ref, assign.Right)}
	for _, prop := range left.Props {
		switch p := prop.(type) {
		case *ast.KeyValuePatProp:
			_, computed := p.Key.(*ast.ComputedPropName)
			exprs = append(exprs, a.Self.FoldExpr(&ast.AssignExpr{
				S: p.Key.Span(), Op: "=", Left: p.Value,
				Right: makeRefPropExpr(ref, ast.PropNameToExpr(p.Key), computed),
			}))
		case *ast.AssignPatProp:
			access := makeRefPropExpr(ref, p.Key, false)
			if p.Value == nil {
				exprs = append(exprs, ast.Assign(p.Key, access))
				continue
			}
			tmp := a.makeHoistedRef()
			exprs = append(exprs, ast.Assign(tmp, access))
			exprs = append(exprs, ast.Assign(p.Key, makeCondExpr(tmp, p.Value)))
		case *ast.RestPatProp:
			panic("es2015: object rest pattern survived the es2018 object rest/spread lowering")
		}
	}

	exprs = append(exprs, ref)
	return &ast.SeqExpr{S: span.DummySpan, Exprs: exprs}
}
