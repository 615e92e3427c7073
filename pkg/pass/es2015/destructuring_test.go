package es2015

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MadAppGang/eslower/pkg/ast"
	"github.com/MadAppGang/eslower/pkg/config"
	"github.com/MadAppGang/eslower/pkg/helpers"
	"github.com/MadAppGang/eslower/pkg/pass"
	"github.com/MadAppGang/eslower/pkg/span"
)

func ident(name string) *ast.Ident { return ast.NewIdent(name, span.DummySpan) }

func letDecl(name ast.Pat, init ast.Expr) *ast.VarDecl {
	return &ast.VarDecl{
		S:    span.DummySpan,
		Kind: ast.VarDeclLet,
		Decls: []*ast.VarDeclarator{
			{S: span.DummySpan, Name: name, Init: init},
		},
	}
}

func arrayPat(elems ...ast.Pat) *ast.ArrayPat {
	return &ast.ArrayPat{S: span.DummySpan, Elems: elems}
}

func arrayLit(elems ...ast.Expr) *ast.ArrayLit {
	out := &ast.ArrayLit{S: span.DummySpan}
	for _, e := range elems {
		out.Elems = append(out.Elems, ast.AsArg(e))
	}
	return out
}

// runDestructuring lowers the statements inside a fresh session and
// returns the printed result.
func runDestructuring(t *testing.T, cfg DestructuringConfig, stmts []ast.Stmt) string {
	t.Helper()
	var out string
	span.WithGlobals(span.NewGlobals(), func() {
		ctx := pass.NewContext(span.NewSourceMap(), config.DefaultConfig())
		program := &ast.Program{S: span.DummySpan, Body: stmts}
		result, err := NewDestructuring(cfg).Transform(ctx, program)
		require.NoError(t, err)
		out = printStmts(result.Body)
	})
	return out
}

func TestDestructuringPassMetadata(t *testing.T) {
	p := NewDestructuring(DestructuringConfig{})
	assert.Equal(t, "es2015-destructuring", p.Name())
	assert.Empty(t, p.Dependencies())
	assert.True(t, p.Enabled())
	p.SetEnabled(false)
	assert.False(t, p.Enabled())
}

func TestArrayLiteralFastPath(t *testing.T) {
	// let [a, b] = [1, 2];  ->  let a = 1, b = 2;
	stmts := []ast.Stmt{
		letDecl(arrayPat(ident("a"), ident("b")), arrayLit(ast.Num(1), ast.Num(2))),
	}
	assert.Equal(t, "let a = 1, b = 2;", runDestructuring(t, DestructuringConfig{}, stmts))
}

func TestArrayRest(t *testing.T) {
	// let [a, ...r] = x;
	// -> var _ref = toArray(x), a = _ref[0], r = _ref.slice(1);
	stmts := []ast.Stmt{
		letDecl(
			arrayPat(ident("a"), &ast.RestPat{Dot3: span.DummySpan, Arg: ident("r")}),
			ident("x"),
		),
	}
	assert.Equal(t,
		"var _ref = toArray(x), a = _ref[0], r = _ref.slice(1);",
		runDestructuring(t, DestructuringConfig{}, stmts))
}

func TestArrayWithoutRestUsesSlicedToArray(t *testing.T) {
	// let [a, b] = x;
	stmts := []ast.Stmt{
		letDecl(arrayPat(ident("a"), ident("b")), ident("x")),
	}
	assert.Equal(t,
		"var _ref = slicedToArray(x, 2), a = _ref[0], b = _ref[1];",
		runDestructuring(t, DestructuringConfig{}, stmts))
}

func TestArrayLooseElidesHelper(t *testing.T) {
	// Loose mode reuses the identifier and skips slicedToArray.
	stmts := []ast.Stmt{
		letDecl(arrayPat(ident("a"), ident("b")), ident("x")),
	}
	assert.Equal(t,
		"let a = x[0], b = x[1];",
		runDestructuring(t, DestructuringConfig{Loose: true}, stmts))
}

func TestObjectDefault(t *testing.T) {
	// let {a = 3} = o;
	// -> var _ref = o, _a = _ref.a, a = _a === void 0 ? 3 : _a;
	pat := &ast.ObjectPat{S: span.DummySpan, Props: []ast.ObjectPatProp{
		&ast.AssignPatProp{S: span.DummySpan, Key: ident("a"), Value: ast.Num(3)},
	}}
	stmts := []ast.Stmt{letDecl(pat, ident("o"))}
	assert.Equal(t,
		"var _ref = o, _a = _ref.a, a = _a === void 0 ? 3 : _a;",
		runDestructuring(t, DestructuringConfig{}, stmts))
}

func TestObjectKeyValue(t *testing.T) {
	// let {k: v} = o;
	pat := &ast.ObjectPat{S: span.DummySpan, Props: []ast.ObjectPatProp{
		&ast.KeyValuePatProp{Key: ident("k"), Value: ident("v")},
	}}
	stmts := []ast.Stmt{letDecl(pat, ident("o"))}
	assert.Equal(t,
		"var _ref = o, v = _ref.k;",
		runDestructuring(t, DestructuringConfig{}, stmts))
}

func TestEmptyObjectGuard(t *testing.T) {
	// let {} = x;
	// -> var _ref = x !== null ? x : throw(new TypeError(...));
	pat := &ast.ObjectPat{S: span.DummySpan}
	stmts := []ast.Stmt{letDecl(pat, ident("x"))}
	assert.Equal(t,
		`var _ref = x !== null ? x : throw(new TypeError("Cannot destructure undefined"));`,
		runDestructuring(t, DestructuringConfig{}, stmts))
}

func TestNestedPattern(t *testing.T) {
	// let [[a]] = x;
	stmts := []ast.Stmt{
		letDecl(arrayPat(arrayPat(ident("a"))), ident("x")),
	}
	assert.Equal(t,
		"var _ref = slicedToArray(x, 1), _ref2 = slicedToArray(_ref[0], 1), a = _ref2[0];",
		runDestructuring(t, DestructuringConfig{}, stmts))
}

func TestAssignmentPosition(t *testing.T) {
	// [x, y] = z;
	// -> var _ref; (_ref = z, x = _ref[0], y = _ref[1], _ref);
	assign := &ast.AssignExpr{
		S: span.DummySpan, Op: "=",
		Left:  arrayPat(ident("x"), ident("y")),
		Right: ident("z"),
	}
	stmts := []ast.Stmt{&ast.ExprStmt{S: span.DummySpan, Expr: assign}}
	assert.Equal(t,
		"var _ref; (_ref = z, x = _ref[0], y = _ref[1], _ref);",
		runDestructuring(t, DestructuringConfig{}, stmts))
}

func TestAssignmentLiteralFastPathDropsRef(t *testing.T) {
	// [x, y] = [1, 2];  ->  (x = 1, y = 2);
	assign := &ast.AssignExpr{
		S: span.DummySpan, Op: "=",
		Left:  arrayPat(ident("x"), ident("y")),
		Right: arrayLit(ast.Num(1), ast.Num(2)),
	}
	stmts := []ast.Stmt{&ast.ExprStmt{S: span.DummySpan, Expr: assign}}
	assert.Equal(t, "(x = 1, y = 2);", runDestructuring(t, DestructuringConfig{}, stmts))
}

func TestParameterDestructuring(t *testing.T) {
	// function f([a]) {}
	// -> function f(_ref) { var _ref2 = slicedToArray(_ref, 1), a = _ref2[0]; }
	fn := &ast.FnDecl{
		ID: ident("f"),
		Fn: &ast.Function{
			S:      span.DummySpan,
			Params: []ast.Pat{arrayPat(ident("a"))},
			Body:   &ast.BlockStmt{S: span.DummySpan},
		},
	}
	assert.Equal(t,
		"function f(_ref) { var _ref2 = slicedToArray(_ref, 1), a = _ref2[0]; }",
		runDestructuring(t, DestructuringConfig{}, []ast.Stmt{fn}))
}

func TestForOfHead(t *testing.T) {
	// for (let [a] of arr) { use(a); }
	loop := &ast.ForOfStmt{
		S: span.DummySpan,
		Left: &ast.ForHead{VarDecl: &ast.VarDecl{
			S:    span.DummySpan,
			Kind: ast.VarDeclLet,
			Decls: []*ast.VarDeclarator{
				{S: span.DummySpan, Name: arrayPat(ident("a"))},
			},
		}},
		Right: ident("arr"),
		Body: &ast.BlockStmt{S: span.DummySpan, Stmts: []ast.Stmt{
			&ast.ExprStmt{S: span.DummySpan, Expr: ast.Call(ident("use"), ident("a"))},
		}},
	}
	assert.Equal(t,
		"for (let _ref of arr) { var _ref2 = slicedToArray(_ref, 1), a = _ref2[0]; use(a); }",
		runDestructuring(t, DestructuringConfig{}, []ast.Stmt{loop}))
}

func TestFastPathLeavesPlainStatementsAlone(t *testing.T) {
	stmts := []ast.Stmt{
		letDecl(ident("a"), ast.Num(1)),
		&ast.ExprStmt{S: span.DummySpan, Expr: ast.Call(ident("use"), ident("a"))},
	}
	assert.Equal(t, "let a = 1; use(a);", runDestructuring(t, DestructuringConfig{}, stmts))
}

func TestExportHoistsIntoVars(t *testing.T) {
	// export let [a] = x;
	exp := &ast.ExportDecl{
		S:    span.DummySpan,
		Decl: letDecl(arrayPat(ident("a")), ident("x")),
	}
	out := runDestructuring(t, DestructuringConfig{}, []ast.Stmt{exp})
	assert.Equal(t,
		"var _ref = slicedToArray(x, 1); export var a = _ref[0];",
		out)
}

func TestHelpersRecorded(t *testing.T) {
	span.WithGlobals(span.NewGlobals(), func() {
		ctx := pass.NewContext(span.NewSourceMap(), config.DefaultConfig())
		stmts := []ast.Stmt{
			letDecl(arrayPat(ident("a"), &ast.RestPat{Dot3: span.DummySpan, Arg: ident("r")}), ident("x")),
		}
		_, err := NewDestructuring(DestructuringConfig{}).Transform(ctx, &ast.Program{Body: stmts})
		require.NoError(t, err)
		assert.True(t, ctx.Helpers.WasUsed(helpers.ToArray))
		assert.False(t, ctx.Helpers.WasUsed(helpers.SlicedToArray))
	})
}

func TestRestPropPanics(t *testing.T) {
	pat := &ast.ObjectPat{S: span.DummySpan, Props: []ast.ObjectPatProp{
		&ast.RestPatProp{Dot3: span.DummySpan, Arg: ident("rest")},
	}}
	span.WithGlobals(span.NewGlobals(), func() {
		ctx := pass.NewContext(span.NewSourceMap(), config.DefaultConfig())
		assert.Panics(t, func() {
			_, _ = NewDestructuring(DestructuringConfig{}).Transform(ctx, &ast.Program{
				Body: []ast.Stmt{letDecl(pat, ident("o"))},
			})
		})
	})
}

func TestMissingInitializerPanics(t *testing.T) {
	span.WithGlobals(span.NewGlobals(), func() {
		ctx := pass.NewContext(span.NewSourceMap(), config.DefaultConfig())
		assert.Panics(t, func() {
			_, _ = NewDestructuring(DestructuringConfig{}).Transform(ctx, &ast.Program{
				Body: []ast.Stmt{letDecl(arrayPat(ident("a")), nil)},
			})
		})
	})
}

func TestNoPatternOtherThanIdentRemains(t *testing.T) {
	// Structural invariant: after lowering, every declarator binds a
	// plain identifier.
	pat := &ast.ObjectPat{S: span.DummySpan, Props: []ast.ObjectPatProp{
		&ast.KeyValuePatProp{Key: ident("k"), Value: arrayPat(ident("a"), ident("b"))},
		&ast.AssignPatProp{S: span.DummySpan, Key: ident("c"), Value: ast.Num(1)},
	}}
	span.WithGlobals(span.NewGlobals(), func() {
		ctx := pass.NewContext(span.NewSourceMap(), config.DefaultConfig())
		program := &ast.Program{Body: []ast.Stmt{letDecl(pat, ident("o"))}}
		result, err := NewDestructuring(DestructuringConfig{}).Transform(ctx, program)
		require.NoError(t, err)
		for _, s := range result.Body {
			decl, ok := s.(*ast.VarDecl)
			require.True(t, ok)
			for _, d := range decl.Decls {
				_, isIdent := d.Name.(*ast.Ident)
				assert.True(t, isIdent, "declarator %v still binds a pattern", printPat(d.Name))
			}
		}
	})
}
