package es2015

import (
	"fmt"
	"strings"

	"github.com/MadAppGang/eslower/pkg/ast"
)

// printStmts renders statements in a compact single-line form for
// golden comparisons. It covers the node kinds the lowerings emit; it
// is not a code generator.
func printStmts(stmts []ast.Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = printStmt(s)
	}
	return strings.Join(parts, " ")
}

func printStmt(s ast.Stmt) string {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return printExpr(n.Expr) + ";"
	case *ast.EmptyStmt:
		return ";"
	case *ast.VarDecl:
		decls := make([]string, len(n.Decls))
		for i, d := range n.Decls {
			decls[i] = printPat(d.Name)
			if d.Init != nil {
				decls[i] += " = " + printExpr(d.Init)
			}
		}
		return fmt.Sprintf("%s %s;", n.Kind, strings.Join(decls, ", "))
	case *ast.ReturnStmt:
		if n.Arg == nil {
			return "return;"
		}
		return "return " + printExpr(n.Arg) + ";"
	case *ast.ThrowStmt:
		return "throw " + printExpr(n.Arg) + ";"
	case *ast.IfStmt:
		out := fmt.Sprintf("if (%s) %s", printExpr(n.Test), printStmt(n.Cons))
		if n.Alt != nil {
			out += " else " + printStmt(n.Alt)
		}
		return out
	case *ast.BlockStmt:
		return "{ " + printStmts(n.Stmts) + " }"
	case *ast.ForOfStmt:
		return fmt.Sprintf("for (%s of %s) %s", printForHead(n.Left), printExpr(n.Right), printStmt(n.Body))
	case *ast.ForInStmt:
		return fmt.Sprintf("for (%s in %s) %s", printForHead(n.Left), printExpr(n.Right), printStmt(n.Body))
	case *ast.FnDecl:
		return fmt.Sprintf("function %s%s", n.ID.Name, printFn(n.Fn))
	case *ast.ClassDecl:
		return fmt.Sprintf("class %s %s", n.ID.Name, printClass(n.Class))
	case *ast.ExportDecl:
		return "export " + printStmt(n.Decl)
	default:
		return fmt.Sprintf("<stmt %T>", s)
	}
}

func printForHead(h *ast.ForHead) string {
	if h.VarDecl != nil {
		decls := make([]string, len(h.VarDecl.Decls))
		for i, d := range h.VarDecl.Decls {
			decls[i] = printPat(d.Name)
		}
		return fmt.Sprintf("%s %s", h.VarDecl.Kind, strings.Join(decls, ", "))
	}
	return printPat(h.Pat)
}

func printFn(fn *ast.Function) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = printPat(p)
	}
	return fmt.Sprintf("(%s) %s", strings.Join(params, ", "), printStmt(fn.Body))
}

func printClass(c *ast.Class) string {
	var b strings.Builder
	b.WriteString("{ ")
	for _, m := range c.Body {
		switch member := m.(type) {
		case *ast.Constructor:
			params := make([]string, len(member.Params))
			for i, p := range member.Params {
				params[i] = printPat(p.Pat)
			}
			fmt.Fprintf(&b, "constructor(%s) %s ", strings.Join(params, ", "), printStmt(member.Body))
		case *ast.ClassMethod:
			fmt.Fprintf(&b, "%s%s ", printPropName(member.Key), printFn(member.Fn))
		}
	}
	b.WriteString("}")
	return b.String()
}

func printExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.ThisExpr:
		return "this"
	case *ast.Super:
		return "super"
	case *ast.NumLit:
		return fmt.Sprintf("%g", n.Value)
	case *ast.StrLit:
		return fmt.Sprintf("%q", n.Value)
	case *ast.BoolLit:
		return fmt.Sprintf("%t", n.Value)
	case *ast.NullLit:
		return "null"
	case *ast.ArrayLit:
		elems := make([]string, len(n.Elems))
		for i, el := range n.Elems {
			if el == nil {
				continue
			}
			if el.HasSpread {
				elems[i] = "..." + printExpr(el.Expr)
			} else {
				elems[i] = printExpr(el.Expr)
			}
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *ast.UnaryExpr:
		return n.Op + " " + printExpr(n.Arg)
	case *ast.BinExpr:
		return fmt.Sprintf("%s %s %s", printExpr(n.Left), n.Op, printExpr(n.Right))
	case *ast.AssignExpr:
		return fmt.Sprintf("%s %s %s", printPat(n.Left), n.Op, printExpr(n.Right))
	case *ast.CondExpr:
		return fmt.Sprintf("%s ? %s : %s", printExpr(n.Test), printExpr(n.Cons), printExpr(n.Alt))
	case *ast.MemberExpr:
		if n.Computed {
			return fmt.Sprintf("%s[%s]", printExpr(n.Obj), printExpr(n.Prop))
		}
		return fmt.Sprintf("%s.%s", printExpr(n.Obj), printExpr(n.Prop))
	case *ast.CallExpr:
		return printExpr(n.Callee) + printArgs(n.Args)
	case *ast.NewExpr:
		return "new " + printExpr(n.Callee) + printArgs(n.Args)
	case *ast.SeqExpr:
		exprs := make([]string, len(n.Exprs))
		for i, x := range n.Exprs {
			exprs[i] = printExpr(x)
		}
		return "(" + strings.Join(exprs, ", ") + ")"
	case *ast.FnExpr:
		name := ""
		if n.ID != nil {
			name = " " + n.ID.Name
		}
		return "function" + name + printFn(n.Fn)
	case *ast.ArrowExpr:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = printPat(p)
		}
		body := ""
		switch b := n.Body.(type) {
		case *ast.BlockStmt:
			body = printStmt(b)
		case ast.Expr:
			body = printExpr(b)
		}
		return fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), body)
	case *ast.ParenExpr:
		return "(" + printExpr(n.Expr) + ")"
	default:
		return fmt.Sprintf("<expr %T>", e)
	}
}

func printArgs(args []*ast.ExprOrSpread) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			continue
		}
		if a.HasSpread {
			parts[i] = "..." + printExpr(a.Expr)
		} else {
			parts[i] = printExpr(a.Expr)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func printPat(p ast.Pat) string {
	switch n := p.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.ArrayPat:
		elems := make([]string, len(n.Elems))
		for i, el := range n.Elems {
			if el != nil {
				elems[i] = printPat(el)
			}
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *ast.ObjectPat:
		props := make([]string, len(n.Props))
		for i, pr := range n.Props {
			switch prop := pr.(type) {
			case *ast.KeyValuePatProp:
				props[i] = printPropName(prop.Key) + ": " + printPat(prop.Value)
			case *ast.AssignPatProp:
				props[i] = prop.Key.Name
				if prop.Value != nil {
					props[i] += " = " + printExpr(prop.Value)
				}
			}
		}
		return "{" + strings.Join(props, ", ") + "}"
	case *ast.RestPat:
		return "..." + printPat(n.Arg)
	case *ast.AssignPat:
		return printPat(n.Left) + " = " + printExpr(n.Right)
	case *ast.ExprPat:
		return printExpr(n.Expr)
	default:
		return fmt.Sprintf("<pat %T>", p)
	}
}

func printPropName(p ast.PropName) string {
	switch n := p.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.StrLit:
		return fmt.Sprintf("%q", n.Value)
	case *ast.NumLit:
		return fmt.Sprintf("%g", n.Value)
	case *ast.ComputedPropName:
		return "[" + printExpr(n.Expr) + "]"
	default:
		return fmt.Sprintf("<key %T>", p)
	}
}
