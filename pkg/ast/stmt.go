package ast

import "github.com/MadAppGang/eslower/pkg/span"

// BlockStmt is a braced statement list.
type BlockStmt struct {
	S     span.Span
	Stmts []Stmt
}

func (n *BlockStmt) Span() span.Span { return n.S }
func (n *BlockStmt) stmtNode()       {}

// EmptyStmt is a lone semicolon.
type EmptyStmt struct {
	S span.Span
}

func (n *EmptyStmt) Span() span.Span { return n.S }
func (n *EmptyStmt) stmtNode()       {}

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	S    span.Span
	Expr Expr
}

func (n *ExprStmt) Span() span.Span { return n.S }
func (n *ExprStmt) stmtNode()       {}

// ReturnStmt is `return` or `return arg`.
type ReturnStmt struct {
	S   span.Span
	Arg Expr
}

func (n *ReturnStmt) Span() span.Span { return n.S }
func (n *ReturnStmt) stmtNode()       {}

// ThrowStmt is `throw arg`.
type ThrowStmt struct {
	S   span.Span
	Arg Expr
}

func (n *ThrowStmt) Span() span.Span { return n.S }
func (n *ThrowStmt) stmtNode()       {}

// IfStmt is `if (test) cons else alt`. Alt is nil when there is no
// else branch.
type IfStmt struct {
	S    span.Span
	Test Expr
	Cons Stmt
	Alt  Stmt
}

func (n *IfStmt) Span() span.Span { return n.S }
func (n *IfStmt) stmtNode()       {}

// WhileStmt is `while (test) body`.
type WhileStmt struct {
	S    span.Span
	Test Expr
	Body Stmt
}

func (n *WhileStmt) Span() span.Span { return n.S }
func (n *WhileStmt) stmtNode()       {}

// ForStmt is a C-style for loop. Init is a *VarDecl or an expression
// statement, possibly nil, as are Test and Update.
type ForStmt struct {
	S      span.Span
	Init   Node
	Test   Expr
	Update Expr
	Body   Stmt
}

func (n *ForStmt) Span() span.Span { return n.S }
func (n *ForStmt) stmtNode()       {}

// ForHead is the binding position of a for-in/for-of header: either a
// declaration or a bare pattern. Exactly one field is set.
type ForHead struct {
	VarDecl *VarDecl
	Pat     Pat
}

// Span returns the span of whichever side is set.
func (h *ForHead) Span() span.Span {
	if h.VarDecl != nil {
		return h.VarDecl.S
	}
	return h.Pat.Span()
}

// ForInStmt is `for (left in right) body`.
type ForInStmt struct {
	S     span.Span
	Left  *ForHead
	Right Expr
	Body  Stmt
}

func (n *ForInStmt) Span() span.Span { return n.S }
func (n *ForInStmt) stmtNode()       {}

// ForOfStmt is `for (left of right) body`.
type ForOfStmt struct {
	S     span.Span
	Left  *ForHead
	Right Expr
	Body  Stmt
}

func (n *ForOfStmt) Span() span.Span { return n.S }
func (n *ForOfStmt) stmtNode()       {}

// LabeledStmt is `label: body`.
type LabeledStmt struct {
	S     span.Span
	Label *Ident
	Body  Stmt
}

func (n *LabeledStmt) Span() span.Span { return n.S }
func (n *LabeledStmt) stmtNode()       {}

// VarDeclKind is the binding keyword of a variable declaration.
type VarDeclKind string

const (
	VarDeclVar   VarDeclKind = "var"
	VarDeclLet   VarDeclKind = "let"
	VarDeclConst VarDeclKind = "const"
)

// VarDeclarator is one `name = init` of a variable declaration. Init
// may be nil.
type VarDeclarator struct {
	S    span.Span
	Name Pat
	Init Expr

	// Definite is the TypeScript `!` definite-assignment marker.
	Definite bool
}

func (n *VarDeclarator) Span() span.Span { return n.S }

// VarDecl is a `var`/`let`/`const` declaration.
type VarDecl struct {
	S     span.Span
	Kind  VarDeclKind
	Decls []*VarDeclarator
}

func (n *VarDecl) Span() span.Span { return n.S }
func (n *VarDecl) stmtNode()       {}
func (n *VarDecl) declNode()       {}

// FnDecl is a function declaration.
type FnDecl struct {
	ID *Ident
	Fn *Function
}

func (n *FnDecl) Span() span.Span { return n.Fn.S }
func (n *FnDecl) stmtNode()       {}
func (n *FnDecl) declNode()       {}

// ClassDecl is a class declaration.
type ClassDecl struct {
	ID    *Ident
	Class *Class
}

func (n *ClassDecl) Span() span.Span { return n.Class.S }
func (n *ClassDecl) stmtNode()       {}
func (n *ClassDecl) declNode()       {}

// ExportDecl is `export <decl>`. Modeled as a statement so module
// bodies stay flat statement lists.
type ExportDecl struct {
	S    span.Span
	Decl Decl
}

func (n *ExportDecl) Span() span.Span { return n.S }
func (n *ExportDecl) stmtNode()       {}

// Function is the shared shape of function declarations, function
// expressions, and methods.
type Function struct {
	S           span.Span
	Params      []Pat
	Body        *BlockStmt
	IsAsync     bool
	IsGenerator bool
}

func (n *Function) Span() span.Span { return n.S }
