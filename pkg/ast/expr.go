package ast

import "github.com/MadAppGang/eslower/pkg/span"

// Ident is an identifier. Idents are also valid binding patterns and
// property names.
type Ident struct {
	S    span.Span
	Name string
}

func (n *Ident) Span() span.Span { return n.S }
func (n *Ident) exprNode()       {}
func (n *Ident) patNode()        {}
func (n *Ident) propNameNode()   {}

// PrivateName is a #name reference inside a class body.
type PrivateName struct {
	S  span.Span
	ID *Ident
}

func (n *PrivateName) Span() span.Span { return n.S }
func (n *PrivateName) exprNode()       {}

// ThisExpr is the `this` expression.
type ThisExpr struct {
	S span.Span
}

func (n *ThisExpr) Span() span.Span { return n.S }
func (n *ThisExpr) exprNode()       {}

// Super is the `super` callee or member object. It is only valid as
// CallExpr.Callee or MemberExpr.Obj.
type Super struct {
	S span.Span
}

func (n *Super) Span() span.Span { return n.S }
func (n *Super) exprNode()       {}

// StrLit is a string literal.
type StrLit struct {
	S     span.Span
	Value string
}

func (n *StrLit) Span() span.Span { return n.S }
func (n *StrLit) exprNode()       {}
func (n *StrLit) propNameNode()   {}

// NumLit is a numeric literal.
type NumLit struct {
	S     span.Span
	Value float64
}

func (n *NumLit) Span() span.Span { return n.S }
func (n *NumLit) exprNode()       {}
func (n *NumLit) propNameNode()   {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	S     span.Span
	Value bool
}

func (n *BoolLit) Span() span.Span { return n.S }
func (n *BoolLit) exprNode()       {}

// NullLit is `null`.
type NullLit struct {
	S span.Span
}

func (n *NullLit) Span() span.Span { return n.S }
func (n *NullLit) exprNode()       {}

// RegexLit is a regular-expression literal.
type RegexLit struct {
	S     span.Span
	Exp   string
	Flags string
}

func (n *RegexLit) Span() span.Span { return n.S }
func (n *RegexLit) exprNode()       {}

// ExprOrSpread is a call or array-literal argument, optionally spread.
type ExprOrSpread struct {
	// Spread is the span of the `...` token; dummy when the argument
	// is not spread.
	Spread    span.Span
	HasSpread bool
	Expr      Expr
}

// ArrayLit is an array literal. Nil elements are holes.
type ArrayLit struct {
	S     span.Span
	Elems []*ExprOrSpread
}

func (n *ArrayLit) Span() span.Span { return n.S }
func (n *ArrayLit) exprNode()       {}

// Prop is implemented by the property forms of an object literal.
type Prop interface {
	Node
	propNode()
}

// KeyValueProp is `key: value` in an object literal.
type KeyValueProp struct {
	S     span.Span
	Key   PropName
	Value Expr
}

func (n *KeyValueProp) Span() span.Span { return n.S }
func (n *KeyValueProp) propNode()       {}

// ShorthandProp is `{x}` in an object literal.
type ShorthandProp struct {
	ID *Ident
}

func (n *ShorthandProp) Span() span.Span { return n.ID.S }
func (n *ShorthandProp) propNode()       {}

// ObjectLit is an object literal.
type ObjectLit struct {
	S     span.Span
	Props []Prop
}

func (n *ObjectLit) Span() span.Span { return n.S }
func (n *ObjectLit) exprNode()       {}

// ComputedPropName is `[expr]` in property-name position.
type ComputedPropName struct {
	S    span.Span
	Expr Expr
}

func (n *ComputedPropName) Span() span.Span { return n.S }
func (n *ComputedPropName) propNameNode()   {}

// UnaryExpr is a prefix operator application, e.g. `void 0`, `!x`.
type UnaryExpr struct {
	S   span.Span
	Op  string
	Arg Expr
}

func (n *UnaryExpr) Span() span.Span { return n.S }
func (n *UnaryExpr) exprNode()       {}

// UpdateExpr is `++x`, `x++`, `--x`, or `x--`.
type UpdateExpr struct {
	S      span.Span
	Op     string
	Prefix bool
	Arg    Expr
}

func (n *UpdateExpr) Span() span.Span { return n.S }
func (n *UpdateExpr) exprNode()       {}

// BinExpr is a binary operator application.
type BinExpr struct {
	S     span.Span
	Op    string
	Left  Expr
	Right Expr
}

func (n *BinExpr) Span() span.Span { return n.S }
func (n *BinExpr) exprNode()       {}

// AssignExpr is an assignment. Left is a pattern: plain targets are
// wrapped in ExprPat, identifiers bind directly.
type AssignExpr struct {
	S     span.Span
	Op    string
	Left  Pat
	Right Expr
}

func (n *AssignExpr) Span() span.Span { return n.S }
func (n *AssignExpr) exprNode()       {}

// MemberExpr is `obj.prop` or `obj[prop]`. Obj may be *Super.
type MemberExpr struct {
	S        span.Span
	Obj      Expr
	Prop     Expr
	Computed bool
}

func (n *MemberExpr) Span() span.Span { return n.S }
func (n *MemberExpr) exprNode()       {}

// CondExpr is `test ? cons : alt`.
type CondExpr struct {
	S    span.Span
	Test Expr
	Cons Expr
	Alt  Expr
}

func (n *CondExpr) Span() span.Span { return n.S }
func (n *CondExpr) exprNode()       {}

// CallExpr is a call. Callee may be *Super for `super(...)`.
type CallExpr struct {
	S      span.Span
	Callee Expr
	Args   []*ExprOrSpread
}

func (n *CallExpr) Span() span.Span { return n.S }
func (n *CallExpr) exprNode()       {}

// NewExpr is `new callee(args)`. Args is nil when the argument list is
// omitted entirely.
type NewExpr struct {
	S      span.Span
	Callee Expr
	Args   []*ExprOrSpread
}

func (n *NewExpr) Span() span.Span { return n.S }
func (n *NewExpr) exprNode()       {}

// SeqExpr is a comma-sequence expression.
type SeqExpr struct {
	S     span.Span
	Exprs []Expr
}

func (n *SeqExpr) Span() span.Span { return n.S }
func (n *SeqExpr) exprNode()       {}

// TplElement is one quasi of a template literal.
type TplElement struct {
	S      span.Span
	Raw    string
	Cooked string
	Tail   bool
}

func (n *TplElement) Span() span.Span { return n.S }

// TplLit is an untagged template literal.
type TplLit struct {
	S      span.Span
	Exprs  []Expr
	Quasis []*TplElement
}

func (n *TplLit) Span() span.Span { return n.S }
func (n *TplLit) exprNode()       {}

// TaggedTpl is `tag`template``.
type TaggedTpl struct {
	S   span.Span
	Tag Expr
	Tpl *TplLit
}

func (n *TaggedTpl) Span() span.Span { return n.S }
func (n *TaggedTpl) exprNode()       {}

// FnExpr is a function expression.
type FnExpr struct {
	ID *Ident
	Fn *Function
}

func (n *FnExpr) Span() span.Span { return n.Fn.S }
func (n *FnExpr) exprNode()       {}

// ArrowExpr is an arrow function. Body is either a *BlockStmt or an
// expression.
type ArrowExpr struct {
	S           span.Span
	Params      []Pat
	Body        Node
	IsAsync     bool
	IsGenerator bool
}

func (n *ArrowExpr) Span() span.Span { return n.S }
func (n *ArrowExpr) exprNode()       {}

// ClassExpr is a class expression.
type ClassExpr struct {
	ID    *Ident
	Class *Class
}

func (n *ClassExpr) Span() span.Span { return n.Class.S }
func (n *ClassExpr) exprNode()       {}

// YieldExpr is `yield` or `yield arg`.
type YieldExpr struct {
	S        span.Span
	Arg      Expr
	Delegate bool
}

func (n *YieldExpr) Span() span.Span { return n.S }
func (n *YieldExpr) exprNode()       {}

// AwaitExpr is `await arg`.
type AwaitExpr struct {
	S   span.Span
	Arg Expr
}

func (n *AwaitExpr) Span() span.Span { return n.S }
func (n *AwaitExpr) exprNode()       {}

// MetaPropExpr is `new.target` or `import.meta`.
type MetaPropExpr struct {
	Meta *Ident
	Prop *Ident
}

func (n *MetaPropExpr) Span() span.Span { return n.Meta.S.To(n.Prop.S) }
func (n *MetaPropExpr) exprNode()       {}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	S    span.Span
	Expr Expr
}

func (n *ParenExpr) Span() span.Span { return n.S }
func (n *ParenExpr) exprNode()       {}

// TsNonNullExpr is `expr!`. The annotation is trusted.
type TsNonNullExpr struct {
	S    span.Span
	Expr Expr
}

func (n *TsNonNullExpr) Span() span.Span { return n.S }
func (n *TsNonNullExpr) exprNode()       {}

// TsAsExpr is `expr as T`. Type-only; the wrapped value is unchanged.
type TsAsExpr struct {
	S    span.Span
	Expr Expr
}

func (n *TsAsExpr) Span() span.Span { return n.S }
func (n *TsAsExpr) exprNode()       {}

// JSXElement is an opaque JSX subtree. The lowering passes never
// produce one; a JSX lowering must have eliminated them before the
// ES2015 passes run.
type JSXElement struct {
	S span.Span
}

func (n *JSXElement) Span() span.Span { return n.S }
func (n *JSXElement) exprNode()       {}

// InvalidExpr marks a parse-error placeholder.
type InvalidExpr struct {
	S span.Span
}

func (n *InvalidExpr) Span() span.Span { return n.S }
func (n *InvalidExpr) exprNode()       {}
