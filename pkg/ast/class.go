package ast

import "github.com/MadAppGang/eslower/pkg/span"

// Class is the shared shape of class declarations and expressions.
type Class struct {
	S          span.Span
	SuperClass Expr
	Body       []ClassMember
}

func (n *Class) Span() span.Span { return n.S }

// IsDerived reports whether the class has an extends clause.
func (n *Class) IsDerived() bool { return n.SuperClass != nil }

// TsParamProp is a TypeScript parameter property
// (`constructor(private x: T)`). The TypeScript lowering rewrites
// these away; the ES2015 passes treat a surviving one as a
// programming fault.
type TsParamProp struct {
	S     span.Span
	Param Pat
}

func (n *TsParamProp) Span() span.Span { return n.S }

// ConstructorParam is one constructor parameter: a plain pattern, or a
// TypeScript parameter property that should no longer exist by the
// time the ES2015 passes run.
type ConstructorParam struct {
	Pat    Pat
	TsProp *TsParamProp
}

// Span returns the span of whichever side is set.
func (p *ConstructorParam) Span() span.Span {
	if p.TsProp != nil {
		return p.TsProp.S
	}
	return p.Pat.Span()
}

// Constructor is the `constructor(...)` member of a class body.
type Constructor struct {
	S      span.Span
	Key    PropName
	Params []*ConstructorParam
	Body   *BlockStmt

	// Synthesized marks a default constructor injected for a derived
	// class with no user-written constructor.
	Synthesized bool
}

func (n *Constructor) Span() span.Span  { return n.S }
func (n *Constructor) classMemberNode() {}

// MethodKind distinguishes methods from accessors.
type MethodKind string

const (
	MethodKindMethod MethodKind = "method"
	MethodKindGetter MethodKind = "getter"
	MethodKindSetter MethodKind = "setter"
)

// ClassMethod is a method, getter, or setter.
type ClassMethod struct {
	S        span.Span
	Key      PropName
	Fn       *Function
	Kind     MethodKind
	IsStatic bool
}

func (n *ClassMethod) Span() span.Span  { return n.S }
func (n *ClassMethod) classMemberNode() {}

// ClassProp is a class field.
type ClassProp struct {
	S        span.Span
	Key      PropName
	Value    Expr
	IsStatic bool
}

func (n *ClassProp) Span() span.Span  { return n.S }
func (n *ClassProp) classMemberNode() {}
