package ast

// TypeSpec is the right-hand side of a TypeDec: a name alias, an array of
// some element type, or an inline record.
type TypeSpec interface {
	typeSpecNode()
}

// NameTy is `type a = b`.
type NameTy struct{ Name string }

// ArrayTy is `type a = array of b`.
type ArrayTy struct{ Elem string }

// RecordTy is `type a = {f1: t1, f2: t2, ...}`.
type RecordTy struct{ Fields []FieldDecl }

func (*NameTy) typeSpecNode()   {}
func (*ArrayTy) typeSpecNode()  {}
func (*RecordTy) typeSpecNode() {}

// FieldDecl is one `name: typeName` entry in a record type or a function's
// parameter list.
type FieldDecl struct {
	Pos  Pos
	Name string
	Type string
}

// TypeDec is `type name = spec`.
type TypeDec struct {
	Pos  Pos
	Name string
	Spec TypeSpec
}

// VarDec is `var name [: typeName] := init`. TypeName is empty when the
// optional type annotation is absent, in which case the static type is
// inferred from Init.
type VarDec struct {
	Pos      Pos
	Name     string
	TypeName string // "" if no annotation
	Init     Exp
}

// FunctionDec is `function name(params): returnType = body` (ReturnType
// empty for a procedure).
type FunctionDec struct {
	Pos        Pos
	Name       string
	Params     []FieldDecl
	ReturnType string // "" if none
	Body       Exp
}

func (*TypeDec) decNode()     {}
func (*VarDec) decNode()      {}
func (*FunctionDec) decNode() {}

func (d *TypeDec) Position() Pos     { return d.Pos }
func (d *VarDec) Position() Pos      { return d.Pos }
func (d *FunctionDec) Position() Pos { return d.Pos }
