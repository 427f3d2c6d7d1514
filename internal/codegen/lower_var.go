package codegen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/types"
)

// lowerVar lowers an l-value to its static type and storage address.
// VarExp/Assign both go through here before loading/storing.
func (g *Generator) lowerVar(v ast.Var) (types.Index, value.Value) {
	switch vv := v.(type) {
	case *ast.SimpleVar:
		b, ok := g.env.LookupValue(vv.Name)
		if !ok {
			fail(ErrUndefined, vv.Pos, "undefined variable %q", vv.Name)
		}
		vb, ok := b.(*VarBinding)
		if !ok {
			fail(ErrKindMismatch, vv.Pos, "%q is a function, not a variable", vv.Name)
		}
		return vb.Type, vb.Addr

	case *ast.FieldVar:
		baseTy, baseAddr := g.lowerVar(vv.Var)
		actual := g.arena.Actual(baseTy)
		node := g.arena.Node(actual)
		if node.Kind != types.KindRecord {
			fail(ErrBadAccess, vv.Pos, "field access %q on non-record type %s", vv.Field, g.arena.String(baseTy))
		}
		fieldIdx := -1
		var fieldType types.Index
		for i, f := range node.Fields {
			if f.Name == vv.Field {
				fieldIdx = i
				fieldType = f.Type
				break
			}
		}
		if fieldIdx < 0 {
			fail(ErrBadAccess, vv.Pos, "record type %s has no field %q", g.arena.String(baseTy), vv.Field)
		}
		recordVal := g.builder.Load(g.irType(baseTy), baseAddr)
		st := g.structTypeFor(actual)
		addr := g.builder.StructGEP(st, recordVal, fieldIdx)
		return fieldType, addr

	case *ast.SubscriptVar:
		baseTy, baseAddr := g.lowerVar(vv.Var)
		actual := g.arena.Actual(baseTy)
		node := g.arena.Node(actual)
		if node.Kind != types.KindArray {
			fail(ErrBadAccess, vv.Pos, "subscript on non-array type %s", g.arena.String(baseTy))
		}
		idxTy, idxVal := g.lowerExp(vv.Exp)
		if !g.arena.Match(g.arena.Int(), idxTy) {
			fail(ErrTypeMismatch, vv.Exp.Position(), "array subscript must be int, got %s", g.arena.String(idxTy))
		}
		arrayVal := g.builder.Load(g.irType(baseTy), baseAddr)
		elemTy := node.Target
		addr := g.builder.ArrayElemPtr(g.irType(elemTy), arrayVal, idxVal)
		return elemTy, addr

	default:
		fail(ErrKindMismatch, v.Position(), "unknown l-value form")
		panic("unreachable")
	}
}
