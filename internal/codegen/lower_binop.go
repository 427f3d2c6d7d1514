package codegen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/types"
)

// lowerBinOp implements spec.md §4.4's BinOp rule: arithmetic requires
// both sides Int; relational operators additionally accept String (via
// string_compare) and same-identity Array/Record (pointer compare,
// `=`/`<>` only). Every comparison result is widened from i1 to i64.
func (g *Generator) lowerBinOp(ex *ast.BinOpExp) (types.Index, value.Value) {
	lty, lval := g.lowerExp(ex.LHS)
	rty, rval := g.lowerExp(ex.RHS)

	if ex.Op.IsArith() {
		if g.arena.Actual(lty) != g.arena.Int() || g.arena.Actual(rty) != g.arena.Int() {
			fail(ErrTypeMismatch, ex.Pos, "arithmetic operand must be int, got %s and %s",
				g.arena.String(lty), g.arena.String(rty))
		}
		return g.arena.Int(), g.emitArith(ex.Op, lval, rval)
	}

	la, ra := g.arena.Actual(lty), g.arena.Actual(rty)

	if la == g.arena.String() && ra == g.arena.String() {
		cmp := g.builder.Call(g.internalHelper("string_compare").Value, lval, rval)
		zero := g.builder.ConstInt(0)
		return g.arena.Int(), g.builder.ZExtToInt(g.emitIntCmp(ex.Op, cmp, zero))
	}

	if la == g.arena.Int() && ra == g.arena.Int() {
		return g.arena.Int(), g.builder.ZExtToInt(g.emitIntCmp(ex.Op, lval, rval))
	}

	if g.arena.Match(lty, rty) && (g.arena.Node(la).Kind == types.KindArray || g.arena.Node(la).Kind == types.KindRecord) {
		if ex.Op != ast.Eq && ex.Op != ast.Neq {
			fail(ErrTypeMismatch, ex.Pos, "only = and <> are defined on %s", g.arena.String(lty))
		}
		var cmp value.Value
		if ex.Op == ast.Eq {
			cmp = g.builder.ICmpEq(lval, rval)
		} else {
			cmp = g.builder.ICmpNe(lval, rval)
		}
		return g.arena.Int(), g.builder.ZExtToInt(cmp)
	}

	fail(ErrTypeMismatch, ex.Pos, "unmatched type in comparison: %s vs %s", g.arena.String(lty), g.arena.String(rty))
	panic("unreachable")
}

func (g *Generator) emitArith(op ast.Op, l, r value.Value) value.Value {
	switch op {
	case ast.Plus:
		return g.builder.Add(l, r)
	case ast.Minus:
		return g.builder.Sub(l, r)
	case ast.Times:
		return g.builder.Mul(l, r)
	case ast.Divide:
		return g.builder.SDiv(l, r)
	default:
		panic("codegen: not an arithmetic operator")
	}
}

func (g *Generator) emitIntCmp(op ast.Op, l, r value.Value) value.Value {
	switch op {
	case ast.Eq:
		return g.builder.ICmpEq(l, r)
	case ast.Neq:
		return g.builder.ICmpNe(l, r)
	case ast.Lt:
		return g.builder.ICmpSlt(l, r)
	case ast.Le:
		return g.builder.ICmpSle(l, r)
	case ast.Gt:
		return g.builder.ICmpSgt(l, r)
	case ast.Ge:
		return g.builder.ICmpSge(l, r)
	default:
		panic("codegen: not a relational operator")
	}
}
