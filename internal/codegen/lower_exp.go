package codegen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/types"
)

// lowerExp is the syntax-directed lowering visitor of spec.md §4.4: every
// expression returns a (staticType, value) pair, with the current block
// being whatever g.builder's insertion cursor currently points at.
func (g *Generator) lowerExp(e ast.Exp) (types.Index, value.Value) {
	switch ex := e.(type) {
	case *ast.NilExp:
		return g.arena.Nil(), g.builder.ConstNullPtr()

	case *ast.IntExp:
		return g.arena.Int(), g.builder.ConstInt(ex.Value)

	case *ast.StringExp:
		return g.arena.String(), g.builder.GlobalString(ex.Value)

	case *ast.VarExp:
		ty, addr := g.lowerVar(ex.Var)
		return ty, g.builder.Load(g.irType(ty), addr)

	case *ast.AssignExp:
		return g.lowerAssign(ex)

	case *ast.SeqExp:
		return g.lowerSeq(ex)

	case *ast.CallExp:
		return g.lowerCall(ex)

	case *ast.BinOpExp:
		return g.lowerBinOp(ex)

	case *ast.RecordExp:
		return g.lowerRecordExp(ex)

	case *ast.ArrayExp:
		return g.lowerArrayExp(ex)

	case *ast.IfExp:
		return g.lowerIf(ex)

	case *ast.WhileExp:
		return g.lowerWhile(ex)

	case *ast.ForExp:
		return g.lowerFor(ex)

	case *ast.BreakExp:
		return g.lowerBreak(ex)

	case *ast.LetExp:
		return g.lowerLet(ex)

	default:
		fail(ErrKindMismatch, e.Position(), "unknown expression form")
		panic("unreachable")
	}
}

func (g *Generator) lowerAssign(ex *ast.AssignExp) (types.Index, value.Value) {
	varTy, addr := g.lowerVar(ex.Var)
	expTy, val := g.lowerExp(ex.Exp)
	if !g.arena.Match(varTy, expTy) {
		fail(ErrTypeMismatch, ex.Exp.Position(), "cannot assign %s to variable of type %s", g.arena.String(expTy), g.arena.String(varTy))
	}
	g.builder.Store(val, addr)
	return g.arena.Void(), nil
}

func (g *Generator) lowerSeq(ex *ast.SeqExp) (types.Index, value.Value) {
	if len(ex.Seq) == 0 {
		return g.arena.Void(), nil
	}
	var ty types.Index
	var val value.Value
	for _, sub := range ex.Seq {
		ty, val = g.lowerExp(sub)
	}
	return ty, val
}

func (g *Generator) lowerLet(ex *ast.LetExp) (types.Index, value.Value) {
	depthBefore := g.env.Depth()
	g.env.BeginScope()
	g.preprocess(ex.Decs)
	for _, d := range ex.Decs {
		g.lowerDec(d)
	}
	ty, val := g.lowerExp(ex.Body)
	g.env.EndScope()
	if g.env.Depth() != depthBefore {
		panic("codegen: scope stack imbalance across Let")
	}
	return ty, val
}
