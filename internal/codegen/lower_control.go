package codegen

import (
	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/types"
)

// lowerIf implements spec.md §4.5's two If forms.
func (g *Generator) lowerIf(ex *ast.IfExp) (types.Index, value.Value) {
	condTy, condVal := g.lowerExp(ex.Cond)
	if g.arena.Actual(condTy) != g.arena.Int() {
		fail(ErrTypeMismatch, ex.Cond.Position(), "if condition must be int, got %s", g.arena.String(condTy))
	}

	if ex.Els == nil {
		thenB := g.builder.NewBlock(g.newBlockName("then"))
		mergeB := g.builder.NewBlock(g.newBlockName("merge"))
		g.builder.CondBr(condVal, thenB, mergeB)

		g.builder.SetInsertPoint(thenB)
		g.lowerExp(ex.Then)
		if !g.builder.HasTerminator() {
			g.builder.Br(mergeB)
		}

		g.builder.SetInsertPoint(mergeB)
		return g.arena.Void(), nil
	}

	thenB := g.builder.NewBlock(g.newBlockName("then"))
	elseB := g.builder.NewBlock(g.newBlockName("else"))
	mergeB := g.builder.NewBlock(g.newBlockName("merge"))
	g.builder.CondBr(condVal, thenB, elseB)

	g.builder.SetInsertPoint(thenB)
	thenTy, thenVal := g.lowerExp(ex.Then)
	thenEndB := g.builder.CurrentBlock()
	if !g.builder.HasTerminator() {
		g.builder.Br(mergeB)
	}

	g.builder.SetInsertPoint(elseB)
	elseTy, elseVal := g.lowerExp(ex.Els)
	elseEndB := g.builder.CurrentBlock()
	if !g.builder.HasTerminator() {
		g.builder.Br(mergeB)
	}

	if !g.arena.Match(thenTy, elseTy) {
		fail(ErrTypeMismatch, ex.Els.Position(), "if branches disagree: %s vs %s",
			g.arena.String(thenTy), g.arena.String(elseTy))
	}

	g.builder.SetInsertPoint(mergeB)
	if g.arena.Actual(thenTy) == g.arena.Void() {
		return g.arena.Void(), nil
	}
	phi := g.builder.Phi(g.irType(thenTy),
		ir.Incoming{Value: thenVal, Block: thenEndB},
		ir.Incoming{Value: elseVal, Block: elseEndB},
	)
	return thenTy, phi
}

// lowerWhile implements spec.md §4.5's While rule.
func (g *Generator) lowerWhile(ex *ast.WhileExp) (types.Index, value.Value) {
	loopB := g.builder.NewBlock(g.newBlockName("loop"))
	bodyB := g.builder.NewBlock(g.newBlockName("body"))
	endB := g.builder.NewBlock(g.newBlockName("end"))

	g.builder.Br(loopB)
	g.builder.SetInsertPoint(loopB)
	condTy, condVal := g.lowerExp(ex.Cond)
	if g.arena.Actual(condTy) != g.arena.Int() {
		fail(ErrTypeMismatch, ex.Cond.Position(), "while condition must be int, got %s", g.arena.String(condTy))
	}
	g.builder.CondBr(condVal, bodyB, endB)

	g.pushBreak(endB)
	g.builder.SetInsertPoint(bodyB)
	g.lowerExp(ex.Body)
	if !g.builder.HasTerminator() {
		g.builder.Br(loopB)
	}
	g.popBreak()

	g.builder.SetInsertPoint(endB)
	return g.arena.Void(), nil
}

// lowerFor implements spec.md §4.5's For rule: a fresh scope binds the
// loop variable to an i64 storage cell, incremented by 1 each iteration.
func (g *Generator) lowerFor(ex *ast.ForExp) (types.Index, value.Value) {
	fromTy, fromVal := g.lowerExp(ex.From)
	toTy, toVal := g.lowerExp(ex.To)
	if g.arena.Actual(fromTy) != g.arena.Int() || g.arena.Actual(toTy) != g.arena.Int() {
		fail(ErrTypeMismatch, ex.Pos, "for bounds must be int, got %s and %s",
			g.arena.String(fromTy), g.arena.String(toTy))
	}

	depthBefore := g.env.Depth()
	g.env.BeginScope()

	cell := g.builder.Alloca(ir.IntType)
	g.builder.Store(fromVal, cell)
	g.env.InsertValue(ex.Var, &VarBinding{Type: g.arena.Int(), Addr: cell})

	loopB := g.builder.NewBlock(g.newBlockName("loop"))
	bodyB := g.builder.NewBlock(g.newBlockName("body"))
	endB := g.builder.NewBlock(g.newBlockName("end"))

	g.builder.Br(loopB)
	g.builder.SetInsertPoint(loopB)
	cur := g.builder.Load(ir.IntType, cell)
	cond := g.builder.ICmpSlt(cur, toVal)
	g.builder.CondBr(cond, bodyB, endB)

	g.pushBreak(endB)
	g.builder.SetInsertPoint(bodyB)
	g.lowerExp(ex.Body)
	if !g.builder.HasTerminator() {
		next := g.builder.Add(g.builder.Load(ir.IntType, cell), g.builder.ConstInt(1))
		g.builder.Store(next, cell)
		g.builder.Br(loopB)
	}
	g.popBreak()

	g.builder.SetInsertPoint(endB)
	g.env.EndScope()
	if g.env.Depth() != depthBefore {
		panic("codegen: scope stack imbalance across For")
	}
	return g.arena.Void(), nil
}

// lowerBreak implements spec.md §4.5's Break rule.
func (g *Generator) lowerBreak(ex *ast.BreakExp) (types.Index, value.Value) {
	if len(g.breakStack) == 0 {
		fail(ErrBreakOutsideLoop, ex.Pos, "break outside of a loop")
	}
	target := g.breakStack[len(g.breakStack)-1]
	g.builder.Br(target)
	return g.arena.Void(), nil
}

func (g *Generator) pushBreak(target *llir.Block) {
	g.breakStack = append(g.breakStack, target)
}

func (g *Generator) popBreak() {
	g.breakStack = g.breakStack[:len(g.breakStack)-1]
}
