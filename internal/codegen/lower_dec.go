package codegen

import (
	llir "github.com/llir/llvm/ir"

	"github.com/tiger-lang/tigerc/internal/ast"
)

// lowerDec lowers one declaration's *body* (its signature was already
// resolved by preprocess): a VarDec allocates storage and emits its
// initializer; a FunctionDec emits its body now that every sibling
// signature is known; a TypeDec has nothing left to do.
func (g *Generator) lowerDec(d ast.Dec) {
	switch dd := d.(type) {
	case *ast.TypeDec:
		// Fully handled by preprocessTypes.
	case *ast.VarDec:
		g.lowerVarDec(dd)
	case *ast.FunctionDec:
		g.lowerFunctionDec(dd)
	}
}

func (g *Generator) lowerVarDec(d *ast.VarDec) {
	initTy, initVal := g.lowerExp(d.Init)

	declTy := initTy
	if d.TypeName != "" {
		idx, ok := g.env.LookupType(d.TypeName)
		if !ok {
			fail(ErrUndefined, d.Pos, "undefined type %q", d.TypeName)
		}
		declTy = idx
		if !g.arena.Match(declTy, initTy) {
			fail(ErrTypeMismatch, d.Init.Position(), "variable %q: declared %s, initializer is %s",
				d.Name, g.arena.String(declTy), g.arena.String(initTy))
		}
	}

	cell := g.builder.Alloca(g.irType(declTy))
	g.builder.Store(initVal, cell)
	g.env.InsertValue(d.Name, &VarBinding{Type: declTy, Addr: cell})
}

func (g *Generator) lowerFunctionDec(d *ast.FunctionDec) {
	b, _ := g.env.LookupValueTop(d.Name)
	fb := b.(*FuncBinding)
	fn := fb.Value.(*llir.Func)

	outerFn, outerBlock := g.builder.SaveCursor()
	g.builder.EnterFunc(fn)

	depthBefore := g.env.Depth()
	g.env.BeginScope()
	for i, p := range d.Params {
		cell := g.builder.Alloca(g.irType(fb.Formals[i]))
		g.builder.Store(fn.Params[i], cell)
		g.env.InsertValue(p.Name, &VarBinding{Type: fb.Formals[i], Addr: cell})
	}

	bodyTy, bodyVal := g.lowerExp(d.Body)

	if g.arena.Actual(fb.Return) != g.arena.Void() {
		if !g.arena.Match(fb.Return, bodyTy) {
			fail(ErrTypeMismatch, d.Body.Position(), "function %q: declared return %s, body is %s",
				d.Name, g.arena.String(fb.Return), g.arena.String(bodyTy))
		}
		if !g.builder.HasTerminator() {
			g.builder.Ret(bodyVal)
		}
	} else if !g.builder.HasTerminator() {
		g.builder.Ret(nil)
	}

	g.env.EndScope()
	if g.env.Depth() != depthBefore {
		panic("codegen: scope stack imbalance across function body")
	}

	g.builder.RestoreCursor(outerFn, outerBlock)
}
