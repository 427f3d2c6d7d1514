package codegen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/types"
)

// lowerCall implements spec.md §4.4's Call rule: look up f, require a
// Func binding, check arity and per-argument match, emit the call, and
// return (returnType, result) or Void if the callee has no return type.
func (g *Generator) lowerCall(ex *ast.CallExp) (types.Index, value.Value) {
	b, ok := g.env.LookupValue(ex.Func)
	if !ok {
		fail(ErrUndefined, ex.Pos, "undefined function %q", ex.Func)
	}
	fb, ok := b.(*FuncBinding)
	if !ok {
		fail(ErrKindMismatch, ex.Pos, "%q is a variable, not a function", ex.Func)
	}
	if len(ex.Args) != len(fb.Formals) {
		fail(ErrArity, ex.Pos, "%q expects %d argument(s), got %d", ex.Func, len(fb.Formals), len(ex.Args))
	}
	g.ensureDeclared(fb)

	args := make([]value.Value, len(ex.Args))
	for i, a := range ex.Args {
		argTy, argVal := g.lowerExp(a)
		if !g.arena.Match(fb.Formals[i], argTy) {
			fail(ErrTypeMismatch, a.Position(), "argument %d to %q: expected %s, got %s",
				i+1, ex.Func, g.arena.String(fb.Formals[i]), g.arena.String(argTy))
		}
		args[i] = argVal
	}

	result := g.builder.Call(fb.Value, args...)
	if g.arena.Actual(fb.Return) == g.arena.Void() {
		return g.arena.Void(), nil
	}
	return fb.Return, result
}
