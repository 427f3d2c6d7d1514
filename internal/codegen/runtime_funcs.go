package codegen

import (
	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/runtime"
	"github.com/tiger-lang/tigerc/internal/types"
)

// registerLibraryBindings inserts a FuncBinding for each of spec.md §4.7's
// ten public runtime functions into the outermost value scope, with
// Value left nil — the sentinel this package uses to mean "not yet
// declared in the IR module". ensureDeclared (called from lowerCall) fills
// Value in lazily, the first time that name is actually called, per spec.md
// §4.7 "each registration is a lazy factory".
func (g *Generator) registerLibraryBindings() {
	for _, sig := range runtime.Library {
		g.env.InsertValue(sig.Name, g.runtimeBinding(sig))
	}
}

func (g *Generator) runtimeBinding(sig runtime.Signature) *FuncBinding {
	formals := make([]types.Index, len(sig.ParamTypes))
	for i := range sig.ParamTypes {
		formals[i] = g.runtimeParamType(sig.Name, i)
	}
	ret := g.arena.Void()
	if sig.ReturnType != ir.VoidType {
		ret = g.runtimeReturnType(sig.Name)
	}
	return &FuncBinding{Mangled: sig.Name, Formals: formals, Return: ret}
}

// runtimeParamType and runtimeReturnType translate the IR-level signature
// table in internal/runtime back into Tiger type-graph indices, so
// argument/return matching against user expressions goes through the same
// types.Arena.Match path as any user-defined function (spec.md §4.4 Call).
// Every runtime parameter/return is either string or int, so a name-keyed
// table suffices instead of a general IR-type-to-Tiger-type inverse map.
var runtimeStringParams = map[string]map[int]bool{
	"print":     {0: true},
	"ord":       {0: true},
	"size":      {0: true},
	"substring": {0: true},
	"concat":    {0: true, 1: true},
}

var runtimeStringReturns = map[string]bool{
	"getchar": true, "chr": true, "substring": true, "concat": true,
}

func (g *Generator) runtimeParamType(name string, idx int) types.Index {
	if runtimeStringParams[name][idx] {
		return g.arena.String()
	}
	return g.arena.Int()
}

func (g *Generator) runtimeReturnType(name string) types.Index {
	if runtimeStringReturns[name] {
		return g.arena.String()
	}
	return g.arena.Int()
}

// ensureDeclared emits the IR declaration for a runtime (or internal
// helper) function the first time it is called, caching the result on fb.
func (g *Generator) ensureDeclared(fb *FuncBinding) {
	if fb.Value != nil {
		return
	}
	sig, ok := runtime.Lookup(fb.Mangled)
	if !ok {
		return
	}
	fb.Value = g.builder.DeclareFunc(sig.Name, sig.ReturnType, sig.ParamTypes...)
}

// internalHelper looks up (and lazily declares) one of the three unnamed
// internal runtime helpers spec.md §4.7 lists: string_compare, malloc,
// array_initialize. These have no Tiger-level binding, so they are cached
// on the Generator directly rather than through the value environment.
func (g *Generator) internalHelper(name string) *FuncBinding {
	if fb, ok := g.runtimeFuncs[name]; ok {
		g.ensureDeclared(fb)
		return fb
	}
	sig, ok := runtime.Lookup(name)
	if !ok {
		panic("codegen: unknown internal runtime helper " + name)
	}
	fb := &FuncBinding{Mangled: sig.Name}
	g.ensureDeclared(fb)
	g.runtimeFuncs[name] = fb
	return fb
}
