// Package runtime declares the Tiger standard library's external
// signatures: the ten public functions spec.md §4.7 says every program
// sees in its outermost scope, plus the three internal helpers codegen
// calls for array/record construction and string comparison that no Tiger
// source program can name directly. This table is the single reviewable
// place the "what the runtime must export" contract lives, read by the
// generator's lazy-factory registration — adapted from the
// teacher's builtins table layout (CWBudde-go-dws/internal/builtins,
// before that package was trimmed for not applying to Tiger; see
// DESIGN.md) before the table itself is reduced to data.
package runtime

import (
	"github.com/llir/llvm/ir/types"

	"github.com/tiger-lang/tigerc/internal/ir"
)

// Signature is one runtime function's externally visible shape.
type Signature struct {
	Name       string
	ReturnType types.Type
	ParamTypes []types.Type
}

// Library lists spec.md §4.7's ten public runtime functions, in the order
// the spec names them.
var Library = []Signature{
	{Name: "print", ReturnType: ir.VoidType, ParamTypes: []types.Type{ir.PtrType}},
	{Name: "flush", ReturnType: ir.VoidType, ParamTypes: nil},
	{Name: "getchar", ReturnType: ir.PtrType, ParamTypes: nil},
	{Name: "ord", ReturnType: ir.IntType, ParamTypes: []types.Type{ir.PtrType}},
	{Name: "chr", ReturnType: ir.PtrType, ParamTypes: []types.Type{ir.IntType}},
	{Name: "size", ReturnType: ir.IntType, ParamTypes: []types.Type{ir.PtrType}},
	{Name: "substring", ReturnType: ir.PtrType, ParamTypes: []types.Type{ir.PtrType, ir.IntType, ir.IntType}},
	{Name: "concat", ReturnType: ir.PtrType, ParamTypes: []types.Type{ir.PtrType, ir.PtrType}},
	{Name: "not", ReturnType: ir.IntType, ParamTypes: []types.Type{ir.IntType}},
	{Name: "exit", ReturnType: ir.VoidType, ParamTypes: []types.Type{ir.IntType}},
}

// Internal lists the three helpers codegen emits calls to but that have no
// Tiger-level name: string comparison (for `=`,`<>`,`<`,`<=`,`>`,`>=` on
// strings, spec.md §4.4's BinOp rule) and the malloc/array_initialize pair
// ArrayExp lowers to (spec.md §4.4/§6).
var Internal = []Signature{
	{Name: "string_compare", ReturnType: ir.IntType, ParamTypes: []types.Type{ir.PtrType, ir.PtrType}},
	{Name: "malloc", ReturnType: ir.PtrType, ParamTypes: []types.Type{ir.IntType}},
	{Name: "array_initialize", ReturnType: ir.VoidType, ParamTypes: []types.Type{ir.PtrType, ir.PtrType, ir.IntType, ir.IntType}},
}

// All is Library followed by Internal, the full set of names codegen's
// lazy factory may be asked to declare.
var All = append(append([]Signature{}, Library...), Internal...)

// Lookup finds a signature by name.
func Lookup(name string) (Signature, bool) {
	for _, sig := range All {
		if sig.Name == name {
			return sig, true
		}
	}
	return Signature{}, false
}
