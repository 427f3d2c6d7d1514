package codegen

import (
	"strconv"

	irtypes "github.com/llir/llvm/ir/types"

	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/types"
)

// irType maps a Tiger type-graph node to its IR representation per
// spec.md §4.6: Int -> i64, String/Nil/Array/Record -> pointer, Void ->
// void, Named -> recurse on its actual target. A record value is a plain
// pointer here; its struct layout lives in g.structTypes (see
// structTypeFor), which is populated eagerly during the type pass.
func (g *Generator) irType(idx types.Index) irtypes.Type {
	idx = g.arena.Actual(idx)
	node := g.arena.Node(idx)
	switch node.Kind {
	case types.KindInt:
		return ir.IntType
	case types.KindVoid:
		return ir.VoidType
	case types.KindString, types.KindNil, types.KindArray:
		return ir.PtrType
	case types.KindRecord:
		return ir.PtrType
	default:
		return ir.PtrType
	}
}

// structTypeFor returns the named IR struct type backing a Record type
// node, creating it on first reference if the type pass has not already
// done so (it always has, for any record reachable from a well-formed
// `let`; this is a defensive fallback, not the primary path).
func (g *Generator) structTypeFor(idx types.Index) *irtypes.StructType {
	idx = g.arena.Actual(idx)
	if st, ok := g.structTypes[idx]; ok {
		return st
	}
	node := g.arena.Node(idx)
	st := g.builder.NewStructType(g.freshStructName(node.Name))
	g.structTypes[idx] = st
	return st
}

func (g *Generator) freshStructName(base string) string {
	g.structNameCounter++
	return base + ".struct." + strconv.Itoa(g.structNameCounter)
}
