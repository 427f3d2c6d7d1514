package codegen

import (
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/types"
)

// preprocess runs spec.md §4.3's declaration preprocessor: the type pass
// (stub every TypeDec, then resolve/patch targets, deferring unresolved
// references to a second pass) followed by the function pass (forward-
// declare every FunctionDec's signature and IR function before any body
// is lowered). Variable declarations are left for the caller to lower
// inline, in declaration order, alongside function bodies.
func (g *Generator) preprocess(decs []ast.Dec) {
	var typeDecs []*ast.TypeDec
	var funcDecs []*ast.FunctionDec
	for _, d := range decs {
		switch td := d.(type) {
		case *ast.TypeDec:
			typeDecs = append(typeDecs, td)
		case *ast.FunctionDec:
			funcDecs = append(funcDecs, td)
		}
	}
	g.preprocessTypes(typeDecs)
	g.preprocessFuncs(funcDecs)
}

type deferredPatch struct {
	apply    func(target types.Index) bool
	missing  string
	pos      ast.Pos
}

// preprocessTypes implements spec.md §4.3's type pass, steps 1–4.
func (g *Generator) preprocessTypes(decs []*ast.TypeDec) {
	stubs := make(map[string]types.Index, len(decs))

	for _, td := range decs {
		if _, redeclared := g.env.LookupTypeTop(td.Name); redeclared {
			fail(ErrRedeclaration, td.Pos, "type %q redeclared in this let", td.Name)
		}
		var idx types.Index
		switch spec := td.Spec.(type) {
		case *ast.NameTy:
			idx = g.arena.NewNamedStub(td.Name)
		case *ast.ArrayTy:
			idx = g.arena.NewArrayStub()
		case *ast.RecordTy:
			names := make([]string, len(spec.Fields))
			for i, f := range spec.Fields {
				names[i] = f.Name
			}
			idx = g.arena.NewRecordStub(td.Name, names)
			// Eager struct materialization (spec.md §9 design note,
			// SPEC_FULL.md §4.4): the opaque named struct exists as
			// soon as the stub does, closing the "referenced before
			// its TypeDec is visited" undefined-behavior gap.
			g.structTypeFor(idx)
		default:
			fail(ErrKindMismatch, td.Pos, "unknown type spec for %q", td.Name)
		}
		stubs[td.Name] = idx
		g.env.InsertType(td.Name, idx)
	}

	var deferred []deferredPatch
	for _, td := range decs {
		idx := stubs[td.Name]
		switch spec := td.Spec.(type) {
		case *ast.NameTy:
			g.resolveTypeRef(spec.Name, td.Pos, &deferred, func(target types.Index) bool {
				g.arena.PatchNamedTarget(idx, target)
				return true
			})
		case *ast.ArrayTy:
			g.resolveTypeRef(spec.Elem, td.Pos, &deferred, func(target types.Index) bool {
				g.arena.PatchArrayElement(idx, target)
				return true
			})
		case *ast.RecordTy:
			for _, f := range spec.Fields {
				fieldName := f.Name
				g.resolveTypeRef(f.Type, f.Pos, &deferred, func(target types.Index) bool {
					g.arena.PatchRecordField(idx, fieldName, target)
					return true
				})
			}
		}
	}

	// Second pass: revisit every deferral once all stubs exist.
	var stillMissing []deferredPatch
	for _, dp := range deferred {
		if target, ok := g.env.LookupType(dp.missing); ok {
			dp.apply(target)
		} else {
			stillMissing = append(stillMissing, dp)
		}
	}
	if len(stillMissing) > 0 {
		dp := stillMissing[0]
		fail(ErrUnresolvedType, dp.pos, "undefined type %q", dp.missing)
	}

	// Now that every field/target is patched, fill in record struct
	// bodies with concrete IR field types.
	for _, td := range decs {
		if _, ok := td.Spec.(*ast.RecordTy); !ok {
			continue
		}
		idx := stubs[td.Name]
		g.finalizeStructBody(idx)
	}
}

// resolveTypeRef looks up name in the current (top) type scope, then in the
// enclosing scopes; if it is absent from all of them, it records a deferred
// patch for the second pass instead of failing outright, per spec.md §4.3
// step 3.
func (g *Generator) resolveTypeRef(name string, pos ast.Pos, deferred *[]deferredPatch, apply func(types.Index) bool) {
	if idx, ok := g.env.LookupTypeTop(name); ok {
		apply(idx)
		return
	}
	if idx, ok := g.env.LookupType(name); ok {
		apply(idx)
		return
	}
	*deferred = append(*deferred, deferredPatch{apply: apply, missing: name, pos: pos})
}

// preprocessFuncs implements spec.md §4.3's function pass: every sibling
// FunctionDec's signature is resolved and its IR function forward-declared
// before any body (including the first function's own) is lowered, which
// is what makes mutual recursion between functions possible.
func (g *Generator) preprocessFuncs(decs []*ast.FunctionDec) {
	for _, fd := range decs {
		if _, redeclared := g.env.LookupValueTop(fd.Name); redeclared {
			fail(ErrRedeclaration, fd.Pos, "function %q redeclared in this let", fd.Name)
		}

		paramNames := make([]string, len(fd.Params))
		paramTypes := make([]types.Index, len(fd.Params))
		paramIRTypes := make([]irtypes.Type, len(fd.Params))
		for i, p := range fd.Params {
			idx, ok := g.env.LookupType(p.Type)
			if !ok {
				fail(ErrUndefined, p.Pos, "undefined type %q in parameter %q", p.Type, p.Name)
			}
			paramNames[i] = p.Name
			paramTypes[i] = idx
			paramIRTypes[i] = g.irType(idx)
		}

		retIdx := g.arena.Void()
		if fd.ReturnType != "" {
			idx, ok := g.env.LookupType(fd.ReturnType)
			if !ok {
				fail(ErrUndefined, fd.Pos, "undefined return type %q for function %q", fd.ReturnType, fd.Name)
			}
			retIdx = idx
		}

		mangled := g.mangle(fd.Name)
		fn := g.builder.DeclareUserFunc(mangled, g.irType(retIdx), paramNames, paramIRTypes)
		g.env.InsertValue(fd.Name, &FuncBinding{
			Mangled: mangled,
			Value:   fn,
			Formals: paramTypes,
			Return:  retIdx,
		})
	}
}

func (g *Generator) finalizeStructBody(idx types.Index) {
	node := g.arena.Node(idx)
	st := g.structTypes[idx]
	fieldTypes := make([]irtypes.Type, len(node.Fields))
	for i, f := range node.Fields {
		fieldTypes[i] = g.irType(f.Type)
	}
	g.builder.SetStructBody(st, fieldTypes...)
}
