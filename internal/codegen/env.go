package codegen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/tiger-lang/tigerc/internal/types"
)

// Binding is the tagged sum spec.md §9 "Binding variants" names in place
// of an inheritance-based value-entry hierarchy: every name in the value
// environment is either a variable (a storage cell plus its static type)
// or a function (its mangled IR name, formal types, and return type).
type Binding interface {
	bindingNode()
}

// VarBinding is a stack-allocated storage cell: Addr is the `alloca`
// handle a VarExp/Assign loads from or stores to.
type VarBinding struct {
	Type types.Index
	Addr value.Value
}

func (*VarBinding) bindingNode() {}

// FuncBinding is a callable Tiger function (user-defined or a registered
// runtime library entry). Return is the arena's Void type for a function
// with no return type.
type FuncBinding struct {
	Mangled string
	Value   value.Value
	Formals []types.Index
	Return  types.Index
}

func (*FuncBinding) bindingNode() {}

// Env holds the two parallel scope stacks spec.md §4.2 describes: one
// dictionary stack for type names, one for value names, pushed and
// popped in lockstep by BeginScope/EndScope.
type Env struct {
	types  []map[string]types.Index
	values []map[string]Binding
}

// NewEnv creates an Env with a single, empty outermost scope.
func NewEnv() *Env {
	e := &Env{}
	e.BeginScope()
	return e
}

// BeginScope pushes a fresh, empty dictionary onto both stacks.
func (e *Env) BeginScope() {
	e.types = append(e.types, map[string]types.Index{})
	e.values = append(e.values, map[string]Binding{})
}

// EndScope pops the topmost dictionary off both stacks.
func (e *Env) EndScope() {
	e.types = e.types[:len(e.types)-1]
	e.values = e.values[:len(e.values)-1]
}

// Depth returns the current scope nesting depth, for invariant checks
// (spec.md §8 invariant 1: scope depth on `Let` exit equals depth on entry).
func (e *Env) Depth() int {
	return len(e.types)
}

// InsertType inserts a type binding into the topmost type scope, shadowing
// any outer binding of the same name.
func (e *Env) InsertType(name string, idx types.Index) {
	e.types[len(e.types)-1][name] = idx
}

// LookupType searches the type stack top-to-bottom.
func (e *Env) LookupType(name string) (types.Index, bool) {
	for i := len(e.types) - 1; i >= 0; i-- {
		if idx, ok := e.types[i][name]; ok {
			return idx, true
		}
	}
	return types.NoIndex, false
}

// LookupTypeTop searches only the topmost type scope.
func (e *Env) LookupTypeTop(name string) (types.Index, bool) {
	idx, ok := e.types[len(e.types)-1][name]
	return idx, ok
}

// InsertValue inserts a value binding into the topmost value scope.
func (e *Env) InsertValue(name string, b Binding) {
	e.values[len(e.values)-1][name] = b
}

// LookupValue searches the value stack top-to-bottom.
func (e *Env) LookupValue(name string) (Binding, bool) {
	for i := len(e.values) - 1; i >= 0; i-- {
		if b, ok := e.values[i][name]; ok {
			return b, true
		}
	}
	return nil, false
}

// LookupValueTop searches only the topmost value scope, used to detect
// redeclaration of a function within one `let` (spec.md §4.3 step 1).
func (e *Env) LookupValueTop(name string) (Binding, bool) {
	b, ok := e.values[len(e.values)-1][name]
	return b, ok
}
