// Package types implements the Tiger type graph: the arena of type nodes,
// the actual/match/deep-equality relations that drive assignability and
// comparability, and the handful of singleton scalar types every program
// shares.
//
// Type nodes never live as raw pointers that can dangle or be shared across
// arenas. Instead every node lives in an Arena slice and refers to other
// nodes by Index. This closes the "Cyclic type graphs" design note in
// spec.md §9: a Named or Array node's target is an index, not a pointer,
// so recursive types (type list = {hd: int, tl: list}) are ordinary
// self-referential slice entries rather than heap cycles a garbage
// collector has to reason about.
package types

import "fmt"

// Index identifies a node within an Arena. The sentinel NoIndex never
// refers to a real node.
type Index int

// NoIndex is the not-a-node sentinel, used for a Named/Array target that has
// not been patched yet during preprocessing.
const NoIndex Index = -1

// Kind tags the variant a Node holds.
type Kind int

const (
	KindInt Kind = iota
	KindString
	KindVoid
	KindNil
	KindUndefined
	KindNamed
	KindArray
	KindRecord
)

// Field is one entry of a Record's ordered field list. Type is NoIndex
// until the declaration preprocessor patches it.
type Field struct {
	Name string
	Type Index
}

// Node is one type-graph vertex. Only the fields relevant to Kind are
// meaningful; the others are zero.
type Node struct {
	Kind Kind

	// Named, Array
	Name   string // Named's own name; also Record's name
	Target Index  // Named.target / Array.element

	// Record
	Fields []Field
}

// Arena owns every type Node created while compiling one program. It hands
// out singleton scalar nodes (Int, String, Void, Nil, Undefined) exactly
// once and appends a fresh Node for every Named/Array/Record.
type Arena struct {
	nodes                                   []Node
	intIdx, stringIdx, voidIdx, nilIdx, undI Index
}

// NewArena creates an arena pre-populated with the five singleton scalar
// nodes, matching "literal types ... are created on demand" in spec.md §4.1
// — on demand here means once, lazily, the first time NewArena is asked for
// one, but in practice every generator needs all five immediately so they
// are simply built upfront.
func NewArena() *Arena {
	a := &Arena{}
	a.intIdx = a.push(Node{Kind: KindInt})
	a.stringIdx = a.push(Node{Kind: KindString})
	a.voidIdx = a.push(Node{Kind: KindVoid})
	a.nilIdx = a.push(Node{Kind: KindNil})
	a.undI = a.push(Node{Kind: KindUndefined})
	return a
}

func (a *Arena) push(n Node) Index {
	a.nodes = append(a.nodes, n)
	return Index(len(a.nodes) - 1)
}

// Int, String, Void, Nil, Undefined return the arena's unique singleton for
// that scalar kind.
func (a *Arena) Int() Index       { return a.intIdx }
func (a *Arena) String() Index    { return a.stringIdx }
func (a *Arena) Void() Index      { return a.voidIdx }
func (a *Arena) Nil() Index       { return a.nilIdx }
func (a *Arena) Undefined() Index { return a.undI }

// Node returns the node at idx. Panics on an out-of-range index — an
// internal invariant violation, never a user-facing error.
func (a *Arena) Node(idx Index) *Node {
	return &a.nodes[idx]
}

// NewNamedStub creates a Named(name, NoIndex) node for the type
// preprocessor's first pass (spec.md §4.3 step 2).
func (a *Arena) NewNamedStub(name string) Index {
	return a.push(Node{Kind: KindNamed, Name: name, Target: NoIndex})
}

// NewArrayStub creates an Array(NoIndex) node for the type preprocessor's
// first pass.
func (a *Arena) NewArrayStub() Index {
	return a.push(Node{Kind: KindArray, Target: NoIndex})
}

// NewRecordStub creates a Record(name, fields) node whose field types are
// all NoIndex, to be patched by the type preprocessor's second pass. fields
// fixes declaration order, which is both the record's equality identity
// basis (field order must equal textual order) and its IR struct layout.
func (a *Arena) NewRecordStub(name string, fieldNames []string) Index {
	fields := make([]Field, len(fieldNames))
	for i, n := range fieldNames {
		fields[i] = Field{Name: n, Type: NoIndex}
	}
	return a.push(Node{Kind: KindRecord, Name: name, Fields: fields})
}

// PatchNamedTarget sets a previously-stubbed Named node's target.
func (a *Arena) PatchNamedTarget(named, target Index) {
	a.nodes[named].Target = target
}

// PatchArrayElement sets a previously-stubbed Array node's element type.
func (a *Arena) PatchArrayElement(array, elem Index) {
	a.nodes[array].Target = elem
}

// PatchRecordField sets the type of the named field on a Record node.
// Panics if the field does not exist — callers only patch fields they
// themselves declared in NewRecordStub.
func (a *Arena) PatchRecordField(record Index, fieldName string, ty Index) {
	fields := a.nodes[record].Fields
	for i := range fields {
		if fields[i].Name == fieldName {
			fields[i].Type = ty
			return
		}
	}
	panic(fmt.Sprintf("types: patch of unknown field %q on record", fieldName))
}

// Actual strips Named indirections, following target pointers until it
// reaches a non-Named node or detects a self-cycle (a Named pointing at
// itself, which stops the walk rather than looping forever). Mirrors
// spec.md §4.1 "Actual type".
func (a *Arena) Actual(idx Index) Index {
	cur := idx
	for {
		n := a.nodes[cur]
		if n.Kind != KindNamed {
			return cur
		}
		if n.Target == cur || n.Target == NoIndex {
			return cur
		}
		cur = n.Target
	}
}

// Match implements spec.md §4.1's assignability/comparability relation:
// match(τ,σ) = match'(actual(τ), actual(σ)), except a record on either side
// also matches Nil on the other.
func (a *Arena) Match(lhs, rhs Index) bool {
	al, ar := a.Actual(lhs), a.Actual(rhs)
	if a.nodes[al].Kind == KindRecord {
		return a.match0(ar, al) || a.nodes[ar].Kind == KindNil
	}
	if a.nodes[ar].Kind == KindRecord {
		return a.nodes[al].Kind == KindNil
	}
	return a.match0(al, ar)
}

// match0 is match' from spec.md §4.1: reflexive on scalars, identity-based
// for Array/Record, always false between distinct Named after stripping
// (Named is never returned by Actual unless it is a self-cycle, in which
// case two different self-cyclic Named nodes are simply different indices
// and so correctly do not match).
func (a *Arena) match0(lhs, rhs Index) bool {
	ln, rn := a.nodes[lhs], a.nodes[rhs]
	if ln.Kind != rn.Kind {
		return false
	}
	switch ln.Kind {
	case KindInt, KindString, KindVoid, KindNil, KindUndefined:
		return true
	case KindArray, KindRecord, KindNamed:
		return lhs == rhs
	default:
		return false
	}
}

// DeepEqual is the structural comparator spec.md §4.1 names for the
// explicit equality operator on type *values* (not instance match): a
// worklist DFS with a visited-pair map so cyclic types terminate. Array
// element types, Record field sets (by name, then recursively), and Named
// wrappers (names must agree) are compared structurally; everything else
// falls back to index identity.
func (a *Arena) DeepEqual(lhs, rhs Index) bool {
	type pair struct{ l, r Index }
	visited := map[pair]bool{}
	var stack []pair
	stack = append(stack, pair{lhs, rhs})

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.l == NoIndex && p.r == NoIndex {
			continue
		}
		if p.l == NoIndex || p.r == NoIndex {
			return false
		}
		if visited[pair{p.l, p.r}] || p.l == p.r {
			continue
		}

		ln, rn := a.nodes[p.l], a.nodes[p.r]
		switch {
		case ln.Kind == KindArray && rn.Kind == KindArray:
			visited[pair{p.l, p.r}] = true
			stack = append(stack, pair{ln.Target, rn.Target})
		case ln.Kind == KindNamed && rn.Kind == KindNamed:
			if ln.Name != rn.Name {
				return false
			}
			visited[pair{p.l, p.r}] = true
			stack = append(stack, pair{ln.Target, rn.Target})
		case ln.Kind == KindRecord && rn.Kind == KindRecord:
			if len(ln.Fields) != len(rn.Fields) {
				return false
			}
			visited[pair{p.l, p.r}] = true
			for _, lf := range ln.Fields {
				found := false
				for _, rf := range rn.Fields {
					if rf.Name == lf.Name {
						found = true
						stack = append(stack, pair{lf.Type, rf.Type})
						break
					}
				}
				if !found {
					return false
				}
			}
		default:
			if ln.Kind != rn.Kind {
				return false
			}
		}
	}
	return true
}

// String renders a human-readable description of idx, for diagnostics.
func (a *Arena) String(idx Index) string {
	if idx == NoIndex {
		return "<unresolved>"
	}
	n := a.nodes[idx]
	switch n.Kind {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindNil:
		return "nil"
	case KindUndefined:
		return "undefined"
	case KindNamed:
		return n.Name
	case KindArray:
		return fmt.Sprintf("array of %s", a.String(n.Target))
	case KindRecord:
		return fmt.Sprintf("record %s", n.Name)
	default:
		return "?"
	}
}
