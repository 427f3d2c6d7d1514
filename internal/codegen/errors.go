package codegen

import (
	"fmt"

	"github.com/tiger-lang/tigerc/internal/ast"
)

// Kind names one of spec.md §7's eight fatal error kinds, for test
// assertions; the CLI-visible message text does not depend on it.
type Kind int

const (
	ErrUndefined Kind = iota
	ErrKindMismatch
	ErrRedeclaration
	ErrArity
	ErrTypeMismatch
	ErrBadAccess
	ErrBreakOutsideLoop
	ErrUnresolvedType
)

// SemaError is the structured diagnostic raised via panic for the first
// fatal error encountered while preprocessing or lowering a `let`; per
// spec.md §7's no-recovery policy, there is never more than one.
type SemaError struct {
	Kind    Kind
	Message string
	Pos     ast.Pos
}

func (e *SemaError) Error() string {
	return e.Message
}

func fail(kind Kind, pos ast.Pos, format string, args ...any) {
	panic(&SemaError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos})
}
