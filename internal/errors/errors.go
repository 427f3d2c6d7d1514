// Package errors formats Tiger compiler diagnostics. Structure and source-
// line extraction are adapted from the teacher's diagnostic formatter
// (CWBudde-go-dws/internal/errors/errors.go); the wire format itself is
// rewritten to match spec.md §7's literal wording — "first semantic error
// is fatal", printed as a single line ending in a period — instead of the
// teacher's multi-line boxed format (DWScript recovers from many errors at
// once; Tiger's compiler here does not).
package errors

import (
	"fmt"
	"strings"

	"github.com/tiger-lang/tigerc/internal/lexer"
)

// CompilerError is the one fatal diagnostic a compile run can produce.
type CompilerError struct {
	Message string
	Pos     lexer.Position
}

// New creates a CompilerError at pos with the given message.
func New(pos lexer.Position, message string) *CompilerError {
	return &CompilerError{Message: message, Pos: pos}
}

// Error implements the error interface, in spec.md §7's exact format:
// "<message> (row: <line>, column: <col>)."
func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s (row: %d, column: %d).", e.Message, e.Pos.Line, e.Pos.Column)
}

// FormatWithSource renders the diagnostic followed by the offending source
// line and a caret pointing at the column, for a CLI that wants more than
// the bare one-line message.
func FormatWithSource(err *CompilerError, source string) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	lines := strings.Split(source, "\n")
	if err.Pos.Line < 1 || err.Pos.Line > len(lines) {
		return sb.String()
	}
	line := lines[err.Pos.Line-1]
	sb.WriteString(line)
	sb.WriteString("\n")
	col := err.Pos.Column
	if col < 1 {
		col = 1
	}
	sb.WriteString(strings.Repeat(" ", col-1))
	sb.WriteString("^")
	return sb.String()
}
