package errors

import (
	"strings"
	"testing"

	"github.com/tiger-lang/tigerc/internal/lexer"
)

func TestErrorWireFormat(t *testing.T) {
	err := New(lexer.Position{Line: 3, Column: 7}, "undefined variable \"x\"")
	got := err.Error()
	want := `undefined variable "x" (row: 3, column: 7).`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatWithSourcePointsAtColumn(t *testing.T) {
	src := "let\n  var x := y\nin x end"
	err := New(lexer.Position{Line: 2, Column: 12}, "undefined variable \"y\"")
	out := FormatWithSource(err, src)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (message, source, caret), got %d:\n%s", len(lines), out)
	}
	if lines[1] != "  var x := y" {
		t.Fatalf("expected the offending source line, got %q", lines[1])
	}
	caret := lines[2]
	if len(caret) != 12 || caret[11] != '^' {
		t.Fatalf("expected the caret at column 12, got %q", caret)
	}
}

func TestFormatWithSourceOutOfRangeLine(t *testing.T) {
	err := New(lexer.Position{Line: 99, Column: 1}, "oops")
	out := FormatWithSource(err, "only one line")
	if !strings.HasPrefix(out, err.Error()) {
		t.Fatalf("expected message prefix preserved, got %q", out)
	}
}
