package codegen

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// Golden-IR tests: a handful of canonical programs snapshotted against
// their full textual LLVM IR, the way the teacher snapshots interpreter
// output (internal/interp/fixture_test.go) rather than asserting against
// hand-picked substrings.
func TestGoldenIR(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"int_literal", "42"},
		{"arithmetic", "1 + 2 * 3"},
		{"if_else", `if 1 = 1 then 10 else 20`},
		{"for_loop_with_break", `for i := 0 to 9 do if i = 5 then break else ()`},
		{"mutual_recursion", `let
function f(x:int):int = g(x)
function g(x:int):int = x + 1
in f(41) end`},
		{"record_and_field", `let
type p = {x:int, y:int}
var v := p{x=1, y=2}
in v.x end`},
		{"array_alloc", `let
type intArray = array of int
var a := intArray[10] of 0
in a[3] end`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ir, err := compile(t, c.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			snaps.MatchSnapshot(t, c.name, ir)
		})
	}
}
