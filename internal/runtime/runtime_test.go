package runtime

import "testing"

func TestLookupFindsPublicAndInternalNames(t *testing.T) {
	names := []string{"print", "flush", "getchar", "ord", "chr", "size", "substring", "concat", "not", "exit",
		"string_compare", "malloc", "array_initialize"}
	for _, name := range names {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) should succeed", name)
		}
	}
}

func TestLookupRejectsUnknownName(t *testing.T) {
	if _, ok := Lookup("no_such_function"); ok {
		t.Fatal("Lookup of an unregistered name should fail")
	}
}

func TestAllIsLibraryThenInternal(t *testing.T) {
	if len(All) != len(Library)+len(Internal) {
		t.Fatalf("All should concatenate Library and Internal exactly once, got %d want %d",
			len(All), len(Library)+len(Internal))
	}
	for i, sig := range Library {
		if All[i].Name != sig.Name {
			t.Fatalf("All[%d] = %q, want Library entry %q", i, All[i].Name, sig.Name)
		}
	}
}

func TestNoDuplicateNames(t *testing.T) {
	seen := map[string]bool{}
	for _, sig := range All {
		if seen[sig.Name] {
			t.Fatalf("duplicate runtime signature name %q", sig.Name)
		}
		seen[sig.Name] = true
	}
}
