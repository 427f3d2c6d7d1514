package types

import "testing"

func TestActualStripsNamedIndirection(t *testing.T) {
	a := NewArena()
	alias := a.NewNamedStub("myint")
	a.PatchNamedTarget(alias, a.Int())

	if got := a.Actual(alias); got != a.Int() {
		t.Fatalf("Actual(alias) = %v, want Int", got)
	}
}

func TestActualTerminatesOnRecursiveType(t *testing.T) {
	// type list = {hd: int, tl: list}
	a := NewArena()
	list := a.NewRecordStub("list", []string{"hd", "tl"})
	a.PatchRecordField(list, "hd", a.Int())
	a.PatchRecordField(list, "tl", list)

	// Actual on a Record is a no-op (only Named is stripped); this exercises
	// invariant 5 from spec.md §8: actual(lookup("t")) terminates.
	if got := a.Actual(list); got != list {
		t.Fatalf("Actual(list) = %v, want %v", got, list)
	}
}

func TestMatchScalarsReflexive(t *testing.T) {
	a := NewArena()
	if !a.Match(a.Int(), a.Int()) {
		t.Fatal("int should match int")
	}
	if a.Match(a.Int(), a.String()) {
		t.Fatal("int should not match string")
	}
}

func TestMatchNilAgainstRecord(t *testing.T) {
	a := NewArena()
	rec := a.NewRecordStub("point", []string{"x", "y"})
	a.PatchRecordField(rec, "x", a.Int())
	a.PatchRecordField(rec, "y", a.Int())

	if !a.Match(rec, a.Nil()) {
		t.Fatal("nil should match a record type")
	}
	if !a.Match(a.Nil(), rec) {
		t.Fatal("record should match nil from either side")
	}
	if a.Match(a.Nil(), a.Int()) {
		t.Fatal("nil should never match int")
	}
}

func TestMatchDistinctRecordsByIdentity(t *testing.T) {
	a := NewArena()
	r1 := a.NewRecordStub("t1", []string{"a"})
	a.PatchRecordField(r1, "a", a.Int())
	r2 := a.NewRecordStub("t2", []string{"a"})
	a.PatchRecordField(r2, "a", a.Int())

	if a.Match(r1, r2) {
		t.Fatal("two separately declared record types must not match")
	}
}

func TestMatchArraysByIdentity(t *testing.T) {
	a := NewArena()
	arr1 := a.NewArrayStub()
	a.PatchArrayElement(arr1, a.Int())
	arr2 := a.NewArrayStub()
	a.PatchArrayElement(arr2, a.Int())

	if a.Match(arr1, arr2) {
		t.Fatal("two separately declared array types must not match")
	}
	if !a.Match(arr1, arr1) {
		t.Fatal("an array type must match itself")
	}
}

func TestDeepEqualRecursiveRecordsTerminate(t *testing.T) {
	a := NewArena()
	list1 := a.NewRecordStub("list", []string{"hd", "tl"})
	a.PatchRecordField(list1, "hd", a.Int())
	a.PatchRecordField(list1, "tl", list1)

	list2 := a.NewRecordStub("list", []string{"hd", "tl"})
	a.PatchRecordField(list2, "hd", a.Int())
	a.PatchRecordField(list2, "tl", list2)

	if !a.DeepEqual(list1, list2) {
		t.Fatal("two structurally identical recursive record types should deep-equal")
	}
}

func TestDeepEqualDetectsFieldTypeMismatch(t *testing.T) {
	a := NewArena()
	r1 := a.NewRecordStub("t1", []string{"a"})
	a.PatchRecordField(r1, "a", a.Int())
	r2 := a.NewRecordStub("t2", []string{"a"})
	a.PatchRecordField(r2, "a", a.String())

	if a.DeepEqual(r1, r2) {
		t.Fatal("records with differently typed fields should not deep-equal")
	}
}

func TestDeepEqualNamedRequiresMatchingNames(t *testing.T) {
	a := NewArena()
	n1 := a.NewNamedStub("foo")
	a.PatchNamedTarget(n1, a.Int())
	n2 := a.NewNamedStub("bar")
	a.PatchNamedTarget(n2, a.Int())

	if a.DeepEqual(n1, n2) {
		t.Fatal("Named wrappers with different names should not deep-equal")
	}
}
