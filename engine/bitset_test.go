package engine

import "testing"

func TestBitSet_SetClearGet(t *testing.T) {
	b := NewBitSet(130)
	b.Set(5)
	b.Set(129)
	if !b.Get(5) || !b.Get(129) {
		t.Fatal("expected bits 5 and 129 set")
	}
	b.Clear(5)
	if b.Get(5) {
		t.Fatal("expected bit 5 cleared")
	}
	if b.Count() != 1 {
		t.Fatalf("expected count 1, got %d", b.Count())
	}
}

func TestBitSet_AnyAndClearAll(t *testing.T) {
	b := NewBitSet(10)
	if b.Any() {
		t.Fatal("expected empty bitset to report no activity")
	}
	b.Set(3)
	if !b.Any() {
		t.Fatal("expected activity after Set")
	}
	b.ClearAll()
	if b.Any() {
		t.Fatal("expected no activity after ClearAll")
	}
}
