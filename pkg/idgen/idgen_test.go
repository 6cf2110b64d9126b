package idgen

import "testing"

func TestUUIDv7Unique(t *testing.T) {
	gen := UUIDv7()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen()
		if seen[id] {
			t.Fatalf("duplicate id %s after %d draws", id, i)
		}
		if !Valid(id) {
			t.Fatalf("invalid uuid %q", id)
		}
		seen[id] = true
	}
}

func TestSequence(t *testing.T) {
	gen := Sequence("c")
	for _, want := range []string{"c-1", "c-2", "c-3"} {
		if got := gen(); got != want {
			t.Errorf("gen() = %q, want %q", got, want)
		}
	}
}

func TestSetDefault(t *testing.T) {
	restore := SetDefault(Sequence("t"))
	if got := New(); got != "t-1" {
		t.Errorf("New() = %q, want t-1", got)
	}
	restore()
	if !Valid(New()) {
		t.Error("restored default should produce UUIDs")
	}
}
