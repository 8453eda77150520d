package actor

import "testing"

func TestAcquireReturnsDistinctLiveIDs(t *testing.T) {
	p := NewPool()
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := p.Acquire()
		if seen[id] {
			t.Fatalf("duplicate ID %v handed out", id)
		}
		seen[id] = true
		if !p.Live(id) {
			t.Fatalf("freshly acquired ID %v not live", id)
		}
	}
}

func TestReleaseInvalidatesID(t *testing.T) {
	p := NewPool()
	id := p.Acquire()
	p.Release(id)
	if p.Live(id) {
		t.Fatalf("released ID %v still live", id)
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	p := NewPool()
	old := p.Acquire()
	p.Release(old)

	reused := p.Acquire()
	if reused.Index() != old.Index() {
		t.Fatalf("free slot not recycled: index %d, want %d", reused.Index(), old.Index())
	}
	if reused.Generation() == old.Generation() {
		t.Fatalf("recycled slot kept generation %d; stale IDs would match", old.Generation())
	}
	if p.Live(old) {
		t.Fatalf("stale ID live after its slot was recycled")
	}
	if !p.Live(reused) {
		t.Fatalf("recycled ID not live")
	}
}

func TestStaleReleaseIsNoop(t *testing.T) {
	p := NewPool()
	old := p.Acquire()
	p.Release(old)
	current := p.Acquire()

	p.Release(old) // stale: must not invalidate the current occupant
	if !p.Live(current) {
		t.Fatalf("stale release invalidated the slot's current ID")
	}
}

func TestReleaseUnknownIDIsNoop(t *testing.T) {
	p := NewPool()
	p.Release(MakeID(42, 0)) // never acquired
	if id := p.Acquire(); id.Index() != 0 {
		t.Fatalf("unknown release corrupted the pool: first index %d, want 0", id.Index())
	}
}

func TestIDPacking(t *testing.T) {
	id := MakeID(7, 3)
	if id.Index() != 7 || id.Generation() != 3 {
		t.Fatalf("round trip gave index=%d gen=%d, want 7 and 3", id.Index(), id.Generation())
	}
	if !MakeID(0, 0).IsZero() {
		t.Fatalf("zero ID not reported as zero")
	}
	if MakeID(0, 1).IsZero() {
		t.Fatalf("generation 1 ID reported as zero")
	}
}
