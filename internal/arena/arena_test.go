package arena

import (
	"errors"
	"testing"
)

func TestAllocateUntilExhausted(t *testing.T) {
	a := New(3)
	seen := make(map[Ref]bool)
	for i := 0; i < 3; i++ {
		r, err := a.Allocate()
		if err != nil {
			t.Fatalf("Allocate %d error: %v", i, err)
		}
		if seen[r] {
			t.Fatalf("slot %d handed out twice", r)
		}
		seen[r] = true
	}
	if a.Free() != 0 || a.Live() != 3 {
		t.Fatalf("free=%d live=%d, want 0 3", a.Free(), a.Live())
	}
	r, err := a.Allocate()
	if !errors.Is(err, ErrOutOfCapacity) {
		t.Fatalf("Allocate on full arena err = %v, want ErrOutOfCapacity", err)
	}
	if r != Nil {
		t.Fatalf("Allocate on full arena ref = %d, want Nil", r)
	}
}

func TestReleaseMakesSlotReusable(t *testing.T) {
	a := New(1)
	r, err := a.Allocate()
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	a.SetChar(r, 'x')
	if err := a.Release(r); err != nil {
		t.Fatalf("Release error: %v", err)
	}
	if a.Free() != 1 {
		t.Fatalf("Free = %d, want 1", a.Free())
	}
	r2, err := a.Allocate()
	if err != nil {
		t.Fatalf("Allocate after release error: %v", err)
	}
	if got := a.Char(r2); got != 0 {
		t.Fatalf("reused payload = %q, want zero", got)
	}
	if a.Next(r2) != Nil || a.Prev(r2) != Nil {
		t.Fatalf("reused node has stale links")
	}
}

func TestDoubleReleaseRejected(t *testing.T) {
	a := New(2)
	r, _ := a.Allocate()
	if err := a.Release(r); err != nil {
		t.Fatalf("Release error: %v", err)
	}
	if err := a.Release(r); !errors.Is(err, ErrNotLive) {
		t.Fatalf("second Release err = %v, want ErrNotLive", err)
	}
	if a.Free() != 2 {
		t.Fatalf("Free = %d, want 2", a.Free())
	}
	if err := a.Release(Nil); !errors.Is(err, ErrNotLive) {
		t.Fatalf("Release(Nil) err = %v, want ErrNotLive", err)
	}
}

func TestZeroCapacity(t *testing.T) {
	a := New(0)
	if _, err := a.Allocate(); !errors.Is(err, ErrOutOfCapacity) {
		t.Fatalf("Allocate err = %v, want ErrOutOfCapacity", err)
	}
}
