package main

import "testing"

// TestPoolReuseAfterReset verifies the recycling contract: once reset
// retires a slot, the next request for the same kind returns that slot
// instead of allocating a new one.
func TestPoolReuseAfterReset(t *testing.T) {
	ctx, _ := newTestContext(t)
	first := ctx.Temporary(Word, "first use")
	second := ctx.Temporary(Word, "second use")
	if first == second {
		t.Fatal("two live temporaries must never alias")
	}
	ctx.Reset()
	third := ctx.Temporary(Word, "after reset")
	if third != first {
		t.Error("reset must make the earliest slot reusable")
	}
	if third.Purpose != "after reset" {
		t.Errorf("reuse must re-tag the purpose, got %q", third.Purpose)
	}
	if !third.Used {
		t.Error("a handed-out temporary must be marked used")
	}
}

func TestPoolKindMatching(t *testing.T) {
	ctx, _ := newTestContext(t)
	w := ctx.Temporary(Word, "word")
	ctx.Reset()
	b := ctx.Temporary(Byte, "byte")
	if b == w {
		t.Error("a byte request must not reuse a word slot")
	}
	f := ctx.Temporary(Float(PrecisionFast), "fast float")
	ctx.Reset()
	g := ctx.Temporary(Float(PrecisionSingle), "single float")
	if g == f {
		t.Error("precision must match for float slot reuse")
	}
}

// TestLockedKindsNeverRecycled covers the heap-owning kinds: their
// slots stay locked across resets and are never handed out again.
func TestLockedKindsNeverRecycled(t *testing.T) {
	ctx, _ := newTestContext(t)
	for _, kind := range []Kind{String, DString, Buffer,
		{Tag: KindImage}, {Tag: KindSequence}, {Tag: KindMusic}} {
		first := ctx.Temporary(kind, "payload")
		if !first.Locked {
			t.Errorf("%s temporary must be locked at birth", kind)
		}
		ctx.Reset()
		second := ctx.Temporary(kind, "payload again")
		if second == first {
			t.Errorf("%s slot was recycled across a reset", kind)
		}
	}
}

func TestResidentSurvivesReset(t *testing.T) {
	ctx, _ := newTestContext(t)
	r := ctx.Resident(Word, "survivor")
	ctx.Reset()
	if !r.Used {
		t.Error("resident temporaries must not be retired by reset")
	}
	fresh := ctx.Temporary(Word, "pool slot")
	if fresh == r {
		t.Error("the pool must never hand out a resident")
	}
	got, err := ctx.Retrieve(r.Name, true)
	if err != nil || got != r {
		t.Errorf("residents must resolve by name, got (%v, %v)", got, err)
	}
}

func TestResetSkipsDStrings(t *testing.T) {
	ctx, _ := newTestContext(t)
	// a dstring pool entry is locked anyway; make one unlocked to pin
	// the explicit exclusion rule rather than the lock
	ds := ctx.Temporary(DString, "dynamic")
	ds.Locked = false
	ctx.Reset()
	if !ds.Used {
		t.Error("reset must not retire dynamic-string entries")
	}
}

func TestResetEmitsReleaseMarker(t *testing.T) {
	ctx, isa := newTestContext(t)
	tmp := ctx.Temporary(Word, "folded")
	tmp.Constant = true
	tmp.Value = 9
	ctx.Reset()
	if !isa.Contains("; release " + tmp.RealName) {
		t.Error("constant-initialized slots must get a release remark on reset")
	}
}

func TestProcedurePoolIsSeparate(t *testing.T) {
	ctx, _ := newTestContext(t)
	outer := ctx.Temporary(Word, "main scratch")
	ctx.BeginProcedure("proc")
	inner := ctx.Temporary(Word, "proc scratch")
	if inner == outer {
		t.Fatal("procedure pool must not share slots with the main pool")
	}
	ctx.Reset() // retires only the procedure pool
	ctx.EndProcedure()
	next := ctx.Temporary(Word, "main again")
	if next == outer {
		t.Error("a reset inside a procedure must not retire main-pool slots")
	}
}
