package main

import (
	"strings"
	"testing"
)

// mt_test.go - Per-thread slot operations and yield

func firstIndex(calls []string, prefix string) int {
	for i, call := range calls {
		if strings.HasPrefix(call, prefix) {
			return i
		}
	}
	return -1
}

// TestAddMT verifies the read-modify-write shape: load the running
// thread's slot, add, store back through the same symbolic index.
func TestAddMT(t *testing.T) {
	ctx, isa := newTestContext(t)
	if _, err := ctx.DefineArray("counters", Word, []int{8}); err != nil {
		t.Fatalf("define array: %v", err)
	}
	idx := mustDefine(t, ctx, ctx.ThreadIndexName, Byte, 0)
	idx.Constant = false
	mustDefine(t, ctx, "delta", Word, 2)

	if err := ctx.AddMT("counters", "delta"); err != nil {
		t.Fatalf("addmt: %v", err)
	}
	read := firstIndex(isa.Calls, "idxread16 counters "+ctx.ThreadIndexName)
	add := firstIndex(isa.Calls, "add16")
	write := firstIndex(isa.Calls, "idxwrite16")
	if read < 0 || add < 0 || write < 0 {
		t.Fatalf("missing read/add/write, trace %v", isa.Calls)
	}
	if !(read < add && add < write) {
		t.Errorf("read-modify-write out of order, trace %v", isa.Calls)
	}
	if !strings.HasSuffix(isa.Calls[write], " counters "+ctx.ThreadIndexName) {
		t.Errorf("the write-back must re-index the same slot, got %q", isa.Calls[write])
	}
}

func TestIncMT(t *testing.T) {
	ctx, isa := newTestContext(t)
	if _, err := ctx.DefineArray("ticks", Byte, []int{4}); err != nil {
		t.Fatalf("define array: %v", err)
	}
	idx := mustDefine(t, ctx, ctx.ThreadIndexName, Byte, 0)
	idx.Constant = false

	if err := ctx.IncMT("ticks"); err != nil {
		t.Fatalf("incmt: %v", err)
	}
	if isa.CountPrefix("idxread8 ticks") != 1 || isa.CountPrefix("idxwrite8") != 1 {
		t.Errorf("expected one load and one store, trace %v", isa.Calls)
	}
	if isa.CountPrefix("inc8") != 1 {
		t.Errorf("the increment runs on the scratch element, trace %v", isa.Calls)
	}
}

func TestSubMTAndDecMT(t *testing.T) {
	ctx, isa := newTestContext(t)
	if _, err := ctx.DefineArray("scores", Word, []int{8}); err != nil {
		t.Fatalf("define array: %v", err)
	}
	idx := mustDefine(t, ctx, ctx.ThreadIndexName, Byte, 0)
	idx.Constant = false
	mustDefine(t, ctx, "penalty", Word, 1)

	if err := ctx.SubMT("scores", "penalty"); err != nil {
		t.Fatalf("submt: %v", err)
	}
	if isa.CountPrefix("sub16") != 1 {
		t.Errorf("expected one 16-bit subtract, trace %v", isa.Calls)
	}
	if err := ctx.DecMT("scores"); err != nil {
		t.Fatalf("decmt: %v", err)
	}
	if isa.CountPrefix("dec16") != 1 {
		t.Errorf("expected one 16-bit decrement, trace %v", isa.Calls)
	}
}

// TestYield checks the suspension protocol: save the resume label into
// the thread state slot, jump to the scheduler, place the label.
func TestYield(t *testing.T) {
	ctx, isa := newTestContext(t)
	ctx.Yield()
	if !isa.Contains("; yield") {
		t.Errorf("missing yield marker, trace %v", isa.Calls)
	}
	save := firstIndex(isa.Calls, "move16 #_label")
	jump := firstIndex(isa.Calls, "jump "+schedulerLabel)
	label := firstIndex(isa.Calls, "label _label")
	if save < 0 || jump < 0 || label < 0 {
		t.Fatalf("incomplete yield sequence, trace %v", isa.Calls)
	}
	if !(save < jump && jump < label) {
		t.Errorf("yield sequence out of order, trace %v", isa.Calls)
	}
	if !strings.HasSuffix(isa.Calls[save], " "+threadStateSlot) {
		t.Errorf("the resume label must land in the thread state slot, got %q", isa.Calls[save])
	}
	resume := strings.TrimPrefix(isa.Calls[save], "move16 #")
	resume = strings.TrimSuffix(resume, " "+threadStateSlot)
	if isa.Calls[label] != "label "+resume {
		t.Errorf("resume label mismatch: saved %q, placed %q", resume, isa.Calls[label])
	}
}

func TestYieldLabelsAreFresh(t *testing.T) {
	ctx, isa := newTestContext(t)
	ctx.Yield()
	ctx.Yield()
	if isa.CountPrefix("label ") != 2 {
		t.Fatalf("two yields place two labels, trace %v", isa.Calls)
	}
	first := firstIndex(isa.Calls, "label ")
	second := -1
	for i := first + 1; i < len(isa.Calls); i++ {
		if strings.HasPrefix(isa.Calls[i], "label ") {
			second = i
		}
	}
	if second < 0 || isa.Calls[first] == isa.Calls[second] {
		t.Error("each yield needs its own resume label")
	}
}
