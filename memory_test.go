package main

import "testing"

func TestBumpAllocation(t *testing.T) {
	ctx, _ := newTestContext(t)
	a := mustDefine(t, ctx, "a", Word, 0)
	b := mustDefine(t, ctx, "b", Byte, 0)
	c := mustDefine(t, ctx, "c", DWord, 0)
	if a.Address != 0x0200 {
		t.Errorf("first placement at %#x, want 0x0200", a.Address)
	}
	if b.Address != 0x0202 {
		t.Errorf("second placement at %#x, want 0x0202", b.Address)
	}
	if c.Address != 0x0203 {
		t.Errorf("third placement at %#x, want 0x0203", c.Address)
	}
	ram := ctx.Areas()
	if ram.Size != 0x5E00-7 {
		t.Errorf("ram has %d bytes free, want %d", ram.Size, 0x5E00-7)
	}
}

// TestDedicatedAreaRule: bulk-payload kinds never land in generic RAM,
// even when it has room.
func TestDedicatedAreaRule(t *testing.T) {
	ctx, _ := newTestContext(t)
	buf, err := ctx.DefineSized("buf", Buffer, 100)
	if err != nil {
		t.Fatalf("define buffer: %v", err)
	}
	if buf.Area == nil || buf.Area.Kind != AreaBank {
		t.Fatal("buffers must be placed in a dedicated bank")
	}
	if buf.Address != 0x8000 {
		t.Errorf("bank placement at %#x, want 0x8000", buf.Address)
	}
	s, err := ctx.DefineString("s", "HI")
	if err != nil {
		t.Fatalf("define string: %v", err)
	}
	if s.Area.Kind != AreaBank {
		t.Error("strings must be placed in a dedicated bank")
	}
	w := mustDefine(t, ctx, "w", Word, 0)
	if w.Area.Kind != AreaRAM {
		t.Error("scalars belong in generic RAM")
	}
}

func TestDedicatedElemArrays(t *testing.T) {
	ctx, _ := newTestContext(t)
	handles, err := ctx.DefineArray("handles", DString, []int{4})
	if err != nil {
		t.Fatalf("define array: %v", err)
	}
	if handles.Area == nil || handles.Area.Kind != AreaBank {
		t.Error("arrays of descriptor elements follow the dedicated rule")
	}
	words, err := ctx.DefineArray("words", Word, []int{4})
	if err != nil {
		t.Fatalf("define array: %v", err)
	}
	if words.Area.Kind != AreaRAM {
		t.Error("plain arrays stay in generic RAM")
	}
}

func TestOutOfMemory(t *testing.T) {
	isa := NewTraceISA()
	ctx := NewCompilationContext(isa, nil)
	ctx.AddMemoryArea("tiny", AreaRAM, 0x0200, 4)
	mustDefine(t, ctx, "a", DWord, 0)
	_, err := ctx.Define("b", Byte, 0)
	if code := diagCode(t, err); code != DiagOutOfMemory {
		t.Errorf("got %v, want DiagOutOfMemory", code)
	}
}

// TestNoBankForBulk: with only generic RAM configured, a bulk-payload
// definition has nowhere to go.
func TestNoBankForBulk(t *testing.T) {
	isa := NewTraceISA()
	ctx := NewCompilationContext(isa, nil)
	ctx.AddMemoryArea("ram", AreaRAM, 0x0200, 0x5E00)
	_, err := ctx.DefineSized("buf", Buffer, 16)
	if code := diagCode(t, err); code != DiagOutOfMemory {
		t.Errorf("got %v, want DiagOutOfMemory", code)
	}
}

func TestUngrownStaysUnplaced(t *testing.T) {
	ctx, _ := newTestContext(t)
	tmp := ctx.Temporary(Buffer, "payload pending")
	if tmp.Area != nil {
		t.Error("a zero-size growable temporary must stay unplaced")
	}
}

func TestAreaListOrder(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.AddMemoryArea("bank2", AreaBank, 0xC000, 0x1000)
	ids := []string{}
	for area := ctx.Areas(); area != nil; area = area.Next {
		ids = append(ids, area.ID)
	}
	want := []string{"ram", "bank1", "bank2"}
	if len(ids) != len(want) {
		t.Fatalf("area list %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("area list %v, want %v", ids, want)
		}
	}
}
