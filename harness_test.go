package main

import "testing"

// harness_test.go - Shared test setup
//
// Every test drives a fresh context against the recording backend with
// the default two-area memory map: generic RAM plus one dedicated bank.

func newTestContext(t *testing.T) (*CompilationContext, *TraceISA) {
	t.Helper()
	isa := NewTraceISA()
	ctx := NewCompilationContext(isa, nil)
	ctx.AddMemoryArea("ram", AreaRAM, 0x0200, 0x5E00)
	ctx.AddMemoryArea("bank1", AreaBank, 0x8000, 0x4000)
	return ctx, isa
}

func mustDefine(t *testing.T, ctx *CompilationContext, name string, kind Kind, value int64) *Variable {
	t.Helper()
	v, err := ctx.Define(name, kind, value)
	if err != nil {
		t.Fatalf("define %s: %v", name, err)
	}
	return v
}

func diagCode(t *testing.T, err error) DiagCode {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a diagnostic, got nil")
	}
	d, ok := err.(*Diag)
	if !ok {
		t.Fatalf("expected *Diag, got %T: %v", err, err)
	}
	return d.Code
}
