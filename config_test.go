package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c64.toml")
	profile := `
name = "c64"
float_precision = "fast"
thread_index = "TASKID"

[[areas]]
id = "lowram"
kind = "ram"
start = 0x0801
size = 0x9000

[[areas]]
id = "hibank"
kind = "bank"
start = 0xC000
size = 0x1000
`
	if err := os.WriteFile(path, []byte(profile), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if p.Name != "c64" || p.DefaultFloatPrecision() != PrecisionFast {
		t.Errorf("profile (%q, %s), want (c64, fast)", p.Name, p.DefaultFloatPrecision())
	}
	if len(p.Areas) != 2 || p.Areas[1].Start != 0xC000 {
		t.Errorf("areas %v", p.Areas)
	}

	ctx := NewCompilationContext(NewTraceISA(), nil)
	if err := p.Apply(ctx); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if ctx.ThreadIndexName != "TASKID" {
		t.Errorf("thread index %q, want TASKID", ctx.ThreadIndexName)
	}
	ram := ctx.Areas()
	if ram == nil || ram.ID != "lowram" || ram.Kind != AreaRAM {
		t.Fatalf("first area %+v", ram)
	}
	if ram.Next == nil || ram.Next.Kind != AreaBank {
		t.Fatalf("second area %+v", ram.Next)
	}
}

func TestApplyRejectsUnknownAreaKind(t *testing.T) {
	p := &TargetProfile{
		Name:  "broken",
		Areas: []ProfileArea{{ID: "x", Kind: "rom", Start: 0, Size: 1}},
	}
	ctx := NewCompilationContext(NewTraceISA(), nil)
	if err := p.Apply(ctx); err == nil {
		t.Error("an unknown area kind must be rejected")
	}
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	if p.DefaultFloatPrecision() != PrecisionSingle {
		t.Errorf("default precision %s, want single", p.DefaultFloatPrecision())
	}
	ctx := NewCompilationContext(NewTraceISA(), nil)
	if err := p.Apply(ctx); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if ctx.ThreadIndexName != "THREADID" {
		t.Errorf("thread index %q, want the built-in default", ctx.ThreadIndexName)
	}
	// the default map must be able to host both scalars and payloads
	if _, err := ctx.Define("w", Word, 0); err != nil {
		t.Errorf("scalar placement: %v", err)
	}
	if _, err := ctx.DefineSized("buf", Buffer, 64); err != nil {
		t.Errorf("payload placement: %v", err)
	}
}
