package main

import "testing"

// TestRedefinitionSameKind verifies first-definition-wins: the second
// define returns the same record and its value argument is ignored.
func TestRedefinitionSameKind(t *testing.T) {
	ctx, _ := newTestContext(t)
	first := mustDefine(t, ctx, "x", Word, 0)
	second, err := ctx.Define("x", Word, 5)
	if err != nil {
		t.Fatalf("redefinition with same kind: %v", err)
	}
	if first != second {
		t.Error("redefinition must return the existing variable")
	}
	if second.Value != 0 {
		t.Errorf("second initial value must be ignored, got %d", second.Value)
	}
}

func TestRedefinitionDifferentKind(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustDefine(t, ctx, "x", Word, 0)
	_, err := ctx.Define("x", Byte, 0)
	if code := diagCode(t, err); code != DiagVariableRedefined {
		t.Errorf("got %v, want DiagVariableRedefined", code)
	}
}

func TestConstantNameCollision(t *testing.T) {
	ctx, _ := newTestContext(t)
	if _, err := ctx.DefineNumericConstant("LIMIT", 100); err != nil {
		t.Fatalf("constant: %v", err)
	}
	_, err := ctx.Define("LIMIT", Word, 0)
	if code := diagCode(t, err); code != DiagNameCollision {
		t.Errorf("got %v, want DiagNameCollision", code)
	}
}

// TestConstantCollidesWithLocal: constants and variables share one
// namespace in every bucket, procedure-locals included.
func TestConstantCollidesWithLocal(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.BeginProcedure("play")
	mustDefine(t, ctx, "limit", Byte, 0)
	_, err := ctx.DefineNumericConstant("limit", 9)
	if code := diagCode(t, err); code != DiagNameCollision {
		t.Errorf("got %v, want DiagNameCollision", code)
	}
	ctx.EndProcedure()
	if _, err := ctx.DefineNumericConstant("limit", 9); err != nil {
		t.Errorf("the main scope has no such binding: %v", err)
	}
}

func TestRetrieveMandatoryMiss(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustDefine(t, ctx, "score", Word, 0)
	_, err := ctx.Retrieve("scor", true)
	d, ok := err.(*Diag)
	if !ok || d.Code != DiagUndefinedVariable {
		t.Fatalf("got %v, want DiagUndefinedVariable", err)
	}
	if d.Hint == "" {
		t.Error("expected a did-you-mean suggestion for a close miss")
	}
	if v, err := ctx.Retrieve("scor", false); err != nil || v != nil {
		t.Errorf("non-mandatory miss must be (nil, nil), got (%v, %v)", v, err)
	}
}

// TestGlobalPattern verifies that a registered wildcard makes a name
// resolve from the global bucket even inside a procedure that defines
// its own local of the same name.
func TestGlobalPattern(t *testing.T) {
	ctx, _ := newTestContext(t)

	// a procedure-local SCORE1 exists before the pattern is registered
	ctx.BeginProcedure("play")
	local, err := ctx.Define("SCORE1", Byte, 0)
	if err != nil {
		t.Fatalf("local define: %v", err)
	}
	ctx.EndProcedure()

	global := mustDefine(t, ctx, "SCORE1", Word, 0)
	ctx.RegisterGlobalPattern("SCORE*")

	ctx.BeginProcedure("play")
	got, err := ctx.Retrieve("SCORE1", true)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if got != global {
		t.Error("pattern-matched retrieve must resolve the global variable")
	}
	if got == local {
		t.Error("the procedure-local variable must be bypassed")
	}
}

func TestProcedureScopePrecedence(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustDefine(t, ctx, "v", Word, 0)

	ctx.BeginProcedure("proc")
	param, err := ctx.DefineParameter("v", Byte)
	if err != nil {
		t.Fatalf("parameter: %v", err)
	}
	got, err := ctx.Retrieve("v", true)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if got != param {
		t.Error("parameters must win over outer variables")
	}
	if param.RealName != "proc__v" {
		t.Errorf("parameter storage name %q, want proc__v", param.RealName)
	}

	ctx.EndProcedure()
	got, err = ctx.Retrieve("v", true)
	if err != nil {
		t.Fatalf("retrieve outside: %v", err)
	}
	if got.Kind != Word {
		t.Error("outside the procedure the global must resolve")
	}
}

func TestParamMarkerNameIsGlobal(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustDefine(t, ctx, "proc__v", Byte, 0)
	ctx.BeginProcedure("other")
	got, err := ctx.Retrieve("proc__v", true)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if got.Kind != Byte {
		t.Error("a marker-bearing name must resolve globally from any scope")
	}
}

func TestRetrieveOrDefineImplicit(t *testing.T) {
	ctx, _ := newTestContext(t)
	v, err := ctx.RetrieveOrDefine("fresh", Word, 7)
	if err != nil {
		t.Fatalf("implicit define: %v", err)
	}
	if v.Kind != Word || v.Value != 7 {
		t.Errorf("implicit define got %s value %d", v.Kind, v.Value)
	}
}

func TestRetrieveOrDefineOptionExplicit(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.OptionExplicit = true
	_, err := ctx.RetrieveOrDefine("fresh", Word, 0)
	if code := diagCode(t, err); code != DiagUndefinedVariable {
		t.Errorf("got %v, want DiagUndefinedVariable under option explicit", code)
	}
}

// TestRetrieveOrDefineAutoCast verifies the width-mismatch path: the
// found variable stays untouched and a fresh temporary holds the cast,
// unless the binding is a compatible constant literal.
func TestRetrieveOrDefineAutoCast(t *testing.T) {
	ctx, _ := newTestContext(t)
	wide := mustDefine(t, ctx, "w", DWord, 1000000)
	got, err := ctx.RetrieveOrDefine("w", Byte, 0)
	if err != nil {
		t.Fatalf("auto-cast: %v", err)
	}
	if got == wide {
		t.Error("width mismatch must produce a fresh temporary, not the original")
	}
	if got.Kind != Byte {
		t.Errorf("cast result kind %s, want byte", got.Kind)
	}
	if wide.Kind != DWord {
		t.Error("the found variable must not be mutated")
	}

	small := mustDefine(t, ctx, "s", Byte, 42)
	got, err = ctx.RetrieveOrDefine("s", Word, 0)
	if err != nil {
		t.Fatalf("compatible literal: %v", err)
	}
	if got != small {
		t.Error("a compatible constant literal binding is returned as-is")
	}
}

func TestImportSkipsPlacement(t *testing.T) {
	ctx, _ := newTestContext(t)
	v, err := ctx.Import("SYSVAR", Byte, 0)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !v.Locked || !v.Used || !v.Imported {
		t.Error("imported symbols must be locked and used")
	}
	if v.Area != nil {
		t.Error("imported symbols must not be placed in a memory area")
	}
	if v.RealName != "SYSVAR" {
		t.Errorf("imported storage name %q, want the external symbol", v.RealName)
	}
}

func TestDeleteIsPoolOnly(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustDefine(t, ctx, "keep", Word, 0)
	if ctx.Delete("keep") {
		t.Error("delete must not remove defined variables")
	}
	tmp := ctx.Temporary(Word, "scratch")
	if !ctx.Delete(tmp.Name) {
		t.Error("delete must remove pool bindings")
	}
	if ctx.Exists(tmp.Name) {
		t.Error("deleted pool binding still resolves")
	}
}

func TestLabelDuplicate(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.DefineLabel("10"); err != nil {
		t.Fatalf("label: %v", err)
	}
	if err := ctx.DefineLabel("10"); err == nil {
		t.Error("duplicate label must be rejected")
	}
}
