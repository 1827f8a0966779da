package main

// pool.go - The temporary-variable pool
//
// Expression lowering constantly needs scratch storage. The pool hands
// out temporaries and recycles the same physical slot across disjoint
// expressions: a reset at every statement boundary (the front end's
// responsibility) clears the used flag, and the next request for a
// matching kind re-tags the slot instead of allocating a new one.
// Temporaries owning heap-like storage (strings, buffers, media
// resources) are locked at birth and never silently recycled.

import "github.com/retroforge/nbasic/internal/engine"

// Temporary returns a scratch variable of the given kind, reusing an
// unused pool slot when one matches (tag and, for floats, precision).
// The returned variable is marked used immediately, so two calls inside
// one expression can never alias unless a reset retired the first.
func (ctx *CompilationContext) Temporary(kind Kind, purpose string) *Variable {
	pool := ctx.pool()
	for _, v := range pool.order {
		if v.Used || v.Locked {
			continue
		}
		if !SameKind(v.Kind, kind) {
			continue
		}
		v.Purpose = purpose
		v.MirrorsOperand = false
		v.Constant = false
		v.Value = 0
		v.StringValue = ""
		v.Used = true
		ctx.Log.Debug("reused temporary", "name", v.Name, "kind", kind.String(),
			"purpose", purpose)
		return v
	}
	v := ctx.freshTemporary(kind, purpose)
	pool.put(v)
	return v
}

// Resident returns a fresh temporary outside the reuse pool. Resident
// temporaries survive resets; they hold values that must outlive the
// statement granularity the pool is cycled at.
func (ctx *CompilationContext) Resident(kind Kind, purpose string) *Variable {
	v := ctx.freshTemporary(kind, purpose)
	v.Resident = true
	ctx.residents.put(v)
	return v
}

func (ctx *CompilationContext) freshTemporary(kind Kind, purpose string) *Variable {
	name := engine.MangleTemporary(kind.tempPrefix(), ctx.NextID())
	v := &Variable{
		Name:      name,
		RealName:  name,
		Kind:      kind,
		Size:      storageSize(kind, Kind{}, nil, 0),
		Temporary: true,
		Used:      true,
		Purpose:   purpose,
	}
	v.SizeFixed = v.Size > 0
	if kind.Tag == KindBit {
		v.Bit = &BitRef{}
	}
	// Heap-owning kinds must never be aliased by pool reuse
	if kind.LockedAsTemporary() {
		v.Locked = true
	}
	if err := ctx.memoryAreaAssign(v); err != nil {
		// Scratch allocation failure is an internal condition; the
		// caller sees it on the next operation touching the variable.
		ctx.Log.Error("temporary placement failed", "name", name, "err", err)
	}
	ctx.Log.Debug("fresh temporary", "name", name, "kind", kind.String(),
		"purpose", purpose, "locked", v.Locked)
	return v
}

// Reset retires every non-locked temporary of the applicable scope,
// making the slots reusable. Dynamic-string entries are excluded: their
// descriptor storage must be explicitly freed by the owning logic, not
// silently recycled. Constant-initialized slots being released get a
// marker remark in the emitted listing.
func (ctx *CompilationContext) Reset() {
	pool := ctx.pool()
	for _, v := range pool.order {
		if v.Locked {
			continue
		}
		if v.Kind.Tag == KindDString {
			continue
		}
		if !v.Used {
			continue
		}
		if v.Constant {
			ctx.ISA.Remark("release " + v.RealName)
		}
		v.Used = false
	}
	ctx.Log.Debug("pool reset", "scope", ctx.CurrentProcedure)
}
