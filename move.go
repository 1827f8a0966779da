package main

// move.go - The type conversion / move engine
//
// Move copies the value of one variable into another, implicitly
// changing representation when widths, signedness or kinds differ.
// Dispatch is two-level: first on the (source width, destination width)
// pair over {32,16,8,1}, with non-scalar kinds (width 0) dispatching on
// the kind-tag pair instead. The width table below makes a missing rule
// a structural miss rather than a fallthrough.
//
// Constant-folded sources skip the general-purpose emission: the folded
// value is stored with a single immediate move and the destination
// inherits the compile-time-constant flag. The folding arithmetic in
// foldScalar mirrors the emitted algorithms exactly, branch for branch,
// so a folded result never disagrees with the runtime one.

import "github.com/retroforge/nbasic/internal/engine"

type widthPair struct {
	src, dst int
}

type moveFunc func(ctx *CompilationContext, src, dst *Variable) error

var moveDispatch = map[widthPair]moveFunc{
	{8, 8}:   moveSameWidth,
	{16, 16}: moveSameWidth,
	{32, 32}: moveSameWidth,
	{32, 16}: moveNarrow,
	{32, 8}:  moveNarrow,
	{16, 8}:  moveNarrow,
	{8, 16}:  moveWiden,
	{8, 32}:  moveWiden,
	{16, 32}: moveWiden,
	{1, 8}:   moveFromBit,
	{1, 16}:  moveFromBit,
	{1, 32}:  moveFromBit,
	{8, 1}:   moveToBit,
	{16, 1}:  moveToBit,
	{32, 1}:  moveToBit,
	{1, 1}:   moveBitToBit,
}

// Move copies/converts src into dst, emitting the primitive sequence
// for the width or kind pair. It is the single entry point every other
// engine goes through to unify representations.
func (ctx *CompilationContext) Move(src, dst *Variable) error {
	ws, wd := src.Kind.BitWidth(), dst.Kind.BitWidth()
	if ws == 0 || wd == 0 {
		return ctx.moveKind(src, dst)
	}
	if src.Constant {
		return ctx.moveFolded(src, dst)
	}
	dst.Constant = false
	fn, ok := moveDispatch[widthPair{ws, wd}]
	if !ok {
		return diag(DiagCannotCast, src.Name, src.Kind, dst.Kind)
	}
	return fn(ctx, src, dst)
}

// MoveNaked copies without any implicit conversion: the kinds must
// match exactly. Used for aggregate resource copies where a silent
// representation change would corrupt the payload.
func (ctx *CompilationContext) MoveNaked(src, dst *Variable) error {
	if !SameKind(src.Kind, dst.Kind) {
		return diag(DiagDatatypeMismatch, src.Name, src.Kind, dst.Kind)
	}
	if w := src.Kind.BitWidth(); w >= 8 {
		ctx.moveWidth(w, src.Location(), dst.Location())
		dst.Constant = false
		return nil
	}
	if src.Kind.Tag == KindBit {
		return moveBitToBit(ctx, src, dst)
	}
	count := src.Size
	if dst.Size < count {
		count = dst.Size
	}
	ctx.ISA.MemCopy(src.Location(), dst.Location(), imm(int64(count)))
	return nil
}

// moveWidth issues the width-suffixed copy primitive
func (ctx *CompilationContext) moveWidth(width int, src, dst string) {
	switch width {
	case 8:
		ctx.ISA.Move8(src, dst)
	case 16:
		ctx.ISA.Move16(src, dst)
	case 32:
		ctx.ISA.Move32(src, dst)
	}
}

func (ctx *CompilationContext) compareWidth(width int, a, b, result string) {
	switch width {
	case 8:
		ctx.ISA.CompareEqual8(a, b, result)
	case 16:
		ctx.ISA.CompareEqual16(a, b, result)
	case 32:
		ctx.ISA.CompareEqual32(a, b, result)
	}
}

func (ctx *CompilationContext) negateWidth(width int, loc string) {
	switch width {
	case 8:
		ctx.ISA.Negate8(loc)
	case 16:
		ctx.ISA.Negate16(loc)
	case 32:
		ctx.ISA.Negate32(loc)
	}
}

// newLabel returns a fresh jump label
func (ctx *CompilationContext) newLabel() string {
	return engine.MangleLabel(ctx.NextID())
}

// moveFolded stores a compile-time-known scalar with one immediate move
// and propagates the constant flag, mirroring the runtime algorithms
// through foldScalar.
func (ctx *CompilationContext) moveFolded(src, dst *Variable) error {
	folded := foldScalar(src.Value, src.Kind, dst.Kind)
	dst.Value = folded
	dst.Constant = true
	if dst.Kind.Tag == KindBit {
		loc := dst.ByteLocation(dst.Bit.ByteIndex)
		if folded != 0 {
			ctx.ISA.BitSet(loc, dst.Bit.BitPos)
		} else {
			ctx.ISA.BitClear(loc, dst.Bit.BitPos)
		}
		return nil
	}
	ctx.moveWidth(dst.Kind.BitWidth(), imm(folded), dst.Location())
	return nil
}

// moveSameWidth handles equal-width scalar copies. Signed to unsigned
// clears the sign bit after the copy; unsigned to signed reflects a
// value whose top bit is set back into the signed range by negating the
// destination.
func moveSameWidth(ctx *CompilationContext, src, dst *Variable) error {
	w := src.Kind.BitWidth()
	ctx.moveWidth(w, src.Location(), dst.Location())
	switch {
	case src.Kind.Signed() == dst.Kind.Signed():
		// direct copy, nothing to fix up
	case src.Kind.Signed() && !dst.Kind.Signed():
		ctx.ISA.BitClear(dst.ByteLocation(0), 7)
	default:
		flag := ctx.Temporary(Byte, "sign check")
		ctx.ISA.BitTest(src.ByteLocation(0), 7, flag.Location())
		skip := ctx.newLabel()
		ctx.ISA.JumpIfZero8(flag.Location(), skip)
		ctx.negateWidth(w, dst.Location())
		ctx.ISA.Label(skip)
	}
	return nil
}

// moveNarrow truncates to a smaller width. Signed sources test the sign
// first: a negative value is negated at full width, its low bytes
// copied, and the narrowed result negated again so magnitude and sign
// survive truncation; a negative value headed for an unsigned
// destination saturates to zero instead.
func moveNarrow(ctx *CompilationContext, src, dst *Variable) error {
	ws, wd := src.Kind.BitWidth(), dst.Kind.BitWidth()
	lowByte := ws/8 - wd/8
	if !src.Kind.Signed() {
		ctx.moveWidth(wd, src.ByteLocation(lowByte), dst.Location())
		return nil
	}

	flag := ctx.Temporary(Byte, "sign check")
	ctx.ISA.BitTest(src.ByteLocation(0), 7, flag.Location())
	negative := ctx.newLabel()
	done := ctx.newLabel()
	ctx.ISA.JumpIfNonZero8(flag.Location(), negative)

	ctx.moveWidth(wd, src.ByteLocation(lowByte), dst.Location())
	if !dst.Kind.Signed() {
		ctx.ISA.BitClear(dst.ByteLocation(0), 7)
	}
	ctx.ISA.Jump(done)

	ctx.ISA.Label(negative)
	if !dst.Kind.Signed() {
		// negative into unsigned saturates rather than wrapping
		ctx.moveWidth(wd, imm(0), dst.Location())
	} else {
		scratch := ctx.Temporary(src.Kind, "narrowing scratch")
		ctx.moveWidth(ws, src.Location(), scratch.Location())
		ctx.negateWidth(ws, scratch.Location())
		ctx.moveWidth(wd, scratch.ByteLocation(lowByte), dst.Location())
		ctx.negateWidth(wd, dst.Location())
	}
	ctx.ISA.Label(done)
	return nil
}

// moveWiden extends to a larger width: zero the destination, copy the
// source into the low slice, and for negative signed sources run the
// negate-copy-negate sequence so the widened value is sign-correct.
func moveWiden(ctx *CompilationContext, src, dst *Variable) error {
	ws, wd := src.Kind.BitWidth(), dst.Kind.BitWidth()
	lowByte := wd/8 - ws/8
	ctx.moveWidth(wd, imm(0), dst.Location())
	if !src.Kind.Signed() {
		ctx.moveWidth(ws, src.Location(), dst.ByteLocation(lowByte))
		return nil
	}

	flag := ctx.Temporary(Byte, "sign check")
	ctx.ISA.BitTest(src.ByteLocation(0), 7, flag.Location())
	plain := ctx.newLabel()
	done := ctx.newLabel()
	ctx.ISA.JumpIfZero8(flag.Location(), plain)

	scratch := ctx.Temporary(src.Kind, "widening scratch")
	ctx.moveWidth(ws, src.Location(), scratch.Location())
	ctx.negateWidth(ws, scratch.Location())
	ctx.moveWidth(ws, scratch.Location(), dst.ByteLocation(lowByte))
	ctx.negateWidth(wd, dst.Location())
	ctx.ISA.Jump(done)

	ctx.ISA.Label(plain)
	ctx.moveWidth(ws, src.Location(), dst.ByteLocation(lowByte))
	ctx.ISA.Label(done)
	return nil
}

// moveFromBit branches on the bit and stores 0 or 1 into the scalar
// destination. Comparisons wanting the all-ones boolean convention go
// through MoveBool instead.
func moveFromBit(ctx *CompilationContext, src, dst *Variable) error {
	return ctx.moveBitValue(src, dst, 1)
}

// MoveBool stores a bit into a scalar destination using the boolean
// convention of the comparison primitives: all-ones for true.
func (ctx *CompilationContext) MoveBool(src, dst *Variable) error {
	if src.Kind.Tag != KindBit || dst.Kind.BitWidth() < 8 {
		return diag(DiagCannotCast, src.Name, src.Kind, dst.Kind)
	}
	return ctx.moveBitValue(src, dst, booleanTrue)
}

func (ctx *CompilationContext) moveBitValue(src, dst *Variable, trueValue int64) error {
	wd := dst.Kind.BitWidth()
	flag := ctx.Temporary(Byte, "bit probe")
	ctx.ISA.BitTest(src.ByteLocation(src.Bit.ByteIndex), src.Bit.BitPos, flag.Location())
	zero := ctx.newLabel()
	done := ctx.newLabel()
	ctx.ISA.JumpIfZero8(flag.Location(), zero)
	ctx.moveWidth(wd, imm(trueValue), dst.Location())
	ctx.ISA.Jump(done)
	ctx.ISA.Label(zero)
	ctx.moveWidth(wd, imm(0), dst.Location())
	ctx.ISA.Label(done)
	return nil
}

// moveToBit tests the scalar against zero and sets or clears the
// destination bit. Bit positions never span byte boundaries; callers
// indexing bit arrays pre-align through the offset calculation.
func moveToBit(ctx *CompilationContext, src, dst *Variable) error {
	ws := src.Kind.BitWidth()
	flag := ctx.Temporary(Byte, "zero check")
	ctx.compareWidth(ws, src.Location(), imm(0), flag.Location())
	loc := dst.ByteLocation(dst.Bit.ByteIndex)
	clear := ctx.newLabel()
	done := ctx.newLabel()
	// flag holds true (all-ones) when the source equals zero
	ctx.ISA.JumpIfNonZero8(flag.Location(), clear)
	ctx.ISA.BitSet(loc, dst.Bit.BitPos)
	ctx.ISA.Jump(done)
	ctx.ISA.Label(clear)
	ctx.ISA.BitClear(loc, dst.Bit.BitPos)
	ctx.ISA.Label(done)
	return nil
}

func moveBitToBit(ctx *CompilationContext, src, dst *Variable) error {
	flag := ctx.Temporary(Byte, "bit probe")
	ctx.ISA.BitTest(src.ByteLocation(src.Bit.ByteIndex), src.Bit.BitPos, flag.Location())
	loc := dst.ByteLocation(dst.Bit.ByteIndex)
	clear := ctx.newLabel()
	done := ctx.newLabel()
	ctx.ISA.JumpIfZero8(flag.Location(), clear)
	ctx.ISA.BitSet(loc, dst.Bit.BitPos)
	ctx.ISA.Jump(done)
	ctx.ISA.Label(clear)
	ctx.ISA.BitClear(loc, dst.Bit.BitPos)
	ctx.ISA.Label(done)
	return nil
}

// mask and sign helpers for the folding arithmetic

func widthMask(width int) uint64 {
	return (uint64(1) << width) - 1
}

func topBit(width int) uint64 {
	return uint64(1) << (width - 1)
}

func signedInterp(pattern uint64, width int) int64 {
	if pattern&topBit(width) != 0 {
		return int64(pattern) - int64(widthMask(width)) - 1
	}
	return int64(pattern)
}

// foldScalar computes the value a compile-time-constant source folds to
// under the exact move algorithms above, branch for branch: sign-bit
// clearing, reflect-negation, negate-copy-negate narrowing, unsigned
// saturation and widening.
func foldScalar(value int64, from, to Kind) int64 {
	wf, wt := from.BitWidth(), to.BitWidth()

	if wt == 1 {
		if value != 0 {
			return 1
		}
		return 0
	}
	if wf == 1 {
		if value != 0 {
			return 1
		}
		return 0
	}

	pattern := uint64(value) & widthMask(wf)

	switch {
	case wf == wt:
		switch {
		case from.Signed() == to.Signed():
			return valueAt(pattern, to)
		case from.Signed() && !to.Signed():
			return int64(pattern &^ topBit(wt))
		default: // unsigned into signed: reflect when the top bit is set
			if pattern&topBit(wf) != 0 {
				pattern = (-pattern) & widthMask(wt)
			}
			return signedInterp(pattern, wt)
		}

	case wf > wt: // narrowing
		if from.Signed() && value < 0 {
			if !to.Signed() {
				return 0 // saturate
			}
			magnitude := uint64(-value) & widthMask(wt)
			return signedInterp((-magnitude)&widthMask(wt), wt)
		}
		low := pattern & widthMask(wt)
		if !to.Signed() && from.Signed() {
			low &^= topBit(wt)
		}
		return valueAt(low, to)

	default: // widening
		if from.Signed() && value < 0 {
			widePattern := uint64(value) & widthMask(wt)
			return valueAt(widePattern, to)
		}
		return valueAt(pattern, to)
	}
}

func valueAt(pattern uint64, kind Kind) int64 {
	if kind.Signed() {
		return signedInterp(pattern, kind.BitWidth())
	}
	return int64(pattern)
}
