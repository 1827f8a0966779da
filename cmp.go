package main

// cmp.go - Equality and ordering
//
// Comparisons store an all-ones/zero boolean byte. Integer operands go
// through the usual promotion; strings compare length first and
// short-circuit to "different" on a length mismatch before the bytewise
// compare; floats require identical precision to be comparable at all.

// Compare emits an equality test of a and b into a boolean temporary
func (ctx *CompilationContext) Compare(aName, bName string) (*Variable, error) {
	a, err := ctx.Retrieve(aName, true)
	if err != nil {
		return nil, err
	}
	b, err := ctx.Retrieve(bName, true)
	if err != nil {
		return nil, err
	}

	if stringKind(a.Kind.Tag) && stringKind(b.Kind.Tag) {
		return ctx.compareStrings(a, b)
	}
	if eitherFloat(a, b) {
		fa, fb, p, err := ctx.comparableFloats(a, b)
		if err != nil {
			return nil, err
		}
		result := ctx.booleanResult("equality")
		ctx.ISA.FloatCompareEqual(p, fa.Location(), fb.Location(), result.Location())
		return result, nil
	}

	common, err := ctx.unifyInts(&a, &b, "compare")
	if err != nil {
		return nil, err
	}
	result := ctx.booleanResult("equality")
	ctx.compareWidth(common.BitWidth(), a.Location(), b.Location(), result.Location())
	return result, nil
}

// LessThan emits a<b into a boolean temporary
func (ctx *CompilationContext) LessThan(aName, bName string) (*Variable, error) {
	return ctx.order(aName, bName, true)
}

// GreaterThan emits a>b into a boolean temporary
func (ctx *CompilationContext) GreaterThan(aName, bName string) (*Variable, error) {
	return ctx.order(aName, bName, false)
}

func (ctx *CompilationContext) order(aName, bName string, less bool) (*Variable, error) {
	a, err := ctx.Retrieve(aName, true)
	if err != nil {
		return nil, err
	}
	b, err := ctx.Retrieve(bName, true)
	if err != nil {
		return nil, err
	}

	if stringKind(a.Kind.Tag) && stringKind(b.Kind.Tag) {
		return ctx.orderStrings(a, b, less)
	}
	if eitherFloat(a, b) {
		fa, fb, p, err := ctx.comparableFloats(a, b)
		if err != nil {
			return nil, err
		}
		result := ctx.booleanResult("ordering")
		if less {
			ctx.ISA.FloatLess(p, fa.Location(), fb.Location(), result.Location())
		} else {
			ctx.ISA.FloatGreater(p, fa.Location(), fb.Location(), result.Location())
		}
		return result, nil
	}

	common, err := ctx.unifyInts(&a, &b, "order")
	if err != nil {
		return nil, err
	}
	result := ctx.booleanResult("ordering")
	signed := common.Signed()
	switch common.BitWidth() {
	case 8:
		if less {
			ctx.ISA.Less8(a.Location(), b.Location(), result.Location(), signed)
		} else {
			ctx.ISA.Greater8(a.Location(), b.Location(), result.Location(), signed)
		}
	case 16:
		if less {
			ctx.ISA.Less16(a.Location(), b.Location(), result.Location(), signed)
		} else {
			ctx.ISA.Greater16(a.Location(), b.Location(), result.Location(), signed)
		}
	case 32:
		if less {
			ctx.ISA.Less32(a.Location(), b.Location(), result.Location(), signed)
		} else {
			ctx.ISA.Greater32(a.Location(), b.Location(), result.Location(), signed)
		}
	}
	return result, nil
}

// comparableFloats rejects precision-mixed comparisons outright: unlike
// arithmetic there is no conversion path, ordering across precisions is
// simply undefined on these targets.
func (ctx *CompilationContext) comparableFloats(a, b *Variable) (fa, fb *Variable, p Precision, err error) {
	if a.Kind.Tag == KindFloat && b.Kind.Tag == KindFloat {
		if a.Kind.Precision != b.Kind.Precision {
			return nil, nil, 0, diag(DiagCannotCompare, a.Name, a.Kind, b.Kind)
		}
		return a, b, a.Kind.Precision, nil
	}
	return ctx.floatOperands(a, b)
}

// compareStrings is the length-first equality: when the lengths differ
// the result is already false and the bytewise compare is skipped.
func (ctx *CompilationContext) compareStrings(a, b *Variable) (*Variable, error) {
	lenA := ctx.Temporary(Byte, "left length")
	lenB := ctx.Temporary(Byte, "right length")
	ctx.ISA.DStringLength(a.Location(), lenA.Location())
	ctx.ISA.DStringLength(b.Location(), lenB.Location())
	result := ctx.booleanResult("string equality")
	ctx.ISA.CompareEqual8(lenA.Location(), lenB.Location(), result.Location())
	done := ctx.newLabel()
	ctx.ISA.JumpIfZero8(result.Location(), done)
	ctx.ISA.MemCompare(a.Location(), b.Location(), lenA.Location(), result.Location())
	ctx.ISA.Label(done)
	return result, nil
}

// orderStrings compares bytewise over the shorter of the two lengths
func (ctx *CompilationContext) orderStrings(a, b *Variable, less bool) (*Variable, error) {
	lenA := ctx.Temporary(Byte, "left length")
	lenB := ctx.Temporary(Byte, "right length")
	count := ctx.Temporary(Byte, "compare length")
	ctx.ISA.DStringLength(a.Location(), lenA.Location())
	ctx.ISA.DStringLength(b.Location(), lenB.Location())
	ctx.ISA.Move8(lenA.Location(), count.Location())
	shorter := ctx.booleanResult("length check")
	ctx.ISA.Less8(lenB.Location(), lenA.Location(), shorter.Location(), false)
	skip := ctx.newLabel()
	ctx.ISA.JumpIfZero8(shorter.Location(), skip)
	ctx.ISA.Move8(lenB.Location(), count.Location())
	ctx.ISA.Label(skip)
	result := ctx.booleanResult("string ordering")
	if less {
		ctx.ISA.MemLess(a.Location(), b.Location(), count.Location(), result.Location())
	} else {
		ctx.ISA.MemGreater(a.Location(), b.Location(), count.Location(), result.Location())
	}
	return result, nil
}
