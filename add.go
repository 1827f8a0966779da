package main

// add.go - Addition and string concatenation

// Add emits a+b into a fresh temporary of the promoted kind. String
// operands concatenate into a newly allocated dynamic string; float
// operands route to the precision-tagged primitive.
func (ctx *CompilationContext) Add(aName, bName string) (*Variable, error) {
	a, err := ctx.Retrieve(aName, true)
	if err != nil {
		return nil, err
	}
	b, err := ctx.Retrieve(bName, true)
	if err != nil {
		return nil, err
	}

	if stringKind(a.Kind.Tag) && stringKind(b.Kind.Tag) {
		return ctx.concatStrings(a, b)
	}
	if eitherFloat(a, b) {
		fa, fb, p, err := ctx.floatOperands(a, b)
		if err != nil {
			return nil, err
		}
		result := ctx.Temporary(Float(p), "sum")
		ctx.ISA.FloatAdd(p, fa.Location(), fb.Location(), result.Location())
		return result, nil
	}

	common, err := ctx.unifyInts(&a, &b, "add")
	if err != nil {
		return nil, err
	}
	result := ctx.Temporary(common, "sum")
	if a.Constant && b.Constant {
		result.Value = foldScalar(a.Value+b.Value, SDWord, common)
		result.Constant = true
	}
	switch common.BitWidth() {
	case 8:
		ctx.ISA.Add8(a.Location(), b.Location(), result.Location())
	case 16:
		ctx.ISA.Add16(a.Location(), b.Location(), result.Location())
	case 32:
		ctx.ISA.Add32(a.Location(), b.Location(), result.Location())
	}
	return result, nil
}

// concatStrings allocates a dynamic string sized to the sum of both
// lengths and copies the two halves into it. The result never aliases
// either input's storage.
func (ctx *CompilationContext) concatStrings(a, b *Variable) (*Variable, error) {
	result := ctx.Temporary(DString, "concatenation")

	if a.Constant && b.Constant {
		joined := a.StringValue + b.StringValue
		size := imm(int64(len(joined)))
		ctx.ISA.DStringFree(result.Location())
		ctx.ISA.DStringAlloc(result.Location(), size)
		ctx.ISA.MemCopy(a.Location(), result.Location(), imm(int64(len(a.StringValue))))
		ctx.ISA.MemCopyTo(b.Location(), result.Location(),
			imm(int64(len(a.StringValue))), imm(int64(len(b.StringValue))))
		result.StringValue = joined
		result.Constant = true
		result.Size = len(joined)
		return result, nil
	}

	lenA := ctx.Temporary(Byte, "left length")
	lenB := ctx.Temporary(Byte, "right length")
	lenSum := ctx.Temporary(Byte, "joined length")
	ctx.ISA.DStringLength(a.Location(), lenA.Location())
	ctx.ISA.DStringLength(b.Location(), lenB.Location())
	ctx.ISA.Add8(lenA.Location(), lenB.Location(), lenSum.Location())
	ctx.ISA.DStringFree(result.Location())
	ctx.ISA.DStringAlloc(result.Location(), lenSum.Location())
	ctx.ISA.MemCopy(a.Location(), result.Location(), lenA.Location())
	ctx.ISA.MemCopyTo(b.Location(), result.Location(), lenA.Location(), lenB.Location())
	return result, nil
}
