package main

// sub.go - Subtraction

// Sub emits a-b into a fresh temporary of the promoted kind
func (ctx *CompilationContext) Sub(aName, bName string) (*Variable, error) {
	a, err := ctx.Retrieve(aName, true)
	if err != nil {
		return nil, err
	}
	b, err := ctx.Retrieve(bName, true)
	if err != nil {
		return nil, err
	}

	if eitherFloat(a, b) {
		fa, fb, p, err := ctx.floatOperands(a, b)
		if err != nil {
			return nil, err
		}
		result := ctx.Temporary(Float(p), "difference")
		ctx.ISA.FloatSub(p, fa.Location(), fb.Location(), result.Location())
		return result, nil
	}

	common, err := ctx.unifyInts(&a, &b, "sub")
	if err != nil {
		return nil, err
	}
	result := ctx.Temporary(common, "difference")
	if a.Constant && b.Constant {
		result.Value = foldScalar(a.Value-b.Value, SDWord, common)
		result.Constant = true
	}
	switch common.BitWidth() {
	case 8:
		ctx.ISA.Sub8(a.Location(), b.Location(), result.Location())
	case 16:
		ctx.ISA.Sub16(a.Location(), b.Location(), result.Location())
	case 32:
		ctx.ISA.Sub32(a.Location(), b.Location(), result.Location())
	}
	return result, nil
}
