package main

// div.go - Division and modulo
//
// The divide primitives produce quotient and remainder in one call.
// Div hands the quotient back and keeps the remainder in a temporary
// the caller may ask to have moved into a named destination; Mod is the
// same lowering returning the remainder instead.

// Div emits a/b. When remainderName is non-empty the remainder is moved
// into that (retrieved-or-defined) variable as well; float division has
// no remainder channel, so asking for one is unsupported.
func (ctx *CompilationContext) Div(aName, bName, remainderName string) (*Variable, error) {
	quotient, remainder, err := ctx.divide(aName, bName)
	if err != nil {
		return nil, err
	}
	if remainderName != "" {
		if remainder == nil {
			return nil, diag(DiagDatatypeUnsupported, remainderName, quotient.Kind)
		}
		dst, err := ctx.RetrieveOrDefine(remainderName, remainder.Kind, 0)
		if err != nil {
			return nil, err
		}
		if err := ctx.Move(remainder, dst); err != nil {
			return nil, err
		}
	}
	return quotient, nil
}

// Mod emits a/b and returns the remainder. Floats are rejected: their
// division path yields no remainder.
func (ctx *CompilationContext) Mod(aName, bName string) (*Variable, error) {
	quotient, remainder, err := ctx.divide(aName, bName)
	if err != nil {
		return nil, err
	}
	if remainder == nil {
		return nil, diag(DiagDatatypeUnsupported, aName, quotient.Kind)
	}
	return remainder, nil
}

func (ctx *CompilationContext) divide(aName, bName string) (quotient, remainder *Variable, err error) {
	a, err := ctx.Retrieve(aName, true)
	if err != nil {
		return nil, nil, err
	}
	b, err := ctx.Retrieve(bName, true)
	if err != nil {
		return nil, nil, err
	}

	if eitherFloat(a, b) {
		fa, fb, p, err := ctx.floatOperands(a, b)
		if err != nil {
			return nil, nil, err
		}
		result := ctx.Temporary(Float(p), "quotient")
		ctx.ISA.FloatDiv(p, fa.Location(), fb.Location(), result.Location())
		// Float division has no remainder channel
		return result, nil, nil
	}

	common, err := ctx.unifyInts(&a, &b, "div")
	if err != nil {
		return nil, nil, err
	}
	signed := common.Signed()
	quotient = ctx.Temporary(common, "quotient")
	remainder = ctx.Temporary(common, "remainder")
	if a.Constant && b.Constant && b.Value != 0 {
		quotient.Value = foldScalar(a.Value/b.Value, SDWord, common)
		quotient.Constant = true
		remainder.Value = foldScalar(a.Value%b.Value, SDWord, common)
		remainder.Constant = true
	}
	switch common.BitWidth() {
	case 8:
		ctx.ISA.Div8(a.Location(), b.Location(), quotient.Location(), remainder.Location(), signed)
	case 16:
		ctx.ISA.Div16(a.Location(), b.Location(), quotient.Location(), remainder.Location(), signed)
	case 32:
		ctx.ISA.Div32(a.Location(), b.Location(), quotient.Location(), remainder.Location(), signed)
	}
	return quotient, remainder, nil
}
