package main

// mul.go - Multiplication
//
// The multiply primitives are narrow-to-wide: an 8-bit multiply yields
// a 16-bit product, a 16-bit multiply a 32-bit one. There is no 32-bit
// multiply primitive on any target of this family; a pair promoted to
// 32 bits is narrowed to 16 with a bit-width warning before the 16-bit
// primitive runs, the documented truncate-with-warning policy.

// Mul emits a*b into a temporary twice the unified operand width
func (ctx *CompilationContext) Mul(aName, bName string) (*Variable, error) {
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
		result := ctx.Temporary(Float(p), "product")
		ctx.ISA.FloatMul(p, fa.Location(), fb.Location(), result.Location())
		return result, nil
	}

	common, err := ctx.unifyInts(&a, &b, "mul")
	if err != nil {
		return nil, err
	}
	signed := common.Signed()

	if common.BitWidth() == 32 {
		narrowed := IntegerKind(16, signed)
		ctx.Warn(WarnBitWidth, "mul: no 32-bit multiply, narrowing %s and %s to %s",
			a.Name, b.Name, narrowed)
		if a, err = ctx.Cast(a, narrowed); err != nil {
			return nil, err
		}
		if b, err = ctx.Cast(b, narrowed); err != nil {
			return nil, err
		}
		common = narrowed
	}

	wide := common.BitWidth() * 2
	result := ctx.Temporary(IntegerKind(wide, signed), "product")
	if a.Constant && b.Constant {
		result.Value = foldScalar(a.Value*b.Value, SDWord, result.Kind)
		result.Constant = true
	}
	if common.BitWidth() == 8 {
		ctx.ISA.Mul8(a.Location(), b.Location(), result.Location(), signed)
	} else {
		ctx.ISA.Mul16(a.Location(), b.Location(), result.Location(), signed)
	}
	return result, nil
}
