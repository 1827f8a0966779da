package main

// inc.go - Increment and decrement
//
// Only 8 and 16 bit integers have increment/decrement primitives on
// these targets; 32-bit, 1-bit and float variables are rejected.

// Inc emits an in-place increment of the named variable
func (ctx *CompilationContext) Inc(name string) error {
	return ctx.step(name, true)
}

// Dec emits an in-place decrement of the named variable
func (ctx *CompilationContext) Dec(name string) error {
	return ctx.step(name, false)
}

func (ctx *CompilationContext) step(name string, up bool) error {
	v, err := ctx.Retrieve(name, true)
	if err != nil {
		return err
	}
	switch v.Kind.BitWidth() {
	case 8:
		if up {
			ctx.ISA.Inc8(v.Location())
		} else {
			ctx.ISA.Dec8(v.Location())
		}
	case 16:
		if up {
			ctx.ISA.Inc16(v.Location())
		} else {
			ctx.ISA.Dec16(v.Location())
		}
	default:
		return diag(DiagDatatypeUnsupported, v.Name, v.Kind)
	}
	if v.Constant {
		if up {
			v.Value = foldScalar(v.Value+1, SDWord, v.Kind)
		} else {
			v.Value = foldScalar(v.Value-1, SDWord, v.Kind)
		}
	}
	return nil
}
