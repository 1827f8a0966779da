package main

// arith.go - Shared protocol of the binary operators
//
// Every binary operation retrieves both operands by name, unifies their
// representation through the promotion rule, allocates a result
// temporary of the promoted kind and dispatches to the width-suffixed
// primitive. Mixed-width operands are legal in the language; they cost
// a bit-width warning before the unifying cast, a deliberate and
// observable compiler behavior kept exactly as the legacy output
// depends on it.

func stringKind(tag KindTag) bool {
	return tag == KindString || tag == KindDString
}

// binaryOperands resolves two operand names and unifies the integer
// pair to the promoted common kind. The caller has already routed
// string and float operands elsewhere.
func (ctx *CompilationContext) binaryOperands(aName, bName, op string) (a, b *Variable, common Kind, err error) {
	a, err = ctx.Retrieve(aName, true)
	if err != nil {
		return nil, nil, Kind{}, err
	}
	b, err = ctx.Retrieve(bName, true)
	if err != nil {
		return nil, nil, Kind{}, err
	}
	common, err = ctx.unifyInts(&a, &b, op)
	return a, b, common, err
}

// unifyInts promotes and casts two already-resolved integer operands
func (ctx *CompilationContext) unifyInts(a, b **Variable, op string) (Kind, error) {
	av, bv := *a, *b
	if !av.Kind.Integer() {
		return Kind{}, diag(DiagDatatypeUnsupported, av.Name, av.Kind)
	}
	if !bv.Kind.Integer() {
		return Kind{}, diag(DiagDatatypeUnsupported, bv.Name, bv.Kind)
	}
	common := Promote(av.Kind, bv.Kind)
	if av.Kind.BitWidth() != bv.Kind.BitWidth() {
		ctx.Warn(WarnBitWidth, "%s: operands %s (%s) and %s (%s) have different widths, unifying to %s",
			op, av.Name, av.Kind, bv.Name, bv.Kind, common)
	}
	cast, err := ctx.Cast(av, common)
	if err != nil {
		return Kind{}, err
	}
	*a = cast
	cast, err = ctx.Cast(bv, common)
	if err != nil {
		return Kind{}, err
	}
	*b = cast
	return common, nil
}

// floatOperands unifies a float/integer operand pair onto one precision
func (ctx *CompilationContext) floatOperands(a, b *Variable) (fa, fb *Variable, p Precision, err error) {
	switch {
	case a.Kind.Tag == KindFloat && b.Kind.Tag == KindFloat:
		if a.Kind.Precision != b.Kind.Precision {
			return nil, nil, 0, diag(DiagCannotCast, a.Name, a.Kind, b.Kind)
		}
		return a, b, a.Kind.Precision, nil
	case a.Kind.Tag == KindFloat:
		fb, err = ctx.Cast(b, Float(a.Kind.Precision))
		return a, fb, a.Kind.Precision, err
	default:
		fa, err = ctx.Cast(a, Float(b.Kind.Precision))
		return fa, b, b.Kind.Precision, err
	}
}

// eitherFloat reports whether a float routing applies
func eitherFloat(a, b *Variable) bool {
	return a.Kind.Tag == KindFloat || b.Kind.Tag == KindFloat
}

// booleanResult allocates the byte temporary comparisons store their
// all-ones/zero flag into.
func (ctx *CompilationContext) booleanResult(purpose string) *Variable {
	return ctx.Temporary(Byte, purpose)
}
