package main

// bitwise.go - AND, OR, XOR
//
// Bitwise operators follow the integer protocol only: strings and
// floats have no defined algorithm and fail as unsupported.

type bitwiseOp int

const (
	opAnd bitwiseOp = iota
	opOr
	opXor
)

func (op bitwiseOp) String() string {
	switch op {
	case opAnd:
		return "and"
	case opOr:
		return "or"
	default:
		return "xor"
	}
}

// And emits a&b into a temporary of the promoted kind
func (ctx *CompilationContext) And(aName, bName string) (*Variable, error) {
	return ctx.bitwise(aName, bName, opAnd)
}

// Or emits a|b into a temporary of the promoted kind
func (ctx *CompilationContext) Or(aName, bName string) (*Variable, error) {
	return ctx.bitwise(aName, bName, opOr)
}

// Xor emits a^b into a temporary of the promoted kind
func (ctx *CompilationContext) Xor(aName, bName string) (*Variable, error) {
	return ctx.bitwise(aName, bName, opXor)
}

func (ctx *CompilationContext) bitwise(aName, bName string, op bitwiseOp) (*Variable, error) {
	a, b, common, err := ctx.binaryOperands(aName, bName, op.String())
	if err != nil {
		return nil, err
	}
	result := ctx.Temporary(common, op.String())
	if a.Constant && b.Constant {
		var folded int64
		switch op {
		case opAnd:
			folded = a.Value & b.Value
		case opOr:
			folded = a.Value | b.Value
		default:
			folded = a.Value ^ b.Value
		}
		result.Value = foldScalar(folded, SDWord, common)
		result.Constant = true
	}
	switch common.BitWidth() {
	case 8:
		switch op {
		case opAnd:
			ctx.ISA.And8(a.Location(), b.Location(), result.Location())
		case opOr:
			ctx.ISA.Or8(a.Location(), b.Location(), result.Location())
		default:
			ctx.ISA.Xor8(a.Location(), b.Location(), result.Location())
		}
	case 16:
		switch op {
		case opAnd:
			ctx.ISA.And16(a.Location(), b.Location(), result.Location())
		case opOr:
			ctx.ISA.Or16(a.Location(), b.Location(), result.Location())
		default:
			ctx.ISA.Xor16(a.Location(), b.Location(), result.Location())
		}
	case 32:
		switch op {
		case opAnd:
			ctx.ISA.And32(a.Location(), b.Location(), result.Location())
		case opOr:
			ctx.ISA.Or32(a.Location(), b.Location(), result.Location())
		default:
			ctx.ISA.Xor32(a.Location(), b.Location(), result.Location())
		}
	}
	return result, nil
}
