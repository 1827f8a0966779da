package main

// kindmove.go - Non-scalar conversions
//
// Kind pairs where at least one side has no scalar width dispatch here:
// string and dynamic-string descriptor copies, single-byte handle
// copies, float precision rules, tilemap and bulk-payload copies, and
// the float/integer conversions through the precision-tagged
// primitives.

// bulkPayload reports membership in the bulk-copy family
func bulkPayload(tag KindTag) bool {
	switch tag {
	case KindBuffer, KindImage, KindImages, KindSequence, KindMusic:
		return true
	default:
		return false
	}
}

func (ctx *CompilationContext) moveKind(src, dst *Variable) error {
	srcTag, dstTag := src.Kind.Tag, dst.Kind.Tag

	switch {
	case dstTag == KindDString &&
		(srcTag == KindString || srcTag == KindDString):
		return ctx.moveIntoDString(src, dst)

	case dstTag == KindString &&
		(srcTag == KindString || srcTag == KindDString):
		return ctx.moveIntoString(src, dst)

	case srcTag == dstTag &&
		(srcTag == KindSprite || srcTag == KindTile || srcTag == KindTileset):
		ctx.ISA.Move8(src.Location(), dst.Location())
		return nil

	case srcTag == KindFloat && dstTag == KindFloat:
		if src.Kind.Precision != dst.Kind.Precision {
			return diag(DiagCannotCast, src.Name, src.Kind, dst.Kind)
		}
		ctx.ISA.MemCopy(src.Location(), dst.Location(),
			imm(int64(src.Kind.Precision.ByteSize())))
		return nil

	case srcTag == KindFloat && dst.Kind.Integer():
		if dst.Kind.Tag == KindBit {
			return diag(DiagCannotCast, src.Name, src.Kind, dst.Kind)
		}
		ctx.ISA.FloatToInt(src.Kind.Precision, src.Location(), dst.Location(),
			dst.Kind.BitWidth(), dst.Kind.Signed())
		dst.Constant = false
		return nil

	case src.Kind.Integer() && dstTag == KindFloat:
		if src.Kind.Tag == KindBit {
			return diag(DiagCannotCast, src.Name, src.Kind, dst.Kind)
		}
		ctx.ISA.IntToFloat(dst.Kind.Precision, src.Location(), dst.Location(),
			src.Kind.BitWidth(), src.Kind.Signed())
		return nil

	case srcTag == KindTilemap && dstTag == KindTilemap:
		if src.Size != dst.Size {
			return diag(DiagTilemapSizeMismatch, src.Name, src.Kind, dst.Kind)
		}
		ctx.ISA.MemCopy(src.Location(), dst.Location(), imm(int64(src.Size)))
		return nil

	case bulkPayload(srcTag) && bulkPayload(dstTag):
		return ctx.moveBulk(src, dst)

	case srcTag == KindArray && dstTag == KindArray:
		if !SameKind(src.ArrayElem, dst.ArrayElem) ||
			!sameDims(src.ArrayDims, dst.ArrayDims) {
			return diag(DiagCannotCast, src.Name, src.Kind, dst.Kind)
		}
		ctx.ISA.MemCopy(src.Location(), dst.Location(), imm(int64(src.Size)))
		return nil

	default:
		return diag(DiagCannotCast, src.Name, src.Kind, dst.Kind)
	}
}

// moveIntoDString frees whatever the destination descriptor owned,
// allocates exact-size storage for the source payload and copies it.
// The destination never aliases the source storage.
func (ctx *CompilationContext) moveIntoDString(src, dst *Variable) error {
	ctx.ISA.DStringFree(dst.Location())
	if src.Constant {
		size := imm(int64(len(src.StringValue)))
		ctx.ISA.DStringAlloc(dst.Location(), size)
		ctx.ISA.MemCopy(src.Location(), dst.Location(), size)
		dst.StringValue = src.StringValue
		dst.Constant = true
		dst.Size = len(src.StringValue)
		return nil
	}
	length := ctx.Temporary(Byte, "string length")
	ctx.ISA.DStringLength(src.Location(), length.Location())
	ctx.ISA.DStringAlloc(dst.Location(), length.Location())
	ctx.ISA.MemCopy(src.Location(), dst.Location(), length.Location())
	dst.Constant = false
	return nil
}

// moveIntoString copies into fixed static-string storage, growing an
// unsized destination on first write and refusing a payload that
// exceeds a fixed capacity. A runtime dynamic-string source carries its
// length in the descriptor, not in Size, so the count is read at
// runtime and clamped to the destination capacity.
func (ctx *CompilationContext) moveIntoString(src, dst *Variable) error {
	if src.Kind.Tag == KindDString && !src.Constant {
		if dst.Size == 0 && !dst.SizeFixed {
			// an ungrown destination cannot adopt a size known only
			// to the target
			return diag(DiagBufferSizeMismatch, src.Name, src.Kind, dst.Kind)
		}
		length := ctx.Temporary(Byte, "string length")
		ctx.ISA.DStringLength(src.Location(), length.Location())
		over := ctx.booleanResult("capacity check")
		ctx.ISA.Less8(imm(int64(dst.Size)), length.Location(), over.Location(), false)
		fits := ctx.newLabel()
		ctx.ISA.JumpIfZero8(over.Location(), fits)
		ctx.ISA.Move8(imm(int64(dst.Size)), length.Location())
		ctx.ISA.Label(fits)
		ctx.ISA.MemCopy(src.Location(), dst.Location(), length.Location())
		dst.Constant = false
		return nil
	}

	if dst.Size == 0 && !dst.SizeFixed {
		dst.Size = src.Size
		dst.SizeFixed = true
		if err := ctx.memoryAreaAssign(dst); err != nil {
			return err
		}
	}
	if src.Constant && len(src.StringValue) > dst.Size {
		return diag(DiagBufferSizeMismatch, src.Name, src.Kind, dst.Kind)
	}
	count := src.Size
	if count == 0 || count > dst.Size {
		count = dst.Size
	}
	ctx.ISA.MemCopy(src.Location(), dst.Location(), imm(int64(count)))
	if src.Constant {
		dst.StringValue = src.StringValue
		dst.Constant = true
	} else {
		dst.Constant = false
	}
	return nil
}

// moveBulk copies between buffer-like payloads up to the smaller of the
// destination capacity and the source size. An ungrown destination
// adopts the source size on first write; a fixed destination that is
// too small fails.
func (ctx *CompilationContext) moveBulk(src, dst *Variable) error {
	if dst.Size == 0 && !dst.SizeFixed {
		dst.Size = src.Size
		dst.SizeFixed = true
		if err := ctx.memoryAreaAssign(dst); err != nil {
			return err
		}
	}
	if src.Size > dst.Size {
		return diag(DiagBufferSizeMismatch, src.Name, src.Kind, dst.Kind)
	}
	ctx.ISA.MemCopy(src.Location(), dst.Location(), imm(int64(src.Size)))
	return nil
}
