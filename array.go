package main

// array.go - Array offset computation and element access
//
// The front end establishes an indexing context (one frame per nested
// indexing expression), then asks for the element read or write. The
// offset follows row-major layout: the last index has weight 1, each
// earlier index the product of all later extents. Literal indices fold
// into constant additions; expression indices emit add/mul sequences.
// Bit arrays resolve the logical offset into a byte offset and a bit
// position within that byte.

// ArrayIndexInit opens a fresh indexing frame
func (ctx *CompilationContext) ArrayIndexInit() {
	ctx.arrayIndexes = append(ctx.arrayIndexes, nil)
}

// ArrayIndexNumeric appends a literal index to the active frame
func (ctx *CompilationContext) ArrayIndexNumeric(value int) {
	top := len(ctx.arrayIndexes) - 1
	ctx.arrayIndexes[top] = append(ctx.arrayIndexes[top],
		arrayIndex{numeric: value, literal: true})
}

// ArrayIndexSymbolic appends an index expression's variable name
func (ctx *CompilationContext) ArrayIndexSymbolic(name string) {
	top := len(ctx.arrayIndexes) - 1
	ctx.arrayIndexes[top] = append(ctx.arrayIndexes[top],
		arrayIndex{symbolic: name})
}

// ArrayIndexCleanup discards the active frame
func (ctx *CompilationContext) ArrayIndexCleanup() {
	if len(ctx.arrayIndexes) > 0 {
		ctx.arrayIndexes = ctx.arrayIndexes[:len(ctx.arrayIndexes)-1]
	}
}

func (ctx *CompilationContext) activeIndexes() []arrayIndex {
	if len(ctx.arrayIndexes) == 0 {
		return nil
	}
	return ctx.arrayIndexes[len(ctx.arrayIndexes)-1]
}

// ensureElemKind defaults an array used before its element kind is
// known to 16-bit words, with a warning.
func (ctx *CompilationContext) ensureElemKind(array *Variable) {
	if array.ArrayElem.Tag == KindNone {
		ctx.Warn(WarnUndefinedArray,
			"array %s used before its element kind is known, defaulting to word",
			array.Name)
		array.ArrayElem = Word
		array.Size = storageSize(array.Kind, array.ArrayElem, array.ArrayDims, 0)
	}
}

// CalculateOffsetInArray computes the element offset for the active
// indexing frame: offset = sum over d of index[d] * product of the
// extents after d. The result is a word temporary; when every index is
// a literal the offset folds to a constant. Single-dimension arrays
// skip the multiply entirely.
func (ctx *CompilationContext) CalculateOffsetInArray(array *Variable) (*Variable, error) {
	if !array.IsArray() {
		return nil, diag(DiagNotArray, array.Name, array.Kind)
	}
	ctx.ensureElemKind(array)
	indexes := ctx.activeIndexes()
	if len(indexes) != len(array.ArrayDims) {
		return nil, diag(DiagArraySizeMismatch, array.Name, array.Kind)
	}

	weights := make([]int, len(array.ArrayDims))
	weight := 1
	for d := len(array.ArrayDims) - 1; d >= 0; d-- {
		weights[d] = weight
		weight *= array.ArrayDims[d]
	}

	allLiteral := true
	for _, index := range indexes {
		if !index.literal {
			allLiteral = false
			break
		}
	}

	offset := ctx.Temporary(Word, "array offset")
	if allLiteral {
		folded := 0
		for d, index := range indexes {
			folded += index.numeric * weights[d]
		}
		offset.Value = int64(folded)
		offset.Constant = true
		ctx.ISA.Move16(imm(int64(folded)), offset.Location())
		return offset, nil
	}

	ctx.ISA.Move16(imm(0), offset.Location())
	for d, index := range indexes {
		if index.literal {
			ctx.ISA.Add16(offset.Location(), imm(int64(index.numeric*weights[d])),
				offset.Location())
			continue
		}
		idx, err := ctx.Retrieve(index.symbolic, true)
		if err != nil {
			return nil, err
		}
		idx, err = ctx.Cast(idx, Word)
		if err != nil {
			return nil, err
		}
		if weights[d] == 1 {
			ctx.ISA.Add16(offset.Location(), idx.Location(), offset.Location())
			continue
		}
		scaled := ctx.Temporary(DWord, "scaled index")
		ctx.ISA.Mul16(idx.Location(), imm(int64(weights[d])), scaled.Location(), false)
		// low word of the big-endian 32-bit product
		ctx.ISA.Add16(offset.Location(), scaled.ByteLocation(2), offset.Location())
	}
	return offset, nil
}

// fastIndexPath reports whether the register-indexed primitives apply:
// one dimension, byte or word elements, and an extent small enough for
// an 8-bit index register.
func fastIndexPath(array *Variable) bool {
	if len(array.ArrayDims) != 1 || array.ArrayDims[0] > 256 {
		return false
	}
	w := array.ArrayElem.BitWidth()
	return w == 8 || w == 16
}

// MoveArray stores a named value into the array element selected by the
// active indexing frame.
func (ctx *CompilationContext) MoveArray(arrayName, valueName string) error {
	array, err := ctx.Retrieve(arrayName, true)
	if err != nil {
		return err
	}
	if !array.IsArray() {
		return diag(DiagNotArray, array.Name, array.Kind)
	}
	ctx.ensureElemKind(array)
	value, err := ctx.Retrieve(valueName, true)
	if err != nil {
		return err
	}

	if array.ArrayElem.Tag == KindBit {
		return ctx.moveBitArray(array, value)
	}

	elem, err := ctx.Cast(value, array.ArrayElem)
	if err != nil {
		return err
	}

	if fastIndexPath(array) {
		if index, ok := ctx.fastIndex(array); ok {
			if array.ArrayElem.BitWidth() == 8 {
				ctx.ISA.IndexedWrite8(elem.Location(), array.Location(), index)
			} else {
				ctx.ISA.IndexedWrite16(elem.Location(), array.Location(), index)
			}
			return nil
		}
	}

	offsetLoc, err := ctx.byteOffset(array)
	if err != nil {
		return err
	}
	ctx.ISA.WriteIndirect(elem.Location(), array.Location(), offsetLoc,
		elemByteSize(array.ArrayElem))
	return nil
}

// MoveFromArray loads the selected element into a fresh temporary of
// the element kind.
func (ctx *CompilationContext) MoveFromArray(arrayName string) (*Variable, error) {
	array, err := ctx.Retrieve(arrayName, true)
	if err != nil {
		return nil, err
	}
	if !array.IsArray() {
		return nil, diag(DiagNotArray, array.Name, array.Kind)
	}
	ctx.ensureElemKind(array)

	if array.ArrayElem.Tag == KindBit {
		return ctx.moveFromBitArray(array)
	}

	result := ctx.Temporary(array.ArrayElem, "element of "+array.Name)

	if fastIndexPath(array) {
		if index, ok := ctx.fastIndex(array); ok {
			if array.ArrayElem.BitWidth() == 8 {
				ctx.ISA.IndexedRead8(array.Location(), index, result.Location())
			} else {
				ctx.ISA.IndexedRead16(array.Location(), index, result.Location())
			}
			return result, nil
		}
	}

	offsetLoc, err := ctx.byteOffset(array)
	if err != nil {
		return nil, err
	}
	ctx.ISA.ReadIndirect(array.Location(), offsetLoc, result.Location(),
		elemByteSize(array.ArrayElem))
	return result, nil
}

// fastIndex resolves the single active index for the register-indexed
// fast path, bypassing the offset computation entirely.
func (ctx *CompilationContext) fastIndex(array *Variable) (string, bool) {
	indexes := ctx.activeIndexes()
	if len(indexes) != 1 {
		return "", false
	}
	if indexes[0].literal {
		return imm(int64(indexes[0].numeric)), true
	}
	idx, err := ctx.Retrieve(indexes[0].symbolic, true)
	if err != nil || idx.Kind.BitWidth() != 8 {
		return "", false
	}
	return idx.Location(), true
}

// byteOffset scales the logical element offset by the element stride
func (ctx *CompilationContext) byteOffset(array *Variable) (string, error) {
	offset, err := ctx.CalculateOffsetInArray(array)
	if err != nil {
		return "", err
	}
	stride := array.ArrayElem.ElemByteStride()
	if offset.Constant {
		return imm(offset.Value * int64(stride)), nil
	}
	if stride == 1 {
		return offset.Location(), nil
	}
	scaled := ctx.Temporary(DWord, "byte offset")
	ctx.ISA.Mul16(offset.Location(), imm(int64(stride)), scaled.Location(), false)
	return scaled.ByteLocation(2), nil
}

// elemByteSize is the per-element transfer size of an indirect access
func elemByteSize(elem Kind) int {
	stride := elem.ElemByteStride()
	if w := elem.BitWidth(); w >= 8 {
		return w / 8
	}
	return stride
}

// moveBitArray stores a value into a bit-packed array. The logical
// offset resolves to byte index offset/8 and bit position offset%8;
// with a literal offset the bit primitives apply directly, otherwise
// the position is dispatched over at runtime (bit primitives take
// literal positions only, the cost of packing on these CPUs).
func (ctx *CompilationContext) moveBitArray(array *Variable, value *Variable) error {
	offset, err := ctx.CalculateOffsetInArray(array)
	if err != nil {
		return err
	}

	bit := ctx.Temporary(Bit, "bit element")
	if err := ctx.Move(value, bit); err != nil {
		return err
	}

	if offset.Constant {
		byteIndex := int(offset.Value) / 8
		bitPos := int(offset.Value) % 8
		flag := ctx.Temporary(Byte, "bit probe")
		ctx.ISA.BitTest(bit.ByteLocation(bit.Bit.ByteIndex), bit.Bit.BitPos, flag.Location())
		clear := ctx.newLabel()
		done := ctx.newLabel()
		ctx.ISA.JumpIfZero8(flag.Location(), clear)
		ctx.ISA.BitSet(array.ByteLocation(byteIndex), bitPos)
		ctx.ISA.Jump(done)
		ctx.ISA.Label(clear)
		ctx.ISA.BitClear(array.ByteLocation(byteIndex), bitPos)
		ctx.ISA.Label(done)
		return nil
	}

	byteOff, bitPos := ctx.splitBitOffset(offset)
	packed := ctx.Temporary(Byte, "packed byte")
	ctx.ISA.ReadIndirect(array.Location(), byteOff.Location(), packed.Location(), 1)
	flag := ctx.Temporary(Byte, "bit probe")
	ctx.ISA.BitTest(bit.ByteLocation(bit.Bit.ByteIndex), bit.Bit.BitPos, flag.Location())
	done := ctx.newLabel()
	for pos := 0; pos < 8; pos++ {
		next := ctx.newLabel()
		match := ctx.booleanResult("position check")
		ctx.ISA.CompareEqual8(bitPos.Location(), imm(int64(pos)), match.Location())
		ctx.ISA.JumpIfZero8(match.Location(), next)
		clear := ctx.newLabel()
		ctx.ISA.JumpIfZero8(flag.Location(), clear)
		ctx.ISA.BitSet(packed.Location(), pos)
		ctx.ISA.Jump(done)
		ctx.ISA.Label(clear)
		ctx.ISA.BitClear(packed.Location(), pos)
		ctx.ISA.Jump(done)
		ctx.ISA.Label(next)
	}
	ctx.ISA.Label(done)
	ctx.ISA.WriteIndirect(packed.Location(), array.Location(), byteOff.Location(), 1)
	return nil
}

// moveFromBitArray reads a bit element into a fresh bit temporary
func (ctx *CompilationContext) moveFromBitArray(array *Variable) (*Variable, error) {
	offset, err := ctx.CalculateOffsetInArray(array)
	if err != nil {
		return nil, err
	}
	result := ctx.Temporary(Bit, "bit element")

	if offset.Constant {
		byteIndex := int(offset.Value) / 8
		bitPos := int(offset.Value) % 8
		flag := ctx.Temporary(Byte, "bit probe")
		ctx.ISA.BitTest(array.ByteLocation(byteIndex), bitPos, flag.Location())
		clear := ctx.newLabel()
		done := ctx.newLabel()
		dstLoc := result.ByteLocation(result.Bit.ByteIndex)
		ctx.ISA.JumpIfZero8(flag.Location(), clear)
		ctx.ISA.BitSet(dstLoc, result.Bit.BitPos)
		ctx.ISA.Jump(done)
		ctx.ISA.Label(clear)
		ctx.ISA.BitClear(dstLoc, result.Bit.BitPos)
		ctx.ISA.Label(done)
		return result, nil
	}

	byteOff, bitPos := ctx.splitBitOffset(offset)
	packed := ctx.Temporary(Byte, "packed byte")
	ctx.ISA.ReadIndirect(array.Location(), byteOff.Location(), packed.Location(), 1)
	dstLoc := result.ByteLocation(result.Bit.ByteIndex)
	done := ctx.newLabel()
	for pos := 0; pos < 8; pos++ {
		next := ctx.newLabel()
		match := ctx.booleanResult("position check")
		ctx.ISA.CompareEqual8(bitPos.Location(), imm(int64(pos)), match.Location())
		ctx.ISA.JumpIfZero8(match.Location(), next)
		flag := ctx.Temporary(Byte, "bit probe")
		ctx.ISA.BitTest(packed.Location(), pos, flag.Location())
		clear := ctx.newLabel()
		ctx.ISA.JumpIfZero8(flag.Location(), clear)
		ctx.ISA.BitSet(dstLoc, result.Bit.BitPos)
		ctx.ISA.Jump(done)
		ctx.ISA.Label(clear)
		ctx.ISA.BitClear(dstLoc, result.Bit.BitPos)
		ctx.ISA.Jump(done)
		ctx.ISA.Label(next)
	}
	ctx.ISA.Label(done)
	return result, nil
}

// splitBitOffset divides a runtime logical offset into byte offset and
// bit position via the divide-with-remainder primitive.
func (ctx *CompilationContext) splitBitOffset(offset *Variable) (byteOff, bitPos *Variable) {
	byteOff = ctx.Temporary(Word, "bit byte offset")
	bitPos = ctx.Temporary(Word, "bit position")
	ctx.ISA.Div16(offset.Location(), imm(8), byteOff.Location(), bitPos.Location(), false)
	return byteOff, bitPos
}
