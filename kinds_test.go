package main

import "testing"

func TestBitWidths(t *testing.T) {
	cases := []struct {
		kind  Kind
		width int
	}{
		{Bit, 1},
		{Byte, 8}, {SByte, 8},
		{Word, 16}, {SWord, 16},
		{DWord, 32}, {SDWord, 32},
		{Float(PrecisionFast), 0},
		{String, 0}, {DString, 0}, {Buffer, 0},
	}
	for _, c := range cases {
		if got := c.kind.BitWidth(); got != c.width {
			t.Errorf("%s: width %d, want %d", c.kind, got, c.width)
		}
	}
}

func TestSignedness(t *testing.T) {
	for _, k := range []Kind{SByte, SWord, SDWord} {
		if !k.Signed() {
			t.Errorf("%s should be signed", k)
		}
	}
	for _, k := range []Kind{Bit, Byte, Word, DWord, String} {
		if k.Signed() {
			t.Errorf("%s should not be signed", k)
		}
	}
}

func TestElemByteStride(t *testing.T) {
	cases := []struct {
		kind   Kind
		stride int
	}{
		{Kind{Tag: KindTiles}, 4},
		{Kind{Tag: KindSprite}, 1},
		{Kind{Tag: KindTile}, 1},
		{Kind{Tag: KindTileset}, 1},
		{DString, 1},
		{Float(PrecisionFast), 4},
		{Float(PrecisionSingle), 4},
		{Byte, 1},
		{Word, 2},
		{SDWord, 4},
	}
	for _, c := range cases {
		if got := c.kind.ElemByteStride(); got != c.stride {
			t.Errorf("%s: stride %d, want %d", c.kind, got, c.stride)
		}
	}
}

// TestPromote checks the promotion table across all width pairs and
// signedness combinations: maximum width, signed when either operand
// is signed.
func TestPromote(t *testing.T) {
	ints := []Kind{Byte, SByte, Word, SWord, DWord, SDWord}
	for _, a := range ints {
		for _, b := range ints {
			got := Promote(a, b)
			wantWidth := a.BitWidth()
			if b.BitWidth() > wantWidth {
				wantWidth = b.BitWidth()
			}
			wantSigned := a.Signed() || b.Signed()
			if got.BitWidth() != wantWidth || got.Signed() != wantSigned {
				t.Errorf("Promote(%s, %s) = %s, want width %d signed %v",
					a, b, got, wantWidth, wantSigned)
			}
		}
	}
}

func TestFloatPrecisionSizes(t *testing.T) {
	if PrecisionFast.ByteSize() != 3 {
		t.Errorf("fast float size %d, want 3", PrecisionFast.ByteSize())
	}
	if PrecisionSingle.ByteSize() != 4 {
		t.Errorf("single float size %d, want 4", PrecisionSingle.ByteSize())
	}
}

func TestSameKindFloatPrecision(t *testing.T) {
	if SameKind(Float(PrecisionFast), Float(PrecisionSingle)) {
		t.Error("floats of different precision must not match for pool reuse")
	}
	if !SameKind(Float(PrecisionFast), Float(PrecisionFast)) {
		t.Error("floats of equal precision must match")
	}
}
