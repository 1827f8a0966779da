package main

// kinds.go - The variable kind taxonomy
//
// Every value the code generator touches carries a Kind: scalar integers
// of width 1/8/16/32 with signedness, floats tagged by precision, static
// and dynamic strings, opaque buffers, fixed arrays and the media-resource
// handles (sprites, tiles, images, music). The bit-width and signedness
// queries defined here drive the dispatch in the move and arithmetic
// engines.

// KindTag is the category of a variable kind
type KindTag int

const (
	KindNone KindTag = iota
	KindBit          // 1-bit flag, packed
	KindByte         // unsigned 8-bit
	KindSByte        // signed 8-bit
	KindWord         // unsigned 16-bit
	KindSWord        // signed 16-bit
	KindDWord        // unsigned 32-bit
	KindSDWord       // signed 32-bit
	KindFloat        // floating point, precision-tagged
	KindString       // static string, fixed storage
	KindDString      // dynamic string, descriptor-addressed
	KindBuffer       // opaque byte buffer
	KindArray        // fixed multi-dimensional array
	KindSprite
	KindTile
	KindTileset
	KindTilemap
	KindTiles
	KindImage
	KindImages
	KindSequence
	KindMusic
)

func (t KindTag) String() string {
	switch t {
	case KindBit:
		return "bit"
	case KindByte:
		return "byte"
	case KindSByte:
		return "sbyte"
	case KindWord:
		return "word"
	case KindSWord:
		return "sword"
	case KindDWord:
		return "dword"
	case KindSDWord:
		return "sdword"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindDString:
		return "dstring"
	case KindBuffer:
		return "buffer"
	case KindArray:
		return "array"
	case KindSprite:
		return "sprite"
	case KindTile:
		return "tile"
	case KindTileset:
		return "tileset"
	case KindTilemap:
		return "tilemap"
	case KindTiles:
		return "tiles"
	case KindImage:
		return "image"
	case KindImages:
		return "images"
	case KindSequence:
		return "sequence"
	case KindMusic:
		return "music"
	default:
		return "none"
	}
}

// Precision selects the floating-point representation tier
type Precision int

const (
	PrecisionDefault Precision = iota
	PrecisionFast              // reduced-accuracy packed format, 3 bytes
	PrecisionSingle            // IEEE-like single, 4 bytes
)

func (p Precision) String() string {
	switch p {
	case PrecisionFast:
		return "fast"
	case PrecisionSingle:
		return "single"
	default:
		return "default"
	}
}

// ByteSize returns the storage footprint of a float of this precision
func (p Precision) ByteSize() int {
	switch p {
	case PrecisionFast:
		return 3
	case PrecisionSingle:
		return 4
	default:
		return 4
	}
}

// NormalizedPow2 returns log2 of the power-of-two stride used when
// floats of this precision are stored as array elements. Both tiers
// round up to a 4-byte slot so indexing stays a shift.
func (p Precision) NormalizedPow2() int {
	return 2
}

// Kind is the tagged variant describing a variable's representation.
// Array geometry and buffer capacity are per-variable attributes, not
// part of the tag; only floats carry extra state here (the precision),
// so Kind stays a comparable value.
type Kind struct {
	Tag       KindTag
	Precision Precision // meaningful for KindFloat only
}

// Convenience constructors for the scalar kinds
var (
	Bit    = Kind{Tag: KindBit}
	Byte   = Kind{Tag: KindByte}
	SByte  = Kind{Tag: KindSByte}
	Word   = Kind{Tag: KindWord}
	SWord  = Kind{Tag: KindSWord}
	DWord  = Kind{Tag: KindDWord}
	SDWord = Kind{Tag: KindSDWord}
	String = Kind{Tag: KindString}
	// DString is the dynamic, descriptor-addressed string kind
	DString = Kind{Tag: KindDString}
	Buffer  = Kind{Tag: KindBuffer}
)

// Float returns the float kind for the given precision
func Float(p Precision) Kind {
	return Kind{Tag: KindFloat, Precision: p}
}

func (k Kind) String() string {
	if k.Tag == KindFloat {
		return "float(" + k.Precision.String() + ")"
	}
	return k.Tag.String()
}

// BitWidth returns the scalar width in bits: 32, 16, 8 or 1.
// Non-scalar kinds return 0, which the move engine treats as
// "dispatch by kind tag instead of by width".
func (k Kind) BitWidth() int {
	switch k.Tag {
	case KindBit:
		return 1
	case KindByte, KindSByte:
		return 8
	case KindWord, KindSWord:
		return 16
	case KindDWord, KindSDWord:
		return 32
	default:
		return 0
	}
}

// Signed reports whether the kind is a signed integer
func (k Kind) Signed() bool {
	switch k.Tag {
	case KindSByte, KindSWord, KindSDWord:
		return true
	default:
		return false
	}
}

// Integer reports whether the kind is an integer scalar (bit included)
func (k Kind) Integer() bool {
	return k.BitWidth() > 0
}

// WithSign returns the signed or unsigned variant of an integer kind at
// the same width. Non-integer kinds are returned unchanged.
func (k Kind) WithSign(signed bool) Kind {
	switch k.BitWidth() {
	case 8:
		if signed {
			return SByte
		}
		return Byte
	case 16:
		if signed {
			return SWord
		}
		return Word
	case 32:
		if signed {
			return SDWord
		}
		return DWord
	default:
		return k
	}
}

// IntegerKind returns the integer kind for a width/signedness pair
func IntegerKind(width int, signed bool) Kind {
	switch width {
	case 8:
		if signed {
			return SByte
		}
		return Byte
	case 16:
		if signed {
			return SWord
		}
		return Word
	case 32:
		if signed {
			return SDWord
		}
		return DWord
	case 1:
		return Bit
	default:
		return Kind{}
	}
}

// ByteSize returns the storage footprint in bytes of one value of this
// kind. Handle kinds occupy a single byte; array and buffer footprints
// depend on per-variable geometry and are computed by the registry.
func (k Kind) ByteSize() int {
	switch k.Tag {
	case KindBit:
		return 1
	case KindByte, KindSByte:
		return 1
	case KindWord, KindSWord:
		return 2
	case KindDWord, KindSDWord:
		return 4
	case KindFloat:
		return k.Precision.ByteSize()
	case KindSprite, KindTile, KindTileset, KindDString:
		return 1
	case KindTiles:
		return 4
	default:
		return 0
	}
}

// ElemByteStride returns the per-element stride when values of this
// kind are stored in an array. Tiles occupy four bytes; sprite, tile,
// tileset and dynamic-string elements are one-byte handles; floats use
// the normalized power-of-two slot; integers use width/8.
func (k Kind) ElemByteStride() int {
	switch k.Tag {
	case KindTiles:
		return 4
	case KindSprite, KindTile, KindTileset, KindDString:
		return 1
	case KindFloat:
		return 1 << k.Precision.NormalizedPow2()
	default:
		if w := k.BitWidth(); w >= 8 {
			return w / 8
		}
		return 1
	}
}

// NeedsDedicatedArea reports whether variables of this kind may not be
// bump-allocated from a generic RAM area and must land in a dedicated
// bank instead (they own bulk payload the generic allocator cannot
// place).
func (k Kind) NeedsDedicatedArea() bool {
	switch k.Tag {
	case KindString, KindDString, KindBuffer, KindImage, KindImages,
		KindSequence, KindMusic:
		return true
	default:
		return false
	}
}

// LockedAsTemporary reports whether a temporary of this kind owns
// heap-like storage and must never be silently recycled by the pool.
func (k Kind) LockedAsTemporary() bool {
	switch k.Tag {
	case KindString, KindDString, KindBuffer, KindImage, KindImages,
		KindSequence, KindMusic:
		return true
	default:
		return false
	}
}

// tempPrefix encodes the kind into the synthesized name of a fresh
// temporary, so generated listings stay readable.
func (k Kind) tempPrefix() string {
	switch k.Tag {
	case KindString, KindDString:
		return "tstr"
	case KindBuffer:
		return "tbuf"
	case KindImage, KindImages:
		return "timg"
	case KindSequence:
		return "tseq"
	case KindMusic:
		return "tmus"
	case KindFloat:
		return "tflt"
	case KindBit:
		return "tbit"
	default:
		return "ttmp"
	}
}

// SameKind reports whether two kinds are interchangeable for temporary
// reuse: the tags must match and, for floats, the precision too.
func SameKind(a, b Kind) bool {
	if a.Tag != b.Tag {
		return false
	}
	if a.Tag == KindFloat {
		return a.Precision == b.Precision
	}
	return true
}

// Promote computes the common kind two integer operands are unified to
// before an arithmetic or comparison operation: when signedness
// differs, the signed variant at the maximum width; when both share
// signedness but either is signed, the signed kind at the maximum
// width; otherwise the unsigned kind at the maximum width.
func Promote(a, b Kind) Kind {
	wa, wb := a.BitWidth(), b.BitWidth()
	w := wa
	if wb > w {
		w = wb
	}
	if w < 8 {
		w = 8
	}
	signed := a.Signed() || b.Signed()
	return IntegerKind(w, signed)
}
