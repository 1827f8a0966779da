package main

// variable.go - The variable record
//
// A Variable ties a logical (user-visible) name to a mangled storage
// name, a kind, and the bookkeeping the registry, the temporary pool
// and the memory allocator need. Records are created by explicit
// definition or by the pool and live until the end of the compilation;
// nothing is destroyed, only unbound from the pool list.

import (
	"github.com/retroforge/nbasic/internal/engine"
)

// BitRef is the packing payload of a bit-kind variable: which byte of
// the backing storage holds the bit and at which position. Only
// bit-kind variables carry one; every other kind leaves it nil so
// stale positions cannot leak into unrelated code paths.
type BitRef struct {
	ByteIndex int
	BitPos    int
}

// Variable is one entry in the registry or the temporary pool
type Variable struct {
	Name     string // logical name as written in the source program
	RealName string // mangled storage name, globally unique

	Kind Kind
	Size int // storage footprint in bytes
	// SizeFixed forbids the first-write auto-grow of buffer-like
	// destinations; set for defined and imported variables, clear for
	// fresh pool temporaries that have not received a payload yet.
	SizeFixed bool

	// Folded compile-time value, valid while Constant is set
	Value       int64
	StringValue string
	Constant    bool

	Area    *MemoryArea
	Address int // absolute address once allocated, -1 before

	Used      bool // temporary-pool liveness
	Locked    bool // exempt from pool reuse
	Temporary bool
	Resident  bool
	Imported  bool

	Purpose string // why the pool handed this temporary out
	// MirrorsOperand marks a cast temporary that still reflects a
	// source operand of a previous expression; cleared when the pool
	// reuses the slot.
	MirrorsOperand bool

	Bit *BitRef // bit-kind packing payload, nil otherwise

	// Array geometry, meaningful when Kind.Tag == KindArray. Dims holds
	// the extent of every dimension; Elem is the stored element kind.
	ArrayElem Kind
	ArrayDims []int
}

// Location returns the symbolic storage location the target layer
// addresses this variable by.
func (v *Variable) Location() string {
	return v.RealName
}

// ByteLocation returns the location of byte n inside the variable's
// storage. Byte 0 is the most significant byte (big-endian selection
// via the +N displacement convention of the target layer).
func (v *Variable) ByteLocation(n int) string {
	return engine.Displace(v.RealName, n)
}

// IsArray reports whether the variable is a fixed array
func (v *Variable) IsArray() bool {
	return v.Kind.Tag == KindArray
}

// ElemCount returns the number of elements of an array variable
func (v *Variable) ElemCount() int {
	if !v.IsArray() {
		return 0
	}
	count := 1
	for _, extent := range v.ArrayDims {
		count *= extent
	}
	return count
}

// storageSize computes the byte footprint a fresh variable of this
// shape needs. Bit arrays pack eight elements per byte; other arrays
// use the element stride; dynamic strings and handle kinds occupy a
// descriptor byte; buffers and media resources use their declared
// payload size.
func storageSize(kind Kind, elem Kind, dims []int, payload int) int {
	switch kind.Tag {
	case KindArray:
		count := 1
		for _, extent := range dims {
			count *= extent
		}
		if elem.Tag == KindBit {
			return (count + 7) / 8
		}
		return count * elem.ElemByteStride()
	case KindString:
		return payload
	case KindBuffer, KindImage, KindImages, KindSequence, KindMusic,
		KindTilemap:
		return payload
	default:
		return kind.ByteSize()
	}
}
