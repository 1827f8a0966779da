package main

// memory.go - Target memory areas and bump allocation
//
// The target machine's RAM is modeled as a linked list of areas: generic
// RAM regions and precisely-placed banks. A variable needing storage
// walks the list and bump-allocates from the first area with enough
// room. String, buffer, image, sequence and music kinds own bulk
// payload and are never placed in generic RAM; they must land in a
// dedicated bank.

// MemoryAreaKind distinguishes generic RAM from placed banks
type MemoryAreaKind int

const (
	AreaRAM MemoryAreaKind = iota
	AreaBank
)

func (k MemoryAreaKind) String() string {
	if k == AreaBank {
		return "bank"
	}
	return "ram"
}

// MemoryArea is one region of target memory with bump-allocation
// bookkeeping. Size counts the bytes still free; Current is the next
// address handed out.
type MemoryArea struct {
	ID      string
	Kind    MemoryAreaKind
	Start   int
	Size    int
	Current int
	Next    *MemoryArea
}

// AddMemoryArea appends a region to the context's area list
func (ctx *CompilationContext) AddMemoryArea(id string, kind MemoryAreaKind, start, size int) *MemoryArea {
	area := &MemoryArea{ID: id, Kind: kind, Start: start, Size: size, Current: start}
	if ctx.areas == nil {
		ctx.areas = area
		return area
	}
	tail := ctx.areas
	for tail.Next != nil {
		tail = tail.Next
	}
	tail.Next = area
	return area
}

// Areas returns the head of the area list
func (ctx *CompilationContext) Areas() *MemoryArea {
	return ctx.areas
}

// memoryAreaAssign places a variable into the first area that can hold
// it. Imported variables never reach this point (their storage is
// external). Bulk-payload kinds are restricted to dedicated banks. A
// variable of zero footprint (an ungrown buffer temporary) is left
// unplaced until its size is known.
func (ctx *CompilationContext) memoryAreaAssign(v *Variable) error {
	if v.Size == 0 && !v.SizeFixed {
		return nil
	}
	dedicated := v.Kind.NeedsDedicatedArea() ||
		(v.IsArray() && v.ArrayElem.NeedsDedicatedArea())
	for area := ctx.areas; area != nil; area = area.Next {
		if dedicated && area.Kind == AreaRAM {
			continue
		}
		if area.Size < v.Size {
			continue
		}
		v.Area = area
		v.Address = area.Current
		area.Current += v.Size
		area.Size -= v.Size
		ctx.Log.Debug("placed variable",
			"name", v.Name, "kind", v.Kind.String(),
			"area", area.ID, "address", v.Address, "size", v.Size)
		return nil
	}
	return &Diag{Code: DiagOutOfMemory, Name: v.Name, Kinds: []Kind{v.Kind}}
}
