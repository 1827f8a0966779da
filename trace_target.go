package main

// trace_target.go - A recording ISA backend
//
// TraceISA implements the target interface by appending one line per
// primitive call. The test suite asserts against these traces, and the
// driver's verbose mode prints them; a real backend renders the same
// calls into machine code instead.

import "fmt"

// TraceISA records every primitive call as a formatted line
type TraceISA struct {
	Calls []string
}

// NewTraceISA returns an empty recording backend
func NewTraceISA() *TraceISA {
	return &TraceISA{}
}

func (t *TraceISA) emit(format string, args ...interface{}) {
	t.Calls = append(t.Calls, fmt.Sprintf(format, args...))
}

// Contains reports whether any recorded call equals the given line
func (t *TraceISA) Contains(line string) bool {
	for _, call := range t.Calls {
		if call == line {
			return true
		}
	}
	return false
}

// CountPrefix counts recorded calls starting with the given prefix
func (t *TraceISA) CountPrefix(prefix string) int {
	n := 0
	for _, call := range t.Calls {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (t *TraceISA) Remark(text string)                { t.emit("; %s", text) }
func (t *TraceISA) Label(name string)                 { t.emit("label %s", name) }
func (t *TraceISA) Jump(label string)                 { t.emit("jump %s", label) }
func (t *TraceISA) JumpIfZero8(loc, label string)     { t.emit("jz8 %s %s", loc, label) }
func (t *TraceISA) JumpIfNonZero8(loc, label string)  { t.emit("jnz8 %s %s", loc, label) }

func (t *TraceISA) Move8(src, dst string)  { t.emit("move8 %s %s", src, dst) }
func (t *TraceISA) Move16(src, dst string) { t.emit("move16 %s %s", src, dst) }
func (t *TraceISA) Move32(src, dst string) { t.emit("move32 %s %s", src, dst) }

func (t *TraceISA) Add8(a, b, result string)  { t.emit("add8 %s %s %s", a, b, result) }
func (t *TraceISA) Add16(a, b, result string) { t.emit("add16 %s %s %s", a, b, result) }
func (t *TraceISA) Add32(a, b, result string) { t.emit("add32 %s %s %s", a, b, result) }
func (t *TraceISA) Sub8(a, b, result string)  { t.emit("sub8 %s %s %s", a, b, result) }
func (t *TraceISA) Sub16(a, b, result string) { t.emit("sub16 %s %s %s", a, b, result) }
func (t *TraceISA) Sub32(a, b, result string) { t.emit("sub32 %s %s %s", a, b, result) }

func (t *TraceISA) Mul8(a, b, result string, signed bool) {
	t.emit("mul8%s %s %s %s", signedSuffix(signed), a, b, result)
}
func (t *TraceISA) Mul16(a, b, result string, signed bool) {
	t.emit("mul16%s %s %s %s", signedSuffix(signed), a, b, result)
}
func (t *TraceISA) Div8(a, b, result, remainder string, signed bool) {
	t.emit("div8%s %s %s %s %s", signedSuffix(signed), a, b, result, remainder)
}
func (t *TraceISA) Div16(a, b, result, remainder string, signed bool) {
	t.emit("div16%s %s %s %s %s", signedSuffix(signed), a, b, result, remainder)
}
func (t *TraceISA) Div32(a, b, result, remainder string, signed bool) {
	t.emit("div32%s %s %s %s %s", signedSuffix(signed), a, b, result, remainder)
}

func (t *TraceISA) And8(a, b, result string)  { t.emit("and8 %s %s %s", a, b, result) }
func (t *TraceISA) And16(a, b, result string) { t.emit("and16 %s %s %s", a, b, result) }
func (t *TraceISA) And32(a, b, result string) { t.emit("and32 %s %s %s", a, b, result) }
func (t *TraceISA) Or8(a, b, result string)   { t.emit("or8 %s %s %s", a, b, result) }
func (t *TraceISA) Or16(a, b, result string)  { t.emit("or16 %s %s %s", a, b, result) }
func (t *TraceISA) Or32(a, b, result string)  { t.emit("or32 %s %s %s", a, b, result) }
func (t *TraceISA) Xor8(a, b, result string)  { t.emit("xor8 %s %s %s", a, b, result) }
func (t *TraceISA) Xor16(a, b, result string) { t.emit("xor16 %s %s %s", a, b, result) }
func (t *TraceISA) Xor32(a, b, result string) { t.emit("xor32 %s %s %s", a, b, result) }

func (t *TraceISA) CompareEqual8(a, b, result string)  { t.emit("cmpeq8 %s %s %s", a, b, result) }
func (t *TraceISA) CompareEqual16(a, b, result string) { t.emit("cmpeq16 %s %s %s", a, b, result) }
func (t *TraceISA) CompareEqual32(a, b, result string) { t.emit("cmpeq32 %s %s %s", a, b, result) }
func (t *TraceISA) Less8(a, b, result string, signed bool) {
	t.emit("less8%s %s %s %s", signedSuffix(signed), a, b, result)
}
func (t *TraceISA) Less16(a, b, result string, signed bool) {
	t.emit("less16%s %s %s %s", signedSuffix(signed), a, b, result)
}
func (t *TraceISA) Less32(a, b, result string, signed bool) {
	t.emit("less32%s %s %s %s", signedSuffix(signed), a, b, result)
}
func (t *TraceISA) Greater8(a, b, result string, signed bool) {
	t.emit("greater8%s %s %s %s", signedSuffix(signed), a, b, result)
}
func (t *TraceISA) Greater16(a, b, result string, signed bool) {
	t.emit("greater16%s %s %s %s", signedSuffix(signed), a, b, result)
}
func (t *TraceISA) Greater32(a, b, result string, signed bool) {
	t.emit("greater32%s %s %s %s", signedSuffix(signed), a, b, result)
}

func (t *TraceISA) Negate8(loc string)  { t.emit("neg8 %s", loc) }
func (t *TraceISA) Negate16(loc string) { t.emit("neg16 %s", loc) }
func (t *TraceISA) Negate32(loc string) { t.emit("neg32 %s", loc) }

func (t *TraceISA) BitTest(loc string, pos int, result string) {
	t.emit("bittest %s %d %s", loc, pos, result)
}
func (t *TraceISA) BitSet(loc string, pos int)   { t.emit("bitset %s %d", loc, pos) }
func (t *TraceISA) BitClear(loc string, pos int) { t.emit("bitclear %s %d", loc, pos) }

func (t *TraceISA) Inc8(loc string)  { t.emit("inc8 %s", loc) }
func (t *TraceISA) Inc16(loc string) { t.emit("inc16 %s", loc) }
func (t *TraceISA) Dec8(loc string)  { t.emit("dec8 %s", loc) }
func (t *TraceISA) Dec16(loc string) { t.emit("dec16 %s", loc) }

func (t *TraceISA) MemCopy(src, dst, count string) { t.emit("memcopy %s %s %s", src, dst, count) }
func (t *TraceISA) MemCopyTo(src, dst, dstOffset, count string) {
	t.emit("memcopyto %s %s %s %s", src, dst, dstOffset, count)
}
func (t *TraceISA) MemCompare(a, b, count, result string) {
	t.emit("memcmp %s %s %s %s", a, b, count, result)
}
func (t *TraceISA) MemLess(a, b, count, result string) {
	t.emit("memless %s %s %s %s", a, b, count, result)
}
func (t *TraceISA) MemGreater(a, b, count, result string) {
	t.emit("memgreater %s %s %s %s", a, b, count, result)
}

func (t *TraceISA) ReadIndirect(base, offset, dst string, size int) {
	t.emit("read%d %s %s %s", size*8, base, offset, dst)
}
func (t *TraceISA) WriteIndirect(src, base, offset string, size int) {
	t.emit("write%d %s %s %s", size*8, src, base, offset)
}
func (t *TraceISA) IndexedRead8(base, index, dst string) {
	t.emit("idxread8 %s %s %s", base, index, dst)
}
func (t *TraceISA) IndexedWrite8(src, base, index string) {
	t.emit("idxwrite8 %s %s %s", src, base, index)
}
func (t *TraceISA) IndexedRead16(base, index, dst string) {
	t.emit("idxread16 %s %s %s", base, index, dst)
}
func (t *TraceISA) IndexedWrite16(src, base, index string) {
	t.emit("idxwrite16 %s %s %s", src, base, index)
}

func (t *TraceISA) DStringAlloc(desc, size string)  { t.emit("dsalloc %s %s", desc, size) }
func (t *TraceISA) DStringFree(desc string)         { t.emit("dsfree %s", desc) }
func (t *TraceISA) DStringResize(desc, size string) { t.emit("dsresize %s %s", desc, size) }
func (t *TraceISA) DStringLength(desc, result string) {
	t.emit("dslen %s %s", desc, result)
}

func (t *TraceISA) FloatAdd(p Precision, a, b, result string) {
	t.emit("fadd[%s] %s %s %s", p, a, b, result)
}
func (t *TraceISA) FloatSub(p Precision, a, b, result string) {
	t.emit("fsub[%s] %s %s %s", p, a, b, result)
}
func (t *TraceISA) FloatMul(p Precision, a, b, result string) {
	t.emit("fmul[%s] %s %s %s", p, a, b, result)
}
func (t *TraceISA) FloatDiv(p Precision, a, b, result string) {
	t.emit("fdiv[%s] %s %s %s", p, a, b, result)
}
func (t *TraceISA) FloatCompareEqual(p Precision, a, b, result string) {
	t.emit("fcmpeq[%s] %s %s %s", p, a, b, result)
}
func (t *TraceISA) FloatLess(p Precision, a, b, result string) {
	t.emit("fless[%s] %s %s %s", p, a, b, result)
}
func (t *TraceISA) FloatGreater(p Precision, a, b, result string) {
	t.emit("fgreater[%s] %s %s %s", p, a, b, result)
}
func (t *TraceISA) FloatToInt(p Precision, src, dst string, width int, signed bool) {
	t.emit("ftoi[%s]%d%s %s %s", p, width, signedSuffix(signed), src, dst)
}
func (t *TraceISA) IntToFloat(p Precision, src, dst string, width int, signed bool) {
	t.emit("itof[%s]%d%s %s %s", p, width, signedSuffix(signed), src, dst)
}

func signedSuffix(signed bool) string {
	if signed {
		return "s"
	}
	return "u"
}
