package main

// errors.go - Diagnostic taxonomy for the code-generation core
//
// Every error this layer reports is fatal to the compilation: the front
// end has already validated syntax, so anything surfacing here is either
// a semantic error in the source program or an internal inconsistency.
// Operations return these as ordinary Go errors; the driver renders the
// diagnostic and aborts. Warnings never abort and are collected on the
// CompilationContext instead.

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/mileusna/conditional"
)

// DiagCode identifies the class of a fatal diagnostic
type DiagCode int

const (
	DiagUndefinedVariable DiagCode = iota
	DiagVariableRedefined          // redefinition with a different kind
	DiagNameCollision              // variable name already bound to a constant
	DiagCannotCast                 // no conversion rule for the kind pair
	DiagDatatypeMismatch           // naked move across differing kinds
	DiagDatatypeUnsupported        // operation has no algorithm for this kind
	DiagCannotCompare              // float comparison across precisions
	DiagArraySizeMismatch          // index count != declared dimensions
	DiagBufferSizeMismatch         // fixed-capacity destination too small
	DiagTilemapSizeMismatch        // tilemap copy across differing byte sizes
	DiagNotArray                   // array operation on a non-array variable
	DiagOutOfMemory                // no memory area can hold the variable
)

func (c DiagCode) String() string {
	switch c {
	case DiagUndefinedVariable:
		return "undefined variable"
	case DiagVariableRedefined:
		return "variable redefined with different type"
	case DiagNameCollision:
		return "name already bound to a constant"
	case DiagCannotCast:
		return "cannot cast"
	case DiagDatatypeMismatch:
		return "datatype mismatch"
	case DiagDatatypeUnsupported:
		return "datatype unsupported for this operation"
	case DiagCannotCompare:
		return "cannot compare"
	case DiagArraySizeMismatch:
		return "array dimension mismatch"
	case DiagBufferSizeMismatch:
		return "buffer too small for source payload"
	case DiagTilemapSizeMismatch:
		return "tilemap sizes differ"
	case DiagNotArray:
		return "not an array"
	case DiagOutOfMemory:
		return "no memory area can hold the variable"
	default:
		return "internal error"
	}
}

// Diag is a fatal, compilation-aborting diagnostic. It names the
// offending variable and the kind(s) involved so the user can find the
// line in their program; the core itself carries no source positions
// (the front end owns those).
type Diag struct {
	Code  DiagCode
	Name  string // offending variable, constant or label name
	Kinds []Kind // kinds involved, source first
	Hint  string // optional "did you mean" or extra detail
}

func (d *Diag) Error() string {
	var sb strings.Builder
	sb.WriteString(d.Code.String())
	if d.Name != "" {
		fmt.Fprintf(&sb, ": %s", d.Name)
	}
	if len(d.Kinds) == 1 {
		fmt.Fprintf(&sb, " (%s)", d.Kinds[0])
	} else if len(d.Kinds) >= 2 {
		fmt.Fprintf(&sb, " (%s -> %s)", d.Kinds[0], d.Kinds[1])
	}
	if d.Hint != "" {
		fmt.Fprintf(&sb, "; %s", d.Hint)
	}
	return sb.String()
}

// diag builds a fatal diagnostic
func diag(code DiagCode, name string, kinds ...Kind) *Diag {
	return &Diag{Code: code, Name: name, Kinds: kinds}
}

// RenderDiag formats a diagnostic for terminal output, colored when the
// terminal supports it. Plain Error() text stays uncolored so wrapped
// errors remain grep-friendly in logs.
func RenderDiag(err error, colors bool) string {
	au := aurora.NewAurora(colors)
	label := conditional.String(isInternal(err), "internal error", "error")
	return fmt.Sprintf("%s %s", au.Red(label+":").Bold(), err.Error())
}

func isInternal(err error) bool {
	d, ok := err.(*Diag)
	return !ok || d.Code == DiagOutOfMemory
}

// WarnCode identifies a non-fatal warning class
type WarnCode int

const (
	WarnBitWidth       WarnCode = iota // mixed-width operands, lossy unification
	WarnDowncast                       // legal but lossy narrowing
	WarnUndefinedArray                 // array used before its element kind is known
)

func (c WarnCode) String() string {
	switch c {
	case WarnBitWidth:
		return "bit width"
	case WarnDowncast:
		return "downcast"
	case WarnUndefinedArray:
		return "use of undefined array"
	default:
		return "warning"
	}
}

// Warning is a non-fatal degradation notice. The operation that raised
// it still produced a valid (if lossy) result.
type Warning struct {
	Code WarnCode
	Text string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Text)
}
