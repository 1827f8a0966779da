package main

// context.go - The compilation context
//
// All registry, pool and memory-area state is carried on one explicit
// CompilationContext passed to every operation; there is no ambient
// global state. The context is single-writer and accessed synchronously
// by the single-pass code generator.

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// bucket is an insertion-ordered variable map. Lookup is by logical
// name with first-match-wins semantics; the order slice preserves the
// definition sequence for memory layout and listing output.
type bucket struct {
	order  []*Variable
	byName map[string]*Variable
}

func newBucket() *bucket {
	return &bucket{byName: make(map[string]*Variable)}
}

func (b *bucket) get(name string) *Variable {
	return b.byName[name]
}

func (b *bucket) put(v *Variable) {
	if _, present := b.byName[v.Name]; !present {
		b.order = append(b.order, v)
	}
	b.byName[v.Name] = v
}

func (b *bucket) remove(name string) bool {
	if _, present := b.byName[name]; !present {
		return false
	}
	delete(b.byName, name)
	for i, v := range b.order {
		if v.Name == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

func (b *bucket) names() []string {
	result := make([]string, 0, len(b.order))
	for _, v := range b.order {
		result = append(result, v.Name)
	}
	return result
}

// ProcedureScope holds the three per-procedure variable buckets
type ProcedureScope struct {
	Name   string
	Params *bucket // keyed by the mangled proc__name form
	Pool   *bucket // procedure-local temporary pool
	Vars   *bucket // procedure-local actual variables
}

func newProcedureScope(name string) *ProcedureScope {
	return &ProcedureScope{
		Name:   name,
		Params: newBucket(),
		Pool:   newBucket(),
		Vars:   newBucket(),
	}
}

// Constant is a named compile-time value. Constants and variables share
// one namespace.
type Constant struct {
	Name        string
	RealName    string
	Kind        Kind
	Value       int64
	StringValue string
}

// arrayIndex is one entry of the active indexing context: either a
// literal value or the name of an index expression's variable.
type arrayIndex struct {
	symbolic string
	numeric  int
	literal  bool
}

// CompilationContext threads every piece of code-generation state
// through the registry, pool, move and arithmetic layers.
type CompilationContext struct {
	ISA ISA
	Log *log.Logger

	// SessionID tags every log line of one compiler invocation
	SessionID uuid.UUID

	// OptionExplicit forbids implicit definition in RetrieveOrDefine
	OptionExplicit bool

	// CurrentProcedure selects the active scope; empty means the main
	// program.
	CurrentProcedure string

	// ThreadIndexName is the fixed symbolic array index the _mt
	// operation variants go through, one slot per cooperative thread.
	ThreadIndexName string

	procedures     map[string]*ProcedureScope
	mainPool       *bucket
	residents      *bucket
	globals        *bucket
	constants      map[string]*Constant
	labels         map[string]struct{}
	globalPatterns []string
	areas          *MemoryArea

	// arrayIndexes is a stack of index frames: one frame per active
	// (possibly nested) indexing context.
	arrayIndexes [][]arrayIndex

	uniqueID int

	// Warnings collects every non-fatal degradation notice
	Warnings []Warning
}

// NewCompilationContext builds an empty context emitting through the
// given backend. The logger may be nil for silent operation.
func NewCompilationContext(isa ISA, logger *log.Logger) *CompilationContext {
	id := uuid.New()
	if logger == nil {
		logger = log.New(io.Discard)
		logger.SetLevel(log.FatalLevel)
	}
	return &CompilationContext{
		ISA:             isa,
		Log:             logger.With("session", id.String()[:8]),
		SessionID:       id,
		ThreadIndexName: "THREADID",
		procedures:      make(map[string]*ProcedureScope),
		mainPool:        newBucket(),
		residents:       newBucket(),
		globals:         newBucket(),
		constants:       make(map[string]*Constant),
		labels:          make(map[string]struct{}),
	}
}

// NextID advances and returns the compiler-unique id counter used for
// fresh temporaries and labels.
func (ctx *CompilationContext) NextID() int {
	ctx.uniqueID++
	return ctx.uniqueID
}

// Warn records a non-fatal warning and logs it
func (ctx *CompilationContext) Warn(code WarnCode, format string, args ...interface{}) {
	w := Warning{Code: code, Text: fmt.Sprintf(format, args...)}
	ctx.Warnings = append(ctx.Warnings, w)
	ctx.Log.Warn(w.Text, "class", code.String())
}

// BeginProcedure enters a procedure scope, creating it on first entry
func (ctx *CompilationContext) BeginProcedure(name string) {
	if _, present := ctx.procedures[name]; !present {
		ctx.procedures[name] = newProcedureScope(name)
	}
	ctx.CurrentProcedure = name
	ctx.Log.Debug("enter procedure", "name", name)
}

// EndProcedure returns to the main-program scope
func (ctx *CompilationContext) EndProcedure() {
	ctx.Log.Debug("leave procedure", "name", ctx.CurrentProcedure)
	ctx.CurrentProcedure = ""
}

// scope returns the active procedure scope, or nil in the main program
func (ctx *CompilationContext) scope() *ProcedureScope {
	if ctx.CurrentProcedure == "" {
		return nil
	}
	return ctx.procedures[ctx.CurrentProcedure]
}

// pool returns the temporary pool of the applicable scope
func (ctx *CompilationContext) pool() *bucket {
	if s := ctx.scope(); s != nil {
		return s.Pool
	}
	return ctx.mainPool
}

// DefineLabel registers a label identifier, failing on duplicates.
// Labels play no scheduling role here; this is purely duplicate
// detection on behalf of the front end.
func (ctx *CompilationContext) DefineLabel(name string) error {
	if _, present := ctx.labels[name]; present {
		return fmt.Errorf("label %q already defined", name)
	}
	ctx.labels[name] = struct{}{}
	return nil
}

// DefineNumericConstant binds a name to an integer constant
func (ctx *CompilationContext) DefineNumericConstant(name string, value int64) (*Constant, error) {
	return ctx.defineConstant(name, SDWord, value, "")
}

// DefineStringConstant binds a name to a string constant
func (ctx *CompilationContext) DefineStringConstant(name, value string) (*Constant, error) {
	return ctx.defineConstant(name, String, 0, value)
}

func (ctx *CompilationContext) defineConstant(name string, kind Kind, value int64, sval string) (*Constant, error) {
	if existing, present := ctx.constants[name]; present {
		if SameKind(existing.Kind, kind) && existing.Value == value && existing.StringValue == sval {
			return existing, nil
		}
		return nil, diag(DiagNameCollision, name, kind)
	}
	// Constants and variables share one namespace across every bucket
	if ctx.globals.get(name) != nil {
		return nil, diag(DiagNameCollision, name, kind)
	}
	if s := ctx.scope(); s != nil {
		if s.Params.get(name) != nil || s.Vars.get(name) != nil {
			return nil, diag(DiagNameCollision, name, kind)
		}
	}
	c := &Constant{
		Name:        name,
		RealName:    fmt.Sprintf("_const_%s_%d", name, ctx.NextID()),
		Kind:        kind,
		Value:       value,
		StringValue: sval,
	}
	ctx.constants[name] = c
	return c, nil
}

// Constant returns the constant bound to a name, if any
func (ctx *CompilationContext) Constant(name string) *Constant {
	return ctx.constants[name]
}

// RegisterGlobalPattern marks every name matching the wildcard pattern
// as global regardless of the scope it is referenced from.
func (ctx *CompilationContext) RegisterGlobalPattern(pattern string) {
	ctx.globalPatterns = append(ctx.globalPatterns, pattern)
}
