package main

// registry.go - Variable definition and scope resolution
//
// Names resolve against four buckets in strict precedence. Inside a
// procedure: parameters, the procedure-local temporary pool, the
// process-wide resident temporaries, then procedure-local variables.
// Outside: the main temporary pool, residents, the main pool again (a
// legacy double scan whose observable precedence we keep), then
// globals. A name containing the parameter marker, or matching a
// registered global wildcard pattern, resolves globally no matter where
// it is referenced from.

import (
	"strings"

	"github.com/retroforge/nbasic/internal/engine"
)

// isGlobalName reports whether a name bypasses procedure-local scoping
func (ctx *CompilationContext) isGlobalName(name string) bool {
	if strings.Contains(name, engine.ParamMarker) {
		return true
	}
	for _, pattern := range ctx.globalPatterns {
		if engine.MatchesPattern(name, pattern) {
			return true
		}
	}
	return false
}

// Define creates a variable, or returns the existing one when the same
// name is already defined with the same kind in the applicable scope
// (first definition wins; the new initial value is ignored). A name
// bound to a constant is a collision; the same name with a different
// kind is a redefinition error. Inside a procedure the storage name is
// parameter-styled (proc__name); the bucket is procedure-local unless
// the is-global predicate says otherwise.
func (ctx *CompilationContext) Define(name string, kind Kind, value int64) (*Variable, error) {
	return ctx.define(name, kind, value, true)
}

// DefineNoInit defines a forward-referenced local: same rules as
// Define, but the storage name is never parameter-styled.
func (ctx *CompilationContext) DefineNoInit(name string, kind Kind) (*Variable, error) {
	return ctx.define(name, kind, 0, false)
}

func (ctx *CompilationContext) define(name string, kind Kind, value int64, paramStyled bool) (*Variable, error) {
	if _, bound := ctx.constants[name]; bound {
		return nil, diag(DiagNameCollision, name, kind)
	}

	target := ctx.globals
	realName := engine.SanitizeName(name)
	if s := ctx.scope(); s != nil && !ctx.isGlobalName(name) {
		target = s.Vars
		if paramStyled {
			realName = engine.MangleParam(s.Name, engine.SanitizeName(name))
		} else {
			realName = engine.MangleLocal(s.Name, name)
		}
	}

	if existing := target.get(name); existing != nil {
		if SameKind(existing.Kind, kind) {
			return existing, nil
		}
		return nil, diag(DiagVariableRedefined, name, existing.Kind, kind)
	}

	v := &Variable{
		Name:     name,
		RealName: realName,
		Kind:     kind,
		Size:     storageSize(kind, Kind{}, nil, 0),
		Value:    value,
	}
	// Payload kinds of yet-unknown size stay growable until DefineSized
	// or the first write fixes their capacity.
	v.SizeFixed = v.Size > 0
	if kind.Integer() {
		v.Constant = true
	}
	if kind.Tag == KindBit {
		v.Bit = &BitRef{}
	}
	target.put(v)
	if err := ctx.memoryAreaAssign(v); err != nil {
		return nil, err
	}
	ctx.Log.Debug("defined variable", "name", name, "kind", kind.String(),
		"storage", v.RealName)
	return v, nil
}

// DefineArray defines a fixed multi-dimensional array of the given
// element kind and extents. Redefinition follows the same rules as
// Define, with geometry taken into account.
func (ctx *CompilationContext) DefineArray(name string, elem Kind, dims []int) (*Variable, error) {
	if _, bound := ctx.constants[name]; bound {
		return nil, diag(DiagNameCollision, name, Kind{Tag: KindArray})
	}

	target := ctx.globals
	realName := engine.SanitizeName(name)
	if s := ctx.scope(); s != nil && !ctx.isGlobalName(name) {
		target = s.Vars
		realName = engine.MangleParam(s.Name, engine.SanitizeName(name))
	}

	if existing := target.get(name); existing != nil {
		if existing.IsArray() && SameKind(existing.ArrayElem, elem) &&
			sameDims(existing.ArrayDims, dims) {
			return existing, nil
		}
		return nil, diag(DiagVariableRedefined, name, existing.Kind, Kind{Tag: KindArray})
	}

	v := &Variable{
		Name:      name,
		RealName:  realName,
		Kind:      Kind{Tag: KindArray},
		ArrayElem: elem,
		ArrayDims: append([]int(nil), dims...),
		Size:      storageSize(Kind{Tag: KindArray}, elem, dims, 0),
		SizeFixed: true,
	}
	target.put(v)
	if err := ctx.memoryAreaAssign(v); err != nil {
		return nil, err
	}
	ctx.Log.Debug("defined array", "name", name, "elem", elem.String(),
		"dims", dims, "size", v.Size)
	return v, nil
}

// DefineSized defines a variable of a bulk-payload kind (string,
// buffer, tilemap, image, sequence, music) with an explicit byte size.
func (ctx *CompilationContext) DefineSized(name string, kind Kind, size int) (*Variable, error) {
	v, err := ctx.define(name, kind, 0, true)
	if err != nil {
		return nil, err
	}
	if v.Size == 0 && !v.SizeFixed {
		v.Size = size
		v.SizeFixed = true
		if err := ctx.memoryAreaAssign(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// DefineString defines a static string initialized from a literal; the
// storage footprint is the literal's length and the folded value is
// kept for compile-time concatenation and comparison.
func (ctx *CompilationContext) DefineString(name, value string) (*Variable, error) {
	v, err := ctx.DefineSized(name, String, len(value))
	if err != nil {
		return nil, err
	}
	if !v.Constant || v.StringValue == "" {
		v.StringValue = value
		v.Constant = true
	}
	return v, nil
}

// DefineParameter registers a procedure parameter in the parameter
// bucket under the proc__name storage pattern.
func (ctx *CompilationContext) DefineParameter(name string, kind Kind) (*Variable, error) {
	s := ctx.scope()
	if s == nil {
		return ctx.Define(name, kind, 0)
	}
	if existing := s.Params.get(name); existing != nil {
		if SameKind(existing.Kind, kind) {
			return existing, nil
		}
		return nil, diag(DiagVariableRedefined, name, existing.Kind, kind)
	}
	v := &Variable{
		Name:      name,
		RealName:  engine.MangleParam(s.Name, engine.SanitizeName(name)),
		Kind:      kind,
		Size:      storageSize(kind, Kind{}, nil, 0),
		SizeFixed: true,
	}
	if kind.Tag == KindBit {
		v.Bit = &BitRef{}
	}
	s.Params.put(v)
	if err := ctx.memoryAreaAssign(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Retrieve resolves a name through the bucket precedence of the active
// scope. When mandatory is set an unresolved name is an error carrying
// a closest-identifier suggestion; otherwise the miss returns nil.
func (ctx *CompilationContext) Retrieve(name string, mandatory bool) (*Variable, error) {
	if v := ctx.lookup(name); v != nil {
		return v, nil
	}
	if !mandatory {
		return nil, nil
	}
	d := diag(DiagUndefinedVariable, name)
	if suggestions := engine.SuggestSimilar(name, ctx.visibleNames(), 3); len(suggestions) > 0 {
		d.Hint = "did you mean " + strings.Join(suggestions, ", ")
	}
	return nil, d
}

func (ctx *CompilationContext) lookup(name string) *Variable {
	if ctx.isGlobalName(name) {
		return ctx.globals.get(name)
	}
	if s := ctx.scope(); s != nil {
		if v := s.Params.get(name); v != nil {
			return v
		}
		if v := s.Pool.get(name); v != nil {
			return v
		}
		if v := ctx.residents.get(name); v != nil {
			return v
		}
		return s.Vars.get(name)
	}
	if v := ctx.mainPool.get(name); v != nil {
		return v
	}
	if v := ctx.residents.get(name); v != nil {
		return v
	}
	// The main pool is scanned a second time here. The two scans are
	// functionally idempotent; the observable precedence is kept as-is.
	if v := ctx.mainPool.get(name); v != nil {
		return v
	}
	return ctx.globals.get(name)
}

func (ctx *CompilationContext) visibleNames() []string {
	var names []string
	if s := ctx.scope(); s != nil {
		names = append(names, s.Params.names()...)
		names = append(names, s.Vars.names()...)
	}
	names = append(names, ctx.globals.names()...)
	return names
}

// RetrieveOrDefine resolves a name, auto-casting the found variable to
// the requested kind into a fresh temporary when the bit-widths differ
// (the found variable itself is never mutated), unless it is a
// constant-literal binding whose value is already representable in the
// requested kind. Unresolved names are defined implicitly, except under
// option explicit where they are an error.
func (ctx *CompilationContext) RetrieveOrDefine(name string, kind Kind, value int64) (*Variable, error) {
	v, err := ctx.Retrieve(name, false)
	if err != nil {
		return nil, err
	}
	if v != nil {
		if SameKind(v.Kind, kind) || v.Kind.BitWidth() == kind.BitWidth() {
			return v, nil
		}
		if v.Constant && v.Kind.Integer() && kind.Integer() &&
			representable(v.Value, kind) {
			return v, nil
		}
		return ctx.Cast(v, kind)
	}
	if ctx.OptionExplicit {
		return nil, diag(DiagUndefinedVariable, name, kind)
	}
	return ctx.Define(name, kind, value)
}

// Import registers an externally-provided symbol. The variable is
// locked and marked used so the pool never touches it, and memory-area
// assignment is skipped: its storage already exists outside the
// compilation unit. sizeOrValue is the byte size for payload kinds and
// the known value for scalars.
func (ctx *CompilationContext) Import(name string, kind Kind, sizeOrValue int64) (*Variable, error) {
	if _, bound := ctx.constants[name]; bound {
		return nil, diag(DiagNameCollision, name, kind)
	}
	if existing := ctx.globals.get(name); existing != nil {
		if SameKind(existing.Kind, kind) {
			return existing, nil
		}
		return nil, diag(DiagVariableRedefined, name, existing.Kind, kind)
	}
	v := &Variable{
		Name:      name,
		RealName:  name,
		Kind:      kind,
		Imported:  true,
		Locked:    true,
		Used:      true,
		SizeFixed: true,
		Address:   -1,
	}
	if kind.Integer() {
		v.Value = sizeOrValue
		v.Size = kind.ByteSize()
	} else {
		v.Size = int(sizeOrValue)
	}
	if kind.Tag == KindBit {
		v.Bit = &BitRef{}
	}
	ctx.globals.put(v)
	ctx.Log.Debug("imported symbol", "name", name, "kind", kind.String())
	return v, nil
}

// Exists reports whether a name resolves in the active scope
func (ctx *CompilationContext) Exists(name string) bool {
	return ctx.lookup(name) != nil
}

// Delete unbinds a name from the applicable temporary pool. Only pool
// bindings can be removed; this exists for the transient helper
// bindings the array-indexing layer creates.
func (ctx *CompilationContext) Delete(name string) bool {
	return ctx.pool().remove(name)
}

func sameDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// representable reports whether a folded value fits the integer kind
func representable(value int64, kind Kind) bool {
	switch kind.BitWidth() {
	case 1:
		return value == 0 || value == 1
	case 8:
		if kind.Signed() {
			return value >= -128 && value <= 127
		}
		return value >= 0 && value <= 255
	case 16:
		if kind.Signed() {
			return value >= -32768 && value <= 32767
		}
		return value >= 0 && value <= 65535
	case 32:
		if kind.Signed() {
			return value >= -2147483648 && value <= 2147483647
		}
		return value >= 0 && value <= 4294967295
	default:
		return false
	}
}
