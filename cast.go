package main

// cast.go - Explicit representation changes
//
// Cast never mutates the variable it is given: either the kind already
// matches and the same record is returned, or a fresh temporary of the
// requested kind receives the converted value. Callers that need a
// stable storage identity therefore always own the returned record.

// Cast converts src to the requested kind. When the kinds already
// match, src itself is returned; otherwise a fresh temporary holds the
// converted value. Compile-time-constant integer sources fold through
// without emitting runtime conversion code (see moveFolded).
func (ctx *CompilationContext) Cast(src *Variable, kind Kind) (*Variable, error) {
	if SameKind(src.Kind, kind) {
		return src, nil
	}
	result := ctx.Temporary(kind, "cast of "+src.Name)
	if err := ctx.Move(src, result); err != nil {
		return nil, err
	}
	result.MirrorsOperand = true
	return result, nil
}

// CastNamed resolves a name and casts it, the form the front end calls
func (ctx *CompilationContext) CastNamed(name string, kind Kind) (*Variable, error) {
	src, err := ctx.Retrieve(name, true)
	if err != nil {
		return nil, err
	}
	return ctx.Cast(src, kind)
}
