package main

// mt.go - Per-thread array-element operations and yield
//
// The language gives each cooperative thread its own slot in an array,
// selected by a fixed symbolic index. The _mt variants lower a
// read-modify-write as: index the array, pull the element into a
// scratch temporary, run the scalar operation, write the result back by
// re-indexing. No atomicity exists or is needed: threads suspend only
// at explicit yields, and no yield is ever emitted inside one of these
// sequences.

// schedulerLabel is where a yielding thread returns control to
const schedulerLabel = "_scheduler"

// threadStateSlot holds the resumption address of the running thread
const threadStateSlot = "THREADSTATE"

// AddMT adds a named value into the running thread's slot of an array
func (ctx *CompilationContext) AddMT(arrayName, valueName string) error {
	return ctx.rmwMT(arrayName, func(scratch *Variable) (*Variable, error) {
		return ctx.Add(scratch.Name, valueName)
	})
}

// SubMT subtracts a named value from the running thread's slot
func (ctx *CompilationContext) SubMT(arrayName, valueName string) error {
	return ctx.rmwMT(arrayName, func(scratch *Variable) (*Variable, error) {
		return ctx.Sub(scratch.Name, valueName)
	})
}

// IncMT increments the running thread's slot
func (ctx *CompilationContext) IncMT(arrayName string) error {
	return ctx.rmwMT(arrayName, func(scratch *Variable) (*Variable, error) {
		return scratch, ctx.Inc(scratch.Name)
	})
}

// DecMT decrements the running thread's slot
func (ctx *CompilationContext) DecMT(arrayName string) error {
	return ctx.rmwMT(arrayName, func(scratch *Variable) (*Variable, error) {
		return scratch, ctx.Dec(scratch.Name)
	})
}

func (ctx *CompilationContext) rmwMT(arrayName string, op func(*Variable) (*Variable, error)) error {
	ctx.ArrayIndexInit()
	ctx.ArrayIndexSymbolic(ctx.ThreadIndexName)
	scratch, err := ctx.MoveFromArray(arrayName)
	ctx.ArrayIndexCleanup()
	if err != nil {
		return err
	}

	result, err := op(scratch)
	if err != nil {
		return err
	}

	ctx.ArrayIndexInit()
	ctx.ArrayIndexSymbolic(ctx.ThreadIndexName)
	err = ctx.MoveArray(arrayName, result.Name)
	ctx.ArrayIndexCleanup()
	return err
}

// Yield emits a cooperative suspension point: the resumption label is
// saved into the thread state slot and control jumps to the scheduler
// loop, which re-enters at the label on the thread's next turn.
func (ctx *CompilationContext) Yield() {
	resume := ctx.newLabel()
	ctx.ISA.Remark("yield")
	ctx.ISA.Move16("#"+resume, threadStateSlot)
	ctx.ISA.Jump(schedulerLabel)
	ctx.ISA.Label(resume)
}
