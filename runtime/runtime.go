package runtime

import "github.com/codingersid/liquidgo/value"

// Runtime bundles everything render.Engine.Render threads through the
// walk of a parsed tree: the scope stack, the register side-table, the
// pending-interrupt slot, the active partial source, and the name of the
// partial currently executing (used for error-trace context).
type Runtime struct {
	Stack       *Stack
	Registers   *Registers
	Interrupt   InterruptState
	Partials    PartialSource
	PartialName string
	Today       func() (year, month, day int)
}

// New builds a Runtime ready to render a top-level template against root.
func New(root *value.Object, partials PartialSource) *Runtime {
	return &Runtime{
		Stack:     NewStack(root),
		Registers: NewRegisters(),
		Partials:  partials,
	}
}

// ForPartial returns a Runtime for a `{% render %}`-style isolated call:
// a fresh Stack (no visibility into the caller's scope) sharing this
// Runtime's Registers and Partials, since cycle/ifchanged state and the
// partial catalog are render-wide, not scope-local.
func (r *Runtime) ForPartial(root *value.Object, name string) *Runtime {
	return &Runtime{
		Stack:       Fork(root),
		Registers:   r.Registers,
		Partials:    r.Partials,
		PartialName: name,
		Today:       r.Today,
	}
}
