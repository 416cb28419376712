package runtime

// Interrupt is a control-flow signal raised by `{% break %}`/`{% continue %}`
// that must unwind rendering up to (and be consumed by) the nearest
// enclosing `for`/`tablerow` block.
type Interrupt int

const (
	// NoInterrupt means rendering should continue normally.
	NoInterrupt Interrupt = iota
	InterruptBreak
	InterruptContinue
)

// InterruptState is a single-slot signal, set by `break`/`continue` and
// polled after every child Renderable by the block that's iterating.
// A single mutable slot (rather than a channel) is enough here: rendering
// is always sequential per §5, so there's never more than one interrupt
// in flight, and a struct field avoids the goroutine-lifetime bookkeeping
// a channel would otherwise demand for no benefit.
type InterruptState struct {
	current Interrupt
}

// Raise sets the pending interrupt.
func (s *InterruptState) Raise(i Interrupt) { s.current = i }

// Pending reports the current interrupt without clearing it.
func (s *InterruptState) Pending() Interrupt { return s.current }

// Clear resets the slot to NoInterrupt — called by the `for`/`tablerow`
// loop after it has consumed a Break or Continue so it doesn't leak to an
// enclosing loop.
func (s *InterruptState) Clear() { s.current = NoInterrupt }
