package value

// ValueView is the read-only surface every Value exposes, so a borrowed
// value (still owned by a parent scope) and a freshly-computed owned value
// can both sit behind a Cow. Runtime frames and filter inputs themselves
// are typed as *Value, not ValueView.
type ValueView interface {
	Kind() Kind
	TypeName() string
	IsNil() bool
	QueryState(State) bool
	Render() string
	Source() string
	ToKStr() string
	AsScalar() (*Value, bool)
	AsArray() ([]*Value, bool)
	AsObject() (*Object, bool)
	AsState() (State, bool)
	Copy() *Value
}

var _ ValueView = (*Value)(nil)

// Cow ("clone on write") borrows a ValueView without copying it, and only
// materializes an owned *Value when ToOwned is actually called. Path
// lookups and filter chains pass *Value directly and do not go through Cow.
type Cow struct {
	view  ValueView
	owned *Value
}

// Borrowed wraps an existing ValueView without copying.
func Borrowed(v ValueView) Cow { return Cow{view: v} }

// Owned wraps a Value the caller already owns outright.
func Owned(v *Value) Cow { return Cow{view: v, owned: v} }

// View returns the underlying ValueView, whichever way it was built.
func (c Cow) View() ValueView {
	if c.view == nil {
		return Nil
	}
	return c.view
}

// ToOwned materializes an independent *Value, copying only if the Cow was
// borrowed.
func (c Cow) ToOwned() *Value {
	if c.owned != nil {
		return c.owned
	}
	if c.view == nil {
		return NilValue()
	}
	return c.view.Copy()
}

// IsOwned reports whether ToOwned would be a no-op copy-avoiding return.
func (c Cow) IsOwned() bool { return c.owned != nil }
