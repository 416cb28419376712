package value

// State is one of the four boolean predicates every ValueView answers
// through QueryState. See the engine's documentation for Truthy vs Default
// vs Empty vs Blank — they overlap but are not interchangeable: `if` and
// `{% unless %}` rely on Truthy, the `default` filter on DefaultValue.
type State int

const (
	// Truthy: everything is truthy except Nil and the boolean false.
	Truthy State = iota
	// DefaultValue: Nil, false, empty string/array/object. Drives the
	// `default` filter.
	DefaultValue
	// Empty: arrays/objects/strings of length zero. Scalars and Nil are
	// never Empty.
	Empty
	// Blank: Empty, plus whitespace-only strings, plus Nil and false.
	Blank
)

func (s State) String() string {
	switch s {
	case Truthy:
		return "truthy"
	case DefaultValue:
		return "default"
	case Empty:
		return "empty"
	case Blank:
		return "blank"
	default:
		return "state"
	}
}
