// Package value implements the Liquid data model: a dynamic, JSON-like
// value tree with a strict scalar taxonomy, the truthy/default/empty/blank
// state predicates, path-based traversal, and a borrowed-or-owned view
// abstraction so rendering rarely needs to copy data.
//
// The shape mirrors the teacher's object.Object interface
// (Type()/Inspect()) from the interpreter it was adapted from, widened to
// cover arrays, insertion-ordered objects, a civil date and an
// offset-aware datetime, and the four state queries §3 requires.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind tags the shape a Value holds.
type Kind int

const (
	KindNil Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindDate
	KindDateTime
	KindString
	KindArray
	KindObject
	KindState
)

// TypeName returns the §3 type_name string for a Kind.
func (k Kind) TypeName() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindDateTime:
		return "date_time"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindState:
		return "state"
	default:
		return "nil"
	}
}

// Date is a civil calendar date with no time-of-day component.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) Equal(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) ToTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Value is the owned, JSON-like tagged variant described in §3. It is a
// concrete sum type rather than a deep interface hierarchy: the scalar
// taxonomy is closed, and a flat struct keeps path lookup and filter
// dispatch allocation-free for the common scalar cases.
type Value struct {
	kind  Kind
	i     int64
	f     float64
	b     bool
	date  Date
	dt    time.Time
	s     string
	arr   []*Value
	obj   *Object
	state State
}

// Nil is the shared empty-value sentinel.
var Nil = &Value{kind: KindNil}

// NilValue constructs a fresh Nil-kind value (equal in behavior to Nil).
func NilValue() *Value { return &Value{kind: KindNil} }

func Integer(i int64) *Value         { return &Value{kind: KindInteger, i: i} }
func Float(f float64) *Value         { return &Value{kind: KindFloat, f: f} }
func Bool(b bool) *Value             { return &Value{kind: KindBoolean, b: b} }
func String(s string) *Value         { return &Value{kind: KindString, s: s} }
func DateValue(d Date) *Value        { return &Value{kind: KindDate, date: d} }
func DateTimeValue(t time.Time) *Value { return &Value{kind: KindDateTime, dt: t} }
func StateValue(s State) *Value      { return &Value{kind: KindState, state: s} }

// Array builds an owned Array value from already-owned elements.
func Array(elems []*Value) *Value {
	if elems == nil {
		elems = []*Value{}
	}
	return &Value{kind: KindArray, arr: elems}
}

// ObjectValue wraps an *Object as an owned Value.
func ObjectValue(o *Object) *Value {
	if o == nil {
		o = NewObject()
	}
	return &Value{kind: KindObject, obj: o}
}

// Kind reports the concrete shape held by v.
func (v *Value) Kind() Kind { return v.kind }

// TypeName implements ValueView.
func (v *Value) TypeName() string { return v.kind.TypeName() }

// IsNil implements ValueView.
func (v *Value) IsNil() bool { return v == nil || v.kind == KindNil }

// AsScalar returns (self, true) if v holds a scalar kind.
func (v *Value) AsScalar() (*Value, bool) {
	switch v.kind {
	case KindInteger, KindFloat, KindBoolean, KindDate, KindDateTime, KindString:
		return v, true
	default:
		return nil, false
	}
}

// AsArray returns the element slice if v is an Array.
func (v *Value) AsArray() ([]*Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the *Object if v is an Object.
func (v *Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// AsDateTime returns the underlying time.Time if v holds a DateTime,
// or the midnight-UTC instant of a Date, letting callers (e.g. the `date`
// filter) extract hour/minute/second uniformly across both kinds.
func (v *Value) AsDateTime() (time.Time, bool) {
	switch v.kind {
	case KindDateTime:
		return v.dt, true
	case KindDate:
		return v.date.ToTime(), true
	default:
		return time.Time{}, false
	}
}

// AsState returns the sentinel State if v is a State value.
func (v *Value) AsState() (State, bool) {
	if v.kind != KindState {
		return 0, false
	}
	return v.state, true
}

// QueryState answers one of the four state predicates. Total for every
// Value, per §3's invariant.
func (v *Value) QueryState(s State) bool {
	switch s {
	case Truthy:
		return !(v.IsNil() || (v.kind == KindBoolean && !v.b))
	case DefaultValue:
		if v.IsNil() {
			return true
		}
		switch v.kind {
		case KindBoolean:
			return !v.b
		case KindString:
			return v.s == ""
		case KindArray:
			return len(v.arr) == 0
		case KindObject:
			return v.obj.Len() == 0
		default:
			return false
		}
	case Empty:
		switch v.kind {
		case KindString:
			return v.s == ""
		case KindArray:
			return len(v.arr) == 0
		case KindObject:
			return v.obj.Len() == 0
		default:
			return false
		}
	case Blank:
		if v.IsNil() {
			return true
		}
		switch v.kind {
		case KindBoolean:
			return !v.b
		case KindString:
			return strings.TrimSpace(v.s) == ""
		case KindArray:
			return len(v.arr) == 0
		case KindObject:
			return v.obj.Len() == 0
		default:
			return false
		}
	default:
		return false
	}
}

// Equal implements Liquid value equality: Nil == Nil, Nil == false, scalars
// compare by value and kind-compatible numeric promotion, arrays/objects
// compare structurally in order.
func Equal(a, b *Value) bool {
	if a == nil {
		a = Nil
	}
	if b == nil {
		b = Nil
	}
	if a.IsNil() && b.IsNil() {
		return true
	}
	if a.IsNil() {
		return b.kind == KindBoolean && !b.b
	}
	if b.IsNil() {
		return a.kind == KindBoolean && !a.b
	}
	switch {
	case a.kind == KindInteger && b.kind == KindInteger:
		return a.i == b.i
	case isNumeric(a) && isNumeric(b):
		return numericOf(a) == numericOf(b)
	case a.kind == KindBoolean && b.kind == KindBoolean:
		return a.b == b.b
	case a.kind == KindString && b.kind == KindString:
		return a.s == b.s
	case a.kind == KindDate && b.kind == KindDate:
		return a.date.Equal(b.date)
	case a.kind == KindDateTime && b.kind == KindDateTime:
		return a.dt.Equal(b.dt)
	case a.kind == KindArray && b.kind == KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case a.kind == KindObject && b.kind == KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for _, k := range a.obj.Keys() {
			av, _ := a.obj.Get(k)
			bv, ok := b.obj.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNumeric(v *Value) bool { return v.kind == KindInteger || v.kind == KindFloat }

func numericOf(v *Value) float64 {
	if v.kind == KindInteger {
		return float64(v.i)
	}
	return v.f
}

// Compare implements the relational operators (<, <=, >, >=): numerics vs
// numerics, dates vs dates (same kind), strings vs strings lexicographic.
// The second return is false when the operands are not comparable, in
// which case the comparison atom is simply false per §4.4.
func Compare(a, b *Value) (cmp int, ok bool) {
	switch {
	case isNumeric(a) && isNumeric(b):
		af, bf := numericOf(a), numericOf(b)
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	case a.kind == KindString && b.kind == KindString:
		return strings.Compare(a.s, b.s), true
	case a.kind == KindDate && b.kind == KindDate:
		switch {
		case a.date.Before(b.date):
			return -1, true
		case b.date.Before(a.date):
			return 1, true
		default:
			return 0, true
		}
	case a.kind == KindDateTime && b.kind == KindDateTime:
		switch {
		case a.dt.Before(b.dt):
			return -1, true
		case a.dt.After(b.dt):
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// ToInteger coerces v per §3: integers pass through, floats fail, numeric
// strings succeed, everything else fails.
func (v *Value) ToInteger() (int64, bool) {
	switch v.kind {
	case KindInteger:
		return v.i, true
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// ToFloat coerces v per §3: integers and floats convert, parseable
// strings succeed.
func (v *Value) ToFloat() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ToBool coerces v per §3: only booleans succeed.
func (v *Value) ToBool() (bool, bool) {
	if v.kind == KindBoolean {
		return v.b, true
	}
	return false, false
}

var dateLayouts = []string{"2 January 2006", "2 Jan 2006", "2006-01-02"}

// ToDate coerces v per §3: dates pass through; strings matching one of
// "%d %B %Y", "%d %b %Y", "%Y-%m-%d", or the literal "today" succeed.
// today is resolved against the caller-supplied reference time, since the
// engine has no ambient clock beyond this one helper.
func (v *Value) ToDate(today time.Time) (Date, bool) {
	switch v.kind {
	case KindDate:
		return v.date, true
	case KindDateTime:
		y, m, d := v.dt.Date()
		return Date{Year: y, Month: int(m), Day: d}, true
	case KindString:
		s := strings.TrimSpace(v.s)
		if s == "today" {
			y, m, d := today.Date()
			return Date{Year: y, Month: int(m), Day: d}, true
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				y, m, d := t.Date()
				return Date{Year: y, Month: int(m), Day: d}, true
			}
		}
		return Date{}, false
	default:
		return Date{}, false
	}
}

// ToKStr always succeeds; it is the interned-string form used internally
// for object keys and for comparing against literal strings.
func (v *Value) ToKStr() string {
	return v.Render()
}

// Render produces the user-visible rendered text per §6.
func (v *Value) Render() string {
	switch v.kind {
	case KindNil:
		return ""
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindDate:
		return v.date.String()
	case KindDateTime:
		return v.dt.Format("2006-01-02 15:04:05 -0700")
	case KindString:
		return v.s
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.Render()
		}
		return strings.Join(parts, ", ")
	case KindObject:
		var b strings.Builder
		for _, k := range v.obj.Keys() {
			val, _ := v.obj.Get(k)
			b.WriteString(k)
			b.WriteString(val.Render())
		}
		return b.String()
	case KindState:
		return ""
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Source produces the Liquid-literal form: quoted strings with
// backslash-escaped interior quotes, everything else as Render.
func (v *Value) Source() string {
	if v.kind == KindString {
		escaped := strings.ReplaceAll(v.s, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		return `"` + escaped + `"`
	}
	return v.Render()
}

// Copy returns a deep, independent copy of v.
func (v *Value) Copy() *Value {
	switch v.kind {
	case KindArray:
		elems := make([]*Value, len(v.arr))
		for i, e := range v.arr {
			elems[i] = e.Copy()
		}
		return Array(elems)
	case KindObject:
		return ObjectValue(v.obj.Copy())
	default:
		cp := *v
		return &cp
	}
}
