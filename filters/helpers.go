// Package filters implements the built-in filter set from §4.5: string,
// HTML, URL, array, math, date, and default filters, plus an opt-in Jekyll
// family. Each filter is a render.FilterFunc registered by name into a
// render.Engine via AddStandardFilters (and AddJekyllFilters for the
// extension set).
//
// Grounded on the teacher's template-function catalog (the built-in
// `html/template` FuncMap entries the compiler wires in for Blade's `{{ }}`
// pipe syntax) generalized from Go values to the engine's own value.Value,
// and on cobalt-org/liquid-rust's `src/filters/std/*.rs` for exact
// per-filter edge-case behavior (truncate suffix handling, escape_once's
// already-escaped-entity skip, slice's negative-start wraparound).
package filters

import (
	"fmt"
	"time"

	"github.com/codingersid/liquidgo/liquiderr"
	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/value"
)

func arg(args []render.FilterArg, i int) (*value.Value, bool) {
	pos := 0
	for _, a := range args {
		if a.Name != "" {
			continue
		}
		if pos == i {
			return a.Value, true
		}
		pos++
	}
	return nil, false
}

func kwarg(args []render.FilterArg, name string) (*value.Value, bool) {
	for _, a := range args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

func argString(args []render.FilterArg, i int, def string) string {
	if v, ok := arg(args, i); ok {
		return v.Render()
	}
	return def
}

func argInt(args []render.FilterArg, i int, def int64) int64 {
	if v, ok := arg(args, i); ok {
		if n, ok := v.ToInteger(); ok {
			return n
		}
		if f, ok := v.ToFloat(); ok {
			return int64(f)
		}
	}
	return def
}

func argsString(args []render.FilterArg) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		if a.Name != "" {
			s += a.Name + ": "
		}
		s += a.Value.Render()
	}
	return s
}

func ferr(name string, input *value.Value, args []render.FilterArg, cause error) error {
	return liquiderr.FilterError(name, cause, input.Render(), argsString(args))
}

func fail(name string, input *value.Value, args []render.FilterArg, format string, a ...interface{}) error {
	return ferr(name, input, args, fmt.Errorf(format, a...))
}

// bothIntCoerce reports whether a and b both coerce to integer, the rule
// §4.5's math family dispatch is keyed on.
func bothIntCoerce(a, b *value.Value) (int64, int64, bool) {
	ai, aok := a.ToInteger()
	bi, bok := b.ToInteger()
	if aok && bok {
		return ai, bi, true
	}
	return 0, 0, false
}

func todayRef() time.Time {
	return time.Now().UTC()
}
