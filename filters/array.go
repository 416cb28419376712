package filters

import (
	"sort"
	"strings"

	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/value"
)

func toArray(v *value.Value) []*value.Value {
	if arr, ok := v.AsArray(); ok {
		return arr
	}
	return nil
}

func joinFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	sep := argString(args, 0, " ")
	elems := toArray(input)
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.Render()
	}
	return value.String(strings.Join(parts, sep)), nil
}

func firstFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	elems := toArray(input)
	if len(elems) == 0 {
		return value.NilValue(), nil
	}
	return elems[0], nil
}

func lastFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	elems := toArray(input)
	if len(elems) == 0 {
		return value.NilValue(), nil
	}
	return elems[len(elems)-1], nil
}

func concatFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	a := toArray(input)
	var b []*value.Value
	if v, ok := arg(args, 0); ok {
		b = toArray(v)
	}
	out := make([]*value.Value, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return value.Array(out), nil
}

func reverseFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	elems := toArray(input)
	out := make([]*value.Value, len(elems))
	for i, e := range elems {
		out[len(elems)-1-i] = e
	}
	return value.Array(out), nil
}

// propertyOf returns v[key] for object elements, falling back to v itself
// when key is empty — the shared lookup sort/map/where all need.
func propertyOf(v *value.Value, key string) *value.Value {
	if key == "" {
		return v
	}
	if obj, ok := v.AsObject(); ok {
		if pv, ok := obj.Get(key); ok {
			return pv
		}
	}
	return value.Nil
}

// sortFilter is a stable sort by natural string comparison of the
// (optionally keyed) values, matching §4.5's "stable, natural string
// comparison" contract.
func sortFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	key := argString(args, 0, "")
	elems := append([]*value.Value(nil), toArray(input)...)
	sort.SliceStable(elems, func(i, j int) bool {
		return propertyOf(elems[i], key).Render() < propertyOf(elems[j], key).Render()
	})
	return value.Array(elems), nil
}

// sortNaturalFilter behaves like sortFilter but case-insensitively, the
// distinction Shopify's `sort_natural` draws against plain `sort`.
func sortNaturalFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	key := argString(args, 0, "")
	elems := append([]*value.Value(nil), toArray(input)...)
	sort.SliceStable(elems, func(i, j int) bool {
		return strings.ToLower(propertyOf(elems[i], key).Render()) < strings.ToLower(propertyOf(elems[j], key).Render())
	})
	return value.Array(elems), nil
}

func uniqFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	key := argString(args, 0, "")
	elems := toArray(input)
	seen := make(map[string]bool)
	out := make([]*value.Value, 0, len(elems))
	for _, e := range elems {
		k := propertyOf(e, key).Render()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return value.Array(out), nil
}

func mapFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	key := argString(args, 0, "")
	elems := toArray(input)
	out := make([]*value.Value, len(elems))
	for i, e := range elems {
		out[i] = propertyOf(e, key)
	}
	return value.Array(out), nil
}

// whereFilter keeps elements whose key property is truthy (one-arg form)
// or equal to the given value (two-arg form).
func whereFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	key := argString(args, 0, "")
	want, hasWant := arg(args, 1)
	elems := toArray(input)
	var out []*value.Value
	for _, e := range elems {
		pv := propertyOf(e, key)
		if hasWant {
			if value.Equal(pv, want) {
				out = append(out, e)
			}
			continue
		}
		if pv.QueryState(value.Truthy) {
			out = append(out, e)
		}
	}
	return value.Array(out), nil
}

// compactFilter removes Nil elements (or elements whose key property is
// Nil, for the keyed form).
func compactFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	key := argString(args, 0, "")
	elems := toArray(input)
	var out []*value.Value
	for _, e := range elems {
		if propertyOf(e, key).IsNil() {
			continue
		}
		out = append(out, e)
	}
	return value.Array(out), nil
}
