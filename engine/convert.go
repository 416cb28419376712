package engine

import (
	"sort"
	"time"

	"github.com/codingersid/liquidgo/value"
)

// FromInterface converts a plain Go value — the shape encoding/json and
// gopkg.in/yaml.v3 hand back from Unmarshal into interface{}, or anything
// an embedder builds by hand — into the value package's tree, so callers
// never have to construct *value.Value/*value.Object by hand just to seed
// a render's root data.
//
// Grounded in the teacher's Render(w, name string, data interface{})
// signature (engine/engine.go): the teacher hands data straight to
// html/template, which does its own reflection; here the conversion is
// explicit since value.Value is a closed, non-reflective kind set.
func FromInterface(v interface{}) *value.Value {
	switch t := v.(type) {
	case nil:
		return value.NilValue()
	case *value.Value:
		if t == nil {
			return value.NilValue()
		}
		return t
	case bool:
		return value.Bool(t)
	case string:
		return value.String(t)
	case int:
		return value.Integer(int64(t))
	case int8:
		return value.Integer(int64(t))
	case int16:
		return value.Integer(int64(t))
	case int32:
		return value.Integer(int64(t))
	case int64:
		return value.Integer(t)
	case uint:
		return value.Integer(int64(t))
	case uint8:
		return value.Integer(int64(t))
	case uint16:
		return value.Integer(int64(t))
	case uint32:
		return value.Integer(int64(t))
	case uint64:
		return value.Integer(int64(t))
	case float32:
		return floatOrInteger(float64(t))
	case float64:
		return floatOrInteger(t)
	case time.Time:
		return value.DateTimeValue(t)
	case []interface{}:
		elems := make([]*value.Value, len(t))
		for i, e := range t {
			elems[i] = FromInterface(e)
		}
		return value.Array(elems)
	case []string:
		elems := make([]*value.Value, len(t))
		for i, e := range t {
			elems[i] = value.String(e)
		}
		return value.Array(elems)
	case map[string]interface{}:
		obj := value.NewObject()
		for _, k := range stringKeysInOrder(t) {
			obj.Set(k, FromInterface(t[k]))
		}
		return value.ObjectValue(obj)
	case map[interface{}]interface{}:
		// yaml.v2-shaped maps; yaml.v3 already decodes to
		// map[string]interface{} but a hand-built context can still
		// arrive this way.
		obj := value.NewObject()
		for k, val := range t {
			obj.Set(value.String(interfaceToString(k)).ToKStr(), FromInterface(val))
		}
		return value.ObjectValue(obj)
	default:
		return value.NilValue()
	}
}

// floatOrInteger preserves JSON/YAML whole-number floats as Integer
// values so `{% if count == 3 %}`-style comparisons against an integer
// literal succeed the way a human author of the context document expects,
// per §3's integer/float coercion rules.
func floatOrInteger(f float64) *value.Value {
	if f == float64(int64(f)) {
		return value.Integer(int64(f))
	}
	return value.Float(f)
}

func interfaceToString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return FromInterface(v).ToKStr()
}

// stringKeysInOrder has no stable source order to preserve (Go map
// iteration is randomized), so it sorts keys — deterministic output beats
// an order nobody could have relied on anyway.
func stringKeysInOrder(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
