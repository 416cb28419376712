package value

// Object is an insertion-ordered string-keyed map, mirroring the §3
// requirement that object key order is observable (iteration, rendering)
// and stable across re-assignment of an existing key.
type Object struct {
	keys []string
	vals map[string]*Value
}

// NewObject returns an empty Object ready for Set calls.
func NewObject() *Object {
	return &Object{vals: make(map[string]*Value)}
}

// Set assigns key to val. A first assignment appends key to the
// insertion order; re-assigning an existing key leaves its position
// unchanged.
func (o *Object) Set(key string, val *Value) {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = val
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (*Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Delete removes key, if present, from both the map and the order slice.
func (o *Object) Delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. Callers must not mutate the
// returned slice.
func (o *Object) Keys() []string { return o.keys }

// Values returns the values in the same order as Keys.
func (o *Object) Values() []*Value {
	out := make([]*Value, len(o.keys))
	for i, k := range o.keys {
		out[i] = o.vals[k]
	}
	return out
}

// Len reports the number of entries.
func (o *Object) Len() int { return len(o.keys) }

// Copy returns a deep, independent copy of o.
func (o *Object) Copy() *Object {
	cp := NewObject()
	for _, k := range o.keys {
		cp.Set(k, o.vals[k].Copy())
	}
	return cp
}
