package value

// Step is one element of a Path: either an object key (Key set, IsIndex
// false) or an array index (Index set, IsIndex true). Indices may be
// negative, resolved against the array length at lookup time per §3.
type Step struct {
	Key     string
	Index   int64
	IsIndex bool
}

// KeyStep builds an object-key Step.
func KeyStep(key string) Step { return Step{Key: key} }

// IndexStep builds an array-index Step.
func IndexStep(i int64) Step { return Step{Index: i, IsIndex: true} }

// Path is an ordered, non-empty sequence of Steps describing a traversal
// from some root Value.
type Path []Step

// Lookup walks path starting at root, returning the final Value and
// whether every step resolved. A missing step (unknown key, out-of-range
// index, or indexing into a scalar) reports ok=false; callers turn that
// into an UnknownVariable/UnknownIndex error with the partial path that
// did resolve.
func Lookup(root *Value, path Path) (*Value, bool) {
	cur := root
	for _, step := range path {
		next, ok := step1(cur, step)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// ResolveStep applies a single Step to cur. Exported so callers that need
// to resolve a path one segment at a time — e.g. the runtime evaluator,
// when a bracket segment's key is itself a dynamic expression rather than
// a literal known at parse time — can reuse the same key/index rules as
// Lookup without building a full static Path.
func ResolveStep(cur *Value, step Step) (*Value, bool) {
	return step1(cur, step)
}

func step1(cur *Value, step Step) (*Value, bool) {
	if step.IsIndex {
		arr, ok := cur.AsArray()
		if !ok {
			return nil, false
		}
		return indexArray(arr, step.Index)
	}
	switch step.Key {
	case "size":
		switch cur.kind {
		case KindArray:
			return Integer(int64(len(cur.arr))), true
		case KindObject:
			return Integer(int64(cur.obj.Len())), true
		case KindString:
			return Integer(int64(len([]rune(cur.s)))), true
		}
	case "first":
		if arr, ok := cur.AsArray(); ok {
			return indexArray(arr, 0)
		}
	case "last":
		if arr, ok := cur.AsArray(); ok {
			return indexArray(arr, -1)
		}
	}
	if obj, ok := cur.AsObject(); ok {
		return obj.Get(step.Key)
	}
	return nil, false
}

// indexArray resolves a possibly-negative index against arr per §3:
// -len(a) <= i < len(a) maps to a[(i+len(a)) mod len(a)], otherwise miss.
func indexArray(arr []*Value, i int64) (*Value, bool) {
	n := int64(len(arr))
	if n == 0 {
		return nil, false
	}
	if i < -n || i >= n {
		return nil, false
	}
	if i < 0 {
		i += n
	}
	return arr[i], true
}

// AvailableKeys returns the object keys or the "first, last, size" index
// hints used when building an UnknownIndex error's "available" context.
func AvailableKeys(cur *Value) []string {
	switch cur.kind {
	case KindObject:
		return cur.obj.Keys()
	case KindArray:
		return []string{"first", "last", "size"}
	default:
		return nil
	}
}
