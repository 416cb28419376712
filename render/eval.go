package render

import (
	"strconv"
	"strings"

	"github.com/codingersid/liquidgo/liquiderr"
	"github.com/codingersid/liquidgo/parser"
	"github.com/codingersid/liquidgo/runtime"
	"github.com/codingersid/liquidgo/value"
)

// Eval evaluates a parsed expression to a concrete *value.Value against
// rt's current scope, applying any piped filters in order.
func (e *Engine) Eval(fe parser.FilteredExpr, rt *runtime.Runtime) (*value.Value, error) {
	v, err := e.evalExpr(fe.Base, rt)
	if err != nil {
		return nil, err
	}
	for _, f := range fe.Filters {
		v, err = e.applyFilter(f, v, rt)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (e *Engine) evalExpr(expr parser.Expr, rt *runtime.Runtime) (*value.Value, error) {
	switch n := expr.(type) {
	case *parser.Literal:
		return n.Value, nil
	case *parser.Variable:
		return e.evalVariable(n, rt)
	case *parser.RangeExpr:
		return e.evalRange(n, rt)
	case *parser.Binary:
		return e.evalBinary(n, rt)
	case *parser.FilteredExpr:
		return e.Eval(*n, rt)
	default:
		return nil, liquiderr.New(liquiderr.KindCustom, "unevaluatable expression %T", expr)
	}
}

func (e *Engine) evalVariable(v *parser.Variable, rt *runtime.Runtime) (*value.Value, error) {
	cur, ok := rt.Stack.Get(v.Name)
	if !ok {
		return nil, liquiderr.UnknownVariable(v.Name, rt.Stack.AvailableNames())
	}
	path := v.Name
	for _, seg := range v.Path {
		step, stepDesc, err := e.resolveSeg(seg, rt)
		if err != nil {
			return nil, err
		}
		next, ok := value.ResolveStep(cur, step)
		if !ok {
			return nil, liquiderr.UnknownIndex(path, stepDesc, value.AvailableKeys(cur))
		}
		cur = next
		path += stepDesc
	}
	return cur, nil
}

func (e *Engine) resolveSeg(seg parser.PathSeg, rt *runtime.Runtime) (value.Step, string, error) {
	if seg.IsStatic {
		if seg.Static.IsIndex {
			return seg.Static, "[" + strconv.FormatInt(seg.Static.Index, 10) + "]", nil
		}
		return seg.Static, "." + seg.Static.Key, nil
	}
	keyVal, err := e.evalExpr(seg.Dynamic, rt)
	if err != nil {
		return value.Step{}, "", err
	}
	if i, ok := keyVal.ToInteger(); ok {
		return value.IndexStep(i), "[" + strconv.FormatInt(i, 10) + "]", nil
	}
	k := keyVal.ToKStr()
	return value.KeyStep(k), "[" + k + "]", nil
}

func (e *Engine) evalRange(r *parser.RangeExpr, rt *runtime.Runtime) (*value.Value, error) {
	startV, err := e.evalExpr(r.Start, rt)
	if err != nil {
		return nil, err
	}
	endV, err := e.evalExpr(r.End, rt)
	if err != nil {
		return nil, err
	}
	start, ok := startV.ToInteger()
	if !ok {
		return nil, liquiderr.New(liquiderr.KindCustom, "range start %q is not an integer", startV.Render())
	}
	end, ok := endV.ToInteger()
	if !ok {
		return nil, liquiderr.New(liquiderr.KindCustom, "range end %q is not an integer", endV.Render())
	}
	if end < start {
		return value.Array(nil), nil
	}
	elems := make([]*value.Value, 0, end-start+1)
	for i := start; i <= end; i++ {
		elems = append(elems, value.Integer(i))
	}
	return value.Array(elems), nil
}

func (e *Engine) evalBinary(b *parser.Binary, rt *runtime.Runtime) (*value.Value, error) {
	switch b.Op {
	case parser.OpAnd:
		left, err := e.evalExpr(b.Left, rt)
		if err != nil {
			return nil, err
		}
		if !left.QueryState(value.Truthy) {
			return value.Bool(false), nil
		}
		right, err := e.evalExpr(b.Right, rt)
		if err != nil {
			return nil, err
		}
		return value.Bool(right.QueryState(value.Truthy)), nil
	case parser.OpOr:
		left, err := e.evalExpr(b.Left, rt)
		if err != nil {
			return nil, err
		}
		if left.QueryState(value.Truthy) {
			return value.Bool(true), nil
		}
		right, err := e.evalExpr(b.Right, rt)
		if err != nil {
			return nil, err
		}
		return value.Bool(right.QueryState(value.Truthy)), nil
	}

	left, err := e.evalExpr(b.Left, rt)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(b.Right, rt)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case parser.OpEq:
		return value.Bool(value.Equal(left, right)), nil
	case parser.OpNe:
		return value.Bool(!value.Equal(left, right)), nil
	case parser.OpLt, parser.OpLe, parser.OpGt, parser.OpGe:
		cmp, ok := value.Compare(left, right)
		if !ok {
			return value.Bool(false), nil
		}
		switch b.Op {
		case parser.OpLt:
			return value.Bool(cmp < 0), nil
		case parser.OpLe:
			return value.Bool(cmp <= 0), nil
		case parser.OpGt:
			return value.Bool(cmp > 0), nil
		default:
			return value.Bool(cmp >= 0), nil
		}
	case parser.OpContains:
		return value.Bool(containsValue(left, right)), nil
	default:
		return nil, liquiderr.New(liquiderr.KindCustom, "unknown operator")
	}
}

func containsValue(haystack, needle *value.Value) bool {
	if haystack.Kind() == value.KindString {
		s, _ := haystack.AsScalar()
		if needle.Kind() != value.KindString {
			return false
		}
		n, _ := needle.AsScalar()
		return strings.Contains(s.Render(), n.Render())
	}
	if arr, ok := haystack.AsArray(); ok {
		for _, elem := range arr {
			if value.Equal(elem, needle) {
				return true
			}
		}
		return false
	}
	if obj, ok := haystack.AsObject(); ok {
		if needle.Kind() != value.KindString {
			return false
		}
		n, _ := needle.AsScalar()
		_, ok := obj.Get(n.Render())
		return ok
	}
	return false
}

func (e *Engine) applyFilter(f parser.FilterCall, input *value.Value, rt *runtime.Runtime) (*value.Value, error) {
	fn, ok := e.Filters[f.Name]
	if !ok {
		return nil, liquiderr.New(liquiderr.KindFilterError, "unknown filter %q", f.Name)
	}
	args := make([]FilterArg, 0, len(f.Args))
	var argDesc []string
	for _, a := range f.Args {
		v, err := e.evalExpr(a.Value, rt)
		if err != nil {
			return nil, err
		}
		args = append(args, FilterArg{Name: a.Name, Value: v})
		if a.Name != "" {
			argDesc = append(argDesc, a.Name+": "+v.Source())
		} else {
			argDesc = append(argDesc, v.Source())
		}
	}
	result, err := fn(input, args)
	if err != nil {
		return nil, liquiderr.FilterError(f.Name, err, input.Render(), strings.Join(argDesc, ", "))
	}
	return result, nil
}
