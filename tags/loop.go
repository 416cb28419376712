package tags

import (
	"fmt"
	"io"
	"strings"

	"github.com/codingersid/liquidgo/lexer"
	"github.com/codingersid/liquidgo/parser"
	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/runtime"
	"github.com/codingersid/liquidgo/value"
)

// forSpec is the parsed head of a `for` or `tablerow` loop:
// `item in collection [reversed] [limit: n] [offset: n] [cols: n]`.
type forSpec struct {
	itemName       string
	collSrc        string
	coll           *value.Value
	reversed       bool
	limit          *int64
	offset         *int64
	offsetContinue bool
	cols           *int64
}

// collectionSourceText reconstructs the source text of the collection
// expression tokens, used only to build the `forloop.name` string
// (`"item-collection"`); path tokens (`.`, `[`, `]`) already carry their
// own punctuation so no separator is needed between them.
func collectionSourceText(tokens []lexer.Token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			switch t.Type {
			case lexer.TokenDot, lexer.TokenLBracket, lexer.TokenRBracket:
			default:
				if tokens[i-1].Type != lexer.TokenLBracket && tokens[i-1].Type != lexer.TokenDot {
					b.WriteByte(' ')
				}
			}
		}
		b.WriteString(t.Value)
	}
	return b.String()
}

func parseForSpec(tokens []lexer.Token, rt *runtime.Runtime, eng *render.Engine, wantCols bool) (*forSpec, error) {
	sub := parser.NewTokenParser(tokens)
	name, err := sub.ExpectIdentifier()
	if err != nil {
		return nil, err
	}
	if !sub.ConsumeIdentifier("in") {
		return nil, fmt.Errorf("expected %q in for/tablerow head", "in")
	}
	collStart := sub.Pos()
	collExpr, err := sub.ParseExpr()
	if err != nil {
		return nil, err
	}
	collSrc := collectionSourceText(tokens[collStart:sub.Pos()])
	collVal, err := eng.Eval(parser.FilteredExpr{Base: collExpr}, rt)
	if err != nil {
		return nil, err
	}

	spec := &forSpec{itemName: name, collSrc: collSrc, coll: collVal}
	for !sub.Done() {
		if sub.ConsumeIdentifier("reversed") {
			spec.reversed = true
			continue
		}
		if expr, ok, err := sub.ConsumeColonArg("limit"); err != nil {
			return nil, err
		} else if ok {
			v, err := eng.Eval(parser.FilteredExpr{Base: expr}, rt)
			if err != nil {
				return nil, err
			}
			i, _ := v.ToInteger()
			spec.limit = &i
			continue
		}
		if v, ok := sub.PeekIdentifierAt(0); ok && v == "offset" && sub.PeekTypeAt(1) == lexer.TokenColon {
			if v2, ok2 := sub.PeekIdentifierAt(2); ok2 && v2 == "continue" {
				sub.Advance()
				sub.Advance()
				sub.Advance()
				spec.offsetContinue = true
				continue
			}
		}
		if expr, ok, err := sub.ConsumeColonArg("offset"); err != nil {
			return nil, err
		} else if ok {
			v, err := eng.Eval(parser.FilteredExpr{Base: expr}, rt)
			if err != nil {
				return nil, err
			}
			i, _ := v.ToInteger()
			spec.offset = &i
			continue
		}
		if wantCols {
			if expr, ok, err := sub.ConsumeColonArg("cols"); err != nil {
				return nil, err
			} else if ok {
				v, err := eng.Eval(parser.FilteredExpr{Base: expr}, rt)
				if err != nil {
					return nil, err
				}
				i, _ := v.ToInteger()
				spec.cols = &i
				continue
			}
		}
		// Unrecognized trailing token: skip it rather than fail the whole
		// render over a modifier this implementation doesn't know yet.
		sub.Advance()
	}
	return spec, nil
}

// items returns the (possibly offset/limited/reversed) element slice a
// for/tablerow loop should iterate, per §4.4's documented application
// order: offset and limit apply to the source collection first, then
// reversed flips the resulting slice.
func (s *forSpec) items() []*value.Value {
	var elems []*value.Value
	if arr, ok := s.coll.AsArray(); ok {
		elems = arr
	} else if obj, ok := s.coll.AsObject(); ok {
		for _, k := range obj.Keys() {
			v, _ := obj.Get(k)
			pair := value.NewObject()
			pair.Set("0", value.String(k))
			pair.Set("1", v)
			elems = append(elems, value.ObjectValue(pair))
		}
	}
	start := 0
	if s.offset != nil && *s.offset > 0 {
		start = int(*s.offset)
		if start > len(elems) {
			start = len(elems)
		}
	}
	elems = elems[start:]
	if s.limit != nil && *s.limit >= 0 && int(*s.limit) < len(elems) {
		elems = elems[:*s.limit]
	}
	if s.reversed {
		out := make([]*value.Value, len(elems))
		for i, e := range elems {
			out[len(elems)-1-i] = e
		}
		return out
	}
	return elems
}

// forLoopObject builds the `forloop` helper object. name follows Liquid's
// documented `"item-collection"` form (§4.4): the loop variable name and
// the collection expression's source text, joined with a dash.
func forLoopObject(index, count int, name string) *value.Value {
	o := value.NewObject()
	o.Set("index", value.Integer(int64(index+1)))
	o.Set("index0", value.Integer(int64(index)))
	o.Set("rindex", value.Integer(int64(count-index)))
	o.Set("rindex0", value.Integer(int64(count-index-1)))
	o.Set("first", value.Bool(index == 0))
	o.Set("last", value.Bool(index == count-1))
	o.Set("length", value.Integer(int64(count)))
	o.Set("name", value.String(name))
	return value.ObjectValue(o)
}

func forBlock(w io.Writer, node *parser.BlockNode, rt *runtime.Runtime, eng *render.Engine) error {
	spec, err := parseForSpec(node.Args, rt, eng, false)
	if err != nil {
		return err
	}
	if spec.offsetContinue {
		resumed := rt.Registers.LoopOffset(spec.itemName)
		spec.offset = &resumed
	}
	items := spec.items()
	var consumed int64
	if spec.offset != nil && *spec.offset > 0 {
		consumed = *spec.offset
	}
	rt.Registers.SetLoopOffset(spec.itemName, consumed+int64(len(items)))
	if len(items) == 0 {
		for _, m := range node.Markers {
			if m.Name == "else" {
				return eng.RenderNodes(w, m.Body, rt)
			}
		}
		return nil
	}

	loopName := spec.itemName + "-" + spec.collSrc
	rt.Stack.Push()
	defer rt.Stack.Pop()
	for i, item := range items {
		rt.Stack.Set(spec.itemName, item)
		rt.Stack.Set("forloop", forLoopObject(i, len(items), loopName))
		if err := eng.RenderNodes(w, node.Body, rt); err != nil {
			return err
		}
		switch rt.Interrupt.Pending() {
		case runtime.InterruptBreak:
			rt.Interrupt.Clear()
			return nil
		case runtime.InterruptContinue:
			rt.Interrupt.Clear()
		}
	}
	return nil
}

func tablerowLoopObject(index, count, cols int) *value.Value {
	o := value.NewObject()
	col := index % cols
	o.Set("index", value.Integer(int64(index+1)))
	o.Set("index0", value.Integer(int64(index)))
	o.Set("col", value.Integer(int64(col+1)))
	o.Set("col0", value.Integer(int64(col)))
	o.Set("col_first", value.Bool(col == 0))
	o.Set("col_last", value.Bool(col == cols-1))
	o.Set("first", value.Bool(index == 0))
	o.Set("last", value.Bool(index == count-1))
	o.Set("length", value.Integer(int64(count)))
	return value.ObjectValue(o)
}

func tablerowBlock(w io.Writer, node *parser.BlockNode, rt *runtime.Runtime, eng *render.Engine) error {
	spec, err := parseForSpec(node.Args, rt, eng, true)
	if err != nil {
		return err
	}
	if spec.offsetContinue {
		resumed := rt.Registers.LoopOffset(spec.itemName)
		spec.offset = &resumed
	}
	items := spec.items()
	var consumed int64
	if spec.offset != nil && *spec.offset > 0 {
		consumed = *spec.offset
	}
	rt.Registers.SetLoopOffset(spec.itemName, consumed+int64(len(items)))
	cols := len(items)
	if spec.cols != nil && *spec.cols > 0 {
		cols = int(*spec.cols)
	}
	if cols <= 0 {
		cols = 1
	}

	rt.Stack.Push()
	defer rt.Stack.Pop()
	for i, item := range items {
		col := i % cols
		if col == 0 {
			fmt.Fprintf(w, `<tr class="row%d">`, i/cols+1)
		}
		fmt.Fprintf(w, `<td class="col%d">`, col+1)
		rt.Stack.Set(spec.itemName, item)
		rt.Stack.Set("tablerowloop", tablerowLoopObject(i, len(items), cols))
		if err := eng.RenderNodes(w, node.Body, rt); err != nil {
			return err
		}
		io.WriteString(w, "</td>")
		if col == cols-1 || i == len(items)-1 {
			io.WriteString(w, "</tr>")
		}
	}
	return nil
}

func breakTag(w io.Writer, node *parser.TagNode, rt *runtime.Runtime, eng *render.Engine) error {
	rt.Interrupt.Raise(runtime.InterruptBreak)
	return nil
}

func continueTag(w io.Writer, node *parser.TagNode, rt *runtime.Runtime, eng *render.Engine) error {
	rt.Interrupt.Raise(runtime.InterruptContinue)
	return nil
}
