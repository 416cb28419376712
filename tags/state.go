package tags

import (
	"fmt"
	"io"
	"strconv"

	"github.com/codingersid/liquidgo/lexer"
	"github.com/codingersid/liquidgo/parser"
	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/runtime"
	"github.com/codingersid/liquidgo/value"
)

// assignTag implements `{% assign name = expr | filters %}`, always binding
// into the root frame so the new variable is visible for the rest of the
// render regardless of how deep the current scope stack is.
func assignTag(w io.Writer, node *parser.TagNode, rt *runtime.Runtime, eng *render.Engine) error {
	sub := parser.NewTokenParser(node.Args)
	name, err := sub.ExpectIdentifier()
	if err != nil {
		return err
	}
	if !sub.ConsumeType(lexer.TokenAssign) {
		return fmt.Errorf("assign: expected '=' after variable name")
	}
	fe, err := sub.ParseFilteredExpr()
	if err != nil {
		return err
	}
	v, err := eng.Eval(*fe, rt)
	if err != nil {
		return err
	}
	rt.Stack.SetGlobal(name, v)
	return nil
}

func captureBlock(w io.Writer, node *parser.BlockNode, rt *runtime.Runtime, eng *render.Engine) error {
	sub := parser.NewTokenParser(node.Args)
	name, err := sub.ExpectIdentifier()
	if err != nil {
		return err
	}
	s, err := eng.RenderToString(node.Body, rt)
	if err != nil {
		return err
	}
	rt.Stack.SetGlobal(name, value.String(s))
	return nil
}

// ifchangedBlock renders its body and only writes it out when it differs
// from the last rendering of this same block, tracked per node identity in
// the shared Registers.
func ifchangedBlock(w io.Writer, node *parser.BlockNode, rt *runtime.Runtime, eng *render.Engine) error {
	s, err := eng.RenderToString(node.Body, rt)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%p", node)
	if last, ok := rt.Registers.LastIfchanged(key); ok && last == s {
		return nil
	}
	rt.Registers.SetIfchanged(key, s)
	_, err = io.WriteString(w, s)
	return err
}

// cycleTag implements `{% cycle ["group":] val1, val2, ... %}`, advancing a
// per-group counter each call and rendering the value at that position. The
// group key defaults to the raw source of the value list itself, matching
// the common Liquid behavior of treating identical cycle calls as sharing
// state even without an explicit group name.
func cycleTag(w io.Writer, node *parser.TagNode, rt *runtime.Runtime, eng *render.Engine) error {
	sub := parser.NewTokenParser(node.Args)
	group := sourceText(node.Args)
	if sub.PeekTypeAt(1) == lexer.TokenColon {
		expr, err := sub.ParseExpr()
		if err != nil {
			return err
		}
		sub.ConsumeType(lexer.TokenColon)
		gv, err := eng.Eval(parser.FilteredExpr{Base: expr}, rt)
		if err != nil {
			return err
		}
		group = gv.ToKStr()
	}

	var exprs []parser.Expr
	for {
		e, err := sub.ParseExpr()
		if err != nil {
			return err
		}
		exprs = append(exprs, e)
		if !sub.ConsumeType(lexer.TokenComma) {
			break
		}
	}
	if len(exprs) == 0 {
		return nil
	}
	idx := rt.Registers.NextCycleIndex(group, len(exprs))
	v, err := eng.Eval(parser.FilteredExpr{Base: exprs[idx]}, rt)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, v.Render())
	return err
}

func incrementTag(w io.Writer, node *parser.TagNode, rt *runtime.Runtime, eng *render.Engine) error {
	sub := parser.NewTokenParser(node.Args)
	name, err := sub.ExpectIdentifier()
	if err != nil {
		return err
	}
	v := rt.Registers.Increment(name)
	_, err = io.WriteString(w, strconv.FormatInt(v, 10))
	return err
}

func decrementTag(w io.Writer, node *parser.TagNode, rt *runtime.Runtime, eng *render.Engine) error {
	sub := parser.NewTokenParser(node.Args)
	name, err := sub.ExpectIdentifier()
	if err != nil {
		return err
	}
	v := rt.Registers.Decrement(name)
	_, err = io.WriteString(w, strconv.FormatInt(v, 10))
	return err
}
