package tags

import (
	"io"

	"github.com/codingersid/liquidgo/lexer"
	"github.com/codingersid/liquidgo/parser"
	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/runtime"
	"github.com/codingersid/liquidgo/value"
)

func ifBlock(w io.Writer, node *parser.BlockNode, rt *runtime.Runtime, eng *render.Engine) error {
	v, err := evalExprTokens(node.Args, rt, eng)
	if err != nil {
		return err
	}
	if v.QueryState(value.Truthy) {
		return eng.RenderNodes(w, node.Body, rt)
	}
	for _, m := range node.Markers {
		if m.Name == "else" {
			return eng.RenderNodes(w, m.Body, rt)
		}
		mv, err := evalExprTokens(m.Args, rt, eng)
		if err != nil {
			return err
		}
		if mv.QueryState(value.Truthy) {
			return eng.RenderNodes(w, m.Body, rt)
		}
	}
	return nil
}

func unlessBlock(w io.Writer, node *parser.BlockNode, rt *runtime.Runtime, eng *render.Engine) error {
	v, err := evalExprTokens(node.Args, rt, eng)
	if err != nil {
		return err
	}
	if !v.QueryState(value.Truthy) {
		return eng.RenderNodes(w, node.Body, rt)
	}
	for _, m := range node.Markers {
		if m.Name == "else" {
			return eng.RenderNodes(w, m.Body, rt)
		}
	}
	return nil
}

// caseBlock evaluates the `case` target once, then renders the first
// `when` marker whose comma- or or-separated candidate list contains a
// match, or the `else` marker if none match. Candidates parse at
// comparison precedence, not the full logical grammar, so `when 1 or 2`
// is two candidates (1, 2) rather than one boolean expression.
func caseBlock(w io.Writer, node *parser.BlockNode, rt *runtime.Runtime, eng *render.Engine) error {
	target, err := evalExprTokens(node.Args, rt, eng)
	if err != nil {
		return err
	}
	for _, m := range node.Markers {
		if m.Name == "else" {
			continue
		}
		sub := parser.NewTokenParser(m.Args)
		for {
			expr, err := sub.ParseCandidateExpr()
			if err != nil {
				return err
			}
			v, err := eng.Eval(parser.FilteredExpr{Base: expr}, rt)
			if err != nil {
				return err
			}
			if value.Equal(target, v) {
				return eng.RenderNodes(w, m.Body, rt)
			}
			if !sub.ConsumeType(lexer.TokenComma) && !sub.ConsumeType(lexer.TokenOr) {
				break
			}
		}
	}
	for _, m := range node.Markers {
		if m.Name == "else" {
			return eng.RenderNodes(w, m.Body, rt)
		}
	}
	return nil
}

func rawBlock(w io.Writer, node *parser.BlockNode, rt *runtime.Runtime, eng *render.Engine) error {
	return eng.RenderNodes(w, node.Body, rt)
}

func commentBlock(w io.Writer, node *parser.BlockNode, rt *runtime.Runtime, eng *render.Engine) error {
	return nil
}
