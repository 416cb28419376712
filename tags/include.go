package tags

import (
	"fmt"
	"io"

	"github.com/codingersid/liquidgo/lexer"
	"github.com/codingersid/liquidgo/liquiderr"
	"github.com/codingersid/liquidgo/parser"
	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/runtime"
	"github.com/codingersid/liquidgo/value"
)

// partialName evaluates the leading token(s) of an include/render tag body
// into the partial's name: either a bare string literal (the common case,
// `{% render "card" %}`) or a variable expression.
func partialName(sub *parser.Parser, rt *runtime.Runtime, eng *render.Engine) (string, error) {
	expr, err := sub.ParseExpr()
	if err != nil {
		return "", err
	}
	v, err := eng.Eval(parser.FilteredExpr{Base: expr}, rt)
	if err != nil {
		return "", err
	}
	return v.ToKStr(), nil
}

// keywordArgs parses the trailing `, key: expr, key2: expr2` list shared by
// include/render's `with:`/`for:` and ad-hoc variable bindings.
func keywordArgs(sub *parser.Parser, rt *runtime.Runtime, eng *render.Engine) (map[string]*value.Value, error) {
	out := make(map[string]*value.Value)
	for sub.ConsumeType(lexer.TokenComma) {
		name, err := sub.ExpectIdentifier()
		if err != nil {
			return nil, err
		}
		if !sub.ConsumeType(lexer.TokenColon) {
			return nil, fmt.Errorf("expected ':' after keyword argument %q", name)
		}
		expr, err := sub.ParseExpr()
		if err != nil {
			return nil, err
		}
		v, err := eng.Eval(parser.FilteredExpr{Base: expr}, rt)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

func asTemplate(p runtime.Partial, name string) (*render.Template, error) {
	t, ok := p.(*render.Template)
	if !ok {
		return nil, liquiderr.New(liquiderr.KindMissingPartial, "snippet %q is not a renderable template", name)
	}
	return t, nil
}

// withForClause is the optional `with expr` / `for expr [as local]` head
// that may immediately follow an include/render partial name, per §4.4's
// `include name with expr`, `include name for seq`, `render name with expr
// as local`, `render name for seq as local` grammar. With no `as`, the
// bound name defaults to the partial's own name, matching `include`'s
// documented "own-name variable" behavior.
type withForClause struct {
	has   bool
	isFor bool
	value *value.Value
	src   string
	alias string
}

func parseWithForClause(sub *parser.Parser, rt *runtime.Runtime, eng *render.Engine) (withForClause, error) {
	var c withForClause
	if sub.ConsumeIdentifier("with") {
		c.has = true
	} else if sub.ConsumeIdentifier("for") {
		c.has = true
		c.isFor = true
	} else {
		return c, nil
	}
	start := sub.Pos()
	expr, err := sub.ParseExpr()
	if err != nil {
		return c, err
	}
	c.src = collectionSourceText(sub.TokensBetween(start, sub.Pos()))
	v, err := eng.Eval(parser.FilteredExpr{Base: expr}, rt)
	if err != nil {
		return c, err
	}
	c.value = v
	if sub.ConsumeIdentifier("as") {
		alias, err := sub.ExpectIdentifier()
		if err != nil {
			return c, err
		}
		c.alias = alias
	}
	return c, nil
}

func (c withForClause) bindName(partialName string) string {
	if c.alias != "" {
		return c.alias
	}
	return partialName
}

// includeTag renders a partial in the caller's own scope (the classic,
// non-isolated Liquid `include`): keyword arguments are bound as ordinary
// assignments into the current innermost frame rather than a fresh one.
func includeTag(w io.Writer, node *parser.TagNode, rt *runtime.Runtime, eng *render.Engine) error {
	sub := parser.NewTokenParser(node.Args)
	name, err := partialName(sub, rt, eng)
	if err != nil {
		return err
	}
	clause, err := parseWithForClause(sub, rt, eng)
	if err != nil {
		return err
	}
	args, err := keywordArgs(sub, rt, eng)
	if err != nil {
		return err
	}

	p, err := runtime.GetPartial(rt.Partials, name)
	if err != nil {
		return err
	}
	tmpl, err := asTemplate(p, name)
	if err != nil {
		return err
	}

	for k, v := range args {
		rt.Stack.Set(k, v)
	}

	bind := clause.bindName(name)
	if clause.has && clause.isFor {
		if arr, ok := clause.value.AsArray(); ok {
			loopName := bind + "-" + clause.src
			for i, item := range arr {
				rt.Stack.Set(bind, item)
				rt.Stack.Set("forloop", forLoopObject(i, len(arr), loopName))
				if err := eng.Render(w, tmpl, rt); err != nil {
					return err
				}
			}
			return nil
		}
		// Non-array `for` target: bind it as-is and render once.
		rt.Stack.Set(bind, clause.value)
	} else if clause.has {
		rt.Stack.Set(bind, clause.value)
	} else if v, ok := args["for"]; ok {
		// Legacy comma-introduced `, for: expr` keyword form.
		if arr, ok := v.AsArray(); ok {
			for i, item := range arr {
				rt.Stack.Set(name, item)
				rt.Stack.Set("forloop", forLoopObject(i, len(arr), name+"-for"))
				if err := eng.Render(w, tmpl, rt); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return eng.Render(w, tmpl, rt)
}

// renderTag renders a partial in full isolation: a fresh scope that sees
// only its own keyword bindings (and `with`/`for`'s bound variable), never
// the caller's variables, per Liquid's documented `render` semantics.
func renderTag(w io.Writer, node *parser.TagNode, rt *runtime.Runtime, eng *render.Engine) error {
	sub := parser.NewTokenParser(node.Args)
	name, err := partialName(sub, rt, eng)
	if err != nil {
		return err
	}
	clause, err := parseWithForClause(sub, rt, eng)
	if err != nil {
		return err
	}
	args, err := keywordArgs(sub, rt, eng)
	if err != nil {
		return err
	}

	p, err := runtime.GetPartial(rt.Partials, name)
	if err != nil {
		return err
	}
	tmpl, err := asTemplate(p, name)
	if err != nil {
		return err
	}

	bind := clause.bindName(name)
	root := value.NewObject()
	for k, v := range args {
		if k == "for" {
			continue
		}
		root.Set(k, v)
	}
	if clause.has {
		// A non-array `for` target, or a plain `with`, binds once; an
		// array `for` target overrides this per-iteration below.
		root.Set(bind, clause.value)
	}
	child := rt.ForPartial(root, name)

	if clause.has && clause.isFor {
		if arr, ok := clause.value.AsArray(); ok {
			loopName := bind + "-" + clause.src
			for i, item := range arr {
				child.Stack.SetGlobal(bind, item)
				child.Stack.SetGlobal("forloop", forLoopObject(i, len(arr), loopName))
				if err := eng.Render(w, tmpl, child); err != nil {
					return err
				}
			}
			return nil
		}
	}
	if v, ok := args["for"]; ok {
		// Legacy comma-introduced `, for: expr` keyword form.
		if arr, ok := v.AsArray(); ok {
			for i, item := range arr {
				child.Stack.SetGlobal(name, item)
				child.Stack.SetGlobal("forloop", forLoopObject(i, len(arr), name+"-for"))
				if err := eng.Render(w, tmpl, child); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return eng.Render(w, tmpl, child)
}
