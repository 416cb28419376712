package render

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codingersid/liquidgo/lexer"
	"github.com/codingersid/liquidgo/liquiderr"
	"github.com/codingersid/liquidgo/parser"
	"github.com/codingersid/liquidgo/runtime"
	"github.com/codingersid/liquidgo/value"
)

func parseTemplate(t *testing.T, src string, lang *parser.Language) *parser.Root {
	t.Helper()
	tokens, err := lexer.New(src).Tokenize()
	require.NoError(t, err)
	root, err := parser.Parse(tokens, lang)
	require.NoError(t, err)
	return root
}

func baseLanguage() *parser.Language {
	lang := parser.NewLanguage()
	lang.AddBlock("if", "elsif", "else")
	lang.AddBlock("for", "else")
	return lang
}

func TestRenderPlainTextAndOutput(t *testing.T) {
	root := parseTemplate(t, "hi {{ name }}!", baseLanguage())
	rootObj := value.NewObject()
	rootObj.Set("name", value.String("ada"))
	rt := runtime.New(rootObj, nil)
	eng := NewEngine()
	out, err := eng.RenderToString(root.Body, rt)
	require.NoError(t, err)
	require.Equal(t, "hi ada!", out)
}

func TestRenderUnknownVariableErrorHasTrace(t *testing.T) {
	root := parseTemplate(t, "{{ missing }}", baseLanguage())
	rt := runtime.New(value.NewObject(), nil)
	eng := NewEngine()
	_, err := eng.RenderToString(root.Body, rt)
	require.Error(t, err)
	le, ok := err.(*liquiderr.Error)
	require.True(t, ok)
	require.Equal(t, liquiderr.KindUnknownVariable, le.Kind)
	require.Len(t, le.Trace, 1)
	require.Equal(t, "{{ missing }}", le.Trace[0].Source)
}

func TestRenderAppliesRegisteredFilter(t *testing.T) {
	root := parseTemplate(t, `{{ name | upcase }}`, baseLanguage())
	rootObj := value.NewObject()
	rootObj.Set("name", value.String("ada"))
	rt := runtime.New(rootObj, nil)
	eng := NewEngine()
	eng.RegisterFilter("upcase", func(in *value.Value, args []FilterArg) (*value.Value, error) {
		return value.String(strings.ToUpper(in.Render())), nil
	})
	out, err := eng.RenderToString(root.Body, rt)
	require.NoError(t, err)
	require.Equal(t, "ADA", out)
}

func TestRenderDispatchesSimpleTag(t *testing.T) {
	root := parseTemplate(t, `{% shout %}`, baseLanguage())
	rt := runtime.New(value.NewObject(), nil)
	eng := NewEngine()
	eng.RegisterTag("shout", func(w io.Writer, node *parser.TagNode, rt *runtime.Runtime, e *Engine) error {
		_, err := w.Write([]byte("SHOUT"))
		return err
	})
	out, err := eng.RenderToString(root.Body, rt)
	require.NoError(t, err)
	require.Equal(t, "SHOUT", out)
}

func TestRenderIfBlockPicksBranch(t *testing.T) {
	root := parseTemplate(t, `{% if cond %}yes{% else %}no{% endif %}`, baseLanguage())
	eng := NewEngine()
	eng.RegisterBlock("if", func(w io.Writer, node *parser.BlockNode, rt *runtime.Runtime, e *Engine) error {
		sub := parser.NewTokenParser(node.Args)
		expr, err := sub.ParseExpr()
		require.NoError(t, err)
		v, err := e.evalExpr(expr, rt)
		require.NoError(t, err)
		if v.QueryState(value.Truthy) {
			return e.RenderNodes(w, node.Body, rt)
		}
		for _, m := range node.Markers {
			if m.Name == "else" {
				return e.RenderNodes(w, m.Body, rt)
			}
		}
		return nil
	})

	rootObj := value.NewObject()
	rootObj.Set("cond", value.Bool(false))
	rt := runtime.New(rootObj, nil)
	out, err := eng.RenderToString(root.Body, rt)
	require.NoError(t, err)
	require.Equal(t, "no", out)
}

func TestRenderStopsOnInterrupt(t *testing.T) {
	root := parseTemplate(t, `a{% brk %}b`, baseLanguage())
	eng := NewEngine()
	eng.RegisterTag("brk", func(w io.Writer, node *parser.TagNode, rt *runtime.Runtime, e *Engine) error {
		rt.Interrupt.Raise(runtime.InterruptBreak)
		return nil
	})
	rt := runtime.New(value.NewObject(), nil)
	out, err := eng.RenderToString(root.Body, rt)
	require.NoError(t, err)
	require.Equal(t, "a", out)
}
