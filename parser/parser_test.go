package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codingersid/liquidgo/lexer"
)

func mustTokens(t *testing.T, src string) []lexer.Token {
	t.Helper()
	tokens, err := lexer.New(src).Tokenize()
	require.NoError(t, err)
	return tokens
}

func standardLanguage() *Language {
	lang := NewLanguage()
	lang.AddBlock("if", "elsif", "else")
	lang.AddBlock("unless", "else")
	lang.AddBlock("case", "when", "else")
	lang.AddBlock("for", "else")
	lang.AddBlock("tablerow")
	lang.AddBlock("capture")
	lang.AddBlock("raw")
	lang.AddBlock("comment")
	return lang
}

func TestParsePlainText(t *testing.T) {
	root, err := Parse(mustTokens(t, "hello"), standardLanguage())
	require.NoError(t, err)
	require.Len(t, root.Body, 1)
	text, ok := root.Body[0].(*TextNode)
	require.True(t, ok)
	require.Equal(t, "hello", text.Text)
}

func TestParseOutputVariablePath(t *testing.T) {
	root, err := Parse(mustTokens(t, "{{ user.addresses[0].city }}"), standardLanguage())
	require.NoError(t, err)
	out, ok := root.Body[0].(*OutputNode)
	require.True(t, ok)
	v, ok := out.Expr.Base.(*Variable)
	require.True(t, ok)
	require.Equal(t, "user", v.Name)
	require.Len(t, v.Path, 2)
	require.Equal(t, "addresses", v.Path[0].Static.Key)
	require.True(t, v.Path[1].Static.IsIndex)
}

func TestParseFilterChainWithArgs(t *testing.T) {
	root, err := Parse(mustTokens(t, `{{ name | truncate: 5, "..." | upcase }}`), standardLanguage())
	require.NoError(t, err)
	out := root.Body[0].(*OutputNode)
	require.Len(t, out.Expr.Filters, 2)
	require.Equal(t, "truncate", out.Expr.Filters[0].Name)
	require.Len(t, out.Expr.Filters[0].Args, 2)
	require.Equal(t, "upcase", out.Expr.Filters[1].Name)
}

func TestParseIfElsifElse(t *testing.T) {
	src := "{% if a %}A{% elsif b %}B{% else %}C{% endif %}"
	root, err := Parse(mustTokens(t, src), standardLanguage())
	require.NoError(t, err)
	block, ok := root.Body[0].(*BlockNode)
	require.True(t, ok)
	require.Equal(t, "if", block.Name)
	require.Len(t, block.Markers, 2)
	require.Equal(t, "elsif", block.Markers[0].Name)
	require.Equal(t, "else", block.Markers[1].Name)
}

func TestParseMissingEndTagErrors(t *testing.T) {
	_, err := Parse(mustTokens(t, "{% if a %}A"), standardLanguage())
	require.Error(t, err)
}

func TestParseUnknownEndTagWithoutOpenErrors(t *testing.T) {
	_, err := Parse(mustTokens(t, "{% endif %}"), standardLanguage())
	require.Error(t, err)
}

func TestParseSimpleTagKeepsRawArgs(t *testing.T) {
	root, err := Parse(mustTokens(t, `{% assign x = 1 %}`), standardLanguage())
	require.NoError(t, err)
	tag, ok := root.Body[0].(*TagNode)
	require.True(t, ok)
	require.Equal(t, "assign", tag.Name)
	require.Len(t, tag.Args, 3)
}

func TestParseLogicalAndOrLeftAssociative(t *testing.T) {
	root, err := Parse(mustTokens(t, "{% if a and b or c %}x{% endif %}"), standardLanguage())
	require.NoError(t, err)
	block := root.Body[0].(*BlockNode)
	sub := NewTokenParser(block.Args)
	expr, err := sub.ParseExpr()
	require.NoError(t, err)
	bin, ok := expr.(*Binary)
	require.True(t, ok)
	require.Equal(t, OpOr, bin.Op)
}

func TestParseRangeLiteral(t *testing.T) {
	root, err := Parse(mustTokens(t, "{% for i in (1..3) %}x{% endfor %}"), standardLanguage())
	require.NoError(t, err)
	block := root.Body[0].(*BlockNode)
	sub := NewTokenParser(block.Args)
	_, err = sub.ExpectIdentifier()
	require.NoError(t, err)
	require.True(t, sub.ConsumeIdentifier("in"))
	expr, err := sub.ParseExpr()
	require.NoError(t, err)
	_, ok := expr.(*RangeExpr)
	require.True(t, ok)
}

func TestParseDynamicBracketSegment(t *testing.T) {
	root, err := Parse(mustTokens(t, "{{ items[idx] }}"), standardLanguage())
	require.NoError(t, err)
	out := root.Body[0].(*OutputNode)
	v := out.Expr.Base.(*Variable)
	require.False(t, v.Path[0].IsStatic)
	_, ok := v.Path[0].Dynamic.(*Variable)
	require.True(t, ok)
}

func TestWhitespaceControlTrimsAdjacentText(t *testing.T) {
	root, err := Parse(mustTokens(t, "a \n{{- x -}}\n b"), standardLanguage())
	require.NoError(t, err)
	first := root.Body[0].(*TextNode)
	require.Equal(t, "a", first.Text)
	last := root.Body[len(root.Body)-1].(*TextNode)
	require.Equal(t, "b", last.Text)
}
