package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestTokenizeTextOnly(t *testing.T) {
	tokens, err := New("hello world").Tokenize()
	require.NoError(t, err)
	require.Equal(t, []TokenType{TokenText, TokenEOF}, tokenTypes(tokens))
	require.Equal(t, "hello world", tokens[0].Value)
}

func TestTokenizeOutput(t *testing.T) {
	tokens, err := New("{{ user.name }}").Tokenize()
	require.NoError(t, err)
	require.Equal(t, []TokenType{
		TokenOutputStart, TokenIdentifier, TokenDot, TokenIdentifier, TokenOutputEnd, TokenEOF,
	}, tokenTypes(tokens))
}

func TestTokenizeFilterChain(t *testing.T) {
	tokens, err := New(`{{ name | truncate: 5, "..." }}`).Tokenize()
	require.NoError(t, err)
	require.Equal(t, []TokenType{
		TokenOutputStart, TokenIdentifier, TokenPipe, TokenIdentifier, TokenColon,
		TokenInteger, TokenComma, TokenString, TokenOutputEnd, TokenEOF,
	}, tokenTypes(tokens))
}

func TestTokenizeTagWithComparison(t *testing.T) {
	tokens, err := New(`{% if a >= 1 and b != 2 %}`).Tokenize()
	require.NoError(t, err)
	require.Equal(t, []TokenType{
		TokenTagStart, TokenIdentifier, TokenIdentifier, TokenGe, TokenInteger,
		TokenAnd, TokenIdentifier, TokenNe, TokenInteger, TokenTagEnd, TokenEOF,
	}, tokenTypes(tokens))
}

func TestWhitespaceControlMarkers(t *testing.T) {
	tokens, err := New("a {{- x -}} b").Tokenize()
	require.NoError(t, err)
	require.True(t, tokens[1].TrimLeft)
	var outputEnd Token
	for _, tok := range tokens {
		if tok.Type == TokenOutputEnd {
			outputEnd = tok
		}
	}
	require.True(t, outputEnd.TrimRight)
}

func TestRawBlockIsOpaque(t *testing.T) {
	tokens, err := New("{% raw %}{{ not a tag }}{% endraw %}").Tokenize()
	require.NoError(t, err)
	var sawText bool
	for _, tok := range tokens {
		if tok.Type == TokenText && tok.Value == "{{ not a tag }}" {
			sawText = true
		}
	}
	require.True(t, sawText)
}

func TestCommentBlockIgnoresContent(t *testing.T) {
	tokens, err := New("{% comment %}{% if garbage %}{% endcomment %}").Tokenize()
	require.NoError(t, err)
	types := tokenTypes(tokens)
	// Two simple tags (comment, endcomment), no tokens for the garbage
	// between them.
	require.Equal(t, []TokenType{
		TokenTagStart, TokenIdentifier, TokenTagEnd,
		TokenTagStart, TokenIdentifier, TokenTagEnd, TokenEOF,
	}, types)
}

func TestNegativeBracketIndexTokenizes(t *testing.T) {
	// A `-` directly followed by a digit starts a signed number token, so
	// a[-1] lexes as a bracketed negative index.
	tokens, err := New("{{ a[-1] }}").Tokenize()
	require.NoError(t, err)
	require.Contains(t, tokenTypes(tokens), TokenLBracket)
}

func TestUnterminatedOutputIsError(t *testing.T) {
	_, err := New("{{ x ").Tokenize()
	require.Error(t, err)
}
