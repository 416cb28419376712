package parser

import "github.com/codingersid/liquidgo/lexer"

// trimWhitespace applies Liquid's `{{-`/`-}}`/`{%-`/`-%}` whitespace
// control: a TokenText immediately followed by a trim-left delimiter has
// its trailing whitespace stripped, and one immediately preceded by a
// trim-right delimiter has its leading whitespace stripped.
func trimWhitespace(tokens []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, len(tokens))
	copy(out, tokens)
	for i := range out {
		if out[i].Type != lexer.TokenText {
			continue
		}
		if i+1 < len(out) {
			next := out[i+1]
			if (next.Type == lexer.TokenOutputStart || next.Type == lexer.TokenTagStart) && next.TrimLeft {
				out[i].Value = trimRightChars(out[i].Value)
			}
		}
		if i-1 >= 0 {
			prev := out[i-1]
			if (prev.Type == lexer.TokenOutputEnd || prev.Type == lexer.TokenTagEnd) && prev.TrimRight {
				out[i].Value = trimLeftChars(out[i].Value)
			}
		}
	}
	return out
}

func trimRightChars(s string) string {
	end := len(s)
	for end > 0 && isWS(s[end-1]) {
		end--
	}
	return s[:end]
}

func trimLeftChars(s string) string {
	start := 0
	for start < len(s) && isWS(s[start]) {
		start++
	}
	return s[start:]
}

func isWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
