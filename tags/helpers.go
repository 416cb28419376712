package tags

import (
	"github.com/codingersid/liquidgo/lexer"
	"github.com/codingersid/liquidgo/parser"
	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/runtime"
	"github.com/codingersid/liquidgo/value"
)

// evalExprTokens parses a single expression from raw tag-argument tokens
// and evaluates it against rt.
func evalExprTokens(tokens []lexer.Token, rt *runtime.Runtime, eng *render.Engine) (*value.Value, error) {
	sub := parser.NewTokenParser(tokens)
	expr, err := sub.ParseExpr()
	if err != nil {
		return nil, err
	}
	return eng.Eval(parser.FilteredExpr{Base: expr}, rt)
}

// evalFilteredTokens parses an expression plus its filter chain from raw
// tag-argument tokens and evaluates it.
func evalFilteredTokens(tokens []lexer.Token, rt *runtime.Runtime, eng *render.Engine) (*value.Value, error) {
	sub := parser.NewTokenParser(tokens)
	fe, err := sub.ParseFilteredExpr()
	if err != nil {
		return nil, err
	}
	return eng.Eval(*fe, rt)
}

// sourceText rejoins raw argument tokens into a rough source string,
// used only to build a stable cycle-group key when no explicit group
// name was given.
func sourceText(tokens []lexer.Token) string {
	s := ""
	for i, t := range tokens {
		if i > 0 {
			s += " "
		}
		s += t.Value
	}
	return s
}
