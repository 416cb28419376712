package parser

import (
	"fmt"
	"strconv"

	"github.com/codingersid/liquidgo/lexer"
	"github.com/codingersid/liquidgo/liquiderr"
	"github.com/codingersid/liquidgo/value"
)

// Parser holds the token stream and the registered Language while building
// a Root. Mirrors the teacher's Parser{tokens,pos,current} shape.
type Parser struct {
	tokens []lexer.Token
	pos    int
	lang   *Language
}

// Parse tokenizes-then-parses is split across packages: this entry point
// takes an already-lexed token stream, applies whitespace control to it,
// and parses it with the Language describing registered block tags.
func Parse(tokens []lexer.Token, lang *Language) (*Root, error) {
	tokens = trimWhitespace(tokens)
	p := &Parser{tokens: tokens, lang: lang}
	stops := make(map[string]bool, len(lang.Blocks))
	for name := range lang.Blocks {
		stops["end"+name] = true
	}
	body, stop, err := p.parseNodes(stops)
	if err != nil {
		return nil, err
	}
	if stop != "" {
		return nil, p.errorf("unexpected {%% %s %%} with no matching opening tag", stop)
	}
	return &Root{Body: body}, nil
}

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() lexer.Token {
	t := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	tok := p.current()
	if tok.Type != t {
		return tok, p.errorf("expected %s, found %s %q", t, tok.Type, tok.Value)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return liquiderr.New(liquiderr.KindParseError, format, args...)
}

// parseNodes consumes nodes until EOF or until a TagStart whose
// identifier names a stop marker (an "end<name>", or one of the current
// block's interior marker names). It returns the stop name (empty at EOF).
func (p *Parser) parseNodes(stopNames map[string]bool) ([]Node, string, error) {
	var nodes []Node
	for {
		tok := p.current()
		switch tok.Type {
		case lexer.TokenEOF:
			return nodes, "", nil
		case lexer.TokenText:
			p.advance()
			if tok.Value != "" {
				nodes = append(nodes, &TextNode{Text: tok.Value})
			}
		case lexer.TokenOutputStart:
			node, err := p.parseOutput()
			if err != nil {
				return nil, "", err
			}
			nodes = append(nodes, node)
		case lexer.TokenTagStart:
			save := p.pos
			p.advance()
			nameTok, err := p.expect(lexer.TokenIdentifier)
			if err != nil {
				return nil, "", err
			}
			if stopNames != nil && stopNames[nameTok.Value] {
				p.pos = save
				return nodes, nameTok.Value, nil
			}
			node, err := p.parseTagBody(nameTok.Value)
			if err != nil {
				return nil, "", err
			}
			if node != nil {
				nodes = append(nodes, node)
			}
		default:
			return nil, "", p.errorf("unexpected token %s %q", tok.Type, tok.Value)
		}
	}
}

func (p *Parser) parseOutput() (Node, error) {
	if _, err := p.expect(lexer.TokenOutputStart); err != nil {
		return nil, err
	}
	expr, err := p.parseFilteredExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenOutputEnd); err != nil {
		return nil, err
	}
	return &OutputNode{Expr: *expr}, nil
}

// parseTagBody parses everything after `{% name` (name already consumed):
// either a registered block (body + markers + end tag) or a simple tag.
func (p *Parser) parseTagBody(name string) (Node, error) {
	if spec, ok := p.lang.IsBlock(name); ok {
		return p.parseBlock(name, spec)
	}
	args, err := p.parseTagArgs()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenTagEnd); err != nil {
		return nil, err
	}
	return &TagNode{Name: name, Args: args}, nil
}

func (p *Parser) parseBlock(name string, spec BlockSpec) (Node, error) {
	args, err := p.parseTagArgs()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenTagEnd); err != nil {
		return nil, err
	}

	endName := "end" + name
	stops := map[string]bool{endName: true}
	for _, m := range spec.Markers {
		stops[m] = true
	}

	body, stop, err := p.parseNodes(stops)
	if err != nil {
		return nil, err
	}
	block := &BlockNode{Name: name, Args: args, Body: body}

	for stop != "" && stop != endName {
		if _, err := p.expect(lexer.TokenTagStart); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenIdentifier); err != nil {
			return nil, err
		}
		markerArgs, err := p.parseTagArgs()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenTagEnd); err != nil {
			return nil, err
		}
		markerBody, nextStop, err := p.parseNodes(stops)
		if err != nil {
			return nil, err
		}
		block.Markers = append(block.Markers, BlockMarker{Name: stop, Args: markerArgs, Body: markerBody})
		stop = nextStop
	}
	if stop == "" {
		return nil, p.errorf("missing {%% %s %%}", endName)
	}
	if _, err := p.expect(lexer.TokenTagStart); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenIdentifier); err != nil {
		return nil, err
	}
	if _, err := p.parseTagArgs(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenTagEnd); err != nil {
		return nil, err
	}
	return block, nil
}

// parseTagArgs collects a tag's raw argument tokens up to its closing
// TagEnd, type information intact, so the tag implementations in tags/ can
// run their own small grammar over them via NewTokenParser.
func (p *Parser) parseTagArgs() ([]lexer.Token, error) {
	var raw []lexer.Token
	for {
		tok := p.current()
		if tok.Type == lexer.TokenTagEnd || tok.Type == lexer.TokenEOF {
			break
		}
		raw = append(raw, tok)
		p.advance()
	}
	return raw, nil
}

// parseFilteredExpr parses a boolean/comparison expression followed by an
// optional chain of piped filters.
func (p *Parser) parseFilteredExpr() (*FilteredExpr, error) {
	base, err := p.parseLogical()
	if err != nil {
		return nil, err
	}
	var filters []FilterCall
	for p.current().Type == lexer.TokenPipe {
		p.advance()
		nameTok, err := p.expect(lexer.TokenIdentifier)
		if err != nil {
			return nil, err
		}
		var args []FilterArg
		if p.current().Type == lexer.TokenColon {
			p.advance()
			args, err = p.parseFilterArgList()
			if err != nil {
				return nil, err
			}
		}
		filters = append(filters, FilterCall{Name: nameTok.Value, Args: args})
	}
	return &FilteredExpr{Base: base, Filters: filters}, nil
}

func (p *Parser) parseFilterArgList() ([]FilterArg, error) {
	var args []FilterArg
	for {
		arg, err := p.parseFilterArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.current().Type != lexer.TokenComma {
			break
		}
		p.advance()
	}
	return args, nil
}

func (p *Parser) parseFilterArg() (FilterArg, error) {
	if p.current().Type == lexer.TokenIdentifier && p.peekIsColon() {
		name := p.advance().Value
		p.advance() // colon
		val, err := p.parseLogical()
		if err != nil {
			return FilterArg{}, err
		}
		return FilterArg{Name: name, Value: val}, nil
	}
	val, err := p.parseLogical()
	if err != nil {
		return FilterArg{}, err
	}
	return FilterArg{Value: val}, nil
}

func (p *Parser) peekIsColon() bool {
	if p.pos+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos+1].Type == lexer.TokenColon
}

func (p *Parser) parseLogical() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.current().Type {
		case lexer.TokenAnd:
			op = OpAnd
		case lexer.TokenOr:
			op = OpOr
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseContains()
	if err != nil {
		return nil, err
	}
	var op BinaryOp
	matched := true
	switch p.current().Type {
	case lexer.TokenEq:
		op = OpEq
	case lexer.TokenNe:
		op = OpNe
	case lexer.TokenLt:
		op = OpLt
	case lexer.TokenLe:
		op = OpLe
	case lexer.TokenGt:
		op = OpGt
	case lexer.TokenGe:
		op = OpGe
	default:
		matched = false
	}
	if !matched {
		return left, nil
	}
	p.advance()
	right, err := p.parseContains()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseContains() (Expr, error) {
	left, err := p.parseRangeOrAtom()
	if err != nil {
		return nil, err
	}
	if p.current().Type == lexer.TokenContains {
		p.advance()
		right, err := p.parseRangeOrAtom()
		if err != nil {
			return nil, err
		}
		return &Binary{Op: OpContains, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parseRangeOrAtom() (Expr, error) {
	if p.current().Type == lexer.TokenLParen {
		p.advance()
		start, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRange); err != nil {
			return nil, err
		}
		end, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return &RangeExpr{Start: start, End: end}, nil
	}
	return p.parseAtom()
}

var literalKeywords = map[string]*value.Value{
	"true":  value.Bool(true),
	"false": value.Bool(false),
	"nil":   value.NilValue(),
	"null":  value.NilValue(),
	"empty": value.StateValue(value.Empty),
	"blank": value.StateValue(value.Blank),
}

func (p *Parser) parseAtom() (Expr, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.TokenString:
		p.advance()
		return &Literal{Value: value.String(tok.Value)}, nil
	case lexer.TokenInteger:
		p.advance()
		i, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", tok.Value)
		}
		return &Literal{Value: value.Integer(i)}, nil
	case lexer.TokenFloat:
		p.advance()
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", tok.Value)
		}
		return &Literal{Value: value.Float(f)}, nil
	case lexer.TokenIdentifier:
		if lit, ok := literalKeywords[tok.Value]; ok {
			p.advance()
			return &Literal{Value: lit}, nil
		}
		return p.parseVariable()
	default:
		return nil, p.errorf("expected expression, found %s %q", tok.Type, tok.Value)
	}
}

func (p *Parser) parseVariable() (Expr, error) {
	nameTok, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	v := &Variable{Name: nameTok.Value}
	for {
		switch p.current().Type {
		case lexer.TokenDot:
			p.advance()
			keyTok, err := p.expect(lexer.TokenIdentifier)
			if err != nil {
				return nil, err
			}
			v.Path = append(v.Path, PathSeg{Static: value.KeyStep(keyTok.Value), IsStatic: true})
		case lexer.TokenLBracket:
			p.advance()
			seg, err := p.parseBracketSeg()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenRBracket); err != nil {
				return nil, err
			}
			v.Path = append(v.Path, seg)
		default:
			return v, nil
		}
	}
}

func (p *Parser) parseBracketSeg() (PathSeg, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.TokenString:
		p.advance()
		return PathSeg{Static: value.KeyStep(tok.Value), IsStatic: true}, nil
	case lexer.TokenInteger:
		p.advance()
		i, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return PathSeg{}, p.errorf("invalid integer literal %q", tok.Value)
		}
		return PathSeg{Static: value.IndexStep(i), IsStatic: true}, nil
	default:
		expr, err := p.parseLogical()
		if err != nil {
			return PathSeg{}, err
		}
		return PathSeg{Dynamic: expr}, nil
	}
}

// ExprString renders expr back to a best-effort source form, used when
// building error trace frames ("from: {{ x | filter }}").
func ExprString(e Expr) string {
	switch n := e.(type) {
	case *Literal:
		return n.Value.Source()
	case *Variable:
		s := n.Name
		for _, seg := range n.Path {
			if seg.IsStatic {
				if seg.Static.IsIndex {
					s += fmt.Sprintf("[%d]", seg.Static.Index)
				} else {
					s += "." + seg.Static.Key
				}
			} else {
				s += "[" + ExprString(seg.Dynamic) + "]"
			}
		}
		return s
	case *RangeExpr:
		return "(" + ExprString(n.Start) + ".." + ExprString(n.End) + ")"
	case *Binary:
		return ExprString(n.Left) + " " + binaryOpString(n.Op) + " " + ExprString(n.Right)
	case *FilteredExpr:
		s := ExprString(n.Base)
		for _, f := range n.Filters {
			s += " | " + f.Name
		}
		return s
	default:
		return ""
	}
}

func binaryOpString(op BinaryOp) string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpContains:
		return "contains"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "?"
	}
}

// NewTokenParser builds a Parser over an already-extracted token slice
// (typically a TagNode/BlockNode's Args), for tag implementations in
// tags/ that need to parse their own small grammar — e.g. `for` needs
// `IDENT in EXPR [reversed] [limit: EXPR] [offset: EXPR]`, which doesn't
// match the generic FilteredExpr grammar used for `{{ }}` output.
func NewTokenParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Done reports whether every token has been consumed.
func (p *Parser) Done() bool { return p.current().Type == lexer.TokenEOF }

// PeekIdentifier reports the current token's value if it is an
// identifier, without consuming it.
func (p *Parser) PeekIdentifier() (string, bool) {
	if p.current().Type == lexer.TokenIdentifier {
		return p.current().Value, true
	}
	return "", false
}

// ConsumeIdentifier consumes and returns the current token if it is the
// given identifier, reporting whether it matched.
func (p *Parser) ConsumeIdentifier(name string) bool {
	if p.current().Type == lexer.TokenIdentifier && p.current().Value == name {
		p.advance()
		return true
	}
	return false
}

// ExpectIdentifier consumes any identifier token, or errors.
func (p *Parser) ExpectIdentifier() (string, error) {
	tok, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return "", err
	}
	return tok.Value, nil
}

// ParseExpr parses a full boolean/comparison expression (no filters).
func (p *Parser) ParseExpr() (Expr, error) {
	return p.parseLogical()
}

// ParseFilteredExpr parses an expression followed by an optional filter
// chain — the same grammar `{{ }}` output uses.
func (p *Parser) ParseFilteredExpr() (*FilteredExpr, error) {
	return p.parseFilteredExpr()
}

// Current returns the token at the parser's current position without
// consuming it.
func (p *Parser) Current() lexer.Token { return p.current() }

// Pos reports the parser's current token index into its own token slice —
// used by callers that need to slice out the raw tokens spanning a parsed
// sub-expression (e.g. to reconstruct source text) rather than just its
// parsed Expr form.
func (p *Parser) Pos() int { return p.pos }

// Advance consumes and returns the current token.
func (p *Parser) Advance() lexer.Token { return p.advance() }

// ConsumeType consumes the current token if it matches t, reporting
// whether it matched.
func (p *Parser) ConsumeType(t lexer.TokenType) bool {
	if p.current().Type == t {
		p.advance()
		return true
	}
	return false
}

// ConsumeColonArg looks for `name: <expr>` at the current position and,
// if found, consumes it and returns the parsed expression.
func (p *Parser) ConsumeColonArg(name string) (Expr, bool, error) {
	if p.current().Type != lexer.TokenIdentifier || p.current().Value != name {
		return nil, false, nil
	}
	if p.pos+1 >= len(p.tokens) || p.tokens[p.pos+1].Type != lexer.TokenColon {
		return nil, false, nil
	}
	p.advance()
	p.advance()
	expr, err := p.parseLogical()
	if err != nil {
		return nil, false, err
	}
	return expr, true, nil
}

// PeekIdentifierAt reports the value of the identifier token offset past
// the current position, without consuming anything — used where a tag's
// sub-parser needs to distinguish a bare keyword (e.g. `continue`) from a
// general expression before committing to one or the other.
func (p *Parser) PeekIdentifierAt(offset int) (string, bool) {
	i := p.pos + offset
	if i < 0 || i >= len(p.tokens) {
		return "", false
	}
	if p.tokens[i].Type != lexer.TokenIdentifier {
		return "", false
	}
	return p.tokens[i].Value, true
}

// PeekTypeAt reports the token type offset past the current position,
// without consuming anything.
func (p *Parser) PeekTypeAt(offset int) lexer.TokenType {
	i := p.pos + offset
	if i < 0 || i >= len(p.tokens) {
		return lexer.TokenEOF
	}
	return p.tokens[i].Type
}

// TokensBetween returns the raw token slice from index start to end (as
// returned by Pos before and after parsing a sub-expression), for callers
// that want the source text of what they just parsed rather than its Expr
// form.
func (p *Parser) TokensBetween(start, end int) []lexer.Token {
	if start < 0 {
		start = 0
	}
	if end > len(p.tokens) {
		end = len(p.tokens)
	}
	if start >= end {
		return nil
	}
	return p.tokens[start:end]
}

// ParseCandidateExpr parses a single `case`/`when` candidate value: an
// expression at comparison precedence or tighter, stopping before a bare
// `and`/`or` so that callers can treat those as candidate-list separators
// instead of logical connectives.
func (p *Parser) ParseCandidateExpr() (Expr, error) {
	return p.parseComparison()
}
