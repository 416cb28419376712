// Package parser turns a lexer token stream into a tree of Renderable
// nodes: literal/variable/filtered expressions, the built-in control-flow
// and registered custom tags/blocks, and the registries that let tags and
// filters be added without touching this package.
//
// The node-per-construct shape (one struct per AST node implementing a
// shared interface, a big dispatch switch in the parser) follows the
// teacher's parser.Node/parser.NodeType design, generalized from Blade's
// `@directive` grammar to Liquid's `{{ }}`/`{% %}` grammar.
package parser

import (
	"github.com/codingersid/liquidgo/lexer"
	"github.com/codingersid/liquidgo/value"
)

// Expr is any parsed expression: a literal, a variable path, or a
// comparison built from And/Or/Contains/relational operators.
type Expr interface {
	exprNode()
}

// Literal is a constant value embedded directly in source.
type Literal struct {
	Value *value.Value
}

func (*Literal) exprNode() {}

// PathSeg is one step of a Variable's path. A dotted or literal-bracket
// segment (`.city`, `[0]`, `["city"]`) resolves to a static value.Step at
// parse time; a bare-identifier bracket segment (`[idx]`) names a
// sub-expression that must be evaluated against the current scope at
// render time to produce the step, since its key isn't known until then.
type PathSeg struct {
	Static   value.Step
	IsStatic bool
	Dynamic  Expr
}

// Variable is a dotted/bracketed path rooted at an identifier, e.g.
// `user.addresses[0].city`.
type Variable struct {
	Name string
	Path []PathSeg
}

func (*Variable) exprNode() {}

// RangeExpr is a `(a..b)` integer range literal, each bound itself an
// Expr (so `(1..n)` is legal).
type RangeExpr struct {
	Start, End Expr
}

func (*RangeExpr) exprNode() {}

// BinaryOp identifies a comparison or logical connective.
type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpContains
	OpAnd
	OpOr
)

// Binary is a two-operand comparison or logical expression. Liquid has no
// operator precedence beyond strict left-to-right `and`/`or` chaining, so
// the parser builds these left-associatively with no precedence climbing.
type Binary struct {
	Op          BinaryOp
	Left, Right Expr
}

func (*Binary) exprNode() {}

// FilterArg is one argument to a filter: positional (Name == "") or
// keyword (`name: value`).
type FilterArg struct {
	Name  string
	Value Expr
}

// FilterCall is one filter in a pipeline, e.g. `truncate: 20, "..."`.
type FilterCall struct {
	Name string
	Args []FilterArg
}

// FilteredExpr is an expression followed by zero or more piped filters.
type FilteredExpr struct {
	Base    Expr
	Filters []FilterCall
}

func (*FilteredExpr) exprNode() {}

// Node is any parsed template construct capable of rendering itself.
// render/ supplies the concrete Runtime and walks Nodes with a type switch
// over the concrete node types below.
type Node interface {
	node()
}

// TextNode is a verbatim run of template source.
type TextNode struct {
	Text string
}

func (*TextNode) node() {}

// OutputNode is a `{{ expr }}` tag.
type OutputNode struct {
	Expr FilteredExpr
}

func (*OutputNode) node() {}

// TagNode is a single non-block tag, e.g. `{% assign x = 1 %}`. Args holds
// the tag's raw argument tokens (type information intact) since each
// built-in tag has its own small grammar (`for x in y reversed`,
// `assign x = 1`, `include "name", with: x`) that a single generic
// expression parse can't cover; the tag implementations in tags/ build a
// sub-Parser over Args via NewTokenParser to parse their own grammar.
type TagNode struct {
	Name string
	Args []lexer.Token
}

func (*TagNode) node() {}

// BlockNode is a tag with a body and an `{% end<name> %}` terminator,
// possibly with interior markers (e.g. `{% else %}` inside `{% if %}`).
type BlockNode struct {
	Name    string
	Args    []lexer.Token
	Body    []Node
	Markers []BlockMarker
}

func (*BlockNode) node() {}

// BlockMarker is one interior delimiter inside a block's body, e.g. the
// `elsif`/`else` sections of an `if` block.
type BlockMarker struct {
	Name string
	Args []lexer.Token
	Body []Node
}

// Root is the top of a parsed template.
type Root struct {
	Body []Node
}
