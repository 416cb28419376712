// Package render walks a parsed parser.Root against a runtime.Runtime,
// evaluating expressions and dispatching tags, and turns any error raised
// along the way into a liquiderr.Error carrying a full source trace.
//
// The walk algorithm (render each child in order, stop early if the
// runtime's interrupt slot is set, attach a trace frame to any error on
// the way back out) follows §4.6 directly; there is no teacher precedent
// for this exact shape since the teacher delegates all control flow to
// html/template, so the node-dispatch switch here is grounded in
// amoghasbhardwaj-Eloquence's evaluator.Eval tree-walking switch
// (one case per AST node type, recursing into children) applied to
// parser's node set instead of Monkey's.
package render

import (
	"io"
	"strings"

	"github.com/codingersid/liquidgo/liquiderr"
	"github.com/codingersid/liquidgo/parser"
	"github.com/codingersid/liquidgo/runtime"
	"github.com/codingersid/liquidgo/value"
)

// TagFunc renders a single TagNode's effect (assign, increment, include,
// break, ...) to w, given the already-parsed node and the active runtime.
type TagFunc func(w io.Writer, node *parser.TagNode, rt *runtime.Runtime, eng *Engine) error

// BlockFunc renders a BlockNode (if, for, case, capture, ...), including
// deciding which of its Markers/Body to walk and recursing back into
// RenderNodes for its own children.
type BlockFunc func(w io.Writer, node *parser.BlockNode, rt *runtime.Runtime, eng *Engine) error

// FilterFunc implements one registered filter: given the already-evaluated
// input and positional/keyword arguments (already evaluated to *value.Value),
// it returns the filtered result or an error.
type FilterFunc func(input *value.Value, args []FilterArg) (*value.Value, error)

// FilterArg is a filter argument after evaluation: its keyword name (empty
// if positional) and its value.
type FilterArg struct {
	Name  string
	Value *value.Value
}

// Engine is the immutable set of registered tags/blocks/filters a render
// dispatches against. Building one is cheap and it is safe for concurrent
// use across many renders, since nothing here is mutated after
// registration — only runtime.Runtime carries per-render mutable state.
type Engine struct {
	Tags    map[string]TagFunc
	Blocks  map[string]BlockFunc
	Filters map[string]FilterFunc
}

// NewEngine returns an Engine with empty registries.
func NewEngine() *Engine {
	return &Engine{
		Tags:    make(map[string]TagFunc),
		Blocks:  make(map[string]BlockFunc),
		Filters: make(map[string]FilterFunc),
	}
}

// RegisterTag adds a simple (bodyless) tag implementation.
func (e *Engine) RegisterTag(name string, fn TagFunc) { e.Tags[name] = fn }

// RegisterBlock adds a block tag implementation.
func (e *Engine) RegisterBlock(name string, fn BlockFunc) { e.Blocks[name] = fn }

// RegisterFilter adds a filter implementation.
func (e *Engine) RegisterFilter(name string, fn FilterFunc) { e.Filters[name] = fn }

// Template is a parsed document ready to render repeatedly against
// different runtimes.
type Template struct {
	Root *parser.Root
}

// Render walks t.Root's children in order, writing output to w. Any error
// raised by a child gets the child's own source text pushed as a trace
// frame before propagating further up, building the `from:` chain
// described in §7.
func (e *Engine) Render(w io.Writer, t *Template, rt *runtime.Runtime) error {
	return e.RenderNodes(w, t.Root.Body, rt)
}

// RenderNodes renders a slice of sibling nodes in order, stopping early if
// rt.Interrupt has been raised by a nested `break`/`continue` (the
// enclosing for/tablerow block is responsible for clearing it again).
func (e *Engine) RenderNodes(w io.Writer, nodes []parser.Node, rt *runtime.Runtime) error {
	for _, n := range nodes {
		if rt.Interrupt.Pending() != runtime.NoInterrupt {
			return nil
		}
		if err := e.renderNode(w, n, rt); err != nil {
			return attachTrace(err, n)
		}
	}
	return nil
}

func (e *Engine) renderNode(w io.Writer, n parser.Node, rt *runtime.Runtime) error {
	switch node := n.(type) {
	case *parser.TextNode:
		_, err := io.WriteString(w, node.Text)
		return err
	case *parser.OutputNode:
		return e.renderOutput(w, node, rt)
	case *parser.TagNode:
		fn, ok := e.Tags[node.Name]
		if !ok {
			return liquiderr.New(liquiderr.KindCustom, "unknown tag %q", node.Name)
		}
		return fn(w, node, rt, e)
	case *parser.BlockNode:
		fn, ok := e.Blocks[node.Name]
		if !ok {
			return liquiderr.New(liquiderr.KindCustom, "unknown block tag %q", node.Name)
		}
		return fn(w, node, rt, e)
	default:
		return liquiderr.New(liquiderr.KindCustom, "unrenderable node type %T", n)
	}
}

func (e *Engine) renderOutput(w io.Writer, node *parser.OutputNode, rt *runtime.Runtime) error {
	v, err := e.Eval(node.Expr, rt)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, v.Render())
	return err
}

// attachTrace wraps err (if it's a *liquiderr.Error) with a trace frame
// naming n's source form; non-liquiderr errors (I/O failures writing to
// w) pass through unchanged, since they aren't part of the template's own
// error-reporting contract.
func attachTrace(err error, n parser.Node) error {
	le, ok := err.(*liquiderr.Error)
	if !ok {
		return err
	}
	return le.PushTrace(sourceOf(n))
}

func sourceOf(n parser.Node) string {
	switch node := n.(type) {
	case *parser.OutputNode:
		return "{{ " + parser.ExprString(&node.Expr) + " }}"
	case *parser.TagNode:
		return "{% " + node.Name + " %}"
	case *parser.BlockNode:
		return "{% " + node.Name + " %}"
	default:
		return ""
	}
}

// RenderToString is a convenience wrapper for callers (tags like
// `capture`, or the engine/ front door) that need a node slice's rendered
// text rather than a stream write.
func (e *Engine) RenderToString(nodes []parser.Node, rt *runtime.Runtime) (string, error) {
	var b strings.Builder
	if err := e.RenderNodes(&b, nodes, rt); err != nil {
		return "", err
	}
	return b.String(), nil
}
