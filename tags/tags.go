// Package tags implements Liquid's built-in block and simple tags and
// registers them into both a parser.Language (so the parser recognizes
// block boundaries and interior markers) and a render.Engine (so the
// render walk knows how to execute each one).
//
// Grounded on the teacher's directive catalog (Directives string slice in
// legit.go, one parse/compile function per directive in parser/compiler)
// generalized from Blade's `@if`/`@foreach`/`@section` set to Liquid's
// `if`/`for`/`case`/`capture`/... set, with the actual execution strategy
// replaced per SPEC_FULL's package-layout note: instead of compiling to
// html/template source, each tag evaluates directly against a
// runtime.Runtime and render.Engine.
package tags

import (
	"github.com/codingersid/liquidgo/parser"
	"github.com/codingersid/liquidgo/render"
)

// AddStandardTags registers every built-in tag and block into lang and
// eng. Called once when assembling an engine.Engine front door.
func AddStandardTags(lang *parser.Language, eng *render.Engine) {
	lang.AddBlock("if", "elsif", "else")
	lang.AddBlock("unless", "else")
	lang.AddBlock("case", "when", "else")
	lang.AddBlock("for", "else")
	lang.AddBlock("tablerow")
	lang.AddBlock("capture")
	lang.AddBlock("ifchanged")
	lang.AddBlock("raw")
	lang.AddBlock("comment")

	eng.RegisterBlock("if", ifBlock)
	eng.RegisterBlock("unless", unlessBlock)
	eng.RegisterBlock("case", caseBlock)
	eng.RegisterBlock("for", forBlock)
	eng.RegisterBlock("tablerow", tablerowBlock)
	eng.RegisterBlock("capture", captureBlock)
	eng.RegisterBlock("ifchanged", ifchangedBlock)
	eng.RegisterBlock("raw", rawBlock)
	eng.RegisterBlock("comment", commentBlock)

	eng.RegisterTag("assign", assignTag)
	eng.RegisterTag("break", breakTag)
	eng.RegisterTag("continue", continueTag)
	eng.RegisterTag("cycle", cycleTag)
	eng.RegisterTag("increment", incrementTag)
	eng.RegisterTag("decrement", decrementTag)
	eng.RegisterTag("include", includeTag)
	eng.RegisterTag("render", renderTag)
}
