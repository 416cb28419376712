// Package runtime holds everything a render needs that isn't part of the
// parsed tree itself: the variable scope stack, per-render registers used
// by stateful tags (cycle, ifchanged), the break/continue interrupt
// channel, and the partial lookup used by include/render.
//
// The scope chain (innermost frame first, a read-only globals frame
// always present beneath) follows the teacher's runtime.Context pattern
// of a data map plus nested scoping, and more directly
// amoghasbhardwaj-Eloquence's object.Environment{store,outer} lexical
// chain — generalized here to a slice-based stack instead of a linked
// list since Liquid frames are pushed/popped strictly in LIFO order
// around block bodies.
package runtime

import "github.com/codingersid/liquidgo/value"

// Frame is one level of the variable scope stack: a plain object whose
// keys are looked up before falling through to the next-outer frame.
type Frame struct {
	vars *value.Object
}

func newFrame() *Frame {
	return &Frame{vars: value.NewObject()}
}

// Stack is the Liquid variable scope chain. globals is the caller-supplied
// root object, read-only for the lifetime of the render — §1's "templates
// do not mutate caller data" and §4.6's read-only-globals-store
// requirement — so the same object can safely back multiple renders, or
// concurrent ones, per spec.md §5. frames[0] is a fresh, assignable frame
// that is never popped — §4.6's "root frame always present" invariant —
// and is what `{% assign %}`/`{% capture %}` actually write into; frames
// above it come from `for`, `include`, tag-local bindings, and so on.
type Stack struct {
	globals *value.Object
	frames  []*Frame
}

// NewStack returns a Stack whose lookups see root (read-only) beneath a
// fresh, empty, assignable root frame. root itself is never written to.
func NewStack(root *value.Object) *Stack {
	if root == nil {
		root = value.NewObject()
	}
	return &Stack{globals: root, frames: []*Frame{newFrame()}}
}

// Push adds a new innermost frame, e.g. when entering a `capture` or
// `for` body.
func (s *Stack) Push() {
	s.frames = append(s.frames, newFrame())
}

// Pop removes the innermost frame. It is a no-op (and never removes the
// root) if only the root frame remains, preserving the always-present
// invariant even if a caller pops one time too many.
func (s *Stack) Pop() {
	if len(s.frames) <= 1 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth reports how many frames are on the stack, root included.
func (s *Stack) Depth() int { return len(s.frames) }

// Set assigns name in the innermost frame, shadowing any outer binding of
// the same name — this is how `for`-loop variables and `{% include %}`
// keyword arguments are bound.
func (s *Stack) Set(name string, v *value.Value) {
	s.frames[len(s.frames)-1].vars.Set(name, v)
}

// SetGlobal assigns name in frame 0, the bottom assignable frame, visible
// from anywhere — what `{% assign %}` and `{% capture %}` write into at any
// nesting depth.
// This never touches globals (the caller-supplied root).
func (s *Stack) SetGlobal(name string, v *value.Value) {
	s.frames[0].vars.Set(name, v)
}

// Get resolves name by walking from the innermost frame outward, falling
// through to the read-only globals object if no frame shadows it.
func (s *Stack) Get(name string) (*value.Value, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].vars.Get(name); ok {
			return v, true
		}
	}
	return s.globals.Get(name)
}

// AvailableNames lists every binding visible from the current frame,
// innermost-shadowing-outermost, then globals, used to build
// UnknownVariable error context ("available variables: ...").
func (s *Stack) AvailableNames() []string {
	seen := make(map[string]bool)
	var names []string
	for i := len(s.frames) - 1; i >= 0; i-- {
		for _, k := range s.frames[i].vars.Keys() {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	for _, k := range s.globals.Keys() {
		if !seen[k] {
			seen[k] = true
			names = append(names, k)
		}
	}
	return names
}

// Fork returns a new Stack for an isolated render (used by `{% render %}`,
// which unlike `{% include %}` sees none of the caller's scope): only a
// fresh root frame seeded with the given object.
func Fork(root *value.Object) *Stack {
	return NewStack(root)
}
