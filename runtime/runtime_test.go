package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codingersid/liquidgo/liquiderr"
	"github.com/codingersid/liquidgo/value"
)

func TestStackSetGetShadowing(t *testing.T) {
	s := NewStack(nil)
	s.SetGlobal("x", value.Integer(1))
	s.Push()
	s.Set("x", value.Integer(2))
	v, ok := s.Get("x")
	require.True(t, ok)
	i, _ := v.ToInteger()
	require.EqualValues(t, 2, i)

	s.Pop()
	v, ok = s.Get("x")
	require.True(t, ok)
	i, _ = v.ToInteger()
	require.EqualValues(t, 1, i)
}

func TestStackRootFrameNeverPopped(t *testing.T) {
	s := NewStack(nil)
	s.Pop()
	s.Pop()
	require.Equal(t, 1, s.Depth())
}

func TestStackUnknownNameFails(t *testing.T) {
	s := NewStack(nil)
	_, ok := s.Get("missing")
	require.False(t, ok)
}

func TestStackReadsThroughToGlobals(t *testing.T) {
	root := value.NewObject()
	root.Set("title", value.String("hello"))
	s := NewStack(root)
	v, ok := s.Get("title")
	require.True(t, ok)
	require.Equal(t, "hello", v.ToKStr())
}

func TestStackSetGlobalDoesNotMutateCallerRoot(t *testing.T) {
	root := value.NewObject()
	root.Set("title", value.String("hello"))
	s := NewStack(root)
	s.SetGlobal("title", value.String("changed"))

	v, ok := s.Get("title")
	require.True(t, ok)
	require.Equal(t, "changed", v.ToKStr(), "the stack itself should see the new assignment")

	orig, ok := root.Get("title")
	require.True(t, ok)
	require.Equal(t, "hello", orig.ToKStr(), "the caller's own object must be untouched")
}

func TestStackSetGlobalDoesNotLeakAcrossSharedRoot(t *testing.T) {
	root := value.NewObject()
	a := NewStack(root)
	b := NewStack(root)

	a.SetGlobal("name", value.String("a-only"))
	_, ok := b.Get("name")
	require.False(t, ok, "two stacks over the same root must not see each other's assignments")
}

func TestRegistersCycleWraps(t *testing.T) {
	r := NewRegisters()
	require.Equal(t, 0, r.NextCycleIndex("g", 3))
	require.Equal(t, 1, r.NextCycleIndex("g", 3))
	require.Equal(t, 2, r.NextCycleIndex("g", 3))
	require.Equal(t, 0, r.NextCycleIndex("g", 3))
}

func TestRegistersLoopOffsetTracksPerName(t *testing.T) {
	r := NewRegisters()
	require.EqualValues(t, 0, r.LoopOffset("x"))
	r.SetLoopOffset("x", 2)
	require.EqualValues(t, 2, r.LoopOffset("x"))
	require.EqualValues(t, 0, r.LoopOffset("y"), "separate loop variable name must not share state")
}

func TestRegistersIncrementDecrementSeparateNamespace(t *testing.T) {
	r := NewRegisters()
	require.EqualValues(t, 0, r.Increment("n"))
	require.EqualValues(t, 1, r.Increment("n"))
	require.EqualValues(t, 1, r.Decrement("n"))
}

func TestInterruptClear(t *testing.T) {
	var st InterruptState
	st.Raise(InterruptBreak)
	require.Equal(t, InterruptBreak, st.Pending())
	st.Clear()
	require.Equal(t, NoInterrupt, st.Pending())
}

type fakeSource struct {
	data map[string]Partial
}

func (f *fakeSource) TryGet(name string) (Partial, bool) {
	p, ok := f.data[name]
	return p, ok
}

func (f *fakeSource) Names() []string {
	var names []string
	for k := range f.data {
		names = append(names, k)
	}
	return names
}

func TestGetPartialMissingReturnsLiquidError(t *testing.T) {
	src := &fakeSource{data: map[string]Partial{"header": struct{}{}}}
	_, err := GetPartial(src, "footer")
	require.Error(t, err)
	require.True(t, liquiderr.Is(err, liquiderr.KindMissingPartial))
}

func TestGetPartialFound(t *testing.T) {
	src := &fakeSource{data: map[string]Partial{"header": struct{}{}}}
	p, err := GetPartial(src, "header")
	require.NoError(t, err)
	require.NotNil(t, p)
}
