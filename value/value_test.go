package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueryStateTruthy(t *testing.T) {
	require.True(t, Integer(0).QueryState(Truthy))
	require.True(t, String("").QueryState(Truthy))
	require.False(t, Bool(false).QueryState(Truthy))
	require.False(t, NilValue().QueryState(Truthy))
	require.True(t, Bool(true).QueryState(Truthy))
}

func TestQueryStateDefault(t *testing.T) {
	require.True(t, NilValue().QueryState(DefaultValue))
	require.True(t, Bool(false).QueryState(DefaultValue))
	require.True(t, String("").QueryState(DefaultValue))
	require.True(t, Array(nil).QueryState(DefaultValue))
	require.False(t, Integer(0).QueryState(DefaultValue))
	require.False(t, String("0").QueryState(DefaultValue))
}

func TestQueryStateEmpty(t *testing.T) {
	require.True(t, String("").QueryState(Empty))
	require.True(t, Array(nil).QueryState(Empty))
	require.False(t, NilValue().QueryState(Empty))
	require.False(t, Integer(0).QueryState(Empty))
}

func TestQueryStateBlank(t *testing.T) {
	require.True(t, String("   ").QueryState(Blank))
	require.True(t, NilValue().QueryState(Blank))
	require.True(t, Bool(false).QueryState(Blank))
	require.False(t, String("x").QueryState(Blank))
}

func TestEqualNilAndFalse(t *testing.T) {
	require.True(t, Equal(NilValue(), Bool(false)))
	require.True(t, Equal(Bool(false), NilValue()))
	require.False(t, Equal(Bool(true), NilValue()))
}

func TestEqualNumericPromotion(t *testing.T) {
	require.True(t, Equal(Integer(2), Float(2.0)))
	require.False(t, Equal(Integer(2), Float(2.5)))
}

func TestCompareIncomparable(t *testing.T) {
	_, ok := Compare(String("a"), Integer(1))
	require.False(t, ok)
}

func TestCompareStrings(t *testing.T) {
	cmp, ok := Compare(String("a"), String("b"))
	require.True(t, ok)
	require.Less(t, cmp, 0)
}

func TestRenderScalars(t *testing.T) {
	require.Equal(t, "", NilValue().Render())
	require.Equal(t, "5", Integer(5).Render())
	require.Equal(t, "true", Bool(true).Render())
	require.Equal(t, "2024-01-02", DateValue(Date{2024, 1, 2}).Render())
}

func TestRenderArrayJoinsWithComma(t *testing.T) {
	arr := Array([]*Value{Integer(1), Integer(2), Integer(3)})
	require.Equal(t, "1, 2, 3", arr.Render())
}

func TestRenderObjectConcatenatesPairs(t *testing.T) {
	o := NewObject()
	o.Set("a", Integer(1))
	o.Set("b", Integer(2))
	require.Equal(t, "a1b2", ObjectValue(o).Render())
}

func TestSourceQuotesAndEscapesStrings(t *testing.T) {
	require.Equal(t, `"he said \"hi\""`, String(`he said "hi"`).Source())
	require.Equal(t, "5", Integer(5).Source())
}

func TestToIntegerRejectsFloats(t *testing.T) {
	_, ok := Float(1.5).ToInteger()
	require.False(t, ok)
	i, ok := String("42").ToInteger()
	require.True(t, ok)
	require.EqualValues(t, 42, i)
}

func TestToDateToday(t *testing.T) {
	ref := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	d, ok := String("today").ToDate(ref)
	require.True(t, ok)
	require.Equal(t, Date{2024, 3, 4}, d)
}

func TestPathLookupNegativeIndex(t *testing.T) {
	arr := Array([]*Value{Integer(10), Integer(20), Integer(30)})
	v, ok := Lookup(arr, Path{IndexStep(-1)})
	require.True(t, ok)
	require.EqualValues(t, 30, v.i)

	_, ok = Lookup(arr, Path{IndexStep(-4)})
	require.False(t, ok)
}

func TestPathLookupObjectChain(t *testing.T) {
	inner := NewObject()
	inner.Set("name", String("ada"))
	outer := NewObject()
	outer.Set("user", ObjectValue(inner))
	root := ObjectValue(outer)

	v, ok := Lookup(root, Path{KeyStep("user"), KeyStep("name")})
	require.True(t, ok)
	require.Equal(t, "ada", v.s)

	_, ok = Lookup(root, Path{KeyStep("user"), KeyStep("missing")})
	require.False(t, ok)
}

func TestPathLookupArraySizeFirstLast(t *testing.T) {
	arr := Array([]*Value{Integer(1), Integer(2), Integer(3)})
	size, ok := Lookup(arr, Path{KeyStep("size")})
	require.True(t, ok)
	require.EqualValues(t, 3, size.i)

	first, ok := Lookup(arr, Path{KeyStep("first")})
	require.True(t, ok)
	require.EqualValues(t, 1, first.i)

	last, ok := Lookup(arr, Path{KeyStep("last")})
	require.True(t, ok)
	require.EqualValues(t, 3, last.i)
}

func TestObjectPreservesInsertionOrderAcrossReassign(t *testing.T) {
	o := NewObject()
	o.Set("a", Integer(1))
	o.Set("b", Integer(2))
	o.Set("a", Integer(99))
	require.Equal(t, []string{"a", "b"}, o.Keys())
	v, _ := o.Get("a")
	require.EqualValues(t, 99, v.i)
}

func TestCowBorrowedVsOwned(t *testing.T) {
	src := String("hi")
	c := Borrowed(src)
	require.False(t, c.IsOwned())
	owned := c.ToOwned()
	require.Equal(t, "hi", owned.Render())

	c2 := Owned(Integer(7))
	require.True(t, c2.IsOwned())
}
