package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codingersid/liquidgo/value"
)

func TestContainsValueObjectKeyMembership(t *testing.T) {
	obj := value.NewObject()
	obj.Set("title", value.String("hi"))
	haystack := value.ObjectValue(obj)

	require.True(t, containsValue(haystack, value.String("title")))
	require.False(t, containsValue(haystack, value.String("missing")))
}

func TestContainsValueObjectRejectsNonStringNeedle(t *testing.T) {
	obj := value.NewObject()
	obj.Set("1", value.String("one"))
	haystack := value.ObjectValue(obj)

	require.False(t, containsValue(haystack, value.Integer(1)))
}

func TestContainsValueStringSubstring(t *testing.T) {
	require.True(t, containsValue(value.String("hello world"), value.String("world")))
	require.False(t, containsValue(value.String("hello world"), value.String("xyz")))
}

func TestContainsValueArrayElement(t *testing.T) {
	arr := value.Array([]*value.Value{value.Integer(1), value.Integer(2)})
	require.True(t, containsValue(arr, value.Integer(2)))
	require.False(t, containsValue(arr, value.Integer(3)))
}
