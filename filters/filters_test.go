package filters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/value"
)

func fa(vals ...*value.Value) []render.FilterArg {
	out := make([]render.FilterArg, len(vals))
	for i, v := range vals {
		out[i] = render.FilterArg{Value: v}
	}
	return out
}

func TestUpcaseDowncaseCapitalize(t *testing.T) {
	v, err := upcaseFilter(value.String("hiya"), nil)
	require.NoError(t, err)
	require.Equal(t, "HIYA", v.Render())

	v, err = downcaseFilter(value.String("HIYA"), nil)
	require.NoError(t, err)
	require.Equal(t, "hiya", v.Render())

	v, err = capitalizeFilter(value.String("hello world"), nil)
	require.NoError(t, err)
	require.Equal(t, "Hello world", v.Render())
}

func TestReplaceAndRemove(t *testing.T) {
	v, _ := replaceFilter(value.String("a-b-a"), fa(value.String("a"), value.String("x")))
	require.Equal(t, "x-b-x", v.Render())

	v, _ = removeFirstFilter(value.String("a-b-a"), fa(value.String("a")))
	require.Equal(t, "-b-a", v.Render())
}

func TestTruncateKeepsWithinBudget(t *testing.T) {
	v, err := truncateFilter(value.String("1234567890"), fa(value.Integer(6)))
	require.NoError(t, err)
	require.Equal(t, "123...", v.Render())

	v, err = truncateFilter(value.String("short"), fa(value.Integer(50)))
	require.NoError(t, err)
	require.Equal(t, "short", v.Render())
}

func TestTruncatewords(t *testing.T) {
	v, err := truncatewordsFilter(value.String("one two three four"), fa(value.Integer(2)))
	require.NoError(t, err)
	require.Equal(t, "one two...", v.Render())
}

func TestSliceNegativeStart(t *testing.T) {
	v, err := sliceFilter(value.String("liquid"), fa(value.Integer(-3), value.Integer(2)))
	require.NoError(t, err)
	require.Equal(t, "ui", v.Render())
}

func TestEscapeOnceSkipsExistingEntities(t *testing.T) {
	v, err := escapeOnceFilter(value.String("1 < 2 &amp; 3"), nil)
	require.NoError(t, err)
	require.Equal(t, "1 &lt; 2 &amp; 3", v.Render())
}

func TestStripHTML(t *testing.T) {
	v, err := stripHTMLFilter(value.String("<b>hi</b> there"), nil)
	require.NoError(t, err)
	require.Equal(t, "hi there", v.Render())
}

func TestJoinFirstLast(t *testing.T) {
	arr := value.Array([]*value.Value{value.Integer(1), value.Integer(2), value.Integer(3)})
	v, _ := joinFilter(arr, fa(value.String(", ")))
	require.Equal(t, "1, 2, 3", v.Render())

	v, _ = firstFilter(arr, nil)
	i, _ := v.ToInteger()
	require.EqualValues(t, 1, i)

	v, _ = lastFilter(arr, nil)
	i, _ = v.ToInteger()
	require.EqualValues(t, 3, i)
}

func TestSortIsStableAndNatural(t *testing.T) {
	arr := value.Array([]*value.Value{value.String("banana"), value.String("Apple"), value.String("cherry")})
	v, err := sortFilter(arr, nil)
	require.NoError(t, err)
	elems, _ := v.AsArray()
	var got []string
	for _, e := range elems {
		got = append(got, e.Render())
	}
	require.Equal(t, []string{"Apple", "banana", "cherry"}, got)
}

func TestWhereFiltersByKeyAndValue(t *testing.T) {
	mkObj := func(pub bool) *value.Value {
		o := value.NewObject()
		o.Set("published", value.Bool(pub))
		return value.ObjectValue(o)
	}
	arr := value.Array([]*value.Value{mkObj(true), mkObj(false), mkObj(true)})
	v, err := whereFilter(arr, fa(value.String("published")))
	require.NoError(t, err)
	elems, _ := v.AsArray()
	require.Len(t, elems, 2)
}

func TestMathIntegerVsFloatDispatch(t *testing.T) {
	v, err := plusFilter(value.Integer(2), fa(value.Integer(3)))
	require.NoError(t, err)
	require.Equal(t, value.KindInteger, v.Kind())

	v, err = plusFilter(value.Integer(2), fa(value.Float(1.5)))
	require.NoError(t, err)
	require.Equal(t, value.KindFloat, v.Kind())
}

func TestDividedByZeroErrors(t *testing.T) {
	_, err := dividedByFilter(value.Integer(4), fa(value.Integer(0)))
	require.Error(t, err)
}

func TestRoundCeilFloor(t *testing.T) {
	v, _ := roundFilter(value.Float(4.6), nil)
	i, _ := v.ToInteger()
	require.EqualValues(t, 5, i)

	v, _ = ceilFilter(value.Float(4.1), nil)
	i, _ = v.ToInteger()
	require.EqualValues(t, 5, i)

	v, _ = floorFilter(value.Float(4.9), nil)
	i, _ = v.ToInteger()
	require.EqualValues(t, 4, i)
}

func TestDefaultFilterUsesDefaultValueState(t *testing.T) {
	v, _ := defaultFilter(value.String(""), fa(value.String("fallback")))
	require.Equal(t, "fallback", v.Render())

	v, _ = defaultFilter(value.String("present"), fa(value.String("fallback")))
	require.Equal(t, "present", v.Render())
}

func TestDateFilterFormatsFields(t *testing.T) {
	d := value.DateValue(value.Date{Year: 2024, Month: 3, Day: 5})
	v, err := dateFilter(d, fa(value.String("[day]/[month repr:short]/[year]")))
	require.NoError(t, err)
	require.Equal(t, "05/Mar/2024", v.Render())
}

func TestSlugifyDefaultAndPretty(t *testing.T) {
	v, _ := slugifyFilter(value.String("Hello, World!"), nil)
	require.Equal(t, "hello-world", v.Render())

	v, _ = slugifyFilter(value.String("Hello, World!"), fa(value.String("pretty")))
	require.Equal(t, "hello,-world!", v.Render())
}

func TestSlugifyNoneAndRaw(t *testing.T) {
	v, _ := slugifyFilter(value.String("Hello World"), fa(value.String("none")))
	require.Equal(t, "Hello World", v.Render())

	v, _ = slugifyFilter(value.String("Hello   World"), fa(value.String("raw")))
	require.Equal(t, "hello-world", v.Render())
}
