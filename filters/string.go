package filters

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/value"
)

var titleCaser = cases.Title(language.Und)
var upperCaser = cases.Upper(language.Und)
var lowerCaser = cases.Lower(language.Und)

func upcaseFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(upperCaser.String(input.Render())), nil
}

func downcaseFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(lowerCaser.String(input.Render())), nil
}

// capitalizeFilter upper-cases only the first rune, matching Liquid's
// "Capitalize the first word" behavior rather than title-casing every word
// (which `cases.Title` alone would do).
func capitalizeFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	s := input.Render()
	if s == "" {
		return value.String(s), nil
	}
	r, size := utf8.DecodeRuneInString(s)
	return value.String(titleCaser.String(string(r)) + s[size:]), nil
}

func appendFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(input.Render() + argString(args, 0, "")), nil
}

func prependFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(argString(args, 0, "") + input.Render()), nil
}

func replaceFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	search := argString(args, 0, "")
	repl := argString(args, 1, "")
	return value.String(strings.ReplaceAll(input.Render(), search, repl)), nil
}

func replaceFirstFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	search := argString(args, 0, "")
	repl := argString(args, 1, "")
	return value.String(strings.Replace(input.Render(), search, repl, 1)), nil
}

func removeFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(strings.ReplaceAll(input.Render(), argString(args, 0, ""), "")), nil
}

func removeFirstFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(strings.Replace(input.Render(), argString(args, 0, ""), "", 1)), nil
}

func splitFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	sep := argString(args, 0, "")
	parts := strings.Split(input.Render(), sep)
	out := make([]*value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.String(p)
	}
	return value.Array(out), nil
}

func stripFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(strings.TrimSpace(input.Render())), nil
}

func lstripFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(strings.TrimLeft(input.Render(), " \t\r\n")), nil
}

func rstripFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(strings.TrimRight(input.Render(), " \t\r\n")), nil
}

func stripNewlinesFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	s := strings.ReplaceAll(input.Render(), "\r\n", "")
	s = strings.ReplaceAll(s, "\n", "")
	return value.String(s), nil
}

// truncateFilter follows liquid-rust's truncate.rs: if the rune count
// already fits within n, the string passes through unchanged; otherwise it
// is cut so the kept prefix plus suffix together total n runes.
func truncateFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	n := int(argInt(args, 0, 50))
	suffix := argString(args, 1, "...")
	s := input.Render()
	runes := []rune(s)
	if n < 0 || len(runes) <= n {
		return value.String(s), nil
	}
	suffixRunes := []rune(suffix)
	keep := n - len(suffixRunes)
	if keep < 0 {
		keep = 0
	}
	return value.String(string(runes[:keep]) + suffix), nil
}

func truncatewordsFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	n := int(argInt(args, 0, 15))
	suffix := argString(args, 1, "...")
	words := strings.Fields(input.Render())
	if n < 0 || len(words) <= n {
		return value.String(input.Render()), nil
	}
	if n == 0 {
		return value.String(suffix), nil
	}
	return value.String(strings.Join(words[:n], " ") + suffix), nil
}

// sliceFilter follows §4.5's string `slice(start, len=1)`: start may be
// negative (counted from the end, same wraparound rule as array indexing).
func sliceFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	runes := []rune(input.Render())
	n := len(runes)
	start := int(argInt(args, 0, 0))
	length := int(argInt(args, 1, 1))
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if start > n {
		start = n
	}
	end := start + length
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return value.String(string(runes[start:end])), nil
}

func sizeFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	switch input.Kind() {
	case value.KindString:
		return value.Integer(int64(utf8.RuneCountInString(input.Render()))), nil
	case value.KindArray:
		arr, _ := input.AsArray()
		return value.Integer(int64(len(arr))), nil
	case value.KindObject:
		obj, _ := input.AsObject()
		return value.Integer(int64(obj.Len())), nil
	default:
		return value.Integer(0), nil
	}
}
