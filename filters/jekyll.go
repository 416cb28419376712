package filters

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/value"
)

// AddJekyllFilters registers the opt-in Jekyll-compatible filter family
// (currently: slugify) described in SUPPLEMENTED FEATURES — callers that
// don't need Jekyll compatibility simply never call this, keeping the
// stdlib registry's behavior unaffected.
func AddJekyllFilters(eng *render.Engine) {
	eng.RegisterFilter("slugify", slugifyFilter)
}

var latinFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a', 'å': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ñ': 'n', 'ç': 'c', 'ý': 'y',
}

func foldLatin(s string) string {
	var b strings.Builder
	for _, r := range s {
		if f, ok := latinFold[unicode.ToLower(r)]; ok {
			if unicode.IsUpper(r) {
				f = unicode.ToUpper(f)
			}
			b.WriteRune(f)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// slugifyFilter implements Shopify-compatible slugify: "none" passes
// through, "raw" lower-cases and folds whitespace runs to a single "-",
// "default"
// keeps alphanumerics and "-_", "pretty" additionally keeps
// "._~!$&'()+,;=@", "ascii" narrows fullwidth/halfwidth forms to their
// ASCII equivalents via golang.org/x/text/width before restricting to
// ASCII alnum, and "latin" transliterates common Latin accented letters
// before applying "default"'s character set.
func slugifyFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	mode := argString(args, 0, "default")
	s := strings.TrimSpace(input.Render())

	switch mode {
	case "none":
		return value.String(s), nil
	case "raw":
		return value.String(collapseDashes(strings.ToLower(strings.Join(strings.Fields(s), "-")))), nil
	case "latin":
		s = foldLatin(s)
	case "ascii":
		s = width.Fold.String(s)
	}

	allowExtra := ""
	if mode == "pretty" {
		allowExtra = "._~!$&'()+,;=@"
	}
	asciiOnly := mode == "ascii"

	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if asciiOnly && r > unicode.MaxASCII {
				if !lastDash {
					b.WriteByte('-')
					lastDash = true
				}
				continue
			}
			b.WriteRune(r)
			lastDash = false
		case strings.ContainsRune(allowExtra, r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return value.String(strings.Trim(b.String(), "-")), nil
}

func collapseDashes(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
