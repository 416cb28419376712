package filters

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/value"
)

func utf8DecodeRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}

func escapeFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(html.EscapeString(input.Render())), nil
}

var alreadyEscaped = regexp.MustCompile(`&(amp|lt|gt|quot|#39);`)

// escapeOnceFilter escapes input but leaves already-escaped entities alone,
// per §4.5's note that it "skips already-escaped `&…;` sequences" — a plain
// html.EscapeString pass would double-escape the leading `&`.
func escapeOnceFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	s := input.Render()
	var b strings.Builder
	for len(s) > 0 {
		if loc := alreadyEscaped.FindStringIndex(s); loc != nil && loc[0] == 0 {
			b.WriteString(s[:loc[1]])
			s = s[loc[1]:]
			continue
		}
		r, size := utf8DecodeRune(s)
		b.WriteString(html.EscapeString(string(r)))
		s = s[size:]
	}
	return value.String(b.String()), nil
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTMLFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(htmlTagPattern.ReplaceAllString(input.Render(), "")), nil
}

func newlineToBrFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	s := strings.ReplaceAll(input.Render(), "\r\n", "<br />\n")
	s = strings.ReplaceAll(s, "\n", "<br />\n")
	return value.String(s), nil
}
