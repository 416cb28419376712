package filters

import (
	"net/url"

	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/value"
)

// urlEncodeFilter uses QueryEscape, which percent-encodes everything
// outside the unreserved set and encodes spaces as "+" — the form Liquid's
// url_encode is documented against.
func urlEncodeFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	return value.String(url.QueryEscape(input.Render())), nil
}

func urlDecodeFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	s, err := url.QueryUnescape(input.Render())
	if err != nil {
		return nil, fail("url_decode", input, args, "%s", err)
	}
	return value.String(s), nil
}
