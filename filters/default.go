package filters

import (
	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/value"
)

// defaultFilter returns its argument when input's DefaultValue state query
// is true (Nil, false, or empty string/array/object), per §4.5.
func defaultFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	if input.QueryState(value.DefaultValue) {
		if v, ok := arg(args, 0); ok {
			return v, nil
		}
		return value.NilValue(), nil
	}
	return input, nil
}
