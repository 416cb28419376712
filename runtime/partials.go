package runtime

import (
	"sort"

	"github.com/codingersid/liquidgo/liquiderr"
)

// Partial is anything `{% include %}`/`{% render %}` can look up and
// render: in practice always a *render.Template, but runtime can't import
// render (render imports runtime), so this package only needs the name by
// which a partial is addressed and a way to fetch its parsed form through
// a narrow interface supplied by the caller.
type Partial interface{}

// PartialSource resolves a partial name to its parsed form. partials/
// supplies the concrete in-memory and filesystem-backed implementations;
// render/ depends only on this interface.
type PartialSource interface {
	TryGet(name string) (Partial, bool)
	Names() []string
}

// GetPartial looks up name in src, returning a liquiderr.MissingPartial
// error (with an available-names hint) if it isn't found.
func GetPartial(src PartialSource, name string) (Partial, error) {
	if src == nil {
		return nil, liquiderr.MissingPartial(name, nil)
	}
	p, ok := src.TryGet(name)
	if !ok {
		names := append([]string(nil), src.Names()...)
		sort.Strings(names)
		return nil, liquiderr.MissingPartial(name, names)
	}
	return p, nil
}
