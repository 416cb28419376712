package filters

import "github.com/codingersid/liquidgo/render"

// AddStandardFilters registers the full §4.5 stdlib filter family into eng.
func AddStandardFilters(eng *render.Engine) {
	eng.RegisterFilter("upcase", upcaseFilter)
	eng.RegisterFilter("downcase", downcaseFilter)
	eng.RegisterFilter("capitalize", capitalizeFilter)
	eng.RegisterFilter("append", appendFilter)
	eng.RegisterFilter("prepend", prependFilter)
	eng.RegisterFilter("replace", replaceFilter)
	eng.RegisterFilter("replace_first", replaceFirstFilter)
	eng.RegisterFilter("remove", removeFilter)
	eng.RegisterFilter("remove_first", removeFirstFilter)
	eng.RegisterFilter("split", splitFilter)
	eng.RegisterFilter("strip", stripFilter)
	eng.RegisterFilter("lstrip", lstripFilter)
	eng.RegisterFilter("rstrip", rstripFilter)
	eng.RegisterFilter("strip_newlines", stripNewlinesFilter)
	eng.RegisterFilter("truncate", truncateFilter)
	eng.RegisterFilter("truncatewords", truncatewordsFilter)
	eng.RegisterFilter("slice", sliceFilter)
	eng.RegisterFilter("size", sizeFilter)

	eng.RegisterFilter("escape", escapeFilter)
	eng.RegisterFilter("escape_once", escapeOnceFilter)
	eng.RegisterFilter("strip_html", stripHTMLFilter)
	eng.RegisterFilter("newline_to_br", newlineToBrFilter)

	eng.RegisterFilter("url_encode", urlEncodeFilter)
	eng.RegisterFilter("url_decode", urlDecodeFilter)

	eng.RegisterFilter("join", joinFilter)
	eng.RegisterFilter("first", firstFilter)
	eng.RegisterFilter("last", lastFilter)
	eng.RegisterFilter("concat", concatFilter)
	eng.RegisterFilter("reverse", reverseFilter)
	eng.RegisterFilter("sort", sortFilter)
	eng.RegisterFilter("sort_natural", sortNaturalFilter)
	eng.RegisterFilter("uniq", uniqFilter)
	eng.RegisterFilter("map", mapFilter)
	eng.RegisterFilter("where", whereFilter)
	eng.RegisterFilter("compact", compactFilter)

	eng.RegisterFilter("plus", plusFilter)
	eng.RegisterFilter("minus", minusFilter)
	eng.RegisterFilter("times", timesFilter)
	eng.RegisterFilter("divided_by", dividedByFilter)
	eng.RegisterFilter("modulo", moduloFilter)
	eng.RegisterFilter("abs", absFilter)
	eng.RegisterFilter("at_least", atLeastFilter)
	eng.RegisterFilter("at_most", atMostFilter)
	eng.RegisterFilter("round", roundFilter)
	eng.RegisterFilter("ceil", ceilFilter)
	eng.RegisterFilter("floor", floorFilter)

	eng.RegisterFilter("date", dateFilter)
	eng.RegisterFilter("default", defaultFilter)
}
