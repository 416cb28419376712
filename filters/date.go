package filters

import (
	"fmt"
	"strings"
	"time"

	"github.com/codingersid/liquidgo/render"
	"github.com/codingersid/liquidgo/value"
)

var monthLong = []string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

// dateFilter implements §4.5's `date(format)`: format codes are
// `[year]`, `[month repr:long|short|numerical]`, `[day]`, `[hour]`,
// `[minute]`, `[second]`, with everything else passed through literally.
// Input that does not coerce to a date per §3 is returned unchanged,
// matching the spec's pass-through-on-non-date contract.
func dateFilter(input *value.Value, args []render.FilterArg) (*value.Value, error) {
	format := argString(args, 0, "[year]-[month repr:numerical]-[day]")
	d, ok := input.ToDate(todayRef())
	if !ok {
		return input, nil
	}
	t, _ := input.AsDateTime()
	return value.String(formatDate(d, t, format)), nil
}

func formatDate(d value.Date, t time.Time, format string) string {
	var b strings.Builder
	i := 0
	for i < len(format) {
		if format[i] != '[' {
			b.WriteByte(format[i])
			i++
			continue
		}
		end := strings.IndexByte(format[i:], ']')
		if end < 0 {
			b.WriteString(format[i:])
			break
		}
		field := format[i+1 : i+end]
		b.WriteString(renderDateField(d, t, field))
		i += end + 1
	}
	return b.String()
}

func renderDateField(d value.Date, t time.Time, field string) string {
	name := field
	repr := ""
	if idx := strings.Index(field, "repr:"); idx >= 0 {
		name = strings.TrimSpace(field[:idx])
		repr = strings.TrimSpace(field[idx+len("repr:"):])
	}
	switch name {
	case "year":
		return fmt.Sprintf("%04d", d.Year)
	case "day":
		return fmt.Sprintf("%02d", d.Day)
	case "hour":
		return fmt.Sprintf("%02d", t.Hour())
	case "minute":
		return fmt.Sprintf("%02d", t.Minute())
	case "second":
		return fmt.Sprintf("%02d", t.Second())
	case "month":
		switch repr {
		case "long":
			if d.Month >= 1 && d.Month <= 12 {
				return monthLong[d.Month]
			}
		case "short":
			if d.Month >= 1 && d.Month <= 12 {
				return monthLong[d.Month][:3]
			}
		}
		return fmt.Sprintf("%02d", d.Month)
	default:
		return "[" + field + "]"
	}
}
