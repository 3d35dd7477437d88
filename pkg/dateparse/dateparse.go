// Package dateparse converts free-text date strings into calendar
// dates. The parser tries its layouts in a fixed priority order and
// commits to the first layout that structurally matches, whether or
// not the digits form a valid calendar date. This order is a
// documented business rule: ISO-like year-first forms are checked
// before day-first and month-first forms, so an ambiguous string like
// "01-02-2023" always goes down the month-day-year path.
package dateparse

import (
	"regexp"
	"strconv"
	"time"
)

// Layout describes one recognizable date shape.
type Layout struct {
	// Name identifies the layout in configuration
	// ("ymd", "dmy", "mdy").
	Name string

	// re must match the whole trimmed input for the layout to
	// commit. Capture groups are in the order they appear in the
	// input string.
	re *regexp.Regexp

	// order maps capture groups 1..3 to year, month, day.
	toDate func(g1, g2, g3 int) (year, month, day int)
}

var layouts = map[string]Layout{
	"ymd": {
		Name: "ymd",
		re:   regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`),
		toDate: func(g1, g2, g3 int) (int, int, int) {
			return g1, g2, g3
		},
	},
	"dmy": {
		Name: "dmy",
		re:   regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`),
		toDate: func(g1, g2, g3 int) (int, int, int) {
			return g3, g2, g1
		},
	},
	"mdy": {
		Name: "mdy",
		re:   regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`),
		toDate: func(g1, g2, g3 int) (int, int, int) {
			return g3, g1, g2
		},
	},
}

// DefaultPriority is the default layout order: year-first, then
// day-first, then month-first.
var DefaultPriority = []string{"ymd", "dmy", "mdy"}

// Parser parses date strings against an ordered list of layouts.
type Parser struct {
	layouts []Layout
}

// New creates a Parser from layout names in priority order. Unknown
// names are ignored; an empty or fully unknown list falls back to
// DefaultPriority.
func New(priority []string) *Parser {
	var ll []Layout
	for _, name := range priority {
		if l, ok := layouts[name]; ok {
			ll = append(ll, l)
		}
	}
	if len(ll) == 0 {
		for _, name := range DefaultPriority {
			ll = append(ll, layouts[name])
		}
	}
	return &Parser{layouts: ll}
}

// Parse returns the calendar date for s, or nil when no layout
// structurally matches or the matched layout does not form a valid
// calendar date. Once a layout matches structurally there is no
// fallthrough to later layouts.
func (p *Parser) Parse(s string) *time.Time {
	for _, l := range p.layouts {
		groups := l.re.FindStringSubmatch(s)
		if groups == nil {
			continue
		}

		g1, _ := strconv.Atoi(groups[1])
		g2, _ := strconv.Atoi(groups[2])
		g3, _ := strconv.Atoi(groups[3])
		year, month, day := l.toDate(g1, g2, g3)

		return makeDate(year, month, day)
	}
	return nil
}

// makeDate builds a UTC date and rejects values that time.Date would
// silently normalize (e.g. month 13 or February 30).
func makeDate(year, month, day int) *time.Time {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return nil
	}
	return &d
}
