package locale

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/liquidgecka/timefmt/strftime"
)

// A compiled locale. Locales are immutable once compiled so they can be
// shared by any number of formatters.
type Locale struct {
	days          [7]string
	abbrDays      [7]string
	months        [12]string
	abbrMonths    [12]string
	altMonths     [12]string
	altAbbrMonths [12]string
	ampm          [2]string
	formats       map[strftime.FormatKind]string
	digits        []string
	eras          []era
	language      language.Tag

	// The name this locale was registered under and the digest of the
	// definition it was compiled from.
	name   string
	digest uint64
}

// An era with its boundaries reduced to comparable days.
type era struct {
	strftime.Era
	start    day
	end      day
	infinite int
}

// A calendar day. The year is YearBase relative like strftime.Time so
// any Time can be compared without year arithmetic.
type day struct {
	year  int
	month int
	day   int
}

func (d day) compare(o day) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(d.month, o.month)
	default:
		return cmpInt(d.day, o.day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func parseLanguage(tag string) (language.Tag, error) {
	return language.Parse(tag)
}

// Builds a day from a full (not YearBase relative) year.
func dayKey(year, month, dom int) day {
	return day{year: year - strftime.YearBase, month: month, day: dom}
}

func compileEra(d *EraDefinition) era {
	start, _, _ := parseEraDate(*d.Start)
	end, infinite, _ := parseEraDate(*d.End)
	e := era{
		start:    dayKey(start.Year(), int(start.Month()), start.Day()),
		infinite: infinite,
	}
	if infinite == 0 {
		e.end = dayKey(end.Year(), int(end.Month()), end.Day())
	}
	e.StartYear = start.Year() - strftime.YearBase
	e.Offset = 1
	if d.Offset != nil {
		e.Offset = *d.Offset
	}
	e.Direction = 1
	if infinite < 0 || (infinite == 0 && e.end.compare(e.start) < 0) {
		e.Direction = -1
	}
	e.Name = *d.Name
	e.Format = "%EC%Ey"
	if d.Format != nil && *d.Format != "" {
		e.Format = *d.Format
	}
	return e
}

// Returns true if d falls inside of the era.
func (e *era) contains(d day) bool {
	if e.Direction > 0 {
		return d.compare(e.start) >= 0 &&
			(e.infinite > 0 || d.compare(e.end) <= 0)
	}
	return d.compare(e.start) <= 0 &&
		(e.infinite < 0 || d.compare(e.end) >= 0)
}

// The name the locale was registered under, if any.
func (l *Locale) Name() string {
	return l.name
}

// The HighwayHash digest of the definition this locale was compiled from.
func (l *Locale) Digest() uint64 {
	return l.digest
}

func (l *Locale) WeekdayName(wday int, abbreviated bool) string {
	if abbreviated {
		return l.abbrDays[wday]
	}
	return l.days[wday]
}

func (l *Locale) MonthName(mon int, abbreviated, alternate bool) string {
	switch {
	case alternate && abbreviated:
		return l.altAbbrMonths[mon]
	case alternate:
		return l.altMonths[mon]
	case abbreviated:
		return l.abbrMonths[mon]
	default:
		return l.months[mon]
	}
}

func (l *Locale) AMPM(pm bool) string {
	if pm {
		return l.ampm[1]
	}
	return l.ampm[0]
}

func (l *Locale) Format(kind strftime.FormatKind) string {
	return l.formats[kind]
}

// Returns the first era that contains t.
func (l *Locale) Era(t *strftime.Time) (*strftime.Era, bool) {
	d := day{year: t.Year, month: t.Month + 1, day: t.Day}
	for i := range l.eras {
		if l.eras[i].contains(d) {
			return &l.eras[i].Era, true
		}
	}
	return nil, false
}

func (l *Locale) AltDigit(n uint64) (string, bool) {
	if n < uint64(len(l.digits)) {
		return l.digits[n], true
	}
	return "", false
}

// Casers carry state so a new one is made for each call.
func (l *Locale) ToUpper(s string) string {
	return cases.Upper(l.language).String(s)
}

func (l *Locale) ToLower(s string) string {
	return cases.Lower(l.language).String(s)
}
