package locale

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml"

	"github.com/liquidgecka/timefmt/internal/errors"
	"github.com/liquidgecka/timefmt/strftime"
)

// The on disk (TOML) form of a locale. Every field is a pointer or slice
// so that missing values can be told apart from empty ones; anything that
// is left out is taken from the POSIX locale.
type Definition struct {
	// A BCP 47 language tag used for case conversion ("tr", "de-CH", ...)
	Language *string `toml:"language"`

	Days                       []string `toml:"days"`
	AbbreviatedDays            []string `toml:"abbreviated_days"`
	Months                     []string `toml:"months"`
	AbbreviatedMonths          []string `toml:"abbreviated_months"`
	AlternateMonths            []string `toml:"alternate_months"`
	AlternateAbbreviatedMonths []string `toml:"alternate_abbreviated_months"`

	AM *string `toml:"am"`
	PM *string `toml:"pm"`

	DateTimeFormat    *string `toml:"date_time_format"`
	DateFormat        *string `toml:"date_format"`
	TimeFormat        *string `toml:"time_format"`
	TimeAMPMFormat    *string `toml:"time_ampm_format"`
	EraDateTimeFormat *string `toml:"era_date_time_format"`
	EraDateFormat     *string `toml:"era_date_format"`
	EraTimeFormat     *string `toml:"era_time_format"`

	// Alternate digits, indexed by value. alt_digits[7] is what %O renders
	// for 7.
	AltDigits []string `toml:"alt_digits"`

	Eras []*EraDefinition `toml:"era"`
}

// A single [[era]] table.
type EraDefinition struct {
	// The first and last day of the era as YYYY-MM-DD. End may also be
	// "-*" or "+*" for an era that runs forever backwards or forwards.
	Start *string `toml:"start"`
	End   *string `toml:"end"`

	// The era year that Start falls in, normally 1.
	Offset *int `toml:"offset"`

	// The name (%EC) and the format used for %EY.
	Name   *string `toml:"name"`
	Format *string `toml:"format"`
}

// Decodes a TOML locale definition. Unknown keys are errors.
func Decode(data []byte) (*Definition, error) {
	def := &Definition{}
	err := toml.NewDecoder(bytes.NewReader(data)).Strict(true).Decode(def)
	if err != nil {
		return nil, err
	}
	return def, nil
}

// Checks that every name list has the right length and that every format
// and era is usable.
func (d *Definition) validate() []string {
	var errs []string
	lists := []struct {
		name   string
		values []string
		length int
	}{
		{"days", d.Days, 7},
		{"abbreviated_days", d.AbbreviatedDays, 7},
		{"months", d.Months, 12},
		{"abbreviated_months", d.AbbreviatedMonths, 12},
		{"alternate_months", d.AlternateMonths, 12},
		{"alternate_abbreviated_months", d.AlternateAbbreviatedMonths, 12},
	}
	for _, list := range lists {
		if list.values != nil && len(list.values) != list.length {
			errs = append(errs, fmt.Sprintf(
				"%s must have exactly %d entries, not %d.",
				list.name,
				list.length,
				len(list.values)))
		}
	}
	if d.Language != nil {
		if _, err := parseLanguage(*d.Language); err != nil {
			errs = append(errs, fmt.Sprintf(
				"language is not a valid language tag: %s",
				err.Error()))
		}
	}
	for i, v := range d.AltDigits {
		if v == "" {
			errs = append(errs, fmt.Sprintf(
				"alt_digits[%d] can not be an empty string.", i))
		}
	}
	formats := []struct {
		name  string
		value *string
	}{
		{"date_time_format", d.DateTimeFormat},
		{"date_format", d.DateFormat},
		{"time_format", d.TimeFormat},
		{"time_ampm_format", d.TimeAMPMFormat},
		{"era_date_time_format", d.EraDateTimeFormat},
		{"era_date_format", d.EraDateFormat},
		{"era_time_format", d.EraTimeFormat},
	}
	for _, f := range formats {
		if f.value == nil {
			continue
		}
		for _, bad := range composites(*f.value, false) {
			errs = append(errs, fmt.Sprintf(
				"%s can not contain %s.", f.name, bad))
		}
	}
	for i, e := range d.Eras {
		errs = append(errs, e.validate(i)...)
	}
	return errs
}

// Parses an era boundary. infinite is -1 or 1 for "-*" and "+*".
func parseEraDate(s string) (t time.Time, infinite int, err error) {
	switch s {
	case "-*":
		return time.Time{}, -1, nil
	case "+*":
		return time.Time{}, 1, nil
	}
	t, err = time.Parse("2006-01-02", s)
	return
}

func (e *EraDefinition) validate(i int) []string {
	var errs []string
	switch {
	case e.Start == nil:
		errs = append(errs, fmt.Sprintf("era[%d].start is required.", i))
	default:
		if _, inf, err := parseEraDate(*e.Start); err != nil {
			errs = append(errs, fmt.Sprintf(
				"era[%d].start is not a valid date: %s", i, err.Error()))
		} else if inf != 0 {
			errs = append(errs, fmt.Sprintf(
				"era[%d].start can not be open ended.", i))
		}
	}
	if e.End == nil {
		errs = append(errs, fmt.Sprintf("era[%d].end is required.", i))
	} else if _, _, err := parseEraDate(*e.End); err != nil {
		errs = append(errs, fmt.Sprintf(
			"era[%d].end is not a valid date: %s", i, err.Error()))
	}
	if e.Name == nil || *e.Name == "" {
		errs = append(errs, fmt.Sprintf("era[%d].name is required.", i))
	}
	if e.Format != nil {
		for _, bad := range composites(*e.Format, true) {
			errs = append(errs, fmt.Sprintf(
				"era[%d].format can not contain %s.", i, bad))
		}
	}
	return errs
}

// Returns the directives in format that expand into other locale formats.
// Allowing these would let a locale expand into itself forever. If era is
// true then %EY is reported as well.
func composites(format string, era bool) []string {
	var found []string
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		start := i
		for i++; i < len(format) && strings.IndexByte("_-+0^#", format[i]) >= 0; i++ {
		}
		for ; i < len(format) && format[i] >= '0' && format[i] <= '9'; i++ {
		}
		modifier := byte(0)
		if i < len(format) && (format[i] == 'E' || format[i] == 'O') {
			modifier = format[i]
			i++
		}
		if i >= len(format) {
			break
		}
		switch c := format[i]; {
		case c == 'c', c == 'x', c == 'X', c == 'r':
			found = append(found, format[start:i+1])
		case era && c == 'Y' && modifier == 'E':
			found = append(found, format[start:i+1])
		}
	}
	return found
}

// Validates the definition and builds a Locale from it.
func (d *Definition) Compile() (*Locale, error) {
	if errs := d.validate(); len(errs) > 0 {
		list := make([]error, len(errs))
		for i, e := range errs {
			list[i] = errors.New(e)
		}
		return nil, errors.NewMultipleError("invalid locale", list)
	}

	l := &Locale{
		days:     posixNames(d.Days, strftime.POSIX.WeekdayName, 7, false),
		abbrDays: posixNames(d.AbbreviatedDays, strftime.POSIX.WeekdayName, 7, true),
		ampm:     [2]string{"AM", "PM"},
		formats:  map[strftime.FormatKind]string{},
		digits:   d.AltDigits,
	}
	l.months = monthNames(d.Months, false)
	l.abbrMonths = monthNames(d.AbbreviatedMonths, true)
	l.altMonths = l.months
	if d.AlternateMonths != nil {
		copy(l.altMonths[:], d.AlternateMonths)
	}
	l.altAbbrMonths = l.abbrMonths
	if d.AlternateAbbreviatedMonths != nil {
		copy(l.altAbbrMonths[:], d.AlternateAbbreviatedMonths)
	}
	if d.AM != nil {
		l.ampm[0] = *d.AM
	}
	if d.PM != nil {
		l.ampm[1] = *d.PM
	}

	for kind, v := range map[strftime.FormatKind]*string{
		strftime.DateTimeFormat:    d.DateTimeFormat,
		strftime.DateFormat:        d.DateFormat,
		strftime.TimeFormat:        d.TimeFormat,
		strftime.TimeAMPMFormat:    d.TimeAMPMFormat,
		strftime.EraDateTimeFormat: d.EraDateTimeFormat,
		strftime.EraDateFormat:     d.EraDateFormat,
		strftime.EraTimeFormat:     d.EraTimeFormat,
	} {
		if v != nil {
			l.formats[kind] = *v
		} else {
			l.formats[kind] = strftime.POSIX.Format(kind)
		}
	}

	tag := "und"
	if d.Language != nil {
		tag = *d.Language
	}
	l.language, _ = parseLanguage(tag)

	for _, e := range d.Eras {
		l.eras = append(l.eras, compileEra(e))
	}
	return l, nil
}

func posixNames(
	names []string,
	lookup func(int, bool) string,
	n int,
	abbreviated bool,
) [7]string {
	var out [7]string
	for i := 0; i < n; i++ {
		if names != nil {
			out[i] = names[i]
		} else {
			out[i] = lookup(i, abbreviated)
		}
	}
	return out
}

func monthNames(names []string, abbreviated bool) (out [12]string) {
	for i := range out {
		if names != nil {
			out[i] = names[i]
		} else {
			out[i] = strftime.POSIX.MonthName(i, abbreviated, false)
		}
	}
	return
}
