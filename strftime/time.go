package strftime

import (
	"time"
)

// All Year values are stored as an offset from this year.
const YearBase = 1900

// Tracks whether daylight saving time is in effect for a given Time.
type DST int8

const (
	DSTUnknown = DST(-1)
	Standard   = DST(0)
	Daylight   = DST(1)
)

// A broken down time value. This mirrors the fields of a C struct tm so
// values can be fed in from anywhere, including ones that are out of the
// normal range. The formatter never modifies a Time.
type Time struct {
	// The year, stored as the number of years since YearBase.
	Year int

	// Month of the year, 0 is January.
	Month int

	// Day of the month (1-31), hour (0-23), minute (0-59) and
	// second (0-60).
	Day    int
	Hour   int
	Minute int
	Second int

	// Day of the year with 0 being the first of January. Callers may set
	// this to -1 to mean the day before the start of the year.
	YearDay int

	// Day of the week with 0 being Sunday.
	Weekday int

	// Whether or not daylight saving time is in effect. If this is
	// DSTUnknown then the %z directive renders nothing.
	DST DST

	// The offset from UTC in seconds east of Greenwich. This is only
	// used if OffsetKnown is true, otherwise the Formatter's Zone is
	// consulted.
	Offset      int
	OffsetKnown bool

	// The abbreviated zone name (EST, CEST, ...). May be empty.
	Zone string

	// Fractional seconds for the %N directive.
	Nanosecond int
}

// Breaks a time.Time into a Time value. The zone name, offset and DST flag
// are all taken from the location attached to t.
func FromTime(t time.Time) Time {
	name, offset := t.Zone()
	dst := Standard
	if t.IsDST() {
		dst = Daylight
	}
	return Time{
		Year:        t.Year() - YearBase,
		Month:       int(t.Month()) - 1,
		Day:         t.Day(),
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		YearDay:     t.YearDay() - 1,
		Weekday:     int(t.Weekday()),
		DST:         dst,
		Offset:      offset,
		OffsetKnown: true,
		Zone:        name,
		Nanosecond:  t.Nanosecond(),
	}
}

// Resolves timezone data for times that do not carry it themselves.
type Zone interface {
	// Returns the offset from UTC in seconds for the local time given. If
	// the offset can not be computed then ok will be false.
	OffsetAt(t *Time) (offset int, ok bool)

	// Returns the abbreviated zone name used for standard time, or for
	// daylight saving time if daylight is true.
	Abbreviation(daylight bool) string
}

// An alternate calendar era as described by a locale. Years inside of the
// era are counted from StartYear.
type Era struct {
	// The first year of the era (as an offset from YearBase.)
	StartYear int

	// The era year that StartYear is rendered as.
	Offset int

	// +1 if the era counts forward from StartYear, -1 if backwards.
	Direction int

	// The era name (%EC) and the format used for the full era year (%EY).
	Name   string
	Format string
}

// The kinds of composite formats a Locale provides.
type FormatKind int

const (
	DateTimeFormat = FormatKind(iota)
	DateFormat
	TimeFormat
	TimeAMPMFormat
	EraDateTimeFormat
	EraDateFormat
	EraTimeFormat
)

// Supplies the locale specific data that the formatter consumes. The
// formatter guarantees that index values passed in are always in range.
type Locale interface {
	// Returns the name of the day of the week (0 = Sunday).
	WeekdayName(wday int, abbreviated bool) string

	// Returns the name of the month (0 = January). If alternate is true
	// then the stand alone (nominative) form is returned.
	MonthName(mon int, abbreviated, alternate bool) string

	// Returns the AM or PM marker.
	AMPM(pm bool) string

	// Returns a composite format string. Era formats may be empty in which
	// case the non era version is used instead.
	Format(kind FormatKind) string

	// Returns the era that contains t, if any.
	Era(t *Time) (*Era, bool)

	// Returns the alternate representation of n, if the locale has one.
	AltDigit(n uint64) (string, bool)

	// Case conversion rules for the locale's language.
	ToUpper(s string) string
	ToLower(s string) string
}
