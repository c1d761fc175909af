package strftime

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	posixAbbreviatedDays = [7]string{
		"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat",
	}
	posixDays = [7]string{
		"Sunday", "Monday", "Tuesday", "Wednesday",
		"Thursday", "Friday", "Saturday",
	}
	posixAbbreviatedMonths = [12]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
	posixMonths = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

// The POSIX ("C") locale. This is used by any Formatter that does not
// have a Locale configured.
var POSIX Locale = posix{}

type posix struct{}

func (p posix) WeekdayName(wday int, abbreviated bool) string {
	if abbreviated {
		return posixAbbreviatedDays[wday]
	}
	return posixDays[wday]
}

func (p posix) MonthName(mon int, abbreviated, alternate bool) string {
	if abbreviated {
		return posixAbbreviatedMonths[mon]
	}
	return posixMonths[mon]
}

func (p posix) AMPM(pm bool) string {
	if pm {
		return "PM"
	}
	return "AM"
}

func (p posix) Format(kind FormatKind) string {
	switch kind {
	case DateTimeFormat:
		return "%a %b %e %H:%M:%S %Y"
	case DateFormat:
		return "%m/%d/%y"
	case TimeFormat:
		return "%H:%M:%S"
	case TimeAMPMFormat:
		return "%I:%M:%S %p"
	default:
		return ""
	}
}

func (p posix) Era(t *Time) (*Era, bool) {
	return nil, false
}

func (p posix) AltDigit(n uint64) (string, bool) {
	return "", false
}

// Casers keep state between calls so they can not be shared by concurrent
// formatters. A fresh one is made for each conversion.
func (p posix) ToUpper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func (p posix) ToLower(s string) string {
	return cases.Lower(language.Und).String(s)
}
