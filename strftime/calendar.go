package strftime

// ISO weeks start on Monday and the first ISO week of the year is the one
// that contains the year's first Thursday.
const (
	isoWeekStartWeekday = 1
	isoWeek1Weekday     = 4

	// The smallest year day that isoWeekDays accepts.
	minYearDay = -366
)

// Returns true if the full (not YearBase relative) year is a leap year.
func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Returns the number of days in the given full year.
func yearLength(year int) int {
	if isLeap(year) {
		return 366
	}
	return 365
}

// Returns the number of days from the first day of the first ISO week of
// the year to the year day yday, which falls on weekday wday. The result is
// negative if yday belongs to the last ISO week of the previous year.
func isoWeekDays(yday, wday int) int {
	// Enough to make the left operand of % non negative.
	bigEnoughMultipleOf7 := (-minYearDay/7 + 2) * 7
	return yday -
		(yday-wday+isoWeek1Weekday+bigEnoughMultipleOf7)%7 +
		isoWeek1Weekday - isoWeekStartWeekday
}

// Works out which ISO week numbering year t belongs to. adjust is -1, 0 or 1
// for the previous, current or next calendar year, and days is the value
// of isoWeekDays against that year.
func isoYear(t *Time) (adjust, days int) {
	// A year with the same leap year behavior as t.Year+YearBase. This
	// stays in range for every t.Year, as does year-1.
	year := t.Year - 100
	if t.Year < 0 {
		year = t.Year + 300
	}

	days = isoWeekDays(t.YearDay, t.Weekday)
	if days < 0 {
		adjust = -1
		days = isoWeekDays(t.YearDay+yearLength(year-1), t.Weekday)
	} else if d := isoWeekDays(t.YearDay-yearLength(year), t.Weekday); d >= 0 {
		adjust = 1
		days = d
	}
	return
}

// Returns the ISO 8601 week numbering year (as a full year) and week number
// for t.
func ISOWeek(t *Time) (year, week int) {
	adjust, days := isoYear(t)
	return t.Year + YearBase + adjust, days/7 + 1
}

// Returns the magnitude of the full year and whether it is negative. The
// addition is done on unsigned values so that it can not overflow for any
// value of year.
func fullYear(year, adjust int) (u uint64, negative bool) {
	u = uint64(year) + YearBase + uint64(adjust)
	negative = year < -YearBase-adjust
	return
}

// Returns the century of the year for %C. Years 1 BCE and before are
// negative, years 0 through 99 are century 0.
func century(year int) (c int, negative bool) {
	negative = year < -YearBase
	zeroThru1899 := 0
	if !negative && year < 0 {
		zeroThru1899 = 1
	}
	c = (year-99*zeroThru1899)/100 + YearBase/100
	return
}

// Returns the two digit year in the range [0,99]. YearBase is a multiple
// of 100 so year%100 is the same as the full year modulo 100 except for
// negative years, which fold back into range.
func shortYear(year int) int {
	yy := year % 100
	if yy < 0 {
		if year < -YearBase {
			return -yy
		}
		return yy + 100
	}
	return yy
}

// Like shortYear but for the ISO week numbering year which may be one
// year away from year.
func isoShortYear(year, adjust int) int {
	yy := (year%100 + adjust) % 100
	if yy < 0 {
		if year < -YearBase-adjust {
			return -yy
		}
		return yy + 100
	}
	return yy
}

// Returns the number of days since 1970-01-01 of the given proleptic
// Gregorian date. month is 1 based.
func daysFromCivil(year, month, day int64) int64 {
	if month <= 2 {
		year--
	}
	era := year
	if era < 0 {
		era -= 399
	}
	era /= 400
	yoe := year - era*400
	mp := month + 9
	if month > 2 {
		mp = month - 3
	}
	doy := (153*mp+2)/5 + day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// Returns the seconds since the epoch for the local time t that has the
// given offset from UTC. Out of range months and days are normalized the
// same way mktime would.
func epochSeconds(t *Time, offset int) int64 {
	year := int64(t.Year) + YearBase
	month := int64(t.Month)
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	days := daysFromCivil(year, month+1, 1) + int64(t.Day) - 1
	return days*86400 +
		int64(t.Hour)*3600 +
		int64(t.Minute)*60 +
		int64(t.Second) -
		int64(offset)
}
