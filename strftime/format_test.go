package strftime

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/liquidgecka/testlib"
)

var (
	// Friday 2024/01/05 13:04:09.000120000 in a -05:00 zone.
	friday = Time{
		Year:        2024 - YearBase,
		Month:       0,
		Day:         5,
		Hour:        13,
		Minute:      4,
		Second:      9,
		YearDay:     4,
		Weekday:     5,
		DST:         Standard,
		Offset:      -18000,
		OffsetKnown: true,
		Zone:        "EST",
		Nanosecond:  120000,
	}

	// Monday 2025/12/29 00:00:00 UTC, which is in ISO week 1 of 2026.
	lateDecember = Time{
		Year:        2025 - YearBase,
		Month:       11,
		Day:         29,
		YearDay:     362,
		Weekday:     1,
		OffsetKnown: true,
		Zone:        "UTC",
	}

	// Sunday 2027/01/03 which is in ISO week 53 of 2026.
	earlyJanuary = Time{
		Year:        2027 - YearBase,
		Month:       0,
		Day:         3,
		YearDay:     2,
		Weekday:     0,
		OffsetKnown: true,
	}
)

// Renders format against t with the default Formatter, failing the test if
// an error is returned.
func mustFormat(T *testlib.T, format string, t Time) string {
	s, err := Format(format, &t)
	T.ExpectSuccess(err)
	return s
}

func TestFormat_Date(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	tm := Time{
		Year:    2024 - YearBase,
		Month:   0,
		Day:     5,
		Weekday: 1,
		YearDay: 4,
	}
	T.Equal(mustFormat(T, "%Y-%m-%d", tm), "2024-01-05")
}

func TestFormat_Time(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	tm := Time{Hour: 7, Minute: 5, Second: 9}
	T.Equal(mustFormat(T, "%H:%M:%S", tm), "07:05:09")
}

func TestFormat_Offset(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	tm := Time{Offset: -18000, OffsetKnown: true}
	T.Equal(mustFormat(T, "%z", tm), "-0500")
	T.Equal(mustFormat(T, "%:z", tm), "-05:00")
	T.Equal(mustFormat(T, "%::z", tm), "-05:00:00")
	T.Equal(mustFormat(T, "%:::z", tm), "-05")

	tm.Offset = 19800
	T.Equal(mustFormat(T, "%z", tm), "+0530")
	T.Equal(mustFormat(T, "%:::z", tm), "+05:30")

	tm.Offset = 3600 + 30*60 + 15
	T.Equal(mustFormat(T, "%:::z", tm), "+01:30:15")

	tm.Offset = 0
	T.Equal(mustFormat(T, "%z", tm), "+0000")
	tm.Zone = "-00"
	T.Equal(mustFormat(T, "%z", tm), "-0000")

	// Widths and pad flags work the same as any other number.
	tm.Zone = ""
	tm.Offset = -18000
	T.Equal(mustFormat(T, "%8z", tm), "-0000500")
	T.Equal(mustFormat(T, "%_8z", tm), "    -500")
	T.Equal(mustFormat(T, "%-z", tm), "-500")
}

func TestFormat_OffsetEdgeCases(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	// Unknown DST renders nothing at all.
	tm := Time{Offset: 3600, OffsetKnown: true, DST: DSTUnknown}
	T.Equal(mustFormat(T, "[%z][%:z]", tm), "[][]")

	// Four or more colons is not a valid directive.
	tm.DST = Standard
	T.Equal(mustFormat(T, "%::::z", tm), "%::::z")

	// A colon not followed by z stops at the first colon.
	T.Equal(mustFormat(T, "%:x", tm), "%:x")
	T.Equal(mustFormat(T, "%::", tm), "%::")
}

func TestFormat_ISOWeek(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%G-W%V-%u", lateDecember), "2026-W01-1")
	T.Equal(mustFormat(T, "%g", lateDecember), "26")
	T.Equal(mustFormat(T, "%Y", lateDecember), "2025")
	T.Equal(mustFormat(T, "%G-W%V-%u", earlyJanuary), "2026-W53-7")
	T.Equal(mustFormat(T, "%G-W%V", friday), "2024-W01")
}

func TestFormat_SignPolicy(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	// Year -1 (2 BCE) always carries a minus sign.
	tm := Time{Year: -1 - YearBase}
	T.Equal(mustFormat(T, "%+5Y", tm), "-0001")
	T.Equal(mustFormat(T, "%Y", tm), "-001")

	// A + flag without a width only adds the sign once the year is wider
	// than four digits, so %+Y leaves 2024 unsigned.
	tm.Year = 2024 - YearBase
	T.Equal(mustFormat(T, "%+5Y", tm), "+2024")
	T.Equal(mustFormat(T, "%+Y", tm), "2024")
	T.Equal(mustFormat(T, "%+4Y", tm), "2024")

	tm.Year = 12345 - YearBase
	T.Equal(mustFormat(T, "%+Y", tm), "+12345")
	T.Equal(mustFormat(T, "%Y", tm), "12345")

	// The _ flag puts the spaces before the sign.
	tm.Year = -1 - YearBase
	T.Equal(mustFormat(T, "%_7Y", tm), "     -1")
}

func TestFormat_Century(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%C", friday), "20")
	T.Equal(mustFormat(T, "%C", Time{Year: 0}), "19")
	T.Equal(mustFormat(T, "%C", Time{Year: 50 - YearBase}), "00")
	T.Equal(mustFormat(T, "%C", Time{Year: -150 - YearBase}), "-1")
}

func TestFormat_ShortYear(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%y", friday), "24")
	T.Equal(mustFormat(T, "%y", Time{Year: 5 - YearBase}), "05")
	T.Equal(mustFormat(T, "%y", Time{Year: -5 - YearBase}), "05")
}

func TestFormat_Names(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%a %A %b %h %B", friday), "Fri Friday Jan Jan January")
	T.Equal(mustFormat(T, "%^a %#A %^B", friday), "FRI FRIDAY JANUARY")
	T.Equal(mustFormat(T, "%10A|%-10A|%_10A", friday), "    Friday|Friday|    Friday")
	T.Equal(mustFormat(T, "%010a", friday), "0000000Fri")
	T.Equal(mustFormat(T, "%Ob", friday), "Jan")
}

func TestFormat_BadNames(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	tm := friday
	tm.Weekday = 9
	tm.Month = -3
	T.Equal(mustFormat(T, "%a %A %b %B", tm), "? ? ? ?")
}

func TestFormat_AMPM(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%p %P %#p %^P", friday), "PM pm pm pm")
	T.Equal(mustFormat(T, "%p", Time{Hour: 11}), "AM")
	T.Equal(mustFormat(T, "%p", Time{Hour: 12}), "PM")
}

func TestFormat_Hours(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%H %I %k %l", friday), "13 01 13  1")
	T.Equal(mustFormat(T, "%H %I %k %l", Time{}), "00 12  0 12")
	T.Equal(mustFormat(T, "%I %l", Time{Hour: 12}), "12 12")
	T.Equal(mustFormat(T, "%-k|%0l", Time{Hour: 9}), "9|09")
}

func TestFormat_DayAndYearDay(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%d %e %j", friday), "05  5 005")
	T.Equal(mustFormat(T, "%-d %-e %-j", friday), "5 5 5")
	T.Equal(mustFormat(T, "%_d %0e", friday), " 5 05")
}

func TestFormat_Weeks(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%U %W %w %u", friday), "00 01 5 5")

	// Sundays are day 7 for %u and day 0 for %w.
	T.Equal(mustFormat(T, "%w %u", earlyJanuary), "0 7")
	T.Equal(mustFormat(T, "%U %W", earlyJanuary), "01 00")
}

func TestFormat_Quarter(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	expected := []string{
		"1", "1", "1", "2", "2", "2", "3", "3", "3", "4", "4", "4",
	}
	for month, want := range expected {
		T.Equal(mustFormat(T, "%q", Time{Month: month}), want)
	}
}

func TestFormat_Composites(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%c", friday), "Fri Jan  5 13:04:09 2024")
	T.Equal(mustFormat(T, "%D", friday), "01/05/24")
	T.Equal(mustFormat(T, "%x", friday), "01/05/24")
	T.Equal(mustFormat(T, "%X", friday), "13:04:09")
	T.Equal(mustFormat(T, "%R", friday), "13:04")
	T.Equal(mustFormat(T, "%T", friday), "13:04:09")
	T.Equal(mustFormat(T, "%r", friday), "01:04:09 PM")
	T.Equal(mustFormat(T, "%F", friday), "2024-01-05")
	T.Equal(mustFormat(T, "%^c", friday), "FRI JAN  5 13:04:09 2024")

	// The width pads the whole expansion.
	T.Equal(mustFormat(T, "%12D", friday), "    01/05/24")
	T.Equal(mustFormat(T, "%_10R", friday), "     13:04")

	// Invalid modifiers are copied out literally.
	T.Equal(mustFormat(T, "%Oc %ED %OF", friday), "%Oc %ED %OF")

	// The E variants fall back to the plain format in the POSIX locale.
	T.Equal(mustFormat(T, "%Ec|%Ex|%EX", friday), mustFormat(T, "%c|%x|%X", friday))
}

func TestFormat_FullDate(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	// %F has a minimum year width of four and signs years past 9999.
	tm := Time{Year: 12024 - YearBase, Month: 0, Day: 5}
	T.Equal(mustFormat(T, "%F", tm), "+12024-01-05")
	tm.Year = 24 - YearBase
	T.Equal(mustFormat(T, "%F", tm), "0024-01-05")

	// A width applies to the year part.
	tm.Year = 2024 - YearBase
	T.Equal(mustFormat(T, "%12F", tm), "002024-01-05")
	T.Equal(mustFormat(T, "%+12F", tm), "+02024-01-05")
	T.Equal(mustFormat(T, "%_12F", tm), "  2024-01-05")
}

func TestFormat_Nanoseconds(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%N", friday), "000120000")
	T.Equal(mustFormat(T, "%3N", friday), "000")
	T.Equal(mustFormat(T, "%6N", friday), "000120")
	tm := Time{Nanosecond: 123456789}
	T.Equal(mustFormat(T, "%N", tm), "123456789")
	T.Equal(mustFormat(T, "%3N", tm), "123")
	T.Equal(mustFormat(T, "%12N", tm), "123456789000")
	T.Equal(mustFormat(T, "%_12N", tm), "123456789   ")
	T.Equal(mustFormat(T, "%-12N", tm), "123456789")
	tm.Nanosecond = 500000000
	T.Equal(mustFormat(T, "%N", tm), "500000000")
	T.Equal(mustFormat(T, "%1N", tm), "5")
}

func TestFormat_Epoch(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%s", friday), "1704477849")
	T.Equal(mustFormat(T, "%s", Time{Year: 70, Day: 1}), "0")
	T.Equal(mustFormat(T, "%s", Time{Year: 69, Month: 11, Day: 31, Hour: 23, Minute: 59, Second: 59}), "-1")
	T.Equal(mustFormat(T, "%5s", Time{Year: 70, Day: 1, Second: 42}), "00042")
}

func TestFormat_ZoneName(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%Z %#Z %^Z", friday), "EST est EST")

	// Universal time without a name is GMT.
	tm := Time{}
	s, err := (&Formatter{Universal: true}).Format("%Z", &tm)
	T.ExpectSuccess(err)
	T.Equal(s, "GMT")
	T.Equal(mustFormat(T, "[%Z]", tm), "[]")
}

func TestFormat_Literals(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	for _, s := range []string{
		"",
		"static_string",
		"multi byte é日本",
		"tabs\tand\nnewlines",
	} {
		T.Equal(mustFormat(T, s, friday), s)
		T.Equal(mustFormat(T, s, Time{}), s)
	}
	T.Equal(mustFormat(T, "%%%n%t", friday), "%\n\t")
	T.Equal(mustFormat(T, "%5%|%5n", friday), "    %|    \n")
}

func TestFormat_UnknownDirectives(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	T.Equal(mustFormat(T, "%J %i %Ea %Ed %E%", friday), "%J %i %Ea %Ed %E%")
	T.Equal(mustFormat(T, "%5J", friday), "  %5J")
	T.Equal(mustFormat(T, "%^5j%^i", friday), "00005%^I")
	T.Equal(mustFormat(T, "trailing %", friday), "trailing %")
	T.Equal(mustFormat(T, "trailing %-", friday), "trailing %-")
	T.Equal(mustFormat(T, "trailing %E", friday), "trailing %E")

	// A non ASCII conversion is copied (and case folded) as a whole
	// character in both byte and rune formats.
	T.Equal(mustFormat(T, "%^ß|%^é|%é", friday), "%^SS|%^É|%é")
	runes := []rune("%^ß|%^é|%é")
	buf := make([]rune, Default.LenRunes(runes, &friday))
	n, err := Default.RenderRunes(buf, runes, &friday)
	T.ExpectSuccess(err)
	T.Equal(string(buf[:n]), "%^SS|%^É|%é")

	// Broken UTF-8 is still copied byte for byte.
	T.Equal(mustFormat(T, "%\xc3|", friday), "%\xc3|")
}

func TestFormat_HugeWidth(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	// Widths saturate rather than overflow, which is then too large to
	// allocate.
	tm := friday
	T.Equal(Len("%99999999999999999999999999Y", &tm) > MaxLength, true)
	_, err := Format("%99999999999999999999999999Y", &tm)
	T.Equal(err, ErrInsufficientCapacity)
}

func TestFormatter_Capacity(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	tm := friday
	format := "%A, %B %d"

	n := Len(format, &tm)
	T.Equal(n, len("Friday, January 05"))

	buf := make([]byte, n)
	written, err := Render(buf, format, &tm)
	T.ExpectSuccess(err)
	T.Equal(written, n)
	T.Equal(string(buf[:written]), "Friday, January 05")

	written, err = Render(buf[:n-1], format, &tm)
	T.Equal(err, ErrInsufficientCapacity)
	T.Equal(written, 0)

	// An empty result is a success, not a failure.
	written, err = Render(nil, "", &tm)
	T.ExpectSuccess(err)
	T.Equal(written, 0)
	_, err = Render(nil, "x", &tm)
	T.Equal(err, ErrInsufficientCapacity)
}

func TestFormatter_ProbeMatchesRender(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	formats := []string{
		"%Y-%m-%d",
		"%c",
		"%+20F|%_10T",
		"%^#A %#Z %N %s",
		"%:::z %8:z",
		"%99b%-5H",
		"%G-W%V %g %C %q",
		"unknown %J trailing %",
		"é日%a本",
	}
	times := []Time{friday, lateDecember, earlyJanuary, {}, {Year: -3000}}
	for _, format := range formats {
		for i := range times {
			n := Len(format, &times[i])
			buf := make([]byte, n)
			written, err := Render(buf, format, &times[i])
			T.ExpectSuccess(err)
			T.Equal(written, n)

			s, err := Format(format, &times[i])
			T.ExpectSuccess(err)
			T.Equal(s, string(buf))

			var b bytes.Buffer
			streamed, err := Default.Fprint(&b, format, &times[i])
			T.ExpectSuccess(err)
			T.Equal(streamed, n)
			T.Equal(b.String(), s)

			runes := []rune(format)
			rn := Default.LenRunes(runes, &times[i])
			rbuf := make([]rune, rn)
			written, err = Default.RenderRunes(rbuf, runes, &times[i])
			T.ExpectSuccess(err)
			T.Equal(written, rn)
			T.Equal(string(rbuf), s)

			if n > 0 {
				_, err = Render(buf[:n-1], format, &times[i])
				T.Equal(err, ErrInsufficientCapacity)
			}
		}
	}
}

func TestFormatter_WidthMonotonic(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	tm := friday
	digits := func(s string) string {
		return strings.TrimLeft(strings.TrimLeft(s, " "), "+-0 ")
	}
	for _, conv := range []string{"Y", "m", "d", "e", "H", "j", "s", "z", "G", "y"} {
		prev := mustFormat(T, "%1"+conv, tm)
		for width := 2; width < 16; width++ {
			s := mustFormat(T, "%"+strconv.Itoa(width)+conv, tm)
			T.Equal(len(s) >= len(prev), true)
			T.Equal(len(s) >= width, true)
			T.Equal(digits(s), digits(prev))
			prev = s
		}
	}
}

func TestFormatter_AppendFormat(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	tm := friday
	b, err := Default.AppendFormat([]byte("date: "), "%F", &tm)
	T.ExpectSuccess(err)
	T.Equal(string(b), "date: 2024-01-05")
}

func TestFormatter_Fprint(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	tm := friday
	var b bytes.Buffer
	n, err := Default.Fprint(&b, "%T %Z", &tm)
	T.ExpectSuccess(err)
	T.Equal(n, 12)
	T.Equal(b.String(), "13:04:09 EST")
}

func TestFromTime(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()
	zone := time.FixedZone("XST", -7*3600)
	tm := FromTime(time.Date(2024, time.March, 1, 23, 59, 58, 7, zone))
	T.Equal(tm.Year, 124)
	T.Equal(tm.Month, 2)
	T.Equal(tm.Day, 1)
	T.Equal(tm.YearDay, 60)
	T.Equal(tm.Weekday, 5)
	T.Equal(tm.Offset, -7*3600)
	T.Equal(tm.OffsetKnown, true)
	T.Equal(tm.Zone, "XST")
	T.Equal(tm.DST, Standard)
	T.Equal(mustFormat(T, "%F %T.%N %z %Z", tm), "2024-03-01 23:59:58.000000007 -0700 XST")
}
