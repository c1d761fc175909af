package strftime

// The state for a single formatting call. Nothing in here is modified
// once rendering starts.
type engine[C char] struct {
	f      *Formatter
	loc    Locale
	t      *Time
	zone   string
	hour12 int
}

// Returns the hour on a 12 hour clock.
func hour12(hour int) int {
	if hour > 12 {
		hour -= 12
	}
	if hour == 0 {
		return 12
	}
	return hour
}

// Renders format into out. upper, yrSpec and width come from the directive
// that expanded into format, at the top level they are false, padDefault
// and -1. width only applies to the first element of format.
func (e *engine[C]) render(
	out *output[C],
	format []C,
	upper bool,
	yrSpec byte,
	width int,
) {
	for i := 0; i < len(format) && out.err == nil; width = -1 {
		if format[i] != '%' {
			j := i + 1
			for j < len(format) && format[j] != '%' {
				j++
			}
			out.addChar(format[i], width, padDefault)
			if j > i+1 {
				out.addChars(format[i+1:j], -1, padDefault)
			}
			i = j
			continue
		}

		d := scanDirective(format, i, width)
		d.upper = d.upper || upper
		e.convert(out, format, &d, yrSpec)
		i = d.end
	}
}

// Renders a single directive.
func (e *engine[C]) convert(
	out *output[C],
	format []C,
	d *directive,
	yrSpec byte,
) {
	t := e.t
	switch d.conv {
	case '%':
		if d.modifier != 0 {
			e.bad(out, format, d)
			return
		}
		out.addChar('%', d.width, d.pad)

	case 'a', 'A':
		if d.modifier != 0 {
			e.bad(out, format, d)
			return
		}
		if d.changeCase {
			d.upper, d.lower = true, false
		}
		e.text(out, d, e.weekdayName(d.conv == 'a'))

	case 'b', 'h', 'B':
		if d.changeCase {
			d.upper, d.lower = true, false
		}
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.text(out, d, e.monthName(d.conv != 'B', d.modifier == 'O'))

	case 'c':
		if d.modifier == 'O' {
			e.bad(out, format, d)
			return
		}
		e.subformat(out, d, e.localeFormat(d, EraDateTimeFormat, DateTimeFormat), -1)

	case 'x':
		if d.modifier == 'O' {
			e.bad(out, format, d)
			return
		}
		e.subformat(out, d, e.localeFormat(d, EraDateFormat, DateFormat), -1)

	case 'X':
		if d.modifier == 'O' {
			e.bad(out, format, d)
			return
		}
		e.subformat(out, d, e.localeFormat(d, EraTimeFormat, TimeFormat), -1)

	case 'C':
		if d.modifier == 'E' {
			if era, ok := e.loc.Era(t); ok && era != nil {
				e.text(out, d, era.Name)
				return
			}
		}
		c, negative := century(t.Year)
		e.yearish(out, d, 2, negative, uint64(c), yrSpec)

	case 'D':
		if d.modifier != 0 {
			e.bad(out, format, d)
			return
		}
		e.subformat(out, d, "%m/%d/%y", -1)

	case 'd':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.number(out, d, 2, t.Day)

	case 'e':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.spacePadded(out, d, 2, t.Day)

	case 'F':
		if d.modifier != 0 {
			e.bad(out, format, d)
			return
		}
		var subwidth int
		if d.pad == padDefault && d.width < 0 {
			d.pad = padSign
			subwidth = 4
		} else {
			subwidth = d.width - 6
			if subwidth < 0 {
				subwidth = 0
			}
		}
		e.subformat(out, d, "%Y-%m-%d", subwidth)

	case 'H':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.number(out, d, 2, t.Hour)

	case 'I':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.number(out, d, 2, e.hour12)

	case 'k':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.spacePadded(out, d, 2, t.Hour)

	case 'l':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.spacePadded(out, d, 2, e.hour12)

	case 'j':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.signed(out, d, 3, t.YearDay < -1, uint64(t.YearDay)+1)

	case 'M':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.number(out, d, 2, t.Minute)

	case 'm':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.signed(out, d, 2, t.Month < -1, uint64(t.Month)+1)

	case 'N':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.nanoseconds(out, d)

	case 'n':
		out.addChar('\n', d.width, d.pad)

	case 't':
		out.addChar('\t', d.width, d.pad)

	case 'P', 'p':
		if d.conv == 'P' || d.changeCase {
			d.upper, d.lower = false, true
		}
		e.text(out, d, e.loc.AMPM(t.Hour > 11))

	case 'q':
		e.signed(out, d, 1, false, uint64(((t.Month*11)>>5)+1))

	case 'R':
		e.subformat(out, d, "%H:%M", -1)

	case 'T':
		e.subformat(out, d, "%H:%M:%S", -1)

	case 'r':
		sub := e.loc.Format(TimeAMPMFormat)
		if sub == "" {
			sub = "%I:%M:%S %p"
		}
		e.subformat(out, d, sub, -1)

	case 'S':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.number(out, d, 2, t.Second)

	case 's':
		e.epoch(out, d)

	case 'u':
		e.number(out, d, 1, (t.Weekday-1+7)%7+1)

	case 'U':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.number(out, d, 2, (t.YearDay-t.Weekday+7)/7)

	case 'V', 'g', 'G':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		adjust, days := isoYear(t)
		switch d.conv {
		case 'g':
			yy := isoShortYear(t.Year, adjust)
			e.yearish(out, d, 2, false, uint64(yy), yrSpec)
		case 'G':
			u, negative := fullYear(t.Year, adjust)
			e.yearish(out, d, 4, negative, u, yrSpec)
		default:
			e.number(out, d, 2, days/7+1)
		}

	case 'W':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.number(out, d, 2, (t.YearDay-(t.Weekday-1+7)%7+7)/7)

	case 'w':
		if d.modifier == 'E' {
			e.bad(out, format, d)
			return
		}
		e.number(out, d, 1, t.Weekday)

	case 'Y':
		if d.modifier == 'E' {
			if era, ok := e.loc.Era(t); ok && era != nil {
				if d.pad == padDefault {
					d.pad = yrSpec
				}
				e.subformat(out, d, era.Format, -1)
				return
			}
		}
		if d.modifier == 'O' {
			e.bad(out, format, d)
			return
		}
		u, negative := fullYear(t.Year, 0)
		e.yearish(out, d, 4, negative, u, yrSpec)

	case 'y':
		if d.modifier == 'E' {
			if era, ok := e.loc.Era(t); ok && era != nil {
				if d.pad == padDefault {
					d.pad = yrSpec
				}
				delta := t.Year - era.StartYear
				e.number(out, d, 2, era.Offset+delta*era.Direction)
				return
			}
		}
		e.yearish(out, d, 2, false, uint64(shortYear(t.Year)), yrSpec)

	case 'Z':
		if d.changeCase {
			d.upper, d.lower = false, true
		}
		e.text(out, d, e.zone)

	case 'z':
		e.utcOffsetDirective(out, format, d)

	default:
		e.bad(out, format, d)
	}
}

// Copies the directive's own text into the output. This is what happens for
// unknown conversions, invalid modifiers and a trailing %.
func (e *engine[C]) bad(out *output[C], format []C, d *directive) {
	text := format[d.start:d.end]
	if d.lower || d.upper {
		e.text(out, d, charsString(text))
		return
	}
	out.addChars(text, d.width, d.pad)
}

// Emits locale text with the directive's case folding applied.
func (e *engine[C]) text(out *output[C], d *directive, s string) {
	switch {
	case d.lower:
		s = e.loc.ToLower(s)
	case d.upper:
		s = e.loc.ToUpper(s)
	}
	out.addText(s, d.width, d.pad)
}

// Renders a composite directive. The sub format is measured first so the
// directive's width can pad the whole thing, then rendered in place.
func (e *engine[C]) subformat(
	out *output[C],
	d *directive,
	format string,
	subwidth int,
) {
	sub := appendText[C](nil, format)
	probe := newProbe[C]()
	e.render(probe, sub, d.upper, d.pad, subwidth)
	if probe.err != nil {
		out.err = probe.err
		return
	}
	out.addSub(probe.n, d.width, d.pad, func(o *output[C]) {
		e.render(o, sub, d.upper, d.pad, subwidth)
		if o.err != nil && out.err == nil {
			out.err = o.err
		}
	})
}

// Picks the era variant of a locale format for the E modifier, falling
// back to the plain one when the locale has none.
func (e *engine[C]) localeFormat(d *directive, era, plain FormatKind) string {
	if d.modifier == 'E' {
		if s := e.loc.Format(era); s != "" {
			return s
		}
	}
	return e.loc.Format(plain)
}

func (e *engine[C]) weekdayName(abbreviated bool) string {
	if e.t.Weekday < 0 || e.t.Weekday > 6 {
		return "?"
	}
	return e.loc.WeekdayName(e.t.Weekday, abbreviated)
}

func (e *engine[C]) monthName(abbreviated, alternate bool) string {
	if e.t.Month < 0 || e.t.Month > 11 {
		return "?"
	}
	return e.loc.MonthName(e.t.Month, abbreviated, alternate)
}

// Returns the offset from UTC in seconds. Times that carry their own offset
// win, then universal time and a missing Zone are both treated as UTC.
func (e *engine[C]) utcOffset() (int, bool) {
	switch {
	case e.t.OffsetKnown:
		return e.t.Offset, true
	case e.f.Universal || e.f.Zone == nil:
		return 0, true
	default:
		return e.f.Zone.OffsetAt(e.t)
	}
}

// %z, %:z, %::z and %:::z.
func (e *engine[C]) utcOffsetDirective(
	out *output[C],
	format []C,
	d *directive,
) {
	if e.t.DST < 0 {
		return
	}
	diff, ok := e.utcOffset()
	if !ok {
		return
	}

	// -00:00 style zones mean the offset is unknown rather than UTC.
	negative := diff < 0 || (diff == 0 && len(e.zone) > 0 && e.zone[0] == '-')
	hour := diff / 3600
	minute := diff / 60 % 60
	second := diff % 60

	colons := d.colons
	if colons == 3 {
		switch {
		case second != 0:
			colons = 2
		case minute != 0:
			colons = 1
		default:
			e.offset(out, d, 3, 0, negative, hour)
			return
		}
	}

	switch colons {
	case 0:
		e.offset(out, d, 5, 0, negative, hour*100+minute)
	case 1:
		e.offset(out, d, 6, 0o4, negative, hour*100+minute)
	case 2:
		e.offset(out, d, 9, 0o24, negative, hour*10000+minute*100+second)
	default:
		e.bad(out, format, d)
	}
}
