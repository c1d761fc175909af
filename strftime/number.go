package strftime

// Numeric conversions all funnel through body() which produces the digits
// and then signAndPad() which applies the sign and the pad policy. The
// helpers below only differ in which pad they default to and when a '+'
// sign is forced.

// Renders v with at least digits digits, zero padded by default.
func (e *engine[C]) number(out *output[C], d *directive, digits, v int) {
	e.body(out, d, digits, v < 0, false, 0, uint64(v))
}

// Like number but space padded by default (%e, %k, %l).
func (e *engine[C]) spacePadded(out *output[C], d *directive, digits, v int) {
	if d.pad == padDefault {
		d.pad = padSpace
	}
	e.number(out, d, digits, v)
}

// Renders a value that was computed in unsigned arithmetic so that it can
// not overflow. negative states the sign of the true value.
func (e *engine[C]) signed(
	out *output[C],
	d *directive,
	digits int,
	negative bool,
	u uint64,
) {
	e.body(out, d, digits, negative, false, 0, u)
}

// Renders a year like value. The + flag only produces a sign if the value
// has more digits than normal or the width is larger than the natural
// width. A missing pad flag is inherited from the enclosing directive.
func (e *engine[C]) yearish(
	out *output[C],
	d *directive,
	digits int,
	negative bool,
	u uint64,
	yrSpec byte,
) {
	if d.pad == padDefault {
		d.pad = yrSpec
	}
	limit := uint64(9999)
	if digits == 2 {
		limit = 99
	}
	always := d.pad == padSign && (limit < u || digits < d.width)
	e.body(out, d, digits, negative, always, 0, u)
}

// Renders a UTC offset which always carries a sign. mask has a bit set for
// each digit position (counting from the right) that is preceded by a
// colon.
func (e *engine[C]) offset(
	out *output[C],
	d *directive,
	digits int,
	mask uint,
	negative bool,
	v int,
) {
	e.body(out, d, digits, negative, true, mask, uint64(v))
}

// Converts u into decimal digits. If negative is true then u is the two's
// complement of the magnitude.
func (e *engine[C]) body(
	out *output[C],
	d *directive,
	digits int,
	negative bool,
	always bool,
	mask uint,
	u uint64,
) {
	if d.modifier == 'O' && !negative {
		if s, ok := e.loc.AltDigit(u); ok && s != "" {
			e.text(out, d, s)
			return
		}
	}

	// 20 digits for the largest uint64 plus room for the colons.
	var buf [24]C
	p := len(buf)
	if negative {
		u = -u
	}
	for {
		if mask&1 != 0 {
			p--
			buf[p] = ':'
		}
		mask >>= 1
		p--
		buf[p] = C('0' + u%10)
		u /= 10
		if u == 0 && mask == 0 {
			break
		}
	}
	e.signAndPad(out, d, digits, buf[p:], negative, always)
}

// Emits num with its sign and padding. With the _ flag the spaces go before
// the sign, otherwise zeros go between the sign and the digits.
func (e *engine[C]) signAndPad(
	out *output[C],
	d *directive,
	digits int,
	num []C,
	negative bool,
	always bool,
) {
	pad := d.pad
	if pad == padDefault {
		pad = padZero
	}
	width := d.width
	if width < 0 {
		width = digits
	}

	if negative || always {
		sign := C('+')
		if negative {
			sign = '-'
		}
		if pad == padSpace {
			if spaces := width - 1 - len(num); spaces > 0 {
				if out.reserve(spaces) && out.w != nil {
					out.w.fill(' ', spaces)
				}
				width -= spaces
			}
		}
		out.addChar(sign, 0, pad)
		width--
	}
	out.addChars(num, width, pad)
}

// %N renders the nanoseconds as a fraction. The width is the number of
// digits wanted and trailing zeros are dropped before being padded back out
// on the right.
func (e *engine[C]) nanoseconds(out *output[C], d *directive) {
	const nsDigits = 9
	n := e.t.Nanosecond
	width := d.width
	if width <= 0 {
		width = nsDigits
	}
	ndigs := nsDigits
	for width < ndigs || (1 < ndigs && n%10 == 0) {
		ndigs--
		n /= 10
	}

	var buf [nsDigits]C
	for i := ndigs; i > 0; i-- {
		digit := n % 10
		if digit < 0 {
			digit = -digit
		}
		buf[i-1] = C('0' + digit)
		n /= 10
	}

	pad := d.pad
	if pad == padDefault {
		pad = padZero
	}
	out.addChars(buf[:ndigs], 0, pad)
	if delta := width - ndigs; pad != padNone && delta > 0 {
		if out.reserve(delta) && out.w != nil {
			out.pad(delta, pad)
		}
	}
}

// %s renders the number of seconds since the epoch.
func (e *engine[C]) epoch(out *output[C], d *directive) {
	offset, ok := e.utcOffset()
	if !ok {
		offset = 0
	}
	secs := epochSeconds(e.t, offset)

	var buf [24]C
	p := len(buf)
	for v := secs; ; {
		digit := v % 10
		if digit < 0 {
			digit = -digit
		}
		p--
		buf[p] = C('0' + digit)
		v /= 10
		if v == 0 {
			break
		}
	}
	e.signAndPad(out, d, 1, buf[p:], secs < 0, false)
}
