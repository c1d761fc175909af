package strftime

import (
	"math"
	"unicode/utf8"
)

// Pad flags. padDefault means the directive picks its own padding.
const (
	padDefault = byte(0)
	padSpace   = byte('_')
	padNone    = byte('-')
	padSign    = byte('+')
	padZero    = byte('0')
)

// A single parsed % directive.
type directive struct {
	// The index of the '%' that started the directive and the index just
	// past its last character. format[start:end] is the literal text that
	// gets copied out when the directive is not understood.
	start int
	end   int

	// The pad flag, the requested width (-1 if unset) and the E or O
	// modifier (0 if absent).
	pad      byte
	width    int
	modifier byte

	// Case folding. upper comes from the ^ flag (or the enclosing
	// directive), changeCase from the # flag which means something
	// different to each conversion.
	upper      bool
	lower      bool
	changeCase bool

	// The conversion character, or 0 if the format ended early.
	conv rune

	// The number of colons that preceded a 'z' conversion.
	colons int
}

func isDigit[C char](c C) bool {
	return c >= '0' && c <= '9'
}

// Appends a decimal digit to a width, saturating at math.MaxInt rather
// than overflowing.
func addWidthDigit(width, digit int) int {
	if width > (math.MaxInt-digit)/10 {
		return math.MaxInt
	}
	return width*10 + digit
}

// Parses the directive at format[i], which must be a '%'. width is used if
// the directive does not specify one of its own.
func scanDirective[C char](format []C, i, width int) directive {
	d := directive{start: i, width: width}

	// Flags may appear in any order.
	for i++; i < len(format); i++ {
		switch format[i] {
		case '_', '-', '+', '0':
			d.pad = byte(format[i])
			continue
		case '^':
			d.upper = true
			continue
		case '#':
			d.changeCase = true
			continue
		}
		break
	}

	if i < len(format) && isDigit(format[i]) {
		d.width = 0
		for ; i < len(format) && isDigit(format[i]); i++ {
			d.width = addWidthDigit(d.width, int(format[i]-'0'))
		}
	}

	if i < len(format) && (format[i] == 'E' || format[i] == 'O') {
		d.modifier = byte(format[i])
		i++
	}

	// A % at the very end of the format (possibly after flags) has no
	// conversion at all.
	if i >= len(format) {
		d.end = len(format)
		return d
	}

	// :z, ::z and :::z are the only places a colon is valid. Anything else
	// stops at the first colon.
	d.conv = rune(format[i])
	if d.conv == ':' {
		j := i
		for j < len(format) && format[j] == ':' {
			j++
		}
		if j < len(format) && format[j] == 'z' {
			d.colons = j - i
			d.conv = 'z'
			i = j
		}
	}
	d.end = i + charLen(format, i)
	return d
}

// The number of elements of format that hold the character at format[i].
// Byte formats are UTF-8 so a non ASCII conversion spans its whole
// encoding.
func charLen[C char](format []C, i int) int {
	if b, ok := any(format).([]byte); ok && b[i] >= utf8.RuneSelf {
		_, size := utf8.DecodeRune(b[i:])
		return size
	}
	return 1
}
