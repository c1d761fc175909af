package logging

import (
	"bufio"
	"time"
)

// Everything needed to render one log line.
type renderData struct {
	time      time.Time
	level     level
	message   string
	tail      *Field
	optFields []Field
}

// Calls fn for the logger's fields (most recent first) and then the fields
// passed to the logging call.
func (rd *renderData) each(fn func(f *Field)) {
	for f := rd.tail; f != nil; f = f.prev {
		fn(f)
	}
	for i := range rd.optFields {
		fn(&rd.optFields[i])
	}
}

// Writes s, wrapped in quotes if quoted is true.
func writeMaybeQuoted(buffer *bufio.Writer, s string, quoted bool) {
	if quoted {
		buffer.WriteByte('"')
		buffer.WriteString(s)
		buffer.WriteByte('"')
	} else {
		buffer.WriteString(s)
	}
}

func writeKeyValue(buffer *bufio.Writer, f *Field) {
	writeMaybeQuoted(buffer, f.name, f.nameQuoted)
	buffer.WriteByte('=')
	writeMaybeQuoted(buffer, f.value, f.valueQuoted)
}

// Plain renders "<stamp>: LVL message key=value ...". A nil stamp leaves
// off the timestamp entirely.
func rPlain(buffer *bufio.Writer, stamp []byte, data *renderData) {
	if stamp != nil {
		buffer.Write(stamp)
		buffer.WriteString(": ")
	}
	buffer.WriteString(data.level.short())
	buffer.WriteByte(' ')
	buffer.WriteString(data.message)
	data.each(func(f *Field) {
		buffer.WriteByte(' ')
		writeKeyValue(buffer, f)
	})
}

// JSON renders a single object per line.
func rJSON(buffer *bufio.Writer, stamp []byte, data *renderData) {
	buffer.WriteString(`{"timestamp":"`)
	buffer.WriteString(encodeJSONString(string(stamp)))
	buffer.WriteString(`","message":"`)
	buffer.WriteString(encodeJSONString(data.message))
	buffer.WriteString(`","level":"`)
	buffer.WriteString(data.level.String())
	buffer.WriteByte('"')
	data.each(func(f *Field) {
		buffer.WriteString(`,"`)
		buffer.WriteString(f.name)
		buffer.WriteString(`":`)
		writeMaybeQuoted(buffer, f.value, !f.valueRaw)
	})
	buffer.WriteByte('}')
}

// ANSI colors.
const (
	colorBold     = "\x1b[1m"
	colorBlue     = "\x1b[34m"
	colorDarkGrey = "\x1b[90m"
	colorGreen    = "\x1b[32m"
	colorRed      = "\x1b[31m"
	colorYellow   = "\x1b[33m"
	colorReset    = "\x1b[0m"
)

// ANSI is like plain but colorized for terminals.
func rANSI(buffer *bufio.Writer, stamp []byte, data *renderData) {
	buffer.WriteString(colorDarkGrey)
	buffer.Write(stamp)
	buffer.WriteByte(' ')
	switch data.level {
	case dbg:
		buffer.WriteString(colorYellow)
	case inf:
		buffer.WriteString(colorGreen)
	case wrn:
		buffer.WriteString(colorRed)
	case err:
		buffer.WriteString(colorBold)
		buffer.WriteString(colorRed)
	default:
		buffer.WriteString(colorBlue)
	}
	buffer.WriteString(data.level.short())
	buffer.WriteByte(' ')
	buffer.WriteString(colorReset)
	buffer.WriteString(data.message)
	data.each(func(f *Field) {
		buffer.WriteByte(' ')
		if f.red {
			buffer.WriteString(colorRed)
		} else {
			buffer.WriteString(colorDarkGrey)
		}
		writeKeyValue(buffer, f)
	})
	buffer.WriteString(colorReset)
}
