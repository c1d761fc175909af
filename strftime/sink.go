package strftime

import (
	"bufio"
	"math"
	"strings"
	"unicode/utf8"
)

// The character types the formatter can be instantiated for. Byte formats
// and output are UTF-8 text, rune formats and output are decoded text.
type char interface {
	byte | rune
}

// A destination for rendered characters. Capacity has already been checked
// by the output before any of these are called.
type writer[C char] interface {
	fill(c C, n int)
	char(c C)
	chars(s []C)
	text(s string)
}

// Accounts for everything that is rendered. When w is nil nothing is
// written and only the length is tracked, which is how a probe works. Both
// paths run the exact same accounting.
type output[C char] struct {
	w     writer[C]
	limit int
	n     int
	err   error
}

// Creates an output that only counts characters.
func newProbe[C char]() *output[C] {
	return &output[C]{limit: -1}
}

// Adds incr characters to the running length. If that would exceed the
// limit then the output fails and every later write is ignored.
func (o *output[C]) reserve(incr int) bool {
	if o.err != nil {
		return false
	}
	if o.limit >= 0 && incr > o.limit-o.n {
		o.err = ErrInsufficientCapacity
		return false
	}
	if incr > math.MaxInt-o.n {
		o.n = math.MaxInt
	} else {
		o.n += incr
	}
	return true
}

// Returns how many pad characters are needed to bring n characters up to
// width, along with the total number of characters that will be produced.
func padding(n, width int, pad byte) (delta, total int) {
	if pad == padNone || width < 0 || n >= width {
		return 0, n
	}
	return width - n, width
}

// Writes the pad characters for a field.
func (o *output[C]) pad(delta int, pad byte) {
	if delta <= 0 {
		return
	}
	if pad == padZero || pad == padSign {
		o.w.fill('0', delta)
	} else {
		o.w.fill(' ', delta)
	}
}

// Emits a single character, padded on the left to width.
func (o *output[C]) addChar(c C, width int, pad byte) {
	delta, total := padding(1, width, pad)
	if !o.reserve(total) || o.w == nil {
		return
	}
	o.pad(delta, pad)
	o.w.char(c)
}

// Emits a run of format characters, padded on the left to width.
func (o *output[C]) addChars(s []C, width int, pad byte) {
	delta, total := padding(len(s), width, pad)
	if !o.reserve(total) || o.w == nil {
		return
	}
	o.pad(delta, pad)
	o.w.chars(s)
}

// Emits text, padded on the left to width.
func (o *output[C]) addText(s string, width int, pad byte) {
	delta, total := padding(textLen[C](s), width, pad)
	if !o.reserve(total) || o.w == nil {
		return
	}
	o.pad(delta, pad)
	o.w.text(s)
}

// Emits n characters produced by render, padded on the left to width.
// render is given an output that shares this output's writer but has no
// limit of its own since the space has already been reserved here. When
// probing render is never called.
func (o *output[C]) addSub(n, width int, pad byte, render func(*output[C])) {
	delta, total := padding(n, width, pad)
	if !o.reserve(total) || o.w == nil {
		return
	}
	o.pad(delta, pad)
	render(&output[C]{w: o.w, limit: -1})
}

// Returns the number of characters s occupies when rendered as C.
func textLen[C char](s string) int {
	var zero C
	if _, ok := any(zero).(byte); ok {
		return len(s)
	}
	return utf8.RuneCountInString(s)
}

// Appends s to dst converting to the character type as needed.
func appendText[C char](dst []C, s string) []C {
	var zero C
	if _, ok := any(zero).(byte); ok {
		for i := 0; i < len(s); i++ {
			dst = append(dst, C(s[i]))
		}
		return dst
	}
	for _, r := range s {
		dst = append(dst, C(r))
	}
	return dst
}

// The inverse of appendText.
func charsString[C char](s []C) string {
	var zero C
	b := strings.Builder{}
	if _, ok := any(zero).(byte); ok {
		b.Grow(len(s))
		for _, c := range s {
			b.WriteByte(byte(c))
		}
		return b.String()
	}
	for _, c := range s {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// Writes into a slice. When used with a fixed destination the output's
// limit is the slice's length so append never needs to grow it.
type sliceWriter[C char] struct {
	buf []C
}

func (s *sliceWriter[C]) fill(c C, n int) {
	for ; n > 0; n-- {
		s.buf = append(s.buf, c)
	}
}

func (s *sliceWriter[C]) char(c C) {
	s.buf = append(s.buf, c)
}

func (s *sliceWriter[C]) chars(cs []C) {
	s.buf = append(s.buf, cs...)
}

func (s *sliceWriter[C]) text(str string) {
	s.buf = appendText(s.buf, str)
}

// Writes to a buffered stream. Write errors are sticky in the bufio.Writer
// and get reported by Flush.
type streamWriter struct {
	w *bufio.Writer
}

func (s *streamWriter) fill(c byte, n int) {
	for ; n > 0; n-- {
		s.w.WriteByte(c)
	}
}

func (s *streamWriter) char(c byte) {
	s.w.WriteByte(c)
}

func (s *streamWriter) chars(cs []byte) {
	s.w.Write(cs)
}

func (s *streamWriter) text(str string) {
	s.w.WriteString(str)
}
