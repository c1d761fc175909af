package strftime

import (
	"bufio"
	"io"
	"slices"

	"github.com/pkg/errors"

	ierrors "github.com/liquidgecka/timefmt/internal/errors"
)

var (
	// Returned when the rendered output would not fit in the space the
	// caller provided (or in MaxLength for the allocating functions.)
	ErrInsufficientCapacity = ierrors.New(
		"strftime: output exceeds the destination capacity")
)

// The longest output that Format and AppendFormat will allocate. Widths
// are caller controlled so without a cap a format like %2000000000Y would
// try to allocate gigabytes.
const MaxLength = 1 << 24

// Renders strftime formats against a broken down Time. The zero value
// renders in the POSIX locale with times that carry their own offset, or
// UTC otherwise.
//
// A Formatter holds no mutable state so a single one can be shared by any
// number of goroutines, as long as its Locale and Zone are also safe for
// concurrent use.
type Formatter struct {
	// The locale used for names, composite formats, eras, alternate
	// digits and case folding. If nil then POSIX is used.
	Locale Locale

	// Supplies offsets and zone names for times that do not carry them.
	Zone Zone

	// If true then times are treated as universal time. Times without
	// a zone name render GMT for %Z.
	Universal bool
}

// The Formatter used by the package level functions.
var Default = &Formatter{}

func (f *Formatter) locale() Locale {
	if f.Locale == nil {
		return POSIX
	}
	return f.Locale
}

// Returns the zone name that %Z renders for t.
func (f *Formatter) zoneName(t *Time) string {
	zone := t.Zone
	if zone == "" && f.Universal {
		zone = "GMT"
	}
	if zone == "" && t.DST >= 0 && f.Zone != nil {
		zone = f.Zone.Abbreviation(t.DST != Standard)
	}
	return zone
}

// Runs the engine for format against t.
func run[C char](f *Formatter, out *output[C], format []C, t *Time) {
	e := engine[C]{
		f:      f,
		loc:    f.locale(),
		t:      t,
		zone:   f.zoneName(t),
		hour12: hour12(t.Hour),
	}
	e.render(out, format, false, padDefault, -1)
}

// Returns the number of bytes that format would render to for t. Nothing
// is written anywhere.
func (f *Formatter) Len(format string, t *Time) int {
	out := newProbe[byte]()
	run(f, out, []byte(format), t)
	return out.n
}

// Renders format into dst which must be large enough to hold the entire
// output. The number of bytes written is returned. If dst is too small
// then ErrInsufficientCapacity is returned and the contents of dst are
// undefined. No terminator is written, use Len to size dst.
func (f *Formatter) Render(dst []byte, format string, t *Time) (int, error) {
	sw := sliceWriter[byte]{buf: dst[:0]}
	out := output[byte]{w: &sw, limit: len(dst)}
	run(f, &out, []byte(format), t)
	if out.err != nil {
		return 0, out.err
	}
	return out.n, nil
}

// Like Len but counts runes rather than bytes.
func (f *Formatter) LenRunes(format []rune, t *Time) int {
	out := newProbe[rune]()
	run(f, out, format, t)
	return out.n
}

// Like Render but works on decoded text.
func (f *Formatter) RenderRunes(dst []rune, format []rune, t *Time) (int, error) {
	sw := sliceWriter[rune]{buf: dst[:0]}
	out := output[rune]{w: &sw, limit: len(dst)}
	run(f, &out, format, t)
	if out.err != nil {
		return 0, out.err
	}
	return out.n, nil
}

// Appends the rendered format to dst, growing it as needed. If the output
// would be longer than MaxLength then dst is returned unmodified along
// with ErrInsufficientCapacity.
func (f *Formatter) AppendFormat(
	dst []byte,
	format string,
	t *Time,
) ([]byte, error) {
	fmtb := []byte(format)
	probe := newProbe[byte]()
	run(f, probe, fmtb, t)
	if probe.n > MaxLength {
		return dst, ErrInsufficientCapacity
	}

	sw := sliceWriter[byte]{buf: slices.Grow(dst, probe.n)}
	out := output[byte]{w: &sw, limit: probe.n}
	run(f, &out, fmtb, t)
	if out.err != nil {
		return dst, out.err
	}
	return sw.buf, nil
}

// Returns the rendered format as a string.
func (f *Formatter) Format(format string, t *Time) (string, error) {
	b, err := f.AppendFormat(nil, format, t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Streams the rendered format to w. The output is not probed first so
// there is no length limit, and a write error part way through may leave
// partial output behind.
func (f *Formatter) Fprint(w io.Writer, format string, t *Time) (int, error) {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	out := output[byte]{w: &streamWriter{w: bw}, limit: -1}
	run(f, &out, []byte(format), t)
	if err := bw.Flush(); err != nil {
		return out.n, errors.Wrap(err, "strftime: writing output")
	}
	return out.n, nil
}

// Renders format for t using Default.
func Format(format string, t *Time) (string, error) {
	return Default.Format(format, t)
}

// Returns the rendered length of format for t using Default.
func Len(format string, t *Time) int {
	return Default.Len(format, t)
}

// Renders format into dst using Default.
func Render(dst []byte, format string, t *Time) (int, error) {
	return Default.Render(dst, format, t)
}
