package logging

import (
	"bufio"
	"fmt"
	"sync"
)

// The available line formats.
type Format int

const (
	Plain = Format(iota)
	JSON
	ANSI

	// Like Plain but without a timestamp, which keeps tests stable.
	testFormat
)

// Maps a configuration name to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "plain", "":
		return Plain, nil
	case "json":
		return JSON, nil
	case "ansi":
		return ANSI, nil
	default:
		return Plain, fmt.Errorf("unknown log format %q", name)
	}
}

func (f Format) String() string {
	switch f {
	case Plain:
		return "plain"
	case JSON:
		return "json"
	case ANSI:
		return "ansi"
	default:
		return "test"
	}
}

// Writes rendered log lines to a buffer. This is a concrete type rather
// than an interface so that the Field slices passed to the logging calls
// can stay on the stack.
type Output struct {
	format  Format
	stamp   *Stamp
	buffer  *bufio.Writer
	scratch []byte
	lock    sync.Mutex
	next    *Output
}

// Creates an Output that writes lines in the given format to buf. stamp
// may be nil to use DefaultTimestamp.
func NewOutput(format Format, buf *bufio.Writer, stamp *Stamp) *Output {
	return &Output{
		format: format,
		stamp:  stamp,
		buffer: buf,
	}
}

// Sends every line written to this Output to n as well.
func (o *Output) TeeOutput(n *Output) {
	for o.next != nil {
		o = o.next
	}
	o.next = n
}

// Writes a log line to the output and every output teed from it.
func (o *Output) Write(rd *renderData) {
	for ; o != nil; o = o.next {
		o.write(rd)
	}
}

func (o *Output) write(rd *renderData) {
	o.lock.Lock()
	defer o.lock.Unlock()
	if o.format != testFormat {
		o.scratch = o.stamp.Append(o.scratch[:0], rd.time)
	}
	switch o.format {
	case JSON:
		rJSON(o.buffer, o.scratch, rd)
	case ANSI:
		rANSI(o.buffer, o.scratch, rd)
	case testFormat:
		rPlain(o.buffer, nil, rd)
	default:
		rPlain(o.buffer, o.scratch, rd)
	}
	o.buffer.WriteByte('\n')
	o.buffer.Flush()
}
