package main

import (
	"bufio"
	"io"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/liquidgecka/timefmt/strftime"
	"github.com/liquidgecka/timefmt/zone"
)

// Everything needed to render a time.
type job struct {
	formatter *strftime.Formatter
	zone      *zone.Location
	layout    string
	maxLength int
}

// Breaks t down in the job's zone, or UTC when rendering universal time.
func (j *job) time(t time.Time) strftime.Time {
	if j.formatter.Universal {
		return strftime.FromTime(t.UTC())
	}
	return j.zone.Time(t)
}

// The number of bytes the layout renders to for t.
func (j *job) length(t time.Time) int {
	tm := j.time(t)
	return j.formatter.Len(j.layout, &tm)
}

// Renders t followed by a newline.
func (j *job) print(w io.Writer, t time.Time) error {
	tm := j.time(t)
	n := j.formatter.Len(j.layout, &tm)
	if n > j.maxLength {
		return strftime.ErrInsufficientCapacity
	}
	buf := make([]byte, n+1)
	n, err := j.formatter.Render(buf[:n], j.layout, &tm)
	if err != nil {
		return err
	}
	buf[n] = '\n'
	_, err = w.Write(buf[:n+1])
	return errors.Wrap(err, "writing output")
}

// Copies lines from in to out, each prefixed by the time it was read and a
// space.
func (j *job) stamp(clock clockwork.Clock, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	for scanner.Scan() {
		tm := j.time(clock.Now())
		if _, err := j.formatter.Fprint(w, j.layout, &tm); err != nil {
			return err
		}
		w.WriteByte(' ')
		w.Write(scanner.Bytes())
		w.WriteByte('\n')
		if err := w.Flush(); err != nil {
			return errors.Wrap(err, "writing output")
		}
	}
	return errors.Wrap(scanner.Err(), "reading input")
}
