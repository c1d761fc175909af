package logging

import (
	"bufio"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Owns the file behind an Output so that it can be reopened after an
// external tool (logrotate and friends) moves it out of the way.
type Rotator struct {
	file   string
	fd     *os.File
	output *Output
	lock   sync.Mutex
}

func openLog(file string) (*os.File, error) {
	return os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
}

// Opens file for appending and returns a Rotator along with an Output that
// writes to it.
func NewRotator(
	file string,
	format Format,
	stamp *Stamp,
) (*Rotator, *Output, error) {
	fd, err := openLog(file)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening log file")
	}
	o := NewOutput(format, bufio.NewWriter(fd), stamp)
	return &Rotator{
		file:   file,
		fd:     fd,
		output: o,
	}, o, nil
}

// Reopens the log file and swaps it into the Output. Errors flushing or
// closing the old file are still returned, but the new file is in place
// by then.
func (r *Rotator) Rotate() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	fd, err := openLog(r.file)
	if err != nil {
		return errors.Wrap(err, "reopening log file")
	}
	buffer := bufio.NewWriter(fd)

	// Swap the buffer while holding the output's lock so no line is split
	// across files.
	r.output.lock.Lock()
	old := r.output.buffer
	r.output.buffer = buffer
	r.output.lock.Unlock()

	ferr := old.Flush()
	cerr := r.fd.Close()
	r.fd = fd
	switch {
	case ferr != nil && cerr != nil:
		return errors.Errorf(
			"rotated, but flushing (%s) and closing (%s) the old log "+
				"failed; old log lines might be lost",
			ferr.Error(),
			cerr.Error())
	case ferr != nil:
		return errors.Wrap(
			ferr,
			"rotated, but flushing the old log failed; old log lines might "+
				"be lost")
	case cerr != nil:
		return errors.Wrap(cerr, "rotated, but closing the old log failed")
	}
	return nil
}

// Flushes and closes the current file.
func (r *Rotator) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.output.lock.Lock()
	ferr := r.output.buffer.Flush()
	r.output.lock.Unlock()
	if cerr := r.fd.Close(); cerr != nil {
		return errors.Wrap(cerr, "closing log file")
	}
	if ferr != nil {
		return errors.Wrap(ferr, "flushing log file")
	}
	return nil
}
