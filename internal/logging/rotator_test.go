package logging

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/liquidgecka/testlib"
)

func TestNewRotator(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	name := T.TempDir() + "/timefmt.log"
	r, o, err := NewRotator(name, testFormat, nil)
	T.ExpectSuccess(err)
	T.Equal(r.output, o)
	NewLogger(o).Info("hello")
	T.ExpectSuccess(r.Close())

	data, err := os.ReadFile(name)
	T.ExpectSuccess(err)
	T.Equal(string(data), "INF hello\n")

	_, _, err = NewRotator("/should/not/exist/log", Plain, nil)
	T.ExpectErrorMessage(err, "opening log file")
}

func TestRotator_Rotate(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	dir := T.TempDir()
	name := dir + "/timefmt.log"
	r, o, err := NewRotator(name, testFormat, nil)
	T.ExpectSuccess(err)
	defer r.Close()
	l := NewLogger(o)
	l.Info("before")

	// Simulate logrotate moving the file out of the way.
	T.ExpectSuccess(os.Rename(name, dir+"/timefmt.log.1"))
	T.ExpectSuccess(r.Rotate())
	l.Info("after")

	old, err := os.ReadFile(dir + "/timefmt.log.1")
	T.ExpectSuccess(err)
	T.Equal(string(old), "INF before\n")
	current, err := os.ReadFile(name)
	T.ExpectSuccess(err)
	T.Equal(string(current), "INF after\n")
}

func TestRotator_Rotate_OpenError(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	r := Rotator{
		file: "/should/not/exist",
	}
	T.ExpectErrorMessage(
		r.Rotate(),
		"reopening log file: open /should/not/exist: no such file or directory")
}

func TestRotator_Rotate_CloseError(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	fd := T.TempFile()
	r := Rotator{
		file:   fd.Name(),
		fd:     fd,
		output: &Output{buffer: bufio.NewWriter(fd)},
	}
	defer r.fd.Close()

	// Closing the file first makes the rotation's close fail.
	fd.Close()
	err := r.Rotate()
	T.ExpectErrorMessage(err, "rotated, but closing the old log failed")
	T.Equal(strings.Contains(err.Error(), "file already closed"), true)
}

func TestRotator_Rotate_FlushError(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	// A read only descriptor can not be flushed to.
	fdMaster := T.TempFile()
	defer fdMaster.Close()
	fd, err := os.Open(fdMaster.Name())
	T.ExpectSuccess(err)
	r := Rotator{
		file:   fd.Name(),
		fd:     fd,
		output: &Output{buffer: bufio.NewWriter(fd)},
	}
	defer r.fd.Close()
	r.output.buffer.WriteString("test")
	T.ExpectErrorMessage(r.Rotate(), "rotated, but flushing the old log failed")
}
