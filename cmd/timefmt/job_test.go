package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/liquidgecka/testlib"

	"github.com/liquidgecka/timefmt/strftime"
	"github.com/liquidgecka/timefmt/zone"
)

func newJob(T *testlib.T, layout, name string) *job {
	z, err := zone.Load(name)
	T.ExpectSuccess(err)
	return &job{
		formatter: &strftime.Formatter{Zone: z},
		zone:      z,
		layout:    layout,
		maxLength: 64,
	}
}

var when = time.Date(2024, time.January, 5, 18, 4, 9, 0, time.UTC)

func TestParseTime(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	clock := clockwork.NewFakeClockAt(when)
	got, err := parseTime(clock, "", "")
	T.ExpectSuccess(err)
	T.Equal(got.Equal(when), true)

	got, err = parseTime(clock, "2024-01-05T13:04:09-05:00", "")
	T.ExpectSuccess(err)
	T.Equal(got.Equal(when), true)

	got, err = parseTime(clock, "", "1704477849")
	T.ExpectSuccess(err)
	T.Equal(got.Equal(when), true)

	_, err = parseTime(clock, "x", "1")
	T.ExpectErrorMessage(err, "-t and -e can not be used together")
	_, err = parseTime(clock, "", "soon")
	T.ExpectErrorMessage(err, `invalid epoch "soon"`)
	_, err = parseTime(clock, "yesterday", "")
	T.NotEqual(err, nil)
}

func TestJob_Print(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	j := newJob(T, "%Y-%m-%d %H:%M:%S %z %Z", "America/New_York")
	buf := &bytes.Buffer{}
	T.ExpectSuccess(j.print(buf, when))
	T.Equal(buf.String(), "2024-01-05 13:04:09 -0500 EST\n")
	T.Equal(j.length(when), len("2024-01-05 13:04:09 -0500 EST"))

	// Universal time ignores the zone.
	j.formatter.Universal = true
	buf.Reset()
	T.ExpectSuccess(j.print(buf, when))
	T.Equal(buf.String(), "2024-01-05 18:04:09 +0000 UTC\n")

	// Output over the limit is refused.
	j.layout = "%100Y"
	buf.Reset()
	T.Equal(j.print(buf, when), strftime.ErrInsufficientCapacity)
	T.Equal(buf.Len(), 0)
	T.Equal(j.length(when), 100)
}

func TestJob_Stamp(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	j := newJob(T, "%H:%M:%S", "UTC")
	clock := clockwork.NewFakeClockAt(when)
	out := &bytes.Buffer{}
	T.ExpectSuccess(j.stamp(clock, strings.NewReader("one\ntwo\n\nlast"), out))
	T.Equal(out.String(), ""+
		"18:04:09 one\n"+
		"18:04:09 two\n"+
		"18:04:09 \n"+
		"18:04:09 last\n")
}
