package logging

import (
	"time"

	"github.com/liquidgecka/timefmt/strftime"
)

// The layout used when an Output has not been given one.
const DefaultTimestamp = "%Y-%m-%dT%H:%M:%S%:z"

// Renders log line timestamps with a strftime layout.
type Stamp struct {
	// Used for the locale and zone. If nil then strftime.Default is used.
	Formatter *strftime.Formatter

	// The layout. If empty then DefaultTimestamp is used.
	Layout string

	// If set then times are converted into this location first.
	Location *time.Location
}

// Appends the timestamp for t to dst. If the layout can not be rendered
// then RFC 3339 is used instead so a log line is never lost.
func (s *Stamp) Append(dst []byte, t time.Time) []byte {
	f := strftime.Default
	layout := DefaultTimestamp
	if s != nil {
		if s.Formatter != nil {
			f = s.Formatter
		}
		if s.Layout != "" {
			layout = s.Layout
		}
		if s.Location != nil {
			t = t.In(s.Location)
		}
	}
	tm := strftime.FromTime(t)
	out, err := f.AppendFormat(dst, layout, &tm)
	if err != nil {
		return t.AppendFormat(dst, time.RFC3339)
	}
	return out
}
