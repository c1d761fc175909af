package zone

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/liquidgecka/timefmt/strftime"
)

// Resolves offsets and zone names from a *time.Location for times that do
// not carry that information themselves.
type Location struct {
	loc   *time.Location
	clock clockwork.Clock

	// The standard and daylight saving abbreviations are worked out the
	// first time they are needed.
	once     sync.Once
	standard string
	daylight string
}

// Returns a Location that wraps loc.
func New(loc *time.Location) *Location {
	return NewWithClock(loc, clockwork.NewRealClock())
}

// Like New, except that clock is used to pick the year that the
// abbreviations are sampled from.
func NewWithClock(loc *time.Location, clock clockwork.Clock) *Location {
	return &Location{loc: loc, clock: clock}
}

// Loads the named zone from the system zone database. "UTC" and "Local"
// are handled the same way time.LoadLocation handles them.
func Load(name string) (*Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "zone: loading %q", name)
	}
	return New(loc), nil
}

// Returns the wrapped location.
func (l *Location) Location() *time.Location {
	return l.loc
}

// Returns the offset that applies at t in this location. Fields that are
// out of range are normalized the same way time.Date normalizes them.
func (l *Location) OffsetAt(t *strftime.Time) (int, bool) {
	if l == nil || l.loc == nil {
		return 0, false
	}
	when := time.Date(
		t.Year+strftime.YearBase,
		time.Month(t.Month+1),
		t.Day,
		t.Hour,
		t.Minute,
		t.Second,
		0,
		l.loc)
	_, offset := when.Zone()
	return offset, true
}

// Returns the abbreviation used for standard or daylight saving time.
// Zones without daylight saving time return the standard name for both.
func (l *Location) Abbreviation(daylight bool) string {
	if l == nil || l.loc == nil {
		return ""
	}
	l.once.Do(l.sample)
	if daylight {
		return l.daylight
	}
	return l.standard
}

// Samples the middle of winter and summer for both hemispheres.
func (l *Location) sample() {
	year := l.clock.Now().In(l.loc).Year()
	for _, month := range []time.Month{time.January, time.July} {
		when := time.Date(year, month, 1, 12, 0, 0, 0, l.loc)
		name, _ := when.Zone()
		if when.IsDST() {
			l.daylight = name
		} else if l.standard == "" {
			l.standard = name
		}
	}
	if l.daylight == "" {
		l.daylight = l.standard
	}
}

var (
	systemOnce sync.Once
	system     *Location
)

// Returns the Location for the system's local zone. This is resolved once
// and shared by every caller.
func System() *Location {
	systemOnce.Do(func() {
		system = New(time.Local)
	})
	return system
}

// Breaks t down and makes sure it will render in l. The result carries its
// own offset and zone name so l is only needed again for %Z on times that
// lose their name.
func (l *Location) Time(t time.Time) strftime.Time {
	return strftime.FromTime(t.In(l.loc))
}
