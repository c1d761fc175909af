package locale

import (
	"github.com/liquidgecka/timefmt/strftime"
)

// A strftime.Locale that forwards to whatever version of a registry entry
// is current. Entries are never unloaded so current never returns nil.
type ref struct {
	registry *Registry
	entry    *entry
}

func (r *ref) current() *Locale {
	r.registry.lock.RLock()
	defer r.registry.lock.RUnlock()
	return r.entry.locale
}

func (r *ref) WeekdayName(wday int, abbreviated bool) string {
	return r.current().WeekdayName(wday, abbreviated)
}

func (r *ref) MonthName(mon int, abbreviated, alternate bool) string {
	return r.current().MonthName(mon, abbreviated, alternate)
}

func (r *ref) AMPM(pm bool) string {
	return r.current().AMPM(pm)
}

func (r *ref) Format(kind strftime.FormatKind) string {
	return r.current().Format(kind)
}

func (r *ref) Era(t *strftime.Time) (*strftime.Era, bool) {
	return r.current().Era(t)
}

func (r *ref) AltDigit(n uint64) (string, bool) {
	return r.current().AltDigit(n)
}

func (r *ref) ToUpper(s string) string {
	return r.current().ToUpper(s)
}

func (r *ref) ToLower(s string) string {
	return r.current().ToLower(s)
}
