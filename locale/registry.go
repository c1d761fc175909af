package locale

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"

	"github.com/liquidgecka/timefmt/internal/backoff"
	ierrors "github.com/liquidgecka/timefmt/internal/errors"
	"github.com/liquidgecka/timefmt/internal/logging"
	"github.com/liquidgecka/timefmt/internal/workqueue"
	"github.com/liquidgecka/timefmt/strftime"
)

var (
	// This key was randomly generated but needs to be consistent between
	// builds so digests can be compared across restarts.
	highwayHashKey = [32]byte{
		0x5b, 0x21, 0x9e, 0x04, 0xc7, 0x3d, 0x88, 0x1f,
		0xe2, 0x6a, 0x0d, 0x94, 0x37, 0xb0, 0x5c, 0x71,
		0x19, 0xf4, 0x83, 0x2e, 0xa6, 0x0b, 0xd9, 0x45,
		0x6e, 0x12, 0xbf, 0x78, 0x03, 0xca, 0x56, 0x9d,
	}
)

// Returns the digest used to detect changed definitions.
func Digest(data []byte) uint64 {
	return highwayhash.Sum64(data, highwayHashKey[:])
}

// Returns true for the names that always refer to the POSIX locale.
func IsPOSIX(name string) bool {
	return name == "" || name == "C" || name == "POSIX"
}

type entry struct {
	source Source
	locale *Locale
}

// A set of named locales, each loaded from a Source. Locales can be
// reloaded while the registry is in use; callers of Get always see a
// fully compiled locale.
type Registry struct {
	// Used to report reloads and failures. May be nil.
	Log *logging.Logger

	// The clock that drives Run. If nil the real clock is used.
	Clock clockwork.Clock

	// The number of sources fetched at once by LoadAll. Defaults to 4.
	Parallel int

	// Slows down Run when loads keep failing.
	backoff backoff.BackOff

	lock    sync.RWMutex
	entries map[string]*entry
}

// Registers a source under name. The locale is not usable until it has
// been loaded.
func (r *Registry) Add(name string, src Source) error {
	if IsPOSIX(name) {
		return fmt.Errorf("locale name '%s' is reserved", name)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]*entry)
	}
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("locale '%s' is already defined", name)
	}
	r.entries[name] = &entry{source: src}
	return nil
}

// Returns the names of every registered locale in sorted order.
func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Gets a locale by name. "", "C" and "POSIX" are always available.
func (r *Registry) Get(name string) (strftime.Locale, error) {
	if IsPOSIX(name) {
		return strftime.POSIX, nil
	}
	r.lock.RLock()
	defer r.lock.RUnlock()
	e, ok := r.entries[name]
	switch {
	case !ok:
		return nil, fmt.Errorf("unknown locale '%s'", name)
	case e.locale == nil:
		return nil, fmt.Errorf("locale '%s' has not been loaded", name)
	}
	return e.locale, nil
}

// Returns a locale that always renders with the most recently loaded
// version of name, so formatters built from it follow reloads. Like Get,
// name must have been loaded already.
func (r *Registry) Ref(name string) (strftime.Locale, error) {
	if IsPOSIX(name) {
		return strftime.POSIX, nil
	}
	r.lock.RLock()
	defer r.lock.RUnlock()
	e, ok := r.entries[name]
	switch {
	case !ok:
		return nil, fmt.Errorf("unknown locale '%s'", name)
	case e.locale == nil:
		return nil, fmt.Errorf("locale '%s' has not been loaded", name)
	}
	return &ref{registry: r, entry: e}, nil
}

// Fetches and compiles a single locale. If the fetched definition has the
// same digest as the loaded one nothing is replaced and false is returned.
func (r *Registry) Load(ctx context.Context, name string) (bool, error) {
	r.lock.RLock()
	e, ok := r.entries[name]
	var current *Locale
	if ok {
		current = e.locale
	}
	r.lock.RUnlock()
	if !ok {
		return false, fmt.Errorf("unknown locale '%s'", name)
	}

	data, err := e.source.Fetch(ctx)
	if err != nil {
		return false, err
	}
	digest := Digest(data)
	if current != nil && current.digest == digest {
		return false, nil
	}
	def, err := Decode(data)
	if err != nil {
		return false, errors.Wrapf(err, "%s", e.source.URL())
	}
	l, err := def.Compile()
	if err != nil {
		return false, errors.Wrapf(err, "%s", e.source.URL())
	}
	l.name = name
	l.digest = digest

	r.lock.Lock()
	e.locale = l
	r.lock.Unlock()
	return true, nil
}

// Loads every registered locale, fetching up to Parallel sources at once.
// A locale that fails to load keeps its previously loaded version.
func (r *Registry) LoadAll(ctx context.Context) error {
	parallel := r.Parallel
	if parallel < 1 {
		parallel = 4
	}
	var lock sync.Mutex
	var errs []error
	wq := workqueue.New(ctx, parallel)
	for _, name := range r.Names() {
		name := name
		wq.Insert(func(ctx context.Context) {
			changed, err := r.Load(ctx, name)
			switch {
			case err != nil:
				r.Log.Error(
					"Error loading locale.",
					logging.NewField("locale", name),
					logging.NewFieldIface("error", err))
				lock.Lock()
				errs = append(errs, err)
				lock.Unlock()
			case changed:
				r.Log.Info(
					"Loaded locale.",
					logging.NewField("locale", name),
					logging.NewFieldUint64("digest", r.digest(name)))
			default:
				r.Log.Debug(
					"Locale unchanged.",
					logging.NewField("locale", name))
			}
		})
	}
	wq.Wait()
	if len(errs) > 0 {
		return ierrors.NewMultipleError("loading locales", errs)
	}
	return nil
}

func (r *Registry) digest(name string) uint64 {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if e, ok := r.entries[name]; ok && e.locale != nil {
		return e.locale.digest
	}
	return 0
}

// Reloads every locale each interval until ctx is canceled. Repeated
// failures back off up to the interval itself.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	clock := r.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	r.backoff.Period = interval * 10
	r.backoff.X = interval / 10
	r.backoff.Max = interval
	r.backoff.Clock = clock
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}
		if wait := r.backoff.Wait(); wait > 0 {
			select {
			case <-ctx.Done():
				return
			case <-clock.After(wait):
			}
		}
		if err := r.LoadAll(ctx); err != nil {
			r.backoff.Failure()
		} else {
			r.backoff.Reset()
		}
	}
}
