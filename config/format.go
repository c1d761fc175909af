package config

import (
	"fmt"

	"github.com/liquidgecka/timefmt/locale"
	"github.com/liquidgecka/timefmt/strftime"
	"github.com/liquidgecka/timefmt/zone"
)

var (
	defaultLayout    = "%a %b %e %H:%M:%S %Z %Y"
	defaultLocale    = "C"
	defaultUniversal = false
)

// The [format] section, the defaults used when rendering times.
type format struct {
	// The strftime layout used when one is not given on the command line.
	Layout *string `toml:"layout"`

	// An IANA zone name such as "America/New_York". If not set then the
	// system's local zone is used.
	Zone *string `toml:"zone"`

	// Render times in UTC with a zone name of GMT.
	Universal *bool `toml:"universal"`

	// The locale name, either C/POSIX or one of the [locale.*] sections.
	Locale *string `toml:"locale"`

	// The largest output that will be rendered, such as "4k". Defaults to
	// strftime.MaxLength.
	MaxLength value `toml:"max_length"`
	maxLength int

	// The zone loaded from Zone.
	zone *zone.Location
}

func (f *format) validate(t *top) []string {
	var errors []string

	// Layout
	if f.Layout == nil {
		f.Layout = &defaultLayout
	}

	// Zone
	if f.Zone == nil {
		f.zone = zone.System()
	} else if z, err := zone.Load(*f.Zone); err != nil {
		errors = append(errors, fmt.Sprintf(
			"format.zone is not a known zone: %s", err))
	} else {
		f.zone = z
	}

	// Universal
	if f.Universal == nil {
		f.Universal = &defaultUniversal
	}

	// Locale
	if f.Locale == nil {
		f.Locale = &defaultLocale
	} else if _, ok := t.Locales[*f.Locale]; !ok && !locale.IsPOSIX(*f.Locale) {
		errors = append(errors, fmt.Sprintf(
			"format.locale '%s' is not defined.", *f.Locale))
	}

	// MaxLength
	if !f.MaxLength.set {
		f.maxLength = strftime.MaxLength
	} else if n, err := f.MaxLength.Bytes(); err != nil {
		errors = append(errors, "format.max_length "+err.Error())
	} else if n < 1 || n > strftime.MaxLength {
		errors = append(errors, fmt.Sprintf(
			"format.max_length must be between 1 and %d.",
			strftime.MaxLength))
	} else {
		f.maxLength = int(n)
	}

	return errors
}
