package config

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/liquidgecka/timefmt/locale"
)

var (
	defaultLocaleRefresh        = time.Duration(0)
	defaultMaximumParallelLoads = int(4)
)

type top struct {
	// Log configuration for the process.
	Log log `toml:"log"`

	// Defaults used when rendering times.
	Format format `toml:"format"`

	// Locale definitions by name.
	Locales map[string]*localeSource `toml:"locale"`

	// A mapping of AWS profile configurations by profile name.
	AWSProfiles map[string]*AWS `toml:"aws"`

	// How often locale definitions are fetched again. Zero (the default)
	// loads them once at startup.
	LocaleRefresh *time.Duration `toml:"locale_refresh"`

	// The maximum number of locale definitions fetched at once.
	MaximumParallelLoads *int `toml:"maximum_parallel_loads"`

	// Sessions for every valid AWS profile, used by s3:// sources.
	profiles profiles

	// The registry that every [locale.*] section is added to.
	registry *locale.Registry
}

func (t *top) validate() []string {
	var errors []string

	// AWSProfiles have to be set up first since locale sources refer to
	// them.
	t.profiles = make(map[string]*session.Session, len(t.AWSProfiles))
	for name, profile := range t.AWSProfiles {
		if profile == nil {
			errors = append(errors, fmt.Sprintf(
				"aws.%s can not be empty.", name))
			continue
		}
		errors = append(errors, profile.validate(name)...)
		if sess := profile.GetSession(); sess != nil {
			t.profiles[name] = sess
		}
	}

	// MaximumParallelLoads
	if t.MaximumParallelLoads == nil {
		t.MaximumParallelLoads = &defaultMaximumParallelLoads
	} else if *t.MaximumParallelLoads < 1 {
		errors = append(
			errors,
			"maximum_parallel_loads can not be less than 1.")
	}
	t.registry = &locale.Registry{Parallel: *t.MaximumParallelLoads}

	// Locales
	for name, l := range t.Locales {
		if l == nil {
			errors = append(errors, fmt.Sprintf(
				"locale.%s can not be empty.", name))
			continue
		}
		errors = append(errors, l.validate(t, name)...)
	}

	// LocaleRefresh
	if t.LocaleRefresh == nil {
		t.LocaleRefresh = &defaultLocaleRefresh
	} else if *t.LocaleRefresh != 0 && *t.LocaleRefresh < time.Second {
		errors = append(
			errors,
			"locale_refresh must be zero or at least 1s.")
	}

	// Format
	errors = append(errors, t.Format.validate(t)...)

	// Log
	errors = append(errors, t.Log.validate("log")...)

	// Return any errors found.
	return errors
}
