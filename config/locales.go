package config

import (
	"fmt"

	"github.com/liquidgecka/timefmt/locale"
)

// A [locale.<name>] section.
type localeSource struct {
	// Where the TOML definition lives: a path, a file: url or
	// s3://bucket/key?profile=<aws profile>.
	Source *string `toml:"source"`
}

func (l *localeSource) validate(t *top, name string) []string {
	var errors []string
	switch {
	case !isValidLocaleName(name):
		errors = append(errors, fmt.Sprintf(
			"locale.%s is not a valid locale name.", name))
	case locale.IsPOSIX(name):
		errors = append(errors, fmt.Sprintf(
			"locale.%s is reserved for the built in locale.", name))
	}
	if l.Source == nil {
		errors = append(errors, fmt.Sprintf(
			"locale.%s.source is a required field.", name))
		return errors
	}
	src, err := locale.NewSource(*l.Source, t.profiles)
	if err != nil {
		errors = append(errors, fmt.Sprintf(
			"locale.%s.source is not valid: %s", name, err))
	} else if len(errors) == 0 {
		if err := t.registry.Add(name, src); err != nil {
			errors = append(errors, fmt.Sprintf("locale.%s: %s", name, err))
		}
	}
	return errors
}
