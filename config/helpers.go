package config

import (
	"github.com/liquidgecka/timefmt/internal/errors"
)

// Returns true if name can be used for a locale. Names follow the usual
// POSIX shape, for example "ja_JP.UTF-8@calendar".
func isValidLocaleName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.', r == '@':
		default:
			return false
		}
	}
	return true
}

// Converts validation messages into a single error, or nil if there are
// none.
func validationError(desc string, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	errs := make([]error, len(msgs))
	for i, m := range msgs {
		errs[i] = errors.New(m)
	}
	return errors.NewMultipleError(desc, errs)
}
