package logging

import (
	"strings"
	"unicode"
)

const hexChars = "0123456789ABCDEF"

// Escapes s so that it can be placed between quotes in a JSON document.
func encodeJSONString(s string) string {
	b := strings.Builder{}
	b.Grow(len(s) + len(s)/4)
	for _, r := range s {
		switch r {
		case '\\', '"':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			// U+2028 and U+2029 are valid JSON but break javascript.
			if r == 0x2028 || r == 0x2029 || !unicode.IsPrint(r) {
				b.WriteString(`\u`)
				b.WriteByte(hexChars[r>>12&0x0F])
				b.WriteByte(hexChars[r>>8&0x0F])
				b.WriteByte(hexChars[r>>4&0x0F])
				b.WriteByte(hexChars[r&0x0F])
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// Returns true if str contains anything other than letters, digits,
// underscores and dashes. Empty strings are quoted too.
func shouldEscape(str string) bool {
	if len(str) == 0 {
		return true
	}
	for i := 0; i < len(str); i++ {
		c := str[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_', c == '-':
		default:
			return true
		}
	}
	return false
}
