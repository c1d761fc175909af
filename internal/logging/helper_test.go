package logging

import (
	"testing"

	"github.com/liquidgecka/testlib"
)

func TestEncodeJSONString(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	T.Equal(encodeJSONString("abc"), "abc")
	T.Equal(encodeJSONString("%Y-%m-%d"), `%Y-%m-%d`)
	T.Equal(encodeJSONString(`\`), `\\`)
	T.Equal(encodeJSONString(`"`), `\"`)
	T.Equal(encodeJSONString("\t\r\n"), `\t\r\n`)
	T.Equal(encodeJSONString("  "), `  `)
	T.Equal(encodeJSONString("\u0000"), `\u0000`)
	T.Equal(encodeJSONString("日本"), "日本")
}

func TestShouldEscape(t *testing.T) {
	T := testlib.NewT(t)
	defer T.Finish()

	T.Equal(shouldEscape("aA90_-"), false)
	T.Equal(shouldEscape("abc"), false)
	T.Equal(shouldEscape(""), true)
	T.Equal(shouldEscape("a b"), true)
	T.Equal(shouldEscape("日"), true)
}
