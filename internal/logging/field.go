package logging

import (
	"fmt"
	"strconv"
)

// A single key=value pair attached to a log line.
type Field struct {
	// The encoded name and value. The *Quoted flags record whether the
	// string had characters that required escaping, in which case the
	// plain and ANSI renderers wrap it in quotes. valueRaw means the value
	// is a number or bool and can be written to JSON without quotes.
	name        string
	nameQuoted  bool
	value       string
	valueRaw    bool
	valueQuoted bool

	// How deep in a Logger's field list this field is.
	level int

	// Errors are highlighted by the ANSI renderer.
	red bool

	// The field that was added to the Logger before this one.
	prev *Field
}

// Creates a string field. This does not allocate unless the name or value
// needs escaping.
func NewField(name, value string) (f Field) {
	f.set(name, value)
	return
}

// Creates a field from an arbitrary value. Numbers and bools are rendered
// raw, errors are highlighted and everything else goes through
// fmt.Stringer or %#v. Prefer NewField where possible as this forces value
// onto the heap.
func NewFieldIface(name string, value interface{}) (f Field) {
	switch o := value.(type) {
	case string:
		f.set(name, o)
	case int:
		return NewFieldInt64(name, int64(o))
	case int32:
		return NewFieldInt64(name, int64(o))
	case int64:
		return NewFieldInt64(name, o)
	case uint:
		return NewFieldUint64(name, uint64(o))
	case uint32:
		return NewFieldUint64(name, uint64(o))
	case uint64:
		return NewFieldUint64(name, o)
	case bool:
		f.set(name, strconv.FormatBool(o))
		f.valueRaw = true
	case error:
		f.set(name, o.Error())
		f.red = true
	case fmt.Stringer:
		f.set(name, o.String())
	default:
		f.set(name, fmt.Sprintf("%#v", value))
	}
	return
}

// Creates a field from a signed integer.
func NewFieldInt64(name string, value int64) (f Field) {
	f.set(name, strconv.FormatInt(value, 10))
	f.valueRaw = true
	return
}

// Creates a field from an unsigned integer.
func NewFieldUint64(name string, value uint64) (f Field) {
	f.set(name, strconv.FormatUint(value, 10))
	f.valueRaw = true
	return
}

func (f *Field) set(name, value string) {
	f.name, f.nameQuoted = name, false
	if shouldEscape(name) {
		f.name, f.nameQuoted = encodeJSONString(name), true
	}
	f.value, f.valueQuoted = value, false
	if shouldEscape(value) {
		f.value, f.valueQuoted = encodeJSONString(value), true
	}
}
