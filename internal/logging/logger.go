package logging

import (
	"time"
)

// Sends log lines to an Output along with a list of fields that are
// attached to every line.
type Logger struct {
	output    *Output
	fields    *Field
	enableDbg bool
}

// Creates a new top level logger.
func NewLogger(o *Output) *Logger {
	return &Logger{
		output: o,
	}
}

// Attaches a field to every line this logger writes. The logger is
// returned so calls can be chained.
func (l *Logger) AddField(key string, value interface{}) *Logger {
	newField := NewFieldIface(key, value)
	newField.level = 1
	if l.fields != nil {
		newField.level = l.fields.level + 1
	}
	newField.prev = l.fields
	l.fields = &newField
	return l
}

// Disables debug logging on this Logger.
func (l *Logger) DisableDebug() {
	l.enableDbg = false
}

// Returns true if this logger has debug logging enabled.
func (l *Logger) DebugEnabled() bool {
	return l.enableDbg
}

// Enables debug logging on this Logger and any child created from it
// afterwards.
func (l *Logger) EnableDebug() {
	l.enableDbg = true
}

// Returns a copy of this logger. Fields added to the child do not show up
// on the parent.
func (l *Logger) NewChild() *Logger {
	return &Logger{
		output:    l.output,
		fields:    l.fields,
		enableDbg: l.enableDbg,
	}
}

// Set the output of this Logger to the given Output object.
func (l *Logger) SetOutput(o *Output) {
	l.output = o
}

func (l *Logger) write(lvl level, msg string, fields []Field) {
	if l == nil || l.output == nil {
		return
	}
	data := renderData{
		time:      time.Now(),
		level:     lvl,
		message:   msg,
		tail:      l.fields,
		optFields: fields,
	}
	l.output.Write(&data)
}

// Log a Debug level message with additional fields.
func (l *Logger) Debug(msg string, fields ...Field) {
	if l != nil && l.enableDbg {
		l.write(dbg, msg, fields)
	}
}

// Log a Info level message with additional fields.
func (l *Logger) Info(msg string, fields ...Field) {
	l.write(inf, msg, fields)
}

// Log a Warning level message with additional fields.
func (l *Logger) Warning(msg string, fields ...Field) {
	l.write(wrn, msg, fields)
}

// Log a Error level message with additional fields.
func (l *Logger) Error(msg string, fields ...Field) {
	l.write(err, msg, fields)
}
