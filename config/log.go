package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/liquidgecka/timefmt/internal/logging"
)

var (
	defaultLogFormat    = "plain"
	defaultLogDebug     = false
	defaultLogTimestamp = logging.DefaultTimestamp
	defaultLogUTC       = false

	// Where lines go when no file is configured.
	logStderr io.Writer = os.Stderr
)

type log struct {
	// A log file to log too. If not set then logs are written to stderr.
	File *string `toml:"file"`

	// Which format to use when logging, valid option are "plain", "json"
	// and "ansi". Default is plain.
	Format *string `toml:"format"`

	// Enable debug logging for this channel.
	Debug *bool `toml:"debug"`

	// The strftime layout used for the timestamp on each line.
	Timestamp *string `toml:"timestamp"`

	// Render timestamps in UTC rather than the local zone.
	UTC *bool `toml:"utc"`

	// The name passed in to validate() initially.
	name string

	// The parsed Format.
	format logging.Format

	// A reference to the logging.Logger that was created for this
	// log operation.
	logger *logging.Logger

	// A reference to the Rotator that is used to manage the output for
	// this log configuration. nil when logging to stderr.
	rotator *logging.Rotator
}

func (l *log) stamp() *logging.Stamp {
	s := &logging.Stamp{Layout: *l.Timestamp}
	if *l.UTC {
		s.Location = time.UTC
	}
	return s
}

func (l *log) initLogging() error {
	var output *logging.Output
	if l.File != nil {
		var err error
		l.rotator, output, err = logging.NewRotator(*l.File, l.format, l.stamp())
		if err != nil {
			return fmt.Errorf(
				"%s had an error initializing: %s",
				l.name,
				err.Error())
		}
	} else {
		output = logging.NewOutput(
			l.format,
			bufio.NewWriter(logStderr),
			l.stamp())
	}
	if console != nil && *console {
		output.TeeOutput(logging.NewOutput(
			logging.ANSI,
			bufio.NewWriter(os.Stdout),
			l.stamp()))
	}
	l.logger = logging.NewLogger(output)
	if (debug != nil && *debug) || *l.Debug {
		l.logger.EnableDebug()
	}
	return nil
}

func (l *log) validate(name string) []string {
	var errors []string
	l.name = name

	// File
	if l.File != nil && *l.File == "" {
		errors = append(errors, name+".file can not be an empty string.")
	}

	// Format
	if l.Format == nil {
		l.Format = &defaultLogFormat
	}
	if f, err := logging.ParseFormat(*l.Format); err != nil {
		errors = append(errors, name+".format must be 'plain', 'json' or 'ansi'.")
	} else {
		l.format = f
	}

	// Debug
	if l.Debug == nil {
		l.Debug = &defaultLogDebug
	}

	// Timestamp
	if l.Timestamp == nil {
		l.Timestamp = &defaultLogTimestamp
	} else if *l.Timestamp == "" {
		errors = append(errors, name+".timestamp can not be an empty string.")
	}

	// UTC
	if l.UTC == nil {
		l.UTC = &defaultLogUTC
	}

	// Return any errors encountered.
	return errors
}
