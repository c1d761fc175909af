package config

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"

	toml "github.com/pelletier/go-toml"

	"github.com/liquidgecka/timefmt/internal/logging"
	"github.com/liquidgecka/timefmt/locale"
	"github.com/liquidgecka/timefmt/strftime"
	"github.com/liquidgecka/timefmt/zone"
)

type Config struct {
	top *top

	// Ensures that logging is only initialized once.
	initializeOnce sync.Once
	initializeErr  error
}

// Parses a file and validates its contents, returning the objects that can
// be used for configuration later.
func Parse(filename string) (*Config, error) {
	fd, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return parse(fd)
}

// Returns a configuration with every value at its default, used when no
// configuration file is given.
func Default() *Config {
	c, err := parse(bytes.NewReader(nil))
	if err != nil {
		panic(err)
	}
	return c
}

func parse(r io.Reader) (*Config, error) {
	top := &top{}
	decoder := toml.NewDecoder(r).Strict(true)
	if err := decoder.Decode(top); err != nil {
		return nil, err
	}
	if err := validationError("invalid configuration", top.validate()); err != nil {
		return nil, err
	}
	return &Config{top: top}, nil
}

// Initializes the logging system.
func (c *Config) InitializeLogging() error {
	c.initializeOnce.Do(func() {
		c.initializeErr = c.top.Log.initLogging()
		if c.initializeErr == nil {
			c.top.registry.Log = c.top.Log.logger
		}
	})
	return c.initializeErr
}

// Returns the top level logger that was generated during initialization.
func (c *Config) GetLogger() *logging.Logger {
	if err := c.InitializeLogging(); err != nil {
		panic(err)
	}
	return c.top.Log.logger
}

// Returns all log rotators created as part of the configuration.
func (c *Config) GetRotators() []*logging.Rotator {
	if err := c.InitializeLogging(); err != nil {
		panic(err)
	}
	if c.top.Log.rotator == nil {
		return nil
	}
	return []*logging.Rotator{c.top.Log.rotator}
}

// Returns the registry holding every configured locale.
func (c *Config) GetRegistry() *locale.Registry {
	return c.top.registry
}

// The default layout from [format].
func (c *Config) GetLayout() string {
	return *c.top.Format.Layout
}

// The default locale name from [format].
func (c *Config) GetLocale() string {
	return *c.top.Format.Locale
}

// The largest output that should be rendered.
func (c *Config) GetMaxLength() int {
	return c.top.Format.maxLength
}

// The zone from [format], or the system zone if none was configured.
func (c *Config) GetZone() *zone.Location {
	return c.top.Format.zone
}

// Returns true if times should be rendered in UTC.
func (c *Config) GetUniversal() bool {
	return *c.top.Format.Universal
}

// Builds a Formatter from the [format] section. Locales other than POSIX
// must have been loaded with LoadLocales first. The Formatter follows any
// later reloads of its locale.
func (c *Config) GetFormatter() (*strftime.Formatter, error) {
	loc, err := c.top.registry.Ref(c.GetLocale())
	if err != nil {
		return nil, err
	}
	return &strftime.Formatter{
		Locale:    loc,
		Zone:      c.GetZone(),
		Universal: c.GetUniversal(),
	}, nil
}

// Performs the initial load of every configured locale.
func (c *Config) LoadLocales(ctx context.Context) error {
	return c.top.registry.LoadAll(ctx)
}

// Starts reloading locales in the background if locale_refresh is set. The
// refresher stops when ctx is canceled.
func (c *Config) StartLocaleRefresher(ctx context.Context) {
	if *c.top.LocaleRefresh <= 0 {
		return
	}
	go c.top.registry.Run(ctx, *c.top.LocaleRefresh)
}
