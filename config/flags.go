package config

import (
	"flag"
)

var (
	console *bool
	debug   *bool
)

// Registers the flags that change how the configuration is applied. Must be
// called before flag.Parse().
func SetupFlags() {
	console = flag.Bool(
		"console",
		false,
		"Also log to the system console.")

	debug = flag.Bool(
		"debug",
		false,
		"Enable debug logging.")
}
