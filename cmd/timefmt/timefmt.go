package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/liquidgecka/timefmt/config"
	"github.com/liquidgecka/timefmt/internal/logging"
	"github.com/liquidgecka/timefmt/zone"
)

// Common arguments.
var (
	Config = flag.String(
		"c",
		"",
		"Path to the config file.")

	FormatFlag = flag.String(
		"f",
		"",
		"The strftime format to render. Defaults to [format] layout.")

	TimeFlag = flag.String(
		"t",
		"",
		"Render this RFC 3339 time rather than the current time.")

	EpochFlag = flag.String(
		"e",
		"",
		"Render this many seconds since the epoch.")

	ZoneFlag = flag.String(
		"z",
		"",
		"Render in this IANA zone.")

	UniversalFlag = flag.Bool(
		"u",
		false,
		"Render in UTC.")

	LocaleFlag = flag.String(
		"l",
		"",
		"The locale to render with.")

	ProbeFlag = flag.Bool(
		"n",
		false,
		"Print the length of the output rather than the output.")

	StampFlag = flag.Bool(
		"stamp",
		false,
		"Copy stdin to stdout prefixing every line with the current time.")

	VersionFlag = flag.Bool(
		"V",
		false,
		"Display the build version and then exit.")
)

// Common variables that are held for the life of the binary.
var (
	Rotators []*logging.Rotator
	log      *logging.Logger
)

// Expected to be set via -ldflags/-X by the linker
var BuildVersion string
var BuildTimeEpoch string

func Version() string {
	if BuildVersion == "" {
		BuildVersion = "Unknown"
		BuildTimeEpoch = "unknown"
	}
	return fmt.Sprintf(
		"timefmt: %s ts=%s go=%s\n",
		BuildVersion,
		BuildTimeEpoch,
		runtime.Version())
}

// Parses -t or -e. If neither is given then the clock's current time is
// returned.
func parseTime(clock clockwork.Clock, rfc3339, epoch string) (time.Time, error) {
	switch {
	case rfc3339 != "" && epoch != "":
		return time.Time{}, fmt.Errorf("-t and -e can not be used together")
	case rfc3339 != "":
		return time.Parse(time.RFC3339Nano, rfc3339)
	case epoch != "":
		secs, err := strconv.ParseInt(epoch, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid epoch %q", epoch)
		}
		return time.Unix(secs, 0), nil
	default:
		return clock.Now(), nil
	}
}

// Loads the configuration, applying the command line overrides.
func configure(ctx context.Context) (*config.Config, *job) {
	var cnf *config.Config
	if *Config == "" {
		cnf = config.Default()
	} else {
		var err error
		if cnf, err = config.Parse(*Config); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(1)
		}
	}
	if err := cnf.InitializeLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
	Rotators = cnf.GetRotators()
	log = cnf.GetLogger()
	log.Debug(
		"Starting.",
		logging.NewField("build-version", BuildVersion),
		logging.NewField("build-time", BuildTimeEpoch))

	if err := cnf.LoadLocales(ctx); err != nil {
		log.Warning(
			"Some locales failed to load.",
			logging.NewFieldIface("error", err))
	}

	f, err := cnf.GetFormatter()
	if err == nil && *LocaleFlag != "" {
		f.Locale, err = cnf.GetRegistry().Ref(*LocaleFlag)
	}
	if err != nil {
		log.Error("Unable to select a locale.", logging.NewFieldIface("error", err))
		os.Exit(2)
	}
	j := &job{
		formatter: f,
		zone:      cnf.GetZone(),
		layout:    cnf.GetLayout(),
		maxLength: cnf.GetMaxLength(),
	}
	if *FormatFlag != "" {
		j.layout = *FormatFlag
	}
	if *ZoneFlag != "" {
		if j.zone, err = zone.Load(*ZoneFlag); err != nil {
			log.Error("Unknown zone.", logging.NewFieldIface("error", err))
			os.Exit(2)
		}
		f.Zone = j.zone
	}
	if *UniversalFlag {
		f.Universal = true
	}
	return cnf, j
}

func main() {
	// Add config arguments
	config.SetupFlags()

	flag.Parse()
	if *VersionFlag {
		fmt.Print(Version())
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cnf, j := configure(ctx)
	clock := clockwork.NewRealClock()

	if *StampFlag {
		SetupRotation()
		cnf.StartLocaleRefresher(ctx)
		if err := j.stamp(clock, os.Stdin, os.Stdout); err != nil {
			log.Error("Error copying input.", logging.NewFieldIface("error", err))
			os.Exit(1)
		}
		return
	}

	t, err := parseTime(clock, *TimeFlag, *EpochFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
	if *ProbeFlag {
		fmt.Println(j.length(t))
		return
	}
	if err := j.print(os.Stdout, t); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
}
