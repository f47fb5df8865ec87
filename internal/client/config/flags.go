package config

import (
	"flag"
	"os"
	"time"

	"github.com/tommieseals/asset-tracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend HTTP API (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-d string   path to the local sqlite database (default from Config)
//	-s int      minimum search query length in runes (default from Config)
//	-v          verbose (debug) logging
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-s", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend HTTP API")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local sqlite database")
	fs.IntVar(&cfg.SearchMinLength, "s", cfg.SearchMinLength, "minimum search query length (in runes)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose (debug) logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
