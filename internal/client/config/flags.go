package config

import (
	"flag"
	"os"
	"time"
)

// parseFlags populates selected Config fields from command-line flags.
// Only the flags listed in the package doc are consulted.
func parseFlags(cfg *Config) {
	args := filterArgs(os.Args[1:], "-u", "-l", "-s", "-r", "-t", "-v")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.FortuneBaseURL, "u", cfg.FortuneBaseURL, "base URL of the fortune service")
	fs.StringVar(&cfg.LoginURL, "l", cfg.LoginURL, "member login endpoint")
	fs.StringVar(&cfg.StorageDSN, "s", cfg.StorageDSN, "local storage DSN")
	fs.Float64Var(&cfg.RequestRate, "r", cfg.RequestRate, "outbound requests per second")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
