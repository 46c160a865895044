package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from daemon flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., "127.0.0.1:50051")
//	-b string   journal backend (file|sqlite|postgres|s3)
//	-d string   database DSN
//	-s string   pairing token HMAC secret
//	-t int      pairing token validity, minutes
//	-r float    requests per second allowed
//	-l string   log level
//	-m string   classifier artifact path
//	-dir string data directory
//
// Args are filtered with flagx.FilterArgs first so -c/-config and anything
// else meant for other parsers is ignored.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-b", "-d", "-s", "-t", "-r", "-l", "-m", "-dir"})

	fs := flag.NewFlagSet("moodkeeperd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.GRPCAddr, "a", config.GRPCAddr, "address and port to run server")
	fs.StringVar(&config.Backend, "b", config.Backend, "journal backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidity.Minutes()), "token validity (in minutes)")
	fs.Float64Var(&config.RateLimit, "r", config.RateLimit, "requests per second")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.ClassifierPath, "m", config.ClassifierPath, "classifier artifact")
	fs.StringVar(&config.DataDir, "dir", config.DataDir, "data directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidity = time.Duration(*tokenValidity) * time.Minute
		}
	})
	return nil
}
