package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "MOODKEEPER_"

// parseEnv overlays MOODKEEPER_* variables. Values from dotenv (if the file
// exists) are used only where the real environment has no value.
func parseEnv(cfg *Config, dotenv string) error {
	fileVars := map[string]string{}
	if dotenv != "" {
		vars, err := godotenv.Read(dotenv)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", dotenv, err)
		}
	}

	lookup := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			return v, true
		}
		v, ok := fileVars[envPrefix+name]
		return v, ok
	}
	return applyEnv(cfg, lookup)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"DATA_DIR":        &cfg.DataDir,
		"BACKEND":         &cfg.Backend,
		"DATABASE_DSN":    &cfg.DatabaseDSN,
		"CLASSIFIER_PATH": &cfg.ClassifierPath,
		"PASSPHRASE":      &cfg.Passphrase,
		"GRPC_ADDR":       &cfg.GRPCAddr,
		"SECRET_KEY":      &cfg.SecretKey,
		"S3_BUCKET":       &cfg.S3Bucket,
		"S3_KEY":          &cfg.S3Key,
		"S3_REGION":       &cfg.S3Region,
		"S3_ENDPOINT":     &cfg.S3Endpoint,
		"S3_ACCESS_KEY":   &cfg.S3AccessKey,
		"S3_SECRET_KEY":   &cfg.S3SecretKey,
		"LOG_LEVEL":       &cfg.LogLevel,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"CLASSIFIER_TIMEOUT": &cfg.ClassifierTimeout,
		"TOKEN_VALIDITY":     &cfg.TokenValidity,
	}
	for name, dst := range durations {
		if v, ok := lookup(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = d
		}
	}

	if v, ok := lookup("RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT: %w", envPrefix, err)
		}
		cfg.RateLimit = f
	}
	if v, ok := lookup("RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRATE_BURST: %w", envPrefix, err)
		}
		cfg.RateBurst = n
	}
	return nil
}
