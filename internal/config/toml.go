package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/flagx"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the on-disk TOML shape. Durations are strings such as "2s"
// or "720h"; zero values leave the current setting alone.
type fileConfig struct {
	DataDir           string  `toml:"data_dir"`
	Backend           string  `toml:"backend"`
	DatabaseDSN       string  `toml:"database_dsn"`
	ClassifierPath    string  `toml:"classifier_path"`
	ClassifierTimeout string  `toml:"classifier_timeout"`
	Passphrase        string  `toml:"passphrase"`
	GRPCAddr          string  `toml:"grpc_addr"`
	SecretKey         string  `toml:"secret_key"`
	TokenValidity     string  `toml:"token_validity"`
	RateLimit         float64 `toml:"rate_limit"`
	RateBurst         int     `toml:"rate_burst"`
	LogLevel          string  `toml:"log_level"`

	S3 struct {
		Bucket    string `toml:"bucket"`
		Key       string `toml:"key"`
		Region    string `toml:"region"`
		Endpoint  string `toml:"endpoint"`
		AccessKey string `toml:"access_key"`
		SecretKey string `toml:"secret_key"`
	} `toml:"s3"`
}

func configFileFlag(args []string) string {
	return flagx.ConfigFileFlag(args)
}

func parseTOML(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.Backend, fc.Backend)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.ClassifierPath, fc.ClassifierPath)
	setString(&cfg.Passphrase, fc.Passphrase)
	setString(&cfg.GRPCAddr, fc.GRPCAddr)
	setString(&cfg.SecretKey, fc.SecretKey)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.S3Bucket, fc.S3.Bucket)
	setString(&cfg.S3Key, fc.S3.Key)
	setString(&cfg.S3Region, fc.S3.Region)
	setString(&cfg.S3Endpoint, fc.S3.Endpoint)
	setString(&cfg.S3AccessKey, fc.S3.AccessKey)
	setString(&cfg.S3SecretKey, fc.S3.SecretKey)

	if err := setDuration(&cfg.ClassifierTimeout, fc.ClassifierTimeout); err != nil {
		return fmt.Errorf("classifier_timeout: %w", err)
	}
	if err := setDuration(&cfg.TokenValidity, fc.TokenValidity); err != nil {
		return fmt.Errorf("token_validity: %w", err)
	}
	if fc.RateLimit != 0 {
		cfg.RateLimit = fc.RateLimit
	}
	if fc.RateBurst != 0 {
		cfg.RateBurst = fc.RateBurst
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
