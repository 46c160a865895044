// Package config handles configuration for both binaries: defaults, an
// environment overlay (optionally seeded from a .env file), a TOML file and,
// for the daemon, short command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config holds runtime settings.
//
// Fields:
//   - DataDir: directory for the journal file, key files and sqlite database.
//   - Backend: where the encrypted journal document lives (file|sqlite|postgres|s3).
//   - DatabaseDSN: sqlite path or PostgreSQL DSN (pgx) for the sql backends.
//   - ClassifierPath / ClassifierTimeout: optional model artifact and its call budget.
//   - Passphrase: when set, the journal key is stored wrapped by a passphrase-derived key.
//   - GRPCAddr, SecretKey, TokenValidity: companion service bind address and pairing tokens.
//   - RateLimit / RateBurst: request budget of the companion service.
//   - S3*: object storage settings for the s3 backend.
type Config struct {
	DataDir           string
	Backend           string
	DatabaseDSN       string
	ClassifierPath    string
	ClassifierTimeout time.Duration
	Passphrase        string
	GRPCAddr          string
	SecretKey         string
	TokenValidity     time.Duration
	RateLimit         float64
	RateBurst         int
	S3Bucket          string
	S3Key             string
	S3Region          string
	S3Endpoint        string
	S3AccessKey       string
	S3SecretKey       string
	LogLevel          string
}

// LoadDefaults populates Config with local single-user defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = defaultDataDir()
	c.Backend = BackendFile
	c.DatabaseDSN = ""
	c.ClassifierPath = ""
	c.ClassifierTimeout = 2 * time.Second
	c.GRPCAddr = "127.0.0.1:50051"
	c.SecretKey = ""
	c.TokenValidity = 30 * 24 * time.Hour
	c.RateLimit = 10
	c.RateBurst = 20
	c.S3Key = "journal.json"
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
}

// Load builds the CLI configuration: defaults, then environment, then the
// TOML file at path if path is not empty.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseTOML(cfg, path); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadConfig builds the daemon configuration from args (os.Args[1:]):
// defaults, environment, the TOML file named by -c/-config and finally the
// short flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseTOML(cfg, configFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("backend %q needs a database DSN", c.Backend)
		}
	case BackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("backend %q needs a bucket", c.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	if c.ClassifierTimeout <= 0 {
		return fmt.Errorf("classifier timeout must be positive, got %s", c.ClassifierTimeout)
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("rate limit and burst must be positive")
	}
	return nil
}

// JournalPath is the journal document location for the file backend.
func (c *Config) JournalPath() string {
	return filepath.Join(c.DataDir, "journal.json")
}

// SQLitePath is the sqlite database used when DatabaseDSN is empty.
func (c *Config) SQLitePath() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}
	return filepath.Join(c.DataDir, "moodkeeper.db")
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".moodkeeper"
	}
	return filepath.Join(dir, "moodkeeper")
}
