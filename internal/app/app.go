// Package app wires configuration into a working set of components: the
// journal backend, the key store, the cipher, the analyzer and the entry
// store. Both binaries build one App and close it on exit.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/moodkeeper/internal/analysis"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/config"
	"github.com/dmitrijs2005/moodkeeper/internal/cryptox"
	"github.com/dmitrijs2005/moodkeeper/internal/filex"
	"github.com/dmitrijs2005/moodkeeper/internal/journal"
	"github.com/dmitrijs2005/moodkeeper/internal/keystore"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/dmitrijs2005/moodkeeper/internal/storage"
)

// PairingSecretName is the key store entry holding the pairing token HMAC
// secret when none is configured.
const PairingSecretName = "pairing_secret"

type App struct {
	Config   *config.Config
	Logger   logging.Logger
	Keys     keystore.KeyStore
	Analyzer *analysis.Analyzer
	Journal  *journal.Store

	db *sql.DB
}

// New builds every component described by cfg. The journal key is created
// on first run.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dir

	a := &App{Config: cfg, Logger: log}

	docs, keys, err := a.openBackend(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	keys, err = unlockKeys(ctx, keys, cfg.Passphrase)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Keys = keys

	key, err := keystore.EnsureKey(ctx, keys, keystore.JournalKeyName)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("journal key: %w", err)
	}
	engine, err := cryptox.NewEngine(key)
	common.WipeByteArray(key)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	scorer, err := analysis.NewScorer(ctx, analysis.ScorerConfig{
		ClassifierPath:    cfg.ClassifierPath,
		ClassifierTimeout: cfg.ClassifierTimeout,
	}, log.With("module", "analysis"))
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Analyzer = analysis.NewAnalyzer(scorer, log.With("module", "analysis"))
	a.Journal = journal.NewStore(docs, engine, log.With("module", "journal"))

	log.Debug(ctx, "app ready", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	return a, nil
}

// openBackend returns the journal document store and the key store for the
// configured backend. The journal key always stays on this device: remote
// backends only ever see ciphertext.
func (a *App) openBackend(ctx context.Context) (storage.DocumentStore, keystore.KeyStore, error) {
	cfg := a.Config

	if cfg.Backend == config.BackendSQLite {
		db, err := storage.OpenSQLite(ctx, cfg.SQLitePath())
		if err != nil {
			return nil, nil, err
		}
		a.db = db
		return storage.NewSQLiteStore(db, storage.DocumentName), keystore.NewSQLiteStore(db), nil
	}

	keys, err := keystore.NewFileStore(filepath.Join(cfg.DataDir, "keys"))
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Backend {
	case config.BackendFile:
		return storage.NewFileStore(cfg.JournalPath()), keys, nil

	case config.BackendPostgres:
		db, err := storage.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		a.db = db
		return storage.NewPostgresStore(db, storage.DocumentName), keys, nil

	case config.BackendS3:
		s3, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Key:       cfg.S3Key,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return s3, keys, nil
	}

	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// unlockKeys refuses to open a passphrase-protected store without the
// passphrase. When a passphrase is given, keys created before it was
// enrolled move into the sealed store so the journal keeps one key.
func unlockKeys(ctx context.Context, keys keystore.KeyStore, passphrase string) (keystore.KeyStore, error) {
	protected, err := keystore.Protected(ctx, keys)
	if err != nil {
		return nil, err
	}
	if passphrase == "" {
		if protected {
			return nil, keystore.ErrPassphraseRequired
		}
		return keys, nil
	}

	ps, err := keystore.NewPassphraseStore(ctx, keys, []byte(passphrase))
	if err != nil {
		return nil, err
	}
	if err := ps.AdoptPlain(ctx, keystore.JournalKeyName, PairingSecretName); err != nil {
		return nil, fmt.Errorf("adopt plain keys: %w", err)
	}
	return ps, nil
}

// PairingSecret returns the configured HMAC secret for pairing tokens, or a
// random one kept in the key store.
func (a *App) PairingSecret(ctx context.Context) ([]byte, error) {
	if a.Config.SecretKey != "" {
		return []byte(a.Config.SecretKey), nil
	}
	return keystore.EnsureKey(ctx, a.Keys, PairingSecretName)
}

// AnalyzeAndSave runs the pipeline on text and stores the result as a new
// entry with the given health correlates.
func (a *App) AnalyzeAndSave(ctx context.Context, text string, health journal.HealthCorrelates, voice bool) (journal.EncryptedJournalEntry, analysis.FullAnalysisResult, error) {
	if err := analysis.CheckText(text); err != nil {
		return journal.EncryptedJournalEntry{}, analysis.FullAnalysisResult{}, err
	}

	result := a.Analyzer.Analyze(ctx, text)

	in := journal.NewEntryFromAnalysis(text, result)
	in.Health = health
	in.VoiceTranscribed = voice

	rec, err := a.Journal.CreateEntry(ctx, in)
	if err != nil {
		return journal.EncryptedJournalEntry{}, result, err
	}
	return rec, result, nil
}

func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	return errors.Join(errs...)
}
