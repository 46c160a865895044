// Package journal is the encrypted entry store. The whole collection is one
// JSON document in a storage.DocumentStore; sensitive fields of every
// record are sealed individually with the journal key.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/analysis"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/cryptox"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/dmitrijs2005/moodkeeper/internal/storage"
	"github.com/google/uuid"
)

var (
	// ErrUndecryptable means the text of a record could not be opened. The
	// record is corrupt or was sealed under another key.
	ErrUndecryptable = errors.New("entry could not be decrypted")
	ErrInvalidEntry  = errors.New("invalid entry")

	errUnchanged = errors.New("collection unchanged")
)

// Store serializes every read-modify-write cycle of the collection, so
// concurrent CreateEntry/DeleteEntry calls never lose each other's updates.
type Store struct {
	mu     sync.Mutex
	docs   storage.DocumentStore
	engine *cryptox.Engine
	log    logging.Logger
	now    func() time.Time
	newID  func() string
}

func NewStore(docs storage.DocumentStore, engine *cryptox.Engine, log logging.Logger) *Store {
	return &Store{
		docs:   docs,
		engine: engine,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// CreateEntry seals the sensitive fields of in, appends a record with a
// fresh id and timestamp, and writes the collection back. When it returns
// an error the entry is not saved.
func (s *Store) CreateEntry(ctx context.Context, in NewEntry) (EncryptedJournalEntry, error) {
	if err := validate(in); err != nil {
		return EncryptedJournalEntry{}, err
	}

	rec, err := s.seal(in)
	if err != nil {
		return EncryptedJournalEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = storage.Update(ctx, s.docs, func(current []byte) ([]byte, error) {
		c, err := decodeCollection(current)
		if err != nil {
			return nil, err
		}
		c.Entries = append(c.Entries, rec)
		return json.Marshal(c)
	})
	if err != nil {
		return EncryptedJournalEntry{}, fmt.Errorf("save entry: %w", err)
	}

	s.log.Debug(ctx, "entry created", "id", rec.ID)
	return rec, nil
}

// ListEntries returns every record, newest first, without decrypting. A
// collection that cannot be read is reported as empty.
func (s *Store) ListEntries(ctx context.Context) []EncryptedJournalEntry {
	c, err := s.load(ctx)
	if err != nil {
		s.log.Warn(ctx, "cannot read journal, treating as empty", "error", err)
		return []EncryptedJournalEntry{}
	}

	entries := c.Entries
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries
}

// DecryptEntry opens rec. It fails with ErrUndecryptable when the text
// cannot be opened; any other field that fails degrades to its empty value.
func (s *Store) DecryptEntry(rec EncryptedJournalEntry) (JournalEntry, error) {
	text, err := s.engine.OpenString(rec.Text)
	if err != nil {
		return JournalEntry{}, fmt.Errorf("%w: %s", ErrUndecryptable, rec.ID)
	}

	e := JournalEntry{
		ID:               rec.ID,
		Text:             text,
		Sentiment:        rec.Sentiment,
		Keywords:         s.openList(rec.ID, "keywords", rec.Keywords),
		Summary:          s.openList(rec.ID, "summary", rec.Summary),
		Triggers:         s.openList(rec.ID, "triggers", rec.Triggers),
		Health:           rec.Health,
		DetectedLanguage: rec.DetectedLanguage,
		VoiceTranscribed: rec.VoiceTranscribed,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}

	if rec.WellnessNudge != nil {
		nudge, err := s.engine.OpenString(rec.WellnessNudge)
		if err != nil {
			s.log.Warn(context.Background(), "wellness nudge unreadable", "id", rec.ID, "error", err)
		}
		e.WellnessNudge = nudge
	}
	if e.DetectedLanguage == "" {
		e.DetectedLanguage = analysis.DefaultLanguage
	}
	return e, nil
}

// DeleteEntry removes the record with id. Deleting a missing id is a no-op.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := storage.Update(ctx, s.docs, func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, errUnchanged
		}
		c, err := decodeCollection(current)
		if err != nil {
			return nil, err
		}

		kept := c.Entries[:0]
		for _, e := range c.Entries {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(c.Entries) {
			return nil, errUnchanged
		}
		c.Entries = kept
		return json.Marshal(c)
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}

	s.log.Debug(ctx, "entry deleted", "id", id)
	return nil
}

// Get returns the decrypted entry with id.
func (s *Store) Get(ctx context.Context, id string) (JournalEntry, error) {
	c, err := s.load(ctx)
	if err != nil {
		return JournalEntry{}, err
	}
	for _, rec := range c.Entries {
		if rec.ID == id {
			return s.DecryptEntry(rec)
		}
	}
	return JournalEntry{}, fmt.Errorf("entry %s: %w", id, common.ErrNotFound)
}

// ReadAll lists and decrypts every record. Records that cannot be read are
// skipped and their ids returned in failed, so one bad record never hides
// the rest.
func (s *Store) ReadAll(ctx context.Context) (entries []JournalEntry, failed []string) {
	records := s.ListEntries(ctx)
	entries = make([]JournalEntry, 0, len(records))

	for _, rec := range records {
		e, err := s.DecryptEntry(rec)
		if err != nil {
			s.log.Warn(ctx, "skipping unreadable entry", "id", rec.ID)
			failed = append(failed, rec.ID)
			continue
		}
		entries = append(entries, e)
	}
	return entries, failed
}

func (s *Store) load(ctx context.Context) (collection, error) {
	b, err := s.docs.ReadWhole(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return collection{Version: collectionVersion, Entries: []EncryptedJournalEntry{}}, nil
	}
	if err != nil {
		return collection{}, err
	}
	return decodeCollection(b)
}

func (s *Store) seal(in NewEntry) (EncryptedJournalEntry, error) {
	keywords, err := s.engine.SealJSON(nonNil(in.Keywords))
	if err != nil {
		return EncryptedJournalEntry{}, err
	}
	summary, err := s.engine.SealJSON(nonNil(in.Summary))
	if err != nil {
		return EncryptedJournalEntry{}, err
	}
	triggers, err := s.engine.SealJSON(nonNil(in.Triggers))
	if err != nil {
		return EncryptedJournalEntry{}, err
	}

	var nudge []byte
	if in.WellnessNudge != "" {
		nudge = s.engine.SealString(in.WellnessNudge)
	}

	lang := in.DetectedLanguage
	if lang == "" {
		lang = analysis.DefaultLanguage
	}

	now := s.now().UTC()
	return EncryptedJournalEntry{
		ID:               s.newID(),
		Text:             s.engine.SealString(in.Text),
		Keywords:         keywords,
		Summary:          summary,
		Triggers:         triggers,
		WellnessNudge:    nudge,
		Sentiment:        in.Sentiment,
		Health:           in.Health,
		DetectedLanguage: lang,
		VoiceTranscribed: in.VoiceTranscribed,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (s *Store) openList(id, field string, blob []byte) []string {
	if blob == nil {
		return []string{}
	}
	var out []string
	if err := s.engine.OpenJSON(blob, &out); err != nil {
		s.log.Warn(context.Background(), "entry field unreadable", "id", id, "field", field, "error", err)
		return []string{}
	}
	return nonNil(out)
}

func decodeCollection(b []byte) (collection, error) {
	c := collection{Version: collectionVersion, Entries: []EncryptedJournalEntry{}}
	if len(b) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return collection{}, fmt.Errorf("decode journal: %w", err)
	}
	if c.Version != collectionVersion {
		return collection{}, fmt.Errorf("unsupported journal version %d", c.Version)
	}
	if c.Entries == nil {
		c.Entries = []EncryptedJournalEntry{}
	}
	return c, nil
}

func validate(in NewEntry) error {
	if strings.TrimSpace(in.Text) == "" {
		return common.ErrEmptyText
	}
	if in.Sentiment != nil {
		v := *in.Sentiment
		if math.IsNaN(v) || v < -1 || v > 1 {
			return fmt.Errorf("%w: sentiment %v outside [-1, 1]", ErrInvalidEntry, v)
		}
	}
	if len(in.Keywords) > analysis.MaxKeywords {
		return fmt.Errorf("%w: %d keywords, at most %d allowed", ErrInvalidEntry, len(in.Keywords), analysis.MaxKeywords)
	}
	seen := make(map[string]bool, len(in.Keywords))
	for _, k := range in.Keywords {
		if seen[k] {
			return fmt.Errorf("%w: duplicate keyword %q", ErrInvalidEntry, k)
		}
		seen[k] = true
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
