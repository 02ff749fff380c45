package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the whole database as one JSON document on disk, the
// direct analog of the original's browser key-value storage blob.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Load reads the persisted blob. A missing file or malformed JSON yields an
// empty database; corruption is logged, never propagated.
func (f *FileStore) Load(ctx context.Context) (Database, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.WarnContext(ctx, "Failed to read database file, starting empty",
				"path", f.path, "error", err)
		}
		return NewDatabase(), nil
	}

	var db Database
	if err := json.Unmarshal(raw, &db); err != nil {
		f.logger.WarnContext(ctx, "Malformed database file, starting empty",
			"path", f.path, "error", err)
		return NewDatabase(), nil
	}
	if db.Users == nil {
		db.Users = make(map[string]Record)
	}
	return db, nil
}

// Save serializes and overwrites the entire blob. The write goes through a
// temp file and rename so a crash never leaves a half-written database.
func (f *FileStore) Save(ctx context.Context, db Database) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	raw, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal database: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write database file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace database file: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}
