// Package store implements the persisted account database: a flat mapping
// from user email to credentials and application data, plus the last-active
// session pointer. Persistence is whole-record overwrite with no merging;
// the last save wins. Two backends exist: a single JSON blob on disk (the
// default) and SQLite with one row per account.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"vantage/internal/core"
)

const (
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

type BackendType string

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

var (
	// ErrAccountExists is returned when registering an email that is taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrInvalidCredentials is returned on login mismatch or unknown email.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoSession is returned when resuming without a last-active session.
	ErrNoSession = errors.New("no active session")
)

// Record is everything persisted for one account.
type Record struct {
	Password string       `json:"password"`
	User     core.User    `json:"user"`
	Data     core.AppData `json:"data"`
}

// Database is the full persisted state: the flat account map and the
// last-active session pointer used for session resume.
type Database struct {
	Users         map[string]Record `json:"users"`
	LastUserEmail string            `json:"lastUserEmail,omitempty"`
}

// NewDatabase returns an empty database with an allocated account map.
func NewDatabase() Database {
	return Database{Users: make(map[string]Record)}
}

// Backend reads and writes the full database. Load must fail closed: absent
// or unparseable state yields an empty database, never an error the caller
// has to recover from. Save overwrites everything it finds.
type Backend interface {
	Load(ctx context.Context) (Database, error)
	Save(ctx context.Context, db Database) error
	Close() error
}

// Config selects and parameterizes a backend.
type Config struct {
	Type       BackendType
	FilePath   string
	SQLitePath string
}

// Open creates the backend named by cfg.Type.
func Open(cfg Config, logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Type {
	case FileBackend:
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file backend requires a database path")
		}
		return NewFileStore(cfg.FilePath, logger), nil
	case SQLiteBackend:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite backend requires a database path")
		}
		return NewSQLiteBackend(cfg.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
