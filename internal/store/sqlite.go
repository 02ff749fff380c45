package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"vantage/internal/core"
	applog "vantage/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteBackendStore holds one row per account plus a single-row session
// table. Save still overwrites everything, preserving the whole-record
// last-writer-wins contract of the file backend.
type SQLiteBackendStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteBackend(dbPath string, logger *slog.Logger) (*SQLiteBackendStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateSchema(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteBackendStore{db: db, logger: logger}, nil
}

func (s *SQLiteBackendStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load rebuilds the database from the account rows. A row whose data column
// fails to parse keeps its credentials but falls back to empty app data, so
// one corrupt record never takes the store down.
func (s *SQLiteBackendStore) Load(ctx context.Context) (Database, error) {
	db := NewDatabase()

	rows, err := s.db.QueryContext(ctx,
		`SELECT email, password, name, data FROM accounts`)
	if err != nil {
		return db, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var email, password, name, raw string
		if err := rows.Scan(&email, &password, &name, &raw); err != nil {
			return db, fmt.Errorf("scan account row: %w", err)
		}

		var data core.AppData
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			s.logger.WarnContext(ctx, "Malformed account data, substituting empty",
				applog.FieldEmail, email, applog.FieldError, err)
			data = core.AppData{}
		}

		db.Users[email] = Record{
			Password: password,
			User:     core.User{Name: name, Email: email},
			Data:     data,
		}
	}
	if err := rows.Err(); err != nil {
		return db, fmt.Errorf("iterate account rows: %w", err)
	}

	var last sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT last_user_email FROM session WHERE id = 1`).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return db, fmt.Errorf("query session pointer: %w", err)
	}
	if last.Valid {
		db.LastUserEmail = last.String
	}

	return db, nil
}

// Save replaces all account rows and the session pointer in one transaction.
func (s *SQLiteBackendStore) Save(ctx context.Context, db Database) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}

	for email, rec := range db.Users {
		raw, err := json.Marshal(rec.Data)
		if err != nil {
			return fmt.Errorf("marshal account data for %s: %w", email, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (email, password, name, data) VALUES (?, ?, ?, ?)`,
			email, rec.Password, rec.User.Name, string(raw),
		); err != nil {
			return fmt.Errorf("insert account %s: %w", email, err)
		}
	}

	last := sql.NullString{String: db.LastUserEmail, Valid: db.LastUserEmail != ""}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO session (id, last_user_email) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET last_user_email = excluded.last_user_email`,
		last,
	); err != nil {
		return fmt.Errorf("update session pointer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}
	return nil
}
