package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vantage/internal/core"
	applog "vantage/internal/log"
)

// Account is what login, register and resume hand back to the caller: the
// public identity plus a working copy of the owned application data.
type Account struct {
	User core.User    `json:"user"`
	Data core.AppData `json:"data"`
}

// AccountStore implements the account lifecycle on top of a Backend. All
// transitions go through a full load-mutate-save cycle; there are no partial
// writes and the last save wins.
type AccountStore struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures an AccountStore.
type Option func(*AccountStore)

// WithClock overrides the wall clock, used by tests to pin the seeding day.
func WithClock(now func() time.Time) Option {
	return func(s *AccountStore) { s.now = now }
}

func NewAccountStore(backend Backend, logger *slog.Logger, opts ...Option) *AccountStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &AccountStore{backend: backend, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AccountStore) Close() error {
	return s.backend.Close()
}

// Register creates a new account. The email must be free; the new account
// gets the day's default tasks, no leads or goals and zeroed financials, and
// becomes the last-active session.
func (s *AccountStore) Register(ctx context.Context, name, email, secret string) (Account, error) {
	db, err := s.backend.Load(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("load database: %w", err)
	}

	if _, taken := db.Users[email]; taken {
		return Account{}, ErrAccountExists
	}

	today := core.DateKey(s.now())
	data := core.AppData{Financials: core.Financials{}}
	core.SeedDefaults(&data, today)

	rec := Record{
		Password: secret,
		User:     core.User{Name: name, Email: email},
		Data:     data,
	}
	db.Users[email] = rec
	db.LastUserEmail = email

	if err := s.backend.Save(ctx, db); err != nil {
		return Account{}, fmt.Errorf("save database: %w", err)
	}

	s.logger.InfoContext(ctx, "Account registered", applog.FieldEmail, email)
	return Account{User: rec.User, Data: rec.Data}, nil
}

// Login authenticates by exact secret comparison, re-applies the default-task
// seeding check for today and marks the account as the last-active session.
func (s *AccountStore) Login(ctx context.Context, email, secret string) (Account, error) {
	db, err := s.backend.Load(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("load database: %w", err)
	}

	rec, ok := db.Users[email]
	if !ok || rec.Password != secret {
		return Account{}, ErrInvalidCredentials
	}

	return s.activate(ctx, db, email, rec)
}

// Resume re-enters the last-active session without credentials, mirroring the
// original app-reopen flow. ErrNoSession when the pointer is unset or stale.
func (s *AccountStore) Resume(ctx context.Context) (Account, error) {
	db, err := s.backend.Load(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("load database: %w", err)
	}

	rec, ok := db.Users[db.LastUserEmail]
	if db.LastUserEmail == "" || !ok {
		return Account{}, ErrNoSession
	}

	return s.activate(ctx, db, db.LastUserEmail, rec)
}

func (s *AccountStore) activate(ctx context.Context, db Database, email string, rec Record) (Account, error) {
	today := core.DateKey(s.now())
	if core.SeedDefaults(&rec.Data, today) {
		s.logger.InfoContext(ctx, "Seeded default tasks", applog.FieldEmail, email, "date", today)
	}

	db.Users[email] = rec
	db.LastUserEmail = email

	if err := s.backend.Save(ctx, db); err != nil {
		return Account{}, fmt.Errorf("save database: %w", err)
	}

	return Account{User: rec.User, Data: rec.Data}, nil
}

// Logout clears the last-active session pointer. Account data stays put.
func (s *AccountStore) Logout(ctx context.Context) error {
	db, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load database: %w", err)
	}

	db.LastUserEmail = ""

	if err := s.backend.Save(ctx, db); err != nil {
		return fmt.Errorf("save database: %w", err)
	}
	return nil
}

// SaveData writes back the working copy of one account's application data.
// This is the change-observer hook: services call it after every mutation.
func (s *AccountStore) SaveData(ctx context.Context, email string, data core.AppData) error {
	db, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load database: %w", err)
	}

	rec, ok := db.Users[email]
	if !ok {
		return fmt.Errorf("unknown account: %s", email)
	}
	rec.Data = data
	db.Users[email] = rec

	if err := s.backend.Save(ctx, db); err != nil {
		return fmt.Errorf("save database: %w", err)
	}
	return nil
}
