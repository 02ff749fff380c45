// Package session owns the in-memory working copy of the logged-in account.
// The original kept this in ambient component state; here it is an explicit
// struct with an init/teardown lifecycle, injected into whatever needs it.
// One session is active per process, matching one session per browser
// context in the original. Every mutation is persisted straight back through
// the account store before the call returns.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"vantage/internal/core"
	applog "vantage/internal/log"
	"vantage/internal/store"
)

// ErrNotAuthenticated is returned when an operation needs an active session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Manager holds the single active session and its persistence hook.
type Manager struct {
	mu       sync.Mutex
	accounts *store.AccountStore
	logger   *slog.Logger

	user core.User
	data *core.AppData
}

func NewManager(accounts *store.AccountStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{accounts: accounts, logger: logger}
}

// Resume restores the last-active session, if any.
func (m *Manager) Resume(ctx context.Context) (core.User, error) {
	acc, err := m.accounts.Resume(ctx)
	if err != nil {
		return core.User{}, err
	}
	m.activate(acc)
	m.logger.InfoContext(ctx, "Session resumed", applog.FieldEmail, acc.User.Email)
	return acc.User, nil
}

func (m *Manager) Login(ctx context.Context, email, secret string) (core.User, error) {
	acc, err := m.accounts.Login(ctx, email, secret)
	if err != nil {
		return core.User{}, err
	}
	m.activate(acc)
	m.logger.InfoContext(ctx, "Session started", applog.FieldEmail, acc.User.Email)
	return acc.User, nil
}

func (m *Manager) Register(ctx context.Context, name, email, secret string) (core.User, error) {
	acc, err := m.accounts.Register(ctx, name, email, secret)
	if err != nil {
		return core.User{}, err
	}
	m.activate(acc)
	return acc.User, nil
}

// Logout clears the persisted session pointer and tears down the working
// copy. Account data stays in the store.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.accounts.Logout(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	email := m.user.Email
	m.user = core.User{}
	m.data = nil
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "Session ended", applog.FieldEmail, email)
	return nil
}

func (m *Manager) activate(acc store.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := acc.Data
	m.user = acc.User
	m.data = &data
}

// Current returns the active user, or false when nobody is logged in.
func (m *Manager) Current() (core.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.data != nil
}

// Snapshot returns a read copy of the active session's application data.
// The copy is deep: callers hold no reference into the working copy, so they
// can read it after the lock is released while Mutate keeps writing.
func (m *Manager) Snapshot() (core.AppData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return core.AppData{}, ErrNotAuthenticated
	}
	return m.data.Clone(), nil
}

// Mutate applies fn to the working copy and persists the whole record back
// through the store. This is the change-observer: every UI mutation funnels
// through here, and storage is written before the triggering call returns.
func (m *Manager) Mutate(ctx context.Context, fn func(*core.AppData) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return ErrNotAuthenticated
	}
	if err := fn(m.data); err != nil {
		return err
	}
	if err := m.accounts.SaveData(ctx, m.user.Email, *m.data); err != nil {
		return fmt.Errorf("persist app data: %w", err)
	}
	return nil
}
