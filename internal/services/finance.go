package services

import (
	"context"
	"errors"
	"log/slog"

	"vantage/internal/core"
	"vantage/internal/session"
)

var ErrNegativeAmount = errors.New("financial amounts cannot be negative")

// FinanceOverview carries the stored snapshot plus its derived quantities.
// The derived fields are computed on every read and never persisted.
type FinanceOverview struct {
	Salary           float64 `json:"salary"`
	Expenses         float64 `json:"expenses"`
	Remaining        float64 `json:"remaining"`
	CommittedPercent int     `json:"committedPercent"`
	ActiveRevenue    float64 `json:"activeRevenue"`
}

type FinanceService struct {
	sessions *session.Manager
	logger   *slog.Logger
}

func NewFinanceService(sessions *session.Manager, logger *slog.Logger) *FinanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FinanceService{sessions: sessions, logger: logger}
}

func (s *FinanceService) Overview(ctx context.Context) (FinanceOverview, error) {
	data, err := s.sessions.Snapshot()
	if err != nil {
		return FinanceOverview{}, err
	}
	return overview(data), nil
}

// Update replaces the salary/expenses pair.
func (s *FinanceService) Update(ctx context.Context, salary, expenses float64) (FinanceOverview, error) {
	if salary < 0 || expenses < 0 {
		return FinanceOverview{}, ErrNegativeAmount
	}

	var out FinanceOverview
	err := s.sessions.Mutate(ctx, func(data *core.AppData) error {
		data.Financials = core.Financials{Salary: salary, Expenses: expenses}
		out = overview(*data)
		return nil
	})
	if err != nil {
		return FinanceOverview{}, err
	}

	s.logger.InfoContext(ctx, "Financials updated", "salary", salary, "expenses", expenses)
	return out, nil
}

func overview(data core.AppData) FinanceOverview {
	f := data.Financials
	return FinanceOverview{
		Salary:           f.Salary,
		Expenses:         f.Expenses,
		Remaining:        f.Remaining(),
		CommittedPercent: f.CommittedPercent(),
		ActiveRevenue:    core.ActiveRevenue(data.Leads),
	}
}
