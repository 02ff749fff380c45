package services

import (
	"context"
	"log/slog"
	"time"

	"vantage/internal/core"
	"vantage/internal/session"
)

// MonthReport is everything the reports view renders for one month: the
// per-day heatmap entries, the monthly aggregates and the active recurring
// revenue.
type MonthReport struct {
	Year          int                      `json:"year"`
	Month         int                      `json:"month"`
	Days          map[string]core.DayStats `json:"days"`
	Summary       core.MonthSummary        `json:"summary"`
	ActiveRevenue float64                  `json:"activeRevenue"`
}

type ReportService struct {
	sessions *session.Manager
	logger   *slog.Logger
}

func NewReportService(sessions *session.Manager, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{sessions: sessions, logger: logger}
}

// Monthly recomputes the rollup from the current task collection. Nothing is
// cached; the result is a pure function of the data and the target month.
func (s *ReportService) Monthly(ctx context.Context, year int, month time.Month) (MonthReport, error) {
	data, err := s.sessions.Snapshot()
	if err != nil {
		return MonthReport{}, err
	}

	days := core.ComputeDailyStats(data.Tasks, year, month)
	return MonthReport{
		Year:          year,
		Month:         int(month),
		Days:          days,
		Summary:       core.Summarize(days),
		ActiveRevenue: core.ActiveRevenue(data.Leads),
	}, nil
}
