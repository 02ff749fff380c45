package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vantage/internal/core"
	"vantage/internal/notify"
	"vantage/internal/session"
)

type LeadService struct {
	sessions *session.Manager
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewLeadService(sessions *session.Manager, notifier notify.Notifier, logger *slog.Logger) *LeadService {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &LeadService{sessions: sessions, notifier: notifier, logger: logger, now: time.Now}
}

// Add registers a new lead at the top of the Potential column. It also drops
// an onboarding task into today's schedule and fires a best-effort
// notification, as the original CRM view did.
func (s *LeadService) Add(ctx context.Context, name, company, phone string, value float64) (core.Lead, error) {
	if company == "" {
		company = "Personal"
	}

	now := s.now()
	lead := core.Lead{
		ID:          uuid.NewString(),
		Name:        name,
		Company:     company,
		Status:      core.StatusPotential,
		Value:       value,
		LastContact: core.DateKey(now),
		Phone:       phone,
		Payments:    map[string]core.PaymentState{},
	}
	if err := lead.Validate(); err != nil {
		return core.Lead{}, err
	}

	followUp := core.Task{
		ID:       uuid.NewString(),
		Text:     fmt.Sprintf("Optimize: %s", name),
		Date:     core.DateKey(now),
		Time:     "09:00",
		Category: core.CategoryWork,
	}

	err := s.sessions.Mutate(ctx, func(data *core.AppData) error {
		data.Leads = append(data.Leads, lead)
		data.Tasks = append([]core.Task{followUp}, data.Tasks...)
		return nil
	})
	if err != nil {
		return core.Lead{}, err
	}

	s.notifier.Notify(ctx, "Vantage", fmt.Sprintf("New client registered: %s", name))
	s.logger.InfoContext(ctx, "Lead added", "lead_id", lead.ID, "value", lead.Value)
	return lead, nil
}

// Move shifts a lead to another pipeline column.
func (s *LeadService) Move(ctx context.Context, id string, status core.LeadStatus) (core.Lead, error) {
	if !status.Valid() {
		return core.Lead{}, core.ErrInvalidStatus
	}

	var moved core.Lead
	err := s.sessions.Mutate(ctx, func(data *core.AppData) error {
		for i := range data.Leads {
			if data.Leads[i].ID == id {
				data.Leads[i].Status = status
				moved = data.Leads[i]
				return nil
			}
		}
		return ErrLeadNotFound
	})
	if err != nil {
		return core.Lead{}, err
	}

	s.logger.InfoContext(ctx, "Lead moved", "lead_id", id, "status", status)
	return moved, nil
}

func (s *LeadService) Delete(ctx context.Context, id string) error {
	return s.sessions.Mutate(ctx, func(data *core.AppData) error {
		for i := range data.Leads {
			if data.Leads[i].ID == id {
				data.Leads = append(data.Leads[:i], data.Leads[i+1:]...)
				return nil
			}
		}
		return ErrLeadNotFound
	})
}

func (s *LeadService) SetNotes(ctx context.Context, id, notes string) error {
	return s.sessions.Mutate(ctx, func(data *core.AppData) error {
		for i := range data.Leads {
			if data.Leads[i].ID == id {
				data.Leads[i].Notes = notes
				return nil
			}
		}
		return ErrLeadNotFound
	})
}

// TogglePayment flips the current month's payment state for a lead and
// returns the new state. Other months are never touched.
func (s *LeadService) TogglePayment(ctx context.Context, id string) (core.PaymentState, error) {
	monthKey := core.MonthKey(s.now())

	var state core.PaymentState
	err := s.sessions.Mutate(ctx, func(data *core.AppData) error {
		for i := range data.Leads {
			if data.Leads[i].ID == id {
				state = data.Leads[i].TogglePayment(monthKey)
				return nil
			}
		}
		return ErrLeadNotFound
	})
	if err != nil {
		return "", err
	}
	return state, nil
}

// List returns the pipeline, optionally restricted to one column.
func (s *LeadService) List(ctx context.Context, status core.LeadStatus) ([]core.Lead, error) {
	data, err := s.sessions.Snapshot()
	if err != nil {
		return nil, err
	}

	var out []core.Lead
	for _, lead := range data.Leads {
		if status != "" && lead.Status != status {
			continue
		}
		out = append(out, lead)
	}
	return out, nil
}
