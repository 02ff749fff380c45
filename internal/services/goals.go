package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"vantage/internal/core"
	"vantage/internal/session"
)

type GoalService struct {
	sessions *session.Manager
	logger   *slog.Logger
}

func NewGoalService(sessions *session.Manager, logger *slog.Logger) *GoalService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalService{sessions: sessions, logger: logger}
}

func (s *GoalService) Add(ctx context.Context, title, unit, deadline string, target, current float64) (core.Goal, error) {
	if unit == "" {
		unit = "times"
	}

	goal := core.Goal{
		ID:           uuid.NewString(),
		Title:        title,
		TargetValue:  target,
		CurrentValue: current,
		Deadline:     deadline,
		Unit:         unit,
	}
	if err := goal.Validate(); err != nil {
		return core.Goal{}, err
	}
	// A starting value past the target is clamped on the way in.
	goal.Advance(0)

	err := s.sessions.Mutate(ctx, func(data *core.AppData) error {
		data.Goals = append(data.Goals, goal)
		return nil
	})
	if err != nil {
		return core.Goal{}, err
	}

	s.logger.InfoContext(ctx, "Goal added", "goal_id", goal.ID, "target", goal.TargetValue)
	return goal, nil
}

// Advance moves a goal's progress by amount, clamped at its target.
func (s *GoalService) Advance(ctx context.Context, id string, amount float64) (core.Goal, error) {
	var advanced core.Goal
	err := s.sessions.Mutate(ctx, func(data *core.AppData) error {
		for i := range data.Goals {
			if data.Goals[i].ID == id {
				data.Goals[i].Advance(amount)
				advanced = data.Goals[i]
				return nil
			}
		}
		return ErrGoalNotFound
	})
	if err != nil {
		return core.Goal{}, err
	}
	return advanced, nil
}

func (s *GoalService) Delete(ctx context.Context, id string) error {
	return s.sessions.Mutate(ctx, func(data *core.AppData) error {
		for i := range data.Goals {
			if data.Goals[i].ID == id {
				data.Goals = append(data.Goals[:i], data.Goals[i+1:]...)
				return nil
			}
		}
		return ErrGoalNotFound
	})
}

func (s *GoalService) List(ctx context.Context) ([]core.Goal, error) {
	data, err := s.sessions.Snapshot()
	if err != nil {
		return nil, err
	}
	return data.Goals, nil
}
