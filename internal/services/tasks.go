// Package services implements the per-view operations of the dashboard. Each
// service works on the active session's data and persists the whole record
// back through the session manager after every mutation.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vantage/internal/core"
	"vantage/internal/session"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrLeadNotFound = errors.New("lead not found")
	ErrGoalNotFound = errors.New("goal not found")
)

// Task list filters.
const (
	FilterAll     = "all"
	FilterToday   = "today"
	FilterPending = "pending"
)

type TaskService struct {
	sessions *session.Manager
	logger   *slog.Logger
	now      func() time.Time
}

func NewTaskService(sessions *session.Manager, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{sessions: sessions, logger: logger, now: time.Now}
}

// Add creates a task for today at the current time and prepends it to the
// collection.
func (s *TaskService) Add(ctx context.Context, text string, category core.TaskCategory) (core.Task, error) {
	now := s.now()
	task := core.Task{
		ID:       uuid.NewString(),
		Text:     text,
		Date:     core.DateKey(now),
		Time:     core.ClockKey(now),
		Category: category,
	}
	if err := task.Validate(); err != nil {
		return core.Task{}, err
	}

	err := s.sessions.Mutate(ctx, func(data *core.AppData) error {
		data.Tasks = append([]core.Task{task}, data.Tasks...)
		return nil
	})
	if err != nil {
		return core.Task{}, err
	}

	s.logger.InfoContext(ctx, "Task added", "task_id", task.ID, "category", task.Category)
	return task, nil
}

// Toggle flips a task's completion flag and returns the updated task.
func (s *TaskService) Toggle(ctx context.Context, id string) (core.Task, error) {
	var toggled core.Task
	err := s.sessions.Mutate(ctx, func(data *core.AppData) error {
		for i := range data.Tasks {
			if data.Tasks[i].ID == id {
				data.Tasks[i].Completed = !data.Tasks[i].Completed
				toggled = data.Tasks[i]
				return nil
			}
		}
		return ErrTaskNotFound
	})
	if err != nil {
		return core.Task{}, err
	}
	return toggled, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.sessions.Mutate(ctx, func(data *core.AppData) error {
		for i := range data.Tasks {
			if data.Tasks[i].ID == id {
				data.Tasks = append(data.Tasks[:i], data.Tasks[i+1:]...)
				return nil
			}
		}
		return ErrTaskNotFound
	})
}

// List returns the task collection under one of the view filters.
func (s *TaskService) List(ctx context.Context, filter string) ([]core.Task, error) {
	data, err := s.sessions.Snapshot()
	if err != nil {
		return nil, err
	}

	today := core.DateKey(s.now())
	var out []core.Task
	for _, task := range data.Tasks {
		switch filter {
		case FilterToday:
			if task.Date != today {
				continue
			}
		case FilterPending:
			if task.Completed {
				continue
			}
		}
		out = append(out, task)
	}
	return out, nil
}
