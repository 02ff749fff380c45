package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vantage/internal/core"
)

// Reminder windows around a task's due instant: remind from 10 minutes
// before until 2 minutes after.
const (
	remindAhead  = 10 * time.Minute
	remindBehind = 2 * time.Minute
)

// TaskSource yields the current task collection of the active session.
type TaskSource interface {
	Snapshot() (core.AppData, error)
}

// Reminder periodically scans the active session's tasks and notifies for
// those coming due. Each task is notified at most once per process.
type Reminder struct {
	source   TaskSource
	notifier Notifier
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time
	notified map[string]bool
}

func NewReminder(source TaskSource, notifier Notifier, interval time.Duration, logger *slog.Logger) *Reminder {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reminder{
		source:   source,
		notifier: notifier,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		notified: make(map[string]bool),
	}
}

// Run blocks until ctx is cancelled, checking on every tick.
func (r *Reminder) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Check(ctx)
	for {
		select {
		case <-ticker.C:
			r.Check(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Check performs one reminder pass. Advisory only: any failure is logged and
// the pass moves on.
func (r *Reminder) Check(ctx context.Context) {
	data, err := r.source.Snapshot()
	if err != nil {
		// Nobody logged in; nothing to remind.
		return
	}

	now := r.now()
	for _, task := range data.Tasks {
		if task.Completed || r.notified[task.ID] {
			continue
		}

		due, err := task.DueAt(now.Location())
		if err != nil {
			continue
		}

		until := due.Sub(now)
		if until > remindAhead || until < -remindBehind {
			continue
		}

		body := fmt.Sprintf("Time to do: %s", task.Text)
		if mins := int(until.Minutes()); mins > 0 {
			body = fmt.Sprintf("%d min left: %q", mins, task.Text)
		}

		r.notifier.Notify(ctx, fmt.Sprintf("Vantage: %s", task.Category), body)
		r.notifier.Pulse(ctx)
		r.notified[task.ID] = true

		r.logger.DebugContext(ctx, "Task reminder sent", "task_id", task.ID, "due", due)
	}
}
