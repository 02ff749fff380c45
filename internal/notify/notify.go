// Package notify wraps the best-effort attention side effects: desktop
// notifications and an audible pulse. Failures here must never interrupt the
// data mutation they ride on, so they are swallowed and logged only.
package notify

import (
	"context"
	"log/slog"

	"github.com/gen2brain/beeep"
)

// Notifier is the narrow interface the rest of the app sees. Both methods
// are fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, title, body string)
	Pulse(ctx context.Context)
}

// Desktop delivers through the OS notification facility.
type Desktop struct {
	logger *slog.Logger
}

func NewDesktop(logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Desktop{logger: logger}
}

func (d *Desktop) Notify(ctx context.Context, title, body string) {
	if err := beeep.Notify(title, body, ""); err != nil {
		d.logger.WarnContext(ctx, "Desktop notification failed", "title", title, "error", err)
	}
}

// Pulse plays a short attention tone, standing in for the original's
// vibration call. Ignored on failure.
func (d *Desktop) Pulse(ctx context.Context) {
	if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
		d.logger.WarnContext(ctx, "Attention pulse failed", "error", err)
	}
}

// Nop silences all notifications, for headless runs and tests.
type Nop struct{}

func (Nop) Notify(context.Context, string, string) {}

func (Nop) Pulse(context.Context) {}
