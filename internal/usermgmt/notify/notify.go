// Package notify carries user-facing toast messages from the screen workflow
// to whatever presentation is attached.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/usermgmt/pkg/idx"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Notification struct {
	ID       idx.ID
	Severity Severity
	Message  string
	At       time.Time
}

func Success(format string, args ...any) Notification {
	return Notification{Severity: SeveritySuccess, Message: fmt.Sprintf(format, args...)}
}

func Error(format string, args ...any) Notification {
	return Notification{Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

// Notifier receives notifications. Implementations must be safe for
// concurrent use; toggles resolve on their own goroutines.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Stamp fills in the ID and timestamp if they are unset.
func Stamp(n Notification) Notification {
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}
	if n.ID.IsZero() {
		n.ID = idx.NewAt(n.At)
	}
	return n
}

// Tee delivers each notification to every non-nil notifier in order.
func Tee(ns ...Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, n Notification) {
		n = Stamp(n)
		for _, target := range ns {
			if target != nil {
				target.Notify(ctx, n)
			}
		}
	})
}

// Logger writes notifications as log lines: errors at warn, the rest at info.
func Logger(l *slog.Logger) Notifier {
	return NotifierFunc(func(ctx context.Context, n Notification) {
		level := slog.LevelInfo
		if n.Severity == SeverityError {
			level = slog.LevelWarn
		}
		l.Log(ctx, level, "notification", "severity", n.Severity, "message", n.Message)
	})
}

// Discard drops notifications.
var Discard Notifier = NotifierFunc(func(context.Context, Notification) {})
