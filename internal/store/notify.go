package store

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notification is the toast analog: one transient message per mutation
// attempt or surfaced read failure.
type Notification struct {
	ID      string
	Level   string // "success" or "error"
	Message string
}

// Notifier receives notifications. Exactly one notification is emitted per
// mutation attempt.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	Log *zap.Logger
}

func (l *LogNotifier) Notify(n Notification) {
	if n.Level == "error" {
		l.Log.Warn(n.Message, zap.String("notification_id", n.ID))
		return
	}
	l.Log.Info(n.Message, zap.String("notification_id", n.ID))
}

// Recorder collects notifications for inspection; used by tests and by the
// CLI to print them after a command finishes.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// All returns the notifications seen so far, in order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}

func newNotification(level, message string) Notification {
	return Notification{ID: uuid.New().String(), Level: level, Message: message}
}
