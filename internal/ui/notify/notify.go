// Package notify keeps the transient toast notifications shown in the status
// area. Each toast dismisses itself after a fixed lifetime.
package notify

import (
	"time"

	"github.com/atomicstack/stockroom/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// TTL is how long a toast stays visible.
const TTL = 5 * time.Second

// Level is the severity of a toast.
type Level string

const (
	Success Level = "success"
	Error   Level = "error"
	Info    Level = "info"
)

// Toast is one visible notification.
type Toast struct {
	ID      string
	Level   Level
	Message string
	Expires time.Time
}

// DismissMsg removes the toast with ID once its lifetime ends.
type DismissMsg struct {
	ID string
}

// Center holds the active toasts, oldest first.
type Center struct {
	toasts []Toast
	now    func() time.Time
	ttl    time.Duration
}

// NewCenter returns an empty notification centre.
func NewCenter() *Center {
	return &Center{now: time.Now, ttl: TTL}
}

// Notify shows message at level and returns the command that dismisses it.
func (c *Center) Notify(message string, level Level) tea.Cmd {
	if message == "" {
		return nil
	}
	switch level {
	case Success, Error, Info:
	default:
		level = Info
	}
	id := uuid.NewString()
	c.toasts = append(c.toasts, Toast{
		ID:      id,
		Level:   level,
		Message: message,
		Expires: c.now().Add(c.ttl),
	})
	events.Notify.Show(id, string(level), message)
	return tea.Tick(c.ttl, func(time.Time) tea.Msg {
		return DismissMsg{ID: id}
	})
}

// Dismiss removes a toast, reporting whether it was still visible.
func (c *Center) Dismiss(id string) bool {
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			events.Notify.Dismiss(id)
			return true
		}
	}
	return false
}

// Active returns the visible toasts, oldest first.
func (c *Center) Active() []Toast {
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Latest returns the most recent toast.
func (c *Center) Latest() (Toast, bool) {
	if len(c.toasts) == 0 {
		return Toast{}, false
	}
	return c.toasts[len(c.toasts)-1], true
}
