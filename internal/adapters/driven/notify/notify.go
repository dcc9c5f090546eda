// Package notify implements driven.Notifier for the CLI and the TUI.
package notify

import (
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/logger"
)

// Ensure notifiers implement the interface.
var (
	_ driven.Notifier = (*Channel)(nil)
	_ driven.Notifier = Log{}
)

// Log routes notifications to the package logger. Errors become warnings
// because the CLI already prints the returned error.
type Log struct{}

// Notify logs n.
func (Log) Notify(note domain.Notification) {
	switch note.Level {
	case domain.NotifyError:
		logger.Warn("%s", note.Message)
	default:
		logger.Info("%s", note.Message)
	}
}

// Channel queues notifications for the TUI event loop.
// When the buffer is full new notifications are dropped.
type Channel struct {
	ch chan domain.Notification
}

// NewChannel creates a channel notifier with the given buffer size.
func NewChannel(size int) *Channel {
	if size <= 0 {
		size = 16
	}
	return &Channel{ch: make(chan domain.Notification, size)}
}

// Notify enqueues n without blocking.
func (c *Channel) Notify(note domain.Notification) {
	select {
	case c.ch <- note:
	default:
		logger.Debug("notification dropped: %s", note.Message)
	}
}

// C returns the receive side of the queue.
func (c *Channel) C() <-chan domain.Notification {
	return c.ch
}
