package driven

import "github.com/custodia-labs/docuflow-cli/internal/core/domain"

// Notifier shows transient notifications to the user.
type Notifier interface {
	Notify(n domain.Notification)
}

// URLOpener opens a URL in the user's browser.
type URLOpener interface {
	Open(url string) error
}
