package domain

// NotificationLevel is the severity of a user notification.
type NotificationLevel string

// Notification levels.
const (
	NotifyInfo    NotificationLevel = "info"
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
)

// Notification is a transient message for the user, the terminal form of a toast.
type Notification struct {
	Level   NotificationLevel
	Message string
}

// FallbackErrorMessage is shown when a failure carries no usable text.
const FallbackErrorMessage = "An unexpected error occurred"
