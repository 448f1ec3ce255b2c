package ports

import "context"

// NotificationKind identifies the outbound message template.
type NotificationKind string

const (
	NotifyEmailVerification NotificationKind = "email_verification"
	NotifyPasswordReset     NotificationKind = "password_reset"
	NotifyWelcome           NotificationKind = "welcome"
)

// Notification is an outbound message addressed to one user.
type Notification struct {
	Kind      NotificationKind
	Recipient string
	Name      string
	// Link carries the verification or reset URL, when the kind needs one.
	Link string
}

// Notifier delivers a single notification.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}
