package models

const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusConfirmed  = "confirmed"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// AdminSettableStatuses are the values PUT /admin/bookings/{id} accepts.
var AdminSettableStatuses = []string{
	StatusNew,
	StatusInProgress,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

func IsSettableStatus(s string) bool {
	for _, v := range AdminSettableStatuses {
		if s == v {
			return true
		}
	}
	return false
}

const (
	// SessionTokenTTL is the lifetime of an admin login credential.
	SessionTokenTTLHours = 24

	// ResetTokenTTL is the lifetime of a password-reset credential.
	ResetTokenTTLHours = 1

	// NotifyTimeoutSeconds bounds each outbound notification attempt.
	NotifyTimeoutSeconds = 5

	// DispatchQueueSize is the buffer of the async notification dispatcher.
	DispatchQueueSize = 256

	// MaxUploadBytes caps decoded image uploads.
	MaxUploadBytes = 5 << 20
)

// Analytics event types accepted by the tracking endpoint.
const (
	EventPageView = "pageview"
	EventClick    = "click"
	EventScroll   = "scroll"
)
