package domain

import (
	"context"

	"tripdesk/internal/models"
)

// BookingStore persists sanitized bookings.
type BookingStore interface {
	AppendBooking(ctx context.Context, sanitized *models.SanitizedBooking) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status string) (*models.Booking, error)
}

// ContentStore holds the marketing copy document.
type ContentStore interface {
	GetContent(ctx context.Context) (models.ContentDocument, error)
	MergeContent(ctx context.Context, patch models.ContentDocument) (models.ContentDocument, error)
}

// ContactStore persists contact-form messages.
type ContactStore interface {
	AppendContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

// AnalyticsStore persists site events and serves aggregates.
type AnalyticsStore interface {
	AppendEvent(ctx context.Context, ev *models.AnalyticsEvent) error
	EventStats(ctx context.Context) ([]models.AnalyticsStat, error)
}

// Mailer delivers operator and admin mail. Implementations report delivery
// failure; callers decide whether it may surface.
type Mailer interface {
	SendBookingSummary(ctx context.Context, b *models.Booking) error
	SendContactMessage(ctx context.Context, msg *models.ContactMessage) error
	SendResetLink(ctx context.Context, to, token string) error
	SendPasswordChanged(ctx context.Context, to string) error
}

// SheetsWriter appends rows to the external spreadsheet.
type SheetsWriter interface {
	AppendBooking(ctx context.Context, b *models.Booking) error
	AppendErrorRow(ctx context.Context, row ErrorRow) error
}

// ErrorRow is one diagnostic entry for the error-log tab. Context must already
// be redacted by the producer.
type ErrorRow struct {
	Timestamp string
	Kind      string
	Endpoint  string
	Method    string
	Status    int
	Message   string
	Stack     string
	Context   string
	UserAgent string
	URL       string
}

// Notifier fans a stored booking out to the configured channels. It never
// returns an error; every channel failure is absorbed and logged.
type Notifier interface {
	NotifyBooking(ctx context.Context, b *models.Booking)
	ReportError(ctx context.Context, row ErrorRow)
}

// RateLimiter answers whether a client may perform another request.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// EventPublisher publishes domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload any) error
}
