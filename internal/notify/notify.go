// Package notify fans stored bookings out to the configured side channels:
// operator email, the external spreadsheet and an optional Telegram ping.
// Channels are independent and failure-isolated; nothing here ever fails the
// caller.
package notify

import (
	"context"
	"time"

	"tripdesk/internal/domain"
	"tripdesk/internal/metrics"
	"tripdesk/internal/models"
	"tripdesk/internal/worker"

	"github.com/rs/zerolog"
)

// OperatorPinger is the optional instant-message channel.
type OperatorPinger interface {
	Ping(ctx context.Context, b *models.Booking) error
}

type FanOut struct {
	mailer     domain.Mailer
	sheets     domain.SheetsWriter
	pinger     OperatorPinger
	dispatcher *worker.Dispatcher
	timeout    time.Duration
	log        zerolog.Logger
}

// New builds a fan-out. Any of mailer, sheets and pinger may be nil; the
// corresponding channel is skipped silently.
func New(mailer domain.Mailer, sheets domain.SheetsWriter, pinger OperatorPinger,
	dispatcher *worker.Dispatcher, logger *zerolog.Logger) *FanOut {

	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("component", "notify").Logger()
	}

	return &FanOut{
		mailer:     mailer,
		sheets:     sheets,
		pinger:     pinger,
		dispatcher: dispatcher,
		timeout:    models.NotifyTimeoutSeconds * time.Second,
		log:        log,
	}
}

// NotifyBooking dispatches all channels for a stored booking. The email
// attempt is awaited with a bounded timeout so a delivery failure is logged
// before the caller responds; the spreadsheet append and the ping are
// fire-and-forget through the dispatcher. Never returns an error.
func (f *FanOut) NotifyBooking(ctx context.Context, b *models.Booking) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error().Any("panic", r).Str("booking_id", b.ID).Msg("notification fan-out panicked")
		}
	}()

	if f.mailer != nil {
		mailCtx, cancel := context.WithTimeout(ctx, f.timeout)
		err := f.mailer.SendBookingSummary(mailCtx, b)
		cancel()
		if err != nil {
			metrics.IncNotifyFailure("email")
			f.log.Error().Err(err).Str("booking_id", b.ID).Msg("booking summary email failed")
			f.ReportError(ctx, domain.ErrorRow{
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Kind:      "notification_email",
				Endpoint:  "booking",
				Message:   err.Error(),
				Context: RedactContext(map[string]any{
					"booking_id": b.ID,
					"type":       string(b.Type),
					"email":      b.Email,
				}),
			})
		}
	}

	if f.sheets != nil {
		booking := b
		f.dispatcher.Enqueue(worker.Task{
			Name: "sheets_append_booking",
			Run: func(taskCtx context.Context) error {
				if err := f.sheets.AppendBooking(taskCtx, booking); err != nil {
					metrics.IncNotifyFailure("sheets")
					f.log.Error().Err(err).Str("booking_id", booking.ID).Msg("spreadsheet append failed")
					f.ReportError(taskCtx, domain.ErrorRow{
						Timestamp: time.Now().UTC().Format(time.RFC3339),
						Kind:      "notification_sheets",
						Endpoint:  "booking",
						Message:   err.Error(),
						Context: RedactContext(map[string]any{
							"booking_id": booking.ID,
							"type":       string(booking.Type),
						}),
					})
				}
				return nil
			},
		})
	}

	if f.pinger != nil {
		booking := b
		f.dispatcher.Enqueue(worker.Task{
			Name: "telegram_ping",
			Run: func(taskCtx context.Context) error {
				if err := f.pinger.Ping(taskCtx, booking); err != nil {
					metrics.IncNotifyFailure("telegram")
					f.log.Error().Err(err).Str("booking_id", booking.ID).Msg("telegram ping failed")
				}
				return nil
			},
		})
	}
}

// ReportError appends a diagnostic row to the error-log tab, best effort. If
// the spreadsheet channel is unavailable the row is only logged locally.
func (f *FanOut) ReportError(ctx context.Context, row domain.ErrorRow) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error().Any("panic", r).Msg("error reporting panicked")
		}
	}()

	if row.Timestamp == "" {
		row.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	if f.sheets == nil {
		f.log.Error().
			Str("kind", row.Kind).
			Str("endpoint", row.Endpoint).
			Str("message", row.Message).
			Msg("pipeline error (no error sheet configured)")
		return
	}

	f.dispatcher.Enqueue(worker.Task{
		Name: "sheets_append_error",
		Run: func(taskCtx context.Context) error {
			if err := f.sheets.AppendErrorRow(taskCtx, row); err != nil {
				metrics.IncNotifyFailure("error_log")
				f.log.Error().Err(err).Str("kind", row.Kind).Msg("error-log append failed")
			}
			return nil
		},
	})
}
