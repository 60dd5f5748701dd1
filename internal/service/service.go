// Package service implements the application pipelines on top of the stores
// and channels: booking intake, admin operations, content, contact and
// analytics flows.
package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"tripdesk/internal/auth"
	"tripdesk/internal/config"
	"tripdesk/internal/domain"
	"tripdesk/internal/events"
	"tripdesk/internal/metrics"
	"tripdesk/internal/models"
	"tripdesk/internal/sanitize"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = validator.New()

type Service struct {
	cfg       *config.Config
	bookings  domain.BookingStore
	content   domain.ContentStore
	contacts  domain.ContactStore
	analytics domain.AnalyticsStore
	notifier  domain.Notifier
	mailer    domain.Mailer
	guard     *auth.Guard
	bus       domain.EventPublisher
	log       zerolog.Logger
}

type Deps struct {
	Config    *config.Config
	Bookings  domain.BookingStore
	Content   domain.ContentStore
	Contacts  domain.ContactStore
	Analytics domain.AnalyticsStore
	Notifier  domain.Notifier
	Mailer    domain.Mailer
	Guard     *auth.Guard
	Bus       domain.EventPublisher
	Logger    *zerolog.Logger
}

func New(deps Deps) *Service {
	var log zerolog.Logger
	if deps.Logger != nil {
		log = deps.Logger.With().Str("component", "service").Logger()
	}
	return &Service{
		cfg:       deps.Config,
		bookings:  deps.Bookings,
		content:   deps.Content,
		contacts:  deps.Contacts,
		analytics: deps.Analytics,
		notifier:  deps.Notifier,
		mailer:    deps.Mailer,
		guard:     deps.Guard,
		bus:       deps.Bus,
		log:       log,
	}
}

// SubmitBooking runs the intake pipeline: sanitize, persist, fan out. Only a
// sanitization or persistence failure is surfaced; notification channels can
// never fail the submission.
func (s *Service) SubmitBooking(ctx context.Context, raw *models.BookingRequest) (*models.Booking, error) {
	sanitized, err := sanitize.Booking(raw)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.AppendBooking(ctx, sanitized)
	if err != nil {
		return nil, err
	}

	metrics.IncBooking(string(booking.Type))
	s.publish(events.EventBookingReceived, booking)

	s.notifier.NotifyBooking(ctx, booking)

	s.log.Info().
		Str("booking_id", booking.ID).
		Str("type", string(booking.Type)).
		Bool("urgent", booking.Urgent).
		Msg("booking accepted")

	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return s.bookings.ListBookings(ctx)
}

func (s *Service) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.bookings.GetBooking(ctx, id)
}

// UpdateBookingStatus moves a booking to one of the admin-settable statuses.
func (s *Service) UpdateBookingStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	if !models.IsSettableStatus(status) {
		return nil, domain.Validation("unknown status: " + status)
	}

	booking, err := s.bookings.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publish(events.EventBookingStatusChanged, booking)
	return booking, nil
}

func (s *Service) GetContent(ctx context.Context) (models.ContentDocument, error) {
	return s.content.GetContent(ctx)
}

// UpdateContent applies a shallow merge of the patch over the stored document
// and returns the merged result.
func (s *Service) UpdateContent(ctx context.Context, patch models.ContentDocument) (models.ContentDocument, error) {
	if len(patch) == 0 {
		return nil, domain.Validation("empty content update")
	}
	return s.content.MergeContent(ctx, patch)
}

// SubmitContact sanitizes and persists a contact-form message, then attempts
// operator mail delivery. Delivery failure never fails the submission.
func (s *Service) SubmitContact(ctx context.Context, msg *models.ContactMessage) error {
	msg.Name = sanitize.CleanString(msg.Name)
	msg.Subject = sanitize.CleanString(msg.Subject)
	msg.Message = sanitize.CleanString(msg.Message)
	msg.Email = strings.ToLower(strings.TrimSpace(msg.Email))

	if msg.Name == "" || msg.Message == "" {
		return domain.Validation("name and message are required")
	}
	if msg.Email == "" || validate.Var(msg.Email, "email") != nil {
		return domain.Validation("a valid email is required")
	}

	if err := s.contacts.AppendContactMessage(ctx, msg); err != nil {
		return err
	}

	s.publish(events.EventContactReceived, msg)

	if s.mailer != nil {
		mailCtx, cancel := context.WithTimeout(ctx, models.NotifyTimeoutSeconds*time.Second)
		defer cancel()
		if err := s.mailer.SendContactMessage(mailCtx, msg); err != nil {
			metrics.IncNotifyFailure("email")
			s.log.Error().Err(err).Msg("contact message email failed")
			s.notifier.ReportError(ctx, domain.ErrorRow{
				Kind:     "notification_email",
				Endpoint: "contact",
				Message:  err.Error(),
			})
		}
	}

	return nil
}

// TrackEvent records a site analytics event. Storage failures are absorbed;
// analytics must never disturb visitors.
func (s *Service) TrackEvent(ctx context.Context, ev *models.AnalyticsEvent) error {
	switch ev.Type {
	case models.EventPageView, models.EventClick, models.EventScroll:
	default:
		return domain.Validation("unknown event type: " + ev.Type)
	}

	ev.Page = sanitize.CleanString(ev.Page)
	ev.Value = sanitize.CleanString(ev.Value)
	if ev.Page == "" {
		return domain.Validation("page is required")
	}

	if err := s.analytics.AppendEvent(ctx, ev); err != nil {
		s.log.Error().Err(err).Str("type", ev.Type).Msg("analytics event not stored")
	}
	return nil
}

func (s *Service) AnalyticsStats(ctx context.Context) ([]models.AnalyticsStat, error) {
	return s.analytics.EventStats(ctx)
}

func (s *Service) Login(username, password string) (string, error) {
	return s.guard.Login(username, password)
}

func (s *Service) VerifySession(token string) (string, error) {
	return s.guard.Verify(token)
}

// ForgotPassword sends a reset link when the submitted address matches the
// configured admin email. The caller responds identically either way, so the
// endpoint does not confirm which address is the admin's.
func (s *Service) ForgotPassword(ctx context.Context, email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	configured := strings.ToLower(strings.TrimSpace(s.cfg.Admin.Email))

	match := configured != "" &&
		subtle.ConstantTimeCompare([]byte(email), []byte(configured)) == 1
	if !match || s.mailer == nil {
		s.log.Info().Msg("password reset requested for non-admin address")
		return
	}

	token, err := s.guard.IssueResetToken()
	if err != nil {
		s.log.Error().Err(err).Msg("reset token issue failed")
		return
	}

	mailCtx, cancel := context.WithTimeout(ctx, models.NotifyTimeoutSeconds*time.Second)
	defer cancel()
	if err := s.mailer.SendResetLink(mailCtx, configured, token); err != nil {
		metrics.IncNotifyFailure("email")
		s.log.Error().Err(err).Msg("reset link email failed")
	}
}

// ResetPassword validates the reset token and the new password's strength.
// Credentials live in configuration, so the actual rotation happens
// out-of-band; the admin is mailed a confirmation that states this.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := s.guard.VerifyResetToken(token); err != nil {
		return err
	}
	if err := auth.CheckPasswordStrength(newPassword); err != nil {
		return err
	}

	if s.mailer != nil && s.cfg.Admin.Email != "" {
		mailCtx, cancel := context.WithTimeout(ctx, models.NotifyTimeoutSeconds*time.Second)
		defer cancel()
		if err := s.mailer.SendPasswordChanged(mailCtx, s.cfg.Admin.Email); err != nil {
			s.log.Error().Err(err).Msg("password changed email failed")
		}
	}

	s.log.Info().Msg("password reset accepted")
	return nil
}

func (s *Service) publish(eventType string, payload any) {
	if s.bus == nil {
		return
	}

	switch v := payload.(type) {
	case *models.Booking:
		_ = s.bus.PublishJSON(eventType, events.BookingEventPayload{
			BookingID: v.ID,
			Type:      string(v.Type),
			Status:    v.Status,
			Urgent:    v.Urgent,
		})
	default:
		_ = s.bus.PublishJSON(eventType, payload)
	}
}
