package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"tripdesk/internal/auth"
	"tripdesk/internal/config"
	"tripdesk/internal/database"
	"tripdesk/internal/domain"
	"tripdesk/internal/events"
	"tripdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	notified []string
	errRows  []domain.ErrorRow
}

func (n *recordingNotifier) NotifyBooking(ctx context.Context, b *models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified = append(n.notified, b.ID)
}

func (n *recordingNotifier) ReportError(ctx context.Context, row domain.ErrorRow) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errRows = append(n.errRows, row)
}

type recordingMailer struct {
	contacts []string
	resets   []string
	changed  []string
	err      error
}

func (m *recordingMailer) SendBookingSummary(ctx context.Context, b *models.Booking) error {
	return m.err
}

func (m *recordingMailer) SendContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	m.contacts = append(m.contacts, msg.Email)
	return nil
}

func (m *recordingMailer) SendResetLink(ctx context.Context, to, token string) error {
	if m.err != nil {
		return m.err
	}
	m.resets = append(m.resets, to)
	return nil
}

func (m *recordingMailer) SendPasswordChanged(ctx context.Context, to string) error {
	if m.err != nil {
		return m.err
	}
	m.changed = append(m.changed, to)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Admin: config.AdminConfig{
			Username:  "admin",
			Password:  "S3cret!pass",
			Email:     "admin@example.com",
			JWTSecret: "test-secret",
		},
	}
}

func newTestService(t *testing.T, notifier domain.Notifier, mailer domain.Mailer) (*Service, *database.DB) {
	t.Helper()

	db, err := database.NewDB(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := testConfig()
	return New(Deps{
		Config:    cfg,
		Bookings:  db,
		Content:   db,
		Contacts:  db,
		Analytics: db,
		Notifier:  notifier,
		Mailer:    mailer,
		Guard:     auth.NewGuard(cfg.Admin),
		Bus:       events.NewEventBus(),
	}), db
}

func TestSubmitBookingPipeline(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := newTestService(t, notifier, nil)

	b, err := svc.SubmitBooking(context.Background(), &models.BookingRequest{
		Type:        "hotel",
		Email:       "guest@example.com",
		Destination: "Rome",
		CheckIn:     "2026-09-01",
		CheckOut:    "2026-09-05",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, models.StatusNew, b.Status)
	assert.Equal(t, []string{b.ID}, notifier.notified)

	stored, err := svc.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rome", stored.Hotel.Destination)
}

func TestSubmitBookingRejectedNotNotified(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := newTestService(t, notifier, nil)

	_, err := svc.SubmitBooking(context.Background(), &models.BookingRequest{Type: "cruise"})
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, notifier.notified)
}

func TestSubmitBookingPublishesEvent(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := newTestService(t, notifier, nil)

	var got events.BookingEventPayload
	bus := svc.bus.(*events.EventBus)
	bus.Subscribe(events.EventBookingReceived, func(ev *events.Event) error {
		return json.Unmarshal(ev.Payload, &got)
	})

	b, err := svc.SubmitBooking(context.Background(), &models.BookingRequest{
		Type:  "flight",
		Phone: "+995 555 123 456",
		From:  "TBS",
		To:    "IST",
	})
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.BookingID)
	assert.Equal(t, "flight", got.Type)
}

func TestUpdateBookingStatus(t *testing.T) {
	svc, _ := newTestService(t, &recordingNotifier{}, nil)

	b, err := svc.SubmitBooking(context.Background(), &models.BookingRequest{
		Type:  "insurance",
		Email: "x@y.com",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBookingStatus(context.Background(), b.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	_, err = svc.UpdateBookingStatus(context.Background(), b.ID, "shipped")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.UpdateBookingStatus(context.Background(), "missing", models.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateContentShallowMerge(t *testing.T) {
	svc, _ := newTestService(t, &recordingNotifier{}, nil)

	doc, err := svc.UpdateContent(context.Background(), models.ContentDocument{
		"hero": json.RawMessage(`{"title":"Travel far"}`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Travel far"}`, string(doc["hero"]))
	// Untouched siblings keep their defaults.
	assert.JSONEq(t, `[]`, string(doc["portfolio"]))

	_, err = svc.UpdateContent(context.Background(), models.ContentDocument{})
	assert.True(t, domain.IsValidation(err))
}

func TestSubmitContact(t *testing.T) {
	mailer := &recordingMailer{}
	svc, _ := newTestService(t, &recordingNotifier{}, mailer)

	err := svc.SubmitContact(context.Background(), &models.ContactMessage{
		Name:    "<b>Nina</b>",
		Email:   "Nina@Example.COM",
		Message: "Planning a trip",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"nina@example.com"}, mailer.contacts)
}

func TestSubmitContactMailFailureAbsorbed(t *testing.T) {
	notifier := &recordingNotifier{}
	mailer := &recordingMailer{err: errors.New("smtp down")}
	svc, db := newTestService(t, notifier, mailer)

	err := svc.SubmitContact(context.Background(), &models.ContactMessage{
		Name:    "Nina",
		Email:   "nina@example.com",
		Message: "Planning a trip",
	})
	require.NoError(t, err)
	require.Len(t, notifier.errRows, 1)
	assert.Equal(t, "notification_email", notifier.errRows[0].Kind)
	_ = db
}

func TestSubmitContactValidation(t *testing.T) {
	svc, _ := newTestService(t, &recordingNotifier{}, nil)

	err := svc.SubmitContact(context.Background(), &models.ContactMessage{
		Name: "Nina", Email: "not-an-email", Message: "hi",
	})
	assert.True(t, domain.IsValidation(err))

	err = svc.SubmitContact(context.Background(), &models.ContactMessage{
		Email: "a@b.com", Message: "hi",
	})
	assert.True(t, domain.IsValidation(err))
}

func TestTrackEvent(t *testing.T) {
	svc, _ := newTestService(t, &recordingNotifier{}, nil)

	err := svc.TrackEvent(context.Background(), &models.AnalyticsEvent{
		Type: models.EventPageView,
		Page: "/services",
	})
	require.NoError(t, err)

	err = svc.TrackEvent(context.Background(), &models.AnalyticsEvent{Type: "purchase", Page: "/"})
	assert.True(t, domain.IsValidation(err))

	stats, err := svc.AnalyticsStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "/services", stats[0].Page)
}

func TestForgotPasswordOnlyAdminAddress(t *testing.T) {
	mailer := &recordingMailer{}
	svc, _ := newTestService(t, &recordingNotifier{}, mailer)

	svc.ForgotPassword(context.Background(), "stranger@example.com")
	assert.Empty(t, mailer.resets)

	svc.ForgotPassword(context.Background(), "  ADMIN@example.com ")
	assert.Equal(t, []string{"admin@example.com"}, mailer.resets)
}

func TestResetPassword(t *testing.T) {
	mailer := &recordingMailer{}
	svc, _ := newTestService(t, &recordingNotifier{}, mailer)

	token, err := svc.guard.IssueResetToken()
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), token, "weak")
	assert.True(t, domain.IsValidation(err))

	err = svc.ResetPassword(context.Background(), "garbage", "Str0ng!pass")
	assert.True(t, domain.IsAuth(err))

	// A session token must not drive a reset.
	session, err := svc.Login("admin", "S3cret!pass")
	require.NoError(t, err)
	err = svc.ResetPassword(context.Background(), session, "Str0ng!pass")
	assert.True(t, domain.IsAuth(err))

	err = svc.ResetPassword(context.Background(), token, "Str0ng!pass")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin@example.com"}, mailer.changed)
}

func TestExportBookingsXLSX(t *testing.T) {
	svc, _ := newTestService(t, &recordingNotifier{}, nil)

	_, err := svc.SubmitBooking(context.Background(), &models.BookingRequest{
		Type:        "hotel",
		Email:       "guest@example.com",
		Destination: "Rome",
	})
	require.NoError(t, err)

	buf, err := svc.ExportBookingsXLSX(context.Background())
	require.NoError(t, err)
	// XLSX is a zip container.
	assert.Equal(t, "PK", buf.String()[:2])
}
