package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
	"tripdesk/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu       sync.Mutex
	sent     []string
	err      error
	failures int
}

func (f *fakeMailer) SendBookingSummary(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		f.failures++
		return f.err
	}
	f.sent = append(f.sent, b.ID)
	return nil
}

func (f *fakeMailer) SendContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	return f.err
}
func (f *fakeMailer) SendResetLink(ctx context.Context, to, token string) error { return f.err }
func (f *fakeMailer) SendPasswordChanged(ctx context.Context, to string) error  { return f.err }

type fakeSheets struct {
	mu       sync.Mutex
	bookings []string
	errRows  []domain.ErrorRow
	err      error
}

func (f *fakeSheets) AppendBooking(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.bookings = append(f.bookings, b.ID)
	return nil
}

func (f *fakeSheets) AppendErrorRow(ctx context.Context, row domain.ErrorRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errRows = append(f.errRows, row)
	return nil
}

func testBooking() *models.Booking {
	return &models.Booking{
		ID: "100",
		SanitizedBooking: models.SanitizedBooking{
			Type:  models.BookingHotel,
			Email: "a@b.com",
			Hotel: &models.HotelDetails{Destination: "Paris"},
		},
		Status:    models.StatusNew,
		CreatedAt: time.Now(),
	}
}

func TestNotifyBookingAllChannels(t *testing.T) {
	d := worker.NewDispatcher(16, 1, time.Second, nil)
	d.Start()

	mail := &fakeMailer{}
	sheets := &fakeSheets{}
	f := New(mail, sheets, nil, d, nil)

	f.NotifyBooking(context.Background(), testBooking())
	d.Close()

	assert.Equal(t, []string{"100"}, mail.sent)
	assert.Equal(t, []string{"100"}, sheets.bookings)
	assert.Empty(t, sheets.errRows)
}

func TestNotifyBookingFailureIsolation(t *testing.T) {
	d := worker.NewDispatcher(16, 1, time.Second, nil)
	d.Start()

	mail := &fakeMailer{err: errors.New("smtp down")}
	sheets := &fakeSheets{}
	f := New(mail, sheets, nil, d, nil)

	// Must not panic or propagate despite the failing channel.
	f.NotifyBooking(context.Background(), testBooking())
	d.Close()

	assert.Equal(t, 1, mail.failures)
	// The email failure lands in the error log; the sheets booking append
	// still runs.
	assert.Equal(t, []string{"100"}, sheets.bookings)
	require.Len(t, sheets.errRows, 1)
	assert.Equal(t, "notification_email", sheets.errRows[0].Kind)
	// Row context names the booking but never the submitter's address.
	assert.Contains(t, sheets.errRows[0].Context, `"booking_id":"100"`)
	assert.NotContains(t, sheets.errRows[0].Context, "a@b.com")
}

func TestNotifyBookingNilChannels(t *testing.T) {
	d := worker.NewDispatcher(16, 1, time.Second, nil)
	d.Start()
	defer d.Close()

	f := New(nil, nil, nil, d, nil)
	// Unconfigured channels degrade to skip silently.
	f.NotifyBooking(context.Background(), testBooking())
}

func TestReportErrorWithoutSheets(t *testing.T) {
	d := worker.NewDispatcher(16, 1, time.Second, nil)
	d.Start()
	defer d.Close()

	f := New(nil, nil, nil, d, nil)
	f.ReportError(context.Background(), domain.ErrorRow{Kind: "internal", Message: "boom"})
}

func TestRedactContext(t *testing.T) {
	out := RedactContext(map[string]any{
		"type":     "flight",
		"email":    "a@b.com",
		"Password": "hunter2",
		"token":    "jwt",
	})

	assert.Contains(t, out, `"type":"flight"`)
	assert.NotContains(t, out, "a@b.com")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "jwt")
	assert.Contains(t, out, "[redacted]")
}
