package mailer

import (
	"context"
	"testing"
	"time"

	"tripdesk/internal/config"
	"tripdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		Host:         "smtp.example.com",
		Port:         587,
		Username:     "bot",
		Password:     "secret",
		From:         "noreply@example.com",
		OperatorAddr: "operator@example.com",
	}
}

func TestSendBookingSummaryDeliversMessage(t *testing.T) {
	m := New(testMailConfig(), "https://example.com", nil)

	var got *gomail.Message
	m.send = func(msg *gomail.Message) error {
		got = msg
		return nil
	}

	b := &models.Booking{
		ID: "100",
		SanitizedBooking: models.SanitizedBooking{
			Type:  models.BookingHotel,
			Email: "guest@example.com",
			Hotel: &models.HotelDetails{Destination: "Paris"},
		},
		CreatedAt: time.Now(),
	}

	require.NoError(t, m.SendBookingSummary(context.Background(), b))
	require.NotNil(t, got)
	assert.Equal(t, []string{"operator@example.com"}, got.GetHeader("To"))
	assert.Equal(t, []string{"guest@example.com"}, got.GetHeader("Reply-To"))
	assert.Contains(t, got.GetHeader("Subject")[0], "#100")
}

func TestDeliverHonorsContext(t *testing.T) {
	m := New(testMailConfig(), "https://example.com", nil)

	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	m.send = func(msg *gomail.Message) error {
		<-block
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.SendPasswordChanged(ctx, "admin@example.com")
	assert.ErrorIs(t, err, context.Canceled)
}
