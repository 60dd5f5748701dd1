package google

import (
	"testing"
	"time"

	"tripdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRowIsFixedWidth(t *testing.T) {
	flight := &models.Booking{
		ID: "1",
		SanitizedBooking: models.SanitizedBooking{
			Type:  models.BookingFlight,
			Email: "a@b.com",
			Flight: &models.FlightDetails{
				From:          "Baku",
				To:            "Istanbul",
				DepartureDate: "2030-01-10",
				Segments:      []models.FlightSegment{{From: "GYD", To: "IST", Date: "2030-01-10"}},
				Passengers:    &models.TravelerCounts{Adults: 2},
			},
		},
		CreatedAt: time.Now(),
	}
	embassy := &models.Booking{
		ID: "2",
		SanitizedBooking: models.SanitizedBooking{
			Type:    models.BookingEmbassy,
			Phone:   "+994501234567",
			Embassy: &models.EmbassyDetails{Country: "Turkey", VisaType: "tourist"},
		},
		CreatedAt: time.Now(),
	}

	// Every variant serializes into the same column layout.
	rowA := bookingRow(flight)
	rowB := bookingRow(embassy)
	require.Equal(t, len(bookingColumns), len(rowA))
	require.Equal(t, len(rowA), len(rowB))
}

func TestBookingRowSerializesNestedAsJSON(t *testing.T) {
	b := &models.Booking{
		ID: "3",
		SanitizedBooking: models.SanitizedBooking{
			Type:  models.BookingFlight,
			Email: "a@b.com",
			Flight: &models.FlightDetails{
				Segments:   []models.FlightSegment{{From: "GYD", To: "IST", Date: "2030-01-10"}},
				Passengers: &models.TravelerCounts{Adults: 2, Children: 1, ChildAges: []int{5}},
			},
		},
		CreatedAt: time.Now(),
	}

	row := bookingRow(b)
	assert.Contains(t, row[15], `"from":"GYD"`)
	assert.Contains(t, row[16], `"adults":2`)
}

func TestBookingRowEmptyNestedStaysEmpty(t *testing.T) {
	b := &models.Booking{
		ID: "4",
		SanitizedBooking: models.SanitizedBooking{
			Type:  models.BookingHotel,
			Email: "a@b.com",
			Hotel: &models.HotelDetails{Destination: "Paris"},
		},
		CreatedAt: time.Now(),
	}

	row := bookingRow(b)
	assert.Equal(t, "", row[15]) // segments
	assert.Equal(t, "", row[16]) // passengers
	assert.Equal(t, "", row[20]) // rooms
	assert.Equal(t, "", row[21]) // guests
}
