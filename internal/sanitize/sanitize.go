// Package sanitize normalizes untrusted booking payloads into typed,
// script-stripped records. Invalid contact and date fields reject the whole
// request; out-of-range numerics and ages are silently dropped.
package sanitize

import (
	"fmt"
	"strings"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Booking validates and sanitizes a raw request. The returned record carries
// exactly one variant detail struct matching the request type.
func Booking(raw *models.BookingRequest) (*models.SanitizedBooking, error) {
	t := models.BookingType(strings.TrimSpace(raw.Type))
	if !models.IsKnownBookingType(t) {
		return nil, domain.Validation(fmt.Sprintf("unknown booking type %q", raw.Type))
	}

	email, err := cleanEmail(raw.Email)
	if err != nil {
		return nil, err
	}
	phone, err := cleanPhone(raw.Phone)
	if err != nil {
		return nil, err
	}
	if email == "" && phone == "" {
		return nil, domain.Validation("either email or phone is required")
	}

	out := &models.SanitizedBooking{
		Type:   t,
		Name:   CleanString(raw.Name),
		Email:  email,
		Phone:  phone,
		Notes:  CleanString(raw.Notes),
		Urgent: asBool(raw.Urgent),
	}

	switch t {
	case models.BookingFlight:
		out.Flight, err = flightDetails(raw)
	case models.BookingHotel:
		out.Hotel, err = hotelDetails(raw)
	case models.BookingTransfer:
		out.Transfer, err = transferDetails(raw)
	case models.BookingInsurance:
		out.Insurance, err = insuranceDetails(raw)
	case models.BookingEmbassy:
		out.Embassy, err = embassyDetails(raw)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func flightDetails(raw *models.BookingRequest) (*models.FlightDetails, error) {
	dep, err := cleanDate(raw.DepartureDate, "departureDate")
	if err != nil {
		return nil, err
	}
	ret, err := cleanDate(raw.ReturnDate, "returnDate")
	if err != nil {
		return nil, err
	}
	if err := checkOrder(dep, ret, false, "returnDate must not be before departureDate"); err != nil {
		return nil, err
	}

	d := &models.FlightDetails{
		TripType:      CleanString(raw.TripType),
		From:          CleanString(raw.From),
		To:            CleanString(raw.To),
		DepartureDate: dep,
		ReturnDate:    ret,
		CabinClass:    CleanString(raw.CabinClass),
		Passengers:    cleanCounts(raw.PassengerInfo),
	}

	for i, seg := range raw.Segments {
		date, err := cleanDate(seg.Date, fmt.Sprintf("segments[%d].date", i))
		if err != nil {
			return nil, err
		}
		d.Segments = append(d.Segments, models.FlightSegment{
			From: CleanString(seg.From),
			To:   CleanString(seg.To),
			Date: date,
		})
	}
	return d, nil
}

func hotelDetails(raw *models.BookingRequest) (*models.HotelDetails, error) {
	in, err := cleanDate(raw.CheckIn, "checkIn")
	if err != nil {
		return nil, err
	}
	out, err := cleanDate(raw.CheckOut, "checkOut")
	if err != nil {
		return nil, err
	}
	if err := checkOrder(in, out, true, "checkOut must be after checkIn"); err != nil {
		return nil, err
	}

	return &models.HotelDetails{
		Destination: CleanString(raw.Destination),
		CheckIn:     in,
		CheckOut:    out,
		Rooms:       asCount(raw.Rooms),
		Guests:      cleanCounts(raw.GuestInfo),
	}, nil
}

func transferDetails(raw *models.BookingRequest) (*models.TransferDetails, error) {
	date, err := cleanDate(raw.TransferDate, "transferDate")
	if err != nil {
		return nil, err
	}
	return &models.TransferDetails{
		Pickup:     CleanString(raw.Pickup),
		Dropoff:    CleanString(raw.Dropoff),
		Date:       date,
		Time:       CleanString(raw.TransferTime),
		Passengers: asCount(raw.Passengers),
		Travelers:  cleanCounts(raw.TravelerInfo),
	}, nil
}

func insuranceDetails(raw *models.BookingRequest) (*models.InsuranceDetails, error) {
	start, err := cleanDate(raw.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := cleanDate(raw.EndDate, "endDate")
	if err != nil {
		return nil, err
	}
	if err := checkOrder(start, end, true, "endDate must be after startDate"); err != nil {
		return nil, err
	}

	return &models.InsuranceDetails{
		Destination: CleanString(raw.Destination),
		StartDate:   start,
		EndDate:     end,
		Travelers:   cleanCounts(raw.TravelerInfo),
	}, nil
}

func embassyDetails(raw *models.BookingRequest) (*models.EmbassyDetails, error) {
	date, err := cleanDate(raw.AppointmentDate, "appointmentDate")
	if err != nil {
		return nil, err
	}
	return &models.EmbassyDetails{
		Country:         CleanString(raw.EmbassyCountry),
		VisaType:        CleanString(raw.VisaType),
		AppointmentDate: date,
		Travelers:       cleanCounts(raw.EmbassyTraveler),
	}, nil
}

func cleanEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", nil
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", domain.Validation("invalid email address")
	}
	return email, nil
}
