package models

import "time"

type BookingType string

const (
	BookingFlight    BookingType = "flight"
	BookingHotel     BookingType = "hotel"
	BookingTransfer  BookingType = "transfer"
	BookingInsurance BookingType = "insurance"
	BookingEmbassy   BookingType = "embassy"
)

// KnownBookingTypes lists every accepted value of the "type" discriminator.
var KnownBookingTypes = []BookingType{
	BookingFlight,
	BookingHotel,
	BookingTransfer,
	BookingInsurance,
	BookingEmbassy,
}

func IsKnownBookingType(t BookingType) bool {
	for _, k := range KnownBookingTypes {
		if t == k {
			return true
		}
	}
	return false
}

// TravelerCounts is the shared passenger/guest/traveler breakdown. Age arrays
// hold only entries inside the documented ranges; anything else is dropped
// during sanitization, never rejected.
type TravelerCounts struct {
	Adults     int   `json:"adults"`
	Children   int   `json:"children"`
	Infants    int   `json:"infants"`
	Seniors    int   `json:"seniors,omitempty"`
	ChildAges  []int `json:"childAges,omitempty"`
	InfantAges []int `json:"infantAges,omitempty"`
}

type FlightSegment struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date"`
}

type FlightDetails struct {
	TripType      string          `json:"tripType,omitempty"`
	From          string          `json:"from,omitempty"`
	To            string          `json:"to,omitempty"`
	DepartureDate string          `json:"departureDate,omitempty"`
	ReturnDate    string          `json:"returnDate,omitempty"`
	CabinClass    string          `json:"cabinClass,omitempty"`
	Segments      []FlightSegment `json:"segments,omitempty"`
	Passengers    *TravelerCounts `json:"passengerInfo,omitempty"`
}

type HotelDetails struct {
	Destination string          `json:"destination,omitempty"`
	CheckIn     string          `json:"checkIn,omitempty"`
	CheckOut    string          `json:"checkOut,omitempty"`
	Rooms       int             `json:"rooms,omitempty"`
	Guests      *TravelerCounts `json:"guestInfo,omitempty"`
}

type TransferDetails struct {
	Pickup     string          `json:"pickup,omitempty"`
	Dropoff    string          `json:"dropoff,omitempty"`
	Date       string          `json:"date,omitempty"`
	Time       string          `json:"time,omitempty"`
	Passengers int             `json:"passengers,omitempty"`
	Travelers  *TravelerCounts `json:"travelerInfo,omitempty"`
}

type InsuranceDetails struct {
	Destination string          `json:"destination,omitempty"`
	StartDate   string          `json:"startDate,omitempty"`
	EndDate     string          `json:"endDate,omitempty"`
	Travelers   *TravelerCounts `json:"travelerInfo,omitempty"`
}

type EmbassyDetails struct {
	Country         string          `json:"embassyCountry,omitempty"`
	VisaType        string          `json:"visaType,omitempty"`
	AppointmentDate string          `json:"appointmentDate,omitempty"`
	Travelers       *TravelerCounts `json:"embassyTravelerInfo,omitempty"`
}

// SanitizedBooking is the validated, stripped form of a booking request.
// Exactly one variant detail pointer is set, matching Type.
type SanitizedBooking struct {
	Type   BookingType `json:"type"`
	Name   string      `json:"name,omitempty"`
	Email  string      `json:"email,omitempty"`
	Phone  string      `json:"phone,omitempty"`
	Notes  string      `json:"notes,omitempty"`
	Urgent bool        `json:"urgent,omitempty"`

	Flight    *FlightDetails    `json:"flight,omitempty"`
	Hotel     *HotelDetails     `json:"hotel,omitempty"`
	Transfer  *TransferDetails  `json:"transfer,omitempty"`
	Insurance *InsuranceDetails `json:"insurance,omitempty"`
	Embassy   *EmbassyDetails   `json:"embassy,omitempty"`
}

// Booking is the persisted record. UpdatedAt stays nil until an admin touches
// the status.
type Booking struct {
	ID string `json:"id"`
	SanitizedBooking
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
