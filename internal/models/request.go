package models

// BookingRequest is the raw, untrusted intake payload. The front end submits a
// flat object keyed by "type"; every field is optional and numerics may arrive
// as JSON numbers or strings, so they are typed as any and coerced by the
// sanitizer.
type BookingRequest struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
	// Coerced to bool; the source site sends true/false, "true"/"false" and 1/0.
	Urgent any `json:"urgent"`

	// flight
	TripType      string       `json:"tripType"`
	From          string       `json:"from"`
	To            string       `json:"to"`
	DepartureDate string       `json:"departureDate"`
	ReturnDate    string       `json:"returnDate"`
	CabinClass    string       `json:"cabinClass"`
	Segments      []RawSegment `json:"segments"`
	PassengerInfo *RawCounts   `json:"passengerInfo"`

	// hotel
	Destination string     `json:"destination"`
	CheckIn     string     `json:"checkIn"`
	CheckOut    string     `json:"checkOut"`
	Rooms       any        `json:"rooms"`
	GuestInfo   *RawCounts `json:"guestInfo"`

	// transfer
	Pickup       string `json:"pickup"`
	Dropoff      string `json:"dropoff"`
	TransferDate string `json:"transferDate"`
	TransferTime string `json:"transferTime"`
	Passengers   any    `json:"passengers"`

	// insurance
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	// embassy
	EmbassyCountry  string     `json:"embassyCountry"`
	VisaType        string     `json:"visaType"`
	AppointmentDate string     `json:"appointmentDate"`
	EmbassyTraveler *RawCounts `json:"embassyTravelerInfo"`

	// shared by transfer and insurance
	TravelerInfo *RawCounts `json:"travelerInfo"`
}

// RawSegment mirrors one entry of a multi-city flight request.
type RawSegment struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date"`
}

// RawCounts is the untrusted traveler breakdown; everything is coerced and
// clamped by the sanitizer.
type RawCounts struct {
	Adults     any   `json:"adults"`
	Children   any   `json:"children"`
	Infants    any   `json:"infants"`
	Seniors    any   `json:"seniors"`
	ChildAges  []any `json:"childAges"`
	InfantAges []any `json:"infantAges"`
}

// HasContact reports whether the request carries at least one contact field.
func (r *BookingRequest) HasContact() bool {
	return r.Email != "" || r.Phone != ""
}
