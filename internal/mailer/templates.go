package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"tripdesk/internal/models"
)

var bookingTmpl = template.Must(template.New("booking").Parse(`
<h2>{{.Title}}</h2>
<p><b>Booking ID:</b> {{.Booking.ID}}</p>
{{if .Booking.Name}}<p><b>Name:</b> {{.Booking.Name}}</p>{{end}}
{{if .Booking.Email}}<p><b>Email:</b> {{.Booking.Email}}</p>{{end}}
{{if .Booking.Phone}}<p><b>Phone:</b> {{.Booking.Phone}}</p>{{end}}
{{if .Booking.Urgent}}<p><b>URGENT REQUEST</b></p>{{end}}
<table border="1" cellpadding="4" cellspacing="0">
{{range .Rows}}<tr><td><b>{{.Label}}</b></td><td>{{.Value}}</td></tr>
{{end}}</table>
{{if .Booking.Notes}}<p><b>Notes:</b> {{.Booking.Notes}}</p>{{end}}
<p><small>Submitted {{.Booking.CreatedAt.Format "2006-01-02 15:04:05"}} UTC</small></p>
`))

var contactTmpl = template.Must(template.New("contact").Parse(`
<h2>New contact message</h2>
{{if .Name}}<p><b>Name:</b> {{.Name}}</p>{{end}}
{{if .Email}}<p><b>Email:</b> {{.Email}}</p>{{end}}
<p><b>Subject:</b> {{.Subject}}</p>
<p>{{.Message}}</p>
`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<h2>Password reset</h2>
<p>A password reset was requested for the admin account. The link below is valid for one hour.</p>
<p><a href="{{.URL}}">Reset password</a></p>
<p>If you did not request this, ignore this message.</p>
`))

type row struct {
	Label string
	Value string
}

type bookingMail struct {
	Title   string
	Booking *models.Booking
	Rows    []row
}

func renderBooking(b *models.Booking) (subject, body string, err error) {
	data := bookingMail{Booking: b}

	switch b.Type {
	case models.BookingFlight:
		data.Title = "New flight request"
		data.Rows = flightRows(b.Flight)
	case models.BookingHotel:
		data.Title = "New hotel request"
		data.Rows = hotelRows(b.Hotel)
	case models.BookingTransfer:
		data.Title = "New transfer request"
		data.Rows = transferRows(b.Transfer)
	case models.BookingInsurance:
		data.Title = "New insurance request"
		data.Rows = insuranceRows(b.Insurance)
	case models.BookingEmbassy:
		data.Title = "New embassy / visa request"
		data.Rows = embassyRows(b.Embassy)
	default:
		data.Title = "New booking request"
	}

	subject = fmt.Sprintf("%s (#%s)", data.Title, b.ID)
	if b.Urgent {
		subject = "[URGENT] " + subject
	}

	var buf bytes.Buffer
	if err := bookingTmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}

func flightRows(d *models.FlightDetails) []row {
	if d == nil {
		return nil
	}
	rows := []row{
		{"Trip type", d.TripType},
		{"Route", d.From + " → " + d.To},
		{"Departure", d.DepartureDate},
		{"Return", d.ReturnDate},
		{"Cabin class", d.CabinClass},
		{"Passengers", countsLine(d.Passengers)},
	}
	for i, seg := range d.Segments {
		rows = append(rows, row{
			fmt.Sprintf("Segment %d", i+1),
			fmt.Sprintf("%s → %s on %s", seg.From, seg.To, seg.Date),
		})
	}
	return dropEmpty(rows)
}

func hotelRows(d *models.HotelDetails) []row {
	if d == nil {
		return nil
	}
	return dropEmpty([]row{
		{"Destination", d.Destination},
		{"Check-in", d.CheckIn},
		{"Check-out", d.CheckOut},
		{"Rooms", nonZero(d.Rooms)},
		{"Guests", countsLine(d.Guests)},
	})
}

func transferRows(d *models.TransferDetails) []row {
	if d == nil {
		return nil
	}
	return dropEmpty([]row{
		{"Pickup", d.Pickup},
		{"Dropoff", d.Dropoff},
		{"Date", d.Date},
		{"Time", d.Time},
		{"Passengers", nonZero(d.Passengers)},
		{"Travelers", countsLine(d.Travelers)},
	})
}

func insuranceRows(d *models.InsuranceDetails) []row {
	if d == nil {
		return nil
	}
	return dropEmpty([]row{
		{"Destination", d.Destination},
		{"Start", d.StartDate},
		{"End", d.EndDate},
		{"Travelers", countsLine(d.Travelers)},
	})
}

func embassyRows(d *models.EmbassyDetails) []row {
	if d == nil {
		return nil
	}
	return dropEmpty([]row{
		{"Country", d.Country},
		{"Visa type", d.VisaType},
		{"Appointment", d.AppointmentDate},
		{"Travelers", countsLine(d.Travelers)},
	})
}

func countsLine(c *models.TravelerCounts) string {
	if c == nil {
		return ""
	}
	s := fmt.Sprintf("%d adults, %d children, %d infants", c.Adults, c.Children, c.Infants)
	if c.Seniors > 0 {
		s += fmt.Sprintf(", %d seniors", c.Seniors)
	}
	if len(c.ChildAges) > 0 {
		s += fmt.Sprintf(" (child ages %v)", c.ChildAges)
	}
	return s
}

func nonZero(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

func dropEmpty(rows []row) []row {
	out := rows[:0]
	for _, r := range rows {
		if r.Value != "" && r.Value != " → " {
			out = append(out, r)
		}
	}
	return out
}

func renderContact(cm *models.ContactMessage) (string, error) {
	var buf bytes.Buffer
	if err := contactTmpl.Execute(&buf, cm); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderResetLink(appURL, token string) (string, error) {
	var buf bytes.Buffer
	data := struct{ URL string }{URL: fmt.Sprintf("%s/admin/reset-password?token=%s", appURL, token)}
	if err := resetTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
