// Package google appends booking and diagnostic rows to the operator's
// spreadsheet using a service-account credential.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"tripdesk/internal/config"
	"tripdesk/internal/domain"
	"tripdesk/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type SheetsService struct {
	service *sheets.Service
	cfg     config.SheetsConfig

	tabMu      sync.Mutex
	bookingTab string
}

func NewSheetsService(ctx context.Context, cfg config.SheetsConfig) (*SheetsService, error) {
	credentialsJSON, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsService{service: srv, cfg: cfg}, nil
}

// bookingColumns is the fixed row layout: one column per known field across
// all five booking types, nested structures serialized as JSON text.
var bookingColumns = []string{
	"ID", "Created At", "Type", "Status", "Name", "Email", "Phone", "Urgent", "Notes",
	"Trip Type", "From", "To", "Departure", "Return", "Cabin", "Segments", "Passengers",
	"Destination", "Check-in", "Check-out", "Rooms", "Guests",
	"Pickup", "Dropoff", "Transfer Date", "Transfer Time", "Transfer Passengers", "Travelers",
	"Start Date", "End Date",
	"Embassy Country", "Visa Type", "Appointment", "Embassy Travelers",
}

// resolveBookingTab probes the configured candidate tab names and falls back
// to the spreadsheet's first tab. The result is cached for the process life.
func (s *SheetsService) resolveBookingTab(ctx context.Context) (string, error) {
	s.tabMu.Lock()
	defer s.tabMu.Unlock()
	if s.bookingTab != "" {
		return s.bookingTab, nil
	}

	spreadsheet, err := s.service.Spreadsheets.Get(s.cfg.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get spreadsheet: %w", err)
	}
	if len(spreadsheet.Sheets) == 0 {
		return "", fmt.Errorf("spreadsheet has no sheets")
	}

	existing := make(map[string]bool, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		existing[sheet.Properties.Title] = true
	}

	for _, candidate := range s.cfg.BookingTabs {
		if existing[candidate] {
			s.bookingTab = candidate
			return candidate, nil
		}
	}

	s.bookingTab = spreadsheet.Sheets[0].Properties.Title
	return s.bookingTab, nil
}

// AppendBooking appends one fixed-width row for the booking.
func (s *SheetsService) AppendBooking(ctx context.Context, b *models.Booking) error {
	tab, err := s.resolveBookingTab(ctx)
	if err != nil {
		return err
	}

	valueRange := &sheets.ValueRange{
		Values: [][]any{bookingRow(b)},
	}

	_, err = s.service.Spreadsheets.Values.Append(s.cfg.SpreadsheetID, tab+"!A:A", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append booking row: %w", err)
	}
	return nil
}

// AppendErrorRow appends one diagnostic row to the error-log tab.
func (s *SheetsService) AppendErrorRow(ctx context.Context, row domain.ErrorRow) error {
	valueRange := &sheets.ValueRange{
		Values: [][]any{{
			row.Timestamp,
			row.Kind,
			row.Endpoint,
			row.Method,
			row.Status,
			row.Message,
			row.Stack,
			row.Context,
			row.UserAgent,
			row.URL,
		}},
	}

	_, err := s.service.Spreadsheets.Values.Append(s.cfg.SpreadsheetID, s.cfg.ErrorTab+"!A:A", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append error row: %w", err)
	}
	return nil
}

func bookingRow(b *models.Booking) []any {
	row := make([]any, 0, len(bookingColumns))
	row = append(row,
		b.ID,
		b.CreatedAt.Format("2006-01-02 15:04:05"),
		string(b.Type),
		b.Status,
		b.Name,
		b.Email,
		b.Phone,
		b.Urgent,
		b.Notes,
	)

	f := b.Flight
	if f == nil {
		f = &models.FlightDetails{}
	}
	row = append(row, f.TripType, f.From, f.To, f.DepartureDate, f.ReturnDate, f.CabinClass,
		asJSON(f.Segments), asJSON(f.Passengers))

	h := b.Hotel
	if h == nil {
		h = &models.HotelDetails{}
	}
	// The Destination column is shared by the hotel and insurance types.
	dest := h.Destination
	if dest == "" && b.Insurance != nil {
		dest = b.Insurance.Destination
	}
	row = append(row, dest, h.CheckIn, h.CheckOut, numOrEmpty(h.Rooms), asJSON(h.Guests))

	tr := b.Transfer
	if tr == nil {
		tr = &models.TransferDetails{}
	}
	ins := b.Insurance
	if ins == nil {
		ins = &models.InsuranceDetails{}
	}

	// The Travelers column is shared by the transfer and insurance types.
	trav := tr.Travelers
	if trav == nil {
		trav = ins.Travelers
	}
	row = append(row, tr.Pickup, tr.Dropoff, tr.Date, tr.Time, numOrEmpty(tr.Passengers), asJSON(trav))
	row = append(row, ins.StartDate, ins.EndDate)

	em := b.Embassy
	if em == nil {
		em = &models.EmbassyDetails{}
	}
	row = append(row, em.Country, em.VisaType, em.AppointmentDate, asJSON(em.Travelers))

	return row
}

func asJSON(v any) string {
	switch t := v.(type) {
	case []models.FlightSegment:
		if len(t) == 0 {
			return ""
		}
	case *models.TravelerCounts:
		if t == nil {
			return ""
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}

func numOrEmpty(n int) any {
	if n == 0 {
		return ""
	}
	return n
}
