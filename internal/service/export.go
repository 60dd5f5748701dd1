package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripdesk/internal/models"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{
	"ID", "Type", "Status", "Urgent", "Name", "Email", "Phone", "Notes",
	"Details", "Created At", "Updated At",
}

// ExportBookingsXLSX renders every booking into a spreadsheet for offline
// review.
func (s *Service) ExportBookingsXLSX(ctx context.Context) (*bytes.Buffer, error) {
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := make([]any, len(exportColumns))
	for i, c := range exportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, b := range bookings {
		row := []any{
			b.ID,
			string(b.Type),
			b.Status,
			b.Urgent,
			b.Name,
			b.Email,
			b.Phone,
			b.Notes,
			detailsJSON(b),
			b.CreatedAt.Format(time.RFC3339),
			formatUpdated(b.UpdatedAt),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func detailsJSON(b *models.Booking) string {
	var v any
	switch {
	case b.Flight != nil:
		v = b.Flight
	case b.Hotel != nil:
		v = b.Hotel
	case b.Transfer != nil:
		v = b.Transfer
	case b.Insurance != nil:
		v = b.Insurance
	case b.Embassy != nil:
		v = b.Embassy
	default:
		return ""
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}

func formatUpdated(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
