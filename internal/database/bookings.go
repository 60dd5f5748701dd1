package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

func (d *DB) nextBookingID() string {
	d.idMu.Lock()
	defer d.idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= d.lastID {
		now = d.lastID + 1
	}
	d.lastID = now
	return strconv.FormatInt(now, 10)
}

// AppendBooking stores a sanitized booking with a generated id, status "new"
// and the current timestamp, and returns the full record.
func (d *DB) AppendBooking(ctx context.Context, sanitized *models.SanitizedBooking) (*models.Booking, error) {
	booking := &models.Booking{
		ID:               d.nextBookingID(),
		SanitizedBooking: *sanitized,
		Status:           models.StatusNew,
		CreatedAt:        time.Now().UTC(),
	}

	payload, err := json.Marshal(sanitized)
	if err != nil {
		return nil, fmt.Errorf("encode booking payload: %w", err)
	}

	query := `INSERT INTO bookings (id, type, payload, status, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := d.db.ExecContext(ctx, query,
		booking.ID, string(booking.Type), string(payload), booking.Status, booking.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	return booking, nil
}

// ListBookings returns every booking in insertion order.
func (d *DB) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, payload, status, created_at, updated_at FROM bookings ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (d *DB) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, payload, status, created_at, updated_at FROM bookings WHERE id = ?`, id)

	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

// UpdateBookingStatus sets status and updated_at and returns the updated
// record. Unknown ids yield domain.ErrNotFound.
func (d *DB) UpdateBookingStatus(ctx context.Context, id string, status string) (*models.Booking, error) {
	now := time.Now().UTC()
	res, err := d.db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`, status, now, id)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return d.GetBooking(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var (
		b         models.Booking
		payload   string
		updatedAt sql.NullTime
	)
	if err := row.Scan(&b.ID, &payload, &b.Status, &b.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &b.SanitizedBooking); err != nil {
		return nil, fmt.Errorf("decode booking payload: %w", err)
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		b.UpdatedAt = &t
	}
	return &b, nil
}
