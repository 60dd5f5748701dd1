package database

import (
	"context"
	"fmt"
	"time"

	"tripdesk/internal/models"
)

func (d *DB) AppendContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	res, err := d.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, subject, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("contact message id: %w", err)
	}
	msg.ID = id
	return nil
}

func (d *DB) AppendEvent(ctx context.Context, ev *models.AnalyticsEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	res, err := d.db.ExecContext(ctx,
		`INSERT INTO analytics_events (type, page, session_id, user_agent, value, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		ev.Type, ev.Page, ev.SessionID, ev.UserAgent, ev.Value, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analytics event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("analytics event id: %w", err)
	}
	ev.ID = id
	return nil
}

// EventStats aggregates events by type and page.
func (d *DB) EventStats(ctx context.Context) ([]models.AnalyticsStat, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT type, page, COUNT(*) FROM analytics_events GROUP BY type, page ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("event stats: %w", err)
	}
	defer rows.Close()

	var out []models.AnalyticsStat
	for rows.Next() {
		var s models.AnalyticsStat
		if err := rows.Scan(&s.Type, &s.Page, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
