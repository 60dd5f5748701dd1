package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripdesk/internal/models"
)

// GetContent returns the stored content document, falling back to the default
// document for keys never written.
func (d *DB) GetContent(ctx context.Context) (models.ContentDocument, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT key, value FROM content`)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	defer rows.Close()

	stored := make(models.ContentDocument)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		stored[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return models.DefaultContent().Merge(stored), nil
}

// MergeContent shallow-merges the patch into the stored document: each
// top-level key in patch overwrites the stored key wholesale. Returns the
// merged document.
func (d *DB) MergeContent(ctx context.Context, patch models.ContentDocument) (models.ContentDocument, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin content tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for key, value := range patch {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO content (key, value, updated_at) VALUES (?, ?, ?)
             ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, string(value), now)
		if err != nil {
			return nil, fmt.Errorf("upsert content key %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit content tx: %w", err)
	}

	return d.GetContent(ctx)
}
