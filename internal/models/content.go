package models

import (
	"encoding/json"
	"time"
)

// ContentDocument backs the editable marketing copy. Top-level keys (hero,
// about, contact, portfolio, certificates, videos, socialLinks) are opaque
// JSON; admin updates replace keys wholesale, they never merge siblings
// recursively.
type ContentDocument map[string]json.RawMessage

// Merge applies a shallow merge: every key present in patch overwrites the
// same key in the receiver's copy. Keys absent from patch are kept.
func (d ContentDocument) Merge(patch ContentDocument) ContentDocument {
	out := make(ContentDocument, len(d)+len(patch))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// DefaultContent seeds a fresh installation so the public site never renders
// an empty document.
func DefaultContent() ContentDocument {
	return ContentDocument{
		"hero":         json.RawMessage(`{"title":"","subtitle":""}`),
		"about":        json.RawMessage(`{"text":""}`),
		"contact":      json.RawMessage(`{"email":"","phone":"","address":""}`),
		"portfolio":    json.RawMessage(`[]`),
		"certificates": json.RawMessage(`[]`),
		"videos":       json.RawMessage(`[]`),
		"socialLinks":  json.RawMessage(`[]`),
	}
}

// ContactMessage is a message from the public contact form. Stored so the
// operator can review submissions even when mail delivery fails.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalyticsEvent is a best-effort site event (page view, click, scroll depth).
type AnalyticsEvent struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Page      string    `json:"page"`
	SessionID string    `json:"session_id,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Value     string    `json:"value,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalyticsStat is one row of the aggregate read.
type AnalyticsStat struct {
	Type  string `json:"type"`
	Page  string `json:"page"`
	Count int64  `json:"count"`
}
