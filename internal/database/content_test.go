package database

import (
	"context"
	"encoding/json"
	"testing"

	"tripdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetContentDefaults(t *testing.T) {
	db := setupTestDB(t)

	doc, err := db.GetContent(context.Background())
	require.NoError(t, err)
	assert.Contains(t, doc, "hero")
	assert.Contains(t, doc, "portfolio")
}

func TestGetContentOverlaysStored(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.MergeContent(ctx, models.ContentDocument{
		"hero":  json.RawMessage(`{"title":"Stored"}`),
		"promo": json.RawMessage(`{"active":true}`),
	})
	require.NoError(t, err)

	doc, err := db.GetContent(ctx)
	require.NoError(t, err)
	// Stored keys win over defaults; unknown keys and untouched defaults both
	// survive the overlay.
	assert.JSONEq(t, `{"title":"Stored"}`, string(doc["hero"]))
	assert.Contains(t, doc, "promo")
	assert.Contains(t, doc, "about")
}

func TestMergeContentShallow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	patch := models.ContentDocument{
		"hero": json.RawMessage(`{"title":"Fly with us","subtitle":"since 2010"}`),
	}
	merged, err := db.MergeContent(ctx, patch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Fly with us","subtitle":"since 2010"}`, string(merged["hero"]))
	// Untouched keys survive.
	assert.Contains(t, merged, "about")

	// A sibling-keyed update replaces the key wholesale, not recursively.
	patch = models.ContentDocument{"hero": json.RawMessage(`{"title":"New"}`)}
	merged, err = db.MergeContent(ctx, patch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"New"}`, string(merged["hero"]))
}

func TestMergeContentIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	doc, err := db.GetContent(ctx)
	require.NoError(t, err)

	merged, err := db.MergeContent(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, doc, merged)
}

func TestContactAndAnalytics(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	msg := &models.ContactMessage{Name: "Bob", Email: "bob@x.com", Subject: "hi", Message: "hello"}
	require.NoError(t, db.AppendContactMessage(ctx, msg))
	assert.NotZero(t, msg.ID)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.AppendEvent(ctx, &models.AnalyticsEvent{Type: models.EventPageView, Page: "/"}))
	}
	require.NoError(t, db.AppendEvent(ctx, &models.AnalyticsEvent{Type: models.EventClick, Page: "/services"}))

	stats, err := db.EventStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, models.EventPageView, stats[0].Type)
	assert.Equal(t, int64(3), stats[0].Count)
}
