package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentDocumentMerge(t *testing.T) {
	base := ContentDocument{
		"hero":  json.RawMessage(`{"title":"old"}`),
		"about": json.RawMessage(`{"text":"keep me"}`),
	}
	patch := ContentDocument{
		"hero":  json.RawMessage(`{"title":"new"}`),
		"promo": json.RawMessage(`{"active":true}`),
	}

	out := base.Merge(patch)

	assert.JSONEq(t, `{"title":"new"}`, string(out["hero"]))
	assert.JSONEq(t, `{"text":"keep me"}`, string(out["about"]))
	assert.JSONEq(t, `{"active":true}`, string(out["promo"]))
	// The receiver is left untouched.
	assert.JSONEq(t, `{"title":"old"}`, string(base["hero"]))
}

func TestContentDocumentMergeEmptyPatch(t *testing.T) {
	base := DefaultContent()
	out := base.Merge(nil)
	assert.Equal(t, base, out)
}
