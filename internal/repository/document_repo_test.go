package repository

import (
	"context"
	"testing"

	"github.com/Geraghw1/defaero-deal-tracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentInsertReturnsMetadataOnly(t *testing.T) {
	db := testAdapter(t)
	opps := NewOpportunityRepository(db)
	docs := NewDocumentRepository(db)
	ctx := context.Background()

	parent, err := opps.Insert(ctx, sampleOpportunity("Acme", "Widget", "2026-03-01T10:00:00Z"))
	require.NoError(t, err)

	stored, err := docs.Insert(ctx, model.Document{
		OpportunityID: parent.ID,
		OriginalName:  "euc.pdf",
		MimeType:      "application/pdf",
		SizeBytes:     9,
		UploadedBy:    "alice",
		CreatedAt:     "2026-03-01T10:05:00Z",
		Data:          []byte("pdf bytes"),
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Greater(t, stored.ID, int64(0))
	assert.Equal(t, "euc.pdf", stored.OriginalName)
	assert.Equal(t, int64(9), stored.SizeBytes)
	assert.Nil(t, stored.Data, "insert response carries metadata only")
}

func TestDocumentFindByIDLoadsPayload(t *testing.T) {
	db := testAdapter(t)
	opps := NewOpportunityRepository(db)
	docs := NewDocumentRepository(db)
	ctx := context.Background()

	parent, err := opps.Insert(ctx, sampleOpportunity("Acme", "Widget", "2026-03-01T10:00:00Z"))
	require.NoError(t, err)

	stored, err := docs.Insert(ctx, model.Document{
		OpportunityID: parent.ID,
		OriginalName:  "photos.zip",
		MimeType:      "application/zip",
		SizeBytes:     4,
		CreatedAt:     "2026-03-01T10:05:00Z",
		Data:          []byte("zip!"),
	})
	require.NoError(t, err)

	full, err := docs.FindByID(ctx, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, full)
	assert.Equal(t, []byte("zip!"), full.Data)

	missing, err := docs.FindByID(ctx, stored.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDocumentListNewestFirst(t *testing.T) {
	db := testAdapter(t)
	opps := NewOpportunityRepository(db)
	docs := NewDocumentRepository(db)
	ctx := context.Background()

	parent, err := opps.Insert(ctx, sampleOpportunity("Acme", "Widget", "2026-03-01T10:00:00Z"))
	require.NoError(t, err)
	other, err := opps.Insert(ctx, sampleOpportunity("Globex", "Gadget", "2026-03-01T11:00:00Z"))
	require.NoError(t, err)

	for i, stamp := range []string{"2026-03-01T10:05:00Z", "2026-03-02T08:00:00Z"} {
		_, err := docs.Insert(ctx, model.Document{
			OpportunityID: parent.ID,
			OriginalName:  []string{"first.pdf", "second.pdf"}[i],
			SizeBytes:     1,
			CreatedAt:     stamp,
			Data:          []byte("x"),
		})
		require.NoError(t, err)
	}
	_, err = docs.Insert(ctx, model.Document{
		OpportunityID: other.ID,
		OriginalName:  "unrelated.pdf",
		SizeBytes:     1,
		CreatedAt:     "2026-03-03T08:00:00Z",
		Data:          []byte("x"),
	})
	require.NoError(t, err)

	list, err := docs.ListByOpportunity(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second.pdf", list[0].OriginalName)
	assert.Equal(t, "first.pdf", list[1].OriginalName)
}

func TestDocumentDelete(t *testing.T) {
	db := testAdapter(t)
	opps := NewOpportunityRepository(db)
	docs := NewDocumentRepository(db)
	ctx := context.Background()

	parent, err := opps.Insert(ctx, sampleOpportunity("Acme", "Widget", "2026-03-01T10:00:00Z"))
	require.NoError(t, err)
	stored, err := docs.Insert(ctx, model.Document{
		OpportunityID: parent.ID,
		OriginalName:  "euc.pdf",
		SizeBytes:     1,
		CreatedAt:     "2026-03-01T10:05:00Z",
		Data:          []byte("x"),
	})
	require.NoError(t, err)

	affected, err := docs.Delete(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = docs.Delete(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
