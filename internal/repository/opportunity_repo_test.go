package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Geraghw1/defaero-deal-tracker/internal/model"
	"github.com/Geraghw1/defaero-deal-tracker/internal/query"
	"github.com/Geraghw1/defaero-deal-tracker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAdapter(t *testing.T) storage.Adapter {
	t.Helper()
	a, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	require.NoError(t, a.InitSchema(context.Background()))
	return a
}

func sampleOpportunity(supplier, product, stamp string) model.Opportunity {
	qty := 100.0
	price := 250.0
	return model.Opportunity{
		DealType:        "supplier_offer",
		Supplier:        supplier,
		Product:         product,
		Customer:        "MOD",
		QtyNeeded:       &qty,
		TargetSellPrice: &price,
		Incoterms:       "DAP",
		CountryOfOrigin: "BG",
		Stage:           "sourcing",
		Status:          "open",
		Confidence:      50,
		Owner:           "alice",
		CreatedAt:       stamp,
		UpdatedAt:       stamp,
	}
}

func TestOpportunityInsertRoundTrip(t *testing.T) {
	repo := NewOpportunityRepository(testAdapter(t))
	ctx := context.Background()

	in := sampleOpportunity("Acme", "Widget", "2026-03-01T10:00:00Z")
	in.SupplierPrice = nil

	stored, err := repo.Insert(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Greater(t, stored.ID, int64(0))
	assert.Equal(t, "Acme", stored.Supplier)
	assert.Equal(t, "DAP", stored.Incoterms)
	require.NotNil(t, stored.QtyNeeded)
	assert.Equal(t, 100.0, *stored.QtyNeeded)
	assert.Nil(t, stored.SupplierPrice, "NULL must come back as nil, not zero")
	assert.Equal(t, "2026-03-01T10:00:00Z", stored.CreatedAt)
}

func TestOpportunityFindByIDMissing(t *testing.T) {
	repo := NewOpportunityRepository(testAdapter(t))
	got, err := repo.FindByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOpportunityUpdate(t *testing.T) {
	repo := NewOpportunityRepository(testAdapter(t))
	ctx := context.Background()

	stored, err := repo.Insert(ctx, sampleOpportunity("Acme", "Widget", "2026-03-01T10:00:00Z"))
	require.NoError(t, err)

	stored.Stage = "quoted"
	stored.Notes = "sent quote v2"
	stored.UpdatedAt = "2026-03-02T09:00:00Z"
	require.NoError(t, repo.Update(ctx, *stored))

	reloaded, err := repo.FindByID(ctx, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, "quoted", reloaded.Stage)
	assert.Equal(t, "sent quote v2", reloaded.Notes)
	assert.Equal(t, "2026-03-02T09:00:00Z", reloaded.UpdatedAt)
	assert.Equal(t, "2026-03-01T10:00:00Z", reloaded.CreatedAt)
}

func TestOpportunityListOrdering(t *testing.T) {
	repo := NewOpportunityRepository(testAdapter(t))
	ctx := context.Background()

	older, err := repo.Insert(ctx, sampleOpportunity("Acme", "Widget", "2026-03-01T10:00:00Z"))
	require.NoError(t, err)
	newer, err := repo.Insert(ctx, sampleOpportunity("Globex", "Gadget", "2026-03-05T10:00:00Z"))
	require.NoError(t, err)
	// same timestamp as older: id breaks the tie, newest id first
	tied, err := repo.Insert(ctx, sampleOpportunity("Initech", "Gizmo", "2026-03-01T10:00:00Z"))
	require.NoError(t, err)

	list, err := repo.List(ctx, query.Criteria{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, tied.ID, list[1].ID)
	assert.Equal(t, older.ID, list[2].ID)
}

func TestOpportunityListFiltered(t *testing.T) {
	repo := NewOpportunityRepository(testAdapter(t))
	ctx := context.Background()

	a := sampleOpportunity("Nordic Defence", "7.62 links", "2026-03-01T10:00:00Z")
	a.Notes = "urgent radar refit"
	_, err := repo.Insert(ctx, a)
	require.NoError(t, err)

	b := sampleOpportunity("Globex", "Gadget", "2026-03-02T10:00:00Z")
	b.Status = "lost"
	_, err = repo.Insert(ctx, b)
	require.NoError(t, err)

	list, err := repo.List(ctx, query.Criteria{Q: "RADAR"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Nordic Defence", list[0].Supplier)

	list, err = repo.List(ctx, query.Criteria{Status: "lost"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Globex", list[0].Supplier)

	list, err = repo.List(ctx, query.Criteria{Owner: "ALI"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestOpportunityDelete(t *testing.T) {
	repo := NewOpportunityRepository(testAdapter(t))
	ctx := context.Background()

	stored, err := repo.Insert(ctx, sampleOpportunity("Acme", "Widget", "2026-03-01T10:00:00Z"))
	require.NoError(t, err)

	affected, err := repo.Delete(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestOpportunityCountByStatusAndPipeline(t *testing.T) {
	repo := NewOpportunityRepository(testAdapter(t))
	ctx := context.Background()

	open := sampleOpportunity("Acme", "Widget", "2026-03-01T10:00:00Z") // 100 * 250
	_, err := repo.Insert(ctx, open)
	require.NoError(t, err)

	noPrice := sampleOpportunity("Globex", "Gadget", "2026-03-01T11:00:00Z")
	noPrice.TargetSellPrice = nil // contributes zero, not NULL poison
	_, err = repo.Insert(ctx, noPrice)
	require.NoError(t, err)

	won := sampleOpportunity("Initech", "Gizmo", "2026-03-01T12:00:00Z")
	won.Status = "won"
	_, err = repo.Insert(ctx, won)
	require.NoError(t, err)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["open"])
	assert.Equal(t, int64(1), counts["won"])
	assert.Zero(t, counts["lost"])

	sum, err := repo.OpenPipelineSum(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25000.0, sum)
}

func TestOpenPipelineSumEmptyTable(t *testing.T) {
	repo := NewOpportunityRepository(testAdapter(t))
	sum, err := repo.OpenPipelineSum(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sum)
}
