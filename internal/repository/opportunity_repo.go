package repository

import (
	"context"

	"github.com/Geraghw1/defaero-deal-tracker/internal/model"
	"github.com/Geraghw1/defaero-deal-tracker/internal/query"
	"github.com/Geraghw1/defaero-deal-tracker/internal/storage"
)

type OpportunityRepository interface {
	Insert(ctx context.Context, o model.Opportunity) (*model.Opportunity, error)
	Update(ctx context.Context, o model.Opportunity) error
	FindByID(ctx context.Context, id int64) (*model.Opportunity, error)
	List(ctx context.Context, c query.Criteria) ([]model.Opportunity, error)
	Delete(ctx context.Context, id int64) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	OpenPipelineSum(ctx context.Context) (float64, error)
}

type opportunityRepo struct{ db storage.Adapter }

func NewOpportunityRepository(db storage.Adapter) OpportunityRepository {
	return &opportunityRepo{db: db}
}

const insertOpportunitySQL = `INSERT INTO opportunities (
	deal_type, supplier, product, customer, qty_needed, supplier_price, target_sell_price,
	incoterms, country_of_origin, intermediary, deal_contacts,
	stage, status, confidence, owner, notes, euc_text, next_action, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`

const updateOpportunitySQL = `UPDATE opportunities SET
	deal_type = ?,
	supplier = ?,
	product = ?,
	customer = ?,
	qty_needed = ?,
	supplier_price = ?,
	target_sell_price = ?,
	incoterms = ?,
	country_of_origin = ?,
	intermediary = ?,
	deal_contacts = ?,
	stage = ?,
	status = ?,
	confidence = ?,
	owner = ?,
	notes = ?,
	euc_text = ?,
	next_action = ?,
	updated_at = ?
WHERE id = ?`

// nullableFloat keeps NULL semantics across the adapter boundary: a nil
// *float64 must bind as SQL NULL, not zero.
func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func (r *opportunityRepo) Insert(ctx context.Context, o model.Opportunity) (*model.Opportunity, error) {
	res, err := r.db.Execute(ctx, insertOpportunitySQL,
		o.DealType, o.Supplier, o.Product, o.Customer,
		nullableFloat(o.QtyNeeded), nullableFloat(o.SupplierPrice), nullableFloat(o.TargetSellPrice),
		o.Incoterms, o.CountryOfOrigin, o.Intermediary, o.DealContacts,
		o.Stage, o.Status, o.Confidence, o.Owner, o.Notes, o.EucText, o.NextAction,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, res.InsertedID)
}

func (r *opportunityRepo) Update(ctx context.Context, o model.Opportunity) error {
	_, err := r.db.Execute(ctx, updateOpportunitySQL,
		o.DealType, o.Supplier, o.Product, o.Customer,
		nullableFloat(o.QtyNeeded), nullableFloat(o.SupplierPrice), nullableFloat(o.TargetSellPrice),
		o.Incoterms, o.CountryOfOrigin, o.Intermediary, o.DealContacts,
		o.Stage, o.Status, o.Confidence, o.Owner, o.Notes, o.EucText, o.NextAction,
		o.UpdatedAt, o.ID,
	)
	return err
}

func (r *opportunityRepo) FindByID(ctx context.Context, id int64) (*model.Opportunity, error) {
	row, err := r.db.QueryOne(ctx, "SELECT * FROM opportunities WHERE id = ?", id)
	if err != nil || row == nil {
		return nil, err
	}
	o := opportunityFromRow(row)
	return &o, nil
}

func (r *opportunityRepo) List(ctx context.Context, c query.Criteria) ([]model.Opportunity, error) {
	where, params := query.Build(c)
	sql := "SELECT * FROM opportunities " + where
	if where == "" {
		sql = "SELECT * FROM opportunities"
	}
	// stable secondary tie-break on id for equal timestamps
	sql += " ORDER BY updated_at DESC, id DESC"
	rows, err := r.db.QueryAll(ctx, sql, params...)
	if err != nil {
		return nil, err
	}
	out := make([]model.Opportunity, len(rows))
	for i, row := range rows {
		out[i] = opportunityFromRow(row)
	}
	return out, nil
}

func (r *opportunityRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.Execute(ctx, "DELETE FROM opportunities WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.Affected, nil
}

func (r *opportunityRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryAll(ctx, "SELECT status, COUNT(*) AS count FROM opportunities GROUP BY status")
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[asString(row["status"])] = asInt64(row["count"])
	}
	return counts, nil
}

func (r *opportunityRepo) OpenPipelineSum(ctx context.Context) (float64, error) {
	row, err := r.db.QueryOne(ctx,
		"SELECT SUM(COALESCE(target_sell_price, 0) * COALESCE(qty_needed, 0)) AS total_pipeline FROM opportunities WHERE status = 'open'")
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, nil
	}
	if f := asFloatPtr(row["total_pipeline"]); f != nil {
		return *f, nil
	}
	return 0, nil
}
