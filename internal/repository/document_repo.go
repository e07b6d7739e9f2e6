package repository

import (
	"context"

	"github.com/Geraghw1/defaero-deal-tracker/internal/model"
	"github.com/Geraghw1/defaero-deal-tracker/internal/storage"
)

const documentMetaColumns = "id, opportunity_id, original_name, mime_type, size_bytes, uploaded_by, created_at"

type DocumentRepository interface {
	Insert(ctx context.Context, d model.Document) (*model.Document, error)
	ListByOpportunity(ctx context.Context, opportunityID int64) ([]model.Document, error)
	FindByID(ctx context.Context, id int64) (*model.Document, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type documentRepo struct{ db storage.Adapter }

func NewDocumentRepository(db storage.Adapter) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Insert(ctx context.Context, d model.Document) (*model.Document, error) {
	res, err := r.db.Execute(ctx, `INSERT INTO opportunity_documents (
		opportunity_id, original_name, mime_type, size_bytes, file_data, uploaded_by, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		d.OpportunityID, d.OriginalName, d.MimeType, d.SizeBytes, d.Data, d.UploadedBy, d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	row, err := r.db.QueryOne(ctx,
		"SELECT "+documentMetaColumns+" FROM opportunity_documents WHERE id = ?", res.InsertedID)
	if err != nil || row == nil {
		return nil, err
	}
	stored := documentFromRow(row)
	return &stored, nil
}

func (r *documentRepo) ListByOpportunity(ctx context.Context, opportunityID int64) ([]model.Document, error) {
	rows, err := r.db.QueryAll(ctx,
		"SELECT "+documentMetaColumns+` FROM opportunity_documents
		 WHERE opportunity_id = ?
		 ORDER BY created_at DESC, id DESC`, opportunityID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Document, len(rows))
	for i, row := range rows {
		out[i] = documentFromRow(row)
	}
	return out, nil
}

// FindByID loads the full document, payload included.
func (r *documentRepo) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	row, err := r.db.QueryOne(ctx,
		"SELECT "+documentMetaColumns+", file_data FROM opportunity_documents WHERE id = ?", id)
	if err != nil || row == nil {
		return nil, err
	}
	d := documentFromRow(row)
	return &d, nil
}

func (r *documentRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.Execute(ctx, "DELETE FROM opportunity_documents WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.Affected, nil
}
