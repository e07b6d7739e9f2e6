package service

import (
	"context"

	"github.com/Geraghw1/defaero-deal-tracker/internal/model"
	"github.com/Geraghw1/defaero-deal-tracker/internal/repository"
)

type DocumentService interface {
	Attach(ctx context.Context, opportunityID int64, d model.Document) (*model.Document, error)
	ListByOpportunity(ctx context.Context, opportunityID int64) ([]model.Document, error)
	Download(ctx context.Context, id int64) (*model.Document, error)
	Remove(ctx context.Context, id int64) error
}

type documentService struct {
	docs repository.DocumentRepository
	opps repository.OpportunityRepository
}

func NewDocumentService(docs repository.DocumentRepository, opps repository.OpportunityRepository) DocumentService {
	return &documentService{docs: docs, opps: opps}
}

func (s *documentService) Attach(ctx context.Context, opportunityID int64, d model.Document) (*model.Document, error) {
	parent, err := s.opps.FindByID(ctx, opportunityID)
	if err != nil {
		return nil, wrapStorage("load opportunity", err)
	}
	if parent == nil {
		return nil, ErrNotFound
	}

	d.OpportunityID = opportunityID
	d.CreatedAt = nowStamp()
	if d.MimeType == "" {
		d.MimeType = "application/octet-stream"
	}

	stored, err := s.docs.Insert(ctx, d)
	if err != nil {
		return nil, wrapStorage("insert document", err)
	}
	return stored, nil
}

func (s *documentService) ListByOpportunity(ctx context.Context, opportunityID int64) ([]model.Document, error) {
	out, err := s.docs.ListByOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, wrapStorage("list documents", err)
	}
	return out, nil
}

func (s *documentService) Download(ctx context.Context, id int64) (*model.Document, error) {
	d, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStorage("load document", err)
	}
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *documentService) Remove(ctx context.Context, id int64) error {
	affected, err := s.docs.Delete(ctx, id)
	if err != nil {
		return wrapStorage("delete document", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
