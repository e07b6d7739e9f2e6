package service

import (
	"context"
	"time"

	"github.com/Geraghw1/defaero-deal-tracker/internal/model"
	"github.com/Geraghw1/defaero-deal-tracker/internal/normalize"
	"github.com/Geraghw1/defaero-deal-tracker/internal/query"
	"github.com/Geraghw1/defaero-deal-tracker/internal/repository"

	"github.com/shopspring/decimal"
)

// Summary is the pipeline roll-up: record counts per status plus the value
// of the open pipeline.
type Summary struct {
	Open          int64   `json:"open"`
	Won           int64   `json:"won"`
	Lost          int64   `json:"lost"`
	TotalPipeline float64 `json:"total_pipeline"`
}

type OpportunityService interface {
	Create(ctx context.Context, payload map[string]any, actingUser string) (*model.Opportunity, error)
	Update(ctx context.Context, id int64, partial map[string]any) (*model.Opportunity, error)
	Remove(ctx context.Context, id int64) error
	List(ctx context.Context, c query.Criteria) ([]model.Opportunity, error)
	Summarize(ctx context.Context) (*Summary, error)
}

type opportunityService struct {
	repo repository.OpportunityRepository
}

func NewOpportunityService(repo repository.OpportunityRepository) OpportunityService {
	return &opportunityService{repo: repo}
}

func nowStamp() string { return time.Now().UTC().Format(time.RFC3339) }

func (s *opportunityService) Create(ctx context.Context, payload map[string]any, actingUser string) (*model.Opportunity, error) {
	input := normalize.Sanitize(payload)
	if input.Supplier == "" || input.Product == "" {
		return nil, newValidationError("supplier and product are required")
	}
	if input.Owner == "" {
		input.Owner = actingUser
	}

	now := nowStamp()
	input.CreatedAt = now
	input.UpdatedAt = now

	stored, err := s.repo.Insert(ctx, input)
	if err != nil {
		return nil, wrapStorage("insert opportunity", err)
	}
	return stored, nil
}

// Update overlays the partial payload onto the stored snapshot and runs the
// merged whole back through the creation-time sanitizer, so normalization
// re-applies even to previously stored values. Two concurrent updates to
// the same id are a read-modify-write race with no version check; the last
// writer wins.
func (s *opportunityService) Update(ctx context.Context, id int64, partial map[string]any) (*model.Opportunity, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStorage("load opportunity", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	merged := existing.Payload()
	for k, v := range partial {
		merged[k] = v
	}

	input := normalize.Sanitize(merged)
	if input.Supplier == "" || input.Product == "" {
		return nil, newValidationError("supplier and product are required")
	}

	input.ID = id
	input.CreatedAt = existing.CreatedAt
	input.UpdatedAt = nowStamp()

	if err := s.repo.Update(ctx, input); err != nil {
		return nil, wrapStorage("update opportunity", err)
	}
	stored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStorage("reload opportunity", err)
	}
	return stored, nil
}

// Remove deletes the record; attached documents go with it via the
// backend's FK cascade.
func (s *opportunityService) Remove(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return wrapStorage("delete opportunity", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *opportunityService) List(ctx context.Context, c query.Criteria) ([]model.Opportunity, error) {
	out, err := s.repo.List(ctx, c)
	if err != nil {
		return nil, wrapStorage("list opportunities", err)
	}
	return out, nil
}

func (s *opportunityService) Summarize(ctx context.Context) (*Summary, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, wrapStorage("count by status", err)
	}
	sum, err := s.repo.OpenPipelineSum(ctx)
	if err != nil {
		return nil, wrapStorage("pipeline sum", err)
	}
	return &Summary{
		Open:          counts["open"],
		Won:           counts["won"],
		Lost:          counts["lost"],
		TotalPipeline: decimal.NewFromFloat(sum).Round(2).InexactFloat64(),
	}, nil
}
