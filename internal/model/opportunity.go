package model

// Closed value sets for the enum-typed Opportunity fields. Anything outside
// these sets is normalized to the field's default, never persisted as-is.
var (
	StageValues    = []string{"sourcing", "quoted", "sampled", "negotiating", "committed", "won", "lost"}
	StatusValues   = []string{"open", "won", "lost"}
	DealTypeValues = []string{"supplier_offer", "customer_need", "matched_deal"}
)

const (
	DefaultStage      = "sourcing"
	DefaultStatus     = "open"
	DefaultDealType   = "supplier_offer"
	DefaultConfidence = 50
)

// Opportunity is a tracked trade deal: a supplier offer, a customer need, or a
// matched deal. Timestamps are ISO-8601 UTC strings on the wire.
type Opportunity struct {
	ID              int64    `json:"id"`
	DealType        string   `json:"deal_type"`
	Supplier        string   `json:"supplier"`
	Product         string   `json:"product"`
	Customer        string   `json:"customer"`
	QtyNeeded       *float64 `json:"qty_needed"`
	SupplierPrice   *float64 `json:"supplier_price"`
	TargetSellPrice *float64 `json:"target_sell_price"`
	Incoterms       string   `json:"incoterms"`
	CountryOfOrigin string   `json:"country_of_origin"`
	Intermediary    string   `json:"intermediary"`
	DealContacts    string   `json:"deal_contacts"`
	Stage           string   `json:"stage"`
	Status          string   `json:"status"`
	Confidence      int      `json:"confidence"`
	Owner           string   `json:"owner"`
	Notes           string   `json:"notes"`
	EucText         string   `json:"euc_text"`
	NextAction      string   `json:"next_action"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// Payload flattens the record into the raw-field form accepted by the
// sanitizer. Updates overlay a partial payload on top of this and re-sanitize
// the merged whole, so stored values go through the same normalization path
// as fresh input.
func (o Opportunity) Payload() map[string]any {
	p := map[string]any{
		"deal_type":         o.DealType,
		"supplier":          o.Supplier,
		"product":           o.Product,
		"customer":          o.Customer,
		"incoterms":         o.Incoterms,
		"country_of_origin": o.CountryOfOrigin,
		"intermediary":      o.Intermediary,
		"deal_contacts":     o.DealContacts,
		"stage":             o.Stage,
		"status":            o.Status,
		"confidence":        o.Confidence,
		"owner":             o.Owner,
		"notes":             o.Notes,
		"euc_text":          o.EucText,
		"next_action":       o.NextAction,
	}
	if o.QtyNeeded != nil {
		p["qty_needed"] = *o.QtyNeeded
	}
	if o.SupplierPrice != nil {
		p["supplier_price"] = *o.SupplierPrice
	}
	if o.TargetSellPrice != nil {
		p["target_sell_price"] = *o.TargetSellPrice
	}
	return p
}
