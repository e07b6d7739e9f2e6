// Package query builds parameterized WHERE clauses from optional filter
// criteria. Output uses the universal `?` placeholder; each storage adapter
// rewrites it into its backend's native syntax, so this package stays
// dialect-agnostic.
package query

import (
	"strings"

	"github.com/Geraghw1/defaero-deal-tracker/internal/model"
)

// Criteria is the optional filter set for a list query. Zero values mean
// "no filter". Enum members outside their closed set are ignored entirely,
// which keeps unrecognized input from ever reaching the SQL text.
type Criteria struct {
	Q        string `form:"q"`
	Stage    string `form:"stage"`
	Status   string `form:"status"`
	DealType string `form:"deal_type"`
	Owner    string `form:"owner"`
}

// freeTextColumns are searched by the Q criterion, one bound parameter per
// column. Order is fixed so positional parameters line up identically on
// every backend.
var freeTextColumns = []string{
	"supplier", "product", "customer", "notes", "euc_text", "next_action", "deal_contacts",
}

// Build returns the WHERE clause (with leading "WHERE", or empty when no
// criteria are active) and the ordered parameter list. Predicates are
// evaluated in a fixed order: free text, stage, status, deal type, owner.
// Q and Owner are trimmed first, so whitespace-only input produces no
// predicate rather than a match-everything LIKE '% %' filter.
func Build(c Criteria) (string, []any) {
	var (
		filters []string
		params  []any
	)

	if q := strings.TrimSpace(c.Q); q != "" {
		like := "%" + q + "%"
		preds := make([]string, len(freeTextColumns))
		for i, col := range freeTextColumns {
			preds[i] = "LOWER(" + col + ") LIKE LOWER(?)"
			params = append(params, like)
		}
		filters = append(filters, "("+strings.Join(preds, " OR ")+")")
	}

	if contains(model.StageValues, c.Stage) {
		filters = append(filters, "stage = ?")
		params = append(params, c.Stage)
	}

	if contains(model.StatusValues, c.Status) {
		filters = append(filters, "status = ?")
		params = append(params, c.Status)
	}

	if contains(model.DealTypeValues, c.DealType) {
		filters = append(filters, "deal_type = ?")
		params = append(params, c.DealType)
	}

	if owner := strings.TrimSpace(c.Owner); owner != "" {
		filters = append(filters, "LOWER(owner) LIKE LOWER(?)")
		params = append(params, "%"+owner+"%")
	}

	if len(filters) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(filters, " AND "), params
}

func contains(set []string, v string) bool {
	if v == "" {
		return false
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
