// Package importer ingests supplier-offer workbooks. Real-world files
// carry three title/banner rows before the field header and column names
// that drift between variants ("Product " with a trailing space, "Price
// (Currency)" vs "Price"), so fields resolve through ordered alias lists
// rather than fixed positions.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Geraghw1/defaero-deal-tracker/internal/model"
	"github.com/Geraghw1/defaero-deal-tracker/internal/normalize"
	"github.com/Geraghw1/defaero-deal-tracker/internal/repository"

	"github.com/xuri/excelize/v2"
)

// headerRowIndex is the zero-based sheet row holding the field header.
const headerRowIndex = 3

// Result reports the import outcome. Rows lacking a resolvable supplier or
// product are counted in RowsRead but not in Imported; that discrepancy is
// the only surface of per-row skips.
type Result struct {
	Imported int    `json:"imported"`
	RowsRead int    `json:"rows_read"`
	Sheet    string `json:"sheet"`
}

// fieldAliases maps each canonical field to its acceptable header names in
// priority order; the first present-and-non-empty cell wins. New workbook
// variants are handled by appending aliases here, not by touching the row
// loop.
var fieldAliases = []struct {
	field   string
	aliases []string
}{
	{"supplier", []string{"Supplier", "supplier"}},
	{"product", []string{"Product ", "Product", "product"}},
	{"customer", []string{"Customer", "customer"}},
	{"supplier_price", []string{"Price (Currency)", "Price"}},
	{"target_sell_price", []string{"Target Sell Price", "TargetSellPrice"}},
	{"incoterms", []string{"Incoterms", "incoterms"}},
	{"country_of_origin", []string{"Country of Origin (COO)", "Country of Origin"}},
	{"intermediary", []string{"Intermediary", "intermediary"}},
	{"deal_contacts", []string{"Who is involved in the deal", "Who is involved in the deal?"}},
	{"notes", []string{"Notes", "notes"}},
	{"euc_text", []string{"EUC", "euc"}},
	{"stage", []string{"Stage"}},
	{"status", []string{"Status"}},
}

type Importer struct {
	repo repository.OpportunityRepository
}

func New(repo repository.OpportunityRepository) *Importer {
	return &Importer{repo: repo}
}

// Import decodes the workbook, selects the first sheet by position, and
// feeds each data row through the sanitizer as an independent create with
// created_at = updated_at = import time. deal_type is forced to
// supplier_offer (import is a one-way supplier-offer path) and owner to the
// acting user. Rows are processed sequentially; already-persisted rows
// survive a mid-batch failure.
func (im *Importer) Import(ctx context.Context, data []byte, actingUser string) (Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Result{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) <= headerRowIndex+1 {
		return Result{Sheet: sheet}, nil
	}

	headers := rows[headerRowIndex]
	result := Result{Sheet: sheet}

	for _, raw := range rows[headerRowIndex+1:] {
		cells := rowMap(headers, raw)
		if cells == nil {
			continue // fully blank row
		}
		result.RowsRead++

		payload := map[string]any{
			"deal_type": "supplier_offer",
			"owner":     actingUser,
		}
		for _, fa := range fieldAliases {
			payload[fa.field] = pick(cells, fa.aliases)
		}
		if payload["supplier"] == "" || payload["product"] == "" {
			continue
		}

		input := normalize.Sanitize(payload)
		input.DealType = model.DefaultDealType
		now := time.Now().UTC().Format(time.RFC3339)
		input.CreatedAt = now
		input.UpdatedAt = now

		if _, err := im.repo.Insert(ctx, input); err != nil {
			return result, fmt.Errorf("insert row %d: %w", result.RowsRead, err)
		}
		result.Imported++
	}
	return result, nil
}

// rowMap zips headers with cell values, defaulting missing cells to the
// empty string. Returns nil for rows with no content at all.
func rowMap(headers, cells []string) map[string]string {
	blank := true
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			blank = false
			break
		}
	}
	if blank {
		return nil
	}
	m := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(cells) {
			m[h] = cells[i]
		} else {
			m[h] = ""
		}
	}
	return m
}

func pick(cells map[string]string, aliases []string) string {
	for _, a := range aliases {
		if v := cells[a]; strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
