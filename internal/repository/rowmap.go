package repository

import (
	"strconv"
	"time"

	"github.com/Geraghw1/defaero-deal-tracker/internal/model"
	"github.com/Geraghw1/defaero-deal-tracker/internal/storage"
)

// The two backends hand back different Go types for the same column:
// Postgres scans TIMESTAMPTZ into time.Time where SQLite stores TEXT, and
// integer-ish columns arrive as int64 on one side and float64 on the other.
// These converters fold both shapes into the model types.

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

func asFloatPtr(v any) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return &t
	case float32:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	case []byte:
		if f, err := strconv.ParseFloat(string(t), 64); err == nil {
			return &f
		}
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return &f
		}
	}
	return nil
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case []byte:
		n, _ := strconv.ParseInt(string(t), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	default:
		return 0
	}
}

func asBytes(v any) []byte {
	switch t := v.(type) {
	case []byte:
		return t
	case string:
		return []byte(t)
	default:
		return nil
	}
}

func opportunityFromRow(row storage.Row) model.Opportunity {
	return model.Opportunity{
		ID:              asInt64(row["id"]),
		DealType:        asString(row["deal_type"]),
		Supplier:        asString(row["supplier"]),
		Product:         asString(row["product"]),
		Customer:        asString(row["customer"]),
		QtyNeeded:       asFloatPtr(row["qty_needed"]),
		SupplierPrice:   asFloatPtr(row["supplier_price"]),
		TargetSellPrice: asFloatPtr(row["target_sell_price"]),
		Incoterms:       asString(row["incoterms"]),
		CountryOfOrigin: asString(row["country_of_origin"]),
		Intermediary:    asString(row["intermediary"]),
		DealContacts:    asString(row["deal_contacts"]),
		Stage:           asString(row["stage"]),
		Status:          asString(row["status"]),
		Confidence:      int(asInt64(row["confidence"])),
		Owner:           asString(row["owner"]),
		Notes:           asString(row["notes"]),
		EucText:         asString(row["euc_text"]),
		NextAction:      asString(row["next_action"]),
		CreatedAt:       asString(row["created_at"]),
		UpdatedAt:       asString(row["updated_at"]),
	}
}

func documentFromRow(row storage.Row) model.Document {
	return model.Document{
		ID:            asInt64(row["id"]),
		OpportunityID: asInt64(row["opportunity_id"]),
		OriginalName:  asString(row["original_name"]),
		MimeType:      asString(row["mime_type"]),
		SizeBytes:     asInt64(row["size_bytes"]),
		UploadedBy:    asString(row["uploaded_by"]),
		CreatedAt:     asString(row["created_at"]),
		Data:          asBytes(row["file_data"]),
	}
}
