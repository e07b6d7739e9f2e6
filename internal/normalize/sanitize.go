package normalize

import (
	"github.com/Geraghw1/defaero-deal-tracker/internal/model"
)

// Sanitize assembles a canonical Opportunity from a raw payload. It never
// rejects: enum fields fall back to their defaults, numbers that do not
// parse become nil, free text is trimmed. The required supplier/product
// invariant is enforced in the service layer, not here, so partial merge
// payloads can be sanitized before validity is known. Identity and
// timestamps are assigned by the service.
func Sanitize(payload map[string]any) model.Opportunity {
	eucText := payload["euc_text"]
	if String(eucText) == "" {
		// legacy clients send the certificate text under "euc"
		eucText = payload["euc"]
	}
	return model.Opportunity{
		DealType:        Enum(payload["deal_type"], model.DealTypeValues, model.DefaultDealType),
		Supplier:        String(payload["supplier"]),
		Product:         String(payload["product"]),
		Customer:        String(payload["customer"]),
		QtyNeeded:       OptionalNumber(payload["qty_needed"]),
		SupplierPrice:   TolerantPrice(payload["supplier_price"]),
		TargetSellPrice: TolerantPrice(payload["target_sell_price"]),
		Incoterms:       String(payload["incoterms"]),
		CountryOfOrigin: String(payload["country_of_origin"]),
		Intermediary:    String(payload["intermediary"]),
		DealContacts:    String(payload["deal_contacts"]),
		Stage:           Enum(payload["stage"], model.StageValues, model.DefaultStage),
		Status:          Enum(payload["status"], model.StatusValues, model.DefaultStatus),
		Confidence:      Confidence(payload["confidence"]),
		Owner:           String(payload["owner"]),
		Notes:           String(payload["notes"]),
		EucText:         String(eucText),
		NextAction:      String(payload["next_action"]),
	}
}
