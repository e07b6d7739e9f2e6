package model

// Document is a binary attachment owned by exactly one Opportunity. The row
// is removed by the backend's FK cascade when the parent is deleted, so a
// Document never outlives its Opportunity.
type Document struct {
	ID            int64  `json:"id"`
	OpportunityID int64  `json:"opportunity_id"`
	OriginalName  string `json:"original_name"`
	MimeType      string `json:"mime_type"`
	SizeBytes     int64  `json:"size_bytes"`
	UploadedBy    string `json:"uploaded_by"`
	CreatedAt     string `json:"created_at"`

	// Data is only populated on download; list responses carry metadata only.
	Data []byte `json:"-"`
}
