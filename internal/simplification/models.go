package simplification

import "time"

// Request is the body accepted by POST /simplify.
type Request struct {
	DocumentText *string `json:"document_text"`
}

// Response is returned on a successful simplification.
type Response struct {
	SimplifiedDocument string `json:"simplified_document"`
}

// ErrorResponse is returned for rejected or failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Record is the write-once original/simplified pair kept in the document store.
type Record struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	OriginalText   string    `json:"original_text" bson:"original_text"`
	SimplifiedText string    `json:"simplified_text" bson:"simplified_text"`
	Model          string    `json:"model,omitempty" bson:"model,omitempty"`
	Device         string    `json:"device,omitempty" bson:"device,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
