package models

// TranslationRequest is the JSON body of POST /api/v1/translate
type TranslationRequest struct {
	Text string `json:"text"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Time      string `json:"time"`
	OCREngine string `json:"ocr_engine"`
	Storage   string `json:"storage"`
}
