package models

// DirectionError explains why one translation direction failed
type DirectionError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// DirectionResult is the outcome of one fixed language pair
type DirectionResult struct {
	Direction string          `json:"direction"`
	Label     string          `json:"label"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Text      string          `json:"text,omitempty"`
	Error     *DirectionError `json:"error,omitempty"`
}

// OK reports whether the direction produced a translation
func (r DirectionResult) OK() bool {
	return r.Error == nil
}

// TranslationResponse carries both directions. Message is set when the
// request could not be translated at all.
type TranslationResponse struct {
	Source    string            `json:"source"`
	Provider  string            `json:"provider"`
	Results   []DirectionResult `json:"results"`
	Message   string            `json:"message,omitempty"`
	Timestamp string            `json:"timestamp"`
}
