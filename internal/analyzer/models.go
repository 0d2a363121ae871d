package analyzer

// WordCount is one row of the ranked frequency table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TextSummary is everything derived from one OCR pass. It is recomputed per request.
type TextSummary struct {
	Text      string      `json:"text"`
	LineCount int         `json:"lines_count"`
	Tokens    []string    `json:"words"`
	TopWords  []WordCount `json:"top_words"`
	Accuracy  *Accuracy   `json:"accuracy,omitempty"`
}

// Accuracy compares recognized text to a caller-provided reference.
type Accuracy struct {
	ExpectedText string  `json:"expected_text"`
	WER          float64 `json:"word_error_rate"`
	CER          float64 `json:"character_error_rate"`
	EditDistance int     `json:"edit_distance"`
	MatchScore   float64 `json:"match_score"`
}
