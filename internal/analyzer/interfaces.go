package analyzer

// TextAnalyzer derives line, token and frequency statistics from OCR output
type TextAnalyzer interface {
	Summarize(text string, options AnalysisOptions) TextSummary
}

type textAnalyzer struct{}

// NewTextAnalyzer creates the default analyzer
func NewTextAnalyzer() TextAnalyzer {
	return &textAnalyzer{}
}

func (a *textAnalyzer) Summarize(text string, options AnalysisOptions) TextSummary {
	if options.TopK <= 0 {
		options.TopK = DefaultTopK
	}

	tokens := Tokenize(text)
	summary := TextSummary{
		Text:      text,
		LineCount: CountLines(text),
		Tokens:    tokens,
		TopWords:  TopWords(tokens, options.TopK),
	}

	if options.ExpectedText != "" {
		acc := CompareText(options.ExpectedText, text)
		summary.Accuracy = &acc
	}
	return summary
}
