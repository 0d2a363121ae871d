package analyzer

// DefaultTopK is the number of ranked words shown and charted.
const DefaultTopK = 10

// AnalysisOptions configures a text summary
type AnalysisOptions struct {
	TopK int

	// Reference text for accuracy scoring; empty disables it.
	ExpectedText string
}

// DefaultOptions returns default analysis options
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		TopK: DefaultTopK,
	}
}

// WithExpectedText returns options with accuracy scoring against expectedText
func (opts AnalysisOptions) WithExpectedText(expectedText string) AnalysisOptions {
	opts.ExpectedText = expectedText
	return opts
}

// WithTopK overrides the number of ranked words; non-positive values keep the default.
func (opts AnalysisOptions) WithTopK(k int) AnalysisOptions {
	if k > 0 {
		opts.TopK = k
	}
	return opts
}
