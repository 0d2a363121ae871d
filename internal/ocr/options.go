package ocr

// InputOption mutates an OCR input.
type InputOption func(*Input)

// WithLanguages sets language hints on the OCR input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithVariables sets engine-specific variables on the input.
func WithVariables(vars map[string]string) InputOption {
	return func(in *Input) {
		if len(vars) == 0 {
			in.Variables = nil
			return
		}
		in.Variables = make(map[string]string, len(vars))
		for k, v := range vars {
			in.Variables[k] = v
		}
	}
}

// NewInput builds an Input for the given image bytes.
func NewInput(id string, image []byte, opts ...InputOption) Input {
	in := Input{ID: id, Image: image}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}
