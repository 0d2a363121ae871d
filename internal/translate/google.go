package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultGoogleURL is the public endpoint used by browser extensions.
const DefaultGoogleURL = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator calls the keyless gtx endpoint.
type GoogleTranslator struct {
	baseURL string
	client  *HTTPClient
}

func NewGoogleTranslator(baseURL string, client *HTTPClient) *GoogleTranslator {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultGoogleURL
	}
	return &GoogleTranslator{baseURL: baseURL, client: client}
}

func (g *GoogleTranslator) Name() string {
	return "google"
}

func (g *GoogleTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", from)
	query.Set("tl", to)
	query.Set("dt", "t")
	query.Set("q", text)
	target := g.baseURL + "?" + query.Encode()

	body, err := g.client.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "go-ocr-lens/1.0")
		return req, nil
	})
	if err != nil {
		return "", classify(g.Name(), err)
	}

	translated, err := parseGoogleResponse(body)
	if err != nil {
		return "", classify(g.Name(), err)
	}
	return translated, nil
}

// parseGoogleResponse concatenates the translated segments of a gtx reply.
// The payload is positional: [[["<translated>","<source>",...],...],...].
func parseGoogleResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode translation response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation response")
	}
	if string(payload[0]) == "null" {
		return "", nil
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("decode translation segments: %w", err)
	}

	var sb strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		if s, ok := segment[0].(string); ok {
			sb.WriteString(s)
		}
	}
	return sb.String(), nil
}
