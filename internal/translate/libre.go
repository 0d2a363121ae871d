package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// LibreTranslator talks to a LibreTranslate compatible server.
type LibreTranslator struct {
	baseURL string
	apiKey  string
	client  *HTTPClient
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

func NewLibreTranslator(baseURL, apiKey string, client *HTTPClient) *LibreTranslator {
	return &LibreTranslator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

func (l *LibreTranslator) Name() string {
	return "libre"
}

func (l *LibreTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	payload, err := json.Marshal(libreRequest{
		Q:      text,
		Source: from,
		Target: to,
		Format: "text",
		APIKey: l.apiKey,
	})
	if err != nil {
		return "", classify(l.Name(), fmt.Errorf("encode request: %w", err))
	}

	body, err := l.client.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/translate", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return "", classify(l.Name(), err)
	}

	var resp libreResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", classify(l.Name(), fmt.Errorf("decode translation response: %w", err))
	}
	if resp.Error != "" {
		return "", classify(l.Name(), fmt.Errorf("translation rejected: %s", resp.Error))
	}
	return resp.TranslatedText, nil
}
