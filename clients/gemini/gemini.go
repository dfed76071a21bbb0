// Package gemini is a minimal HTTP client for the Gemini generateContent API
// with retry logic and token-usage cost accounting.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tradegate/hs-suggest/internal/money"
	"github.com/tradegate/hs-suggest/internal/retry"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Published prices per one million tokens.
const (
	inputPricePerMillion  = 0.10
	outputPricePerMillion = 0.40
)

// NewClient creates a GeminiClient with temperature zero so repeated calls
// with the same prompt are deterministic.
func NewClient(apiKey string, model string) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}

	return &GeminiClient{
		APIKey:      apiKey,
		Model:       model,
		Temperature: 0.0,
		BaseURL:     geminiBaseURL,
		HTTPClient:  http.DefaultClient,
		RetryConfig: retry.DefaultConfig(),
	}
}

// GenerateContent sends a single-turn prompt and returns the parsed response,
// retrying on rate limits and transient server errors.
func (c *GeminiClient) GenerateContent(ctx context.Context, req GenerateContentRequest) (*GenerateContentResponse, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, c.Model)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var body []byte
	err = retry.Do(ctx, c.RetryConfig, "gemini", func(attempt int) (bool, error) {
		httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if reqErr != nil {
			return false, reqErr
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-goog-api-key", c.APIKey)

		resp, doErr := c.HTTPClient.Do(httpReq)
		if doErr != nil {
			// Network-level failures are worth retrying.
			return true, doErr
		}
		defer resp.Body.Close()

		body, reqErr = io.ReadAll(resp.Body)
		if reqErr != nil {
			return true, reqErr
		}

		if resp.StatusCode != http.StatusOK {
			apiErr := &GenerateContentError{
				Message:    fmt.Sprintf("gemini API returned status %d", resp.StatusCode),
				StatusCode: resp.StatusCode,
				RawBody:    json.RawMessage(body),
			}
			retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
			return retryable, apiErr
		}

		return false, nil
	})
	if err != nil {
		return nil, err
	}

	var genResp GenerateContentResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, &GenerateContentError{
			Message: fmt.Sprintf("failed to parse generateContent response: %v", err),
			RawBody: json.RawMessage(body),
		}
	}

	return &genResp, nil
}

// Invoke sends a plain-text prompt and returns the reply text plus the cost
// of the call derived from reported token usage.
func (c *GeminiClient) Invoke(ctx context.Context, prompt string) (string, money.USD, error) {
	req := GenerateContentRequest{
		Contents: []Content{
			{Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: &GenerationConfig{Temperature: c.Temperature},
	}

	resp, err := c.GenerateContent(ctx, req)
	if err != nil {
		return "", money.Zero(), err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", money.Zero(), fmt.Errorf("no response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	return strings.TrimSpace(sb.String()), costFromUsage(resp.UsageMetadata), nil
}

// costFromUsage prices the call from token counts. Missing usage metadata
// counts as free rather than an error.
func costFromUsage(usage *UsageMetadata) money.USD {
	if usage == nil {
		return money.Zero()
	}

	cost := float64(usage.PromptTokenCount)/1_000_000*inputPricePerMillion +
		float64(usage.CandidatesTokenCount)/1_000_000*outputPricePerMillion
	return money.FromFloat(cost)
}
