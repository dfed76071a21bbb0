package gemini

import (
	"encoding/json"
	"net/http"

	"github.com/tradegate/hs-suggest/internal/retry"
)

// GeminiClient is a minimal client for the Gemini generateContent API.
type GeminiClient struct {
	APIKey      string
	Model       string
	Temperature float64
	BaseURL     string
	HTTPClient  *http.Client
	RetryConfig retry.Config
}

// Part is one fragment of request or response content.
type Part struct {
	Text string `json:"text"`
}

// Content groups parts under an optional role.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig controls sampling.
type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

// GenerateContentRequest is the request body for generateContent.
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one generated reply.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// UsageMetadata reports token counts for the call.
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// GenerateContentResponse is the response body for generateContent.
type GenerateContentResponse struct {
	Candidates    []Candidate    `json:"candidates"`
	UsageMetadata *UsageMetadata `json:"usageMetadata,omitempty"`
}

// GenerateContentError wraps API failures with the raw response body for
// error logging.
type GenerateContentError struct {
	Message    string          `json:"message"`
	StatusCode int             `json:"status_code,omitempty"`
	RawBody    json.RawMessage `json:"raw_body,omitempty"`
}

func (e *GenerateContentError) Error() string {
	return e.Message
}
