package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Defaults for the Gemini REST API.
const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-3-flash-preview"
)

// Prompt is the fixed request sent for every quote.
const Prompt = "Generate a short, inspiring quote (20-30 words) for college seniors " +
	"recognizing their contributions and mentorship to juniors. " +
	"Focus on the value of sharing knowledge and building community."

// Messages shown instead of a quote.
const (
	FallbackKey     = "Please select a valid Gemini API key to get motivational quotes."
	FallbackEmpty   = "No quote generated."
	FallbackFailure = "Failed to generate quote. Please try again later."
)

// GenerationConfig holds the sampling parameters.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
}

// DefaultGenerationConfig keeps quotes short and varied.
var DefaultGenerationConfig = GenerationConfig{
	Temperature:     0.9,
	MaxOutputTokens: 50,
	TopK:            40,
	TopP:            0.95,
}

var errAPIKey = errors.New("gemini api key missing or rejected")

// Fetcher asks a text-generation model for a motivational quote.
type Fetcher struct {
	httpClient *http.Client
	apiKey     string
	model      string
	endpoint   string
	config     GenerationConfig
}

// NewFetcher returns a Fetcher. Empty model and endpoint use the defaults.
func NewFetcher(httpClient *http.Client, apiKey, model, endpoint string) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if model == "" {
		model = DefaultModel
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Fetcher{
		httpClient: httpClient,
		apiKey:     apiKey,
		model:      model,
		endpoint:   strings.TrimRight(endpoint, "/"),
		config:     DefaultGenerationConfig,
	}
}

// Quote returns a generated quote, or a fallback message on any failure.
// It never returns an error.
func (f *Fetcher) Quote(ctx context.Context) string {
	text, err := f.generate(ctx)
	switch {
	case errors.Is(err, errAPIKey):
		slog.Warn("quote unavailable", "error", err)
		return FallbackKey
	case err != nil:
		slog.Error("failed to generate quote", "error", err)
		return FallbackFailure
	case text == "":
		return FallbackEmpty
	default:
		return text
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (f *Fetcher) generate(ctx context.Context) (string, error) {
	if f == nil {
		return "", errors.New("quote fetcher is not configured")
	}
	if strings.TrimSpace(f.apiKey) == "" {
		return "", errAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: Prompt}}}},
		GenerationConfig: f.config,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", f.endpoint, f.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", f.apiKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		var apiErr apiError
		_ = json.Unmarshal(data, &apiErr)
		msg := apiErr.Error.Message
		if strings.Contains(msg, "API key not valid") || strings.Contains(msg, "Requested entity was not found.") ||
			resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: status %d: %s", errAPIKey, resp.StatusCode, msg)
		}
		return "", fmt.Errorf("gemini error: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
