// Package genai is the client for the hosted text-generation endpoint
// (Gemini generateContent wire format).
//
// Complete never returns a Go error: every outcome, including transport
// failures, is folded into the typed domain.CompletionResult so callers
// branch on one value instead of mixing error checks with result sniffing.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Ath-12/ai-planner-final/internal/domain"
)

// Sampling is the fixed generation configuration passed through unchanged on
// every request.
type Sampling struct {
	Temperature     float64
	MaxOutputTokens int
}

// DefaultSampling matches the planner's production settings.
var DefaultSampling = Sampling{Temperature: 0.8, MaxOutputTokens: 4096}

// Client calls the completion endpoint. One attempt per call, no retries:
// the provider applies its own rate limits and silent retries would mask them.
type Client struct {
	apiKey   string
	baseURL  string
	model    string
	sampling Sampling
	client   *http.Client
	log      *slog.Logger
}

// New constructs a Client for the given model and credentials.
func New(apiKey, baseURL, model string, sampling Sampling, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		model:    model,
		sampling: sampling,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

// --- wire types -------------------------------------------------------------

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// finishStop is the provider's natural-completion finish signal; anything
// else with content present counts as truncation.
const finishStop = "STOP"

// Complete sends the prompt and classifies the provider's answer.
// Outcome precedence: blocked, then truncated, then clean. Transport and
// parse failures become OutcomeFailed with the error's class and message.
func (c *Client) Complete(ctx context.Context, prompt string) domain.CompletionResult {
	resp, err := c.generate(ctx, prompt)
	if err != nil {
		c.log.Error("completion request failed", "model", c.model, "error", err)
		return domain.CompletionResult{
			Outcome:    domain.OutcomeFailed,
			ErrClass:   fmt.Sprintf("%T", err),
			ErrMessage: err.Error(),
		}
	}

	text, finish := firstCandidate(resp)
	if text == "" {
		reason := resp.PromptFeedback.BlockReason
		if reason == "" && finish != "" && finish != finishStop {
			reason = finish
		}
		if reason == "" {
			reason = "unknown"
		}
		c.log.Warn("completion blocked", "model", c.model, "reason", reason)
		return domain.CompletionResult{Outcome: domain.OutcomeBlocked, BlockReason: reason}
	}

	if finish != finishStop {
		c.log.Warn("completion truncated", "model", c.model, "finish_reason", finish)
		return domain.CompletionResult{Outcome: domain.OutcomeTruncated, Raw: text, Truncated: true}
	}

	return domain.CompletionResult{Outcome: domain.OutcomeClean, Raw: text}
}

// generate performs the single HTTP round trip.
func (c *Client) generate(ctx context.Context, prompt string) (*generateResponse, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.sampling.Temperature,
			MaxOutputTokens: c.sampling.MaxOutputTokens,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion endpoint status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// firstCandidate joins the text parts of the first candidate and returns its
// finish reason. ("", "") means the provider returned no candidates at all.
func firstCandidate(resp *generateResponse) (text, finish string) {
	if len(resp.Candidates) == 0 {
		return "", ""
	}
	cand := resp.Candidates[0]
	var b strings.Builder
	for _, p := range cand.Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String()), cand.FinishReason
}
