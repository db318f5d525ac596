// Package fraud adapts an OpenAI-compatible chat completions endpoint
// into the fraud evaluation port used by the report workflow.
package fraud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/paymint/paymint/internal/domain"
)

const systemPrompt = `You are a fraud analyst for a banking application.
You are given a transaction summary and the sender's own description of why
they believe the transaction is fraudulent. Decide whether the transaction
is fraudulent and explain your reasoning.

Respond with a JSON object and nothing else:
{"fraudulent": <bool>, "reason": "<one or two sentences>"}`

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Evaluator implements usecase.FraudEvaluator against a chat completions API.
type Evaluator struct {
	baseURL string
	apiKey  string
	model   string
	client  HTTPClient
	logger  zerolog.Logger
}

// NewEvaluator creates an Evaluator. baseURL is the API root, without the
// /chat/completions suffix.
func NewEvaluator(baseURL, apiKey, model string, client HTTPClient, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  client,
		logger:  logger,
	}
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type verdictPayload struct {
	Fraudulent *bool   `json:"fraudulent"`
	Reason     *string `json:"reason"`
}

// Evaluate sends one analysis request and parses the model's verdict.
// The caller bounds the call through ctx.
func (e *Evaluator) Evaluate(ctx context.Context, transactionSummary, userReport string) (*domain.FraudVerdict, error) {
	userPrompt := fmt.Sprintf("Transaction: %s\nUser report: %s", transactionSummary, userReport)

	body, err := json.Marshal(chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call completions API: %w", err)
	}
	defer resp.Body.Close()

	// Cap the body read; a verdict is a few hundred bytes at most.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		e.logger.Warn().
			Int("status", resp.StatusCode).
			Msg("fraud evaluation request rejected")

		return nil, fmt.Errorf("completions API returned status %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("completions API returned no choices")
	}

	return parseVerdict(cr.Choices[0].Message.Content)
}

// parseVerdict decodes the model's JSON verdict. Both fields are required;
// a verdict missing either one is treated as an evaluation failure rather
// than defaulted, so a malformed model response never clears a report.
func parseVerdict(content string) (*domain.FraudVerdict, error) {
	var p verdictPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &p); err != nil {
		return nil, fmt.Errorf("decode verdict: %w", err)
	}
	if p.Fraudulent == nil || p.Reason == nil {
		return nil, fmt.Errorf("verdict missing required fields")
	}

	return &domain.FraudVerdict{
		Fraudulent: *p.Fraudulent,
		Reason:     *p.Reason,
	}, nil
}
