// internal/pipeline/ai-conversation/llm-answer/handler.go
package llmanswer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "voucherbot/internal/common/errors"
)

const (
	StageName = "llm-answer"
)

var (
	ErrMissingAPIKey = errors.New("LLM API key is not configured")
	ErrNoChoices     = errors.New("LLM returned no choices")
)

// Logger interface definition
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Handler struct {
	config *Config
	client *http.Client
	logger Logger
}

func NewHandler(config *Config, log Logger) *Handler {
	return &Handler{
		config: config,
		// bounded by the request context
		client: &http.Client{},
		logger: log.With(map[string]interface{}{
			"stage": StageName,
			"model": config.Model,
		}),
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if h.config.APIKey == "" {
		return nil, apperrors.NewLLMSynthesisFailedError(ErrMissingAPIKey)
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: h.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: h.config.SystemPrompt},
			{Role: "user", Content: input.Prompt},
		},
		MaxTokens:   h.config.MaxTokens,
		Temperature: h.config.Temperature,
	})
	if err != nil {
		return nil, apperrors.NewLLMSynthesisFailedError(err)
	}

	url := strings.TrimRight(h.config.BaseURL, "/") + "/chat/completions"

	var apiResponse *chatResponse
	var lastErr error

	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			h.logger.Warn("retrying LLM request", map[string]interface{}{
				"attempt": attempt,
				"error":   lastErr.Error(),
			})
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, apperrors.NewLLMTimeoutError(ctx.Err())
			}
		}

		apiResponse, lastErr = h.post(ctx, url, body)
		if lastErr == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, apperrors.NewLLMTimeoutError(lastErr)
		}
	}

	if lastErr != nil {
		return nil, apperrors.NewLLMSynthesisFailedError(lastErr)
	}

	if len(apiResponse.Choices) == 0 {
		return nil, apperrors.NewLLMSynthesisFailedError(ErrNoChoices)
	}

	output := &Output{
		Text:        strings.TrimSpace(apiResponse.Choices[0].Message.Content),
		Model:       apiResponse.Model,
		TotalTokens: apiResponse.Usage.TotalTokens,
	}

	h.logger.Info("LLM answer received", map[string]interface{}{
		"totalTokens":  output.TotalTokens,
		"finishReason": apiResponse.Choices[0].FinishReason,
	})

	return output, nil
}

func (h *Handler) post(ctx context.Context, url string, body []byte) (*chatResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.config.APIKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	return &out, nil
}

// Execute sends one chat completion: the configured system instruction
// plus input.Prompt. It returns LLM_TIMEOUT when the deadline passes and
// LLM_SYNTHESIS_FAILED for every other failure.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
