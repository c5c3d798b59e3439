// internal/pipeline/nlq/classify-intent/models.go
package classifyintent

import "voucherbot/internal/models"

type Input struct {
	// Text is the full (normalized) user message, used for field resolution.
	Text     string          `json:"text"`
	Sentence models.Sentence `json:"sentence"`
}

type Output struct {
	Intent models.ParsedIntent `json:"intent"`
}
