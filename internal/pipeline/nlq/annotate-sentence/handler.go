// internal/pipeline/nlq/annotate-sentence/handler.go
package annotatesentence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "voucherbot/internal/common/errors"
	commonhttp "voucherbot/internal/common/http"
	"voucherbot/internal/common/logger"
	"voucherbot/internal/models"
)

const (
	StageName = "annotate-sentence"
)

type Handler struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: commonhttp.NewClient(0),
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if h.config.Provider != ProviderRemote {
		return &Output{Sentence: AnnotateRules(input.Text), Provider: ProviderRule}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	url := strings.TrimRight(h.config.BaseURL, "/") + "/annotate"
	var apiResponse remoteResponse
	if err := h.client.PostJSON(ctx, url, nil, map[string]string{"text": input.Text}, &apiResponse); err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewIntentAPITimeoutError(err)
		}
		return nil, apperrors.NewIntentParsingFailedError(err)
	}

	for _, tok := range apiResponse.Tokens {
		if tok.Text == "" {
			return nil, apperrors.NewIntentParsingFailedError(fmt.Errorf("annotator returned an empty token"))
		}
	}

	h.logger.Debug("sentence annotated", map[string]interface{}{
		"tokenCount":  len(apiResponse.Tokens),
		"entityCount": len(apiResponse.Entities),
	})

	return &Output{
		Sentence: models.Sentence{
			Tokens:   apiResponse.Tokens,
			Entities: apiResponse.Entities,
		},
		Provider: ProviderRemote,
	}, nil
}

// Execute annotates input.Text with the configured provider. Remote
// failures are returned as INTENT_PARSING_FAILED or INTENT_API_TIMEOUT; the
// caller decides whether to fall back to AnnotateRules.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
