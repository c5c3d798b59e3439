// internal/bootstrap/pipeline.go
package bootstrap

import (
	"database/sql"

	"voucherbot/internal/common/config"
	apperrors "voucherbot/internal/common/errors"
	"voucherbot/internal/common/logger"
	llmanswer "voucherbot/internal/pipeline/ai-conversation/llm-answer"
	routeresponse "voucherbot/internal/pipeline/chat/route-response"
	queryvouchers "voucherbot/internal/pipeline/data-access/query-vouchers"
	annotatesentence "voucherbot/internal/pipeline/nlq/annotate-sentence"
	buildquery "voucherbot/internal/pipeline/nlq/build-query"
	classifyintent "voucherbot/internal/pipeline/nlq/classify-intent"
	formatresult "voucherbot/internal/pipeline/nlq/format-result"
	resolvefield "voucherbot/internal/pipeline/nlq/resolve-field"
	"voucherbot/pkg/synonyms"
)

// Storage holds the optional storage dependencies of the router. With a nil
// DB, Plan still works and query-route messages get a DB error reply.
type Storage struct {
	DB    *sql.DB
	Cache queryvouchers.Cache
}

// NewRouter builds every pipeline stage from cfg and wires them into the
// response router.
func NewRouter(cfg *config.Config, storage Storage, log logger.Logger) (*routeresponse.Handler, error) {
	table, err := synonyms.Load(cfg.Chatbot.SynonymsPath)
	if err != nil {
		return nil, apperrors.NewSynonymTableInvalidError(err.Error())
	}

	resolver := resolvefield.NewHandler(&resolvefield.Config{Mode: cfg.Chatbot.MatchMode}, table)

	annotator := annotatesentence.NewHandler(&annotatesentence.Config{
		Provider: cfg.APIs.Annotator.Provider,
		BaseURL:  cfg.APIs.Annotator.BaseURL,
		Timeout:  config.GetDuration(cfg.APIs.Annotator.Timeout),
	}, log)

	classifier := classifyintent.NewHandler(&classifyintent.Config{
		FallbackColumn:     cfg.Chatbot.FallbackColumn,
		MinVoucherIDLength: classifyintent.LoadConfig().MinVoucherIDLength,
	}, resolver, log)

	builder, err := buildquery.NewHandler(&buildquery.Config{
		Table:  cfg.Chatbot.Table,
		Driver: cfg.Database.Driver,
	}, log)
	if err != nil {
		return nil, apperrors.NewInvalidConfigurationError(err)
	}

	var store routeresponse.Storage
	if storage.DB != nil {
		store = queryvouchers.NewHandler(&queryvouchers.Config{
			Timeout:      config.GetDuration(cfg.Chatbot.QueryTimeout),
			CacheEnabled: cfg.Chatbot.CacheEnabled,
			CacheTTL:     config.GetDuration(cfg.Chatbot.CacheTTL),
		}, storage.DB, storage.Cache, log)
	}

	llm := llmanswer.NewHandler(&llmanswer.Config{
		BaseURL:      cfg.APIs.Groq.BaseURL,
		APIKey:       cfg.APIs.Groq.APIKey,
		Model:        cfg.APIs.Groq.Model,
		SystemPrompt: cfg.APIs.Groq.SystemPrompt,
		MaxTokens:    cfg.APIs.Groq.MaxTokens,
		Temperature:  cfg.APIs.Groq.Temperature,
		Timeout:      config.GetDuration(cfg.APIs.Groq.Timeout),
		MaxRetries:   cfg.APIs.Groq.MaxRetries,
	}, &llmLoggerAdapter{log})

	formatter := formatresult.NewHandler(&formatresult.Config{MaxRows: cfg.Chatbot.MaxDisplayRows}, log)

	log.Info("pipeline ready", map[string]interface{}{
		"synonyms":  table.Len(),
		"matchMode": cfg.Chatbot.MatchMode,
		"annotator": cfg.APIs.Annotator.Provider,
		"driver":    cfg.Database.Driver,
		"cache":     cfg.Chatbot.CacheEnabled && storage.Cache != nil,
	})

	return routeresponse.NewHandler(routeresponse.LoadConfig(), routeresponse.Dependencies{
		Annotator:  annotator,
		Resolver:   resolver,
		Classifier: classifier,
		Builder:    builder,
		Storage:    store,
		Formatter:  formatter,
		LLM:        llm,
	}, log), nil
}

type llmLoggerAdapter struct {
	logger.Logger
}

func (a *llmLoggerAdapter) With(fields map[string]interface{}) llmanswer.Logger {
	return &llmLoggerAdapter{a.Logger.With(fields)}
}
