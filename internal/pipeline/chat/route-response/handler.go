// internal/pipeline/chat/route-response/handler.go
package routeresponse

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "voucherbot/internal/common/errors"
	"voucherbot/internal/common/logger"
	"voucherbot/internal/common/metrics"
	"voucherbot/internal/models"
	llmanswer "voucherbot/internal/pipeline/ai-conversation/llm-answer"
	queryvouchers "voucherbot/internal/pipeline/data-access/query-vouchers"
	annotatesentence "voucherbot/internal/pipeline/nlq/annotate-sentence"
	buildquery "voucherbot/internal/pipeline/nlq/build-query"
	classifyintent "voucherbot/internal/pipeline/nlq/classify-intent"
	formatresult "voucherbot/internal/pipeline/nlq/format-result"
	resolvefield "voucherbot/internal/pipeline/nlq/resolve-field"
)

const (
	StageName = "route-response"

	dbErrorPrefix = "⚠️ DB error: "
	aiErrorPrefix = "⚠️ Error with AI: "
)

// ErrNoStorage is the cause reported when the router was built without a
// database and a message needs one.
var ErrNoStorage = errors.New("no database configured")

type Annotator interface {
	Execute(ctx context.Context, input *annotatesentence.Input) (*annotatesentence.Output, error)
}

type FieldResolver interface {
	Resolve(text string) (string, bool)
}

type Classifier interface {
	Execute(input *classifyintent.Input) *classifyintent.Output
}

type QueryBuilder interface {
	Execute(input *buildquery.Input) (*buildquery.Output, error)
}

type Storage interface {
	Execute(ctx context.Context, input *queryvouchers.Input) (*queryvouchers.Output, error)
}

type Formatter interface {
	Execute(input *formatresult.Input) *formatresult.Output
}

type LLM interface {
	Execute(ctx context.Context, input *llmanswer.Input) (*llmanswer.Output, error)
}

// Dependencies are built once at startup and shared by every request.
type Dependencies struct {
	Annotator  Annotator
	Resolver   FieldResolver
	Classifier Classifier
	Builder    QueryBuilder
	Storage    Storage
	Formatter  Formatter
	LLM        LLM
}

type Handler struct {
	config     *Config
	deps       Dependencies
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, deps Dependencies, log logger.Logger) *Handler {
	log = log.With(map[string]interface{}{
		"stage": StageName,
	})
	return &Handler{
		config:     config,
		deps:       deps,
		errHandler: apperrors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) *Output {
	start := time.Now()
	text := strings.ToLower(strings.TrimSpace(input.Message))

	route := RouteQuery
	if h.wantsLLM(text) {
		route = RouteLLM
	}

	metrics.ChatRequestsActive.Inc()
	defer metrics.ChatRequestsActive.Dec()
	metrics.ChatRequestsTotal.WithLabelValues(string(route)).Inc()

	var output *Output
	if route == RouteLLM {
		output = h.answerWithLLM(ctx, text)
	} else {
		output = h.answerWithQuery(ctx, text)
	}

	duration := time.Since(start)
	metrics.ChatRequestDuration.WithLabelValues(string(route)).Observe(duration.Seconds())
	if output.ErrorCode != "" {
		metrics.ChatRequestFailures.WithLabelValues(string(route), output.ErrorCode).Inc()
	}

	h.logger.Info("message answered", map[string]interface{}{
		"route":      string(route),
		"durationMs": duration.Milliseconds(),
		"degraded":   output.ErrorCode != "",
	})

	return output
}

// Execute answers one chat message. Storage and LLM failures are turned
// into warning replies, so Execute never fails.
func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	return h.execute(ctx, input)
}

func (h *Handler) wantsLLM(text string) bool {
	for _, kw := range h.config.LLMKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// BuildPrompt wraps a question in the instruction sent to the LLM.
func BuildPrompt(text string) string {
	return "User asked:\n" +
		text + "\n\n" +
		"if it is a complex question, provide a detailed answer.\n" +
		"If it is a simple question, provide a short answer in one line.\n" +
		"You may refer to fields like status, submittedby, amount, etc."
}

func (h *Handler) answerWithLLM(ctx context.Context, text string) *Output {
	start := time.Now()
	out, err := h.deps.LLM.Execute(ctx, &llmanswer.Input{Prompt: BuildPrompt(text)})
	observeStage(llmanswer.StageName, start)
	if err != nil {
		stdErr := h.errHandler.Handle(string(RouteLLM), err)
		return &Output{
			Response:  aiErrorPrefix + apperrors.Details(stdErr),
			Route:     RouteLLM,
			ErrorCode: string(stdErr.Code),
		}
	}
	return &Output{Response: out.Text, Route: RouteLLM}
}

// Plan runs the query route up to, but not including, storage. It is
// what a dry run prints.
func (h *Handler) Plan(ctx context.Context, message string) (*Plan, error) {
	return h.plan(ctx, strings.ToLower(strings.TrimSpace(message)))
}

func (h *Handler) plan(ctx context.Context, text string) (*Plan, error) {
	start := time.Now()
	field, _ := h.deps.Resolver.Resolve(text)
	observeStage(resolvefield.StageName, start)

	start = time.Now()
	sentence, err := h.deps.Annotator.Execute(ctx, &annotatesentence.Input{Text: text})
	observeStage(annotatesentence.StageName, start)
	if err != nil {
		h.logger.Warn("annotator failed, using rule-based annotation", map[string]interface{}{
			"errorCode": string(apperrors.CodeOf(err)),
			"error":     err.Error(),
		})
		sentence = &annotatesentence.Output{
			Sentence: annotatesentence.AnnotateRules(text),
			Provider: annotatesentence.ProviderRule,
		}
	}

	start = time.Now()
	intent := h.deps.Classifier.Execute(&classifyintent.Input{Text: text, Sentence: sentence.Sentence})
	observeStage(classifyintent.StageName, start)

	plan := &Plan{
		Text:     text,
		Field:    field,
		Provider: sentence.Provider,
		Intent:   intent.Intent,
	}

	start = time.Now()
	built, err := h.deps.Builder.Execute(&buildquery.Input{Intent: intent.Intent})
	observeStage(buildquery.StageName, start)
	if err != nil {
		kind := models.KindFor(intent.Intent.IsAggregate())
		return plan, apperrors.NewQueryExecutionFailedError(string(kind), err)
	}
	plan.Query = built

	return plan, nil
}

func (h *Handler) answerWithQuery(ctx context.Context, text string) *Output {
	plan, err := h.plan(ctx, text)
	if err != nil {
		return h.dbError(err)
	}
	if h.deps.Storage == nil {
		return h.dbError(apperrors.NewDatabaseConnectionFailedError(ErrNoStorage))
	}

	stored, err := h.deps.Storage.Execute(ctx, &queryvouchers.Input{
		Query:       plan.Query.Query,
		Params:      plan.Query.Params,
		IsAggregate: plan.Query.IsAggregate,
	})
	if err != nil {
		return h.dbError(err)
	}

	start := time.Now()
	formatted := h.deps.Formatter.Execute(&formatresult.Input{
		Result:    stored.Result,
		Field:     plan.Field,
		VoucherID: plan.Query.VoucherID,
	})
	observeStage(formatresult.StageName, start)

	return &Output{Response: formatted.Text, Route: RouteQuery}
}

func (h *Handler) dbError(err error) *Output {
	stdErr := h.errHandler.Handle(string(RouteQuery), err)
	return &Output{
		Response:  dbErrorPrefix + apperrors.Details(stdErr),
		Route:     RouteQuery,
		ErrorCode: string(stdErr.Code),
	}
}

// observeStage records one stage timing. Storage records its own.
func observeStage(stage string, start time.Time) {
	metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
