// internal/pipeline/nlq/classify-intent/handler.go
package classifyintent

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"voucherbot/internal/common/logger"
	"voucherbot/internal/models"
)

const (
	StageName = "classify-intent"
)

// FieldResolver is the subset of the resolve-field stage used here.
type FieldResolver interface {
	Resolve(text string) (string, bool)
}

var aggregateKeywords = map[string]models.AggregateKind{
	"count":    models.AggregateCount,
	"how many": models.AggregateCount,
	"sum":      models.AggregateSum,
	"total":    models.AggregateSum,
	"amount":   models.AggregateSum,
	"claim":    models.AggregateSum,
	"max":      models.AggregateMax,
	"highest":  models.AggregateMax,
	"largest":  models.AggregateMax,
	"min":      models.AggregateMin,
	"lowest":   models.AggregateMin,
	"smallest": models.AggregateMin,
	"avg":      models.AggregateAvg,
	"average":  models.AggregateAvg,
}

// dateLayouts are tried in order against a cleaned DATE entity.
var dateLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2006-01-02",
}

var ordinalSuffix = regexp.MustCompile(`(\d)(?:st|nd|rd|th)\b`)

type Handler struct {
	config   *Config
	resolver FieldResolver
	logger   logger.Logger
}

func NewHandler(config *Config, resolver FieldResolver, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		resolver: resolver,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// Execute never fails: an unrecognized question yields no aggregate and no
// filters.
func (h *Handler) Execute(input *Input) *Output {
	tokens := input.Sentence.TokenTexts()

	intent := models.ParsedIntent{
		Aggregate: h.detectAggregate(tokens),
		Filters:   []models.Filter{},
	}

	if intent.Aggregate.NeedsColumn() {
		intent.TargetColumn = h.config.FallbackColumn
		if column, ok := h.resolver.Resolve(input.Text); ok {
			intent.TargetColumn = column
		}
	}

	if id, ok := h.detectVoucherID(tokens); ok {
		intent.VoucherID = id
		intent.Filters = append(intent.Filters, models.Filter{
			Column: models.ColumnTransactionID,
			Op:     models.FilterEquals,
			Value:  id,
		})
	}

	for _, ent := range input.Sentence.Entities {
		if !strings.EqualFold(ent.Label, models.LabelDate) {
			continue
		}
		intent.Filters = append(intent.Filters, models.Filter{
			Column: models.ColumnSubmittedAt,
			Op:     models.FilterOnOrAfterDate,
			Value:  NormalizeDate(ent.Text),
		})
	}

	h.logger.Debug("intent classified", map[string]interface{}{
		"aggregate":    string(intent.Aggregate),
		"targetColumn": intent.TargetColumn,
		"voucherId":    intent.VoucherID,
		"filterCount":  len(intent.Filters),
	})

	return &Output{Intent: intent}
}

// detectAggregate scans every token; a later keyword overrides an earlier
// one, so "max ... total" is a SUM.
func (h *Handler) detectAggregate(tokens []string) models.AggregateKind {
	kind := models.AggregateNone
	for i, raw := range tokens {
		tok := strings.ToLower(raw)
		if tok == "how" && i+1 < len(tokens) && strings.ToLower(tokens[i+1]) == "many" {
			tok = "how many"
		}
		if k, ok := aggregateKeywords[tok]; ok {
			kind = k
		}
	}
	return kind
}

// detectVoucherID returns the first token that contains an underscore and
// is at least MinVoucherIDLength runes long, upper-cased.
func (h *Handler) detectVoucherID(tokens []string) (string, bool) {
	for _, tok := range tokens {
		if strings.Contains(tok, "_") && utf8.RuneCountInString(tok) >= h.config.MinVoucherIDLength {
			return strings.ToUpper(tok), true
		}
	}
	return "", false
}

// NormalizeDate rewrites a recognized date as "02 Jan 2006", the form the
// SQL date predicate parses. Text that matches no known layout is returned
// unchanged.
func NormalizeDate(text string) string {
	cleaned := ordinalSuffix.ReplaceAllString(text, "${1}")
	cleaned = strings.NewReplacer(",", " ", ".", " ").Replace(cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("02 Jan 2006")
		}
	}
	return text
}
