// internal/pipeline/nlq/build-query/handler.go
package buildquery

import (
	"errors"
	"fmt"
	"strings"

	"voucherbot/internal/common/config"
	"voucherbot/internal/common/logger"
	"voucherbot/internal/models"
)

const (
	StageName = "build-query"
)

var (
	ErrUnsupportedDialect = errors.New("UNSUPPORTED_DIALECT")
	ErrInvalidIdentifier  = errors.New("INVALID_IDENTIFIER")
	ErrUnknownFilterOp    = errors.New("UNKNOWN_FILTER_OP")
)

type Handler struct {
	config  *Config
	dialect Dialect
	logger  logger.Logger
}

func NewHandler(cfg *Config, log logger.Logger) (*Handler, error) {
	if !config.IsIdentifier(cfg.Table) {
		return nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, cfg.Table)
	}
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	return &Handler{
		config:  cfg,
		dialect: dialect,
		logger: log.With(map[string]interface{}{
			"stage":   StageName,
			"dialect": dialect.Name(),
		}),
	}, nil
}

func (h *Handler) execute(input *Input) (*Output, error) {
	intent := input.Intent

	selectList := "*"
	if intent.IsAggregate() {
		column := intent.TargetColumn
		if intent.Aggregate.NeedsColumn() && !config.IsIdentifier(column) {
			return nil, fmt.Errorf("%w: column %q", ErrInvalidIdentifier, column)
		}
		selectList = intent.Aggregate.Expression(column)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(selectList)
	sb.WriteString(" FROM ")
	sb.WriteString(h.config.Table)

	params := make([]interface{}, 0, len(intent.Filters))
	predicates := make([]string, 0, len(intent.Filters))
	for _, f := range intent.Filters {
		if !config.IsIdentifier(f.Column) {
			return nil, fmt.Errorf("%w: column %q", ErrInvalidIdentifier, f.Column)
		}
		n := len(params) + 1
		switch f.Op {
		case models.FilterEquals:
			predicates = append(predicates, fmt.Sprintf("%s = %s", f.Column, h.dialect.Placeholder(n)))
		case models.FilterOnOrAfterDate:
			predicates = append(predicates, h.dialect.OnOrAfterDate(f.Column, n))
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownFilterOp, f.Op)
		}
		params = append(params, f.Value)
	}

	if len(predicates) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(predicates, " AND "))
	}

	output := &Output{
		Query:       sb.String(),
		Params:      params,
		IsAggregate: intent.IsAggregate(),
		Kind:        models.KindFor(intent.IsAggregate()),
		VoucherID:   intent.VoucherID,
	}

	h.logger.Debug("query built", map[string]interface{}{
		"query":      output.Query,
		"paramCount": len(output.Params),
		"kind":       string(output.Kind),
	})

	return output, nil
}

// Execute renders the intent as one parameterized query. Errors only occur
// for intents that did not come from the classifier (bad identifiers or an
// unknown filter op).
func (h *Handler) Execute(input *Input) (*Output, error) {
	return h.execute(input)
}
