// internal/pipeline/nlq/format-result/handler.go
package formatresult

import (
	"strings"

	"voucherbot/internal/common/logger"
	"voucherbot/internal/models"
)

const (
	StageName = "format-result"

	NoRecordsMessage = "No matching records found."
	notAvailable     = "Not available"
	notApplicable    = "N/A"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config.MaxRows <= 0 {
		config.MaxRows = LoadConfig().MaxRows
	}
	return &Handler{
		config: config,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

func (h *Handler) execute(input *Input) *Output {
	result := input.Result
	if result.Empty() {
		return &Output{Text: NoRecordsMessage}
	}

	if result.IsAggregate {
		return &Output{Text: "📊 Result: `" + models.FormatValue(result.Scalar) + "`", RowsShown: 1}
	}

	rows := result.Rows
	if len(rows) > h.config.MaxRows {
		h.logger.Debug("rows truncated", map[string]interface{}{
			"rowCount": len(rows),
			"maxRows":  h.config.MaxRows,
		})
		rows = rows[:h.config.MaxRows]
	}

	var sb strings.Builder
	for _, row := range rows {
		if input.VoucherID != "" {
			sb.WriteString("\n📄 Voucher: ")
			sb.WriteString(row.GetOr(models.ColumnTransactionID, input.VoucherID))
			sb.WriteString("\n")
		}
		if input.Field != "" {
			sb.WriteString(input.Field)
			sb.WriteString(": ")
			sb.WriteString(row.GetOr(input.Field, notAvailable))
		} else {
			sb.WriteString("Status: ")
			sb.WriteString(row.GetOr(models.ColumnStatus, notApplicable))
			sb.WriteString(" | Amount: ₹")
			sb.WriteString(row.GetOr(models.ColumnClaimAmount, notApplicable))
			sb.WriteString(" | Pending Days: ")
			sb.WriteString(row.GetOr(models.ColumnPendingDays, notApplicable))
		}
		sb.WriteString("\n")
	}

	return &Output{
		Text:      strings.TrimSpace(sb.String()),
		RowsShown: len(rows),
	}
}

// Execute renders a query result as chat text. It never fails.
func (h *Handler) Execute(input *Input) *Output {
	return h.execute(input)
}
