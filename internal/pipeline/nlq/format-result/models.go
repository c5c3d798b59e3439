// internal/pipeline/nlq/format-result/models.go
package formatresult

import "voucherbot/internal/models"

type Input struct {
	Result *models.QueryResult `json:"result"`
	// Field is the column the user asked about, if any.
	Field     string `json:"field,omitempty"`
	VoucherID string `json:"voucherId,omitempty"`
}

type Output struct {
	Text      string `json:"text"`
	RowsShown int    `json:"rowsShown"`
}
