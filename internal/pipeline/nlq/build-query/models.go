// internal/pipeline/nlq/build-query/models.go
package buildquery

import "voucherbot/internal/models"

type Input struct {
	Intent models.ParsedIntent `json:"intent"`
}

type Output struct {
	Query       string           `json:"query"`
	Params      []interface{}    `json:"params"`
	IsAggregate bool             `json:"isAggregate"`
	Kind        models.QueryKind `json:"kind"`
	VoucherID   string           `json:"voucherId,omitempty"`
}
