// internal/pipeline/data-access/query-vouchers/models.go
package queryvouchers

import "voucherbot/internal/models"

type Input struct {
	Query       string        `json:"query"`
	Params      []interface{} `json:"params"`
	IsAggregate bool          `json:"isAggregate"`
}

type Output struct {
	Result             *models.QueryResult `json:"result"`
	RowCount           int                 `json:"rowCount"`
	Cached             bool                `json:"cached"`
	QueryExecutionTime int64               `json:"queryExecutionTime"` // milliseconds
}
