// internal/models/result.go
package models

// QueryResult is what storage returns for one built query: a scalar for
// aggregates, rows otherwise.
type QueryResult struct {
	IsAggregate bool         `json:"isAggregate"`
	HasScalar   bool         `json:"hasScalar"`
	Scalar      interface{}  `json:"scalar,omitempty"`
	Rows        []VoucherRow `json:"rows,omitempty"`
}

// Empty reports whether there is nothing to show: no rows, no aggregate row,
// or a NULL aggregate (SUM over zero rows).
func (r *QueryResult) Empty() bool {
	if r == nil {
		return true
	}
	if r.IsAggregate {
		return !r.HasScalar || r.Scalar == nil
	}
	return len(r.Rows) == 0
}
