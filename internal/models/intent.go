// internal/models/intent.go
package models

import "fmt"

// AggregateKind is the aggregate function requested by a question.
type AggregateKind string

const (
	AggregateNone  AggregateKind = ""
	AggregateCount AggregateKind = "count"
	AggregateSum   AggregateKind = "sum"
	AggregateMax   AggregateKind = "max"
	AggregateMin   AggregateKind = "min"
	AggregateAvg   AggregateKind = "avg"
)

// NeedsColumn reports whether the aggregate applies to a target column.
// COUNT always counts rows.
func (k AggregateKind) NeedsColumn() bool {
	switch k {
	case AggregateSum, AggregateMax, AggregateMin, AggregateAvg:
		return true
	}
	return false
}

// Expression renders the select-list expression, e.g. SUM(invoiceclaimamount).
// column must already be a validated identifier.
func (k AggregateKind) Expression(column string) string {
	switch k {
	case AggregateCount:
		return "COUNT(*)"
	case AggregateSum:
		return fmt.Sprintf("SUM(%s)", column)
	case AggregateMax:
		return fmt.Sprintf("MAX(%s)", column)
	case AggregateMin:
		return fmt.Sprintf("MIN(%s)", column)
	case AggregateAvg:
		return fmt.Sprintf("AVG(%s)", column)
	}
	return ""
}

// FilterOp is the predicate shape of a Filter.
type FilterOp string

const (
	FilterEquals        FilterOp = "equals"
	FilterOnOrAfterDate FilterOp = "on_or_after_date"
)

// Filter is one WHERE predicate with exactly one bound value.
type Filter struct {
	Column string   `json:"column"`
	Op     FilterOp `json:"op"`
	Value  string   `json:"value"`
}

// ParsedIntent is the per-request result of intent classification.
type ParsedIntent struct {
	Aggregate    AggregateKind `json:"aggregate"`
	TargetColumn string        `json:"targetColumn,omitempty"`
	Filters      []Filter      `json:"filters"`
	VoucherID    string        `json:"voucherId,omitempty"`
}

func (p *ParsedIntent) IsAggregate() bool {
	return p.Aggregate != AggregateNone
}
