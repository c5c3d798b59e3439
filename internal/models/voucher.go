// internal/models/voucher.go
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Columns of the voucher table that the pipeline refers to by name.
const (
	ColumnTransactionID = "stagetransactionid"
	ColumnStatus        = "status"
	ColumnClaimAmount   = "invoiceclaimamount"
	ColumnPendingDays   = "pending_days"
	ColumnSubmittedAt   = "submitteddatetime"
)

// VoucherRow is one row of the voucher table keyed by column name. Values are
// normalized at scan time to nil, string, int64, float64, bool or
// json.Number.
type VoucherRow map[string]interface{}

// Lookup returns the value of column. NULL columns report ok == false.
func (r VoucherRow) Lookup(column string) (interface{}, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// GetOr renders column, or fallback when it is absent or NULL.
func (r VoucherRow) GetOr(column, fallback string) string {
	v, ok := r.Lookup(column)
	if !ok {
		return fallback
	}
	return FormatValue(v)
}

// NormalizeValue converts a database/sql scan result into one of the
// VoucherRow value types.
func NormalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(t)
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return float64(t)
	}
	return v
}

// FormatValue renders a normalized value for chat output.
func FormatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprintf("%v", v)
}
