// internal/pipeline/nlq/classify-intent/config.go
package classifyintent

import "voucherbot/internal/models"

type Config struct {
	// FallbackColumn is aggregated when the question names no column.
	FallbackColumn string
	// MinVoucherIDLength is the minimum rune length of an underscore token
	// treated as a transaction id.
	MinVoucherIDLength int
}

func LoadConfig() *Config {
	return &Config{
		FallbackColumn:     models.ColumnClaimAmount,
		MinVoucherIDLength: 8,
	}
}
