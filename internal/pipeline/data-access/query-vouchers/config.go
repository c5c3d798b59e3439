// internal/pipeline/data-access/query-vouchers/config.go
package queryvouchers

import "time"

type Config struct {
	Timeout      time.Duration
	CacheEnabled bool
	CacheTTL     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		CacheTTL: 30 * time.Second,
	}
}
