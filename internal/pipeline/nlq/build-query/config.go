// internal/pipeline/nlq/build-query/config.go
package buildquery

import "voucherbot/internal/common/config"

type Config struct {
	Table  string
	Driver string
}

func LoadConfig() *Config {
	return &Config{
		Table:  "ai_feed_data_dhwnai",
		Driver: config.DriverMySQL,
	}
}
