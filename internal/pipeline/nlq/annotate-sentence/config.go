// internal/pipeline/nlq/annotate-sentence/config.go
package annotatesentence

import "time"

const (
	ProviderRule   = "rule"
	ProviderRemote = "remote"
)

type Config struct {
	Provider string
	BaseURL  string
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Provider: ProviderRule,
		Timeout:  2 * time.Second,
	}
}
