// internal/pipeline/nlq/format-result/config.go
package formatresult

type Config struct {
	MaxRows int
}

func LoadConfig() *Config {
	return &Config{
		MaxRows: 3,
	}
}
