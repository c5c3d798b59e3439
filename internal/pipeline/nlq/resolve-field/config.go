// internal/pipeline/nlq/resolve-field/config.go
package resolvefield

const (
	// ModeSubstring matches a phrase anywhere in the input; first table
	// entry wins.
	ModeSubstring = "substring"
	// ModeWord matches whole tokens only; the longest phrase wins, then
	// table order.
	ModeWord = "word"
)

type Config struct {
	Mode string
}

func LoadConfig() *Config {
	return &Config{Mode: ModeSubstring}
}
