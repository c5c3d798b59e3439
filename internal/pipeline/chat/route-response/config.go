// internal/pipeline/chat/route-response/config.go
package routeresponse

type Config struct {
	// LLMKeywords send a message to the LLM when any of them occurs in
	// the lower-cased text.
	LLMKeywords []string
}

func LoadConfig() *Config {
	return &Config{
		LLMKeywords: []string{"why", "how", "explain", "summarize", "tell me about"},
	}
}
