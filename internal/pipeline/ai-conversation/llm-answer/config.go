// internal/pipeline/ai-conversation/llm-answer/config.go
package llmanswer

import "time"

const DefaultSystemPrompt = "You are an assistant that helps users understand voucher data. Keep answers short and natural."

type Config struct {
	BaseURL      string
	APIKey       string
	Model        string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
	Timeout      time.Duration
	MaxRetries   int
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:      "https://api.groq.com/openai/v1",
		Model:        "llama3-8b-8192",
		SystemPrompt: DefaultSystemPrompt,
		MaxTokens:    150,
		Temperature:  0.5,
		Timeout:      30 * time.Second,
	}
}
