// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether s can be spliced into SQL as a bare table or
// column name.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top,
// then applies env overrides, defaults and validation.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile reads a single explicit yaml file.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets from the conventional env names when the
// yaml left them blank.
func overrideEmptyConfig(cfg *Config) {
	if cfg.APIs.Groq.APIKey == "" {
		cfg.APIs.Groq.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = os.Getenv("DB_DRIVER")
	}

	user, password := os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")
	if cfg.Database.MySQL.User == "" {
		cfg.Database.MySQL.User = user
	}
	if cfg.Database.MySQL.Password == "" {
		cfg.Database.MySQL.Password = password
	}
	if cfg.Database.Postgres.User == "" {
		cfg.Database.Postgres.User = user
	}
	if cfg.Database.Postgres.Password == "" {
		cfg.Database.Postgres.Password = password
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "voucherbot"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60000
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60000
	}

	// Database defaults
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverMySQL
	}
	if cfg.Database.MySQL.Port == 0 {
		cfg.Database.MySQL.Port = 3306
	}
	if cfg.Database.MySQL.MaxConnections == 0 {
		cfg.Database.MySQL.MaxConnections = 25
	}
	if cfg.Database.MySQL.MaxIdle == 0 {
		cfg.Database.MySQL.MaxIdle = 5
	}
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	// Chatbot defaults
	if cfg.Chatbot.Table == "" {
		cfg.Chatbot.Table = "ai_feed_data_dhwnai"
	}
	if cfg.Chatbot.FallbackColumn == "" {
		cfg.Chatbot.FallbackColumn = "invoiceclaimamount"
	}
	if cfg.Chatbot.MatchMode == "" {
		cfg.Chatbot.MatchMode = MatchModeSubstring
	}
	if cfg.Chatbot.MaxDisplayRows == 0 {
		cfg.Chatbot.MaxDisplayRows = 3
	}
	if cfg.Chatbot.QueryTimeout == 0 {
		cfg.Chatbot.QueryTimeout = 10000
	}
	if cfg.Chatbot.CacheTTL == 0 {
		cfg.Chatbot.CacheTTL = 30000
	}

	// Groq defaults
	if cfg.APIs.Groq.BaseURL == "" {
		cfg.APIs.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.APIs.Groq.Model == "" {
		cfg.APIs.Groq.Model = "llama3-8b-8192"
	}
	if cfg.APIs.Groq.SystemPrompt == "" {
		cfg.APIs.Groq.SystemPrompt = "You are an assistant that helps users understand voucher data. Keep answers short and natural."
	}
	if cfg.APIs.Groq.MaxTokens == 0 {
		cfg.APIs.Groq.MaxTokens = 150
	}
	if cfg.APIs.Groq.Temperature == 0 {
		cfg.APIs.Groq.Temperature = 0.5
	}
	if cfg.APIs.Groq.Timeout == 0 {
		cfg.APIs.Groq.Timeout = 30000
	}

	if cfg.APIs.Annotator.Provider == "" {
		cfg.APIs.Annotator.Provider = "rule"
	}
	if cfg.APIs.Annotator.Timeout == 0 {
		cfg.APIs.Annotator.Timeout = 2000
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Database.Driver {
	case DriverMySQL:
		m := cfg.Database.MySQL
		if m.Host == "" {
			return fmt.Errorf("database.mysql.host is required")
		}
		if m.Database == "" {
			return fmt.Errorf("database.mysql.database is required")
		}
		if m.User == "" {
			return fmt.Errorf("database.mysql.user is required")
		}
	case DriverPostgres:
		p := cfg.Database.Postgres
		if p.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if p.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if p.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverMySQL, DriverPostgres, cfg.Database.Driver)
	}

	if cfg.Chatbot.CacheEnabled && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required when chatbot.cache_enabled is set")
	}

	if !IsIdentifier(cfg.Chatbot.Table) {
		return fmt.Errorf("chatbot.table %q is not a valid identifier", cfg.Chatbot.Table)
	}
	if !IsIdentifier(cfg.Chatbot.FallbackColumn) {
		return fmt.Errorf("chatbot.fallback_column %q is not a valid identifier", cfg.Chatbot.FallbackColumn)
	}

	switch cfg.Chatbot.MatchMode {
	case MatchModeSubstring, MatchModeWord:
	default:
		return fmt.Errorf("chatbot.match_mode must be %q or %q", MatchModeSubstring, MatchModeWord)
	}

	switch cfg.APIs.Annotator.Provider {
	case "rule":
	case "remote":
		if cfg.APIs.Annotator.BaseURL == "" {
			return fmt.Errorf("apis.annotator.base_url is required for the remote provider")
		}
	default:
		return fmt.Errorf("apis.annotator.provider must be \"rule\" or \"remote\"")
	}

	if cfg.Chatbot.MaxDisplayRows < 0 {
		return fmt.Errorf("chatbot.max_display_rows must not be negative")
	}

	return nil
}

func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
