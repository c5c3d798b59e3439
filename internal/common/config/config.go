// internal/common/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Chatbot  ChatbotConfig  `mapstructure:"chatbot"`
	APIs     APIsConfig     `mapstructure:"apis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int `mapstructure:"write_timeout"` // milliseconds
	IdleTimeout  int `mapstructure:"idle_timeout"`  // milliseconds
}

// Addr returns the listen address for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type DatabaseConfig struct {
	// Driver selects the SQL dialect and driver: "mysql" or "postgres".
	Driver   string         `mapstructure:"driver"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// Pool returns the pool settings of the active driver.
func (d DatabaseConfig) Pool() (maxOpen, maxIdle int) {
	if d.Driver == DriverPostgres {
		return d.Postgres.MaxConnections, d.Postgres.MaxIdle
	}
	return d.MySQL.MaxConnections, d.MySQL.MaxIdle
}

// GetDSN returns the DSN of the active driver.
func (d DatabaseConfig) GetDSN() string {
	if d.Driver == DriverPostgres {
		return d.Postgres.GetDSN()
	}
	return d.MySQL.GetDSN()
}

type MySQLConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
}

// GetDSN returns the go-sql-driver/mysql connection string.
func (m MySQLConfig) GetDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = m.User
	cfg.Passwd = m.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", m.Host, m.Port)
	cfg.DBName = m.Database
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN()
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Chatbot ---

const (
	MatchModeSubstring = "substring"
	MatchModeWord      = "word"
)

// ChatbotConfig drives the NL-to-SQL pipeline.
type ChatbotConfig struct {
	Table          string `mapstructure:"table"`
	FallbackColumn string `mapstructure:"fallback_column"`
	MatchMode      string `mapstructure:"match_mode"`
	SynonymsPath   string `mapstructure:"synonyms_path"`
	MaxDisplayRows int    `mapstructure:"max_display_rows"`
	QueryTimeout   int    `mapstructure:"query_timeout"` // milliseconds
	CacheEnabled   bool   `mapstructure:"cache_enabled"`
	CacheTTL       int    `mapstructure:"cache_ttl"` // milliseconds
}

type APIsConfig struct {
	Groq struct {
		BaseURL      string  `mapstructure:"base_url"`
		APIKey       string  `mapstructure:"api_key"`
		Model        string  `mapstructure:"model"`
		SystemPrompt string  `mapstructure:"system_prompt"`
		MaxTokens    int     `mapstructure:"max_tokens"`
		Temperature  float64 `mapstructure:"temperature"`
		Timeout      int     `mapstructure:"timeout"` // milliseconds
		MaxRetries   int     `mapstructure:"max_retries"`
	} `mapstructure:"groq"`

	Annotator struct {
		Provider string `mapstructure:"provider"` // "rule" or "remote"
		BaseURL  string `mapstructure:"base_url"`
		Timeout  int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"annotator"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
