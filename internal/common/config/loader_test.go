package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalMySQL = `
database:
  driver: mysql
  mysql:
    host: localhost
    database: ai_app
    user: root
    password: root
`

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg, err := LoadFromFile(writeConfig(t, minimalMySQL))
	require.NoError(t, err)

	assert.Equal(t, "voucherbot", cfg.App.Name)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Server.Addr())
	assert.Equal(t, 3306, cfg.Database.MySQL.Port)
	assert.Equal(t, "ai_feed_data_dhwnai", cfg.Chatbot.Table)
	assert.Equal(t, "invoiceclaimamount", cfg.Chatbot.FallbackColumn)
	assert.Equal(t, MatchModeSubstring, cfg.Chatbot.MatchMode)
	assert.Equal(t, 3, cfg.Chatbot.MaxDisplayRows)
	assert.Equal(t, "llama3-8b-8192", cfg.APIs.Groq.Model)
	assert.Equal(t, 150, cfg.APIs.Groq.MaxTokens)
	assert.Contains(t, cfg.APIs.Groq.SystemPrompt, "voucher data")
	assert.InDelta(t, 0.5, cfg.APIs.Groq.Temperature, 1e-9)
	assert.Equal(t, 0, cfg.APIs.Groq.MaxRetries)
	assert.Equal(t, "gsk_test", cfg.APIs.Groq.APIKey)
	assert.Equal(t, "rule", cfg.APIs.Annotator.Provider)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("VOUCHER_DB_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, minimalMySQL+`
  postgres:
    password: ${VOUCHER_DB_PASSWORD}
`))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "unknown driver",
			body:    "database:\n  driver: sqlite\n",
			wantErr: "database.driver",
		},
		{
			name:    "mysql host missing",
			body:    "database:\n  driver: mysql\n  mysql:\n    database: x\n    user: y\n",
			wantErr: "database.mysql.host",
		},
		{
			name:    "postgres user missing",
			body:    "database:\n  driver: postgres\n  postgres:\n    host: h\n    database: d\n",
			wantErr: "database.postgres.user",
		},
		{
			name:    "cache without redis",
			body:    minimalMySQL + "chatbot:\n  cache_enabled: true\n",
			wantErr: "database.redis.address",
		},
		{
			name:    "table is not an identifier",
			body:    minimalMySQL + "chatbot:\n  table: \"vouchers; drop table x\"\n",
			wantErr: "chatbot.table",
		},
		{
			name:    "bad match mode",
			body:    minimalMySQL + "chatbot:\n  match_mode: fuzzy\n",
			wantErr: "chatbot.match_mode",
		},
		{
			name:    "remote annotator without url",
			body:    minimalMySQL + "apis:\n  annotator:\n    provider: remote\n",
			wantErr: "apis.annotator.base_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_USER", "")
			t.Setenv("DB_PASSWORD", "")
			t.Setenv("DB_DRIVER", "")

			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "error %q should mention %q", err, tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMySQLConfig_GetDSN(t *testing.T) {
	m := MySQLConfig{Host: "db", Port: 3306, Database: "ai_app", User: "root", Password: "root"}
	dsn := m.GetDSN()

	assert.Contains(t, dsn, "root:root@tcp(db:3306)/ai_app")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestDatabaseConfig_ActiveDriver(t *testing.T) {
	d := DatabaseConfig{
		Driver:   DriverPostgres,
		Postgres: PostgresConfig{Host: "pg", Port: 5432, User: "u", Database: "d", SSLMode: "disable", MaxConnections: 7, MaxIdle: 2},
		MySQL:    MySQLConfig{MaxConnections: 3, MaxIdle: 1},
	}

	assert.Equal(t, "host=pg port=5432 user=u password= dbname=d sslmode=disable", d.GetDSN())
	open, idle := d.Pool()
	assert.Equal(t, 7, open)
	assert.Equal(t, 2, idle)

	d.Driver = DriverMySQL
	open, idle = d.Pool()
	assert.Equal(t, 3, open)
	assert.Equal(t, 1, idle)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("invoiceclaimamount"))
	assert.True(t, IsIdentifier("Next_Approver"))
	assert.False(t, IsIdentifier("1abc"))
	assert.False(t, IsIdentifier("a b"))
	assert.False(t, IsIdentifier(""))
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
