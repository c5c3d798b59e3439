// internal/common/database/sql.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"voucherbot/internal/common/config"
	apperrors "voucherbot/internal/common/errors"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// SQLClient owns the connection pool to the voucher database. The pool is
// safe for concurrent use by request handlers.
type SQLClient struct {
	DB     *sql.DB
	Driver string
}

// NewSQL opens a pool for cfg.Driver ("mysql" or "postgres"). It does not
// dial; call Ping to verify connectivity.
func NewSQL(cfg config.DatabaseConfig) (*SQLClient, error) {
	switch cfg.Driver {
	case config.DriverMySQL, config.DriverPostgres:
	default:
		return nil, apperrors.NewInvalidConfigurationError(fmt.Errorf("unsupported database driver %q", cfg.Driver))
	}

	db, err := sql.Open(cfg.Driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Driver, err)
	}

	maxOpen, maxIdle := cfg.Pool()
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &SQLClient{DB: db, Driver: cfg.Driver}, nil
}

// Ping reports an unreachable database as DATABASE_CONNECTION_FAILED.
func (c *SQLClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return apperrors.NewDatabaseConnectionFailedError(err)
	}
	return nil
}

func (c *SQLClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
