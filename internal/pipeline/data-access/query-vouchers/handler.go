// internal/pipeline/data-access/query-vouchers/handler.go
package queryvouchers

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "voucherbot/internal/common/errors"
	"voucherbot/internal/common/logger"
	"voucherbot/internal/common/metrics"
	"voucherbot/internal/models"
)

const (
	StageName = "query-vouchers"

	cacheKeyPrefix = "voucherbot:query:"
)

// Cache is the result cache. *database.RedisClient satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type Handler struct {
	config *Config
	db     *sql.DB
	cache  Cache
	logger logger.Logger
}

// NewHandler wires the storage stage. cache may be nil.
func NewHandler(config *Config, db *sql.DB, cache Cache, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		cache:  cache,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues(StageName).Observe(time.Since(start).Seconds())
	}()

	kind := models.KindFor(input.IsAggregate)

	var cacheKey string
	if h.cacheEnabled() {
		cacheKey = CacheKey(input.Query, input.Params)
		if result, ok := h.readCache(ctx, cacheKey); ok {
			return &Output{
				Result:             result,
				RowCount:           rowCount(result),
				Cached:             true,
				QueryExecutionTime: time.Since(start).Milliseconds(),
			}, nil
		}
	}

	queryCtx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	var result *models.QueryResult
	var err error
	if kind == models.QueryKindFetchOne {
		result, err = h.fetchOne(queryCtx, input)
	} else {
		result, err = h.fetchAll(queryCtx, input)
	}
	if err != nil {
		if queryCtx.Err() == context.DeadlineExceeded || errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewQueryTimeoutError(string(kind), err)
		}
		return nil, apperrors.NewQueryExecutionFailedError(string(kind), err)
	}

	if h.cacheEnabled() {
		h.writeCache(ctx, cacheKey, result)
	}

	output := &Output{
		Result:             result,
		RowCount:           rowCount(result),
		QueryExecutionTime: time.Since(start).Milliseconds(),
	}

	h.logger.Debug("query executed", map[string]interface{}{
		"kind":               string(kind),
		"rowCount":           output.RowCount,
		"queryExecutionTime": output.QueryExecutionTime,
	})

	return output, nil
}

// Execute runs input.Query with its ordered params. Aggregates read the
// first column of the first row; anything else returns every row.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) fetchOne(ctx context.Context, input *Input) (*models.QueryResult, error) {
	rows, err := h.db.QueryContext(ctx, input.Query, input.Params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &models.QueryResult{IsAggregate: true}

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if rows.Next() {
		values, err := scanValues(rows, len(cols))
		if err != nil {
			return nil, err
		}
		if len(values) > 0 {
			result.HasScalar = true
			result.Scalar = models.NormalizeValue(values[0])
		}
	}
	return result, rows.Err()
}

func (h *Handler) fetchAll(ctx context.Context, input *Input) (*models.QueryResult, error) {
	rows, err := h.db.QueryContext(ctx, input.Query, input.Params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &models.QueryResult{Rows: []models.VoucherRow{}}
	for rows.Next() {
		values, err := scanValues(rows, len(cols))
		if err != nil {
			return nil, err
		}
		row := make(models.VoucherRow, len(cols))
		for i, col := range cols {
			row[col] = models.NormalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}

func scanValues(rows *sql.Rows, n int) ([]interface{}, error) {
	values := make([]interface{}, n)
	ptrs := make([]interface{}, n)
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	return values, nil
}

func (h *Handler) cacheEnabled() bool {
	return h.config.CacheEnabled && h.cache != nil
}

func (h *Handler) readCache(ctx context.Context, key string) (*models.QueryResult, bool) {
	val, found, err := h.cache.Get(ctx, key)
	if err != nil {
		metrics.QueryCacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("cache read failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}
	if !found {
		metrics.QueryCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(val))
	dec.UseNumber()
	var result models.QueryResult
	if err := dec.Decode(&result); err != nil {
		metrics.QueryCacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("cached result is corrupt", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}

	metrics.QueryCacheLookups.WithLabelValues("hit").Inc()
	return &result, true
}

func (h *Handler) writeCache(ctx context.Context, key string, result *models.QueryResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, key, data, h.config.CacheTTL); err != nil {
		h.logger.Warn("cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// CacheKey identifies a query and its bound values.
func CacheKey(query string, params []interface{}) string {
	encoded, _ := json.Marshal(params)
	sum := sha256.Sum256([]byte(query + "|" + string(encoded)))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func rowCount(r *models.QueryResult) int {
	if r.IsAggregate {
		if r.HasScalar {
			return 1
		}
		return 0
	}
	return len(r.Rows)
}
