// internal/common/database/retry.go
package database

import (
	"fmt"
	"time"

	apperrors "voucherbot/internal/common/errors"
	"voucherbot/internal/common/logger"
)

// RetryWithBackoff runs operation until it succeeds, maxRetries attempts are
// used, or it fails with a code that is not retryable. The delay doubles
// after every failed attempt. It is meant for connecting at startup only.
func RetryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		code := apperrors.CodeOf(err)
		if !apperrors.IsRetryableErrorCode(code) {
			return fmt.Errorf("%s failed: %w", operationName, err)
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"errorCode":   string(code),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
