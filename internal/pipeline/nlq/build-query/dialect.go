// internal/pipeline/nlq/build-query/dialect.go
package buildquery

import (
	"fmt"

	"voucherbot/internal/common/config"
)

// Dialect renders driver-specific placeholders and predicates. n is the
// 1-based position of the bound value.
type Dialect interface {
	Name() string
	Placeholder(n int) string
	OnOrAfterDate(column string, n int) string
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return config.DriverMySQL }

func (mysqlDialect) Placeholder(int) string { return "?" }

func (mysqlDialect) OnOrAfterDate(column string, _ int) string {
	return fmt.Sprintf("%s >= STR_TO_DATE(?, '%%d %%b %%Y')", column)
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return config.DriverPostgres }

func (postgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (postgresDialect) OnOrAfterDate(column string, n int) string {
	return fmt.Sprintf("%s >= TO_DATE($%d, 'DD Mon YYYY')", column, n)
}

// DialectFor returns the dialect of a configured database driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverMySQL, "":
		return mysqlDialect{}, nil
	case config.DriverPostgres:
		return postgresDialect{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, driver)
}
