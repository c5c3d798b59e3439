// internal/models/query_types.go
package models

// QueryKind is the storage execution mode of a built query.
type QueryKind string

const (
	// QueryKindFetchAll returns every matching row.
	QueryKindFetchAll QueryKind = "fetch-all"
	// QueryKindFetchOne reads a single aggregate scalar.
	QueryKindFetchOne QueryKind = "fetch-one"
)

// KindFor maps the aggregate flag of a built query to its execution mode.
func KindFor(isAggregate bool) QueryKind {
	if isAggregate {
		return QueryKindFetchOne
	}
	return QueryKindFetchAll
}
