package dataaccess

import "context"

// QueryResult is a fully materialized result set. Column order and row
// order are preserved as returned by the server.
type QueryResult struct {
	Columns []string
	Rows    [][]Value
}

// Conn is a single scoped database connection. One Conn serves exactly one
// operation invocation and is closed before the invocation returns.
type Conn interface {
	// Query runs a row-returning statement and materializes every row.
	Query(ctx context.Context, query string, args ...interface{}) (*QueryResult, error)
	// Exec runs a statement that affects rows without returning any and
	// reports the affected-row count.
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
	// Commit makes the effects of prior Exec calls durable.
	Commit(ctx context.Context) error
	Close() error
}

// Connector opens scoped connections. Implementations carry the resolved
// database configuration; callers own the returned Conn and must close it.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}
