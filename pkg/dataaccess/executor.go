package dataaccess

import (
	"context"
	"fmt"
	"strings"

	"github.com/aokabi/mysql-mcp/pkg/logging"
)

// noResultsMessage is returned for row-returning statements with zero rows.
const noResultsMessage = "Query executed successfully. No results returned."

// Executor runs caller-supplied SQL text verbatim and renders the outcome
// as text. Arbitrary SQL execution is the tool's purpose; callers are
// trusted to the extent the underlying credential permits.
type Executor struct {
	connector Connector
	logger    logging.Logger
}

// NewExecutor creates a query executor.
func NewExecutor(connector Connector, logger logging.Logger) *Executor {
	return &Executor{connector: connector, logger: logger}
}

// Execute runs sqlText against the database and returns the rendered
// result. It never returns an error: driver failures render as
// "MySQL error: …" and anything else as "Unexpected error: …", so the
// caller always receives a plain string.
func (e *Executor) Execute(ctx context.Context, sqlText string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic executing query: %v", r)
			result = unexpectedError(r)
		}
	}()

	e.logger.Debug("executing query: %s", sqlText)

	conn, err := e.connector.Connect(ctx)
	if err != nil {
		e.logger.Warn("connect failed: %v", err)
		return databaseError(err)
	}
	defer conn.Close()

	if isRowReturning(sqlText) {
		res, err := conn.Query(ctx, sqlText)
		if err != nil {
			return databaseError(err)
		}
		if len(res.Rows) == 0 {
			return noResultsMessage
		}
		return renderRows(res)
	}

	affected, err := conn.Exec(ctx, sqlText)
	if err != nil {
		return databaseError(err)
	}
	if err := conn.Commit(ctx); err != nil {
		return databaseError(err)
	}
	return fmt.Sprintf("Query executed successfully. %d rows affected.", affected)
}

// renderRows renders a result set CSV-like: a header line of comma-joined
// column names, then one comma-joined line per row. Embedded commas and
// newlines in cells are not escaped; that matches the wire-format consumers
// already depend on.
func renderRows(res *QueryResult) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(res.Columns, ","))
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Join(cells, ","))
	}
	return sb.String()
}
