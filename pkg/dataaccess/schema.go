package dataaccess

import (
	"context"
	"fmt"
	"strings"

	"github.com/aokabi/mysql-mcp/pkg/logging"
)

// ColumnDescriptor is one column of a DESCRIBE result.
type ColumnDescriptor struct {
	Name         string
	DeclaredType string
	Nullable     bool
	KeyKind      string // "PRI", "UNI", "MUL" or empty
	Default      *string
	Extra        string // e.g. "auto_increment"
}

// SchemaReporter renders table structure and row-count reports.
type SchemaReporter struct {
	connector Connector
	logger    logging.Logger
}

// NewSchemaReporter creates a schema reporter.
func NewSchemaReporter(connector Connector, logger logging.Logger) *SchemaReporter {
	return &SchemaReporter{connector: connector, logger: logger}
}

// TableExists reports whether name is an existing table. The name has not
// been proven safe to splice at this point, so the check binds it as a
// query parameter. Fail-closed: any failure, including an unreachable
// database, reports the table as absent rather than crashing or guessing.
func (r *SchemaReporter) TableExists(ctx context.Context, name string) bool {
	conn, err := r.connector.Connect(ctx)
	if err != nil {
		r.logger.Warn("existence check connect failed: %v", err)
		return false
	}
	defer conn.Close()

	res, err := conn.Query(ctx, "SHOW TABLES LIKE ?", escapeLikePattern(name))
	if err != nil {
		r.logger.Warn("existence check failed for %q: %v", name, err)
		return false
	}
	return len(res.Rows) > 0
}

// escapeLikePattern escapes LIKE wildcards so a bound table name matches
// literally. Without this, "_private" would also match "xprivate".
func escapeLikePattern(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Describe renders a structure report for the named table. Linear flow:
// validate the identifier, confirm the table exists, then run DESCRIBE and
// COUNT over one shared connection. Every failure renders as text; nothing
// propagates as an error.
func (r *SchemaReporter) Describe(ctx context.Context, table string) (report string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic describing table %q: %v", table, rec)
			report = unexpectedError(rec)
		}
	}()

	// Rejected input is echoed verbatim so the caller can see exactly what
	// was refused, injection payloads included.
	if !ValidIdentifier(table) {
		return fmt.Sprintf(
			"Invalid table name: '%s'. Table names may contain only letters, digits, '_' and '$', must not start with a digit, and are limited to %d characters.",
			table, MaxIdentifierLength)
	}

	if !r.TableExists(ctx, table) {
		return fmt.Sprintf("Table '%s' not found in the database.", table)
	}

	conn, err := r.connector.Connect(ctx)
	if err != nil {
		return databaseError(err)
	}
	defer conn.Close()

	// Safe to interpolate: the identifier passed validation above.
	res, err := conn.Query(ctx, "DESCRIBE `"+table+"`")
	if err != nil {
		return databaseError(err)
	}
	columns := columnsFromDescribe(res)

	countRes, err := conn.Query(ctx, "SELECT COUNT(*) FROM `"+table+"`")
	if err != nil {
		return databaseError(err)
	}
	var rowCount int64
	if len(countRes.Rows) > 0 && len(countRes.Rows[0]) > 0 {
		rowCount = countRes.Rows[0][0].Int()
	}

	return renderTableReport(table, columns, rowCount)
}

// ListTables renders the list of tables in the configured database.
func (r *SchemaReporter) ListTables(ctx context.Context) (listing string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic listing tables: %v", rec)
			listing = unexpectedError(rec)
		}
	}()

	conn, err := r.connector.Connect(ctx)
	if err != nil {
		return databaseError(err)
	}
	defer conn.Close()

	res, err := conn.Query(ctx, "SHOW TABLES")
	if err != nil {
		return databaseError(err)
	}
	if len(res.Rows) == 0 {
		return "No tables found in the database."
	}

	lines := make([]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		if len(row) > 0 {
			lines = append(lines, "- "+row[0].String())
		}
	}
	return "Available tables:\n" + strings.Join(lines, "\n")
}

// columnsFromDescribe maps DESCRIBE rows (Field, Type, Null, Key, Default,
// Extra) into descriptors. Short rows are skipped.
func columnsFromDescribe(res *QueryResult) []ColumnDescriptor {
	columns := make([]ColumnDescriptor, 0, len(res.Rows))
	for _, row := range res.Rows {
		if len(row) < 6 {
			continue
		}
		desc := ColumnDescriptor{
			Name:         row[0].String(),
			DeclaredType: row[1].String(),
			Nullable:     row[2].String() == "YES",
			KeyKind:      row[3].String(),
			Extra:        row[5].String(),
		}
		if !row[4].IsNull() {
			def := row[4].String()
			desc.Default = &def
		}
		columns = append(columns, desc)
	}
	return columns
}

func renderTableReport(table string, columns []ColumnDescriptor, rowCount int64) string {
	lines := []string{
		"Table: " + table,
		strings.Repeat("=", 50),
		"",
		"Columns:",
	}
	for _, col := range columns {
		attrs := "NOT NULL"
		if col.Nullable {
			attrs = "NULL"
		}
		if col.KeyKind != "" {
			attrs += fmt.Sprintf(" (%s)", col.KeyKind)
		}
		if col.Default != nil {
			attrs += " DEFAULT " + *col.Default
		}
		if col.Extra != "" {
			attrs += " " + col.Extra
		}
		lines = append(lines, fmt.Sprintf("  - %s: %s %s", col.Name, col.DeclaredType, attrs))
	}
	lines = append(lines, "", fmt.Sprintf("Total rows: %d", rowCount))
	return strings.Join(lines, "\n")
}

// ServerVersion reports the server's VERSION(). Used as the startup probe.
func ServerVersion(ctx context.Context, connector Connector) (string, error) {
	conn, err := connector.Connect(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	res, err := conn.Query(ctx, "SELECT VERSION()")
	if err != nil {
		return "", err
	}
	if len(res.Rows) == 0 || len(res.Rows[0]) == 0 {
		return "Unknown", nil
	}
	return res.Rows[0][0].String(), nil
}
