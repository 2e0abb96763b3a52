package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aokabi/mysql-mcp/pkg/dataaccess"
	"github.com/aokabi/mysql-mcp/pkg/logging"
	"github.com/aokabi/mysql-mcp/pkg/security"
)

// ToolDeps holds shared dependencies for MCP tool and resource handlers.
type ToolDeps struct {
	Executor *dataaccess.Executor
	Reporter *dataaccess.SchemaReporter
	Audit    *security.AuditLogger
	Logger   logging.Logger
}

// HandleExecuteSQL executes an arbitrary SQL statement. The result is
// always textual; database failures come back as result text with a
// "MySQL error:" prefix, never as a protocol fault.
func (d *ToolDeps) HandleExecuteSQL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	start := time.Now()
	text := d.Executor.Execute(ctx, query)
	d.logToolCall("execute_sql", map[string]interface{}{"query": query}, start, text)

	return mcp.NewToolResultText(text), nil
}

// HandleListTables lists all tables in the configured database.
func (d *ToolDeps) HandleListTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	text := d.Reporter.ListTables(ctx)
	d.logToolCall("list_tables", nil, start, text)

	return mcp.NewToolResultText(text), nil
}

// HandleDescribeTable renders the structure report for one table.
func (d *ToolDeps) HandleDescribeTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table := request.GetString("table", "")
	if table == "" {
		return mcp.NewToolResultError("table parameter is required"), nil
	}

	start := time.Now()
	text := d.Reporter.Describe(ctx, table)
	d.logToolCall("describe_table", map[string]interface{}{"table": table}, start, text)

	return mcp.NewToolResultText(text), nil
}

// HandleTablesResource serves the mysql://tables resource.
func (d *ToolDeps) HandleTablesResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	start := time.Now()
	text := d.Reporter.ListTables(ctx)
	if d.Audit != nil {
		d.Audit.LogResourceRead(request.Params.URI, time.Since(start).Milliseconds(), renderedOK(text))
	}
	return textContents(request.Params.URI, text), nil
}

// HandleTableResource serves the mysql://tables/{table} resource template.
func (d *ToolDeps) HandleTableResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	table := strings.TrimPrefix(request.Params.URI, "mysql://tables/")

	start := time.Now()
	text := d.Reporter.Describe(ctx, table)
	if d.Audit != nil {
		d.Audit.LogResourceRead(request.Params.URI, time.Since(start).Milliseconds(), renderedOK(text))
	}
	return textContents(request.Params.URI, text), nil
}

func (d *ToolDeps) logToolCall(tool string, args map[string]interface{}, start time.Time, text string) {
	ok := renderedOK(text)
	if !ok {
		d.Logger.Warn("%s failed: %s", tool, text)
	}
	if d.Audit != nil {
		d.Audit.LogToolCall(tool, args, time.Since(start).Milliseconds(), ok)
	}
}

// renderedOK distinguishes success from rendered failures for audit
// purposes; the caller-facing result is the text either way.
func renderedOK(text string) bool {
	return !strings.HasPrefix(text, "MySQL error:") &&
		!strings.HasPrefix(text, "Unexpected error:")
}

func textContents(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     text,
		},
	}
}
