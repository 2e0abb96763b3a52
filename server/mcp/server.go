package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/aokabi/mysql-mcp/pkg/config"
	"github.com/aokabi/mysql-mcp/pkg/logging"
)

const (
	serverName    = "MySQL MCP Server"
	serverVersion = "0.1.0"
)

const serverInstructions = `This server provides MySQL database access through the Model Context Protocol.

Available tools:
- execute_sql: Execute SQL queries on the MySQL database
- list_tables: List all available tables
- describe_table: Get detailed information about a specific table

Available resources:
- mysql://tables: List all available tables
- mysql://tables/{table}: Get detailed information about a specific table

Environment variables required:
- MYSQL_USER: MySQL username
- MYSQL_PASSWORD: MySQL password
- MYSQL_DATABASE: MySQL database name

Optional environment variables:
- MYSQL_HOST: MySQL server host (default: localhost)
- MYSQL_PORT: MySQL server port (default: 3306)
- MYSQL_CERT: Path to SSL certificate file
- MYSQL_CHARSET: Character set (default: utf8mb4)
- MYSQL_COLLATION: Collation (default: utf8mb4_unicode_ci)
- MYSQL_SQL_MODE: SQL mode (default: TRADITIONAL)`

// Server is the MCP protocol server. It owns the operation routing table:
// tools and resources are registered once at startup and dispatched to the
// handlers in ToolDeps.
type Server struct {
	cfg    *config.MCPConfig
	deps   *ToolDeps
	logger logging.Logger
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.MCPConfig, deps *ToolDeps, logger logging.Logger) *Server {
	return &Server{cfg: cfg, deps: deps, logger: logger}
}

// Start serves MCP on the configured transport (blocking).
func (s *Server) Start() error {
	mcpSrv := s.build()

	switch s.cfg.Transport {
	case config.TransportHTTP:
		s.logger.Info("serving MCP over streamable HTTP on %s", s.cfg.Addr())
		httpServer := mcpserver.NewStreamableHTTPServer(
			mcpSrv,
			mcpserver.WithEndpointPath("/mcp"),
		)
		return httpServer.Start(s.cfg.Addr())
	case config.TransportStdio, "":
		s.logger.Info("serving MCP over stdio")
		return mcpserver.ServeStdio(mcpSrv)
	default:
		return fmt.Errorf("unknown MCP transport %q", s.cfg.Transport)
	}
}

func (s *Server) build() *mcpserver.MCPServer {
	mcpSrv := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, true),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(serverInstructions),
	)

	executeTool := mcp.NewTool("execute_sql",
		mcp.WithDescription("Execute an SQL query on the MySQL server. Row-returning statements (SELECT, SHOW, DESCRIBE, ...) return the result set as text; other statements return the affected-row count."),
		mcp.WithString("query", mcp.Description("The SQL query to execute"), mcp.Required()),
	)
	listTablesTool := mcp.NewTool("list_tables",
		mcp.WithDescription("List all available tables in the database"),
	)
	describeTableTool := mcp.NewTool("describe_table",
		mcp.WithDescription("Get the structure of a table: columns, types, keys, defaults and total row count"),
		mcp.WithString("table", mcp.Description("The table name"), mcp.Required()),
	)

	mcpSrv.AddTool(executeTool, s.deps.HandleExecuteSQL)
	mcpSrv.AddTool(listTablesTool, s.deps.HandleListTables)
	mcpSrv.AddTool(describeTableTool, s.deps.HandleDescribeTable)

	tablesResource := mcp.NewResource("mysql://tables", "tables",
		mcp.WithResourceDescription("List all available tables in the database"),
		mcp.WithMIMEType("text/plain"),
	)
	mcpSrv.AddResource(tablesResource, s.deps.HandleTablesResource)

	tableTemplate := mcp.NewResourceTemplate("mysql://tables/{table}", "table",
		mcp.WithTemplateDescription("Detailed information about a specific table"),
		mcp.WithTemplateMIMEType("text/plain"),
	)
	mcpSrv.AddResourceTemplate(tableTemplate, s.deps.HandleTableResource)

	return mcpSrv
}
