package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aokabi/mysql-mcp/pkg/config"
	"github.com/aokabi/mysql-mcp/pkg/dataaccess"
	"github.com/aokabi/mysql-mcp/pkg/logging"
	"github.com/aokabi/mysql-mcp/pkg/security"
	mcpserver "github.com/aokabi/mysql-mcp/server/mcp"
)

const auditBufferSize = 10000

func main() {
	var (
		transport string
		logLevel  string
	)

	rootCmd := &cobra.Command{
		Use:           "mysql-mcp",
		Short:         "MySQL MCP server: SQL execution and table introspection over the Model Context Protocol",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(transport, logLevel)
		},
	}
	rootCmd.Flags().StringVar(&transport, "transport", "", "MCP transport: stdio or http (overrides MCP_TRANSPORT)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: error, warn, info or debug (overrides LOG_LEVEL)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mysql-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(transport, logLevel string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if transport != "" {
		cfg.MCP.Transport = transport
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger := logging.NewDefaultLogger(logging.ParseLevel(cfg.Log.Level))

	connector, err := dataaccess.NewMySQLConnector(cfg.MySQL)
	if err != nil {
		return err
	}

	// Probe the database before serving anything.
	version, err := dataaccess.ServerVersion(context.Background(), connector)
	if err != nil {
		return fmt.Errorf("MySQL connection error: %w", err)
	}
	logger.Info("Connected to MySQL %s", version)

	deps := &mcpserver.ToolDeps{
		Executor: dataaccess.NewExecutor(connector, logger),
		Reporter: dataaccess.NewSchemaReporter(connector, logger),
		Audit:    security.NewAuditLogger(auditBufferSize),
		Logger:   logger,
	}

	srv := mcpserver.NewServer(&cfg.MCP, deps, logger)
	return srv.Start()
}
