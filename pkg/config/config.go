package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Transport names accepted by MCPConfig.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config is the full server configuration, resolved once at startup.
type Config struct {
	MySQL MySQLConfig `koanf:"mysql"`
	MCP   MCPConfig   `koanf:"mcp"`
	Log   LogConfig   `koanf:"log"`
}

// MySQLConfig describes the target database connection.
//
// User, Password and Database are required; the rest have defaults
// matching the common MySQL 8 setup.
type MySQLConfig struct {
	Host      string `koanf:"host"`
	Port      int    `koanf:"port"`
	User      string `koanf:"user"`
	Password  string `koanf:"password"`
	Database  string `koanf:"database"`
	Charset   string `koanf:"charset"`
	Collation string `koanf:"collation"`
	SQLMode   string `koanf:"sql_mode"`
	CertPath  string `koanf:"cert"`
}

// MCPConfig describes the MCP transport to serve on.
type MCPConfig struct {
	Transport string `koanf:"transport"` // stdio or http
	Host      string `koanf:"host"`
	Port      int    `koanf:"port"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Addr returns the host:port the streamable HTTP transport listens on.
func (m MCPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// ErrMissingRequired is returned when the required MySQL settings are absent.
// This is the one failure that aborts the process instead of being rendered
// as tool output.
var ErrMissingRequired = errors.New(
	"missing required database configuration: set MYSQL_USER, MYSQL_PASSWORD and MYSQL_DATABASE")

// Load resolves the configuration from environment variables.
//
// Recognized keys: MYSQL_HOST, MYSQL_PORT, MYSQL_USER, MYSQL_PASSWORD,
// MYSQL_DATABASE, MYSQL_CHARSET, MYSQL_COLLATION, MYSQL_SQL_MODE, MYSQL_CERT,
// MCP_TRANSPORT, MCP_HOST, MCP_PORT, LOG_LEVEL.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Defaults
	k.Set("mysql.host", "localhost")
	k.Set("mysql.port", 3306)
	k.Set("mysql.charset", "utf8mb4")
	k.Set("mysql.collation", "utf8mb4_unicode_ci")
	k.Set("mysql.sql_mode", "TRADITIONAL")
	k.Set("mcp.transport", TransportStdio)
	k.Set("mcp.host", "127.0.0.1")
	k.Set("mcp.port", 8282)
	k.Set("log.level", "info")

	// MYSQL_SQL_MODE -> mysql.sql_mode, MCP_TRANSPORT -> mcp.transport, ...
	for _, prefix := range []string{"MYSQL_", "MCP_", "LOG_"} {
		section := strings.ToLower(strings.TrimSuffix(prefix, "_"))
		if err := k.Load(env.Provider(prefix, ".", func(s string) string {
			return section + "." + strings.ToLower(strings.TrimPrefix(s, prefix))
		}), nil); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.MySQL.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the required fields.
func (m MySQLConfig) Validate() error {
	if m.User == "" || m.Password == "" || m.Database == "" {
		return ErrMissingRequired
	}
	return nil
}
