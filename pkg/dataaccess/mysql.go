package dataaccess

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"fmt"
	"os"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/aokabi/mysql-mcp/pkg/config"
)

// tlsConfigName keys the CA bundle registered with the driver.
const tlsConfigName = "mysql-mcp"

// MySQLConnector opens scoped connections to the configured MySQL server.
type MySQLConnector struct {
	dsn string
}

// NewMySQLConnector builds the DSN from the resolved configuration. When a
// CA certificate path is configured it is registered with the driver and
// the connection requires TLS against it.
func NewMySQLConnector(cfg config.MySQLConfig) (*MySQLConnector, error) {
	dc := gomysql.NewConfig()
	dc.Net = "tcp"
	dc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.DBName = cfg.Database
	dc.ParseTime = true
	if cfg.Collation != "" {
		dc.Collation = cfg.Collation
	}
	dc.Params = map[string]string{}
	if cfg.Charset != "" {
		dc.Params["charset"] = cfg.Charset
	}
	if cfg.SQLMode != "" {
		// Passed through as a session system variable at handshake.
		dc.Params["sql_mode"] = "'" + cfg.SQLMode + "'"
	}

	if cfg.CertPath != "" {
		pem, err := os.ReadFile(cfg.CertPath)
		if err != nil {
			return nil, fmt.Errorf("read TLS certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", cfg.CertPath)
		}
		if err := gomysql.RegisterTLSConfig(tlsConfigName, &tls.Config{RootCAs: pool}); err != nil {
			return nil, fmt.Errorf("register TLS config: %w", err)
		}
		dc.TLSConfig = tlsConfigName
	}

	return &MySQLConnector{dsn: dc.FormatDSN()}, nil
}

// Connect opens one connection and verifies it with a ping. The caller owns
// the returned Conn and must close it on every exit path.
func (c *MySQLConnector) Connect(ctx context.Context) (Conn, error) {
	db, err := sql.Open("mysql", c.dsn)
	if err != nil {
		return nil, err
	}
	// One operation, one connection.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &sqlConn{db: db}, nil
}

type sqlConn struct {
	db *sql.DB
}

func (s *sqlConn) Query(ctx context.Context, query string, args ...interface{}) (*QueryResult, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &QueryResult{Columns: columns}
	for rows.Next() {
		raw := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		cells := make([]Value, len(columns))
		for i, rv := range raw {
			cells[i] = FromDriver(rv)
		}
		result.Rows = append(result.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *sqlConn) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Commit issues an explicit COMMIT. The session usually runs with
// autocommit enabled, in which case this is a harmless no-op, but it keeps
// mutations durable when the server or sql_mode disables autocommit.
func (s *sqlConn) Commit(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "COMMIT")
	return err
}

func (s *sqlConn) Close() error {
	return s.db.Close()
}
