package dataaccess

import (
	"context"
	"errors"

	"github.com/aokabi/mysql-mcp/pkg/logging"
)

func newTestLogger() logging.Logger { return logging.NewNoOpLogger() }

// fakeConn scripts query results per statement text and records every call.
type fakeConn struct {
	results   map[string]*QueryResult
	errs      map[string]error
	affected  int64
	execErr   error
	commitErr error

	queries  []string
	lastArgs []interface{}
	execs    []string
	commits  int
	closes   int
}

func (c *fakeConn) Query(_ context.Context, query string, args ...interface{}) (*QueryResult, error) {
	c.queries = append(c.queries, query)
	c.lastArgs = args
	if err, ok := c.errs[query]; ok {
		return nil, err
	}
	if res, ok := c.results[query]; ok {
		return res, nil
	}
	return &QueryResult{}, nil
}

func (c *fakeConn) Exec(_ context.Context, query string, _ ...interface{}) (int64, error) {
	c.execs = append(c.execs, query)
	if c.execErr != nil {
		return 0, c.execErr
	}
	return c.affected, nil
}

func (c *fakeConn) Commit(context.Context) error {
	if c.commitErr != nil {
		return c.commitErr
	}
	c.commits++
	return nil
}

func (c *fakeConn) Close() error {
	c.closes++
	return nil
}

// fakeConnector hands out the same fakeConn for every Connect, so a test
// can inspect the calls an operation made across connections.
type fakeConnector struct {
	conn       *fakeConn
	connectErr error
	connects   int
}

func (f *fakeConnector) Connect(context.Context) (Conn, error) {
	f.connects++
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return f.conn, nil
}

var errUnreachable = errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")

func newFakeConnector() *fakeConnector {
	return &fakeConnector{conn: &fakeConn{
		results: map[string]*QueryResult{},
		errs:    map[string]error{},
	}}
}
