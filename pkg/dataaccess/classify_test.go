package dataaccess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRowReturning(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELECT * FROM users", true},
		{"select 1", true},
		{"  SELECT 1  ", true},
		{"(SELECT 1) UNION (SELECT 2)", true},
		{"SHOW TABLES", true},
		{"SHOW DATABASES", true},
		{"DESCRIBE users", true},
		{"DESC users", true},
		{"EXPLAIN SELECT * FROM users", true},
		{"WITH t AS (SELECT 1) SELECT * FROM t", true},

		{"INSERT INTO users (name) VALUES ('x')", false},
		{"UPDATE users SET name = 'y' WHERE id = 1", false},
		{"DELETE FROM users", false},
		{"CREATE TABLE t (id INT)", false},
		{"DROP TABLE t", false},
		{"ALTER TABLE t ADD COLUMN c INT", false},
		{"TRUNCATE TABLE t", false},
		{"SET @x = 1", false},
		// Procedure result shape is unknown before execution.
		{"CALL cleanup_sessions()", false},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.want, isRowReturning(tt.sql))
		})
	}
}

func TestHasRowReturningPrefix(t *testing.T) {
	// The fallback path, for text the parser rejects.
	assert.True(t, hasRowReturningPrefix("SELECT/*hint*/ 1"))
	assert.True(t, hasRowReturningPrefix("show tables like 'u%'"))
	assert.True(t, hasRowReturningPrefix("TABLE users"))
	assert.True(t, hasRowReturningPrefix("VALUES ROW(1)"))
	assert.False(t, hasRowReturningPrefix("INSERTISH GIBBERISH"))
	assert.False(t, hasRowReturningPrefix(""))
	assert.False(t, hasRowReturningPrefix("SELECTED works"))
}
