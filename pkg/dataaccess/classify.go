package dataaccess

import (
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
)

// rowReturningPrefixes is the fallback classification for statements the
// parser cannot handle. Matches the MySQL statements that produce a result
// set.
var rowReturningPrefixes = []string{
	"SELECT", "SHOW", "DESCRIBE", "DESC", "EXPLAIN", "WITH", "TABLE", "VALUES",
}

// isRowReturning reports whether sqlText is expected to produce a result
// set (columns and rows) rather than an affected-row count.
//
// The statement is parsed with the TiDB parser when possible; statements it
// rejects may still be valid for the server, so those fall back to a verb
// prefix check. The statement text itself is always sent to the server
// verbatim either way.
func isRowReturning(sqlText string) bool {
	p := parser.New()
	stmts, _, err := p.Parse(sqlText, "", "")
	if err == nil && len(stmts) > 0 {
		switch stmts[0].(type) {
		case *ast.SelectStmt, *ast.SetOprStmt, *ast.ShowStmt, *ast.ExplainStmt:
			return true
		default:
			// CALL lands here: whether a procedure produces a result set is
			// unknowable before execution, so it takes the affected-rows path.
			return false
		}
	}
	return hasRowReturningPrefix(sqlText)
}

func hasRowReturningPrefix(sqlText string) bool {
	text := strings.ToUpper(strings.TrimSpace(sqlText))
	text = strings.TrimLeft(text, "(")
	word := text
	if i := strings.IndexAny(text, " \t\r\n(/"); i >= 0 {
		word = text[:i]
	}
	for _, prefix := range rowReturningPrefixes {
		if word == prefix {
			return true
		}
	}
	return false
}
