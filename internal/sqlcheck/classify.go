package sqlcheck

import (
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
)

// IsReadOnly reports whether sql cannot modify data. Meta-commands are
// classified against per-dialect allowlists; everything else is parsed and
// every top-level statement must be a read (SELECT, SHOW, set operations
// over them). A parse failure means we cannot guarantee anything, so it
// classifies as not read-only.
func IsReadOnly(sql string) bool {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, `\`) {
		return isReadOnlyPsqlMeta(trimmed)
	}
	if strings.HasPrefix(trimmed, ".") {
		return isReadOnlySqliteMeta(trimmed)
	}
	if isPragma(trimmed) {
		return isReadOnlyPragma(trimmed)
	}

	p := parser.New()
	stmts, _, err := p.Parse(trimmed, "", "")
	if err != nil || len(stmts) == 0 {
		return false
	}
	for _, stmt := range stmts {
		if !isReadStatement(stmt) {
			return false
		}
	}
	return true
}

func isReadStatement(stmt ast.StmtNode) bool {
	switch stmt.(type) {
	case *ast.SelectStmt:
		// Covers WITH … SELECT; a WITH wrapping a write parses as the
		// write statement and fails this switch.
		return true
	case *ast.SetOprStmt:
		// UNION/INTERSECT/EXCEPT of reads.
		return true
	case *ast.ShowStmt:
		return true
	default:
		return false
	}
}
