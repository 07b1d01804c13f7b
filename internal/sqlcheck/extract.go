// Package sqlcheck extracts the inline SQL from a database client invocation
// and decides whether it is read-only. Anything the classifier cannot vouch
// for — interactive sessions, unparseable SQL, write statements — is treated
// as not read-only so the evaluator prompts.
package sqlcheck

import (
	"strings"

	"github.com/anthonysapien/hall-pass/internal/shell"
)

// ExtractSQL pulls the inline SQL string out of a psql, mysql or sqlite3
// invocation. ok is false when the client would open an interactive session
// (no inline SQL), which callers must treat as not read-only.
func ExtractSQL(inv shell.Invocation) (sql string, ok bool) {
	switch inv.Name {
	case "psql":
		return flagValue(inv.Args, "-c", "--command")
	case "mysql":
		return flagValue(inv.Args, "-e", "--execute")
	case "sqlite3":
		return sqlitePositional(inv.Args)
	default:
		return "", false
	}
}

// flagValue finds the value of short (split form) or long (split or = form).
func flagValue(args []string, short, long string) (string, bool) {
	for i := 1; i < len(args); i++ {
		a := args[i]
		switch {
		case a == short || a == long:
			if i+1 < len(args) {
				return args[i+1], true
			}
			return "", false
		case strings.HasPrefix(a, long+"="):
			return strings.TrimPrefix(a, long+"="), true
		}
	}
	return "", false
}

// sqliteValueFlags consume the following argument and must be skipped when
// locating sqlite3's positional [db_file, SQL] pair.
var sqliteValueFlags = map[string]struct{}{
	"-cmd": {}, "-separator": {}, "-newline": {},
}

func sqlitePositional(args []string) (string, bool) {
	var positional []string
	for i := 1; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "-") {
			if _, ok := sqliteValueFlags[a]; ok {
				i++
			}
			continue
		}
		positional = append(positional, a)
		if len(positional) == 2 {
			return positional[1], true
		}
	}
	return "", false
}
