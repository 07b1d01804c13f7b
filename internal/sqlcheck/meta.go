package sqlcheck

import "strings"

// psqlIntrospection lists backslash commands that only inspect state or
// adjust display settings. \!, \copy, \i, \o and \w run programs or touch
// files and are deliberately absent.
var psqlIntrospection = map[string]struct{}{
	"d": {}, "db": {}, "dc": {}, "dd": {}, "df": {}, "di": {}, "dl": {},
	"dn": {}, "do": {}, "dp": {}, "ds": {}, "dt": {}, "du": {}, "dv": {},
	"dx": {}, "l": {}, "z": {},
	"conninfo": {}, "encoding": {}, "timing": {}, "pset": {}, "x": {},
	"a": {}, "t": {}, "echo": {}, "qecho": {}, "warn": {},
	"sf": {}, "sv": {}, "g": {}, "gx": {}, "gdesc": {},
	"if": {}, "elif": {}, "else": {}, "endif": {},
	"set": {}, "unset": {}, "h": {}, "help": {}, "q": {},
}

// sqliteIntrospection lists dot commands that read or display. File-touching
// and shell-escaping commands (.import, .restore, .open, .output, .save,
// .backup, .read, .system, .shell) are deliberately absent.
var sqliteIntrospection = map[string]struct{}{
	"schema": {}, "fullschema": {}, "tables": {}, "databases": {},
	"indexes": {}, "indices": {}, "dbinfo": {}, "show": {}, "stats": {},
	"headers": {}, "mode": {}, "width": {}, "separator": {}, "nullvalue": {},
	"changes": {}, "timer": {}, "echo": {}, "print": {}, "prompt": {},
	"dump": {}, "help": {}, "version": {},
}

// isReadOnlyPsqlMeta classifies a leading-backslash psql meta-command. The
// command word ends at the first space or '+'; a trailing '+' (verbose
// variant) is accepted.
func isReadOnlyPsqlMeta(sql string) bool {
	word := metaWord(strings.TrimPrefix(sql, `\`))
	if word == "" {
		return false
	}
	_, ok := psqlIntrospection[word]
	return ok
}

// isReadOnlySqliteMeta classifies a leading-dot sqlite3 dot-command.
func isReadOnlySqliteMeta(sql string) bool {
	word := metaWord(strings.TrimPrefix(sql, "."))
	if word == "" {
		return false
	}
	_, ok := sqliteIntrospection[word]
	return ok
}

func metaWord(rest string) string {
	end := len(rest)
	for i, r := range rest {
		if r == ' ' || r == '\t' || r == '+' {
			end = i
			break
		}
	}
	return rest[:end]
}

// isPragma handles sqlite PRAGMA statements: reading a pragma is safe,
// assigning one (contains '=') is not.
func isPragma(sql string) bool {
	return len(sql) >= 6 && strings.EqualFold(sql[:6], "pragma")
}

func isReadOnlyPragma(sql string) bool {
	return !strings.Contains(sql, "=")
}
