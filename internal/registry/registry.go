// Package registry holds the static command classification sets the
// evaluator consults: programs that are always safe to run, programs whose
// safety depends on their arguments, database clients, dangerous environment
// variable names, and the table of commands whose positional arguments name
// file paths.
package registry

// PathOp is the file operation a path-aware command performs on its
// positional arguments.
type PathOp int

const (
	PathRead PathOp = iota
	PathWrite
	PathDelete
)

// Registry is the merged view of the built-in sets and any user additions
// from configuration. It is immutable after construction.
type Registry struct {
	safe         map[string]struct{}
	inspected    map[string]struct{}
	dbClients    map[string]struct{}
	dangerousEnv map[string]struct{}
	wrappers     map[string]struct{}
	pathAware    map[string]PathOp
}

// New builds a Registry from the built-in sets extended with user-configured
// safe commands and database clients.
func New(extraSafe, extraDBClients []string) *Registry {
	r := &Registry{
		safe:         toSet(alwaysSafe),
		inspected:    toSet(inspected),
		dbClients:    toSet(dbClients),
		dangerousEnv: toSet(dangerousEnv),
		wrappers:     toSet(wrappers),
		pathAware:    make(map[string]PathOp, len(pathReaders)+len(pathWriters)+len(pathDeleters)+len(pathPermChangers)),
	}
	for _, name := range pathReaders {
		r.pathAware[name] = PathRead
	}
	for _, name := range pathWriters {
		r.pathAware[name] = PathWrite
	}
	for _, name := range pathDeleters {
		r.pathAware[name] = PathDelete
	}
	for _, name := range pathPermChangers {
		r.pathAware[name] = PathWrite
	}
	for _, name := range extraSafe {
		if name != "" {
			r.safe[name] = struct{}{}
		}
	}
	for _, name := range extraDBClients {
		if name != "" {
			r.dbClients[name] = struct{}{}
		}
	}
	return r
}

func (r *Registry) IsSafe(name string) bool {
	_, ok := r.safe[name]
	return ok
}

func (r *Registry) IsInspected(name string) bool {
	_, ok := r.inspected[name]
	return ok
}

func (r *Registry) IsDBClient(name string) bool {
	_, ok := r.dbClients[name]
	return ok
}

func (r *Registry) IsDangerousEnv(name string) bool {
	_, ok := r.dangerousEnv[name]
	return ok
}

func (r *Registry) IsWrapper(name string) bool {
	_, ok := r.wrappers[name]
	return ok
}

// PathAware reports whether name's positional arguments are file paths, and
// which operation it performs on them.
func (r *Registry) PathAware(name string) (PathOp, bool) {
	op, ok := r.pathAware[name]
	return op, ok
}

func toSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// alwaysSafe lists read-only text and file utilities plus task runners that
// never take inline-code flags. Anything that can execute arbitrary code via
// a flag (python -c, node -e) or proxy another program (xargs, find -exec)
// belongs in inspected, never here.
var alwaysSafe = []string{
	"grep", "egrep", "fgrep", "rg", "ag",
	"sort", "uniq", "head", "tail", "wc", "cut", "tr", "column", "comm", "join",
	"jq", "yq",
	"cat", "ls", "file", "stat", "diff", "cmp", "readlink", "realpath",
	"basename", "dirname", "pwd", "which", "whereis", "type",
	"echo", "printf", "date", "true", "false", "test", "sleep",
	"du", "df", "ps", "uname", "whoami", "id", "hostname", "uptime",
	"md5sum", "sha1sum", "sha256sum", "sha512sum", "shasum", "cksum",
	"xxd", "od", "strings", "hexdump",
	"tee", // write targets are caught by the path-aware check first
	"gh", "bun", "npm", "npx", "pnpm", "yarn", "shfmt", "gofmt", "make",
	"cargo", "go", "tsc", "prettier", "eslint",
}

// inspected lists programs that always run through a named inspector.
var inspected = []string{
	"git", "xargs", "source", ".", "find", "sed", "awk", "kill",
	"chmod", "docker", "node", "python", "python3",
}

var dbClients = []string{"psql", "mysql", "sqlite3"}

// dangerousEnv lists environment variable names that change what an
// otherwise-safe program executes.
var dangerousEnv = []string{
	"LD_PRELOAD", "LD_LIBRARY_PATH",
	"DYLD_INSERT_LIBRARIES", "DYLD_LIBRARY_PATH",
	"BASH_ENV", "ENV", "PROMPT_COMMAND",
}

// wrappers change how a command runs, never what it does.
var wrappers = []string{"nohup", "nice", "timeout"}

var pathReaders = []string{
	"cat", "head", "tail", "less", "more", "file", "stat", "wc", "strings",
	"diff", "md5sum", "sha1sum", "sha256sum", "sha512sum", "shasum", "cksum",
	"xxd", "od",
}

var pathWriters = []string{"cp", "mv", "mkdir", "touch", "tee", "ln", "install"}

var pathDeleters = []string{"rm", "rmdir", "unlink"}

var pathPermChangers = []string{"chmod", "chown", "chgrp"}
