package policy

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/anthonysapien/hall-pass/internal/registry"
)

// defaultProtectedGlobs are always active regardless of configuration:
// credentials, keys, and environment files.
var defaultProtectedGlobs = []string{
	"**/.env",
	"**/.env.*",
	"**/credentials*",
	"**/secret*",
	"~/.ssh/**",
	"~/.aws/**",
	"~/.gnupg/**",
	"**/*.pem",
	"**/*id_rsa*",
}

// PathPolicy matches absolute paths against three tiers. Protected denies
// every operation, read-only denies writes and deletes, no-delete denies
// deletes. All matching is case-sensitive on resolved absolute paths.
type PathPolicy struct {
	protected []glob.Glob
	readOnly  []glob.Glob
	noDelete  []glob.Glob
	home      string
	cwd       string
}

// NewPathPolicy compiles the built-in protected globs plus the user tiers.
// home and cwd are captured once so that matching itself stays free of I/O.
func NewPathPolicy(protected, readOnly, noDelete []string, home, cwd string) (*PathPolicy, error) {
	p := &PathPolicy{home: home, cwd: cwd}
	var err error
	if p.protected, err = p.compileTier(append(append([]string{}, defaultProtectedGlobs...), protected...)); err != nil {
		return nil, fmt.Errorf("protected tier: %w", err)
	}
	if p.readOnly, err = p.compileTier(readOnly); err != nil {
		return nil, fmt.Errorf("read_only tier: %w", err)
	}
	if p.noDelete, err = p.compileTier(noDelete); err != nil {
		return nil, fmt.Errorf("no_delete tier: %w", err)
	}
	return p, nil
}

func (p *PathPolicy) compileTier(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		g, err := glob.Compile(p.expandHome(pat), '/')
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", pat, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Check applies the tier precedence for one path and operation. A nil error
// means the operation is allowed.
func (p *PathPolicy) Check(path string, op registry.PathOp) error {
	resolved := p.Resolve(path)
	if matchAny(p.protected, resolved) {
		return fmt.Errorf("%s is protected", path)
	}
	if (op == registry.PathWrite || op == registry.PathDelete) && matchAny(p.readOnly, resolved) {
		return fmt.Errorf("%s is read-only", path)
	}
	if op == registry.PathDelete && matchAny(p.noDelete, resolved) {
		return fmt.Errorf("%s must not be deleted", path)
	}
	return nil
}

// Resolve expands ~ and makes the path absolute against the captured
// working directory.
func (p *PathPolicy) Resolve(path string) string {
	expanded := p.expandHome(path)
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(p.cwd, expanded)
	}
	return filepath.Clean(expanded)
}

func (p *PathPolicy) expandHome(path string) string {
	if path == "~" {
		return p.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(p.home, path[2:])
	}
	return path
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// LooksLikePath is the heuristic for deciding whether a positional argument
// of a path-aware command names a file: it contains a separator or starts
// with . or ~. Bare words like "foo" are left alone.
func LooksLikePath(arg string) bool {
	if arg == "" {
		return false
	}
	return strings.ContainsRune(arg, '/') ||
		strings.HasPrefix(arg, ".") ||
		strings.HasPrefix(arg, "~")
}
