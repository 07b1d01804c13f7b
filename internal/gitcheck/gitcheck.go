// Package gitcheck classifies git invocations. Most porcelain is reversible
// (reflog keeps history), so the default posture is to allow known
// subcommands and prompt on anything that rewrites or discards state:
// forced pushes, branch deletion, reset/clean, pushes to protected branches,
// and config injection through -c.
package gitcheck

import (
	"strings"

	"github.com/anthonysapien/hall-pass/internal/shell"
	"github.com/anthonysapien/hall-pass/pkg/types"
)

// Policy carries the user-tunable part of git classification.
type Policy struct {
	protectedBranches map[string]struct{}
}

// defaultProtectedBranches are always protected; user config extends them.
var defaultProtectedBranches = []string{"main", "master", "staging", "production", "prod"}

func New(extraProtected []string) *Policy {
	p := &Policy{protectedBranches: make(map[string]struct{})}
	for _, b := range defaultProtectedBranches {
		p.protectedBranches[b] = struct{}{}
	}
	for _, b := range extraProtected {
		if b != "" {
			p.protectedBranches[b] = struct{}{}
		}
	}
	return p
}

// safeSubcommands are read-only or reversible.
var safeSubcommands = map[string]struct{}{
	"status": {}, "log": {}, "diff": {}, "show": {}, "branch": {}, "tag": {},
	"remote": {}, "describe": {}, "rev-parse": {}, "rev-list": {},
	"ls-files": {}, "ls-tree": {}, "cat-file": {}, "reflog": {},
	"shortlog": {}, "blame": {}, "bisect": {}, "name-rev": {}, "cherry": {},
	"count-objects": {}, "fsck": {}, "verify-pack": {}, "whatchanged": {},
	"add": {}, "commit": {}, "stash": {}, "fetch": {}, "pull": {},
	"merge": {}, "cherry-pick": {}, "revert": {}, "notes": {}, "worktree": {},
	"checkout": {}, "switch": {}, "restore": {}, "gc": {}, "prune": {},
	"repack": {}, "push": {}, "rebase": {}, "config": {},
}

// alwaysDestructive subcommands prompt no matter their arguments.
var alwaysDestructive = map[string]struct{}{
	"reset": {},
	"clean": {},
}

// twoArgPreFlags are global git flags that consume the following argument.
var twoArgPreFlags = map[string]struct{}{
	"-C": {}, "-c": {}, "--git-dir": {}, "--work-tree": {}, "--config": {},
}

// Check classifies a git invocation.
func (p *Policy) Check(inv shell.Invocation) types.Decision {
	pre, sub, tail := splitInvocation(inv.Args)

	for _, kv := range configInjections(pre) {
		key, _, _ := strings.Cut(kv, "=")
		if isDangerousConfigKey(key) {
			return types.Ask("git -c sets dangerous config key " + key)
		}
	}

	if sub == "" {
		// Bare git prints help.
		return types.Allow("git without subcommand")
	}

	if _, ok := alwaysDestructive[sub]; ok {
		return types.Ask("git " + sub + " is destructive")
	}
	if _, ok := safeSubcommands[sub]; !ok {
		return types.Ask("unrecognized git subcommand " + sub)
	}

	switch sub {
	case "push":
		for _, a := range tail {
			if isForcePushFlag(a) {
				return types.Ask("git push with force flag " + a)
			}
		}
		if branch, hit := p.protectedTarget(tail); hit {
			return types.Ask("git push targets protected branch " + branch)
		}
	case "rebase":
		if branch, hit := p.protectedTarget(tail); hit {
			return types.Ask("git rebase targets protected branch " + branch)
		}
	case "checkout", "restore":
		for _, a := range tail {
			if a == "." {
				return types.Ask("git " + sub + " . discards local changes")
			}
		}
	case "branch":
		for _, a := range tail {
			if a == "-D" || a == "-d" || a == "--force" {
				return types.Ask("git branch with delete/force flag " + a)
			}
		}
	case "stash":
		for _, a := range positionals(tail) {
			if a == "drop" || a == "clear" {
				return types.Ask("git stash " + a + " discards stashed changes")
			}
		}
	case "config":
		for _, a := range positionals(tail) {
			if isDangerousConfigKey(a) {
				return types.Ask("git config touches dangerous key " + a)
			}
		}
	}

	return types.Allow("git " + sub + " is safe")
}

// splitInvocation separates args into pre-subcommand flags (with their
// values), the subcommand, and everything after it.
func splitInvocation(args []string) (pre []string, sub string, tail []string) {
	i := 1
	for i < len(args) {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			sub = a
			tail = args[i+1:]
			return pre, sub, tail
		}
		pre = append(pre, a)
		if _, ok := twoArgPreFlags[a]; ok && i+1 < len(args) {
			i++
			pre = append(pre, args[i])
		}
		i++
	}
	return pre, "", nil
}

// configInjections collects the key=value payloads of -c/--config pre-flags,
// both split ("-c", "k=v") and attached ("--config=k=v") forms.
func configInjections(pre []string) []string {
	var out []string
	for i := 0; i < len(pre); i++ {
		switch {
		case pre[i] == "-c" || pre[i] == "--config":
			if i+1 < len(pre) {
				out = append(out, pre[i+1])
				i++
			}
		case strings.HasPrefix(pre[i], "--config="):
			out = append(out, strings.TrimPrefix(pre[i], "--config="))
		}
	}
	return out
}

// isDangerousConfigKey reports whether a git config key can change what git
// executes: hook paths, external commands, pagers, aliases, filters.
func isDangerousConfigKey(key string) bool {
	k := strings.ToLower(key)
	switch k {
	case "core.fsmonitor", "core.sshcommand", "core.hookspath",
		"diff.external", "credential.helper":
		return true
	}
	if strings.HasPrefix(k, "pager.") || strings.HasPrefix(k, "alias.") {
		return true
	}
	if strings.HasPrefix(k, "filter.") &&
		(strings.HasSuffix(k, ".clean") || strings.HasSuffix(k, ".smudge")) {
		return true
	}
	return false
}

func isForcePushFlag(a string) bool {
	if a == "-f" || a == "--force" || a == "--force-if-includes" {
		return true
	}
	return a == "--force-with-lease" || strings.HasPrefix(a, "--force-with-lease=")
}

// protectedTarget checks positional args for a protected branch name. A
// refspec like HEAD:main targets the branch after the last colon.
func (p *Policy) protectedTarget(tail []string) (string, bool) {
	for _, a := range positionals(tail) {
		target := a
		if idx := strings.LastIndexByte(a, ':'); idx >= 0 {
			target = a[idx+1:]
		}
		if _, ok := p.protectedBranches[target]; ok {
			return target, true
		}
	}
	return "", false
}

func positionals(tail []string) []string {
	var out []string
	for _, a := range tail {
		if !strings.HasPrefix(a, "-") {
			out = append(out, a)
		}
	}
	return out
}
