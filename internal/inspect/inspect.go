// Package inspect holds the per-program argument analyzers. Each inspector
// is a small pure function keyed by program name; programs that proxy other
// programs (xargs, find -exec) recurse through the evaluator handle on the
// Context rather than importing the evaluator, keeping the module graph
// acyclic.
package inspect

import (
	"github.com/anthonysapien/hall-pass/internal/gitcheck"
	"github.com/anthonysapien/hall-pass/internal/shell"
	"github.com/anthonysapien/hall-pass/pkg/types"
)

// Context carries what inspectors need: the git policy snapshot and a way to
// evaluate a nested invocation within the same pipeline.
type Context struct {
	Git  *gitcheck.Policy
	Eval func(shell.Invocation) types.Decision
}

// Func analyzes one invocation.
type Func func(ctx *Context, inv shell.Invocation) types.Decision

var registry = map[string]Func{
	"git":     inspectGit,
	"xargs":   inspectXargs,
	"source":  inspectSource,
	".":       inspectSource,
	"find":    inspectFind,
	"sed":     inspectSed,
	"awk":     inspectAwk,
	"kill":    inspectKill,
	"chmod":   inspectChmod,
	"docker":  inspectDocker,
	"node":    inspectNode,
	"python":  inspectPython,
	"python3": inspectPython,
}

// For returns the inspector registered for name.
func For(name string) (Func, bool) {
	f, ok := registry[name]
	return f, ok
}

// Run dispatches to the inspector for inv.Name. An inspector must never take
// the process down; an unexpected panic degrades to Ask.
func Run(ctx *Context, inv shell.Invocation) (d types.Decision) {
	defer func() {
		if r := recover(); r != nil {
			d = types.Ask("inspector failed on " + inv.Name)
		}
	}()
	f, ok := registry[inv.Name]
	if !ok {
		return types.Pass()
	}
	return f(ctx, inv)
}

func inspectGit(ctx *Context, inv shell.Invocation) types.Decision {
	return ctx.Git.Check(inv)
}

func inspectSource(_ *Context, inv shell.Invocation) types.Decision {
	return types.Ask("sourcing a script executes arbitrary code")
}
