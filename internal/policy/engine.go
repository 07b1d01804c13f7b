// Package policy composes the decision engine: wrapper unwrapping, the
// per-invocation evaluation pipeline, path tiers, guidance rules, and the
// top-level driver that folds a full command line into one verdict.
//
// The engine is pure. It performs no I/O and holds only registries and a
// configuration snapshot taken at construction; decisions are deterministic
// functions of their inputs.
package policy

import (
	"github.com/anthonysapien/hall-pass/internal/gitcheck"
	"github.com/anthonysapien/hall-pass/internal/inspect"
	"github.com/anthonysapien/hall-pass/internal/registry"
	"github.com/anthonysapien/hall-pass/internal/shell"
	"github.com/anthonysapien/hall-pass/internal/sqlcheck"
	"github.com/anthonysapien/hall-pass/pkg/types"
)

// Options is the user-tunable surface of the engine: the user's additions
// only. NewEngine extends the built-in sets, branches and protected globs
// with them.
type Options struct {
	SafeCommands      []string
	DBClients         []string
	ProtectedBranches []string
	ProtectedPaths    []string
	ReadOnlyPaths     []string
	NoDeletePaths     []string

	// Home and Cwd are captured here so path resolution needs no I/O.
	Home string
	Cwd  string
}

// Engine evaluates parsed commands to decisions.
type Engine struct {
	reg   *registry.Registry
	git   *gitcheck.Policy
	paths *PathPolicy
}

func NewEngine(opts Options) (*Engine, error) {
	paths, err := NewPathPolicy(opts.ProtectedPaths, opts.ReadOnlyPaths, opts.NoDeletePaths, opts.Home, opts.Cwd)
	if err != nil {
		return nil, err
	}
	return &Engine{
		reg:   registry.New(opts.SafeCommands, opts.DBClients),
		git:   gitcheck.New(opts.ProtectedBranches),
		paths: paths,
	}, nil
}

// CheckPath exposes the path tiers for non-Bash tools (Write/Edit) whose
// target path the host supplies directly.
func (e *Engine) CheckPath(path string, op registry.PathOp) types.Decision {
	if err := e.paths.Check(path, op); err != nil {
		return types.Ask(err.Error()).WithLayer("paths")
	}
	return types.Allow("path " + path + " is not restricted").WithLayer("paths")
}

// EvalCommand is the decision driver: parse once, check redirects, run
// pipeline guidance, then fold per-invocation decisions in order,
// short-circuiting on the first non-Allow.
func (e *Engine) EvalCommand(command string) types.Decision {
	if isBlank(command) {
		return types.Ask("empty command").WithLayer("parser")
	}

	pc, err := shell.Parse(command)
	if err != nil {
		return types.Ask("parse failed").WithLayer("parser")
	}

	for _, r := range pc.Redirects {
		op := registry.PathWrite
		if r.Op == shell.RedirRead {
			op = registry.PathRead
		}
		if err := e.paths.Check(r.Path, op); err != nil {
			return types.Ask("redirect: " + err.Error()).WithLayer("paths")
		}
	}

	for _, inv := range pc.Invocations {
		if advice, ok := GuidanceFor(inv, pc.Invocations); ok {
			return types.AskGuidance("better tool available for "+inv.Name, advice).WithLayer("guidance")
		}
	}

	if len(pc.Invocations) == 0 {
		// Assignment-only input (FOO=bar) runs nothing.
		return types.Allow("no commands to run").WithLayer("driver")
	}

	for _, inv := range pc.Invocations {
		if d := e.evalInvocation(pc.Invocations, inv); !d.IsAllow() {
			return d
		}
	}
	return types.Allow("all commands are safe").WithLayer("driver")
}

// evalInvocation runs the per-invocation pipeline in its fixed order:
// unwrap, dangerous env, guidance, path check, safelist, inspector,
// DB client, unknown.
func (e *Engine) evalInvocation(pipeline []shell.Invocation, inv shell.Invocation) types.Decision {
	inv = Unwrap(inv)

	for _, as := range inv.Assigns {
		if e.reg.IsDangerousEnv(as.Name) {
			return types.Ask("sets dangerous environment variable " + as.Name).WithLayer("env")
		}
	}

	if advice, ok := GuidanceFor(inv, pipeline); ok {
		return types.AskGuidance("better tool available for "+inv.Name, advice).WithLayer("guidance")
	}

	if op, ok := e.reg.PathAware(inv.Name); ok {
		if d := e.checkPathArgs(inv, op); !d.IsAllow() {
			return d.WithLayer("paths")
		}
	}

	if e.reg.IsSafe(inv.Name) {
		return types.Allow(inv.Name + " is safelisted").WithLayer("safelist")
	}

	if e.reg.IsInspected(inv.Name) {
		ctx := &inspect.Context{
			Git: e.git,
			Eval: func(sub shell.Invocation) types.Decision {
				return e.evalInvocation(pipeline, sub)
			},
		}
		return inspect.Run(ctx, inv).WithLayer("inspector")
	}

	if e.reg.IsDBClient(inv.Name) {
		sql, ok := sqlcheck.ExtractSQL(inv)
		if !ok {
			return types.Ask(inv.Name + " would open an interactive session").WithLayer("sql")
		}
		if sqlcheck.IsReadOnly(sql) {
			return types.Allow(inv.Name + " runs read-only SQL").WithLayer("sql")
		}
		return types.Ask(inv.Name + " runs SQL that may modify data").WithLayer("sql")
	}

	return types.Pass().WithLayer("driver")
}

// checkPathArgs applies the path tiers to the positional arguments of a
// path-aware command. Flags and non-path-shaped words are skipped; the
// first denial wins.
func (e *Engine) checkPathArgs(inv shell.Invocation, op registry.PathOp) types.Decision {
	for _, a := range inv.Args[1:] {
		if len(a) > 0 && a[0] == '-' {
			continue
		}
		if !LooksLikePath(a) {
			continue
		}
		if err := e.paths.Check(a, op); err != nil {
			return types.Ask(err.Error())
		}
	}
	return types.Allow("paths are unrestricted")
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
