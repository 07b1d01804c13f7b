// Package hook runs one PreToolUse decision over the host's stdin/stdout
// envelope. The engine stays pure; all I/O — reading the request, writing
// the verdict, auditing, debug logging — lives here.
package hook

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/anthonysapien/hall-pass/internal/audit"
	"github.com/anthonysapien/hall-pass/internal/policy"
	"github.com/anthonysapien/hall-pass/internal/registry"
	"github.com/anthonysapien/hall-pass/pkg/types"
)

// Runner wires the engine to the host protocol.
type Runner struct {
	Engine *policy.Engine
	Audit  audit.Sink
	Log    *slog.Logger
}

// Run reads one request from in, writes the verdict to out, and returns the
// process exit code: 0 for any valid decision, 1 only when the envelope
// itself is malformed.
func (r *Runner) Run(in io.Reader, out io.Writer) int {
	var req types.HookInput
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		r.Log.Error("malformed hook input", "err", err)
		return 1
	}
	if req.ToolName == "" {
		r.Log.Error("malformed hook input", "err", "missing tool_name")
		return 1
	}

	d, input := r.decide(req)
	r.Log.Debug("decision", "tool", req.ToolName, "input", input,
		"verdict", string(d.Verdict), "reason", d.Reason, "layer", d.Layer)

	if !d.IsPass() {
		// Best-effort: an audit failure must never change the verdict.
		if err := r.Audit.Append(audit.NewRecord(req.ToolName, input, d, d.Layer)); err != nil {
			r.Log.Debug("audit append failed", "err", err)
		}
	}

	if err := writeDecision(out, d); err != nil {
		r.Log.Error("write decision", "err", err)
		return 1
	}
	return 0
}

func (r *Runner) decide(req types.HookInput) (types.Decision, string) {
	switch req.ToolName {
	case "Bash":
		return r.Engine.EvalCommand(req.ToolInput.Command), req.ToolInput.Command
	case "Write", "Edit":
		path := req.ToolInput.FilePath
		if path == "" {
			return types.Ask("missing file path").WithLayer("paths"), path
		}
		return r.Engine.CheckPath(path, registry.PathWrite), path
	default:
		// Tools we don't understand get no opinion.
		return types.Pass().WithLayer("driver"), ""
	}
}

// writeDecision encodes the verdict. Pass is empty stdout by protocol.
func writeDecision(out io.Writer, d types.Decision) error {
	if d.IsPass() {
		return nil
	}
	env := types.HookOutput{
		HookSpecificOutput: types.HookSpecificOutput{
			HookEventName:            types.HookEventPreToolUse,
			PermissionDecision:       string(d.Verdict),
			PermissionDecisionReason: d.Reason,
			AdditionalContext:        d.Guidance,
		},
	}
	return json.NewEncoder(out).Encode(env)
}
