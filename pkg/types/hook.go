package types

// HookInput is the envelope the host writes to the hook's stdin.
type HookInput struct {
	ToolName  string    `json:"tool_name"`
	ToolInput ToolInput `json:"tool_input"`
}

// ToolInput carries the per-tool payload. Only the fields relevant to the
// hook's decision are decoded; everything else is ignored.
type ToolInput struct {
	Command  string `json:"command,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

// HookOutput is the envelope written to stdout for allow and ask verdicts.
// Pass is encoded as empty stdout, so it never appears here.
type HookOutput struct {
	HookSpecificOutput HookSpecificOutput `json:"hookSpecificOutput"`
}

type HookSpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
	AdditionalContext        string `json:"additionalContext,omitempty"`
}

const HookEventPreToolUse = "PreToolUse"
