package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// hookMatcher covers the three tools the engine understands.
const hookMatcher = "Bash|Write|Edit"

func newInstallCmd() *cobra.Command {
	var settingsPath string
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Register the hook in the host's settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("locate executable: %w", err)
			}
			path, err := resolveSettingsPath(settingsPath)
			if err != nil {
				return err
			}
			if err := installHook(path, exe+" hook"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed PreToolUse hook in %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&settingsPath, "settings", "", "settings file to edit (default ~/.claude/settings.json)")
	return cmd
}

func newUninstallCmd() *cobra.Command {
	var settingsPath string
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the hook from the host's settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := resolveSettingsPath(settingsPath)
			if err != nil {
				return err
			}
			removed, err := uninstallHook(path)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "removed PreToolUse hook from %s\n", path)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "no hallpass hook found")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&settingsPath, "settings", "", "settings file to edit (default ~/.claude/settings.json)")
	return cmd
}

func resolveSettingsPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// installHook adds a PreToolUse entry pointing at command, preserving every
// unrelated setting. Running it twice is a no-op.
func installHook(path, command string) error {
	settings, err := readSettings(path)
	if err != nil {
		return err
	}

	hooks := asMap(settings["hooks"])
	entries := asSlice(hooks["PreToolUse"])
	if !hasHookCommand(entries, command) {
		entries = append(entries, map[string]any{
			"matcher": hookMatcher,
			"hooks": []any{
				map[string]any{"type": "command", "command": command},
			},
		})
	}
	hooks["PreToolUse"] = entries
	settings["hooks"] = hooks

	return writeSettings(path, settings)
}

// uninstallHook removes only entries whose command mentions hallpass.
func uninstallHook(path string) (bool, error) {
	settings, err := readSettings(path)
	if err != nil {
		return false, err
	}
	hooks := asMap(settings["hooks"])
	entries := asSlice(hooks["PreToolUse"])

	var kept []any
	removed := false
	for _, entry := range entries {
		if entryMentionsHallpass(entry) {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !removed {
		return false, nil
	}
	if len(kept) > 0 {
		hooks["PreToolUse"] = kept
	} else {
		delete(hooks, "PreToolUse")
	}
	if len(hooks) > 0 {
		settings["hooks"] = hooks
	} else {
		delete(settings, "hooks")
	}
	return true, writeSettings(path, settings)
}

func readSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	settings := map[string]any{}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return settings, nil
}

func writeSettings(path string, settings map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir settings dir: %w", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func hasHookCommand(entries []any, command string) bool {
	for _, entry := range entries {
		for _, h := range asSlice(asMap(entry)["hooks"]) {
			if cmd, _ := asMap(h)["command"].(string); cmd == command {
				return true
			}
		}
	}
	return false
}

func entryMentionsHallpass(entry any) bool {
	for _, h := range asSlice(asMap(entry)["hooks"]) {
		cmd, _ := asMap(h)["command"].(string)
		if strings.Contains(cmd, "hallpass") {
			return true
		}
	}
	return false
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
