package inspect

import (
	"strings"

	"github.com/anthonysapien/hall-pass/internal/shell"
	"github.com/anthonysapien/hall-pass/pkg/types"
)

// inspectSed only worries about in-place editing; a sed that writes to
// stdout cannot damage anything the redirect check doesn't already see.
func inspectSed(_ *Context, inv shell.Invocation) types.Decision {
	for _, a := range inv.Args[1:] {
		if a == "-i" || strings.HasPrefix(a, "-i") || a == "--in-place" || strings.HasPrefix(a, "--in-place=") {
			return types.Ask("sed -i edits files in place")
		}
	}
	return types.Allow("sed without in-place editing")
}

// inspectAwk catches the two awk escape hatches: system() and piping to or
// from another command via getline.
func inspectAwk(_ *Context, inv shell.Invocation) types.Decision {
	for _, a := range inv.Args[1:] {
		if strings.Contains(a, "system(") || strings.Contains(a, "system (") {
			return types.Ask("awk program calls system()")
		}
		if strings.Contains(a, "|getline") || strings.Contains(a, "| getline") {
			return types.Ask("awk program pipes through getline")
		}
	}
	return types.Allow("awk without system() or getline pipes")
}

// inspectKill treats the first flag-shaped argument as the signal and
// everything after it as PIDs. PID 1 is init; -1 is every process the user
// can signal.
func inspectKill(_ *Context, inv shell.Invocation) types.Decision {
	sawSignal := false
	i := 1
	for i < len(inv.Args) {
		a := inv.Args[i]
		if a == "--" {
			i++
			continue
		}
		if !sawSignal && strings.HasPrefix(a, "-") {
			sawSignal = true
			if a == "-s" || a == "--signal" {
				i++ // signal name follows
			}
			i++
			continue
		}
		if a == "1" || a == "-1" {
			return types.Ask("kill targets PID " + a)
		}
		i++
	}
	return types.Allow("kill with ordinary PIDs")
}

// inspectChmod prompts on modes that grant setuid/setgid/sticky bits or
// world write access, in both numeric and symbolic form.
func inspectChmod(_ *Context, inv shell.Invocation) types.Decision {
	mode := ""
	for _, a := range inv.Args[1:] {
		if strings.HasPrefix(a, "-") {
			continue
		}
		mode = a
		break
	}
	if mode == "" {
		return types.Allow("chmod without a mode")
	}

	if isNumericMode(mode) {
		m := mode
		if len(m) == 3 {
			m = "0" + m
		}
		if m[0] > '0' {
			return types.Ask("chmod mode " + mode + " sets special bits")
		}
		if m[3] >= '6' {
			return types.Ask("chmod mode " + mode + " grants world write")
		}
		return types.Allow("chmod mode " + mode)
	}

	if strings.Contains(mode, "+s") {
		return types.Ask("chmod grants setuid/setgid")
	}
	if strings.Contains(mode, "o+w") || strings.Contains(mode, "a+w") {
		return types.Ask("chmod grants world write")
	}
	return types.Allow("chmod symbolic mode " + mode)
}

func isNumericMode(s string) bool {
	if len(s) < 3 || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '7' {
			return false
		}
	}
	return true
}
