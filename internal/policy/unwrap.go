package policy

import (
	"strings"

	"github.com/anthonysapien/hall-pass/internal/shell"
)

// Unwrap peels transparent wrappers (nohup, nice, timeout) off an invocation
// until the innermost command is exposed. Wrappers change scheduling or
// lifetime, never behavior, so policy applies to what they wrap. Inline
// assigns carry through. An invocation that is all wrapper and no command is
// returned unchanged.
func Unwrap(inv shell.Invocation) shell.Invocation {
	for {
		var rest []string
		switch inv.Name {
		case "nohup":
			rest = inv.Args[1:]
		case "nice":
			rest = skipNiceFlags(inv.Args[1:])
		case "timeout":
			rest = skipTimeoutFlags(inv.Args[1:])
		default:
			return inv
		}
		if len(rest) == 0 {
			return inv
		}
		inner := shell.Invocation{
			Name:    shell.ProgramName(rest[0]),
			Args:    append([]string{}, rest...),
			Assigns: inv.Assigns,
		}
		inner.Args[0] = inner.Name
		inv = inner
	}
}

// skipNiceFlags consumes -n N, -nN, --adjustment N, --adjustment=N and the
// BSD bare-number form (-10, --5).
func skipNiceFlags(args []string) []string {
	i := 0
	for i < len(args) {
		a := args[i]
		switch {
		case a == "-n" || a == "--adjustment":
			i += 2
		case strings.HasPrefix(a, "-n") && len(a) > 2:
			i++
		case strings.HasPrefix(a, "--adjustment="):
			i++
		case strings.HasPrefix(a, "-") && isAdjustment(a[1:]):
			i++
		default:
			return args[i:]
		}
	}
	return nil
}

// isAdjustment accepts the BSD niceness forms: digits with an optional
// second leading dash (-5, --5).
func isAdjustment(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// timeoutValueFlags consume the following argument unless written as =.
var timeoutValueFlags = map[string]struct{}{
	"-s": {}, "--signal": {}, "-k": {}, "--kill-after": {},
}

var timeoutBoolFlags = map[string]struct{}{
	"--preserve-status": {}, "--foreground": {}, "-v": {}, "--verbose": {},
}

// skipTimeoutFlags consumes timeout's flags and the DURATION positional,
// returning the wrapped command.
func skipTimeoutFlags(args []string) []string {
	i := 0
	for i < len(args) {
		a := args[i]
		if _, ok := timeoutValueFlags[a]; ok {
			i += 2
			continue
		}
		if _, ok := timeoutBoolFlags[a]; ok {
			i++
			continue
		}
		if strings.HasPrefix(a, "--signal=") || strings.HasPrefix(a, "--kill-after=") ||
			(strings.HasPrefix(a, "-s") && len(a) > 2) || (strings.HasPrefix(a, "-k") && len(a) > 2) {
			i++
			continue
		}
		break
	}
	// One positional DURATION, then the command.
	if i < len(args) {
		i++
	}
	if i >= len(args) {
		return nil
	}
	return args[i:]
}
