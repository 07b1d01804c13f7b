package inspect

import (
	"strings"

	"github.com/anthonysapien/hall-pass/internal/shell"
	"github.com/anthonysapien/hall-pass/pkg/types"
)

// xargsValueFlags consume the following argument.
var xargsValueFlags = []string{"-I", "-L", "-n", "-P", "-d", "-s", "-a", "-R"}

// inspectXargs finds the sub-command after xargs' own flags and re-enters
// the evaluator on it. xargs with no sub-command defaults to echo, which is
// harmless.
func inspectXargs(ctx *Context, inv shell.Invocation) types.Decision {
	i := 1
	for i < len(inv.Args) {
		a := inv.Args[i]
		if !strings.HasPrefix(a, "-") || a == "--" {
			if a == "--" {
				i++
			}
			break
		}
		if flag, attached := matchValueFlag(a, xargsValueFlags); flag != "" {
			if !attached {
				i++
			}
		}
		i++
	}
	if i >= len(inv.Args) {
		return types.Allow("xargs without a command defaults to echo")
	}
	sub := subInvocation(inv.Args[i:])
	d := ctx.Eval(sub)
	if d.IsPass() {
		// An unknown program typed directly falls through to the host, but
		// xargs feeding it piped input must not slip past the prompt.
		return types.Ask("xargs runs unrecognized command " + sub.Name)
	}
	return d
}

// inspectFind prompts on -delete and -ok, and recursively evaluates every
// -exec/-execdir clause. All clauses must come back Allow.
func inspectFind(ctx *Context, inv shell.Invocation) types.Decision {
	args := inv.Args
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-delete":
			return types.Ask("find -delete removes files")
		case "-ok", "-okdir":
			return types.Ask("find -ok executes a command")
		case "-exec", "-execdir":
			var sub []string
			j := i + 1
			for ; j < len(args); j++ {
				if args[j] == ";" || args[j] == "+" {
					break
				}
				sub = append(sub, args[j])
			}
			if len(sub) == 0 {
				return types.Ask("find -exec without a command")
			}
			if d := ctx.Eval(subInvocation(sub)); !d.IsAllow() {
				if d.IsPass() {
					return types.Ask("find -exec runs unrecognized command " + sub[0])
				}
				return d
			}
			i = j
		}
	}
	return types.Allow("find without destructive actions")
}

// matchValueFlag reports whether a is one of flags, either exactly (value in
// the next argument) or with the value attached (-I{}).
func matchValueFlag(a string, flags []string) (flag string, attached bool) {
	for _, f := range flags {
		if a == f {
			return f, false
		}
		if strings.HasPrefix(a, f) && len(a) > len(f) {
			return f, true
		}
	}
	return "", false
}

func subInvocation(argv []string) shell.Invocation {
	args := make([]string, len(argv))
	copy(args, argv)
	args[0] = shell.ProgramName(args[0])
	return shell.Invocation{Name: args[0], Args: args}
}
