package inspect

import (
	"github.com/anthonysapien/hall-pass/internal/shell"
	"github.com/anthonysapien/hall-pass/pkg/types"
)

// inspectNode prompts on inline code evaluation; running a script file is
// no different from any other program the host already mediates.
func inspectNode(_ *Context, inv shell.Invocation) types.Decision {
	for _, a := range inv.Args[1:] {
		switch a {
		case "-e", "--eval", "-p", "--print":
			return types.Ask("node evaluates inline code")
		}
	}
	return types.Allow("node without inline code")
}

func inspectPython(_ *Context, inv shell.Invocation) types.Decision {
	for _, a := range inv.Args[1:] {
		if a == "-c" {
			return types.Ask(inv.Name + " evaluates inline code")
		}
	}
	return types.Allow(inv.Name + " without inline code")
}
