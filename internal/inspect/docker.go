package inspect

import (
	"strings"

	"github.com/anthonysapien/hall-pass/internal/shell"
	"github.com/anthonysapien/hall-pass/pkg/types"
)

// dockerSafeSubcommands are read-only, build, or compose operations.
var dockerSafeSubcommands = map[string]struct{}{
	"ps": {}, "images": {}, "logs": {}, "inspect": {}, "stats": {},
	"top": {}, "version": {}, "info": {}, "network": {}, "volume": {},
	"system": {}, "build": {}, "pull": {}, "tag": {}, "login": {},
	"logout": {}, "compose": {}, "container": {}, "image": {},
}

// dockerLifecycle affects only containers the assistant could already see.
var dockerLifecycle = map[string]struct{}{
	"stop": {}, "rm": {}, "rmi": {}, "restart": {},
}

func inspectDocker(_ *Context, inv shell.Invocation) types.Decision {
	if len(inv.Args) < 2 {
		return types.Allow("docker without subcommand")
	}
	sub := inv.Args[1]
	if _, ok := dockerSafeSubcommands[sub]; ok {
		return types.Allow("docker " + sub)
	}
	if _, ok := dockerLifecycle[sub]; ok {
		return types.Allow("docker " + sub)
	}
	if sub == "run" || sub == "exec" {
		return checkDockerRun(sub, inv.Args[2:])
	}
	return types.Ask("unrecognized docker subcommand " + sub)
}

// checkDockerRun denies host-namespace and root-mount escapes.
func checkDockerRun(sub string, args []string) types.Decision {
	for i, a := range args {
		switch {
		case a == "--privileged":
			return types.Ask("docker " + sub + " --privileged")
		case a == "--pid=host":
			return types.Ask("docker " + sub + " shares host PID namespace")
		case a == "--net=host", a == "--network=host":
			return types.Ask("docker " + sub + " shares host network")
		case a == "-v" || a == "--volume":
			if i+1 < len(args) && strings.HasPrefix(args[i+1], "/:") {
				return types.Ask("docker " + sub + " mounts the host root")
			}
		case strings.HasPrefix(a, "-v=") || strings.HasPrefix(a, "--volume="):
			_, val, _ := strings.Cut(a, "=")
			if strings.HasPrefix(val, "/:") {
				return types.Ask("docker " + sub + " mounts the host root")
			}
		}
	}
	return types.Allow("docker " + sub)
}
