package inspect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthonysapien/hall-pass/internal/gitcheck"
	"github.com/anthonysapien/hall-pass/internal/shell"
	"github.com/anthonysapien/hall-pass/pkg/types"
)

// testCtx evaluates sub-commands with a stub: grep and echo are allowed,
// everything else passes through, mirroring how the real evaluator treats
// unknowns.
func testCtx() *Context {
	return &Context{
		Git: gitcheck.New(nil),
		Eval: func(inv shell.Invocation) types.Decision {
			if inv.Name == "grep" || inv.Name == "echo" {
				return types.Allow(inv.Name + " is safe")
			}
			return types.Pass()
		},
	}
}

func inv(args ...string) shell.Invocation {
	return shell.Invocation{Name: shell.ProgramName(args[0]), Args: args}
}

func TestRunUnknownName(t *testing.T) {
	d := Run(testCtx(), inv("some-unknown-command"))
	require.True(t, d.IsPass())
}

func TestRunRecoversPanic(t *testing.T) {
	registry["panicky"] = func(*Context, shell.Invocation) types.Decision {
		panic("boom")
	}
	defer delete(registry, "panicky")
	d := Run(testCtx(), inv("panicky"))
	require.True(t, d.IsAsk())
}

func TestXargs(t *testing.T) {
	tests := []struct {
		args []string
		want types.Verdict
	}{
		{[]string{"xargs", "grep", "foo"}, types.VerdictAllow},
		{[]string{"xargs", "-n", "1", "grep", "foo"}, types.VerdictAllow},
		{[]string{"xargs", "-I{}", "grep", "{}"}, types.VerdictAllow},
		{[]string{"xargs", "-I", "{}", "grep", "{}"}, types.VerdictAllow},
		{[]string{"xargs", "rm", "-rf"}, types.VerdictAsk},
		{[]string{"xargs", "-0", "rm"}, types.VerdictAsk},
		{[]string{"xargs"}, types.VerdictAllow},
		{[]string{"xargs", "-n", "1"}, types.VerdictAllow},
	}
	for _, tt := range tests {
		d := inspectXargs(testCtx(), inv(tt.args...))
		require.Equal(t, tt.want, d.Verdict, strings.Join(tt.args, " "))
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		args []string
		want types.Verdict
	}{
		{[]string{"find", ".", "-name", "*.ts"}, types.VerdictAllow},
		{[]string{"find", ".", "-name", "*.ts", "-exec", "grep", "-l", "foo", "{}", ";"}, types.VerdictAllow},
		{[]string{"find", ".", "-exec", "grep", "foo", "{}", "+"}, types.VerdictAllow},
		{[]string{"find", ".", "-delete"}, types.VerdictAsk},
		{[]string{"find", ".", "-ok", "rm", "{}", ";"}, types.VerdictAsk},
		{[]string{"find", ".", "-exec", "rm", "{}", ";"}, types.VerdictAsk},
		{[]string{"find", ".", "-exec", "grep", "x", "{}", ";", "-exec", "rm", "{}", ";"}, types.VerdictAsk},
		{[]string{"find", ".", "-exec"}, types.VerdictAsk},
	}
	for _, tt := range tests {
		d := inspectFind(testCtx(), inv(tt.args...))
		require.Equal(t, tt.want, d.Verdict, strings.Join(tt.args, " "))
	}
}

func TestSource(t *testing.T) {
	require.True(t, inspectSource(testCtx(), inv("source", "env.sh")).IsAsk())
	require.True(t, inspectSource(testCtx(), inv(".", "./env.sh")).IsAsk())
}

func TestSed(t *testing.T) {
	require.True(t, inspectSed(nil, inv("sed", "-i", "s/a/b/", "f")).IsAsk())
	require.True(t, inspectSed(nil, inv("sed", "-i.bak", "s/a/b/", "f")).IsAsk())
	require.True(t, inspectSed(nil, inv("sed", "--in-place", "s/a/b/", "f")).IsAsk())
	require.True(t, inspectSed(nil, inv("sed", "s/a/b/", "f")).IsAllow())
	require.True(t, inspectSed(nil, inv("sed", "-n", "1p", "f")).IsAllow())
}

func TestAwk(t *testing.T) {
	require.True(t, inspectAwk(nil, inv("awk", `{system("rm -rf /")}`)).IsAsk())
	require.True(t, inspectAwk(nil, inv("awk", `{system ("ls")}`)).IsAsk())
	require.True(t, inspectAwk(nil, inv("awk", `{"date" | getline d}`)).IsAsk())
	require.True(t, inspectAwk(nil, inv("awk", `{"date"|getline d}`)).IsAsk())
	require.True(t, inspectAwk(nil, inv("awk", "{print $1}", "f")).IsAllow())
}

func TestKill(t *testing.T) {
	tests := []struct {
		args []string
		want types.Verdict
	}{
		{[]string{"kill", "1234"}, types.VerdictAllow},
		{[]string{"kill", "10"}, types.VerdictAllow},
		{[]string{"kill", "1"}, types.VerdictAsk},
		{[]string{"kill", "-9", "1"}, types.VerdictAsk},
		{[]string{"kill", "-9", "-1"}, types.VerdictAsk},
		{[]string{"kill", "-s", "TERM", "1234"}, types.VerdictAllow},
		{[]string{"kill", "-s", "TERM", "1"}, types.VerdictAsk},
		{[]string{"kill", "-HUP", "4321"}, types.VerdictAllow},
		{[]string{"kill", "-1"}, types.VerdictAllow}, // -1 here is SIGHUP, no PIDs
	}
	for _, tt := range tests {
		d := inspectKill(nil, inv(tt.args...))
		require.Equal(t, tt.want, d.Verdict, strings.Join(tt.args, " "))
	}
}

func TestChmod(t *testing.T) {
	tests := []struct {
		args []string
		want types.Verdict
	}{
		{[]string{"chmod", "0644", "f"}, types.VerdictAllow},
		{[]string{"chmod", "644", "f"}, types.VerdictAllow},
		{[]string{"chmod", "755", "f"}, types.VerdictAllow},
		{[]string{"chmod", "0777", "f"}, types.VerdictAsk},
		{[]string{"chmod", "777", "f"}, types.VerdictAsk},
		{[]string{"chmod", "666", "f"}, types.VerdictAsk},
		{[]string{"chmod", "4755", "f"}, types.VerdictAsk},
		{[]string{"chmod", "1777", "/tmp/x"}, types.VerdictAsk},
		{[]string{"chmod", "2755", "f"}, types.VerdictAsk},
		{[]string{"chmod", "u+x", "f"}, types.VerdictAllow},
		{[]string{"chmod", "u+s", "f"}, types.VerdictAsk},
		{[]string{"chmod", "g+s", "f"}, types.VerdictAsk},
		{[]string{"chmod", "o+w", "f"}, types.VerdictAsk},
		{[]string{"chmod", "a+w", "f"}, types.VerdictAsk},
		{[]string{"chmod", "go+w", "f"}, types.VerdictAsk},
		{[]string{"chmod", "-R", "u+x", "f"}, types.VerdictAllow},
	}
	for _, tt := range tests {
		d := inspectChmod(nil, inv(tt.args...))
		require.Equal(t, tt.want, d.Verdict, strings.Join(tt.args, " "))
	}
}

func TestDocker(t *testing.T) {
	tests := []struct {
		args []string
		want types.Verdict
	}{
		{[]string{"docker"}, types.VerdictAllow},
		{[]string{"docker", "ps"}, types.VerdictAllow},
		{[]string{"docker", "compose", "up", "-d"}, types.VerdictAllow},
		{[]string{"docker", "build", "-t", "x", "."}, types.VerdictAllow},
		{[]string{"docker", "stop", "c1"}, types.VerdictAllow},
		{[]string{"docker", "rm", "c1"}, types.VerdictAllow},
		{[]string{"docker", "run", "alpine", "ls"}, types.VerdictAllow},
		{[]string{"docker", "run", "--privileged", "alpine"}, types.VerdictAsk},
		{[]string{"docker", "run", "--pid=host", "alpine"}, types.VerdictAsk},
		{[]string{"docker", "run", "--net=host", "alpine"}, types.VerdictAsk},
		{[]string{"docker", "exec", "--network=host", "c1", "sh"}, types.VerdictAsk},
		{[]string{"docker", "run", "-v", "/:/host", "alpine"}, types.VerdictAsk},
		{[]string{"docker", "run", "--volume=/:/host", "alpine"}, types.VerdictAsk},
		{[]string{"docker", "run", "-v", "/data:/data", "alpine"}, types.VerdictAllow},
		{[]string{"docker", "buildx", "bake"}, types.VerdictAsk},
	}
	for _, tt := range tests {
		d := inspectDocker(nil, inv(tt.args...))
		require.Equal(t, tt.want, d.Verdict, strings.Join(tt.args, " "))
	}
}

func TestNodePython(t *testing.T) {
	require.True(t, inspectNode(nil, inv("node", "-e", "x")).IsAsk())
	require.True(t, inspectNode(nil, inv("node", "--print", "x")).IsAsk())
	require.True(t, inspectNode(nil, inv("node", "server.js")).IsAllow())
	require.True(t, inspectPython(nil, inv("python3", "-c", "x")).IsAsk())
	require.True(t, inspectPython(nil, inv("python", "-c", "x")).IsAsk())
	require.True(t, inspectPython(nil, inv("python3", "script.py")).IsAllow())
}
