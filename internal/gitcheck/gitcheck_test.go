package gitcheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthonysapien/hall-pass/internal/shell"
	"github.com/anthonysapien/hall-pass/pkg/types"
)

func gitInv(args ...string) shell.Invocation {
	full := append([]string{"git"}, args...)
	return shell.Invocation{Name: "git", Args: full}
}

func TestSafeSubcommands(t *testing.T) {
	p := New(nil)
	for _, sub := range []string{"status", "log", "diff", "add", "commit", "fetch", "pull", "worktree"} {
		d := p.Check(gitInv(sub))
		require.Equal(t, types.VerdictAllow, d.Verdict, sub)
	}
}

func TestDestructiveSubcommands(t *testing.T) {
	p := New(nil)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("reset", "--hard")).Verdict)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("clean", "-fd")).Verdict)
}

func TestUnknownSubcommand(t *testing.T) {
	p := New(nil)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("filter-branch")).Verdict)
}

func TestBareGit(t *testing.T) {
	p := New(nil)
	require.Equal(t, types.VerdictAllow, p.Check(gitInv()).Verdict)
	require.Equal(t, types.VerdictAllow, p.Check(gitInv("--no-pager")).Verdict)
}

func TestPushPolicy(t *testing.T) {
	p := New(nil)

	tests := []struct {
		args []string
		want types.Verdict
	}{
		{[]string{"push"}, types.VerdictAllow},
		{[]string{"push", "origin", "feat/x"}, types.VerdictAllow},
		{[]string{"push", "--force"}, types.VerdictAsk},
		{[]string{"push", "-f", "origin", "feat/x"}, types.VerdictAsk},
		{[]string{"push", "--force-with-lease"}, types.VerdictAsk},
		{[]string{"push", "--force-with-lease=refs/heads/x"}, types.VerdictAsk},
		{[]string{"push", "--force-if-includes"}, types.VerdictAsk},
		{[]string{"push", "origin", "main"}, types.VerdictAsk},
		{[]string{"push", "origin", "HEAD:main"}, types.VerdictAsk},
		{[]string{"push", "origin", "feat:production"}, types.VerdictAsk},
	}
	for _, tt := range tests {
		d := p.Check(gitInv(tt.args...))
		require.Equal(t, tt.want, d.Verdict, strings.Join(tt.args, " "))
	}
}

func TestRebaseProtectedBranch(t *testing.T) {
	p := New(nil)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("rebase", "main")).Verdict)
	require.Equal(t, types.VerdictAllow, p.Check(gitInv("rebase", "feat/x")).Verdict)
}

func TestUserProtectedBranches(t *testing.T) {
	p := New([]string{"release"})
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("push", "origin", "release")).Verdict)
}

func TestCheckoutRestoreDot(t *testing.T) {
	p := New(nil)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("checkout", ".")).Verdict)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("restore", ".")).Verdict)
	require.Equal(t, types.VerdictAllow, p.Check(gitInv("checkout", "feat/x")).Verdict)
}

func TestBranchDeletion(t *testing.T) {
	p := New(nil)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("branch", "-D", "feat/x")).Verdict)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("branch", "-d", "feat/x")).Verdict)
	require.Equal(t, types.VerdictAllow, p.Check(gitInv("branch", "feat/x")).Verdict)
}

func TestStashDropClear(t *testing.T) {
	p := New(nil)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("stash", "drop")).Verdict)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("stash", "clear")).Verdict)
	require.Equal(t, types.VerdictAllow, p.Check(gitInv("stash", "pop")).Verdict)
}

func TestConfigInjection(t *testing.T) {
	p := New(nil)

	tests := []struct {
		args []string
		want types.Verdict
	}{
		{[]string{"-c", `core.fsmonitor=rm -rf /`, "status"}, types.VerdictAsk},
		{[]string{"-c", "core.sshCommand=evil", "fetch"}, types.VerdictAsk},
		{[]string{"--config=alias.st=!sh", "status"}, types.VerdictAsk},
		{[]string{"-c", "filter.lfs.smudge=evil", "status"}, types.VerdictAsk},
		{[]string{"-c", "pager.log=evil", "log"}, types.VerdictAsk},
		{[]string{"-c", "color.ui=always", "status"}, types.VerdictAllow},
		{[]string{"-C", "/tmp/repo", "status"}, types.VerdictAllow},
	}
	for _, tt := range tests {
		d := p.Check(gitInv(tt.args...))
		require.Equal(t, tt.want, d.Verdict, strings.Join(tt.args, " "))
	}
}

func TestConfigSubcommand(t *testing.T) {
	p := New(nil)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("config", "core.hooksPath", "/tmp")).Verdict)
	require.Equal(t, types.VerdictAsk, p.Check(gitInv("config", "--global", "alias.pushf", "push --force")).Verdict)
	require.Equal(t, types.VerdictAllow, p.Check(gitInv("config", "user.email", "a@b.c")).Verdict)
}
