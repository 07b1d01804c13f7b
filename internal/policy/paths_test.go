package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthonysapien/hall-pass/internal/registry"
)

func testPathPolicy(t *testing.T, protected, readOnly, noDelete []string) *PathPolicy {
	t.Helper()
	p, err := NewPathPolicy(protected, readOnly, noDelete, "/home/dev", "/home/dev/project")
	require.NoError(t, err)
	return p
}

func TestDefaultProtectedGlobs(t *testing.T) {
	p := testPathPolicy(t, nil, nil, nil)

	denied := []string{
		"/project/.env",
		".env",
		"/app/.env.local",
		"/etc/credentials.json",
		"/srv/secrets.yaml",
		"~/.ssh/authorized_keys",
		"~/.aws/config",
		"~/.gnupg/pubring.kbx",
		"/certs/server.pem",
		"/home/dev/.ssh/id_rsa",
		"/backup/id_rsa.old",
	}
	for _, path := range denied {
		require.Error(t, p.Check(path, registry.PathRead), path)
		require.Error(t, p.Check(path, registry.PathWrite), path)
		require.Error(t, p.Check(path, registry.PathDelete), path)
	}

	require.NoError(t, p.Check("/project/main.go", registry.PathWrite))
	require.NoError(t, p.Check("README.md", registry.PathRead))
}

func TestTierPrecedence(t *testing.T) {
	p := testPathPolicy(t,
		[]string{"/vault/**"},
		[]string{"/srv/config/**"},
		[]string{"/srv/data/**"},
	)

	// Protected: denied for everything.
	require.Error(t, p.Check("/vault/key", registry.PathRead))

	// Read-only: reads pass, writes and deletes fail.
	require.NoError(t, p.Check("/srv/config/app.yaml", registry.PathRead))
	require.Error(t, p.Check("/srv/config/app.yaml", registry.PathWrite))
	require.Error(t, p.Check("/srv/config/app.yaml", registry.PathDelete))

	// No-delete: only deletes fail.
	require.NoError(t, p.Check("/srv/data/rows.db", registry.PathRead))
	require.NoError(t, p.Check("/srv/data/rows.db", registry.PathWrite))
	require.Error(t, p.Check("/srv/data/rows.db", registry.PathDelete))
}

func TestResolve(t *testing.T) {
	p := testPathPolicy(t, nil, nil, nil)
	require.Equal(t, "/home/dev/notes.txt", p.Resolve("~/notes.txt"))
	require.Equal(t, "/home/dev", p.Resolve("~"))
	require.Equal(t, "/home/dev/project/a/b", p.Resolve("a/b"))
	require.Equal(t, "/home/dev/project/b", p.Resolve("./a/../b"))
	require.Equal(t, "/abs/x", p.Resolve("/abs/x"))
}

func TestCaseSensitive(t *testing.T) {
	p := testPathPolicy(t, []string{"/Vault/**"}, nil, nil)
	require.Error(t, p.Check("/Vault/key", registry.PathRead))
	require.NoError(t, p.Check("/vault/key", registry.PathRead))
}

func TestInvalidGlob(t *testing.T) {
	_, err := NewPathPolicy([]string{"[unclosed"}, nil, nil, "/home/dev", "/")
	require.Error(t, err)
}

func TestLooksLikePath(t *testing.T) {
	for _, arg := range []string{"/etc/hosts", "./x", "../x", "~/x", "a/b", ".env"} {
		require.True(t, LooksLikePath(arg), arg)
	}
	for _, arg := range []string{"", "foo", "install", "HEAD"} {
		require.False(t, LooksLikePath(arg), arg)
	}
}
