package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthonysapien/hall-pass/internal/shell"
)

func pyInv(code string) shell.Invocation {
	return shell.Invocation{Name: "python3", Args: []string{"python3", "-c", code}}
}

func nodeInv(flag, code string) shell.Invocation {
	return shell.Invocation{Name: "node", Args: []string{"node", flag, code}}
}

func TestJSONRule(t *testing.T) {
	inv := pyInv("import json; print(json.loads(s))")
	advice, ok := GuidanceFor(inv, []shell.Invocation{inv})
	require.True(t, ok)
	require.Contains(t, advice, "jq")
}

func TestJSONRuleWithFetcher(t *testing.T) {
	inv := pyInv("import json; print(json.loads(s))")
	curl := shell.Invocation{Name: "curl", Args: []string{"curl", "https://x"}}
	advice, ok := GuidanceFor(inv, []shell.Invocation{curl, inv})
	require.True(t, ok)
	require.Contains(t, advice, "jq")
	require.Contains(t, advice, "Pipe")
}

func TestJSONRuleNode(t *testing.T) {
	for _, flag := range []string{"-e", "--eval", "-p", "--print"} {
		inv := nodeInv(flag, "JSON.parse(input)")
		advice, ok := GuidanceFor(inv, []shell.Invocation{inv})
		require.True(t, ok, flag)
		require.Contains(t, advice, "jq")
	}
}

func TestStringOpsRule(t *testing.T) {
	inv := pyInv("print('a,b,c'.split(',')[0])")
	advice, ok := GuidanceFor(inv, []shell.Invocation{inv})
	require.True(t, ok)
	require.Contains(t, advice, "sed")
	require.Contains(t, advice, "awk")
	require.Contains(t, advice, "tr")
	require.Contains(t, advice, "cut")
}

func TestStringOpsRuleNode(t *testing.T) {
	inv := nodeInv("-e", "s.toUpperCase()")
	_, ok := GuidanceFor(inv, []shell.Invocation{inv})
	require.True(t, ok)
}

func TestJSONBeatsStringOps(t *testing.T) {
	// Code with both JSON and string methods gets the jq suggestion.
	inv := pyInv("json.loads(x)['a'].split(',')")
	advice, ok := GuidanceFor(inv, []shell.Invocation{inv})
	require.True(t, ok)
	require.Contains(t, advice, "jq")
	require.NotContains(t, advice, "tr, cut")
}

func TestNoMatchWithoutInlineCode(t *testing.T) {
	inv := shell.Invocation{Name: "python3", Args: []string{"python3", "script.py"}}
	_, ok := GuidanceFor(inv, []shell.Invocation{inv})
	require.False(t, ok)

	grep := shell.Invocation{Name: "grep", Args: []string{"grep", "json", "f"}}
	_, ok = GuidanceFor(grep, []shell.Invocation{grep})
	require.False(t, ok)
}

func TestNoMatchForPlainCode(t *testing.T) {
	inv := pyInv("print(1 + 2)")
	_, ok := GuidanceFor(inv, []shell.Invocation{inv})
	require.False(t, ok)
}
