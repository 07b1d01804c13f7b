package policy

import (
	"strings"

	"github.com/anthonysapien/hall-pass/internal/shell"
)

// Guidance rules pattern-match the whole pipeline and return advice when the
// assistant reached for a scripting one-liner where a shell tool is the
// better fit. Rules run in order; the first match wins, so JSON-handling
// code is never also flagged as string manipulation.

var jsonMarkers = []string{
	"json.load", "json.loads", "json.dump", "json.dumps",
	"JSON.parse", "JSON.stringify", "json", "JSON",
}

var stringOpMarkers = []string{
	".split(", ".strip(", ".replace(", ".join(",
	".upper()", ".lower()", ".startswith(", ".endswith(",
	".find(", ".count(",
	".trim(", ".toUpperCase(", ".toLowerCase(",
	".startsWith(", ".endsWith(", ".indexOf(", ".includes(",
	"re.sub(", "re.match(", "re.search(", "re.findall(",
}

// GuidanceFor runs the guidance rules for one invocation against the full
// pipeline. It returns advice text and whether any rule matched.
func GuidanceFor(inv shell.Invocation, pipeline []shell.Invocation) (string, bool) {
	code, ok := inlineCode(inv)
	if !ok {
		return "", false
	}

	if containsAny(code, jsonMarkers) {
		if pipelineHasFetcher(pipeline) {
			return "Pipe the response straight into jq instead of parsing JSON with a " +
				inv.Name + " one-liner; jq handles extraction, filtering and reshaping directly.", true
		}
		return "Use jq to parse JSON instead of a " + inv.Name + " one-liner.", true
	}

	if containsAny(code, stringOpMarkers) {
		return "Use the shell text tools (sed, awk, tr, cut) for string manipulation instead of a " +
			inv.Name + " one-liner.", true
	}

	return "", false
}

// inlineCode extracts the code argument of python -c or node -e/-p.
func inlineCode(inv shell.Invocation) (string, bool) {
	var codeFlags map[string]struct{}
	switch inv.Name {
	case "python", "python3":
		codeFlags = map[string]struct{}{"-c": {}}
	case "node":
		codeFlags = map[string]struct{}{"-e": {}, "--eval": {}, "-p": {}, "--print": {}}
	default:
		return "", false
	}
	for i := 1; i < len(inv.Args)-1; i++ {
		if _, ok := codeFlags[inv.Args[i]]; ok {
			return inv.Args[i+1], true
		}
	}
	return "", false
}

func pipelineHasFetcher(pipeline []shell.Invocation) bool {
	for _, inv := range pipeline {
		if inv.Name == "curl" || inv.Name == "wget" {
			return true
		}
	}
	return false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
