// Package shell turns a raw command string into the flat command list the
// decision engine reasons about. Parsing uses a real bash grammar
// (mvdan.cc/sh), so quoting tricks like 'rm' -rf or $(rm …) cannot hide a
// program name from the evaluator.
package shell

import (
	"fmt"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Invocation is one command call found anywhere in the parse tree.
// Args[0] is always Name, with any directory prefix stripped.
type Invocation struct {
	Name    string
	Args    []string
	Assigns []Assign
}

// Assign is an inline variable assignment prefix (FOO=bar cmd).
type Assign struct {
	Name  string
	Value string
}

// RedirOp distinguishes file-reading from file-writing redirections.
type RedirOp int

const (
	RedirRead RedirOp = iota
	RedirWrite
)

// Redirect is an I/O redirection with a file target, found anywhere in the
// tree. Fd duplications and heredocs carry no path and are not reported.
type Redirect struct {
	Path string
	Op   RedirOp
}

// ParsedCommand is the flattened view of a full command line: every
// invocation across pipes, chains, substitutions and loop bodies, plus every
// file redirection.
type ParsedCommand struct {
	Invocations []Invocation
	Redirects   []Redirect
}

// Parse parses src as bash. Any syntax error is returned to the caller, which
// must treat it as "cannot vouch for this command" rather than ignoring it.
func Parse(src string) (*ParsedCommand, error) {
	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(src), "")
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	pc := &ParsedCommand{}
	syntax.Walk(file, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.CallExpr:
			if inv, ok := invocationFromCall(n); ok {
				pc.Invocations = append(pc.Invocations, inv)
			}
		case *syntax.Redirect:
			if r, ok := redirectFromNode(n); ok {
				pc.Redirects = append(pc.Redirects, r)
			}
		}
		return true
	})
	return pc, nil
}

func invocationFromCall(call *syntax.CallExpr) (Invocation, bool) {
	inv := Invocation{}
	for _, as := range call.Assigns {
		if as.Name == nil {
			continue
		}
		inv.Assigns = append(inv.Assigns, Assign{
			Name:  as.Name.Value,
			Value: wordText(as.Value),
		})
	}
	if len(call.Args) == 0 {
		// Assignment-only statement (FOO=bar); not an invocation.
		return Invocation{}, false
	}
	for _, w := range call.Args {
		inv.Args = append(inv.Args, wordText(w))
	}
	inv.Name = ProgramName(inv.Args[0])
	inv.Args[0] = inv.Name
	return inv, true
}

func redirectFromNode(r *syntax.Redirect) (Redirect, bool) {
	var op RedirOp
	switch r.Op {
	case syntax.RdrOut, syntax.AppOut, syntax.ClbOut, syntax.RdrAll, syntax.AppAll:
		op = RedirWrite
	case syntax.RdrIn:
		op = RedirRead
	default:
		// Heredocs, herestrings, fd duplication: no file target.
		return Redirect{}, false
	}
	path := wordText(r.Word)
	if path == "" {
		return Redirect{}, false
	}
	return Redirect{Path: path, Op: op}, true
}

// ProgramName strips any directory prefix from a command word, so that
// /usr/bin/grep and grep evaluate identically.
func ProgramName(arg0 string) string {
	if strings.ContainsRune(arg0, '/') {
		return filepath.Base(arg0)
	}
	return arg0
}
