// Package audit writes one record per decision to a local sink. Auditing is
// best-effort by contract: a full disk or bad permissions must never delay
// or change a verdict, so every sink error is swallowed by the caller.
package audit

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anthonysapien/hall-pass/pkg/types"
)

// Outcome is the audit-log view of a decision.
type Outcome string

const (
	OutcomeAllow    Outcome = "allow"
	OutcomePrompt   Outcome = "prompt"
	OutcomeFeedback Outcome = "feedback"
)

// Record is one audit line.
type Record struct {
	ID       string  `json:"id"`
	TS       string  `json:"ts"`
	Tool     string  `json:"tool"`
	Input    string  `json:"input"`
	Decision Outcome `json:"decision"`
	Reason   string  `json:"reason"`
	Layer    string  `json:"layer"`
}

// Sink persists records.
type Sink interface {
	Append(Record) error
	Close() error
}

// NewRecord stamps a record with an id and the current UTC time.
func NewRecord(tool, input string, d types.Decision, layer string) Record {
	out := OutcomePrompt
	switch {
	case d.IsAllow():
		out = OutcomeAllow
	case d.Guidance != "":
		out = OutcomeFeedback
	}
	return Record{
		ID:       uuid.NewString(),
		TS:       time.Now().UTC().Format(time.RFC3339),
		Tool:     tool,
		Input:    input,
		Decision: out,
		Reason:   d.Reason,
		Layer:    layer,
	}
}

// Nop discards everything; used when auditing is disabled.
type Nop struct{}

func (Nop) Append(Record) error { return nil }
func (Nop) Close() error        { return nil }

// Open picks a sink from the configured path: .db/.sqlite gets the sqlite
// store, anything else appends JSONL. Any open failure degrades to Nop so
// the decision path stays unaffected.
func Open(enabled bool, path string) Sink {
	if !enabled || path == "" {
		return Nop{}
	}
	if IsSQLitePath(path) {
		if s, err := OpenSQLite(path); err == nil {
			return s
		}
		return Nop{}
	}
	if s, err := OpenJSONL(path); err == nil {
		return s
	}
	return Nop{}
}

// IsSQLitePath reports whether a configured audit path selects the sqlite
// store rather than JSONL.
func IsSQLitePath(path string) bool {
	for _, suffix := range []string{".db", ".sqlite", ".sqlite3"} {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
