package session

import (
	"encoding/json"
	"fmt"
)

// archiveVersion identifies the export document layout.
const archiveVersion = 1

// archiveDoc is the self-describing export format for one session.
// Export followed by import reproduces the session field for field,
// including any merged analysis.
type archiveDoc struct {
	Version int `json:"version"`
	Session
}

// ExportArchive serializes a session to its archive document.
func ExportArchive(s *Session) ([]byte, error) {
	doc := archiveDoc{Version: archiveVersion, Session: *s}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export archive: %w", err)
	}
	return data, nil
}

// ImportArchive parses a previously exported archive document and re-checks
// its structural invariants before accepting it.
func ImportArchive(raw []byte) (*Session, error) {
	var doc archiveDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &FormatError{Reason: "archive is not well-formed JSON", Err: err}
	}
	if doc.Version != archiveVersion {
		return nil, &FormatError{Reason: fmt.Sprintf("unsupported archive version %d", doc.Version)}
	}

	s := doc.Session
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the invariants an imported session must hold: a session
// identifier, unique message identifiers, and recognized risk levels on any
// embedded events.
func Validate(s *Session) error {
	if s.ID == "" {
		return &FormatError{Reason: "archive has no session id"}
	}
	if s.ContentHash == "" {
		return &FormatError{Reason: "archive has no content hash"}
	}

	seen := make(map[string]bool, len(s.Messages))
	for _, m := range s.Messages {
		if m.ID == "" {
			return &FormatError{Reason: "message with empty id"}
		}
		if seen[m.ID] {
			return &FormatError{Reason: "duplicate message id " + m.ID}
		}
		seen[m.ID] = true
	}

	if s.Analysis != nil {
		for i, ev := range s.Analysis.Events {
			if !ev.RiskLevel.Valid() {
				return &FormatError{Reason: fmt.Sprintf("event %d has unrecognized risk level %q", i, ev.RiskLevel)}
			}
		}
	}
	return nil
}
