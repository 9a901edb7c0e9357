package session

import (
	"bytes"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tom26757207-cyber/line-archive/internal/classify"
	"github.com/tom26757207-cyber/line-archive/internal/parse"
)

// FormatError means the input could not be decoded as text or an archive
// file is not well-formed. No session is created when it is returned.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return "format: " + e.Reason + ": " + e.Err.Error()
	}
	return "format: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FromTranscript builds a complete session from raw transcript bytes: hash,
// parse, classify every message, collect participants, stamp identity and
// creation time. A transcript that parses to zero messages is a valid,
// degenerate session, not a failure.
func FromTranscript(raw []byte, fileName string) (*Session, error) {
	if !utf8.Valid(raw) {
		return nil, &FormatError{Reason: "transcript is not valid UTF-8 text"}
	}

	text := string(bytes.TrimPrefix(raw, utf8BOM))
	result := parse.ParseTranscript(text)

	for i := range result.Messages {
		m := &result.Messages[i]
		if m.IsSystem {
			// system notices stay in the timeline but are never
			// classified or marked important
			continue
		}
		m.Tags, m.Important = classify.Classify(m.Content)
	}

	return &Session{
		ID:           uuid.NewString(),
		FileName:     fileName,
		CreatedAt:    time.Now().UTC(),
		ContentHash:  HashContent(raw),
		ByteSize:     len(raw),
		Messages:     result.Messages,
		Participants: result.Participants,
	}, nil
}
