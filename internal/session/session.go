// Package session defines the archive unit: a parsed transcript with its
// content hash, participants and optional analysis.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/tom26757207-cyber/line-archive/internal/parse"
)

// RiskLevel is the three-valued ordinal assigned to a case event.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether r is one of the three recognized levels.
// Unrecognized values are a validation error, never coerced to low.
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// CaseEvent is one analyst-identified incident spanning one or more messages.
// RelatedMessageIDs are plain lookup keys into the owning session's message
// set; UnresolvedMessageIDs records the subset that did not resolve at merge
// time (kept, since the collaborator may reference messages outside its
// sampled window).
type CaseEvent struct {
	Title                string    `json:"title"`
	Summary              string    `json:"summary"`
	RiskLevel            RiskLevel `json:"riskLevel"`
	RiskAssessment       string    `json:"riskAssessment"`
	Remarks              string    `json:"remarks"`
	DateRange            string    `json:"dateRange"`
	RelatedMessageIDs    []string  `json:"relatedMessageIds,omitempty"`
	UnresolvedMessageIDs []string  `json:"unresolvedMessageIds,omitempty"`
	FamilyExcerpts       []string  `json:"familyExcerpts,omitempty"`
	StaffExcerpts        []string  `json:"staffExcerpts,omitempty"`
}

// Stats are the tag counts as reported by the collaborator, not recomputed
// locally.
type Stats struct {
	PaymentCount  int `json:"paymentCount"`
	ServiceCount  int `json:"serviceCount"`
	ScheduleCount int `json:"scheduleCount"`
	IssueCount    int `json:"issueCount"`
}

// Analysis is the merged collaborator output. A session holds at most one;
// attaching a new one replaces the prior wholesale.
type Analysis struct {
	Summary   string      `json:"summary"`
	Sentiment string      `json:"sentiment"`
	Topics    []string    `json:"topics,omitempty"`
	Dynamics  string      `json:"relationshipDynamics,omitempty"`
	Events    []CaseEvent `json:"events"`
	Stats     Stats       `json:"statistics"`
}

// Session is the persisted archive unit. ContentHash is a pure function of
// the raw transcript bytes, so re-importing identical bytes is detectable
// regardless of any message-derived field.
type Session struct {
	ID           string          `json:"id"`
	FileName     string          `json:"fileName"`
	CreatedAt    time.Time       `json:"createdAt"`
	ContentHash  string          `json:"contentHash"`
	ByteSize     int             `json:"byteSize"`
	Messages     []parse.Message `json:"messages"`
	Participants []string        `json:"participants,omitempty"`
	Analysis     *Analysis       `json:"analysis,omitempty"`
}

// ShortID returns the display prefix of the session identifier. Imported
// archives only guarantee a non-empty identifier, so short ones come back
// whole.
func (s *Session) ShortID() string {
	if len(s.ID) > 8 {
		return s.ID[:8]
	}
	return s.ID
}

// HashContent returns the SHA-256 hex digest of the raw transcript bytes as
// read, before any parsing. Identity and dedup key only, not a security
// control.
func HashContent(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// MessageIndex builds an ID → message lookup over the session's messages.
// Case events reference messages through this map; the links never own.
func (s *Session) MessageIndex() map[string]*parse.Message {
	idx := make(map[string]*parse.Message, len(s.Messages))
	for i := range s.Messages {
		idx[s.Messages[i].ID] = &s.Messages[i]
	}
	return idx
}
