package analyze

import (
	"encoding/json"
	"fmt"

	"github.com/tom26757207-cyber/line-archive/internal/session"
)

// payload mirrors the collaborator response contract. Pointer fields
// distinguish "absent" from "zero" so required-field violations surface as
// SchemaError instead of silently defaulting.
type payload struct {
	Summary    *string         `json:"summary"`
	Sentiment  *string         `json:"sentiment"`
	Topics     []string        `json:"topics"`
	Dynamics   string          `json:"relationshipDynamics"`
	Events     *[]eventPayload `json:"events"`
	Statistics *statsPayload   `json:"statistics"`
}

type eventPayload struct {
	Title             string   `json:"title"`
	Summary           string   `json:"summary"`
	RiskLevel         string   `json:"riskLevel"`
	RiskAssessment    string   `json:"riskAssessment"`
	Remarks           string   `json:"remarks"`
	DateRange         string   `json:"dateRange"`
	RelatedMessageIDs []string `json:"relatedMessageIds"`
	FamilyExcerpts    []string `json:"familyExcerpts"`
	StaffExcerpts     []string `json:"staffExcerpts"`
}

type statsPayload struct {
	PaymentCount  int `json:"paymentCount"`
	ServiceCount  int `json:"serviceCount"`
	ScheduleCount int `json:"scheduleCount"`
	IssueCount    int `json:"issueCount"`
}

// ParsePayload validates the top-level response contract and converts it to
// an Analysis. Event-level problems are not decided here; the merge applies
// the per-event policy so a single bad event cannot sink a usable payload.
func ParsePayload(data []byte) (*session.Analysis, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &SchemaError{Reason: "response is not well-formed JSON: " + err.Error()}
	}

	switch {
	case p.Summary == nil:
		return nil, &SchemaError{Reason: "missing required field summary"}
	case p.Sentiment == nil:
		return nil, &SchemaError{Reason: "missing required field sentiment"}
	case p.Events == nil:
		return nil, &SchemaError{Reason: "missing required field events"}
	case p.Statistics == nil:
		return nil, &SchemaError{Reason: "missing required field statistics"}
	}

	a := &session.Analysis{
		Summary:   *p.Summary,
		Sentiment: *p.Sentiment,
		Topics:    p.Topics,
		Dynamics:  p.Dynamics,
		Stats: session.Stats{
			PaymentCount:  p.Statistics.PaymentCount,
			ServiceCount:  p.Statistics.ServiceCount,
			ScheduleCount: p.Statistics.ScheduleCount,
			IssueCount:    p.Statistics.IssueCount,
		},
	}
	for _, ev := range *p.Events {
		a.Events = append(a.Events, session.CaseEvent{
			Title:             ev.Title,
			Summary:           ev.Summary,
			RiskLevel:         session.RiskLevel(ev.RiskLevel),
			RiskAssessment:    ev.RiskAssessment,
			Remarks:           ev.Remarks,
			DateRange:         ev.DateRange,
			RelatedMessageIDs: ev.RelatedMessageIDs,
			FamilyExcerpts:    ev.FamilyExcerpts,
			StaffExcerpts:     ev.StaffExcerpts,
		})
	}
	return a, nil
}

// validateEvent reports why an event is structurally unusable, or nil.
func validateEvent(ev *session.CaseEvent) error {
	if ev.Title == "" {
		return fmt.Errorf("event has no title")
	}
	if !ev.RiskLevel.Valid() {
		return fmt.Errorf("unrecognized risk level %q", ev.RiskLevel)
	}
	return nil
}
