package analyze

import "errors"

// ErrAnalysisInFlight is returned when a second analysis is requested for a
// session whose previous request has not finished.
var ErrAnalysisInFlight = errors.New("analysis already in flight for this session")

// SchemaError means the collaborator payload violates the required-field or
// enum contract. The merge is aborted and the session left untouched.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string { return "analysis schema: " + e.Reason }

// CollaboratorError wraps a failed or cancelled collaborator request. No
// session mutation has occurred; retrying is up to the caller.
type CollaboratorError struct {
	Err error
}

func (e *CollaboratorError) Error() string { return "collaborator: " + e.Err.Error() }

func (e *CollaboratorError) Unwrap() error { return e.Err }
