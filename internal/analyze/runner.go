package analyze

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/tom26757207-cyber/line-archive/internal/session"
	"github.com/tom26757207-cyber/line-archive/internal/store"
)

// Runner drives the full analysis round trip: sample, call the
// collaborator, merge, persist. It enforces at most one in-flight request
// per session.
type Runner struct {
	mu       sync.Mutex
	inflight map[string]struct{}

	collab Collaborator
	window int
	logger *slog.Logger
}

func NewRunner(collab Collaborator, window int, logger *slog.Logger) *Runner {
	if window <= 0 {
		window = DefaultSampleWindow
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		inflight: make(map[string]struct{}),
		collab:   collab,
		window:   window,
		logger:   logger,
	}
}

// Run analyzes s and persists the merged result through arch. A failure at
// any step leaves the session and the archive untouched. Cancel ctx to
// abandon the collaborator call.
func (r *Runner) Run(ctx context.Context, arch *store.Archive, s *session.Session) (*session.Analysis, error) {
	if err := r.acquire(s.ID); err != nil {
		return nil, err
	}
	defer r.release(s.ID)

	sampled := SampleMessages(s.Messages, r.window)
	r.logger.Info("requesting analysis",
		"session_id", s.ID, "messages", len(s.Messages), "sampled", len(sampled))

	a, err := r.collab.Analyze(ctx, sampled)
	if err != nil {
		var schemaErr *SchemaError
		var collabErr *CollaboratorError
		if errors.As(err, &schemaErr) || errors.As(err, &collabErr) {
			return nil, err
		}
		return nil, &CollaboratorError{Err: err}
	}

	prior := s.Analysis
	if err := Merge(s, a, r.logger); err != nil {
		return nil, err
	}
	if err := arch.Persist(); err != nil {
		s.Analysis = prior
		return nil, err
	}

	r.logger.Info("analysis merged",
		"session_id", s.ID, "events", len(a.Events))
	return a, nil
}

func (r *Runner) acquire(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inflight[id]; busy {
		return ErrAnalysisInFlight
	}
	r.inflight[id] = struct{}{}
	return nil
}

func (r *Runner) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, id)
}
