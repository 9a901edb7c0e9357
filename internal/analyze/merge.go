package analyze

import (
	"log/slog"

	"github.com/tom26757207-cyber/line-archive/internal/session"
)

// Merge validates the analysis against the session and attaches it,
// replacing any prior analysis wholesale. On error the session is left
// exactly as it was.
//
// Per-event policy: a structurally invalid event (missing title,
// unrecognized risk level) is dropped and the remaining events kept.
// Related message IDs that do not resolve within the session are retained
// and recorded in UnresolvedMessageIDs — the collaborator sees a sampled
// window, so an out-of-window reference can still be semantically valid.
func Merge(s *session.Session, a *session.Analysis, logger *slog.Logger) error {
	if a == nil {
		return &SchemaError{Reason: "no analysis payload"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	idx := s.MessageIndex()

	kept := make([]session.CaseEvent, 0, len(a.Events))
	for i := range a.Events {
		ev := a.Events[i]
		if err := validateEvent(&ev); err != nil {
			logger.Warn("dropping invalid case event",
				"session_id", s.ID, "title", ev.Title, "error", err)
			continue
		}

		ev.UnresolvedMessageIDs = nil
		for _, id := range ev.RelatedMessageIDs {
			if _, ok := idx[id]; !ok {
				ev.UnresolvedMessageIDs = append(ev.UnresolvedMessageIDs, id)
			}
		}
		if len(ev.UnresolvedMessageIDs) > 0 {
			logger.Warn("case event references messages outside the session",
				"session_id", s.ID, "title", ev.Title,
				"unresolved", len(ev.UnresolvedMessageIDs))
		}
		kept = append(kept, ev)
	}
	a.Events = kept

	s.Analysis = a
	return nil
}
