// Package analyze drives the external analysis collaborator and merges its
// structured output onto a session.
package analyze

import (
	"context"

	"github.com/tom26757207-cyber/line-archive/internal/parse"
	"github.com/tom26757207-cyber/line-archive/internal/session"
)

// DefaultSampleWindow caps how many messages a collaborator request carries.
const DefaultSampleWindow = 200

// Collaborator is the capability boundary to the external generative
// analysis service: submit sampled messages, receive a structured analysis
// or a typed failure. Implementations must honor ctx cancellation.
type Collaborator interface {
	Analyze(ctx context.Context, msgs []parse.Message) (*session.Analysis, error)
}

// SampleMessages bounds msgs to at most window entries. When the transcript
// exceeds the window, the first and last half-windows are kept and the
// middle dropped — a deliberate origin+recency bias, not full context.
func SampleMessages(msgs []parse.Message, window int) []parse.Message {
	if window <= 0 {
		window = DefaultSampleWindow
	}
	if len(msgs) <= window {
		return msgs
	}

	head := window / 2
	tail := window - head
	out := make([]parse.Message, 0, window)
	out = append(out, msgs[:head]...)
	out = append(out, msgs[len(msgs)-tail:]...)
	return out
}
