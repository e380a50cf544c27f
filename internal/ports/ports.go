package ports

import (
	"context"

	"github.com/forPelevin/hlselect/internal/types"
)

// Highlighter asks a text-understanding service for one highlight.
type Highlighter interface {
	Highlight(ctx context.Context, transcript string) (types.Candidate, error)
}

// Operator is the human on the other side of the console.
// Ask returns highlights.ErrCancelled when the operator interrupts.
type Operator interface {
	Ask(ctx context.Context, prompt string) (string, error)
	Say(format string, args ...any)
	Warn(format string, args ...any)
}

type TranscriptSource interface {
	Load(ctx context.Context, path string) (string, error)
}
