package engine

import (
	"context"

	"github.com/PerfectTense/pt-client-go/internal/engine/transform"
)

// StatusUpdate describes one decision forwarded to the persistence
// sink.
type StatusUpdate struct {
	JobID           string
	SentenceIndex   int
	IndexInSentence int
	SentenceText    string
	Offset          int
	Status          transform.Status
}

// StatusSink records decisions with an external collaborator,
// typically the proofreading service itself. Implementations are called
// from their own goroutine and may block.
type StatusSink interface {
	PersistStatus(ctx context.Context, update StatusUpdate) error
}
