package engine

import (
	"github.com/PerfectTense/pt-client-go/internal/engine/token"
	"github.com/PerfectTense/pt-client-go/internal/engine/transform"
)

// Apply accepts a transformation against its sentence: the affected run
// is spliced out for the added run and the group's availability is
// refreshed. Returns false, with no mutation, when the transformation
// is not currently available. An applied transformation is never
// simultaneously re-appliable.
func Apply(s *transform.Sentence, t *transform.Transformation) bool {
	if !t.IsAvailable {
		return false
	}
	if t.HasReplacement {
		s.ActiveTokens, _ = token.Splice(s.ActiveTokens, t.TokensAffected, t.TokensAdded)
	}
	t.Status = transform.StatusAccepted
	transform.RefreshGroup(s, t)
	t.IsAvailable = false
	return true
}

// Reject marks a transformation dead without touching the live token
// stream. Returns false, with no mutation, when the transformation is
// not currently available. No group refresh is needed since the tokens
// are unchanged.
func Reject(_ *transform.Sentence, t *transform.Transformation) bool {
	if !t.IsAvailable {
		return false
	}
	t.Status = transform.StatusRejected
	t.IsAvailable = false
	return true
}

// Undo reverses a decision and returns the transformation to clean. For
// an accepted replacement the added run is spliced back out; for a
// rejected one the splice finds nothing to remove and the stream stays
// as it is. Returns false, with no mutation, when the decision cannot
// be reversed.
func Undo(s *transform.Sentence, t *transform.Transformation) bool {
	if !transform.CanUndo(t, s) {
		return false
	}
	if t.HasReplacement {
		s.ActiveTokens, _ = token.Splice(s.ActiveTokens, t.TokensAdded, t.TokensAffected)
	}
	t.Status = transform.StatusClean
	transform.RefreshGroup(s, t)
	t.IsAvailable = true
	return true
}
