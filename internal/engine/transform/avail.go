package transform

import (
	"github.com/PerfectTense/pt-client-go/internal/engine/token"
)

// Applicable reports whether t's affected tokens form a contiguous run
// of the sentence's live token stream, regardless of t's status.
func Applicable(t *Transformation, s *Sentence) bool {
	return token.Present(t.TokensAffected, s.ActiveTokens)
}

// computeAvailable derives IsAvailable for a single transformation: a
// decided transformation is never re-appliable, an undecided one is
// available when its affected run is present.
func computeAvailable(t *Transformation, s *Sentence) bool {
	if t.Status != StatusClean {
		return false
	}
	return Applicable(t, s)
}

// RefreshGroup recomputes IsAvailable for every transformation in t's
// group. Only group members can change availability as a result of a
// single apply/undo: a splice never touches the token ids of a
// non-overlapping transformation.
func RefreshGroup(s *Sentence, t *Transformation) {
	for _, m := range s.Groups[t.GroupID] {
		m.IsAvailable = computeAvailable(m, s)
	}
}

// CanUndo reports whether t's decision can be reversed. A
// comment-only transformation has nothing to splice back and is
// trivially undoable. Otherwise an accepted transformation needs its
// inserted tokens live, a rejected one its affected tokens. A clean
// transformation cannot be undone.
func CanUndo(t *Transformation, s *Sentence) bool {
	if !t.HasReplacement {
		return true
	}
	switch t.Status {
	case StatusAccepted:
		return token.Present(t.TokensAdded, s.ActiveTokens)
	case StatusRejected:
		return token.Present(t.TokensAffected, s.ActiveTokens)
	default:
		return false
	}
}
