package transform

import (
	"github.com/PerfectTense/pt-client-go/internal/engine/token"
)

// InitMeta attaches derived metadata to a freshly decoded result and
// brings it to a consistent starting state: stable indices, default
// statuses, replay of any previously persisted decisions, overlap
// groups, and initial availability. It runs exactly once per document;
// calling it again, or calling it on a result with no sentences, is a
// no-op.
//
// Index assignment and grouping are two separate passes so grouping
// operates over a fully indexed sentence.
func InitMeta(d *Document) {
	if d == nil || d.HasMeta || d.Sentences == nil {
		return
	}

	next := 0
	for si, s := range d.Sentences {
		s.SentenceIndex = si
		s.ActiveTokens = s.Original

		// Pass 1: stable indices, status defaults, replay of
		// recovered decisions.
		for ti, t := range s.Transformations {
			t.SentenceIndex = si
			t.IndexInSentence = ti
			t.TransformIndex = next
			next++
			t.GroupID = UngroupedID
			if t.Status == "" {
				t.Status = StatusClean
			}
			if t.Status == StatusAccepted && t.HasReplacement {
				s.ActiveTokens, _ = token.Splice(s.ActiveTokens, t.TokensAffected, t.TokensAdded)
			}
		}

		// Pass 2: grouping over the indexed list.
		assignGroups(s)

		for _, t := range s.Transformations {
			t.IsAvailable = computeAvailable(t, s)
		}
	}

	d.HasMeta = true
}
