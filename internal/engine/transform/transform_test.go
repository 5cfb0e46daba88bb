package transform

import (
	"github.com/PerfectTense/pt-client-go/internal/engine/token"
)

// Shared test fixtures.

func tk(id, value, after string) token.Token {
	return token.Token{ID: id, Value: value, After: after}
}

func newTransform(affected, added token.Stream) *Transformation {
	return &Transformation{
		TokensAffected: affected,
		TokensAdded:    added,
		HasReplacement: len(added) > 0,
	}
}

func newSentence(orig token.Stream, ts ...*Transformation) *Sentence {
	return &Sentence{Original: orig, Transformations: ts}
}

func newDocument(sentences ...*Sentence) *Document {
	return &Document{ID: "job-1", Sentences: sentences}
}

// misspelledFixture builds the canonical three-correction sentence
// "hzve be befor": t0 fixes the typo, t1 consumes t0's output, t2 is
// disjoint.
func misspelledFixture() *Sentence {
	t0 := newTransform(
		token.Stream{tk("1", "hzve", " ")},
		token.Stream{tk("4", "have", " ")},
	)
	t1 := newTransform(
		token.Stream{tk("4", "have", " "), tk("2", "be", " ")},
		token.Stream{tk("5", "has", " "), tk("6", "been", " ")},
	)
	t2 := newTransform(
		token.Stream{tk("3", "befor", "")},
		token.Stream{tk("7", "before", "")},
	)
	return newSentence(
		token.Stream{tk("1", "hzve", " "), tk("2", "be", " "), tk("3", "befor", "")},
		t0, t1, t2,
	)
}
