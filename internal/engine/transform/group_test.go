package transform

import (
	"testing"

	"github.com/PerfectTense/pt-client-go/internal/engine/token"
)

func TestGroupingConnectsDependentTransforms(t *testing.T) {
	s := misspelledFixture()
	InitMeta(newDocument(s))

	t0, t1, t2 := s.Transformations[0], s.Transformations[1], s.Transformations[2]
	if t0.GroupID != t1.GroupID {
		t.Errorf("t0 (%d) and t1 (%d) should share a group", t0.GroupID, t1.GroupID)
	}
	if t2.GroupID == t0.GroupID {
		t.Error("disjoint t2 should be in its own group")
	}
	if len(s.Groups) != 2 {
		t.Errorf("expected 2 groups, got %d", len(s.Groups))
	}
}

func TestGroupingIsAPartition(t *testing.T) {
	s := misspelledFixture()
	InitMeta(newDocument(s))

	seen := make(map[*Transformation]int)
	for id, members := range s.Groups {
		for _, m := range members {
			if m.GroupID != id {
				t.Errorf("member GroupID %d listed under group %d", m.GroupID, id)
			}
			seen[m]++
		}
	}
	for i, tr := range s.Transformations {
		if seen[tr] != 1 {
			t.Errorf("transform %d appears in %d groups", i, seen[tr])
		}
	}
}

func TestGroupingSharedAffectedToken(t *testing.T) {
	shared := tk("2", "their", " ")
	a := newTransform(token.Stream{shared}, token.Stream{tk("5", "there", " ")})
	b := newTransform(token.Stream{shared}, token.Stream{tk("6", "they're", " ")})
	s := newSentence(token.Stream{tk("1", "over", " "), shared, tk("3", "now", "")}, a, b)

	InitMeta(newDocument(s))

	if a.GroupID != b.GroupID {
		t.Errorf("transforms sharing an affected token must share a group: %d vs %d", a.GroupID, b.GroupID)
	}
}

func TestGroupingTransitiveClosure(t *testing.T) {
	// a feeds b, b feeds c; a and c never touch the same ids directly.
	a := newTransform(token.Stream{tk("1", "x", " ")}, token.Stream{tk("4", "y", " ")})
	b := newTransform(token.Stream{tk("4", "y", " ")}, token.Stream{tk("5", "z", " ")})
	c := newTransform(token.Stream{tk("5", "z", " ")}, token.Stream{tk("6", "w", " ")})
	s := newSentence(token.Stream{tk("1", "x", " "), tk("2", "pad", "")}, a, b, c)

	InitMeta(newDocument(s))

	if a.GroupID != b.GroupID || b.GroupID != c.GroupID {
		t.Errorf("chain should collapse to one group: %d %d %d", a.GroupID, b.GroupID, c.GroupID)
	}
	if len(s.Groups[a.GroupID]) != 3 {
		t.Errorf("expected 3 members, got %d", len(s.Groups[a.GroupID]))
	}
}

func TestGroupingConnectsBackThroughLaterTransform(t *testing.T) {
	// a and b touch disjoint tokens; c spans both, joining them into
	// one component only through c.
	a := newTransform(token.Stream{tk("1", "aa", " ")}, token.Stream{tk("4", "A", " ")})
	b := newTransform(token.Stream{tk("2", "bb", " ")}, token.Stream{tk("5", "B", " ")})
	c := newTransform(
		token.Stream{tk("1", "aa", " "), tk("2", "bb", " ")},
		token.Stream{tk("6", "ab", " ")})
	s := newSentence(token.Stream{tk("1", "aa", " "), tk("2", "bb", " "), tk("3", "end", "")}, a, b, c)

	InitMeta(newDocument(s))

	if a.GroupID != c.GroupID || b.GroupID != c.GroupID {
		t.Errorf("c bridges a and b into one group: %d %d %d", a.GroupID, b.GroupID, c.GroupID)
	}
	if len(s.Groups[a.GroupID]) != 3 {
		t.Errorf("expected 3 members, got %d", len(s.Groups[a.GroupID]))
	}
}

func TestGroupMembersKeepSentenceOrder(t *testing.T) {
	s := misspelledFixture()
	InitMeta(newDocument(s))

	members := s.Groups[s.Transformations[0].GroupID]
	for i := 1; i < len(members); i++ {
		if members[i-1].IndexInSentence >= members[i].IndexInSentence {
			t.Errorf("group members out of sentence order at %d", i)
		}
	}
}
