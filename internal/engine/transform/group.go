package transform

import (
	"sort"

	"github.com/PerfectTense/pt-client-go/internal/engine/token"
)

// sharesID reports whether any token id appears in both streams.
func sharesID(a, b token.Stream) bool {
	for _, ta := range a {
		for _, tb := range b {
			if ta.ID == tb.ID {
				return true
			}
		}
	}
	return false
}

// overlaps is the ordered overlap test between an earlier and a later
// transformation: they overlap when their affected runs share a token
// id, or when the later one's affected run consumes a token the earlier
// one inserts.
func overlaps(earlier, later *Transformation) bool {
	if sharesID(earlier.TokensAffected, later.TokensAffected) {
		return true
	}
	return sharesID(earlier.TokensAdded, later.TokensAffected)
}

// connected applies the ordered overlap test to two transformations in
// sentence order.
func connected(a, b *Transformation) bool {
	if a.IndexInSentence < b.IndexInSentence {
		return overlaps(a, b)
	}
	return overlaps(b, a)
}

// assignGroups partitions the sentence's transformations into overlap
// groups: connected components under the overlap relation. It requires
// IndexInSentence to be assigned on every transformation and all
// GroupIDs to be UngroupedID.
func assignGroups(s *Sentence) {
	s.Groups = make(map[int][]*Transformation)

	next := 0
	for _, t := range s.Transformations {
		if t.GroupID != UngroupedID {
			continue
		}
		id := next
		next++
		t.GroupID = id
		members := []*Transformation{t}

		// Breadth-first expansion. A component can connect through a
		// later transformation back to an earlier one, so every
		// ungrouped transformation is a candidate on each step.
		queue := []*Transformation{t}
		for len(queue) > 0 {
			m := queue[0]
			queue = queue[1:]
			for _, u := range s.Transformations {
				if u.GroupID != UngroupedID {
					continue
				}
				if connected(m, u) {
					u.GroupID = id
					members = append(members, u)
					queue = append(queue, u)
				}
			}
		}

		// Discovery order is breadth-first; the group table keeps
		// sentence order.
		sort.Slice(members, func(i, j int) bool {
			return members[i].IndexInSentence < members[j].IndexInSentence
		})
		s.Groups[id] = members
	}
}
