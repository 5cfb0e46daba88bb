package token

import "strings"

// Token is one immutable unit of sentence text. Value holds the token
// text and After holds the trailing whitespace or punctuation needed to
// reconstruct the input exactly. Identity is carried by ID, never by
// position: positions shift as corrections are applied and reversed.
type Token struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	After string `json:"after"`
}

// Stream is an ordered sequence of tokens. A stream is replaced
// wholesale on every edit; the Token records themselves are never
// mutated.
type Stream []Token

// Render reconstructs the text the stream represents by concatenating
// Value and After for every token in order.
func (s Stream) Render() string {
	var b strings.Builder
	for _, t := range s {
		b.WriteString(t.Value)
		b.WriteString(t.After)
	}
	return b.String()
}

// IndexOf returns the position of the token with the given id, or -1
// if no token in the stream carries it.
func (s Stream) IndexOf(id string) int {
	for i, t := range s {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Present reports whether sub's token ids appear in s in the same
// relative order and contiguously, with no other token interleaved
// between consecutive ids. An empty sub is vacuously present.
func Present(sub, s Stream) bool {
	if len(sub) == 0 {
		return true
	}
	start := s.IndexOf(sub[0].ID)
	if start < 0 || start+len(sub) > len(s) {
		return false
	}
	for i := range sub {
		if s[start+i].ID != sub[i].ID {
			return false
		}
	}
	return true
}

// Splice replaces removeRun with insertRun and returns the resulting
// stream. If removeRun is empty or not present (per Present) the input
// stream is returned unchanged and ok is false; a stream is never
// partially modified. Only the first and last ids of removeRun
// determine the cut points; the identity of the run's interior is
// trusted.
func Splice(s, removeRun, insertRun Stream) (out Stream, ok bool) {
	if len(removeRun) == 0 || !Present(removeRun, s) {
		return s, false
	}
	first := s.IndexOf(removeRun[0].ID)
	last := s.IndexOf(removeRun[len(removeRun)-1].ID)
	out = make(Stream, 0, first+len(insertRun)+len(s)-last-1)
	out = append(out, s[:first]...)
	out = append(out, insertRun...)
	out = append(out, s[last+1:]...)
	return out, true
}
