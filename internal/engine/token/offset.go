package token

import "unicode/utf8"

// OffsetNotFound is returned by offset queries whose target is not part
// of the live stream.
const OffsetNotFound = -1

// Width returns the rendered length of the stream in runes.
func (s Stream) Width() int {
	n := 0
	for _, t := range s {
		n += utf8.RuneCountInString(t.Value) + utf8.RuneCountInString(t.After)
	}
	return n
}

// PrefixWidth returns the rendered rune length of the stream up to, but
// not including, the token with the given id. It returns OffsetNotFound
// if no token in the stream carries the id.
func (s Stream) PrefixWidth(id string) int {
	n := 0
	for _, t := range s {
		if t.ID == id {
			return n
		}
		n += utf8.RuneCountInString(t.Value) + utf8.RuneCountInString(t.After)
	}
	return OffsetNotFound
}
