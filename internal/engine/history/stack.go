package history

import (
	"time"

	"github.com/PerfectTense/pt-client-go/internal/engine/transform"
)

// Entry records one session action: a transformation together with the
// decision that was made on it.
type Entry struct {
	Transform *transform.Transformation
	Action    transform.Status
	Timestamp time.Time
}

// Stack is the session's linear action history. Undoing always pops the
// most recent entry; there is no redo. The stack carries no locking:
// like the rest of the engine it assumes a single owner.
type Stack struct {
	entries    []Entry
	maxEntries int
}

// NewStack creates an action stack holding at most maxEntries entries.
func NewStack(maxEntries int) *Stack {
	if maxEntries <= 0 {
		maxEntries = 1000 // Default
	}
	return &Stack{maxEntries: maxEntries}
}

// Push records an action. The oldest entries are dropped once the stack
// exceeds its maximum size.
func (s *Stack) Push(t *transform.Transformation, action transform.Status) {
	s.entries = append(s.entries, Entry{
		Transform: t,
		Action:    action,
		Timestamp: time.Now(),
	})
	if len(s.entries) > s.maxEntries {
		excess := len(s.entries) - s.maxEntries
		s.entries = s.entries[excess:]
	}
}

// Pop removes and returns the most recent entry.
func (s *Stack) Pop() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return e, true
}

// Peek returns the most recent entry without removing it.
func (s *Stack) Peek() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of recorded actions.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all recorded actions.
func (s *Stack) Clear() {
	s.entries = nil
}
