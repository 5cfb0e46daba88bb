package engine

import (
	"context"

	"github.com/PerfectTense/pt-client-go/internal/engine/history"
	"github.com/PerfectTense/pt-client-go/internal/engine/token"
	"github.com/PerfectTense/pt-client-go/internal/engine/transform"
)

// OffsetNotFound is returned by offset queries whose target is not part
// of the current text.
const OffsetNotFound = token.OffsetNotFound

// Session coordinates interactive review of one correction result. It
// wraps the document, serves accept/reject/undo calls, keeps a linear
// history of decisions, and maintains a cached list of the corrections
// still open for action.
//
// A Session assumes a single owner: exactly one mutation may be in
// flight at a time, and concurrent use from multiple goroutines
// requires external synchronization. Status persistence is the only
// asynchronous edge, and it never feeds back into session state.
type Session struct {
	doc  *transform.Document
	flat []*transform.Transformation
	hist *history.Stack

	// available caches the currently available transformations in
	// TransformIndex order; rebuilt in full after every mutation.
	available []*transform.Transformation

	sink           StatusSink
	onPersistError func(error)
	maxHistory     int
}

// NewSession wraps a correction result for interactive use, running the
// metadata initializer when the result has not been initialized yet.
// It fails on a result without sentences.
func NewSession(doc *transform.Document, opts ...Option) (*Session, error) {
	if doc == nil || doc.Sentences == nil {
		return nil, ErrMissingResult
	}

	s := &Session{doc: doc, maxHistory: DefaultMaxHistory}
	for _, opt := range opts {
		opt(s)
	}

	transform.InitMeta(doc)
	s.hist = history.NewStack(s.maxHistory)
	for _, sent := range doc.Sentences {
		s.flat = append(s.flat, sent.Transformations...)
	}
	s.refreshAvailable()
	return s, nil
}

// Document returns the wrapped result.
func (s *Session) Document() *transform.Document {
	return s.doc
}

// ID returns the result's job identifier.
func (s *Session) ID() string {
	return s.doc.ID
}

// Score returns the document's grammar score, if the service reported
// one.
func (s *Session) Score() (float64, bool) {
	if s.doc.GrammarScore == nil {
		return 0, false
	}
	return *s.doc.GrammarScore, true
}

// Transformations returns all transformations across the document in
// TransformIndex order.
func (s *Session) Transformations() []*transform.Transformation {
	out := make([]*transform.Transformation, len(s.flat))
	copy(out, s.flat)
	return out
}

// Available returns the transformations currently open for action, in
// TransformIndex order.
func (s *Session) Available() []*transform.Transformation {
	out := make([]*transform.Transformation, len(s.available))
	copy(out, s.available)
	return out
}

// HistoryLen returns the number of decisions that can still be undone.
func (s *Session) HistoryLen() int {
	return s.hist.Len()
}

// Text returns the current rendered text of the whole document.
func (s *Session) Text() string {
	return s.doc.Text()
}

// SentenceText returns the current rendered text of one sentence.
func (s *Session) SentenceText(index int) (string, bool) {
	if index < 0 || index >= len(s.doc.Sentences) {
		return "", false
	}
	return s.doc.Sentences[index].Text(), true
}

// Accept applies a transformation. On success the decision is recorded
// in the history, the availability cache is rebuilt, and the status is
// forwarded to the persistence sink. Returns false, with no state
// change, when the transformation is not available.
func (s *Session) Accept(t *transform.Transformation) bool {
	sent := s.doc.Sentences[t.SentenceIndex]
	if !Apply(sent, t) {
		return false
	}
	s.hist.Push(t, transform.StatusAccepted)
	s.refreshAvailable()
	s.persistStatus(t)
	return true
}

// Reject dismisses a transformation without altering the text. Returns
// false, with no state change, when the transformation is not
// available.
func (s *Session) Reject(t *transform.Transformation) bool {
	sent := s.doc.Sentences[t.SentenceIndex]
	if !Reject(sent, t) {
		return false
	}
	s.hist.Push(t, transform.StatusRejected)
	s.refreshAvailable()
	s.persistStatus(t)
	return true
}

// CanUndoLast reports whether the most recent decision can be reversed.
func (s *Session) CanUndoLast() bool {
	e, ok := s.hist.Peek()
	if !ok {
		return false
	}
	return transform.CanUndo(e.Transform, s.doc.Sentences[e.Transform.SentenceIndex])
}

// UndoLast reverses the most recent accept/reject decision. Returns
// false, with no state change, when the history is empty or the
// decision can no longer be reversed.
func (s *Session) UndoLast() bool {
	e, ok := s.hist.Pop()
	if !ok {
		return false
	}
	sent := s.doc.Sentences[e.Transform.SentenceIndex]
	if !Undo(sent, e.Transform) {
		// Keep the history intact when nothing was reversed.
		s.hist.Push(e.Transform, e.Action)
		return false
	}
	s.refreshAvailable()
	s.persistStatus(e.Transform)
	return true
}

// UndoAll reverses decisions from most recent to oldest until none
// remain, returning how many were reversed.
func (s *Session) UndoAll() int {
	n := 0
	for s.UndoLast() {
		n++
	}
	return n
}

// ApplyAll accepts the next available transformation until none remain.
// With skipSuggestions set, transformations flagged as stylistic
// suggestions are passed over and left open. Returns the number of
// transformations accepted.
func (s *Session) ApplyAll(skipSuggestions bool) int {
	n := 0
	for {
		t := s.nextAvailable(skipSuggestions)
		if t == nil {
			return n
		}
		if !s.Accept(t) {
			// Availability cache said yes but the applier refused;
			// stop rather than spin on an invariant violation.
			return n
		}
		n++
	}
}

// nextAvailable picks the first candidate from the availability cache.
func (s *Session) nextAvailable(skipSuggestions bool) *transform.Transformation {
	for _, t := range s.available {
		if skipSuggestions && t.IsSuggestion {
			continue
		}
		return t
	}
	return nil
}

// refreshAvailable rebuilds the availability cache from scratch. The
// applier already keeps per-group availability flags correct; the full
// rebuild is the simpler, correctness-first pass for user-facing
// queries.
func (s *Session) refreshAvailable() {
	s.available = s.available[:0]
	for _, t := range s.flat {
		if t.IsAvailable {
			s.available = append(s.available, t)
		}
	}
}

// SentenceOffset returns the rune offset of a sentence's start in the
// current document text: the sum of the rendered lengths of all
// sentences before it.
func (s *Session) SentenceOffset(index int) int {
	if index < 0 || index >= len(s.doc.Sentences) {
		return OffsetNotFound
	}
	offset := 0
	for _, sent := range s.doc.Sentences[:index] {
		offset += sent.ActiveTokens.Width()
	}
	return offset
}

// TransformOffset returns the rune offset of a transformation's
// affected run within its sentence's current text, or OffsetNotFound
// when the run is not currently a contiguous part of the live stream. A
// transformation with no affected tokens anchors at the sentence start.
func (s *Session) TransformOffset(t *transform.Transformation) int {
	sent := s.doc.Sentences[t.SentenceIndex]
	if !transform.Applicable(t, sent) {
		return OffsetNotFound
	}
	if len(t.TokensAffected) == 0 {
		return 0
	}
	return sent.ActiveTokens.PrefixWidth(t.TokensAffected[0].ID)
}

// DocumentOffset returns the rune offset of a transformation's affected
// run within the whole current document text, or OffsetNotFound when
// the run is not currently live.
func (s *Session) DocumentOffset(t *transform.Transformation) int {
	inSentence := s.TransformOffset(t)
	if inSentence == OffsetNotFound {
		return OffsetNotFound
	}
	return s.SentenceOffset(t.SentenceIndex) + inSentence
}

// persistStatus forwards a decision to the external sink, fire and
// forget. The in-memory state change is authoritative regardless of the
// outcome; a failed save is reported through the error callback and
// never rolls anything back.
func (s *Session) persistStatus(t *transform.Transformation) {
	if s.sink == nil {
		return
	}
	sent := s.doc.Sentences[t.SentenceIndex]
	offset := s.TransformOffset(t)
	if offset == OffsetNotFound && t.Status == transform.StatusAccepted && len(t.TokensAdded) > 0 {
		// The affected run was just spliced away; anchor on the
		// inserted run instead.
		offset = sent.ActiveTokens.PrefixWidth(t.TokensAdded[0].ID)
	}
	update := StatusUpdate{
		JobID:           s.doc.ID,
		SentenceIndex:   t.SentenceIndex,
		IndexInSentence: t.IndexInSentence,
		SentenceText:    sent.Text(),
		Offset:          offset,
		Status:          t.Status,
	}
	go func() {
		if err := s.sink.PersistStatus(context.Background(), update); err != nil && s.onPersistError != nil {
			s.onPersistError(err)
		}
	}()
}
