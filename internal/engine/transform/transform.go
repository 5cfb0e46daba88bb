package transform

import (
	"strings"

	"github.com/PerfectTense/pt-client-go/internal/engine/token"
)

// Status records the user's decision on a transformation.
type Status string

const (
	// StatusClean means no decision has been made yet.
	StatusClean Status = "clean"
	// StatusAccepted means the correction has been applied.
	StatusAccepted Status = "accepted"
	// StatusRejected means the correction has been dismissed without
	// altering the text.
	StatusRejected Status = "rejected"
)

// UngroupedID marks a transformation that has not been assigned to an
// overlap group yet. Group assignment happens exactly once, during
// metadata initialization.
const UngroupedID = -1

// Transformation is one proposed edit returned by the proofreading
// service: replace the TokensAffected run with the TokensAdded run.
type Transformation struct {
	TokensAffected token.Stream `json:"tokensAffected"`
	TokensAdded    token.Stream `json:"tokensAdded"`

	// Status is mutable session state; everything below Status except
	// IsAvailable is assigned once during initialization and never
	// changes afterward.
	Status         Status `json:"status"`
	IsAvailable    bool   `json:"isAvailable"`
	HasReplacement bool   `json:"hasReplacement"`
	IsSuggestion   bool   `json:"isSuggestion"`

	GroupID         int `json:"groupId"`
	SentenceIndex   int `json:"sentenceIndex"`
	IndexInSentence int `json:"indexInSentence"`
	TransformIndex  int `json:"transformIndex"`
}

// Sentence is one sentence of the submitted document together with its
// proposed corrections. ActiveTokens is the only field that changes
// after initialization; it is replaced wholesale on every apply/undo.
type Sentence struct {
	Original        token.Stream              `json:"originalSentence"`
	ActiveTokens    token.Stream              `json:"activeTokens"`
	Transformations []*Transformation         `json:"transformations"`
	Groups          map[int][]*Transformation `json:"-"`
	SentenceIndex   int                       `json:"sentenceIndex"`
}

// Text returns the sentence's current rendered text.
func (s *Sentence) Text() string {
	return s.ActiveTokens.Render()
}

// OriginalText returns the pristine rendered text of the sentence.
func (s *Sentence) OriginalText() string {
	return s.Original.Render()
}

// Document is the full correction result for one submitted job.
type Document struct {
	Sentences    []*Sentence `json:"rulesApplied"`
	GrammarScore *float64    `json:"grammarScore,omitempty"`
	HasMeta      bool        `json:"hasMeta"`
	ID           string      `json:"id"`
}

// Text returns the current rendered text of the whole document.
func (d *Document) Text() string {
	var b strings.Builder
	for _, s := range d.Sentences {
		b.WriteString(s.Text())
	}
	return b.String()
}
