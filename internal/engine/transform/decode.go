package transform

import (
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/PerfectTense/pt-client-go/internal/engine/token"
)

// Decode parses a raw correction result as returned by the service into
// a typed Document. The service's shape is loose: optional fields are
// defaulted and unknown fields ignored. The returned document has not
// been initialized; callers go through InitMeta (the session does this
// automatically) before operating on it.
func Decode(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidResult
	}
	root := gjson.ParseBytes(data)

	rules := root.Get("rulesApplied")
	if !rules.IsArray() {
		return nil, ErrMissingRules
	}

	d := &Document{
		ID: root.Get("id").String(),
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if gs := root.Get("grammarScore"); gs.Exists() {
		score := gs.Float()
		d.GrammarScore = &score
	}

	for _, raw := range rules.Array() {
		d.Sentences = append(d.Sentences, decodeSentence(raw))
	}
	return d, nil
}

func decodeSentence(raw gjson.Result) *Sentence {
	s := &Sentence{
		Original: decodeStream(raw.Get("originalSentence")),
	}
	for _, rt := range raw.Get("transformations").Array() {
		s.Transformations = append(s.Transformations, decodeTransformation(rt))
	}
	return s
}

func decodeTransformation(raw gjson.Result) *Transformation {
	t := &Transformation{
		TokensAffected: decodeStream(raw.Get("tokensAffected")),
		TokensAdded:    decodeStream(raw.Get("tokensAdded")),
		Status:         decodeStatus(raw.Get("status")),
		IsSuggestion:   raw.Get("isSuggestion").Bool(),
		GroupID:        UngroupedID,
	}
	if hr := raw.Get("hasReplacement"); hr.Exists() {
		t.HasReplacement = hr.Bool()
	} else {
		t.HasReplacement = len(t.TokensAdded) > 0
	}
	return t
}

func decodeStatus(raw gjson.Result) Status {
	switch Status(raw.String()) {
	case StatusAccepted:
		return StatusAccepted
	case StatusRejected:
		return StatusRejected
	default:
		return StatusClean
	}
}

// decodeStream reads a token array. Ids arrive as numbers or strings
// depending on the endpoint; both are normalized to strings.
func decodeStream(raw gjson.Result) token.Stream {
	var s token.Stream
	for _, rt := range raw.Array() {
		s = append(s, token.Token{
			ID:    rt.Get("id").String(),
			Value: rt.Get("value").String(),
			After: rt.Get("after").String(),
		})
	}
	return s
}
