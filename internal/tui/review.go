// Package tui implements the interactive correction review screen.
// It walks the document's proposed corrections, applies the session's
// accept/reject/undo operations, and shows the live corrected text as
// decisions are made.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/PerfectTense/pt-client-go/internal/engine"
	"github.com/PerfectTense/pt-client-go/internal/engine/transform"
)

// Review is the interactive correction review screen.
type Review struct {
	session *engine.Session
	screen  tcell.Screen
	cursor  int
	message string

	skipSuggestions bool
}

// Option configures a Review during creation.
type Option func(*Review)

// WithScreen substitutes the terminal screen, used by tests to drive
// the review against a simulation screen.
func WithScreen(s tcell.Screen) Option {
	return func(r *Review) {
		r.screen = s
	}
}

// WithSkipSuggestions makes the batch-accept key pass over stylistic
// suggestions.
func WithSkipSuggestions(skip bool) Option {
	return func(r *Review) {
		r.skipSuggestions = skip
	}
}

// NewReview creates a review screen over the given session.
func NewReview(sess *engine.Session, opts ...Option) (*Review, error) {
	r := &Review{session: sess}
	for _, opt := range opts {
		opt(r)
	}
	if r.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		r.screen = screen
	}
	return r, nil
}

// Run drives the event loop until the user quits.
func (r *Review) Run() error {
	if err := r.screen.Init(); err != nil {
		return err
	}
	defer r.screen.Fini()

	for {
		r.draw()
		switch e := r.screen.PollEvent().(type) {
		case *tcell.EventResize:
			r.screen.Sync()
		case *tcell.EventKey:
			if r.handleKey(e) {
				return nil
			}
		}
	}
}

// handleKey processes one key event; true means quit.
func (r *Review) handleKey(e *tcell.EventKey) bool {
	switch {
	case e.Key() == tcell.KeyEscape, e.Rune() == 'q':
		return true
	case e.Key() == tcell.KeyDown, e.Rune() == 'j':
		r.move(1)
	case e.Key() == tcell.KeyUp, e.Rune() == 'k':
		r.move(-1)
	case e.Rune() == 'a':
		r.decide("accepted", r.session.Accept)
	case e.Rune() == 'r':
		r.decide("rejected", r.session.Reject)
	case e.Rune() == 'u':
		if r.session.UndoLast() {
			r.message = "undid last decision"
		} else {
			r.message = "nothing to undo"
		}
	case e.Rune() == 'A':
		n := r.session.ApplyAll(r.skipSuggestions)
		r.message = fmt.Sprintf("accepted %d corrections", n)
	}
	return false
}

func (r *Review) move(delta int) {
	ts := r.session.Transformations()
	if len(ts) == 0 {
		return
	}
	r.cursor += delta
	if r.cursor < 0 {
		r.cursor = 0
	}
	if r.cursor >= len(ts) {
		r.cursor = len(ts) - 1
	}
	r.message = ""
}

func (r *Review) decide(verb string, op func(*transform.Transformation) bool) {
	ts := r.session.Transformations()
	if r.cursor >= len(ts) {
		return
	}
	if op(ts[r.cursor]) {
		r.message = verb
	} else {
		r.message = "correction not available"
	}
}

var (
	styleDefault  = tcell.StyleDefault
	styleHeader   = tcell.StyleDefault.Bold(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleDim      = tcell.StyleDefault.Dim(true)
)

func (r *Review) draw() {
	r.screen.Clear()
	width, height := r.screen.Size()

	header := fmt.Sprintf("ptedit | job %s", r.session.ID())
	if score, ok := r.session.Score(); ok {
		header += fmt.Sprintf("  score %.1f", score)
	}
	drawText(r.screen, 0, 0, styleHeader, header)

	ts := r.session.Transformations()
	listTop := 2
	listHeight := height - 6
	for i, t := range ts {
		if i >= listHeight {
			break
		}
		style := styleForTransform(t)
		if i == r.cursor {
			style = styleSelected
		}
		drawText(r.screen, 0, listTop+i, style, transformLine(t))
	}

	textTop := height - 3
	drawText(r.screen, 0, textTop-1, styleDim, truncate(r.session.Text(), width))
	drawText(r.screen, 0, height-1, styleDim,
		"a accept  r reject  u undo  A accept all  j/k move  q quit   "+r.message)

	r.screen.Show()
}

func styleForTransform(t *transform.Transformation) tcell.Style {
	if t.Status != transform.StatusClean || !t.IsAvailable {
		return styleDim
	}
	return styleDefault
}

// transformLine formats one list row: decision marker, addressing, and
// the proposed edit.
func transformLine(t *transform.Transformation) string {
	marker := "·"
	switch {
	case t.Status == transform.StatusAccepted:
		marker = "✓"
	case t.Status == transform.StatusRejected:
		marker = "✗"
	case t.IsAvailable:
		marker = "•"
	}
	line := fmt.Sprintf("%s s%d.%d  %q → %q",
		marker, t.SentenceIndex, t.IndexInSentence,
		t.TokensAffected.Render(), t.TokensAdded.Render())
	if t.IsSuggestion {
		line += "  (suggestion)"
	}
	return line
}

// drawText renders a string one grapheme cluster at a time, advancing
// by display width.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += uniseg.StringWidth(g.Str())
	}
}

// truncate cuts a string to at most width display cells.
func truncate(text string, width int) string {
	if uniseg.StringWidth(text) <= width {
		return text
	}
	out := ""
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := uniseg.StringWidth(g.Str())
		if used+w > width-1 {
			return out + "…"
		}
		out += g.Str()
		used += w
	}
	return out
}
