package payload

import (
	"hash/fnv"
	"strings"
	"unicode/utf8"
)

// Ellipsis marks text cut short by the disclosure policy.
const Ellipsis = "..."

// Policy holds the thresholds above which a rendered payload is collapsed
// behind a toggle.
type Policy struct {
	MaxLines int // text with more lines is collapsed
	MaxChars int // text with more characters (runes) is collapsed
	MaxRows  int // arrays with more elements are collapsed
}

// DefaultPolicy is four lines, 500 characters, five array elements.
var DefaultPolicy = Policy{MaxLines: 4, MaxChars: 500, MaxRows: 5}

// OfferText reports whether text is large enough to need a toggle.
func (p Policy) OfferText(text string) bool {
	return lineCount(text) > p.MaxLines || utf8.RuneCountInString(text) > p.MaxChars
}

// OfferRows reports whether a structured value needs a toggle. Only arrays
// are ever cut; objects always show every entry.
func (p Policy) OfferRows(v Value) bool {
	return v.Kind() == KindArray && v.Len() > p.MaxRows
}

// Decide reports whether classified content should offer an expand toggle.
// Text is measured after newline normalization, which is what gets shown.
func (p Policy) Decide(c Content) bool {
	if s, ok := c.(Structured); ok {
		return p.OfferRows(s.Value)
	}
	return p.OfferText(NormalizeNewlines(PlainText(c)))
}

// VisibleText returns the part of text shown in the given state. Collapsed
// text over the character limit keeps its first MaxChars runes; otherwise the
// first MaxLines lines are kept and an ellipsis line appended.
func (p Policy) VisibleText(text string, expanded bool) string {
	if expanded || !p.OfferText(text) {
		return text
	}
	if utf8.RuneCountInString(text) > p.MaxChars {
		return firstRunes(text, p.MaxChars) + Ellipsis
	}
	lines := strings.Split(text, "\n")
	return strings.Join(lines[:p.MaxLines], "\n") + "\n" + Ellipsis
}

// VisibleRows returns the rows shown in the given state. seq says whether the
// rows came from an array; object rows are never cut.
func (p Policy) VisibleRows(rows []Row, seq, expanded bool) []Row {
	if expanded || !seq || len(rows) <= p.MaxRows {
		return rows
	}
	return rows[:p.MaxRows]
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// DisclosureState is the expand/collapse flag of one rendered payload. The
// zero value is collapsed.
type DisclosureState struct {
	Expanded bool
}

// Toggle flips the state.
func (d *DisclosureState) Toggle() {
	d.Expanded = !d.Expanded
}

// DisclosureSet tracks one DisclosureState per rendered instance. A state is
// dropped as soon as its instance shows a different payload, so a new payload
// always starts collapsed. Not safe for concurrent use.
type DisclosureSet struct {
	states map[string]disclosureEntry
}

type disclosureEntry struct {
	fingerprint uint64
	state       DisclosureState
}

// NewDisclosureSet returns an empty set.
func NewDisclosureSet() *DisclosureSet {
	return &DisclosureSet{states: make(map[string]disclosureEntry)}
}

// Fingerprint identifies a payload's contents for DisclosureSet.
func Fingerprint(v Value) uint64 {
	h := fnv.New64a()
	h.Write([]byte(v.Kind().String()))
	h.Write([]byte{0})
	b, err := encode(v)
	if err != nil {
		h.Write([]byte(v.String()))
	} else {
		h.Write(b)
	}
	return h.Sum64()
}

// State returns the state of instance id showing the payload with the given
// fingerprint. Unknown instances and instances whose payload changed are
// collapsed.
func (s *DisclosureSet) State(id string, fingerprint uint64) DisclosureState {
	e, ok := s.states[id]
	if !ok || e.fingerprint != fingerprint {
		return DisclosureState{}
	}
	return e.state
}

// Toggle flips the state of instance id and returns the new state.
func (s *DisclosureSet) Toggle(id string, fingerprint uint64) DisclosureState {
	st := s.State(id, fingerprint)
	st.Toggle()
	s.states[id] = disclosureEntry{fingerprint: fingerprint, state: st}
	return st
}

// Set forces the state of instance id.
func (s *DisclosureSet) Set(id string, fingerprint uint64, expanded bool) {
	s.states[id] = disclosureEntry{fingerprint: fingerprint, state: DisclosureState{Expanded: expanded}}
}

// Reset collapses every instance.
func (s *DisclosureSet) Reset() {
	clear(s.states)
}

// Prune forgets every instance not in keep.
func (s *DisclosureSet) Prune(keep map[string]bool) {
	for id := range s.states {
		if !keep[id] {
			delete(s.states, id)
		}
	}
}
