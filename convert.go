package main

import (
	"fmt"
	"time"

	"github.com/kylesnowschwartz/tail-tools/parser"
	"github.com/kylesnowschwartz/tail-tools/payload"
)

type cardKind int

const (
	cardText   cardKind = iota // prose from a human, the model or the system
	cardCall                   // tool invocation
	cardResult                 // tool output
)

// card is one rendered element of the list view. key identifies the card
// across tail updates so its disclosure state follows it; fp changes when
// the payload behind the card changes.
type card struct {
	kind      cardKind
	key       string
	fp        uint64
	timestamp time.Time

	role  string // cardText: parser.KindHuman, KindAI or KindSystem
	model string
	text  string

	call   payload.ToolCall
	result payload.ToolResult
}

// buildCards maps parser messages to cards. Calls and results are keyed by
// their tool-call id; anything without one falls back to its position.
// A repeated id gets the position appended so keys stay unique.
func buildCards(msgs []parser.Message) []card {
	cards := make([]card, 0, len(msgs))
	seen := make(map[string]bool, len(msgs))
	for i, msg := range msgs {
		var c card
		switch m := msg.(type) {
		case parser.TextMsg:
			c = card{
				kind:  cardText,
				key:   fmt.Sprintf("text#%d", i),
				role:  m.Kind,
				model: m.Model,
				text:  m.Text,
				fp:    payload.Fingerprint(payload.Str(m.Text)),
			}
		case parser.CallMsg:
			c = card{
				kind: cardCall,
				key:  idKey("call", m.Call.ID, i),
				call: m.Call,
				fp:   payload.Fingerprint(m.Call.Args),
			}
		case parser.ResultMsg:
			c = card{
				kind:   cardResult,
				key:    idKey("result", m.Result.ToolCallID, i),
				result: m.Result,
				fp:     payload.Fingerprint(m.Result.Content),
			}
		default:
			continue
		}
		if seen[c.key] {
			c.key = fmt.Sprintf("%s#%d", c.key, i)
		}
		seen[c.key] = true
		c.timestamp = msg.Time()
		cards = append(cards, c)
	}
	return cards
}

func idKey(prefix, id string, pos int) string {
	if id == "" {
		return fmt.Sprintf("%s#%d", prefix, pos)
	}
	return prefix + ":" + id
}

// cardKeys returns the set of keys in cards, for pruning disclosure state.
func cardKeys(cards []card) map[string]bool {
	keys := make(map[string]bool, len(cards))
	for _, c := range cards {
		keys[c.key] = true
	}
	return keys
}

// exportText is what "y" copies and the detail view shows for a card.
func exportText(c card) string {
	switch c.kind {
	case cardCall:
		return payload.ExportToolCall(c.call)
	case cardResult:
		return payload.ExportToolResult(c.result)
	default:
		return c.text
	}
}

// offersToggle reports whether the card has anything to expand under p.
// Tool calls never truncate.
func offersToggle(c card, p payload.Policy) bool {
	switch c.kind {
	case cardResult:
		return p.Decide(payload.Classify(c.result.Content))
	case cardText:
		return p.OfferText(c.text)
	default:
		return false
	}
}
