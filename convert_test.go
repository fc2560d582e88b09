package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylesnowschwartz/tail-tools/parser"
	"github.com/kylesnowschwartz/tail-tools/payload"
)

func TestBuildCards(t *testing.T) {
	cards := buildCards(sampleMessages(t))
	require.Len(t, cards, 5)

	assert.Equal(t, cardText, cards[idxHuman].kind)
	assert.Equal(t, parser.KindHuman, cards[idxHuman].role)
	assert.Equal(t, "text#0", cards[idxHuman].key)

	assert.Equal(t, cardCall, cards[idxCall].kind)
	assert.Equal(t, "call:call_1", cards[idxCall].key)
	assert.Equal(t, "search", cards[idxCall].call.Name)

	assert.Equal(t, cardResult, cards[idxResult].kind)
	assert.Equal(t, "result:call_1", cards[idxResult].key)
	assert.Equal(t, "search", cards[idxResult].result.Name)

	assert.True(t, cards[idxError].result.IsError)
	assert.Equal(t, parser.KindAI, cards[idxReply].role)
	assert.False(t, cards[idxCall].timestamp.IsZero())
}

func TestBuildCards_DuplicateIDs(t *testing.T) {
	call := parser.CallMsg{Call: payload.ToolCall{Name: "x", ID: "dup", Args: payload.Object()}}
	cards := buildCards([]parser.Message{call, call, parser.CallMsg{Call: payload.ToolCall{Name: "y", Args: payload.Object()}}})
	require.Len(t, cards, 3)
	assert.Equal(t, "call:dup", cards[0].key)
	assert.Equal(t, "call:dup#1", cards[1].key)
	assert.Equal(t, "call#2", cards[2].key)
}

func TestBuildCards_FingerprintFollowsPayload(t *testing.T) {
	a := buildCards([]parser.Message{parser.ResultMsg{Result: payload.ToolResult{ToolCallID: "c", Content: payload.Str("one")}}})
	b := buildCards([]parser.Message{parser.ResultMsg{Result: payload.ToolResult{ToolCallID: "c", Content: payload.Str("two")}}})
	assert.Equal(t, a[0].key, b[0].key)
	assert.NotEqual(t, a[0].fp, b[0].fp)
}

func TestCardKeys(t *testing.T) {
	keys := cardKeys(buildCards(sampleMessages(t)))
	assert.Len(t, keys, 5)
	assert.True(t, keys["result:call_2"])
}

func TestExportText(t *testing.T) {
	cards := buildCards(sampleMessages(t))

	assert.Equal(t, payload.ExportToolCall(cards[idxCall].call), exportText(cards[idxCall]))
	assert.Contains(t, exportText(cards[idxCall]), `"name": "search"`)
	assert.Equal(t, "connection refused", exportText(cards[idxError]))
	assert.Equal(t, "find cats", exportText(cards[idxHuman]))
}

func TestOffersToggle(t *testing.T) {
	cards := buildCards(sampleMessages(t))
	p := payload.DefaultPolicy

	assert.False(t, offersToggle(cards[idxCall], p), "calls never truncate")
	assert.True(t, offersToggle(cards[idxResult], p), "8 rows over the 5-row limit")
	assert.False(t, offersToggle(cards[idxError], p))
	assert.False(t, offersToggle(cards[idxHuman], p))

	long := card{kind: cardText, text: "1\n2\n3\n4\n5"}
	assert.True(t, offersToggle(long, p))
}

func TestExportTexts(t *testing.T) {
	cards := buildCards(sampleMessages(t))

	all := exportTexts(cards, "")
	assert.Len(t, all, 3)

	one := exportTexts(cards, "call_1")
	require.Len(t, one, 2)
	assert.Contains(t, one[0], `"id": "call_1"`)
	assert.Contains(t, one[1], `"a"`)

	assert.Empty(t, exportTexts(cards, "nope"))
}
