package main

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylesnowschwartz/tail-tools/parser"
	"github.com/kylesnowschwartz/tail-tools/payload"
)

func TestUpdateList_Navigation(t *testing.T) {
	t.Run("j and k move the cursor", func(t *testing.T) {
		m, _ := testModel(t)
		res, cmd := m.updateList(keyMsg("j"))
		got := asModel(res)
		assert.Equal(t, 1, got.cursor)
		assert.Nil(t, cmd)

		res, _ = got.updateList(keyMsg("k"))
		assert.Equal(t, 0, asModel(res).cursor)
	})

	t.Run("cursor clamps at both ends", func(t *testing.T) {
		m, _ := testModel(t)
		res, _ := m.updateList(keyMsg("up"))
		assert.Equal(t, 0, asModel(res).cursor)

		m.cursor = len(m.cards) - 1
		res, _ = m.updateList(keyMsg("down"))
		assert.Equal(t, len(m.cards)-1, asModel(res).cursor)
	})

	t.Run("G and g jump", func(t *testing.T) {
		m, _ := testModel(t)
		res, _ := m.updateList(keyMsg("G"))
		got := asModel(res)
		assert.Equal(t, len(m.cards)-1, got.cursor)

		res, _ = got.updateList(keyMsg("g"))
		got = asModel(res)
		assert.Equal(t, 0, got.cursor)
		assert.Equal(t, 0, got.scroll)
	})

	t.Run("q quits", func(t *testing.T) {
		m, _ := testModel(t)
		_, cmd := m.updateList(keyMsg("q"))
		assert.True(t, isQuit(cmd))
	})
}

func TestUpdateList_Disclosure(t *testing.T) {
	t.Run("tab toggles a collapsible result", func(t *testing.T) {
		m, _ := testModel(t)
		m.cursor = idxResult
		before := m.cardLines[idxResult]

		res, _ := m.updateList(keyMsg("tab"))
		got := asModel(res)
		assert.True(t, got.expanded(got.cards[idxResult]))
		assert.Greater(t, got.cardLines[idxResult], before)

		res, _ = got.updateList(keyMsg("tab"))
		got = asModel(res)
		assert.False(t, got.expanded(got.cards[idxResult]))
		assert.Equal(t, before, got.cardLines[idxResult])
	})

	t.Run("tab on a call does nothing", func(t *testing.T) {
		m, _ := testModel(t)
		m.cursor = idxCall
		res, _ := m.updateList(keyMsg("tab"))
		got := asModel(res)
		assert.False(t, got.expanded(got.cards[idxCall]))
	})

	t.Run("e expands and c collapses everything", func(t *testing.T) {
		m, _ := testModel(t)
		res, _ := m.updateList(keyMsg("e"))
		got := asModel(res)
		assert.True(t, got.expanded(got.cards[idxResult]))

		res, _ = got.updateList(keyMsg("c"))
		got = asModel(res)
		assert.False(t, got.expanded(got.cards[idxResult]))
	})

	t.Run("v switches the args layout", func(t *testing.T) {
		m, _ := testModel(t)
		require.False(t, m.argsTable)
		res, _ := m.updateList(keyMsg("v"))
		assert.True(t, asModel(res).argsTable)
	})
}

func TestUpdateList_Copy(t *testing.T) {
	m, copied := testModel(t)
	m.cursor = idxCall

	_, cmd := m.updateList(keyMsg("y"))
	require.NotNil(t, cmd)
	msg := cmd()

	want := payload.ExportToolCall(m.cards[idxCall].call)
	require.Equal(t, []string{want}, *copied)
	assert.Equal(t, copyResultMsg{size: len(want)}, msg)

	res, _ := m.Update(msg)
	assert.Contains(t, asModel(res).flash, "copied")
}

func TestUpdate_CopyFailure(t *testing.T) {
	m, _ := testModel(t)
	res, _ := m.Update(copyResultMsg{err: errors.New("no display")})
	assert.Equal(t, "copy failed: no display", asModel(res).flash)
}

func TestUpdate_Detail(t *testing.T) {
	m, _ := testModel(t)
	m.cursor = idxResult

	res, _ := m.Update(keyMsg("enter"))
	got := asModel(res)
	require.Equal(t, viewDetail, got.view)
	assert.Contains(t, got.View(), "Tool Result: search")

	res, _ = got.Update(keyMsg("esc"))
	assert.Equal(t, viewList, asModel(res).view)

	_, cmd := got.Update(keyMsg("ctrl+c"))
	assert.True(t, isQuit(cmd))
}

func TestUpdate_WindowSize(t *testing.T) {
	m, _ := testModel(t)
	res, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	got := asModel(res)
	assert.Equal(t, 80, got.width)
	assert.Equal(t, 20, got.height)
	require.Len(t, got.lineOffsets, len(got.cards))
}

func TestUpdate_TailKeepsDisclosure(t *testing.T) {
	m, _ := testModel(t)
	m.disclosure.Set(m.cards[idxResult].key, m.cards[idxResult].fp, true)
	m.cursor = len(m.cards) - 1

	msgs := append(sampleMessages(t), parser.TextMsg{Kind: parser.KindAI, Text: "More."})
	at := time.Date(2026, 1, 2, 10, 5, 0, 0, time.UTC)
	res, cmd := m.Update(tailUpdateMsg{messages: msgs, at: at})
	got := asModel(res)

	require.Len(t, got.cards, 6)
	assert.True(t, got.expanded(got.cards[idxResult]), "state follows the card key")
	assert.Equal(t, 5, got.cursor, "cursor at the end follows new cards")
	assert.Equal(t, at, got.updatedAt)
	assert.NotNil(t, cmd)
}

func TestUpdate_TailResetsChangedPayload(t *testing.T) {
	m, _ := testModel(t)
	m.disclosure.Set(m.cards[idxResult].key, m.cards[idxResult].fp, true)
	m.cursor = 0

	msgs := sampleMessages(t)
	res := msgs[idxResult].(parser.ResultMsg)
	res.Result.Content = payload.Str(`[1,2,3,4,5,6,7]`)
	msgs[idxResult] = res

	got := asModel(must(m.Update(tailUpdateMsg{messages: msgs})))
	assert.False(t, got.expanded(got.cards[idxResult]))
	assert.Equal(t, 0, got.cursor)
}

func must(m tea.Model, _ tea.Cmd) tea.Model { return m }
