package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	assert.Equal(t, GameEvent{}, l.LastEvent())

	l.Log(NewPickEvent(0, 0, "Slimer", 1))
	l.Log(NewPickEvent(0, 1, "Scuttler", 1))
	l.Log(NewBattleStartEvent())
	l.Log(NewDrawEvent(1, 0, "Slimer"))

	events := l.Events()
	require.Len(t, events, 4)
	for i, e := range events {
		assert.Equal(t, i+1, e.Seq)
	}
	assert.Equal(t, EventDraw, l.LastEvent().Type)

	picks := l.EventsOfType(EventPick)
	require.Len(t, picks, 2)
	assert.Equal(t, "Scuttler", picks[1].Card)
	assert.Equal(t, 1, picks[1].Player)
	assert.Empty(t, l.EventsOfType(EventWin))
}

func TestTextLoggerWritesAndKeeps(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewTurnEvent(3, 1, 3))
	l.Log(NewSummonEvent(3, 1, "Slimer", 2, 1, "left"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "T3   BATTLE | === Turn 3 (P2, 3 mana) ===", lines[0])
	assert.Contains(t, lines[1], "P2 summons Slimer (2/1) to the left lane")
	assert.Len(t, l.Events(), 2)
	assert.Equal(t, 2, l.LastEvent().Seq)
}

func TestDiscard(t *testing.T) {
	var l EventLogger = Discard{}
	l.Log(NewPassEvent(1, 0))
	assert.Nil(t, l.Events())
}

func TestEventDetails(t *testing.T) {
	tests := []struct {
		name  string
		event GameEvent
		want  string
	}{
		{"pick", NewPickEvent(4, 0, "Slimer", 5), "Round 5: P1 picks Slimer (deck 5)"},
		{"burn", NewBurnEvent(2, 1, "Slimer"), "P2's hand is full, Slimer is lost"},
		{"use on target", NewUseEvent(2, 0, "Decimate", "Slimer"), "P1 uses Decimate on Slimer"},
		{"use without target", NewUseEvent(2, 0, "Health Potion", ""), "P1 uses Health Potion"},
		{"ward", NewWardBrokenEvent(5, 1, "Slimer"), "Slimer's ward absorbs the hit"},
		{"hp", NewHPChangeEvent(5, 1, 30, 25, "attack"), "P2 HP: 30 → 25 (attack)"},
		{"rune", NewRuneBrokenEvent(5, 1, 25), "P2 breaks the 25 rune, +1 draw next turn"},
		{"win", NewWinEvent(9, 0, "opponent HP 0"), "P1 wins! (opponent HP 0)"},
		{"tie", NewTieEvent(200, "turn limit"), "Game drawn (turn limit)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Details)
		})
	}
}

func TestFormatAll(t *testing.T) {
	events := []GameEvent{NewBattleStartEvent(), NewDeckOutEvent(7, 0)}
	out := FormatAll(events)
	assert.Equal(t, "T0   BATTLE | Draft complete, battle begins\nT7   BATTLE | P1 cannot draw, deck is empty\n", out)
	assert.Equal(t, "Unknown", EventType(99).String())
	assert.Equal(t, "WardBroken", EventWardBroken.String())
}
