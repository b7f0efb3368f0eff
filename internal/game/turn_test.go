package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/locm/internal/log"
)

func TestPassStartsOpponentTurn(t *testing.T) {
	s, events := newBattle(t)
	mine := place(s, PlayerFirst, creature("Mine", 1, 1, 1, "------"), LaneLeft, false)
	theirs := place(s, PlayerSecond, creature("Theirs", 1, 1, 1, "------"), LaneLeft, false)
	theirs.HasAttacked = true
	s.Player(PlayerSecond).ManaCap = 4
	deckBefore := s.Player(PlayerSecond).DeckCount()

	require.NoError(t, s.Act(Pass()))
	assert.Equal(t, PlayerSecond, s.CurrentOrder())
	assert.Equal(t, 2, s.Turn())

	p := s.CurrentPlayer()
	assert.Equal(t, 5, p.ManaCap)
	assert.Equal(t, 5, p.Mana)
	assert.Equal(t, 1, p.HandCount())
	assert.Equal(t, deckBefore-1, p.DeckCount())
	assert.True(t, theirs.Ready())
	assert.False(t, mine.Ready(), "only the new current player's creatures are readied")
	assert.Len(t, events.EventsOfType(log.EventPass), 1)
}

func TestManaCapStopsAtMax(t *testing.T) {
	s, _ := newBattle(t)
	s.Player(PlayerSecond).ManaCap = 12
	require.NoError(t, s.Act(Pass()))
	assert.Equal(t, 12, s.CurrentPlayer().ManaCap)
	assert.Equal(t, 12, s.CurrentPlayer().Mana)
}

func TestRunesGrantBonusDraws(t *testing.T) {
	s, events := newBattle(t)
	bolt := testCard("Bolt", CardTypeBlueItem, 0, 0, -11, "------")
	c := give(s, PlayerFirst, bolt)

	require.NoError(t, s.Act(Use(c.ID, NoTarget)))
	opp := s.Player(PlayerSecond)
	assert.Equal(t, 19, opp.HP)
	assert.Equal(t, 15, opp.NextRune, "runes 25 and 20 are broken")
	assert.Equal(t, 2, opp.BonusDraw)
	assert.Len(t, events.EventsOfType(log.EventRuneBroken), 2)

	handBefore := opp.HandCount()
	require.NoError(t, s.Act(Pass()))
	assert.Equal(t, handBefore+3, opp.HandCount())
	assert.Equal(t, 0, opp.BonusDraw)
}

func TestHealingDoesNotRestoreRunes(t *testing.T) {
	s, _ := newBattle(t)
	me := s.CurrentPlayer()
	me.HP = 22
	me.NextRune = 20
	potion := testCard("Potion", CardTypeBlueItem, 0, 0, 0, "------")
	potion.PlayerHP = 10
	c := give(s, PlayerFirst, potion)

	require.NoError(t, s.Act(Use(c.ID, NoTarget)))
	assert.Equal(t, 32, me.HP)
	assert.Equal(t, 20, me.NextRune)
}

func TestFullHandBurnsDraw(t *testing.T) {
	s, events := newBattle(t)
	for range 8 {
		give(s, PlayerSecond, creature("Card", 1, 1, 1, "------"))
	}
	opp := s.Player(PlayerSecond)
	deckBefore := opp.DeckCount()

	require.NoError(t, s.Act(Pass()))
	assert.Equal(t, 8, opp.HandCount())
	assert.Equal(t, deckBefore-1, opp.DeckCount())
	assert.Len(t, events.EventsOfType(log.EventBurn), 1)
}

func TestDeckOutIgnored(t *testing.T) {
	s, events := newBattle(t)
	s.Player(PlayerSecond).Deck = nil

	require.NoError(t, s.Act(Pass()))
	assert.Equal(t, PhaseBattle, s.Phase())
	assert.Equal(t, 30, s.CurrentPlayer().HP)
	assert.Equal(t, 0, s.CurrentPlayer().HandCount())
	assert.Len(t, events.EventsOfType(log.EventDeckOut), 1)
}

func TestDeckOutBreaksRune(t *testing.T) {
	rules := DefaultRules()
	rules.DeckOut = DeckOutRune
	s, _ := newTestState(t, 2, rules)
	draftFirstPicks(t, s)
	opp := s.Player(PlayerSecond)
	opp.Deck = nil

	require.NoError(t, s.Act(Pass()))
	assert.Equal(t, 25, opp.HP)
	assert.Equal(t, 20, opp.NextRune)
	assert.Equal(t, 1, opp.BonusDraw)

	opp.HP = 3
	opp.NextRune = 0
	require.NoError(t, s.Act(Pass()))
	require.NoError(t, s.Act(Pass()))
	assert.Equal(t, PhaseEnded, s.Phase())
	assert.Equal(t, PlayerFirst, s.Winner())
}

func TestAllPassEndsAtTurnLimit(t *testing.T) {
	s, events := newTestState(t, 0, DefaultRules())
	draftFirstPicks(t, s)
	for s.Phase() == PhaseBattle {
		require.NoError(t, s.Act(Pass()))
	}
	assert.Equal(t, PhaseEnded, s.Phase())
	assert.Equal(t, NoPlayer, s.Winner())
	assert.Equal(t, 200, s.Turn())
	assert.Contains(t, s.Result(), "turn limit")
	assert.Len(t, events.EventsOfType(log.EventTie), 1)
	for _, p := range s.players {
		assert.Equal(t, 30, p.HP)
	}
}

func TestAllPassWithRuneDeckOutTerminates(t *testing.T) {
	rules := DefaultRules()
	rules.DeckOut = DeckOutRune
	rules.TurnLimit = 0
	s, _ := newTestState(t, 0, rules)
	draftFirstPicks(t, s)
	for s.Phase() == PhaseBattle {
		require.NoError(t, s.Act(Pass()))
		require.Less(t, s.Turn(), 1000, "all-pass game must terminate")
	}
	assert.Equal(t, PhaseEnded, s.Phase())
	assert.NotEqual(t, NoPlayer, s.Winner())
}

func TestOpponentLastActions(t *testing.T) {
	s, _ := newBattle(t)
	c := give(s, PlayerFirst, creature("Cub", 1, 1, 1, "------"))
	require.NoError(t, s.Act(Summon(c.ID, LaneLeft)))
	require.NoError(t, s.Act(Pass()))
	assert.Equal(t, []Action{Summon(c.ID, LaneLeft)}, s.OpponentLastActions())

	require.NoError(t, s.Act(Pass()))
	assert.Empty(t, s.OpponentLastActions())
}
