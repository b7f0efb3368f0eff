package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/locm/internal/log"
)

var testCardID = 9000

// testCard builds a card outside the catalog. kw is a keyword mask such as "---G--".
func testCard(name string, ct CardType, cost, atk, def int, kw string) *Card {
	ks, err := ParseKeywords(kw)
	if err != nil {
		panic(err)
	}
	testCardID++
	return &Card{ID: testCardID, Name: name, Type: ct, Cost: cost, Attack: atk, Defense: def, Keywords: ks}
}

func creature(name string, cost, atk, def int, kw string) *Card {
	return testCard(name, CardTypeCreature, cost, atk, def, kw)
}

// newTestState creates a game with a memory event log and a test logger.
func newTestState(t *testing.T, seed int64, rules Rules) (*State, *log.MemoryLogger) {
	t.Helper()
	events := log.NewMemoryLogger()
	s, err := NewState(Config{Seed: seed, Rules: &rules, Events: events, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	return s, events
}

// draftFirstPicks drives the draft by always picking the first offer.
func draftFirstPicks(t *testing.T, s *State) {
	t.Helper()
	for s.Phase() == PhaseDraft {
		require.NoError(t, s.Act(Pick(0)))
	}
}

// newBattle returns a state at turn 1 of the battle with empty hands and
// boards and 10 mana for both players. The decks are left as drafted.
func newBattle(t *testing.T) (*State, *log.MemoryLogger) {
	t.Helper()
	s, events := newTestState(t, 7, DefaultRules())
	draftFirstPicks(t, s)
	require.Equal(t, PhaseBattle, s.Phase())
	require.Equal(t, PlayerFirst, s.CurrentOrder())
	for _, p := range s.players {
		p.Hand = nil
		p.Lanes = [LaneCount][]*CardInstance{}
		p.ManaCap = 10
		p.Mana = 10
	}
	s.actions = nil
	return s, events
}

// give puts a new instance of card into p's hand.
func give(s *State, p PlayerOrder, card *Card) *CardInstance {
	ci := s.newInstance(card, p)
	s.players[p].Hand = append(s.players[p].Hand, ci)
	s.actions = nil
	return ci
}

// place puts a new instance of card into p's lane. ready creatures may attack.
func place(s *State, p PlayerOrder, card *Card, lane Lane, ready bool) *CardInstance {
	ci := s.newInstance(card, p)
	ci.CanAttack = ready
	s.players[p].placeCreature(ci, lane)
	s.actions = nil
	return ci
}

// playRandom plays uniformly random legal actions until the game ends or
// steps run out. It returns the actions taken.
func playRandom(t *testing.T, s *State, r *rand.Rand, steps int) []Action {
	t.Helper()
	var played []Action
	for i := 0; i < steps && s.Phase() != PhaseEnded; i++ {
		actions := s.AvailableActions()
		a := actions[r.IntN(len(actions))]
		require.NoError(t, s.Act(a), "action %s", a)
		played = append(played, a)
	}
	return played
}

func hasAction(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

func actionsFrom(actions []Action, origin int, at ActionType) []Action {
	var out []Action
	for _, a := range actions {
		if a.Type == at && a.Origin == origin {
			out = append(out, a)
		}
	}
	return out
}
