// Package view builds the JSON shapes agents see: one player's side of the
// game, the numbered legal actions and the event feed.
package view

import (
	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/log"
)

// EventView is a simplified game event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index   int    `json:"index"`
	Command string `json:"command"`
	Desc    string `json:"desc"`
}

// CardView describes a card in hand, on offer, or in play.
type CardView struct {
	InstanceID int    `json:"instance_id"`
	CardID     int    `json:"card_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Cost       int    `json:"cost"`
	Attack     int    `json:"attack"`
	Defense    int    `json:"defense"`
	Keywords   string `json:"keywords"`
	PlayerHP   int    `json:"player_hp,omitempty"`
	EnemyHP    int    `json:"enemy_hp,omitempty"`
	CardDraw   int    `json:"card_draw,omitempty"`
	CanAttack  bool   `json:"can_attack,omitempty"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	HP        int           `json:"hp"`
	Mana      int           `json:"mana"`
	ManaCap   int           `json:"mana_cap"`
	NextRune  int           `json:"next_rune"`
	BonusDraw int           `json:"bonus_draw"`
	DeckCount int           `json:"deck_count"`
	HandCount int           `json:"hand_count"`
	Hand      []CardView    `json:"hand,omitempty"` // only for "you"
	Lanes     [2][]CardView `json:"lanes"`
}

// StateView is the game state from one player's perspective.
type StateView struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Phase      string     `json:"phase"`
	DraftRound int        `json:"draft_round,omitempty"`
	IsYourTurn bool       `json:"is_your_turn"`
	Winner     string     `json:"winner,omitempty"`
	Result     string     `json:"result,omitempty"`
}

// BuildStateView creates a StateView from the perspective of the given player.
func BuildStateView(s *game.State, player game.PlayerOrder) *StateView {
	sv := &StateView{
		Turn:       s.Turn(),
		Phase:      s.Phase().String(),
		IsYourTurn: s.Phase() != game.PhaseEnded && s.CurrentOrder() == player,
		Result:     s.Result(),
	}
	if s.Phase() == game.PhaseDraft {
		sv.DraftRound = s.DraftRound() + 1
	}
	if s.Phase() == game.PhaseEnded {
		sv.Winner = s.Winner().String()
	}

	sv.You = buildPlayerView(s.Player(player), true)
	sv.Opponent = buildPlayerView(s.Player(player.Opponent()), false)
	return sv
}

func buildPlayerView(p *game.Player, owner bool) PlayerView {
	pv := PlayerView{
		HP:        p.HP,
		Mana:      p.Mana,
		ManaCap:   p.ManaCap,
		NextRune:  p.NextRune,
		BonusDraw: p.BonusDraw,
		DeckCount: p.DeckCount(),
		HandCount: p.HandCount(),
	}
	if owner {
		for _, c := range p.Hand {
			pv.Hand = append(pv.Hand, Card(c))
		}
	}
	for lane := range p.Lanes {
		pv.Lanes[lane] = []CardView{}
		for _, c := range p.Lanes[lane] {
			pv.Lanes[lane] = append(pv.Lanes[lane], Card(c))
		}
	}
	return pv
}

// Card creates a CardView for an instance.
func Card(c *game.CardInstance) CardView {
	return CardView{
		InstanceID: c.ID,
		CardID:     c.Card.ID,
		Name:       c.Card.Name,
		Type:       c.Card.Type.String(),
		Cost:       c.Card.Cost,
		Attack:     c.Attack,
		Defense:    c.Defense,
		Keywords:   c.Keywords.String(),
		PlayerHP:   c.Card.PlayerHP,
		EnemyHP:    c.Card.EnemyHP,
		CardDraw:   c.Card.CardDraw,
		CanAttack:  c.Card.Type == game.CardTypeCreature && c.Ready(),
	}
}

// Definition creates a CardView for a catalog card.
func Definition(c *game.Card) CardView {
	return CardView{
		InstanceID: game.NoTarget,
		CardID:     c.ID,
		Name:       c.Name,
		Type:       c.Type.String(),
		Cost:       c.Cost,
		Attack:     c.Attack,
		Defense:    c.Defense,
		Keywords:   c.Keywords.String(),
		PlayerHP:   c.PlayerHP,
		EnemyHP:    c.EnemyHP,
		CardDraw:   c.CardDraw,
	}
}

// Actions numbers the legal actions of s.
func Actions(s *game.State) []ActionView {
	actions := s.AvailableActions()
	views := make([]ActionView, len(actions))
	for i, a := range actions {
		views[i] = ActionView{Index: i, Command: a.String(), Desc: s.Describe(a)}
	}
	return views
}

// Event converts a logged event.
func Event(e log.GameEvent) EventView {
	return EventView{
		Turn:    e.Turn,
		Phase:   e.Phase,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
}

// Events converts a slice of logged events.
func Events(events []log.GameEvent) []EventView {
	out := make([]EventView, len(events))
	for i, e := range events {
		out[i] = Event(e)
	}
	return out
}

// EventsFor converts events as seen by player: the other seat's picks and
// draws are reported without naming the card.
func EventsFor(events []log.GameEvent, player game.PlayerOrder) []EventView {
	out := make([]EventView, len(events))
	for i, e := range events {
		ev := Event(e)
		if e.Player != int(player) {
			switch e.Type {
			case log.EventPick:
				ev.Card = ""
				ev.Details = "opponent picks a card"
			case log.EventDraw:
				ev.Card = ""
				ev.Details = "opponent draws a card"
			}
		}
		out[i] = ev
	}
	return out
}
