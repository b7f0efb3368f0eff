package game

import (
	"go.uber.org/zap"

	"github.com/peterkuimelis/locm/internal/log"
)

// startDraft samples the draft pool and deals the first offer.
//
// Randomness is consumed in a fixed order: pool, then one offer per round,
// then the two deck shuffles.
func (s *State) startDraft() {
	all := s.catalog.All()
	perm := s.rng.Perm(len(all))
	s.pool = make([]*Card, s.rules.DraftPoolSize)
	for i := range s.pool {
		s.pool[i] = all[perm[i]]
	}
	s.dealOffer()
}

// dealOffer shows both players the same cards for the current round. Offer
// cards are not instances yet; PICK creates the instance.
func (s *State) dealOffer() {
	idx := s.rng.Perm(len(s.pool))[:s.rules.DraftChoices]
	for _, p := range s.players {
		p.Hand = p.Hand[:0]
		for _, i := range idx {
			p.Hand = append(p.Hand, &CardInstance{
				Card:     s.pool[i],
				ID:       NoTarget,
				Owner:    p.Order,
				Attack:   s.pool[i].Attack,
				Defense:  s.pool[i].Defense,
				Keywords: s.pool[i].Keywords,
			})
		}
	}
}

// pick resolves PICK(index) for the current player.
func (s *State) pick(index int) {
	p := s.CurrentPlayer()
	offered := p.Hand[index]
	p.Hand = append(p.Hand[:index], p.Hand[index+1:]...)
	ci := s.newInstance(offered.Card, p.Order)
	p.Deck = append(p.Deck, ci)
	s.log(log.NewPickEvent(s.draftRound, int(p.Order), ci.Name(), len(p.Deck)))

	if s.current == PlayerFirst {
		s.current = PlayerSecond
		return
	}
	s.current = PlayerFirst
	s.draftRound++
	if s.draftRound < s.rules.DeckSize {
		s.dealOffer()
		return
	}
	s.startBattle()
}

// startBattle shuffles both decks, deals opening hands and starts turn one.
func (s *State) startBattle() {
	s.phase = PhaseBattle
	s.log(log.NewBattleStartEvent())
	for _, p := range s.players {
		p.Hand = nil
		s.shuffle(p)
	}
	for _, p := range s.players {
		for range s.rules.openingHand(p.Order) {
			p.drawCard()
		}
	}
	s.logger.Debug("battle started",
		zap.Int("deck_first", s.players[PlayerFirst].DeckCount()),
		zap.Int("deck_second", s.players[PlayerSecond].DeckCount()))

	s.current = PlayerFirst
	s.startTurn()
}

func (s *State) shuffle(p *Player) {
	s.rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
	s.log(log.NewShuffleEvent(int(p.Order)))
}
