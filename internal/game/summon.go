package game

import (
	"github.com/peterkuimelis/locm/internal/log"
)

// resolveSummon resolves SUMMON(card, lane).
func (s *State) resolveSummon(card *CardInstance, lane Lane) {
	me := s.CurrentPlayer()
	me.Mana -= card.Card.Cost
	me.removeFromHand(card)
	card.CanAttack = card.Has(KeywordCharge)
	card.HasAttacked = false
	me.placeCreature(card, lane)
	s.log(log.NewSummonEvent(s.turn, int(me.Order), card.String(), card.Attack, card.Defense, lane.String()))
	s.applyCardBonus(me, card.Card)
}

// resolveUse resolves USE(item, target). target is nil for untargeted items.
func (s *State) resolveUse(item *CardInstance, target *CardInstance) {
	me := s.CurrentPlayer()
	me.Mana -= item.Card.Cost
	me.removeFromHand(item)
	targetName := ""
	if target != nil {
		targetName = target.String()
	}
	s.log(log.NewUseEvent(s.turn, int(me.Order), item.String(), targetName))
	itemEffects[item.Card.Type].apply(s, item, target)
	s.applyCardBonus(me, item.Card)
}
