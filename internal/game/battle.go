package game

import (
	"github.com/peterkuimelis/locm/internal/log"
)

// resolveAttack resolves ATTACK(attacker, target). target is nil for a face
// attack.
func (s *State) resolveAttack(attacker, target *CardInstance) {
	me, opp := s.CurrentPlayer(), s.OpposingPlayer()
	attacker.HasAttacked = true

	if target == nil {
		s.log(log.NewAttackEvent(s.turn, int(me.Order), attacker.String(), "face"))
		s.damagePlayer(opp, attacker.Attack, attacker.String())
		if attacker.Has(KeywordDrain) {
			s.healPlayer(me, attacker.Attack, "drain")
		}
		return
	}

	s.log(log.NewAttackEvent(s.turn, int(me.Order), attacker.String(), target.String()))
	defenseBefore := target.Defense

	dealt := s.strike(attacker, target)
	s.strike(target, attacker)

	if dealt == 0 {
		return
	}
	if attacker.Has(KeywordBreakthrough) {
		if excess := attacker.Attack - defenseBefore; excess > 0 {
			s.damagePlayer(opp, excess, "breakthrough")
		}
	}
	if attacker.Has(KeywordDrain) {
		s.healPlayer(me, dealt, "drain")
	}
}

// strike deals source's attack to target and applies Lethal. It returns the
// damage that landed.
func (s *State) strike(source, target *CardInstance) int {
	dealt := s.damageCreature(target, source.Attack)
	if dealt > 0 && source.Has(KeywordLethal) {
		target.Defense = min(target.Defense, 0)
	}
	return dealt
}

// damageCreature lowers a creature's defense. Ward absorbs one nonzero hit
// and is consumed. It returns the damage that landed.
func (s *State) damageCreature(c *CardInstance, amount int) int {
	if amount <= 0 {
		return 0
	}
	if c.Has(KeywordWard) {
		c.Keywords = c.Keywords.Remove(KeywordWard)
		s.log(log.NewWardBrokenEvent(s.turn, int(c.Owner), c.String()))
		return 0
	}
	c.Defense -= amount
	s.log(log.NewDamageEvent(s.turn, int(c.Owner), c.String(), amount, c.Defense))
	return amount
}

// removeDead clears every creature with no defense left from both boards.
func (s *State) removeDead() {
	for _, p := range s.players {
		for _, c := range p.Creatures() {
			if c.Defense <= 0 {
				p.removeCreature(c)
				s.log(log.NewDestroyEvent(s.turn, int(p.Order), c.String()))
			}
		}
	}
}
