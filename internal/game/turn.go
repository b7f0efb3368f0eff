package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/locm/internal/log"
)

// startTurn runs start-of-turn bookkeeping for the current player.
func (s *State) startTurn() {
	if s.rules.TurnLimit > 0 && s.turn >= s.rules.TurnLimit {
		s.endGame(NoPlayer, fmt.Sprintf("turn limit reached (%d turns)", s.rules.TurnLimit))
		return
	}
	s.turn++
	p := s.CurrentPlayer()

	if p.ManaCap < s.rules.MaxMana {
		p.ManaCap++
	}
	p.Mana = p.ManaCap
	s.log(log.NewTurnEvent(s.turn, int(p.Order), p.Mana))

	draws := 1 + p.BonusDraw
	p.BonusDraw = 0
	for range draws {
		s.draw(p)
		if s.phase == PhaseEnded {
			return
		}
	}

	for _, c := range p.Creatures() {
		c.CanAttack = true
		c.HasAttacked = false
	}
}

// draw moves the top card of p's deck into p's hand. A full hand loses the
// card; an empty deck is handled by the deck-out policy.
func (s *State) draw(p *Player) {
	if p.DeckCount() == 0 {
		s.log(log.NewDeckOutEvent(s.turn, int(p.Order)))
		if s.rules.DeckOut == DeckOutRune {
			s.damagePlayer(p, p.HP-p.NextRune, "deck out")
			s.checkWinner()
		}
		return
	}
	if p.HandCount() >= s.rules.HandLimit {
		burned := p.popDeck()
		s.log(log.NewBurnEvent(s.turn, int(p.Order), burned.Name()))
		return
	}
	card := p.drawCard()
	s.log(log.NewDrawEvent(s.turn, int(p.Order), card.Name()))
}

// endTurn hands the move to the opponent.
func (s *State) endTurn() {
	s.log(log.NewPassEvent(s.turn, int(s.current)))
	s.opponentActions = s.turnActions
	s.turnActions = nil
	s.current = s.current.Opponent()
	s.startTurn()
}

// damagePlayer lowers p's HP, clamped at zero, and breaks every rune the
// new HP has reached.
func (s *State) damagePlayer(p *Player, amount int, reason string) {
	if amount <= 0 {
		return
	}
	old := p.HP
	p.HP = max(p.HP-amount, 0)
	s.log(log.NewHPChangeEvent(s.turn, int(p.Order), old, p.HP, reason))

	for p.NextRune > 0 && p.HP <= p.NextRune {
		s.log(log.NewRuneBrokenEvent(s.turn, int(p.Order), p.NextRune))
		p.NextRune = max(p.NextRune-s.rules.RuneStep, 0)
		p.BonusDraw++
	}
}

func (s *State) healPlayer(p *Player, amount int, reason string) {
	if amount <= 0 {
		return
	}
	old := p.HP
	p.HP += amount
	s.log(log.NewHPChangeEvent(s.turn, int(p.Order), old, p.HP, reason))
}

// changeHP applies a signed HP delta from a card effect.
func (s *State) changeHP(p *Player, delta int, reason string) {
	if delta < 0 {
		s.damagePlayer(p, -delta, reason)
	} else {
		s.healPlayer(p, delta, reason)
	}
}

// checkWinner ends the game if a player has no HP left. Both players at
// zero is a draw.
func (s *State) checkWinner() bool {
	if s.phase == PhaseEnded {
		return true
	}
	dead0 := s.players[PlayerFirst].HP <= 0
	dead1 := s.players[PlayerSecond].HP <= 0
	switch {
	case dead0 && dead1:
		s.endGame(NoPlayer, "both players reached 0 HP")
	case dead0:
		s.endGame(PlayerSecond, "opponent HP reduced to 0")
	case dead1:
		s.endGame(PlayerFirst, "opponent HP reduced to 0")
	default:
		return false
	}
	return true
}

func (s *State) endGame(winner PlayerOrder, reason string) {
	s.phase = PhaseEnded
	s.winner = winner
	s.result = reason
	s.actions = nil
	if winner == NoPlayer {
		s.log(log.NewTieEvent(s.turn, reason))
	} else {
		s.log(log.NewWinEvent(s.turn, int(winner), reason))
	}
	s.logger.Debug("game ended",
		zap.Int("turn", s.turn),
		zap.Stringer("winner", winner),
		zap.String("reason", reason))
}
