package game

import (
	"fmt"
)

// Act applies one action for the player to move. An action that is not in
// AvailableActions is rejected with an error wrapping ErrIllegalAction and
// leaves the state untouched apart from the invalid-action flag.
func (s *State) Act(a Action) error {
	if !s.IsLegal(a) {
		s.lastInvalid = true
		if s.phase == PhaseEnded {
			return fmt.Errorf("%w: %s (game is over)", ErrIllegalAction, a)
		}
		return fmt.Errorf("%w: %s", ErrIllegalAction, a)
	}
	s.lastInvalid = false
	s.actions = nil

	switch s.phase {
	case PhaseDraft:
		s.pick(a.Origin)
	case PhaseBattle:
		s.resolve(a)
	}
	s.checkInvariants()
	return nil
}

// resolve applies a legal battle action, then clears the dead and checks
// for a winner.
func (s *State) resolve(a Action) {
	me, opp := s.CurrentPlayer(), s.OpposingPlayer()
	switch a.Type {
	case ActionPass:
		s.endTurn()
		return
	case ActionSummon:
		s.resolveSummon(me.HandCard(a.Origin), Lane(a.Target))
	case ActionUse:
		target := me.Creature(a.Target)
		if target == nil {
			target = opp.Creature(a.Target)
		}
		s.resolveUse(me.HandCard(a.Origin), target)
	case ActionAttack:
		s.resolveAttack(me.Creature(a.Origin), opp.Creature(a.Target))
	default:
		panic(InvariantViolation{Msg: fmt.Sprintf("unexpected battle action %s", a)})
	}
	s.turnActions = append(s.turnActions, a)
	s.removeDead()
	s.checkWinner()
}
