package game

import "slices"

// AvailableActions returns the legal actions for the player to move, in a
// fixed order:
//
//	DRAFT   PICK 0..n-1
//	BATTLE  SUMMON (hand order, left lane before right), USE (hand order,
//	        targets in lane order), ATTACK (attackers in lane order, face
//	        before creatures), PASS
//	ENDED   none
//
// The slice is cached until the next successful Act and must not be modified.
func (s *State) AvailableActions() []Action {
	if s.actions != nil {
		return s.actions
	}
	switch s.phase {
	case PhaseDraft:
		s.actions = s.draftActions()
	case PhaseBattle:
		s.actions = s.battleActions()
	default:
		return nil
	}
	return s.actions
}

// IsLegal reports whether a is in the current legal set.
func (s *State) IsLegal(a Action) bool {
	return slices.Contains(s.AvailableActions(), a)
}

func (s *State) draftActions() []Action {
	hand := s.CurrentPlayer().Hand
	actions := make([]Action, len(hand))
	for i := range hand {
		actions[i] = Pick(i)
	}
	return actions
}

func (s *State) battleActions() []Action {
	me := s.CurrentPlayer()
	var actions []Action

	for _, c := range me.Hand {
		if c.Card.Type != CardTypeCreature || c.Card.Cost > me.Mana {
			continue
		}
		for lane := range LaneCount {
			if len(me.Lanes[lane]) < s.rules.LaneSize {
				actions = append(actions, Summon(c.ID, Lane(lane)))
			}
		}
	}

	for _, c := range me.Hand {
		if !c.Card.Type.IsItem() || c.Card.Cost > me.Mana {
			continue
		}
		for _, target := range itemEffects[c.Card.Type].targets(s, c) {
			actions = append(actions, Use(c.ID, target))
		}
	}

	actions = append(actions, s.attackActions()...)
	return append(actions, Pass())
}

// attackActions lists attacks for every ready creature. Attacks stay in
// their lane; Guards in that lane must be attacked first.
func (s *State) attackActions() []Action {
	me, opp := s.CurrentPlayer(), s.OpposingPlayer()
	var actions []Action
	for lane := range LaneCount {
		guards := opp.Guards(Lane(lane))
		for _, attacker := range me.Lanes[lane] {
			if !attacker.Ready() {
				continue
			}
			if len(guards) > 0 {
				for _, g := range guards {
					actions = append(actions, Attack(attacker.ID, g.ID))
				}
				continue
			}
			actions = append(actions, Attack(attacker.ID, NoTarget))
			for _, d := range opp.Lanes[lane] {
				actions = append(actions, Attack(attacker.ID, d.ID))
			}
		}
	}
	return actions
}
