package game

import "fmt"

type ActionType int

const (
	ActionPass ActionType = iota
	ActionPick
	ActionSummon
	ActionAttack
	ActionUse
)

func (at ActionType) String() string {
	switch at {
	case ActionPass:
		return "PASS"
	case ActionPick:
		return "PICK"
	case ActionSummon:
		return "SUMMON"
	case ActionAttack:
		return "ATTACK"
	case ActionUse:
		return "USE"
	default:
		return "UNKNOWN"
	}
}

// NoTarget marks an absent operand: face attacks, untargeted items, PASS.
const NoTarget = -1

// Action is a single move. It is a plain value, so two actions are equal
// exactly when they describe the same move.
//
//	PICK    Origin = offer index
//	SUMMON  Origin = instance id, Target = lane
//	ATTACK  Origin = attacker id, Target = defender id or NoTarget (face)
//	USE     Origin = item id, Target = creature id or NoTarget
type Action struct {
	Type   ActionType
	Origin int
	Target int
}

func Pass() Action {
	return Action{Type: ActionPass, Origin: NoTarget, Target: NoTarget}
}

func Pick(index int) Action {
	return Action{Type: ActionPick, Origin: index, Target: NoTarget}
}

func Summon(id int, lane Lane) Action {
	return Action{Type: ActionSummon, Origin: id, Target: int(lane)}
}

func Attack(id, target int) Action {
	return Action{Type: ActionAttack, Origin: id, Target: target}
}

func Use(id, target int) Action {
	return Action{Type: ActionUse, Origin: id, Target: target}
}

// String renders the action in the native agent command form.
func (a Action) String() string {
	switch a.Type {
	case ActionPass:
		return "PASS"
	case ActionPick:
		return fmt.Sprintf("PICK %d", a.Origin)
	default:
		return fmt.Sprintf("%s %d %d", a.Type, a.Origin, a.Target)
	}
}

// Describe returns a human-readable description of a, resolved against s.
func (s *State) Describe(a Action) string {
	switch a.Type {
	case ActionPass:
		return "Pass"
	case ActionPick:
		hand := s.CurrentPlayer().Hand
		if a.Origin >= 0 && a.Origin < len(hand) {
			c := hand[a.Origin].Card
			return fmt.Sprintf("Pick %s (%s, cost %d, %d/%d %s)", c.Name, c.Type, c.Cost, c.Attack, c.Defense, c.Keywords)
		}
	case ActionSummon:
		if ci := s.instance(a.Origin); ci != nil {
			return fmt.Sprintf("Summon %s (%d/%d) to %s lane", ci, ci.Attack, ci.Defense, Lane(a.Target))
		}
	case ActionAttack:
		if ci := s.instance(a.Origin); ci != nil {
			if a.Target == NoTarget {
				return fmt.Sprintf("Attack face with %s (ATK %d)", ci, ci.Attack)
			}
			if t := s.instance(a.Target); t != nil {
				return fmt.Sprintf("Attack %s (%d/%d) with %s (%d/%d)", t, t.Attack, t.Defense, ci, ci.Attack, ci.Defense)
			}
		}
	case ActionUse:
		if ci := s.instance(a.Origin); ci != nil {
			if a.Target == NoTarget {
				return fmt.Sprintf("Use %s", ci)
			}
			if t := s.instance(a.Target); t != nil {
				return fmt.Sprintf("Use %s on %s", ci, t)
			}
		}
	}
	return a.String()
}
