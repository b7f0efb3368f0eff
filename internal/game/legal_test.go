package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassAlwaysLegalInBattle(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		s, _ := newTestState(t, seed, DefaultRules())
		r := rand.New(rand.NewPCG(uint64(seed), 1))
		for s.Phase() != PhaseEnded {
			actions := s.AvailableActions()
			if s.Phase() == PhaseBattle {
				require.NotEmpty(t, actions)
				require.Equal(t, Pass(), actions[len(actions)-1], "seed %d turn %d", seed, s.Turn())
			}
			a := actions[r.IntN(len(actions))]
			require.NoError(t, s.Act(a), "seed %d: %s", seed, a)
			require.False(t, s.WasLastActionInvalid())
		}
		assert.Empty(t, s.AvailableActions())
	}
}

func TestEnumerationOrder(t *testing.T) {
	s, _ := newBattle(t)
	bear := give(s, PlayerFirst, creature("Bear", 2, 2, 2, "------"))
	potion := give(s, PlayerFirst, testCard("Potion", CardTypeBlueItem, 1, 0, 0, "------"))
	wolf := place(s, PlayerFirst, creature("Wolf", 1, 1, 1, "------"), LaneLeft, true)
	rat := place(s, PlayerSecond, creature("Rat", 1, 1, 1, "------"), LaneLeft, false)

	assert.Equal(t, []Action{
		Summon(bear.ID, LaneLeft),
		Summon(bear.ID, LaneRight),
		Use(potion.ID, NoTarget),
		Attack(wolf.ID, NoTarget),
		Attack(wolf.ID, rat.ID),
		Pass(),
	}, s.AvailableActions())
}

func TestSummonRequiresManaAndLaneRoom(t *testing.T) {
	s, _ := newBattle(t)
	s.CurrentPlayer().Mana = 3
	cheap := give(s, PlayerFirst, creature("Cheap", 3, 1, 1, "------"))
	pricey := give(s, PlayerFirst, creature("Pricey", 4, 5, 5, "------"))
	for range 3 {
		place(s, PlayerFirst, creature("Filler", 1, 1, 1, "------"), LaneLeft, false)
	}

	actions := s.AvailableActions()
	assert.False(t, hasAction(actions, Summon(cheap.ID, LaneLeft)), "left lane is full")
	assert.True(t, hasAction(actions, Summon(cheap.ID, LaneRight)))
	assert.Empty(t, actionsFrom(actions, pricey.ID, ActionSummon))
}

func TestGuardEnforcement(t *testing.T) {
	s, _ := newBattle(t)
	attacker := place(s, PlayerFirst, creature("Knight", 3, 3, 3, "------"), LaneLeft, true)
	other := place(s, PlayerFirst, creature("Archer", 2, 2, 2, "------"), LaneRight, true)
	guard := place(s, PlayerSecond, creature("Wall", 2, 0, 5, "---G--"), LaneLeft, false)
	behind := place(s, PlayerSecond, creature("Mage", 2, 2, 1, "------"), LaneLeft, false)
	rightSide := place(s, PlayerSecond, creature("Scout", 1, 1, 1, "------"), LaneRight, false)

	actions := s.AvailableActions()
	assert.Equal(t, []Action{Attack(attacker.ID, guard.ID)}, actionsFrom(actions, attacker.ID, ActionAttack))
	assert.False(t, hasAction(actions, Attack(attacker.ID, behind.ID)))
	assert.False(t, hasAction(actions, Attack(attacker.ID, NoTarget)))

	// The right lane has no guard and attacks stay in their own lane.
	assert.Equal(t, []Action{Attack(other.ID, NoTarget), Attack(other.ID, rightSide.ID)},
		actionsFrom(actions, other.ID, ActionAttack))

	require.ErrorIs(t, s.Act(Attack(attacker.ID, NoTarget)), ErrIllegalAction)

	// Once the guard falls the lane opens up.
	require.NoError(t, s.Act(Attack(attacker.ID, guard.ID)))
	require.NoError(t, s.Act(Pass()))
	require.NoError(t, s.Act(Pass()))
	s.CurrentPlayer().Mana = 0
	s.actions = nil
	guard.Defense = 0
	s.removeDead()
	actions = s.AvailableActions()
	assert.True(t, hasAction(actions, Attack(attacker.ID, NoTarget)))
	assert.True(t, hasAction(actions, Attack(attacker.ID, behind.ID)))
}

func TestSummonedCreatureCannotAttackWithoutCharge(t *testing.T) {
	s, _ := newBattle(t)
	slow := give(s, PlayerFirst, creature("Slow", 1, 2, 2, "------"))
	fast := give(s, PlayerFirst, creature("Fast", 1, 2, 2, "-C----"))

	require.NoError(t, s.Act(Summon(slow.ID, LaneLeft)))
	assert.Empty(t, actionsFrom(s.AvailableActions(), slow.ID, ActionAttack))

	require.NoError(t, s.Act(Summon(fast.ID, LaneRight)))
	assert.True(t, hasAction(s.AvailableActions(), Attack(fast.ID, NoTarget)))

	require.NoError(t, s.Act(Attack(fast.ID, NoTarget)))
	assert.Empty(t, actionsFrom(s.AvailableActions(), fast.ID, ActionAttack), "one attack per turn")
}

func TestItemTargets(t *testing.T) {
	s, _ := newBattle(t)
	buff := give(s, PlayerFirst, testCard("Buff", CardTypeGreenItem, 1, 1, 1, "------"))
	curse := give(s, PlayerFirst, testCard("Curse", CardTypeRedItem, 1, -1, -1, "------"))
	heal := give(s, PlayerFirst, testCard("Heal", CardTypeBlueItem, 1, 0, 0, "------"))
	bolt := give(s, PlayerFirst, testCard("Bolt", CardTypeBlueItem, 1, 0, -2, "------"))

	actions := s.AvailableActions()
	assert.Empty(t, actionsFrom(actions, buff.ID, ActionUse), "no own creature to buff")
	assert.Empty(t, actionsFrom(actions, curse.ID, ActionUse), "no enemy creature to curse")
	assert.Equal(t, []Action{Use(heal.ID, NoTarget)}, actionsFrom(actions, heal.ID, ActionUse))
	assert.Equal(t, []Action{Use(bolt.ID, NoTarget)}, actionsFrom(actions, bolt.ID, ActionUse))

	mine := place(s, PlayerFirst, creature("Mine", 1, 1, 1, "------"), LaneRight, false)
	theirs := place(s, PlayerSecond, creature("Theirs", 1, 1, 1, "------"), LaneLeft, false)
	actions = s.AvailableActions()
	assert.Equal(t, []Action{Use(buff.ID, mine.ID)}, actionsFrom(actions, buff.ID, ActionUse))
	assert.Equal(t, []Action{Use(curse.ID, theirs.ID)}, actionsFrom(actions, curse.ID, ActionUse))
	assert.Equal(t, []Action{Use(heal.ID, NoTarget)}, actionsFrom(actions, heal.ID, ActionUse))
	assert.Equal(t, []Action{Use(bolt.ID, NoTarget), Use(bolt.ID, theirs.ID)}, actionsFrom(actions, bolt.ID, ActionUse))
}

func TestActionsCachedUntilAct(t *testing.T) {
	s, _ := newBattle(t)
	c := give(s, PlayerFirst, creature("Cub", 1, 1, 1, "------"))
	first := s.AvailableActions()
	assert.Equal(t, first, s.AvailableActions())
	require.NoError(t, s.Act(Summon(c.ID, LaneLeft)))
	assert.Equal(t, []Action{Pass()}, s.AvailableActions())
}
