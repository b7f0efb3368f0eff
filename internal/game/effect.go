package game

// itemEffect is the fixed behaviour of one item color: which targets it
// accepts and what it does to them.
type itemEffect struct {
	targets func(s *State, item *CardInstance) []int
	apply   func(s *State, item *CardInstance, target *CardInstance)
}

// itemEffects dispatches USE by card type.
var itemEffects = map[CardType]itemEffect{
	CardTypeGreenItem: {targets: ownCreatureTargets, apply: applyGreen},
	CardTypeRedItem:   {targets: enemyCreatureTargets, apply: applyRed},
	CardTypeBlueItem:  {targets: blueTargets, apply: applyBlue},
}

func ownCreatureTargets(s *State, _ *CardInstance) []int {
	var ids []int
	for _, c := range s.CurrentPlayer().Creatures() {
		ids = append(ids, c.ID)
	}
	return ids
}

func enemyCreatureTargets(s *State, _ *CardInstance) []int {
	var ids []int
	for _, c := range s.OpposingPlayer().Creatures() {
		ids = append(ids, c.ID)
	}
	return ids
}

// blueTargets: the opponent's face always, enemy creatures only for items
// that deal damage.
func blueTargets(s *State, item *CardInstance) []int {
	ids := []int{NoTarget}
	if item.Card.Defense < 0 {
		ids = append(ids, enemyCreatureTargets(s, item)...)
	}
	return ids
}

func applyGreen(s *State, item *CardInstance, target *CardInstance) {
	card := item.Card
	target.Keywords = target.Keywords.Add(card.Keywords)
	target.Attack += card.Attack
	target.Defense += card.Defense
	if card.Keywords.Has(KeywordCharge) && !target.HasAttacked {
		target.CanAttack = true
	}
}

func applyRed(s *State, item *CardInstance, target *CardInstance) {
	card := item.Card
	target.Keywords = target.Keywords.Remove(card.Keywords)
	target.Attack = max(target.Attack+card.Attack, 0)
	s.damageCreature(target, -card.Defense)
}

func applyBlue(s *State, item *CardInstance, target *CardInstance) {
	if target != nil {
		applyRed(s, item, target)
		return
	}
	s.damagePlayer(s.OpposingPlayer(), -item.Card.Defense, item.Name())
}

// applyCardBonus applies the HP and draw effects every card carries.
func (s *State) applyCardBonus(owner *Player, card *Card) {
	s.changeHP(owner, card.PlayerHP, card.Name)
	s.changeHP(s.players[owner.Order.Opponent()], card.EnemyHP, card.Name)
	owner.BonusDraw += card.CardDraw
}
