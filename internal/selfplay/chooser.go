// Package selfplay runs games between scripted choosers, sequentially or
// on a worker pool, and collects the outcomes.
package selfplay

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/peterkuimelis/locm/internal/game"
)

// Chooser picks one of the legal actions for the player to move. A chooser
// serves a single seat of a single game.
type Chooser interface {
	Choose(ctx context.Context, s *game.State, actions []game.Action) (game.Action, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx context.Context, s *game.State, actions []game.Action) (game.Action, error)

func (f ChooserFunc) Choose(ctx context.Context, s *game.State, actions []game.Action) (game.Action, error) {
	return f(ctx, s, actions)
}

type factory func(seed uint64) Chooser

var choosers = map[string]factory{
	"first":  func(uint64) Chooser { return First() },
	"pass":   func(uint64) Chooser { return PassAll() },
	"random": func(seed uint64) Chooser { return Random(seed) },
	"rules":  func(seed uint64) Chooser { return Rules(seed, GuardDraft) },
	"icebox": func(seed uint64) Chooser { return Rules(seed, IceboxDraft) },
	"closet": func(seed uint64) Chooser { return Rules(seed, ClosetDraft) },
}

// Names lists the registered chooser names.
func Names() []string {
	names := make([]string, 0, len(choosers))
	for n := range choosers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New creates the named chooser. Choosers that need randomness draw it from
// a stream seeded with seed.
func New(name string, seed uint64) (Chooser, error) {
	f, ok := choosers[name]
	if !ok {
		return nil, fmt.Errorf("selfplay: unknown chooser %q (want one of %v)", name, Names())
	}
	return f(seed), nil
}

// First always plays the first legal action.
func First() Chooser {
	return ChooserFunc(func(_ context.Context, _ *game.State, actions []game.Action) (game.Action, error) {
		return actions[0], nil
	})
}

// PassAll drafts the first offer and passes every battle turn.
func PassAll() Chooser {
	return ChooserFunc(func(_ context.Context, s *game.State, _ []game.Action) (game.Action, error) {
		if s.Phase() == game.PhaseDraft {
			return game.Pick(0), nil
		}
		return game.Pass(), nil
	})
}

// Random plays a uniformly random legal action.
func Random(seed uint64) Chooser {
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	return ChooserFunc(func(_ context.Context, _ *game.State, actions []game.Action) (game.Action, error) {
		return actions[rng.IntN(len(actions))], nil
	})
}

// DraftFunc returns the index of the offer card to pick.
type DraftFunc func(offer []*game.CardInstance) int

// GuardDraft picks the first Guard creature on offer, else the first card.
func GuardDraft(offer []*game.CardInstance) int {
	for i, c := range offer {
		if c.Card.Type == game.CardTypeCreature && c.Card.Keywords.Has(game.KeywordGuard) {
			return i
		}
	}
	return 0
}

// IceboxDraft picks the card with the best IceboxScore, the first on ties.
func IceboxDraft(offer []*game.CardInstance) int {
	best := 0
	for i, c := range offer {
		if IceboxScore(c.Card) > IceboxScore(offer[best].Card) {
			best = i
		}
	}
	return best
}

// closetScores rates LOCM 1.2 cards by id (index id-1). It only means
// something when the catalog is the real card list.
var closetScores = [...]int{
	-666, 65, 50, 80, 50, 70, 71, 115, 71, 73,
	43, 77, 62, 63, 50, 66, 60, 66, 90, 75,
	50, 68, 67, 100, 42, 63, 67, 52, 69, 90,
	60, 47, 87, 81, 67, 62, 75, 94, 56, 62,
	51, 61, 43, 54, 97, 64, 67, 49, 109, 111,
	89, 114, 93, 92, 89, 2, 54, 25, 63, 76,
	58, 99, 79, 19, 82, 115, 106, 104, 146, 98,
	70, 56, 65, 52, 54, 65, 55, 77, 48, 84,
	115, 75, 89, 68, 80, 71, 46, 73, 69, 47,
	63, 70, 11, 71, 54, 85, 77, 77, 64, 82,
	62, 49, 43, 78, 67, 72, 67, 36, 48, 75,
	-8, 82, 69, 32, 87, 98, 124, 35, 60, 59,
	49, 72, 54, 35, 22, 50, 54, 51, 54, 59,
	38, 31, 43, 62, 55, 57, 41, 70, 38, 76,
	1, -100, -100, -100, -100, -100, -100, -100, -100, -100,
	-100, -100, -100, -100, -100, -100, -100, -100, -100, -100,
}

// ClosetScore returns the ClosetAI draft score of a card. Ids outside the
// table score -100, like the blue items at the end of it.
func ClosetScore(c *game.Card) int {
	if c.ID < 1 || c.ID > len(closetScores) {
		return -100
	}
	return closetScores[c.ID-1]
}

// ClosetDraft picks the card with the best ClosetScore, the first on ties.
func ClosetDraft(offer []*game.CardInstance) int {
	best := 0
	for i, c := range offer {
		if ClosetScore(c.Card) > ClosetScore(offer[best].Card) {
			best = i
		}
	}
	return best
}

var keywordScores = []struct {
	keyword game.Keywords
	score   float64
}{
	{game.KeywordCharge, 0.26015517},
	{game.KeywordDrain, 0.15241379},
	{game.KeywordGuard, 0.04418965},
	{game.KeywordLethal, 0.15313793},
	{game.KeywordWard, 0.16238793},
}

// IceboxScore is a fitted linear estimate of a card's draft value.
func IceboxScore(c *game.Card) float64 {
	cost := float64(c.Cost)
	hp := float64(c.PlayerHP - c.EnemyHP)
	draw := float64(c.CardDraw)

	v := float64(c.Attack + c.Defense)
	v -= 6.392651e-3*cost*cost + 1.463006*cost + 1.435985
	v += 5.985350469e-2*hp*hp + 0.3880957*hp + 5.219
	v -= 5.516179907*draw*draw - 0.239521*draw + 0.163766
	v -= 7.751401869e-2
	for _, ks := range keywordScores {
		if c.Keywords.Has(ks.keyword) {
			v += ks.score
		}
	}
	return v
}

// RulesChooser drafts with a DraftFunc and battles by a fixed priority:
// summon, attack (into guards when there are any), buff own creatures,
// weaken enemy creatures, use blue items, pass. It never repeats its
// previous action back to back.
type RulesChooser struct {
	rng   *rand.Rand
	draft DraftFunc
	last  game.Action
	moved bool
}

// Rules creates a RulesChooser.
func Rules(seed uint64, draft DraftFunc) *RulesChooser {
	return &RulesChooser{rng: rand.New(rand.NewPCG(seed, seed>>1|1)), draft: draft}
}

func (c *RulesChooser) Choose(_ context.Context, s *game.State, actions []game.Action) (game.Action, error) {
	if s.Phase() == game.PhaseDraft {
		return game.Pick(c.draft(s.CurrentPlayer().Hand)), nil
	}
	a := c.battle(s, actions)
	c.last, c.moved = a, true
	return a, nil
}

func (c *RulesChooser) battle(s *game.State, actions []game.Action) game.Action {
	me, opp := s.CurrentPlayer(), s.OpposingPlayer()

	var summonable, green, red, blue []*game.CardInstance
	for _, card := range me.Hand {
		if card.Card.Cost > me.Mana {
			continue
		}
		switch card.Card.Type {
		case game.CardTypeCreature:
			summonable = append(summonable, card)
		case game.CardTypeGreenItem:
			green = append(green, card)
		case game.CardTypeRedItem:
			red = append(red, card)
		case game.CardTypeBlueItem:
			blue = append(blue, card)
		}
	}
	ok := func(a game.Action) bool {
		return slices.Contains(actions, a) && !(c.moved && a == c.last)
	}

	if len(summonable) > 0 {
		card := pick(c.rng, summonable)
		if a := game.Summon(card.ID, game.Lane(c.rng.IntN(game.LaneCount))); ok(a) {
			return a
		}
	}

	var ready []*game.CardInstance
	for _, cr := range me.Creatures() {
		if cr.Ready() {
			ready = append(ready, cr)
		}
	}
	if len(ready) > 0 {
		attacker := pick(c.rng, ready)
		target := game.NoTarget
		if guards := opp.Guards(attacker.Lane); len(guards) > 0 {
			target = pick(c.rng, guards).ID
		}
		if a := game.Attack(attacker.ID, target); ok(a) {
			return a
		}
	}

	if own := me.Creatures(); len(own) > 0 && len(green) > 0 {
		if a := game.Use(pick(c.rng, green).ID, pick(c.rng, own).ID); ok(a) {
			return a
		}
	}

	if enemies := opp.Creatures(); len(enemies) > 0 && len(red) > 0 {
		if a := game.Use(pick(c.rng, red).ID, pick(c.rng, enemies).ID); ok(a) {
			return a
		}
	}

	if len(blue) > 0 {
		if a := game.Use(pick(c.rng, blue).ID, game.NoTarget); ok(a) {
			return a
		}
	}

	return game.Pass()
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.IntN(len(xs))]
}
