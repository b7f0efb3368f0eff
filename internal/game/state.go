package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/peterkuimelis/locm/internal/log"
)

// Player represents one player's entire state. Outside the engine a
// Player is read-only: the board changes only through State.Act.
type Player struct {
	Order     PlayerOrder
	HP        int
	Mana      int
	ManaCap   int
	NextRune  int // HP threshold of the next rune, 0 when none are left
	BonusDraw int // extra cards drawn at the start of the next turn

	Deck  []*CardInstance // top of deck is last element (pop from end)
	Hand  []*CardInstance
	Lanes [LaneCount][]*CardInstance
}

// DeckCount returns the number of cards remaining in the deck.
func (p *Player) DeckCount() int {
	return len(p.Deck)
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// drawCard removes the top card from the deck and adds it to the hand.
// Returns the drawn card, or nil if the deck is empty.
func (p *Player) drawCard() *CardInstance {
	card := p.popDeck()
	if card != nil {
		p.Hand = append(p.Hand, card)
	}
	return card
}

func (p *Player) popDeck() *CardInstance {
	if len(p.Deck) == 0 {
		return nil
	}
	card := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	return card
}

// HandCard returns the hand card with the given instance id, or nil.
func (p *Player) HandCard(id int) *CardInstance {
	for _, c := range p.Hand {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// removeFromHand removes a card from the hand by instance ID.
func (p *Player) removeFromHand(card *CardInstance) {
	for i, c := range p.Hand {
		if c.ID == card.ID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return
		}
	}
}

// Creature returns the creature in play with the given instance id, or nil.
func (p *Player) Creature(id int) *CardInstance {
	for _, lane := range p.Lanes {
		for _, c := range lane {
			if c.ID == id {
				return c
			}
		}
	}
	return nil
}

// Creatures returns all creatures in play, left lane first.
func (p *Player) Creatures() []*CardInstance {
	var result []*CardInstance
	for _, lane := range p.Lanes {
		result = append(result, lane...)
	}
	return result
}

// placeCreature puts a creature at the end of a lane.
func (p *Player) placeCreature(card *CardInstance, lane Lane) {
	card.Lane = lane
	p.Lanes[lane] = append(p.Lanes[lane], card)
}

// removeCreature takes a creature off the board.
func (p *Player) removeCreature(card *CardInstance) {
	lane := p.Lanes[card.Lane]
	for i, c := range lane {
		if c.ID == card.ID {
			p.Lanes[card.Lane] = append(lane[:i], lane[i+1:]...)
			return
		}
	}
}

// Guards returns the Guard creatures in a lane.
func (p *Player) Guards(lane Lane) []*CardInstance {
	var result []*CardInstance
	for _, c := range p.Lanes[lane] {
		if c.Has(KeywordGuard) {
			result = append(result, c)
		}
	}
	return result
}

func (p *Player) clone() *Player {
	c := *p
	c.Deck = cloneInstances(p.Deck)
	c.Hand = cloneInstances(p.Hand)
	for i := range p.Lanes {
		c.Lanes[i] = cloneInstances(p.Lanes[i])
	}
	return &c
}

func cloneInstances(src []*CardInstance) []*CardInstance {
	if src == nil {
		return nil
	}
	out := make([]*CardInstance, len(src))
	for i, ci := range src {
		out[i] = ci.clone()
	}
	return out
}

// --- State ---

// ErrIllegalAction is returned by Act for any action that is not in
// AvailableActions. The state is left unchanged.
var ErrIllegalAction = errors.New("illegal action")

// InvariantViolation is raised with panic when the engine reaches a state
// its own legality checks should have made impossible.
type InvariantViolation struct {
	Msg string
}

func (e InvariantViolation) Error() string {
	return "invariant violation: " + e.Msg
}

// Config holds configuration for creating a new game.
type Config struct {
	Seed    int64
	Rules   *Rules          // nil = DefaultRules()
	Catalog *Catalog        // nil = DefaultCatalog()
	Events  log.EventLogger // nil = log.Discard
	Logger  *zap.Logger     // nil = no-op
}

// State holds the complete state of a game, from the first draft pick to
// the end of the battle. A State is not safe for concurrent use; run
// independent games in independent States.
type State struct {
	rules   Rules
	catalog *Catalog
	events  log.EventLogger
	logger  *zap.Logger
	seed    int64
	src     *rand.PCG
	rng     *rand.Rand

	phase   Phase
	turn    int
	current PlayerOrder
	players [2]*Player
	winner  PlayerOrder
	result  string
	nextID  int

	pool       []*Card // draft pool sampled from the catalog
	draftRound int
	instances  []*Card // card of every instance, indexed by id

	lastInvalid     bool
	actions         []Action // legal-action cache, nil when stale
	turnActions     []Action // actions of the current turn, PASS excluded
	opponentActions []Action // actions of the opponent's previous turn
}

// NewGame starts a game with the default rules and catalog. The returned
// state is at the first draft pick.
func NewGame(seed int64) *State {
	s, err := NewState(Config{Seed: seed})
	if err != nil {
		panic(err)
	}
	return s
}

// NewState creates a game from cfg, positioned at the first draft pick.
func NewState(cfg Config) (*State, error) {
	rules := DefaultRules()
	if cfg.Rules != nil {
		rules = *cfg.Rules
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if rules.DraftPoolSize > catalog.Len() {
		return nil, fmt.Errorf("rules: draft_pool_size %d exceeds catalog size %d", rules.DraftPoolSize, catalog.Len())
	}
	events := cfg.Events
	if events == nil {
		events = log.Discard{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	src := rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)^0x9e3779b97f4a7c15)
	s := &State{
		rules:   rules,
		catalog: catalog,
		events:  events,
		logger:  logger.With(zap.Int64("seed", cfg.Seed)),
		seed:    cfg.Seed,
		src:     src,
		rng:     rand.New(src),
		phase:   PhaseDraft,
		current: PlayerFirst,
		winner:  NoPlayer,
		nextID:  1,
	}
	for i := range s.players {
		s.players[i] = &Player{
			Order:    PlayerOrder(i),
			HP:       rules.StartingHP,
			NextRune: max(rules.StartingHP-rules.RuneStep, 0),
		}
	}
	s.startDraft()
	return s, nil
}

// --- Accessors ---

func (s *State) Phase() Phase      { return s.phase }
func (s *State) Turn() int         { return s.turn }
func (s *State) Seed() int64       { return s.seed }
func (s *State) Rules() Rules      { return s.rules }
func (s *State) Catalog() *Catalog { return s.catalog }

// Winner returns the winning seat, or NoPlayer while the game is running
// and after a draw.
func (s *State) Winner() PlayerOrder { return s.winner }

// Result describes how the game ended; empty while it is running.
func (s *State) Result() string { return s.result }

// Ended reports whether the game is over.
func (s *State) Ended() bool { return s.phase == PhaseEnded }

// CurrentOrder returns the seat of the player to move.
func (s *State) CurrentOrder() PlayerOrder { return s.current }

// CurrentPlayer returns the player to move.
func (s *State) CurrentPlayer() *Player { return s.players[s.current] }

// OpposingPlayer returns the player not to move.
func (s *State) OpposingPlayer() *Player { return s.players[s.current.Opponent()] }

// Player returns the player in the given seat.
func (s *State) Player(p PlayerOrder) *Player { return s.players[p] }

// DraftRound returns the 0-based draft round.
func (s *State) DraftRound() int { return s.draftRound }

// WasLastActionInvalid reports whether the most recent Act call was rejected.
func (s *State) WasLastActionInvalid() bool { return s.lastInvalid }

// OpponentLastActions returns the actions the opponent played during their
// previous turn, PASS excluded.
func (s *State) OpponentLastActions() []Action {
	return s.opponentActions
}

// Events returns the event logger the state reports to.
func (s *State) Events() log.EventLogger { return s.events }

// Instance finds a card instance by id in either player's hand or lanes.
func (s *State) Instance(id int) *CardInstance {
	return s.instance(id)
}

func (s *State) instance(id int) *CardInstance {
	if id == NoTarget {
		return nil
	}
	for _, p := range s.players {
		if c := p.HandCard(id); c != nil {
			return c
		}
		if c := p.Creature(id); c != nil {
			return c
		}
	}
	return nil
}

func (s *State) newInstance(card *Card, owner PlayerOrder) *CardInstance {
	ci := &CardInstance{
		Card:     card,
		ID:       s.nextID,
		Owner:    owner,
		Attack:   card.Attack,
		Defense:  card.Defense,
		Keywords: card.Keywords,
	}
	s.nextID++
	s.instances = append(s.instances, card)
	return ci
}

// CardOfInstance returns the card behind an instance id, including
// instances that have since left play. It returns nil for unknown ids.
func (s *State) CardOfInstance(id int) *Card {
	if id < 1 || id > len(s.instances) {
		return nil
	}
	return s.instances[id-1]
}

func (s *State) log(e log.GameEvent) {
	s.events.Log(e)
}

// Clone returns a deep copy of s, including its random stream, so the copy
// evolves exactly as s would under the same actions. The copy reports no
// events.
func (s *State) Clone() *State {
	c := *s
	src := *s.src
	c.src = &src
	c.rng = rand.New(c.src)
	c.events = log.Discard{}
	for i, p := range s.players {
		c.players[i] = p.clone()
	}
	c.pool = append([]*Card(nil), s.pool...)
	c.instances = append([]*Card(nil), s.instances...)
	c.actions = nil
	c.turnActions = append([]Action(nil), s.turnActions...)
	c.opponentActions = append([]Action(nil), s.opponentActions...)
	return &c
}

func (s *State) checkInvariants() {
	for _, p := range s.players {
		if p.Mana < 0 || p.Mana > p.ManaCap {
			panic(InvariantViolation{Msg: fmt.Sprintf("%s mana %d outside [0, %d]", p.Order, p.Mana, p.ManaCap)})
		}
		for l, lane := range p.Lanes {
			if len(lane) > s.rules.LaneSize {
				panic(InvariantViolation{Msg: fmt.Sprintf("%s %s lane holds %d creatures", p.Order, Lane(l), len(lane))})
			}
		}
		if p.HP < 0 {
			panic(InvariantViolation{Msg: fmt.Sprintf("%s hp %d below zero", p.Order, p.HP)})
		}
	}
	if (s.phase == PhaseEnded) != (s.result != "") {
		panic(InvariantViolation{Msg: "result set outside ENDED"})
	}
}
