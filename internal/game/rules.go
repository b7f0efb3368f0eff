package game

import "fmt"

// DeckOutPolicy decides what happens when a player must draw from an empty deck.
type DeckOutPolicy string

const (
	// DeckOutIgnore skips the draw with no penalty.
	DeckOutIgnore DeckOutPolicy = "ignore"
	// DeckOutRune drops the player's HP to their next rune, breaking it.
	// With no runes left the player dies.
	DeckOutRune DeckOutPolicy = "rune"
)

// Rules holds the tunable constants of a game.
type Rules struct {
	StartingHP        int           `mapstructure:"starting_hp" yaml:"starting_hp"`
	RuneStep          int           `mapstructure:"rune_step" yaml:"rune_step"`
	MaxMana           int           `mapstructure:"max_mana" yaml:"max_mana"`
	LaneSize          int           `mapstructure:"lane_size" yaml:"lane_size"`
	HandLimit         int           `mapstructure:"hand_limit" yaml:"hand_limit"`
	DeckSize          int           `mapstructure:"deck_size" yaml:"deck_size"`
	DraftChoices      int           `mapstructure:"draft_choices" yaml:"draft_choices"`
	DraftPoolSize     int           `mapstructure:"draft_pool_size" yaml:"draft_pool_size"`
	OpeningHandFirst  int           `mapstructure:"opening_hand_first" yaml:"opening_hand_first"`
	OpeningHandSecond int           `mapstructure:"opening_hand_second" yaml:"opening_hand_second"`
	TurnLimit         int           `mapstructure:"turn_limit" yaml:"turn_limit"` // 0 = unbounded
	DeckOut           DeckOutPolicy `mapstructure:"deck_out" yaml:"deck_out"`
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		StartingHP:        30,
		RuneStep:          5,
		MaxMana:           12,
		LaneSize:          3,
		HandLimit:         8,
		DeckSize:          30,
		DraftChoices:      3,
		DraftPoolSize:     60,
		OpeningHandFirst:  4,
		OpeningHandSecond: 5,
		TurnLimit:         200,
		DeckOut:           DeckOutIgnore,
	}
}

// Validate checks the rules for values the engine cannot run with.
func (r Rules) Validate() error {
	switch {
	case r.StartingHP <= 0:
		return fmt.Errorf("rules: starting_hp must be positive")
	case r.RuneStep <= 0:
		return fmt.Errorf("rules: rune_step must be positive")
	case r.MaxMana <= 0:
		return fmt.Errorf("rules: max_mana must be positive")
	case r.LaneSize <= 0:
		return fmt.Errorf("rules: lane_size must be positive")
	case r.HandLimit <= 0:
		return fmt.Errorf("rules: hand_limit must be positive")
	case r.DeckSize <= 0:
		return fmt.Errorf("rules: deck_size must be positive")
	case r.DraftChoices <= 0:
		return fmt.Errorf("rules: draft_choices must be positive")
	case r.DraftPoolSize < r.DraftChoices:
		return fmt.Errorf("rules: draft_pool_size %d is smaller than draft_choices %d", r.DraftPoolSize, r.DraftChoices)
	case r.OpeningHandFirst < 0 || r.OpeningHandSecond < 0:
		return fmt.Errorf("rules: opening hands cannot be negative")
	case r.OpeningHandFirst > r.DeckSize || r.OpeningHandSecond > r.DeckSize:
		return fmt.Errorf("rules: opening hand larger than deck_size %d", r.DeckSize)
	case r.TurnLimit < 0:
		return fmt.Errorf("rules: turn_limit cannot be negative")
	}
	switch r.DeckOut {
	case DeckOutIgnore, DeckOutRune:
	default:
		return fmt.Errorf("rules: unknown deck_out policy %q", r.DeckOut)
	}
	return nil
}

func (r Rules) openingHand(p PlayerOrder) int {
	if p == PlayerFirst {
		return r.OpeningHandFirst
	}
	return r.OpeningHandSecond
}
