package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Phase int

const (
	PhaseDraft Phase = iota
	PhaseBattle
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseDraft:
		return "DRAFT"
	case PhaseBattle:
		return "BATTLE"
	case PhaseEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

// PlayerOrder identifies a seat. NoPlayer is used for "no winner".
type PlayerOrder int

const (
	NoPlayer     PlayerOrder = -1
	PlayerFirst  PlayerOrder = 0
	PlayerSecond PlayerOrder = 1
)

// Opponent returns the other seat.
func (p PlayerOrder) Opponent() PlayerOrder {
	return 1 - p
}

func (p PlayerOrder) String() string {
	switch p {
	case PlayerFirst:
		return "FIRST"
	case PlayerSecond:
		return "SECOND"
	default:
		return "NONE"
	}
}

type Lane int

const (
	LaneLeft Lane = iota
	LaneRight
)

// LaneCount is the number of lanes each player owns.
const LaneCount = 2

func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "left"
	case LaneRight:
		return "right"
	default:
		return fmt.Sprintf("lane(%d)", int(l))
	}
}

type CardType int

const (
	CardTypeCreature CardType = iota
	CardTypeGreenItem
	CardTypeRedItem
	CardTypeBlueItem
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeCreature:
		return "creature"
	case CardTypeGreenItem:
		return "green"
	case CardTypeRedItem:
		return "red"
	case CardTypeBlueItem:
		return "blue"
	default:
		return "unknown"
	}
}

// IsItem reports whether the card is played with USE rather than SUMMON.
func (ct CardType) IsItem() bool {
	return ct != CardTypeCreature
}

// ParseCardType accepts the names produced by CardType.String, plus the
// long forms used in card lists ("greenItem", "itemGreen", "green item").
func ParseCardType(s string) (CardType, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "creature":
		return CardTypeCreature, nil
	case "green", "greenitem", "itemgreen":
		return CardTypeGreenItem, nil
	case "red", "reditem", "itemred":
		return CardTypeRedItem, nil
	case "blue", "blueitem", "itemblue":
		return CardTypeBlueItem, nil
	}
	return 0, fmt.Errorf("unknown card type %q", s)
}

// Keywords is a bitset of creature abilities.
type Keywords uint8

const (
	KeywordBreakthrough Keywords = 1 << iota
	KeywordCharge
	KeywordDrain
	KeywordGuard
	KeywordLethal
	KeywordWard
)

const keywordLetters = "BCDGLW"

// Has reports whether every keyword in k is present.
func (ks Keywords) Has(k Keywords) bool {
	return ks&k == k
}

func (ks Keywords) Add(k Keywords) Keywords {
	return ks | k
}

func (ks Keywords) Remove(k Keywords) Keywords {
	return ks &^ k
}

// String renders the six-letter mask, e.g. "B--G-W".
func (ks Keywords) String() string {
	var b [len(keywordLetters)]byte
	for i := range keywordLetters {
		if ks&(1<<i) != 0 {
			b[i] = keywordLetters[i]
		} else {
			b[i] = '-'
		}
	}
	return string(b[:])
}

// ParseKeywords reads a keyword mask. Letters may appear in any order and
// '-' is ignored, so both "B--G-W" and "BGW" are accepted.
func ParseKeywords(s string) (Keywords, error) {
	var ks Keywords
	for _, r := range strings.ToUpper(s) {
		if r == '-' {
			continue
		}
		i := strings.IndexRune(keywordLetters, r)
		if i < 0 {
			return 0, fmt.Errorf("unknown keyword %q in %q", r, s)
		}
		ks |= 1 << i
	}
	return ks, nil
}

// --- Card definitions ---

// Card is the immutable catalog definition shared by every copy of a card.
// For items, Attack/Defense are the deltas applied to the target and
// Keywords are granted (green) or removed (red, blue).
type Card struct {
	ID       int
	Name     string
	Type     CardType
	Cost     int
	Attack   int
	Defense  int
	Keywords Keywords
	PlayerHP int
	EnemyHP  int
	CardDraw int
}

// CardInstance is a single physical copy of a card, in hand or in play.
type CardInstance struct {
	Card  *Card
	ID    int // unique per game; NoTarget for draft offers
	Owner PlayerOrder
	Lane  Lane

	Attack   int
	Defense  int
	Keywords Keywords

	CanAttack   bool
	HasAttacked bool
}

// Name returns the card name.
func (ci *CardInstance) Name() string {
	return ci.Card.Name
}

// Has reports whether the instance currently holds keyword k.
func (ci *CardInstance) Has(k Keywords) bool {
	return ci.Keywords.Has(k)
}

// Ready reports whether the creature may still attack this turn.
func (ci *CardInstance) Ready() bool {
	return ci.CanAttack && !ci.HasAttacked
}

func (ci *CardInstance) clone() *CardInstance {
	c := *ci
	return &c
}

func (ci *CardInstance) String() string {
	return fmt.Sprintf("%s#%d", ci.Card.Name, ci.ID)
}
