package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventPick EventType = iota
	EventBattleStart
	EventShuffle
	EventNewTurn
	EventDraw
	EventBurn // drawn with a full hand, card is lost
	EventDeckOut
	EventSummon
	EventUse
	EventAttack
	EventDamage
	EventWardBroken
	EventDestroy
	EventHPChange
	EventRuneBroken
	EventPass
	EventWin
	EventTie
)

func (e EventType) String() string {
	switch e {
	case EventPick:
		return "Pick"
	case EventBattleStart:
		return "BattleStart"
	case EventShuffle:
		return "Shuffle"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventBurn:
		return "Burn"
	case EventDeckOut:
		return "DeckOut"
	case EventSummon:
		return "Summon"
	case EventUse:
		return "Use"
	case EventAttack:
		return "Attack"
	case EventDamage:
		return "Damage"
	case EventWardBroken:
		return "WardBroken"
	case EventDestroy:
		return "Destroy"
	case EventHPChange:
		return "HPChange"
	case EventRuneBroken:
		return "RuneBroken"
	case EventPass:
		return "Pass"
	case EventWin:
		return "Win"
	case EventTie:
		return "Tie"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // battle turn (0 during the draft)
	Phase   string    // "DRAFT" or "BATTLE"
	Player  int       // acting player (0 or 1, -1 for none)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
