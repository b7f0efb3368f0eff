package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- Discard: drops everything, the default for self-play ---

type Discard struct{}

func (Discard) Log(GameEvent)       {}
func (Discard) Events() []GameEvent { return nil }

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-3d %-6s | %s", e.Turn, e.Phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPickEvent(round int, player int, cardName string, deckSize int) GameEvent {
	return GameEvent{
		Phase:   "DRAFT",
		Player:  player,
		Type:    EventPick,
		Card:    cardName,
		Details: fmt.Sprintf("Round %d: %s picks %s (deck %d)", round+1, playerName(player), cardName, deckSize),
	}
}

func NewBattleStartEvent() GameEvent {
	return GameEvent{
		Phase:   "BATTLE",
		Player:  -1,
		Type:    EventBattleStart,
		Details: "Draft complete, battle begins",
	}
}

func NewShuffleEvent(player int) GameEvent {
	return GameEvent{
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffled their deck", playerName(player)),
	}
}

func NewTurnEvent(turn int, player int, mana int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s, %d mana) ===", turn, playerName(player), mana),
	}
}

func NewDrawEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", playerName(player), cardName),
	}
}

func NewBurnEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventBurn,
		Card:    cardName,
		Details: fmt.Sprintf("%s's hand is full, %s is lost", playerName(player), cardName),
	}
}

func NewDeckOutEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventDeckOut,
		Details: fmt.Sprintf("%s cannot draw, deck is empty", playerName(player)),
	}
}

func NewSummonEvent(turn int, player int, cardName string, atk, def int, lane string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventSummon,
		Card:    cardName,
		Details: fmt.Sprintf("%s summons %s (%d/%d) to the %s lane", playerName(player), cardName, atk, def, lane),
	}
}

func NewUseEvent(turn int, player int, cardName string, target string) GameEvent {
	details := fmt.Sprintf("%s uses %s", playerName(player), cardName)
	if target != "" {
		details += " on " + target
	}
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventUse,
		Card:    cardName,
		Details: details,
	}
}

func NewAttackEvent(turn int, player int, attacker string, defender string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventAttack,
		Card:    attacker,
		Details: fmt.Sprintf("%s attacks: %s → %s", playerName(player), attacker, defender),
	}
}

func NewDamageEvent(turn int, player int, cardName string, amount int, defense int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventDamage,
		Card:    cardName,
		Details: fmt.Sprintf("%s takes %d damage (DEF %d)", cardName, amount, defense),
	}
}

func NewWardBrokenEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventWardBroken,
		Card:    cardName,
		Details: fmt.Sprintf("%s's ward absorbs the hit", cardName),
	}
}

func NewDestroyEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventDestroy,
		Card:    cardName,
		Details: fmt.Sprintf("%s is destroyed", cardName),
	}
}

func NewHPChangeEvent(turn int, player int, oldHP, newHP int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventHPChange,
		Details: fmt.Sprintf("%s HP: %d → %d (%s)", playerName(player), oldHP, newHP, reason),
	}
}

func NewRuneBrokenEvent(turn int, player int, rune int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventRuneBroken,
		Details: fmt.Sprintf("%s breaks the %d rune, +1 draw next turn", playerName(player), rune),
	}
}

func NewPassEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  player,
		Type:    EventPass,
		Details: fmt.Sprintf("%s passes", playerName(player)),
	}
}

func NewWinEvent(turn int, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}

func NewTieEvent(turn int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BATTLE",
		Player:  -1,
		Type:    EventTie,
		Details: fmt.Sprintf("Game drawn (%s)", reason),
	}
}
