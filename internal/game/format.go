package game

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// String renders the visible game as stable text: the same content always
// produces the same bytes. Decks appear only as sizes; Checksum covers
// their order too.
func (s *State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "phase=%s turn=%d current=%s winner=%s", s.phase, s.turn, s.current, s.winner)
	if s.phase == PhaseDraft {
		fmt.Fprintf(&sb, " round=%d/%d", s.draftRound+1, s.rules.DeckSize)
	}
	sb.WriteByte('\n')
	for _, p := range s.players {
		writePlayer(&sb, p)
	}
	if len(s.opponentActions) > 0 {
		sb.WriteString("previous:")
		for _, a := range s.opponentActions {
			sb.WriteString(" ")
			sb.WriteString(a.String())
			sb.WriteString(";")
		}
		sb.WriteByte('\n')
	}
	if s.result != "" {
		fmt.Fprintf(&sb, "result: %s\n", s.result)
	}
	return sb.String()
}

func writePlayer(sb *strings.Builder, p *Player) {
	fmt.Fprintf(sb, "[%s] hp=%d mana=%d/%d rune=%d bonus=%d deck=%d\n",
		p.Order, p.HP, p.Mana, p.ManaCap, p.NextRune, p.BonusDraw, p.DeckCount())
	writeCards(sb, "  hand:", p.Hand)
	writeCards(sb, "  left:", p.Lanes[LaneLeft])
	writeCards(sb, "  right:", p.Lanes[LaneRight])
}

func writeCards(sb *strings.Builder, label string, cards []*CardInstance) {
	sb.WriteString(label)
	for _, c := range cards {
		fmt.Fprintf(sb, " %d:%d(%s %d %d/%d %s", c.ID, c.Card.ID, c.Card.Type, c.Card.Cost, c.Attack, c.Defense, c.Keywords)
		if c.Card.Type == CardTypeCreature && c.Ready() {
			sb.WriteString(" ready")
		}
		sb.WriteByte(')')
	}
	sb.WriteByte('\n')
}

// Checksum returns the hex SHA-256 of the whole state: String plus the
// hidden parts, namely deck order, the draft pool and the random stream
// position. Two states with equal checksums play on identically.
func (s *State) Checksum() string {
	h := sha256.New()
	io.WriteString(h, s.String())
	for _, p := range s.players {
		fmt.Fprintf(h, "deck[%s]:", p.Order)
		for _, c := range p.Deck {
			fmt.Fprintf(h, " %d:%d", c.ID, c.Card.ID)
		}
		h.Write([]byte{'\n'})
	}
	io.WriteString(h, "pool:")
	for _, c := range s.pool {
		fmt.Fprintf(h, " %d", c.ID)
	}
	h.Write([]byte{'\n'})
	rng, err := s.src.MarshalBinary()
	if err != nil {
		panic(InvariantViolation{Msg: fmt.Sprintf("random stream: %v", err)})
	}
	h.Write(rng)
	return hex.EncodeToString(h.Sum(nil))
}
