// Package protocol converts game states and actions to and from the line
// format spoken by native agents over stdin/stdout.
package protocol

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/locm/internal/game"
)

// Card locations in the card list.
const (
	LocationHand          = 0
	LocationBoard         = 1
	LocationOpponentBoard = -1
)

// Encode renders the game from the point of view of the player to move:
//
//	<hp> <mana> <deck> <rune> <draw>      player to move
//	<hp> <mana> <deck> <rune> <draw>      opponent
//	<opponentHand> <opponentActions>
//	<cardNumber> <action>                 one per opponent action
//	<cardCount>
//	<cardNumber> <instanceId> <location> <cardType> <cost> <attack> <defense> <abilities> <myHealthChange> <opponentHealthChange> <cardDraw> <lane>
//
// During the draft the card list holds the offer, with instance id and lane -1.
func Encode(s *game.State) string {
	var sb strings.Builder
	me, opp := s.CurrentPlayer(), s.OpposingPlayer()

	writePlayer(&sb, me, me.Mana)
	writePlayer(&sb, opp, opp.ManaCap)

	opponentHand := opp.HandCount()
	if s.Phase() == game.PhaseDraft {
		opponentHand = 0
	}
	history := s.OpponentLastActions()
	fmt.Fprintf(&sb, "%d %d\n", opponentHand, len(history))
	for _, a := range history {
		number := -1
		if c := s.CardOfInstance(a.Origin); c != nil {
			number = c.ID
		}
		fmt.Fprintf(&sb, "%d %s\n", number, a)
	}

	var lines []string
	for _, c := range me.Hand {
		lines = append(lines, cardLine(c, LocationHand, -1))
	}
	for _, c := range me.Creatures() {
		lines = append(lines, cardLine(c, LocationBoard, int(c.Lane)))
	}
	for _, c := range opp.Creatures() {
		lines = append(lines, cardLine(c, LocationOpponentBoard, int(c.Lane)))
	}
	fmt.Fprintf(&sb, "%d\n", len(lines))
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writePlayer(sb *strings.Builder, p *game.Player, mana int) {
	fmt.Fprintf(sb, "%d %d %d %d %d\n", p.HP, mana, p.DeckCount(), p.NextRune, 1+p.BonusDraw)
}

func cardLine(c *game.CardInstance, location, lane int) string {
	card := c.Card
	return fmt.Sprintf("%d %d %d %d %d %d %d %s %d %d %d %d",
		card.ID, c.ID, location, int(card.Type), card.Cost, c.Attack, c.Defense,
		c.Keywords, card.PlayerHP, card.EnemyHP, card.CardDraw, lane)
}
