package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.Equal(t, 160, c.Len())

	all := c.All()
	for i, card := range all {
		assert.Equal(t, i+1, card.ID, "cards are ordered by id")
	}
	assert.Len(t, c.OfType(CardTypeCreature), 116)
	assert.Len(t, c.OfType(CardTypeGreenItem), 21)
	assert.Len(t, c.OfType(CardTypeRedItem), 14)
	assert.Len(t, c.OfType(CardTypeBlueItem), 9)

	// All returns a copy.
	all[0] = nil
	assert.NotNil(t, c.All()[0])
	assert.Same(t, c, DefaultCatalog())
}

func TestCardByID(t *testing.T) {
	card, err := CardByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Storm Brute", card.Name)
	assert.Equal(t, CardTypeCreature, card.Type)
	assert.Equal(t, 1, card.Cost)

	card, err = CardByID(160)
	require.NoError(t, err)
	assert.Equal(t, "Cataclysm", card.Name)
	assert.Equal(t, CardTypeBlueItem, card.Type)
	assert.Equal(t, -8, card.Defense)

	_, err = CardByID(999)
	var ce *CatalogError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 999, ce.ID)
}

func TestLoadCatalogRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"empty":         "cards: []",
		"duplicate id":  "cards:\n  - {id: 1, name: A, type: creature, cost: 1, attack: 1, defense: 1, keywords: \"------\"}\n  - {id: 1, name: B, type: creature, cost: 1, attack: 1, defense: 1, keywords: \"------\"}",
		"bad keyword":   "cards:\n  - {id: 1, name: A, type: creature, cost: 1, attack: 1, defense: 1, keywords: \"X-----\"}",
		"bad type":      "cards:\n  - {id: 1, name: A, type: spell, cost: 1, attack: 1, defense: 1, keywords: \"------\"}",
		"dead creature": "cards:\n  - {id: 1, name: A, type: creature, cost: 1, attack: 1, defense: 0, keywords: \"------\"}",
		"healing red":   "cards:\n  - {id: 1, name: A, type: red, cost: 1, attack: 0, defense: 2, keywords: \"------\"}",
		"not yaml":      "cards: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCatalog([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalogFile(t *testing.T) {
	_, err := LoadCatalogFile("data/does-not-exist.yaml")
	assert.Error(t, err)

	c, err := LoadCatalogFile("data/cards.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog().Len(), c.Len())
}

func TestKeywords(t *testing.T) {
	ks, err := ParseKeywords("B--G-W")
	require.NoError(t, err)
	assert.True(t, ks.Has(KeywordBreakthrough))
	assert.True(t, ks.Has(KeywordGuard|KeywordWard))
	assert.False(t, ks.Has(KeywordLethal))
	assert.Equal(t, "B--G-W", ks.String())

	loose, err := ParseKeywords("wgb")
	require.NoError(t, err)
	assert.Equal(t, ks, loose)

	assert.Equal(t, "B----W", ks.Remove(KeywordGuard).String())
	assert.Equal(t, "BCDGLW", ks.Add(KeywordCharge|KeywordDrain|KeywordLethal).String())
}

const sampleCardList = `# id ; name ; type ; cost ; attack ; defense ; abilities ; player_hp ; enemy_hp ; card_draw
1 ; Slimer ; creature ; 1 ; 2 ; 1 ; ------ ; 1 ; 0 ; 0
2 ; Scuttler ; creature ; 1 ; 1 ; 2 ; ------ ; 0 ; -1 ; 0
3 ; Sentry ; creature ; 3 ; 2 ; 4 ; ---G-W ; 0 ; 0 ; 0
117 ; Tonic ; itemGreen ; 1 ; 1 ; 1 ; B----- ; 0 ; 0 ; 0
138 ; Hex ; itemRed ; 2 ; 0 ; -3 ; ---G-- ; 0 ; 0 ; 1
152 ; Bolt ; itemBlue ; 2 ; 0 ; -2 ; ------ ; 0 ; -2 ; 0
`

func TestLoadCardList(t *testing.T) {
	c, err := LoadCardList([]byte(sampleCardList))
	require.NoError(t, err)
	require.Equal(t, 6, c.Len())

	slimer, err := c.CardByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Slimer", slimer.Name)
	assert.Equal(t, 2, slimer.Attack)
	assert.Equal(t, 1, slimer.PlayerHP)

	sentry, _ := c.CardByID(3)
	assert.True(t, sentry.Keywords.Has(KeywordGuard|KeywordWard))

	hex, _ := c.CardByID(138)
	assert.Equal(t, CardTypeRedItem, hex.Type)
	assert.Equal(t, -3, hex.Defense)
	assert.Equal(t, 1, hex.CardDraw)
	assert.Len(t, c.OfType(CardTypeGreenItem), 1)
	assert.Len(t, c.OfType(CardTypeBlueItem), 1)
}

func TestLoadCardListRejectsBadLines(t *testing.T) {
	cases := map[string]string{
		"empty":        "# nothing\n",
		"short line":   "1 ; Slimer ; creature ; 1 ; 2 ; 1 ; ------ ; 1 ; 0\n",
		"not a number": "1 ; Slimer ; creature ; one ; 2 ; 1 ; ------ ; 1 ; 0 ; 0\n",
		"unknown type": "1 ; Slimer ; spell ; 1 ; 2 ; 1 ; ------ ; 1 ; 0 ; 0\n",
		"duplicate id": "1 ; A ; creature ; 1 ; 1 ; 1 ; ------ ; 0 ; 0 ; 0\n1 ; B ; creature ; 1 ; 1 ; 1 ; ------ ; 0 ; 0 ; 0\n",
		"healing red":  "1 ; A ; itemRed ; 1 ; 0 ; 2 ; ------ ; 0 ; 0 ; 0\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCardList([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalogFilePicksFormatByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardlist.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleCardList), 0o644))

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Len())

	rules := DefaultRules()
	rules.DeckSize, rules.DraftPoolSize = 2, 6
	rules.OpeningHandFirst, rules.OpeningHandSecond = 1, 1
	s, err := NewState(Config{Seed: 1, Catalog: c, Rules: &rules})
	require.NoError(t, err)
	for s.Phase() == PhaseDraft {
		require.NoError(t, s.Act(Pick(0)))
	}
	assert.Equal(t, PhaseBattle, s.Phase())
}
