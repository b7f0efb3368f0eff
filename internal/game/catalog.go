package game

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/cards.yaml
var defaultCardData []byte

// CatalogError reports a lookup of a card id the catalog does not know.
type CatalogError struct {
	ID int
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog: unknown card id %d", e.ID)
}

// CatalogFile represents the top-level YAML structure.
type CatalogFile struct {
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry is one card as written in the YAML file.
type CardEntry struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Cost     int    `yaml:"cost"`
	Attack   int    `yaml:"attack"`
	Defense  int    `yaml:"defense"`
	Keywords string `yaml:"keywords"`
	PlayerHP int    `yaml:"player_hp"`
	EnemyHP  int    `yaml:"enemy_hp"`
	CardDraw int    `yaml:"card_draw"`
}

// Catalog is the read-only set of card definitions. It is safe for
// concurrent use once loaded.
type Catalog struct {
	cards []*Card // sorted by id
	byID  map[int]*Card
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the built-in card set, loading it on first use.
// It panics if the embedded data is malformed.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		c, err := LoadCatalog(defaultCardData)
		if err != nil {
			panic(fmt.Sprintf("embedded card data: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// CardByID looks up a card in the built-in catalog.
func CardByID(id int) (*Card, error) {
	return DefaultCatalog().CardByID(id)
}

// All returns every card in the built-in catalog, ordered by id.
func All() []*Card {
	return DefaultCatalog().All()
}

// LoadCatalogFile reads and validates a card file. Files ending in .txt
// are read as a referee card list (see LoadCardList), anything else as YAML.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return LoadCardList(data)
	}
	return LoadCatalog(data)
}

// LoadCatalog parses and validates YAML card data.
func LoadCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse card YAML: %w", err)
	}
	if len(cf.Cards) == 0 {
		return nil, fmt.Errorf("card YAML has no cards")
	}
	return newCatalog(cf.Cards)
}

// LoadCardList parses the referee's cardlist.txt format, one card per line:
//
//	id ; name ; type ; cost ; attack ; defense ; keywords ; player_hp ; enemy_hp ; card_draw
//
// Types are creature, itemGreen, itemRed or itemBlue. Lines starting with
// '#' are skipped.
func LoadCardList(data []byte) (*Catalog, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ';'
	r.Comment = '#'
	r.FieldsPerRecord = 10
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	var entries []CardEntry
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse card list: %w", err)
		}
		entry, err := cardListEntry(rec)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("card list line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("card list has no cards")
	}
	return newCatalog(entries)
}

func cardListEntry(rec []string) (CardEntry, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	var nums [7]int
	for i, field := range []int{0, 3, 4, 5, 7, 8, 9} {
		n, err := strconv.Atoi(rec[field])
		if err != nil {
			return CardEntry{}, fmt.Errorf("field %d: %w", field+1, err)
		}
		nums[i] = n
	}
	return CardEntry{
		ID:       nums[0],
		Name:     rec[1],
		Type:     rec[2],
		Cost:     nums[1],
		Attack:   nums[2],
		Defense:  nums[3],
		Keywords: rec[6],
		PlayerHP: nums[4],
		EnemyHP:  nums[5],
		CardDraw: nums[6],
	}, nil
}

func newCatalog(entries []CardEntry) (*Catalog, error) {
	c := &Catalog{byID: make(map[int]*Card, len(entries))}
	for _, entry := range entries {
		card, err := entry.toCard()
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("card %d: duplicate id", card.ID)
		}
		c.byID[card.ID] = card
		c.cards = append(c.cards, card)
	}
	sort.Slice(c.cards, func(i, j int) bool { return c.cards[i].ID < c.cards[j].ID })
	return c, nil
}

func (e CardEntry) toCard() (*Card, error) {
	if e.ID <= 0 {
		return nil, fmt.Errorf("card %q: id must be positive", e.Name)
	}
	if e.Name == "" {
		return nil, fmt.Errorf("card %d: missing name", e.ID)
	}
	ct, err := ParseCardType(e.Type)
	if err != nil {
		return nil, fmt.Errorf("card %d: %w", e.ID, err)
	}
	ks, err := ParseKeywords(e.Keywords)
	if err != nil {
		return nil, fmt.Errorf("card %d: %w", e.ID, err)
	}
	if e.Cost < 0 || e.CardDraw < 0 {
		return nil, fmt.Errorf("card %d: negative cost or card draw", e.ID)
	}

	switch ct {
	case CardTypeCreature:
		if e.Attack < 0 || e.Defense <= 0 {
			return nil, fmt.Errorf("card %d: creature needs attack >= 0 and defense > 0", e.ID)
		}
	case CardTypeGreenItem:
		if e.Attack < 0 || e.Defense < 0 {
			return nil, fmt.Errorf("card %d: green item cannot lower stats", e.ID)
		}
	case CardTypeRedItem, CardTypeBlueItem:
		if e.Attack > 0 || e.Defense > 0 {
			return nil, fmt.Errorf("card %d: %s item cannot raise stats", e.ID, ct)
		}
	}

	return &Card{
		ID:       e.ID,
		Name:     e.Name,
		Type:     ct,
		Cost:     e.Cost,
		Attack:   e.Attack,
		Defense:  e.Defense,
		Keywords: ks,
		PlayerHP: e.PlayerHP,
		EnemyHP:  e.EnemyHP,
		CardDraw: e.CardDraw,
	}, nil
}

// CardByID returns the card with the given id, or a *CatalogError.
func (c *Catalog) CardByID(id int) (*Card, error) {
	card, ok := c.byID[id]
	if !ok {
		return nil, &CatalogError{ID: id}
	}
	return card, nil
}

// All returns every card ordered by id. The slice is a copy; the cards are shared.
func (c *Catalog) All() []*Card {
	out := make([]*Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// OfType returns the cards of one type, ordered by id.
func (c *Catalog) OfType(t CardType) []*Card {
	var out []*Card
	for _, card := range c.cards {
		if card.Type == t {
			out = append(out, card)
		}
	}
	return out
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	return len(c.cards)
}
