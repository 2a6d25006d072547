package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrEmptyCatalog  = errors.New("catalog has no categories")
	ErrEmptyCategory = errors.New("category has no cards")
	ErrBadColor      = errors.New("category colour is not #rrggbb")
)

// Card is a single entry in a category row.
type Card struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// HasSubtitle reports whether the card carries a subtitle line.
func (c Card) HasSubtitle() bool { return c.Subtitle != "" }

// Category is a named row of cards. Card order is left to right.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"` // optional #rrggbb base colour
	Cards []Card `json:"cards"`
}

// CardID identifies a card by its row and its position in that row.
type CardID struct {
	Category int
	Index    int
}

func (id CardID) String() string { return fmt.Sprintf("%d/%d", id.Category, id.Index) }

// Catalog is the immutable, ordered set of categories a scene is built from.
// Rows are ordered top to bottom.
type Catalog struct {
	categories []Category
}

// NewCatalog validates and deep-copies cats. Every category must hold at
// least one card so a card index always exists.
func NewCatalog(cats []Category) (*Catalog, error) {
	if len(cats) == 0 {
		return nil, ErrEmptyCatalog
	}
	out := make([]Category, len(cats))
	for i, c := range cats {
		if len(c.Cards) == 0 {
			return nil, fmt.Errorf("category %d (%q): %w", i, c.Name, ErrEmptyCategory)
		}
		if c.Color != "" {
			if _, err := colorful.Hex(c.Color); err != nil {
				return nil, fmt.Errorf("category %d (%q): %w: %q", i, c.Name, ErrBadColor, c.Color)
			}
		}
		out[i] = Category{
			Name:  c.Name,
			Color: c.Color,
			Cards: append([]Card(nil), c.Cards...),
		}
	}
	return &Catalog{categories: out}, nil
}

// MustCatalog is NewCatalog for literals known to be valid.
func MustCatalog(cats []Category) *Catalog {
	c, err := NewCatalog(cats)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog reads a JSON array of categories from path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cats []Category
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	c, err := NewCatalog(cats)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Single builds the one-row, one-card catalog used by the detail preview.
func Single(name, color string, card Card) *Catalog {
	return MustCatalog([]Category{{Name: name, Color: color, Cards: []Card{card}}})
}

func (c *Catalog) Len() int { return len(c.categories) }

// Category returns a copy of row i.
func (c *Catalog) Category(i int) Category {
	cat := c.categories[i]
	cat.Cards = append([]Card(nil), cat.Cards...)
	return cat
}

func (c *Catalog) Name(i int) string { return c.categories[i].Name }

func (c *Catalog) Color(i int) string { return c.categories[i].Color }

// CardCount returns the number of cards in row i.
func (c *Catalog) CardCount(i int) int { return len(c.categories[i].Cards) }

func (c *Catalog) Card(id CardID) Card { return c.categories[id.Category].Cards[id.Index] }

// Contains reports whether id addresses an existing card.
func (c *Catalog) Contains(id CardID) bool {
	if id.Category < 0 || id.Category >= len(c.categories) {
		return false
	}
	return id.Index >= 0 && id.Index < len(c.categories[id.Category].Cards)
}

// Each calls fn for every card in row-major order.
func (c *Catalog) Each(fn func(id CardID, card Card)) {
	for ci, cat := range c.categories {
		for i, card := range cat.Cards {
			fn(CardID{Category: ci, Index: i}, card)
		}
	}
}

// Find returns the card whose id, title or subtitle best matches query.
// Ranking is by fuzzy edit distance; ties keep catalog order.
func (c *Catalog) Find(query string) (CardID, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return CardID{}, false
	}
	type hit struct {
		id   CardID
		rank int
	}
	var hits []hit
	c.Each(func(id CardID, card Card) {
		best := -1
		for _, field := range []string{card.Title, card.ID, card.Subtitle, c.categories[id.Category].Name + " " + card.Title} {
			if field == "" {
				continue
			}
			r := fuzzy.RankMatchNormalizedFold(query, field)
			if r >= 0 && (best < 0 || r < best) {
				best = r
			}
		}
		if best >= 0 {
			hits = append(hits, hit{id: id, rank: best})
		}
	})
	if len(hits) == 0 {
		return CardID{}, false
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })
	return hits[0].id, true
}
