package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCatalogRejectsEmpty(t *testing.T) {
	if _, err := NewCatalog(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("err=%v want ErrEmptyCatalog", err)
	}
	_, err := NewCatalog([]Category{{Name: "A", Cards: []Card{{Title: "x"}}}, {Name: "B"}})
	if !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("err=%v want ErrEmptyCategory", err)
	}
	if !strings.Contains(err.Error(), `"B"`) {
		t.Fatalf("error %q does not name the category", err)
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	src := []Category{{Name: "A", Cards: []Card{{Title: "one"}, {Title: "two"}}}}
	c := MustCatalog(src)
	src[0].Cards[0].Title = "changed"
	if got := c.Card(CardID{0, 0}).Title; got != "one" {
		t.Fatalf("catalog aliased caller slice: title=%q", got)
	}
	cat := c.Category(0)
	cat.Cards[1].Title = "changed"
	if got := c.Card(CardID{0, 1}).Title; got != "two" {
		t.Fatalf("Category returned shared slice: title=%q", got)
	}
}

func TestDefaultCatalogShape(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() != 5 {
		t.Fatalf("categories=%d want 5", c.Len())
	}
	for i := 0; i < c.Len(); i++ {
		if c.CardCount(i) != 6 {
			t.Fatalf("category %s has %d cards want 6", c.Name(i), c.CardCount(i))
		}
	}
	if c.Name(0) != "Frontend" || c.Name(4) != "AI" {
		t.Fatalf("unexpected row order: %s..%s", c.Name(0), c.Name(4))
	}
}

func TestContains(t *testing.T) {
	c := DefaultCatalog()
	for _, tc := range []struct {
		id   CardID
		want bool
	}{
		{CardID{0, 0}, true},
		{CardID{4, 5}, true},
		{CardID{5, 0}, false},
		{CardID{0, 6}, false},
		{CardID{-1, 0}, false},
	} {
		if got := c.Contains(tc.id); got != tc.want {
			t.Fatalf("Contains(%v)=%v want %v", tc.id, got, tc.want)
		}
	}
}

func TestFind(t *testing.T) {
	c := DefaultCatalog()
	id, ok := c.Find("postgres")
	if !ok || id != (CardID{2, 0}) {
		t.Fatalf("Find(postgres)=%v,%v want 2/0", id, ok)
	}
	id, ok = c.Find("qdrant")
	if !ok || id != (CardID{4, 2}) {
		t.Fatalf("Find(qdrant)=%v,%v want 4/2 via subtitle", id, ok)
	}
	if _, ok := c.Find("zzzzqqq"); ok {
		t.Fatalf("Find matched nonsense")
	}
	if _, ok := c.Find("  "); ok {
		t.Fatalf("Find matched blank query")
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	data := `[{"name":"Go","color":"#00add8","cards":[{"title":"Channels","subtitle":"CSP"},{"title":"Generics"}]}]`
	if err := os.WriteFile(good, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalog(good)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if c.Len() != 1 || c.CardCount(0) != 2 || c.Color(0) != "#00add8" {
		t.Fatalf("unexpected catalog: len=%d cards=%d color=%s", c.Len(), c.CardCount(0), c.Color(0))
	}
	if c.Card(CardID{0, 1}).HasSubtitle() {
		t.Fatalf("card without subtitle reports one")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"name":"Empty","cards":[]}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(bad); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("err=%v want ErrEmptyCategory", err)
	}
	badColor := filepath.Join(dir, "colour.json")
	if err := os.WriteFile(badColor, []byte(`[{"name":"Ops","color":"teal","cards":[{"title":"Helm"}]}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadCatalog(badColor)
	if !errors.Is(err, ErrBadColor) {
		t.Fatalf("err=%v want ErrBadColor", err)
	}
	if msg := err.Error(); !strings.Contains(msg, badColor) || !strings.Contains(msg, `"Ops"`) {
		t.Fatalf("error %q does not name the file and category", msg)
	}
	if _, err := LoadCatalog(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("missing file loaded")
	}
}

func TestSingle(t *testing.T) {
	card := Card{Title: "Redis", Subtitle: "Caching"}
	c := Single("Data", "", card)
	if c.Len() != 1 || c.CardCount(0) != 1 || c.Card(CardID{}) != card {
		t.Fatalf("Single built unexpected catalog")
	}
}
