package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"ai-finance-assistant-be/internal/pkg/logger"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSingleAndArrayShapes(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "basics.json", `[
		{"id": "doc1", "title": "Stocks", "content": "A stock is a share.", "category": "investing_basics", "source": "SEC", "tags": ["stocks"]},
		{"id": "doc2", "title": "Bonds", "content": "A bond is a loan.", "category": "investing_basics", "source": "SEC", "tags": ["bonds"]}
	]`)
	writeFile(t, dir, "tax.json", `{"id": "doc3", "title": "401k Basics", "content": "A 401k is an employer plan.", "category": "tax", "source": "IRS", "tags": ["401k", "Retirement"], "extra_field": true}`)

	store := NewStore(dir, logger.NewNopLogger())
	n, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n != 3 {
		t.Errorf("loaded %d documents, want 3", n)
	}
	if store.Len() != 3 {
		t.Errorf("Len = %d, want 3", store.Len())
	}
}

func TestLoadSkipsMalformedFile(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "bad.json", `{not json at all`)
	writeFile(t, dir, "good.json", `{"id": "doc1", "title": "ETF", "content": "Exchange traded fund.", "category": "investing_basics", "source": "SEC", "tags": []}`)

	store := NewStore(dir, logger.NewNopLogger())
	n, err := store.Load()
	if err != nil {
		t.Fatalf("Load should not fail on a single malformed file: %v", err)
	}
	if n != 1 {
		t.Errorf("loaded %d documents, want 1", n)
	}
}

func TestByCategoryCaseInsensitiveInOrder(t *testing.T) {
	store := NewStore("", logger.NewNopLogger())
	store.Add(Document{ID: "a", Category: "Tax"})
	store.Add(Document{ID: "b", Category: "investing"})
	store.Add(Document{ID: "c", Category: "TAX"})

	got := store.ByCategory("tax")
	if len(got) != 2 {
		t.Fatalf("got %d documents, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("insertion order not preserved: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestByTagCaseInsensitive(t *testing.T) {
	store := NewStore("", logger.NewNopLogger())
	store.Add(Document{ID: "a", Tags: []string{"Retirement", "401k"}})
	store.Add(Document{ID: "b", Tags: []string{"stocks"}})
	store.Add(Document{ID: "c", Tags: []string{"retirement"}})

	got := store.ByTag("RETIREMENT")
	if len(got) != 2 {
		t.Fatalf("got %d documents, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("unexpected documents: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestByCategoryNoMatch(t *testing.T) {
	store := NewStore("", logger.NewNopLogger())
	store.Add(Document{ID: "a", Category: "tax"})

	if got := store.ByCategory("crypto"); len(got) != 0 {
		t.Errorf("expected no documents, got %d", len(got))
	}
}
