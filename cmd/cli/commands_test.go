package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsjohal14/catalogsearch/internal/scope/catalog"
	"github.com/dsjohal14/catalogsearch/internal/scope/search"
)

const testCatalog = `[
  {"id": 1, "name": "Siro ho trẻ em", "category": "Siro", "brand": "ABC"},
  {"id": 2, "name": "Vitamin C 1000mg", "category": "Vitamin", "brand": "XYZ"},
  {"id": 3, "name": "Vitamin D3", "category": "Vitamin", "brand": "XYZ"}
]`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(testCatalog), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchCommandJSON(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "search", "vitamin", "--catalog", path, "--json")
	if err != nil {
		t.Fatalf("search failed: %v\n%s", err, out)
	}

	var results []search.ScoredDocument
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("failed to decode output: %v\n%s", err, out)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Document.ID == "1" {
			t.Error("product 1 should not match vitamin")
		}
	}
}

func TestSearchCommandTable(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "search", "siro", "-c", path)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, "SCORE") || !strings.Contains(out, "Siro ho trẻ em") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSuggestCommand(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "suggest", "xyz", "-c", path)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || lines[0] != "XYZ" {
		t.Errorf("expected single XYZ suggestion, got %q", lines)
	}
}

func TestSearchCommandMissingCatalog(t *testing.T) {
	_, err := run(t, "search", "vitamin", "-c", filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("expected error for missing catalog")
	}
}

func TestImportRequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := run(t, "import", "-c", filepath.Join(t.TempDir(), "catalog.jsonl"))
	if err == nil {
		t.Error("expected error without database url")
	}
}

func useMemorySource(t *testing.T, docs []search.Document) {
	t.Helper()
	mem := catalog.NewMemCatalog()
	if err := mem.Replace(docs); err != nil {
		t.Fatalf("failed to seed source: %v", err)
	}

	prev := openSource
	openSource = func(context.Context, string) (catalog.Source, func(), error) {
		return mem, func() {}, nil
	}
	t.Cleanup(func() { openSource = prev })
}

func TestImportWritesCatalogPath(t *testing.T) {
	useMemorySource(t, []search.Document{
		{ID: "7", Name: "Vitamin D3", Category: "Vitamin", Brand: "XYZ"},
		{ID: "8", Name: "Siro ho", Category: "Siro"},
	})
	path := filepath.Join(t.TempDir(), "products.jsonl")

	out, err := run(t, "import", "--from-db", "postgres://unused", "-c", path)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "imported 2 products into "+path) {
		t.Errorf("unexpected import output: %s", out)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), catalog.CatalogFile)); !os.IsNotExist(err) {
		t.Error("import should not write the default catalog file")
	}

	out, err = run(t, "search", "vitamin", "-c", path, "--json")
	if err != nil {
		t.Fatalf("search after import failed: %v\n%s", err, out)
	}
	var results []search.ScoredDocument
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("failed to decode output: %v\n%s", err, out)
	}
	if len(results) != 1 || results[0].Document.ID != "7" {
		t.Errorf("expected imported product 7, got %+v", results)
	}
}

func TestSearchCommandUsesWeightOverrides(t *testing.T) {
	path := writeCatalog(t)

	score := func() int {
		t.Helper()
		out, err := run(t, "search", "vitamin d3", "-c", path, "--json")
		if err != nil {
			t.Fatalf("search failed: %v\n%s", err, out)
		}
		var results []search.ScoredDocument
		if err := json.Unmarshal([]byte(out), &results); err != nil {
			t.Fatalf("failed to decode output: %v\n%s", err, out)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		return results[0].Score
	}

	t.Setenv("WEIGHT_NAME_EXACT", "")
	base := score()

	t.Setenv("WEIGHT_NAME_EXACT", "5000")
	if got := score(); got != base+4000 {
		t.Errorf("expected score %d with WEIGHT_NAME_EXACT=5000, got %d", base+4000, got)
	}
}

func TestSearchCommandInvalidWeight(t *testing.T) {
	path := writeCatalog(t)
	t.Setenv("WEIGHT_BRAND", "heavy")

	if _, err := run(t, "search", "vitamin", "-c", path); err == nil {
		t.Error("expected error for invalid weight override")
	}
}
