package symbols

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeStripsSuffixes(t *testing.T) {
	cases := map[string]string{
		"Reliance Industries Limited": "reliance industries",
		"Tata Motors Ltd":             "tata motors",
		"XYZ Corp":                    "xyz",
		"Acme Inc":                    "acme",
		"Widgets LLC":                 "widgets",
		"plain name":                  "plain name",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	names := []string{
		"Reliance Industries Limited",
		"Something Ltd Ltd",
		"Nested Limitedltd Corp",
		"",
	}
	for _, name := range names {
		once := Normalize(name)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", name, once, twice)
		}
	}
}

func TestResolveFirstMatch(t *testing.T) {
	m := NewMapping([]Entry{
		{Name: "Reliance Industries Limited", Symbol: "RELIANCE"},
		{Name: "Tata Motors Ltd", Symbol: "TATAMOTORS"},
	})

	sym, ok := m.Resolve("reliance industries announces strong performance")
	if !ok || sym != "RELIANCE" {
		t.Errorf("Expected RELIANCE, got %q ok=%v", sym, ok)
	}

	sym, ok = m.Resolve("tata motors reports record sales")
	if !ok || sym != "TATAMOTORS" {
		t.Errorf("Expected TATAMOTORS, got %q ok=%v", sym, ok)
	}

	if _, ok := m.Resolve("unrelated market commentary"); ok {
		t.Error("Expected no match for unrelated headline")
	}
}

func TestResolveDeclaredOrderWins(t *testing.T) {
	// Both names are substrings of the headline; the earlier entry wins even
	// though the later one is the longer match.
	m := NewMapping([]Entry{
		{Name: "Tata", Symbol: "TATA"},
		{Name: "Tata Motors", Symbol: "TATAMOTORS"},
	})
	sym, ok := m.Resolve("tata motors unveils new model")
	if !ok || sym != "TATA" {
		t.Errorf("Expected first declared entry TATA, got %q ok=%v", sym, ok)
	}
}

func TestNewMappingDropsEmptyNames(t *testing.T) {
	m := NewMapping([]Entry{
		{Name: "Ltd", Symbol: "GHOST"},
		{Name: "", Symbol: "BLANK"},
		{Name: "Real Co", Symbol: "REAL"},
		{Name: "No Symbol", Symbol: ""},
	})
	if m.Len() != 1 {
		t.Fatalf("Expected 1 surviving entry, got %d", m.Len())
	}
	if _, ok := m.Resolve("ghost headline about nothing"); ok {
		t.Error("Entry with empty normalized name should never match")
	}
}

func TestLoadMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mappings.csv")
	csv := "CompanyName,Symbol\nReliance Industries Limited,RELIANCE\nTata Motors Ltd,TATAMOTORS\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	m, err := LoadMapping(path)
	if err != nil {
		t.Fatalf("LoadMapping failed: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", m.Len())
	}
	entries := m.Entries()
	if entries[0].Name != "reliance industries" || entries[0].Symbol != "RELIANCE" {
		t.Errorf("First entry not normalized in file order: %+v", entries[0])
	}
}

func TestLoadMappingMissingFile(t *testing.T) {
	if _, err := LoadMapping(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("Expected error for missing mapping file")
	}
}
