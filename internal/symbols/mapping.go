package symbols

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// legalSuffixes are the legal-entity markers stripped from company names
// before matching.
var legalSuffixes = []string{"limited", "ltd", "corp", "inc", "llc"}

// Normalize lowercases a company name and strips legal-entity suffixes.
// Stripping runs to a fixed point, so Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	out := strings.ToLower(name)
	for {
		next := out
		for _, suffix := range legalSuffixes {
			next = strings.TrimSpace(strings.ReplaceAll(next, suffix, ""))
		}
		if next == out {
			return out
		}
		out = next
	}
}

// Entry pairs a normalized company name with its ticker symbol.
type Entry struct {
	Name   string
	Symbol string
}

// Mapping is the read-only company-name-to-ticker table. Entries keep the
// order of the reference file, which makes first-match resolution
// deterministic across reloads. Safe for concurrent reads.
type Mapping struct {
	entries []Entry
}

// NewMapping builds a mapping from raw (name, symbol) pairs, normalizing the
// names and dropping pairs whose name normalizes to nothing.
func NewMapping(pairs []Entry) *Mapping {
	m := &Mapping{}
	for _, p := range pairs {
		name := Normalize(p.Name)
		if name == "" || p.Symbol == "" {
			continue
		}
		m.entries = append(m.entries, Entry{Name: name, Symbol: p.Symbol})
	}
	return m
}

func (m *Mapping) Len() int { return len(m.entries) }

// Entries returns the table in declared order. Callers must not mutate it.
func (m *Mapping) Entries() []Entry { return m.entries }

type mappingRow struct {
	CompanyName string `csv:"CompanyName"`
	Symbol      string `csv:"Symbol"`
}

// LoadMapping reads the reference CSV (CompanyName,Symbol columns) and
// normalizes names at load time.
func LoadMapping(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping file: %w", err)
	}
	defer f.Close()

	var rows []*mappingRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse mapping file: %w", err)
	}

	pairs := make([]Entry, 0, len(rows))
	for _, r := range rows {
		pairs = append(pairs, Entry{Name: r.CompanyName, Symbol: r.Symbol})
	}
	return NewMapping(pairs), nil
}
