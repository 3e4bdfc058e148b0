package symbols

import "strings"

// Resolve maps a lowercased headline to the first mapping entry whose
// cleaned company name appears as a literal substring. No scoring and no
// longest-match preference: the first entry in declared table order wins.
// Names are re-normalized here so entries built outside NewMapping still match.
func (m *Mapping) Resolve(headline string) (symbol string, ok bool) {
	for _, e := range m.entries {
		name := Normalize(e.Name)
		if name == "" {
			continue
		}
		if strings.Contains(headline, name) {
			return e.Symbol, true
		}
	}
	return "", false
}
