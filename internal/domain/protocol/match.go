package protocol

import "strings"

// Match returns the first protocol, in the order given, whose name, category
// or description contains the trimmed query case-insensitively. There is no
// ranking. A blank query matches nothing.
func Match(protocols []TreatmentProtocol, query string) (*TreatmentProtocol, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, false
	}
	for i := range protocols {
		p := &protocols[i]
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			return p, true
		}
	}
	return nil, false
}

// FilterByCategory keeps the protocols whose category equals category,
// ignoring case. Order is preserved.
func FilterByCategory(protocols []TreatmentProtocol, category string) []TreatmentProtocol {
	c := strings.TrimSpace(category)
	out := make([]TreatmentProtocol, 0, len(protocols))
	for _, p := range protocols {
		if strings.EqualFold(p.Category, c) {
			out = append(out, p)
		}
	}
	return out
}
