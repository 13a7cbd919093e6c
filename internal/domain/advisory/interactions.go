package advisory

import "strings"

// Interaction is one fired rule for one pair of medication names. Mild
// interactions carry no recommendation.
type Interaction struct {
	Rule           string `json:"rule"`
	Drug1          string `json:"drug1"`
	Drug2          string `json:"drug2"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation,omitempty"`
}

// InteractionReport buckets interactions by severity.
type InteractionReport struct {
	Severe     []Interaction `json:"severe"`
	Moderate   []Interaction `json:"moderate"`
	Mild       []Interaction `json:"mild"`
	Disclaimer string        `json:"disclaimer"`
}

// HasInteractions reports whether any bucket is non-empty.
func (r *InteractionReport) HasInteractions() bool {
	return len(r.Severe)+len(r.Moderate)+len(r.Mild) > 0
}

// Count returns the total number of interactions.
func (r *InteractionReport) Count() int {
	return len(r.Severe) + len(r.Moderate) + len(r.Mild)
}

func newInteractionReport() *InteractionReport {
	return &InteractionReport{
		Severe:     []Interaction{},
		Moderate:   []Interaction{},
		Mild:       []Interaction{},
		Disclaimer: Disclaimer,
	}
}

// CheckInteractionsByName tests every unordered pair of names against every
// interaction rule, in both directions. Names equal after normalisation are
// collapsed to the first spelling, so each pair is reported once. In a record, Drug1 is the name matched by the rule's first
// pattern set; when both orientations match the lexicographically smaller
// name comes first, so the result does not depend on input order.
func CheckInteractionsByName(rules *RuleSet, names []string) *InteractionReport {
	report := newInteractionReport()

	type entry struct{ display, norm string }
	entries := make([]entry, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		norm := normalize(n)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		entries = append(entries, entry{display: strings.TrimSpace(n), norm: norm})
	}

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			for _, rule := range rules.interactions {
				forward := containsAny(a.norm, rule.Drug1Patterns) && containsAny(b.norm, rule.Drug2Patterns)
				reverse := containsAny(b.norm, rule.Drug1Patterns) && containsAny(a.norm, rule.Drug2Patterns)
				if !forward && !reverse {
					continue
				}
				first, second := a, b
				if (reverse && !forward) || (forward && reverse && b.norm < a.norm) {
					first, second = b, a
				}
				report.add(rule, first.display, second.display)
			}
		}
	}
	return report
}

func (r *InteractionReport) add(rule InteractionRule, drug1, drug2 string) {
	ix := Interaction{
		Rule:           rule.ID,
		Drug1:          drug1,
		Drug2:          drug2,
		Description:    rule.Description,
		Recommendation: rule.Recommendation,
	}
	switch rule.Severity {
	case SeveritySevere:
		r.Severe = append(r.Severe, ix)
	case SeverityModerate:
		r.Moderate = append(r.Moderate, ix)
	default:
		ix.Recommendation = ""
		r.Mild = append(r.Mild, ix)
	}
}
