package protocol

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Template holds the fields shared by every variant of a protocol.
type Template struct {
	ID                string
	Name              string
	Category          string
	Description       string
	ICDCodes          []string
	Severity          Severity
	Steps             []Step
	FirstLine         []MedicationEntry
	SecondLine        []MedicationEntry
	Contraindications []string
	WarningSymptoms   []string
	ReferralCriteria  []string
	FollowUp          string
	References        []string
}

// Variant is the delta one concrete protocol applies to its Template.
type Variant struct {
	Suffix                string
	NameSuffix            string
	Severity              Severity // empty keeps the template severity
	AdditionalICDCodes    []string
	AdditionalSteps       []Step
	AdditionalMedications []MedicationEntry
	AdditionalWarnings    []string
	TargetPopulation      string
}

// Expand produces one protocol per variant, in variant order. Lists are
// concatenated into fresh slices so no two protocols share backing arrays
// with each other or with t.
func Expand(t Template, variants []Variant) []TreatmentProtocol {
	out := make([]TreatmentProtocol, 0, len(variants))
	for _, v := range variants {
		p := TreatmentProtocol{
			ID:                joinID(t.ID, v.Suffix),
			Name:              variantName(t.Name, v),
			Category:          t.Category,
			Description:       t.Description,
			ICDCodes:          concat(t.ICDCodes, v.AdditionalICDCodes),
			Severity:          t.Severity,
			Steps:             concat(t.Steps, v.AdditionalSteps),
			FirstLine:         concat(t.FirstLine, v.AdditionalMedications),
			SecondLine:        concat(t.SecondLine, nil),
			Contraindications: concat(t.Contraindications, nil),
			WarningSymptoms:   concat(t.WarningSymptoms, v.AdditionalWarnings),
			ReferralCriteria:  concat(t.ReferralCriteria, nil),
			FollowUp:          t.FollowUp,
			References:        concat(t.References, nil),
			TargetPopulation:  v.TargetPopulation,
		}
		if v.Severity != "" {
			p.Severity = v.Severity
		}
		out = append(out, p)
	}
	return out
}

func joinID(base, suffix string) string {
	if suffix == "" {
		return base
	}
	return base + "-" + suffix
}

func variantName(base string, v Variant) string {
	parts := make([]string, 0, 3)
	if pop := capitalize(strings.TrimSpace(v.TargetPopulation)); pop != "" {
		parts = append(parts, pop)
	}
	parts = append(parts, base)
	if s := strings.TrimSpace(v.NameSuffix); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

func concat[T any](base, extra []T) []T {
	out := make([]T, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
