package advisory

import (
	"fmt"
	"strings"

	"github.com/ehr/advisor/internal/domain/medication"
	"github.com/ehr/advisor/internal/domain/protocol"
)

var generalAdvice = []string{
	"Consult a physician for a complete clinical assessment.",
	"Refer to current clinical guidelines for this condition.",
	"Seek emergency care if symptoms are severe or worsening.",
}

// PatientContext is the part of a patient the protocol aggregator screens
// against.
type PatientContext struct {
	Allergies          []string `json:"allergies"`
	CurrentMedications []string `json:"current_medications"`
	IsPregnant         bool     `json:"is_pregnant"`
}

// Catalog resolves protocol medication entries to formulary records.
type Catalog interface {
	Lookup(name string) (*medication.Medication, bool)
}

// MapCatalog is a Catalog keyed by lower-case medication name.
type MapCatalog map[string]*medication.Medication

func (c MapCatalog) Lookup(name string) (*medication.Medication, bool) {
	m, ok := c[normalize(name)]
	return m, ok
}

// RecommendedMedication is a first-line protocol entry annotated for one
// patient.
type RecommendedMedication struct {
	protocol.MedicationEntry
	Resolved                 bool                         `json:"resolved"`
	GenericName              string                       `json:"generic_name,omitempty"`
	PregnancyCategory        medication.PregnancyCategory `json:"pregnancy_category,omitempty"`
	BlackBoxWarning          string                       `json:"black_box_warning,omitempty"`
	Contraindicated          bool                         `json:"contraindicated"`
	PregnancyContraindicated bool                         `json:"pregnancy_contraindicated"`
	Interactions             []string                     `json:"interactions"`
}

// Safe reports whether neither contraindication flag is set.
func (m RecommendedMedication) Safe() bool {
	return !m.Contraindicated && !m.PregnancyContraindicated
}

// ProtocolSummary is the protocol metadata carried in a recommendation.
type ProtocolSummary struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Category         string            `json:"category"`
	Description      string            `json:"description,omitempty"`
	Severity         protocol.Severity `json:"severity"`
	ICDCodes         []string          `json:"icd_codes"`
	TargetPopulation string            `json:"target_population,omitempty"`
}

// ProtocolRecommendation is the aggregator's payload. When Found is false
// only Message, GeneralAdvice and Disclaimer are set.
type ProtocolRecommendation struct {
	Found                  bool                       `json:"found"`
	Message                string                     `json:"message,omitempty"`
	GeneralAdvice          []string                   `json:"general_advice,omitempty"`
	Protocol               *ProtocolSummary           `json:"protocol,omitempty"`
	Steps                  []protocol.Step            `json:"steps,omitempty"`
	RecommendedMedications []RecommendedMedication    `json:"recommended_medications,omitempty"`
	SafeMedications        []RecommendedMedication    `json:"safe_medications,omitempty"`
	SecondLineOptions      []protocol.MedicationEntry `json:"second_line_options,omitempty"`
	Contraindications      []string                   `json:"contraindications,omitempty"`
	WarningSymptoms        []string                   `json:"warning_symptoms,omitempty"`
	ReferralCriteria       []string                   `json:"referral_criteria,omitempty"`
	FollowUp               string                     `json:"follow_up,omitempty"`
	References             []string                   `json:"references,omitempty"`
	InteractionCheck       *InteractionReport         `json:"interaction_check,omitempty"`
	Disclaimer             string                     `json:"disclaimer"`
}

// GetProtocolRecommendation matches query against protocols and annotates the
// matched protocol's first-line medications for the patient. An unmatched
// query is a valid outcome, not an error. Medications the catalog cannot
// resolve are kept with Resolved set to false.
func GetProtocolRecommendation(rules *RuleSet, protocols []protocol.TreatmentProtocol, query string, pc PatientContext, catalog Catalog) *ProtocolRecommendation {
	p, ok := protocol.Match(protocols, query)
	if !ok {
		return &ProtocolRecommendation{
			Found:         false,
			Message:       fmt.Sprintf("No treatment protocol found for %q.", strings.TrimSpace(query)),
			GeneralAdvice: append([]string(nil), generalAdvice...),
			Disclaimer:    Disclaimer,
		}
	}

	rec := &ProtocolRecommendation{
		Found: true,
		Protocol: &ProtocolSummary{
			ID:               p.ID,
			Name:             p.Name,
			Category:         p.Category,
			Description:      p.Description,
			Severity:         p.Severity,
			ICDCodes:         p.ICDCodes,
			TargetPopulation: p.TargetPopulation,
		},
		Steps:                  p.Steps,
		RecommendedMedications: make([]RecommendedMedication, 0, len(p.FirstLine)),
		SafeMedications:        []RecommendedMedication{},
		SecondLineOptions:      p.SecondLine,
		Contraindications:      p.Contraindications,
		WarningSymptoms:        p.WarningSymptoms,
		ReferralCriteria:       p.ReferralCriteria,
		FollowUp:               p.FollowUp,
		References:             p.References,
		Disclaimer:             Disclaimer,
	}

	names := make([]string, 0, len(p.FirstLine)+len(pc.CurrentMedications))
	for _, entry := range p.FirstLine {
		rm := annotate(entry, pc, catalog)
		rec.RecommendedMedications = append(rec.RecommendedMedications, rm)
		if rm.Safe() {
			rec.SafeMedications = append(rec.SafeMedications, rm)
		}
		names = append(names, entry.Name)
	}
	names = append(names, pc.CurrentMedications...)
	rec.InteractionCheck = CheckInteractionsByName(rules, names)

	return rec
}

func annotate(entry protocol.MedicationEntry, pc PatientContext, catalog Catalog) RecommendedMedication {
	rm := RecommendedMedication{MedicationEntry: entry, Interactions: []string{}}

	name := normalize(entry.Name)
	for _, allergy := range pc.Allergies {
		if a := normalize(allergy); a != "" && strings.Contains(name, a) {
			rm.Contraindicated = true
			break
		}
	}

	var med *medication.Medication
	if catalog != nil {
		med, rm.Resolved = catalog.Lookup(entry.Name)
	}
	if !rm.Resolved || med == nil {
		rm.Resolved = false
		return rm
	}

	rm.GenericName = med.GenericName
	rm.PregnancyCategory = med.PregnancyCategory.Normalize()
	rm.BlackBoxWarning = med.BlackBoxWarning
	rm.PregnancyContraindicated = pc.IsPregnant && rm.PregnancyCategory.ContraindicatedInPregnancy()

	seen := make(map[string]bool)
	for _, current := range pc.CurrentMedications {
		c := normalize(current)
		if c == "" {
			continue
		}
		for _, declared := range med.DrugInteractions {
			if !seen[declared] && strings.Contains(normalize(declared), c) {
				seen[declared] = true
				rm.Interactions = append(rm.Interactions, declared)
			}
		}
	}
	return rm
}
