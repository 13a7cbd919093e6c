package advisory

import (
	"fmt"
	"strings"

	"github.com/ehr/advisor/internal/domain/medication"
	"github.com/ehr/advisor/internal/domain/patient"
)

// SafetyInfo is the allergy, organ-function and pregnancy screen of one
// medication for one patient. It does not depend on a dose calculation.
type SafetyInfo struct {
	Medication         string                       `json:"medication"`
	SafeToUse          bool                         `json:"safe_to_use"`
	Warnings           []string                     `json:"warnings"`
	Contraindications  []string                     `json:"contraindications"`
	AllergyRisk        bool                         `json:"allergy_risk"`
	AllergyDetails     []string                     `json:"allergy_details"`
	RenalCaution       bool                         `json:"renal_caution"`
	RenalDetails       string                       `json:"renal_details,omitempty"`
	HepaticCaution     bool                         `json:"hepatic_caution"`
	HepaticDetails     string                       `json:"hepatic_details,omitempty"`
	PregnancyCategory  medication.PregnancyCategory `json:"pregnancy_category"`
	PregnancyWarning   string                       `json:"pregnancy_warning"`
	MonitoringRequired []string                     `json:"monitoring_required"`
	Disclaimer         string                       `json:"disclaimer"`
}

// GetDrugSafetyInfo screens med against pt. SafeToUse is false when any
// allergy matches, directly or through cross-reactivity, or when a medication
// contraindication matches a chronic condition or allergy.
func GetDrugSafetyInfo(rules *RuleSet, med *medication.Medication, pt *patient.Patient) *SafetyInfo {
	info := &SafetyInfo{
		Medication:        med.Name,
		Warnings:          []string{},
		Contraindications: []string{},
		AllergyDetails:    []string{},
		PregnancyCategory: med.PregnancyCategory.Normalize(),
		Disclaimer:        Disclaimer,
	}
	if med.BlackBoxWarning != "" {
		info.Warnings = append(info.Warnings, blackBox(med.BlackBoxWarning))
	}

	name, generic, category := normalize(med.Name), normalize(med.GenericName), normalize(med.Category)
	for _, allergy := range pt.Allergies {
		a := normalize(allergy)
		if a == "" {
			continue
		}
		if field, ok := directAllergyMatch(a, name, generic, category); ok {
			info.AllergyRisk = true
			info.AllergyDetails = append(info.AllergyDetails,
				fmt.Sprintf("Direct allergy match: patient allergy %q matches medication %s", allergy, field))
		}
		for _, cr := range rules.crossReactivity {
			if !strings.Contains(a, cr.Class) {
				continue
			}
			for _, related := range cr.Related {
				if strings.Contains(name, related) || (generic != "" && strings.Contains(generic, related)) {
					info.AllergyRisk = true
					info.AllergyDetails = append(info.AllergyDetails,
						fmt.Sprintf("Cross-reactivity: %s allergy may cross-react with %s (%s)", cr.Class, med.Name, related))
				}
			}
		}
	}

	for _, ci := range med.Contraindications {
		if matchesAny(ci, pt.ChronicConditions) || matchesAny(ci, pt.Allergies) {
			info.Contraindications = append(info.Contraindications, ci)
		}
	}

	if pt.HasRenalImpairment() && med.RenalAdjustment != "" {
		info.RenalCaution = true
		info.RenalDetails = "Renal adjustment required: " + med.RenalAdjustment
		info.Warnings = append(info.Warnings, warnRenal)
	}
	if pt.HasHepaticImpairment() && med.HepaticAdjustment != "" {
		info.HepaticCaution = true
		info.HepaticDetails = "Hepatic adjustment required: " + med.HepaticAdjustment
		info.Warnings = append(info.Warnings, warnHepatic)
	}

	info.PregnancyWarning = rules.PregnancyText(info.PregnancyCategory)
	if pt.IsPregnant && info.PregnancyCategory.ContraindicatedInPregnancy() {
		info.Warnings = append(info.Warnings,
			fmt.Sprintf("Patient is pregnant: pregnancy category %s.", info.PregnancyCategory))
	}

	if med.ControlledSubstance {
		info.Warnings = append(info.Warnings, controlledWarning(med.Schedule))
	}

	info.MonitoringRequired = monitoringFor(med.LabsRequired, med.MonitoringParameters)
	info.SafeToUse = !info.AllergyRisk && len(info.Contraindications) == 0
	return info
}

func directAllergyMatch(allergy, name, generic, category string) (string, bool) {
	switch {
	case strings.Contains(name, allergy):
		return "name", true
	case generic != "" && strings.Contains(generic, allergy):
		return "generic name", true
	case category != "" && strings.Contains(category, allergy):
		return "category", true
	}
	return "", false
}

func matchesAny(s string, candidates []string) bool {
	for _, c := range candidates {
		if overlaps(s, c) {
			return true
		}
	}
	return false
}
