package advisory

import (
	"fmt"
	"strings"
	"time"

	"github.com/ehr/advisor/internal/domain/medication"
	"github.com/ehr/advisor/internal/domain/patient"
)

const (
	warnPediatric           = "Pediatric patient: verify age-appropriate dosing."
	warnPediatricNoData     = "No pediatric or weight-based dosing data: consult a pharmacist before administration."
	warnGeriatric           = "Geriatric patient: increased sensitivity to adverse effects."
	instrStartLow           = "Start low, titrate slowly."
	warnRenal               = "Renal impairment: dose adjustment required."
	warnHepatic             = "Hepatic impairment: dose adjustment required."
	instrWitness            = "Document administration with a witness."
	instrCount              = "Verify count before and after administration."
	maxDoseConsult          = "Consult pharmacist"
	methodNoData            = "No dosing data available"
	methodPediatricStandard = "Pediatric standard dose"
	methodAdultStandard     = "Adult standard dose"
)

// DoseResult is a dose recommendation for one medication and patient.
type DoseResult struct {
	Medication              string   `json:"medication"`
	RecommendedDose         string   `json:"recommended_dose"`
	DoseUnit                string   `json:"dose_unit"`
	Frequency               string   `json:"frequency"`
	Route                   string   `json:"route"`
	MaxDailyDose            string   `json:"max_daily_dose"`
	Warnings                []string `json:"warnings"`
	Contraindicated         bool     `json:"contraindicated"`
	ContraindicationReasons []string `json:"contraindication_reasons"`
	MonitoringRequired      []string `json:"monitoring_required"`
	SpecialInstructions     []string `json:"special_instructions"`
	CalculationMethod       string   `json:"calculation_method"`
	Indication              string   `json:"indication,omitempty"`
	PatientAge              int      `json:"patient_age"`
	Disclaimer              string   `json:"disclaimer"`
}

// CalculateDose resolves the dose for med and pt. Weight-based dosing wins
// over the pediatric standard dose, which wins over the adult standard dose.
// It fails only for an unusable birth date or a malformed weight formula.
func CalculateDose(rules *RuleSet, med *medication.Medication, pt *patient.Patient, indication string, now time.Time) (*DoseResult, error) {
	age, err := patient.ResolveAge(pt.DateOfBirth, now)
	if err != nil {
		return nil, err
	}

	var rate float64
	if med.HasWeightFormula() {
		if rate, err = medication.ParseWeightFormula(med.WeightBasedFormula); err != nil {
			return nil, err
		}
	}

	res := &DoseResult{
		Medication:              med.Name,
		DoseUnit:                med.DoseUnit(),
		Frequency:               med.Frequency,
		Route:                   med.Route,
		MaxDailyDose:            med.MaxDailyDose,
		Warnings:                []string{},
		ContraindicationReasons: []string{},
		SpecialInstructions:     []string{},
		Indication:              indication,
		PatientAge:              age.Years,
		Disclaimer:              Disclaimer,
	}
	if res.MaxDailyDose == "" {
		res.MaxDailyDose = maxDoseConsult
	}

	weight, haveWeight := patient.ResolveWeight(pt.Weight)
	switch {
	case med.HasWeightFormula() && haveWeight:
		res.RecommendedDose = fmt.Sprintf("%.1f mg", rate*weight)
		res.DoseUnit = "mg"
		res.CalculationMethod = fmt.Sprintf("Weight-based: %s x %.1f kg", strings.TrimSpace(med.WeightBasedFormula), weight)
	case age.Pediatric && med.PediatricStandardDose != "":
		res.RecommendedDose = med.PediatricStandardDose
		res.CalculationMethod = methodPediatricStandard
	case med.AdultStandardDose != "":
		res.RecommendedDose = med.AdultStandardDose
		res.CalculationMethod = methodAdultStandard
	default:
		res.CalculationMethod = methodNoData
	}

	if med.BlackBoxWarning != "" {
		res.Warnings = append(res.Warnings, blackBox(med.BlackBoxWarning))
	}

	if age.Pediatric {
		res.Warnings = append(res.Warnings, warnPediatric)
		if med.PediatricStandardDose == "" && !med.HasWeightFormula() {
			res.Warnings = append(res.Warnings, warnPediatricNoData)
		}
	}
	if age.Geriatric {
		res.Warnings = append(res.Warnings, warnGeriatric)
		res.SpecialInstructions = append(res.SpecialInstructions, instrStartLow)
	}

	for _, allergy := range pt.Allergies {
		for _, ci := range med.Contraindications {
			if overlaps(allergy, ci) {
				res.ContraindicationReasons = append(res.ContraindicationReasons,
					fmt.Sprintf("Patient allergy %q matches contraindication %q", allergy, ci))
			}
		}
	}
	res.Contraindicated = len(res.ContraindicationReasons) > 0

	if pt.HasRenalImpairment() && med.RenalAdjustment != "" {
		res.Warnings = append(res.Warnings, warnRenal)
		res.SpecialInstructions = append(res.SpecialInstructions, "Renal adjustment: "+med.RenalAdjustment)
	}
	if pt.HasHepaticImpairment() && med.HepaticAdjustment != "" {
		res.Warnings = append(res.Warnings, warnHepatic)
		res.SpecialInstructions = append(res.SpecialInstructions, "Hepatic adjustment: "+med.HepaticAdjustment)
	}

	res.MonitoringRequired = monitoringFor(med.LabsRequired, med.MonitoringParameters)

	if med.ControlledSubstance {
		res.Warnings = append(res.Warnings, controlledWarning(med.Schedule))
		res.SpecialInstructions = append(res.SpecialInstructions, instrWitness, instrCount)
	}

	return res, nil
}

func controlledWarning(schedule string) string {
	if schedule == "" {
		return "Controlled substance: follow regulatory dispensing requirements."
	}
	return fmt.Sprintf("Controlled substance (Schedule %s): follow regulatory dispensing requirements.", schedule)
}
