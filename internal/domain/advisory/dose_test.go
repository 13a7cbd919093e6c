package advisory

import (
	"strings"
	"testing"

	"github.com/ehr/advisor/internal/domain"
	"github.com/ehr/advisor/internal/domain/medication"
	"github.com/ehr/advisor/internal/domain/patient"
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestCalculateDose_Adult(t *testing.T) {
	res, err := CalculateDose(DefaultRules(), amoxicillin(), adultPatient(), "otitis media", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RecommendedDose != "500 mg" {
		t.Errorf("expected adult dose, got %q", res.RecommendedDose)
	}
	if res.CalculationMethod != methodAdultStandard {
		t.Errorf("unexpected method %q", res.CalculationMethod)
	}
	if res.DoseUnit != "mg" || res.Frequency != "every 8 hours" || res.Route != "oral" || res.MaxDailyDose != "3000 mg" {
		t.Errorf("unexpected presentation %+v", res)
	}
	if res.PatientAge != 44 || res.Indication != "otitis media" {
		t.Errorf("unexpected age/indication %d %q", res.PatientAge, res.Indication)
	}
	if len(res.Warnings) != 0 || res.Contraindicated {
		t.Errorf("expected no warnings, got %v", res.Warnings)
	}
	if res.Disclaimer == "" {
		t.Error("expected disclaimer")
	}
}

func TestCalculateDose_WeightBased(t *testing.T) {
	med := paracetamol()
	med.WeightBasedFormula = "10mg/kg"
	pt := adultPatient()
	pt.Weight = weight(20)

	res, err := CalculateDose(DefaultRules(), med, pt, "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.RecommendedDose, "200.0") {
		t.Errorf("expected 200.0 in dose, got %q", res.RecommendedDose)
	}
	if res.RecommendedDose != "200.0 mg" {
		t.Errorf("expected '200.0 mg', got %q", res.RecommendedDose)
	}
	if !strings.Contains(res.CalculationMethod, "10mg/kg") || !strings.Contains(res.CalculationMethod, "20.0 kg") {
		t.Errorf("expected formula and weight in method, got %q", res.CalculationMethod)
	}
}

func TestCalculateDose_WeightFormulaWithDailyQualifier(t *testing.T) {
	med := paracetamol()
	med.WeightBasedFormula = "10 mg/kg/day"
	med.PediatricStandardDose = "250 mg"

	res, err := CalculateDose(DefaultRules(), med, childPatient(), "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RecommendedDose != "200.0 mg" {
		t.Errorf("expected 10 mg/kg x 20 kg, got %q", res.RecommendedDose)
	}
}

func TestCalculateDose_WeightBasedWinsOverPediatricDose(t *testing.T) {
	med := paracetamol()
	med.PediatricStandardDose = "250 mg"

	res, err := CalculateDose(DefaultRules(), med, childPatient(), "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RecommendedDose != "300.0 mg" {
		t.Errorf("expected 15 mg/kg x 20 kg, got %q", res.RecommendedDose)
	}
}

func TestCalculateDose_WeightUnknownFallsThrough(t *testing.T) {
	for _, w := range []*float64{nil, weight(0), weight(-5)} {
		pt := adultPatient()
		pt.Weight = w
		res, err := CalculateDose(DefaultRules(), paracetamol(), pt, "", testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.RecommendedDose != "1000 mg" || res.CalculationMethod != methodAdultStandard {
			t.Errorf("expected adult dose fallback, got %q (%s)", res.RecommendedDose, res.CalculationMethod)
		}
	}
}

func TestCalculateDose_MalformedFormula(t *testing.T) {
	med := paracetamol()
	med.WeightBasedFormula = "fifteen per kilo"

	_, err := CalculateDose(DefaultRules(), med, adultPatient(), "", testNow)
	if err == nil {
		t.Fatal("expected error for malformed formula")
	}
	if !domain.IsValidationError(err) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestCalculateDose_FormulaIgnoredWhenNotWeightBased(t *testing.T) {
	med := paracetamol()
	med.WeightBased = false
	med.WeightBasedFormula = "garbage"

	res, err := CalculateDose(DefaultRules(), med, adultPatient(), "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RecommendedDose != "1000 mg" {
		t.Errorf("expected adult dose, got %q", res.RecommendedDose)
	}
}

func TestCalculateDose_InvalidBirthDate(t *testing.T) {
	for _, dob := range []string{"", "yesterday", "2099-01-01"} {
		pt := adultPatient()
		pt.DateOfBirth = dob
		_, err := CalculateDose(DefaultRules(), amoxicillin(), pt, "", testNow)
		if !domain.IsValidationError(err) {
			t.Errorf("%q: expected ValidationError, got %v", dob, err)
		}
	}
}

func TestCalculateDose_Pediatric(t *testing.T) {
	res, err := CalculateDose(DefaultRules(), amoxicillin(), childPatient(), "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RecommendedDose != "25 mg/kg/day divided every 12 hours" {
		t.Errorf("expected pediatric dose verbatim, got %q", res.RecommendedDose)
	}
	if res.CalculationMethod != methodPediatricStandard {
		t.Errorf("unexpected method %q", res.CalculationMethod)
	}
	if !contains(res.Warnings, warnPediatric) {
		t.Errorf("expected pediatric warning, got %v", res.Warnings)
	}
	if contains(res.Warnings, warnPediatricNoData) {
		t.Error("did not expect pharmacist warning when a pediatric dose exists")
	}
}

func TestCalculateDose_PediatricWithoutPediatricData(t *testing.T) {
	res, err := CalculateDose(DefaultRules(), warfarin(), childPatient(), "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RecommendedDose != "5 mg" {
		t.Errorf("expected adult dose fallback, got %q", res.RecommendedDose)
	}
	if !contains(res.Warnings, warnPediatric) || !contains(res.Warnings, warnPediatricNoData) {
		t.Errorf("expected pediatric and pharmacist warnings, got %v", res.Warnings)
	}
}

func TestCalculateDose_PediatricWarningForAllChildren(t *testing.T) {
	meds := []*medication.Medication{amoxicillin(), paracetamol(), warfarin(), morphine(), {Name: "Empty"}}
	for _, dob := range []string{"2024-01-01", "2015-06-01", "2006-06-02"} {
		for _, med := range meds {
			pt := &patient.Patient{DateOfBirth: dob}
			res, err := CalculateDose(DefaultRules(), med, pt, "", testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !contains(res.Warnings, warnPediatric) {
				t.Errorf("%s/%s: expected pediatric warning", dob, med.Name)
			}
		}
	}
}

func TestCalculateDose_Geriatric(t *testing.T) {
	res, err := CalculateDose(DefaultRules(), amoxicillin(), elderlyPatient(), "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(res.Warnings, warnGeriatric) {
		t.Errorf("expected geriatric warning, got %v", res.Warnings)
	}
	if !contains(res.SpecialInstructions, instrStartLow) {
		t.Errorf("expected start-low instruction, got %v", res.SpecialInstructions)
	}
	if contains(res.Warnings, instrStartLow) {
		t.Error("start-low belongs to special instructions, not warnings")
	}
}

func TestCalculateDose_BlackBoxFirst(t *testing.T) {
	pt := childPatient()
	pt.ChronicConditions = []string{"renal failure"}

	res, err := CalculateDose(DefaultRules(), morphine(), pt, "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) < 2 {
		t.Fatalf("expected several warnings, got %v", res.Warnings)
	}
	if res.Warnings[0] != "BLACK BOX WARNING: Risk of respiratory depression" {
		t.Errorf("expected black box warning first, got %q", res.Warnings[0])
	}
}

func TestCalculateDose_AllergyContraindication(t *testing.T) {
	tests := []struct {
		name    string
		allergy string
	}{
		{"allergy within contraindication", "Penicillin"},
		{"contraindication within allergy", "severe penicillin allergy with hives"},
	}
	for _, tt := range tests {
		pt := adultPatient()
		pt.Allergies = []string{tt.allergy}
		res, err := CalculateDose(DefaultRules(), amoxicillin(), pt, "", testNow)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if !res.Contraindicated || len(res.ContraindicationReasons) != 1 {
			t.Errorf("%s: expected contraindication, got %+v", tt.name, res.ContraindicationReasons)
		}
		if res.RecommendedDose == "" {
			t.Errorf("%s: contraindication must not suppress the dose", tt.name)
		}
	}
}

func TestCalculateDose_Renal(t *testing.T) {
	pt := adultPatient()
	pt.ChronicConditions = []string{"Chronic Kidney Disease stage 3"}

	res, err := CalculateDose(DefaultRules(), amoxicillin(), pt, "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(res.Warnings, warnRenal) {
		t.Errorf("expected renal warning, got %v", res.Warnings)
	}
	if !contains(res.SpecialInstructions, "Renal adjustment: "+amoxicillin().RenalAdjustment) {
		t.Errorf("expected renal instruction, got %v", res.SpecialInstructions)
	}

	res, _ = CalculateDose(DefaultRules(), warfarin(), pt, "", testNow)
	if contains(res.Warnings, warnRenal) {
		t.Error("expected no renal warning without adjustment text")
	}
}

func TestCalculateDose_Hepatic(t *testing.T) {
	pt := adultPatient()
	pt.Weight = nil
	pt.HepaticFunction = "moderate impairment"

	res, err := CalculateDose(DefaultRules(), paracetamol(), pt, "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(res.Warnings, warnHepatic) {
		t.Errorf("expected hepatic warning, got %v", res.Warnings)
	}
	if !contains(res.SpecialInstructions, "Hepatic adjustment: Maximum 2 g per day") {
		t.Errorf("expected hepatic instruction, got %v", res.SpecialInstructions)
	}
}

func TestCalculateDose_Monitoring(t *testing.T) {
	res, err := CalculateDose(DefaultRules(), warfarin(), adultPatient(), "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Signs of bleeding", "Labs: INR, CBC"}
	if len(res.MonitoringRequired) != 2 || res.MonitoringRequired[0] != want[0] || res.MonitoringRequired[1] != want[1] {
		t.Errorf("expected %v, got %v", want, res.MonitoringRequired)
	}
}

func TestCalculateDose_ControlledSubstance(t *testing.T) {
	res, err := CalculateDose(DefaultRules(), morphine(), adultPatient(), "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "Schedule II") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected schedule warning, got %v", res.Warnings)
	}
	if !contains(res.SpecialInstructions, instrWitness) || !contains(res.SpecialInstructions, instrCount) {
		t.Errorf("expected witness and count instructions, got %v", res.SpecialInstructions)
	}
	if res.DoseUnit != "mg" {
		t.Errorf("expected mg, got %q", res.DoseUnit)
	}
}

func TestCalculateDose_NoDosingData(t *testing.T) {
	med := &medication.Medication{Name: "Mystery", Strength: "1 tablet"}
	res, err := CalculateDose(DefaultRules(), med, adultPatient(), "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RecommendedDose != "" || res.CalculationMethod != methodNoData {
		t.Errorf("expected no dose, got %q (%s)", res.RecommendedDose, res.CalculationMethod)
	}
	if res.MaxDailyDose != maxDoseConsult {
		t.Errorf("expected consult placeholder, got %q", res.MaxDailyDose)
	}
	if res.DoseUnit != "units" {
		t.Errorf("expected units, got %q", res.DoseUnit)
	}
	if res.Warnings == nil || res.SpecialInstructions == nil || res.MonitoringRequired == nil {
		t.Error("expected empty, non-nil lists")
	}
}
