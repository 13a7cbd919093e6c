package advisory

import (
	"testing"

	"github.com/ehr/advisor/internal/domain/medication"
	"github.com/ehr/advisor/internal/domain/protocol"
)

func testProtocols() []protocol.TreatmentProtocol {
	return []protocol.TreatmentProtocol{
		{
			ID:       "uti-uncomplicated",
			Name:     "Uncomplicated Urinary Tract Infection",
			Category: "Infectious Disease",
			Severity: protocol.SeverityMild,
			FirstLine: []protocol.MedicationEntry{
				{Name: "Nitrofurantoin", Dose: "100 mg", Route: "oral", Frequency: "twice daily", Duration: "5 days"},
			},
		},
		{
			ID:          "asthma-exacerbation",
			Name:        "Asthma Exacerbation Management",
			Category:    "Respiratory",
			Description: "Acute bronchospasm",
			ICDCodes:    []string{"J45.901"},
			Severity:    protocol.SeverityModerate,
			Steps:       []protocol.Step{{Order: 1, Action: "Assess severity"}},
			FirstLine: []protocol.MedicationEntry{
				{Name: "Amoxicillin", Dose: "500 mg", Route: "oral", Frequency: "every 8 hours"},
				{Name: "Warfarin", Dose: "5 mg", Route: "oral", Frequency: "daily"},
				{Name: "Ibuprofen", Dose: "400 mg", Route: "oral", Frequency: "every 6 hours"},
			},
			SecondLine:       []protocol.MedicationEntry{{Name: "Magnesium sulfate", Dose: "2 g", Route: "IV", Frequency: "once"}},
			WarningSymptoms:  []string{"Silent chest"},
			ReferralCriteria: []string{"No response to initial therapy"},
			FollowUp:         "Review within 48 hours",
			References:       []string{"GINA 2023"},
		},
	}
}

func testCatalog() MapCatalog {
	return MapCatalog{
		"amoxicillin": amoxicillin(),
		"warfarin":    warfarin(),
	}
}

func TestGetProtocolRecommendation_NotFound(t *testing.T) {
	rec := GetProtocolRecommendation(DefaultRules(), testProtocols(), "migraine", PatientContext{}, testCatalog())
	if rec.Found {
		t.Fatal("expected not found")
	}
	if rec.Message == "" || len(rec.GeneralAdvice) == 0 || rec.Disclaimer != Disclaimer {
		t.Errorf("expected message, advice and disclaimer, got %+v", rec)
	}
	if rec.Protocol != nil || rec.RecommendedMedications != nil {
		t.Error("expected no protocol payload")
	}
}

func TestGetProtocolRecommendation_CaseInsensitiveSubstring(t *testing.T) {
	for _, q := range []string{"asthma", "ASTHMA EXAC", "respiratory", "bronchospasm"} {
		rec := GetProtocolRecommendation(DefaultRules(), testProtocols(), q, PatientContext{}, testCatalog())
		if !rec.Found || rec.Protocol.ID != "asthma-exacerbation" {
			t.Errorf("%q: expected asthma protocol, got %+v", q, rec.Protocol)
		}
	}
}

func TestGetProtocolRecommendation_Payload(t *testing.T) {
	rec := GetProtocolRecommendation(DefaultRules(), testProtocols(), "asthma", PatientContext{}, testCatalog())
	if !rec.Found {
		t.Fatal("expected found")
	}
	if rec.Protocol.Name != "Asthma Exacerbation Management" || rec.Protocol.Severity != protocol.SeverityModerate {
		t.Errorf("unexpected metadata %+v", rec.Protocol)
	}
	if len(rec.Steps) != 1 || len(rec.SecondLineOptions) != 1 || len(rec.WarningSymptoms) != 1 ||
		len(rec.ReferralCriteria) != 1 || rec.FollowUp == "" || len(rec.References) != 1 {
		t.Errorf("expected full payload, got %+v", rec)
	}
	if len(rec.RecommendedMedications) != 3 || len(rec.SafeMedications) != 3 {
		t.Errorf("expected all medications safe, got %d/%d", len(rec.SafeMedications), len(rec.RecommendedMedications))
	}
	if rec.Disclaimer != Disclaimer {
		t.Error("expected disclaimer")
	}
}

func TestGetProtocolRecommendation_PregnancyFiltersSafeList(t *testing.T) {
	pc := PatientContext{IsPregnant: true}
	rec := GetProtocolRecommendation(DefaultRules(), testProtocols(), "asthma", pc, testCatalog())

	if len(rec.RecommendedMedications) != 3 {
		t.Fatalf("expected unfiltered list of 3, got %d", len(rec.RecommendedMedications))
	}
	if !rec.RecommendedMedications[1].PregnancyContraindicated {
		t.Error("expected warfarin (category X) to be pregnancy-contraindicated")
	}
	for _, m := range rec.SafeMedications {
		if m.Name == "Warfarin" {
			t.Error("expected warfarin to be removed from the safe list")
		}
	}
	if len(rec.SafeMedications) != 2 {
		t.Errorf("expected 2 safe medications, got %d", len(rec.SafeMedications))
	}
}

func TestGetProtocolRecommendation_CategoryD(t *testing.T) {
	catalog := testCatalog()
	d := amoxicillin()
	d.PregnancyCategory = medication.PregnancyD
	catalog["amoxicillin"] = d

	rec := GetProtocolRecommendation(DefaultRules(), testProtocols(), "asthma", PatientContext{IsPregnant: true}, catalog)
	if !rec.RecommendedMedications[0].PregnancyContraindicated {
		t.Error("expected category D to be pregnancy-contraindicated")
	}

	rec = GetProtocolRecommendation(DefaultRules(), testProtocols(), "asthma", PatientContext{IsPregnant: false}, catalog)
	if len(rec.SafeMedications) != 3 {
		t.Error("expected no pregnancy filtering for non-pregnant patients")
	}
}

func TestGetProtocolRecommendation_Allergy(t *testing.T) {
	pc := PatientContext{Allergies: []string{"AMOXI"}}
	rec := GetProtocolRecommendation(DefaultRules(), testProtocols(), "asthma", pc, testCatalog())
	if !rec.RecommendedMedications[0].Contraindicated {
		t.Error("expected amoxicillin to be contraindicated")
	}
	if len(rec.SafeMedications) != 2 {
		t.Errorf("expected 2 safe medications, got %d", len(rec.SafeMedications))
	}
}

func TestGetProtocolRecommendation_UnresolvedMedication(t *testing.T) {
	pc := PatientContext{IsPregnant: true}
	rec := GetProtocolRecommendation(DefaultRules(), testProtocols(), "asthma", pc, testCatalog())

	ibu := rec.RecommendedMedications[2]
	if ibu.Resolved {
		t.Error("expected ibuprofen to be unresolved")
	}
	if ibu.PregnancyContraindicated || ibu.Contraindicated {
		t.Error("unresolved medications carry no pregnancy flag")
	}
	if ibu.Dose != "400 mg" {
		t.Errorf("expected protocol entry fields to be kept, got %+v", ibu.MedicationEntry)
	}
}

func TestGetProtocolRecommendation_NilCatalog(t *testing.T) {
	rec := GetProtocolRecommendation(DefaultRules(), testProtocols(), "urinary", PatientContext{}, nil)
	if !rec.Found || len(rec.RecommendedMedications) != 1 || rec.RecommendedMedications[0].Resolved {
		t.Errorf("expected partial result, got %+v", rec)
	}
}

func TestGetProtocolRecommendation_CurrentMedicationInteractions(t *testing.T) {
	pc := PatientContext{CurrentMedications: []string{"Warfarin", "Aspirin"}}
	rec := GetProtocolRecommendation(DefaultRules(), testProtocols(), "asthma", pc, testCatalog())

	amox := rec.RecommendedMedications[0]
	if len(amox.Interactions) != 1 || amox.Interactions[0] != "Warfarin: increased INR" {
		t.Errorf("expected declared warfarin interaction, got %v", amox.Interactions)
	}
	warf := rec.RecommendedMedications[1]
	if len(warf.Interactions) != 1 || warf.Interactions[0] != "Aspirin: bleeding risk" {
		t.Errorf("expected declared aspirin interaction, got %v", warf.Interactions)
	}
	if !warf.Safe() {
		t.Error("interactions do not remove a medication from the safe list")
	}
}

func TestGetProtocolRecommendation_InteractionCheck(t *testing.T) {
	pc := PatientContext{CurrentMedications: []string{"Lisinopril"}}
	rec := GetProtocolRecommendation(DefaultRules(), testProtocols(), "asthma", pc, testCatalog())
	if rec.InteractionCheck == nil {
		t.Fatal("expected interaction check")
	}
	if len(rec.InteractionCheck.Severe) != 1 {
		t.Errorf("expected warfarin + ibuprofen, got %+v", rec.InteractionCheck.Severe)
	}
	if len(rec.InteractionCheck.Moderate) != 1 || rec.InteractionCheck.Moderate[0].Drug1 != "Lisinopril" {
		t.Errorf("expected lisinopril + ibuprofen, got %+v", rec.InteractionCheck.Moderate)
	}
}
