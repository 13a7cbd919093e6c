package advisory

import (
	"time"

	"github.com/ehr/advisor/internal/domain/medication"
	"github.com/ehr/advisor/internal/domain/patient"
)

var testNow = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func weight(kg float64) *float64 { return &kg }

func adultPatient() *patient.Patient {
	return &patient.Patient{Name: "Test Adult", DateOfBirth: "1980-03-15", Weight: weight(70)}
}

func childPatient() *patient.Patient {
	return &patient.Patient{Name: "Test Child", DateOfBirth: "2016-09-01", Weight: weight(20)}
}

func elderlyPatient() *patient.Patient {
	return &patient.Patient{Name: "Test Elder", DateOfBirth: "1940-01-20", Weight: weight(62)}
}

func amoxicillin() *medication.Medication {
	return &medication.Medication{
		Name:                  "Amoxicillin",
		GenericName:           "amoxicillin",
		Category:              "Antibiotic",
		Strength:              "500 mg",
		Route:                 "oral",
		Frequency:             "every 8 hours",
		MaxDailyDose:          "3000 mg",
		AdultStandardDose:     "500 mg",
		PediatricStandardDose: "25 mg/kg/day divided every 12 hours",
		Contraindications:     []string{"penicillin allergy"},
		PregnancyCategory:     medication.PregnancyB,
		RenalAdjustment:       "Reduce frequency to every 12 hours if CrCl < 30 mL/min",
		DrugInteractions:      []string{"Methotrexate: reduced clearance", "Warfarin: increased INR"},
	}
}

func paracetamol() *medication.Medication {
	return &medication.Medication{
		Name:               "Paracetamol",
		GenericName:        "acetaminophen",
		Category:           "Analgesic",
		Strength:           "500 mg",
		Route:              "oral",
		Frequency:          "every 6 hours",
		AdultStandardDose:  "1000 mg",
		WeightBased:        true,
		WeightBasedFormula: "15 mg/kg",
		HepaticAdjustment:  "Maximum 2 g per day",
		PregnancyCategory:  medication.PregnancyB,
	}
}

func warfarin() *medication.Medication {
	return &medication.Medication{
		Name:                 "Warfarin",
		GenericName:          "warfarin",
		Category:             "Anticoagulant",
		Strength:             "5 mg",
		AdultStandardDose:    "5 mg",
		BlackBoxWarning:      "May cause major or fatal bleeding",
		Contraindications:    []string{"active bleeding", "pregnancy"},
		MonitoringParameters: []string{"Signs of bleeding"},
		LabsRequired:         []string{"INR", "CBC"},
		PregnancyCategory:    medication.PregnancyX,
		DrugInteractions:     []string{"Aspirin: bleeding risk", "Ibuprofen: bleeding risk"},
	}
}

func morphine() *medication.Medication {
	return &medication.Medication{
		Name:                "Morphine",
		Category:            "Opioid analgesic",
		Strength:            "10 mg/ml",
		AdultStandardDose:   "2.5-10 mg",
		ControlledSubstance: true,
		Schedule:            "II",
		BlackBoxWarning:     "Risk of respiratory depression",
	}
}
