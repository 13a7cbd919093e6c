package seed

import "github.com/ehr/advisor/internal/domain/medication"

// ReferenceMedications is the built-in formulary. Every first-line entry of
// the reference protocols resolves against it.
func ReferenceMedications() []medication.Medication {
	return []medication.Medication{
		{
			Name:                  "Amoxicillin",
			GenericName:           "amoxicillin",
			BrandNames:            []string{"Amoxil"},
			Category:              "antibiotic",
			Strength:              "500 mg",
			Route:                 "oral",
			Frequency:             "every 8 hours",
			MaxDailyDose:          "3000 mg",
			AdultStandardDose:     "500 mg",
			PediatricStandardDose: "250 mg",
			WeightBased:           true,
			WeightBasedFormula:    "25 mg/kg",
			RenalAdjustment:       "Extend interval to every 12 hours if CrCl < 30 mL/min",
			Contraindications:     []string{"penicillin allergy", "infectious mononucleosis"},
			MonitoringParameters:  []string{"rash", "diarrhea"},
			PregnancyCategory:     medication.PregnancyB,
			DrugInteractions:      []string{"methotrexate", "warfarin"},
		},
		{
			Name:                  "Paracetamol",
			GenericName:           "acetaminophen",
			BrandNames:            []string{"Tylenol", "Panadol"},
			Category:              "analgesic",
			Strength:              "500 mg",
			Route:                 "oral",
			Frequency:             "every 6 hours as needed",
			MaxDailyDose:          "4000 mg",
			AdultStandardDose:     "500-1000 mg",
			PediatricStandardDose: "250 mg",
			WeightBased:           true,
			WeightBasedFormula:    "15 mg/kg",
			HepaticAdjustment:     "Maximum 2000 mg/day in hepatic impairment",
			Contraindications:     []string{"severe hepatic impairment"},
			PregnancyCategory:     medication.PregnancyB,
		},
		{
			Name:                  "Ibuprofen",
			GenericName:           "ibuprofen",
			BrandNames:            []string{"Advil", "Motrin"},
			Category:              "nsaid",
			Strength:              "400 mg",
			Route:                 "oral",
			Frequency:             "every 8 hours with food",
			MaxDailyDose:          "2400 mg",
			AdultStandardDose:     "400 mg",
			PediatricStandardDose: "100 mg",
			WeightBased:           true,
			WeightBasedFormula:    "10 mg/kg",
			RenalAdjustment:       "Avoid if CrCl < 30 mL/min",
			Contraindications:     []string{"nsaid allergy", "aspirin allergy", "active peptic ulcer", "kidney disease"},
			MonitoringParameters:  []string{"GI bleeding", "blood pressure"},
			LabsRequired:          []string{"creatinine"},
			BlackBoxWarning:       "Increased risk of serious cardiovascular thrombotic events and gastrointestinal bleeding.",
			PregnancyCategory:     medication.PregnancyC,
			DrugInteractions:      []string{"warfarin", "lisinopril"},
		},
		{
			Name:                 "Warfarin",
			GenericName:          "warfarin",
			BrandNames:           []string{"Coumadin"},
			Category:             "anticoagulant",
			Strength:             "5 mg",
			Route:                "oral",
			Frequency:            "once daily",
			MaxDailyDose:         "10 mg",
			AdultStandardDose:    "5 mg",
			Contraindications:    []string{"active bleeding", "pregnancy"},
			MonitoringParameters: []string{"signs of bleeding"},
			LabsRequired:         []string{"INR"},
			BlackBoxWarning:      "May cause major or fatal bleeding.",
			PregnancyCategory:    medication.PregnancyX,
			DrugInteractions:     []string{"ibuprofen", "aspirin", "amiodarone"},
		},
		{
			Name:                  "Salbutamol",
			GenericName:           "albuterol",
			BrandNames:            []string{"Ventolin", "ProAir"},
			Category:              "bronchodilator",
			Strength:              "100 mcg/dose",
			Route:                 "inhaled",
			Frequency:             "every 20 minutes for 3 doses, then every 4 hours",
			MaxDailyDose:          "Consult pharmacist",
			AdultStandardDose:     "4-8 puffs",
			PediatricStandardDose: "4-6 puffs",
			MonitoringParameters:  []string{"heart rate", "potassium"},
			PregnancyCategory:     medication.PregnancyC,
		},
		{
			Name:                  "Ipratropium",
			GenericName:           "ipratropium bromide",
			BrandNames:            []string{"Atrovent"},
			Category:              "bronchodilator",
			Strength:              "0.5 mg/2.5 ml",
			Route:                 "nebulized",
			Frequency:             "every 20 minutes for 3 doses",
			AdultStandardDose:     "0.5 mg",
			PediatricStandardDose: "0.25 mg",
			Contraindications:     []string{"atropine allergy"},
			PregnancyCategory:     medication.PregnancyB,
		},
		{
			Name:                  "Prednisolone",
			GenericName:           "prednisolone",
			Category:              "corticosteroid",
			Strength:              "5 mg",
			Route:                 "oral",
			Frequency:             "once daily",
			MaxDailyDose:          "60 mg",
			AdultStandardDose:     "40-50 mg",
			WeightBased:           true,
			WeightBasedFormula:    "1 mg/kg",
			PediatricStandardDose: "20 mg",
			Contraindications:     []string{"systemic fungal infection"},
			MonitoringParameters:  []string{"blood glucose", "blood pressure"},
			PregnancyCategory:     medication.PregnancyC,
		},
		{
			Name:                  "Azithromycin",
			GenericName:           "azithromycin",
			BrandNames:            []string{"Zithromax"},
			Category:              "antibiotic",
			Strength:              "250 mg",
			Route:                 "oral",
			Frequency:             "once daily",
			MaxDailyDose:          "500 mg",
			AdultStandardDose:     "500 mg",
			PediatricStandardDose: "200 mg",
			WeightBased:           true,
			WeightBasedFormula:    "10 mg/kg",
			HepaticAdjustment:     "Use with caution in hepatic impairment",
			Contraindications:     []string{"macrolide allergy", "QT prolongation"},
			MonitoringParameters:  []string{"QT interval"},
			PregnancyCategory:     medication.PregnancyB,
		},
		{
			Name:                 "Ceftriaxone",
			GenericName:          "ceftriaxone",
			BrandNames:           []string{"Rocephin"},
			Category:             "antibiotic",
			Strength:             "1 g",
			Route:                "intravenous",
			Frequency:            "once daily",
			MaxDailyDose:         "4 g",
			AdultStandardDose:    "1-2 g",
			WeightBased:          true,
			WeightBasedFormula:   "50 mg/kg",
			Contraindications:    []string{"cephalosporin allergy"},
			MonitoringParameters: []string{"injection site reactions"},
			PregnancyCategory:    medication.PregnancyB,
		},
		{
			Name:                 "Doxycycline",
			GenericName:          "doxycycline",
			Category:             "antibiotic",
			Strength:             "100 mg",
			Route:                "oral",
			Frequency:            "every 12 hours",
			MaxDailyDose:         "200 mg",
			AdultStandardDose:    "100 mg",
			Contraindications:    []string{"tetracycline allergy", "pregnancy"},
			MonitoringParameters: []string{"photosensitivity"},
			PregnancyCategory:    medication.PregnancyD,
			DrugInteractions:     []string{"calcium", "iron", "antacid"},
		},
		{
			Name:                 "Lisinopril",
			GenericName:          "lisinopril",
			BrandNames:           []string{"Zestril", "Prinivil"},
			Category:             "ace inhibitor",
			Strength:             "10 mg",
			Route:                "oral",
			Frequency:            "once daily",
			MaxDailyDose:         "80 mg",
			AdultStandardDose:    "10 mg",
			RenalAdjustment:      "Start at 5 mg if CrCl < 30 mL/min",
			Contraindications:    []string{"angioedema", "pregnancy"},
			MonitoringParameters: []string{"blood pressure"},
			LabsRequired:         []string{"potassium", "creatinine"},
			BlackBoxWarning:      "Fetal toxicity: discontinue as soon as pregnancy is detected.",
			PregnancyCategory:    medication.PregnancyD,
			DrugInteractions:     []string{"potassium", "spironolactone", "ibuprofen"},
		},
		{
			Name:                 "Amlodipine",
			GenericName:          "amlodipine",
			BrandNames:           []string{"Norvasc"},
			Category:             "calcium channel blocker",
			Strength:             "5 mg",
			Route:                "oral",
			Frequency:            "once daily",
			MaxDailyDose:         "10 mg",
			AdultStandardDose:    "5 mg",
			HepaticAdjustment:    "Start at 2.5 mg in hepatic impairment",
			MonitoringParameters: []string{"blood pressure", "peripheral edema"},
			PregnancyCategory:    medication.PregnancyC,
		},
		{
			Name:              "Hydrochlorothiazide",
			GenericName:       "hydrochlorothiazide",
			Category:          "diuretic",
			Strength:          "25 mg",
			Route:             "oral",
			Frequency:         "once daily",
			MaxDailyDose:      "50 mg",
			AdultStandardDose: "12.5-25 mg",
			Contraindications: []string{"sulfonamide allergy", "anuria"},
			LabsRequired:      []string{"sodium", "potassium"},
			PregnancyCategory: medication.PregnancyB,
		},
		{
			Name:                 "Nitrofurantoin",
			GenericName:          "nitrofurantoin",
			BrandNames:           []string{"Macrobid"},
			Category:             "antibiotic",
			Strength:             "100 mg",
			Route:                "oral",
			Frequency:            "every 12 hours",
			AdultStandardDose:    "100 mg",
			RenalAdjustment:      "Avoid if CrCl < 45 mL/min",
			Contraindications:    []string{"kidney disease", "term pregnancy"},
			MonitoringParameters: []string{"pulmonary symptoms"},
			PregnancyCategory:    medication.PregnancyB,
		},
		{
			Name:              "Trimethoprim-sulfamethoxazole",
			GenericName:       "sulfamethoxazole",
			BrandNames:        []string{"Bactrim", "Septra"},
			Category:          "antibiotic",
			Strength:          "800 mg/160 mg",
			Route:             "oral",
			Frequency:         "every 12 hours",
			AdultStandardDose: "1 double-strength tablet",
			RenalAdjustment:   "Halve the dose if CrCl 15-30 mL/min",
			Contraindications: []string{"sulfonamide allergy", "folate deficiency anemia"},
			LabsRequired:      []string{"potassium", "complete blood count"},
			PregnancyCategory: medication.PregnancyD,
			DrugInteractions:  []string{"warfarin", "methotrexate"},
		},
		{
			Name:                 "Morphine",
			GenericName:          "morphine sulfate",
			Category:             "opioid analgesic",
			Strength:             "10 mg",
			Route:                "oral",
			Frequency:            "every 4 hours as needed",
			AdultStandardDose:    "5-10 mg",
			RenalAdjustment:      "Reduce dose and extend interval",
			HepaticAdjustment:    "Reduce dose",
			Contraindications:    []string{"respiratory depression", "paralytic ileus"},
			MonitoringParameters: []string{"respiratory rate", "sedation"},
			BlackBoxWarning:      "Risk of addiction, abuse and life-threatening respiratory depression.",
			PregnancyCategory:    medication.PregnancyC,
			ControlledSubstance:  true,
			Schedule:             "II",
			DrugInteractions:     []string{"benzodiazepines", "alcohol"},
		},
		{
			Name:              "Metformin",
			GenericName:       "metformin",
			BrandNames:        []string{"Glucophage"},
			Category:          "antidiabetic",
			Strength:          "500 mg",
			Route:             "oral",
			Frequency:         "twice daily with meals",
			MaxDailyDose:      "2550 mg",
			AdultStandardDose: "500 mg",
			RenalAdjustment:   "Contraindicated if eGFR < 30",
			Contraindications: []string{"kidney disease", "metabolic acidosis"},
			LabsRequired:      []string{"creatinine", "HbA1c"},
			BlackBoxWarning:   "Lactic acidosis.",
			PregnancyCategory: medication.PregnancyB,
		},
	}
}
