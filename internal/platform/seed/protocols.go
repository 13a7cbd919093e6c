package seed

import "github.com/ehr/advisor/internal/domain/protocol"

// TemplateSet pairs a protocol template with the variants expanded from it.
type TemplateSet struct {
	Template protocol.Template
	Variants []protocol.Variant
}

// ReferenceProtocols expands every reference template in declaration order.
// The order is significant: protocol matching returns the first hit.
func ReferenceProtocols() []protocol.TreatmentProtocol {
	var out []protocol.TreatmentProtocol
	for _, set := range ReferenceTemplates() {
		out = append(out, protocol.Expand(set.Template, set.Variants)...)
	}
	return out
}

func ReferenceTemplates() []TemplateSet {
	return []TemplateSet{asthmaExacerbation(), communityAcquiredPneumonia(), hypertension(), urinaryTractInfection()}
}

func asthmaExacerbation() TemplateSet {
	return TemplateSet{
		Template: protocol.Template{
			ID:          "asthma-exacerbation",
			Name:        "Acute Asthma Exacerbation",
			Category:    "respiratory",
			Description: "Emergency management of an acute asthma exacerbation",
			ICDCodes:    []string{"J45.901", "J45.902"},
			Severity:    protocol.SeverityModerate,
			Steps: []protocol.Step{
				{Order: 1, Action: "Assess severity: respiratory rate, SpO2, peak flow, ability to speak", Timing: "immediately"},
				{Order: 2, Action: "Give inhaled short-acting beta-agonist via spacer or nebulizer", Timing: "every 20 minutes for 1 hour"},
				{Order: 3, Action: "Start systemic corticosteroid", Timing: "within 1 hour"},
				{Order: 4, Action: "Reassess response after initial bronchodilator therapy", Timing: "at 1 hour", Warnings: "Escalate if SpO2 remains below 92%"},
			},
			FirstLine: []protocol.MedicationEntry{
				{Name: "Salbutamol", Dose: "4-8 puffs", Route: "inhaled", Frequency: "every 20 minutes x3"},
				{Name: "Prednisolone", Dose: "40-50 mg", Route: "oral", Frequency: "once daily", Duration: "5 days"},
			},
			SecondLine: []protocol.MedicationEntry{
				{Name: "Ipratropium", Dose: "0.5 mg", Route: "nebulized", Frequency: "every 20 minutes x3"},
			},
			Contraindications: []string{"beta-blocker use"},
			WarningSymptoms:   []string{"silent chest", "cyanosis", "confusion or drowsiness", "inability to complete sentences"},
			ReferralCriteria:  []string{"no improvement after 1 hour of treatment", "SpO2 below 92% on room air"},
			FollowUp:          "Review within 48 hours of discharge and update the asthma action plan",
			References:        []string{"GINA 2023 Global Strategy for Asthma Management"},
		},
		Variants: []protocol.Variant{
			{TargetPopulation: "adult"},
			{
				Suffix:             "severe",
				NameSuffix:         "(Severe)",
				Severity:           protocol.SeveritySevere,
				AdditionalICDCodes: []string{"J45.51"},
				AdditionalSteps: []protocol.Step{
					{Order: 5, Action: "Give oxygen to target SpO2 93-95%", Timing: "immediately"},
					{Order: 6, Action: "Consider intravenous magnesium sulfate", Timing: "if poor response"},
				},
				AdditionalMedications: []protocol.MedicationEntry{
					{Name: "Ipratropium", Dose: "0.5 mg", Route: "nebulized", Frequency: "every 20 minutes x3"},
				},
				AdditionalWarnings: []string{"exhaustion", "rising PaCO2"},
				TargetPopulation:   "adult",
			},
			{
				Suffix:           "pediatric",
				TargetPopulation: "pediatric",
				AdditionalSteps: []protocol.Step{
					{Order: 5, Action: "Dose corticosteroid by weight (1 mg/kg, maximum 40 mg)", Notes: "use liquid formulation where available"},
				},
				AdditionalWarnings: []string{"poor feeding", "nasal flaring"},
			},
		},
	}
}

func communityAcquiredPneumonia() TemplateSet {
	return TemplateSet{
		Template: protocol.Template{
			ID:          "community-acquired-pneumonia",
			Name:        "Community-Acquired Pneumonia",
			Category:    "infectious disease",
			Description: "Empiric treatment of community-acquired pneumonia",
			ICDCodes:    []string{"J18.9"},
			Severity:    protocol.SeverityModerate,
			Steps: []protocol.Step{
				{Order: 1, Action: "Assess severity with CURB-65", Timing: "at presentation"},
				{Order: 2, Action: "Obtain chest radiograph", Timing: "at presentation"},
				{Order: 3, Action: "Start empiric antibiotics", Timing: "within 4 hours of diagnosis"},
			},
			FirstLine: []protocol.MedicationEntry{
				{Name: "Amoxicillin", Dose: "1 g", Route: "oral", Frequency: "every 8 hours", Duration: "5 days"},
			},
			SecondLine: []protocol.MedicationEntry{
				{Name: "Doxycycline", Dose: "100 mg", Route: "oral", Frequency: "every 12 hours", Duration: "5 days", Notes: "penicillin allergy"},
			},
			Contraindications: []string{"penicillin allergy (use second-line)"},
			WarningSymptoms:   []string{"respiratory rate above 30", "new confusion", "systolic blood pressure below 90 mmHg"},
			ReferralCriteria:  []string{"CURB-65 score of 2 or more"},
			FollowUp:          "Clinical review at 48-72 hours; repeat chest radiograph at 6 weeks if symptoms persist",
			References:        []string{"ATS/IDSA 2019 Community-Acquired Pneumonia Guideline"},
		},
		Variants: []protocol.Variant{
			{Suffix: "outpatient", NameSuffix: "(Outpatient)", Severity: protocol.SeverityMild, TargetPopulation: "adult"},
			{
				Suffix:     "inpatient",
				NameSuffix: "(Inpatient)",
				Severity:   protocol.SeveritySevere,
				AdditionalSteps: []protocol.Step{
					{Order: 4, Action: "Obtain blood and sputum cultures before antibiotics", Timing: "on admission"},
				},
				AdditionalMedications: []protocol.MedicationEntry{
					{Name: "Ceftriaxone", Dose: "1-2 g", Route: "intravenous", Frequency: "once daily"},
					{Name: "Azithromycin", Dose: "500 mg", Route: "oral", Frequency: "once daily", Duration: "3 days"},
				},
				AdditionalWarnings: []string{"septic shock", "multilobar infiltrates"},
				TargetPopulation:   "adult",
			},
		},
	}
}

func hypertension() TemplateSet {
	return TemplateSet{
		Template: protocol.Template{
			ID:          "hypertension",
			Name:        "Essential Hypertension",
			Category:    "cardiovascular",
			Description: "Initiation of antihypertensive therapy in primary hypertension",
			ICDCodes:    []string{"I10"},
			Severity:    protocol.SeverityModerate,
			Steps: []protocol.Step{
				{Order: 1, Action: "Confirm diagnosis with ambulatory or home blood pressure readings"},
				{Order: 2, Action: "Assess cardiovascular risk and target organ damage"},
				{Order: 3, Action: "Lifestyle modification: salt restriction, weight loss, exercise", Timing: "ongoing"},
				{Order: 4, Action: "Start first-line antihypertensive", Notes: "titrate every 4 weeks to target"},
			},
			FirstLine: []protocol.MedicationEntry{
				{Name: "Amlodipine", Dose: "5 mg", Route: "oral", Frequency: "once daily"},
			},
			SecondLine: []protocol.MedicationEntry{
				{Name: "Hydrochlorothiazide", Dose: "12.5-25 mg", Route: "oral", Frequency: "once daily"},
			},
			WarningSymptoms:  []string{"chest pain", "severe headache", "visual disturbance"},
			ReferralCriteria: []string{"blood pressure above 180/120 mmHg", "suspected secondary hypertension"},
			FollowUp:         "Recheck blood pressure monthly until controlled, then every 3-6 months",
			References:       []string{"2017 ACC/AHA Hypertension Guideline"},
		},
		Variants: []protocol.Variant{
			{Suffix: "stage1", NameSuffix: "Stage 1", Severity: protocol.SeverityMild, TargetPopulation: "adult"},
			{
				Suffix:     "stage2",
				NameSuffix: "Stage 2",
				AdditionalMedications: []protocol.MedicationEntry{
					{Name: "Lisinopril", Dose: "10 mg", Route: "oral", Frequency: "once daily", Notes: "avoid in pregnancy"},
				},
				TargetPopulation: "adult",
			},
			{
				Suffix:             "elderly",
				TargetPopulation:   "geriatric",
				AdditionalSteps:    []protocol.Step{{Order: 5, Action: "Check for orthostatic hypotension before each titration"}},
				AdditionalWarnings: []string{"falls", "dizziness on standing"},
			},
		},
	}
}

func urinaryTractInfection() TemplateSet {
	return TemplateSet{
		Template: protocol.Template{
			ID:          "urinary-tract-infection",
			Name:        "Urinary Tract Infection",
			Category:    "infectious disease",
			Description: "Treatment of bacterial urinary tract infection",
			ICDCodes:    []string{"N39.0"},
			Severity:    protocol.SeverityMild,
			Steps: []protocol.Step{
				{Order: 1, Action: "Confirm symptoms and perform urinalysis"},
				{Order: 2, Action: "Send urine culture if recurrent, complicated or pregnant"},
				{Order: 3, Action: "Start empiric antibiotic", Notes: "adjust to culture sensitivities"},
			},
			FirstLine: []protocol.MedicationEntry{
				{Name: "Nitrofurantoin", Dose: "100 mg", Route: "oral", Frequency: "every 12 hours", Duration: "5 days"},
			},
			SecondLine: []protocol.MedicationEntry{
				{Name: "Trimethoprim-sulfamethoxazole", Dose: "1 double-strength tablet", Route: "oral", Frequency: "every 12 hours", Duration: "3 days"},
			},
			Contraindications: []string{"CrCl below 45 mL/min for nitrofurantoin"},
			WarningSymptoms:   []string{"fever", "flank pain", "rigors"},
			ReferralCriteria:  []string{"suspected pyelonephritis", "recurrent infection (3 or more per year)"},
			FollowUp:          "Review if symptoms persist beyond 48 hours of treatment",
			References:        []string{"IDSA 2010 Uncomplicated Cystitis and Pyelonephritis Guideline"},
		},
		Variants: []protocol.Variant{
			{Suffix: "uncomplicated", NameSuffix: "(Uncomplicated Cystitis)", TargetPopulation: "adult"},
			{
				Suffix:             "pyelonephritis",
				NameSuffix:         "(Pyelonephritis)",
				Severity:           protocol.SeveritySevere,
				AdditionalICDCodes: []string{"N10"},
				AdditionalSteps: []protocol.Step{
					{Order: 4, Action: "Give first dose of parenteral antibiotic", Timing: "immediately"},
				},
				AdditionalMedications: []protocol.MedicationEntry{
					{Name: "Ceftriaxone", Dose: "1 g", Route: "intravenous", Frequency: "once daily"},
				},
				AdditionalWarnings: []string{"hypotension", "vomiting preventing oral intake"},
				TargetPopulation:   "adult",
			},
			{
				Suffix:           "pregnancy",
				TargetPopulation: "pregnant",
				AdditionalSteps: []protocol.Step{
					{Order: 4, Action: "Test of cure with repeat urine culture", Timing: "1 week after treatment"},
				},
				AdditionalWarnings: []string{"preterm contractions"},
			},
		},
	}
}
