package protocol

import (
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when no protocol matches.
var ErrNotFound = errors.New("treatment protocol not found")

type Severity string

const (
	SeverityMild            Severity = "mild"
	SeverityModerate        Severity = "moderate"
	SeveritySevere          Severity = "severe"
	SeverityLifeThreatening Severity = "life-threatening"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere, SeverityLifeThreatening:
		return true
	}
	return false
}

// Step is one ordered action of a protocol. Stored as jsonb.
type Step struct {
	Order    int    `json:"order"`
	Action   string `json:"action"`
	Timing   string `json:"timing,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Warnings string `json:"warnings,omitempty"`
}

// MedicationEntry names a medication recommended by a protocol. Name is
// resolved against the formulary at recommendation time.
type MedicationEntry struct {
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Route     string `json:"route"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// TreatmentProtocol maps to the treatment_protocol table.
type TreatmentProtocol struct {
	ID                string            `db:"id" json:"id"`
	Name              string            `db:"name" json:"name"`
	Category          string            `db:"category" json:"category"`
	Description       string            `db:"description" json:"description,omitempty"`
	ICDCodes          []string          `db:"icd_codes" json:"icd_codes"`
	Severity          Severity          `db:"severity" json:"severity"`
	Steps             []Step            `db:"steps" json:"steps"`
	FirstLine         []MedicationEntry `db:"first_line" json:"first_line"`
	SecondLine        []MedicationEntry `db:"second_line" json:"second_line,omitempty"`
	Contraindications []string          `db:"contraindications" json:"contraindications,omitempty"`
	WarningSymptoms   []string          `db:"warning_symptoms" json:"warning_symptoms,omitempty"`
	ReferralCriteria  []string          `db:"referral_criteria" json:"referral_criteria,omitempty"`
	FollowUp          string            `db:"follow_up" json:"follow_up,omitempty"`
	References        []string          `db:"reference_list" json:"references,omitempty"`
	TargetPopulation  string            `db:"target_population" json:"target_population,omitempty"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
}
