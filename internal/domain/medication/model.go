package medication

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ehr/advisor/internal/domain"
)

// ErrNotFound is returned by repositories when no medication matches.
var ErrNotFound = errors.New("medication not found")

// PregnancyCategory is the FDA letter category. The zero value means the
// medication is unclassified.
type PregnancyCategory string

const (
	PregnancyA            PregnancyCategory = "A"
	PregnancyB            PregnancyCategory = "B"
	PregnancyC            PregnancyCategory = "C"
	PregnancyD            PregnancyCategory = "D"
	PregnancyX            PregnancyCategory = "X"
	PregnancyUnclassified PregnancyCategory = ""
)

// Normalize upper-cases known letters and maps anything else to unclassified.
func (c PregnancyCategory) Normalize() PregnancyCategory {
	switch n := PregnancyCategory(strings.ToUpper(strings.TrimSpace(string(c)))); n {
	case PregnancyA, PregnancyB, PregnancyC, PregnancyD, PregnancyX:
		return n
	}
	return PregnancyUnclassified
}

// ContraindicatedInPregnancy reports categories D and X.
func (c PregnancyCategory) ContraindicatedInPregnancy() bool {
	n := c.Normalize()
	return n == PregnancyD || n == PregnancyX
}

// Medication maps to the medication table: the formulary entry the engine
// doses and screens against. It is reference data and never written by the
// engine.
type Medication struct {
	ID                    uuid.UUID         `db:"id" json:"id"`
	Name                  string            `db:"name" json:"name"`
	GenericName           string            `db:"generic_name" json:"generic_name,omitempty"`
	BrandNames            []string          `db:"brand_names" json:"brand_names,omitempty"`
	Category              string            `db:"category" json:"category,omitempty"`
	Strength              string            `db:"strength" json:"strength,omitempty"`
	Route                 string            `db:"route" json:"route,omitempty"`
	Frequency             string            `db:"frequency" json:"frequency,omitempty"`
	MaxDailyDose          string            `db:"max_daily_dose" json:"max_daily_dose,omitempty"`
	AdultStandardDose     string            `db:"adult_standard_dose" json:"adult_standard_dose,omitempty"`
	PediatricStandardDose string            `db:"pediatric_standard_dose" json:"pediatric_standard_dose,omitempty"`
	WeightBased           bool              `db:"weight_based" json:"weight_based"`
	WeightBasedFormula    string            `db:"weight_based_formula" json:"weight_based_formula,omitempty"`
	RenalAdjustment       string            `db:"renal_adjustment" json:"renal_adjustment,omitempty"`
	HepaticAdjustment     string            `db:"hepatic_adjustment" json:"hepatic_adjustment,omitempty"`
	Contraindications     []string          `db:"contraindications" json:"contraindications,omitempty"`
	MonitoringParameters  []string          `db:"monitoring_parameters" json:"monitoring_parameters,omitempty"`
	LabsRequired          []string          `db:"labs_required" json:"labs_required,omitempty"`
	BlackBoxWarning       string            `db:"black_box_warning" json:"black_box_warning,omitempty"`
	PregnancyCategory     PregnancyCategory `db:"pregnancy_category" json:"pregnancy_category,omitempty"`
	ControlledSubstance   bool              `db:"controlled_substance" json:"controlled_substance"`
	Schedule              string            `db:"schedule" json:"schedule,omitempty"`
	DrugInteractions      []string          `db:"drug_interactions" json:"drug_interactions,omitempty"`
	CreatedAt             time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time         `db:"updated_at" json:"updated_at"`
}

// DoseUnit infers the unit from the strength string.
func (m *Medication) DoseUnit() string {
	s := strings.ToLower(m.Strength)
	switch {
	case strings.Contains(s, "mg"):
		return "mg"
	case strings.Contains(s, "ml"):
		return "ml"
	}
	return "units"
}

// HasWeightFormula reports whether weight-based dosing is configured at all.
func (m *Medication) HasWeightFormula() bool {
	return m.WeightBased && strings.TrimSpace(m.WeightBasedFormula) != ""
}

var weightFormulaPattern = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*mg\s*/\s*kg\b`)

// ParseWeightFormula extracts the mg-per-kg rate from a formula starting with
// "<number> mg/kg". Trailing qualifiers such as "/day" are ignored. Anything
// else is corrupt reference data.
func ParseWeightFormula(formula string) (float64, error) {
	m := weightFormulaPattern.FindStringSubmatch(formula)
	if m == nil {
		return 0, domain.NewValidationError("weight_based_formula", "expected '<number> mg/kg'", formula)
	}
	rate, err := strconv.ParseFloat(m[1], 64)
	if err != nil || rate <= 0 {
		return 0, domain.NewValidationError("weight_based_formula", "rate must be a positive number", formula)
	}
	return rate, nil
}
