package patient

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when no patient matches.
var ErrNotFound = errors.New("patient not found")

// Patient maps to the patient table. The advisor only reads patients; the
// record-keeping application owns their lifecycle.
type Patient struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	DateOfBirth        string    `db:"date_of_birth" json:"date_of_birth"`
	Weight             *float64  `db:"weight_kg" json:"weight,omitempty"`
	Allergies          []string  `db:"allergies" json:"allergies"`
	ChronicConditions  []string  `db:"chronic_conditions" json:"chronic_conditions"`
	RenalFunction      string    `db:"renal_function" json:"renal_function,omitempty"`
	HepaticFunction    string    `db:"hepatic_function" json:"hepatic_function,omitempty"`
	IsPregnant         bool      `db:"is_pregnant" json:"is_pregnant"`
	CurrentMedications []string  `db:"current_medications" json:"current_medications"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

var renalKeywords = []string{"kidney", "renal"}
var hepaticKeywords = []string{"liver", "hepatic"}

// HasRenalImpairment reports whether a chronic condition mentions the
// kidneys or the renal function qualifier records an impairment.
func (p *Patient) HasRenalImpairment() bool {
	return conditionMentions(p.ChronicConditions, renalKeywords) || impaired(p.RenalFunction)
}

// HasHepaticImpairment is the liver counterpart of HasRenalImpairment.
func (p *Patient) HasHepaticImpairment() bool {
	return conditionMentions(p.ChronicConditions, hepaticKeywords) || impaired(p.HepaticFunction)
}

func conditionMentions(conditions, keywords []string) bool {
	for _, c := range conditions {
		lc := strings.ToLower(c)
		for _, k := range keywords {
			if strings.Contains(lc, k) {
				return true
			}
		}
	}
	return false
}

// impaired treats any qualifier other than empty or "normal" as impairment.
func impaired(qualifier string) bool {
	q := strings.ToLower(strings.TrimSpace(qualifier))
	return q != "" && q != "normal"
}
