package patient

import (
	"math"
	"strings"
	"time"

	"github.com/ehr/advisor/internal/domain"
)

const (
	PediatricAgeLimit = 18
	GeriatricAgeFrom  = 65
)

// AgeProfile is the age bucket a dosing decision is made against.
type AgeProfile struct {
	Years     int  `json:"years"`
	Pediatric bool `json:"pediatric"`
	Geriatric bool `json:"geriatric"`
}

var birthDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseBirthDate parses a date of birth in any of the accepted layouts.
func ParseBirthDate(dob string) (time.Time, error) {
	s := strings.TrimSpace(dob)
	if s == "" {
		return time.Time{}, domain.NewValidationError("date_of_birth", "date of birth is required", dob)
	}
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError("date_of_birth", "date of birth is not a valid date", dob)
}

// ResolveAge computes whole years between dob and now, decrementing when the
// birthday has not yet been reached in now's year.
func ResolveAge(dob string, now time.Time) (AgeProfile, error) {
	birth, err := ParseBirthDate(dob)
	if err != nil {
		return AgeProfile{}, err
	}
	if birth.After(now) {
		return AgeProfile{}, domain.NewValidationError("date_of_birth", "date of birth is in the future", dob)
	}

	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}

	return AgeProfile{
		Years:     years,
		Pediatric: years < PediatricAgeLimit,
		Geriatric: years >= GeriatricAgeFrom,
	}, nil
}

// ResolveWeight returns the weight in kilograms when it is present, finite and
// positive. ok is false otherwise and weight-based dosing must be skipped.
func ResolveWeight(w *float64) (kg float64, ok bool) {
	if w == nil {
		return 0, false
	}
	v := *w
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
