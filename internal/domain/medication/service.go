package medication

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	medications MedicationRepository
}

func NewService(meds MedicationRepository) *Service {
	return &Service{medications: meds}
}

var validPregnancyCategories = map[PregnancyCategory]bool{
	PregnancyA: true, PregnancyB: true, PregnancyC: true, PregnancyD: true, PregnancyX: true,
	PregnancyUnclassified: true,
}

// CreateMedication validates and stores a formulary entry. It is used by the
// seeder; the HTTP surface is read-only.
func (s *Service) CreateMedication(ctx context.Context, m *Medication) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !validPregnancyCategories[PregnancyCategory(strings.ToUpper(string(m.PregnancyCategory)))] {
		return fmt.Errorf("invalid pregnancy category: %s", m.PregnancyCategory)
	}
	m.PregnancyCategory = m.PregnancyCategory.Normalize()
	if m.HasWeightFormula() {
		if _, err := ParseWeightFormula(m.WeightBasedFormula); err != nil {
			return err
		}
	}
	if m.ControlledSubstance && m.Schedule == "" {
		return fmt.Errorf("schedule is required for controlled substances")
	}
	return s.medications.Create(ctx, m)
}

func (s *Service) GetMedication(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.medications.GetByID(ctx, id)
}

func (s *Service) GetMedicationByName(ctx context.Context, name string) (*Medication, error) {
	return s.medications.GetByName(ctx, name)
}

func (s *Service) SearchMedications(ctx context.Context, params map[string]string, limit, offset int) ([]*Medication, int, error) {
	return s.medications.Search(ctx, params, limit, offset)
}
