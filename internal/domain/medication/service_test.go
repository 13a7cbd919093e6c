package medication

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockMedRepo struct {
	meds        map[uuid.UUID]*Medication
	nameLookups int
}

func newMockMedRepo() *mockMedRepo {
	return &mockMedRepo{meds: make(map[uuid.UUID]*Medication)}
}

func (m *mockMedRepo) Create(_ context.Context, med *Medication) error {
	if med.ID == uuid.Nil {
		med.ID = uuid.New()
	}
	med.CreatedAt = time.Now()
	med.UpdatedAt = time.Now()
	m.meds[med.ID] = med
	return nil
}

func (m *mockMedRepo) GetByID(_ context.Context, id uuid.UUID) (*Medication, error) {
	med, ok := m.meds[id]
	if !ok {
		return nil, ErrNotFound
	}
	return med, nil
}

func (m *mockMedRepo) GetByName(_ context.Context, name string) (*Medication, error) {
	m.nameLookups++
	for _, med := range m.meds {
		if strings.EqualFold(med.Name, name) || strings.EqualFold(med.GenericName, name) {
			return med, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockMedRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Medication, int, error) {
	var result []*Medication
	for _, med := range m.meds {
		if q := params["q"]; q != "" && !strings.Contains(strings.ToLower(med.Name), strings.ToLower(q)) {
			continue
		}
		result = append(result, med)
	}
	total := len(result)
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func newTestService() *Service {
	return NewService(newMockMedRepo())
}

func TestCreateMedication(t *testing.T) {
	svc := newTestService()
	m := &Medication{Name: "Amoxicillin", PregnancyCategory: "b"}
	if err := svc.CreateMedication(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if m.PregnancyCategory != PregnancyB {
		t.Errorf("expected normalized category B, got %q", m.PregnancyCategory)
	}
}

func TestCreateMedication_NameRequired(t *testing.T) {
	svc := newTestService()
	if err := svc.CreateMedication(context.Background(), &Medication{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestCreateMedication_InvalidPregnancyCategory(t *testing.T) {
	svc := newTestService()
	err := svc.CreateMedication(context.Background(), &Medication{Name: "Drug", PregnancyCategory: "Q"})
	if err == nil {
		t.Error("expected error for invalid pregnancy category")
	}
}

func TestCreateMedication_MalformedFormula(t *testing.T) {
	svc := newTestService()
	err := svc.CreateMedication(context.Background(), &Medication{
		Name: "Paracetamol", WeightBased: true, WeightBasedFormula: "fifteen mg per kg",
	})
	if err == nil {
		t.Error("expected error for malformed weight formula")
	}
}

func TestCreateMedication_ControlledNeedsSchedule(t *testing.T) {
	svc := newTestService()
	err := svc.CreateMedication(context.Background(), &Medication{Name: "Morphine", ControlledSubstance: true})
	if err == nil {
		t.Error("expected error for controlled substance without schedule")
	}
}

func TestGetMedication(t *testing.T) {
	svc := newTestService()
	m := &Medication{Name: "Ibuprofen"}
	svc.CreateMedication(context.Background(), m)

	got, err := svc.GetMedication(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ibuprofen" {
		t.Errorf("expected Ibuprofen, got %s", got.Name)
	}
}

func TestGetMedicationByName_GenericName(t *testing.T) {
	svc := newTestService()
	svc.CreateMedication(context.Background(), &Medication{Name: "Tylenol", GenericName: "Acetaminophen"})

	got, err := svc.GetMedicationByName(context.Background(), "acetaminophen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Tylenol" {
		t.Errorf("expected Tylenol, got %s", got.Name)
	}
}
