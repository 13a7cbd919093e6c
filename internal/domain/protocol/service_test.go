package protocol

import (
	"context"
	"strings"
	"testing"
	"time"
)

type mockProtocolRepo struct {
	items []TreatmentProtocol
}

func (m *mockProtocolRepo) Create(_ context.Context, p *TreatmentProtocol) error {
	p.CreatedAt = time.Now()
	m.items = append(m.items, *p)
	return nil
}

func (m *mockProtocolRepo) GetByID(_ context.Context, id string) (*TreatmentProtocol, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockProtocolRepo) ListAll(_ context.Context) ([]TreatmentProtocol, error) {
	return m.items, nil
}

func (m *mockProtocolRepo) List(_ context.Context, category string, limit, offset int) ([]TreatmentProtocol, int, error) {
	items := m.items
	if category != "" {
		items = FilterByCategory(items, strings.TrimSpace(category))
	}
	total := len(items)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return items[offset:end], total, nil
}

func newTestService() *Service {
	return NewService(&mockProtocolRepo{})
}

func TestCreateProtocol(t *testing.T) {
	svc := newTestService()
	for _, p := range Expand(baseTemplate(), []Variant{{Suffix: "adult", TargetPopulation: "adult"}}) {
		p := p
		if err := svc.CreateProtocol(context.Background(), &p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	got, err := svc.GetProtocol(context.Background(), "asthma-adult")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Adult Asthma Exacerbation" {
		t.Errorf("unexpected name %q", got.Name)
	}
}

func TestCreateProtocol_Validation(t *testing.T) {
	svc := newTestService()
	tests := []TreatmentProtocol{
		{Name: "No ID", Category: "x", Severity: SeverityMild},
		{ID: "a", Category: "x", Severity: SeverityMild},
		{ID: "a", Name: "No category", Severity: SeverityMild},
		{ID: "a", Name: "Bad severity", Category: "x", Severity: "critical"},
		{ID: "a", Name: "Unnamed med", Category: "x", Severity: SeverityMild, FirstLine: []MedicationEntry{{Dose: "1 mg"}}},
	}
	for _, p := range tests {
		p := p
		if err := svc.CreateProtocol(context.Background(), &p); err == nil {
			t.Errorf("expected error for %+v", p)
		}
	}
}

func TestGetProtocol_NotFound(t *testing.T) {
	svc := newTestService()
	if _, err := svc.GetProtocol(context.Background(), "missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
