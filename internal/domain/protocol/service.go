package protocol

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	protocols ProtocolRepository
}

func NewService(protocols ProtocolRepository) *Service {
	return &Service{protocols: protocols}
}

// CreateProtocol validates and stores a protocol. Only the seeder writes
// protocols.
func (s *Service) CreateProtocol(ctx context.Context, p *TreatmentProtocol) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if !p.Severity.Valid() {
		return fmt.Errorf("invalid severity: %s", p.Severity)
	}
	for _, m := range p.FirstLine {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("first-line medication name is required")
		}
	}
	return s.protocols.Create(ctx, p)
}

func (s *Service) GetProtocol(ctx context.Context, id string) (*TreatmentProtocol, error) {
	return s.protocols.GetByID(ctx, id)
}

// AllProtocols returns every protocol in stored order, the order Match walks.
func (s *Service) AllProtocols(ctx context.Context) ([]TreatmentProtocol, error) {
	return s.protocols.ListAll(ctx)
}

func (s *Service) ListProtocols(ctx context.Context, category string, limit, offset int) ([]TreatmentProtocol, int, error) {
	return s.protocols.List(ctx, category, limit, offset)
}
