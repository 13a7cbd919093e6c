package medication

import (
	"context"

	"github.com/google/uuid"
)

type MedicationRepository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)
	// GetByName matches name or generic name case-insensitively.
	GetByName(ctx context.Context, name string) (*Medication, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Medication, int, error)
}
