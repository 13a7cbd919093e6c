package protocol

import "context"

type ProtocolRepository interface {
	Create(ctx context.Context, p *TreatmentProtocol) error
	GetByID(ctx context.Context, id string) (*TreatmentProtocol, error)
	// ListAll returns every protocol in stored order.
	ListAll(ctx context.Context) ([]TreatmentProtocol, error)
	List(ctx context.Context, category string, limit, offset int) ([]TreatmentProtocol, int, error)
}
