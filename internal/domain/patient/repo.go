package patient

import "context"

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	// GetByID returns (nil, nil) when the patient does not exist.
	GetByID(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context) ([]*Patient, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Patient, error)
	Delete(ctx context.Context, id int64) (*Patient, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
