package appointment

import "context"

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	// GetByID returns (nil, nil) when the appointment does not exist.
	GetByID(ctx context.Context, id int64) (*Detail, error)
	List(ctx context.Context) ([]*Summary, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Appointment, error)
	Delete(ctx context.Context, id int64) (*Appointment, error)
}

// ReferenceChecker reports whether a related record exists. Implementations
// called inside a transaction keep the row from being deleted until it ends.
type ReferenceChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
